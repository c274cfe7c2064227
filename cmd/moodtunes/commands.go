package main

import (
	"github.com/goccy/go-json"
	"github.com/spf13/cobra"

	"github.com/justestif/moodtunes/internal/recommend"
	"github.com/justestif/moodtunes/internal/web"
)

func newRecommendCmd(root *rootOptions) *cobra.Command {
	var (
		seed    uint64
		explain bool
		asJSON  bool
	)

	cmd := &cobra.Command{
		Use:   "recommend <mood>",
		Short: "Recommend five songs for a mood word",
		Args:  cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			ctx := cmd.Context()

			a, err := newApp(ctx, root.cfg)
			if err != nil {
				return err
			}
			defer a.Close()

			if cmd.Flags().Changed("seed") {
				a.engine.Rand = recommend.SeededRand(seed)
				a.engine.Reproducible = true
			}

			res, err := a.engine.Recommend(ctx, args[0])
			if err != nil {
				return err
			}

			if asJSON {
				if !explain {
					res.Explain = nil
				}
				enc := json.NewEncoder(cmd.OutOrStdout())
				enc.SetIndent("", "  ")
				return enc.Encode(res)
			}
			renderResult(cmd.OutOrStdout(), res, explain)
			return nil
		},
	}

	cmd.Flags().Uint64Var(&seed, "seed", 0, "seed the random source for reproducible results (omits vibes)")
	cmd.Flags().BoolVar(&explain, "explain", false, "show ranking scores")
	cmd.Flags().BoolVar(&asJSON, "json", false, "print the result as JSON")
	return cmd
}

func newResolveCmd(root *rootOptions) *cobra.Command {
	var asJSON bool

	cmd := &cobra.Command{
		Use:   "resolve <word>",
		Short: "Show which mood category a word maps to",
		Args:  cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			ctx := cmd.Context()

			a, err := newResolverApp(ctx, root.cfg)
			if err != nil {
				return err
			}
			defer a.Close()

			r := a.resolver.Resolve(ctx, args[0])
			if asJSON {
				return json.NewEncoder(cmd.OutOrStdout()).Encode(r)
			}
			renderResolution(cmd.OutOrStdout(), r)
			return nil
		},
	}

	cmd.Flags().BoolVar(&asJSON, "json", false, "print the resolution as JSON")
	return cmd
}

func newServeCmd(root *rootOptions) *cobra.Command {
	return &cobra.Command{
		Use:   "serve",
		Short: "Serve the recommendation API over HTTP",
		Args:  cobra.NoArgs,
		RunE: func(cmd *cobra.Command, _ []string) error {
			ctx := cmd.Context()

			a, err := newApp(ctx, root.cfg)
			if err != nil {
				return err
			}
			defer a.Close()

			srv := root.cfg.Server
			server := web.NewServer(web.ServerConfig{
				Addr:         srv.Addr,
				RateLimit:    srv.RateLimit,
				ReadTimeout:  srv.ReadTimeout,
				WriteTimeout: srv.WriteTimeout,
			}, a.engine, a.resolver)

			return server.Run(ctx)
		},
	}
}
