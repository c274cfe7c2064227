package embed

import (
	"bufio"
	"context"
	"fmt"
	"io"
	"os"
	"strconv"
	"strings"
)

// Table is a static word-vector table in GloVe text format: one word per
// line followed by its space-separated components.
type Table struct {
	dim     int
	vectors map[string][]float32
}

// LoadTable reads a GloVe-format file.
func LoadTable(path string) (*Table, error) {
	f, err := os.Open(path)
	if err != nil {
		return nil, fmt.Errorf("opening word vectors: %w", err)
	}
	defer f.Close()

	t, err := ReadTable(f)
	if err != nil {
		return nil, fmt.Errorf("reading word vectors %s: %w", path, err)
	}
	return t, nil
}

// ReadTable parses GloVe-format vectors from r. Every line must have the
// same number of components. Blank lines are skipped.
func ReadTable(r io.Reader) (*Table, error) {
	t := &Table{vectors: make(map[string][]float32)}

	sc := bufio.NewScanner(r)
	sc.Buffer(make([]byte, 64*1024), 1024*1024)

	line := 0
	for sc.Scan() {
		line++
		fields := strings.Fields(sc.Text())
		if len(fields) == 0 {
			continue
		}
		if len(fields) < 2 {
			return nil, fmt.Errorf("line %d: word without vector", line)
		}

		vec := make([]float32, len(fields)-1)
		for i, s := range fields[1:] {
			x, err := strconv.ParseFloat(s, 32)
			if err != nil {
				return nil, fmt.Errorf("line %d: component %d: %w", line, i+1, err)
			}
			vec[i] = float32(x)
		}

		if t.dim == 0 {
			t.dim = len(vec)
		} else if len(vec) != t.dim {
			return nil, fmt.Errorf("line %d: %d components, want %d", line, len(vec), t.dim)
		}

		t.vectors[strings.ToLower(fields[0])] = vec
	}
	if err := sc.Err(); err != nil {
		return nil, err
	}
	return t, nil
}

// Len returns the number of words in the table.
func (t *Table) Len() int { return len(t.vectors) }

// Dim returns the vector dimension.
func (t *Table) Dim() int { return t.dim }

// Embed returns the vector for text. Multi-word text averages the vectors
// of its known words. ErrNoVector is returned when no word is known.
func (t *Table) Embed(_ context.Context, text string) ([]float32, error) {
	var sum []float32
	n := 0
	for _, w := range strings.Fields(strings.ToLower(text)) {
		v, ok := t.vectors[w]
		if !ok {
			continue
		}
		if sum == nil {
			sum = make([]float32, t.dim)
		}
		for i, x := range v {
			sum[i] += x
		}
		n++
	}
	if n == 0 {
		return nil, ErrNoVector
	}

	for i := range sum {
		sum[i] /= float32(n)
	}
	return sum, nil
}
