package db

import "time"

// TrackFeatures is a cached audio feature bundle for a track.
type TrackFeatures struct {
	TrackID      string
	Valence      float64
	Energy       float64
	Tempo        float64
	Danceability float64
	// Missing records that the catalog has no analysis for the track.
	Missing   bool
	FetchedAt time.Time
}
