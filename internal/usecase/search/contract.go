package search

import (
	"context"
	"time"

	"github.com/paperfind/paperfind/internal/domain/paper"
	"github.com/paperfind/paperfind/internal/domain/profile"
	"github.com/paperfind/paperfind/internal/domain/rating"
)

// PaperSource reads the research-paper tree.
type PaperSource interface {
	Snapshot(ctx context.Context) ([]paper.Paper, error)
	Watch(ctx context.Context, fn func()) error
}

// ProfileSource reads the user directory for author resolution.
type ProfileSource interface {
	Directory(ctx context.Context) (profile.Directory, error)
}

// RatingSource reads the joined ratings collection.
type RatingSource interface {
	Summaries(ctx context.Context) (rating.Summaries, error)
}

// TelemetrySink persists per-session search counters. Optional; a nil
// sink disables telemetry.
type TelemetrySink interface {
	RecordSearch(ctx context.Context, day, sessionID string, results int, fetch time.Duration) error
	RecordClick(ctx context.Context, day, sessionID string) error
}
