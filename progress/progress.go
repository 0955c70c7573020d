// Package progress carries incremental status events out of long multi-call
// operations, so callers can surface them without sharing a display handle.
package progress

type Stage string

const (
	StageListing     Stage = "listing_captions"
	StageFetching    Stage = "fetching_captions"
	StageChunking    Stage = "chunking"
	StageSummarizing Stage = "summarizing"
	StageReducing    Stage = "reducing"
	StageDone        Stage = "done"
)

// Event describes one step of a pipeline run. Current and Total are only
// meaningful for the per-chunk summarizing stage.
type Event struct {
	Stage   Stage
	Mode    string
	Current int
	Total   int
}

// Func receives progress events. Implementations must not block.
type Func func(Event)

// Nop discards events.
func Nop(Event) {}
