package summarize

import (
	"context"

	"github.com/sirupsen/logrus"

	"github.com/Jinu86/YouTube-summary-service/progress"
	"github.com/Jinu86/YouTube-summary-service/youtube"
)

// Result holds per-mode outcomes of one pipeline run. A failed mode appears
// in Errors and never removes or blocks another mode's entry in Summaries.
type Result struct {
	Summaries map[Mode]string
	Errors    map[Mode]error
}

// Run drives rendering, chunking, per-chunk summarization and reduction once
// per requested mode, strictly sequentially. Modes are independent: each gets
// its own rendering and chunk sequence, and one mode's failure is scoped to
// that mode alone.
func (e *Engine) Run(ctx context.Context, entries []youtube.TranscriptEntry, modes []Mode, report progress.Func) Result {
	if report == nil {
		report = progress.Nop
	}

	result := Result{
		Summaries: make(map[Mode]string, len(modes)),
		Errors:    make(map[Mode]error),
	}

	for _, mode := range modes {
		rendered := RenderTranscript(entries, mode.Rendering())

		summary, err := e.SummarizeInChunks(ctx, rendered, mode, report)
		if err != nil {
			logrus.WithError(err).WithField("mode", mode.Key()).Error("Summarization failed")
			result.Errors[mode] = err
			continue
		}

		result.Summaries[mode] = summary
		report(progress.Event{Stage: progress.StageDone, Mode: mode.Key()})
	}

	return result
}
