package summarize

import (
	"context"

	"github.com/pkg/errors"
	"github.com/sirupsen/logrus"
	"golang.org/x/time/rate"

	"github.com/Jinu86/YouTube-summary-service/progress"
)

// TextGenerator is the external generative-text service: one prompt in, one
// response out. Implementations must not retry internally; the caller owns
// failure policy.
type TextGenerator interface {
	Generate(ctx context.Context, prompt string) (string, error)
}

// Engine turns rendered transcript text into summaries via a TextGenerator.
type Engine struct {
	generator TextGenerator
	limiter   *rate.Limiter
	chunkSize int
}

func NewEngine(generator TextGenerator, chunkSize int, callsPerMin int) *Engine {
	if chunkSize <= 0 {
		chunkSize = DefaultChunkSize
	}
	var limiter *rate.Limiter
	if callsPerMin > 0 {
		limiter = rate.NewLimiter(rate.Limit(float64(callsPerMin)/60.0), 1)
	}
	return &Engine{
		generator: generator,
		limiter:   limiter,
		chunkSize: chunkSize,
	}
}

// generate paces and issues a single model call.
func (e *Engine) generate(ctx context.Context, prompt string) (string, error) {
	if e.limiter != nil {
		if err := e.limiter.Wait(ctx); err != nil {
			return "", errors.Wrap(err, "rate limit wait")
		}
	}
	return e.generator.Generate(ctx, prompt)
}

// SummarizeInChunks splits fullText, summarizes each chunk in order, then
// issues one reduction call that merges the per-chunk summaries. That makes
// exactly len(chunks)+1 model calls; a single-chunk transcript still gets
// the reduction pass, matching the per-chunk prompt's shape constraints.
func (e *Engine) SummarizeInChunks(ctx context.Context, fullText string, mode Mode, report progress.Func) (string, error) {
	if report == nil {
		report = progress.Nop
	}

	report(progress.Event{Stage: progress.StageChunking, Mode: mode.Key()})
	chunks := Chunk(fullText, e.chunkSize)

	summaries := make([]string, 0, len(chunks))
	for i, chunk := range chunks {
		report(progress.Event{
			Stage:   progress.StageSummarizing,
			Mode:    mode.Key(),
			Current: i + 1,
			Total:   len(chunks),
		})
		logrus.WithFields(logrus.Fields{
			"mode":  mode.Key(),
			"chunk": i + 1,
			"total": len(chunks),
		}).Info("Summarizing chunk")

		summary, err := e.generate(ctx, BuildPrompt(chunk, mode))
		if err != nil {
			return "", errors.Wrapf(err, "summarize chunk %d/%d", i+1, len(chunks))
		}
		summaries = append(summaries, summary)
	}

	report(progress.Event{Stage: progress.StageReducing, Mode: mode.Key()})
	final, err := e.generate(ctx, BuildReductionPrompt(summaries))
	if err != nil {
		return "", errors.Wrap(err, "reduce summaries")
	}
	return final, nil
}
