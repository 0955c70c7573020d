package summarize

import (
	"context"
	"fmt"
	"strings"
	"testing"

	"github.com/pkg/errors"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/Jinu86/YouTube-summary-service/progress"
)

// fakeGenerator records prompts and answers with canned responses.
type fakeGenerator struct {
	prompts []string
	respond func(call int, prompt string) (string, error)
}

func (f *fakeGenerator) Generate(ctx context.Context, prompt string) (string, error) {
	call := len(f.prompts)
	f.prompts = append(f.prompts, prompt)
	if f.respond != nil {
		return f.respond(call, prompt)
	}
	return fmt.Sprintf("summary-%d", call), nil
}

func TestSummarizeInChunksCallCount(t *testing.T) {
	gen := &fakeGenerator{}
	engine := NewEngine(gen, 20, 0)

	text := "First sentence. Second sentence. Third sentence."
	wantChunks := len(Chunk(text, 20))

	_, err := engine.SummarizeInChunks(context.Background(), text, ModeKeyPoints, nil)
	require.NoError(t, err)

	// One call per chunk plus one reduction call.
	assert.Len(t, gen.prompts, wantChunks+1)
}

func TestSummarizeInChunksSingleChunkStillReduces(t *testing.T) {
	gen := &fakeGenerator{}
	engine := NewEngine(gen, 4000, 0)

	_, err := engine.SummarizeInChunks(context.Background(), "Short text.", ModeKeyPoints, nil)
	require.NoError(t, err)
	assert.Len(t, gen.prompts, 2)
}

func TestSummarizeInChunksReductionPrompt(t *testing.T) {
	gen := &fakeGenerator{}
	engine := NewEngine(gen, 20, 0)

	text := "First sentence. Second sentence. Third sentence."
	final, err := engine.SummarizeInChunks(context.Background(), text, ModeKeyPoints, nil)
	require.NoError(t, err)

	reduction := gen.prompts[len(gen.prompts)-1]
	assert.True(t, strings.HasPrefix(reduction, reductionHeader))

	// Reduction prompt carries every chunk summary, newline-joined, in order.
	chunkSummaries := make([]string, len(gen.prompts)-1)
	for i := range chunkSummaries {
		chunkSummaries[i] = fmt.Sprintf("summary-%d", i)
	}
	assert.Equal(t, reductionHeader+strings.Join(chunkSummaries, "\n"), reduction)

	// The final result is the reduction call's response.
	assert.Equal(t, fmt.Sprintf("summary-%d", len(gen.prompts)-1), final)
}

func TestSummarizeInChunksChunkFailureStopsRun(t *testing.T) {
	gen := &fakeGenerator{
		respond: func(call int, prompt string) (string, error) {
			if call == 1 {
				return "", errors.New("quota exceeded")
			}
			return "ok", nil
		},
	}
	engine := NewEngine(gen, 20, 0)

	text := "First sentence. Second sentence. Third sentence."
	_, err := engine.SummarizeInChunks(context.Background(), text, ModeKeyPoints, nil)
	require.Error(t, err)
	assert.Contains(t, err.Error(), "quota exceeded")
	// No reduction call after a chunk failure.
	assert.Len(t, gen.prompts, 2)
}

func TestSummarizeInChunksProgressOrder(t *testing.T) {
	gen := &fakeGenerator{}
	engine := NewEngine(gen, 20, 0)

	var events []progress.Event
	report := func(e progress.Event) { events = append(events, e) }

	text := "First sentence. Second sentence."
	_, err := engine.SummarizeInChunks(context.Background(), text, ModeKeywords, report)
	require.NoError(t, err)

	require.NotEmpty(t, events)
	assert.Equal(t, progress.StageChunking, events[0].Stage)
	assert.Equal(t, progress.StageReducing, events[len(events)-1].Stage)

	chunkEvents := 0
	for _, e := range events {
		assert.Equal(t, "keywords", e.Mode)
		if e.Stage == progress.StageSummarizing {
			chunkEvents++
			assert.Equal(t, chunkEvents, e.Current)
		}
	}
	assert.Equal(t, len(gen.prompts)-1, chunkEvents)
}

func TestBuildPromptPerMode(t *testing.T) {
	for _, mode := range AllModes() {
		prompt := BuildPrompt("CHUNK-TEXT", mode)
		assert.Contains(t, prompt, "CHUNK-TEXT")
		assert.Contains(t, prompt, "한국어", "every template targets Korean output")
	}

	assert.Contains(t, BuildPrompt("x", ModeKeyPoints), "3~5문장")
	assert.Contains(t, BuildPrompt("x", ModeTimeline), "00:00~02:30")
	assert.Contains(t, BuildPrompt("x", ModeKeywords), "키워드: 설명")
}
