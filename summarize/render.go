package summarize

import (
	"fmt"
	"strings"

	"github.com/Jinu86/YouTube-summary-service/utils"
	"github.com/Jinu86/YouTube-summary-service/youtube"
)

// RenderTranscript serializes transcript entries for a mode's rendering:
// plain entries joined by single spaces, or one "[MM:SS] text" line per
// entry for timestamped modes.
func RenderTranscript(entries []youtube.TranscriptEntry, rendering Rendering) string {
	if rendering == RenderTimestamped {
		var sb strings.Builder
		for _, e := range entries {
			fmt.Fprintf(&sb, "[%s] %s\n", utils.FormatTimestamp(e.Start), e.Text)
		}
		return sb.String()
	}

	texts := make([]string, 0, len(entries))
	for _, e := range entries {
		texts = append(texts, e.Text)
	}
	return strings.Join(texts, " ")
}
