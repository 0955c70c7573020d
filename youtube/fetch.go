package youtube

import (
	"context"
	"encoding/xml"
	"html"
	"io"
	"net/http"
	"strings"

	"github.com/pkg/errors"
)

type timedText struct {
	Lines []timedTextLine `xml:"text"`
}

type timedTextLine struct {
	Start float64 `xml:"start,attr"`
	Dur   float64 `xml:"dur,attr"`
	Text  string  `xml:",chardata"`
}

// FetchTrack downloads a caption track's timedtext XML and returns the timed
// entries in chronological order. Empty lines are dropped.
func (c *Client) FetchTrack(ctx context.Context, track CaptionTrack) ([]TranscriptEntry, error) {
	req, err := http.NewRequestWithContext(ctx, http.MethodGet, track.BaseURL, nil)
	if err != nil {
		return nil, errors.Wrap(err, "build timedtext request")
	}
	req.Header.Set("User-Agent", desktopUserAgent)

	resp, err := c.HTTPClient.Do(req)
	if err != nil {
		return nil, errors.Wrap(err, "fetch timedtext")
	}
	defer resp.Body.Close()

	if resp.StatusCode != http.StatusOK {
		return nil, errors.Errorf("timedtext status %d", resp.StatusCode)
	}

	body, err := io.ReadAll(io.LimitReader(resp.Body, 512*1024))
	if err != nil {
		return nil, errors.Wrap(err, "read timedtext")
	}

	var tt timedText
	if err := xml.Unmarshal(body, &tt); err != nil {
		return nil, errors.Wrap(err, "parse timedtext XML")
	}

	entries := make([]TranscriptEntry, 0, len(tt.Lines))
	for _, line := range tt.Lines {
		text := strings.TrimSpace(html.UnescapeString(line.Text))
		if text == "" {
			continue
		}
		entries = append(entries, TranscriptEntry{Start: line.Start, Text: text})
	}
	return entries, nil
}
