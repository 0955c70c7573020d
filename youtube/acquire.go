package youtube

import (
	"context"

	"github.com/pkg/errors"
	"github.com/sirupsen/logrus"

	"github.com/Jinu86/YouTube-summary-service/progress"
)

// GetTranscript lists the caption tracks for a video, selects the best one
// under the language priority list, and fetches it. There is no retry: a
// fetch failure and a video with no captions are the same outcome for the
// caller: no transcript, nothing to summarize.
func (c *Client) GetTranscript(ctx context.Context, videoID string, priority []string, report progress.Func) ([]TranscriptEntry, string, error) {
	if report == nil {
		report = progress.Nop
	}

	report(progress.Event{Stage: progress.StageListing})
	tracks, err := c.ListTracks(ctx, videoID)
	if err != nil {
		return nil, "", err
	}

	track, err := SelectTrack(tracks, priority)
	if err != nil {
		logrus.WithFields(logrus.Fields{
			"video_id":  videoID,
			"available": Languages(tracks),
			"priority":  priority,
		}).Warn("No caption track in a supported language")
		return nil, "", err
	}

	logrus.WithFields(logrus.Fields{
		"video_id": videoID,
		"language": track.LanguageCode,
		"auto":     track.AutoGenerated,
	}).Info("Fetching caption track")

	report(progress.Event{Stage: progress.StageFetching})
	entries, err := c.FetchTrack(ctx, track)
	if err != nil {
		return nil, "", errors.Wrapf(err, "fetch %s track", track.LanguageCode)
	}
	if len(entries) == 0 {
		return nil, "", errors.Errorf("empty %s caption track", track.LanguageCode)
	}
	return entries, track.LanguageCode, nil
}
