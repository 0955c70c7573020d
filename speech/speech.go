// Package speech is the alternate acquisition path for videos without
// captions. It shells out to an external speech-to-text script that downloads
// the audio, sends it to a speech-recognition service, and writes the
// transcript to a temp file whose name it prints as its last output line.
package speech

import (
	"context"
	"math"
	"math/rand"
	"os"
	"os/exec"
	"strings"
	"time"

	"github.com/pkg/errors"
	"github.com/sirupsen/logrus"
)

type Service struct {
	ScriptPath string
	Timeout    time.Duration

	// Injection points for tests.
	ExecuteScriptFunc func(ctx context.Context, videoID string) ([]byte, error)
	ReadFileFunc      func(filename string) (string, error)
	RemoveFileFunc    func(filename string) error
}

func NewService(scriptPath string, timeout time.Duration) *Service {
	s := &Service{
		ScriptPath: scriptPath,
		Timeout:    timeout,
	}
	s.ExecuteScriptFunc = s.executeScript
	s.ReadFileFunc = func(filename string) (string, error) {
		content, err := os.ReadFile(filename)
		return string(content), err
	}
	s.RemoveFileFunc = os.Remove
	return s
}

func (s *Service) executeScript(ctx context.Context, videoID string) ([]byte, error) {
	cmd := exec.CommandContext(ctx, "uv", "run", s.ScriptPath, videoID)
	return cmd.CombinedOutput()
}

// Transcribe runs the speech-to-text script with retries and returns the
// transcript text. The temp file the script produces is removed on every
// exit path, success or failure.
func (s *Service) Transcribe(ctx context.Context, videoID string) (string, error) {
	logrus.WithField("video_id", videoID).Info("Starting speech-to-text fallback")

	const (
		maxRetries     = 3
		initialBackoff = 2 * time.Second
		maxBackoff     = 30 * time.Second
		backoffFactor  = 2.0
	)

	ctx, cancel := context.WithTimeout(ctx, s.Timeout)
	defer cancel()

	var (
		output []byte
		err    error
	)

	for attempt := 1; attempt <= maxRetries; attempt++ {
		output, err = s.ExecuteScriptFunc(ctx, videoID)
		if err == nil {
			break
		}

		logrus.WithFields(logrus.Fields{
			"video_id": videoID,
			"attempt":  attempt,
			"output":   string(output),
		}).WithError(err).Error("Speech script failed")

		backoff := time.Duration(float64(initialBackoff) * math.Pow(backoffFactor, float64(attempt-1)))
		if backoff > maxBackoff {
			backoff = maxBackoff
		}

		select {
		case <-time.After(backoff + time.Duration(rand.Int63n(int64(backoff/2)))):
		case <-ctx.Done():
			return "", errors.Wrap(ctx.Err(), "context cancelled during transcription")
		}
	}

	if err != nil {
		return "", errors.Wrapf(err, "speech script failed after %d attempts: %s", maxRetries, output)
	}

	lines := strings.Split(strings.TrimSpace(string(output)), "\n")
	filename := lines[len(lines)-1]
	defer func() {
		if err := s.RemoveFileFunc(filename); err != nil {
			logrus.WithError(err).WithField("file", filename).Error("Failed to remove temp transcript file")
		}
	}()

	text, err := s.ReadFileFunc(filename)
	if err != nil {
		return "", errors.Wrapf(err, "read transcript file %s", filename)
	}
	if strings.TrimSpace(text) == "" {
		return "", errors.New("speech recognition produced empty transcript")
	}

	logrus.WithField("video_id", videoID).Info("Speech-to-text fallback completed")
	return text, nil
}
