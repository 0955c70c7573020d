package handlers

import (
	"context"
	"encoding/json"
	"fmt"
	"net/http"
	"strings"
	"sync"

	stderrors "errors"

	"github.com/sirupsen/logrus"
	"golang.org/x/time/rate"

	"github.com/Jinu86/YouTube-summary-service/config"
	"github.com/Jinu86/YouTube-summary-service/db"
	"github.com/Jinu86/YouTube-summary-service/progress"
	"github.com/Jinu86/YouTube-summary-service/speech"
	"github.com/Jinu86/YouTube-summary-service/summarize"
	"github.com/Jinu86/YouTube-summary-service/utils"
	"github.com/Jinu86/YouTube-summary-service/validation"
	"github.com/Jinu86/YouTube-summary-service/youtube"
)

var (
	cfg           *config.Config
	rateLimiter   *rate.Limiter
	engine        *summarize.Engine
	captionClient *youtube.Client
	speechService *speech.Service

	videoLocks sync.Map
)

type videoLock struct {
	mu sync.Mutex
}

func getVideoLock(videoID string) *videoLock {
	lock, _ := videoLocks.LoadOrStore(videoID, &videoLock{})
	return lock.(*videoLock)
}

// InitHandlers wires the handler package's collaborators. The generator is
// injected so tests can substitute a fake for the live model service.
func InitHandlers(config *config.Config, generator summarize.TextGenerator) {
	cfg = config
	rateLimiter = rate.NewLimiter(rate.Every(cfg.RateLimitInterval), cfg.RateLimit)
	engine = summarize.NewEngine(generator, cfg.ChunkSize, cfg.ModelCallsPerMin)
	captionClient = youtube.NewClient()
	if cfg.SpeechFallback {
		speechService = speech.NewService(cfg.SpeechScriptPath, cfg.SpeechTimeout)
	} else {
		speechService = nil
	}
}

type summarizeResponse struct {
	VideoID   string            `json:"video_id"`
	Language  string            `json:"language,omitempty"`
	Summaries map[string]string `json:"summaries"`
	Errors    map[string]string `json:"errors,omitempty"`
}

func SummarizeHandler(w http.ResponseWriter, r *http.Request) {
	logrus.WithFields(logrus.Fields{
		"method": r.Method,
		"path":   r.URL.Path,
	}).Info("Received request")

	if r.Method != http.MethodPost {
		utils.HandleError(w, "Invalid request method", http.StatusMethodNotAllowed)
		return
	}

	url := r.FormValue("url")
	if err := validation.ValidateURL(url); err != nil {
		utils.HandleError(w, err.Error(), http.StatusBadRequest)
		logrus.WithError(err).Error("URL validation failed")
		return
	}

	modes, err := parseModes(r.FormValue("modes"))
	if err != nil {
		utils.HandleError(w, err.Error(), http.StatusBadRequest)
		logrus.WithError(err).Error("Mode validation failed")
		return
	}

	if !rateLimiter.Allow() {
		utils.HandleError(w, "Rate limit exceeded", http.StatusTooManyRequests)
		logrus.WithField("url", url).Error("Rate limit exceeded")
		return
	}

	videoID, ok := youtube.ExtractVideoID(url)
	if !ok {
		utils.HandleError(w, "No video ID found in URL", http.StatusBadRequest)
		logrus.WithField("url", url).Error("Video ID extraction failed")
		return
	}

	ctx, cancel := context.WithTimeout(r.Context(), cfg.SummarizeTimeout)
	defer cancel()

	lock := getVideoLock(videoID)
	lock.mu.Lock()
	defer lock.mu.Unlock()

	entries, language, err := acquireTranscript(ctx, videoID)
	if err != nil {
		handleAcquisitionError(w, videoID, err)
		return
	}

	resp := summarizeResponse{
		VideoID:   videoID,
		Language:  language,
		Summaries: make(map[string]string, len(modes)),
	}

	// Serve cached summaries; only the remaining modes hit the model.
	pending := make([]summarize.Mode, 0, len(modes))
	for _, mode := range modes {
		cached, err := db.GetSummary(ctx, videoID, mode.Key(), cfg.ModelName)
		if err != nil {
			logrus.WithError(err).WithField("video_id", videoID).Error("Failed to read summary cache")
		}
		if cached != "" {
			logrus.WithFields(logrus.Fields{
				"video_id": videoID,
				"mode":     mode.Key(),
			}).Info("Summary cache hit")
			resp.Summaries[mode.Key()] = cached
			continue
		}
		pending = append(pending, mode)
	}

	if len(pending) > 0 {
		result := engine.Run(ctx, entries, pending, logProgress(videoID))

		for mode, summary := range result.Summaries {
			resp.Summaries[mode.Key()] = summary
			if err := db.SetSummary(ctx, videoID, mode.Key(), cfg.ModelName, summary); err != nil {
				logrus.WithError(err).WithFields(logrus.Fields{
					"video_id": videoID,
					"mode":     mode.Key(),
				}).Error("Failed to cache summary")
			}
		}
		if len(result.Errors) > 0 {
			resp.Errors = make(map[string]string, len(result.Errors))
			for mode := range result.Errors {
				// Cause stays in the logs; the user gets a generic per-mode message.
				resp.Errors[mode.Key()] = fmt.Sprintf("summary generation failed for %s, please retry", mode.Label())
			}
		}
	}

	if ctx.Err() != nil {
		utils.HandleError(w, "Request timed out", http.StatusGatewayTimeout)
		logrus.WithError(ctx.Err()).Error("Context cancelled before sending response")
		return
	}

	w.Header().Set("Content-Type", "application/json")
	if err := json.NewEncoder(w).Encode(resp); err != nil {
		logrus.WithError(err).Error("Failed to encode JSON response")
		return
	}
	logrus.WithField("video_id", videoID).Info("Summarization request completed")
}

// acquireTranscript returns the transcript entries for a video, from cache
// when possible, otherwise from the caption pipeline, with the speech
// fallback as a last resort for videos without captions.
func acquireTranscript(ctx context.Context, videoID string) ([]youtube.TranscriptEntry, string, error) {
	cached, language, err := db.GetTranscript(ctx, videoID)
	if err != nil {
		logrus.WithError(err).WithField("video_id", videoID).Error("Failed to read transcript cache")
	}
	if cached != "" {
		var entries []youtube.TranscriptEntry
		if jsonErr := json.Unmarshal([]byte(cached), &entries); jsonErr == nil {
			logrus.WithField("video_id", videoID).Info("Transcript cache hit")
			return entries, language, nil
		} else {
			logrus.WithError(jsonErr).WithField("video_id", videoID).Warn("Discarding unreadable cached transcript")
		}
	}

	entries, language, err := captionClient.GetTranscript(ctx, videoID, cfg.LanguagePriority, logProgress(videoID))
	if err != nil {
		if speechService != nil && stderrors.Is(err, youtube.ErrNoCaptions) {
			text, speechErr := speechService.Transcribe(ctx, videoID)
			if speechErr != nil {
				logrus.WithError(speechErr).WithField("video_id", videoID).Error("Speech fallback failed")
				return nil, "", err
			}
			entries = []youtube.TranscriptEntry{{Start: 0, Text: text}}
			language = ""
		} else {
			return nil, "", err
		}
	}

	if encoded, err := json.Marshal(entries); err == nil {
		if err := db.SetTranscript(ctx, videoID, language, string(encoded)); err != nil {
			logrus.WithError(err).WithField("video_id", videoID).Error("Failed to cache transcript")
		}
	}
	return entries, language, nil
}

func handleAcquisitionError(w http.ResponseWriter, videoID string, err error) {
	logrus.WithError(err).WithField("video_id", videoID).Error("Transcript acquisition failed")

	switch {
	case stderrors.Is(err, youtube.ErrNoCompatibleTrack):
		// Property of the content, not a failure.
		utils.HandleError(w, "This video cannot be summarized: no captions in a supported language", http.StatusUnprocessableEntity)
	case stderrors.Is(err, youtube.ErrVideoUnavailable):
		utils.HandleError(w, "This video is unavailable", http.StatusNotFound)
	default:
		// ErrNoCaptions, listing failures, and fetch failures are identical
		// to the caller: no transcript, nothing to summarize.
		utils.HandleError(w, "No transcript is available for this video", http.StatusNotFound)
	}
}

func ExportHandler(w http.ResponseWriter, r *http.Request) {
	if r.Method != http.MethodGet {
		utils.HandleError(w, "Invalid request method", http.StatusMethodNotAllowed)
		return
	}

	videoID := r.URL.Query().Get("video_id")
	modeKey := r.URL.Query().Get("mode")
	if videoID == "" || modeKey == "" {
		utils.HandleError(w, "video_id and mode are required", http.StatusBadRequest)
		return
	}

	mode, err := summarize.ParseMode(modeKey)
	if err != nil {
		utils.HandleError(w, err.Error(), http.StatusBadRequest)
		return
	}

	summary, err := db.GetSummary(r.Context(), videoID, mode.Key(), cfg.ModelName)
	if err != nil {
		utils.HandleError(w, "Failed to load summary", http.StatusInternalServerError)
		logrus.WithError(err).Error("Failed to load summary for export")
		return
	}
	if summary == "" {
		utils.HandleError(w, "No summary found", http.StatusNotFound)
		return
	}

	w.Header().Set("Content-Type", "text/plain; charset=utf-8")
	w.Header().Set("Content-Disposition", fmt.Sprintf("attachment; filename=%q", mode.Key()+".txt"))
	fmt.Fprint(w, summary)
}

func HealthCheckHandler(w http.ResponseWriter, r *http.Request) {
	w.Header().Set("Content-Type", "application/json")
	json.NewEncoder(w).Encode(map[string]string{"status": "ok"})
}

func parseModes(raw string) ([]summarize.Mode, error) {
	raw = strings.TrimSpace(raw)
	if raw == "" {
		return nil, &validation.ValidationError{Message: "at least one summary mode is required"}
	}

	keys := strings.Split(raw, ",")
	for i := range keys {
		keys[i] = strings.TrimSpace(keys[i])
	}
	if err := validation.ValidateModes(keys); err != nil {
		return nil, err
	}

	modes := make([]summarize.Mode, 0, len(keys))
	for _, key := range keys {
		mode, err := summarize.ParseMode(key)
		if err != nil {
			return nil, err
		}
		modes = append(modes, mode)
	}
	return modes, nil
}

// logProgress surfaces pipeline progress events in the request log.
func logProgress(videoID string) progress.Func {
	return func(e progress.Event) {
		fields := logrus.Fields{
			"video_id": videoID,
			"stage":    string(e.Stage),
		}
		if e.Mode != "" {
			fields["mode"] = e.Mode
		}
		if e.Total > 0 {
			fields["chunk"] = fmt.Sprintf("%d/%d", e.Current, e.Total)
		}
		logrus.WithFields(fields).Info("Pipeline progress")
	}
}
