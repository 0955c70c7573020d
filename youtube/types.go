package youtube

import (
	"net/http"
	"time"

	"github.com/pkg/errors"
)

// TranscriptEntry is one timed caption line. Entries are immutable once
// fetched and ordered by start offset.
type TranscriptEntry struct {
	Start float64 `json:"start"`
	Text  string  `json:"text"`
}

// CaptionTrack is a lazy handle to one language's captions. Listing a track
// does not fetch it; fetching can fail independently.
type CaptionTrack struct {
	LanguageCode  string
	Name          string
	BaseURL       string
	AutoGenerated bool
}

var (
	// ErrUnavailable means the caption listing could not be obtained at all
	// (network failure, blocked response). The cause is preserved in the wrap.
	ErrUnavailable = errors.New("caption listing unavailable")

	// ErrVideoUnavailable means YouTube refused to play the video.
	ErrVideoUnavailable = errors.New("video unavailable")

	// ErrNoCaptions means the video exists but has no caption tracks at all.
	ErrNoCaptions = errors.New("no captions available")

	// ErrNoCompatibleTrack means captions exist, but none match the
	// configured language priority list.
	ErrNoCompatibleTrack = errors.New("no compatible caption track")
)

// unavailableError tags a listing failure as ErrUnavailable while keeping the
// real cause on the chain, so errors.Is matches both the category and the
// underlying error (context.DeadlineExceeded, net errors).
type unavailableError struct {
	op    string
	cause error
}

func (e *unavailableError) Error() string        { return e.op + ": " + e.cause.Error() }
func (e *unavailableError) Unwrap() error        { return e.cause }
func (e *unavailableError) Is(target error) bool { return target == ErrUnavailable }

func unavailable(op string, cause error) error {
	return &unavailableError{op: op, cause: cause}
}

const defaultWatchBase = "https://www.youtube.com/watch?v="

// Client lists and fetches caption tracks.
type Client struct {
	HTTPClient *http.Client
	WatchBase  string
}

func NewClient() *Client {
	return &Client{
		HTTPClient: &http.Client{Timeout: 30 * time.Second},
		WatchBase:  defaultWatchBase,
	}
}
