package summarize

import (
	"github.com/pkg/errors"
)

// Mode is the closed set of summary output styles. Each mode carries its own
// prompt template and preferred transcript rendering; dispatch is by variant,
// never by display-string comparison.
type Mode int

const (
	ModeKeyPoints Mode = iota
	ModeTimeline
	ModeKeywords
)

type Rendering int

const (
	RenderPlain Rendering = iota
	RenderTimestamped
)

type modeInfo struct {
	key       string
	label     string
	template  string
	rendering Rendering
}

var modeTable = map[Mode]modeInfo{
	ModeKeyPoints: {key: "key_points", label: "핵심 요약", template: keyPointsTemplate, rendering: RenderPlain},
	ModeTimeline:  {key: "timeline", label: "타임라인 요약", template: timelineTemplate, rendering: RenderTimestamped},
	ModeKeywords:  {key: "keywords", label: "키워드 요약", template: keywordsTemplate, rendering: RenderPlain},
}

// AllModes returns every mode in a stable order.
func AllModes() []Mode {
	return []Mode{ModeKeyPoints, ModeTimeline, ModeKeywords}
}

// Key is the stable API identifier for the mode.
func (m Mode) Key() string { return modeTable[m].key }

// Label is the user-facing display name.
func (m Mode) Label() string { return modeTable[m].label }

// Rendering reports which transcript serialization the mode consumes.
func (m Mode) Rendering() Rendering { return modeTable[m].rendering }

func (m Mode) String() string { return modeTable[m].key }

// ParseMode maps an API identifier to a Mode. An unknown identifier is an
// error, not a silent fall-through.
func ParseMode(key string) (Mode, error) {
	for mode, info := range modeTable {
		if info.key == key {
			return mode, nil
		}
	}
	return 0, errors.Errorf("unknown summary mode: %q", key)
}
