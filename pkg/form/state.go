package form

import (
	"math"

	"github.com/goliatone/go-surveyform/pkg/avatar"
	"github.com/goliatone/go-surveyform/pkg/labels"
)

// Age bounds and default.
const (
	MinAge     = 1.0
	MaxAge     = 100.0
	DefaultAge = 25.0
)

// State is the mutable field set behind the form.
type State struct {
	Name       string            `json:"name"`
	Age        float64           `json:"age"`
	Gender     string            `json:"gender"`
	Subscribed bool              `json:"subscribed"`
	Avatar     *avatar.Reference `json:"avatar,omitempty"`
	Summary    string            `json:"summary,omitempty"`
}

// Snapshot is a point-in-time copy of State plus derived values.
type Snapshot struct {
	State
	SessionID  string        `json:"sessionId"`
	Valid      bool          `json:"valid"`
	DisplayAge int           `json:"displayAge"`
	NameError  string        `json:"nameError,omitempty"`
	Labels     labels.Labels `json:"-"`
}

// HasSummary reports whether a submit has succeeded.
func (s Snapshot) HasSummary() bool {
	return s.Summary != ""
}

// AgeLabel renders the localized age caption for the displayed age.
func (s Snapshot) AgeLabel() string {
	return s.Labels.AgeLabel(s.DisplayAge)
}

func (s State) clone() State {
	s.Avatar = s.Avatar.Clone()
	return s
}

// ClampAge constrains value to [MinAge, MaxAge].
func ClampAge(value float64) float64 {
	return math.Min(MaxAge, math.Max(MinAge, value))
}

// RoundAge is the whole-number age shown next to the slider.
func RoundAge(value float64) int {
	return int(math.Round(value))
}

// TruncateAge is the whole-number age used in the summary.
func TruncateAge(value float64) int {
	return int(value)
}
