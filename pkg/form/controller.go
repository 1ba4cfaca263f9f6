package form

import (
	"fmt"
	"math"
	"sort"
	"strings"
	"sync"

	"github.com/google/uuid"
	"go.uber.org/zap"

	"github.com/goliatone/go-surveyform/pkg/avatar"
	"github.com/goliatone/go-surveyform/pkg/labels"
)

// Observer is invoked with a fresh snapshot after every mutation.
type Observer func(Snapshot)

// Controller owns the form state. It is safe for concurrent use; observers
// run outside the internal lock, in registration order.
type Controller struct {
	mu        sync.RWMutex
	state     State
	labels    labels.Labels
	sessionID string
	logger    *zap.Logger

	observers    map[int]Observer
	nextObserver int
}

// New creates a controller with default field values: empty name, age 25,
// the first gender option, not subscribed, no avatar and no summary.
func New(l labels.Labels, options ...Option) (*Controller, error) {
	if err := checkLabels(l); err != nil {
		return nil, err
	}

	c := &Controller{
		labels: l.Clone(),
		state: State{
			Age:    DefaultAge,
			Gender: l.GenderOptions[0],
		},
		logger:    zap.NewNop(),
		observers: make(map[int]Observer),
	}
	for _, opt := range options {
		if opt != nil {
			opt(c)
		}
	}
	if c.sessionID == "" {
		c.sessionID = uuid.NewString()
	}
	c.logger = c.logger.With(zap.String("session", c.sessionID))
	return c, nil
}

// SessionID identifies this form instance in logs and snapshots.
func (c *Controller) SessionID() string {
	return c.sessionID
}

// Labels returns the label bundle currently in use.
func (c *Controller) Labels() labels.Labels {
	c.mu.RLock()
	defer c.mu.RUnlock()
	return c.labels.Clone()
}

// State returns a copy of the current field values.
func (c *Controller) State() State {
	c.mu.RLock()
	defer c.mu.RUnlock()
	return c.state.clone()
}

// Snapshot returns the current state with derived values.
func (c *Controller) Snapshot() Snapshot {
	c.mu.RLock()
	defer c.mu.RUnlock()
	return c.snapshotLocked()
}

// SetName replaces the name verbatim.
func (c *Controller) SetName(name string) {
	c.mutate("name", func(s *State) bool {
		if s.Name == name {
			return false
		}
		s.Name = name
		return true
	})
}

// SetAge stores value clamped to [MinAge, MaxAge]. NaN is ignored.
func (c *Controller) SetAge(value float64) {
	if math.IsNaN(value) {
		c.logger.Debug("ignoring NaN age")
		return
	}
	clamped := ClampAge(value)
	c.mutate("age", func(s *State) bool {
		if s.Age == clamped {
			return false
		}
		s.Age = clamped
		return true
	})
}

// SetGender selects one of the configured gender labels.
func (c *Controller) SetGender(label string) error {
	var err error
	c.mutate("gender", func(s *State) bool {
		if !c.labels.HasGender(label) {
			err = fmt.Errorf("%w: %q (known: %s)", ErrUnknownGender, label, strings.Join(c.labels.GenderOptions, ", "))
			return false
		}
		if s.Gender == label {
			return false
		}
		s.Gender = label
		return true
	})
	return err
}

// SetSubscribed replaces the subscription flag.
func (c *Controller) SetSubscribed(subscribed bool) {
	c.mutate("subscribed", func(s *State) bool {
		if s.Subscribed == subscribed {
			return false
		}
		s.Subscribed = subscribed
		return true
	})
}

// SetAvatar replaces the avatar reference; nil clears it.
func (c *Controller) SetAvatar(ref *avatar.Reference) {
	ref = ref.Clone()
	c.mutate("avatar", func(s *State) bool {
		if s.Avatar == nil && ref == nil {
			return false
		}
		s.Avatar = ref
		return true
	})
}

// ApplyAvatarResult is the completion handler for an avatar.Launcher. A
// reference or a cancellation replaces the avatar; a picker error leaves the
// state untouched.
func (c *Controller) ApplyAvatarResult(res avatar.Result) {
	if res.Err != nil {
		c.logger.Debug("avatar pick failed, keeping current avatar", zap.Error(res.Err))
		return
	}
	c.SetAvatar(res.Reference)
}

// IsValid reports whether the name has non-whitespace content.
func (c *Controller) IsValid() bool {
	c.mu.RLock()
	defer c.mu.RUnlock()
	return validName(c.state.Name)
}

// NameError returns the inline validation message while the form is
// invalid, and an empty string otherwise.
func (c *Controller) NameError() string {
	c.mu.RLock()
	defer c.mu.RUnlock()
	if validName(c.state.Name) {
		return ""
	}
	return c.labels.NameEmpty
}

// DisplayAge is the age rounded to the nearest whole number.
func (c *Controller) DisplayAge() int {
	c.mu.RLock()
	defer c.mu.RUnlock()
	return RoundAge(c.state.Age)
}

// Submit formats and stores the summary. It does nothing and returns false
// when the form is invalid.
func (c *Controller) Submit() (string, bool) {
	c.mu.Lock()
	if !validName(c.state.Name) {
		c.mu.Unlock()
		c.logger.Debug("submit ignored, name is blank")
		return "", false
	}

	summary := FormatSummary(c.labels, c.state)
	c.state.Summary = summary
	snap := c.snapshotLocked()
	observers := c.observersLocked()
	c.mu.Unlock()

	c.logger.Debug("form submitted",
		zap.Int("age", TruncateAge(snap.Age)),
		zap.String("gender", snap.Gender),
		zap.Bool("subscribed", snap.Subscribed),
		zap.Bool("avatar", snap.Avatar != nil),
	)
	notify(observers, snap)
	return summary, true
}

// SetLabels swaps the label bundle, e.g. after a locale change. The selected
// gender keeps its position in the option list; when the new list is shorter
// the first option is selected. The stored summary is not reformatted.
func (c *Controller) SetLabels(l labels.Labels) error {
	if err := checkLabels(l); err != nil {
		return err
	}
	l = l.Clone()

	c.mu.Lock()
	idx := c.labels.GenderIndex(c.state.Gender)
	if idx < 0 || idx >= len(l.GenderOptions) {
		idx = 0
	}
	c.labels = l
	c.state.Gender = l.GenderOptions[idx]
	snap := c.snapshotLocked()
	observers := c.observersLocked()
	c.mu.Unlock()

	c.logger.Debug("labels replaced", zap.String("locale", l.Locale))
	notify(observers, snap)
	return nil
}

func checkLabels(l labels.Labels) error {
	if len(l.GenderOptions) == 0 {
		return ErrNoGenderOptions
	}
	if !labels.HasVerb(l.SummaryTemplate) {
		return fmt.Errorf("%w: %q", ErrNoSummaryTemplate, l.SummaryTemplate)
	}
	return nil
}

// Subscribe registers an observer and returns a function that removes it.
func (c *Controller) Subscribe(fn Observer) func() {
	if fn == nil {
		return func() {}
	}
	c.mu.Lock()
	id := c.nextObserver
	c.nextObserver++
	c.observers[id] = fn
	c.mu.Unlock()

	var once sync.Once
	return func() {
		once.Do(func() {
			c.mu.Lock()
			delete(c.observers, id)
			c.mu.Unlock()
		})
	}
}

// FormatSummary fills the summary template with the name, the truncated age,
// the gender label and the subscription phrase.
func FormatSummary(l labels.Labels, s State) string {
	return fmt.Sprintf(l.SummaryTemplate, s.Name, TruncateAge(s.Age), s.Gender, l.SubscriptionPhrase(s.Subscribed))
}

func (c *Controller) mutate(field string, apply func(*State) bool) {
	c.mu.Lock()
	if !apply(&c.state) {
		c.mu.Unlock()
		return
	}
	snap := c.snapshotLocked()
	observers := c.observersLocked()
	c.mu.Unlock()

	c.logger.Debug("field updated", zap.String("field", field), zap.Bool("valid", snap.Valid))
	notify(observers, snap)
}

func (c *Controller) snapshotLocked() Snapshot {
	valid := validName(c.state.Name)
	snap := Snapshot{
		State:      c.state.clone(),
		SessionID:  c.sessionID,
		Valid:      valid,
		DisplayAge: RoundAge(c.state.Age),
		Labels:     c.labels.Clone(),
	}
	if !valid {
		snap.NameError = c.labels.NameEmpty
	}
	return snap
}

func (c *Controller) observersLocked() []Observer {
	if len(c.observers) == 0 {
		return nil
	}
	ids := make([]int, 0, len(c.observers))
	for id := range c.observers {
		ids = append(ids, id)
	}
	sort.Ints(ids)
	out := make([]Observer, 0, len(ids))
	for _, id := range ids {
		out = append(out, c.observers[id])
	}
	return out
}

func notify(observers []Observer, snap Snapshot) {
	for _, fn := range observers {
		fn(snap)
	}
}

func validName(name string) bool {
	return strings.TrimSpace(name) != ""
}
