package form_test

import (
	"errors"
	"fmt"
	"math"
	"sync"
	"testing"

	"github.com/google/go-cmp/cmp"

	"github.com/goliatone/go-surveyform/pkg/avatar"
	"github.com/goliatone/go-surveyform/pkg/form"
	"github.com/goliatone/go-surveyform/pkg/labels"
)

const summaryTemplate = "%[1]s|%[2]d|%[3]s|%[4]s"

func testLabels() labels.Labels {
	return labels.Labels{
		Locale:          "en",
		NameEmpty:       "Name must not be empty",
		AgeFormat:       "Age: %d",
		GenderOptions:   []string{"Male", "Female"},
		SubscriptionYes: "yes",
		SubscriptionNo:  "no",
		SummaryTemplate: summaryTemplate,
	}
}

func newController(t *testing.T, options ...form.Option) *form.Controller {
	t.Helper()
	c, err := form.New(testLabels(), options...)
	if err != nil {
		t.Fatalf("new controller: %v", err)
	}
	return c
}

func TestNew_Defaults(t *testing.T) {
	c := newController(t, form.WithSessionID("session-1"))

	want := form.State{Age: 25, Gender: "Male"}
	if diff := cmp.Diff(want, c.State()); diff != "" {
		t.Fatalf("default state mismatch (-want +got):\n%s", diff)
	}

	snap := c.Snapshot()
	if snap.Valid || snap.HasSummary() || snap.Avatar != nil {
		t.Fatalf("unexpected default snapshot %#v", snap)
	}
	if snap.NameError != "Name must not be empty" {
		t.Fatalf("expected inline name error, got %q", snap.NameError)
	}
	if snap.SessionID != "session-1" || c.SessionID() != "session-1" {
		t.Fatalf("unexpected session id %q", snap.SessionID)
	}
	if snap.AgeLabel() != "Age: 25" {
		t.Fatalf("unexpected age label %q", snap.AgeLabel())
	}
}

func TestNew_GeneratesSessionID(t *testing.T) {
	a := newController(t)
	b := newController(t)
	if a.SessionID() == "" || a.SessionID() == b.SessionID() {
		t.Fatalf("expected distinct generated session ids, got %q and %q", a.SessionID(), b.SessionID())
	}
}

func TestNew_RequiresGenderOptions(t *testing.T) {
	l := testLabels()
	l.GenderOptions = nil
	if _, err := form.New(l); !errors.Is(err, form.ErrNoGenderOptions) {
		t.Fatalf("expected ErrNoGenderOptions, got %v", err)
	}
}

func TestNew_RequiresSummaryTemplate(t *testing.T) {
	for _, tmpl := range []string{"", "result", "100%%"} {
		l := testLabels()
		l.SummaryTemplate = tmpl
		if _, err := form.New(l); !errors.Is(err, form.ErrNoSummaryTemplate) {
			t.Fatalf("template %q: expected ErrNoSummaryTemplate, got %v", tmpl, err)
		}
	}

	catalog := labels.NewCatalog(map[string]map[string]string{
		"en": {"gender_male": "Male", "gender_female": "Female"},
	})
	if _, err := form.New(labels.Resolve(catalog, "en", labels.ResolveOptions{})); !errors.Is(err, form.ErrNoSummaryTemplate) {
		t.Fatalf("expected missing result key to be rejected, got %v", err)
	}
}

func TestWithDefaultAge_Clamps(t *testing.T) {
	if got := newController(t, form.WithDefaultAge(500)).State().Age; got != 100 {
		t.Fatalf("expected clamped default age, got %v", got)
	}
	if got := newController(t, form.WithDefaultAge(math.NaN())).State().Age; got != 25 {
		t.Fatalf("expected NaN default to be ignored, got %v", got)
	}
}

func TestIsValid(t *testing.T) {
	cases := map[string]bool{
		"":        false,
		" ":       false,
		"\t\n  ":  false,
		"Anna":    true,
		"  Bob  ": true,
		"\u00a0x": true,
		"\u3000":  false,
	}
	c := newController(t)
	for name, want := range cases {
		c.SetName(name)
		if got := c.IsValid(); got != want {
			t.Fatalf("IsValid(%q) = %v, want %v", name, got, want)
		}
		if want && c.NameError() != "" {
			t.Fatalf("expected no name error for %q", name)
		}
	}
}

func TestSetName_Verbatim(t *testing.T) {
	c := newController(t)
	c.SetName("  Anna ")
	if got := c.State().Name; got != "  Anna " {
		t.Fatalf("expected name stored verbatim, got %q", got)
	}
}

func TestSetAge_Clamps(t *testing.T) {
	cases := []struct {
		in      float64
		want    float64
		display int
	}{
		{in: 0, want: 1, display: 1},
		{in: -40, want: 1, display: 1},
		{in: 101, want: 100, display: 100},
		{in: math.Inf(1), want: 100, display: 100},
		{in: 42.5, want: 42.5, display: 43},
		{in: 42.4, want: 42.4, display: 42},
	}
	c := newController(t)
	for _, tc := range cases {
		c.SetAge(tc.in)
		if got := c.State().Age; got != tc.want {
			t.Fatalf("SetAge(%v) stored %v, want %v", tc.in, got, tc.want)
		}
		if got := c.DisplayAge(); got != tc.display {
			t.Fatalf("SetAge(%v) displays %d, want %d", tc.in, got, tc.display)
		}
	}

	c.SetAge(math.NaN())
	if got := c.State().Age; got != 42.4 {
		t.Fatalf("expected NaN to be ignored, got %v", got)
	}
}

func TestSetGender(t *testing.T) {
	c := newController(t)
	if err := c.SetGender("Female"); err != nil {
		t.Fatalf("set gender: %v", err)
	}
	if err := c.SetGender("Other"); !errors.Is(err, form.ErrUnknownGender) {
		t.Fatalf("expected ErrUnknownGender, got %v", err)
	}
	if got := c.State().Gender; got != "Female" {
		t.Fatalf("expected gender unchanged after rejection, got %q", got)
	}
}

func TestSubmit_InvalidIsNoop(t *testing.T) {
	c := newController(t)
	c.SetName("Anna")
	if _, ok := c.Submit(); !ok {
		t.Fatalf("expected first submit to succeed")
	}
	before := c.State().Summary

	c.SetName("   ")
	c.SetAge(80)
	summary, ok := c.Submit()
	if ok || summary != "" {
		t.Fatalf("expected invalid submit to be a no-op, got %q %v", summary, ok)
	}
	if got := c.State().Summary; got != before {
		t.Fatalf("summary changed by invalid submit: %q -> %q", before, got)
	}
}

func TestSubmit_FormatsSummary(t *testing.T) {
	c := newController(t)
	c.SetName("Anna")
	c.SetAge(30.0)
	if err := c.SetGender("Female"); err != nil {
		t.Fatalf("set gender: %v", err)
	}
	c.SetSubscribed(true)

	summary, ok := c.Submit()
	if !ok {
		t.Fatalf("expected submit to succeed")
	}
	want := fmt.Sprintf(summaryTemplate, "Anna", 30, "Female", "yes")
	if summary != want || c.State().Summary != want {
		t.Fatalf("summary mismatch: want %q, got %q", want, summary)
	}
}

func TestSubmit_TruncatesAge(t *testing.T) {
	c := newController(t)
	c.SetName("Bob")
	c.SetAge(1.9)
	c.SetSubscribed(false)

	summary, ok := c.Submit()
	if !ok {
		t.Fatalf("expected submit to succeed")
	}
	if want := "Bob|1|Male|no"; summary != want {
		t.Fatalf("want %q, got %q", want, summary)
	}
	if c.DisplayAge() != 2 {
		t.Fatalf("expected display age to round to 2, got %d", c.DisplayAge())
	}
}

func TestSubmit_BundledCatalog(t *testing.T) {
	catalog, err := labels.Default()
	if err != nil {
		t.Fatalf("default catalog: %v", err)
	}
	c, err := form.New(labels.Resolve(catalog, "en", labels.ResolveOptions{}))
	if err != nil {
		t.Fatalf("new controller: %v", err)
	}
	c.SetName("Anna")
	c.SetAge(30)
	if err := c.SetGender("Female"); err != nil {
		t.Fatalf("set gender: %v", err)
	}
	c.SetSubscribed(true)

	summary, _ := c.Submit()
	if want := "Name: Anna, age: 30, gender: Female, subscribed to the newsletter"; summary != want {
		t.Fatalf("want %q, got %q", want, summary)
	}
}

func TestSubmit_AndroidStringVerbsFormatAge(t *testing.T) {
	catalog := labels.NewCatalog(map[string]map[string]string{
		"en": {
			"gender_male":      "Male",
			"gender_female":    "Female",
			"subscription_yes": "yes",
			"subscription_no":  "no",
			"result":           "%1$s, %2$s, %3$s, %4$s",
		},
	})
	c, err := form.New(labels.Resolve(catalog, "en", labels.ResolveOptions{}))
	if err != nil {
		t.Fatalf("new controller: %v", err)
	}
	c.SetName("Anna")
	c.SetAge(30)

	summary, ok := c.Submit()
	if !ok {
		t.Fatalf("expected submit to succeed")
	}
	if want := "Anna, 30, Male, no"; summary != want {
		t.Fatalf("want %q, got %q", want, summary)
	}
}

func TestSetAvatar_SelectThenCancel(t *testing.T) {
	c := newController(t)
	c.SetName("Anna")
	c.SetSubscribed(true)
	before := c.State()

	c.ApplyAvatarResult(avatar.Result{Reference: &avatar.Reference{URI: "file:///a.png", MIMEType: "image/png"}})
	if c.State().Avatar == nil {
		t.Fatalf("expected avatar to be set")
	}

	c.ApplyAvatarResult(avatar.Result{})
	if diff := cmp.Diff(before, c.State()); diff != "" {
		t.Fatalf("cancel should restore avatar to nil only (-want +got):\n%s", diff)
	}
}

func TestApplyAvatarResult_ErrorKeepsAvatar(t *testing.T) {
	c := newController(t)
	ref := &avatar.Reference{URI: "file:///a.png"}
	c.SetAvatar(ref)
	c.ApplyAvatarResult(avatar.Result{Err: errors.New("picker failed")})
	if got := c.State().Avatar; got == nil || got.URI != ref.URI {
		t.Fatalf("expected avatar kept on picker error, got %#v", got)
	}
}

func TestState_ReturnsCopies(t *testing.T) {
	c := newController(t)
	c.SetAvatar(&avatar.Reference{URI: "file:///a.png"})
	s := c.State()
	s.Avatar.URI = "mutated"
	if c.State().Avatar.URI != "file:///a.png" {
		t.Fatalf("state copy leaked internal avatar pointer")
	}
}

func TestSubscribe_NotifiesOnMutation(t *testing.T) {
	c := newController(t)

	var snaps []form.Snapshot
	unsubscribe := c.Subscribe(func(s form.Snapshot) {
		snaps = append(snaps, s)
	})

	c.SetName("Anna")
	c.SetName("Anna") // unchanged, no notification
	c.SetAge(30)
	c.Submit()

	if len(snaps) != 3 {
		t.Fatalf("expected 3 notifications, got %d", len(snaps))
	}
	if !snaps[0].Valid || snaps[2].Summary == "" {
		t.Fatalf("unexpected snapshots %#v", snaps)
	}

	unsubscribe()
	unsubscribe()
	c.SetName("Bob")
	if len(snaps) != 3 {
		t.Fatalf("expected no notifications after unsubscribe, got %d", len(snaps))
	}
}

func TestSetLabels_RemapsGenderByPosition(t *testing.T) {
	c := newController(t)
	if err := c.SetGender("Female"); err != nil {
		t.Fatalf("set gender: %v", err)
	}

	ru := testLabels()
	ru.Locale = "ru"
	ru.GenderOptions = []string{"Мужской", "Женский"}
	if err := c.SetLabels(ru); err != nil {
		t.Fatalf("set labels: %v", err)
	}
	if got := c.State().Gender; got != "Женский" {
		t.Fatalf("expected remapped gender, got %q", got)
	}

	single := testLabels()
	single.GenderOptions = []string{"Any"}
	if err := c.SetLabels(single); err != nil {
		t.Fatalf("set labels: %v", err)
	}
	if got := c.State().Gender; got != "Any" {
		t.Fatalf("expected fallback to first option, got %q", got)
	}

	empty := testLabels()
	empty.GenderOptions = nil
	if err := c.SetLabels(empty); !errors.Is(err, form.ErrNoGenderOptions) {
		t.Fatalf("expected ErrNoGenderOptions, got %v", err)
	}

	bare := testLabels()
	bare.SummaryTemplate = "result"
	if err := c.SetLabels(bare); !errors.Is(err, form.ErrNoSummaryTemplate) {
		t.Fatalf("expected ErrNoSummaryTemplate, got %v", err)
	}
	if got := c.Labels().SummaryTemplate; got != summaryTemplate {
		t.Fatalf("expected previous labels to stay, got %q", got)
	}
}

func TestController_ConcurrentMutations(t *testing.T) {
	c := newController(t)
	var wg sync.WaitGroup
	for i := 0; i < 50; i++ {
		wg.Add(1)
		go func(i int) {
			defer wg.Done()
			c.SetAge(float64(i * 3))
			c.SetName(fmt.Sprintf("user-%d", i))
			c.SetSubscribed(i%2 == 0)
			_ = c.Snapshot()
		}(i)
	}
	wg.Wait()

	age := c.State().Age
	if age < form.MinAge || age > form.MaxAge {
		t.Fatalf("age escaped bounds: %v", age)
	}
}
