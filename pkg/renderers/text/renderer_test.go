package text_test

import (
	"encoding/json"
	"errors"
	"path/filepath"
	"strings"
	"testing"

	"github.com/goliatone/go-surveyform/pkg/avatar"
	"github.com/goliatone/go-surveyform/pkg/render"
	"github.com/goliatone/go-surveyform/pkg/renderers/text"
	"github.com/goliatone/go-surveyform/pkg/testsupport"
)

func TestRender_TextGolden(t *testing.T) {
	r, err := text.New(text.FormatText)
	if err != nil {
		t.Fatalf("new renderer: %v", err)
	}
	snap := testsupport.SubmittedSnapshot(t, "Anna", 30, "Female", true, &avatar.Reference{
		URI:      "file:///home/anna/me.png",
		Name:     "me.png",
		MIMEType: "image/png",
	})

	out, err := r.Render(testsupport.Context(), snap, render.RenderOptions{})
	if err != nil {
		t.Fatalf("render: %v", err)
	}

	golden := filepath.Join("testdata", "anna.golden")
	if testsupport.WriteMaybeGolden(t, golden, out) {
		return
	}
	want := string(testsupport.MustReadGolden(t, golden))
	if diff := testsupport.CompareGolden(want, string(out)); diff != "" {
		t.Fatalf("output mismatch (-want +got):\n%s", diff)
	}
}

func TestRender_TextBeforeSubmit(t *testing.T) {
	r, _ := text.New("")
	snap := testsupport.NewController(t).Snapshot()

	out, err := r.Render(testsupport.Context(), snap, render.RenderOptions{Title: "Profile"})
	if err != nil {
		t.Fatalf("render: %v", err)
	}
	got := string(out)
	if !strings.HasPrefix(got, "Profile\n=======\n") {
		t.Fatalf("expected custom title, got %q", got)
	}
	if !strings.Contains(got, "Nothing has been sent yet") || !strings.Contains(got, "[No avatar]") {
		t.Fatalf("expected empty state, got %q", got)
	}

	if _, err := r.Render(testsupport.Context(), snap, render.RenderOptions{RequireSummary: true}); !errors.Is(err, render.ErrNoSummary) {
		t.Fatalf("expected ErrNoSummary, got %v", err)
	}
}

func TestRender_JSON(t *testing.T) {
	r, err := text.New(text.FormatJSON)
	if err != nil {
		t.Fatalf("new renderer: %v", err)
	}
	if r.Name() != "json" || r.ContentType() != "application/json" {
		t.Fatalf("unexpected identity %q %q", r.Name(), r.ContentType())
	}

	snap := testsupport.SubmittedSnapshot(t, "Bob", 1.9, "", false, nil)
	out, err := r.Render(testsupport.Context(), snap, render.RenderOptions{})
	if err != nil {
		t.Fatalf("render: %v", err)
	}

	var decoded map[string]any
	if err := json.Unmarshal(out, &decoded); err != nil {
		t.Fatalf("decode: %v", err)
	}
	if decoded["name"] != "Bob" || decoded["gender"] != "Male" || decoded["valid"] != true {
		t.Fatalf("unexpected payload %v", decoded)
	}
	if decoded["age"] != 1.9 || decoded["displayAge"] != float64(2) {
		t.Fatalf("unexpected age fields %v / %v", decoded["age"], decoded["displayAge"])
	}
	if decoded["summary"] != "Name: Bob, age: 1, gender: Male, not subscribed to the newsletter" {
		t.Fatalf("unexpected summary %v", decoded["summary"])
	}
	if decoded["sessionId"] != "test-session" || decoded["locale"] != "en" || decoded["ageLabel"] != "Age: 2" {
		t.Fatalf("unexpected metadata %v", decoded)
	}
	if _, ok := decoded["avatar"]; ok {
		t.Fatalf("expected avatar omitted when nil")
	}
}

func TestNew_RejectsUnknownFormat(t *testing.T) {
	if _, err := text.New("yaml"); err == nil {
		t.Fatalf("expected unsupported format error")
	}
}
