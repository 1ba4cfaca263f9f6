package testsupport

import (
	"bytes"
	"context"
	"io"
	"os"
	"path/filepath"
	"testing"

	"github.com/google/go-cmp/cmp"

	"github.com/goliatone/go-surveyform/pkg/avatar"
	"github.com/goliatone/go-surveyform/pkg/form"
	"github.com/goliatone/go-surveyform/pkg/labels"
)

// Labels resolves the bundled catalog for locale.
func Labels(t *testing.T, locale string) labels.Labels {
	t.Helper()

	catalog, err := labels.Default()
	if err != nil {
		t.Fatalf("load default catalog: %v", err)
	}
	return labels.Resolve(catalog, locale, labels.ResolveOptions{})
}

// NewController builds a controller over the bundled English labels with a
// fixed session id so snapshots are stable.
func NewController(t *testing.T, options ...form.Option) *form.Controller {
	t.Helper()

	options = append([]form.Option{form.WithSessionID("test-session")}, options...)
	c, err := form.New(Labels(t, "en"), options...)
	if err != nil {
		t.Fatalf("new controller: %v", err)
	}
	return c
}

// SubmittedSnapshot fills the form with the given values, submits it and
// returns the resulting snapshot.
func SubmittedSnapshot(t *testing.T, name string, age float64, gender string, subscribed bool, ref *avatar.Reference) form.Snapshot {
	t.Helper()

	c := NewController(t)
	c.SetName(name)
	c.SetAge(age)
	if gender != "" {
		if err := c.SetGender(gender); err != nil {
			t.Fatalf("set gender: %v", err)
		}
	}
	c.SetSubscribed(subscribed)
	c.SetAvatar(ref)
	if _, ok := c.Submit(); !ok {
		t.Fatalf("submit rejected for name %q", name)
	}
	return c.Snapshot()
}

// CompareGolden returns a diff string if the values differ.
func CompareGolden(want, got any) string {
	return cmp.Diff(want, got)
}

// MustReadGolden reads a golden file and returns its raw bytes.
func MustReadGolden(t *testing.T, path string) []byte {
	t.Helper()
	data, err := os.ReadFile(path)
	if err != nil {
		t.Fatalf("read golden: %v", err)
	}
	return data
}

// WriteMaybeGolden updates a golden file when UPDATE_GOLDENS is set. Returns
// true if the golden was written (test should exit early).
func WriteMaybeGolden(t *testing.T, path string, data []byte) bool {
	t.Helper()
	if os.Getenv("UPDATE_GOLDENS") == "" {
		return false
	}
	if err := os.MkdirAll(filepath.Dir(path), 0o755); err != nil {
		t.Fatalf("mkdir golden dir: %v", err)
	}
	if err := os.WriteFile(path, data, 0o644); err != nil {
		t.Fatalf("write golden: %v", err)
	}
	return true
}

// Context returns a background context for tests.
func Context() context.Context {
	return context.Background()
}

// CaptureTemplateOutput executes a render function that writes to an io.Writer,
// returning both the string result and the writer contents.
func CaptureTemplateOutput(t *testing.T, render func(io.Writer) (string, error)) (string, string) {
	t.Helper()

	var buf bytes.Buffer
	out, err := render(&buf)
	if err != nil {
		t.Fatalf("render template: %v", err)
	}
	return out, buf.String()
}
