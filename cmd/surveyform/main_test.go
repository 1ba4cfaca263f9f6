package main

import (
	"bytes"
	"context"
	"errors"
	"strings"
	"testing"

	"github.com/goliatone/go-surveyform"
	"github.com/goliatone/go-surveyform/internal/config"
)

func execute(t *testing.T, args ...string) (string, error) {
	t.Helper()
	t.Setenv("SURVEYFORM_LOG_LEVEL", "error")

	cmd := newRootCmd()
	var out bytes.Buffer
	cmd.SetOut(&out)
	cmd.SetErr(&out)
	cmd.SetArgs(args)
	err := cmd.ExecuteContext(context.Background())
	return out.String(), err
}

func TestSubmit_Text(t *testing.T) {
	out, err := execute(t, "submit", "--name", "Anna", "--age", "30", "--gender", "female", "--subscribe")
	if err != nil {
		t.Fatalf("submit: %v", err)
	}
	want := "Survey\n======\nName: Anna, age: 30, gender: Female, subscribed to the newsletter\n[No avatar]\n"
	if out != want {
		t.Fatalf("unexpected output:\n%q\nwant:\n%q", out, want)
	}
}

func TestSubmit_AgeFlag(t *testing.T) {
	cases := map[string]string{
		"":    "age: 25,",
		"0":   "age: 1,",
		"250": "age: 100,",
	}
	for age, want := range cases {
		args := []string{"submit", "--name", "Anna"}
		if age != "" {
			args = append(args, "--age", age)
		}
		out, err := execute(t, args...)
		if err != nil {
			t.Fatalf("submit --age %q: %v", age, err)
		}
		if !strings.Contains(out, want) {
			t.Fatalf("submit --age %q: expected %q in %q", age, want, out)
		}
	}
}

func TestSubmit_JSONAndLocale(t *testing.T) {
	out, err := execute(t, "submit", "--name", "Anna", "-o", "json", "--locale", "ru")
	if err != nil {
		t.Fatalf("submit: %v", err)
	}
	if !strings.Contains(out, `"summary": "Имя: Anna`) {
		t.Fatalf("expected russian json summary, got %s", out)
	}
}

func TestSubmit_HTML(t *testing.T) {
	out, err := execute(t, "submit", "--name", "Anna Maria", "-o", "html")
	if err != nil {
		t.Fatalf("submit: %v", err)
	}
	if !strings.Contains(out, `<article class="survey-card"`) || !strings.Contains(out, ">AM<") {
		t.Fatalf("expected html card, got %s", out)
	}
}

func TestSubmit_BlankName(t *testing.T) {
	_, err := execute(t, "submit", "--name", "  ")
	if !errors.Is(err, surveyform.ErrNameRequired) {
		t.Fatalf("expected ErrNameRequired, got %v", err)
	}
}

func TestSubmit_InvalidOutput(t *testing.T) {
	_, err := execute(t, "submit", "--name", "Anna", "-o", "pdf")
	if !errors.Is(err, config.ErrInvalidOutput) {
		t.Fatalf("expected ErrInvalidOutput, got %v", err)
	}
}

func TestLocales(t *testing.T) {
	out, err := execute(t, "locales")
	if err != nil {
		t.Fatalf("locales: %v", err)
	}
	if out != "* en\n  ru\n" {
		t.Fatalf("unexpected locales output %q", out)
	}
}

func TestVersion(t *testing.T) {
	out, err := execute(t, "version")
	if err != nil {
		t.Fatalf("version: %v", err)
	}
	if out != "surveyform dev\n" {
		t.Fatalf("unexpected version output %q", out)
	}
}
