package tui

import (
	"context"
	"errors"
	"fmt"
	"strconv"
	"strings"
	"sync"

	"go.uber.org/zap"

	"github.com/goliatone/go-surveyform/pkg/avatar"
	"github.com/goliatone/go-surveyform/pkg/form"
	"github.com/goliatone/go-surveyform/pkg/render"
)

type action int

const (
	actionAvatar action = iota
	actionClearAvatar
	actionName
	actionAge
	actionGender
	actionSubscribe
	actionSend
	actionQuit
)

type menuItem struct {
	label  string
	action action
}

// Session drives a form controller through a terminal menu until the user
// quits. Menu entries always reflect the most recent snapshot published by
// the controller.
type Session struct {
	ctrl       *form.Controller
	driver     PromptDriver
	picker     avatar.Picker
	launcher   *avatar.Launcher
	accept     string
	renderer   render.Renderer
	renderOpts render.RenderOptions
	theme      Theme
	logger     *zap.Logger

	mu     sync.RWMutex
	latest form.Snapshot
}

// NewSession wires a session around ctrl. Without options it prompts through
// survey and picks avatars from the local file system.
func NewSession(ctrl *form.Controller, options ...Option) (*Session, error) {
	if ctrl == nil {
		return nil, ErrControllerRequired
	}
	s := &Session{
		ctrl:   ctrl,
		accept: avatar.DefaultAccept,
		theme:  DefaultTheme(),
		logger: zap.NewNop(),
	}
	for _, opt := range options {
		if opt != nil {
			opt(s)
		}
	}
	if s.driver == nil {
		s.driver = NewSurveyDriver()
	}
	if s.picker == nil {
		s.picker = avatar.NewFilePicker(s.promptAvatarPath)
	}

	launcher, err := avatar.NewLauncher(s.picker, ctrl.ApplyAvatarResult, avatar.WithLogger(s.logger))
	if err != nil {
		return nil, fmt.Errorf("tui: avatar launcher: %w", err)
	}
	s.launcher = launcher
	s.latest = ctrl.Snapshot()
	return s, nil
}

// Latest returns the last snapshot observed from the controller.
func (s *Session) Latest() form.Snapshot {
	s.mu.RLock()
	defer s.mu.RUnlock()
	return s.latest
}

func (s *Session) observe(snapshot form.Snapshot) {
	s.mu.Lock()
	s.latest = snapshot
	s.mu.Unlock()
}

// Run shows the menu until quit, abort, or ctx cancellation. The final
// snapshot is returned in every case.
func (s *Session) Run(ctx context.Context) (form.Snapshot, error) {
	unsubscribe := s.ctrl.Subscribe(s.observe)
	defer unsubscribe()
	s.observe(s.ctrl.Snapshot())

	s.logger.Debug("tui session started", zap.String("session", s.ctrl.SessionID()))
	for {
		if err := ctx.Err(); err != nil {
			return s.Latest(), err
		}
		items := s.menu()
		labels := make([]string, len(items))
		for i, item := range items {
			labels[i] = item.label
		}

		l := s.Latest().Labels
		idx, err := s.driver.Select(ctx, SelectConfig{
			Message:  s.theme.prompt(l.Title),
			Options:  labels,
			PageSize: len(labels),
		})
		if err != nil {
			return s.Latest(), err
		}
		if idx < 0 || idx >= len(items) {
			continue
		}

		if items[idx].action == actionQuit {
			s.logger.Debug("tui session finished", zap.String("session", s.ctrl.SessionID()))
			return s.Latest(), nil
		}
		if err := s.dispatch(ctx, items[idx].action); err != nil {
			return s.Latest(), err
		}
	}
}

func (s *Session) menu() []menuItem {
	snap := s.Latest()
	l := snap.Labels

	avatarLabel := l.AvatarNone
	if snap.Avatar != nil {
		avatarLabel = snap.Avatar.Name
	}
	items := []menuItem{{label: fmt.Sprintf("%s (%s)", l.SelectAvatar, avatarLabel), action: actionAvatar}}
	if snap.Avatar != nil {
		items = append(items, menuItem{label: l.ClearAvatar, action: actionClearAvatar})
	}

	name := snap.Name
	if snap.NameError != "" {
		name = snap.NameError
	}
	send := l.Send
	if !snap.Valid {
		send = fmt.Sprintf("%s (%s)", l.Send, snap.NameError)
	}

	return append(items,
		menuItem{label: fmt.Sprintf("%s: %s", l.NameHint, name), action: actionName},
		menuItem{label: snap.AgeLabel(), action: actionAge},
		menuItem{label: fmt.Sprintf("%s: %s", l.Gender, snap.Gender), action: actionGender},
		menuItem{label: fmt.Sprintf("%s: %s", l.Subscribe, l.SubscriptionPhrase(snap.Subscribed)), action: actionSubscribe},
		menuItem{label: send, action: actionSend},
		menuItem{label: l.Quit, action: actionQuit},
	)
}

func (s *Session) dispatch(ctx context.Context, act action) error {
	switch act {
	case actionAvatar:
		return s.pickAvatar(ctx)
	case actionClearAvatar:
		s.ctrl.SetAvatar(nil)
		return nil
	case actionName:
		return s.promptName(ctx)
	case actionAge:
		return s.promptAge(ctx)
	case actionGender:
		return s.promptGender(ctx)
	case actionSubscribe:
		return s.promptSubscribe(ctx)
	case actionSend:
		return s.send(ctx)
	default:
		return nil
	}
}

func (s *Session) promptAvatarPath(ctx context.Context) (string, error) {
	l := s.Latest().Labels
	return s.driver.Input(ctx, InputConfig{
		Message: s.theme.prompt(l.SelectAvatar),
		Help:    s.accept,
	})
}

func (s *Session) pickAvatar(ctx context.Context) error {
	res, err := s.launcher.Pick(ctx, s.accept)
	if errors.Is(err, avatar.ErrInFlight) {
		return s.driver.Info(ctx, s.theme.error(err.Error()))
	}
	if err != nil {
		return err
	}
	if errors.Is(res.Err, ErrAborted) {
		return ErrAborted
	}
	if res.Err != nil {
		return s.driver.Info(ctx, s.theme.error(res.Err.Error()))
	}
	return nil
}

func (s *Session) promptName(ctx context.Context) error {
	snap := s.Latest()
	name, err := s.driver.Input(ctx, InputConfig{
		Message: s.theme.prompt(snap.Labels.NameHint),
		Default: snap.Name,
		Help:    snap.NameError,
	})
	if err != nil {
		return err
	}
	s.ctrl.SetName(name)
	if msg := s.Latest().NameError; msg != "" {
		return s.driver.Info(ctx, s.theme.error(msg))
	}
	return nil
}

func (s *Session) promptAge(ctx context.Context) error {
	snap := s.Latest()
	raw, err := s.driver.Input(ctx, InputConfig{
		Message:   s.theme.prompt(snap.AgeLabel()),
		Default:   strconv.FormatFloat(snap.Age, 'f', -1, 64),
		Help:      fmt.Sprintf("%g-%g", form.MinAge, form.MaxAge),
		Validator: validateAge,
	})
	if err != nil {
		return err
	}
	age, err := parseAge(raw)
	if err != nil {
		return s.driver.Info(ctx, s.theme.error(err.Error()))
	}
	s.ctrl.SetAge(age)
	return nil
}

func (s *Session) promptGender(ctx context.Context) error {
	snap := s.Latest()
	options := snap.Labels.GenderOptions
	idx, err := s.driver.Select(ctx, SelectConfig{
		Message:      s.theme.prompt(snap.Labels.Gender),
		Options:      options,
		DefaultIndex: snap.Labels.GenderIndex(snap.Gender),
	})
	if err != nil {
		return err
	}
	if idx < 0 || idx >= len(options) {
		return nil
	}
	if err := s.ctrl.SetGender(options[idx]); err != nil {
		return s.driver.Info(ctx, s.theme.error(err.Error()))
	}
	return nil
}

func (s *Session) promptSubscribe(ctx context.Context) error {
	snap := s.Latest()
	ok, err := s.driver.Confirm(ctx, ConfirmConfig{
		Message: s.theme.prompt(snap.Labels.Subscribe),
		Default: snap.Subscribed,
	})
	if err != nil {
		return err
	}
	s.ctrl.SetSubscribed(ok)
	return nil
}

func (s *Session) send(ctx context.Context) error {
	summary, ok := s.ctrl.Submit()
	if !ok {
		return s.driver.Info(ctx, s.theme.error(s.Latest().NameError))
	}
	if s.renderer == nil {
		return s.driver.Info(ctx, s.theme.info(summary))
	}

	out, err := s.renderer.Render(ctx, s.Latest(), s.renderOpts)
	if err != nil {
		return fmt.Errorf("tui: render %s: %w", s.renderer.Name(), err)
	}
	return s.driver.Info(ctx, s.theme.info(strings.TrimRight(string(out), "\n")))
}

func validateAge(raw string) error {
	_, err := parseAge(raw)
	return err
}

func parseAge(raw string) (float64, error) {
	age, err := strconv.ParseFloat(strings.TrimSpace(raw), 64)
	if err != nil {
		return 0, fmt.Errorf("tui: age %q is not a number", raw)
	}
	return age, nil
}
