package main

import (
	"errors"

	"github.com/spf13/cobra"
	"go.uber.org/zap"

	"github.com/goliatone/go-surveyform/pkg/renderers/tui"
)

func newRunCmd(a *app) *cobra.Command {
	return &cobra.Command{
		Use:   "run",
		Short: "Fill in the survey interactively",
		Args:  cobra.NoArgs,
		RunE: func(cmd *cobra.Command, args []string) error {
			return runInteractive(cmd, a)
		},
	}
}

func runInteractive(cmd *cobra.Command, a *app) error {
	ctrl, err := a.controller()
	if err != nil {
		return err
	}
	renderer, err := a.renderer()
	if err != nil {
		return err
	}

	session, err := tui.NewSession(ctrl,
		tui.WithRenderer(renderer, a.renderOptions()),
		tui.WithTheme(tui.ThemeFromConfig(a.theme)),
		tui.WithAccept(a.cfg.Accept),
		tui.WithLogger(a.logger),
	)
	if err != nil {
		return err
	}

	snapshot, err := session.Run(cmd.Context())
	if errors.Is(err, tui.ErrAborted) {
		a.logger.Debug("session aborted", zap.String("session", snapshot.SessionID))
		return nil
	}
	return err
}
