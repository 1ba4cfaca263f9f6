package main

import (
	"context"
	"fmt"
	"strings"

	"github.com/spf13/cobra"

	"github.com/goliatone/go-surveyform"
	"github.com/goliatone/go-surveyform/pkg/avatar"
)

type submitFlags struct {
	name       string
	age        float64
	gender     string
	subscribed bool
	avatarPath string
}

func newSubmitCmd(a *app) *cobra.Command {
	flags := &submitFlags{}
	cmd := &cobra.Command{
		Use:   "submit",
		Short: "Submit the survey from flags and print the rendered summary",
		Example: `  surveyform submit --name Anna --age 30 --gender female --subscribe
  surveyform submit --name Anna --avatar ~/me.svg -o html`,
		Args: cobra.NoArgs,
		RunE: func(cmd *cobra.Command, args []string) error {
			return runSubmit(cmd, a, flags)
		},
	}
	f := cmd.Flags()
	f.StringVar(&flags.name, "name", "", "name (required)")
	f.Float64Var(&flags.age, "age", 0, "age between 1 and 100 (default from config)")
	f.StringVar(&flags.gender, "gender", "", "gender label, matched case-insensitively")
	f.BoolVar(&flags.subscribed, "subscribe", false, "subscribe to the newsletter")
	f.StringVar(&flags.avatarPath, "avatar", "", "path to an avatar image")
	return cmd
}

func runSubmit(cmd *cobra.Command, a *app, flags *submitFlags) error {
	ctx := cmd.Context()
	ctrl, err := a.controller()
	if err != nil {
		return err
	}

	ref, err := pickAvatar(ctx, flags.avatarPath, a.cfg.Accept)
	if err != nil {
		return err
	}
	in := surveyform.Input{
		Name:       flags.name,
		Gender:     flags.gender,
		Subscribed: flags.subscribed,
		Avatar:     ref,
	}
	if cmd.Flags().Changed("age") {
		in.Age = &flags.age
	}
	if err := surveyform.Fill(ctrl, in); err != nil {
		return err
	}
	if _, ok := ctrl.Submit(); !ok {
		return fmt.Errorf("%w: %s", surveyform.ErrNameRequired, ctrl.NameError())
	}

	renderer, err := a.renderer()
	if err != nil {
		return err
	}
	out, err := renderer.Render(ctx, ctrl.Snapshot(), a.renderOptions())
	if err != nil {
		return err
	}
	if !strings.HasSuffix(string(out), "\n") {
		out = append(out, '\n')
	}
	_, err = cmd.OutOrStdout().Write(out)
	return err
}

func pickAvatar(ctx context.Context, path, accept string) (*avatar.Reference, error) {
	if strings.TrimSpace(path) == "" {
		return nil, nil
	}
	picker := avatar.NewFilePicker(func(context.Context) (string, error) {
		return path, nil
	})
	return picker.Pick(ctx, accept)
}
