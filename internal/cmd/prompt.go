package cmd

import (
	"context"
	"errors"

	"github.com/AlecAivazis/survey/v2"
	"github.com/AlecAivazis/survey/v2/terminal"

	oerrors "github.com/readmegen/cli/internal/errors"
	"github.com/readmegen/cli/internal/output"
)

// Confirmer asks the user a yes/no question.
type Confirmer interface {
	Confirm(ctx context.Context, message string, def bool) (bool, error)
}

// ConfirmFunc adapts a function to Confirmer.
type ConfirmFunc func(ctx context.Context, message string, def bool) (bool, error)

// Confirm calls f.
func (f ConfirmFunc) Confirm(ctx context.Context, message string, def bool) (bool, error) {
	return f(ctx, message, def)
}

type surveyConfirmer struct{}

func (surveyConfirmer) Confirm(ctx context.Context, message string, def bool) (bool, error) {
	if err := ctx.Err(); err != nil {
		return false, err
	}
	var out bool
	prompt := &survey.Confirm{
		Message: message,
		Default: def,
	}
	if err := survey.AskOne(prompt, &out); err != nil {
		if errors.Is(err, terminal.InterruptErr) {
			return false, oerrors.NewCancelledError("prompt interrupted", "")
		}
		return false, err
	}
	return out, nil
}

// defaultConfirmer prompts on an interactive terminal and returns nil
// otherwise, so callers fall back to non-interactive behaviour.
func defaultConfirmer() Confirmer {
	if !output.IsInteractive() {
		return nil
	}
	return surveyConfirmer{}
}
