package output

import (
	"context"
	"fmt"
	"time"

	"github.com/charmbracelet/huh/spinner"
)

// SpinnerOption configures a spinner.
type SpinnerOption func(*spinnerConfig)

type spinnerConfig struct {
	title   string
	timeout time.Duration
	enabled bool
}

// WithTitle sets the spinner title.
func WithTitle(title string) SpinnerOption {
	return func(c *spinnerConfig) {
		c.title = title
	}
}

// WithTimeout bounds the action with a deadline.
func WithTimeout(timeout time.Duration) SpinnerOption {
	return func(c *spinnerConfig) {
		c.timeout = timeout
	}
}

// WithSpinner enables or disables the animation. Disabled spinners still
// apply the timeout.
func WithSpinner(enabled bool) SpinnerOption {
	return func(c *spinnerConfig) {
		c.enabled = enabled
	}
}

// RunWithSpinner executes action while a spinner is shown on the terminal.
// When stdout is not a terminal the action runs directly.
// Returns the action's error if any.
func RunWithSpinner(ctx context.Context, action func(context.Context) error, opts ...SpinnerOption) error {
	cfg := &spinnerConfig{
		title:   "Working...",
		enabled: true,
	}
	for _, opt := range opts {
		opt(cfg)
	}

	actionCtx := ctx
	if cfg.timeout > 0 {
		var cancel context.CancelFunc
		actionCtx, cancel = context.WithTimeout(ctx, cfg.timeout)
		defer cancel()
	}

	if !cfg.enabled || !IsTTY() {
		return action(actionCtx)
	}

	errCh := make(chan error, 1)
	go func() {
		errCh <- action(actionCtx)
	}()

	var result error
	spinnerErr := spinner.New().
		Title(cfg.title).
		Action(func() {
			select {
			case <-actionCtx.Done():
				result = actionCtx.Err()
			case result = <-errCh:
			}
		}).
		Run()
	if spinnerErr != nil {
		return fmt.Errorf("spinner error: %w", spinnerErr)
	}

	return result
}
