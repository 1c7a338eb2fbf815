package cmd

import (
	"github.com/spf13/cobra"

	"github.com/readmegen/cli/internal/readme"
)

// RemoteFlags holds flags for commands that can merge GitHub metadata
// (generate, inspect).
type RemoteFlags struct {
	Repo   string
	Strict bool
}

// AddTo registers the remote flags on the given cobra command.
func (f *RemoteFlags) AddTo(cmd *cobra.Command) {
	cmd.Flags().StringVarP(&f.Repo, "github-repo", "g", "",
		`GitHub repository as owner/repo, or "`+readme.AutoRemote+`" to derive it from the origin remote`)
	cmd.Flags().BoolVar(&f.Strict, "strict-remote", false,
		"Fail when GitHub metadata cannot be fetched")
}

// Options copies the flag values into generator options.
func (f *RemoteFlags) Options(opts readme.Options) readme.Options {
	opts.GitHubRepo = f.Repo
	opts.StrictRemote = f.Strict
	return opts
}
