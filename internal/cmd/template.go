package cmd

import (
	"errors"
	"fmt"
	"io"
	"io/fs"
	"os"
	"strings"

	"github.com/spf13/cobra"

	oerrors "github.com/readmegen/cli/internal/errors"
	"github.com/readmegen/cli/internal/output"
	"github.com/readmegen/cli/internal/templates"
)

// NewTemplateCmd creates the template command group.
func NewTemplateCmd(_ *GlobalConfig) *cobra.Command {
	c := &cobra.Command{
		Use:   "template",
		Short: "Inspect, scaffold and check README templates",
		Long: `Work with README templates.

Templates are Markdown with {{key}} placeholders, {{key.sub}} dot paths and
{{#key}}...{{/key}} blocks that render only when the value is truthy.
Write {{{{ for a literal {{, e.g. ${{{{ secrets.GITHUB_TOKEN }} in a CI snippet.
Tags that are not key paths, such as {{ .Values.image }}, are kept as written.`,
	}

	c.AddCommand(newTemplateListCmd())
	c.AddCommand(newTemplateShowCmd())
	c.AddCommand(newTemplateInitCmd())
	c.AddCommand(newTemplateVetCmd())

	return c
}

func newTemplateListCmd() *cobra.Command {
	return &cobra.Command{
		Use:   "list",
		Short: "List built-in templates",
		Args:  cobra.NoArgs,
		RunE: func(c *cobra.Command, _ []string) error {
			t := output.NewTable("NAME", "DEFAULT", "DESCRIPTION")
			for _, tmpl := range templates.List() {
				def := ""
				if tmpl.Default {
					def = "yes"
				}
				t.Row(tmpl.Name, def, tmpl.Description)
			}
			fmt.Fprintln(c.OutOrStdout(), t.String())
			return nil
		},
	}
}

func newTemplateShowCmd() *cobra.Command {
	return &cobra.Command{
		Use:   "show [name]",
		Short: "Print a built-in template",
		Long: `Print the raw text of a built-in template (default: "default").

Examples:
  readmegen template show
  readmegen template show minimal > README.tmpl`,
		Args: cobra.MaximumNArgs(1),
		RunE: func(c *cobra.Command, args []string) error {
			name := templates.DefaultTemplateName
			if len(args) == 1 {
				name = args[0]
			}
			content, err := templates.Content(name)
			if err != nil {
				return exitWith(unknownTemplateError(name))
			}
			fmt.Fprint(c.OutOrStdout(), content)
			return nil
		},
	}
}

func newTemplateInitCmd() *cobra.Command {
	var from string
	var force bool

	c := &cobra.Command{
		Use:   "init [path]",
		Short: "Write a built-in template to a file for customization",
		Long: `Copy a built-in template to a file so it can be edited and passed to
'readmegen generate --template'.

Examples:
  # Write the default template to README.md.tmpl
  readmegen template init

  # Start from the minimal template
  readmegen template init docs/README.tmpl --from minimal`,
		Args: cobra.MaximumNArgs(1),
		RunE: func(c *cobra.Command, args []string) error {
			dest := "README.md.tmpl"
			if len(args) == 1 {
				dest = args[0]
			}
			if !templates.IsBuiltin(from) {
				return exitWith(unknownTemplateError(from))
			}
			if err := templates.WriteBuiltin(from, dest, force); err != nil {
				return exitWith(err)
			}
			fmt.Fprintln(c.OutOrStdout(), output.FormatFileLine(dest, output.StatusCreated))
			fmt.Fprintln(c.OutOrStdout(), "Use it with: readmegen generate --template "+dest)
			return nil
		},
	}

	c.Flags().StringVar(&from, "from", templates.DefaultTemplateName,
		fmt.Sprintf("Built-in template to start from (%s)", strings.Join(templates.Names(), ", ")))
	c.Flags().BoolVarP(&force, "force", "f", false, "Overwrite an existing file")

	return c
}

func newTemplateVetCmd() *cobra.Command {
	var strict bool

	c := &cobra.Command{
		Use:   "vet <file|name>",
		Short: "Check a template for syntax errors and unknown keys",
		Long: `Parse a template and report problems.

Syntax errors (unclosed or mismatched blocks, malformed tags) fail with exit
code 2. Keys that analysis never produces render as empty strings and are
reported as warnings; with --strict they fail too.

Examples:
  readmegen template vet README.tmpl
  readmegen template vet default`,
		Args: cobra.ExactArgs(1),
		RunE: func(c *cobra.Command, args []string) error {
			return runTemplateVet(c.OutOrStdout(), args[0], strict)
		},
	}

	c.Flags().BoolVar(&strict, "strict", false, "Treat unknown keys as errors")

	return c
}

func runTemplateVet(w io.Writer, ref string, strict bool) error {
	src, err := readTemplate(ref)
	if err != nil {
		return exitWith(err)
	}

	result, err := templates.Vet(src)
	if err != nil {
		output.Error("template has syntax errors", "template", src.Name)
		return NewExitError(err, ExitValidationError)
	}

	fmt.Fprintln(w, output.FormatVetCheck("Syntax valid", src.Name))
	fmt.Fprintln(w, output.FormatVetCheck("Keys referenced", fmt.Sprintf("%d", len(result.Keys))))

	if len(result.Unknown) == 0 {
		fmt.Fprintln(w, output.FormatVetCheck("All keys known", ""))
		return nil
	}

	for _, k := range result.Unknown {
		output.Warn("unknown key renders empty", "key", k)
	}
	if strict {
		return exitWith(oerrors.NewValidationError(
			fmt.Sprintf("%d unknown key(s): %s", len(result.Unknown), strings.Join(result.Unknown, ", ")),
			src.Name, "", "Known keys: "+strings.Join(templates.KnownKeys(), ", ")))
	}
	return nil
}

// readTemplate reads a template file, or a built-in when no such file
// exists. Unlike templates.Load it never falls back to the default.
func readTemplate(ref string) (templates.Source, error) {
	data, err := os.ReadFile(ref)
	if err == nil {
		return templates.Source{Name: ref, Content: string(data)}, nil
	}
	if !errors.Is(err, fs.ErrNotExist) {
		return templates.Source{}, fmt.Errorf("reading template %s: %w", ref, err)
	}
	if templates.IsBuiltin(ref) {
		content, cerr := templates.Content(ref)
		if cerr != nil {
			return templates.Source{}, cerr
		}
		return templates.Source{Name: templates.BuiltinRef(ref), Content: content}, nil
	}
	return templates.Source{}, oerrors.NewNotFoundError("template file not found", ref,
		"Pass a template file or one of: "+strings.Join(templates.Names(), ", "))
}

func unknownTemplateError(name string) error {
	return oerrors.NewValidationError(fmt.Sprintf("unknown template %q", name), "", "template",
		"Valid templates: "+strings.Join(templates.Names(), ", "))
}
