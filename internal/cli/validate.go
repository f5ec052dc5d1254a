package cli

import (
	"errors"
	"fmt"

	"github.com/spf13/cobra"

	"github.com/roach88/facet/internal/manifest"
)

// ValidationError is one problem found in a manifest.
type ValidationError struct {
	Code    string `json:"code"`
	Message string `json:"message"`
	File    string `json:"file,omitempty"`
	Line    int    `json:"line,omitempty"`
}

// ValidationResult holds validation results.
type ValidationResult struct {
	Valid      bool              `json:"valid"`
	Components []string          `json:"components,omitempty"`
	Errors     []ValidationError `json:"errors,omitempty"`
}

// NewValidateCommand creates the validate command.
func NewValidateCommand(rootOpts *RootOptions) *cobra.Command {
	cmd := &cobra.Command{
		Use:   "validate <manifest>",
		Short: "Validate component manifests",
		Long: `Load a CUE directory or YAML manifest and check every component
definition: names, reserved keys, watch and emit targets, render bindings
and plugin names. All problems are reported, not just the first.`,
		Args:          cobra.ExactArgs(1),
		SilenceUsage:  true,
		SilenceErrors: true,
		RunE: func(cmd *cobra.Command, args []string) error {
			return runValidate(rootOpts, args[0], cmd)
		},
	}

	return cmd
}

func runValidate(opts *RootOptions, path string, cmd *cobra.Command) error {
	formatter := newFormatter(opts, cmd)

	loaded, loadErrs := manifest.Load(path, manifest.LoadModeCollectAll)
	if loaded == nil && len(loadErrs) > 0 {
		code, message := splitLoadError(loadErrs[0])
		_ = formatter.Error(code, message, nil)
		return NewExitError(ExitCommandError, fmt.Sprintf("%s: %s", code, message))
	}

	formatter.VerboseLog("Loaded %d component(s) from %d file(s) in %s",
		len(loaded.Definitions), loaded.FileCount, path)

	problems := append(loadErrs, manifest.Validate(loaded.Definitions)...)
	if len(problems) > 0 {
		return outputValidationErrors(formatter, toValidationErrors(problems))
	}

	if formatter.JSON() {
		return formatter.Success(ValidationResult{Valid: true, Components: loaded.Names()})
	}
	fmt.Fprintln(formatter.Writer, "✓ All components valid")
	for _, name := range loaded.Names() {
		formatter.VerboseLog("  %s", name)
	}
	return nil
}

func splitLoadError(err error) (code, message string) {
	var loadErr *manifest.LoadError
	if errors.As(err, &loadErr) {
		return loadErr.Code, loadErr.Message
	}
	return manifest.ErrCodeGeneric, err.Error()
}

func toValidationErrors(errs []error) []ValidationError {
	out := make([]ValidationError, 0, len(errs))
	for _, err := range errs {
		var loadErr *manifest.LoadError
		if !errors.As(err, &loadErr) {
			out = append(out, ValidationError{Code: manifest.ErrCodeGeneric, Message: err.Error()})
			continue
		}
		ve := ValidationError{Code: loadErr.Code, Message: loadErr.Message, File: loadErr.File}
		if loadErr.Pos.IsValid() {
			ve.File = loadErr.Pos.Filename()
			ve.Line = loadErr.Pos.Line()
		}
		out = append(out, ve)
	}
	return out
}

func outputValidationErrors(formatter *OutputFormatter, errs []ValidationError) error {
	failure := NewExitError(ExitFailure, fmt.Sprintf("validation failed with %d error(s)", len(errs)))

	if formatter.JSON() {
		if err := formatter.Failure(errs[0].Code, errs[0].Message, ValidationResult{Errors: errs}); err != nil {
			return err
		}
		return failure
	}

	fmt.Fprintln(formatter.Writer, "✗ Validation failed")
	fmt.Fprintln(formatter.Writer)
	for _, e := range errs {
		switch {
		case e.Line > 0:
			fmt.Fprintf(formatter.Writer, "%s:%d\n", e.File, e.Line)
		case e.File != "":
			fmt.Fprintf(formatter.Writer, "%s\n", e.File)
		}
		fmt.Fprintf(formatter.Writer, "  %s: %s\n\n", e.Code, e.Message)
	}
	return failure
}
