package manifest

import (
	"fmt"

	"cuelang.org/go/cue/errors"
	"cuelang.org/go/cue/token"
)

// LoadError represents an error that occurred while loading or validating
// a manifest.
type LoadError struct {
	Code    string
	Message string
	Pos     token.Pos // CUE position if available
	File    string    // source file when Pos is unavailable (YAML)
}

func (e *LoadError) Error() string {
	if e.Pos.IsValid() {
		return fmt.Sprintf("%s:%d:%d: %s: %s", e.Pos.Filename(), e.Pos.Line(), e.Pos.Column(), e.Code, e.Message)
	}
	if e.File != "" {
		return fmt.Sprintf("%s: %s: %s", e.File, e.Code, e.Message)
	}
	return fmt.Sprintf("%s: %s", e.Code, e.Message)
}

// Error code constants, shared with the CLI.
const (
	ErrCodeGeneric     = "E001" // Generic/unknown error
	ErrCodeScanError   = "E002" // Directory scan error
	ErrCodeNoFiles     = "E003" // No manifest files found
	ErrCodeLoadFailed  = "E004" // CUE load or YAML parse failed
	ErrCodeNotFound    = "E005" // Path not found
	ErrCodeBuildFailed = "E006" // CUE build failed

	// Definition errors
	ErrCodeUnknownField  = "E101" // Field not part of a definition
	ErrCodeInvalidType   = "E102" // Field has the wrong type
	ErrCodeNoComponents  = "E103" // Manifest declares no components
	ErrCodeDuplicateName = "E201" // Two definitions share a name
	ErrCodeInvalidName   = "E202" // Name is not a valid component name
	ErrCodeReservedName  = "E203" // Name is a built-in tag
	ErrCodeReservedKey   = "E204" // Data or prop key is reserved
	ErrCodeUnknownHook   = "E205" // emit refers to an unknown lifecycle hook
	ErrCodeUnknownPlugin = "E206" // plugins lists a name not in the catalog
	ErrCodeUnknownKey    = "E207" // watch or render.bind refers to an undeclared key
)

// formatCUEError extracts position info from CUE errors.
func formatCUEError(err error, code string) *LoadError {
	errs := errors.Errors(err)
	if len(errs) == 0 {
		return &LoadError{Code: code, Message: err.Error()}
	}

	// Return first error with position info
	first := errs[0]
	le := &LoadError{Code: code, Message: first.Error()}
	if positions := errors.Positions(first); len(positions) > 0 {
		le.Pos = positions[0]
	}
	return le
}
