package manifest

import (
	"fmt"
	"os"
	"path/filepath"

	"cuelang.org/go/cue"
	"cuelang.org/go/cue/cuecontext"
	"cuelang.org/go/cue/load"

	"github.com/roach88/facet/internal/ir"
)

// LoadMode controls how errors are handled during loading.
type LoadMode int

const (
	// LoadModeFailFast stops on the first error encountered.
	LoadModeFailFast LoadMode = iota
	// LoadModeCollectAll collects all errors before returning.
	LoadModeCollectAll
)

// LoadResult contains the definitions loaded from a manifest.
type LoadResult struct {
	Definitions []Definition
	FileCount   int // Number of manifest files read
}

// Lookup returns the definition named name.
func (r *LoadResult) Lookup(name string) (Definition, bool) {
	if r == nil {
		return Definition{}, false
	}
	for _, d := range r.Definitions {
		if d.Name == name {
			return d, true
		}
	}
	return Definition{}, false
}

// Names returns the definition names in load order.
func (r *LoadResult) Names() []string {
	if r == nil {
		return nil
	}
	names := make([]string, len(r.Definitions))
	for i, d := range r.Definitions {
		names[i] = d.Name
	}
	return names
}

var definitionFields = map[string]bool{
	"props":     true,
	"propsData": true,
	"data":      true,
	"watch":     true,
	"emit":      true,
	"render":    true,
	"plugins":   true,
}

// LoadDir loads the CUE package in dir and compiles every entry under the
// top-level "component" field. Definitions come back in CUE field order.
func LoadDir(dir string, mode LoadMode) (*LoadResult, []error) {
	var errs []error

	info, err := os.Stat(dir)
	if os.IsNotExist(err) {
		return nil, []error{&LoadError{Code: ErrCodeNotFound, Message: fmt.Sprintf("manifest directory not found: %s", dir)}}
	}
	if err != nil {
		return nil, []error{&LoadError{Code: ErrCodeNotFound, Message: fmt.Sprintf("error accessing manifest directory: %v", err)}}
	}
	if !info.IsDir() {
		return nil, []error{&LoadError{Code: ErrCodeNotFound, Message: fmt.Sprintf("not a directory: %s", dir)}}
	}

	cueFiles, err := FindCUEFiles(dir)
	if err != nil {
		return nil, []error{&LoadError{Code: ErrCodeScanError, Message: fmt.Sprintf("error scanning directory: %v", err)}}
	}
	if len(cueFiles) == 0 {
		return nil, []error{&LoadError{Code: ErrCodeNoFiles, Message: fmt.Sprintf("no CUE files found in %s", dir)}}
	}

	ctx := cuecontext.New()
	instances := load.Instances([]string{"."}, &load.Config{Dir: dir})
	if len(instances) == 0 {
		return nil, []error{&LoadError{Code: ErrCodeLoadFailed, Message: "no CUE instances loaded"}}
	}
	inst := instances[0]
	if inst.Err != nil {
		return nil, []error{&LoadError{Code: ErrCodeLoadFailed, Message: fmt.Sprintf("loading CUE files: %v", inst.Err)}}
	}

	value := ctx.BuildInstance(inst)
	if err := value.Err(); err != nil {
		return nil, []error{formatCUEError(err, ErrCodeBuildFailed)}
	}
	if err := value.Validate(); err != nil {
		return nil, []error{formatCUEError(err, ErrCodeBuildFailed)}
	}

	result := &LoadResult{FileCount: len(cueFiles)}

	componentsVal := value.LookupPath(cue.ParsePath("component"))
	if !componentsVal.Exists() {
		return result, []error{&LoadError{Code: ErrCodeNoComponents, Message: "no components found in manifest", Pos: value.Pos()}}
	}

	iter, err := componentsVal.Fields()
	if err != nil {
		return result, []error{formatCUEError(err, ErrCodeInvalidType)}
	}
	for iter.Next() {
		def, err := CompileDefinition(iter.Label(), iter.Value())
		if err != nil {
			errs = append(errs, err)
			if mode == LoadModeFailFast {
				return result, errs
			}
			continue
		}
		result.Definitions = append(result.Definitions, *def)
	}

	if len(result.Definitions) == 0 && len(errs) == 0 {
		errs = append(errs, &LoadError{Code: ErrCodeNoComponents, Message: "no components found in manifest", Pos: componentsVal.Pos()})
	}
	return result, errs
}

// CompileDefinition parses one component struct.
//
//	ctx := cuecontext.New()
//	v := ctx.CompileString(`component: badge: data: label: "new"`)
//	def, err := CompileDefinition("badge", v.LookupPath(cue.ParsePath("component.badge")))
func CompileDefinition(name string, v cue.Value) (*Definition, error) {
	if err := v.Err(); err != nil {
		return nil, formatCUEError(err, ErrCodeInvalidType)
	}

	def := &Definition{Name: name, Pos: v.Pos()}
	if def.Pos.IsValid() {
		def.File = def.Pos.Filename()
	}

	iter, err := v.Fields()
	if err != nil {
		return nil, &LoadError{Code: ErrCodeInvalidType, Message: fmt.Sprintf("component %s must be a struct", name), Pos: v.Pos()}
	}
	for iter.Next() {
		if !definitionFields[iter.Label()] {
			return nil, &LoadError{
				Code:    ErrCodeUnknownField,
				Message: fmt.Sprintf("component %s: unknown field %q", name, iter.Label()),
				Pos:     iter.Value().Pos(),
			}
		}
	}

	if def.Props, err = stringList(v, "props"); err != nil {
		return nil, err
	}
	if def.PropsData, err = objectField(v, "propsData"); err != nil {
		return nil, err
	}
	if def.Data, err = objectField(v, "data"); err != nil {
		return nil, err
	}
	if def.Watch, err = stringMap(v, "watch"); err != nil {
		return nil, err
	}
	if def.Emit, err = stringMap(v, "emit"); err != nil {
		return nil, err
	}
	if def.Plugins, err = stringList(v, "plugins"); err != nil {
		return nil, err
	}

	renderVal := v.LookupPath(cue.ParsePath("render"))
	if renderVal.Exists() {
		var spec RenderSpec
		if err := renderVal.Decode(&spec); err != nil {
			return nil, formatCUEError(err, ErrCodeInvalidType)
		}
		def.Render = &spec
	}

	return def, nil
}

func stringList(v cue.Value, field string) ([]string, error) {
	fv := v.LookupPath(cue.ParsePath(field))
	if !fv.Exists() {
		return nil, nil
	}
	var out []string
	if err := fv.Decode(&out); err != nil {
		return nil, formatCUEError(err, ErrCodeInvalidType)
	}
	return out, nil
}

func stringMap(v cue.Value, field string) (map[string]string, error) {
	fv := v.LookupPath(cue.ParsePath(field))
	if !fv.Exists() {
		return nil, nil
	}
	var out map[string]string
	if err := fv.Decode(&out); err != nil {
		return nil, formatCUEError(err, ErrCodeInvalidType)
	}
	return out, nil
}

// objectField decodes a concrete struct through JSON so integers keep their
// type (CUE's Decode into any yields float64 for every number).
func objectField(v cue.Value, field string) (ir.Object, error) {
	fv := v.LookupPath(cue.ParsePath(field))
	if !fv.Exists() {
		return nil, nil
	}
	if fv.IncompleteKind() != cue.StructKind {
		return nil, &LoadError{Code: ErrCodeInvalidType, Message: fmt.Sprintf("%s must be a struct", field), Pos: fv.Pos()}
	}
	raw, err := fv.MarshalJSON()
	if err != nil {
		return nil, formatCUEError(err, ErrCodeInvalidType)
	}
	val, err := ir.UnmarshalValue(raw)
	if err != nil {
		return nil, &LoadError{Code: ErrCodeInvalidType, Message: fmt.Sprintf("%s: %v", field, err), Pos: fv.Pos()}
	}
	obj, ok := val.(ir.Object)
	if !ok {
		return nil, &LoadError{Code: ErrCodeInvalidType, Message: fmt.Sprintf("%s must be a struct", field), Pos: fv.Pos()}
	}
	return obj, nil
}

// FindCUEFiles walks the directory and returns all .cue file paths.
func FindCUEFiles(dir string) ([]string, error) {
	var files []string
	err := filepath.Walk(dir, func(path string, info os.FileInfo, err error) error {
		if err != nil {
			return err
		}
		if !info.IsDir() && filepath.Ext(path) == ".cue" {
			files = append(files, path)
		}
		return nil
	})
	return files, err
}
