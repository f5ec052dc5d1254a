package manifest

import (
	"bytes"
	"errors"
	"fmt"
	"io"
	"os"
	"path/filepath"

	"gopkg.in/yaml.v3"

	"github.com/roach88/facet/internal/ir"
)

// yamlManifest is the on-disk shape of a YAML manifest.
type yamlManifest struct {
	Components []yamlDefinition `yaml:"components"`
}

type yamlDefinition struct {
	Name      string            `yaml:"name"`
	Props     []string          `yaml:"props"`
	PropsData map[string]any    `yaml:"propsData"`
	Data      map[string]any    `yaml:"data"`
	Watch     map[string]string `yaml:"watch"`
	Emit      map[string]string `yaml:"emit"`
	Render    *RenderSpec       `yaml:"render"`
	Plugins   []string          `yaml:"plugins"`
}

// LoadYAML loads a YAML manifest. Unknown fields are rejected.
func LoadYAML(path string) (*LoadResult, error) {
	data, err := os.ReadFile(path)
	if err != nil {
		if os.IsNotExist(err) {
			return nil, &LoadError{Code: ErrCodeNotFound, Message: fmt.Sprintf("manifest not found: %s", path)}
		}
		return nil, &LoadError{Code: ErrCodeLoadFailed, Message: fmt.Sprintf("reading manifest: %v", err), File: path}
	}

	var m yamlManifest
	dec := yaml.NewDecoder(bytes.NewReader(data))
	dec.KnownFields(true)
	if err := dec.Decode(&m); err != nil {
		if errors.Is(err, io.EOF) {
			return nil, &LoadError{Code: ErrCodeNoComponents, Message: "empty manifest", File: path}
		}
		return nil, &LoadError{Code: ErrCodeLoadFailed, Message: fmt.Sprintf("parsing YAML: %v", err), File: path}
	}
	if len(m.Components) == 0 {
		return nil, &LoadError{Code: ErrCodeNoComponents, Message: "no components found in manifest", File: path}
	}

	result := &LoadResult{FileCount: 1}
	for i, yd := range m.Components {
		def, err := yd.definition()
		if err != nil {
			return nil, &LoadError{Code: ErrCodeInvalidType, Message: fmt.Sprintf("components[%d]: %v", i, err), File: path}
		}
		def.File = path
		result.Definitions = append(result.Definitions, def)
	}
	return result, nil
}

func (yd yamlDefinition) definition() (Definition, error) {
	if yd.Name == "" {
		return Definition{}, fmt.Errorf("name is required")
	}
	propsData, err := toObject(yd.PropsData)
	if err != nil {
		return Definition{}, fmt.Errorf("propsData: %w", err)
	}
	data, err := toObject(yd.Data)
	if err != nil {
		return Definition{}, fmt.Errorf("data: %w", err)
	}
	return Definition{
		Name:      yd.Name,
		Props:     yd.Props,
		PropsData: propsData,
		Data:      data,
		Watch:     yd.Watch,
		Emit:      yd.Emit,
		Render:    yd.Render,
		Plugins:   yd.Plugins,
	}, nil
}

func toObject(m map[string]any) (ir.Object, error) {
	if m == nil {
		return nil, nil
	}
	v, err := ir.FromGo(m)
	if err != nil {
		return nil, err
	}
	return v.(ir.Object), nil
}

// Load reads a manifest from a CUE directory or a .yaml/.yml file.
func Load(path string, mode LoadMode) (*LoadResult, []error) {
	info, err := os.Stat(path)
	if err != nil {
		if os.IsNotExist(err) {
			return nil, []error{&LoadError{Code: ErrCodeNotFound, Message: fmt.Sprintf("manifest not found: %s", path)}}
		}
		return nil, []error{&LoadError{Code: ErrCodeNotFound, Message: fmt.Sprintf("error accessing manifest: %v", err)}}
	}
	if info.IsDir() {
		return LoadDir(path, mode)
	}
	switch filepath.Ext(path) {
	case ".yaml", ".yml":
		result, err := LoadYAML(path)
		if err != nil {
			return nil, []error{err}
		}
		return result, nil
	case ".cue":
		return LoadDir(filepath.Dir(path), mode)
	}
	return nil, []error{&LoadError{Code: ErrCodeLoadFailed, Message: fmt.Sprintf("unsupported manifest file: %s", path)}}
}
