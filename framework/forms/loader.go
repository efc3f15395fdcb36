package forms

import (
	"errors"
	"fmt"
	"os"
	"path/filepath"
	"slices"
	"strings"

	"github.com/BurntSushi/toml"
	"gopkg.in/yaml.v3"
)

var (
	ErrUnsupportedFormat = errors.New("forms: unsupported file format")
	ErrInvalidDefinition = errors.New("forms: invalid definition")
	ErrDuplicateForm     = errors.New("forms: duplicate form name")
	ErrUnknownForm       = errors.New("forms: unknown form")
)

// Format is the encoding of a definition file.
type Format int

const (
	FormatYAML Format = iota
	FormatTOML
)

// FormatOf detects the format from a file extension.
func FormatOf(path string) (Format, error) {
	switch strings.ToLower(filepath.Ext(path)) {
	case ".yaml", ".yml":
		return FormatYAML, nil
	case ".toml":
		return FormatTOML, nil
	}
	return 0, fmt.Errorf("%w: %s", ErrUnsupportedFormat, path)
}

// Parse decodes a definition. A missing name is left empty.
func Parse(data []byte, format Format) (*Definition, error) {
	var def Definition
	switch format {
	case FormatYAML:
		if err := yaml.Unmarshal(data, &def); err != nil {
			return nil, err
		}
	case FormatTOML:
		if err := toml.Unmarshal(data, &def); err != nil {
			return nil, err
		}
	default:
		return nil, ErrUnsupportedFormat
	}
	return &def, nil
}

// LoadFile reads one definition. Without an explicit name the file's base
// name is used ("signup.yaml" → "signup").
func LoadFile(path string) (*Definition, error) {
	format, err := FormatOf(path)
	if err != nil {
		return nil, err
	}
	data, err := os.ReadFile(path)
	if err != nil {
		return nil, fmt.Errorf("forms: %s: %w", path, err)
	}
	def, err := Parse(data, format)
	if err != nil {
		return nil, fmt.Errorf("forms: %s: %w", path, err)
	}
	if def.Name == "" {
		def.Name = strings.TrimSuffix(filepath.Base(path), filepath.Ext(path))
	}
	if err := check(def); err != nil {
		return nil, fmt.Errorf("forms: %s: %w", path, err)
	}
	def.source = path
	return def, nil
}

func check(def *Definition) error {
	seen := make(map[string]bool, len(def.Fields))
	for i, f := range def.Fields {
		if f.Name == "" {
			return fmt.Errorf("%w: field #%d has no name", ErrInvalidDefinition, i+1)
		}
		if seen[f.Name] {
			return fmt.Errorf("%w: field %q declared twice", ErrInvalidDefinition, f.Name)
		}
		seen[f.Name] = true
		if f.Rules == "" && f.Regex == "" {
			return fmt.Errorf("%w: field %q has no rules", ErrInvalidDefinition, f.Name)
		}
	}
	return nil
}

// Registry holds form definitions by name.
type Registry struct {
	forms map[string]*Definition
}

// NewRegistry returns an empty registry.
func NewRegistry() *Registry {
	return &Registry{forms: make(map[string]*Definition)}
}

// LoadDir loads every *.yaml, *.yml and *.toml file in dir (not
// recursive). Other files are ignored.
func LoadDir(dir string) (*Registry, error) {
	entries, err := os.ReadDir(dir)
	if err != nil {
		return nil, fmt.Errorf("forms: %w", err)
	}
	r := NewRegistry()
	for _, e := range entries {
		if e.IsDir() {
			continue
		}
		path := filepath.Join(dir, e.Name())
		if _, err := FormatOf(path); err != nil {
			continue
		}
		def, err := LoadFile(path)
		if err != nil {
			return nil, err
		}
		if err := r.Add(def); err != nil {
			return nil, err
		}
	}
	return r, nil
}

// Add registers a definition.
func (r *Registry) Add(def *Definition) error {
	if def.Name == "" {
		return fmt.Errorf("%w: form has no name", ErrInvalidDefinition)
	}
	if prev, ok := r.forms[def.Name]; ok {
		return fmt.Errorf("%w: %q in %s and %s", ErrDuplicateForm, def.Name, prev.source, def.source)
	}
	r.forms[def.Name] = def
	return nil
}

// Get returns the named definition.
func (r *Registry) Get(name string) (*Definition, error) {
	def, ok := r.forms[name]
	if !ok {
		return nil, fmt.Errorf("%w: %q", ErrUnknownForm, name)
	}
	return def, nil
}

// Names lists registered forms, sorted.
func (r *Registry) Names() []string {
	out := make([]string, 0, len(r.forms))
	for name := range r.forms {
		out = append(out, name)
	}
	slices.Sort(out)
	return out
}
