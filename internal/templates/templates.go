// Package templates holds the static session templates: for each focus
// label, an ordered list of anchor exercises and a list of suggestions.
// Template data uses canonical catalog names; the alias map exists for
// callers translating template wording or variants, and is never applied
// implicitly.
package templates

import (
	_ "embed"
	"fmt"
	"io"
	"os"

	"gopkg.in/yaml.v3"
)

//go:embed templates.yaml
var defaultYAML []byte

// Template is the exercise plan for one focus.
type Template struct {
	Anchors   []string `yaml:"anchors"`
	Suggested []string `yaml:"suggested"`
}

// Library is a loaded template set.
type Library struct {
	doc libraryDoc
}

type libraryDoc struct {
	SessionTypes []string            `yaml:"session_types"`
	Templates    map[string]Template `yaml:"templates"`
	Aliases      map[string]string   `yaml:"aliases"`
}

// Parse reads a template library from YAML.
func Parse(r io.Reader) (*Library, error) {
	var doc libraryDoc
	dec := yaml.NewDecoder(r)
	if err := dec.Decode(&doc); err != nil {
		return nil, fmt.Errorf("parsing templates: %w", err)
	}
	return &Library{doc: doc}, nil
}

// LoadFile reads a template library from a YAML file.
func LoadFile(path string) (*Library, error) {
	f, err := os.Open(path)
	if err != nil {
		return nil, fmt.Errorf("opening templates file: %w", err)
	}
	defer f.Close()
	return Parse(f)
}

var defaultLibrary = func() *Library {
	var doc libraryDoc
	if err := yaml.Unmarshal(defaultYAML, &doc); err != nil {
		panic("templates: embedded templates.yaml is invalid: " + err.Error())
	}
	return &Library{doc: doc}
}()

// Default returns the library built from the embedded template data.
func Default() *Library {
	return defaultLibrary
}

// SessionTypes returns the known focus labels in declaration order.
func (l *Library) SessionTypes() []string {
	out := make([]string, len(l.doc.SessionTypes))
	copy(out, l.doc.SessionTypes)
	return out
}

// Lookup returns the template for a focus label. The second result is false
// when the focus has no template.
func (l *Library) Lookup(focus string) (Template, bool) {
	tpl, ok := l.doc.Templates[focus]
	return tpl, ok
}

// ResolveName maps a template wording or variant to its canonical catalog
// name. Unknown names pass through unchanged; there is no fuzzy matching.
func (l *Library) ResolveName(name string) string {
	if canonical, ok := l.doc.Aliases[name]; ok {
		return canonical
	}
	return name
}
