package lexicon

import (
	"fmt"
	"os"
	"sort"

	"gopkg.in/yaml.v3"
)

// overlay is the YAML shape of a lexicon extension file. Every list is
// appended to the built-in one; nothing built in can be removed.
type overlay struct {
	StopWords           []string          `yaml:"stop_words"`
	Abbreviations       []string          `yaml:"abbreviations"`
	TermBank            []string          `yaml:"term_bank"`
	PersonBank          []string          `yaml:"person_bank"`
	BoilerplateHeadings []string          `yaml:"boilerplate_headings"`
	TrivialIndicators   []string          `yaml:"trivial_indicators"`
	Polarity            map[string]string `yaml:"polarity"`
}

// Load builds a lexicon from the built-in lists extended by the YAML file at
// path. An empty path returns Default().
func Load(path string) (*Lexicon, error) {
	if path == "" {
		return Default(), nil
	}
	data, err := os.ReadFile(path)
	if err != nil {
		return nil, fmt.Errorf("read lexicon file: %w", err)
	}
	return Parse(data)
}

// Parse builds a lexicon from YAML overlay bytes.
func Parse(data []byte) (*Lexicon, error) {
	var o overlay
	if err := yaml.Unmarshal(data, &o); err != nil {
		return nil, fmt.Errorf("parse lexicon yaml: %w", err)
	}
	return build(o), nil
}

func sortedKeys(m map[string]string) []string {
	keys := make([]string, 0, len(m))
	for k := range m {
		keys = append(keys, k)
	}
	sort.Strings(keys)
	return keys
}
