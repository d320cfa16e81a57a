package intent

import (
	_ "embed"
	"fmt"
	"io"
	"os"

	"github.com/sandevgo/folio/internal/core"
	"gopkg.in/yaml.v3"
)

//go:embed catalog.yaml
var defaultCatalog []byte

type catalogFile struct {
	Intents []core.IntentRule `yaml:"intents"`
}

// LoadRules decodes a YAML rule catalog.
func LoadRules(r io.Reader) ([]core.IntentRule, error) {
	var cat catalogFile
	dec := yaml.NewDecoder(r)
	dec.KnownFields(true)
	if err := dec.Decode(&cat); err != nil {
		return nil, fmt.Errorf("decode rule catalog: %w", err)
	}
	return cat.Intents, nil
}

// LoadTable reads a YAML catalog from disk and builds a rule table from it.
func LoadTable(path string) (*RuleTable, error) {
	f, err := os.Open(path)
	if err != nil {
		return nil, fmt.Errorf("open rule catalog: %w", err)
	}
	defer f.Close()

	rules, err := LoadRules(f)
	if err != nil {
		return nil, err
	}
	return NewRuleTable(rules)
}

// DefaultRules returns the rules shipped with the binary.
func DefaultRules() ([]core.IntentRule, error) {
	var cat catalogFile
	if err := yaml.Unmarshal(defaultCatalog, &cat); err != nil {
		return nil, fmt.Errorf("decode embedded catalog: %w", err)
	}
	return cat.Intents, nil
}

// DefaultTable builds the rule table shipped with the binary.
func DefaultTable() (*RuleTable, error) {
	rules, err := DefaultRules()
	if err != nil {
		return nil, err
	}
	return NewRuleTable(rules)
}
