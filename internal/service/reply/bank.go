package reply

import (
	_ "embed"
	"errors"
	"fmt"

	"github.com/sandevgo/folio/internal/core"
	"gopkg.in/yaml.v3"
)

//go:embed templates.yaml
var defaultTemplates []byte

//go:embed profile.yaml
var defaultProfile []byte

var ErrNoClarifyVariants = errors.New("template bank has no clarify variants")

// IntentTemplates is the variant bank of a single intent.
type IntentTemplates struct {
	Variants    []string `yaml:"variants"`
	Suggestions []string `yaml:"suggestions,omitempty"`
}

// Bank holds every template the builder can render.
type Bank struct {
	Invitation         string                     `yaml:"invitation"`
	ClarifySuggestions []string                   `yaml:"clarifySuggestions"`
	Intents            map[string]IntentTemplates `yaml:"intents"`
}

// EntityDetail is the narrative told when a reply targets a known entity.
type EntityDetail struct {
	Title   string `yaml:"title"`
	Journey string `yaml:"journey"`
	Lesson  string `yaml:"lesson"`
	Impact  string `yaml:"impact"`
}

type profileFile struct {
	Entities map[string]EntityDetail `yaml:"entities"`
}

// ParseBank decodes a YAML template bank.
func ParseBank(data []byte) (Bank, error) {
	var b Bank
	if err := yaml.Unmarshal(data, &b); err != nil {
		return Bank{}, fmt.Errorf("decode template bank: %w", err)
	}
	if len(b.Intents[core.IntentClarify].Variants) == 0 {
		return Bank{}, ErrNoClarifyVariants
	}
	return b, nil
}

// ParseDetails decodes a YAML entity profile.
func ParseDetails(data []byte) (map[string]EntityDetail, error) {
	var p profileFile
	if err := yaml.Unmarshal(data, &p); err != nil {
		return nil, fmt.Errorf("decode entity profile: %w", err)
	}
	if p.Entities == nil {
		p.Entities = map[string]EntityDetail{}
	}
	return p.Entities, nil
}
