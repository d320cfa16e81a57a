package chatbot

import (
	_ "embed"
	"fmt"

	"github.com/sandevgo/folio/internal/core"
	"github.com/sandevgo/folio/internal/service/session"
	"gopkg.in/yaml.v3"
)

//go:embed fixtures.yaml
var defaultFixtures []byte

// Fixture is one expected classification.
type Fixture struct {
	Input   string   `yaml:"input" json:"input"`
	History []string `yaml:"history,omitempty" json:"history,omitempty"`
	Intent  string   `yaml:"intent" json:"intent"`
	Entity  string   `yaml:"entity,omitempty" json:"entity,omitempty"`
}

type Failure struct {
	Fixture   Fixture `json:"fixture"`
	GotIntent string  `json:"gotIntent"`
	GotEntity string  `json:"gotEntity,omitempty"`
}

type Report struct {
	Total    int       `json:"total"`
	Passed   int       `json:"passed"`
	Failed   int       `json:"failed"`
	Accuracy float64   `json:"accuracy"`
	Failures []Failure `json:"failures,omitempty"`
}

func (f Failure) String() string {
	return fmt.Sprintf("%q: want %s/%s, got %s/%s", f.Fixture.Input, f.Fixture.Intent, f.Fixture.Entity, f.GotIntent, f.GotEntity)
}

// ParseFixtures decodes a YAML fixture list.
func ParseFixtures(data []byte) ([]Fixture, error) {
	var file struct {
		Fixtures []Fixture `yaml:"fixtures"`
	}
	if err := yaml.Unmarshal(data, &file); err != nil {
		return nil, fmt.Errorf("decode fixtures: %w", err)
	}
	return file.Fixtures, nil
}

// RunFixtureSuite classifies every fixture against e. Only local matching is
// used, so the run is deterministic.
func RunFixtureSuite(e *Engine, fixtures []Fixture) Report {
	rep := Report{Total: len(fixtures)}

	for _, f := range fixtures {
		s := session.New()
		for _, h := range f.History {
			s = advance(e, h, s)
		}

		m := e.Classify(f.Input, s)
		if m.Intent == f.Intent && m.MatchedEntity == f.Entity {
			rep.Passed++
			continue
		}
		rep.Failures = append(rep.Failures, Failure{
			Fixture:   f,
			GotIntent: m.Intent,
			GotEntity: m.MatchedEntity,
		})
	}

	rep.Failed = rep.Total - rep.Passed
	if rep.Total > 0 {
		rep.Accuracy = float64(rep.Passed) / float64(rep.Total)
	}
	return rep
}

// RunTests runs the fixtures embedded in the binary.
func RunTests(e *Engine) (Report, error) {
	fixtures, err := ParseFixtures(defaultFixtures)
	if err != nil {
		return Report{}, err
	}
	return RunFixtureSuite(e, fixtures), nil
}

func advance(e *Engine, input string, s core.SessionState) core.SessionState {
	m := e.Classify(input, s)
	r := e.builder.Build(m.Intent, m.MatchedEntity, s)
	return session.Advance(s, m.Intent, m.MatchedEntity, r.VariantID)
}
