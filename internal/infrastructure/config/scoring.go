package config

import (
	"bytes"
	"errors"
	"fmt"
	"os"

	"gopkg.in/yaml.v3"

	"github.com/tradercheck/tradercheck/internal/domain/service"
)

type scoringFile struct {
	SeverityScores struct {
		Low    *int `yaml:"low"`
		Medium *int `yaml:"medium"`
		High   *int `yaml:"high"`
	} `yaml:"severity_scores"`
}

// LoadScoring reads the severity weights from a YAML file. Every severity
// must be present and non-negative; unknown keys are rejected.
func LoadScoring(path string) (service.SeverityScores, error) {
	data, err := os.ReadFile(path)
	if err != nil {
		return service.SeverityScores{}, fmt.Errorf("config: read scoring file: %w", err)
	}
	return ParseScoring(data)
}

// ParseScoring decodes the scoring YAML document.
func ParseScoring(data []byte) (service.SeverityScores, error) {
	var doc scoringFile
	dec := yaml.NewDecoder(bytes.NewReader(data))
	dec.KnownFields(true)
	if err := dec.Decode(&doc); err != nil {
		return service.SeverityScores{}, fmt.Errorf("config: parse scoring file: %w", err)
	}

	s := doc.SeverityScores
	var missing []error
	for name, v := range map[string]*int{"low": s.Low, "medium": s.Medium, "high": s.High} {
		if v == nil {
			missing = append(missing, fmt.Errorf("severity_scores.%s is missing", name))
		}
	}
	if err := errors.Join(missing...); err != nil {
		return service.SeverityScores{}, fmt.Errorf("config: %w", err)
	}

	scores := service.SeverityScores{Low: *s.Low, Medium: *s.Medium, High: *s.High}
	if err := scores.Validate(); err != nil {
		return service.SeverityScores{}, fmt.Errorf("config: %w", err)
	}
	return scores, nil
}
