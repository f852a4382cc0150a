package harness

import (
	"bytes"
	"errors"
	"fmt"
	"os"

	"gopkg.in/yaml.v3"
)

// Scenario describes one replayed session.
type Scenario struct {
	Name        string   `yaml:"name"`
	Description string   `yaml:"description"`
	User        UserSpec `yaml:"user"`
	Author      int64    `yaml:"author"`
	PageSize    int      `yaml:"page_size,omitempty"`
	Steps       []Step   `yaml:"steps"`
}

// UserSpec is the signed-in user.
type UserSpec struct {
	Email string   `yaml:"email,omitempty"`
	Roles []string `yaml:"roles"`
}

// Step is one user intent. Which fields apply depends on Do.
type Step struct {
	Do     string  `yaml:"do"`
	IDs    []int64 `yaml:"ids,omitempty"`
	Author int64   `yaml:"author,omitempty"`
	Record int64   `yaml:"record,omitempty"`
	Text   string  `yaml:"text,omitempty"`
	Page   int     `yaml:"page,omitempty"`
	Sort   string  `yaml:"sort,omitempty"`
	Expect *Expect `yaml:"expect,omitempty"`
}

// Expect is a subset match against the snapshot taken after a step.
// Nil fields are not checked; an empty list checks for emptiness.
type Expect struct {
	AssignView   *bool    `yaml:"assign_view,omitempty"`
	Disabled     *bool    `yaml:"disabled,omitempty"`
	Tooltip      *string  `yaml:"tooltip,omitempty"`
	Selected     []int64  `yaml:"selected,omitempty"`
	Highlights   []int64  `yaml:"highlights,omitempty"`
	Publications []int64  `yaml:"publications,omitempty"`
	Total        *int     `yaml:"total,omitempty"`
	References   []string `yaml:"references,omitempty"`
}

// Step kinds.
const (
	StepLoad       = "load"
	StepSelect     = "select"
	StepDeselect   = "deselect"
	StepToggle     = "toggle"
	StepClear      = "clear"
	StepAssign     = "assign"
	StepNavigate   = "navigate"
	StepPage       = "page"
	StepFilter     = "filter"
	StepSort       = "sort"
	StepReferences = "references"
)

// LoadScenario reads a scenario file. Unknown fields are rejected so a
// misspelt key fails loudly instead of silently skipping a check.
func LoadScenario(path string) (*Scenario, error) {
	data, err := os.ReadFile(path)
	if err != nil {
		return nil, fmt.Errorf("read scenario: %w", err)
	}
	return ParseScenario(data)
}

func ParseScenario(data []byte) (*Scenario, error) {
	var sc Scenario
	dec := yaml.NewDecoder(bytes.NewReader(data))
	dec.KnownFields(true)
	if err := dec.Decode(&sc); err != nil {
		return nil, fmt.Errorf("parse scenario: %w", err)
	}
	if err := validateScenario(&sc); err != nil {
		return nil, fmt.Errorf("invalid scenario: %w", err)
	}
	return &sc, nil
}

func validateScenario(s *Scenario) error {
	if s.Name == "" {
		return errors.New("name is required")
	}
	if s.Description == "" {
		return errors.New("description is required")
	}
	if s.Author <= 0 {
		return errors.New("author must be a positive id")
	}
	if len(s.Steps) == 0 {
		return errors.New("steps list is required and must be non-empty")
	}
	for i, st := range s.Steps {
		if err := validateStep(st); err != nil {
			return fmt.Errorf("step %d (%s): %w", i, st.Do, err)
		}
	}
	return nil
}

func validateStep(st Step) error {
	switch st.Do {
	case StepLoad, StepClear, StepAssign, StepFilter, StepSort:
		return nil
	case StepSelect, StepDeselect, StepToggle:
		if len(st.IDs) == 0 {
			return errors.New("ids are required")
		}
	case StepNavigate:
		if st.Author <= 0 {
			return errors.New("author is required")
		}
	case StepPage:
		if st.Page <= 0 {
			return errors.New("page must be positive")
		}
	case StepReferences:
		if st.Record <= 0 {
			return errors.New("record is required")
		}
	case "":
		return errors.New("do is required")
	default:
		return fmt.Errorf("unknown step %q", st.Do)
	}
	return nil
}
