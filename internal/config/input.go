package config

import (
	"bytes"
	"encoding/json"
	"errors"
	"fmt"
	"io"
	"os"
	"path/filepath"
	"strings"

	"github.com/BurntSushi/toml"
	"gopkg.in/yaml.v3"

	"github.com/roikit/roi-calculator/internal/domain"
)

// ErrUnsupportedFileType is returned for files whose extension names no known format.
var ErrUnsupportedFileType = errors.New("unsupported file type")

// Format is an on-disk encoding for assumption and profile files.
type Format string

const (
	FormatYAML Format = "yaml"
	FormatJSON Format = "json"
	FormatTOML Format = "toml"
)

// DetectFormat picks the encoding from the file extension.
func DetectFormat(filename string) (Format, error) {
	switch strings.ToLower(filepath.Ext(filename)) {
	case ".yaml", ".yml":
		return FormatYAML, nil
	case ".json":
		return FormatJSON, nil
	case ".toml":
		return FormatTOML, nil
	}
	return "", fmt.Errorf("%w: %s", ErrUnsupportedFileType, filename)
}

// InputParser handles parsing of assumption and client profile files
type InputParser struct{}

// NewInputParser creates a new input parser
func NewInputParser() *InputParser {
	return &InputParser{}
}

// LoadAssumptions reads an assumption table and overlays it on the defaults.
// Maps merge key by key. A scenario given in the file replaces the default of
// the same name; scenarios the file omits keep their defaults.
func (ip *InputParser) LoadAssumptions(filename string) (*domain.Assumptions, error) {
	data, err := os.ReadFile(filename)
	if err != nil {
		return nil, fmt.Errorf("failed to read file %s: %w", filename, err)
	}
	format, err := DetectFormat(filename)
	if err != nil {
		return nil, err
	}

	defaults := domain.DefaultAssumptions()
	a := domain.DefaultAssumptions()
	a.Scenarios = nil
	if err := decode(format, data, a); err != nil {
		return nil, err
	}
	for _, s := range defaults.Scenarios {
		if _, err := a.Scenario(s.Name); err != nil {
			a.Scenarios = append(a.Scenarios, s)
		}
	}

	if err := ip.ValidateAssumptions(a); err != nil {
		return nil, fmt.Errorf("assumptions validation failed: %w", err)
	}
	return a, nil
}

// ValidateAssumptions checks the scenario table, hidden-cost factors and ranges.
func (ip *InputParser) ValidateAssumptions(a *domain.Assumptions) error {
	if a == nil {
		return &FieldError{Field: "assumptions", Reason: "are required"}
	}
	return a.Validate()
}

// SaveAssumptions writes an assumption table in the format named by the extension.
func (ip *InputParser) SaveAssumptions(a *domain.Assumptions, filename string) error {
	format, err := DetectFormat(filename)
	if err != nil {
		return err
	}
	var buf bytes.Buffer
	switch format {
	case FormatTOML:
		if err := toml.NewEncoder(&buf).Encode(a); err != nil {
			return fmt.Errorf("failed to encode TOML: %w", err)
		}
	case FormatJSON:
		enc := json.NewEncoder(&buf)
		enc.SetIndent("", "  ")
		if err := enc.Encode(a); err != nil {
			return fmt.Errorf("failed to encode JSON: %w", err)
		}
	default:
		enc := yaml.NewEncoder(&buf)
		enc.SetIndent(2)
		if err := enc.Encode(a); err != nil {
			return fmt.Errorf("failed to encode YAML: %w", err)
		}
		if err := enc.Close(); err != nil {
			return fmt.Errorf("failed to encode YAML: %w", err)
		}
	}
	if dir := filepath.Dir(filename); dir != "." {
		if err := os.MkdirAll(dir, 0o755); err != nil {
			return fmt.Errorf("failed to create directory %s: %w", dir, err)
		}
	}
	if err := os.WriteFile(filename, buf.Bytes(), 0o644); err != nil {
		return fmt.Errorf("failed to write file %s: %w", filename, err)
	}
	return nil
}

// CreateExampleAssumptions returns the built-in assumption table, suitable for
// writing out as a starting point.
func (ip *InputParser) CreateExampleAssumptions() *domain.Assumptions {
	return domain.DefaultAssumptions()
}

// ClientProfile describes a prospect and the figures its ROI is computed from.
type ClientProfile struct {
	Name               string   `yaml:"name" toml:"name" json:"name"`
	Company            string   `yaml:"company" toml:"company" json:"company"`
	Industry           string   `yaml:"industry" toml:"industry" json:"industry"`
	CurrentAnnualCost  float64  `yaml:"current_annual_cost" toml:"current_annual_cost" json:"current_annual_cost"`
	EfficiencyGain     float64  `yaml:"efficiency_gain" toml:"efficiency_gain" json:"efficiency_gain"`
	AnnualLicense      float64  `yaml:"annual_license" toml:"annual_license" json:"annual_license"`
	ImplementationCost *float64 `yaml:"implementation_cost,omitempty" toml:"implementation_cost,omitempty" json:"implementation_cost,omitempty"`
	Years              int      `yaml:"years" toml:"years" json:"years"`
	Scenario           string   `yaml:"scenario" toml:"scenario" json:"scenario"`

	CurrentState *domain.CurrentState `yaml:"current_state,omitempty" toml:"current_state,omitempty" json:"current_state,omitempty"`
	FutureState  *domain.FutureState  `yaml:"future_state,omitempty" toml:"future_state,omitempty" json:"future_state,omitempty"`
}

// LoadProfile reads a client profile. Years default to 3 and the scenario to moderate.
func (ip *InputParser) LoadProfile(filename string) (*ClientProfile, error) {
	data, err := os.ReadFile(filename)
	if err != nil {
		return nil, fmt.Errorf("failed to read file %s: %w", filename, err)
	}
	format, err := DetectFormat(filename)
	if err != nil {
		return nil, err
	}
	p := &ClientProfile{Years: 3, Scenario: string(domain.Moderate)}
	if err := decode(format, data, p); err != nil {
		return nil, err
	}
	return p, nil
}

// ROIInputs converts the profile, resolving its industry against a.
func (p *ClientProfile) ROIInputs(a *domain.Assumptions) domain.ROIInputs {
	in := domain.NewROIInputs(p.CurrentAnnualCost, p.EfficiencyGain, p.AnnualLicense)
	in.ImplementationCost = p.ImplementationCost
	in.Years = p.Years
	in.Scenario = domain.ScenarioName(p.Scenario)
	in.IndustryMultiplier = a.IndustryMultiplier(p.Industry)
	return in
}

func decode(format Format, data []byte, out any) error {
	switch format {
	case FormatTOML:
		md, err := toml.Decode(string(data), out)
		if err != nil {
			return fmt.Errorf("failed to parse TOML: %w", err)
		}
		if undecoded := md.Undecoded(); len(undecoded) > 0 {
			return fmt.Errorf("failed to parse TOML: unknown keys %v", undecoded)
		}
	case FormatJSON:
		dec := json.NewDecoder(bytes.NewReader(data))
		dec.DisallowUnknownFields()
		if err := dec.Decode(out); err != nil {
			return fmt.Errorf("failed to parse JSON: %w", err)
		}
	default:
		dec := yaml.NewDecoder(bytes.NewReader(data))
		dec.KnownFields(true)
		if err := dec.Decode(out); err != nil && !errors.Is(err, io.EOF) {
			return fmt.Errorf("failed to parse YAML: %w", err)
		}
	}
	return nil
}
