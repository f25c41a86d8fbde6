// SPDX-License-Identifier: MIT
// Copyright (c) 2026 WoozyMasta
// Source: github.com/woozymasta/dirstd

package dirstd

import (
	"encoding/json"
	"fmt"
	"strings"

	"gopkg.in/yaml.v3"
)

// OptBool is a tri-state flag: unset, explicit false or explicit true.
type OptBool uint8

const (
	// OptUnset means the standard expresses no opinion.
	OptUnset OptBool = iota
	// OptFalse is an explicit false.
	OptFalse
	// OptTrue is an explicit true.
	OptTrue
)

// Record is one path rule of a directory standard.
type Record struct {
	// Path is the slash separated path template; a trailing "/" marks a directory rule.
	Path string `json:"path" yaml:"path"`
	// Description is human readable documentation of the record.
	Description string `json:"description,omitempty" yaml:"description,omitempty"`
	// SampleContent lists example content for the path.
	SampleContent string `json:"sample_content,omitempty" yaml:"sample_content,omitempty"`
	// Regex matches the final path segment; mutually exclusive with Variations.
	Regex string `json:"regex,omitempty" yaml:"regex,omitempty"`
	// Variations are alternatives for the final path segment; mutually exclusive with Regex.
	Variations []string `json:"variations,omitempty" yaml:"variations,omitempty"`
	// Tags are free-form labels.
	Tags []string `json:"tags,omitempty" yaml:"tags,omitempty"`
	// Indicativeness is the normalized weight of the record within its standard.
	Indicativeness float64 `json:"indicativeness" yaml:"indicativeness"`
	// ArbitraryContent marks an area with unconstrained content when OptTrue.
	ArbitraryContent OptBool `json:"arbitrary_content" yaml:"arbitrary_content"`
	// Normative marks records the standard requires.
	Normative bool `json:"normative" yaml:"normative"`
	// Tracked marks content that belongs into version control.
	Tracked bool `json:"tracked" yaml:"tracked"`
	// Generated marks derived or build output content.
	Generated bool `json:"generated" yaml:"generated"`
	// Module marks a directory whose children are nested projects.
	Module bool `json:"module" yaml:"module"`
	// Directory is derived from a trailing "/" in Path.
	Directory bool `json:"directory" yaml:"-"`
}

// Standard is a named, ordered set of records.
type Standard struct {
	// Name identifies the standard within a catalog.
	Name string `json:"name" yaml:"name"`
	// Records are the rules in definition order.
	Records []Record `json:"records" yaml:"records"`
}

// Rating is a scalar conformance score of one standard.
type Rating struct {
	// Name is the rated standard name.
	Name string `json:"name" yaml:"name"`
	// Factor is in [0,1]; 0 means no conformance, 1 full conformance.
	Factor float64 `json:"factor" yaml:"factor"`
}

// RatingResult bundles a rating with the coverage it was computed from.
type RatingResult struct {
	// Coverage is nil when dropped by WithoutCoverage.
	Coverage *Coverage `json:"coverage,omitempty" yaml:"coverage,omitempty"`
	Rating   Rating    `json:"rating" yaml:"rating"`
}

// WithoutCoverage returns a copy of the result without coverage detail.
func (r RatingResult) WithoutCoverage() RatingResult {
	r.Coverage = nil
	return r
}

// segments splits the record path into path parts, dropping the empty
// part left by a directory marker.
func (r *Record) segments() []string {
	parts := strings.Split(r.Path, "/")
	if r.Directory && len(parts) > 1 && parts[len(parts)-1] == "" {
		parts = parts[:len(parts)-1]
	}

	return parts
}

// IsArbitraryContent reports whether the record explicitly allows arbitrary content.
func (r *Record) IsArbitraryContent() bool {
	return r.ArbitraryContent == OptTrue
}

// Record returns the record with the given path.
func (s *Standard) Record(path string) (*Record, bool) {
	for i := range s.Records {
		if s.Records[i].Path == path {
			return &s.Records[i], true
		}
	}

	return nil, false
}

// IndicativenessSum returns the sum of all record weights; ~1.0 after loading.
func (s *Standard) IndicativenessSum() float64 {
	sum := 0.0
	for i := range s.Records {
		sum += s.Records[i].Indicativeness
	}

	return sum
}

// averageIndicativeness returns the mean record weight.
func (s *Standard) averageIndicativeness() float64 {
	if len(s.Records) == 0 {
		return 0
	}

	return s.IndicativenessSum() / float64(len(s.Records))
}

// String renders the flag as it appears in definition tables.
func (b OptBool) String() string {
	switch b {
	case OptTrue:
		return "true"
	case OptFalse:
		return "false"
	default:
		return "-"
	}
}

// Bool returns the value and whether it was set.
func (b OptBool) Bool() (value bool, set bool) {
	return b == OptTrue, b != OptUnset
}

// parseOptBool parses "true", "false" and "-" (or empty) forms.
func parseOptBool(raw string) (OptBool, error) {
	switch strings.ToLower(strings.TrimSpace(raw)) {
	case "true":
		return OptTrue, nil
	case "false":
		return OptFalse, nil
	case "", "-", "none", "null":
		return OptUnset, nil
	default:
		return OptUnset, fmt.Errorf("%w: tri-state flag %q", ErrInvalidRecord, raw)
	}
}

// MarshalJSON encodes unset as null.
func (b OptBool) MarshalJSON() ([]byte, error) {
	if b == OptUnset {
		return []byte("null"), nil
	}

	return json.Marshal(b == OptTrue)
}

// UnmarshalJSON accepts true, false, null and the "-" string.
func (b *OptBool) UnmarshalJSON(data []byte) error {
	var v any
	if err := json.Unmarshal(data, &v); err != nil {
		return err
	}

	switch val := v.(type) {
	case nil:
		*b = OptUnset
	case bool:
		*b = optBoolOf(val)
	case string:
		parsed, err := parseOptBool(val)
		if err != nil {
			return err
		}
		*b = parsed
	default:
		return fmt.Errorf("%w: tri-state flag %s", ErrInvalidRecord, string(data))
	}

	return nil
}

// MarshalYAML encodes unset as null.
func (b OptBool) MarshalYAML() (any, error) {
	if b == OptUnset {
		return nil, nil
	}

	return b == OptTrue, nil
}

// UnmarshalYAML accepts true, false, null, "~" and "-".
func (b *OptBool) UnmarshalYAML(value *yaml.Node) error {
	if value.Tag == "!!null" {
		*b = OptUnset
		return nil
	}

	parsed, err := parseOptBool(value.Value)
	if err != nil {
		return fmt.Errorf("line %d: %w", value.Line, err)
	}

	*b = parsed
	return nil
}

// optBoolOf converts a plain bool.
func optBoolOf(v bool) OptBool {
	if v {
		return OptTrue
	}

	return OptFalse
}
