// SPDX-License-Identifier: MIT
// Copyright (c) 2026 WoozyMasta
// Source: github.com/woozymasta/dirstd

package dirstd

import (
	"fmt"
	"io"

	"github.com/pelletier/go-toml/v2"
)

// tomlStandard is the TOML document shape of a standard.
type tomlStandard struct {
	Name    string       `toml:"name"`
	Records []tomlRecord `toml:"records"`
}

// tomlRecord mirrors Record; an absent arbitrary_content key is unset.
type tomlRecord struct {
	ArbitraryContent *bool    `toml:"arbitrary_content"`
	Path             string   `toml:"path"`
	Description      string   `toml:"description"`
	SampleContent    string   `toml:"sample_content"`
	Regex            string   `toml:"regex"`
	Variations       []string `toml:"variations"`
	Tags             []string `toml:"tags"`
	Indicativeness   float64  `toml:"indicativeness"`
	Normative        bool     `toml:"normative"`
	Tracked          bool     `toml:"tracked"`
	Generated        bool     `toml:"generated"`
	Module           bool     `toml:"module"`
}

// ParseStandardTOML parses a TOML standard definition with [[records]] tables.
//
// The name is read from the document; fallbackName is used when it is empty.
func ParseStandardTOML(fallbackName string, r io.Reader) (*Standard, error) {
	var doc tomlStandard
	dec := toml.NewDecoder(r)
	dec.DisallowUnknownFields()
	if err := dec.Decode(&doc); err != nil {
		return nil, fmt.Errorf("decode toml: %w", err)
	}

	std := &Standard{Name: doc.Name, Records: make([]Record, 0, len(doc.Records))}
	if std.Name == "" {
		std.Name = fallbackName
	}

	for _, tr := range doc.Records {
		rec := Record{
			Path:           tr.Path,
			Description:    tr.Description,
			SampleContent:  tr.SampleContent,
			Regex:          tr.Regex,
			Variations:     tr.Variations,
			Tags:           tr.Tags,
			Indicativeness: tr.Indicativeness,
			Normative:      tr.Normative,
			Tracked:        tr.Tracked,
			Generated:      tr.Generated,
			Module:         tr.Module,
		}
		if tr.ArbitraryContent != nil {
			rec.ArbitraryContent = optBoolOf(*tr.ArbitraryContent)
		}

		std.Records = append(std.Records, rec)
	}

	if err := normalizeStandard(std); err != nil {
		return nil, err
	}

	return std, nil
}
