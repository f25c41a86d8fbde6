// SPDX-License-Identifier: MIT
// Copyright (c) 2026 WoozyMasta
// Source: github.com/woozymasta/dirstd

package dirstd

import (
	"encoding/csv"
	"errors"
	"fmt"
	"io"
	"strconv"
	"strings"

	"gopkg.in/yaml.v3"
)

// CSV column keys after header normalization.
const (
	colPath             = "path"
	colNormative        = "normative"
	colTracked          = "tracked"
	colGenerated        = "generated"
	colModule           = "module"
	colArbitraryContent = "arbitrarycontent"
	colTags             = "tags"
	colIndicativeness   = "indicativeness"
	colVariations       = "variations"
	colRegex            = "regex"
	colDescription      = "description"
	colSampleContent    = "samplecontent"
)

// listSeparator separates values inside tags and variations cells.
const listSeparator = "|"

// ParseStandardCSV parses a standard definition table.
//
// Semantics:
// - the first row is a header; columns are found by name, case and spaces ignored
// - "Path" and "Indicativeness" columns are required
// - "Tags" and "Variations" hold "|" separated lists
// - "Arbitrary Content" accepts true, false and "-" for unset
// - indicativeness is normalized so that all records sum up to 1.0
func ParseStandardCSV(name string, r io.Reader) (*Standard, error) {
	cr := csv.NewReader(r)
	cr.FieldsPerRecord = -1
	cr.TrimLeadingSpace = true

	header, err := cr.Read()
	if err != nil {
		if errors.Is(err, io.EOF) {
			return nil, fmt.Errorf("%w: %s: missing header", ErrEmptyStandard, name)
		}

		return nil, fmt.Errorf("read csv header: %w", err)
	}

	cols := make(map[string]int, len(header))
	for i, h := range header {
		cols[normalizeColumn(h)] = i
	}

	for _, required := range []string{colPath, colIndicativeness} {
		if _, ok := cols[required]; !ok {
			return nil, fmt.Errorf("%w: %s: missing column %q", ErrInvalidRecord, name, required)
		}
	}

	std := &Standard{Name: name}
	for line := 2; ; line++ {
		row, err := cr.Read()
		if errors.Is(err, io.EOF) {
			break
		}

		if err != nil {
			return nil, fmt.Errorf("read csv: %w", err)
		}

		rec, err := parseRow(cols, row)
		if err != nil {
			return nil, fmt.Errorf("%s line %d: %w", name, line, err)
		}

		std.Records = append(std.Records, rec)
	}

	if err := normalizeStandard(std); err != nil {
		return nil, err
	}

	return std, nil
}

// ParseStandardYAML parses a YAML standard definition.
//
// The name is read from the document; fallbackName is used when it is empty.
func ParseStandardYAML(fallbackName string, r io.Reader) (*Standard, error) {
	var std Standard
	dec := yaml.NewDecoder(r)
	dec.KnownFields(true)
	if err := dec.Decode(&std); err != nil {
		if errors.Is(err, io.EOF) {
			return nil, fmt.Errorf("%w: %s: empty document", ErrEmptyStandard, fallbackName)
		}

		return nil, fmt.Errorf("decode yaml: %w", err)
	}

	if std.Name == "" {
		std.Name = fallbackName
	}

	if err := normalizeStandard(&std); err != nil {
		return nil, err
	}

	return &std, nil
}

// normalizeStandard derives directory flags and normalizes indicativeness to sum up to 1.0.
func normalizeStandard(std *Standard) error {
	if len(std.Records) == 0 {
		return fmt.Errorf("%w: %s has no records", ErrEmptyStandard, std.Name)
	}

	sum := 0.0
	for i := range std.Records {
		rec := &std.Records[i]
		rec.Path = strings.TrimSpace(rec.Path)
		if rec.Path == "" {
			return fmt.Errorf("%w: %s: record %d has empty path", ErrInvalidRecord, std.Name, i)
		}

		if rec.Indicativeness < 0 {
			return fmt.Errorf("%w: %s: %q has negative indicativeness", ErrInvalidRecord, std.Name, rec.Path)
		}

		rec.Directory = strings.HasSuffix(rec.Path, "/")
		sum += rec.Indicativeness
	}

	if sum <= 0 {
		return fmt.Errorf("%w: %s has zero total indicativeness", ErrEmptyStandard, std.Name)
	}

	for i := range std.Records {
		std.Records[i].Indicativeness /= sum
	}

	return nil
}

// parseRow converts one CSV row into a record.
func parseRow(cols map[string]int, row []string) (Record, error) {
	cell := func(key string) string {
		i, ok := cols[key]
		if !ok || i >= len(row) {
			return ""
		}

		return strings.TrimSpace(row[i])
	}

	rec := Record{
		Path:          cell(colPath),
		Regex:         cell(colRegex),
		Variations:    splitList(cell(colVariations)),
		Tags:          splitList(cell(colTags)),
		Description:   cell(colDescription),
		SampleContent: cell(colSampleContent),
	}

	var err error
	if rec.Normative, err = parseFlag(colNormative, cell(colNormative)); err != nil {
		return Record{}, err
	}

	if rec.Tracked, err = parseFlag(colTracked, cell(colTracked)); err != nil {
		return Record{}, err
	}

	if rec.Generated, err = parseFlag(colGenerated, cell(colGenerated)); err != nil {
		return Record{}, err
	}

	if rec.Module, err = parseFlag(colModule, cell(colModule)); err != nil {
		return Record{}, err
	}

	if rec.ArbitraryContent, err = parseOptBool(cell(colArbitraryContent)); err != nil {
		return Record{}, err
	}

	raw := cell(colIndicativeness)
	rec.Indicativeness, err = strconv.ParseFloat(raw, 64)
	if err != nil {
		return Record{}, fmt.Errorf("%w: %q indicativeness %q", ErrInvalidRecord, rec.Path, raw)
	}

	return rec, nil
}

// parseFlag parses a boolean cell; empty means false.
func parseFlag(col string, raw string) (bool, error) {
	if raw == "" {
		return false, nil
	}

	v, err := strconv.ParseBool(strings.ToLower(raw))
	if err != nil {
		return false, fmt.Errorf("%w: column %q value %q", ErrInvalidRecord, col, raw)
	}

	return v, nil
}

// splitList splits a "|" separated cell, dropping empty values.
func splitList(raw string) []string {
	if raw == "" {
		return nil
	}

	parts := strings.Split(raw, listSeparator)
	out := make([]string, 0, len(parts))
	for _, p := range parts {
		p = strings.TrimSpace(p)
		if p != "" {
			out = append(out, p)
		}
	}

	if len(out) == 0 {
		return nil
	}

	return out
}

// normalizeColumn lower-cases a header and drops spaces, underscores and dashes.
func normalizeColumn(h string) string {
	h = strings.TrimPrefix(h, "\ufeff")
	var b strings.Builder
	for _, r := range strings.ToLower(strings.TrimSpace(h)) {
		switch r {
		case ' ', '_', '-':
			continue
		}
		b.WriteRune(r)
	}

	return b.String()
}
