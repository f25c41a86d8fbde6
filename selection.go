// SPDX-License-Identifier: MIT
// Copyright (c) 2026 WoozyMasta
// Source: github.com/woozymasta/dirstd

package dirstd

// SelectionMode chooses which standards an evaluation runs against.
type SelectionMode uint8

const (
	// SelectDefault evaluates the catalog default standard.
	SelectDefault SelectionMode = iota
	// SelectAll evaluates every standard.
	SelectAll
	// SelectBestFit evaluates every standard and keeps the highest rated one.
	SelectBestFit
	// SelectSpecific evaluates one named standard.
	SelectSpecific
)

// Selection is a standard selection mode with its optional standard name.
type Selection struct {
	// Name is the standard name for SelectSpecific.
	Name string `json:"name,omitempty" yaml:"name,omitempty"`
	// Mode is the selection mode.
	Mode SelectionMode `json:"mode" yaml:"mode"`
}

// NewSelection derives a selection from command-line style flags.
//
// Precedence: all, then best fit, then a non-empty name, else the default.
func NewSelection(all bool, bestFit bool, name string) Selection {
	switch {
	case all:
		return Selection{Mode: SelectAll}
	case bestFit:
		return Selection{Mode: SelectBestFit}
	case name != "":
		return Selection{Mode: SelectSpecific, Name: name}
	default:
		return Selection{Mode: SelectDefault}
	}
}

// String renders the selection for log output.
func (s Selection) String() string {
	switch s.Mode {
	case SelectAll:
		return "<all>"
	case SelectBestFit:
		return "<best-fit>"
	case SelectSpecific:
		return s.Name
	default:
		return "<default>"
	}
}
