// SPDX-License-Identifier: MIT
// Copyright (c) 2026 WoozyMasta
// Source: github.com/woozymasta/dirstd

package dirstd

import (
	"io"

	"github.com/charmbracelet/log"
)

// Rate calculates how much a listing adheres to the standard of c, in [0,1].
//
// The own factor is pos/(pos+neg), where pos sums the indicativeness of
// matched records and neg is the number of unmatched files times the average
// record indicativeness. When no record matched at this level the result is
// 0, whatever the modules hold. Otherwise module coverage is rated
// recursively and combined with the own factor, weighted by NumPaths.
func Rate(c *Coverage) float64 {
	return rate(c, nil)
}

// RateWithLogger is Rate with debug output of every rating term.
func RateWithLogger(c *Coverage, logger *log.Logger) float64 {
	return rate(c, logger)
}

// RateCoverage returns the named rating of c.
func RateCoverage(c *Coverage) Rating {
	return Rating{
		Name:   c.Name(),
		Factor: Rate(c),
	}
}

// BestFit returns the result with the strictly greatest factor; ties keep the first.
//
// Only an empty input fails. A list where every factor is 0 still yields its
// first entry.
func BestFit(results []RatingResult) (RatingResult, error) {
	if len(results) == 0 {
		return RatingResult{}, ErrNoViableRating
	}

	best := 0
	for i := 1; i < len(results); i++ {
		if results[i].Rating.Factor > results[best].Rating.Factor {
			best = i
		}
	}

	return results[best], nil
}

// rate implements Rate.
func rate(c *Coverage, logger *log.Logger) float64 {
	if logger == nil {
		logger = log.New(io.Discard)
	}

	own, matched := ownFactor(c, logger)
	if !matched {
		return 0
	}

	if len(c.Modules) == 0 {
		return own
	}

	total := c.NumPaths
	weighted := own * float64(c.NumPaths)
	for _, root := range c.ModuleRoots() {
		mod := c.Modules[root]
		factor := rate(mod, logger)
		logger.Debug("module rating", "std", c.Name(), "module", root, "factor", factor, "paths", mod.NumPaths)

		total += mod.NumPaths
		weighted += factor * float64(mod.NumPaths)
	}

	if total == 0 {
		return 0
	}

	return weighted / float64(total)
}

// ownFactor rates c without its modules and reports whether any record matched.
func ownFactor(c *Coverage, logger *log.Logger) (float64, bool) {
	pos := 0.0
	matched := false
	for path, paths := range c.In {
		if len(paths) == 0 {
			continue
		}

		rec, ok := c.Standard.Record(path)
		if !ok {
			continue
		}

		pos += rec.Indicativeness
		matched = true
	}

	if !matched {
		return 0, false
	}

	avInd := c.Standard.averageIndicativeness()
	outFiles := c.OutFiles()
	neg := float64(outFiles) * avInd

	logger.Debug("rating terms", "std", c.Name(), "pos", pos, "neg", neg, "av_ind", avInd, "out_files", outFiles)

	if pos+neg > 0 {
		return pos / (pos + neg), true
	}

	return pos, true
}
