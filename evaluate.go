// SPDX-License-Identifier: MIT
// Copyright (c) 2026 WoozyMasta
// Source: github.com/woozymasta/dirstd

package dirstd

import (
	"context"
	"fmt"
	"io"
	"regexp"

	"github.com/charmbracelet/log"
	"golang.org/x/sync/errgroup"
)

// cancelCheckInterval is the number of paths classified between context checks.
const cancelCheckInterval = 1024

// EvalOptions configures an Evaluator.
type EvalOptions struct {
	// Ignore matches paths excluded from classification; nil ignores nothing.
	Ignore *regexp.Regexp
	// Logger receives debug and info output; nil discards it.
	Logger *log.Logger
	// Generated are extra generated-content patterns, see ParseGeneratedExtensions.
	Generated []*regexp.Regexp
	// Parallelism limits concurrently evaluated standards; 0 or less means unlimited.
	Parallelism int
}

// Evaluator runs classification and rating of one listing over a catalog.
//
// Standards are evaluated independently and concurrently; the listing is
// shared read-only between them.
type Evaluator struct {
	catalog *Catalog
	logger  *log.Logger
	opts    EvalOptions
}

// NewEvaluator creates an evaluator over catalog.
func NewEvaluator(catalog *Catalog, opts EvalOptions) (*Evaluator, error) {
	if catalog == nil {
		return nil, ErrNilCatalog
	}

	logger := opts.Logger
	if logger == nil {
		logger = log.New(io.Discard)
	}

	return &Evaluator{
		catalog: catalog,
		logger:  logger,
		opts:    opts,
	}, nil
}

// Catalog returns the evaluated catalog.
func (e *Evaluator) Catalog() *Catalog {
	return e.catalog
}

// CoverOne classifies paths against one named standard.
func (e *Evaluator) CoverOne(ctx context.Context, paths []string, name string) (*Coverage, error) {
	p, err := e.catalog.Prepared(name)
	if err != nil {
		return nil, err
	}

	return e.cover(ctx, p, paths)
}

// CoverAll classifies paths against every standard, in standard name order.
func (e *Evaluator) CoverAll(ctx context.Context, paths []string) ([]*Coverage, error) {
	prepared := e.catalog.all()
	out := make([]*Coverage, len(prepared))

	g, gctx := errgroup.WithContext(ctx)
	if e.opts.Parallelism > 0 {
		g.SetLimit(e.opts.Parallelism)
	}

	for i, p := range prepared {
		g.Go(func() error {
			cov, err := e.cover(gctx, p, paths)
			if err != nil {
				return err
			}

			out[i] = cov
			return nil
		})
	}

	if err := g.Wait(); err != nil {
		return nil, err
	}

	return out, nil
}

// CoverSelected classifies paths against the standards chosen by sel.
//
// For SelectBestFit only the coverage of the best rated standard is returned.
func (e *Evaluator) CoverSelected(ctx context.Context, paths []string, sel Selection) ([]*Coverage, error) {
	e.logger.Info("mapping listing", "standards", sel.String(), "paths", len(paths))

	switch sel.Mode {
	case SelectAll:
		return e.CoverAll(ctx, paths)
	case SelectBestFit:
		results, err := e.RateAll(ctx, paths)
		if err != nil {
			return nil, err
		}

		best, err := BestFit(results)
		if err != nil {
			return nil, fmt.Errorf("evaluate best fit: %w", err)
		}

		return []*Coverage{best.Coverage}, nil
	default:
		p, err := e.selectOne(sel)
		if err != nil {
			return nil, err
		}

		cov, err := e.cover(ctx, p, paths)
		if err != nil {
			return nil, err
		}

		return []*Coverage{cov}, nil
	}
}

// RateOne classifies and rates paths against one named standard.
func (e *Evaluator) RateOne(ctx context.Context, paths []string, name string) (RatingResult, error) {
	cov, err := e.CoverOne(ctx, paths, name)
	if err != nil {
		return RatingResult{}, err
	}

	return e.result(cov), nil
}

// RateAll classifies and rates paths against every standard, in standard name order.
func (e *Evaluator) RateAll(ctx context.Context, paths []string) ([]RatingResult, error) {
	coverages, err := e.CoverAll(ctx, paths)
	if err != nil {
		return nil, err
	}

	results := make([]RatingResult, 0, len(coverages))
	for _, cov := range coverages {
		results = append(results, e.result(cov))
	}

	return results, nil
}

// RateSelected classifies and rates paths against the standards chosen by sel.
func (e *Evaluator) RateSelected(ctx context.Context, paths []string, sel Selection) ([]RatingResult, error) {
	e.logger.Info("rating listing", "standards", sel.String(), "paths", len(paths))

	switch sel.Mode {
	case SelectAll:
		return e.RateAll(ctx, paths)
	case SelectBestFit:
		results, err := e.RateAll(ctx, paths)
		if err != nil {
			return nil, err
		}

		best, err := BestFit(results)
		if err != nil {
			return nil, fmt.Errorf("evaluate best fit: %w", err)
		}

		return []RatingResult{best}, nil
	default:
		p, err := e.selectOne(sel)
		if err != nil {
			return nil, err
		}

		cov, err := e.cover(ctx, p, paths)
		if err != nil {
			return nil, err
		}

		return []RatingResult{e.result(cov)}, nil
	}
}

// selectOne resolves single-standard selection modes.
func (e *Evaluator) selectOne(sel Selection) (*Prepared, error) {
	if sel.Mode == SelectSpecific {
		return e.catalog.Prepared(sel.Name)
	}

	return e.catalog.Default()
}

// cover runs one checker over paths with cooperative cancellation.
func (e *Evaluator) cover(ctx context.Context, p *Prepared, paths []string) (*Coverage, error) {
	checker := NewChecker(p, CheckerOptions{
		Ignore:    e.opts.Ignore,
		Generated: e.opts.Generated,
		Logger:    e.logger,
	})

	for i, path := range paths {
		if i%cancelCheckInterval == 0 {
			if err := ctx.Err(); err != nil {
				return nil, fmt.Errorf("cover %s: %w", p.Name(), err)
			}
		}

		checker.Cover(path)
	}

	return checker.Finish(), nil
}

// result rates one coverage.
func (e *Evaluator) result(cov *Coverage) RatingResult {
	return RatingResult{
		Rating: Rating{
			Name:   cov.Name(),
			Factor: RateWithLogger(cov, e.logger),
		},
		Coverage: cov,
	}
}
