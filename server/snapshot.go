// Copyright 2026 The Annuaire Authors
// SPDX-License-Identifier: Apache-2.0

// Package server exposes the enriched directory over a local HTTP API.
package server

import (
	"fmt"
	"math/rand"
	"path/filepath"
	"time"

	"github.com/mgirard/annuaire/dataset"
	"github.com/mgirard/annuaire/diag"
	"github.com/mgirard/annuaire/geo"
)

// Snapshot is one fully processed pipeline run for a dataset: loaded,
// shape-detected, coordinate-enriched, plus everything non-fatal that
// happened along the way. Immutable once produced; requests filter it
// without touching it.
type Snapshot struct {
	Ref       dataset.Reference
	Table     *dataset.Table
	Shape     dataset.Shape
	Diags     []diag.Diagnostic
	FetchedAt time.Time
}

// Empty reports whether the pipeline produced no usable rows.
func (s *Snapshot) Empty() bool {
	return s.Table == nil || s.Table.Len() == 0
}

// ProviderOptions configures a SnapshotProvider.
type ProviderOptions struct {
	// CacheDir is where the coordinate cache files live.
	CacheDir string

	// TTL bounds how long snapshots and coordinate caches stay fresh.
	// Zero means dataset.DefaultTTL.
	TTL time.Duration

	// Loader used for remote fetches. Nil gets a default one.
	Loader *dataset.Loader

	// Rand drives the enrichment jitter; nil seeds from the clock.
	Rand *rand.Rand

	// Clock for TTL expiry; nil means time.Now.
	Clock dataset.Clock

	// URLOverrides replaces a dataset's remote URL by name. Used for
	// local mirrors and tests.
	URLOverrides map[string]string
}

type cacheResult struct {
	cache geo.Cache
	diags []diag.Diagnostic
}

// SnapshotProvider memoizes the load → detect → enrich pipeline per
// dataset, refreshing after the TTL. Coordinate cache files are memoized
// separately so datasets sharing a cache file share its read.
type SnapshotProvider struct {
	options   ProviderOptions
	loader    *dataset.Loader
	enricher  *geo.Enricher
	clock     dataset.Clock
	snapshots *dataset.Memo[*Snapshot]
	caches    *dataset.Memo[cacheResult]
}

// NewSnapshotProvider creates a provider.
func NewSnapshotProvider(options ProviderOptions) *SnapshotProvider {
	loader := options.Loader
	if loader == nil {
		loader = dataset.NewLoader(nil)
	}

	clock := options.Clock
	if clock == nil {
		clock = time.Now
	}

	return &SnapshotProvider{
		options:   options,
		loader:    loader,
		enricher:  geo.NewEnricher(options.Rand),
		clock:     clock,
		snapshots: dataset.NewMemo[*Snapshot](options.TTL, options.Clock),
		caches:    dataset.NewMemo[cacheResult](options.TTL, options.Clock),
	}
}

// Snapshot returns the current snapshot for the named dataset, running
// the pipeline when the memoized one has expired. The only error is an
// unknown dataset; pipeline failures come back inside the snapshot as an
// empty table plus diagnostics.
func (p *SnapshotProvider) Snapshot(name string) (*Snapshot, error) {
	ref, err := dataset.Find(name)
	if err != nil {
		return nil, fmt.Errorf("resolving dataset %q: %w", name, err)
	}

	snapshot := p.snapshots.Get(ref.Name, func() *Snapshot {
		return p.build(ref)
	})

	return snapshot, nil
}

func (p *SnapshotProvider) build(ref *dataset.Reference) *Snapshot {
	url := ref.URL
	if override, ok := p.options.URLOverrides[ref.Name]; ok {
		url = override
	}

	table, diags := p.loader.Fetch(ref.Name, url)
	shape := dataset.DetectShape(table)

	cityCache, cityDiags := p.coordinateCache(ref.CityCache)
	diags = append(diags, cityDiags...)

	var deptCache geo.Cache

	if ref.DeptCache != "" {
		var deptDiags []diag.Diagnostic

		deptCache, deptDiags = p.coordinateCache(ref.DeptCache)
		diags = append(diags, deptDiags...)
	}

	p.enricher.Enrich(table, shape, cityCache, deptCache)

	return &Snapshot{
		Ref:       *ref,
		Table:     table,
		Shape:     shape,
		Diags:     diags,
		FetchedAt: p.clock(),
	}
}

// coordinateCache loads a cache file through the memo so repeated builds
// within the TTL reuse the same read.
func (p *SnapshotProvider) coordinateCache(file string) (geo.Cache, []diag.Diagnostic) {
	path := filepath.Join(p.options.CacheDir, file)

	result := p.caches.Get(path, func() cacheResult {
		cache, diags := geo.LoadCache(path)

		return cacheResult{cache: cache, diags: diags}
	})

	return result.cache, result.diags
}
