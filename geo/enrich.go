// Copyright 2026 The Annuaire Authors
// SPDX-License-Identifier: Apache-2.0

package geo

import (
	"math"
	"math/rand"
	"strconv"
	"strings"
	"time"

	"github.com/mgirard/annuaire/dataset"
)

// Columns added by the enrichment. Values are decimal-degree strings;
// unresolved coordinates hold the "0" sentinel.
const (
	ColCityLat = "latitude_ville"
	ColCityLng = "longitude_ville"
	ColDeptLat = "latitude_departement"
	ColDeptLng = "longitude_departement"
)

// Jitter spread per granularity. Department centroids collect far more
// rows than commune centroids, so they get a wider spread to avoid
// overplotting; commune points only need enough to separate neighbours.
const (
	FineJitterSigma   = 0.002
	CoarseJitterSigma = 0.02
)

// Enricher joins rows to coordinates and jitters resolved points. The
// jitter exists purely for visual separation on the map; it only needs to
// be reproducible in distribution, so production seeds from the clock and
// tests inject a fixed source.
type Enricher struct {
	rng *rand.Rand
}

// NewEnricher creates an enricher. A nil rng is seeded from the clock.
func NewEnricher(rng *rand.Rand) *Enricher {
	if rng == nil {
		rng = rand.New(rand.NewSource(time.Now().UnixNano())) // #nosec G404 - jitter is cosmetic
	}

	return &Enricher{rng: rng}
}

// Enrich adds the four coordinate columns to the table, resolving the
// fine granularity through cityCache (keyed by the shape's city key) and
// the coarse granularity through deptCache (keyed by the department
// label). The two granularities are computed independently: resolving one
// says nothing about the other. An empty table is returned untouched, no
// columns added.
func (e *Enricher) Enrich(t *dataset.Table, shape dataset.Shape, cityCache, deptCache Cache) {
	if t.Len() == 0 {
		return
	}

	e.enrichGranularity(t, shape.CityKeyColumn, cityCache, ColCityLat, ColCityLng, FineJitterSigma)
	e.enrichGranularity(t, shape.DepartmentColumn, deptCache, ColDeptLat, ColDeptLng, CoarseJitterSigma)
}

func (e *Enricher) enrichGranularity(t *dataset.Table, keyColumn string, cache Cache, latCol, lngCol string, sigma float64) {
	t.AddColumn(latCol)
	t.AddColumn(lngCol)

	// No key column for this granularity: every row gets the sentinel
	if keyColumn == "" || !t.HasColumn(keyColumn) {
		for _, row := range t.Rows {
			row[latCol], row[lngCol] = "0", "0"
		}

		return
	}

	for _, row := range t.Rows {
		key := normalizeKey(row.Get(keyColumn))
		if key == "" {
			row[latCol], row[lngCol] = "0", "0"

			continue
		}

		point, ok := cache.Lookup(key)
		if !ok {
			row[latCol], row[lngCol] = "0", "0"

			continue
		}

		// Both components resolved: jitter each independently
		row[latCol] = formatCoord(point.Lat + e.rng.NormFloat64()*sigma)
		row[lngCol] = formatCoord(point.Lng + e.rng.NormFloat64()*sigma)
	}
}

// normalizeKey trims the key and collapses float-formatted postal codes
// ("75001.0" comes out of spreadsheet exports) to their integer form.
func normalizeKey(key string) string {
	key = strings.TrimSpace(key)
	if key == "" || !strings.Contains(key, ".") {
		return key
	}

	f, err := strconv.ParseFloat(key, 64)
	if err != nil || f != math.Trunc(f) {
		return key
	}

	return strconv.FormatInt(int64(f), 10)
}

func formatCoord(v float64) string {
	return strconv.FormatFloat(v, 'f', -1, 64)
}

// Coord reads a coordinate column back as a float. ok is false for
// missing or unparsable cells.
func Coord(row dataset.Row, column string) (float64, bool) {
	v, err := strconv.ParseFloat(row.Get(column), 64)
	if err != nil {
		return 0, false
	}

	return v, true
}

// RowPoint reads the city-granularity coordinates of an enriched row.
// ok is false when either component is missing or when the pair is the
// (0,0) sentinel.
func RowPoint(row dataset.Row) (Point, bool) {
	lat, okLat := Coord(row, ColCityLat)
	lng, okLng := Coord(row, ColCityLng)

	if !okLat || !okLng {
		return Point{}, false
	}

	p := Point{Lat: lat, Lng: lng}
	if p.IsZero() {
		return Point{}, false
	}

	return p, true
}
