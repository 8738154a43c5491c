// Copyright 2026 The Annuaire Authors
// SPDX-License-Identifier: Apache-2.0

package geo

import (
	"encoding/csv"
	"encoding/json"
	"errors"
	"io"
	"os"
	"path/filepath"
	"strconv"
	"strings"

	"github.com/mgirard/annuaire/diag"
)

// Cache maps a geographic key (postal code, commune label, or department
// label) to its coordinates. Lookup is exact-string-match only: no fuzzy
// matching, no falling back from commune to department. Built once at load
// time and read-only afterwards.
type Cache map[string]Point

// Lookup resolves a key. A miss is not an error; it yields null
// coordinates downstream.
func (c Cache) Lookup(key string) (Point, bool) {
	p, ok := c[key]

	return p, ok
}

// LoadCache reads a coordinate cache from path. Two source forms are
// supported and normalized to the same internal representation:
//
//   - a `;`-separated text file with a key column (`code_postal`, or the
//     first column) and coordinates from named `lat`/`lon` columns, with a
//     positional fallback of (key, lon, lat);
//   - a JSON object mapping key to a [lon, lat] pair.
//
// On any read or parse failure the load degrades: a warning diagnostic
// plus DefaultDepartmentCoords when the file name marks a
// department-scoped cache, an empty cache otherwise. No retries.
func LoadCache(path string) (Cache, []diag.Diagnostic) {
	f, err := os.Open(filepath.Clean(path))
	if err != nil {
		return fallbackCache(path, err)
	}

	defer func() {
		_ = f.Close()
	}()

	var cache Cache

	if strings.EqualFold(filepath.Ext(path), ".json") {
		cache, err = parseJSONCache(f)
	} else {
		cache, err = parseCSVCache(f)
	}

	if err != nil {
		return fallbackCache(path, err)
	}

	return cache, nil
}

// Department-scoped caches are identified by a naming convention on the
// source file.
func isDepartmentScoped(path string) bool {
	return strings.Contains(strings.ToLower(filepath.Base(path)), "dept")
}

func fallbackCache(path string, err error) (Cache, []diag.Diagnostic) {
	diags := []diag.Diagnostic{diag.Warningf("loading coordinate cache %q: %v", path, err)}

	if isDepartmentScoped(path) {
		return DefaultDepartmentCoords, diags
	}

	return Cache{}, diags
}

// parseJSONCache reads the serialized key -> [lon, lat] form.
func parseJSONCache(r io.Reader) (Cache, error) {
	var raw map[string][2]float64

	dec := json.NewDecoder(r)
	if err := dec.Decode(&raw); err != nil {
		return nil, err
	}

	cache := make(Cache, len(raw))
	for key, pair := range raw {
		cache[key] = Point{Lng: pair[0], Lat: pair[1]}
	}

	return cache, nil
}

var errEmptyCacheFile = errors.New("empty cache file")

// parseCSVCache reads the delimited-text form.
func parseCSVCache(r io.Reader) (Cache, error) {
	cr := csv.NewReader(r)
	cr.Comma = ';'
	cr.FieldsPerRecord = -1
	cr.LazyQuotes = true

	header, err := cr.Read()
	if err != nil {
		return nil, errEmptyCacheFile
	}

	keyIdx, latIdx, lonIdx := 0, -1, -1

	for i, col := range header {
		switch strings.ToLower(strings.TrimSpace(col)) {
		case "code_postal":
			keyIdx = i
		case "lat", "latitude":
			latIdx = i
		case "lon", "lng", "longitude":
			lonIdx = i
		}
	}

	// Positional fallback: key; lon; lat
	if latIdx < 0 || lonIdx < 0 {
		if len(header) < 3 {
			return nil, errors.New("cache file needs key, lon and lat columns")
		}

		lonIdx, latIdx = 1, 2
	}

	cache := make(Cache)

	for {
		record, err := cr.Read()
		if errors.Is(err, io.EOF) {
			break
		}

		if err != nil {
			// Malformed rows are skipped, not fatal to the whole load
			var parseErr *csv.ParseError
			if errors.As(err, &parseErr) {
				continue
			}

			return nil, err
		}

		if len(record) <= keyIdx || len(record) <= latIdx || len(record) <= lonIdx {
			continue
		}

		key := strings.TrimSpace(record[keyIdx])
		if key == "" {
			continue
		}

		lat, errLat := strconv.ParseFloat(strings.TrimSpace(record[latIdx]), 64)
		lon, errLon := strconv.ParseFloat(strings.TrimSpace(record[lonIdx]), 64)

		if errLat != nil || errLon != nil {
			continue
		}

		cache[key] = Point{Lat: lat, Lng: lon}
	}

	return cache, nil
}
