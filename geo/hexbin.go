// Copyright 2026 The Annuaire Authors
// SPDX-License-Identifier: Apache-2.0

package geo

import (
	"fmt"
	"sort"

	"github.com/mgirard/annuaire/dataset"
	"github.com/uber/h3-go/v4"
)

// DefaultHexResolution is the H3 resolution used for the map's hexagonal
// aggregation; resolution 5 cells are ~8 km across, about right for a
// country-level view of France.
const DefaultHexResolution = 5

// MaxMapPoints caps the individual-point layer; beyond this the map is
// unreadable anyway and the hexagon layer is the better view.
const MaxMapPoints = 10000

// MapPoint is one renderable marker.
type MapPoint struct {
	Lat   float64 `json:"lat"`
	Lng   float64 `json:"lng"`
	Label string  `json:"label"`
}

// CollectPoints extracts renderable points from an enriched table,
// dropping sentinel and unparsable coordinates. label builds the marker
// tooltip from the row; limit <= 0 falls back to MaxMapPoints.
func CollectPoints(t *dataset.Table, label func(dataset.Row) string, limit int) []MapPoint {
	if limit <= 0 {
		limit = MaxMapPoints
	}

	ret := make([]MapPoint, 0, min(t.Len(), limit))

	for _, row := range t.Rows {
		point, ok := RowPoint(row)
		if !ok {
			continue
		}

		ret = append(ret, MapPoint{Lat: point.Lat, Lng: point.Lng, Label: label(row)})

		if len(ret) >= limit {
			break
		}
	}

	return ret
}

// HexBin is an aggregated cell of the hexagon layer.
type HexBin struct {
	Cell   string `json:"cell"`
	Center Point  `json:"center"`
	Count  int    `json:"count"`
}

// HexBins aggregates the enriched rows into H3 cells at the given
// resolution, skipping sentinel coordinates. Bins come back ordered by
// descending count.
func HexBins(t *dataset.Table, resolution int) ([]HexBin, error) {
	if resolution <= 0 {
		resolution = DefaultHexResolution
	}

	counts := make(map[h3.Cell]int)

	for _, row := range t.Rows {
		point, ok := RowPoint(row)
		if !ok {
			continue
		}

		cell, err := h3.LatLngToCell(h3.NewLatLng(point.Lat, point.Lng), resolution)
		if err != nil {
			return nil, fmt.Errorf("converting to h3 cell at res %d: %w", resolution, err)
		}

		counts[cell]++
	}

	ret := make([]HexBin, 0, len(counts))

	for cell, n := range counts {
		center, err := h3.CellToLatLng(cell)
		if err != nil {
			return nil, fmt.Errorf("computing h3 cell center: %w", err)
		}

		ret = append(ret, HexBin{
			Cell:   cell.String(),
			Center: Point{Lat: center.Lat, Lng: center.Lng},
			Count:  n,
		})
	}

	sort.Slice(ret, func(i, j int) bool {
		if ret[i].Count != ret[j].Count {
			return ret[i].Count > ret[j].Count
		}

		return ret[i].Cell < ret[j].Cell
	})

	return ret, nil
}
