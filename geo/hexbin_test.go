// Copyright 2026 The Annuaire Authors
// SPDX-License-Identifier: Apache-2.0

package geo

import (
	"testing"

	"github.com/mgirard/annuaire/dataset"
)

func enrichedRow(lat, lng, name string) dataset.Row {
	return dataset.Row{
		"ps_activite_nom": name,
		ColCityLat:        lat,
		ColCityLng:        lng,
	}
}

func enrichedTable() *dataset.Table {
	t := dataset.NewTable("ps_activite_nom", ColCityLat, ColCityLng)
	t.Append(enrichedRow("48.86", "2.35", "Dupont"))
	t.Append(enrichedRow("48.861", "2.351", "Martin"))
	t.Append(enrichedRow("45.77", "4.83", "Durand"))
	t.Append(enrichedRow("0", "0", "Sentinelle"))
	t.Append(enrichedRow("", "", "SansCoordonnées"))

	return t
}

func TestCollectPoints(t *testing.T) {
	table := enrichedTable()

	points := CollectPoints(table, func(row dataset.Row) string {
		return row.Get("ps_activite_nom")
	}, 0)

	if len(points) != 3 {
		t.Fatalf("expected 3 renderable points, got %d", len(points))
	}

	for _, p := range points {
		if p.Lat == 0 && p.Lng == 0 {
			t.Error("sentinel point leaked into the map layer")
		}

		if p.Label == "Sentinelle" || p.Label == "SansCoordonnées" {
			t.Errorf("row without coordinates leaked: %q", p.Label)
		}
	}
}

func TestCollectPoints_Limit(t *testing.T) {
	table := enrichedTable()

	points := CollectPoints(table, func(dataset.Row) string { return "" }, 2)

	if len(points) != 2 {
		t.Errorf("expected 2 points, got %d", len(points))
	}
}

func TestHexBins(t *testing.T) {
	table := enrichedTable()

	bins, err := HexBins(table, DefaultHexResolution)
	if err != nil {
		t.Fatalf("unexpected error: %s", err)
	}

	// The two Paris points land in the same resolution-5 cell; Lyon in
	// its own. The sentinel rows never count.
	if len(bins) != 2 {
		t.Fatalf("expected 2 bins, got %d: %v", len(bins), bins)
	}

	if bins[0].Count != 2 || bins[1].Count != 1 {
		t.Errorf("expected descending counts [2 1], got [%d %d]", bins[0].Count, bins[1].Count)
	}

	total := 0
	for _, b := range bins {
		total += b.Count

		if b.Cell == "" {
			t.Error("bin missing its cell identifier")
		}

		if b.Center.IsZero() {
			t.Error("bin missing its center")
		}
	}

	if total != 3 {
		t.Errorf("expected 3 binned rows, got %d", total)
	}
}

func TestHexBins_EmptyTable(t *testing.T) {
	bins, err := HexBins(dataset.NewTable(), DefaultHexResolution)
	if err != nil {
		t.Fatalf("unexpected error: %s", err)
	}

	if len(bins) != 0 {
		t.Errorf("expected no bins, got %d", len(bins))
	}
}
