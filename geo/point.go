// Copyright 2026 The Annuaire Authors
// SPDX-License-Identifier: Apache-2.0

// Package geo joins directory rows to coordinates and prepares them for
// map rendering.
package geo

import "fmt"

// Point represents a geographical point with latitude and longitude.
type Point struct {
	Lat float64 `json:"lat"`
	Lng float64 `json:"lng"`
}

// String returns a string representation of the Point.
func (p Point) String() string {
	return fmt.Sprintf("POINT(%f %f)", p.Lng, p.Lat)
}

// IsZero reports whether the point is the (0,0) "unknown location"
// sentinel. (0,0) is a valid-looking coordinate in the mid-Atlantic, so
// map layers must drop these before rendering.
func (p Point) IsZero() bool {
	return p.Lat == 0 && p.Lng == 0
}
