// Copyright 2026 The Annuaire Authors
// SPDX-License-Identifier: Apache-2.0

package dataset

import (
	"errors"
	"fmt"
	"strconv"
	"strings"
)

var (
	errMultipleMatches = errors.New("multiple matches")
	errDatasetNotFound = errors.New("dataset not found")
)

// Reference describes a known open-data directory published on
// data.gouv.fr. The loader and the server resolve datasets only through
// this registry.
type Reference struct {
	ID          int    // ID of the dataset
	Name        string // Short name used on the command line
	Description string // Human readable description
	URL         string // URL of the `;`-separated CSV export
	CityCache   string // File name of the fine-grained coordinate cache
	DeptCache   string // File name of the department coordinate cache, may be empty
}

// Validate checks if the Reference has all required fields.
// Returns an error if any required field is missing.
func (r *Reference) Validate() error {
	if r.Name == "" {
		return errors.New("dataset reference: name must not be empty")
	}

	if r.URL == "" {
		return fmt.Errorf("dataset reference %q: URL must not be empty", r.Name)
	}

	if r.CityCache == "" {
		return fmt.Errorf("dataset reference %q: city cache must not be empty", r.Name)
	}

	return nil
}

// All available datasets.
var datasets = func() []Reference {
	ret := []Reference{
		{
			ID:          1,
			Name:        "ameli",
			Description: "Professionnels de santé de l'annuaire santé Ameli",
			URL:         "https://static.data.gouv.fr/resources/annuaire-sante-ameli/20260105-014401/liste-ps-20260105-023058.csv",
			CityCache:   "villes_france_V1.csv",
			DeptCache:   "dept_coords_cache.json",
		},
		{
			ID:          2,
			Name:        "rne",
			Description: "Répertoire National des Élus (conseillers municipaux)",
			URL:         "https://static.data.gouv.fr/resources/repertoire-national-des-elus-1/20260110-090212/elus-conseillers-municipaux-cm.csv",
			CityCache:   "commune_coords_cache.json",
			DeptCache:   "dept_coords_cache.json",
		},
	}

	for i := range ret {
		if err := ret[i].Validate(); err != nil {
			panic(err)
		}
	}

	return ret
}()

// Find locates a dataset by its ID or name.
// If q represents a number, it searches by ID; otherwise, it searches by
// case-insensitive name prefix. Returns an error on no match or multiple
// matches.
func Find(q string) (*Reference, error) {
	if q == "" {
		return nil, errors.New("empty search query")
	}

	var predicate func(r *Reference) bool
	if n, err := strconv.Atoi(q); err == nil {
		predicate = func(r *Reference) bool {
			return n == r.ID
		}
	} else {
		predicate = func(r *Reference) bool {
			return len(r.Name) >= len(q) &&
				strings.EqualFold(r.Name[:len(q)], q)
		}
	}

	var found *Reference

	for i := range datasets {
		if predicate(&datasets[i]) {
			if found == nil {
				// Copy to avoid handing out a reference to the slice element
				refCopy := datasets[i]
				found = &refCopy
			} else {
				return nil, fmt.Errorf("%w for %q: %q, %q", errMultipleMatches, q, found.Name, datasets[i].Name)
			}
		}
	}

	if found == nil {
		return nil, fmt.Errorf("%w: %q", errDatasetNotFound, q)
	}

	return found, nil
}

// Each applies the given callback function to each dataset reference.
// It stops iteration and returns the error if the callback returns an error.
func Each(callback func(Reference) error) error {
	for i := range datasets {
		if err := callback(datasets[i]); err != nil {
			return err
		}
	}

	return nil
}
