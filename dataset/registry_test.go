// Copyright 2026 The Annuaire Authors
// SPDX-License-Identifier: Apache-2.0

package dataset

import (
	"errors"
	"strings"
	"testing"
)

func TestFind(t *testing.T) {
	// table-driven test cases
	tests := []struct {
		name         string
		query        string
		expectedName string
		expectErr    string
	}{
		{
			name:         "NumericMatch",
			query:        "1",
			expectedName: "ameli",
		},
		{
			name:         "StringExactMatch",
			query:        "rne",
			expectedName: "rne",
		},
		{
			name:         "CaseInsensitiveMatch",
			query:        "AmElI",
			expectedName: "ameli",
		},
		{
			name:         "CasePrefixMatch",
			query:        "AM",
			expectedName: "ameli",
		},
		{
			name:      "NoMatch",
			query:     "xxx",
			expectErr: "not found",
		},
		{
			name:      "NumericNoMatch",
			query:     "99",
			expectErr: "not found",
		},
		{
			name:      "EmptyQuery",
			query:     "",
			expectErr: "empty search query",
		},
	}

	for _, tc := range tests {
		t.Run(tc.name, func(t *testing.T) {
			got, err := Find(tc.query)
			if tc.expectErr != "" {
				switch {
				case got != nil:
					t.Errorf("Find(%q) expected nil reference", tc.query)
				case err == nil:
					t.Errorf("Find(%q) expected error but got none", tc.query)
				case !strings.Contains(err.Error(), tc.expectErr):
					t.Errorf("Find(%q) expecting %v but got : %v", tc.query, tc.expectErr, err)
				}
			} else {
				if err != nil {
					t.Errorf("Find(%q) unexpected error: %v", tc.query, err)
				}

				if got == nil {
					t.Errorf("Find(%q) expected %q but got nil", tc.query, tc.expectedName)
				} else if got.Name != tc.expectedName {
					t.Errorf("Find(%q) expected dataset name %q, got %q", tc.query, tc.expectedName, got.Name)
				}
			}
		})
	}
}

func TestFind_ReturnsCopy(t *testing.T) {
	a, err := Find("ameli")
	if err != nil {
		t.Fatalf("unexpected error: %s", err)
	}

	a.Name = "mutated"

	b, err := Find("ameli")
	if err != nil {
		t.Fatalf("unexpected error: %s", err)
	}

	if b.Name != "ameli" {
		t.Errorf("registry entry leaked: got %q", b.Name)
	}
}

func TestEach_Ok(t *testing.T) {
	var found []string

	err := Each(func(ref Reference) error {
		found = append(found, ref.Name)

		return nil
	})
	if err != nil {
		t.Errorf("unexpected error: %s", err)
	} else if expected, got := "ameli", found[0]; expected != got {
		t.Errorf("expected %q, got %q", expected, got)
	} else if expected, got := "rne", found[len(found)-1]; expected != got {
		t.Errorf("expected %q, got %q", expected, got)
	}
}

func TestEach_Err(t *testing.T) {
	i := 0

	err := Each(func(Reference) error {
		i++

		return errors.New("fail")
	})
	if err == nil {
		t.Error("expected error, got none")
	}

	if i != 1 {
		t.Errorf("expected iteration to stop after 1 callback, got %d", i)
	}
}

func TestReferenceValidate(t *testing.T) {
	tests := []struct {
		name      string
		ref       Reference
		expectErr string
	}{
		{
			name: "Valid",
			ref:  Reference{Name: "x", URL: "http://example.org", CityCache: "c.csv"},
		},
		{
			name:      "MissingName",
			ref:       Reference{URL: "http://example.org", CityCache: "c.csv"},
			expectErr: "name must not be empty",
		},
		{
			name:      "MissingURL",
			ref:       Reference{Name: "x", CityCache: "c.csv"},
			expectErr: "URL must not be empty",
		},
		{
			name:      "MissingCityCache",
			ref:       Reference{Name: "x", URL: "http://example.org"},
			expectErr: "city cache must not be empty",
		},
	}

	for _, tc := range tests {
		t.Run(tc.name, func(t *testing.T) {
			err := tc.ref.Validate()
			if tc.expectErr == "" {
				if err != nil {
					t.Errorf("unexpected error: %s", err)
				}
			} else if err == nil || !strings.Contains(err.Error(), tc.expectErr) {
				t.Errorf("expecting %q, got: %v", tc.expectErr, err)
			}
		})
	}
}
