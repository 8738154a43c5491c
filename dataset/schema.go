// Copyright 2026 The Annuaire Authors
// SPDX-License-Identifier: Apache-2.0

package dataset

// Column names that mark the known dataset shapes. Column presence, not a
// type tag, decides which schema-specific path runs.
const (
	colPsName      = "ps_activite_nom"
	colPsFirstName = "ps_activite_prenom"
	colPsCivility  = "ps_activite_civilite"
	colPsCity      = "coordonnees_ville"
	colPsPostal    = "coordonnees_code_postal"
	colPsSpecialty = "specialite_libelle"

	colEluName      = "Nom de l'élu"
	colEluFirstName = "Prénom de l'élu"
	colEluGender    = "Code sexe"
	colEluCommune   = "Libellé de la commune"
	colEluPostal    = "Code postal"

	// The section column takes priority over the plain department column.
	colDeptSection = "Libellé de la section départementale"
	colDept        = "Libellé du département"
)

// Kind identifies which of the known dataset shapes a table matches.
type Kind int

const (
	// KindUnknown means no marker column matched; geographic enrichment
	// and column filters are disabled for such tables.
	KindUnknown Kind = iota
	// KindHealthPro is the Ameli health-professional directory.
	KindHealthPro
	// KindElected is the Répertoire National des Élus.
	KindElected
)

// String returns the short name of the dataset kind.
func (k Kind) String() string {
	switch k {
	case KindHealthPro:
		return "professionnels de santé"
	case KindElected:
		return "élus"
	default:
		return "unknown"
	}
}

// Shape carries the resolved column names for a detected dataset shape.
// Downstream components consume these names, never raw literals, so a new
// dataset shape is one more variant here and no change to the algorithms.
// An empty column name means the feature it backs is disabled.
type Shape struct {
	Kind Kind

	NameColumn      string
	FirstNameColumn string
	GenderColumn    string
	CityColumn      string // display column for the city/commune
	PostalColumn    string

	// CityKeyColumn joins rows to the fine-grained coordinate cache
	// (postal code for Ameli, commune label for the RNE).
	CityKeyColumn string

	// DepartmentColumn joins rows to the department coordinate cache and
	// backs the geography multiselect.
	DepartmentColumn string

	SpecialtyColumn string

	// SearchColumns is the fixed set of textual columns the free-text
	// search scans, restricted to those present in the table.
	SearchColumns []string
}

// present filters the candidate columns down to those the table has.
func present(t *Table, candidates ...string) []string {
	ret := make([]string, 0, len(candidates))

	for _, c := range candidates {
		if c != "" && t.HasColumn(c) {
			ret = append(ret, c)
		}
	}

	return ret
}

// pick returns the first candidate column present in the table.
func pick(t *Table, candidates ...string) string {
	for _, c := range candidates {
		if t.HasColumn(c) {
			return c
		}
	}

	return ""
}

// DetectShape inspects the table's column set and resolves the matching
// shape. Stateless; invoked once per loaded table.
func DetectShape(t *Table) Shape {
	switch {
	case t.HasColumn(colPsName):
		shape := Shape{
			Kind:             KindHealthPro,
			NameColumn:       colPsName,
			FirstNameColumn:  pick(t, colPsFirstName),
			GenderColumn:     pick(t, colPsCivility),
			CityColumn:       pick(t, colPsCity),
			PostalColumn:     pick(t, colPsPostal),
			CityKeyColumn:    pick(t, colPsPostal),
			DepartmentColumn: pick(t, colDeptSection, colDept),
			SpecialtyColumn:  pick(t, colPsSpecialty),
		}
		shape.SearchColumns = present(t, colPsName, colPsFirstName, colPsCity, colPsPostal)

		return shape
	case t.HasColumn(colEluName):
		shape := Shape{
			Kind:             KindElected,
			NameColumn:       colEluName,
			FirstNameColumn:  pick(t, colEluFirstName),
			GenderColumn:     pick(t, colEluGender),
			CityColumn:       pick(t, colEluCommune),
			PostalColumn:     pick(t, colEluPostal),
			CityKeyColumn:    pick(t, colEluCommune),
			DepartmentColumn: pick(t, colDeptSection, colDept),
			SpecialtyColumn:  "",
		}
		shape.SearchColumns = present(t, colEluName, colEluFirstName, colEluCommune, colEluPostal)

		return shape
	default:
		return Shape{Kind: KindUnknown}
	}
}
