package measures

// CatalogEntry binds a measure identifier to its backing relation. Relation
// names reach SQL text only through this catalog; they are never taken from
// caller input, because identifiers cannot be parameter-bound.
type CatalogEntry struct {
	ID       string `json:"measure_id"`
	Name     string `json:"measure_name"`
	Relation string `json:"-"`

	// PatientInfoColumns are measure-specific columns surfaced under
	// additional_info on the per-patient endpoint. Entries without them are
	// skipped by the per-patient sweep.
	PatientInfoColumns []string `json:"-"`
}

// Catalog is the static measure registry. It is built once at startup and
// never mutated; lookups are exact-match and case-sensitive.
type Catalog struct {
	entries []CatalogEntry
	byID    map[string]*CatalogEntry
}

// NewCatalog builds a catalog preserving declaration order.
func NewCatalog(entries ...CatalogEntry) *Catalog {
	c := &Catalog{
		entries: entries,
		byID:    make(map[string]*CatalogEntry, len(entries)),
	}
	for i := range c.entries {
		c.byID[c.entries[i].ID] = &c.entries[i]
	}
	return c
}

// DefaultCatalog returns the three measures fixed at build time.
func DefaultCatalog() *Catalog {
	return NewCatalog(
		CatalogEntry{
			ID:                 "HEDIS-DM-A1C",
			Name:               "Diabetes Care - Hemoglobin A1c",
			Relation:           "quality_measures.hedis_diabetes_care_hemoglobin_a1c",
			PatientInfoColumns: []string{"most_recent_a1c", "most_recent_a1c_date"},
		},
		CatalogEntry{
			ID:                 "HEDIS-BCS",
			Name:               "Breast Cancer Screening",
			Relation:           "quality_measures.hedis_breast_cancer_screening",
			PatientInfoColumns: []string{"last_screening_date", "screening_count"},
		},
		CatalogEntry{
			ID:       "HVBP-PSI-04",
			Name:     "Death among surgical inpatients",
			Relation: "quality_measures.hvbp_patient_safety_indicator",
		},
	)
}

// Entries returns all entries in declaration order.
func (c *Catalog) Entries() []CatalogEntry {
	return c.entries
}

// Lookup resolves a measure id. The second return is false for unknown ids,
// which callers surface as NotFound rather than a query failure.
func (c *Catalog) Lookup(id string) (*CatalogEntry, bool) {
	e, ok := c.byID[id]
	return e, ok
}
