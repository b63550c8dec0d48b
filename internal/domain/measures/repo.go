package measures

import (
	"context"
)

// AggregateTotals holds summed counts for one measure relation. NULL sums
// from an empty relation are reported as zeros.
type AggregateTotals struct {
	Denominator int64
	Numerator   int64
}

// PatientRow is one patient's row in a measure relation, with the
// measure-specific extra columns keyed by column name.
type PatientRow struct {
	Denominator int64
	Numerator   int64
	Extra       map[string]any
}

// Repository reads the externally-maintained measure relations. The process
// holds no authoritative copy of any of this data; every call reconstructs
// its result from the storage engine.
type Repository interface {
	// AggregateTotals sums denominator and numerator over the relation.
	AggregateTotals(ctx context.Context, relation string) (*AggregateTotals, error)

	// PatientDetails returns the full row projection of the relation,
	// ordered by full_name ascending.
	PatientDetails(ctx context.Context, relation string) ([]*PatientMeasure, error)

	// PatientRow returns the relation's row for one patient, including the
	// named extra columns, or (nil, nil) when the patient has no row.
	PatientRow(ctx context.Context, relation string, extraColumns []string, patientID string) (*PatientRow, error)

	// Ping runs a trivial connectivity probe.
	Ping(ctx context.Context) error
}
