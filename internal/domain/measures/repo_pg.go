package measures

import (
	"context"
	"fmt"
	"strings"
	"time"

	"github.com/jackc/pgx/v5/pgxpool"

	"github.com/vbc/vbc/internal/platform/db"
)

type repoPG struct {
	pool         *pgxpool.Pool
	queryTimeout time.Duration
}

// NewRepoPG creates the Postgres-backed repository. Every query carries a
// bounded deadline so a stalled database cannot hang the request goroutine.
func NewRepoPG(pool *pgxpool.Pool, queryTimeout time.Duration) Repository {
	if queryTimeout <= 0 {
		queryTimeout = 5 * time.Second
	}
	return &repoPG{pool: pool, queryTimeout: queryTimeout}
}

func (r *repoPG) withTimeout(ctx context.Context) (context.Context, context.CancelFunc) {
	return context.WithTimeout(ctx, r.queryTimeout)
}

// Relation names below are interpolated because identifiers cannot be
// parameter-bound. They come exclusively from the static catalog; caller
// values only ever appear as bound parameters.

func (r *repoPG) AggregateTotals(ctx context.Context, relation string) (*AggregateTotals, error) {
	ctx, cancel := r.withTimeout(ctx)
	defer cancel()

	var denominator, numerator *int64
	err := r.pool.QueryRow(ctx,
		`SELECT SUM(denominator), SUM(numerator) FROM `+relation,
	).Scan(&denominator, &numerator)
	if err != nil {
		return nil, fmt.Errorf("aggregate %s: %w", relation, err)
	}

	totals := &AggregateTotals{}
	if denominator != nil {
		totals.Denominator = *denominator
	}
	if numerator != nil {
		totals.Numerator = *numerator
	}
	return totals, nil
}

func (r *repoPG) PatientDetails(ctx context.Context, relation string) ([]*PatientMeasure, error) {
	ctx, cancel := r.withTimeout(ctx)
	defer cancel()

	rows, err := r.pool.Query(ctx, `
		SELECT patient_id::text, mrn, full_name, age_years,
			denominator, numerator, measurement_date
		FROM `+relation+`
		ORDER BY full_name`)
	if err != nil {
		return nil, fmt.Errorf("patient details %s: %w", relation, err)
	}
	defer rows.Close()

	var details []*PatientMeasure
	for rows.Next() {
		var pm PatientMeasure
		var measuredAt time.Time
		if err := rows.Scan(&pm.PatientID, &pm.MRN, &pm.FullName, &pm.AgeYears,
			&pm.Denominator, &pm.Numerator, &measuredAt); err != nil {
			return nil, fmt.Errorf("scan patient details %s: %w", relation, err)
		}
		pm.MeasurementDate = NewDate(measuredAt)
		details = append(details, &pm)
	}
	if err := rows.Err(); err != nil {
		return nil, fmt.Errorf("patient details %s: %w", relation, err)
	}
	return details, nil
}

func (r *repoPG) PatientRow(ctx context.Context, relation string, extraColumns []string, patientID string) (*PatientRow, error) {
	ctx, cancel := r.withTimeout(ctx)
	defer cancel()

	cols := "denominator, numerator"
	if len(extraColumns) > 0 {
		cols += ", " + strings.Join(extraColumns, ", ")
	}

	rows, err := r.pool.Query(ctx,
		`SELECT `+cols+` FROM `+relation+` WHERE patient_id = $1`,
		patientID)
	if err != nil {
		return nil, fmt.Errorf("patient row %s: %w", relation, err)
	}
	defer rows.Close()

	if !rows.Next() {
		if err := rows.Err(); err != nil {
			return nil, fmt.Errorf("patient row %s: %w", relation, err)
		}
		return nil, nil
	}

	values, err := rows.Values()
	if err != nil {
		return nil, fmt.Errorf("patient row values %s: %w", relation, err)
	}
	fields := rows.FieldDescriptions()

	row := &PatientRow{Extra: make(map[string]any, len(extraColumns))}
	for i, fd := range fields {
		switch name := string(fd.Name); name {
		case "denominator":
			row.Denominator = toInt64(values[i])
		case "numerator":
			row.Numerator = toInt64(values[i])
		default:
			row.Extra[name] = normalizeValue(values[i])
		}
	}
	return row, nil
}

func (r *repoPG) Ping(ctx context.Context) error {
	return db.Probe(ctx, r.pool, r.queryTimeout)
}

func toInt64(v any) int64 {
	switch n := v.(type) {
	case int64:
		return n
	case int32:
		return int64(n)
	case int16:
		return int64(n)
	case int:
		return int64(n)
	case float64:
		return int64(n)
	default:
		return 0
	}
}

// normalizeValue keeps additional_info JSON-friendly: timestamps become
// calendar dates, everything else passes through as the driver returned it.
func normalizeValue(v any) any {
	if t, ok := v.(time.Time); ok {
		return NewDate(t)
	}
	return v
}
