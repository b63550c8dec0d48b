package measures

import (
	"context"
	"errors"
	"fmt"
	"sort"

	"github.com/rs/zerolog"

	"github.com/vbc/vbc/internal/platform/metrics"
)

// ErrMeasureNotFound marks a measure id that does not resolve in the
// catalog, as opposed to a query execution failure.
var ErrMeasureNotFound = errors.New("measure not found")

type Service struct {
	repo    Repository
	catalog *Catalog
	logger  zerolog.Logger
}

func NewService(repo Repository, catalog *Catalog, logger zerolog.Logger) *Service {
	return &Service{repo: repo, catalog: catalog, logger: logger}
}

// Catalog returns the service's measure catalog.
func (s *Service) Catalog() *Catalog {
	return s.catalog
}

// ListMeasures sweeps the catalog and aggregates each measure independently.
// A failing relation is logged and omitted from the result rather than
// failing the listing; callers cannot distinguish "query failed" from "no
// qualifying data" here, which is inherited behavior kept for compatibility.
// The measure_queries_total metric keeps failures visible to operators.
func (s *Service) ListMeasures(ctx context.Context) []*QualityMeasure {
	result := make([]*QualityMeasure, 0, len(s.catalog.Entries()))

	for _, entry := range s.catalog.Entries() {
		totals, err := s.repo.AggregateTotals(ctx, entry.Relation)
		metrics.RecordMeasureQuery(entry.ID, err)
		if err != nil {
			s.logger.Error().
				Err(err).
				Str("measure_id", entry.ID).
				Msg("measure aggregate query failed, omitting from listing")
			continue
		}

		result = append(result, &QualityMeasure{
			MeasureID:       entry.ID,
			MeasureName:     entry.Name,
			Denominator:     totals.Denominator,
			Numerator:       totals.Numerator,
			Rate:            Rate(totals.Numerator, totals.Denominator),
			MeasurementDate: Today(),
		})
	}

	return result
}

// GetMeasureDetails returns the aggregate summary and full patient
// projection for one measure. Unknown ids return ErrMeasureNotFound; any
// query failure is returned to the caller, unlike the listing sweep.
func (s *Service) GetMeasureDetails(ctx context.Context, measureID string) (*MeasureSummary, error) {
	entry, ok := s.catalog.Lookup(measureID)
	if !ok {
		return nil, ErrMeasureNotFound
	}

	totals, err := s.repo.AggregateTotals(ctx, entry.Relation)
	metrics.RecordMeasureQuery(entry.ID, err)
	if err != nil {
		return nil, fmt.Errorf("measure %s summary: %w", measureID, err)
	}

	details, err := s.repo.PatientDetails(ctx, entry.Relation)
	if err != nil {
		return nil, fmt.Errorf("measure %s details: %w", measureID, err)
	}
	if details == nil {
		details = []*PatientMeasure{}
	}

	// The repository orders by full_name already; sorting here keeps the
	// contract independent of storage collation.
	sort.SliceStable(details, func(i, j int) bool {
		return details[i].FullName < details[j].FullName
	})

	return &MeasureSummary{
		MeasureID:        entry.ID,
		MeasureName:      entry.Name,
		TotalDenominator: totals.Denominator,
		TotalNumerator:   totals.Numerator,
		OverallRate:      Rate(totals.Numerator, totals.Denominator),
		PatientDetails:   details,
	}, nil
}

// GetPatientMeasures sweeps the measures that define per-patient detail
// columns. A patient with no row in a relation is simply omitted; patient
// existence is never verified. Query failures surface to the caller.
func (s *Service) GetPatientMeasures(ctx context.Context, patientID string) ([]*PatientMeasureEntry, error) {
	entries := make([]*PatientMeasureEntry, 0)

	for _, entry := range s.catalog.Entries() {
		if len(entry.PatientInfoColumns) == 0 {
			continue
		}

		row, err := s.repo.PatientRow(ctx, entry.Relation, entry.PatientInfoColumns, patientID)
		if err != nil {
			return nil, fmt.Errorf("patient %s measure %s: %w", patientID, entry.ID, err)
		}
		if row == nil {
			continue
		}

		entries = append(entries, &PatientMeasureEntry{
			MeasureID:      entry.ID,
			MeasureName:    entry.Name,
			Denominator:    row.Denominator,
			Numerator:      row.Numerator,
			AdditionalInfo: row.Extra,
		})
	}

	return entries, nil
}

// Refresh acknowledges a refresh request. Recomputation of the measure
// relations belongs to the external transformation job; this only records
// intent.
func (s *Service) Refresh(ctx context.Context) {
	s.logger.Info().Msg("quality measures refresh requested")
}

// Ping probes storage connectivity.
func (s *Service) Ping(ctx context.Context) error {
	return s.repo.Ping(ctx)
}
