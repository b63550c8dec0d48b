package measures

import (
	"fmt"
	"math"
	"time"
)

// Date is a calendar date serialized as YYYY-MM-DD.
type Date struct {
	time.Time
}

// NewDate truncates t to its calendar date.
func NewDate(t time.Time) Date {
	return Date{time.Date(t.Year(), t.Month(), t.Day(), 0, 0, 0, 0, time.UTC)}
}

// Today returns the current calendar date.
func Today() Date {
	return NewDate(time.Now())
}

func (d Date) MarshalJSON() ([]byte, error) {
	return []byte(`"` + d.Format("2006-01-02") + `"`), nil
}

func (d *Date) UnmarshalJSON(b []byte) error {
	s := string(b)
	if len(s) < 2 || s[0] != '"' || s[len(s)-1] != '"' {
		return fmt.Errorf("invalid date %s", s)
	}
	t, err := time.Parse("2006-01-02", s[1:len(s)-1])
	if err != nil {
		return fmt.Errorf("invalid date %s: %w", s, err)
	}
	d.Time = t
	return nil
}

// QualityMeasure is one measure's aggregate numerator/denominator counts and
// derived percentage rate.
type QualityMeasure struct {
	MeasureID       string  `json:"measure_id"`
	MeasureName     string  `json:"measure_name"`
	Denominator     int64   `json:"denominator"`
	Numerator       int64   `json:"numerator"`
	Rate            float64 `json:"rate"`
	MeasurementDate Date    `json:"measurement_date"`
}

// PatientMeasure is one patient's contribution to a measure.
type PatientMeasure struct {
	PatientID       string `json:"patient_id"`
	MRN             string `json:"mrn"`
	FullName        string `json:"full_name"`
	AgeYears        int    `json:"age_years"`
	Denominator     int64  `json:"denominator"`
	Numerator       int64  `json:"numerator"`
	MeasurementDate Date   `json:"measurement_date"`
}

// MeasureSummary is the detail view of a measure: aggregate totals plus the
// full patient projection ordered by full name.
type MeasureSummary struct {
	MeasureID        string            `json:"measure_id"`
	MeasureName      string            `json:"measure_name"`
	TotalDenominator int64             `json:"total_denominator"`
	TotalNumerator   int64             `json:"total_numerator"`
	OverallRate      float64           `json:"overall_rate"`
	PatientDetails   []*PatientMeasure `json:"patient_details"`
}

// PatientMeasureEntry is one measure's row for a specific patient. The
// additional_info payload is measure-specific and deliberately untyped.
type PatientMeasureEntry struct {
	MeasureID      string         `json:"measure_id"`
	MeasureName    string         `json:"measure_name"`
	Denominator    int64          `json:"denominator"`
	Numerator      int64          `json:"numerator"`
	AdditionalInfo map[string]any `json:"additional_info"`
}

// PatientMeasures is the per-patient endpoint response. Measures is empty,
// never null, for patients with no qualifying rows.
type PatientMeasures struct {
	PatientID string                 `json:"patient_id"`
	Measures  []*PatientMeasureEntry `json:"measures"`
}

// Rate derives the percentage rate, rounded to two decimals. A zero
// denominator yields 0 rather than an error: an empty relation is a valid,
// if unpopulated, measure.
func Rate(numerator, denominator int64) float64 {
	if denominator <= 0 {
		return 0
	}
	return math.Round(float64(numerator)/float64(denominator)*100*100) / 100
}
