package measures

import (
	"encoding/json"
	"testing"
	"time"
)

func TestRate(t *testing.T) {
	tests := []struct {
		name        string
		numerator   int64
		denominator int64
		want        float64
	}{
		{"simple", 7, 10, 70},
		{"rounds to two decimals", 1, 3, 33.33},
		{"rounds half up", 2, 3, 66.67},
		{"full compliance", 50, 50, 100},
		{"zero denominator", 5, 0, 0},
		{"negative denominator", 5, -1, 0},
		{"zero numerator", 0, 10, 0},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			if got := Rate(tt.numerator, tt.denominator); got != tt.want {
				t.Errorf("Rate(%d, %d) = %v, want %v", tt.numerator, tt.denominator, got, tt.want)
			}
		})
	}
}

func TestDateMarshalJSON(t *testing.T) {
	d := NewDate(time.Date(2025, time.March, 7, 15, 42, 11, 0, time.UTC))
	b, err := json.Marshal(d)
	if err != nil {
		t.Fatalf("marshal: %v", err)
	}
	if string(b) != `"2025-03-07"` {
		t.Errorf("expected \"2025-03-07\", got %s", b)
	}
}

func TestDateUnmarshalJSON(t *testing.T) {
	var d Date
	if err := json.Unmarshal([]byte(`"2024-12-31"`), &d); err != nil {
		t.Fatalf("unmarshal: %v", err)
	}
	if d.Year() != 2024 || d.Month() != time.December || d.Day() != 31 {
		t.Errorf("unexpected date %v", d.Time)
	}

	if err := json.Unmarshal([]byte(`"not-a-date"`), &d); err == nil {
		t.Error("expected error for malformed date")
	}
}

func TestPatientMeasuresMarshalEmpty(t *testing.T) {
	pm := PatientMeasures{
		PatientID: "p-1",
		Measures:  []*PatientMeasureEntry{},
	}
	b, err := json.Marshal(pm)
	if err != nil {
		t.Fatalf("marshal: %v", err)
	}
	if string(b) != `{"patient_id":"p-1","measures":[]}` {
		t.Errorf("expected empty measures array, got %s", b)
	}
}
