package lunar

import (
	"testing"
	"time"
)

func TestToSolar(t *testing.T) {
	tests := []struct {
		name    string
		year    int
		month   int
		day     int
		leap    bool
		want    string
		wantErr bool
	}{
		{"Spring Festival 2024", 2024, 1, 1, false, "2024-02-10", false},
		{"Spring Festival 2025", 2025, 1, 1, false, "2025-01-29", false},
		{"Mid-Autumn 2024", 2024, 8, 15, false, "2024-09-17", false},
		{"Nonexistent day 30", 2021, 12, 30, false, "", true},
		{"Day 29 of same month", 2021, 12, 29, false, "2022-01-31", false},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			got, err := ToSolar(tt.year, tt.month, tt.day, tt.leap)

			if (err != nil) != tt.wantErr {
				t.Fatalf("ToSolar(%d,%d,%d) error = %v, wantErr %v",
					tt.year, tt.month, tt.day, err, tt.wantErr)
			}
			if !tt.wantErr && got.Format("2006-01-02") != tt.want {
				t.Errorf("ToSolar(%d,%d,%d) = %s, want %s",
					tt.year, tt.month, tt.day, got.Format("2006-01-02"), tt.want)
			}
		})
	}
}

func TestRoundTrip(t *testing.T) {
	// Gregorian -> lunar -> Gregorian must return the same date
	dates := []time.Time{
		time.Date(2024, 2, 10, 0, 0, 0, 0, time.UTC),
		time.Date(2024, 6, 10, 0, 0, 0, 0, time.UTC),
		time.Date(2025, 1, 28, 0, 0, 0, 0, time.UTC),
	}

	for _, d := range dates {
		l := FromTime(d)
		leap := l.GetMonth() < 0
		month := l.GetMonth()
		if leap {
			month = -month
		}

		back, err := ToSolar(l.GetYear(), month, l.GetDay(), leap)
		if err != nil {
			t.Errorf("round trip for %s failed: %v", d.Format("2006-01-02"), err)
			continue
		}
		if !back.Equal(d) {
			t.Errorf("round trip for %s = %s", d.Format("2006-01-02"), back.Format("2006-01-02"))
		}
	}
}

func TestSolarTerm(t *testing.T) {
	if got := SolarTerm(2024, time.April, 4); got != "清明" {
		t.Errorf("SolarTerm(2024-04-04) = %q, want 清明", got)
	}
	if got := SolarTerm(2024, time.April, 10); got != "" {
		t.Errorf("SolarTerm(2024-04-10) = %q, want empty", got)
	}
}

func TestStrings(t *testing.T) {
	l := FromSolar(2024, time.February, 10) // 春节
	fests := Strings(l.GetFestivals())
	if len(fests) == 0 {
		t.Fatal("expected festivals on 2024-02-10")
	}
}
