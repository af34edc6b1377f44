package dateutil

import (
	"testing"
	"time"
)

func TestParseDate(t *testing.T) {
	tests := []struct {
		name    string
		input   string
		want    string
		wantErr bool
	}{
		{"Plain date", "2024-01-15", "2024-01-15T00:00:00Z", false},
		{"Datetime", "2024-01-15T10:30:00", "2024-01-15T10:30:00Z", false},
		{"Datetime with space", "2024-01-15 10:30:00", "2024-01-15T10:30:00Z", false},
		{"RFC3339", "2024-01-15T10:30:00Z", "2024-01-15T10:30:00Z", false},
		{"Garbage", "not-a-date", "", true},
		{"Empty", "", "", true},
		{"Wrong order", "15-01-2024", "", true},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			got, err := ParseDate(tt.input, time.UTC)

			if (err != nil) != tt.wantErr {
				t.Errorf("ParseDate(%q) error = %v, wantErr %v", tt.input, err, tt.wantErr)
				return
			}

			if !tt.wantErr && got.Format(time.RFC3339) != tt.want {
				t.Errorf("ParseDate(%q) = %v, want %v", tt.input, got.Format(time.RFC3339), tt.want)
			}
		})
	}
}

func TestParseDateLocation(t *testing.T) {
	loc, err := time.LoadLocation("Asia/Shanghai")
	if err != nil {
		t.Fatalf("LoadLocation: %v", err)
	}

	got, err := ParseDate("2024-01-15", loc)
	if err != nil {
		t.Fatalf("ParseDate() error = %v", err)
	}

	if got.Location() != loc {
		t.Errorf("ParseDate() location = %v, want %v", got.Location(), loc)
	}
	if got.Hour() != 0 {
		t.Errorf("ParseDate() hour = %d, want 0", got.Hour())
	}
}

func TestDaysInMonth(t *testing.T) {
	tests := []struct {
		name  string
		year  int
		month time.Month
		want  int
	}{
		{"January", 2024, time.January, 31},
		{"Leap February", 2024, time.February, 29},
		{"Non-leap February", 2023, time.February, 28},
		{"Century non-leap", 1900, time.February, 28},
		{"400-year leap", 2000, time.February, 29},
		{"April", 2024, time.April, 30},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			if got := DaysInMonth(tt.year, tt.month); got != tt.want {
				t.Errorf("DaysInMonth(%d, %v) = %d, want %d", tt.year, tt.month, got, tt.want)
			}
		})
	}
}

func TestIsWeekend(t *testing.T) {
	// 2024-01-05 is a Friday
	friday := time.Date(2024, 1, 5, 0, 0, 0, 0, time.UTC)
	saturday := friday.AddDate(0, 0, 1)
	sunday := friday.AddDate(0, 0, 2)
	monday := friday.AddDate(0, 0, 3)

	if IsWeekend(friday) {
		t.Error("IsWeekend(Friday) = true, want false")
	}
	if !IsWeekend(saturday) {
		t.Error("IsWeekend(Saturday) = false, want true")
	}
	if !IsWeekend(sunday) {
		t.Error("IsWeekend(Sunday) = false, want true")
	}
	if IsWeekend(monday) {
		t.Error("IsWeekend(Monday) = true, want false")
	}
}

func TestLoadLocation(t *testing.T) {
	loc, err := LoadLocation("")
	if err != nil {
		t.Fatalf("LoadLocation(\"\") error = %v", err)
	}
	if loc != time.UTC {
		t.Errorf("LoadLocation(\"\") = %v, want UTC", loc)
	}

	if _, err := LoadLocation("Not/A_Zone"); err == nil {
		t.Error("LoadLocation(invalid) expected error, got nil")
	}
}
