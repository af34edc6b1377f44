package festival

import (
	"testing"
)

func TestResolveByName(t *testing.T) {
	tests := []struct {
		name string
		year int
		want string
	}{
		{"Spring Festival", 2024, "2024-02-10"},
		{"春节", 2024, "2024-02-10"},
		{"spring festival", 2024, "2024-02-10"},
		{"Mid-Autumn Festival", 2024, "2024-09-17"},
		{"中秋节", 2024, "2024-09-17"},
		{"Thanksgiving", 2024, "2024-11-28"},
		{"Memorial Day", 2024, "2024-05-27"},
		{"National Day", 2024, "2024-10-01"},
		{"除夕", 2024, "2025-01-28"}, // 29-day 12th lunar month: day-29 fallback
		{"Good Friday", 2024, "2024-03-29"},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			got, ok := ResolveByName(tt.name, tt.year)
			if !ok {
				t.Fatalf("ResolveByName(%q, %d) not found", tt.name, tt.year)
			}
			if got.Format("2006-01-02") != tt.want {
				t.Errorf("ResolveByName(%q, %d) = %s, want %s",
					tt.name, tt.year, got.Format("2006-01-02"), tt.want)
			}
		})
	}
}

func TestResolveByNameUnknown(t *testing.T) {
	if _, ok := ResolveByName("Festivus", 2024); ok {
		t.Error("unknown festival resolved, want not-found")
	}
}

func TestForYearSortedAndComplete(t *testing.T) {
	resolved := ForYear(HongKongFestivals, 2024)
	if len(resolved) != len(HongKongFestivals) {
		t.Fatalf("resolved %d of %d HK festivals", len(resolved), len(HongKongFestivals))
	}

	for i := 1; i < len(resolved); i++ {
		if resolved[i-1].Date > resolved[i].Date {
			t.Errorf("entries out of order: %s before %s", resolved[i-1].Date, resolved[i].Date)
		}
	}

	byName := make(map[string]string, len(resolved))
	for _, r := range resolved {
		byName[r.Name] = r.Date
	}
	if byName["Ching Ming Festival"] != "2024-04-04" {
		t.Errorf("Ching Ming 2024 = %s, want 2024-04-04", byName["Ching Ming Festival"])
	}
	if byName["Lunar New Year's Day"] != "2024-02-10" {
		t.Errorf("Lunar New Year 2024 = %s, want 2024-02-10", byName["Lunar New Year's Day"])
	}
	if byName["Easter Monday"] != "2024-04-01" {
		t.Errorf("Easter Monday 2024 = %s, want 2024-04-01", byName["Easter Monday"])
	}
}

func TestFindPrefersChinaCatalog(t *testing.T) {
	// "Labour Day" exists in both the CN and HK catalogs; Find must return
	// the CN entry (anchor-resolution order).
	f, ok := Find("Labour Day")
	if !ok {
		t.Fatal("Labour Day not found")
	}
	if f.NameZh != "劳动节" {
		t.Errorf("NameZh = %q, want 劳动节", f.NameZh)
	}
}
