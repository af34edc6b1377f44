package holiday

import (
	"context"
	"net/http"
	"net/http/httptest"
	"testing"
	"time"

	"go.uber.org/zap"
)

func newTestProvider(timorURL, nagerURL string) *HTTPProvider {
	return NewHTTPProvider(timorURL, nagerURL, 2*time.Second, zap.NewNop())
}

func TestFetchTimor(t *testing.T) {
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		if r.URL.Path != "/api/holiday/year/2024" {
			t.Errorf("unexpected path %s", r.URL.Path)
		}
		w.Write([]byte(`{
			"code": 0,
			"holiday": {
				"1-1": {"name": "元旦", "holiday": true},
				"02-04": {"name": "春节补班", "holiday": false},
				"2024-10-1": {"name": "国庆节", "holiday": true}
			}
		}`))
	}))
	defer srv.Close()

	records := newTestProvider(srv.URL, srv.URL).Fetch(context.Background(), "CN", 2024)
	if len(records) != 3 {
		t.Fatalf("got %d records, want 3", len(records))
	}

	set := NewSet(records)

	tests := []struct {
		date     string
		kind     Kind
		isOffDay bool
	}{
		{"2024-01-01", KindPublicHoliday, true},
		{"2024-02-04", KindMakeupWorkday, false},
		{"2024-10-01", KindPublicHoliday, true},
	}
	for _, tt := range tests {
		rec, ok := set.Lookup(tt.date)
		if !ok {
			t.Errorf("missing record for %s", tt.date)
			continue
		}
		if rec.Kind != tt.kind {
			t.Errorf("%s kind = %s, want %s", tt.date, rec.Kind, tt.kind)
		}
		if rec.IsOffDay != tt.isOffDay {
			t.Errorf("%s isOffDay = %v, want %v", tt.date, rec.IsOffDay, tt.isOffDay)
		}
	}
}

func TestFetchTimorNonZeroCode(t *testing.T) {
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		w.Write([]byte(`{"code": -1}`))
	}))
	defer srv.Close()

	if records := newTestProvider(srv.URL, srv.URL).Fetch(context.Background(), "CN", 2024); len(records) != 0 {
		t.Errorf("got %d records, want 0", len(records))
	}
}

func TestFetchNager(t *testing.T) {
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		if r.URL.Path != "/api/v3/publicholidays/2024/US" {
			t.Errorf("unexpected path %s", r.URL.Path)
		}
		w.Write([]byte(`[
			{"date": "2024-07-04", "localName": "Independence Day", "name": "Independence Day"},
			{"date": "2024-12-25", "localName": "", "name": "Christmas Day"}
		]`))
	}))
	defer srv.Close()

	records := newTestProvider(srv.URL, srv.URL).Fetch(context.Background(), "US", 2024)
	if len(records) != 2 {
		t.Fatalf("got %d records, want 2", len(records))
	}

	for _, rec := range records {
		if rec.Kind != KindPublicHoliday || !rec.IsOffDay {
			t.Errorf("%s: kind = %s isOffDay = %v, want public_holiday/true", rec.Date, rec.Kind, rec.IsOffDay)
		}
	}
	if records[1].Name != "Christmas Day" {
		t.Errorf("empty localName should fall back to name, got %q", records[1].Name)
	}
}

func TestFetchSwallowsFailures(t *testing.T) {
	tests := []struct {
		name    string
		handler http.HandlerFunc
	}{
		{"HTTP 500", func(w http.ResponseWriter, r *http.Request) {
			w.WriteHeader(http.StatusInternalServerError)
		}},
		{"Malformed JSON", func(w http.ResponseWriter, r *http.Request) {
			w.Write([]byte(`{"code": 0, "holiday": [`))
		}},
		{"HTTP 404", func(w http.ResponseWriter, r *http.Request) {
			w.WriteHeader(http.StatusNotFound)
		}},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			srv := httptest.NewServer(tt.handler)
			defer srv.Close()

			p := newTestProvider(srv.URL, srv.URL)
			if got := p.Fetch(context.Background(), "CN", 2024); len(got) != 0 {
				t.Errorf("CN fetch returned %d records, want 0", len(got))
			}
			if got := p.Fetch(context.Background(), "DE", 2024); len(got) != 0 {
				t.Errorf("DE fetch returned %d records, want 0", len(got))
			}
		})
	}
}

func TestFetchUnreachable(t *testing.T) {
	// Closed server: connection refused must degrade to empty, not error
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {}))
	srv.Close()

	if got := newTestProvider(srv.URL, srv.URL).Fetch(context.Background(), "CN", 2024); len(got) != 0 {
		t.Errorf("got %d records, want 0", len(got))
	}
}

func TestNormalizeTimorDate(t *testing.T) {
	tests := []struct {
		key    string
		want   string
		wantOK bool
	}{
		{"1-1", "2024-01-01", true},
		{"01-01", "2024-01-01", true},
		{"10-1", "2024-10-01", true},
		{"2024-10-1", "2024-10-01", true},
		{"2024-10-01", "2024-10-01", true},
		{"13-1", "", false},
		{"1-32", "", false},
		{"garbage", "", false},
		{"", "", false},
	}

	for _, tt := range tests {
		got, ok := normalizeTimorDate(2024, tt.key)
		if ok != tt.wantOK {
			t.Errorf("normalizeTimorDate(%q) ok = %v, want %v", tt.key, ok, tt.wantOK)
			continue
		}
		if ok && got != tt.want {
			t.Errorf("normalizeTimorDate(%q) = %q, want %q", tt.key, got, tt.want)
		}
	}
}
