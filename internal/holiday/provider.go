package holiday

import (
	"context"
	"encoding/json"
	"fmt"
	"net/http"
	"strings"
	"time"

	"go.uber.org/zap"
)

const (
	defaultTimorBaseURL = "https://timor.tech"
	defaultNagerBaseURL = "https://date.nager.at"
	defaultFetchTimeout = 10 * time.Second
)

// Provider fetches one year of authoritative holiday data for a country.
// A failed or empty upstream yields an empty slice, never an error: at this
// boundary an outage is indistinguishable from "no holidays defined".
type Provider interface {
	Fetch(ctx context.Context, country string, year int) []Record
}

// HTTPProvider fetches holiday data from the timor.tech API for China and
// from the Nager.Date API for every other country.
type HTTPProvider struct {
	timorBaseURL string
	nagerBaseURL string
	httpClient   *http.Client
	logger       *zap.Logger
}

// timorResponse represents the timor.tech year API response.
// Keys of the holiday object are "MM-DD" or "YYYY-MM-DD" date suffixes.
type timorResponse struct {
	Code    int `json:"code"`
	Holiday map[string]struct {
		Name    string `json:"name"`
		Holiday bool   `json:"holiday"`
	} `json:"holiday"`
}

// nagerHoliday represents one entry of the Nager.Date public-holiday array
type nagerHoliday struct {
	Date      string `json:"date"`
	LocalName string `json:"localName"`
	Name      string `json:"name"`
}

// NewHTTPProvider creates an HTTPProvider. Empty base URLs and a zero
// timeout fall back to the public endpoints and 10s.
func NewHTTPProvider(timorBaseURL, nagerBaseURL string, timeout time.Duration, logger *zap.Logger) *HTTPProvider {
	if timorBaseURL == "" {
		timorBaseURL = defaultTimorBaseURL
	}
	if nagerBaseURL == "" {
		nagerBaseURL = defaultNagerBaseURL
	}
	if timeout <= 0 {
		timeout = defaultFetchTimeout
	}

	return &HTTPProvider{
		timorBaseURL: timorBaseURL,
		nagerBaseURL: nagerBaseURL,
		httpClient: &http.Client{
			Timeout: timeout,
		},
		logger: logger,
	}
}

// Fetch returns the year's holiday records for a country. The country code
// must already be normalized to uppercase.
func (p *HTTPProvider) Fetch(ctx context.Context, country string, year int) []Record {
	if country == "CN" {
		return p.fetchTimor(ctx, year)
	}
	return p.fetchNager(ctx, country, year)
}

// fetchTimor fetches Chinese holidays, including make-up workdays
func (p *HTTPProvider) fetchTimor(ctx context.Context, year int) []Record {
	url := fmt.Sprintf("%s/api/holiday/year/%d", p.timorBaseURL, year)

	var apiResp timorResponse
	if !p.getJSON(ctx, url, &apiResp) {
		return nil
	}
	if apiResp.Code != 0 {
		p.logger.Warn("Holiday API returned non-zero code",
			zap.String("url", url),
			zap.Int("code", apiResp.Code))
		return nil
	}

	records := make([]Record, 0, len(apiResp.Holiday))
	for dateStr, info := range apiResp.Holiday {
		normalized, ok := normalizeTimorDate(year, dateStr)
		if !ok {
			p.logger.Warn("Skipping unparseable holiday key",
				zap.String("key", dateStr),
				zap.Int("year", year))
			continue
		}

		kind := KindPublicHoliday
		if !info.Holiday {
			kind = KindMakeupWorkday
		}
		records = append(records, Record{
			Date:     normalized,
			Name:     info.Name,
			IsOffDay: info.Holiday,
			Kind:     kind,
		})
	}

	return records
}

// fetchNager fetches public holidays for any ISO-3166 country code.
// Nager.Date does not report make-up workdays, so every entry is an off day.
func (p *HTTPProvider) fetchNager(ctx context.Context, country string, year int) []Record {
	url := fmt.Sprintf("%s/api/v3/publicholidays/%d/%s", p.nagerBaseURL, year, country)

	var entries []nagerHoliday
	if !p.getJSON(ctx, url, &entries) {
		return nil
	}

	records := make([]Record, 0, len(entries))
	for _, e := range entries {
		name := e.LocalName
		if name == "" {
			name = e.Name
		}
		records = append(records, Record{
			Date:     e.Date,
			Name:     name,
			IsOffDay: true,
			Kind:     KindPublicHoliday,
		})
	}

	return records
}

// getJSON performs a GET and decodes the body. Every failure mode (request
// error, non-2xx, malformed payload) is swallowed with a warning so that
// a transient outage degrades to an empty holiday set.
func (p *HTTPProvider) getJSON(ctx context.Context, url string, out interface{}) bool {
	req, err := http.NewRequestWithContext(ctx, http.MethodGet, url, nil)
	if err != nil {
		p.logger.Warn("Failed to build holiday request", zap.String("url", url), zap.Error(err))
		return false
	}

	resp, err := p.httpClient.Do(req)
	if err != nil {
		p.logger.Warn("Holiday provider unreachable", zap.String("url", url), zap.Error(err))
		return false
	}
	defer resp.Body.Close()

	if resp.StatusCode < 200 || resp.StatusCode > 299 {
		p.logger.Warn("Holiday provider returned error status",
			zap.String("url", url),
			zap.Int("status", resp.StatusCode))
		return false
	}

	if err := json.NewDecoder(resp.Body).Decode(out); err != nil {
		p.logger.Warn("Failed to parse holiday response", zap.String("url", url), zap.Error(err))
		return false
	}

	return true
}

// normalizeTimorDate expands a "M-D" / "MM-DD" / "YYYY-M-D" key into a
// zero-padded YYYY-MM-DD string.
func normalizeTimorDate(year int, key string) (string, bool) {
	parts := strings.Split(key, "-")

	var monthStr, dayStr string
	switch len(parts) {
	case 2:
		monthStr, dayStr = parts[0], parts[1]
	case 3:
		monthStr, dayStr = parts[1], parts[2]
	default:
		return "", false
	}

	var month, day int
	if _, err := fmt.Sscanf(monthStr, "%d", &month); err != nil {
		return "", false
	}
	if _, err := fmt.Sscanf(dayStr, "%d", &day); err != nil {
		return "", false
	}
	if month < 1 || month > 12 || day < 1 || day > 31 {
		return "", false
	}

	return fmt.Sprintf("%04d-%02d-%02d", year, month, day), true
}
