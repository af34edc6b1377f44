package holiday

import (
	"context"
	"os"
	"path/filepath"
	"sync"
	"sync/atomic"
	"testing"
	"time"

	"go.uber.org/zap"
)

// countingProvider is a Provider test double with a fetch-call counter
type countingProvider struct {
	records []Record
	delay   time.Duration
	calls   int32
}

func (p *countingProvider) Fetch(ctx context.Context, country string, year int) []Record {
	atomic.AddInt32(&p.calls, 1)
	if p.delay > 0 {
		time.Sleep(p.delay)
	}
	return p.records
}

func (p *countingProvider) callCount() int {
	return int(atomic.LoadInt32(&p.calls))
}

var testRecords = []Record{
	{Date: "2024-01-01", Name: "元旦", IsOffDay: true, Kind: KindPublicHoliday},
	{Date: "2024-02-04", Name: "春节补班", IsOffDay: false, Kind: KindMakeupWorkday},
}

func TestGetFetchesOnce(t *testing.T) {
	provider := &countingProvider{records: testRecords}
	cache := NewCache(provider, NewDiskStore(t.TempDir()), zap.NewNop())

	ctx := context.Background()
	first := cache.Get(ctx, "CN", 2024)
	second := cache.Get(ctx, "CN", 2024)

	if provider.callCount() != 1 {
		t.Errorf("fetch calls = %d, want 1", provider.callCount())
	}
	if len(first) != 2 || len(second) != 2 {
		t.Errorf("set sizes = %d, %d, want 2, 2", len(first), len(second))
	}
}

func TestGetNormalizesCountry(t *testing.T) {
	provider := &countingProvider{records: testRecords}
	cache := NewCache(provider, NewDiskStore(t.TempDir()), zap.NewNop())

	ctx := context.Background()
	cache.Get(ctx, "cn", 2024)
	cache.Get(ctx, "CN", 2024)
	cache.Get(ctx, "Cn", 2024)

	if provider.callCount() != 1 {
		t.Errorf("fetch calls = %d, want 1 (country codes should share a key)", provider.callCount())
	}
}

func TestDiskTierSurvivesRestart(t *testing.T) {
	dir := t.TempDir()
	ctx := context.Background()

	warm := NewCache(&countingProvider{records: testRecords}, NewDiskStore(dir), zap.NewNop())
	want := warm.Get(ctx, "CN", 2024)

	// Fresh cache over the same directory: must come entirely from disk
	cold := &countingProvider{}
	restarted := NewCache(cold, NewDiskStore(dir), zap.NewNop())
	got := restarted.Get(ctx, "CN", 2024)

	if cold.callCount() != 0 {
		t.Errorf("fetch calls after restart = %d, want 0", cold.callCount())
	}
	if len(got) != len(want) {
		t.Fatalf("restarted set size = %d, want %d", len(got), len(want))
	}
	for date, rec := range want {
		if got[date] != rec {
			t.Errorf("record mismatch for %s: %+v != %+v", date, got[date], rec)
		}
	}
}

func TestEmptyFetchNotPersisted(t *testing.T) {
	dir := t.TempDir()
	provider := &countingProvider{} // always empty
	store := NewDiskStore(dir)
	cache := NewCache(provider, store, zap.NewNop())

	ctx := context.Background()
	if set := cache.Get(ctx, "XX", 2024); len(set) != 0 {
		t.Errorf("set size = %d, want 0", len(set))
	}

	// Memoized for the process: no second network call
	cache.Get(ctx, "XX", 2024)
	if provider.callCount() != 1 {
		t.Errorf("fetch calls = %d, want 1", provider.callCount())
	}

	// But never written to disk
	if store.Exists("XX", 2024) {
		t.Error("empty result was persisted to the durable tier")
	}
}

func TestCorruptDiskFileIsAMiss(t *testing.T) {
	dir := t.TempDir()
	store := NewDiskStore(dir)

	cacheDir := filepath.Join(dir, "cache", "holidays")
	if err := os.MkdirAll(cacheDir, 0o755); err != nil {
		t.Fatal(err)
	}
	if err := os.WriteFile(filepath.Join(cacheDir, "CN-2024.json"), []byte("{not json"), 0o644); err != nil {
		t.Fatal(err)
	}

	provider := &countingProvider{records: testRecords}
	cache := NewCache(provider, store, zap.NewNop())

	set := cache.Get(context.Background(), "CN", 2024)
	if provider.callCount() != 1 {
		t.Errorf("fetch calls = %d, want 1 (corrupt file must trigger refetch)", provider.callCount())
	}
	if len(set) != 2 {
		t.Errorf("set size = %d, want 2", len(set))
	}

	// The corrupt file is overwritten by the successful fetch
	records, err := store.Read("CN", 2024)
	if err != nil {
		t.Fatalf("cache file still unreadable: %v", err)
	}
	if len(records) != 2 {
		t.Errorf("persisted records = %d, want 2", len(records))
	}
}

func TestConcurrentGetSingleFlight(t *testing.T) {
	provider := &countingProvider{records: testRecords, delay: 50 * time.Millisecond}
	cache := NewCache(provider, NewDiskStore(t.TempDir()), zap.NewNop())

	const goroutines = 16
	var wg sync.WaitGroup
	wg.Add(goroutines)
	for i := 0; i < goroutines; i++ {
		go func() {
			defer wg.Done()
			if set := cache.Get(context.Background(), "CN", 2024); len(set) != 2 {
				t.Errorf("set size = %d, want 2", len(set))
			}
		}()
	}
	wg.Wait()

	if provider.callCount() != 1 {
		t.Errorf("fetch calls = %d, want 1 (concurrent misses must collapse)", provider.callCount())
	}
}

func TestLookup(t *testing.T) {
	cache := NewCache(&countingProvider{records: testRecords}, NewDiskStore(t.TempDir()), zap.NewNop())
	ctx := context.Background()

	rec, ok := cache.Lookup(ctx, "CN", 2024, "2024-01-01")
	if !ok || rec.Name != "元旦" {
		t.Errorf("Lookup(2024-01-01) = %+v, %v", rec, ok)
	}

	if _, ok := cache.Lookup(ctx, "CN", 2024, "2024-06-15"); ok {
		t.Error("Lookup(2024-06-15) found a record, want absence")
	}
}
