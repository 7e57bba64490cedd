package config

import (
	"os"
	"testing"
)

func TestLoad(t *testing.T) {
	t.Setenv("PG_CONCERTS_DSN", "host=localhost user=app dbname=concerts")
	t.Setenv("SYNC_INTERVAL_MIN", "30")
	t.Setenv("ENABLE_SYNC_JOBS", "true")

	c, err := Load()
	if err != nil {
		t.Fatalf("Load: %v", err)
	}
	if c.PGConcertsDSN == "" {
		t.Error("PGConcertsDSN should be set")
	}
	if c.SyncIntervalMin != 30 {
		t.Errorf("SyncIntervalMin = %d, want 30", c.SyncIntervalMin)
	}
	if !c.EnableSyncJobs {
		t.Error("EnableSyncJobs should be true")
	}
	if c.APIHTTPAddr != ":8080" {
		t.Errorf("APIHTTPAddr default = %q, want :8080", c.APIHTTPAddr)
	}
	if c.ConcertExchange != "concert.exchange" {
		t.Errorf("ConcertExchange default = %q", c.ConcertExchange)
	}
}

func TestLoad_RequiresDSN(t *testing.T) {
	t.Setenv("PG_CONCERTS_DSN", "placeholder") // register restore
	os.Unsetenv("PG_CONCERTS_DSN")
	if _, err := Load(); err == nil {
		t.Error("Load should fail without PG_CONCERTS_DSN")
	}
}

func TestProduction(t *testing.T) {
	if (App{Env: "dev"}).Production() {
		t.Error("dev should not be production")
	}
	if !(App{Env: "production"}).Production() {
		t.Error("production env should report production")
	}
}
