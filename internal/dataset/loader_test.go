package dataset

import (
	"context"
	"os"
	"path/filepath"
	"testing"

	"github.com/pitchlens/pitchlens/internal/model"
)

func loaderConfig(t *testing.T) *model.Config {
	t.Helper()
	cfg := model.DefaultConfig()
	cfg.Data.Dir = t.TempDir()
	cfg.Cache.Enabled = false
	cfg.Output.Verbose = false
	return cfg
}

func writeFile(t *testing.T, dir, name, content string) {
	t.Helper()
	if err := os.WriteFile(filepath.Join(dir, name), []byte(content), 0o644); err != nil {
		t.Fatalf("write %s: %v", name, err)
	}
}

func TestLoaderLoadsTables(t *testing.T) {
	cfg := loaderConfig(t)
	writeFile(t, cfg.Data.Dir, "Company.csv", "CompanyID,CompanyName\nC1,Acme\nC2,Globex\n")
	writeFile(t, cfg.Data.Dir, "Investor.csv", "InvestorID,InvestorName\nI1,Fund One\n")

	res, err := NewLoader(cfg).Load(context.Background(), []string{"Company", "Investor"})
	if err != nil {
		t.Fatalf("Load failed: %v", err)
	}

	if len(res.Report.Loaded) != 2 {
		t.Fatalf("Expected 2 loaded tables, got %d", len(res.Report.Loaded))
	}
	if res.Report.TotalRows != 3 {
		t.Errorf("Expected 3 total rows, got %d", res.Report.TotalRows)
	}
	// Load outcomes are sorted by name regardless of completion order.
	if res.Report.Loaded[0].Name != "Company" || res.Report.Loaded[1].Name != "Investor" {
		t.Errorf("Expected sorted load report, got %+v", res.Report.Loaded)
	}
	if got := res.Table("Company").Value(1, "CompanyName"); got != "Globex" {
		t.Errorf("Expected Globex, got %q", got)
	}
}

func TestLoaderSkipsMissingFiles(t *testing.T) {
	cfg := loaderConfig(t)
	writeFile(t, cfg.Data.Dir, "Company.csv", "CompanyID,CompanyName\nC1,Acme\n")

	res, err := NewLoader(cfg).Load(context.Background(), []string{"Company", "Deal"})
	if err != nil {
		t.Fatalf("Load failed: %v", err)
	}

	if len(res.Report.Missing) != 1 || res.Report.Missing[0] != "Deal" {
		t.Errorf("Expected Deal recorded as missing, got %v", res.Report.Missing)
	}
	if res.Table("Deal") != nil {
		t.Error("Expected no table for a missing file")
	}
}

func TestLoaderSkipsOversizeFiles(t *testing.T) {
	cfg := loaderConfig(t)
	cfg.Data.MaxFileBytes = 32
	writeFile(t, cfg.Data.Dir, "Company.csv", "CompanyID,CompanyName\nC1,Acme\n")
	writeFile(t, cfg.Data.Dir, "Deal.csv",
		"DealID,DealType,DealStatus,DealSize\nD1,Buyout,Completed,1000000\nD2,Seed,Completed,50000\n")

	res, err := NewLoader(cfg).Load(context.Background(), []string{"Company", "Deal"})
	if err != nil {
		t.Fatalf("Load failed: %v", err)
	}

	if len(res.Report.Skipped) != 1 || res.Report.Skipped[0].Name != "Deal" {
		t.Errorf("Expected Deal skipped for size, got %+v", res.Report.Skipped)
	}
	if res.Table("Deal") != nil {
		t.Error("Expected no table for a skipped file")
	}
	// The run continues with whatever fits.
	if res.Table("Company") == nil {
		t.Error("Expected Company to load")
	}
}

func TestLoaderStripsBOM(t *testing.T) {
	cfg := loaderConfig(t)
	writeFile(t, cfg.Data.Dir, "Company.csv", "\xEF\xBB\xBFCompanyID,CompanyName\nC1,Acme\n")

	res, err := NewLoader(cfg).Load(context.Background(), []string{"Company"})
	if err != nil {
		t.Fatalf("Load failed: %v", err)
	}

	tbl := res.Table("Company")
	if !tbl.HasColumn("CompanyID") {
		t.Errorf("Expected CompanyID column after BOM strip, headers: %v", tbl.Headers)
	}
	if got := tbl.Value(0, "CompanyID"); got != "C1" {
		t.Errorf("Expected C1, got %q", got)
	}
}

func TestLoaderMalformedFileAborts(t *testing.T) {
	cfg := loaderConfig(t)
	writeFile(t, cfg.Data.Dir, "Company.csv", "CompanyID,CompanyName\n\"C1,Acme\n")

	_, err := NewLoader(cfg).Load(context.Background(), []string{"Company"})
	if err == nil {
		t.Fatal("Expected error for malformed CSV, got nil")
	}
}

func TestLoaderMissingDataDir(t *testing.T) {
	cfg := loaderConfig(t)
	cfg.Data.Dir = filepath.Join(cfg.Data.Dir, "does-not-exist")

	_, err := NewLoader(cfg).Load(context.Background(), []string{"Company"})
	if err == nil {
		t.Fatal("Expected error for missing data directory, got nil")
	}
}

func TestLoaderCacheRoundTrip(t *testing.T) {
	cfg := loaderConfig(t)
	cfg.Cache.Enabled = true
	cfg.Cache.Dir = t.TempDir()
	writeFile(t, cfg.Data.Dir, "Company.csv", "CompanyID,CompanyName\nC1,Acme\n")

	loader := NewLoader(cfg)
	first, err := loader.Load(context.Background(), []string{"Company"})
	if err != nil {
		t.Fatalf("First load failed: %v", err)
	}

	entries, err := os.ReadDir(cfg.Cache.Dir)
	if err != nil || len(entries) == 0 {
		t.Fatalf("Expected disk cache entries after load, got %d (err=%v)", len(entries), err)
	}

	second, err := NewLoader(cfg).Load(context.Background(), []string{"Company"})
	if err != nil {
		t.Fatalf("Second load failed: %v", err)
	}
	if second.Table("Company").Value(0, "CompanyName") != first.Table("Company").Value(0, "CompanyName") {
		t.Error("Expected identical table from cached snapshot")
	}
}
