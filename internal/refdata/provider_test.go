package refdata

import (
	"os"
	"path/filepath"
	"testing"
	"time"
)

func TestSlugify(t *testing.T) {
	tests := []struct {
		name  string
		input string
		want  string
	}{
		{"simple label", "Banks", "banks"},
		{"spaces hyphenated", "Consumer Cyclicals", "consumer-cyclicals"},
		{"ampersand dropped", "Food & Beverage", "food-beverage"},
		{"comma dropped", "Oil, Gas Coal", "oil-gas-coal"},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			if got := Slugify(tt.input); got != tt.want {
				t.Errorf("got %q, want %q", got, tt.want)
			}
		})
	}
}

func writeTestSnapshots(t *testing.T, dir string) {
	t.Helper()

	files := map[string]string{
		tagsFile:       `["IPO","Dividend","Merger"]`,
		companiesFile:  `{"BBCA":{"symbol":"BBCA","name":"Bank Central Asia","sub_sector":"banks"}}`,
		subsectorsFile: `{"banks":"Commercial banks"}`,
	}
	for name, content := range files {
		if err := os.WriteFile(filepath.Join(dir, name), []byte(content), 0o644); err != nil {
			t.Fatal(err)
		}
	}
}

func TestTables_FromSnapshots(t *testing.T) {
	dir := t.TempDir()
	writeTestSnapshots(t, dir)

	p := NewProvider(nil, dir)
	// Pin a non-refresh day so the nil DB is never touched.
	p.now = func() time.Time { return time.Date(2025, 3, 7, 0, 0, 0, 0, time.UTC) }

	tables, err := p.Tables()
	if err != nil {
		t.Fatalf("Tables() error: %v", err)
	}

	if len(tables.Tags) != 3 {
		t.Errorf("got %d tags, want 3", len(tables.Tags))
	}
	if tables.Companies["BBCA"].Name != "Bank Central Asia" {
		t.Errorf("unexpected company data: %+v", tables.Companies["BBCA"])
	}
	if tables.Subsectors["banks"] != "Commercial banks" {
		t.Errorf("unexpected subsector data: %+v", tables.Subsectors)
	}

	if _, ok := tables.TagSet()["Dividend"]; !ok {
		t.Error("TagSet missing Dividend")
	}
}

func TestTables_CachedAfterFirstLoad(t *testing.T) {
	dir := t.TempDir()
	writeTestSnapshots(t, dir)

	p := NewProvider(nil, dir)
	p.now = func() time.Time { return time.Date(2025, 3, 7, 0, 0, 0, 0, time.UTC) }

	first, err := p.Tables()
	if err != nil {
		t.Fatal(err)
	}

	// Snapshots removed; a second call must serve the in-memory cache.
	os.Remove(filepath.Join(dir, tagsFile))
	os.Remove(filepath.Join(dir, companiesFile))
	os.Remove(filepath.Join(dir, subsectorsFile))

	second, err := p.Tables()
	if err != nil {
		t.Fatalf("cached Tables() error: %v", err)
	}
	if first != second {
		t.Error("expected the same cached *Tables instance")
	}
}
