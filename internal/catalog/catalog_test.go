package catalog

import (
	"context"
	"fmt"
	"os"
	"path/filepath"
	"strings"
	"testing"

	"github.com/pelletier/go-toml/v2"

	"github.com/mwhitmore/catechism-press/pkg/types"
)

// --- test helpers ---

func testSetup(t *testing.T) (*Store, string) {
	t.Helper()
	tmpDir := t.TempDir()

	srcDir := filepath.Join(tmpDir, "src")
	if err := os.MkdirAll(srcDir, 0o755); err != nil {
		t.Fatal(err)
	}

	cfg := types.CatalogConfig{
		CatalogDir: filepath.Join(tmpDir, "catalog"),
		MaxResults: 20,
	}
	store, err := NewStore(cfg)
	if err != nil {
		t.Fatal(err)
	}
	t.Cleanup(func() { store.Close() })

	return store, srcDir
}

func writeRecord(t *testing.T, srcDir string, rec types.Record) {
	t.Helper()
	data, err := toml.Marshal(&rec)
	if err != nil {
		t.Fatal(err)
	}
	path := filepath.Join(srcDir, rec.ID+".toml")
	if err := os.WriteFile(path, data, 0o644); err != nil {
		t.Fatal(err)
	}
}

func sampleRecords() []types.Record {
	return []types.Record{
		{
			ID:     "1",
			Prompt: "What is the chief end of man?",
			Fragments: []types.Fragment{
				{Text: "Man's chief end is to glorify God,", Verses: "1 Cor. 10:31"},
				{Text: "and to enjoy him for ever.", Verses: "Ps. 73:25-26"},
			},
		},
		{
			ID:     "2",
			Prompt: "What rule hath God given to direct us?",
			Fragments: []types.Fragment{
				{Text: "The word of God is the only rule.", Verses: "2 Tim. 3:16"},
				{Text: "1. The Old Testament."},
				{Text: "2. The New Testament."},
				{Text: "3. Together one canon."},
			},
		},
	}
}

func ingestHelper(t *testing.T, store *Store, srcDir string) IngestSummary {
	t.Helper()
	for _, rec := range sampleRecords() {
		writeRecord(t, srcDir, rec)
	}
	var buf strings.Builder
	summary, err := store.Ingest(context.Background(), srcDir, types.ClassifierConfig{}, &buf)
	if err != nil {
		t.Fatal(err)
	}
	return summary
}

// --- schema tests ---

func TestNewStoreCreatesSchema(t *testing.T) {
	store, _ := testSetup(t)

	for _, table := range []string{"records", "records_fts"} {
		var count int
		err := store.db.QueryRow(
			`SELECT count(*) FROM sqlite_master WHERE type IN ('table','view') AND name = ?`, table,
		).Scan(&count)
		if err != nil {
			t.Fatalf("checking table %s: %v", table, err)
		}
		if count == 0 {
			t.Errorf("table %s does not exist", table)
		}
	}
}

func TestNewStoreCreatesDBFile(t *testing.T) {
	tmpDir := t.TempDir()
	dbPath := filepath.Join(tmpDir, "catalog", indexDir, dbFile)

	store, err := NewStore(types.CatalogConfig{CatalogDir: filepath.Join(tmpDir, "catalog")})
	if err != nil {
		t.Fatal(err)
	}
	defer store.Close()

	if _, err := os.Stat(dbPath); os.IsNotExist(err) {
		t.Errorf("database file not created at %s", dbPath)
	}
}

// --- ingest tests ---

func TestIngest(t *testing.T) {
	store, srcDir := testSetup(t)

	summary := ingestHelper(t, store, srcDir)
	if summary.Indexed != 2 {
		t.Errorf("Indexed = %d, want 2", summary.Indexed)
	}
	if summary.Failed != 0 {
		t.Errorf("Failed = %d, want 0", summary.Failed)
	}
}

func TestIngestStoresFields(t *testing.T) {
	store, srcDir := testSetup(t)
	ingestHelper(t, store, srcDir)

	results, err := store.Retrieve(context.Background(), QueryOptions{})
	if err != nil {
		t.Fatal(err)
	}
	if len(results) != 2 {
		t.Fatalf("got %d results, want 2", len(results))
	}

	r := results[0]
	if r.ID != "1" {
		t.Errorf("ID = %q, want %q", r.ID, "1")
	}
	if r.Prompt != "What is the chief end of man?" {
		t.Errorf("Prompt = %q", r.Prompt)
	}
	if !strings.Contains(r.Answer, "glorify God") || !strings.Contains(r.Answer, "enjoy him") {
		t.Errorf("Answer = %q, want fragment texts joined", r.Answer)
	}
	if r.Verses != "1 Cor. 10:31; Ps. 73:25-26" {
		t.Errorf("Verses = %q", r.Verses)
	}
	if r.FragmentCount != 2 {
		t.Errorf("FragmentCount = %d, want 2", r.FragmentCount)
	}
}

func TestIngestClassifiesShapes(t *testing.T) {
	store, srcDir := testSetup(t)
	ingestHelper(t, store, srcDir)

	results, err := store.Retrieve(context.Background(), QueryOptions{})
	if err != nil {
		t.Fatal(err)
	}
	shapes := map[string]string{}
	for _, r := range results {
		shapes[r.ID] = r.Shape
	}
	if shapes["1"] != "plain" {
		t.Errorf("record 1 shape = %q, want plain", shapes["1"])
	}
	if shapes["2"] != "list" {
		t.Errorf("record 2 shape = %q, want list", shapes["2"])
	}
}

func TestIngestUpsertsChanged(t *testing.T) {
	store, srcDir := testSetup(t)
	ingestHelper(t, store, srcDir)

	// Rewrite record 1 with new content and ingest again.
	writeRecord(t, srcDir, types.Record{
		ID:     "1",
		Prompt: "Revised question?",
		Fragments: []types.Fragment{
			{Text: "Revised answer text.", Verses: "John 3:16"},
		},
	})

	var buf strings.Builder
	summary, err := store.Ingest(context.Background(), srcDir, types.ClassifierConfig{}, &buf)
	if err != nil {
		t.Fatal(err)
	}
	if summary.Indexed != 2 {
		t.Errorf("Indexed = %d, want 2", summary.Indexed)
	}

	results, err := store.Retrieve(context.Background(), QueryOptions{Query: "Revised"})
	if err != nil {
		t.Fatal(err)
	}
	if len(results) != 1 {
		t.Fatalf("got %d results, want 1", len(results))
	}
	if results[0].Prompt != "Revised question?" {
		t.Errorf("Prompt = %q, want revised text", results[0].Prompt)
	}

	// No duplicate row for the rewritten record.
	var count int
	if err := store.db.QueryRow(`SELECT count(*) FROM records WHERE id = '1'`).Scan(&count); err != nil {
		t.Fatal(err)
	}
	if count != 1 {
		t.Errorf("record 1 row count = %d, want 1", count)
	}
}

func TestIngestSummaryOutput(t *testing.T) {
	store, srcDir := testSetup(t)

	for _, rec := range sampleRecords() {
		writeRecord(t, srcDir, rec)
	}
	var buf strings.Builder
	if _, err := store.Ingest(context.Background(), srcDir, types.ClassifierConfig{}, &buf); err != nil {
		t.Fatal(err)
	}

	if !strings.Contains(buf.String(), "indexed: 2") {
		t.Errorf("output should contain 'indexed: 2': %s", buf.String())
	}
}

// --- full-text search tests ---

func TestRetrieveFullTextSearch(t *testing.T) {
	store, srcDir := testSetup(t)
	ingestHelper(t, store, srcDir)

	tests := []struct {
		name    string
		query   string
		wantIDs []string
	}{
		{"answer term", "glorify", []string{"1"}},
		{"prompt term", "rule", []string{"2"}},
		{"no match", "quantum", nil},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			results, err := store.Retrieve(context.Background(), QueryOptions{Query: tt.query})
			if err != nil {
				t.Fatal(err)
			}
			if len(results) != len(tt.wantIDs) {
				t.Fatalf("got %d results, want %d", len(results), len(tt.wantIDs))
			}
			for i, id := range tt.wantIDs {
				if results[i].ID != id {
					t.Errorf("result[%d].ID = %q, want %q", i, results[i].ID, id)
				}
			}
		})
	}
}

func TestRetrieveByShape(t *testing.T) {
	store, srcDir := testSetup(t)
	ingestHelper(t, store, srcDir)

	results, err := store.Retrieve(context.Background(), QueryOptions{Shape: "list"})
	if err != nil {
		t.Fatal(err)
	}
	if len(results) != 1 {
		t.Fatalf("got %d results, want 1", len(results))
	}
	if results[0].ID != "2" {
		t.Errorf("ID = %q, want 2", results[0].ID)
	}
}

func TestRetrieveRespectsMaxResults(t *testing.T) {
	store, srcDir := testSetup(t)

	for i := 0; i < 5; i++ {
		writeRecord(t, srcDir, types.Record{
			ID:     fmt.Sprintf("%d", i+1),
			Prompt: fmt.Sprintf("Question %d about grace?", i+1),
			Fragments: []types.Fragment{
				{Text: "An answer concerning grace.", Verses: "Eph. 2:8"},
			},
		})
	}
	var buf strings.Builder
	if _, err := store.Ingest(context.Background(), srcDir, types.ClassifierConfig{}, &buf); err != nil {
		t.Fatal(err)
	}

	results, err := store.Retrieve(context.Background(), QueryOptions{
		Query:      "grace",
		MaxResults: 2,
	})
	if err != nil {
		t.Fatal(err)
	}
	if len(results) > 2 {
		t.Errorf("got %d results, want <= 2", len(results))
	}
}

func TestRetrieveNoFilterOrderedByID(t *testing.T) {
	store, srcDir := testSetup(t)
	ingestHelper(t, store, srcDir)

	results, err := store.Retrieve(context.Background(), QueryOptions{})
	if err != nil {
		t.Fatal(err)
	}
	if len(results) != 2 {
		t.Fatalf("got %d results, want 2", len(results))
	}
	if results[0].ID > results[1].ID {
		t.Errorf("results not ordered by id: %q before %q", results[0].ID, results[1].ID)
	}
}
