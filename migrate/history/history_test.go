package history

import (
	"context"
	"path/filepath"
	"testing"
	"time"

	"github.com/satishbabariya/migrate-go/runtime/engine"
)

func testLedger(t *testing.T) (*Ledger, engine.Engine) {
	t.Helper()
	eng, err := engine.New(engine.Config{
		Driver:       "sqlite",
		Path:         filepath.Join(t.TempDir(), "ledger.db"),
		MaxOpenConns: 1,
	})
	if err != nil {
		t.Fatalf("engine.New failed: %v", err)
	}
	t.Cleanup(func() { eng.Close() })

	l := NewLedger(eng)
	if err := l.EnsureTable(context.Background()); err != nil {
		t.Fatalf("EnsureTable failed: %v", err)
	}
	return l, eng
}

func TestEnsureTableIsIdempotent(t *testing.T) {
	l, _ := testLedger(t)
	if err := l.EnsureTable(context.Background()); err != nil {
		t.Fatalf("Second EnsureTable failed: %v", err)
	}
}

func TestCurrentBatchEmptyLedger(t *testing.T) {
	l, _ := testLedger(t)
	batch, err := l.CurrentBatch(context.Background())
	if err != nil {
		t.Fatalf("CurrentBatch failed: %v", err)
	}
	if batch != 0 {
		t.Errorf("Expected batch 0 on an empty ledger, got %d", batch)
	}
}

func TestRecordAndReadBack(t *testing.T) {
	l, _ := testLedger(t)
	ctx := context.Background()

	if err := l.Record(ctx, "database/migrations/0001_users.go", "CREATE TABLE u;", 1, "users"); err != nil {
		t.Fatalf("Record failed: %v", err)
	}

	records, err := l.All(ctx)
	if err != nil {
		t.Fatalf("All failed: %v", err)
	}
	if len(records) != 1 {
		t.Fatalf("Expected 1 record, got %d", len(records))
	}

	rec := records[0]
	if rec.Model != "users" || rec.Batch != 1 {
		t.Errorf("Unexpected record: %+v", rec)
	}
	if rec.Filename != "database/migrations/0001_users.go" {
		t.Errorf("Unexpected filename: %s", rec.Filename)
	}
	if rec.Checksum != Checksum("CREATE TABLE u;") {
		t.Errorf("Checksum mismatch: %s", rec.Checksum)
	}

	batch, err := l.CurrentBatch(ctx)
	if err != nil {
		t.Fatalf("CurrentBatch failed: %v", err)
	}
	if batch != 1 {
		t.Errorf("Expected current batch 1, got %d", batch)
	}
}

// Recording the same model twice updates the existing row instead of failing
// on the primary key.
func TestRecordUpserts(t *testing.T) {
	l, _ := testLedger(t)
	ctx := context.Background()

	if err := l.Record(ctx, "a/0001_users.go", "v1", 1, "users"); err != nil {
		t.Fatalf("First Record failed: %v", err)
	}
	if err := l.Record(ctx, "b/0001_users.go", "v2", 3, "users"); err != nil {
		t.Fatalf("Second Record failed: %v", err)
	}

	records, err := l.All(ctx)
	if err != nil {
		t.Fatalf("All failed: %v", err)
	}
	if len(records) != 1 {
		t.Fatalf("Expected the upsert to keep one row, got %d", len(records))
	}
	rec := records[0]
	if rec.Filename != "b/0001_users.go" || rec.Batch != 3 || rec.Checksum != Checksum("v2") {
		t.Errorf("Row not updated: %+v", rec)
	}
}

func TestRecordNormalizesWindowsPaths(t *testing.T) {
	l, _ := testLedger(t)
	ctx := context.Background()

	if err := l.Record(ctx, `database\migrations\0001_users.go`, "sql", 1, "users"); err != nil {
		t.Fatalf("Record failed: %v", err)
	}
	records, err := l.All(ctx)
	if err != nil {
		t.Fatalf("All failed: %v", err)
	}
	if records[0].Filename != "database/migrations/0001_users.go" {
		t.Errorf("Expected forward-slash filename, got %s", records[0].Filename)
	}
}

func TestAllOrdersByBatchThenTime(t *testing.T) {
	l, _ := testLedger(t)
	ctx := context.Background()

	// Insert out of batch order.
	if err := l.Record(ctx, "m/0003_c.go", "c", 2, "c_table"); err != nil {
		t.Fatalf("Record failed: %v", err)
	}
	if err := l.Record(ctx, "m/0001_a.go", "a", 1, "a_table"); err != nil {
		t.Fatalf("Record failed: %v", err)
	}
	if err := l.Record(ctx, "m/0002_b.go", "b", 1, "b_table"); err != nil {
		t.Fatalf("Record failed: %v", err)
	}

	records, err := l.All(ctx)
	if err != nil {
		t.Fatalf("All failed: %v", err)
	}
	if len(records) != 3 {
		t.Fatalf("Expected 3 records, got %d", len(records))
	}
	if records[0].Batch != 1 || records[2].Batch != 2 {
		t.Errorf("Records not ordered by batch: %+v", records)
	}
	if records[2].Model != "c_table" {
		t.Errorf("Expected the later batch last, got %+v", records[2])
	}
}

func TestRemove(t *testing.T) {
	l, _ := testLedger(t)
	ctx := context.Background()

	if err := l.Record(ctx, "m/0001_users.go", "sql", 1, "users"); err != nil {
		t.Fatalf("Record failed: %v", err)
	}
	if err := l.Remove(ctx, "users"); err != nil {
		t.Fatalf("Remove failed: %v", err)
	}

	set, err := l.AppliedSet(ctx)
	if err != nil {
		t.Fatalf("AppliedSet failed: %v", err)
	}
	if set["users"] {
		t.Error("Expected users to be removed from the applied set")
	}
}

func TestChecksumIsStable(t *testing.T) {
	a := Checksum("CREATE TABLE x;")
	b := Checksum("CREATE TABLE x;")
	if a != b {
		t.Error("Checksum of identical content differs")
	}
	if len(a) != 64 {
		t.Errorf("Expected a 64-char hex sha256, got %d chars", len(a))
	}
	if Checksum("CREATE TABLE y;") == a {
		t.Error("Checksum of different content collides")
	}
}

func TestNormalizePath(t *testing.T) {
	if got := NormalizePath(`a\b\c.go`); got != "a/b/c.go" {
		t.Errorf("Expected forward slashes, got %s", got)
	}
	if got := NormalizePath("a/b/c.go"); got != "a/b/c.go" {
		t.Errorf("Forward-slash path should pass through, got %s", got)
	}
}

func TestAsTimeParsesCommonLayouts(t *testing.T) {
	want := time.Date(2025, 6, 1, 12, 30, 0, 0, time.UTC)
	for _, s := range []string{"2025-06-01T12:30:00Z", "2025-06-01 12:30:00"} {
		got := asTime(s)
		if !got.Equal(want) {
			t.Errorf("asTime(%q): expected %v, got %v", s, want, got)
		}
	}
	if !asTime(42).IsZero() {
		t.Error("Expected zero time for an unparseable value")
	}
}
