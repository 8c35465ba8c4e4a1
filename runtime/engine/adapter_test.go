package engine

import (
	"testing"
	"time"
)

func TestRewritePostgresPlaceholders(t *testing.T) {
	a := adapter{driver: "postgres"}

	got := a.rewrite("SELECT * FROM t WHERE a = ? AND b = ?")
	want := "SELECT * FROM t WHERE a = $1 AND b = $2"
	if got != want {
		t.Errorf("Expected %q, got %q", want, got)
	}
}

func TestRewriteSkipsQuotedLiterals(t *testing.T) {
	a := adapter{driver: "postgres"}

	got := a.rewrite("SELECT * FROM t WHERE a = '?' AND b = ?")
	want := "SELECT * FROM t WHERE a = '?' AND b = $1"
	if got != want {
		t.Errorf("Expected %q, got %q", want, got)
	}
}

func TestRewriteOnlyTouchesPostgres(t *testing.T) {
	for _, driver := range []string{"sqlite", "mariadb"} {
		a := adapter{driver: driver}
		q := "INSERT INTO t (a, b) VALUES (?, ?)"
		if got := a.rewrite(q); got != q {
			t.Errorf("%s: query must pass through unchanged, got %q", driver, got)
		}
	}
}

func TestCoerceScalarsPassThrough(t *testing.T) {
	a := adapter{driver: "postgres"}
	out, err := a.coerce([]any{"s", 42, int64(7), 3.14, nil, []byte("raw")})
	if err != nil {
		t.Fatalf("coerce failed: %v", err)
	}
	if out[0] != "s" || out[1] != 42 || out[2] != int64(7) || out[3] != 3.14 || out[4] != nil {
		t.Errorf("Scalars mangled: %v", out)
	}
}

func TestCoerceBoolForSQLite(t *testing.T) {
	a := adapter{driver: "sqlite"}
	out, err := a.coerce([]any{true, false})
	if err != nil {
		t.Fatalf("coerce failed: %v", err)
	}
	if out[0] != 1 || out[1] != 0 {
		t.Errorf("Expected sqlite bools as 1/0, got %v", out)
	}

	a = adapter{driver: "postgres"}
	out, err = a.coerce([]any{true})
	if err != nil {
		t.Fatalf("coerce failed: %v", err)
	}
	if out[0] != true {
		t.Errorf("postgres bool must pass through, got %v", out[0])
	}
}

func TestCoerceTimeFormats(t *testing.T) {
	ts := time.Date(2025, 6, 1, 12, 30, 45, 0, time.UTC)

	out, err := adapter{driver: "mariadb"}.coerce([]any{ts})
	if err != nil {
		t.Fatalf("coerce failed: %v", err)
	}
	if out[0] != "2025-06-01 12:30:45" {
		t.Errorf("Expected mariadb datetime string, got %v", out[0])
	}

	out, err = adapter{driver: "sqlite"}.coerce([]any{ts})
	if err != nil {
		t.Fatalf("coerce failed: %v", err)
	}
	if out[0] != "2025-06-01T12:30:45Z" {
		t.Errorf("Expected RFC3339 string, got %v", out[0])
	}
}

func TestCoerceNilTimePointer(t *testing.T) {
	var ts *time.Time
	out, err := adapter{driver: "postgres"}.coerce([]any{ts})
	if err != nil {
		t.Fatalf("coerce failed: %v", err)
	}
	if out[0] != nil {
		t.Errorf("Expected nil for a nil *time.Time, got %v", out[0])
	}
}

func TestCoerceCompositesToJSON(t *testing.T) {
	for _, driver := range []string{"sqlite", "mariadb", "postgres"} {
		out, err := adapter{driver: driver}.coerce([]any{
			map[string]any{"k": "v"},
			[]int{1, 2, 3},
		})
		if err != nil {
			t.Fatalf("%s: coerce failed: %v", driver, err)
		}
		if out[0] != `{"k":"v"}` {
			t.Errorf("%s: expected JSON object text, got %v", driver, out[0])
		}
		if out[1] != "[1,2,3]" {
			t.Errorf("%s: expected JSON array text, got %v", driver, out[1])
		}
	}
}

func TestCoerceUnencodableValue(t *testing.T) {
	if _, err := (adapter{driver: "sqlite"}).coerce([]any{make(chan int)}); err == nil {
		t.Error("Expected an error for an unencodable parameter")
	}
}
