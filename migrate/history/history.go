// Package history manages the migrations ledger: one row per logical model,
// keyed by the model name rather than the filename so files can be renamed or
// relocated without losing applied-state continuity.
package history

import (
	"context"
	"crypto/sha256"
	"encoding/hex"
	"fmt"
	"strings"
	"time"

	"github.com/satishbabariya/migrate-go/internal/debug"
	"github.com/satishbabariya/migrate-go/runtime/engine"
)

// TableName is the ledger table.
const TableName = "migrations"

// Record is one ledger row.
type Record struct {
	Model     string
	Filename  string
	Batch     int
	Checksum  string
	AppliedAt time.Time
}

// Ledger reads and writes the migrations table through an engine.
type Ledger struct {
	eng engine.Engine
}

// NewLedger returns a ledger bound to the engine.
func NewLedger(eng engine.Engine) *Ledger {
	return &Ledger{eng: eng}
}

// EnsureTable creates the ledger table when missing and backfills columns
// older ledger schemas lack. The backfill is forward-compatibility glue:
// its failures are ignored on purpose.
func (l *Ledger) EnsureTable(ctx context.Context) error {
	create, err := createTableSQL(l.eng.Driver())
	if err != nil {
		return err
	}
	if _, err := l.eng.Execute(ctx, create); err != nil {
		return fmt.Errorf("history: creating ledger table: %w", err)
	}

	for _, alter := range backfillSQL(l.eng.Driver()) {
		if _, err := l.eng.Execute(ctx, alter); err != nil {
			debug.Debug("ledger backfill skipped", "statement", alter, "error", err)
		}
	}
	return nil
}

// All returns every ledger row ordered by (batch, applied_at, model). The
// ordering is load-bearing: it defines "first applied" for display and
// "oldest batch first" for down.
func (l *Ledger) All(ctx context.Context) ([]Record, error) {
	rows, err := l.eng.FetchAll(ctx, `
		SELECT model, filename, batch, checksum, applied_at
		FROM `+TableName+`
		ORDER BY batch ASC, applied_at ASC, model ASC`)
	if err != nil {
		return nil, fmt.Errorf("history: reading ledger: %w", err)
	}

	records := make([]Record, 0, len(rows))
	for _, row := range rows {
		records = append(records, Record{
			Model:     asString(row["model"]),
			Filename:  asString(row["filename"]),
			Batch:     int(asInt(row["batch"])),
			Checksum:  asString(row["checksum"]),
			AppliedAt: asTime(row["applied_at"]),
		})
	}
	return records, nil
}

// AppliedSet returns the set of applied model names for O(1) membership
// checks during up.
func (l *Ledger) AppliedSet(ctx context.Context) (map[string]bool, error) {
	rows, err := l.eng.FetchAll(ctx, `SELECT model FROM `+TableName)
	if err != nil {
		return nil, fmt.Errorf("history: reading applied models: %w", err)
	}
	set := make(map[string]bool, len(rows))
	for _, row := range rows {
		set[asString(row["model"])] = true
	}
	return set, nil
}

// CurrentBatch returns MAX(batch), 0 when the ledger is empty. The next
// batch number is always CurrentBatch + 1.
func (l *Ledger) CurrentBatch(ctx context.Context) (int, error) {
	row, err := l.eng.FetchOne(ctx, `SELECT MAX(batch) AS current FROM `+TableName)
	if err != nil {
		return 0, fmt.Errorf("history: reading current batch: %w", err)
	}
	if row == nil || row["current"] == nil {
		return 0, nil
	}
	return int(asInt(row["current"])), nil
}

// Record upserts the ledger row for model: the filename stored with forward
// slashes for portability, a sha256 checksum of the rendered content, and
// the batch number. Insert first, update on conflict.
func (l *Ledger) Record(ctx context.Context, file, content string, batch int, model string) error {
	filename := NormalizePath(file)
	checksum := Checksum(content)
	now := time.Now().UTC()

	_, err := l.eng.Execute(ctx, `
		INSERT INTO `+TableName+` (model, filename, batch, checksum, applied_at)
		VALUES (?, ?, ?, ?, ?)`,
		model, filename, batch, checksum, now)
	if err == nil {
		return nil
	}

	_, uerr := l.eng.Execute(ctx, `
		UPDATE `+TableName+`
		SET filename = ?, batch = ?, checksum = ?, applied_at = ?
		WHERE model = ?`,
		filename, batch, checksum, now, model)
	if uerr != nil {
		return fmt.Errorf("history: recording %s: insert: %v; update: %w", model, err, uerr)
	}
	return nil
}

// Remove deletes the ledger row for model.
func (l *Ledger) Remove(ctx context.Context, model string) error {
	if _, err := l.eng.Execute(ctx, `DELETE FROM `+TableName+` WHERE model = ?`, model); err != nil {
		return fmt.Errorf("history: removing %s: %w", model, err)
	}
	return nil
}

// Checksum returns the hex sha256 of the migration content. It is recorded
// as provenance; nothing compares it against current file content yet.
func Checksum(content string) string {
	sum := sha256.Sum256([]byte(content))
	return hex.EncodeToString(sum[:])
}

// NormalizePath rewrites any backslash separators to forward slashes so
// ledger rows stay portable across operating systems.
func NormalizePath(path string) string {
	return strings.ReplaceAll(path, `\`, "/")
}

func createTableSQL(driver string) (string, error) {
	switch driver {
	case "postgres":
		return `
			CREATE TABLE IF NOT EXISTS ` + TableName + ` (
				model VARCHAR(191) PRIMARY KEY,
				filename VARCHAR(1024) NOT NULL,
				batch INTEGER NOT NULL,
				checksum VARCHAR(64) NOT NULL,
				applied_at TIMESTAMP DEFAULT CURRENT_TIMESTAMP
			)`, nil
	case "mariadb":
		return `
			CREATE TABLE IF NOT EXISTS ` + TableName + ` (
				model VARCHAR(191) PRIMARY KEY,
				filename VARCHAR(1024) NOT NULL,
				batch INT NOT NULL,
				checksum VARCHAR(64) NOT NULL,
				applied_at TIMESTAMP DEFAULT CURRENT_TIMESTAMP
			)`, nil
	case "sqlite":
		return `
			CREATE TABLE IF NOT EXISTS ` + TableName + ` (
				model TEXT PRIMARY KEY,
				filename TEXT NOT NULL,
				batch INTEGER NOT NULL,
				checksum TEXT NOT NULL,
				applied_at DATETIME DEFAULT CURRENT_TIMESTAMP
			)`, nil
	default:
		return "", fmt.Errorf("history: unsupported driver %q", driver)
	}
}

// backfillSQL lists the ALTER statements that bring a pre-checksum ledger up
// to the current shape. Each is attempted independently and may fail when
// the column already exists.
func backfillSQL(driver string) []string {
	checksumType := "VARCHAR(64)"
	if driver == "sqlite" {
		checksumType = "TEXT"
	}
	return []string{
		"ALTER TABLE " + TableName + " ADD COLUMN checksum " + checksumType + " NOT NULL DEFAULT ''",
		"ALTER TABLE " + TableName + " ADD COLUMN batch INTEGER NOT NULL DEFAULT 1",
	}
}

func asString(v any) string {
	switch s := v.(type) {
	case string:
		return s
	case []byte:
		return string(s)
	case nil:
		return ""
	default:
		return fmt.Sprint(s)
	}
}

func asInt(v any) int64 {
	switch n := v.(type) {
	case int64:
		return n
	case int:
		return int64(n)
	case float64:
		return int64(n)
	case string:
		var out int64
		fmt.Sscanf(n, "%d", &out)
		return out
	default:
		return 0
	}
}

func asTime(v any) time.Time {
	switch t := v.(type) {
	case time.Time:
		return t
	case string:
		for _, layout := range []string{time.RFC3339, "2006-01-02 15:04:05", "2006-01-02T15:04:05Z07:00"} {
			if parsed, err := time.Parse(layout, t); err == nil {
				return parsed
			}
		}
	}
	return time.Time{}
}
