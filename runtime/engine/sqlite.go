package engine

import (
	"fmt"

	_ "github.com/mattn/go-sqlite3" // sqlite driver
)

// sqliteDSN builds the connection string for a file-backed (or in-memory)
// sqlite database. Foreign keys are switched on so the engine behaves the
// same as the network drivers for DML, even though the DDL renderer skips FK
// clauses for this dialect.
func sqliteDSN(c Config) (string, string, error) {
	if c.Path == "" {
		return "", "", fmt.Errorf("engine: sqlite config requires a file path")
	}
	return "sqlite3", "file:" + c.Path + "?_foreign_keys=on", nil
}
