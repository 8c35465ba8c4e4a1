package engine

import (
	"fmt"
	"strings"

	_ "github.com/lib/pq" // postgres driver
)

// postgresDSN builds a keyword/value connection string for lib/pq.
func postgresDSN(c Config) (string, string, error) {
	if c.Database == "" {
		return "", "", fmt.Errorf("engine: postgres config requires a database name")
	}
	port := c.Port
	if port == 0 {
		port = 5432
	}
	sslmode := c.SSLMode
	if sslmode == "" {
		sslmode = "disable"
	}

	parts := []string{
		"host=" + pqValue(c.Host),
		fmt.Sprintf("port=%d", port),
		"dbname=" + pqValue(c.Database),
		"sslmode=" + sslmode,
	}
	if c.User != "" {
		parts = append(parts, "user="+pqValue(c.User))
	}
	if c.Password != "" {
		parts = append(parts, "password="+pqValue(c.Password))
	}
	if c.AcquireTimeout > 0 {
		parts = append(parts, fmt.Sprintf("connect_timeout=%d", int(c.AcquireTimeout.Seconds())))
	}
	return "postgres", strings.Join(parts, " "), nil
}

// pqValue quotes a DSN value when it contains spaces or quotes.
func pqValue(v string) string {
	if v == "" || strings.ContainsAny(v, " '\\") {
		v = strings.ReplaceAll(v, `\`, `\\`)
		v = strings.ReplaceAll(v, `'`, `\'`)
		return "'" + v + "'"
	}
	return v
}
