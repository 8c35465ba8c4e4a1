// Package engine provides a uniform execute/fetch/transaction contract over
// the three supported database drivers. Each engine normalizes placeholder
// style, parameter values, and result shapes so callers never see a native
// driver convention.
package engine

import (
	"fmt"
	"sort"
	"strings"
	"time"
)

// Config describes one database connection. Driver selects the variant:
// sqlite uses Path, the network drivers use Host/Port/User/Password/Database.
type Config struct {
	Driver   string
	Host     string
	Port     int
	User     string
	Password string
	Database string
	SSLMode  string

	// Path is the database file for sqlite (":memory:" works too).
	Path string

	MaxOpenConns    int
	MaxIdleConns    int
	ConnMaxLifetime time.Duration
	AcquireTimeout  time.Duration
}

// Key returns a stable identity string for the configuration: a sorted
// key=value join. Two configs with the same key can share one live engine;
// a changed key forces rotation.
func (c Config) Key() string {
	parts := []string{
		"database=" + c.Database,
		"driver=" + c.Driver,
		"host=" + c.Host,
		"password=" + c.Password,
		"path=" + c.Path,
		fmt.Sprintf("port=%d", c.Port),
		"sslmode=" + c.SSLMode,
		"user=" + c.User,
	}
	sort.Strings(parts)
	return strings.Join(parts, "&")
}

// dsn returns the database/sql driver name and connection string.
func (c Config) dsn() (driverName, dsn string, err error) {
	switch c.Driver {
	case "sqlite":
		return sqliteDSN(c)
	case "mariadb":
		return mariadbDSN(c)
	case "postgres":
		return postgresDSN(c)
	default:
		return "", "", fmt.Errorf("engine: unsupported driver %q", c.Driver)
	}
}
