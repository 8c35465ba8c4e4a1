package sqlgen

import (
	"fmt"
	"strings"

	"github.com/satishbabariya/migrate-go/schema"
)

// renderCreateSQLite renders the CREATE TABLE statement plus any separate
// CREATE INDEX statements. Foreign keys are deliberately not rendered for
// sqlite: the other dialects carry them, and the asymmetry is a documented
// limitation of this layer rather than an accident.
func renderCreateSQLite(p tablePlan) (string, error) {
	var body []string
	for _, col := range p.columns {
		line, err := sqliteColumnSQL(col)
		if err != nil {
			return "", fmt.Errorf("table %q: %w", p.name, err)
		}
		body = append(body, "  "+line)
	}

	for _, u := range p.uniques {
		body = append(body, fmt.Sprintf("  CONSTRAINT %s UNIQUE (%s)",
			quoteDouble(u.Name), strings.Join(quoteAllDouble(u.Columns), ", ")))
	}

	statements := []string{fmt.Sprintf("CREATE TABLE %s (\n%s\n);",
		quoteDouble(p.name), strings.Join(body, ",\n"))}

	for _, idx := range p.indexes {
		statements = append(statements, sqliteIndexSQL(p.name, idx))
	}

	return strings.Join(statements, "\n"), nil
}

func sqliteIndexSQL(table string, idx schema.Constraint) string {
	unique := ""
	if idx.Unique {
		unique = "UNIQUE "
	}
	return fmt.Sprintf("CREATE %sINDEX %s ON %s (%s);",
		unique, quoteDouble(idx.Name), quoteDouble(table),
		strings.Join(quoteAllDouble(idx.Columns), ", "))
}

func sqliteColumnSQL(col schema.Column) (string, error) {
	typ, err := sqliteColumnType(col)
	if err != nil {
		return "", err
	}

	line := quoteDouble(col.Name) + " " + typ
	if col.NotNull {
		line += " NOT NULL"
	}
	if col.HasDefault {
		line += " DEFAULT " + defaultSQL(col.Default, "1", "0")
	}
	if col.Unique {
		line += " UNIQUE"
	}

	switch col.Kind {
	case schema.KindEnum:
		line += fmt.Sprintf(" CHECK (%s IN (%s))", quoteDouble(col.Name), enumValues(col))
	case schema.KindActive:
		line += fmt.Sprintf(" CHECK (length(%s) = 1 AND %s IN ('0', '1'))",
			quoteDouble(col.Name), quoteDouble(col.Name))
	}

	return line, nil
}

// sqliteColumnType maps every ColumnKind to a sqlite storage type. The switch
// is exhaustive on purpose; an unknown kind aborts the build.
func sqliteColumnType(col schema.Column) (string, error) {
	switch col.Kind {
	case schema.KindID:
		return "TEXT PRIMARY KEY", nil
	case schema.KindIncrements, schema.KindBigIncrements:
		// sqlite only auto-increments an INTEGER PRIMARY KEY.
		return "INTEGER PRIMARY KEY AUTOINCREMENT", nil

	case schema.KindString, schema.KindChar, schema.KindText,
		schema.KindTinyText, schema.KindMediumText, schema.KindLongText,
		schema.KindSlug, schema.KindRememberToken,
		schema.KindUUID, schema.KindULID,
		schema.KindForeignUUID, schema.KindForeignULID,
		schema.KindIPAddress, schema.KindMACAddress,
		schema.KindEnum, schema.KindSet,
		schema.KindJSON, schema.KindJSONB,
		schema.KindActive:
		return "TEXT", nil

	case schema.KindInteger, schema.KindTinyInteger, schema.KindSmallInteger,
		schema.KindMediumInteger, schema.KindBigInteger,
		schema.KindUnsignedInteger, schema.KindUnsignedTinyInteger,
		schema.KindUnsignedSmallInteger, schema.KindUnsignedMediumInteger,
		schema.KindUnsignedBigInteger,
		schema.KindForeignID, schema.KindYear, schema.KindVersion,
		schema.KindBoolean:
		return "INTEGER", nil

	case schema.KindFloat, schema.KindDouble:
		return "REAL", nil
	case schema.KindDecimal, schema.KindUnsignedDecimal:
		return fmt.Sprintf("NUMERIC(%d, %d)", intParam(col, 0, 8), intParam(col, 1, 2)), nil

	case schema.KindDate:
		return "DATE", nil
	case schema.KindDateTime, schema.KindDateTimeTz,
		schema.KindTimestamp, schema.KindTimestampTz:
		return "DATETIME", nil
	case schema.KindTime, schema.KindTimeTz:
		return "TIME", nil

	case schema.KindBinary:
		return "BLOB", nil

	// Spatial values are stored as WKT text.
	case schema.KindGeometry, schema.KindGeography, schema.KindPoint,
		schema.KindLineString, schema.KindPolygon, schema.KindMultiPoint,
		schema.KindMultiLineString, schema.KindMultiPolygon,
		schema.KindGeometryCollection:
		return "TEXT", nil

	default:
		return "", fmt.Errorf("sqlite renderer: unsupported column kind %q (column %q)", col.Kind, col.Name)
	}
}
