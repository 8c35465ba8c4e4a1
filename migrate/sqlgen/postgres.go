package sqlgen

import (
	"fmt"
	"strings"

	"github.com/satishbabariya/migrate-go/schema"
)

// renderCreatePostgres renders the CREATE TABLE statement followed by
// separate CREATE INDEX statements and ALTER TABLE ... ADD CONSTRAINT
// statements for foreign keys.
func renderCreatePostgres(p tablePlan) (string, error) {
	var body []string
	for _, col := range p.columns {
		line, err := postgresColumnSQL(col)
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
		unique := ""
		if idx.Unique {
			unique = "UNIQUE "
		}
		statements = append(statements, fmt.Sprintf("CREATE %sINDEX %s ON %s (%s);",
			unique, quoteDouble(idx.Name), quoteDouble(p.name),
			strings.Join(quoteAllDouble(idx.Columns), ", ")))
	}

	for _, fk := range p.fks {
		stmt := fmt.Sprintf("ALTER TABLE %s ADD CONSTRAINT %s FOREIGN KEY (%s) REFERENCES %s (%s)",
			quoteDouble(p.name), quoteDouble(fkName(p.name, fk.Column)),
			quoteDouble(fk.Column), quoteDouble(fk.Ref.Table), quoteDouble(fk.Ref.Column))
		if fk.Ref.OnDelete != "" {
			stmt += " ON DELETE " + fk.Ref.OnDelete
		}
		if fk.Ref.OnUpdate != "" {
			stmt += " ON UPDATE " + fk.Ref.OnUpdate
		}
		statements = append(statements, stmt+";")
	}

	return strings.Join(statements, "\n"), nil
}

func postgresColumnSQL(col schema.Column) (string, error) {
	typ, err := postgresColumnType(col)
	if err != nil {
		return "", err
	}

	line := quoteDouble(col.Name) + " " + typ
	if col.NotNull {
		line += " NOT NULL"
	}
	if col.HasDefault {
		line += " DEFAULT " + defaultSQL(col.Default, "TRUE", "FALSE")
	}
	if col.Unique {
		line += " UNIQUE"
	}

	switch col.Kind {
	case schema.KindEnum:
		line += fmt.Sprintf(" CHECK (%s IN (%s))", quoteDouble(col.Name), enumValues(col))
	case schema.KindActive:
		line += fmt.Sprintf(" CHECK (%s ~ '^[01]$')", quoteDouble(col.Name))
	}

	return line, nil
}

func postgresColumnType(col schema.Column) (string, error) {
	switch col.Kind {
	case schema.KindID:
		// Intentional divergence from the other dialects: the neutral
		// id column is a UUID key on postgres.
		return "UUID PRIMARY KEY", nil
	case schema.KindIncrements:
		return "SERIAL PRIMARY KEY", nil
	case schema.KindBigIncrements:
		return "BIGSERIAL PRIMARY KEY", nil

	case schema.KindString, schema.KindSlug:
		return fmt.Sprintf("VARCHAR(%d)", intParam(col, 0, 255)), nil
	case schema.KindChar:
		return fmt.Sprintf("CHAR(%d)", intParam(col, 0, 255)), nil
	case schema.KindText, schema.KindTinyText, schema.KindMediumText, schema.KindLongText:
		return "TEXT", nil
	case schema.KindRememberToken:
		return "VARCHAR(100)", nil

	case schema.KindInteger, schema.KindMediumInteger, schema.KindUnsignedInteger,
		schema.KindUnsignedMediumInteger:
		return "INTEGER", nil
	case schema.KindTinyInteger, schema.KindSmallInteger,
		schema.KindUnsignedTinyInteger, schema.KindUnsignedSmallInteger:
		return "SMALLINT", nil
	case schema.KindBigInteger, schema.KindUnsignedBigInteger, schema.KindForeignID:
		return "BIGINT", nil

	case schema.KindFloat:
		return "REAL", nil
	case schema.KindDouble:
		return "DOUBLE PRECISION", nil
	case schema.KindDecimal, schema.KindUnsignedDecimal:
		return fmt.Sprintf("NUMERIC(%d, %d)", intParam(col, 0, 8), intParam(col, 1, 2)), nil

	case schema.KindBoolean:
		return "BOOLEAN", nil

	case schema.KindDate:
		return "DATE", nil
	case schema.KindDateTime, schema.KindTimestamp:
		return "TIMESTAMP", nil
	case schema.KindDateTimeTz, schema.KindTimestampTz:
		return "TIMESTAMPTZ", nil
	case schema.KindTime:
		return "TIME", nil
	case schema.KindTimeTz:
		return "TIMETZ", nil
	case schema.KindYear:
		return "SMALLINT", nil

	case schema.KindJSON:
		return "JSON", nil
	case schema.KindJSONB:
		return "JSONB", nil

	case schema.KindUUID, schema.KindForeignUUID:
		return "UUID", nil
	case schema.KindULID, schema.KindForeignULID:
		return "CHAR(26)", nil

	case schema.KindEnum:
		return "VARCHAR(255)", nil
	case schema.KindSet:
		return "TEXT", nil

	case schema.KindIPAddress:
		return "INET", nil
	case schema.KindMACAddress:
		return "MACADDR", nil

	case schema.KindBinary:
		return "BYTEA", nil

	// Spatial types assume PostGIS.
	case schema.KindGeometry:
		return "GEOMETRY", nil
	case schema.KindGeography:
		return "GEOGRAPHY", nil
	case schema.KindPoint:
		return "GEOMETRY(POINT)", nil
	case schema.KindLineString:
		return "GEOMETRY(LINESTRING)", nil
	case schema.KindPolygon:
		return "GEOMETRY(POLYGON)", nil
	case schema.KindMultiPoint:
		return "GEOMETRY(MULTIPOINT)", nil
	case schema.KindMultiLineString:
		return "GEOMETRY(MULTILINESTRING)", nil
	case schema.KindMultiPolygon:
		return "GEOMETRY(MULTIPOLYGON)", nil
	case schema.KindGeometryCollection:
		return "GEOMETRY(GEOMETRYCOLLECTION)", nil

	case schema.KindVersion:
		return "INTEGER", nil
	case schema.KindActive:
		return "CHAR(1)", nil

	default:
		return "", fmt.Errorf("postgres renderer: unsupported column kind %q (column %q)", col.Kind, col.Name)
	}
}
