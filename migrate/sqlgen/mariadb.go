package sqlgen

import (
	"fmt"
	"strings"

	"github.com/satishbabariya/migrate-go/schema"
)

// renderCreateMariaDB renders a single CREATE TABLE statement. MariaDB keeps
// everything inline: named uniques, secondary indexes, and foreign keys all
// live inside the table body.
func renderCreateMariaDB(p tablePlan) (string, error) {
	var body []string
	for _, col := range p.columns {
		line, err := mariadbColumnSQL(col)
		if err != nil {
			return "", fmt.Errorf("table %q: %w", p.name, err)
		}
		body = append(body, "  "+line)
	}

	for _, u := range p.uniques {
		body = append(body, fmt.Sprintf("  CONSTRAINT %s UNIQUE (%s)",
			quoteBacktick(u.Name), strings.Join(quoteAllBacktick(u.Columns), ", ")))
	}

	for _, idx := range p.indexes {
		kw := "INDEX"
		if idx.Unique {
			kw = "UNIQUE INDEX"
		}
		body = append(body, fmt.Sprintf("  %s %s (%s)",
			kw, quoteBacktick(idx.Name), strings.Join(quoteAllBacktick(idx.Columns), ", ")))
	}

	for _, fk := range p.fks {
		line := fmt.Sprintf("  CONSTRAINT %s FOREIGN KEY (%s) REFERENCES %s (%s)",
			quoteBacktick(fkName(p.name, fk.Column)), quoteBacktick(fk.Column),
			quoteBacktick(fk.Ref.Table), quoteBacktick(fk.Ref.Column))
		if fk.Ref.OnDelete != "" {
			line += " ON DELETE " + fk.Ref.OnDelete
		}
		if fk.Ref.OnUpdate != "" {
			line += " ON UPDATE " + fk.Ref.OnUpdate
		}
		body = append(body, line)
	}

	return fmt.Sprintf("CREATE TABLE %s (\n%s\n);",
		quoteBacktick(p.name), strings.Join(body, ",\n")), nil
}

func mariadbColumnSQL(col schema.Column) (string, error) {
	typ, err := mariadbColumnType(col)
	if err != nil {
		return "", err
	}

	line := quoteBacktick(col.Name) + " " + typ
	if col.NotNull {
		line += " NOT NULL"
	}
	if col.HasDefault {
		line += " DEFAULT " + defaultSQL(col.Default, "1", "0")
	}
	if col.Unique {
		line += " UNIQUE"
	}
	if col.Kind == schema.KindActive {
		line += fmt.Sprintf(" CHECK (%s REGEXP '^[01]$')", quoteBacktick(col.Name))
	}

	return line, nil
}

func mariadbColumnType(col schema.Column) (string, error) {
	switch col.Kind {
	case schema.KindID:
		return "INT PRIMARY KEY AUTO_INCREMENT", nil
	case schema.KindIncrements:
		return "INT UNSIGNED PRIMARY KEY AUTO_INCREMENT", nil
	case schema.KindBigIncrements:
		return "BIGINT UNSIGNED PRIMARY KEY AUTO_INCREMENT", nil

	case schema.KindString, schema.KindSlug:
		return fmt.Sprintf("VARCHAR(%d)", intParam(col, 0, 255)), nil
	case schema.KindChar:
		return fmt.Sprintf("CHAR(%d)", intParam(col, 0, 255)), nil
	case schema.KindText:
		return "TEXT", nil
	case schema.KindTinyText:
		return "TINYTEXT", nil
	case schema.KindMediumText:
		return "MEDIUMTEXT", nil
	case schema.KindLongText:
		return "LONGTEXT", nil
	case schema.KindRememberToken:
		return "VARCHAR(100)", nil

	case schema.KindInteger:
		return "INT", nil
	case schema.KindTinyInteger:
		return "TINYINT", nil
	case schema.KindSmallInteger:
		return "SMALLINT", nil
	case schema.KindMediumInteger:
		return "MEDIUMINT", nil
	case schema.KindBigInteger:
		return "BIGINT", nil
	case schema.KindUnsignedInteger:
		return "INT UNSIGNED", nil
	case schema.KindUnsignedTinyInteger:
		return "TINYINT UNSIGNED", nil
	case schema.KindUnsignedSmallInteger:
		return "SMALLINT UNSIGNED", nil
	case schema.KindUnsignedMediumInteger:
		return "MEDIUMINT UNSIGNED", nil
	case schema.KindUnsignedBigInteger, schema.KindForeignID:
		return "BIGINT UNSIGNED", nil

	case schema.KindFloat:
		return "FLOAT", nil
	case schema.KindDouble:
		return "DOUBLE", nil
	case schema.KindDecimal:
		return fmt.Sprintf("DECIMAL(%d, %d)", intParam(col, 0, 8), intParam(col, 1, 2)), nil
	case schema.KindUnsignedDecimal:
		return fmt.Sprintf("DECIMAL(%d, %d) UNSIGNED", intParam(col, 0, 8), intParam(col, 1, 2)), nil

	case schema.KindBoolean:
		return "TINYINT(1)", nil

	case schema.KindDate:
		return "DATE", nil
	case schema.KindDateTime, schema.KindDateTimeTz:
		return "DATETIME", nil
	case schema.KindTime, schema.KindTimeTz:
		return "TIME", nil
	case schema.KindTimestamp, schema.KindTimestampTz:
		return "TIMESTAMP", nil
	case schema.KindYear:
		return "YEAR", nil

	case schema.KindJSON, schema.KindJSONB:
		return "JSON", nil

	case schema.KindUUID, schema.KindForeignUUID:
		return "CHAR(36)", nil
	case schema.KindULID, schema.KindForeignULID:
		return "CHAR(26)", nil

	case schema.KindEnum:
		return fmt.Sprintf("ENUM(%s)", enumValues(col)), nil
	case schema.KindSet:
		return fmt.Sprintf("SET(%s)", enumValues(col)), nil

	case schema.KindIPAddress:
		return "VARCHAR(45)", nil
	case schema.KindMACAddress:
		return "VARCHAR(17)", nil

	case schema.KindBinary:
		return "BLOB", nil

	case schema.KindGeometry, schema.KindGeography:
		return "GEOMETRY", nil
	case schema.KindPoint:
		return "POINT", nil
	case schema.KindLineString:
		return "LINESTRING", nil
	case schema.KindPolygon:
		return "POLYGON", nil
	case schema.KindMultiPoint:
		return "MULTIPOINT", nil
	case schema.KindMultiLineString:
		return "MULTILINESTRING", nil
	case schema.KindMultiPolygon:
		return "MULTIPOLYGON", nil
	case schema.KindGeometryCollection:
		return "GEOMETRYCOLLECTION", nil

	case schema.KindVersion:
		return "INT", nil
	case schema.KindActive:
		return "CHAR(1)", nil

	default:
		return "", fmt.Errorf("mariadb renderer: unsupported column kind %q (column %q)", col.Kind, col.Name)
	}
}
