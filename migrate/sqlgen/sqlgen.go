// Package sqlgen renders dialect-neutral table definitions into DDL text for
// the three supported backends. Rendering is pure string assembly: values in
// these statements only ever come from migration code, never from user input,
// so the parameterized query path lives elsewhere (runtime/engine) and must
// not be mixed with this one.
//
// Every ColumnKind must be handled by every dialect. An unhandled kind is a
// construction error raised before any SQL reaches a connection; there is no
// runtime fallback, so new kinds have to land in all three renderers in the
// same change.
package sqlgen

import (
	"fmt"
	"strings"

	"github.com/satishbabariya/migrate-go/schema"
)

// Supported driver names.
const (
	DriverSQLite   = "sqlite"
	DriverMariaDB  = "mariadb"
	DriverPostgres = "postgres"
)

// CreateTable renders the CREATE TABLE text (possibly several statements,
// joined with newlines and each terminated by a semicolon) for one driver.
func CreateTable(driver string, def schema.TableDefinition) (string, error) {
	p, err := buildPlan(def)
	if err != nil {
		return "", err
	}
	switch driver {
	case DriverSQLite:
		return renderCreateSQLite(p)
	case DriverMariaDB:
		return renderCreateMariaDB(p)
	case DriverPostgres:
		return renderCreatePostgres(p)
	default:
		return "", fmt.Errorf("sqlgen: unsupported driver %q", driver)
	}
}

// DropTable renders the DROP TABLE statement for one driver.
func DropTable(driver, name string) (string, error) {
	switch driver {
	case DriverSQLite, DriverPostgres:
		return fmt.Sprintf("DROP TABLE IF EXISTS %s;", quoteDouble(name)), nil
	case DriverMariaDB:
		return fmt.Sprintf("DROP TABLE IF EXISTS %s;", quoteBacktick(name)), nil
	default:
		return "", fmt.Errorf("sqlgen: unsupported driver %q", driver)
	}
}

// SplitStatements splits rendered DDL into individual statements. Renderers
// may emit more than one statement (separate CREATE INDEX, ALTER TABLE for
// foreign keys); callers must split before handing text to a connection.
func SplitStatements(sql string) []string {
	var out []string
	for _, part := range strings.Split(sql, ";") {
		part = strings.TrimSpace(part)
		if part != "" {
			out = append(out, part)
		}
	}
	return out
}

// foreignKey pairs a local column with its reference.
type foreignKey struct {
	Column string
	Ref    schema.ForeignRef
}

// tablePlan is the dialect-independent shape shared by the renderers:
// physical columns only (morph pairs and timestamp pairs already expanded),
// named uniques and secondary indexes lifted out of the column list, and
// foreign keys collected for dialect-specific placement.
type tablePlan struct {
	name    string
	columns []schema.Column
	uniques []schema.Constraint
	indexes []schema.Constraint
	fks     []foreignKey
}

func buildPlan(def schema.TableDefinition) (tablePlan, error) {
	p := tablePlan{name: def.Name}

	for _, col := range def.Columns {
		switch col.Kind {
		case schema.KindTimestamps, schema.KindTimestampsTz:
			kind := schema.KindTimestamp
			if col.Kind == schema.KindTimestampsTz {
				kind = schema.KindTimestampTz
			}
			p.columns = append(p.columns,
				schema.Column{Kind: kind, Name: "created_at", Nullable: true},
				schema.Column{Kind: kind, Name: "updated_at", Nullable: true},
			)
			continue

		case schema.KindSoftDeletes:
			p.columns = append(p.columns,
				schema.Column{Kind: schema.KindTimestamp, Name: "deleted_at", Nullable: true})
			continue

		case schema.KindMorphs, schema.KindNullableMorphs,
			schema.KindUUIDMorphs, schema.KindNullableUUIDMorphs:
			p.expandMorphs(col)
			continue
		}

		physical := col

		switch physical.Kind {
		case schema.KindSlug:
			if !physical.Unique {
				physical.Unique = true
			}
		case schema.KindVersion:
			physical.NotNull = true
			if !physical.HasDefault {
				physical.HasDefault = true
				physical.Default = 1
			}
		case schema.KindActive:
			physical.NotNull = true
			if !physical.HasDefault {
				physical.HasDefault = true
				physical.Default = "1"
			}
		case schema.KindRememberToken:
			physical.Nullable = true
		}

		// A named unique becomes a table-level constraint so later
		// tooling can drop it by a predictable name.
		if physical.Unique && physical.UniqueName != "" {
			p.uniques = append(p.uniques, schema.Constraint{
				Type:    schema.ConstraintUnique,
				Columns: []string{physical.Name},
				Name:    physical.UniqueName,
				Unique:  true,
			})
			physical.Unique = false
			physical.UniqueName = ""
		}

		if physical.HasIndex {
			name := physical.IndexName
			if name == "" {
				name = indexName(def.Name, []string{physical.Name}, physical.IndexUnique)
			}
			p.indexes = append(p.indexes, schema.Constraint{
				Type:    schema.ConstraintIndex,
				Columns: []string{physical.Name},
				Name:    name,
				Unique:  physical.IndexUnique,
			})
			physical.HasIndex = false
		}

		if physical.References != nil {
			p.fks = append(p.fks, foreignKey{Column: physical.Name, Ref: *physical.References})
		}

		p.columns = append(p.columns, physical)
	}

	for _, c := range def.Constraints {
		name := c.Name
		switch c.Type {
		case schema.ConstraintUnique:
			if name == "" {
				name = indexName(def.Name, c.Columns, true)
			}
			p.uniques = append(p.uniques, schema.Constraint{
				Type: schema.ConstraintUnique, Columns: c.Columns, Name: name, Unique: true})
		case schema.ConstraintIndex:
			if name == "" {
				name = indexName(def.Name, c.Columns, c.Unique)
			}
			p.indexes = append(p.indexes, schema.Constraint{
				Type: schema.ConstraintIndex, Columns: c.Columns, Name: name, Unique: c.Unique})
		default:
			return tablePlan{}, fmt.Errorf("sqlgen: unsupported constraint type %q on table %q", c.Type, def.Name)
		}
	}

	return p, nil
}

// expandMorphs turns one morph column into the {base}_type / {base}_id pair
// plus a composite index over both.
func (p *tablePlan) expandMorphs(col schema.Column) {
	base := col.Name
	nullable := col.Nullable ||
		col.Kind == schema.KindNullableMorphs || col.Kind == schema.KindNullableUUIDMorphs

	idKind := schema.KindUnsignedBigInteger
	if col.Kind == schema.KindUUIDMorphs || col.Kind == schema.KindNullableUUIDMorphs {
		idKind = schema.KindUUID
	}

	typeCol := schema.Column{Kind: schema.KindString, Name: base + "_type"}
	idCol := schema.Column{Kind: idKind, Name: base + "_id"}
	if nullable {
		typeCol.Nullable = true
		idCol.Nullable = true
	} else {
		typeCol.NotNull = true
		idCol.NotNull = true
	}

	p.columns = append(p.columns, typeCol, idCol)
	p.indexes = append(p.indexes, schema.Constraint{
		Type:    schema.ConstraintIndex,
		Columns: []string{base + "_type", base + "_id"},
		Name:    indexName(p.name, []string{base + "_type", base + "_id"}, false),
	})
}

func indexName(table string, columns []string, unique bool) string {
	suffix := "_index"
	if unique {
		suffix = "_unique"
	}
	return table + "_" + strings.Join(columns, "_") + suffix
}

func fkName(table, column string) string {
	return "fk_" + table + "_" + column
}

func quoteDouble(ident string) string {
	return `"` + ident + `"`
}

func quoteBacktick(ident string) string {
	return "`" + ident + "`"
}

func quoteAllDouble(idents []string) []string {
	out := make([]string, len(idents))
	for i, id := range idents {
		out[i] = quoteDouble(id)
	}
	return out
}

func quoteAllBacktick(idents []string) []string {
	out := make([]string, len(idents))
	for i, id := range idents {
		out[i] = quoteBacktick(id)
	}
	return out
}

// intParam returns the i-th Params entry as an int with a fallback.
func intParam(col schema.Column, i, fallback int) int {
	if len(col.Params) > i {
		if n, ok := col.Params[i].(int); ok {
			return n
		}
	}
	return fallback
}

// enumValues renders the Params list as a quoted SQL value list.
func enumValues(col schema.Column) string {
	parts := make([]string, 0, len(col.Params))
	for _, p := range col.Params {
		parts = append(parts, "'"+strings.ReplaceAll(fmt.Sprint(p), "'", "''")+"'")
	}
	return strings.Join(parts, ", ")
}

// defaultSQL renders a DEFAULT value. schema.Expr values pass through as raw
// SQL; strings are single-quoted; bools map to the dialect's literal.
func defaultSQL(v any, boolTrue, boolFalse string) string {
	switch d := v.(type) {
	case schema.Expr:
		return string(d)
	case string:
		return "'" + strings.ReplaceAll(d, "'", "''") + "'"
	case bool:
		if d {
			return boolTrue
		}
		return boolFalse
	default:
		return fmt.Sprint(d)
	}
}
