package schema

// Table is the fluent builder a migration's definition function receives.
// Column methods append to an ordered list and return a Chain scoped to the
// new column. No validation happens here; a malformed definition is rejected
// by the renderer, not the builder.
type Table struct {
	name        string
	columns     []*Column
	constraints []Constraint
}

// NewTable returns an empty builder for the named table.
func NewTable(name string) *Table {
	return &Table{name: name}
}

// Definition returns the accumulated table description.
func (t *Table) Definition() TableDefinition {
	def := TableDefinition{
		Name:        t.name,
		Columns:     make([]Column, len(t.columns)),
		Constraints: append([]Constraint(nil), t.constraints...),
	}
	for i, c := range t.columns {
		def.Columns[i] = *c
	}
	return def
}

// Chain scopes modifier calls to the most recently added column.
type Chain struct {
	col *Column
}

// NotNull marks the column NOT NULL.
func (c *Chain) NotNull() *Chain {
	c.col.NotNull = true
	c.col.Nullable = false
	return c
}

// Nullable marks the column as explicitly nullable.
func (c *Chain) Nullable() *Chain {
	c.col.Nullable = true
	c.col.NotNull = false
	return c
}

// Unique marks the column unique. With a name the renderer emits a named
// table-level constraint instead of an inline UNIQUE clause.
func (c *Chain) Unique(name ...string) *Chain {
	c.col.Unique = true
	if len(name) > 0 {
		c.col.UniqueName = name[0]
	}
	return c
}

// Default sets the column default value.
func (c *Chain) Default(v any) *Chain {
	c.col.HasDefault = true
	c.col.Default = v
	return c
}

// References attaches a foreign-key reference. Optional trailing arguments
// are the ON DELETE and ON UPDATE actions, in that order.
func (c *Chain) References(table, column string, actions ...string) *Chain {
	ref := &ForeignRef{Table: table, Column: column}
	if len(actions) > 0 {
		ref.OnDelete = actions[0]
	}
	if len(actions) > 1 {
		ref.OnUpdate = actions[1]
	}
	c.col.References = ref
	return c
}

// Index requests a secondary index on this column.
func (c *Chain) Index(name ...string) *Chain {
	c.col.HasIndex = true
	if len(name) > 0 {
		c.col.IndexName = name[0]
	}
	return c
}

// UniqueIndex requests a unique secondary index on this column.
func (c *Chain) UniqueIndex(name ...string) *Chain {
	c.Index(name...)
	c.col.IndexUnique = true
	return c
}

func (t *Table) add(kind ColumnKind, name string, params ...any) *Chain {
	col := &Column{Kind: kind, Name: name, Params: params}
	t.columns = append(t.columns, col)
	return &Chain{col: col}
}

// ID adds the conventional primary-key column. Dialects disagree on its
// physical type on purpose: UUID on postgres, auto-incrementing integer on
// mariadb, TEXT key on sqlite.
func (t *Table) ID(name ...string) *Chain {
	n := "id"
	if len(name) > 0 {
		n = name[0]
	}
	return t.add(KindID, n)
}

// Increments adds an auto-incrementing integer primary key.
func (t *Table) Increments(name string) *Chain { return t.add(KindIncrements, name) }

// BigIncrements adds an auto-incrementing big-integer primary key.
func (t *Table) BigIncrements(name string) *Chain { return t.add(KindBigIncrements, name) }

// String adds a VARCHAR column, 255 wide unless a length is given.
func (t *Table) String(name string, length ...int) *Chain {
	if len(length) > 0 {
		return t.add(KindString, name, length[0])
	}
	return t.add(KindString, name)
}

// Char adds a fixed-width CHAR column.
func (t *Table) Char(name string, length int) *Chain { return t.add(KindChar, name, length) }

func (t *Table) Text(name string) *Chain       { return t.add(KindText, name) }
func (t *Table) TinyText(name string) *Chain   { return t.add(KindTinyText, name) }
func (t *Table) MediumText(name string) *Chain { return t.add(KindMediumText, name) }
func (t *Table) LongText(name string) *Chain   { return t.add(KindLongText, name) }

func (t *Table) Integer(name string) *Chain       { return t.add(KindInteger, name) }
func (t *Table) TinyInteger(name string) *Chain   { return t.add(KindTinyInteger, name) }
func (t *Table) SmallInteger(name string) *Chain  { return t.add(KindSmallInteger, name) }
func (t *Table) MediumInteger(name string) *Chain { return t.add(KindMediumInteger, name) }
func (t *Table) BigInteger(name string) *Chain    { return t.add(KindBigInteger, name) }

func (t *Table) UnsignedInteger(name string) *Chain     { return t.add(KindUnsignedInteger, name) }
func (t *Table) UnsignedTinyInteger(name string) *Chain { return t.add(KindUnsignedTinyInteger, name) }
func (t *Table) UnsignedSmallInteger(name string) *Chain {
	return t.add(KindUnsignedSmallInteger, name)
}
func (t *Table) UnsignedMediumInteger(name string) *Chain {
	return t.add(KindUnsignedMediumInteger, name)
}
func (t *Table) UnsignedBigInteger(name string) *Chain { return t.add(KindUnsignedBigInteger, name) }

// Float adds a single-precision float column.
func (t *Table) Float(name string) *Chain { return t.add(KindFloat, name) }

// Double adds a double-precision float column.
func (t *Table) Double(name string) *Chain { return t.add(KindDouble, name) }

// Decimal adds an exact numeric column with the given precision and scale.
func (t *Table) Decimal(name string, precision, scale int) *Chain {
	return t.add(KindDecimal, name, precision, scale)
}

// UnsignedDecimal adds an unsigned exact numeric column.
func (t *Table) UnsignedDecimal(name string, precision, scale int) *Chain {
	return t.add(KindUnsignedDecimal, name, precision, scale)
}

func (t *Table) Boolean(name string) *Chain { return t.add(KindBoolean, name) }

func (t *Table) Date(name string) *Chain        { return t.add(KindDate, name) }
func (t *Table) DateTime(name string) *Chain    { return t.add(KindDateTime, name) }
func (t *Table) DateTimeTz(name string) *Chain  { return t.add(KindDateTimeTz, name) }
func (t *Table) Time(name string) *Chain        { return t.add(KindTime, name) }
func (t *Table) TimeTz(name string) *Chain      { return t.add(KindTimeTz, name) }
func (t *Table) Timestamp(name string) *Chain   { return t.add(KindTimestamp, name) }
func (t *Table) TimestampTz(name string) *Chain { return t.add(KindTimestampTz, name) }
func (t *Table) Year(name string) *Chain        { return t.add(KindYear, name) }

// Timestamps adds the created_at / updated_at pair.
func (t *Table) Timestamps() { t.add(KindTimestamps, "") }

// TimestampsTz adds the created_at / updated_at pair with time zones.
func (t *Table) TimestampsTz() { t.add(KindTimestampsTz, "") }

// SoftDeletes adds a nullable deleted_at column.
func (t *Table) SoftDeletes() { t.add(KindSoftDeletes, "deleted_at") }

func (t *Table) JSON(name string) *Chain  { return t.add(KindJSON, name) }
func (t *Table) JSONB(name string) *Chain { return t.add(KindJSONB, name) }

func (t *Table) UUID(name string) *Chain { return t.add(KindUUID, name) }
func (t *Table) ULID(name string) *Chain { return t.add(KindULID, name) }

// ForeignID adds an unsigned big integer meant to reference another table's
// key; combine with References for the actual constraint.
func (t *Table) ForeignID(name string) *Chain   { return t.add(KindForeignID, name) }
func (t *Table) ForeignUUID(name string) *Chain { return t.add(KindForeignUUID, name) }
func (t *Table) ForeignULID(name string) *Chain { return t.add(KindForeignULID, name) }

// Morphs adds a {base}_type / {base}_id polymorphic pair with a composite
// index. The expansion to physical columns happens in the renderer.
func (t *Table) Morphs(base string) *Chain         { return t.add(KindMorphs, base) }
func (t *Table) NullableMorphs(base string) *Chain { return t.add(KindNullableMorphs, base) }
func (t *Table) UUIDMorphs(base string) *Chain     { return t.add(KindUUIDMorphs, base) }
func (t *Table) NullableUUIDMorphs(base string) *Chain {
	return t.add(KindNullableUUIDMorphs, base)
}

// Enum adds a column restricted to the given values.
func (t *Table) Enum(name string, values []string) *Chain {
	params := make([]any, len(values))
	for i, v := range values {
		params[i] = v
	}
	return t.add(KindEnum, name, params...)
}

// Set adds a multi-value column restricted to the given values. Only mariadb
// has a native SET type; the other dialects store it as text.
func (t *Table) Set(name string, values []string) *Chain {
	params := make([]any, len(values))
	for i, v := range values {
		params[i] = v
	}
	return t.add(KindSet, name, params...)
}

func (t *Table) IPAddress(name string) *Chain  { return t.add(KindIPAddress, name) }
func (t *Table) MACAddress(name string) *Chain { return t.add(KindMACAddress, name) }

func (t *Table) Binary(name string) *Chain { return t.add(KindBinary, name) }

func (t *Table) Geometry(name string) *Chain        { return t.add(KindGeometry, name) }
func (t *Table) Geography(name string) *Chain       { return t.add(KindGeography, name) }
func (t *Table) Point(name string) *Chain           { return t.add(KindPoint, name) }
func (t *Table) LineString(name string) *Chain      { return t.add(KindLineString, name) }
func (t *Table) Polygon(name string) *Chain         { return t.add(KindPolygon, name) }
func (t *Table) MultiPoint(name string) *Chain      { return t.add(KindMultiPoint, name) }
func (t *Table) MultiLineString(name string) *Chain { return t.add(KindMultiLineString, name) }
func (t *Table) MultiPolygon(name string) *Chain    { return t.add(KindMultiPolygon, name) }
func (t *Table) GeometryCollection(name string) *Chain {
	return t.add(KindGeometryCollection, name)
}

// Slug adds a unique VARCHAR(255) slug column.
func (t *Table) Slug(name ...string) *Chain {
	n := "slug"
	if len(name) > 0 {
		n = name[0]
	}
	return t.add(KindSlug, n)
}

// Version adds an integer version column defaulting to 1.
func (t *Table) Version(name ...string) *Chain {
	n := "version"
	if len(name) > 0 {
		n = name[0]
	}
	return t.add(KindVersion, n)
}

// Active adds a single-character numeric-string flag column with a
// dialect-specific CHECK constraint.
func (t *Table) Active(name ...string) *Chain {
	n := "active"
	if len(name) > 0 {
		n = name[0]
	}
	return t.add(KindActive, n)
}

// RememberToken adds the conventional nullable remember_token column.
func (t *Table) RememberToken() *Chain { return t.add(KindRememberToken, "remember_token") }

// Unique appends a table-level unique constraint over the given columns.
func (t *Table) Unique(columns []string, name ...string) {
	c := Constraint{Type: ConstraintUnique, Columns: columns, Unique: true}
	if len(name) > 0 {
		c.Name = name[0]
	}
	t.constraints = append(t.constraints, c)
}

// Index appends a table-level index over the given columns. An empty name is
// derived by the renderer.
func (t *Table) Index(columns []string, name string, unique ...bool) {
	c := Constraint{Type: ConstraintIndex, Columns: columns, Name: name}
	if len(unique) > 0 {
		c.Unique = unique[0]
	}
	t.constraints = append(t.constraints, c)
}
