// Package schema provides the dialect-neutral table description used by the
// SQL renderers. A migration populates a Table through the fluent builder;
// the resulting TableDefinition is a plain value with no behavior of its own.
package schema

// Expr marks a default value as raw SQL (for example
// Expr("CURRENT_TIMESTAMP")) so renderers emit it without quoting.
type Expr string

// ForeignRef describes a foreign-key reference attached to a single column.
type ForeignRef struct {
	Table    string
	Column   string
	OnDelete string
	OnUpdate string
}

// Column is one dialect-neutral column description. Exactly one Kind is set;
// morph-pair kinds describe two physical columns that the renderer expands.
type Column struct {
	Kind   ColumnKind
	Name   string
	Params []any

	NotNull  bool
	Nullable bool

	// Unique marks a column-level unique. When UniqueName is set the
	// renderer emits a named table-level constraint instead of an inline
	// UNIQUE clause.
	Unique     bool
	UniqueName string

	HasDefault bool
	Default    any

	References *ForeignRef

	// HasIndex requests a secondary index on this column alone.
	HasIndex    bool
	IndexName   string
	IndexUnique bool
}

// ConstraintType distinguishes table-level constraints.
type ConstraintType string

const (
	ConstraintUnique ConstraintType = "unique"
	ConstraintIndex  ConstraintType = "index"
)

// Constraint is a table-level unique or index spanning one or more columns.
type Constraint struct {
	Type    ConstraintType
	Columns []string
	Name    string
	Unique  bool
}

// TableDefinition is the complete neutral description of one table. It is
// rebuilt from scratch for every render; renderers never mutate it.
type TableDefinition struct {
	Name        string
	Columns     []Column
	Constraints []Constraint
}
