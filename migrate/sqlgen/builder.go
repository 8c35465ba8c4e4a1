package sqlgen

import (
	"fmt"

	"github.com/satishbabariya/migrate-go/schema"
)

// Rendered is one rendered DDL artifact: the table name and the SQL text.
// Content may hold more than one statement; use SplitStatements before
// execution.
type Rendered struct {
	Name    string
	Content string
}

// Builder renders table definitions for one fixed driver. Each build starts
// from a fresh blueprint, so no state leaks between calls.
type Builder struct {
	driver string
}

// NewBuilder returns a Builder for the given driver. An unknown driver is a
// construction error.
func NewBuilder(driver string) (*Builder, error) {
	switch driver {
	case DriverSQLite, DriverMariaDB, DriverPostgres:
		return &Builder{driver: driver}, nil
	default:
		return nil, fmt.Errorf("sqlgen: unsupported driver %q", driver)
	}
}

// Driver reports the driver this builder renders for.
func (b *Builder) Driver() string {
	return b.driver
}

// BuildCreateTable applies the definition function to a fresh blueprint for
// the named table and renders its CREATE TABLE text.
func (b *Builder) BuildCreateTable(name string, def func(t *schema.Table)) (Rendered, error) {
	t := schema.NewTable(name)
	def(t)
	return b.BuildCreateTableFrom(t.Definition())
}

// BuildCreateTableFrom renders an already-populated definition.
func (b *Builder) BuildCreateTableFrom(def schema.TableDefinition) (Rendered, error) {
	content, err := CreateTable(b.driver, def)
	if err != nil {
		return Rendered{}, err
	}
	return Rendered{Name: def.Name, Content: content}, nil
}

// BuildDropTable renders the DROP TABLE text for the named table.
func (b *Builder) BuildDropTable(name string) (Rendered, error) {
	content, err := DropTable(b.driver, name)
	if err != nil {
		return Rendered{}, err
	}
	return Rendered{Name: name, Content: content}, nil
}
