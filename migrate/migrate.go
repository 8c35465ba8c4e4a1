// Package migrate ties the schema DSL, the dialect renderers, and the ledger
// together. Migration files register their table definitions here; discovery
// correlates registered entries with files on disk, and the runner applies or
// drops them against a live engine.
package migrate

import (
	"fmt"
	"path/filepath"
	"sync"

	"github.com/satishbabariya/migrate-go/schema"
)

// TableFunc populates a blueprint for one table.
type TableFunc func(t *schema.Table)

// Blueprint is the definition-function shape of a migration: a logical table
// name plus a function that builds its columns.
type Blueprint struct {
	TableName string
	Define    TableFunc
}

// ObjectDef is the literal shape of a migration: a ready-made column and
// constraint list.
type ObjectDef struct {
	Name        string
	Columns     []schema.Column
	Constraints []schema.Constraint
}

// Definition is the normalized form both shapes reduce to. Model is the
// ledger identity; Definition() rebuilds the neutral table description on
// every call so renders never share state.
type Definition struct {
	Model  string
	define TableFunc
	object *ObjectDef
}

// TableDefinition materializes the neutral description.
func (d Definition) TableDefinition() schema.TableDefinition {
	if d.object != nil {
		return schema.TableDefinition{
			Name:        d.object.Name,
			Columns:     append([]schema.Column(nil), d.object.Columns...),
			Constraints: append([]schema.Constraint(nil), d.object.Constraints...),
		}
	}
	t := schema.NewTable(d.Model)
	d.define(t)
	return t.Definition()
}

var (
	registryMu sync.RWMutex
	registry   = make(map[string]Definition)
)

// Register records a migration definition under its file's base name.
// Migration files call this from init; filename is the bare file name
// (for example "0001_create_users.go"). def must be a Blueprint or an
// ObjectDef; anything else panics, since registration happens at program
// startup and a malformed migration file should never reach a database.
func Register(filename string, def any) {
	d, err := normalize(def)
	if err != nil {
		panic(fmt.Sprintf("migrate: register %s: %v", filename, err))
	}
	base := filepath.Base(filename)

	registryMu.Lock()
	defer registryMu.Unlock()
	if _, dup := registry[base]; dup {
		panic(fmt.Sprintf("migrate: duplicate registration for %s", base))
	}
	registry[base] = d
}

func normalize(def any) (Definition, error) {
	switch v := def.(type) {
	case Blueprint:
		if v.TableName == "" || v.Define == nil {
			return Definition{}, fmt.Errorf("blueprint needs a table name and a define function")
		}
		return Definition{Model: v.TableName, define: v.Define}, nil
	case ObjectDef:
		if v.Name == "" {
			return Definition{}, fmt.Errorf("object definition needs a name")
		}
		obj := v
		return Definition{Model: v.Name, object: &obj}, nil
	default:
		return Definition{}, fmt.Errorf("unrecognized definition shape %T", def)
	}
}

// Registered returns the definition registered under the file base name.
func Registered(filename string) (Definition, bool) {
	registryMu.RLock()
	defer registryMu.RUnlock()
	d, ok := registry[filepath.Base(filename)]
	return d, ok
}

// resetRegistry clears all registrations; tests only.
func resetRegistry() {
	registryMu.Lock()
	defer registryMu.Unlock()
	registry = make(map[string]Definition)
}
