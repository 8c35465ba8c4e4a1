// Package runner orchestrates migration actions against the ledger. State is
// derived entirely from the ledger (applied vs pending per model, partitioned
// by batch); there is no separate persisted runner state. Statements run
// strictly in sequence: discovery order for up, reverse-applied order for
// down and rollback. Those orderings are contractual, since foreign-key and
// ledger consistency depend on them.
package runner

import (
	"context"
	"fmt"

	"github.com/spf13/afero"

	"github.com/satishbabariya/migrate-go/internal/debug"
	"github.com/satishbabariya/migrate-go/migrate/discovery"
	"github.com/satishbabariya/migrate-go/migrate/history"
	"github.com/satishbabariya/migrate-go/migrate/sqlgen"
	"github.com/satishbabariya/migrate-go/runtime/engine"
)

// Actions the runner understands.
const (
	ActionUp       = "up"
	ActionDown     = "down"
	ActionDrop     = "drop" // alias for down
	ActionRollback = "rollback"
	ActionFresh    = "fresh"
	ActionRefresh  = "refresh"
)

// Options configures one runner invocation. When Engine is nil the runner
// acquires one: from Registry when given (registry keeps ownership), else a
// private engine that is closed when the invocation finishes.
type Options struct {
	Profile string
	Action  string
	Steps   int
	ToBatch *int

	Engine   engine.Engine
	Registry *engine.Registry
	Config   engine.Config

	Root string
	FS   afero.Fs
}

// Result describes one executed migration artifact, returned for logging and
// asserted on by tests: one entry per model per create or drop.
type Result struct {
	Name    string
	Content string
	File    string
}

// Run executes one migration action and returns the executed artifacts.
// A renderer or SQL error aborts the remaining work immediately; whatever
// was recorded up to that point stays in the ledger.
func Run(ctx context.Context, opts Options) ([]Result, error) {
	fsys := opts.FS
	if fsys == nil {
		fsys = afero.NewOsFs()
	}

	eng, ownsEngine, err := acquireEngine(opts)
	if err != nil {
		return nil, err
	}
	if ownsEngine {
		defer func() {
			if cerr := eng.Close(); cerr != nil {
				debug.Warn("closing migration engine", "error", cerr)
			}
		}()
	}

	builder, err := sqlgen.NewBuilder(eng.Driver())
	if err != nil {
		return nil, err
	}

	ledger := history.NewLedger(eng)
	if err := ledger.EnsureTable(ctx); err != nil {
		return nil, err
	}

	files, err := discovery.MigrationFiles(fsys, opts.Root)
	if err != nil {
		return nil, err
	}
	entries := discovery.Index(files)

	r := &run{ctx: ctx, eng: eng, builder: builder, ledger: ledger, entries: entries}

	switch opts.Action {
	case ActionUp:
		return r.up()
	case ActionDown, ActionDrop:
		return r.down()
	case ActionRollback:
		return r.rollback(steps(opts), opts.ToBatch)
	case ActionFresh:
		return r.fresh()
	case ActionRefresh:
		return r.refresh(steps(opts))
	default:
		return nil, fmt.Errorf("runner: unknown action %q", opts.Action)
	}
}

func steps(opts Options) int {
	if opts.Steps > 0 {
		return opts.Steps
	}
	return 1
}

func acquireEngine(opts Options) (engine.Engine, bool, error) {
	if opts.Engine != nil {
		return opts.Engine, false, nil
	}
	if opts.Registry != nil {
		eng, err := opts.Registry.Open(opts.Profile, opts.Config)
		return eng, false, err
	}
	eng, err := engine.New(opts.Config)
	if err != nil {
		return nil, false, err
	}
	return eng, true, nil
}

type run struct {
	ctx     context.Context
	eng     engine.Engine
	builder *sqlgen.Builder
	ledger  *history.Ledger
	entries []discovery.Entry
}

// up applies every discovered model missing from the ledger under one new
// batch. Re-running with nothing pending is a no-op with zero statements.
func (r *run) up() ([]Result, error) {
	applied, err := r.ledger.AppliedSet(r.ctx)
	if err != nil {
		return nil, err
	}
	current, err := r.ledger.CurrentBatch(r.ctx)
	if err != nil {
		return nil, err
	}
	next := current + 1

	var results []Result
	for _, entry := range r.entries {
		if applied[entry.Model] {
			continue
		}
		rendered, err := r.builder.BuildCreateTableFrom(entry.Definition.TableDefinition())
		if err != nil {
			return results, err
		}
		if err := r.execute(rendered.Content); err != nil {
			return results, fmt.Errorf("runner: applying %s: %w", entry.Model, err)
		}
		if err := r.ledger.Record(r.ctx, entry.File, rendered.Content, next, entry.Model); err != nil {
			return results, err
		}
		debug.Info("applied migration", "model", entry.Model, "batch", next)
		results = append(results, Result{Name: entry.Model, Content: rendered.Content, File: entry.File})
	}
	return results, nil
}

// down drops every applied model in reverse applied order and empties the
// ledger.
func (r *run) down() ([]Result, error) {
	records, err := r.ledger.All(r.ctx)
	if err != nil {
		return nil, err
	}
	return r.dropRecords(records, nil)
}

// rollback drops the models of the n most recent distinct batches, or, when
// toBatch is given, of every batch strictly greater than toBatch. Earlier
// batches stay applied.
func (r *run) rollback(n int, toBatch *int) ([]Result, error) {
	records, err := r.ledger.All(r.ctx)
	if err != nil {
		return nil, err
	}
	target := targetBatches(records, n, toBatch)
	if len(target) == 0 {
		return nil, nil
	}
	return r.dropRecords(records, target)
}

// fresh is down followed by up: a full reset in two observable phases.
func (r *run) fresh() ([]Result, error) {
	dropped, err := r.down()
	if err != nil {
		return dropped, err
	}
	applied, err := r.up()
	return append(dropped, applied...), err
}

// refresh rolls back the n most recent batches, then re-applies everything
// now pending under a fresh batch number.
func (r *run) refresh(n int) ([]Result, error) {
	dropped, err := r.rollback(n, nil)
	if err != nil {
		return dropped, err
	}
	applied, err := r.up()
	return append(dropped, applied...), err
}

// dropRecords walks records newest-applied first, dropping each model whose
// batch is targeted (all of them when target is nil) and removing its ledger
// row. A model no longer present in the discovered set is logged and
// skipped rather than blocking the remaining drops.
func (r *run) dropRecords(records []history.Record, target map[int]bool) ([]Result, error) {
	index := make(map[string]discovery.Entry, len(r.entries))
	for _, e := range r.entries {
		index[e.Model] = e
	}

	var results []Result
	for i := len(records) - 1; i >= 0; i-- {
		rec := records[i]
		if target != nil && !target[rec.Batch] {
			continue
		}
		entry, ok := index[rec.Model]
		if !ok {
			debug.Warn("no migration file for applied model, skipping",
				"model", rec.Model, "filename", rec.Filename)
			continue
		}
		rendered, err := r.builder.BuildDropTable(rec.Model)
		if err != nil {
			return results, err
		}
		if err := r.execute(rendered.Content); err != nil {
			return results, fmt.Errorf("runner: dropping %s: %w", rec.Model, err)
		}
		if err := r.ledger.Remove(r.ctx, rec.Model); err != nil {
			return results, err
		}
		debug.Info("dropped migration", "model", rec.Model, "batch", rec.Batch)
		results = append(results, Result{Name: rec.Model, Content: rendered.Content, File: entry.File})
	}
	return results, nil
}

// execute splits rendered DDL into statements and runs them in order on the
// invocation's single connection.
func (r *run) execute(content string) error {
	for _, stmt := range sqlgen.SplitStatements(content) {
		if _, err := r.eng.Execute(r.ctx, stmt); err != nil {
			return err
		}
	}
	return nil
}

// targetBatches picks the batches rollback affects. records are in ledger
// order, so distinct batches come out ascending.
func targetBatches(records []history.Record, n int, toBatch *int) map[int]bool {
	var batches []int
	seen := make(map[int]bool)
	for _, rec := range records {
		if !seen[rec.Batch] {
			seen[rec.Batch] = true
			batches = append(batches, rec.Batch)
		}
	}

	target := make(map[int]bool)
	if toBatch != nil {
		for _, b := range batches {
			if b > *toBatch {
				target[b] = true
			}
		}
		return target
	}
	for i := len(batches) - 1; i >= 0 && n > 0; i, n = i-1, n-1 {
		target[batches[i]] = true
	}
	return target
}
