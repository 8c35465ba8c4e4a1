// Package discovery locates migration definition files on disk and pairs
// them with the definitions those files registered at startup. The leading
// numeric filename prefix (0001_, 0002_, ...) is the authoritative apply
// order; filesystem order and lexical order of the full name play no part.
package discovery

import (
	"fmt"
	"os"
	"path/filepath"
	"sort"
	"strings"

	"github.com/spf13/afero"

	"github.com/satishbabariya/migrate-go/internal/debug"
	"github.com/satishbabariya/migrate-go/migrate"
)

// Directories searched under each application root, in order of preference.
var migrationDirs = []string{
	filepath.Join("database", "migrations"),
	filepath.Join("database", "migrate", "tables"), // legacy layout
}

// Entry pairs one discovered file with its registered definition.
type Entry struct {
	Model      string
	File       string
	Definition migrate.Definition
}

// MigrationFiles walks the project tree under root and returns every
// migration source file, sorted by numeric prefix (ties broken by path so
// the order is deterministic). Files without a parseable prefix sort as
// order 0; tests treat that as a usage error.
func MigrationFiles(fsys afero.Fs, root string) ([]string, error) {
	var files []string

	err := afero.Walk(fsys, root, func(path string, info os.FileInfo, err error) error {
		if err != nil {
			return err
		}
		if info.IsDir() || !isMigrationDir(filepath.Dir(path)) {
			return nil
		}
		if isMigrationSource(filepath.Base(path)) {
			files = append(files, path)
		}
		return nil
	})
	if err != nil {
		return nil, fmt.Errorf("discovery: walking %s: %w", root, err)
	}

	sort.SliceStable(files, func(i, j int) bool {
		oi, oj := Order(files[i]), Order(files[j])
		if oi != oj {
			return oi < oj
		}
		return files[i] < files[j]
	})
	return files, nil
}

// Order extracts the leading numeric prefix of the file's base name, 0 when
// there is none.
func Order(path string) int {
	base := filepath.Base(path)
	n := 0
	ok := false
	for _, r := range base {
		if r < '0' || r > '9' {
			break
		}
		n = n*10 + int(r-'0')
		ok = true
	}
	if !ok {
		return 0
	}
	return n
}

// Index builds the model -> entry map for the given files, in their given
// order. Files with no registered definition are skipped silently: migration
// directories may hold helper files that are not migrations.
func Index(files []string) []Entry {
	var entries []Entry
	seen := make(map[string]bool)
	for _, f := range files {
		def, ok := migrate.Registered(f)
		if !ok {
			debug.Debug("skipping unregistered file", "file", f)
			continue
		}
		if seen[def.Model] {
			debug.Warn("duplicate model in migration set", "model", def.Model, "file", f)
			continue
		}
		seen[def.Model] = true
		entries = append(entries, Entry{Model: def.Model, File: f, Definition: def})
	}
	return entries
}

// ResolveFile loads the registered definition for a single migration file.
// The path must resolve to an absolute, existing file with a registration;
// a silent not-found is explicitly disallowed here.
func ResolveFile(fsys afero.Fs, path string) (Entry, error) {
	abs, err := filepath.Abs(path)
	if err != nil {
		return Entry{}, fmt.Errorf("discovery: resolving %s: %w", path, err)
	}
	exists, err := afero.Exists(fsys, abs)
	if err != nil {
		return Entry{}, fmt.Errorf("discovery: checking %s: %w", abs, err)
	}
	if !exists {
		return Entry{}, fmt.Errorf("discovery: migration file %s does not exist", abs)
	}
	def, ok := migrate.Registered(abs)
	if !ok {
		return Entry{}, fmt.Errorf("discovery: no definition registered for %s", abs)
	}
	return Entry{Model: def.Model, File: abs, Definition: def}, nil
}

func isMigrationDir(dir string) bool {
	norm := filepath.ToSlash(dir)
	for _, d := range migrationDirs {
		if strings.HasSuffix(norm, filepath.ToSlash(d)) {
			return true
		}
	}
	return false
}

// isMigrationSource keeps migration definition files and drops tests, doc
// files, and type declarations.
func isMigrationSource(base string) bool {
	if !strings.HasSuffix(base, ".go") {
		return false
	}
	if strings.HasSuffix(base, "_test.go") {
		return false
	}
	switch base {
	case "doc.go", "types.go":
		return false
	}
	return true
}
