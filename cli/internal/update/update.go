// Package update compares the running CLI version against the latest known
// release.
package update

import (
	"fmt"

	goversion "github.com/hashicorp/go-version"

	"github.com/satishbabariya/migrate-go/cli/internal/ui"
)

// latestKnown is refreshed on release; a richer implementation would fetch
// it from the releases API.
const latestKnown = "0.1.0"

// Check warns when a newer release than current exists.
func Check(current string) error {
	cur, err := goversion.NewVersion(current)
	if err != nil {
		return fmt.Errorf("update: invalid current version %q: %w", current, err)
	}
	latest, err := goversion.NewVersion(latestKnown)
	if err != nil {
		return fmt.Errorf("update: invalid latest version %q: %w", latestKnown, err)
	}

	if cur.LessThan(latest) {
		ui.Warning("a newer release is available: %s (running %s)", latest, cur)
		ui.Info("update with: go install github.com/satishbabariya/migrate-go/cli@latest")
	}
	return nil
}
