//go:build !ebiten

package app

import (
	"fmt"

	"conjam/internal/core"
)

// Run reports that this build has no window support.
func Run(core.Config, int) error {
	return fmt.Errorf("window requires building with the 'ebiten' tag: %w", core.ErrUnsupportedEnvironment)
}
