// ABOUTME: TUI subcommand
// ABOUTME: Opens the interactive contact list
package cli

import (
	"github.com/harperreed/outreach/store"
	"github.com/harperreed/outreach/tui"
)

// TUICommand runs the full-screen interface until the user quits.
func TUICommand(s *store.Store) error {
	return tui.Run(s)
}
