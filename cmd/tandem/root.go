package main

import (
	"github.com/spf13/cobra"
	"github.com/tandemlist/tandem/internal/app"
	"github.com/tandemlist/tandem/internal/config"
	"github.com/tandemlist/tandem/internal/ui"
)

var version = "0.1.0"

var (
	flagFile  string
	flagTheme string
)

var rootCmd = &cobra.Command{
	Use:     "tandem",
	Short:   "A shared-file todo list for concurrent terminal sessions",
	Version: version,
	Long: `tandem - a todo list that lives in one shared flat file

Run it in as many terminal windows as you like; every session watches
the file and merges its saves with what other sessions added, with no
server and no locks.

Task syntax:
  Buy milk                  plain task
  Work: review the PR       grouped task (text before the colon)
  ! Work: low priority      "! " marks low, "!! " marks high priority

Keybindings (inside the TUI):
  ↑/↓ or k/j    Navigate         enter    Toggle done
  ←/→ or h/l    Collapse/expand  a        Add task
  tab           All groups       e / F2   Edit task
  ctrl+h        Hide done        d / del  Delete task
  1 / 2 / 0     Priority         ?        Help`,
	RunE: func(cmd *cobra.Command, args []string) error {
		a, err := newApp()
		if err != nil {
			return err
		}
		return ui.Run(a)
	},
}

// Execute runs the root command.
func Execute() error { return rootCmd.Execute() }

func init() {
	rootCmd.PersistentFlags().StringVar(&flagFile, "file", "", "path to the shared todo file")
	rootCmd.PersistentFlags().StringVar(&flagTheme, "theme", "", "theme name (nord, dracula, gruvbox, catppuccin)")
	rootCmd.AddCommand(addCmd, listCmd)
}

// newApp builds the application from config, with flags taking
// precedence.
func newApp() (*app.App, error) {
	cfg, err := config.Load()
	if err != nil {
		return nil, err
	}
	if flagFile != "" {
		cfg.File = flagFile
	}
	if flagTheme != "" {
		cfg.Theme = flagTheme
	}
	return app.New(cfg)
}
