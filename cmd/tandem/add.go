package main

import (
	"fmt"
	"strings"

	"github.com/google/uuid"
	"github.com/spf13/cobra"
	"github.com/tandemlist/tandem/internal/model"
	"github.com/tandemlist/tandem/internal/store"
)

var addCmd = &cobra.Command{
	Use:   "add <task>",
	Short: "Quick add a task without entering the TUI",
	Long: `Quick add a task to the shared file.

The task goes through the same merge-safe save path the TUI uses, so
it is safe to run while other sessions are open.

Examples:
  tandem add "Buy milk"
  tandem add "Work: review the PR"
  tandem add "!! Work: fix the outage"`,
	Args: cobra.MinimumNArgs(1),
	RunE: func(cmd *cobra.Command, args []string) error {
		text := strings.TrimSpace(strings.Join(args, " "))
		if text == "" {
			return fmt.Errorf("task text cannot be empty")
		}

		a, err := newApp()
		if err != nil {
			return err
		}
		items, err := a.Store.Load()
		if err != nil {
			return err
		}

		p, group, display := store.DecodeTask(text)
		it := model.Item{
			ID:       uuid.New().String(),
			Priority: p,
			Group:    group,
			Text:     display,
		}
		if err := a.Store.Save(append(items, it)); err != nil {
			return err
		}

		fmt.Printf("Created: %s\n", display)
		if group != "" {
			fmt.Printf("Group: %s\n", group)
		}
		if p != model.PriorityNone {
			fmt.Printf("Priority: %s\n", p)
		}
		return nil
	},
}
