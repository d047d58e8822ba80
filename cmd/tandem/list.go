package main

import (
	"fmt"

	"github.com/spf13/cobra"
	"github.com/tandemlist/tandem/internal/session"
)

var listPending bool

var listCmd = &cobra.Command{
	Use:   "list",
	Short: "Print the list in canonical order",
	RunE: func(cmd *cobra.Command, args []string) error {
		a, err := newApp()
		if err != nil {
			return err
		}
		items, err := a.Store.Load()
		if err != nil {
			return err
		}

		for _, b := range session.Buckets(items, listPending) {
			indent := ""
			if b.Name != "" {
				fmt.Printf("%s:\n", b.Name)
				indent = "  "
			}
			for _, it := range b.Items {
				box := "☐"
				if it.Done {
					box = "☒"
				}
				fmt.Printf("%s%s %s%s\n", indent, box, it.Priority.Marker(), it.Text)
			}
		}
		return nil
	},
}

func init() {
	listCmd.Flags().BoolVar(&listPending, "pending", false, "hide completed items")
}
