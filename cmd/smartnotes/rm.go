package main

import (
	"context"

	"github.com/spf13/cobra"
)

var rmCmd = &cobra.Command{
	Use:   "rm <id>...",
	Short: "Remove notes",
	Args:  cobra.MinimumNArgs(1),
	Run: func(cmd *cobra.Command, args []string) {
		a, err := openApp()
		if err != nil {
			fatal("opening collection", err)
		}
		defer a.Close()

		for _, id := range args {
			if err := a.store.Remove(context.Background(), id); err != nil {
				fatal("removing note", err)
			}
		}
	},
}

func init() {
	rootCmd.AddCommand(rmCmd)
}
