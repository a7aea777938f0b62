package main

import (
	"context"
	"fmt"

	"github.com/spf13/cobra"
)

var pinCmd = &cobra.Command{
	Use:   "pin <id>",
	Short: "Toggle a note's pin",
	Args:  cobra.ExactArgs(1),
	Run: func(cmd *cobra.Command, args []string) {
		a, err := openApp()
		if err != nil {
			fatal("opening collection", err)
		}
		defer a.Close()

		if err := a.store.TogglePin(context.Background(), args[0]); err != nil {
			fatal("toggling pin", err)
		}
		if note, ok := a.store.Get(args[0]); ok {
			if note.Pinned {
				fmt.Println("pinned")
			} else {
				fmt.Println("unpinned")
			}
		}
	},
}

func init() {
	rootCmd.AddCommand(pinCmd)
}
