package main

import (
	"fmt"

	"github.com/spf13/cobra"
)

var whoamiCmd = &cobra.Command{
	Use:   "whoami",
	Short: "Show the identity the collection is bound to",
	Args:  cobra.NoArgs,
	Run: func(cmd *cobra.Command, args []string) {
		a, err := openApp()
		if err != nil {
			fatal("opening collection", err)
		}
		defer a.Close()

		identity, ok := a.auth.CurrentIdentity()
		if !ok {
			fmt.Println("signed out")
			return
		}
		if identity.DisplayName != "" {
			fmt.Printf("%s (%s)\n", identity.DisplayName, identity.ID)
			return
		}
		fmt.Println(identity.ID)
	},
}

func init() {
	rootCmd.AddCommand(whoamiCmd)
}
