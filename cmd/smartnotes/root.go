package main

import (
	"fmt"
	"os"

	"github.com/spf13/cobra"

	"github.com/yilun-hsu/smartnotes/internal/logging"
)

var (
	cfgPath string
	verbose bool
)

// rootCmd represents the base command when called without any subcommands
var rootCmd = &cobra.Command{
	Use:   "smartnotes",
	Short: "A personal note collection that syncs locally or to a shared record store",
	Long: `Smartnotes keeps a single collection of short notes with tags, pins, and
optional images. In local mode the collection lives in an on-device SQLite
file; in remote mode every change goes through a shared record store and the
collection follows its pushed snapshots.`,
	PersistentPreRun: func(cmd *cobra.Command, args []string) {
		level := logging.LevelInfo
		if verbose {
			level = logging.LevelDebug
		}
		logging.Init(os.Stderr, level)
	},
}

// Execute adds all child commands to the root command and sets flags appropriately.
// This is called by main.main().
func Execute() {
	if err := rootCmd.Execute(); err != nil {
		fmt.Println(err)
		os.Exit(1)
	}
}

func init() {
	rootCmd.PersistentFlags().StringVar(&cfgPath, "config", "", "Path to config file")
	rootCmd.PersistentFlags().BoolVarP(&verbose, "verbose", "v", false, "Enable verbose logging")
}
