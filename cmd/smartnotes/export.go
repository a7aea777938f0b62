package main

import (
	"fmt"
	"os"
	"path/filepath"

	"github.com/spf13/cobra"

	"github.com/yilun-hsu/smartnotes/internal/export"
)

var exportOut string

var exportCmd = &cobra.Command{
	Use:   "export <id>",
	Short: "Export a note as a PDF",
	Args:  cobra.ExactArgs(1),
	Run: func(cmd *cobra.Command, args []string) {
		key := os.Getenv("UNIDOC_LICENSE_API_KEY")
		if key == "" {
			fatal("exporting note", fmt.Errorf("UNIDOC_LICENSE_API_KEY is not set"))
		}
		if err := export.InitLicense(key); err != nil {
			fatal("registering pdf license", err)
		}

		a, err := openApp()
		if err != nil {
			fatal("opening collection", err)
		}
		defer a.Close()

		note, ok := a.store.Get(args[0])
		if !ok {
			fatal("exporting note", fmt.Errorf("no note with id %s", args[0]))
		}

		out := exportOut
		if out == "" {
			out = filepath.Join(a.cfg.ExportDir, note.ID+".pdf")
		}
		result, err := export.NewService().ExportPDF(note, out)
		if err != nil {
			fatal("exporting note", err)
		}
		fmt.Printf("%s (%d pages, %d bytes)\n", result.Path, result.Pages, result.Bytes)
	},
}

func init() {
	rootCmd.AddCommand(exportCmd)
	exportCmd.Flags().StringVarP(&exportOut, "out", "o", "", "Output file path")
}
