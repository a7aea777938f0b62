package main

import (
	"context"
	"strings"

	"github.com/spf13/cobra"

	"github.com/yilun-hsu/smartnotes/internal/models"
)

var (
	editText  string
	editTag   string
	editImage string
)

var editCmd = &cobra.Command{
	Use:   "edit <id>",
	Short: "Edit a note's text, tag, or image",
	Args:  cobra.ExactArgs(1),
	Run: func(cmd *cobra.Command, args []string) {
		a, err := openApp()
		if err != nil {
			fatal("opening collection", err)
		}
		defer a.Close()

		var patch models.Patch
		if cmd.Flags().Changed("text") {
			patch.Text = &editText
		}
		if cmd.Flags().Changed("tag") {
			patch.Tag = &editTag
		}
		if cmd.Flags().Changed("image") {
			image := ""
			if strings.TrimSpace(editImage) != "" {
				uri, err := imageDataURI(editImage)
				if err != nil {
					fatal("reading image", err)
				}
				image = uri
			}
			patch.Image = &image
		}

		if err := a.store.Update(context.Background(), args[0], patch); err != nil {
			fatal("editing note", err)
		}
	},
}

func init() {
	rootCmd.AddCommand(editCmd)
	editCmd.Flags().StringVar(&editText, "text", "", "Replacement note text")
	editCmd.Flags().StringVar(&editTag, "tag", "", "Replacement tag")
	editCmd.Flags().StringVar(&editImage, "image", "", "Replacement image path (empty removes the image)")
}
