package main

import (
	"context"
	"encoding/base64"
	"fmt"
	"mime"
	"os"
	"path/filepath"
	"strings"

	"github.com/spf13/cobra"

	"github.com/yilun-hsu/smartnotes/internal/models"
)

var (
	addTag   string
	addImage string
)

var addCmd = &cobra.Command{
	Use:   "add [text...]",
	Short: "Add a note",
	Run: func(cmd *cobra.Command, args []string) {
		a, err := openApp()
		if err != nil {
			fatal("opening collection", err)
		}
		defer a.Close()

		fields := models.NoteFields{
			Text: strings.Join(args, " "),
			Tag:  addTag,
		}
		if addImage != "" {
			uri, err := imageDataURI(addImage)
			if err != nil {
				fatal("reading image", err)
			}
			fields.Image = uri
		}

		note, err := a.store.Create(context.Background(), fields)
		if err != nil {
			fatal("adding note", err)
		}
		fmt.Println(note.ID)
	},
}

// imageDataURI reads an image file into the base64 data URI form notes
// carry on the wire.
func imageDataURI(path string) (string, error) {
	data, err := os.ReadFile(path)
	if err != nil {
		return "", err
	}
	mimeType := mime.TypeByExtension(filepath.Ext(path))
	if mimeType == "" {
		mimeType = "application/octet-stream"
	}
	return "data:" + mimeType + ";base64," + base64.StdEncoding.EncodeToString(data), nil
}

func init() {
	rootCmd.AddCommand(addCmd)
	addCmd.Flags().StringVar(&addTag, "tag", models.DefaultTagID, "Tag for the note")
	addCmd.Flags().StringVar(&addImage, "image", "", "Path to an image to attach")
}
