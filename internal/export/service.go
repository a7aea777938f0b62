package export

import (
	"bytes"
	"fmt"
	"image"
	_ "image/gif"
	_ "image/jpeg"
	_ "image/png"
	"os"
	"time"

	"github.com/disintegration/imaging"
	"github.com/unidoc/unipdf/v3/creator"
	_ "golang.org/x/image/webp"

	"github.com/yilun-hsu/smartnotes/internal/logging"
	"github.com/yilun-hsu/smartnotes/internal/models"
)

const (
	pageMargin     = 50.0
	imageMaxWidth  = 420
	imageMaxHeight = 560
)

// Service renders single notes to paginated PDF documents.
type Service struct{}

func NewService() *Service {
	return &Service{}
}

// Result describes a finished export.
type Result struct {
	Path  string
	Pages int
	Bytes int64
}

// ExportPDF writes the note as a PDF file at path. The note text is laid
// out block by block so long notes paginate naturally. A broken embedded
// image is skipped with a warning rather than failing the export.
func (s *Service) ExportPDF(note models.Note, path string) (Result, error) {
	c := creator.New()
	c.SetPageMargins(pageMargin, pageMargin, pageMargin, pageMargin)

	tag := models.TagByID(note.Tag)

	header := c.NewParagraph(tag.Label)
	header.SetFontSize(10)
	header.SetColor(creator.ColorRGBFromHex(tag.Color))
	header.SetMargins(0, 0, 0, 4)
	if err := c.Draw(header); err != nil {
		return Result{}, fmt.Errorf("drawing tag header: %w", err)
	}

	stamp := c.NewParagraph(note.UpdatedAtTime().Format(time.RFC1123))
	stamp.SetFontSize(8)
	stamp.SetColor(creator.ColorRGBFromHex("#6c757d"))
	stamp.SetMargins(0, 0, 0, 14)
	if err := c.Draw(stamp); err != nil {
		return Result{}, fmt.Errorf("drawing timestamp: %w", err)
	}

	for _, block := range Blocks(note.Text) {
		p := c.NewParagraph(block.Text)
		switch {
		case block.Heading:
			p.SetFontSize(15)
			p.SetMargins(0, 0, 6, 8)
		case block.Code:
			p.SetFontSize(9)
			p.SetMargins(12, 12, 4, 8)
			p.SetColor(creator.ColorRGBFromHex("#2a4d69"))
		default:
			p.SetFontSize(11)
			p.SetMargins(0, 0, 0, 8)
		}
		p.SetEnableWrap(true)
		if err := c.Draw(p); err != nil {
			return Result{}, fmt.Errorf("drawing note text: %w", err)
		}
	}

	if note.Image != "" {
		if img, err := decodeNoteImage(note.Image); err != nil {
			logging.Warn("skipping note image", map[string]interface{}{
				"note_id": note.ID,
				"error":   err.Error(),
			})
		} else {
			drawn, err := c.NewImageFromGoImage(img)
			if err != nil {
				logging.Warn("skipping note image", map[string]interface{}{
					"note_id": note.ID,
					"error":   err.Error(),
				})
			} else {
				drawn.ScaleToWidth(float64(img.Bounds().Dx()))
				drawn.SetMargins(0, 0, 8, 0)
				if err := c.Draw(drawn); err != nil {
					return Result{}, fmt.Errorf("drawing note image: %w", err)
				}
			}
		}
	}

	if err := c.WriteToFile(path); err != nil {
		return Result{}, fmt.Errorf("writing pdf: %w", err)
	}
	result := Result{Path: path, Pages: c.Context().Page}
	if info, err := os.Stat(path); err == nil {
		result.Bytes = info.Size()
	}
	return result, nil
}

// decodeNoteImage turns a data URI into a draw-ready image, downscaling
// anything larger than the printable area.
func decodeNoteImage(uri string) (image.Image, error) {
	_, raw, err := DecodeDataURI(uri)
	if err != nil {
		return nil, err
	}
	img, _, err := image.Decode(bytes.NewReader(raw))
	if err != nil {
		return nil, fmt.Errorf("decoding image: %w", err)
	}
	b := img.Bounds()
	if b.Dx() > imageMaxWidth || b.Dy() > imageMaxHeight {
		img = imaging.Fit(img, imageMaxWidth, imageMaxHeight, imaging.Lanczos)
	}
	return img, nil
}
