// Package roster reads the student identity strip printed above the
// answer table. OCR is best-effort: a page whose strip cannot be read
// keeps its positional page id.
package roster

import (
	"fmt"
	"image"
	"strings"

	"omr-grader/pkg/geometry"

	"github.com/otiai10/gosseract/v2"
	"gocv.io/x/gocv"
)

// IDChars restricts recognition to characters that appear in student
// identifiers. Lowercase is excluded to avoid 0/O and 1/l confusion.
const IDChars = "0123456789ABCDEFGHIJKLMNOPQRSTUVWXYZ-. "

// Engine wraps a Tesseract client configured for identifier strips.
type Engine struct {
	client *gosseract.Client
}

// NewEngine creates an OCR engine for identity strips.
func NewEngine() (*Engine, error) {
	client := gosseract.NewClient()

	if err := client.SetLanguage("eng"); err != nil {
		client.Close()
		return nil, fmt.Errorf("failed to set OCR language: %w", err)
	}

	// Identifiers are not dictionary words; disable word correction so
	// Tesseract does not "fix" them
	_ = client.SetVariable("load_system_dawg", "false")
	_ = client.SetVariable("load_freq_dawg", "false")

	return &Engine{client: client}, nil
}

// Close releases OCR resources.
func (e *Engine) Close() error {
	if e.client != nil {
		return e.client.Close()
	}
	return nil
}

// ReadIdentity recognizes text in the strip between the top of the page
// and the top edge of the table quad. Returns empty when the strip is
// too small to hold printed text.
func (e *Engine) ReadIdentity(page gocv.Mat, tableQuad geometry.Quad) (string, error) {
	if page.Empty() {
		return "", fmt.Errorf("empty page image")
	}

	stripBottom := int(tableQuad.Bounds().Y)
	if stripBottom > page.Rows() {
		stripBottom = page.Rows()
	}
	if stripBottom < 16 {
		return "", nil
	}

	strip := page.Region(image.Rect(0, 0, page.Cols(), stripBottom))
	defer strip.Close()

	buf, err := gocv.IMEncode(gocv.PNGFileExt, strip)
	if err != nil {
		return "", fmt.Errorf("failed to encode strip: %w", err)
	}
	defer buf.Close()

	if err := e.client.SetPageSegMode(gosseract.PSM_SINGLE_BLOCK); err != nil {
		return "", fmt.Errorf("failed to set PSM: %w", err)
	}
	if err := e.client.SetWhitelist(IDChars); err != nil {
		return "", fmt.Errorf("failed to set whitelist: %w", err)
	}
	if err := e.client.SetImageFromBytes(buf.GetBytes()); err != nil {
		return "", fmt.Errorf("failed to set image: %w", err)
	}

	text, err := e.client.Text()
	if err != nil {
		return "", fmt.Errorf("OCR failed: %w", err)
	}

	text = strings.Join(strings.Fields(text), " ")
	return strings.ToUpper(text), nil
}
