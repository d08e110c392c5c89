package idcard

import (
	"bytes"
	"fmt"
	"image"

	"github.com/jung-kurt/gofpdf"
)

// Landscape letter page size in points.
const (
	PageWidth  = 792.0
	PageHeight = 612.0
)

// FitDimensions computes the uniform scale-to-fit placement of an image
// inside a page: aspect ratio preserved, centered on both axes, never
// exceeding the page bounds.
func FitDimensions(imgWidth, imgHeight, maxWidth, maxHeight float64) (width, height, x, y float64) {
	ratio := maxWidth / imgWidth
	if r := maxHeight / imgHeight; r < ratio {
		ratio = r
	}
	width = imgWidth * ratio
	height = imgHeight * ratio
	x = (maxWidth - width) / 2
	y = (maxHeight - height) / 2
	return width, height, x, y
}

// ExportPDF composes the two-page card document: page 1 carries the front
// face, page 2 the back, each scaled to fit a landscape letter page. Either
// face failing to encode aborts the whole export; no partial document is
// ever produced.
func ExportPDF(front, back image.Image) ([]byte, error) {
	frontPNG, err := encodePNG(front)
	if err != nil {
		return nil, fmt.Errorf("front face: %w", err)
	}
	backPNG, err := encodePNG(back)
	if err != nil {
		return nil, fmt.Errorf("back face: %w", err)
	}

	pdf := gofpdf.New("L", "pt", "Letter", "")
	opts := gofpdf.ImageOptions{ImageType: "PNG"}

	addFacePage(pdf, "front", frontPNG, front.Bounds(), opts)
	addFacePage(pdf, "back", backPNG, back.Bounds(), opts)

	if pdf.Error() != nil {
		return nil, fmt.Errorf("failed to compose card document: %w", pdf.Error())
	}

	var buf bytes.Buffer
	if err := pdf.Output(&buf); err != nil {
		return nil, fmt.Errorf("failed to write card document: %w", err)
	}
	return buf.Bytes(), nil
}

func addFacePage(pdf *gofpdf.Fpdf, name string, pngData []byte, bounds image.Rectangle, opts gofpdf.ImageOptions) {
	pdf.AddPage()
	pdf.RegisterImageOptionsReader(name, opts, bytes.NewReader(pngData))
	w, h, x, y := FitDimensions(float64(bounds.Dx()), float64(bounds.Dy()), PageWidth, PageHeight)
	pdf.ImageOptions(name, x, y, w, h, false, opts, 0, "")
}
