package idcard

import (
	"bytes"
	"errors"
	"fmt"
	"image"
	"image/png"

	"github.com/fogleman/gg"
	qrcode "github.com/skip2/go-qrcode"
	"golang.org/x/image/font"
	"golang.org/x/image/font/basicfont"

	"github.com/quicktech/studentportal/internal/pkg/logger"
)

// Base face geometry in points; faces are rasterized at UpscaleFactor for
// print resolution, mirroring the 2x capture of the original export.
const (
	FaceWidth     = 700
	FaceHeight    = 440
	UpscaleFactor = 2
)

// Renderer draws the two card faces. FontPath optionally points at a TTF;
// when empty or unloadable the built-in bitmap face is used.
type Renderer struct {
	FontPath string
}

func (r *Renderer) setFont(dc *gg.Context, points float64) {
	if r.FontPath != "" {
		if err := dc.LoadFontFace(r.FontPath, points*UpscaleFactor); err == nil {
			return
		}
		logger.Warn().Str("path", r.FontPath).Msg("Failed to load card font, using builtin face")
	}
	var face font.Face = basicfont.Face7x13
	dc.SetFontFace(face)
}

func (r *Renderer) newFace() *gg.Context {
	dc := gg.NewContext(FaceWidth*UpscaleFactor, FaceHeight*UpscaleFactor)
	dc.SetRGB(1, 1, 1)
	dc.Clear()
	dc.Scale(UpscaleFactor, UpscaleFactor)

	// Card border, blue-700 with rounded corners
	dc.SetRGB255(0x25, 0x63, 0xeb)
	dc.SetLineWidth(4)
	dc.DrawRoundedRectangle(4, 4, FaceWidth-8, FaceHeight-8, 24)
	dc.Stroke()

	return dc
}

// RenderFront draws the card front: header, photo, name, roll number and the
// admit date line (omitted entirely when no admit date is set). avatar may
// be nil, in which case a neutral placeholder is drawn.
func (r *Renderer) RenderFront(d CardData, avatar image.Image) (image.Image, error) {
	if !d.Complete() {
		return nil, fmt.Errorf("render front: %w", ErrIncomplete)
	}

	dc := r.newFace()

	r.setFont(dc, 22)
	dc.SetRGB255(0x1d, 0x4e, 0xd8)
	dc.DrawStringAnchored(InstituteName, FaceWidth/2, 42, 0.5, 0.5)
	dc.DrawStringAnchored("STUDENT ID CARD", FaceWidth/2, 74, 0.5, 0.5)

	// Photo box
	const photoSize = 160.0
	photoX := (FaceWidth - photoSize) / 2
	photoY := 100.0
	if avatar != nil {
		scaled := scaleToBox(avatar, int(photoSize*UpscaleFactor))
		dc.Push()
		dc.DrawRoundedRectangle(photoX, photoY, photoSize, photoSize, 12)
		dc.Clip()
		dc.Scale(1.0/UpscaleFactor, 1.0/UpscaleFactor)
		dc.DrawImage(scaled, int(photoX*UpscaleFactor), int(photoY*UpscaleFactor))
		dc.Pop()
	} else {
		dc.SetRGB255(0xe2, 0xe8, 0xf0)
		dc.DrawRoundedRectangle(photoX, photoY, photoSize, photoSize, 12)
		dc.Fill()
	}
	dc.SetRGB255(0xcb, 0xd5, 0xe1)
	dc.SetLineWidth(1)
	dc.DrawRoundedRectangle(photoX, photoY, photoSize, photoSize, 12)
	dc.Stroke()

	r.setFont(dc, 20)
	dc.SetRGB255(0x1d, 0x4e, 0xd8)
	dc.DrawStringAnchored(d.FullName, FaceWidth/2, 296, 0.5, 0.5)

	r.setFont(dc, 15)
	dc.SetRGB255(0x33, 0x41, 0x55)
	dc.DrawStringAnchored("Roll No: "+d.RollNo, FaceWidth/2, 330, 0.5, 0.5)

	if admit := d.AdmitDateLine(); admit != "" {
		dc.SetRGB255(0x47, 0x55, 0x69)
		dc.DrawStringAnchored("Admitted: "+admit, FaceWidth/2, 360, 0.5, 0.5)
	}

	return dc.Image(), nil
}

// RenderBack draws the card back: identifiers, signature line, the
// scannable code and the institute contact block.
func (r *Renderer) RenderBack(d CardData) (image.Image, error) {
	if !d.Complete() {
		return nil, fmt.Errorf("render back: %w", ErrIncomplete)
	}

	qrImg, err := qrImage(d)
	if err != nil {
		return nil, err
	}

	dc := r.newFace()

	r.setFont(dc, 15)
	dc.SetRGB255(0x33, 0x41, 0x55)
	dc.DrawString("Student ID:", 40, 48)
	dc.DrawString("Registration#", 40, 76)
	dc.SetRGB255(0x47, 0x55, 0x69)
	dc.DrawStringAnchored(d.RollNo, FaceWidth-40, 44, 1, 0.5)
	dc.DrawStringAnchored(d.RegistrationNo, FaceWidth-40, 72, 1, 0.5)

	// Signature line
	dc.SetRGB255(0xcb, 0xd5, 0xe1)
	dc.SetLineWidth(2)
	dc.DrawLine(FaceWidth/2-100, 116, FaceWidth/2+100, 116)
	dc.Stroke()
	dc.SetRGB255(0x25, 0x63, 0xeb)
	dc.DrawStringAnchored("Authorized Signature", FaceWidth/2, 134, 0.5, 0.5)

	dc.SetRGB255(0x64, 0x74, 0x8b)
	dc.DrawString("Note: Finder of this card may please post it to", 40, 170)
	dc.SetRGB255(0x33, 0x41, 0x55)
	dc.DrawString(InstituteName, 40, 192)

	// Scannable code, centered
	qrX := (FaceWidth - QRSize) / 2
	qrY := 208
	dc.Push()
	dc.Scale(1.0/UpscaleFactor, 1.0/UpscaleFactor)
	dc.DrawImage(scaleToBox(qrImg, QRSize*UpscaleFactor), qrX*UpscaleFactor, qrY*UpscaleFactor)
	dc.Pop()
	dc.SetRGB255(0xcb, 0xd5, 0xe1)
	dc.SetLineWidth(1)
	dc.DrawRectangle(float64(qrX), float64(qrY), QRSize, QRSize)
	dc.Stroke()
	dc.SetRGB255(0x64, 0x74, 0x8b)
	dc.DrawStringAnchored("Scan for student information", FaceWidth/2, float64(qrY+QRSize+16), 0.5, 0.5)

	// Contact block
	dc.SetRGB255(0x33, 0x41, 0x55)
	dc.DrawString("Contact: "+InstitutePhone, 40, FaceHeight-72)
	dc.DrawString("Email: "+InstituteEmail, 40, FaceHeight-50)
	dc.DrawString("URL: "+InstituteURL, 40, FaceHeight-28)

	return dc.Image(), nil
}

// ErrIncomplete marks render failures caused by missing card data, which
// callers handle with the text fallback instead of a hard failure.
var ErrIncomplete = errors.New("card data incomplete")

// IsIncomplete reports whether a render error came from missing card data.
func IsIncomplete(err error) bool {
	return errors.Is(err, ErrIncomplete)
}

// qrImage decodes the payload into an image at native QR size.
func qrImage(d CardData) (image.Image, error) {
	q, err := qrcode.New(d.QRPayload(), qrcode.Medium)
	if err != nil {
		return nil, fmt.Errorf("failed to build QR code: %w", err)
	}
	return q.Image(QRSize * UpscaleFactor), nil
}

// scaleToBox resizes img so its longest side equals box pixels.
func scaleToBox(img image.Image, box int) image.Image {
	b := img.Bounds()
	if b.Dx() == box && b.Dy() == box {
		return img
	}
	dc := gg.NewContext(box, box)
	sx := float64(box) / float64(b.Dx())
	sy := float64(box) / float64(b.Dy())
	dc.Scale(sx, sy)
	dc.DrawImage(img, 0, 0)
	return dc.Image()
}

// encodePNG renders an image face to PNG bytes for embedding.
func encodePNG(img image.Image) ([]byte, error) {
	var buf bytes.Buffer
	if err := png.Encode(&buf, img); err != nil {
		return nil, fmt.Errorf("failed to encode face: %w", err)
	}
	return buf.Bytes(), nil
}
