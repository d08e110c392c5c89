// Package idcard builds the two-sided printable student identity card:
// face rendering, QR encoding, PDF export and the HTML print surface.
package idcard

import (
	"fmt"
	"image/color"
	"time"

	qrcode "github.com/skip2/go-qrcode"

	"github.com/quicktech/studentportal/internal/app/models"
)

// Institute contact block shown on the card back.
const (
	InstituteName  = "Quick Tech Institute of I.T MPM"
	InstitutePhone = "+92 21 1234 5678"
	InstituteEmail = "education@quicktech.com"
	InstituteURL   = "www.quicktech.com/"
)

// QRSize is the rendered size of the scannable code in pixels.
const QRSize = 120

// admitDateLayout matches the long-form date the card shows,
// e.g. "Saturday, November 1, 2025".
const admitDateLayout = "Monday, January 2, 2006"

// CardData is everything the card faces need. It is built once from the
// student row, so the QR payload stays stable across renders of the same
// record.
type CardData struct {
	FullName       string
	RollNo         string
	RegistrationNo string
	Email          string
	AdmitDate      *time.Time
}

// FromStudent extracts card data from a student profile row.
func FromStudent(s *models.Student) CardData {
	return CardData{
		FullName:       s.FullName,
		RollNo:         s.RollNo,
		RegistrationNo: s.StudentID,
		Email:          s.Email,
		AdmitDate:      s.AdmitDate,
	}
}

// QRPayload is the text encoded into the scannable code.
func (d CardData) QRPayload() string {
	return fmt.Sprintf("Name: %s\nID: %s\nRoll No: %s\nEmail: %s",
		d.FullName, d.RegistrationNo, d.RollNo, d.Email)
}

// AdmitDateLine formats the admit date for display. Empty when unset, so
// callers omit the line entirely rather than showing a blank value.
func (d CardData) AdmitDateLine() string {
	if d.AdmitDate == nil {
		return ""
	}
	return d.AdmitDate.Format(admitDateLayout)
}

// Complete reports whether enough data exists to render the visual faces.
// Incomplete cards fall back to the pre-formatted text rendering.
func (d CardData) Complete() bool {
	return d.FullName != "" && d.RollNo != "" && d.Email != ""
}

// FrontSideText is the plain-text fallback for the card front.
func (d CardData) FrontSideText() string {
	admit := d.AdmitDateLine()
	if admit == "" {
		admit = "Not Set"
	}
	return fmt.Sprintf("Name: %s\nRoll No: %s\nAdmit Date: %s", d.FullName, d.RollNo, admit)
}

// BackSideText is the plain-text fallback for the card back.
func (d CardData) BackSideText() string {
	return fmt.Sprintf("Student ID: %s\nEmail: %s", d.RollNo, d.Email)
}

// QRPNG encodes the payload as a PNG at QRSize, slate-on-white to match the
// card palette.
func (d CardData) QRPNG() ([]byte, error) {
	q, err := qrcode.New(d.QRPayload(), qrcode.Medium)
	if err != nil {
		return nil, fmt.Errorf("failed to build QR code: %w", err)
	}
	q.ForegroundColor = color.RGBA{R: 0x1e, G: 0x29, B: 0x3b, A: 0xff}
	q.BackgroundColor = color.White
	return q.PNG(QRSize)
}
