package idcard

import (
	"strings"
	"testing"
	"time"
)

func sampleCard() CardData {
	admit := time.Date(2025, time.November, 1, 0, 0, 0, 0, time.UTC)
	return CardData{
		FullName:       "Ahmed Khan",
		RollNo:         "154",
		RegistrationNo: "QT-2024-0154",
		Email:          "ahmed@quicktech.edu.pk",
		AdmitDate:      &admit,
	}
}

func TestQRPayloadStable(t *testing.T) {
	d := sampleCard()
	first := d.QRPayload()
	second := d.QRPayload()
	if first != second {
		t.Error("payload must be identical across renders of the same record")
	}

	want := "Name: Ahmed Khan\nID: QT-2024-0154\nRoll No: 154\nEmail: ahmed@quicktech.edu.pk"
	if first != want {
		t.Errorf("payload = %q, want %q", first, want)
	}
}

func TestAdmitDateLine(t *testing.T) {
	d := sampleCard()
	if got := d.AdmitDateLine(); got != "Saturday, November 1, 2025" {
		t.Errorf("AdmitDateLine() = %q", got)
	}

	d.AdmitDate = nil
	if got := d.AdmitDateLine(); got != "" {
		t.Errorf("unset admit date should format to empty, got %q", got)
	}
}

func TestComplete(t *testing.T) {
	tests := []struct {
		name   string
		mutate func(*CardData)
		want   bool
	}{
		{"all set", func(*CardData) {}, true},
		{"no name", func(d *CardData) { d.FullName = "" }, false},
		{"no roll", func(d *CardData) { d.RollNo = "" }, false},
		{"no email", func(d *CardData) { d.Email = "" }, false},
		{"no admit date", func(d *CardData) { d.AdmitDate = nil }, true},
		{"no registration", func(d *CardData) { d.RegistrationNo = "" }, true},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			d := sampleCard()
			tt.mutate(&d)
			if got := d.Complete(); got != tt.want {
				t.Errorf("Complete() = %v, want %v", got, tt.want)
			}
		})
	}
}

func TestFallbackTextAdmitDate(t *testing.T) {
	d := sampleCard()
	d.AdmitDate = nil
	if !strings.Contains(d.FrontSideText(), "Admit Date: Not Set") {
		t.Errorf("front fallback should show Not Set, got %q", d.FrontSideText())
	}

	d = sampleCard()
	if !strings.Contains(d.FrontSideText(), "Saturday, November 1, 2025") {
		t.Errorf("front fallback should carry the formatted date, got %q", d.FrontSideText())
	}
}

func TestQRPNGEncodes(t *testing.T) {
	png, err := sampleCard().QRPNG()
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if len(png) == 0 {
		t.Fatal("empty PNG")
	}
	// PNG signature
	if string(png[1:4]) != "PNG" {
		t.Error("output is not a PNG")
	}
}

func TestRenderIncompleteCard(t *testing.T) {
	r := &Renderer{}
	d := sampleCard()
	d.FullName = ""

	if _, err := r.RenderFront(d, nil); !IsIncomplete(err) {
		t.Errorf("RenderFront should report incomplete data, got %v", err)
	}
	if _, err := r.RenderBack(d); !IsIncomplete(err) {
		t.Errorf("RenderBack should report incomplete data, got %v", err)
	}
}

func TestRenderFaces(t *testing.T) {
	r := &Renderer{}
	d := sampleCard()

	front, err := r.RenderFront(d, nil)
	if err != nil {
		t.Fatalf("RenderFront: %v", err)
	}
	back, err := r.RenderBack(d)
	if err != nil {
		t.Fatalf("RenderBack: %v", err)
	}

	wantW, wantH := FaceWidth*UpscaleFactor, FaceHeight*UpscaleFactor
	if front.Bounds().Dx() != wantW || front.Bounds().Dy() != wantH {
		t.Errorf("front bounds = %v, want %dx%d", front.Bounds(), wantW, wantH)
	}
	if back.Bounds().Dx() != wantW || back.Bounds().Dy() != wantH {
		t.Errorf("back bounds = %v, want %dx%d", back.Bounds(), wantW, wantH)
	}
}
