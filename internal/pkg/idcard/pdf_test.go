package idcard

import (
	"bytes"
	"testing"
)

func TestFitDimensions(t *testing.T) {
	tests := []struct {
		name                   string
		imgW, imgH, maxW, maxH float64
		wantW, wantH           float64
		wantX, wantY           float64
	}{
		{
			name: "wide image limited by width",
			imgW: 1400, imgH: 880, maxW: 792, maxH: 612,
			// 792/1400 < 612/880
			wantW: 792, wantH: 880.0 * 792 / 1400,
			wantX: 0, wantY: (612 - 880.0*792/1400) / 2,
		},
		{
			name: "tall image limited by height",
			imgW: 600, imgH: 1200, maxW: 792, maxH: 612,
			wantW: 600 * 612 / 1200, wantH: 612,
			wantX: (792 - 600*612/1200) / 2, wantY: 0,
		},
		{
			name: "exact fit",
			imgW: 792, imgH: 612, maxW: 792, maxH: 612,
			wantW: 792, wantH: 612, wantX: 0, wantY: 0,
		},
	}

	const eps = 1e-9
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			w, h, x, y := FitDimensions(tt.imgW, tt.imgH, tt.maxW, tt.maxH)
			if diff := w - tt.wantW; diff > eps || diff < -eps {
				t.Errorf("width = %v, want %v", w, tt.wantW)
			}
			if diff := h - tt.wantH; diff > eps || diff < -eps {
				t.Errorf("height = %v, want %v", h, tt.wantH)
			}
			if diff := x - tt.wantX; diff > eps || diff < -eps {
				t.Errorf("x = %v, want %v", x, tt.wantX)
			}
			if diff := y - tt.wantY; diff > eps || diff < -eps {
				t.Errorf("y = %v, want %v", y, tt.wantY)
			}
			if w > tt.maxW+eps || h > tt.maxH+eps {
				t.Error("scaled image exceeds the page bounds")
			}
		})
	}
}

func TestExportPDF(t *testing.T) {
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

	pdf, err := ExportPDF(front, back)
	if err != nil {
		t.Fatalf("ExportPDF: %v", err)
	}
	if !bytes.HasPrefix(pdf, []byte("%PDF")) {
		t.Error("output does not start with a PDF header")
	}
	// Two pages, one per face.
	if got := bytes.Count(pdf, []byte("/Type /Page\r")) + bytes.Count(pdf, []byte("/Type /Page\n")); got < 2 {
		t.Errorf("expected at least 2 page objects, found %d", got)
	}
}
