package idcard

import (
	"strings"
	"testing"
)

func TestRenderPrintHTML(t *testing.T) {
	html, err := RenderPrintHTML(sampleCard(), "http://localhost:8080/uploads/avatars/5/1.png")
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}

	for _, want := range []string{
		"Ahmed Khan",
		"QT-2024-0154",
		"Roll No:",
		"Authorized Signature",
		InstituteName,
		`src="data:image/png;base64,`,
		`src="http://localhost:8080/uploads/avatars/5/1.png"`,
		"Saturday, November 1, 2025",
	} {
		if !strings.Contains(html, want) {
			t.Errorf("print surface missing %q", want)
		}
	}

	// Two separate card regions, front and back.
	if got := strings.Count(html, `class="separate-card"`); got != 2 {
		t.Errorf("found %d card regions, want 2", got)
	}

	// Print fires from the load event only, never before images settle.
	if !strings.Contains(html, `window.addEventListener("load"`) || !strings.Contains(html, "window.print()") {
		t.Error("print surface must trigger printing from the window load event")
	}
}

func TestRenderPrintHTMLWithoutAvatar(t *testing.T) {
	html, err := RenderPrintHTML(sampleCard(), "")
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if strings.Contains(html, `class="avatar"`) {
		t.Error("empty avatar URL should omit the photo element")
	}
}

func TestRenderPrintHTMLFallback(t *testing.T) {
	d := sampleCard()
	d.RollNo = ""

	html, err := RenderPrintHTML(d, "")
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}

	if !strings.Contains(html, "<pre>") {
		t.Error("incomplete card should render the text fallback")
	}
	if strings.Contains(html, "data:image/png;base64,") {
		t.Error("fallback page should not embed a scannable code")
	}
	if !strings.Contains(html, "window.print()") {
		t.Error("fallback page still prints")
	}
}
