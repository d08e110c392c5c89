package idcard

import (
	"bytes"
	"encoding/base64"
	"fmt"
	"html/template"
)

// printPage is the print surface: two bordered card regions rendered side by
// side. The scannable code is embedded as a static data URI so it needs no
// network fetch, and the print dialog is only triggered from the window load
// event, which fires after every image has settled (loaded or errored).
// Printing therefore never races a pending image.
const printPage = `<!DOCTYPE html>
<html>
<head>
<title>Student ID Card</title>
<style>
  body { background: #f1f5f9; margin: 0; padding: 24px; font-family: Arial, sans-serif; }
  .cards { display: flex; flex-direction: row; align-items: flex-start; justify-content: center; gap: 32px; }
  .separate-card {
    display: flex; flex-direction: column; align-items: center; justify-content: space-between;
    min-height: 600px; width: 700px; max-width: 100%; padding: 32px 24px; box-sizing: border-box;
    background: #fff; border: 4px solid #2563eb; border-radius: 24px;
  }
  .row { display: flex; justify-content: space-between; width: 100%; margin-bottom: 8px; }
  .label { font-weight: 600; color: #334155; }
  .value { color: #475569; }
  .title { color: #1d4ed8; text-align: center; }
  .muted { color: #64748b; font-size: 0.95rem; }
  .qr img { border: 1px solid #cbd5e1; border-radius: 8px; width: 120px; height: 120px; object-fit: contain; }
  .qr p { font-size: 0.8rem; color: #64748b; text-align: center; margin-top: 4px; }
  .signature { width: 200px; height: 2px; background: #cbd5e1; margin: 0 auto; }
  .signature-label { text-align: center; font-size: 1rem; font-weight: 600; color: #2563eb; }
  .avatar { width: 160px; height: 160px; object-fit: cover; border: 1px solid #cbd5e1; border-radius: 12px; }
  @media print {
    body { background: white !important; padding: 0 !important; }
    .separate-card { page-break-inside: avoid; }
  }
</style>
</head>
<body>
<div class="cards">
{{if .Fallback}}
  <div class="separate-card"><pre>{{.FrontText}}</pre></div>
  <div class="separate-card"><pre>{{.BackText}}</pre></div>
{{else}}
  <div class="separate-card">
    <h2 class="title">{{.InstituteName}}</h2>
    <h2 class="title">STUDENT ID CARD</h2>
    {{if .AvatarURL}}<img class="avatar" src="{{.AvatarURL}}" alt="Student photo" />{{end}}
    <h3 class="title">{{.FullName}}</h3>
    <p class="label">Roll No: <span class="value">{{.RollNo}}</span></p>
    {{if .AdmitLine}}<p class="muted">Admitted: {{.AdmitLine}}</p>{{end}}
  </div>
  <div class="separate-card">
    <div style="width:100%">
      <div class="row"><span class="label">Student ID:</span><span class="value">{{.RollNo}}</span></div>
      <div class="row"><span class="label">Registration#</span><span class="value">{{.RegistrationNo}}</span></div>
    </div>
    <div>
      <div class="signature"></div>
      <p class="signature-label">Authorized Signature</p>
    </div>
    <div style="width:100%">
      <p class="label" style="margin-bottom:2px">Note:</p>
      <p class="muted" style="margin:0">Finder of this card may please post it to</p>
      <p class="label" style="margin-top:2px">{{.InstituteName}}</p>
    </div>
    <div class="qr">
      <img src="{{.QRDataURI}}" alt="QR Code" />
      <p>Scan for student information</p>
    </div>
    <div style="width:100%">
      <p class="muted" style="margin:0"><span class="label">Contact:</span> {{.InstitutePhone}}</p>
      <p class="muted" style="margin:0"><span class="label">Email:</span> {{.InstituteEmail}}</p>
      <p class="muted" style="margin:0"><span class="label">URL:</span> {{.InstituteURL}}</p>
    </div>
  </div>
{{end}}
</div>
<script>
  // load fires only once every subresource, images included, has settled.
  window.addEventListener("load", function () { window.print(); });
</script>
</body>
</html>
`

var printTemplate = template.Must(template.New("print").Parse(printPage))

type printView struct {
	Fallback       bool
	FrontText      string
	BackText       string
	FullName       string
	RollNo         string
	RegistrationNo string
	AdmitLine      string
	AvatarURL      string
	QRDataURI      template.URL
	InstituteName  string
	InstitutePhone string
	InstituteEmail string
	InstituteURL   string
}

// RenderPrintHTML builds the print surface for a card. avatarURL may be
// empty. When the card data is incomplete the pre-formatted text fallback is
// rendered instead of the visual faces.
func RenderPrintHTML(d CardData, avatarURL string) (string, error) {
	view := printView{
		Fallback:       !d.Complete(),
		FrontText:      d.FrontSideText(),
		BackText:       d.BackSideText(),
		FullName:       d.FullName,
		RollNo:         d.RollNo,
		RegistrationNo: d.RegistrationNo,
		AdmitLine:      d.AdmitDateLine(),
		AvatarURL:      avatarURL,
		InstituteName:  InstituteName,
		InstitutePhone: InstitutePhone,
		InstituteEmail: InstituteEmail,
		InstituteURL:   InstituteURL,
	}

	if !view.Fallback {
		qrPNG, err := d.QRPNG()
		if err != nil {
			return "", fmt.Errorf("failed to encode print QR: %w", err)
		}
		view.QRDataURI = template.URL("data:image/png;base64," + base64.StdEncoding.EncodeToString(qrPNG))
	}

	var buf bytes.Buffer
	if err := printTemplate.Execute(&buf, view); err != nil {
		return "", fmt.Errorf("failed to render print surface: %w", err)
	}
	return buf.String(), nil
}
