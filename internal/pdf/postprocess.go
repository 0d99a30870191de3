package pdf

import (
	"bytes"
	"os"
	"strings"

	"github.com/pdfcpu/pdfcpu/pkg/api"
	pdftypes "github.com/pdfcpu/pdfcpu/pkg/pdfcpu/types"
	"github.com/sirupsen/logrus"
)

// Metadata is embedded into the finished PDF's document information.
type Metadata struct {
	Creator  string
	Title    string
	Subject  string
	Keywords []string
}

// SetMetadata writes document properties into the PDF and returns the
// updated bytes.
func SetMetadata(pdf []byte, meta Metadata) ([]byte, error) {
	props := map[string]string{}
	if meta.Creator != "" {
		props["Creator"] = meta.Creator
	}
	if meta.Title != "" {
		props["Title"] = meta.Title
	}
	if meta.Subject != "" {
		props["Subject"] = meta.Subject
	}
	if len(meta.Keywords) > 0 {
		props["Keywords"] = strings.Join(meta.Keywords, ", ")
	}
	if len(props) == 0 {
		return pdf, nil
	}

	var buf bytes.Buffer
	if err := api.AddProperties(bytes.NewReader(pdf), &buf, props, nil); err != nil {
		return nil, &RenderError{Message: "failed to set pdf metadata", Cause: err}
	}
	return buf.Bytes(), nil
}

// StampWatermark draws the given text near the bottom of every page at low
// opacity. Watermarking is core to branding compliance, so failures are
// fatal to the export.
func StampWatermark(pdf []byte, text string) ([]byte, error) {
	if text == "" {
		return pdf, nil
	}
	desc := "font:Helvetica, points:12, scale:1 abs, pos:bc, off:0 30, fillc:#bfbfbf, op:0.5, rot:0"
	wm, err := api.TextWatermark(text, desc, true, false, pdftypes.POINTS)
	if err != nil {
		return nil, &RenderError{Message: "failed to build watermark", Cause: err}
	}
	var buf bytes.Buffer
	if err := api.AddWatermarks(bytes.NewReader(pdf), &buf, nil, wm, nil); err != nil {
		return nil, &RenderError{Message: "failed to stamp watermark", Cause: err}
	}
	return buf.Bytes(), nil
}

// StampLogo embeds the image at logoPath in the top-right corner of every
// page. A missing or unreadable logo file degrades gracefully: the stamp is
// skipped and the original bytes are returned.
func StampLogo(pdf []byte, logoPath string, log *logrus.Logger) ([]byte, error) {
	if logoPath == "" {
		return pdf, nil
	}
	if _, err := os.Stat(logoPath); err != nil {
		if log != nil {
			log.WithField("logo", logoPath).Warn("logo file missing, skipping stamp")
		}
		return pdf, nil
	}
	desc := "pos:tr, off:-20 -20, scale:0.1 rel, op:0.8, rot:0"
	wm, err := api.ImageWatermark(logoPath, desc, true, false, pdftypes.POINTS)
	if err != nil {
		return nil, &RenderError{Message: "failed to build logo stamp", Cause: err}
	}
	var buf bytes.Buffer
	if err := api.AddWatermarks(bytes.NewReader(pdf), &buf, nil, wm, nil); err != nil {
		return nil, &RenderError{Message: "failed to stamp logo", Cause: err}
	}
	return buf.Bytes(), nil
}
