package testutil

import (
	"bytes"
	"image"
	"image/png"
	"io"
	"testing"

	"github.com/pdfcpu/pdfcpu/pkg/api"
	"github.com/pdfcpu/pdfcpu/pkg/pdfcpu/model"
	"github.com/pdfcpu/pdfcpu/pkg/pdfcpu/types"
)

// SamplePDF builds a document of blank A4 pages.
func SamplePDF(t *testing.T, pages int) []byte {
	t.Helper()
	api.DisableConfigDir()

	img := image.NewGray(image.Rect(0, 0, 595, 842))
	for i := range img.Pix {
		img.Pix[i] = 0xff
	}

	var page bytes.Buffer
	if err := png.Encode(&page, img); err != nil {
		t.Fatalf("encode page image: %v", err)
	}

	readers := make([]io.Reader, pages)
	for i := range readers {
		readers[i] = bytes.NewReader(page.Bytes())
	}

	imp, err := api.Import("pos:full", types.POINTS)
	if err != nil {
		t.Fatalf("import options: %v", err)
	}

	conf := model.NewDefaultConfiguration()
	conf.ValidationMode = model.ValidationRelaxed

	var out bytes.Buffer
	if err := api.ImportImages(nil, &out, readers, imp, conf); err != nil {
		t.Fatalf("build sample pdf: %v", err)
	}
	return out.Bytes()
}

// PageCount returns the number of pages in a PDF.
func PageCount(t *testing.T, pdf []byte) int {
	t.Helper()

	conf := model.NewDefaultConfiguration()
	conf.ValidationMode = model.ValidationRelaxed

	n, err := api.PageCount(bytes.NewReader(pdf), conf)
	if err != nil {
		t.Fatalf("count pages: %v", err)
	}
	return n
}
