package delivery

import (
	"certportal/internal/models"
	"fmt"
	"strings"
)

type Variant int

const (
	VariantPlain Variant = iota
	VariantQROnly
	VariantAppend
	VariantOverlay
	VariantOverlayJS
)

func (v Variant) String() string {
	switch v {
	case VariantPlain:
		return "plain"
	case VariantQROnly:
		return "qr_only"
	case VariantAppend:
		return "append"
	case VariantOverlay:
		return "overlay"
	case VariantOverlayJS:
		return "overlay_js"
	default:
		return fmt.Sprintf("Variant(%d)", int(v))
	}
}

func (v Variant) suffix() string {
	switch v {
	case VariantQROnly:
		return "-QR-ONLY"
	case VariantAppend:
		return "-QR"
	case VariantOverlay:
		return "-QR-OVERLAY"
	case VariantOverlayJS:
		return "-QR-OVERLAY-JS"
	default:
		return ""
	}
}

// Attachment reports whether the variant is offered as a download rather than shown inline.
// Documents with the QR merged into them are saved; stored and QR-only PDFs open in the browser.
func (v Variant) Attachment() bool {
	return v == VariantAppend || v == VariantOverlay
}

func (v Variant) fallbackName() string {
	switch v {
	case VariantQROnly:
		return "CERTIFICADO_QR.pdf"
	case VariantAppend:
		return "CERTIFICADO_QR_SIN_CODIGO.pdf"
	case VariantOverlay:
		return "CERTIFICADO_QR_OVERLAY.pdf"
	case VariantOverlayJS:
		return "CERTIFICADO_QR_OVERLAY_JS.pdf"
	default:
		return "CERTIFICADO_SIN_CODIGO.pdf"
	}
}

// Filename names a delivered document: the stored filename with the variant suffix
// inserted before the last .pdf extension, else the client code with the suffix, else a fixed name
// per variant.
func Filename(cert *models.Certificate, v Variant) string {
	suffix := v.suffix()

	if cert != nil && cert.PublishedFilename != nil && *cert.PublishedFilename != "" {
		name := *cert.PublishedFilename
		if suffix == "" {
			return name
		}
		if idx := strings.LastIndex(strings.ToLower(name), ".pdf"); idx >= 0 {
			return name[:idx] + suffix + name[idx:]
		}
		return name + suffix + ".pdf"
	}

	if cert != nil && cert.ClientCode != nil && *cert.ClientCode != "" {
		return *cert.ClientCode + suffix + ".pdf"
	}

	return v.fallbackName()
}
