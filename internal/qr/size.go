package qr

import (
	"errors"
	"fmt"
	"strings"
)

var ErrUnknownSize = errors.New("unknown QR size")

// SizePreset is a printable QR size. Pixels is the edge length in PDF points.
type SizePreset struct {
	Code        string
	Token       string
	Pixels      int
	Centimeters float64
}

// SizePresets is the only place QR sizes are defined.
var SizePresets = []SizePreset{
	{Code: "XS", Token: "print_qr15", Pixels: 100, Centimeters: 1.5},
	{Code: "S", Token: "print_qr35", Pixels: 234, Centimeters: 3.5},
	{Code: "M", Token: "print_qr50", Pixels: 333, Centimeters: 5.0},
	{Code: "L", Token: "print_qr95", Pixels: 587, Centimeters: 9.5},
}

// LookupSize finds a preset by short code or route token, ignoring case.
func LookupSize(code string) (SizePreset, error) {
	for _, p := range SizePresets {
		if strings.EqualFold(p.Code, code) || strings.EqualFold(p.Token, code) {
			return p, nil
		}
	}
	return SizePreset{}, fmt.Errorf("%w: %q", ErrUnknownSize, code)
}
