package qr

import (
	"context"
	"errors"
	"fmt"

	"github.com/skip2/go-qrcode"
)

var ErrInvalidContent = errors.New("invalid QR content")

// Renderer produces a square PNG raster of the given edge length.
type Renderer interface {
	Render(ctx context.Context, content string, pixels int) ([]byte, error)
}

// Encoder renders QR codes locally at medium error recovery.
type Encoder struct {
	Level qrcode.RecoveryLevel
}

func NewEncoder() *Encoder {
	return &Encoder{Level: qrcode.Medium}
}

func (e *Encoder) Render(ctx context.Context, content string, pixels int) ([]byte, error) {
	if err := ctx.Err(); err != nil {
		return nil, err
	}
	if content == "" {
		return nil, fmt.Errorf("%w: empty content", ErrInvalidContent)
	}
	if pixels <= 0 {
		return nil, fmt.Errorf("%w: size must be positive, got %d", ErrInvalidContent, pixels)
	}

	png, err := qrcode.Encode(content, e.Level, pixels)
	if err != nil {
		return nil, fmt.Errorf("failed to encode QR: %w", err)
	}
	return png, nil
}
