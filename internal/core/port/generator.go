package port

import (
	"context"
	"upscaler/internal/core/domain"
)

type Upscaler interface {
	// Upscale sends one upscale request and returns the first image of the response as a data URL. It returns
	// domain.ErrNoImageProduced when the service answered without an image and domain.ErrUpscaleFailed on any
	// transport or service failure.
	Upscale(ctx context.Context, request domain.UpscaleRequest) (string, error)
}
