package generator

import (
	"fmt"
	"upscaler/internal/core/domain"
)

// Transparent input must come back transparent. Downloads are re-encoded as PNG so the alpha channel survives.
const upscalePrompt = "Upscale this image by %dx, enhancing details and improving clarity. " +
	"Remove compression artifacts and noise. " +
	"It is critical to preserve the original's transparency. If the original image has a transparent " +
	"background, the final upscaled image MUST also have a transparent background. " +
	"Make the image sharper and more defined. Only return the upscaled image."

// BuildPrompt returns the instruction sent along with the image.
func BuildPrompt(factor domain.Factor) string {
	return fmt.Sprintf(upscalePrompt, int(factor))
}
