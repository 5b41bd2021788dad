package domain

import "errors"

var (
	ErrNotAnImage      = errors.New("file is not an image")
	ErrReadFailed      = errors.New("failed to read file")
	ErrUpscaleFailed   = errors.New("failed to upscale image")
	ErrNoImageProduced = errors.New("no image in model response")
	ErrInvalidFactor   = errors.New("invalid scale factor, must be 2 or 4")
	ErrMissingAPIKey   = errors.New("missing gemini api key")
	ErrInvalidDataURL  = errors.New("invalid data url")

	ErrSendingReplyFailed = errors.New("failed to send reply")
)

// User-facing messages stored in State.Error.
const (
	MsgNotAnImage      = "The selected file is not an image. Please choose an image file."
	MsgLoadFailed      = "Failed to load image. Please try another file."
	MsgUpscaleFailed   = "Failed to upscale image with Gemini API. Please check your API key and network connection."
	MsgNoImageProduced = "The AI could not generate an upscaled image. Please try again."
)

const DefaultMIMEType = "image/png"
