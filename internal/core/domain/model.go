package domain

import (
	"fmt"
	"io"
	"strconv"
	"strings"
)

// Upload is a file-like input handed to the converter.
type Upload struct {
	Name        string
	ContentType string
	Reader      io.Reader
}

// OriginalImage is the converted form of an accepted upload.
type OriginalImage struct {
	Name     string
	DataURL  string
	Base64   string
	MIMEType string
}

type UpscaleRequest struct {
	Base64   string
	MIMEType string
	Factor   Factor
}

// Factor is the requested magnification. Only Factor2 and Factor4 are valid.
type Factor int

const (
	Factor2 Factor = 2
	Factor4 Factor = 4
)

const DefaultFactor = Factor2

func NewFactor(n int) (Factor, error) {
	f := Factor(n)
	if !f.Valid() {
		return 0, fmt.Errorf("%w: %d", ErrInvalidFactor, n)
	}

	return f, nil
}

// ParseFactor accepts "2", "4", "2x" and "4x".
func ParseFactor(s string) (Factor, error) {
	s = strings.TrimSuffix(strings.ToLower(strings.TrimSpace(s)), "x")

	n, err := strconv.Atoi(s)
	if err != nil {
		return 0, fmt.Errorf("%w: %q", ErrInvalidFactor, s)
	}

	return NewFactor(n)
}

func (f Factor) Valid() bool {
	return f == Factor2 || f == Factor4
}

func (f Factor) String() string {
	return fmt.Sprintf("%dx", int(f))
}

type Phase int

const (
	NoImage Phase = iota
	Loading
	Ready
	Upscaling
	Succeeded
	Failed
)

func (p Phase) String() string {
	switch p {
	case NoImage:
		return "no_image"
	case Loading:
		return "loading"
	case Ready:
		return "ready"
	case Upscaling:
		return "upscaling"
	case Succeeded:
		return "succeeded"
	case Failed:
		return "failed"
	default:
		return "unknown"
	}
}

// Busy reports whether a conversion or upscale is in flight.
func (p Phase) Busy() bool {
	return p == Loading || p == Upscaling
}

// State is a point-in-time copy of a workflow, safe to hand to presentation code.
type State struct {
	Phase        Phase
	Factor       Factor
	Original     *OriginalImage
	UpscaledURL  string
	// ResultFactor is the factor UpscaledURL was produced with. It is zero without a result.
	ResultFactor Factor
	Error        string
	Generation   uint64
}

// CanUpscale mirrors the guard applied by the workflow's upscale command.
func (s State) CanUpscale() bool {
	return s.Original != nil && (s.Phase == Ready || s.Phase == Failed)
}

func (s State) CanDownload() bool {
	return s.Phase == Succeeded && s.UpscaledURL != ""
}

// Message is a chat message reduced to what the chat commands need.
type Message struct {
	ID        int
	ChatID    int64
	Username  string
	Text      string
	FileID    string
	FileName  string
	MIMEType  string
	FileBytes int64
}
