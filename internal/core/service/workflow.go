package service

import (
	"context"
	"errors"
	"sync"
	"upscaler/internal/core/domain"
	"upscaler/internal/core/port"

	"github.com/rs/zerolog/log"
)

// Workflow owns the upload → upscale → result state of a single session.
//
// State changes happen under the mutex, conversion and the upscale round trip run outside of it. Every
// operation that invalidates the held image bumps the generation, and an outcome is only applied when the
// generation it started with is still current.
type Workflow struct {
	converter port.Converter
	upscaler  port.Upscaler

	mu         sync.Mutex
	phase      domain.Phase
	factor     domain.Factor
	original   *domain.OriginalImage
	upscaled   string
	upscaledAt domain.Factor
	errMsg     string
	generation uint64
}

func NewWorkflow(converter port.Converter, upscaler port.Upscaler) *Workflow {
	return &Workflow{
		converter: converter,
		upscaler:  upscaler,
		phase:     domain.NoImage,
		factor:    domain.DefaultFactor,
	}
}

// SelectImage converts the upload and stores it as the original image. Any previous result is dropped.
func (w *Workflow) SelectImage(ctx context.Context, upload domain.Upload) error {
	w.mu.Lock()
	w.generation++
	gen := w.generation
	w.phase = domain.Loading
	w.original = nil
	w.upscaled = ""
	w.upscaledAt = 0
	w.errMsg = ""
	w.mu.Unlock()

	l := log.With().Uint64("generation", gen).Str("file", upload.Name).Logger()
	l.Debug().Str("contentType", upload.ContentType).Msg("converting image")

	img, err := w.converter.Convert(ctx, upload)

	w.mu.Lock()
	defer w.mu.Unlock()

	if gen != w.generation {
		l.Debug().Msg("discarding stale conversion result")
		return err
	}

	if err != nil {
		l.Warn().Err(err).Msg("image conversion failed")
		w.phase = domain.Failed
		w.original = nil
		w.errMsg = errorMessage(err)
		return err
	}

	w.original = &img
	w.phase = domain.Ready
	l.Info().Str("mimeType", img.MIMEType).Msg("image loaded")

	return nil
}

// RejectImage records an upload that could not be read at all, e.g. a request body over the size limit. The
// held image and any result are dropped, as with a failed SelectImage.
func (w *Workflow) RejectImage(name string, err error) {
	w.mu.Lock()
	defer w.mu.Unlock()

	w.generation++
	w.phase = domain.Failed
	w.original = nil
	w.upscaled = ""
	w.upscaledAt = 0
	w.errMsg = errorMessage(err)

	log.Warn().Err(err).Uint64("generation", w.generation).Str("file", name).Msg("image rejected")
}

// SetFactor changes the factor used by the next upscale. It does not affect a request already in flight.
func (w *Workflow) SetFactor(f domain.Factor) error {
	if !f.Valid() {
		return domain.ErrInvalidFactor
	}

	w.mu.Lock()
	w.factor = f
	w.mu.Unlock()

	return nil
}

// Upscale runs one upscale request for the held image and returns once its outcome is applied. It returns
// false without doing anything when there is no image, a request is already in flight, or a result is already
// held.
func (w *Workflow) Upscale(ctx context.Context) bool {
	run, ok := w.beginUpscale(ctx)
	if !ok {
		return false
	}

	run()
	return true
}

// StartUpscale moves the workflow to Upscaling and performs the request in the background. done, if not nil,
// is called after the outcome has been applied or discarded.
func (w *Workflow) StartUpscale(ctx context.Context, done func()) bool {
	run, ok := w.beginUpscale(ctx)
	if !ok {
		return false
	}

	go func() {
		if done != nil {
			defer done()
		}
		run()
	}()

	return true
}

func (w *Workflow) beginUpscale(ctx context.Context) (func(), bool) {
	if ctx.Err() != nil {
		return nil, false
	}

	w.mu.Lock()
	defer w.mu.Unlock()

	if w.original == nil || (w.phase != domain.Ready && w.phase != domain.Failed) {
		return nil, false
	}

	gen := w.generation
	req := domain.UpscaleRequest{
		Base64:   w.original.Base64,
		MIMEType: w.original.MIMEType,
		Factor:   w.factor,
	}
	w.phase = domain.Upscaling
	w.upscaled = ""
	w.upscaledAt = 0
	w.errMsg = ""

	return func() { w.runUpscale(ctx, gen, req) }, true
}

func (w *Workflow) runUpscale(ctx context.Context, gen uint64, req domain.UpscaleRequest) {
	l := log.With().Uint64("generation", gen).Stringer("factor", req.Factor).Logger()
	l.Info().Msg("upscale started")

	dataURL, err := w.upscaler.Upscale(ctx, req)

	w.mu.Lock()
	defer w.mu.Unlock()

	if gen != w.generation {
		l.Info().Msg("discarding stale upscale result")
		return
	}

	switch {
	case err == nil:
		w.phase = domain.Succeeded
		w.upscaled = dataURL
		w.upscaledAt = req.Factor
		l.Info().Msg("upscale succeeded")
	case errors.Is(err, domain.ErrNoImageProduced):
		w.phase = domain.Failed
		w.errMsg = domain.MsgNoImageProduced
		l.Warn().Msg("upscale produced no image")
	default:
		w.phase = domain.Failed
		w.errMsg = domain.MsgUpscaleFailed
		l.Error().Err(err).Msg("upscale failed")
	}
}

// Reset clears all held state. A request still in flight will have its result discarded.
func (w *Workflow) Reset() {
	w.mu.Lock()
	defer w.mu.Unlock()

	w.generation++
	w.phase = domain.NoImage
	w.original = nil
	w.upscaled = ""
	w.upscaledAt = 0
	w.errMsg = ""
}

func (w *Workflow) Snapshot() domain.State {
	w.mu.Lock()
	defer w.mu.Unlock()

	s := domain.State{
		Phase:        w.phase,
		Factor:       w.factor,
		UpscaledURL:  w.upscaled,
		ResultFactor: w.upscaledAt,
		Error:        w.errMsg,
		Generation:   w.generation,
	}
	if w.original != nil {
		orig := *w.original
		s.Original = &orig
	}

	return s
}

func errorMessage(err error) string {
	if errors.Is(err, domain.ErrNotAnImage) {
		return domain.MsgNotAnImage
	}

	return domain.MsgLoadFailed
}
