package generator

import (
	"context"
	"encoding/base64"
	"errors"
	"fmt"
	"time"
	"upscaler/internal/adapters/file"
	"upscaler/internal/core/domain"

	"github.com/rs/zerolog/log"
	"google.golang.org/genai"
)

const (
	DefaultModel   = "gemini-2.5-flash-image-preview"
	DefaultTimeout = 2 * time.Minute
)

var responseModalities = []string{"IMAGE", "TEXT"}

// contentGenerator is the part of the genai client used here. *genai.Models satisfies it.
type contentGenerator interface {
	GenerateContent(ctx context.Context, model string, contents []*genai.Content,
		config *genai.GenerateContentConfig) (*genai.GenerateContentResponse, error)
}

// Gemini upscales images through the Gemini image generation model.
type Gemini struct {
	models  contentGenerator
	model   string
	timeout time.Duration
}

func NewGemini(ctx context.Context, apiKey, model string, timeout time.Duration) (*Gemini, error) {
	if apiKey == "" {
		return nil, domain.ErrMissingAPIKey
	}

	client, err := genai.NewClient(ctx, &genai.ClientConfig{
		APIKey:  apiKey,
		Backend: genai.BackendGeminiAPI,
	})
	if err != nil {
		return nil, fmt.Errorf("error creating gemini client: %w", err)
	}

	return newGemini(client.Models, model, timeout), nil
}

func newGemini(models contentGenerator, model string, timeout time.Duration) *Gemini {
	if model == "" {
		model = DefaultModel
	}
	if timeout <= 0 {
		timeout = DefaultTimeout
	}

	return &Gemini{models: models, model: model, timeout: timeout}
}

func (g *Gemini) Upscale(ctx context.Context, request domain.UpscaleRequest) (string, error) {
	l := log.With().Str("model", g.model).Stringer("factor", request.Factor).Logger()

	data, err := base64.StdEncoding.DecodeString(request.Base64)
	if err != nil {
		l.Error().Err(err).Msg("invalid image payload")
		return "", domain.ErrUpscaleFailed
	}

	ctx, cancel := context.WithTimeout(ctx, g.timeout)
	defer cancel()

	contents := []*genai.Content{{
		Role: "user",
		Parts: []*genai.Part{
			{InlineData: &genai.Blob{Data: data, MIMEType: request.MIMEType}},
			{Text: BuildPrompt(request.Factor)},
		},
	}}

	l.Debug().Int("bytes", len(data)).Str("mimeType", request.MIMEType).Msg("sending gemini request")

	resp, err := g.models.GenerateContent(ctx, g.model, contents, &genai.GenerateContentConfig{
		ResponseModalities: responseModalities,
	})
	if err != nil {
		l.Error().Err(err).Msg("gemini request failed")
		return "", domain.ErrUpscaleFailed
	}

	content, err := firstContent(resp)
	if err != nil {
		l.Error().Err(err).Msg("malformed gemini response")
		return "", domain.ErrUpscaleFailed
	}

	dataURL, ok := firstImage(content)
	if !ok {
		l.Warn().Msg("no image found in gemini response parts")
		return "", domain.ErrNoImageProduced
	}

	return dataURL, nil
}

// firstContent returns the content of the first candidate. A response without one is malformed.
func firstContent(resp *genai.GenerateContentResponse) (*genai.Content, error) {
	if resp == nil || len(resp.Candidates) == 0 {
		return nil, errors.New("response has no candidates")
	}
	if resp.Candidates[0] == nil || resp.Candidates[0].Content == nil {
		return nil, errors.New("first candidate has no content")
	}

	return resp.Candidates[0].Content, nil
}

func firstImage(content *genai.Content) (string, bool) {
	for _, part := range content.Parts {
		if part == nil || part.InlineData == nil || len(part.InlineData.Data) == 0 {
			continue
		}

		mimeType := part.InlineData.MIMEType
		if mimeType == "" {
			mimeType = domain.DefaultMIMEType
		}

		return file.EncodeDataURL(mimeType, part.InlineData.Data), true
	}

	return "", false
}
