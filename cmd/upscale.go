package cmd

import (
	"errors"
	"fmt"
	"mime"
	"net/http"
	"os"
	"path/filepath"
	"upscaler/internal/adapters/file"
	"upscaler/internal/core/domain"
	"upscaler/internal/core/port"
	"upscaler/internal/core/service"

	"github.com/rs/zerolog/log"
	"github.com/spf13/cobra"
)

type upscaleOptions struct {
	factor string
	output string
}

func newUpscaleCmd() *cobra.Command {
	opts := upscaleOptions{}

	cmd := &cobra.Command{
		Use:   "upscale <image>",
		Short: "Upscale a single image and write it as PNG",
		Args:  cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			upscaler, err := newUpscaler(cmd.Context())
			if err != nil {
				return err
			}

			return runUpscale(cmd, args[0], &opts, upscaler)
		},
	}

	cmd.Flags().StringVarP(&opts.factor, "factor", "f", "2", "upscale factor: 2 or 4")
	cmd.Flags().StringVarP(&opts.output, "output", "o", "", "output file (default: <input>_upscaled_<factor>x.png)")

	return cmd
}

func runUpscale(cmd *cobra.Command, input string, opts *upscaleOptions, upscaler port.Upscaler) error {
	factor, err := domain.ParseFactor(opts.factor)
	if err != nil {
		return err
	}

	f, err := os.Open(input)
	if err != nil {
		return fmt.Errorf("could not open input: %w", err)
	}
	defer f.Close()

	contentType, err := detectContentType(f)
	if err != nil {
		return err
	}

	w := service.NewWorkflow(file.NewConverter(v.GetInt64("upload.max_bytes")), upscaler)
	if err := w.SetFactor(factor); err != nil {
		return err
	}

	upload := domain.Upload{Name: filepath.Base(input), ContentType: contentType, Reader: f}
	if err := w.SelectImage(cmd.Context(), upload); err != nil {
		return errors.New(w.Snapshot().Error)
	}

	cmd.Printf("Upscaling %s %s...\n", input, factor)
	w.Upscale(cmd.Context())

	state := w.Snapshot()
	if state.Phase != domain.Succeeded {
		if state.Error == "" {
			return fmt.Errorf("upscale did not complete: %s", state.Phase)
		}
		return errors.New(state.Error)
	}

	data, err := file.EncodePNG(state.UpscaledURL)
	if err != nil {
		return fmt.Errorf("could not encode result: %w", err)
	}

	output := opts.output
	if output == "" {
		output = filepath.Join(filepath.Dir(input), file.DownloadName(filepath.Base(input), state.ResultFactor))
	}

	if err := os.WriteFile(output, data, 0o644); err != nil {
		return fmt.Errorf("could not write output: %w", err)
	}

	log.Debug().Str("output", output).Int("bytes", len(data)).Msg("wrote upscaled image")
	cmd.Printf("Successfully created: %s\n", output)

	return nil
}

// detectContentType guesses from the extension and falls back to sniffing the first 512 bytes.
func detectContentType(f *os.File) (string, error) {
	if ct := mime.TypeByExtension(filepath.Ext(f.Name())); ct != "" {
		return ct, nil
	}

	head := make([]byte, 512)
	n, err := f.Read(head)
	if err != nil && n == 0 {
		return "", fmt.Errorf("could not read input: %w", err)
	}
	if _, err := f.Seek(0, 0); err != nil {
		return "", fmt.Errorf("could not read input: %w", err)
	}

	return http.DetectContentType(head[:n]), nil
}
