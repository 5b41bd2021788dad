package web

import (
	"errors"
	"fmt"
	"html/template"
	"mime"
	"net/http"
	"upscaler/internal/adapters/file"
	"upscaler/internal/core/domain"
	"upscaler/internal/core/service"

	"github.com/gin-gonic/gin"
	"github.com/rs/zerolog/log"
)

type stateResponse struct {
	Phase        string `json:"phase"`
	Factor       int    `json:"factor"`
	Error        string `json:"error,omitempty"`
	OriginalName string `json:"original_name,omitempty"`
	OriginalURL  string `json:"original_url,omitempty"`
	UpscaledURL  string `json:"upscaled_url,omitempty"`
	ResultFactor int    `json:"result_factor,omitempty"`
	CanUpscale   bool   `json:"can_upscale"`
	CanDownload  bool   `json:"can_download"`
}

func newStateResponse(s domain.State) stateResponse {
	resp := stateResponse{
		Phase:        s.Phase.String(),
		Factor:       int(s.Factor),
		Error:        s.Error,
		UpscaledURL:  s.UpscaledURL,
		ResultFactor: int(s.ResultFactor),
		CanUpscale:   s.CanUpscale(),
		CanDownload:  s.CanDownload(),
	}
	if s.Original != nil {
		resp.OriginalName = s.Original.Name
		resp.OriginalURL = s.Original.DataURL
	}

	return resp
}

type pageData struct {
	State       domain.State
	Busy        bool
	OriginalURL template.URL
	UpscaledURL template.URL
	Factors     []domain.Factor
	CanUpscale  bool
	CanDownload bool
}

func workflow(c *gin.Context) *service.Workflow {
	return c.MustGet(workflowKey).(*service.Workflow)
}

func (s *Server) index(c *gin.Context) {
	state := workflow(c).Snapshot()

	data := pageData{
		State:       state,
		Busy:        state.Phase.Busy(),
		UpscaledURL: template.URL(state.UpscaledURL),
		Factors:     []domain.Factor{domain.Factor2, domain.Factor4},
		CanUpscale:  state.CanUpscale(),
		CanDownload: state.CanDownload(),
	}
	if state.Original != nil {
		data.OriginalURL = template.URL(state.Original.DataURL)
	}

	c.HTML(http.StatusOK, "index.html", data)
}

func (s *Server) state(c *gin.Context) {
	c.JSON(http.StatusOK, newStateResponse(workflow(c).Snapshot()))
}

func (s *Server) selectImage(c *gin.Context) {
	c.Request.Body = http.MaxBytesReader(c.Writer, c.Request.Body, s.opts.MaxUploadBytes+multipartSlack)

	w := workflow(c)

	header, err := c.FormFile("file")
	if err != nil {
		var tooLarge *http.MaxBytesError
		if errors.As(err, &tooLarge) {
			w.RejectImage("", fmt.Errorf("%w: upload exceeds %d bytes", domain.ErrReadFailed, tooLarge.Limit))
			s.respond(c, w)
			return
		}

		log.Debug().Err(err).Msg("missing upload")
		c.AbortWithStatusJSON(http.StatusBadRequest, gin.H{"error": "missing file"})
		return
	}

	f, err := header.Open()
	if err != nil {
		log.Error().Err(err).Msg("failed to open upload")
		c.AbortWithStatusJSON(http.StatusBadRequest, gin.H{"error": domain.MsgLoadFailed})
		return
	}
	defer f.Close()

	_ = w.SelectImage(c.Request.Context(), domain.Upload{
		Name:        header.Filename,
		ContentType: header.Header.Get("Content-Type"),
		Reader:      f,
	})

	s.respond(c, w)
}

func (s *Server) setFactor(c *gin.Context) {
	factor, err := domain.ParseFactor(c.PostForm("factor"))
	if err != nil {
		c.AbortWithStatusJSON(http.StatusBadRequest, gin.H{"error": err.Error()})
		return
	}

	w := workflow(c)
	if err := w.SetFactor(factor); err != nil {
		c.AbortWithStatusJSON(http.StatusBadRequest, gin.H{"error": err.Error()})
		return
	}

	s.respond(c, w)
}

func (s *Server) upscale(c *gin.Context) {
	w := workflow(c)

	if f := c.PostForm("factor"); f != "" {
		factor, err := domain.ParseFactor(f)
		if err != nil {
			c.AbortWithStatusJSON(http.StatusBadRequest, gin.H{"error": err.Error()})
			return
		}
		_ = w.SetFactor(factor)
	}

	if !w.StartUpscale(s.ctx, nil) {
		log.Debug().Stringer("phase", w.Snapshot().Phase).Msg("ignoring upscale request")
	}

	s.respond(c, w)
}

func (s *Server) reset(c *gin.Context) {
	w := workflow(c)
	w.Reset()

	s.respond(c, w)
}

func (s *Server) download(c *gin.Context) {
	state := workflow(c).Snapshot()
	if !state.CanDownload() {
		c.AbortWithStatusJSON(http.StatusNotFound, gin.H{"error": "no upscaled image"})
		return
	}

	data, err := file.EncodePNG(state.UpscaledURL)
	if err != nil {
		log.Error().Err(err).Msg("failed to encode download")
		c.AbortWithStatusJSON(http.StatusInternalServerError, gin.H{"error": "failed to prepare download"})
		return
	}

	originalName := ""
	if state.Original != nil {
		originalName = state.Original.Name
	}

	name := file.DownloadName(originalName, state.ResultFactor)
	c.Header("Content-Disposition", mime.FormatMediaType("attachment", map[string]string{"filename": name}))
	c.Data(http.StatusOK, "image/png", data)
}

// respond answers JSON clients with the new state and redirects browsers back to the page.
func (s *Server) respond(c *gin.Context, w *service.Workflow) {
	if c.NegotiateFormat(gin.MIMEHTML, gin.MIMEJSON) == gin.MIMEJSON {
		c.JSON(http.StatusOK, newStateResponse(w.Snapshot()))
		return
	}

	c.Redirect(http.StatusSeeOther, "/")
}
