package web

import (
	"context"
	"embed"
	"errors"
	"html/template"
	"net/http"
	"time"
	"upscaler/internal/core/service"

	"github.com/gin-gonic/gin"
	"github.com/gofrs/uuid/v5"
	"github.com/rs/zerolog/log"
)

//go:embed templates/*.html
var templateFS embed.FS

const (
	sessionCookie   = "upscaler_session"
	workflowKey     = "workflow"
	multipartSlack  = 1 << 20
	shutdownTimeout = 10 * time.Second
)

type Options struct {
	MaxUploadBytes int64
	SecureCookies  bool
	SessionTTL     time.Duration
}

// Server is the browser front end. Each visitor gets a session cookie bound to one workflow.
type Server struct {
	ctx      context.Context
	sessions *service.Sessions
	engine   *gin.Engine
	opts     Options
}

// NewServer builds the routes. Background upscales are bound to ctx, so cancelling it aborts them.
func NewServer(ctx context.Context, sessions *service.Sessions, opts Options) (*Server, error) {
	tmpl, err := template.ParseFS(templateFS, "templates/*.html")
	if err != nil {
		return nil, err
	}

	engine := gin.New()
	engine.Use(gin.Recovery(), requestLogger())
	engine.SetHTMLTemplate(tmpl)
	engine.MaxMultipartMemory = opts.MaxUploadBytes

	s := &Server{ctx: ctx, sessions: sessions, engine: engine, opts: opts}

	engine.GET("/healthz", func(c *gin.Context) { c.String(http.StatusOK, "ok") })

	app := engine.Group("/", s.session)
	app.GET("/", s.index)
	app.POST("/image", s.selectImage)
	app.POST("/factor", s.setFactor)
	app.POST("/upscale", s.upscale)
	app.POST("/reset", s.reset)
	app.GET("/download", s.download)
	app.GET("/api/state", s.state)

	return s, nil
}

func (s *Server) Handler() http.Handler {
	return s.engine
}

// ListenAndServe serves until ctx is done and then shuts the server down gracefully.
func (s *Server) ListenAndServe(ctx context.Context, addr string, readTimeout time.Duration) error {
	srv := &http.Server{
		Addr:              addr,
		Handler:           s.engine,
		ReadHeaderTimeout: readTimeout,
		ReadTimeout:       readTimeout,
	}

	errCh := make(chan error, 1)
	go func() {
		log.Info().Str("addr", addr).Msg("http server listening")
		errCh <- srv.ListenAndServe()
	}()

	select {
	case err := <-errCh:
		if errors.Is(err, http.ErrServerClosed) {
			return nil
		}
		return err
	case <-ctx.Done():
	}

	log.Info().Msg("shutting down http server")
	shutdownCtx, cancel := context.WithTimeout(context.WithoutCancel(ctx), shutdownTimeout)
	defer cancel()

	return srv.Shutdown(shutdownCtx)
}

// session attaches the caller's workflow. A new session cookie is issued when the request carries none or
// one that is not a uuid, so clients cannot choose their own keys.
func (s *Server) session(c *gin.Context) {
	key, err := c.Cookie(sessionCookie)
	if err == nil {
		id, parseErr := uuid.FromString(key)
		if parseErr != nil {
			log.Debug().Str("cookie", key).Msg("ignoring malformed session cookie")
			err = parseErr
		} else {
			key = id.String()
		}
	}
	if err != nil {
		key, err = service.NewKey()
		if err != nil {
			log.Error().Err(err).Msg("failed to create session key")
			c.AbortWithStatus(http.StatusInternalServerError)
			return
		}
		c.SetSameSite(http.SameSiteLaxMode)
		c.SetCookie(sessionCookie, key, int(s.opts.SessionTTL.Seconds()), "/", "", s.opts.SecureCookies, true)
	}

	c.Set(workflowKey, s.sessions.Get(key))
	c.Next()
}

func requestLogger() gin.HandlerFunc {
	return func(c *gin.Context) {
		start := time.Now()
		c.Next()

		log.Info().
			Str("method", c.Request.Method).
			Str("path", c.Request.URL.Path).
			Int("status", c.Writer.Status()).
			Dur("latency", time.Since(start)).
			Msg("request")
	}
}
