package cmd

import (
	"context"
	"os"
	"os/signal"
	"syscall"
	"upscaler/internal/adapters/file"
	"upscaler/internal/adapters/generator"
	"upscaler/internal/adapters/handler"
	"upscaler/internal/adapters/sender"
	"upscaler/internal/adapters/web"
	"upscaler/internal/core/domain"
	"upscaler/internal/core/domain/commands"
	"upscaler/internal/core/service"

	"github.com/go-telegram/bot"
	"github.com/go-telegram/bot/models"
	"github.com/rs/zerolog/log"
	"github.com/spf13/cobra"
	"golang.org/x/sync/errgroup"
)

func newServeCmd() *cobra.Command {
	cmd := &cobra.Command{
		Use:   "serve",
		Short: "Run the web interface and, if configured, the Telegram bot",
		Args:  cobra.NoArgs,
		RunE: func(cmd *cobra.Command, args []string) error {
			ctx, cancel := signal.NotifyContext(cmd.Context(), os.Interrupt, syscall.SIGTERM)
			defer cancel()

			return runServe(ctx)
		},
	}

	cmd.Flags().String("addr", "", "listen address (overrides http.addr)")
	_ = v.BindPFlag("http.addr", cmd.Flags().Lookup("addr"))

	return cmd
}

func runServe(ctx context.Context) error {
	log.Info().Msg("starting upscaler...")

	upscaler, err := newUpscaler(ctx)
	if err != nil {
		return err
	}

	readTimeout, err := duration("http.read_timeout")
	if err != nil {
		return err
	}
	ttl, err := duration("session.ttl")
	if err != nil {
		return err
	}
	sweepInterval, err := duration("session.sweep_interval")
	if err != nil {
		return err
	}

	maxBytes := v.GetInt64("upload.max_bytes")
	converter := file.NewConverter(maxBytes)

	webSessions := service.NewSessions(converter, upscaler, ttl)
	server, err := web.NewServer(ctx, webSessions, web.Options{
		MaxUploadBytes: maxBytes,
		SecureCookies:  v.GetBool("http.secure_cookies"),
		SessionTTL:     ttl,
	})
	if err != nil {
		return err
	}

	g, ctx := errgroup.WithContext(ctx)

	g.Go(func() error {
		webSessions.Janitor(ctx, sweepInterval)
		return nil
	})
	g.Go(func() error {
		return server.ListenAndServe(ctx, v.GetString("http.addr"), readTimeout)
	})

	if token := v.GetString("telegram.bot_token"); token != "" {
		chatSessions := service.NewSessions(converter, upscaler, ttl)
		b, err := newTelegramBot(token, chatSessions, maxBytes)
		if err != nil {
			return err
		}

		g.Go(func() error {
			chatSessions.Janitor(ctx, sweepInterval)
			return nil
		})
		g.Go(func() error {
			log.Info().Msg("bot listening")
			b.Start(ctx)
			return nil
		})
	} else {
		log.Info().Msg("no telegram.bot_token configured, telegram bot disabled")
	}

	return g.Wait()
}

func newUpscaler(ctx context.Context) (*generator.Gemini, error) {
	timeout, err := duration("gemini.timeout")
	if err != nil {
		return nil, err
	}

	return generator.NewGemini(ctx, v.GetString("gemini.api_key"), v.GetString("gemini.model"), timeout)
}

func newTelegramBot(token string, sessions *service.Sessions, maxBytes int64) (*bot.Bot, error) {
	handlerTimeout, err := duration("telegram.handler_timeout")
	if err != nil {
		return nil, err
	}

	b, err := bot.New(token, bot.WithDefaultHandler(noOpHandler))
	if err != nil {
		return nil, err
	}

	s := sender.NewTelegramSender(b, maxBytes)

	authorizer, err := service.NewAuthorizer(s)
	if err != nil {
		return nil, err
	}

	commandRegistry := &domain.CommandRegistry{}
	commandRegistry.Register(commands.NewImageHandler(sessions, s, s, commands.ImageCommand))
	commandRegistry.Register(commands.NewFactorHandler(sessions, s, "/factor"))
	commandRegistry.Register(commands.NewUpscaleHandler(sessions, s, s, "/upscale"))
	commandRegistry.Register(commands.NewResetHandler(sessions, s, "/reset"))
	commandRegistry.Register(commands.NewStatusHandler(sessions, s, "/status"))
	commandRegistry.Register(commands.NewHelpHandler(commandRegistry, s, "/help"))
	commandRegistry.Register(commands.NewHelpHandler(commandRegistry, s, "/start"))

	commandHandler := handler.NewCommandHandler(commandRegistry, authorizer, handlerTimeout, maxBytes)

	b.RegisterHandlerMatchFunc(func(update *models.Update) bool {
		return update.Message != nil
	}, commandHandler.Handle)

	return b, nil
}

func noOpHandler(_ context.Context, _ *bot.Bot, _ *models.Update) {}
