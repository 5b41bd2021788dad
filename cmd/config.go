package cmd

import (
	"errors"
	"fmt"
	"os"
	"strings"
	"time"

	"github.com/joho/godotenv"
	"github.com/rs/zerolog"
	"github.com/rs/zerolog/log"
	"github.com/spf13/viper"
)

const envPrefix = "UPSCALER"

// v is the global viper instance, shared with the Telegram authorizer.
var v = viper.GetViper()

func setDefaults() {
	v.SetDefault("log.level", "info")
	v.SetDefault("http.addr", ":8080")
	v.SetDefault("http.read_timeout", "30s")
	v.SetDefault("http.secure_cookies", false)
	v.SetDefault("gemini.model", "gemini-2.5-flash-image-preview")
	v.SetDefault("gemini.timeout", "2m")
	v.SetDefault("upload.max_bytes", 20<<20)
	v.SetDefault("session.ttl", "1h")
	v.SetDefault("session.sweep_interval", "5m")
	v.SetDefault("telegram.bot_token", "")
	v.SetDefault("telegram.handler_timeout", "3m")
	v.SetDefault("telegram.allowed_chat_ids", []int64{})
	v.SetDefault("telegram.admin_username", "")
}

// loadConfig reads .env, the optional toml config file and the environment into viper. A missing config
// file is only an error when path was given explicitly.
func loadConfig(path string) error {
	if err := godotenv.Load(); err != nil && !errors.Is(err, os.ErrNotExist) {
		log.Warn().Err(err).Msg("could not read .env file")
	}

	setDefaults()

	v.SetConfigType("toml")
	if path != "" {
		v.SetConfigFile(path)
	} else {
		v.SetConfigName("config")
		v.AddConfigPath(".")
	}

	v.SetEnvPrefix(envPrefix)
	v.SetEnvKeyReplacer(strings.NewReplacer(".", "_"))
	v.AutomaticEnv()
	if err := v.BindEnv("gemini.api_key", envPrefix+"_GEMINI_API_KEY", "GEMINI_API_KEY", "API_KEY"); err != nil {
		return err
	}

	log.Debug().Msg("reading config file...")
	if err := v.ReadInConfig(); err != nil {
		var notFound viper.ConfigFileNotFoundError
		if path == "" && errors.As(err, &notFound) {
			log.Debug().Msg("no config file found, using defaults and environment")
			return nil
		}
		return fmt.Errorf("could not read config file: %w", err)
	}

	log.Info().Str("file", v.ConfigFileUsed()).Msg("config loaded")
	return nil
}

func setLogLevel(level string) {
	l, err := zerolog.ParseLevel(strings.ToLower(level))
	if err != nil || l == zerolog.NoLevel {
		log.Warn().Str("level", level).Msg("unknown log level, using info")
		l = zerolog.InfoLevel
	}

	zerolog.SetGlobalLevel(l)
}

func duration(key string) (time.Duration, error) {
	d, err := time.ParseDuration(v.GetString(key))
	if err != nil {
		return 0, fmt.Errorf("invalid duration for %s in config: %w", key, err)
	}

	return d, nil
}
