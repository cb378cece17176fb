package main

import (
	"context"
	"errors"
	"net/http"
	"os"
	"os/signal"
	"syscall"

	"github.com/joho/godotenv"

	"server/internal/dish"
	"server/internal/generation"
	"server/internal/http/handlers"
	httpapi "server/internal/http/httpapi"
	"server/internal/infra"
	imagegen "server/internal/providers/image"
	"server/internal/providers/openai"
	"server/internal/providers/prompt"
	"server/internal/providers/video"
)

func main() {
	// .env is optional
	_ = godotenv.Load()

	cfg, err := infra.LoadConfig()
	if err != nil {
		panic(err)
	}
	logger := infra.NewLogger(cfg.AppEnv)

	kb, err := dish.NewKnowledgeBase()
	if err != nil {
		logger.Fatal().Err(err).Msg("invalid dish catalog")
	}

	openaiClient := openai.NewClient(openai.Options{
		APIKey:         cfg.OpenAIAPIKey,
		BaseURL:        cfg.OpenAIBaseURL,
		Organization:   cfg.OpenAIOrg,
		Logger:         &logger,
		RequestTimeout: cfg.HTTPWriteTimeout,
	})
	if !openaiClient.HasCredentials() {
		logger.Warn().Msg("OPENAI_API_KEY not set; enhancement falls back to templates and image generation is disabled")
	}

	enhancer, err := prompt.NewOpenAIEnhancer(prompt.OpenAIOptions{
		Client:  openaiClient,
		Model:   cfg.ChatModel,
		Timeout: cfg.EnhanceTimeout,
		KB:      kb,
		OnFallback: func(reason string, err error) {
			logger.Warn().Err(err).Str("reason", reason).Msg("prompt enhancement fell back to template")
		},
	})
	if err != nil {
		logger.Fatal().Err(err).Msg("failed to build prompt enhancer")
	}

	images := imagegen.NewOpenAIGenerator(imagegen.OpenAIOptions{
		Client:        openaiClient,
		Model:         cfg.ImageModel,
		FallbackModel: cfg.ImageFallbackModel,
		OnFallback: func(reason string, err error) {
			logger.Warn().Err(err).Str("reason", reason).Msg("image generation fell back to secondary model")
		},
	})

	videos := video.Select(
		video.NewRunway(video.RunwayOptions{
			APIKey:  cfg.RunwayAPIKey,
			BaseURL: cfg.RunwayBaseURL,
			Logger:  &logger,
		}),
		video.NewLuma(video.LumaOptions{
			APIKey:  cfg.LumaAPIKey,
			BaseURL: cfg.LumaBaseURL,
		}),
	)
	if videos == nil {
		logger.Warn().Msg("no video provider credential set; video requests will be rejected")
	}

	dispatcher := generation.NewDispatcher(kb, enhancer, images, videos)

	app := handlers.NewApp(cfg, logger, kb, dispatcher)
	router := httpapi.NewRouter(app)
	server := infra.NewHTTPServer(cfg, router)

	go func() {
		logger.Info().Msgf("API listening on :%s", cfg.Port)
		if err := server.Start(); err != nil && !errors.Is(err, http.ErrServerClosed) {
			logger.Fatal().Err(err).Msg("http server failed")
		}
	}()

	stop := make(chan os.Signal, 1)
	signal.Notify(stop, syscall.SIGINT, syscall.SIGTERM)
	<-stop

	shutdownCtx, cancel := context.WithTimeout(context.Background(), cfg.HTTPIdleTimeout)
	defer cancel()

	if err := server.Shutdown(shutdownCtx); err != nil {
		logger.Error().Err(err).Msg("failed to shutdown server")
	}
	logger.Info().Msg("server stopped")
}
