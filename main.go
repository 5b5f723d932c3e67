package main

import (
	"context"
	"errors"
	"log/slog"
	"net/http"
	"os"
	"os/signal"
	"syscall"
	"time"

	"sparta-mortgage/config"
	httpLayer "sparta-mortgage/http"
	"sparta-mortgage/observability"
	"sparta-mortgage/repository"
	"sparta-mortgage/service"
)

func main() {
	if err := run(); err != nil {
		slog.Error("server exited with error", "error", err)
		os.Exit(1)
	}
}

func run() error {
	cfg, err := config.Load()
	if err != nil {
		return err
	}

	logger := observability.InitLogger(observability.LogConfig{
		Level:  cfg.Log.Level,
		Format: cfg.Log.Format,
	})

	if err := cfg.Validate(); err != nil {
		return err
	}

	meterProvider, metricsHandler, err := observability.InitMetrics()
	if err != nil {
		return err
	}
	defer meterProvider.Shutdown(context.Background())

	metrics, err := observability.NewMetrics(meterProvider)
	if err != nil {
		return err
	}

	readiness := map[string]func(context.Context) error{}

	var cache repository.CacheRepository
	if cfg.Cache.RedisAddr != "" {
		redisCache := repository.NewRedisCache(cfg.Cache.RedisAddr, cfg.Cache.TTL)
		readiness["redis"] = redisCache.Ping
		cache = redisCache
	} else {
		cache = repository.NewMemoryCache(cfg.Cache.TTL)
	}
	defer cache.Close()

	var publisher repository.LeadPublisher = repository.NopLeadPublisher{}
	if len(cfg.Kafka.Brokers) > 0 {
		publisher = repository.NewKafkaLeadPublisher(cfg.Kafka.Brokers, cfg.Kafka.LeadsTopic)
	}
	defer publisher.Close()

	mortgageService := service.NewMortgageService(logger)
	termService := service.NewTermComparisonService(mortgageService, logger)

	chatService := service.NewChatService(chatProviders(cfg.Chat, logger), cfg.Chat.HistoryLimit, logger)
	chatService.OnProviderCall(metrics.RecordChatCall)

	contactService := service.NewContactService(repository.NewLeadRepositoryMemory(), publisher, logger)
	propertyService := service.NewPropertyService(repository.NewListingRepositoryYAML(nil), cache, logger)

	rateLimiter := httpLayer.NewRateLimiter(cfg.RateLimit.Capacity, cfg.RateLimit.Window)
	defer rateLimiter.Stop()

	handler := httpLayer.NewRouter(httpLayer.Handlers{
		Mortgage: httpLayer.NewMortgageHandler(mortgageService, metrics),
		Terms:    httpLayer.NewTermComparisonHandler(termService),
		Chat:     httpLayer.NewChatHandler(chatService, logger),
		Contact:  httpLayer.NewContactHandler(contactService, logger),
		Property: httpLayer.NewPropertyHandler(propertyService, logger),
		Health:   httpLayer.NewHealthHandler(cfg.ServiceName, readiness),
		Metrics:  metricsHandler,
	}, rateLimiter, logger, metrics)

	server := &http.Server{
		Addr:         cfg.HTTPAddr(),
		Handler:      handler,
		ReadTimeout:  15 * time.Second,
		WriteTimeout: cfg.Chat.Timeout + 15*time.Second,
		IdleTimeout:  60 * time.Second,
	}

	serverErr := make(chan error, 1)
	go func() {
		logger.Info("API listening", "addr", server.Addr, "chat_providers", chatService.Providers())
		if err := server.ListenAndServe(); err != nil && !errors.Is(err, http.ErrServerClosed) {
			serverErr <- err
		}
	}()

	quit := make(chan os.Signal, 1)
	signal.Notify(quit, syscall.SIGINT, syscall.SIGTERM)

	select {
	case err := <-serverErr:
		return err
	case <-quit:
		logger.Info("shutting down server")
	}

	ctx, cancel := context.WithTimeout(context.Background(), 10*time.Second)
	defer cancel()

	if err := server.Shutdown(ctx); err != nil {
		logger.Error("error during server shutdown", "error", err)
	}

	logger.Info("server exited")
	return nil
}

// chatProviders builds the provider chain in configured order, skipping
// providers without an API key.
func chatProviders(cfg config.ChatConfig, logger *slog.Logger) []service.ChatProvider {
	client := &http.Client{Timeout: cfg.Timeout}

	var providers []service.ChatProvider
	for _, name := range cfg.Providers {
		key := cfg.APIKey(name)
		if key == "" {
			logger.Debug("chat provider has no API key, skipping", "provider", name)
			continue
		}

		pc := service.ProviderConfig{APIKey: key, HTTPClient: client}
		switch name {
		case service.ProviderOpenRouter:
			providers = append(providers, service.NewOpenRouterProvider(pc))
		case service.ProviderAnthropic:
			providers = append(providers, service.NewAnthropicProvider(pc))
		case service.ProviderGrok:
			providers = append(providers, service.NewGrokProvider(pc))
		}
	}

	if len(providers) == 0 {
		logger.Warn("no chat provider configured, /api/chat will return errors")
	}
	return providers
}
