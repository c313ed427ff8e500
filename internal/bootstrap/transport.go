package bootstrap

import (
	"log/slog"
	"time"

	"storefront/internal/client/httpc"
	"storefront/internal/client/transport"
	"storefront/internal/config"
)

// BuildTransport — единая сборка транспорта для всех бинарей.
func BuildTransport(cfg *config.Config, log *slog.Logger, concurrency int) (transport.Transport, error) {
	httpClient := httpc.New(time.Duration(cfg.HTTP.TimeoutSeconds) * time.Second)

	return transport.Build(transport.Options{
		HTTPClient:  httpClient,
		Retries:     cfg.HTTP.Retries,
		Concurrency: concurrency,
		Logger:      log,
	})
}
