package main

import (
	"fmt"
	"log/slog"
	"os"

	"github.com/DRSN-tech/storefront/internal/app"
	config "github.com/DRSN-tech/storefront/internal/cfg"
	"github.com/DRSN-tech/storefront/pkg/logger"
)

//	@title			Storefront API
//	@version		1.0
//	@description	Каталог, корзина, оформление и отслеживание заказов.
//	@BasePath		/api/v1
func main() {
	log, sync, err := newLogger(config.LoadLogCfg())
	if err != nil {
		fmt.Fprintf(os.Stderr, "failed to init logger: %v\n", err)
		os.Exit(1)
	}
	defer sync()

	cfg, err := config.Load(log)
	if err != nil {
		log.Errorf(err, "failed to load config")
		os.Exit(1)
	}

	application, err := app.NewApp(cfg, log)
	if err != nil {
		log.Errorf(err, "failed to initialize app")
		os.Exit(1)
	}

	if err := application.Run(); err != nil {
		sync()
		os.Exit(1)
	}
}

// newLogger выбирает реализацию логгера по LOG_BACKEND.
func newLogger(cfg *config.LogCfg) (logger.Logger, func(), error) {
	switch cfg.Backend {
	case "zap":
		l, err := logger.NewZapLoggerWithLevel(cfg.Level)
		if err != nil {
			return nil, nil, err
		}
		return l, func() { _ = l.Sync() }, nil
	case "slog", "":
		var level slog.Level
		if err := level.UnmarshalText([]byte(cfg.Level)); err != nil {
			return nil, nil, err
		}
		return logger.NewSlogLoggerWithLevel(level), func() {}, nil
	default:
		return nil, nil, fmt.Errorf("unknown LOG_BACKEND %q", cfg.Backend)
	}
}
