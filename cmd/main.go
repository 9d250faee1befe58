package main

import (
	"context"
	"flag"
	"fmt"
	"log"
	"os"
	"os/signal"
	"syscall"

	"go.uber.org/zap"

	"github.com/chilly266futon/futuresBot/internal/clients"
	"github.com/chilly266futon/futuresBot/internal/config"
	"github.com/chilly266futon/futuresBot/internal/eventlog"
	"github.com/chilly266futon/futuresBot/internal/formatter"
	"github.com/chilly266futon/futuresBot/internal/logger"
	"github.com/chilly266futon/futuresBot/internal/service"
	"github.com/chilly266futon/futuresBot/internal/storage"
	"github.com/chilly266futon/futuresBot/internal/transport/cli"
	"github.com/chilly266futon/futuresBot/internal/transport/web"
)

const (
	modeCLI = "cli"
	modeWeb = "web"
)

func main() {
	// Парсинг флагов
	configPath := flag.String("config", "configs/config.yaml", "Path to config file")
	mode := flag.String("mode", modeCLI, "Shell to start: cli or web")
	flag.Parse()

	if *mode != modeCLI && *mode != modeWeb {
		log.Fatalf("unknown mode %q, expected %s or %s", *mode, modeCLI, modeWeb)
	}

	if err := config.LoadDotEnv(); err != nil {
		log.Fatalf("failed to load .env: %v", err)
	}

	cfg := config.MustLoad(*configPath)

	l, err := logger.New(cfg.Logger)
	if err != nil {
		log.Fatalf("failed to create logger: %v", err)
	}
	defer l.Sync()

	l.Info("starting futures bot",
		zap.String("mode", *mode),
		zap.String("config", *configPath),
		zap.String("base_url", cfg.Exchange.BaseURL),
	)

	if err := run(cfg, *mode, l); err != nil {
		fmt.Fprintln(os.Stderr, formatter.Error(err).String())
		l.Error("futures bot stopped", zap.Error(err))
		l.Sync()
		os.Exit(1)
	}
}

func run(cfg *config.Config, mode string, l *zap.Logger) error {
	creds, err := config.LoadCredentials(os.Getenv)
	if err != nil {
		return err
	}

	events := eventlog.New(l)

	gateway, err := clients.NewFuturesGateway(clients.Config{
		BaseURL:    cfg.Exchange.BaseURL,
		RecvWindow: cfg.Exchange.RecvWindow,
	}, creds, events, l)
	if err != nil {
		return err
	}

	svc := service.NewService(gateway, storage.NewSymbolStorage(), events, l, service.Options{
		VerifySymbols: cfg.Exchange.SymbolCheckEnabled(),
	})

	ctx, stop := signal.NotifyContext(context.Background(), os.Interrupt, syscall.SIGTERM)
	defer stop()

	switch mode {
	case modeWeb:
		deps := web.RouterDeps{
			Handler: web.NewHandler(svc, l),
			Logger:  l,
		}
		if cfg.RateLimit.Enabled {
			deps.Limiter = web.NewClientRateLimiter(cfg.RateLimit.RequestsPerSecond, cfg.RateLimit.Burst)
			l.Info("rate limiting enabled",
				zap.Float64("rps", cfg.RateLimit.RequestsPerSecond),
				zap.Int("burst", cfg.RateLimit.Burst),
			)
		}

		server := web.NewServer(web.ServerConfig{
			Addr:            cfg.Web.Addr(),
			ShutdownTimeout: cfg.Web.ShutdownTimeout,
		}, web.NewRouter(deps), l)
		return server.Run(ctx)

	default:
		return cli.NewShell(svc, os.Stdin, os.Stdout, l).Run(ctx)
	}
}
