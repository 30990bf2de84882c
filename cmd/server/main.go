// @title           QRKeeper API
// @version         1.0
// @description     QR code generator backend.
// @description     Provides user authentication and per-user QR code history.

// @contact.name   Ivan Chernomyrdin
// @contact.url    https://github.com/IvanChernomyrdin

// @license.name  MIT
// @license.url   https://opensource.org/licenses/MIT

// @host      localhost:8080
// @BasePath  /api
// @schemes http https

// @securityDefinitions.apikey BearerAuth
// @in header
// @name Authorization
//
// Package main содержит точку входа серверного приложения qrkeeper.
//
// Пакет отвечает за инициализацию и жизненный цикл HTTP(S)-сервера, а именно:
//   - загрузку переменных окружения из файла .env (если он присутствует);
//   - загрузку конфигурации сервера (флаг -config или CONFIG_PATH);
//   - инициализацию подключения к базе данных и миграции;
//   - создание репозиториев, сервисов, middleware и HTTP-обработчиков;
//   - запуск HTTP или HTTPS сервера с заданными таймаутами;
//   - корректное (graceful) завершение работы по SIGINT, SIGTERM, SIGQUIT.
//
// Пакет не содержит бизнес-логики и не предназначен для unit-тестирования.
package main

import (
	"context"
	"crypto/tls"
	"errors"
	"flag"
	"fmt"
	"net/http"
	"os"
	"os/signal"
	"syscall"

	"github.com/joho/godotenv"
	"golang.org/x/sync/errgroup"

	"github.com/IvanChernomyrdin/go-qrkeeper/internal/server/api"
	"github.com/IvanChernomyrdin/go-qrkeeper/internal/server/config"
	"github.com/IvanChernomyrdin/go-qrkeeper/internal/server/crypto"
	h "github.com/IvanChernomyrdin/go-qrkeeper/internal/server/net/http"
	"github.com/IvanChernomyrdin/go-qrkeeper/internal/server/qr"
	"github.com/IvanChernomyrdin/go-qrkeeper/internal/server/repository"
	"github.com/IvanChernomyrdin/go-qrkeeper/internal/server/service"
	"github.com/IvanChernomyrdin/go-qrkeeper/internal/shared/logger"

	_ "github.com/IvanChernomyrdin/go-qrkeeper/swagger/docs"
)

func main() {
	bootLog := logger.NewHTTPLogger().Sugar()

	if err := godotenv.Load(); err != nil {
		bootLog.Warnf("no .env file loaded, error: %v", err)
	}

	defaultPath := os.Getenv("CONFIG_PATH")
	if defaultPath == "" {
		defaultPath = "./configs/server.yaml"
	}
	configPath := flag.String("config", defaultPath, "path to server config")
	flag.Parse()

	cfg, err := config.Load(*configPath)
	if err != nil {
		bootLog.Fatal(err)
	}

	httpLogger := logger.New(logger.Options{
		Level:       cfg.Log.Level,
		Format:      cfg.Log.Format,
		File:        cfg.Log.File,
		Development: cfg.Log.Development,
	})
	defer httpLogger.Sync()
	sugar := httpLogger.Sugar()

	ctx, stop := signal.NotifyContext(
		context.Background(),
		os.Interrupt,
		syscall.SIGTERM,
		syscall.SIGQUIT,
	)
	defer stop()

	// подключаем базу данных и применяем миграции
	db, err := config.OpenDB(ctx, cfg.DB, cfg.Migrations, httpLogger)
	if err != nil {
		sugar.Fatal(err)
	}
	// делаем отложенное закрытие бд
	defer db.Close()

	hasher, err := crypto.NewPasswordHasher(cfg.Password)
	if err != nil {
		sugar.Fatal(err)
	}

	// складываем репозитории
	repos := service.Repositories{
		Users:   repository.NewUsersRepository(db),
		QRCodes: repository.NewQRCodesRepository(db),
	}
	// создаём сервисы
	svc := service.NewServices(repos, hasher, qr.NewRenderer(cfg.QR), cfg)
	// создаём хандлер, verifier внутри берёт параметры токенов из AuthService
	handler := api.NewHandler(svc, httpLogger, cfg.IsProduction())
	// создаём роутер
	router := h.NewRouter(handler, cfg)

	addr := fmt.Sprintf("%s:%d", cfg.Server.Host, cfg.Server.Port)
	server := &http.Server{
		Addr:              addr,
		Handler:           router,
		ReadTimeout:       cfg.Server.ReadTimeout,
		ReadHeaderTimeout: cfg.Server.ReadHeaderTimeout,
		WriteTimeout:      cfg.Server.WriteTimeout,
		IdleTimeout:       cfg.Server.IdleTimeout,
		MaxHeaderBytes:    cfg.Server.MaxHeaderBytes,
	}
	if cfg.TLS.Enabled {
		server.TLSConfig = &tls.Config{MinVersion: tlsVersion(cfg.TLS.MinVersion)}
	}

	g, ctx := errgroup.WithContext(ctx)

	// запускаем сервер
	g.Go(func() error {
		var err error
		if cfg.TLS.Enabled {
			sugar.Infof("server started on https://%s", addr)
			err = server.ListenAndServeTLS(cfg.TLS.CertFile, cfg.TLS.KeyFile)
		} else {
			sugar.Infof("server started on http://%s", addr)
			err = server.ListenAndServe()
		}
		if err != nil && !errors.Is(err, http.ErrServerClosed) {
			return err
		}
		return nil
	})

	// graceful shutdown с таймаутом из конфига
	g.Go(func() error {
		<-ctx.Done()

		sugar.Info("shutdown signal received")

		shutdownCtx, cancel := context.WithTimeout(
			context.Background(),
			cfg.Server.ShutdownTimeout,
		)
		defer cancel()

		return server.Shutdown(shutdownCtx)
	})

	// ожидание и единая обработка ошибок
	if err := g.Wait(); err != nil {
		sugar.Errorf("server stopped with error: %v", err)
		return
	}
	sugar.Info("server gracefully stopped")
}

func tlsVersion(v string) uint16 {
	if v == "1.3" {
		return tls.VersionTLS13
	}
	return tls.VersionTLS12
}
