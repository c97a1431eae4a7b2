package app

import (
	"context"
	"errors"
	"net/http"
	"os"
	"os/signal"
	"syscall"
	"time"

	"github.com/go-chi/chi/v5"
	"github.com/jimlawless/whereami"
	config "github.com/quickbite/go-backend/internal/cfg"
	v1Http "github.com/quickbite/go-backend/internal/delivery/v1/http"
	"github.com/quickbite/go-backend/internal/repository/pgdb"
	pgdbConv "github.com/quickbite/go-backend/internal/repository/pgdb/converter/generated"
	"github.com/quickbite/go-backend/internal/usecase"
	"github.com/quickbite/go-backend/pkg/closer"
	"github.com/quickbite/go-backend/pkg/e"
	"github.com/quickbite/go-backend/pkg/logger"
	"github.com/quickbite/go-backend/pkg/postgres"
)

const shutdownTimeout = 10 * time.Second

// Run собирает зависимости приложения и блокируется до сигнала завершения.
func Run(cfg *config.Config, logger logger.Logger) error {
	db, err := initPGDB(logger, cfg)
	if err != nil {
		logger.Errorf(err, "failed to initialize database")
		return e.Wrap(whereami.WhereAmI(), err)
	}

	miConv := pgdbConv.NewMenuItemConverterImpl()
	menuItemRepo := pgdb.NewMenuItemRepo(db.Pool, miConv)
	menuItemUC := usecase.NewMenuItemUC(menuItemRepo, db.Pool, logger)

	r := chi.NewRouter()
	router := v1Http.NewRouter(r, logger)
	router.Init(menuItemUC, healthHandler(db))

	httpSrv := v1Http.NewServer(r, cfg.Http)

	cl := closer.NewCloser()
	cl.Add(func(ctx context.Context) error {
		db.Close()
		return nil
	})
	cl.Add(httpSrv.Stop)

	errCh := make(chan error, 1)
	go func() {
		logger.Infof("HTTP server started on port %s", cfg.Http.Port)
		if err := httpSrv.Run(); err != nil && !errors.Is(err, http.ErrServerClosed) {
			logger.Errorf(err, "HTTP server failed")
			errCh <- err
		}
	}()

	shutdown := make(chan os.Signal, 1)
	signal.Notify(shutdown, os.Interrupt, syscall.SIGTERM)

	var appErr error
	select {
	case appErr = <-errCh:
		logger.Errorf(appErr, "HTTP server fatal error")
	case <-shutdown:
		logger.Infof("Received shutdown signal, stopping gracefully...")
	}

	shutdownCtx, shutdownCancel := context.WithTimeout(context.Background(), shutdownTimeout)
	defer shutdownCancel()

	if err := cl.Close(shutdownCtx); err != nil {
		logger.Warnf("shutdown finished with errors: %v", err)
	} else {
		logger.Infof("Application shutdown complete")
	}

	return appErr
}

// healthHandler отвечает 200, пока база доступна.
func healthHandler(db *postgres.PgDatabase) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		ctx, cancel := context.WithTimeout(r.Context(), 2*time.Second)
		defer cancel()

		if err := db.Ping(ctx); err != nil {
			w.WriteHeader(http.StatusServiceUnavailable)
			return
		}

		w.WriteHeader(http.StatusOK)
	}
}

func initPGDB(logger logger.Logger, cfg *config.Config) (*postgres.PgDatabase, error) {
	db, err := postgres.Connect(cfg.Db)
	if err != nil {
		logger.Errorf(err, "failed to connect to database")
		return nil, e.Wrap(whereami.WhereAmI(), err)
	}

	if err := db.RunMigrations(logger); err != nil {
		logger.Errorf(err, "failed to run migrations")
		return nil, e.Wrap(whereami.WhereAmI(), err)
	}

	return db, nil
}
