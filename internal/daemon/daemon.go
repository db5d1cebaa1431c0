package daemon

import (
	"context"
	"errors"
	"net/http"
	"time"

	"pinboard/internal/logging"
	"pinboard/internal/store"
)

type Daemon struct {
	addr    string
	token   string
	version string
	notes   store.NoteStore
	logger  logging.Logger
	server  *http.Server
}

func New(addr, token, version string, notes store.NoteStore, logger logging.Logger) *Daemon {
	if logger == nil {
		logger = logging.Nop()
	}
	return &Daemon{
		addr:    addr,
		token:   token,
		version: version,
		notes:   notes,
		logger:  logger,
	}
}

func (d *Daemon) Run(ctx context.Context) error {
	api := &API{
		Version: d.version,
		Notes:   d.notes,
		Logger:  d.logger,
	}

	handler := LoggingMiddleware(d.logger, TokenAuthMiddleware(d.token, api.Router()))
	d.server = &http.Server{
		Addr:    d.addr,
		Handler: handler,
	}

	errCh := make(chan error, 1)
	go func() {
		d.logger.Info("daemon_listening", logging.F("addr", d.addr))
		errCh <- d.server.ListenAndServe()
	}()

	select {
	case <-ctx.Done():
		shutdownCtx, cancel := context.WithTimeout(context.Background(), 5*time.Second)
		defer cancel()
		if err := d.server.Shutdown(shutdownCtx); err != nil {
			return err
		}
		return nil
	case err := <-errCh:
		if errors.Is(err, http.ErrServerClosed) {
			return nil
		}
		return err
	}
}
