package observability

import (
	"context"
	"errors"
	"net"
	"net/http"
	"net/http/pprof"
	"time"

	crerr "github.com/cockroachdb/errors"
	"github.com/riskibarqy/football-club/internal/config"
	"github.com/riskibarqy/football-club/internal/platform/logging"
)

const pprofReadHeaderTimeout = 5 * time.Second

// StartPprofServer binds the debug listener before returning, so a taken port
// fails startup instead of being logged later. The server's Addr is the bound
// address. It returns nil when pprof is disabled.
func StartPprofServer(cfg config.Config, logger *logging.Logger) (*http.Server, error) {
	if logger == nil {
		logger = logging.Default()
	}
	logger = logger.Named("pprof").With("service", cfg.ServiceName)

	if !cfg.PprofEnabled {
		logger.Info("pprof disabled", "reason", "PPROF_ENABLED=false")
		return nil, nil
	}

	ln, err := net.Listen("tcp", cfg.PprofAddr)
	if err != nil {
		return nil, crerr.Wrapf(err, "listen pprof on %s", cfg.PprofAddr)
	}

	srv := &http.Server{
		Addr:              ln.Addr().String(),
		Handler:           pprofMux(),
		ReadHeaderTimeout: pprofReadHeaderTimeout,
	}

	go func() {
		logger.Info("pprof server started", "addr", srv.Addr)
		if err := srv.Serve(ln); err != nil && !errors.Is(err, http.ErrServerClosed) {
			logger.Error("pprof server failed", "error", err)
		}
	}()

	return srv, nil
}

func pprofMux() *http.ServeMux {
	mux := http.NewServeMux()
	// Index also serves the named profiles (heap, goroutine, block, mutex).
	mux.HandleFunc("/debug/pprof/", pprof.Index)
	mux.HandleFunc("/debug/pprof/cmdline", pprof.Cmdline)
	mux.HandleFunc("/debug/pprof/profile", pprof.Profile)
	mux.HandleFunc("/debug/pprof/symbol", pprof.Symbol)
	mux.HandleFunc("/debug/pprof/trace", pprof.Trace)
	return mux
}

func StopPprofServer(srv *http.Server, logger *logging.Logger, timeout time.Duration) error {
	if srv == nil {
		return nil
	}
	if logger == nil {
		logger = logging.Default()
	}

	ctx, cancel := context.WithTimeout(context.Background(), timeout)
	defer cancel()

	if err := srv.Shutdown(ctx); err != nil {
		return crerr.Wrap(err, "shutdown pprof server")
	}
	logger.Named("pprof").Info("pprof server stopped", "addr", srv.Addr)
	return nil
}
