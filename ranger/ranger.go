package ranger

import (
	"context"
	"errors"
	"fmt"
	"net/http"
	"os"
	"os/signal"
	"syscall"
	"time"

	// TODO(dlk): configurable env files
	_ "github.com/joho/godotenv/autoload"
	"github.com/xy-planning-network/publish"
	"github.com/xy-planning-network/publish/http/resp"
	"github.com/xy-planning-network/publish/http/router"
	"github.com/xy-planning-network/publish/logger"
)

const shutdownTimeout = 5 * time.Second

// A Ranger manages and exposes all components of a publisher to one another.
type Ranger struct {
	*router.Router

	ctx      context.Context
	cancel   context.CancelFunc
	doer     *resp.Responder
	env      publish.Environment
	l        logger.Logger
	settings resp.Settings
	site     resp.Site
	srv      *http.Server
}

// New constructs a Ranger from the provided options.
// Anything the options leave unset is configured from environment variables;
// cf. the package documentation.
func New(opts ...RangerOption) (*Ranger, error) {
	r := new(Ranger)
	for _, opt := range opts {
		if err := opt(r); err != nil {
			return nil, fmt.Errorf("%w: %s", ErrBadConfig, err)
		}
	}

	if err := r.defaults(); err != nil {
		return nil, fmt.Errorf("%w: %w", ErrBadConfig, err)
	}

	return r, nil
}

func (r *Ranger) EmitEnv() publish.Environment   { return r.env }
func (r *Ranger) EmitLogger() logger.Logger      { return r.l }
func (r *Ranger) EmitResponder() *resp.Responder { return r.doer }
func (r *Ranger) EmitServer() *http.Server       { return r.srv }
func (r *Ranger) EmitSettings() resp.Settings    { return r.settings }
func (r *Ranger) EmitSite() resp.Site            { return r.site }

// Guide begins the web server.
//
// These, and (*Ranger).Shutdown, stop Guide:
//
// - os.Interrupt
// - syscall.SIGHUP
// - syscall.SIGQUIT
// - syscall.SIGTERM
// - the context.Context passed in WithContext is done
func (r *Ranger) Guide() error {
	ch := make(chan os.Signal, 1)
	signal.Notify(ch, os.Interrupt, syscall.SIGHUP, syscall.SIGQUIT, syscall.SIGTERM)
	defer signal.Stop(ch)

	errCh := make(chan error, 1)
	go func() {
		r.l.Info(fmt.Sprintf("running web server at %s", r.srv.Addr), nil)
		if err := r.srv.ListenAndServe(); !errors.Is(err, http.ErrServerClosed) {
			errCh <- fmt.Errorf("could not listen: %w", err)
		}
	}()

	select {
	case s := <-ch:
		r.l.Info(fmt.Sprint("received shutdown signal: ", s), nil)
	case <-r.ctx.Done():
	case err := <-errCh:
		r.l.Error(err.Error(), nil)
		return err
	}

	return r.Shutdown()
}

// Shutdown shutdowns the web server.
func (r *Ranger) Shutdown() error {
	defer r.cancel()

	shutdownCtx, cancel := context.WithTimeout(context.Background(), shutdownTimeout)
	defer cancel()

	r.l.Info("shutting down web server", nil)
	if err := r.srv.Shutdown(shutdownCtx); err != nil && !errors.Is(err, http.ErrServerClosed) {
		return fmt.Errorf("could not shutdown: %w", err)
	}

	r.l.Info("web server shutdown successfully", nil)
	return nil
}
