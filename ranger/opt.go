package ranger

import (
	"context"
	"errors"
	"net/http"

	"github.com/xy-planning-network/publish"
	"github.com/xy-planning-network/publish/http/resp"
	"github.com/xy-planning-network/publish/logger"
)

// A RangerOption configures a *Ranger under construction.
type RangerOption func(rng *Ranger) error

// WithContext ties the lifetime of the publisher to ctx.
func WithContext(ctx context.Context) RangerOption {
	return func(rng *Ranger) error {
		if ctx == nil {
			return errors.New("nil context")
		}

		rng.ctx = ctx
		return nil
	}
}

// WithEnv sets the Environment, instead of reading it from ENVIRONMENT.
func WithEnv(env publish.Environment) RangerOption {
	return func(rng *Ranger) error {
		if err := env.Valid(); err != nil {
			return err
		}

		rng.env = env
		return nil
	}
}

// WithLogger exposes the provided logger.Logger to the publisher.
func WithLogger(l logger.Logger) RangerOption {
	return func(rng *Ranger) error {
		rng.l = l
		return nil
	}
}

// WithResponder exposes the *resp.Responder to the publisher.
func WithResponder(d *resp.Responder) RangerOption {
	return func(rng *Ranger) error {
		rng.doer = d
		return nil
	}
}

// WithServer sets the *http.Server the publisher listens with.
// The Ranger replaces its Handler.
func WithServer(s *http.Server) RangerOption {
	return func(rng *Ranger) error {
		rng.srv = s
		return nil
	}
}

// WithSettings sets the resp.Settings, instead of reading them from PUBLISH_BASE_PATH.
func WithSettings(s resp.Settings) RangerOption {
	return func(rng *Ranger) error {
		rng.settings = s
		return nil
	}
}

// WithSite sets the resp.Site, instead of reading it from PUBLISH_THEME.
func WithSite(s resp.Site) RangerOption {
	return func(rng *Ranger) error {
		rng.site = s
		return nil
	}
}
