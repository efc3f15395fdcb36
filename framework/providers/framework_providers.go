package providers

import (
	"errors"
	"io"
	"io/fs"

	"go.uber.org/zap"

	"github.com/km-arc/go-formvalidation/framework/config"
	"github.com/km-arc/go-formvalidation/framework/container"
	"github.com/km-arc/go-formvalidation/framework/forms"
	applog "github.com/km-arc/go-formvalidation/framework/log"
	"github.com/km-arc/go-formvalidation/framework/metrics"
	"github.com/km-arc/go-formvalidation/routing"
)

// Container keys bound by the framework providers.
const (
	Config    = "config"
	Log       = "log"
	LogCloser = "log.closer"
	Forms     = "forms"
	Metrics   = "metrics"
	Router    = "router"

	// Shutdown tags functions of type func() error run by Application.Close.
	Shutdown = "shutdown"
)

// ── ConfigServiceProvider ─────────────────────────────────────────────────────

// ConfigServiceProvider loads the application configuration from .env and
// binds it into the container as "config".
//
// Laravel equivalent:
//
//	// Illuminate\Foundation\Bootstrap\LoadConfiguration
//	$app->singleton('config', fn() => new Repository($items));
type ConfigServiceProvider struct {
	container.BaseProvider
	EnvFiles []string
}

func (p *ConfigServiceProvider) Register(app *container.Container) {
	envFiles := p.EnvFiles
	app.Singleton(Config, func(c *container.Container) any {
		return config.Load(envFiles...)
	})
}

// ── LogServiceProvider ────────────────────────────────────────────────────────

// LogServiceProvider binds the zap logger as "log" and registers its
// closer under the "shutdown" tag.
type LogServiceProvider struct {
	container.BaseProvider
	Console io.Writer // defaults to stderr
}

func (p *LogServiceProvider) Register(app *container.Container) {
	console := p.Console
	var closer func() error

	app.Singleton(Log, func(c *container.Container) any {
		cfg := container.Resolve[*config.Config](c, Config)
		logger, closeFn := applog.New(cfg.Log, console)
		closer = closeFn
		return logger.With(zap.String("app", cfg.App.Name), zap.String("env", cfg.App.Env))
	})
	app.Bind(LogCloser, func(c *container.Container) any {
		if closer == nil {
			return func() error { return nil }
		}
		return closer
	})
	app.Tag([]string{LogCloser}, Shutdown)
}

// ── FormsServiceProvider ──────────────────────────────────────────────────────

// FormsServiceProvider loads every definition in FORMS_DIR and binds the
// registry as "forms". A missing directory yields an empty registry; a
// malformed definition fails the boot.
type FormsServiceProvider struct {
	container.BaseProvider
}

func (p *FormsServiceProvider) Register(app *container.Container) {}

func (p *FormsServiceProvider) Boot(app *container.Container) error {
	cfg := container.Resolve[*config.Config](app, Config)
	log := container.Resolve[*zap.Logger](app, Log)

	reg, err := forms.LoadDir(cfg.Forms.Dir)
	switch {
	case errors.Is(err, fs.ErrNotExist):
		log.Warn("forms directory not found", zap.String("dir", cfg.Forms.Dir))
		reg = forms.NewRegistry()
	case err != nil:
		return err
	default:
		log.Info("forms loaded", zap.String("dir", cfg.Forms.Dir), zap.Strings("forms", reg.Names()))
	}
	app.Instance(Forms, reg)
	return nil
}

// ── MetricsServiceProvider ────────────────────────────────────────────────────

// MetricsServiceProvider binds the Prometheus collector as "metrics" when
// METRICS_ENABLED is true.
type MetricsServiceProvider struct {
	container.BaseProvider
}

func (p *MetricsServiceProvider) Register(app *container.Container) {}

func (p *MetricsServiceProvider) Boot(app *container.Container) error {
	cfg := container.Resolve[*config.Config](app, Config)
	if cfg.Metrics.Enabled {
		app.Instance(Metrics, metrics.New(cfg.Metrics.Namespace))
	}
	return nil
}

// ── RoutingServiceProvider ────────────────────────────────────────────────────

// RoutingServiceProvider registers the HTTP router.
//
// Laravel equivalent:
//
//	// Illuminate\Routing\RoutingServiceProvider
//	$app->singleton('router', fn($app) => new Router($app['events'], $app));
type RoutingServiceProvider struct {
	container.BaseProvider
}

func (p *RoutingServiceProvider) Register(app *container.Container) {
	app.Singleton(Router, func(c *container.Container) any {
		return routing.New(container.Resolve[*zap.Logger](c, Log))
	})
}
