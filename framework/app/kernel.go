package app

import (
	"context"
	"errors"
	"fmt"
	"net/http"
	"time"

	"go.uber.org/zap"

	"github.com/km-arc/go-formvalidation/framework/config"
	"github.com/km-arc/go-formvalidation/framework/container"
	"github.com/km-arc/go-formvalidation/framework/forms"
	gohttp "github.com/km-arc/go-formvalidation/framework/http"
	"github.com/km-arc/go-formvalidation/framework/metrics"
	"github.com/km-arc/go-formvalidation/framework/providers"
	"github.com/km-arc/go-formvalidation/routing"
)

const shutdownTimeout = 10 * time.Second

// Application is the top-level application container.
// It embeds the IoC Container and ProviderRegistry so user code can
// call app.Singleton(), app.Instance(), app.Register() directly —
// exactly like $app in Laravel's bootstrap/app.php.
type Application struct {
	*container.Container
	Providers *container.ProviderRegistry
}

// New creates the application and registers the framework providers.
// Bindings can be overridden before Boot, e.g. app.Instance("config", cfg)
// in tests.
func New(envFiles ...string) *Application {
	c := container.New()
	registry := container.NewProviderRegistry(c)

	app := &Application{
		Container: c,
		Providers: registry,
	}

	// order matters for Boot: forms and metrics must exist before routes
	_ = registry.Register(&providers.ConfigServiceProvider{EnvFiles: envFiles})
	_ = registry.Register(&providers.LogServiceProvider{})
	_ = registry.Register(&providers.FormsServiceProvider{})
	_ = registry.Register(&providers.MetricsServiceProvider{})
	_ = registry.Register(&providers.RoutingServiceProvider{})

	return app
}

// Register adds a ServiceProvider to the application.
func (a *Application) Register(provider container.ServiceProvider) error {
	return a.Providers.Register(provider)
}

// Boot runs the Boot() phase on all providers.
func (a *Application) Boot() error {
	return a.Providers.Boot()
}

// Config resolves *config.Config from the container.
func (a *Application) Config() *config.Config {
	return container.Resolve[*config.Config](a.Container, providers.Config)
}

// Logger resolves the application logger.
func (a *Application) Logger() *zap.Logger {
	return container.Resolve[*zap.Logger](a.Container, providers.Log)
}

// Forms resolves the form registry. Only available after Boot.
func (a *Application) Forms() *forms.Registry {
	return container.Resolve[*forms.Registry](a.Container, providers.Forms)
}

// Metrics returns the collector, or nil when metrics are disabled.
func (a *Application) Metrics() *metrics.Collector {
	if !a.Bound(providers.Metrics) {
		return nil
	}
	return container.Resolve[*metrics.Collector](a.Container, providers.Metrics)
}

// Router resolves *routing.Router from the container.
func (a *Application) Router() *routing.Router {
	return container.Resolve[*routing.Router](a.Container, providers.Router)
}

// Run boots the application (if needed) and serves HTTP until ctx is
// cancelled, then shuts down gracefully and closes the log sinks.
func (a *Application) Run(ctx context.Context) error {
	if !a.Providers.Booted() {
		if err := a.Boot(); err != nil {
			return err
		}
	}
	defer a.Close()

	cfg := a.Config()
	log := a.Logger()
	srv := &http.Server{
		Addr:              ":" + cfg.App.Port,
		Handler:           a.Router(),
		ReadHeaderTimeout: 10 * time.Second,
	}

	log.Debug("container ready", zap.Strings("bindings", a.Bindings()))

	errCh := make(chan error, 1)
	go func() {
		log.Info("server started",
			zap.String("addr", "http://localhost"+srv.Addr),
			zap.String("env", cfg.App.Env))
		errCh <- srv.ListenAndServe()
	}()

	select {
	case err := <-errCh:
		if errors.Is(err, http.ErrServerClosed) {
			return nil
		}
		return fmt.Errorf("server error: %w", err)
	case <-ctx.Done():
	}

	log.Info("shutting down")
	shutdownCtx, cancel := context.WithTimeout(context.Background(), shutdownTimeout)
	defer cancel()
	return srv.Shutdown(shutdownCtx)
}

// Close runs every function tagged "shutdown".
func (a *Application) Close() error {
	var errs []error
	for _, fn := range a.Tagged(providers.Shutdown) {
		if closeFn, ok := fn.(func() error); ok {
			errs = append(errs, closeFn())
		}
	}
	return errors.Join(errs...)
}

// Controller is an embeddable base for HTTP controllers.
type Controller struct{}

func (c *Controller) Request(r *http.Request) *gohttp.Request {
	return gohttp.NewRequest(r)
}
func (c *Controller) Response(w http.ResponseWriter) *gohttp.Response {
	return gohttp.NewResponse(w)
}
