// Package app wires the form validation endpoints into the application.
package app

import (
	"github.com/go-chi/chi/v5/middleware"
	"go.uber.org/zap"

	"github.com/km-arc/go-formvalidation/framework/config"
	"github.com/km-arc/go-formvalidation/framework/container"
	"github.com/km-arc/go-formvalidation/framework/forms"
	"github.com/km-arc/go-formvalidation/framework/http/validation"
	"github.com/km-arc/go-formvalidation/framework/metrics"
	"github.com/km-arc/go-formvalidation/framework/providers"
	"github.com/km-arc/go-formvalidation/routing"
)

// RouteServiceProvider registers the HTTP routes. Register it after the
// framework providers so forms and metrics are bound when it boots.
//
// Laravel equivalent: App\Providers\RouteServiceProvider
type RouteServiceProvider struct {
	container.BaseProvider
}

func (p *RouteServiceProvider) Register(app *container.Container) {}

func (p *RouteServiceProvider) Boot(app *container.Container) error {
	cfg := container.Resolve[*config.Config](app, providers.Config)
	log := container.Resolve[*zap.Logger](app, providers.Log)
	m, _ := container.TryResolve[*metrics.Collector](app, providers.Metrics)

	ctrl := &FormController{
		Forms:   container.Resolve[*forms.Registry](app, providers.Forms),
		Metrics: m,
		Log:     log,
		Options: []validation.Option{
			validation.WithCharset(cfg.Validation.Charset),
			validation.WithTrim(cfg.Validation.Trim),
			validation.WithLogger(log),
			validation.WithDebug(cfg.App.Debug && !cfg.App.IsProduction()),
		},
	}

	r := container.Resolve[*routing.Router](app, providers.Router)
	r.Prefix("/api", func(api *routing.Router) {
		api.Get("/forms", ctrl.Index)
		api.Get("/forms/{form}", ctrl.Show)
		api.Get("/rules", ctrl.Rules)
		api.Group(func(g *routing.Router) {
			g.Middleware(middleware.AllowContentType(submissionTypes...))
			g.Post("/forms/{form}", ctrl.Validate)
		})
	})
	if m != nil {
		r.Handle("/metrics", m.Handler())
	}
	return nil
}

// submissionTypes are the bodies Request.Form understands.
var submissionTypes = []string{
	"application/json",
	"application/x-www-form-urlencoded",
	"multipart/form-data",
}
