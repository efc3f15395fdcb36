package app

import (
	"net/http"

	"go.uber.org/zap"

	fwapp "github.com/km-arc/go-formvalidation/framework/app"
	"github.com/km-arc/go-formvalidation/framework/forms"
	"github.com/km-arc/go-formvalidation/framework/http/validation"
	"github.com/km-arc/go-formvalidation/framework/metrics"
	"github.com/km-arc/go-formvalidation/routing"
)

// FormController serves the loaded form definitions over HTTP.
type FormController struct {
	fwapp.Controller

	Forms   *forms.Registry
	Metrics *metrics.Collector // nil when disabled
	Log     *zap.Logger
	Options []validation.Option
}

// Index lists the loaded form names.
//
//	GET /api/forms → {"data": ["contact", "signup"]}
func (c *FormController) Index(w http.ResponseWriter, r *http.Request) {
	c.Response(w).Success(c.Forms.Names())
}

// Show returns one definition.
//
//	GET /api/forms/{form}
func (c *FormController) Show(w http.ResponseWriter, r *http.Request) {
	res := c.Response(w)
	def, err := c.Forms.Get(c.Request(r).RouteParam("form"))
	if err != nil {
		res.NotFound(err.Error())
		return
	}
	res.Success(def)
}

// Validate runs a submission through the named form.
//
//	POST /api/forms/{form} → 200 {"data": values} | 422 {"errors": ..., "values": ...}
func (c *FormController) Validate(w http.ResponseWriter, r *http.Request) {
	req, res := c.Request(r), c.Response(w)
	name := req.RouteParam("form")

	def, err := c.Forms.Get(name)
	if err != nil {
		res.NotFound(err.Error())
		return
	}

	form, err := req.Form()
	if err != nil {
		res.Error(http.StatusBadRequest, err.Error())
		return
	}

	v := def.Run(form, c.Options...)
	if c.Metrics != nil {
		c.Metrics.Observe(name, v)
	}

	failures := v.Failures()
	c.Log.Info("form validated",
		zap.String("form", name),
		zap.String("request_id", routing.RequestIDFrom(r.Context())),
		zap.Bool("valid", len(failures) == 0),
		zap.Any("failures", failures),
	)

	if len(failures) > 0 {
		res.ValidationError(v)
		return
	}
	res.Success(v.Form().Strings())
}

// Rules lists the built-in rule names accepted by bulk expressions.
//
//	GET /api/rules
func (c *FormController) Rules(w http.ResponseWriter, r *http.Request) {
	c.Response(w).Success(validation.ValidRules())
}
