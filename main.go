package main

import (
	"context"
	"fmt"
	"os"
	"os/signal"
	"syscall"

	"github.com/km-arc/go-formvalidation/app"
	fwapp "github.com/km-arc/go-formvalidation/framework/app"
)

func main() {
	application := fwapp.New() // loads .env automatically

	// ── Application routes ───────────────────────────────────────────────────
	//
	//	GET  /api/forms           registered form names
	//	GET  /api/forms/{form}    one definition
	//	POST /api/forms/{form}    validate a submission
	//	GET  /api/rules           built-in rule names
	//	GET  /metrics             Prometheus (METRICS_ENABLED)
	if err := application.Register(&app.RouteServiceProvider{}); err != nil {
		fail(err)
	}

	ctx, stop := signal.NotifyContext(context.Background(), os.Interrupt, syscall.SIGTERM)
	defer stop()

	if err := application.Run(ctx); err != nil {
		fail(err)
	}
}

func fail(err error) {
	fmt.Fprintln(os.Stderr, "error:", err)
	os.Exit(1)
}
