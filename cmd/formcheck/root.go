package main

import (
	"fmt"
	"os"

	"github.com/spf13/cobra"
	"go.uber.org/zap"

	"github.com/km-arc/go-formvalidation/framework/config"
	"github.com/km-arc/go-formvalidation/framework/http/validation"
	applog "github.com/km-arc/go-formvalidation/framework/log"
)

var (
	// Global flags
	formsDir string
	charset  string
	noTrim   bool
	verbose  bool
)

var rootCmd = &cobra.Command{
	Use:   "formcheck",
	Short: "Validate form submissions against declarative form definitions",
	Long: `Formcheck runs submissions through the same rule engine and form
definitions as the HTTP service.

Form definitions are YAML or TOML files in the forms directory (FORMS_DIR,
./forms by default). Submissions are JSON or YAML objects whose values are
strings, numbers, booleans or lists of those.`,
	SilenceUsage:  true,
	SilenceErrors: true,
}

// Execute runs the root command.
func Execute() {
	if err := rootCmd.Execute(); err != nil {
		fmt.Fprintln(os.Stderr, err)
		os.Exit(1)
	}
}

func init() {
	cfg := config.Load()

	rootCmd.PersistentFlags().StringVarP(&formsDir, "forms", "f", cfg.Forms.Dir, "directory of form definitions")
	rootCmd.PersistentFlags().StringVar(&charset, "charset", cfg.Validation.Charset, "charset used by the length rule")
	rootCmd.PersistentFlags().BoolVar(&noTrim, "no-trim", !cfg.Validation.Trim, "do not trim whitespace from values")
	rootCmd.PersistentFlags().BoolVarP(&verbose, "verbose", "v", false, "log rule configuration mistakes to stderr")
}

// validatorOptions turns the global flags into validator options. The
// returned function flushes the logger.
func validatorOptions(cmd *cobra.Command) ([]validation.Option, func() error) {
	opts := []validation.Option{
		validation.WithCharset(charset),
		validation.WithTrim(!noTrim),
	}
	if !verbose {
		return opts, func() error { return nil }
	}
	log, closer := applog.New(config.LogConfig{Level: "debug"}, cmd.ErrOrStderr())
	opts = append(opts, validation.WithLogger(log.With(zap.String("cmd", cmd.Name()))), validation.WithDebug(true))
	return opts, closer
}
