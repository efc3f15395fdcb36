package main

import (
	"encoding/json"
	"errors"
	"fmt"
	"io"
	"os"

	"github.com/spf13/cobra"
	"gopkg.in/yaml.v3"

	"github.com/km-arc/go-formvalidation/framework/forms"
	"github.com/km-arc/go-formvalidation/framework/http/validation"
)

// errInvalid makes the process exit non-zero when a submission fails.
var errInvalid = errors.New("submission is invalid")

var validateFlags struct {
	input  string
	format string
}

var validateCmd = &cobra.Command{
	Use:   "validate <form>",
	Short: "Validate a submission against a form definition",
	Long: `Validate a JSON or YAML submission against the named form.

The submission is read from --input, or from stdin when --input is empty
or "-". The result lists the failing rule per field and the values after
invalid fields have been reset to their defaults.

Examples:
  formcheck validate signup --input submission.json
  formcheck validate contact --format text < message.yaml`,
	Args: cobra.ExactArgs(1),
	RunE: runValidate,
}

func init() {
	rootCmd.AddCommand(validateCmd)

	validateCmd.Flags().StringVarP(&validateFlags.input, "input", "i", "", "submission file (JSON or YAML), - for stdin")
	validateCmd.Flags().StringVar(&validateFlags.format, "format", "json", "output format: json, text")
}

type result struct {
	Valid  bool                     `json:"valid"`
	Errors []validation.RuleFailure `json:"errors"`
	Values map[string]any           `json:"values"`
}

func runValidate(cmd *cobra.Command, args []string) error {
	reg, err := forms.LoadDir(formsDir)
	if err != nil {
		return err
	}
	def, err := reg.Get(args[0])
	if err != nil {
		return err
	}

	form, err := readSubmission(cmd.InOrStdin(), validateFlags.input)
	if err != nil {
		return err
	}

	opts, closer := validatorOptions(cmd)
	defer closer()

	v := def.Run(form, opts...)
	res := result{
		Valid:  !v.HasErrors(),
		Errors: v.Failures(),
		Values: v.Form().Strings(),
	}

	if err := render(cmd.OutOrStdout(), validateFlags.format, res); err != nil {
		return err
	}
	if !res.Valid {
		return errInvalid
	}
	return nil
}

// readSubmission decodes a JSON or YAML object. YAML is a superset of
// JSON, so one decoder serves both.
func readSubmission(stdin io.Reader, path string) (validation.Form, error) {
	var (
		data []byte
		err  error
	)
	if path == "" || path == "-" {
		data, err = io.ReadAll(stdin)
	} else {
		data, err = os.ReadFile(path)
	}
	if err != nil {
		return nil, fmt.Errorf("read submission: %w", err)
	}

	var m map[string]any
	if err := yaml.Unmarshal(data, &m); err != nil {
		return nil, fmt.Errorf("decode submission: %w", err)
	}
	return validation.FromMap(m), nil
}

func render(w io.Writer, format string, res result) error {
	switch format {
	case "json":
		enc := json.NewEncoder(w)
		enc.SetIndent("", "  ")
		return enc.Encode(res)
	case "text":
		if res.Valid {
			_, err := fmt.Fprintln(w, "valid")
			return err
		}
		for _, f := range res.Errors {
			if _, err := fmt.Fprintf(w, "%s [%s] %s\n", f.Field, f.Rule, validation.Message(f)); err != nil {
				return err
			}
		}
		return nil
	default:
		return fmt.Errorf("unsupported format %q (want json or text)", format)
	}
}
