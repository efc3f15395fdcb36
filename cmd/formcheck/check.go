package main

import (
	"fmt"

	"github.com/spf13/cobra"

	"github.com/km-arc/go-formvalidation/framework/http/validation"
)

var checkFlags struct {
	regex string
}

var checkCmd = &cobra.Command{
	Use:   "check <rules> [value...]",
	Short: "Try a rule expression on a value",
	Long: `Apply a bulk rule expression to one value. More than one value is
checked as a multi-value field; no value checks a missing field.

Examples:
  formcheck check "required|email" ana@example.com
  formcheck check "count:1-3|chars:alpha" go web api
  formcheck check "" AB-12 --regex '/^[a-z]{2}-\d+$/i'`,
	Args: cobra.MinimumNArgs(1),
	RunE: func(cmd *cobra.Command, args []string) error {
		form := validation.Form{}
		switch values := args[1:]; len(values) {
		case 0:
		case 1:
			form["value"] = validation.Scalar(values[0])
		default:
			form["value"] = validation.Sequence(values...)
		}

		opts, closer := validatorOptions(cmd)
		defer closer()

		v := validation.New(form, opts...)
		if args[0] != "" && !v.AddRules("value", args[0]) {
			return fmt.Errorf("invalid rule expression %q", args[0])
		}
		if checkFlags.regex != "" && !v.AddRegexRule("value", checkFlags.regex) {
			return fmt.Errorf("invalid pattern %q", checkFlags.regex)
		}
		v.Validate(false, nil)

		if rule := v.Error("value"); rule != "" {
			fmt.Fprintf(cmd.OutOrStdout(), "fails %s\n", rule)
			return errInvalid
		}
		fmt.Fprintln(cmd.OutOrStdout(), "ok")
		return nil
	},
}

func init() {
	rootCmd.AddCommand(checkCmd)

	checkCmd.Flags().StringVar(&checkFlags.regex, "regex", "", "additional regex rule")
}
