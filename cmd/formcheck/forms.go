package main

import (
	"fmt"
	"text/tabwriter"

	"github.com/spf13/cobra"

	"github.com/km-arc/go-formvalidation/framework/forms"
	"github.com/km-arc/go-formvalidation/framework/http/validation"
)

var formsCmd = &cobra.Command{
	Use:   "forms",
	Short: "List the form definitions in the forms directory",
	Args:  cobra.NoArgs,
	RunE: func(cmd *cobra.Command, args []string) error {
		reg, err := forms.LoadDir(formsDir)
		if err != nil {
			return err
		}
		tw := tabwriter.NewWriter(cmd.OutOrStdout(), 0, 4, 2, ' ', 0)
		fmt.Fprintln(tw, "NAME\tFIELDS\tSOURCE")
		for _, name := range reg.Names() {
			def, _ := reg.Get(name)
			fmt.Fprintf(tw, "%s\t%d\t%s\n", name, len(def.Fields), def.Source())
		}
		return tw.Flush()
	},
}

var rulesCmd = &cobra.Command{
	Use:   "rules",
	Short: "List the built-in validation rules",
	Args:  cobra.NoArgs,
	Run: func(cmd *cobra.Command, args []string) {
		for _, name := range validation.ValidRules() {
			fmt.Fprintln(cmd.OutOrStdout(), name)
		}
	},
}

func init() {
	rootCmd.AddCommand(formsCmd, rulesCmd)
}
