package cmd

import (
	"github.com/spf13/cobra"
)

var cfgFile string

var rootCmd = &cobra.Command{
	Use:   "emi",
	Short: "EMI and loan calculator",
	Long: `emi solves the reducing-balance loan relationship between principal,
monthly installment (EMI), annual interest rate and tenure.

Given any three of the four it computes the fourth, together with the
total payment, total interest and principal/interest split. It runs either
as a one-shot command or as an HTTP API.`,
	SilenceUsage:  true,
	SilenceErrors: true,
}

func Execute() error {
	if err := rootCmd.Execute(); err != nil {
		rootCmd.PrintErrln("Error:", err)
		return err
	}
	return nil
}

func init() {
	rootCmd.PersistentFlags().StringVar(&cfgFile, "config", "", "config file (yaml, toml or json; default: built-in defaults and EMI_* env)")
}
