package cmd

import (
	"encoding/json"
	"errors"
	"fmt"
	"io"
	"text/tabwriter"

	"github.com/spf13/cobra"
	"go.uber.org/zap"

	"emi-engine/domain"
	"emi-engine/repository"
	"emi-engine/service"
)

var (
	calcMode      string
	calcPrincipal float64
	calcEMI       float64
	calcRate      float64
	calcTenure    float64
	calcJSON      bool
)

var calcCmd = &cobra.Command{
	Use:   "calc",
	Short: "Solve a loan for one unknown",
	Long: `Solves for the quantity named by --mode using the other three:

  emi        needs --principal --rate --tenure
  principal  needs --emi --rate --tenure
  tenure     needs --principal --emi --rate
  rate       needs --principal --emi --tenure`,
	Example: `  emi calc --mode emi --principal 500000 --rate 12 --tenure 24
  emi calc --mode rate --principal 500000 --emi 23536.74 --tenure 24 --json`,
	RunE: runCalc,
}

var (
	schedPrincipal float64
	schedRate      float64
	schedTenure    int
)

var scheduleCmd = &cobra.Command{
	Use:   "schedule",
	Short: "Print the amortization table of a loan",
	RunE:  runSchedule,
}

func init() {
	calcCmd.Flags().StringVar(&calcMode, "mode", "emi", "unknown to solve for: emi, principal, tenure or rate")
	calcCmd.Flags().Float64Var(&calcPrincipal, "principal", 0, "loan amount")
	calcCmd.Flags().Float64Var(&calcEMI, "emi", 0, "monthly installment")
	calcCmd.Flags().Float64Var(&calcRate, "rate", 0, "annual interest rate in percent")
	calcCmd.Flags().Float64Var(&calcTenure, "tenure", 0, "number of monthly installments")
	calcCmd.Flags().BoolVar(&calcJSON, "json", false, "print the result as JSON")
	rootCmd.AddCommand(calcCmd)

	scheduleCmd.Flags().Float64Var(&schedPrincipal, "principal", 0, "loan amount")
	scheduleCmd.Flags().Float64Var(&schedRate, "rate", 0, "annual interest rate in percent")
	scheduleCmd.Flags().IntVar(&schedTenure, "tenure", 0, "number of monthly installments")
	rootCmd.AddCommand(scheduleCmd)
}

func runCalc(cmd *cobra.Command, args []string) error {
	loanService := service.NewLoanService(
		repository.NewLoanRepositoryMemory(),
		repository.NewMockCache(),
		zap.NewNop(),
	)

	result, err := loanService.Solve(domain.LoanInput{
		Mode:         calcMode,
		Principal:    calcPrincipal,
		EMI:          calcEMI,
		InterestRate: calcRate,
		TenureMonths: calcTenure,
	})

	var calcErr *service.CalculationError
	if err != nil && !errors.As(err, &calcErr) {
		return err
	}

	out := cmd.OutOrStdout()
	if calcJSON {
		enc := json.NewEncoder(out)
		enc.SetIndent("", "  ")
		if encErr := enc.Encode(result); encErr != nil {
			return encErr
		}
	} else if err == nil {
		printLoanResult(out, result)
	}
	return err
}

func printLoanResult(out io.Writer, r domain.LoanResult) {
	tw := tabwriter.NewWriter(out, 0, 0, 2, ' ', 0)
	defer tw.Flush()

	fmt.Fprintf(tw, "Solved for\t%s\n", r.Mode)
	fmt.Fprintf(tw, "Principal\t%.2f\n", r.Principal)
	fmt.Fprintf(tw, "EMI\t%.2f\n", r.EMI)
	fmt.Fprintf(tw, "Interest rate\t%.2f%%\n", r.InterestRate)
	fmt.Fprintf(tw, "Tenure\t%.2f months\n", r.TenureMonths)
	fmt.Fprintf(tw, "Total payment\t%.2f\n", r.TotalPayment)
	fmt.Fprintf(tw, "Total interest\t%.2f\n", r.TotalInterest)
	fmt.Fprintf(tw, "Split\t%.2f%% principal / %.2f%% interest\n", r.PrincipalPercentage, r.InterestPercentage)
}

func runSchedule(cmd *cobra.Command, args []string) error {
	result, err := service.NewScheduleService(zap.NewNop()).BuildSchedule(cmd.Context(), domain.ScheduleInput{
		Principal:    schedPrincipal,
		InterestRate: schedRate,
		TenureMonths: schedTenure,
	})
	if err != nil {
		return err
	}

	out := cmd.OutOrStdout()
	tw := tabwriter.NewWriter(out, 0, 0, 2, ' ', tabwriter.AlignRight)
	fmt.Fprintln(tw, "Month\tPayment\tInterest\tPrincipal\tBalance\t")
	for _, e := range result.Entries {
		fmt.Fprintf(tw, "%d\t%.2f\t%.2f\t%.2f\t%.2f\t\n",
			e.Month, e.Payment, e.Interest, e.Principal, e.RemainingBalance)
	}
	if err := tw.Flush(); err != nil {
		return err
	}

	fmt.Fprintf(out, "\nEMI %.2f, total payment %.2f, total interest %.2f\n",
		result.EMI, result.TotalPayment, result.TotalInterest)
	return nil
}
