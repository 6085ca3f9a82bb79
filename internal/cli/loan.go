package cli

import (
	"errors"
	"fmt"

	"github.com/spf13/cobra"

	"myplan/internal/tasks/data"
)

func newLoanCmd() *cobra.Command {
	cmd := &cobra.Command{
		Use:   "loan",
		Short: "Loan and EMI helpers",
	}
	cmd.AddCommand(newLoanCalcCmd())
	return cmd
}

func newLoanCalcCmd() *cobra.Command {
	var outstanding, rate, emi float64

	cmd := &cobra.Command{
		Use:   "calc",
		Short: "Months and interest left on a loan at a fixed EMI",
		Args:  cobra.NoArgs,
		RunE: func(cmd *cobra.Command, args []string) error {
			out := cmd.OutOrStdout()
			a, err := data.Amortize(outstanding, rate, emi)
			if errors.Is(err, data.ErrNeverRepaid) {
				fmt.Fprintf(out, "An EMI of %.2f does not cover the monthly interest of %.2f; the loan is never repaid.\n",
					emi, outstanding*rate/12/100)
				return nil
			}
			if a.TenureMonths == 0 {
				return fmt.Errorf("--outstanding, --rate and --emi must all be positive")
			}
			fmt.Fprintf(out, "Tenure:         %d months (%d y %d m)\n", a.TenureMonths, a.TenureMonths/12, a.TenureMonths%12)
			fmt.Fprintf(out, "Total payable:  %.2f\n", a.TotalPayable)
			fmt.Fprintf(out, "Total interest: %.2f\n", a.TotalInterest)
			return nil
		},
	}

	cmd.Flags().Float64Var(&outstanding, "outstanding", 0, "Outstanding principal")
	cmd.Flags().Float64Var(&rate, "rate", 0, "Annual interest rate in percent")
	cmd.Flags().Float64Var(&emi, "emi", 0, "Monthly instalment")
	_ = cmd.MarkFlagRequired("outstanding")
	_ = cmd.MarkFlagRequired("rate")
	_ = cmd.MarkFlagRequired("emi")
	return cmd
}
