package main

import (
	"fmt"

	"github.com/google/uuid"
	"github.com/spf13/cobra"

	"github.com/simaogato/mortgagecalc-backend/internal/usecase/amortization"
	"github.com/simaogato/mortgagecalc-backend/internal/usecase/payment"
	"github.com/simaogato/mortgagecalc-backend/internal/usecase/seeder"
)

func paymentCmd() *cobra.Command {
	return &cobra.Command{
		Use:   "payment <mortgage-id>",
		Short: "Print the monthly payment of a stored mortgage",
		Args:  cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			mortgageID, err := uuid.Parse(args[0])
			if err != nil {
				return fmt.Errorf("invalid mortgage id %q: %w", args[0], err)
			}

			cfg, logger, err := setup()
			if err != nil {
				return err
			}
			st, err := openStore(cfg, logger)
			if err != nil {
				return err
			}
			defer st.Close()

			result, err := payment.NewResolver(st.Mortgages, st.Properties, logger).
				ResolvePayment(cmd.Context(), mortgageID)
			if err != nil {
				return err
			}

			fmt.Fprintf(cmd.OutOrStdout(), "%s\t%.2f\n", result.MortgageID, result.MonthlyPayment)
			return nil
		},
	}
}

func calcCmd() *cobra.Command {
	cmd := &cobra.Command{
		Use:   "calc",
		Short: "Calculate a monthly payment without touching the database",
	}

	interestOnly := &cobra.Command{
		Use:   "interest-only",
		Short: "Monthly payment of an interest-only mortgage",
		RunE: func(cmd *cobra.Command, args []string) error {
			principal, _ := cmd.Flags().GetFloat64("principal")
			rate, _ := cmd.Flags().GetFloat64("rate")

			monthly := amortization.InterestOnlyPayment(principal, rate)
			fmt.Fprintf(cmd.OutOrStdout(), "%.2f\n", monthly)
			return nil
		},
	}

	repayment := &cobra.Command{
		Use:   "repayment",
		Short: "Monthly payment of a repayment mortgage",
		RunE: func(cmd *cobra.Command, args []string) error {
			principal, _ := cmd.Flags().GetFloat64("principal")
			rate, _ := cmd.Flags().GetFloat64("rate")
			years, _ := cmd.Flags().GetInt("years")
			if years < 1 {
				return fmt.Errorf("--years must be at least 1, got %d", years)
			}

			monthly := amortization.RepaymentPayment(principal, rate, years)
			fmt.Fprintf(cmd.OutOrStdout(), "%.2f\n", monthly)
			return nil
		},
	}

	for _, c := range []*cobra.Command{interestOnly, repayment} {
		c.Flags().Float64("principal", 0, "loan principal")
		c.Flags().Float64("rate", 0, "annual interest rate in percent, 3 means 3%")
		_ = c.MarkFlagRequired("principal")
		_ = c.MarkFlagRequired("rate")
	}
	repayment.Flags().Int("years", 0, "loan term in years")
	_ = repayment.MarkFlagRequired("years")

	cmd.AddCommand(interestOnly, repayment)
	return cmd
}

func seedCmd() *cobra.Command {
	return &cobra.Command{
		Use:   "seed",
		Short: "Insert the demo property and mortgages",
		RunE: func(cmd *cobra.Command, args []string) error {
			cfg, logger, err := setup()
			if err != nil {
				return err
			}
			st, err := openStore(cfg, logger)
			if err != nil {
				return err
			}
			defer st.Close()

			if err := seeder.NewDemoSeeder(st.Properties, st.Mortgages, logger).Seed(cmd.Context()); err != nil {
				return err
			}
			fmt.Fprintln(cmd.OutOrStdout(), "Demo data seeded.")
			return nil
		},
	}
}
