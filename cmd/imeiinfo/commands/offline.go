package commands

import (
	"fmt"

	"github.com/spf13/cobra"

	"github.com/lthoerner/imei-info/internal/core/application"
)

func validateCmd() *cobra.Command {
	cmd := &cobra.Command{
		Use:   "validate <IMEI>",
		Short: "Decompose an IMEI and verify its check digit without contacting IMEI.info",
		Args:  cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			details, err := application.DescribeIMEI(args[0])
			if err != nil {
				return err
			}
			if err := printJSON(cmd.OutOrStdout(), details); err != nil {
				return err
			}
			if !details.Valid {
				return fmt.Errorf("check digit %d does not match Luhn checksum %d", details.CheckDigit, details.ExpectedCheckDigit)
			}
			return nil
		},
	}
	return cmd
}

func synthesizeCmd() *cobra.Command {
	cmd := &cobra.Command{
		Use:   "synthesize <TAC>",
		Short: "Generate a valid IMEI with a zero serial number for a TAC",
		Args:  cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			imei, err := application.SynthesizeIMEI(args[0])
			if err != nil {
				return err
			}
			return printJSON(cmd.OutOrStdout(), imei)
		},
	}
	return cmd
}
