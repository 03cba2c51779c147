package commands

import (
	"context"

	"github.com/spf13/cobra"

	"github.com/lthoerner/imei-info/pkg/imeiinfo"
)

func imeiCmd() *cobra.Command {
	cmd := &cobra.Command{
		Use:   "imei <IMEI>",
		Short: "Look up the device an IMEI belongs to",
		Args:  cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			return runLookup(cmd, func(ctx context.Context, l imeiinfo.Lookup) (imeiinfo.PhoneInfo, error) {
				return l.GetIMEIInfo(ctx, args[0])
			})
		},
	}
	addServiceIDFlag(cmd)
	return cmd
}

func tacCmd() *cobra.Command {
	cmd := &cobra.Command{
		Use:   "tac <TAC>",
		Short: "Look up the device model a TAC identifies",
		Args:  cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			return runLookup(cmd, func(ctx context.Context, l imeiinfo.Lookup) (imeiinfo.PhoneInfo, error) {
				return l.GetTACInfo(ctx, args[0])
			})
		},
	}
	addServiceIDFlag(cmd)
	return cmd
}

func addServiceIDFlag(cmd *cobra.Command) {
	cmd.Flags().Uint32("service-id", 0, "IMEI.info service ID (overrides imei_info.service_id)")
}

func runLookup(
	cmd *cobra.Command,
	fn func(ctx context.Context, l imeiinfo.Lookup) (imeiinfo.PhoneInfo, error),
) error {
	ctx := cmd.Context()

	runCfg := *cfg
	if cmd.Flags().Changed("service-id") {
		id, err := cmd.Flags().GetUint32("service-id")
		if err != nil {
			return err
		}
		runCfg.IMEIInfo.ServiceID = id
	}
	if runCfg.IMEIInfo.APIKey == "" {
		appLog.Warn("No API key configured; set API_KEY or pass --api-key")
	}

	a, err := buildApp(ctx, &runCfg, appLog)
	if err != nil {
		return err
	}
	defer func() {
		if cerr := a.Close(); cerr != nil {
			appLog.Warn("Failed to close resources", "error", cerr)
		}
	}()

	info, err := fn(ctx, a.lookup)
	if err != nil {
		return err
	}
	return printJSON(cmd.OutOrStdout(), info)
}
