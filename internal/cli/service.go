package cli

import (
	"fmt"

	"github.com/spf13/cobra"
)

var serviceCmd = &cobra.Command{
	Use:   "service",
	Short: "Inspect Fastly services",
}

var serviceListCmd = &cobra.Command{
	Use:   "list",
	Short: "List all services visible to the caller",
	RunE: func(cmd *cobra.Command, args []string) error {
		services, err := client.ListServices(cmd.Context())
		if err != nil {
			return fmt.Errorf("listing services: %w", err)
		}
		fmt.Fprint(cmd.OutOrStdout(), formatter.Format(services))
		return nil
	},
}

var serviceVersionsCmd = &cobra.Command{
	Use:   "versions <service-name>",
	Short: "List a service's configuration versions",
	Args:  cobra.ExactArgs(1),
	RunE: func(cmd *cobra.Command, args []string) error {
		svc, err := client.GetServiceByName(cmd.Context(), args[0])
		if err != nil {
			return fmt.Errorf("resolving service %q: %w", args[0], err)
		}
		versions, err := client.ListVersions(cmd.Context(), svc.ID)
		if err != nil {
			return fmt.Errorf("listing versions: %w", err)
		}
		fmt.Fprint(cmd.OutOrStdout(), formatter.Format(versions))
		return nil
	},
}

func init() {
	serviceCmd.AddCommand(serviceListCmd)
	serviceCmd.AddCommand(serviceVersionsCmd)
	rootCmd.AddCommand(serviceCmd)
}
