package cli

import (
	"fmt"
	"net/url"

	"github.com/spf13/cobra"
)

var purgeServiceName string

var purgeCmd = &cobra.Command{
	Use:   "purge",
	Short: "Invalidate cached content",
}

var purgeURLCmd = &cobra.Command{
	Use:   "url <url>",
	Short: "Purge one exact URL",
	Args:  cobra.ExactArgs(1),
	RunE: func(cmd *cobra.Command, args []string) error {
		u, err := url.Parse(args[0])
		if err != nil || u.Host == "" {
			return fmt.Errorf("invalid URL %q: need scheme and host", args[0])
		}
		purge, err := client.PurgeURL(cmd.Context(), u.Host, u.RequestURI())
		if err != nil {
			return fmt.Errorf("purging %s: %w", args[0], err)
		}
		fmt.Fprintln(cmd.OutOrStdout(), successStyle.Render("purged"), args[0], "id:", purge.ID)
		return nil
	},
}

var purgeKeyCmd = &cobra.Command{
	Use:   "key <surrogate-key>",
	Short: "Purge everything tagged with a surrogate key",
	Args:  cobra.ExactArgs(1),
	RunE: func(cmd *cobra.Command, args []string) error {
		if purgeServiceName == "" {
			return fmt.Errorf("--service is required")
		}
		svc, err := client.GetServiceByName(cmd.Context(), purgeServiceName)
		if err != nil {
			return fmt.Errorf("resolving service %q: %w", purgeServiceName, err)
		}
		if err := client.PurgeKey(cmd.Context(), svc.ID, args[0]); err != nil {
			return fmt.Errorf("purging key %q: %w", args[0], err)
		}
		fmt.Fprintln(cmd.OutOrStdout(), successStyle.Render("purged"), "key", args[0])
		return nil
	},
}

var purgeAllCmd = &cobra.Command{
	Use:   "all",
	Short: "Purge everything cached for a service",
	RunE: func(cmd *cobra.Command, args []string) error {
		if purgeServiceName == "" {
			return fmt.Errorf("--service is required")
		}
		svc, err := client.GetServiceByName(cmd.Context(), purgeServiceName)
		if err != nil {
			return fmt.Errorf("resolving service %q: %w", purgeServiceName, err)
		}
		if err := client.PurgeAll(cmd.Context(), svc.ID); err != nil {
			return fmt.Errorf("purging service %q: %w", purgeServiceName, err)
		}
		fmt.Fprintln(cmd.OutOrStdout(), successStyle.Render("purged"), "all content for", purgeServiceName)
		return nil
	},
}

func init() {
	purgeCmd.PersistentFlags().StringVarP(&purgeServiceName, "service", "s", "", "service name (required for key and all)")
	purgeCmd.AddCommand(purgeURLCmd)
	purgeCmd.AddCommand(purgeKeyCmd)
	purgeCmd.AddCommand(purgeAllCmd)
	rootCmd.AddCommand(purgeCmd)
}
