package cli

import (
	"fmt"
	"os"
	"path/filepath"
	"strings"

	"github.com/spf13/cobra"

	"github.com/integralist/fastly-client-go/fastly"
)

var (
	uploadFile        string
	uploadServiceName string
	uploadVCLName     string
	uploadDelete      bool
	uploadInclude     bool
	uploadNoActivate  bool
)

var uploadVCLCmd = &cobra.Command{
	Use:   "upload-vcl",
	Short: "Upload a VCL file and activate it",
	Long: `Uploads a VCL file to a service through the versioning workflow:
resolve the service by name, clone the latest version if it is locked or
active, upload (or update) the file, mark it as the main program, and
activate the new version.`,
	RunE: runUploadVCL,
}

func runUploadVCL(cmd *cobra.Command, args []string) error {
	ctx := cmd.Context()
	out := cmd.OutOrStdout()

	content, err := os.ReadFile(uploadFile)
	if err != nil {
		return err
	}
	name := uploadVCLName
	if name == "" {
		name = strings.TrimSuffix(filepath.Base(uploadFile), ".vcl")
	}

	if err := login(cmd); err != nil {
		return err
	}

	svc, err := client.GetServiceByName(ctx, uploadServiceName)
	if err != nil {
		return fmt.Errorf("resolving service %q: %w", uploadServiceName, err)
	}

	latest, err := client.GetLatestVersion(ctx, svc.ID)
	if err != nil {
		return err
	}
	draft, err := client.EnsureMutable(ctx, svc.ID, latest)
	if err != nil {
		return err
	}
	if draft.Number != latest.Number {
		fmt.Fprintf(out, "cloned version %d to draft %d\n", latest.Number.Int(), draft.Number.Int())
	}
	version := draft.Number.Int()

	if uploadDelete {
		fmt.Fprintln(out, warnStyle.Render("deleting all VCL files on the draft"))
		if err := client.ClearAllVCL(ctx, svc.ID, version); err != nil {
			return err
		}
	}

	// Update in place when the file already exists on the draft.
	_, err = client.GetVCL(ctx, svc.ID, version, name, false)
	switch {
	case err == nil:
		_, err = client.UpdateVCL(ctx, svc.ID, version, name, &fastly.UpdateVCLInput{
			Content: fastly.String(string(content)),
		})
		if err != nil {
			return fmt.Errorf("updating vcl %q: %w", name, err)
		}
		fmt.Fprintf(out, "updated vcl %q on version %d\n", name, version)
	case fastly.IsNotFound(err):
		_, err = client.UploadVCL(ctx, svc.ID, version, &fastly.UploadVCLInput{
			Name:    name,
			Content: string(content),
		})
		if err != nil {
			return fmt.Errorf("uploading vcl %q: %w", name, err)
		}
		fmt.Fprintf(out, "uploaded vcl %q to version %d\n", name, version)
	default:
		return err
	}

	// Included files are pulled in by another VCL and must not become the
	// entry point.
	if !uploadInclude {
		if _, err := client.SetMainVCL(ctx, svc.ID, version, name); err != nil {
			return fmt.Errorf("setting main vcl: %w", err)
		}
	}

	if uploadNoActivate {
		fmt.Fprintf(out, "version %d left as draft\n", version)
		return nil
	}

	activated, err := client.ActivateVersion(ctx, svc.ID, version)
	if err != nil {
		if fastly.IsValidation(err) {
			return fmt.Errorf("configuration rejected: %w", err)
		}
		return err
	}
	fmt.Fprintln(out, successStyle.Render(
		fmt.Sprintf("version %d activated on %s", activated.Number.Int(), uploadServiceName)))
	return nil
}

func init() {
	uploadVCLCmd.Flags().StringVarP(&uploadFile, "file", "f", "", "VCL file to upload")
	uploadVCLCmd.Flags().StringVarP(&uploadServiceName, "service", "s", "", "service name")
	uploadVCLCmd.Flags().StringVar(&uploadVCLName, "name", "", "VCL name (default: file basename)")
	uploadVCLCmd.Flags().BoolVar(&uploadDelete, "delete", false, "delete existing VCL files from the draft first")
	uploadVCLCmd.Flags().BoolVar(&uploadInclude, "include", false, "file is an include, do not mark it as main")
	uploadVCLCmd.Flags().BoolVar(&uploadNoActivate, "no-activate", false, "leave the draft unactivated")
	_ = uploadVCLCmd.MarkFlagRequired("file")
	_ = uploadVCLCmd.MarkFlagRequired("service")
	rootCmd.AddCommand(uploadVCLCmd)
}
