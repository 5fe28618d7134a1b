package cli

import (
	"fmt"
	"os"

	"github.com/pkg/errors"
	"github.com/spf13/cobra"

	"ved/config"
)

func (a *App) newConfigCommand() *cobra.Command {
	cmd := &cobra.Command{
		Use:   "config",
		Short: "Show or write the effective configuration",
	}

	show := &cobra.Command{
		Use:   "show",
		Short: "Print the effective configuration",
		Args:  func(cmd *cobra.Command, args []string) error { return usageError(cobra.NoArgs(cmd, args)) },
		RunE:  a.runConfigShow,
	}
	show.Flags().Bool("yaml", false, "print as YAML")

	initCmd := &cobra.Command{
		Use:   "init [PATH]",
		Short: "Write the effective configuration to a file (default ./ved.yaml)",
		Args:  func(cmd *cobra.Command, args []string) error { return usageError(cobra.MaximumNArgs(1)(cmd, args)) },
		RunE:  a.runConfigInit,
	}
	initCmd.Flags().BoolP("force", "f", false, "overwrite an existing file")

	cmd.AddCommand(show, initCmd)
	return cmd
}

func (a *App) runConfigShow(cmd *cobra.Command, args []string) error {
	asYAML, err := cmd.Flags().GetBool("yaml")
	if err != nil {
		return err
	}

	out := cmd.OutOrStdout()
	if !asYAML {
		a.cfg.PrintConfig(out)
		return nil
	}

	data, err := a.cfg.Marshal()
	if err != nil {
		return err
	}
	_, err = out.Write(data)
	return err
}

func (a *App) runConfigInit(cmd *cobra.Command, args []string) error {
	path := "ved.yaml"
	if len(args) == 1 {
		path = args[0]
	}

	force, err := cmd.Flags().GetBool("force")
	if err != nil {
		return err
	}
	if _, err := os.Stat(path); err == nil && !force {
		return errors.Errorf("%s already exists (use --force to overwrite)", path)
	}

	fmt.Fprintf(cmd.OutOrStdout(), "Writing configuration to: %s\n", path)
	if a.cfg.DryRun {
		return nil
	}

	// dry_run is a per-invocation switch, never persisted
	cfg := a.cfg.Copy()
	cfg.DryRun = false
	return config.SaveConfigFile(cfg, path)
}
