package main

import (
	"fmt"

	"github.com/fatih/color"
	"github.com/spf13/cobra"

	"github.com/conn-castle/setup-orgflow/internal/config"
	"github.com/conn-castle/setup-orgflow/internal/messages"
	"github.com/conn-castle/setup-orgflow/internal/resolver"
)

func newInstallCmd(env config.Env) *cobra.Command {
	var constraint resolver.Constraint
	var skipInstall bool
	cmd := &cobra.Command{
		Use:   messages.InstallUse,
		Short: messages.InstallShort,
		Args:  cobra.NoArgs,
		RunE: func(cmd *cobra.Command, args []string) error {
			a, err := loadApp(cmd, env)
			if err != nil {
				return err
			}
			inst, err := a.installer()
			if err != nil {
				return err
			}
			outcome, err := inst.Install(cmd.Context(), constraint, skipInstall)
			if err != nil {
				return err
			}
			out := cmd.OutOrStdout()
			if !outcome.Installed {
				_, _ = fmt.Fprintln(out, color.YellowString(messages.InstallNotInstalledStatus))
				return nil
			}
			_, _ = fmt.Fprintln(out, color.GreenString(messages.InstallVersionStatusFmt, outcome.Version))
			return nil
		},
	}
	cmd.Flags().StringVar(&constraint.Filter, messages.FlagVersion, "", messages.FlagVersionUsage)
	cmd.Flags().BoolVar(&constraint.IncludePrerelease, messages.FlagIncludePrerelease, false, messages.FlagIncludePrereleaseUsage)
	cmd.Flags().BoolVar(&skipInstall, messages.FlagSkipInstall, false, messages.FlagSkipInstallUsage)
	return cmd
}
