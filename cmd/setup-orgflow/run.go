package main

import (
	"github.com/spf13/cobra"

	"github.com/conn-castle/setup-orgflow/internal/cli"
	"github.com/conn-castle/setup-orgflow/internal/config"
	"github.com/conn-castle/setup-orgflow/internal/diag"
	"github.com/conn-castle/setup-orgflow/internal/gitconfig"
	"github.com/conn-castle/setup-orgflow/internal/messages"
	"github.com/conn-castle/setup-orgflow/internal/setup"
)

var (
	cliExecutor cli.Executor = cli.RealExecutor{}
	gitExecutor cli.Executor = cli.RealExecutor{}
)

func newRunCmd(env config.Env) *cobra.Command {
	return &cobra.Command{
		Use:   messages.RunUse,
		Short: messages.RunShort,
		Args:  cobra.NoArgs,
		RunE: func(cmd *cobra.Command, args []string) error {
			a, err := loadApp(cmd, env)
			if err != nil {
				return err
			}
			in, err := setup.ReadInputs(a.runtime)
			if err != nil {
				return err
			}
			if err := in.Validate(); err != nil {
				return err
			}
			inst, err := a.installer()
			if err != nil {
				return err
			}
			return setup.Run(cmd.Context(), in, setup.Deps{
				Runtime:     a.runtime,
				Installer:   inst,
				CLI:         cli.New(a.cfg.ToolName, cliExecutor, a.logger),
				Git:         gitconfig.New(gitExecutor, a.logger),
				Diagnostics: diag.NewLayout(a.cfg.TempDir),
				Logger:      a.logger,
			})
		},
	}
}
