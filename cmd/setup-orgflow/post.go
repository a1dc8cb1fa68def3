package main

import (
	"github.com/spf13/cobra"

	"github.com/conn-castle/setup-orgflow/internal/config"
	"github.com/conn-castle/setup-orgflow/internal/diag"
	"github.com/conn-castle/setup-orgflow/internal/messages"
	"github.com/conn-castle/setup-orgflow/internal/setup"
)

func newPostCmd(env config.Env) *cobra.Command {
	return &cobra.Command{
		Use:   messages.PostUse,
		Short: messages.PostShort,
		Args:  cobra.NoArgs,
		RunE: func(cmd *cobra.Command, args []string) error {
			a, err := loadApp(cmd, env)
			if err != nil {
				return err
			}
			upload, err := a.runtime.BoolInput(setup.InputUploadArtifact, true)
			if err != nil {
				return err
			}
			_, err = setup.Post(a.runtime, diag.NewLayout(a.cfg.TempDir), upload, a.logger)
			return err
		},
	}
}
