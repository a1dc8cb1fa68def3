package main

import (
	"fmt"

	"github.com/fatih/color"
	"github.com/spf13/cobra"

	"github.com/conn-castle/setup-orgflow/internal/config"
	"github.com/conn-castle/setup-orgflow/internal/messages"
)

func newCacheCmd(env config.Env) *cobra.Command {
	cmd := &cobra.Command{
		Use:   messages.CacheUse,
		Short: messages.CacheShort,
	}
	cmd.AddCommand(&cobra.Command{
		Use:   messages.CacheListUse,
		Short: messages.CacheListShort,
		Args:  cobra.NoArgs,
		RunE: func(cmd *cobra.Command, args []string) error {
			a, err := loadApp(cmd, env)
			if err != nil {
				return err
			}
			versions, err := a.cache().ListVersions(a.cfg.ToolName)
			if err != nil {
				return err
			}
			out := cmd.OutOrStdout()
			if len(versions) == 0 {
				_, _ = fmt.Fprintln(out, color.YellowString(messages.CacheEmptyFmt, a.cfg.ToolName, a.cfg.CacheRoot))
				return nil
			}
			for _, v := range versions {
				_, _ = fmt.Fprintln(out, v)
			}
			return nil
		},
	})
	return cmd
}
