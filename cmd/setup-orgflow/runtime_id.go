package main

import (
	"fmt"

	"github.com/spf13/cobra"

	"github.com/conn-castle/setup-orgflow/internal/messages"
)

func newRuntimeIDCmd() *cobra.Command {
	return &cobra.Command{
		Use:   messages.RuntimeIDUse,
		Short: messages.RuntimeIDShort,
		Args:  cobra.NoArgs,
		RunE: func(cmd *cobra.Command, args []string) error {
			id, err := identifyRuntime()
			if err != nil {
				return err
			}
			_, err = fmt.Fprintln(cmd.OutOrStdout(), id)
			return err
		},
	}
}
