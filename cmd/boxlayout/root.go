package main

import (
	"fmt"

	"github.com/spf13/cobra"

	"github.com/benoitkugler/boxlayout/version"
)

func newRootCmd() *cobra.Command {
	root := &cobra.Command{
		Use:           "boxlayout",
		Short:         "Box layout engine for paged documents",
		Version:       version.Version,
		SilenceUsage:  true,
		SilenceErrors: true,
	}
	root.SetVersionTemplate("{{printf \"%s\\n\" .Version}}")
	root.PersistentFlags().StringP("config", "c", "", "configuration file (YAML, JSON or TOML)")
	root.AddCommand(newLayoutCmd(), newVersionCmd())
	return root
}

func newVersionCmd() *cobra.Command {
	return &cobra.Command{
		Use:   "version",
		Short: "Print the version",
		Args:  cobra.NoArgs,
		Run: func(cmd *cobra.Command, _ []string) {
			fmt.Fprintln(cmd.OutOrStdout(), version.VersionString)
		},
	}
}
