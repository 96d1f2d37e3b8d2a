package main

import (
	"fmt"
	"os"

	"github.com/spf13/cobra"

	"github.com/4liaghaie/sait/internal/build"
)

func main() {
	rootCmd := &cobra.Command{
		Use:   "portfolio",
		Short: "Bilingual portfolio content service",
		Long:  "Serves the public portfolio API and the token-guarded admin API for about text, logo, categories, images and references.",
	}

	rootCmd.AddCommand(newServeCmd())
	rootCmd.AddCommand(newMigrateCmd())
	rootCmd.AddCommand(&cobra.Command{
		Use:   "version",
		Short: "Print build information",
		Run: func(cmd *cobra.Command, args []string) {
			fmt.Fprintln(cmd.OutOrStdout(), build.String())
		},
	})

	if err := rootCmd.Execute(); err != nil {
		fmt.Fprintln(os.Stderr, err)
		os.Exit(1)
	}
}
