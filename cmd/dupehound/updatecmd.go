package main

import (
	"fmt"

	"github.com/dupehound/dupehound/internal/update"
	"github.com/spf13/cobra"
)

func init() {
	rootCmd.AddCommand(&cobra.Command{
		Use:   "version",
		Short: "Print the dupehound version",
		Run: func(cmd *cobra.Command, _ []string) {
			fmt.Println("dupehound", version)
		},
	})

	rootCmd.AddCommand(&cobra.Command{
		Use:   "update",
		Short: "Check whether a newer release is available",
		RunE: func(cmd *cobra.Command, _ []string) error {
			latest, newer, err := update.Check(version, false)
			if err != nil {
				return fmt.Errorf("update check: %w", err)
			}
			if !newer || latest == "" {
				fmt.Println("dupehound is up to date.")
				return nil
			}
			fmt.Printf("Version v%s is available (you have v%s).\n", latest, version)
			fmt.Println("Download: https://github.com/dupehound/dupehound/releases/latest")
			return nil
		},
	})
}
