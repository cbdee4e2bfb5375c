package main

import (
	"fmt"
	"os"

	"github.com/dupehound/dupehound/internal/config"
	"github.com/dupehound/dupehound/internal/organize"
	"github.com/spf13/cobra"
	"gopkg.in/yaml.v3"
)

func init() {
	cfgCmd := &cobra.Command{
		Use:   "config",
		Short: "Inspect and edit dupehound settings",
	}
	rootCmd.AddCommand(cfgCmd)

	cfgCmd.AddCommand(&cobra.Command{
		Use:   "show",
		Short: "Print the effective global configuration",
		RunE: func(cmd *cobra.Command, _ []string) error {
			gcfg, err := config.LoadGlobal()
			if err != nil {
				fmt.Printf("# no global config at %s, showing defaults\n", config.GlobalPath())
			}
			gcfg.ExtensionMappings = gcfg.Mappings()
			out, err := yaml.Marshal(gcfg)
			if err != nil {
				return err
			}
			os.Stdout.Write(out)
			return nil
		},
	})

	cfgCmd.AddCommand(&cobra.Command{
		Use:   "set-mapping <.ext:Folder>",
		Short: "Add or move an extension to an organize folder",
		Args:  cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			ext, folder, err := organize.ParseRule(args[0])
			if err != nil {
				return err
			}
			gcfg, _ := config.LoadGlobal()
			gcfg.ExtensionMappings = gcfg.Mappings()
			for dest, exts := range gcfg.ExtensionMappings {
				gcfg.ExtensionMappings[dest] = removeString(exts, ext)
			}
			gcfg.ExtensionMappings[folder] = append(gcfg.ExtensionMappings[folder], ext)
			if err := config.SaveGlobal(gcfg); err != nil {
				return err
			}
			fmt.Printf("%s now sorts into %s\n", ext, folder)
			return nil
		},
	})

	cfgCmd.AddCommand(&cobra.Command{
		Use:   "export <file>",
		Short: "Export extension mappings to a shareable template",
		Args:  cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			gcfg, _ := config.LoadGlobal()
			if err := config.ExportTemplate(gcfg, args[0]); err != nil {
				return err
			}
			fmt.Printf("Exported mappings to %s\n", args[0])
			return nil
		},
	})

	cfgCmd.AddCommand(&cobra.Command{
		Use:   "import <file>",
		Short: "Import extension mappings from a template",
		Args:  cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			gcfg, _ := config.LoadGlobal()
			if err := config.ImportTemplate(&gcfg, args[0]); err != nil {
				return err
			}
			if err := config.SaveGlobal(gcfg); err != nil {
				return err
			}
			fmt.Printf("Imported mappings from %s\n", args[0])
			return nil
		},
	})
}

func removeString(list []string, s string) []string {
	out := list[:0]
	for _, v := range list {
		if v != s {
			out = append(out, v)
		}
	}
	return out
}
