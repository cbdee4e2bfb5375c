package main

import (
	"fmt"
	"path/filepath"

	"github.com/dupehound/dupehound/internal/config"
	"github.com/dupehound/dupehound/internal/organize"
	"github.com/spf13/cobra"
)

var flagRules []string

func init() {
	cmd := &cobra.Command{
		Use:   "organize [folder]",
		Short: "Sort a folder's files into subfolders by extension",
		Args:  cobra.MaximumNArgs(1),
		RunE:  runOrganize,
	}
	rootCmd.AddCommand(cmd)

	cmd.Flags().StringArrayVar(&flagRules, "rule", nil, "custom rule in the format .ext:FolderName (repeatable, replaces saved mappings)")
}

func runOrganize(cmd *cobra.Command, args []string) error {
	folder := "."
	if len(args) == 1 {
		folder = args[0]
	}
	abs, _ := filepath.Abs(folder)

	var gcfg config.FileConfig
	if c, err := config.LoadGlobal(); err == nil {
		gcfg = c
	}
	log := newLogger(gcfg, true)

	rules := organize.Rules(gcfg.Mappings())
	if len(flagRules) > 0 {
		rules = organize.Rules{}
		for _, r := range flagRules {
			ext, dest, err := organize.ParseRule(r)
			if err != nil {
				return err
			}
			rules[dest] = append(rules[dest], ext)
		}
	}

	moved, err := organize.Run(abs, rules, log)
	if err != nil {
		return err
	}
	rememberLastFolder(gcfg, "downloads", abs)
	fmt.Printf("Processed %d file(s) in %s\n", moved, abs)
	return nil
}
