package main

import (
	"fmt"
	"os"

	"github.com/spf13/cobra"

	"github.com/mapstack/geoviz-cli/internal/coerce"
	"github.com/mapstack/geoviz-cli/internal/mapspec"
	"github.com/mapstack/geoviz-cli/internal/style"
)

var rulesMapPath string

var rulesCmd = &cobra.Command{
	Use:   "rules",
	Short: "Work with style rules",
}

var rulesValidateCmd = &cobra.Command{
	Use:   "validate",
	Short: "Compile every layer's style rules without building the map",
	RunE: func(cmd *cobra.Command, args []string) error {
		doc, err := mapspec.Load(rulesMapPath)
		if err != nil {
			return err
		}

		for _, def := range doc.Layers {
			if err := compileRules(def); err != nil {
				return err
			}
			fmt.Fprintf(os.Stdout, "%s: %d rule(s) ok\n", def.Name, len(def.Rules))
		}
		return nil
	},
}

// compileRules runs the same rule compilation the builders use, so a
// document that passes here will not fail on rule configuration later.
func compileRules(def mapspec.LayerDef) error {
	var err error
	switch def.AttributeType {
	case mapspec.TypeInt:
		_, err = style.Compile(def.Rules, coerce.Int)
	case mapspec.TypeFloat:
		_, err = style.Compile(def.Rules, coerce.Float)
	default:
		_, err = style.Compile(def.Rules, coerce.String)
	}
	return err
}

func init() {
	rulesValidateCmd.Flags().StringVar(&rulesMapPath, "map", "", "map document (YAML)")
	rulesValidateCmd.MarkFlagRequired("map")
	rulesCmd.AddCommand(rulesValidateCmd)
	rootCmd.AddCommand(rulesCmd)
}
