package main

import (
	"fmt"

	"github.com/spf13/cobra"

	"github.com/KirkDiggler/rpg-codex/internal/clients/catalog"
	codexsvc "github.com/KirkDiggler/rpg-codex/internal/services/codex"
	"github.com/KirkDiggler/rpg-codex/internal/types/features"
)

var (
	previewLevel      int
	optionSpellClass  []string
	optionMaxLevel    int
	optionSchool      string
	optionEquipmentIn string
)

var featureCmd = &cobra.Command{
	Use:   "feature",
	Short: "Author and inspect feature configurations",
}

var featureValidateCmd = &cobra.Command{
	Use:   "validate <file.json>",
	Short: "Validate a feature document and report field errors",
	Args:  cobra.ExactArgs(1),
	RunE: func(cmd *cobra.Command, args []string) error {
		var feature features.FeatureSkill
		if err := readJSONFile(args[0], &feature); err != nil {
			return err
		}
		svc, err := newService()
		if err != nil {
			return err
		}
		out, err := svc.ValidateFeature(cmd.Context(), &codexsvc.ValidateFeatureInput{Feature: &feature})
		if err != nil {
			return err
		}
		return printJSON(out.Result)
	},
}

var featurePreviewCmd = &cobra.Command{
	Use:   "preview <file.json>",
	Short: "Evaluate a feature's formula at a character level",
	Args:  cobra.ExactArgs(1),
	RunE: func(cmd *cobra.Command, args []string) error {
		var feature features.FeatureSkill
		if err := readJSONFile(args[0], &feature); err != nil {
			return err
		}
		svc, err := newService()
		if err != nil {
			return err
		}
		out, err := svc.PreviewFeature(cmd.Context(), &codexsvc.PreviewFeatureInput{
			Feature: &feature,
			Level:   previewLevel,
		})
		if err != nil {
			return err
		}
		if !out.HasValue {
			fmt.Println("Feature has no derived value")
			return nil
		}
		fmt.Printf("Value at level %d: %d\n", previewLevel, out.Value)
		return nil
	},
}

var featureOptionsCmd = &cobra.Command{
	Use:   "options <spells|equipment>",
	Short: "Resolve selectable options from the SRD catalog",
	Args:  cobra.ExactArgs(1),
	RunE: func(cmd *cobra.Command, args []string) error {
		input := &codexsvc.ListFeatureOptionsInput{
			Table:             args[0],
			EquipmentCategory: optionEquipmentIn,
		}
		if args[0] == "spells" {
			criteria := &catalog.ListSpellsInput{
				Classes: optionSpellClass,
				School:  optionSchool,
			}
			if cmd.Flags().Changed("max-level") {
				maxLevel := optionMaxLevel
				criteria.MaxLevel = &maxLevel
			}
			input.SpellCriteria = criteria
		}
		svc, err := newService()
		if err != nil {
			return err
		}
		out, err := svc.ListFeatureOptions(cmd.Context(), input)
		if err != nil {
			return err
		}
		for _, opt := range out.Options {
			fmt.Printf("%-30s %s (%s)\n", opt.Key, opt.Name, opt.Detail)
		}
		fmt.Printf("%d options\n", len(out.Options))
		return nil
	},
}

func init() {
	featurePreviewCmd.Flags().IntVar(&previewLevel, "level", 1, "character level for the preview")
	featureOptionsCmd.Flags().StringSliceVar(&optionSpellClass, "class", nil, "limit spells to these classes")
	featureOptionsCmd.Flags().IntVar(&optionMaxLevel, "max-level", 0, "limit spells to this level or below")
	featureOptionsCmd.Flags().StringVar(&optionSchool, "school", "", "limit spells to one school")
	featureOptionsCmd.Flags().StringVar(&optionEquipmentIn, "category", "", "limit equipment to one category")

	featureCmd.AddCommand(featureValidateCmd)
	featureCmd.AddCommand(featurePreviewCmd)
	featureCmd.AddCommand(featureOptionsCmd)
}
