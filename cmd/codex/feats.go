package main

import (
	"fmt"

	"github.com/spf13/cobra"

	entities "github.com/KirkDiggler/rpg-codex/internal/entities/codex"
	codexsvc "github.com/KirkDiggler/rpg-codex/internal/services/codex"
)

var featsCmd = &cobra.Command{
	Use:   "feats",
	Short: "Manage authored feats",
}

var featsListCmd = &cobra.Command{
	Use:   "list",
	Short: "List all feats",
	RunE: func(cmd *cobra.Command, _ []string) error {
		svc, err := newService()
		if err != nil {
			return err
		}
		out, err := svc.ListFeats(cmd.Context(), &codexsvc.ListFeatsInput{})
		if err != nil {
			return err
		}
		return printJSON(out.Feats)
	},
}

var featsGetCmd = &cobra.Command{
	Use:   "get <feat-id>",
	Short: "Show one feat",
	Args:  cobra.ExactArgs(1),
	RunE: func(cmd *cobra.Command, args []string) error {
		svc, err := newService()
		if err != nil {
			return err
		}
		out, err := svc.GetFeat(cmd.Context(), &codexsvc.GetFeatInput{FeatID: args[0]})
		if err != nil {
			return err
		}
		return printJSON(out.Feat)
	},
}

var featsSaveCmd = &cobra.Command{
	Use:   "save <file.json>",
	Short: "Create or update a feat from a JSON document",
	Args:  cobra.ExactArgs(1),
	RunE: func(cmd *cobra.Command, args []string) error {
		var feat entities.Feat
		if err := readJSONFile(args[0], &feat); err != nil {
			return err
		}
		svc, err := newService()
		if err != nil {
			return err
		}
		out, err := svc.SaveFeat(cmd.Context(), &codexsvc.SaveFeatInput{Feat: &feat})
		if err != nil {
			return err
		}
		return printJSON(out.Feat)
	},
}

var featsDeleteCmd = &cobra.Command{
	Use:   "delete <feat-id>",
	Short: "Delete a feat",
	Args:  cobra.ExactArgs(1),
	RunE: func(cmd *cobra.Command, args []string) error {
		svc, err := newService()
		if err != nil {
			return err
		}
		if _, err := svc.DeleteFeat(cmd.Context(), &codexsvc.DeleteFeatInput{FeatID: args[0]}); err != nil {
			return err
		}
		fmt.Printf("Deleted feat %s\n", args[0])
		return nil
	},
}

func init() {
	featsCmd.AddCommand(featsListCmd)
	featsCmd.AddCommand(featsGetCmd)
	featsCmd.AddCommand(featsSaveCmd)
	featsCmd.AddCommand(featsDeleteCmd)
}
