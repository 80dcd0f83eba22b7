package main

import (
	"fmt"

	"github.com/spf13/cobra"

	entities "github.com/KirkDiggler/rpg-codex/internal/entities/codex"
	codexsvc "github.com/KirkDiggler/rpg-codex/internal/services/codex"
)

var backgroundsCmd = &cobra.Command{
	Use:   "backgrounds",
	Short: "Manage authored backgrounds",
}

var backgroundsListCmd = &cobra.Command{
	Use:   "list",
	Short: "List all backgrounds",
	RunE: func(cmd *cobra.Command, _ []string) error {
		svc, err := newService()
		if err != nil {
			return err
		}
		out, err := svc.ListBackgrounds(cmd.Context(), &codexsvc.ListBackgroundsInput{})
		if err != nil {
			return err
		}
		return printJSON(out.Backgrounds)
	},
}

var backgroundsGetCmd = &cobra.Command{
	Use:   "get <background-id>",
	Short: "Show one background",
	Args:  cobra.ExactArgs(1),
	RunE: func(cmd *cobra.Command, args []string) error {
		svc, err := newService()
		if err != nil {
			return err
		}
		out, err := svc.GetBackground(cmd.Context(), &codexsvc.GetBackgroundInput{BackgroundID: args[0]})
		if err != nil {
			return err
		}
		return printJSON(out.Background)
	},
}

var backgroundsSaveCmd = &cobra.Command{
	Use:   "save <file.json>",
	Short: "Create or update a background from a JSON document",
	Args:  cobra.ExactArgs(1),
	RunE: func(cmd *cobra.Command, args []string) error {
		var background entities.Background
		if err := readJSONFile(args[0], &background); err != nil {
			return err
		}
		svc, err := newService()
		if err != nil {
			return err
		}
		out, err := svc.SaveBackground(cmd.Context(), &codexsvc.SaveBackgroundInput{Background: &background})
		if err != nil {
			return err
		}
		return printJSON(out.Background)
	},
}

var backgroundsDeleteCmd = &cobra.Command{
	Use:   "delete <background-id>",
	Short: "Delete a background",
	Args:  cobra.ExactArgs(1),
	RunE: func(cmd *cobra.Command, args []string) error {
		svc, err := newService()
		if err != nil {
			return err
		}
		if _, err := svc.DeleteBackground(cmd.Context(), &codexsvc.DeleteBackgroundInput{BackgroundID: args[0]}); err != nil {
			return err
		}
		fmt.Printf("Deleted background %s\n", args[0])
		return nil
	},
}

func init() {
	backgroundsCmd.AddCommand(backgroundsListCmd)
	backgroundsCmd.AddCommand(backgroundsGetCmd)
	backgroundsCmd.AddCommand(backgroundsSaveCmd)
	backgroundsCmd.AddCommand(backgroundsDeleteCmd)
}
