package main

import (
	"fmt"

	"github.com/spf13/cobra"

	entities "github.com/KirkDiggler/rpg-codex/internal/entities/codex"
	codexsvc "github.com/KirkDiggler/rpg-codex/internal/services/codex"
)

var racesCmd = &cobra.Command{
	Use:   "races",
	Short: "Manage authored races",
}

var racesListCmd = &cobra.Command{
	Use:   "list",
	Short: "List all races",
	RunE: func(cmd *cobra.Command, _ []string) error {
		svc, err := newService()
		if err != nil {
			return err
		}
		out, err := svc.ListRaces(cmd.Context(), &codexsvc.ListRacesInput{})
		if err != nil {
			return err
		}
		return printJSON(out.Races)
	},
}

var racesGetCmd = &cobra.Command{
	Use:   "get <race-id>",
	Short: "Show one race",
	Args:  cobra.ExactArgs(1),
	RunE: func(cmd *cobra.Command, args []string) error {
		svc, err := newService()
		if err != nil {
			return err
		}
		out, err := svc.GetRace(cmd.Context(), &codexsvc.GetRaceInput{RaceID: args[0]})
		if err != nil {
			return err
		}
		return printJSON(out.Race)
	},
}

var racesSaveCmd = &cobra.Command{
	Use:   "save <file.json>",
	Short: "Create or update a race from a JSON document",
	Args:  cobra.ExactArgs(1),
	RunE: func(cmd *cobra.Command, args []string) error {
		var race entities.Race
		if err := readJSONFile(args[0], &race); err != nil {
			return err
		}
		svc, err := newService()
		if err != nil {
			return err
		}
		out, err := svc.SaveRace(cmd.Context(), &codexsvc.SaveRaceInput{Race: &race})
		if err != nil {
			return err
		}
		return printJSON(out.Race)
	},
}

var racesDeleteCmd = &cobra.Command{
	Use:   "delete <race-id>",
	Short: "Delete a race",
	Args:  cobra.ExactArgs(1),
	RunE: func(cmd *cobra.Command, args []string) error {
		svc, err := newService()
		if err != nil {
			return err
		}
		if _, err := svc.DeleteRace(cmd.Context(), &codexsvc.DeleteRaceInput{RaceID: args[0]}); err != nil {
			return err
		}
		fmt.Printf("Deleted race %s\n", args[0])
		return nil
	},
}

func init() {
	racesCmd.AddCommand(racesListCmd)
	racesCmd.AddCommand(racesGetCmd)
	racesCmd.AddCommand(racesSaveCmd)
	racesCmd.AddCommand(racesDeleteCmd)
}
