package main

import (
	"fmt"

	"github.com/spf13/cobra"

	catalogclient "github.com/KirkDiggler/rpg-codex/internal/clients/catalog"
)

var catalogCmd = &cobra.Command{
	Use:   "catalog",
	Short: "Browse the SRD catalog",
}

var catalogClassesCmd = &cobra.Command{
	Use:   "classes",
	Short: "List SRD class references",
	RunE: func(cmd *cobra.Command, _ []string) error {
		client, err := newCatalogClient()
		if err != nil {
			return err
		}
		refs, err := client.ListClasses(cmd.Context())
		if err != nil {
			return err
		}
		printReferences(refs)
		return nil
	},
}

var catalogRacesCmd = &cobra.Command{
	Use:   "races",
	Short: "List SRD race references",
	RunE: func(cmd *cobra.Command, _ []string) error {
		client, err := newCatalogClient()
		if err != nil {
			return err
		}
		refs, err := client.ListRaces(cmd.Context())
		if err != nil {
			return err
		}
		printReferences(refs)
		return nil
	},
}

var catalogEquipmentCmd = &cobra.Command{
	Use:   "equipment [category]",
	Short: "List SRD equipment, optionally limited to one category",
	Args:  cobra.MaximumNArgs(1),
	RunE: func(cmd *cobra.Command, args []string) error {
		client, err := newCatalogClient()
		if err != nil {
			return err
		}
		var refs []*catalogclient.Reference
		if len(args) == 1 {
			refs, err = client.ListEquipmentCategory(cmd.Context(), args[0])
		} else {
			refs, err = client.ListEquipment(cmd.Context())
		}
		if err != nil {
			return err
		}
		printReferences(refs)
		return nil
	},
}

func printReferences(refs []*catalogclient.Reference) {
	for _, ref := range refs {
		fmt.Printf("%-30s %s\n", ref.Key, ref.Name)
	}
	fmt.Printf("%d entries\n", len(refs))
}

func init() {
	catalogCmd.AddCommand(catalogClassesCmd)
	catalogCmd.AddCommand(catalogRacesCmd)
	catalogCmd.AddCommand(catalogEquipmentCmd)
}
