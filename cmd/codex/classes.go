package main

import (
	"fmt"

	"github.com/spf13/cobra"

	entities "github.com/KirkDiggler/rpg-codex/internal/entities/codex"
	codexsvc "github.com/KirkDiggler/rpg-codex/internal/services/codex"
)

var classesCmd = &cobra.Command{
	Use:   "classes",
	Short: "Manage authored classes",
}

var classesListCmd = &cobra.Command{
	Use:   "list",
	Short: "List all classes",
	RunE: func(cmd *cobra.Command, _ []string) error {
		svc, err := newService()
		if err != nil {
			return err
		}
		out, err := svc.ListClasses(cmd.Context(), &codexsvc.ListClassesInput{})
		if err != nil {
			return err
		}
		return printJSON(out.Classes)
	},
}

var classesGetCmd = &cobra.Command{
	Use:   "get <class-id>",
	Short: "Show one class",
	Args:  cobra.ExactArgs(1),
	RunE: func(cmd *cobra.Command, args []string) error {
		svc, err := newService()
		if err != nil {
			return err
		}
		out, err := svc.GetClass(cmd.Context(), &codexsvc.GetClassInput{ClassID: args[0]})
		if err != nil {
			return err
		}
		return printJSON(out.Class)
	},
}

var classesSaveCmd = &cobra.Command{
	Use:   "save <file.json>",
	Short: "Create or update a class from a JSON document",
	Args:  cobra.ExactArgs(1),
	RunE: func(cmd *cobra.Command, args []string) error {
		var class entities.Class
		if err := readJSONFile(args[0], &class); err != nil {
			return err
		}
		svc, err := newService()
		if err != nil {
			return err
		}
		out, err := svc.SaveClass(cmd.Context(), &codexsvc.SaveClassInput{Class: &class})
		if err != nil {
			return err
		}
		return printJSON(out.Class)
	},
}

var classesDeleteCmd = &cobra.Command{
	Use:   "delete <class-id>",
	Short: "Delete a class",
	Args:  cobra.ExactArgs(1),
	RunE: func(cmd *cobra.Command, args []string) error {
		svc, err := newService()
		if err != nil {
			return err
		}
		if _, err := svc.DeleteClass(cmd.Context(), &codexsvc.DeleteClassInput{ClassID: args[0]}); err != nil {
			return err
		}
		fmt.Printf("Deleted class %s\n", args[0])
		return nil
	},
}

func init() {
	classesCmd.AddCommand(classesListCmd)
	classesCmd.AddCommand(classesGetCmd)
	classesCmd.AddCommand(classesSaveCmd)
	classesCmd.AddCommand(classesDeleteCmd)
}
