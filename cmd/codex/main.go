// Package main is the entry point for the codex authoring CLI
package main

import (
	"fmt"
	"os"

	"github.com/spf13/cobra"
)

var rootCmd = &cobra.Command{
	Use:   "codex",
	Short: "RPG Codex content authoring tool",
	Long: `RPG Codex manages authored game content: classes, races, backgrounds,
feats, and campaigns, with a feature editor backed by the SRD catalog.`,
}

func main() {
	if err := rootCmd.Execute(); err != nil {
		fmt.Fprintf(os.Stderr, "Error: %v\n", err)
		os.Exit(1)
	}
}

func init() {
	rootCmd.PersistentFlags().StringVar(&redisAddress, "redis", "", "Redis address (defaults to REDIS_ADDRESS or localhost:6379)")

	rootCmd.AddCommand(classesCmd)
	rootCmd.AddCommand(racesCmd)
	rootCmd.AddCommand(backgroundsCmd)
	rootCmd.AddCommand(featsCmd)
	rootCmd.AddCommand(campaignsCmd)
	rootCmd.AddCommand(featureCmd)
	rootCmd.AddCommand(catalogCmd)
	rootCmd.AddCommand(rollCmd)
	rootCmd.AddCommand(assetsCmd)
}
