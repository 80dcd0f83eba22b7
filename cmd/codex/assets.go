package main

import (
	"fmt"
	"os"
	"path/filepath"

	"github.com/spf13/cobra"

	"github.com/KirkDiggler/rpg-codex/internal/clients/uploads"
)

var assetFolder string

var assetsCmd = &cobra.Command{
	Use:   "assets",
	Short: "Manage uploaded assets",
}

var assetsUploadCmd = &cobra.Command{
	Use:   "upload <file>",
	Short: "Upload an image or handout to the asset store",
	Args:  cobra.ExactArgs(1),
	RunE: func(cmd *cobra.Command, args []string) error {
		file, err := os.Open(args[0]) // #nosec G304 -- author-supplied path
		if err != nil {
			return fmt.Errorf("failed to open %s: %w", args[0], err)
		}
		defer func() { _ = file.Close() }()

		client, err := newUploadsClient()
		if err != nil {
			return err
		}
		out, err := client.Upload(cmd.Context(), uploads.UploadInput{
			FileName: filepath.Base(args[0]),
			Folder:   assetFolder,
			Content:  file,
		})
		if err != nil {
			return err
		}
		fmt.Println(out.URL)
		return nil
	},
}

func init() {
	assetsUploadCmd.Flags().StringVar(&assetFolder, "folder", "", "asset host folder, e.g. class-icons")

	assetsCmd.AddCommand(assetsUploadCmd)
}
