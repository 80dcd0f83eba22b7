package main

import (
	"fmt"

	"github.com/spf13/cobra"

	entities "github.com/KirkDiggler/rpg-codex/internal/entities/codex"
	codexsvc "github.com/KirkDiggler/rpg-codex/internal/services/codex"
)

var campaignInviteCode string

var campaignsCmd = &cobra.Command{
	Use:   "campaigns",
	Short: "Manage campaigns",
}

var campaignsListCmd = &cobra.Command{
	Use:   "list",
	Short: "List all campaigns",
	RunE: func(cmd *cobra.Command, _ []string) error {
		svc, err := newService()
		if err != nil {
			return err
		}
		out, err := svc.ListCampaigns(cmd.Context(), &codexsvc.ListCampaignsInput{})
		if err != nil {
			return err
		}
		return printJSON(out.Campaigns)
	},
}

var campaignsGetCmd = &cobra.Command{
	Use:   "get [campaign-id]",
	Short: "Show one campaign, by ID or by --invite code",
	Args:  cobra.MaximumNArgs(1),
	RunE: func(cmd *cobra.Command, args []string) error {
		input := &codexsvc.GetCampaignInput{InviteCode: campaignInviteCode}
		if len(args) == 1 {
			input.CampaignID = args[0]
		}
		svc, err := newService()
		if err != nil {
			return err
		}
		out, err := svc.GetCampaign(cmd.Context(), input)
		if err != nil {
			return err
		}
		return printJSON(out.Campaign)
	},
}

var campaignsSaveCmd = &cobra.Command{
	Use:   "save <file.json>",
	Short: "Create or update a campaign from a JSON document",
	Args:  cobra.ExactArgs(1),
	RunE: func(cmd *cobra.Command, args []string) error {
		var campaign entities.Campaign
		if err := readJSONFile(args[0], &campaign); err != nil {
			return err
		}
		svc, err := newService()
		if err != nil {
			return err
		}
		out, err := svc.SaveCampaign(cmd.Context(), &codexsvc.SaveCampaignInput{Campaign: &campaign})
		if err != nil {
			return err
		}
		return printJSON(out.Campaign)
	},
}

var campaignsDeleteCmd = &cobra.Command{
	Use:   "delete <campaign-id>",
	Short: "Delete a campaign",
	Args:  cobra.ExactArgs(1),
	RunE: func(cmd *cobra.Command, args []string) error {
		svc, err := newService()
		if err != nil {
			return err
		}
		if _, err := svc.DeleteCampaign(cmd.Context(), &codexsvc.DeleteCampaignInput{CampaignID: args[0]}); err != nil {
			return err
		}
		fmt.Printf("Deleted campaign %s\n", args[0])
		return nil
	},
}

var campaignsTestWebhookCmd = &cobra.Command{
	Use:   "test-webhook <campaign-id>",
	Short: "Send a test message to the campaign's Discord webhook",
	Args:  cobra.ExactArgs(1),
	RunE: func(cmd *cobra.Command, args []string) error {
		svc, err := newService()
		if err != nil {
			return err
		}
		out, err := svc.TestCampaignWebhook(cmd.Context(), &codexsvc.TestCampaignWebhookInput{CampaignID: args[0]})
		if err != nil {
			return err
		}
		if out.Delivered {
			fmt.Println("Webhook delivered")
		}
		return nil
	},
}

func init() {
	campaignsGetCmd.Flags().StringVar(&campaignInviteCode, "invite", "", "look up by invite code instead of ID")

	campaignsCmd.AddCommand(campaignsListCmd)
	campaignsCmd.AddCommand(campaignsGetCmd)
	campaignsCmd.AddCommand(campaignsSaveCmd)
	campaignsCmd.AddCommand(campaignsDeleteCmd)
	campaignsCmd.AddCommand(campaignsTestWebhookCmd)
}
