package main

import (
	"fmt"

	"github.com/spf13/cobra"

	diceorch "github.com/KirkDiggler/rpg-codex/internal/orchestrators/dice"
)

var (
	rollModifier int
	checkLevel   int
)

var rollCmd = &cobra.Command{
	Use:   "roll",
	Short: "Roll dice",
}

var rollDiceCmd = &cobra.Command{
	Use:   "dice <notation>",
	Short: "Roll dice notation like 2d6",
	Args:  cobra.ExactArgs(1),
	RunE: func(cmd *cobra.Command, args []string) error {
		svc, err := newDiceService()
		if err != nil {
			return err
		}
		out, err := svc.RollDice(cmd.Context(), &diceorch.RollDiceInput{
			Notation: args[0],
			Modifier: rollModifier,
		})
		if err != nil {
			return err
		}
		fmt.Printf("%s: %v", out.Notation, out.Dice)
		if out.Modifier != 0 {
			fmt.Printf(" %+d", out.Modifier)
		}
		fmt.Printf(" = %d\n", out.Total)
		return nil
	},
}

var rollCheckCmd = &cobra.Command{
	Use:   "check <modifier-formula>",
	Short: "Roll a d20 check with a formula modifier, e.g. 'proficiency_bonus + 2'",
	Args:  cobra.ExactArgs(1),
	RunE: func(cmd *cobra.Command, args []string) error {
		svc, err := newDiceService()
		if err != nil {
			return err
		}
		out, err := svc.RollCheck(cmd.Context(), &diceorch.RollCheckInput{
			ModifierFormula: args[0],
			Level:           checkLevel,
		})
		if err != nil {
			return err
		}
		fmt.Printf("d20: %d %+d = %d\n", out.Die, out.Modifier, out.Total)
		return nil
	},
}

func init() {
	rollDiceCmd.Flags().IntVar(&rollModifier, "modifier", 0, "flat modifier added to the total")
	rollCheckCmd.Flags().IntVar(&checkLevel, "level", 1, "character level for formula variables")

	rollCmd.AddCommand(rollDiceCmd)
	rollCmd.AddCommand(rollCheckCmd)
}
