// Package dice implements the dice orchestrator used by authors to sanity
// check hit dice and feature formulas with real rolls
package dice

import (
	"context"
	"log/slog"
	"regexp"
	"strconv"
	"strings"

	"github.com/KirkDiggler/rpg-toolkit/dice"

	"github.com/KirkDiggler/rpg-codex/internal/errors"
	"github.com/KirkDiggler/rpg-codex/internal/formula"
	"github.com/KirkDiggler/rpg-codex/internal/pkg/idgen"
)

// Regex for parsing simple dice notation like "2d6", "1d20", "3d8"
var diceNotationRegex = regexp.MustCompile(`^(\d+)d(\d+)$`)

// Service defines the interface for dice operations
type Service interface {
	// RollDice rolls plain dice notation with a flat modifier
	RollDice(ctx context.Context, input *RollDiceInput) (*RollDiceOutput, error)

	// RollCheck rolls a d20 and adds a formula-derived modifier, the way a
	// player would make an ability check with an authored skill modifier
	RollCheck(ctx context.Context, input *RollCheckInput) (*RollCheckOutput, error)
}

// Config holds the dependencies for the dice orchestrator
type Config struct {
	IDGenerator idgen.Generator
}

// Validate ensures all required dependencies are provided
func (c *Config) Validate() error {
	vb := errors.NewValidationBuilder()

	if c.IDGenerator == nil {
		vb.RequiredField("IDGenerator")
	}

	return vb.Build()
}

type orchestrator struct {
	idGen idgen.Generator
}

// NewOrchestrator creates a new dice orchestrator with the provided dependencies
func NewOrchestrator(cfg *Config) (Service, error) {
	if err := cfg.Validate(); err != nil {
		return nil, errors.Wrap(err, "invalid config")
	}

	return &orchestrator{
		idGen: cfg.IDGenerator,
	}, nil
}

// parseDiceNotation parses simple dice notation like "2d6" and returns count and size
func (o *orchestrator) parseDiceNotation(notation string) (count, size int, err error) {
	matches := diceNotationRegex.FindStringSubmatch(strings.ToLower(notation))
	if len(matches) != 3 {
		return 0, 0, errors.InvalidArgumentf("invalid dice notation: %s (expected format: XdY)", notation)
	}

	count, err = strconv.Atoi(matches[1])
	if err != nil {
		return 0, 0, errors.InvalidArgumentf("invalid dice count in notation: %s", notation)
	}

	size, err = strconv.Atoi(matches[2])
	if err != nil {
		return 0, 0, errors.InvalidArgumentf("invalid die size in notation: %s", notation)
	}

	if count <= 0 || size <= 0 {
		return 0, 0, errors.InvalidArgumentf("dice count and size must be positive: %s", notation)
	}

	return count, size, nil
}

// roll uses rpg-toolkit to roll dice and extracts the individual values.
// Description format: "+2d6[3,4]=7"
func (o *orchestrator) roll(count, size int) ([]int, int, error) {
	r, err := dice.NewRoll(count, size)
	if err != nil {
		return nil, 0, errors.Wrapf(err, "failed to create dice roll")
	}

	total := r.GetValue()
	description := r.GetDescription()

	var values []int
	start := strings.Index(description, "[")
	end := strings.Index(description, "]")
	if start >= 0 && end > start {
		for _, ds := range strings.Split(description[start+1:end], ",") {
			if d, err := strconv.Atoi(strings.TrimSpace(ds)); err == nil {
				values = append(values, d)
			}
		}
	}

	return values, total, nil
}

// RollDice rolls dice notation and applies a flat modifier
func (o *orchestrator) RollDice(ctx context.Context, input *RollDiceInput) (*RollDiceOutput, error) {
	if input == nil {
		return nil, errors.InvalidArgument("input is required")
	}

	count, size, err := o.parseDiceNotation(input.Notation)
	if err != nil {
		return nil, err
	}

	values, total, err := o.roll(count, size)
	if err != nil {
		return nil, err
	}

	output := &RollDiceOutput{
		RollID:   o.idGen.Generate(),
		Notation: input.Notation,
		Dice:     values,
		Modifier: input.Modifier,
		Total:    total + input.Modifier,
	}

	slog.DebugContext(ctx, "rolled dice",
		"roll_id", output.RollID,
		"notation", input.Notation,
		"total", output.Total)

	return output, nil
}

// RollCheck rolls a d20 and adds the evaluated modifier formula
func (o *orchestrator) RollCheck(ctx context.Context, input *RollCheckInput) (*RollCheckOutput, error) {
	if input == nil {
		return nil, errors.InvalidArgument("input is required")
	}
	if input.ModifierFormula == "" {
		return nil, errors.InvalidArgument("modifier formula is required")
	}

	level := input.Level
	if level == 0 {
		level = 1
	}
	if level < 1 || level > 20 {
		return nil, errors.InvalidArgumentf("level must be between 1 and 20, got %d", level)
	}

	fctx := &formula.Context{
		Level:            level,
		ProficiencyBonus: formula.DefaultProficiencyBonus(level),
	}
	modifier, err := formula.Evaluate(input.ModifierFormula, fctx)
	if err != nil {
		return nil, err
	}

	values, rolled, err := o.roll(1, 20)
	if err != nil {
		return nil, err
	}

	die := rolled
	if len(values) > 0 {
		die = values[0]
	}

	output := &RollCheckOutput{
		RollID:   o.idGen.Generate(),
		Die:      die,
		Modifier: modifier,
		Total:    rolled + modifier,
	}

	slog.DebugContext(ctx, "rolled check",
		"roll_id", output.RollID,
		"formula", input.ModifierFormula,
		"level", level,
		"total", output.Total)

	return output, nil
}
