package dice

// RollDiceInput defines the request for rolling dice
type RollDiceInput struct {
	// Notation like "2d6" or "1d12"
	Notation string
	// Modifier added flat to the total
	Modifier int
}

// RollDiceOutput defines the response for rolling dice
type RollDiceOutput struct {
	RollID   string
	Notation string
	// Dice holds the individual die results
	Dice     []int
	Modifier int
	Total    int
}

// RollCheckInput defines the request for an ability check style roll
type RollCheckInput struct {
	// ModifierFormula is evaluated at Level, e.g. "floor(proficiency_bonus / 2)"
	ModifierFormula string
	// Level defaults to 1 when zero
	Level int
}

// RollCheckOutput defines the response for an ability check style roll
type RollCheckOutput struct {
	RollID   string
	Die      int
	Modifier int
	Total    int
}
