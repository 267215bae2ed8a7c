package combat

// Simulation tunables. Probabilities are evaluated once per acting turn
// against a single deterministic roll.
const (
	DefaultMaxTurns          = 100
	DefaultCritChance        = 0.10
	DefaultSpecialChance     = 0.15
	DefaultCritMultiplier    = 2.0
	DefaultSpecialMultiplier = 1.5
)

// Log message formats
const (
	msgAttack  = "%s hits %s for %d damage"
	msgCrit    = "%s lands a critical hit on %s for %d damage"
	msgSpecial = "%s unleashes a special attack on %s for %d damage"
	msgDeath   = "%s has fallen"
	msgDraw    = "the battle ends in a draw after %d turns"
)
