package combat

import (
	"hash/fnv"
	"math/rand"
)

// splitmix64 increment, used to spread consecutive turn indexes across the
// seed space.
const turnMix = 0x9E3779B97F4A7C15

// roller yields the per-turn action roll. The sequence is a pure function
// of the battle id and the turn index, never wall-clock, so identical
// inputs replay identical battles.
type roller struct {
	seed uint64
}

func newRoller(battleID string) roller {
	h := fnv.New64a()
	_, _ = h.Write([]byte(battleID))
	return roller{seed: h.Sum64()}
}

// roll returns a value in [0, 1) for the given turn.
func (r roller) roll(turn int) float64 {
	mixed := r.seed ^ (uint64(turn)+1)*turnMix
	return rand.New(rand.NewSource(int64(mixed))).Float64()
}
