package round

import (
	"math/rand"
	"slices"
)

// MaxSpecials returns the largest legal special-player count for a pool.
// It is never below 1.
func MaxSpecials(poolSize int) int {
	m := (poolSize - 1) / 2
	if m < 1 {
		return 1
	}
	return m
}

// ClampSpecials re-fits a requested special count to a (possibly shrunk)
// pool, always using the post-change pool size.
func ClampSpecials(requested, poolSize int) int {
	if requested < 1 {
		return 1
	}
	if m := MaxSpecials(poolSize); requested > m {
		return m
	}
	return requested
}

// CycleSpecials is the menu control for the special count: it steps
// current -> current+1 and wraps to 1 once current reaches the maximum.
func CycleSpecials(current, poolSize int) int {
	if current >= MaxSpecials(poolSize) {
		return 1
	}
	return current + 1
}

// EffectiveSpecials is the number of specials actually drawn for a round:
// min(requested, poolSize-1), never negative.
func EffectiveSpecials(requested, poolSize int) int {
	n := min(requested, poolSize-1)
	if n < 0 {
		return 0
	}
	return n
}

// ChooseSpecials draws EffectiveSpecials(requested, poolSize) distinct
// indices in [0, poolSize) by rejection sampling and returns them sorted.
func ChooseSpecials(rng *rand.Rand, poolSize, requested int) []int {
	target := EffectiveSpecials(requested, poolSize)
	chosen := make(map[int]struct{}, target)
	for len(chosen) < target {
		idx := rng.Intn(poolSize)
		if _, dup := chosen[idx]; dup {
			continue
		}
		chosen[idx] = struct{}{}
	}

	indices := make([]int, 0, target)
	for idx := range chosen {
		indices = append(indices, idx)
	}
	slices.Sort(indices)
	return indices
}

// IsSpecial reports whether index is in the sorted special set.
func IsSpecial(specials []int, index int) bool {
	_, found := slices.BinarySearch(specials, index)
	return found
}
