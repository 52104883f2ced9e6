package zone

import (
	"hash/fnv"
	"math/rand"
)

// DeterministicSeedValue hashes a root seed and a label into a stable RNG
// seed. Labels namespace the streams so one subsystem's draws never shift
// another's.
func DeterministicSeedValue(rootSeed, label string) int64 {
	hasher := fnv.New64a()
	hasher.Write([]byte(rootSeed))
	hasher.Write([]byte{0})
	hasher.Write([]byte(label))
	sum := hasher.Sum64()
	if sum == 0 {
		sum = 1
	}
	return int64(sum)
}

// NewDeterministicRNG returns the RNG stream for one (seed, label) pair.
func NewDeterministicRNG(rootSeed, label string) *rand.Rand {
	return rand.New(rand.NewSource(DeterministicSeedValue(rootSeed, label)))
}
