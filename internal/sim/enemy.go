package sim

import "zonecrawl/server/internal/grid"

// EnemyPhase tracks the cosmetic animation state of one enemy. Phases are
// presentation hints for the UI collaborator, never authoritative: the live
// enemy list in the zone record decides who acts.
type EnemyPhase uint8

const (
	EnemyIdle EnemyPhase = iota
	EnemyAttacking
	EnemyDying
)

const (
	attackAnimationFrames = 6
	deathAnimationFrames  = 8
)

// EnemyAnimation is one enemy's transient frame counter.
type EnemyAnimation struct {
	Phase      EnemyPhase `json:"phase"`
	FramesLeft int        `json:"framesLeft"`
}

// intentKind discriminates a pending per-turn intent.
type intentKind uint8

const (
	intentMove intentKind = iota
	intentAttack
)

// pendingIntent is the ephemeral plan one enemy produced this turn; intents
// are built in stable id order during planning and discarded after
// resolution.
type pendingIntent struct {
	actorID string
	target  grid.Point
	kind    intentKind
}
