package entity

import "time"

// BehaviorKind identifies a mob movement behavior
type BehaviorKind int

const (
	BehaviorStationary BehaviorKind = iota
	BehaviorPatrol
	BehaviorChain
	BehaviorRanged
	BehaviorWander
	BehaviorLunge
	BehaviorCharge
	BehaviorChase
)

// String returns the string representation of the behavior kind
func (k BehaviorKind) String() string {
	switch k {
	case BehaviorStationary:
		return "Stationary"
	case BehaviorPatrol:
		return "Patrol"
	case BehaviorChain:
		return "Chain"
	case BehaviorRanged:
		return "Ranged"
	case BehaviorWander:
		return "Wander"
	case BehaviorLunge:
		return "Lunge"
	case BehaviorCharge:
		return "Charge"
	case BehaviorChase:
		return "Chase"
	default:
		return "Unknown"
	}
}

// Behavior is the per-mob movement state. The set of implementations is closed.
type Behavior interface {
	Kind() BehaviorKind
	isBehavior()
}

// StationaryBehavior never moves
type StationaryBehavior struct{}

func (*StationaryBehavior) Kind() BehaviorKind { return BehaviorStationary }
func (*StationaryBehavior) isBehavior()        {}

// PatrolBehavior walks back and forth around Center
type PatrolBehavior struct {
	Dir    float64 // -1 or 1
	Center float64
	Range  float64
	Phase  float64
}

func (*PatrolBehavior) Kind() BehaviorKind { return BehaviorPatrol }
func (*PatrolBehavior) isBehavior()        {}

// ChainBehavior drives a segmented mob; the head steers and the tail follows
type ChainBehavior struct{}

func (*ChainBehavior) Kind() BehaviorKind { return BehaviorChain }
func (*ChainBehavior) isBehavior()        {}

// RangedBehavior keeps its distance and shoots on a frame cooldown
type RangedBehavior struct {
	Cooldown int
	Reset    int
}

func (*RangedBehavior) Kind() BehaviorKind { return BehaviorRanged }
func (*RangedBehavior) isBehavior()        {}

// WanderBehavior drifts until provoked, then chases
type WanderBehavior struct {
	Dir      float64
	NextTurn time.Duration
}

func (*WanderBehavior) Kind() BehaviorKind { return BehaviorWander }
func (*WanderBehavior) isBehavior()        {}

// LungeBehavior leaps at the player when its cooldown expires
type LungeBehavior struct {
	Cooldown int
}

func (*LungeBehavior) Kind() BehaviorKind { return BehaviorLunge }
func (*LungeBehavior) isBehavior()        {}

// ChargeBehavior chases quickly with periodic bursts
type ChargeBehavior struct {
	Cooldown int
}

func (*ChargeBehavior) Kind() BehaviorKind { return BehaviorCharge }
func (*ChargeBehavior) isBehavior()        {}

// ChaseBehavior walks straight at the player
type ChaseBehavior struct {
	SpeedFactor float64
}

func (*ChaseBehavior) Kind() BehaviorKind { return BehaviorChase }
func (*ChaseBehavior) isBehavior()        {}
