package world

// Kind tags every scoreable or lethal object in the world.
type Kind uint8

const (
	KindHelicopter Kind = iota + 1
	KindTanker
	KindJet
	KindFuelDepot
	KindBridge
)

func (k Kind) String() string {
	switch k {
	case KindHelicopter:
		return "helicopter"
	case KindTanker:
		return "tanker"
	case KindJet:
		return "jet"
	case KindFuelDepot:
		return "fuel_depot"
	case KindBridge:
		return "bridge"
	default:
		return "unknown"
	}
}

// EnemyKinds lists the director-spawned kinds in collision order.
var EnemyKinds = []Kind{KindHelicopter, KindTanker, KindJet}
