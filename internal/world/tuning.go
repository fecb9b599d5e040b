package world

// Viewport and player.
const (
	ViewWidth  = 800.0
	ViewHeight = 600.0

	PlayerStartX  = 400.0
	PlayerStartY  = 520.0
	PlayerWidth   = 30.0
	PlayerHeight  = 40.0
	PlayerMinX    = 15.0
	PlayerMaxX    = 785.0
	MaxFuel       = 100.0
	FuelPerTick   = 0.06
	DefaultLives  = 3
	DespawnY      = 650.0 // anything scrolled below this is gone
	DefaultTickHz = 60
)

// Bullet.
const (
	BulletWidth       = 5.0
	BulletHeight      = 15.0
	BulletSpeed       = -10.0
	BulletSpawnOffset = 20.0
	BulletMinY        = -20.0
	BulletMaxY        = 620.0
)

// Scroll speed control.
const (
	MinScrollSpeed     = 1.0
	MaxScrollSpeed     = 3.0
	DefaultScrollSpeed = 2.0
	ScrollSpeedStep    = 0.1
	ScrollRelaxFactor  = 0.1
	ScrollSnapEpsilon  = 0.01
)

// Death and respawn timing, in seconds.
const (
	RespawnDelay           = 2.0
	RespawnInvincibility   = 0.1
	CollisionInvincibility = 2.0
)

// Fuel depots and bridges.
const (
	DepotWidth      = 50.0
	DepotHeight     = 80.0
	DepotPoints     = 80
	DepotRefuelRate = 30.0 // fuel per second of overlap

	BridgeX       = 400.0
	BridgeWidth   = 800.0
	BridgeHeight  = 20.0
	BridgePoints  = 500
	BridgeSpacing = 1000.0 // bridge n spawns at y = -n*BridgeSpacing

	VisibleBandTop    = -50.0
	VisibleBandBottom = 650.0
)

// Terrain.
const (
	DefaultSegmentCount = 20
	SegmentSpacing      = 100.0
	SegmentWidth        = 325.0
	SegmentCenterX      = 400.0
)

// Jets sweep across the full screen and turn around past these edges.
const (
	JetLeftEdge   = -20.0
	JetRightEdge  = 820.0
	JetSpawnLeft  = -50.0
	JetSpawnRight = 850.0
)
