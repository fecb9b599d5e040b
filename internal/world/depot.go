package world

// FuelDepot refuels the player on contact. Destroyed depots are recycled
// above the viewport instead of being removed.
type FuelDepot struct {
	Entity
	Points     int
	RefuelRate float64
}

func newFuelDepot(x, y float64) *FuelDepot {
	return &FuelDepot{
		Entity:     Entity{X: x, Y: y, Width: DepotWidth, Height: DepotHeight, Alive: true},
		Points:     DepotPoints,
		RefuelRate: DepotRefuelRate,
	}
}
