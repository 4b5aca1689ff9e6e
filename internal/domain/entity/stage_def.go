package entity

// BossDefinition holds optional boss parameters. Zero positions fall back to
// offsets from the stage width.
type BossDefinition struct {
	Health   int
	TriggerX float64
	SpawnX   float64
}

// StageDefinition is a compiled-in stage parameter record
type StageDefinition struct {
	Name          string
	Quota         int
	Cap           int
	InitialWave   int
	SpawnInterval float64
	Obstacles     int
	Boss          *BossDefinition
}

// HasBoss reports whether the stage ends with a boss
func (d StageDefinition) HasBoss() bool {
	return d.Boss != nil && d.Boss.Health > 0
}

// StageWidth is the pixel width of every generated stage
const StageWidth = 2000

// StageDefinitions is the ordered stage table
var StageDefinitions = []StageDefinition{
	{Name: "Street", Quota: 6, Cap: 3, InitialWave: 2, SpawnInterval: 3.5, Obstacles: 2},
	{Name: "Docks", Quota: 8, Cap: 4, InitialWave: 3, SpawnInterval: 3.0, Obstacles: 3},
	{
		Name: "Rooftop", Quota: 10, Cap: 4, InitialWave: 3, SpawnInterval: 2.6, Obstacles: 4,
		Boss: &BossDefinition{Health: 160, TriggerX: StageWidth - 360, SpawnX: StageWidth - 140},
	},
}

// StageObstacles returns the obstacle rectangles a stage with the given
// obstacle count places on the ground plane
func StageObstacles(count int, groundY float64) []Rect {
	all := []Rect{
		{X: 420, Y: groundY - 48, W: 48, H: 48},
		{X: 920, Y: groundY - 36, W: 80, H: 36},
		{X: 1350, Y: groundY - 52, W: 60, H: 52},
		{X: 1650, Y: groundY - 40, W: 72, H: 40},
	}
	if count < 0 {
		count = 0
	}
	if count > len(all) {
		count = len(all)
	}
	return all[:count]
}

// StageDefinitionAt clamps an index into the table
func StageDefinitionAt(index int) (StageDefinition, int) {
	if index < 0 {
		index = 0
	}
	if index >= len(StageDefinitions) {
		index = len(StageDefinitions) - 1
	}
	return StageDefinitions[index], index
}
