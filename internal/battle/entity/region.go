package entity

type Terrain int8

const (
	TerrainOcean Terrain = iota
	TerrainPlain
	TerrainForest
	TerrainHills
	TerrainMountain
)

func (t Terrain) String() string {
	switch t {
	case TerrainOcean:
		return "ocean"
	case TerrainPlain:
		return "plain"
	case TerrainForest:
		return "forest"
	case TerrainHills:
		return "hills"
	case TerrainMountain:
		return "mountain"
	}
	return "unknown"
}

// Region is the slice of a territorial cell this service consumes: terrain
// and ownership are read, ownership is written on conquest. Channel is an
// opaque notification handle owned by the chat layer.
type Region struct {
	ID      RegionID
	Terrain Terrain
	Owner   FactionID
	Channel string
}
