package common

// Fixed-point values are Q16.16 stored in int32.
const FixedShift = 16

// TileSize is the edge length of a collision tile in pixels.
const TileSize = 16

// Vector2 is a Q16.16 position or velocity.
type Vector2 struct {
	X int32 `msgpack:"x" json:"x"`
	Y int32 `msgpack:"y" json:"y"`
}

func ToFixed(v int32) int32 {
	return v << FixedShift
}

func FromFixed(v int32) int32 {
	return v >> FixedShift
}

// FloatToFixed converts a pixel value authored in a prefab into Q16.16.
func FloatToFixed(v float64) int32 {
	return int32(v * (1 << FixedShift))
}

// FixedToFloat is the inverse of FloatToFixed and is only meant for logs.
func FixedToFloat(v int32) float64 {
	return float64(v) / (1 << FixedShift)
}

func Abs(v int32) int32 {
	if v < 0 {
		return -v
	}
	return v
}

func Clamp(v, lo, hi int32) int32 {
	if v < lo {
		return lo
	}
	if v > hi {
		return hi
	}
	return v
}
