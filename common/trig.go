package common

import "math"

var (
	sin256Table [0x100]int32
	cos256Table [0x100]int32
)

func init() {
	// Built from the 1024-step tables and scaled down so the cardinal
	// angles land exactly on +-256 and 0.
	for i := 0; i < 0x100; i++ {
		rad := float64(i<<2) / 512 * math.Pi
		sin256Table[i] = int32(math.Sin(rad)*1024) >> 2
		cos256Table[i] = int32(math.Cos(rad)*1024) >> 2
	}
}

// Sin256 returns sin(angle/256 turn) scaled by 256.
func Sin256(angle int32) int32 {
	return sin256Table[angle&0xFF]
}

// Cos256 returns cos(angle/256 turn) scaled by 256.
func Cos256(angle int32) int32 {
	return cos256Table[angle&0xFF]
}
