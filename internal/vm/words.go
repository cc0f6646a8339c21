package vm

import "math"

// words.go holds the bit-cast helpers used to carry every scalar kind
// (bool, char, int32, float32) in a uniform 32-bit word, as spec.md §2
// requires: int and float words are reinterpreted, not converted, when
// read back under the other type.

func floatToWord(f float32) uint32 {
	return math.Float32bits(f)
}

func wordToFloat(w uint32) float32 {
	return math.Float32frombits(w)
}

func intToWord(i int32) uint32 {
	return uint32(i)
}

func wordToInt(w uint32) int32 {
	return int32(w)
}
