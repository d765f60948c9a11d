package logic

// Decode converts a filtered raw reading into whole degrees and a half-degree flag.
//
// The raw domain is 4 counts per degree: Celsius = avg>>2, Half = (avg>>1)&1.
// Readings above the 10-bit range saturate at 255 degrees rather than
// wrapping the way a truncating 8-bit conversion would.
func Decode(avg uint16) Temperature {
	t := (uint32(avg) << 8) >> 9
	c := t >> 1
	if c > 255 {
		c = 255
	}
	return Temperature{Celsius: uint8(c), Half: t&1 == 1}
}
