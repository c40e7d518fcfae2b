package hwio

// 8-bit operations
func GetBit8(v uint8, n uint) bool {
	return v>>n&0x01 != 0
}

func SetBit8(v *uint8, n uint) {
	*v |= (1 << n)
}

func ClearBit8(v *uint8, n uint) {
	*v &= ^(1 << n)
}
