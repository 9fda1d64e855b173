package peer_protocol

// Packs piece flags most significant bit first. Spare bits in the last byte are zero.
func MarshalBitfield(bf []bool) (b []byte) {
	b = make([]byte, (len(bf)+7)/8)
	for i, have := range bf {
		if have {
			b[i/8] |= 1 << uint(7-i%8)
		}
	}
	return
}

// Always yields a multiple of 8 flags. The piece count isn't on the wire, so trailing spare bits are
// the receiver's to check.
func UnmarshalBitfield(b []byte) (bf []bool) {
	bf = make([]bool, 0, len(b)*8)
	for _, c := range b {
		for i := 7; i >= 0; i-- {
			bf = append(bf, (c>>uint(i))&1 == 1)
		}
	}
	return
}
