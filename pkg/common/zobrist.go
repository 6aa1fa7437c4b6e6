package common

import "math/rand"

var (
	pieceKeys [SquareCount + 1][BlackKing + 1]uint64
	jumpKeys  [SquareCount + 1]uint64
	sideKey   uint64
)

func init() {
	// fixed seed: keys must be stable between runs so that histories and
	// checkpoints compare equal
	var r = rand.New(rand.NewSource(0x5eed))
	var next = func() uint64 {
		for {
			if v := r.Uint64(); v != 0 {
				return v
			}
		}
	}
	for sq := 1; sq <= SquareCount; sq++ {
		for p := WhiteMan; p <= BlackKing; p++ {
			pieceKeys[sq][p] = next()
		}
		jumpKeys[sq] = next()
	}
	sideKey = next()
}

func computeKey(b *Board, side Side, jumpFrom Square) uint64 {
	var key uint64
	for i, p := range b {
		if p != Empty {
			key ^= pieceKeys[i+1][p]
		}
	}
	if side == Black {
		key ^= sideKey
	}
	return key ^ jumpKeys[jumpFrom]
}
