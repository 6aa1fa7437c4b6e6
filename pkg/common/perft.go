package common

// Perft counts the leaf nodes of the move tree; every jump of a chain is one ply.
func Perft(p *Position, depth int) int {
	if depth == 0 {
		return 1
	}
	var ml = p.GenerateMoves()
	if depth == 1 {
		return len(ml)
	}
	var result = 0
	for i := range ml {
		result += Perft(&ml[i].Next, depth-1)
	}
	return result
}
