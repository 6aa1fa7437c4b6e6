package common

// History counts how often each position key was reached in a game.
type History map[uint64]int

func (h History) Add(p *Position) {
	h[p.Key]++
}

func (h History) Seen(key uint64) bool {
	return h[key] > 0
}

// FilterRepetitions drops moves leading to an already visited position. If every
// move repeats, the list is returned unchanged: repetition never creates a terminal.
func FilterRepetitions(ml []Move, h History) []Move {
	if len(h) == 0 {
		return ml
	}
	var result = make([]Move, 0, len(ml))
	for _, m := range ml {
		if !h.Seen(m.Next.Key) {
			result = append(result, m)
		}
	}
	if len(result) == 0 {
		return ml
	}
	return result
}
