package rules

// RoundRobin interleaves lists one item at a time. The longest list sets the
// number of rounds; shorter lists simply drop out once exhausted, and ties go
// to the first longest list.
func RoundRobin[T any](lists ...[]T) []T {
	rounds, total := 0, 0
	for _, l := range lists {
		rounds = max(rounds, len(l))
		total += len(l)
	}
	out := make([]T, 0, total)
	for i := range rounds {
		for _, l := range lists {
			if i < len(l) {
				out = append(out, l[i])
			}
		}
	}
	return out
}
