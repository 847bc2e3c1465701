package game

// NextTurn returns the identity following current in the cyclic turn order.
// An identity missing from the order falls back to the first entry so the
// game can always make progress.
func NextTurn(order []string, current string) string {
	if len(order) == 0 {
		return ""
	}
	for i, id := range order {
		if id == current {
			return order[(i+1)%len(order)]
		}
	}
	return order[0]
}
