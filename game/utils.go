package game

// floorMod is a modulo whose result has the sign of m
func floorMod(a, m int) int {
	return ((a % m) + m) % m
}
