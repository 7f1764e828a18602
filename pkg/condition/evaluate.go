package condition

// Snapshot provides read access to the variables an expression may
// reference. Implementations wrap global game state or a single
// region's variables. The second return is false for unknown names.
type Snapshot interface {
	Value(name string) (int, bool)
}

// Evaluate checks every comparison in the expression against the
// snapshot. An empty expression matches vacuously. Unknown variable
// names fail closed: a missing signal must never fire a trigger.
func Evaluate(expr Expr, snap Snapshot) bool {
	for name, cmp := range expr {
		observed, ok := snap.Value(name)
		if !ok {
			return false
		}
		if !cmp.Holds(observed) {
			return false
		}
	}
	return true
}
