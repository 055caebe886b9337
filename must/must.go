// Package must panics on violated invariants that hydration is supposed to
// make impossible, such as a content graph missing its root entity.
package must

func Be(expr bool, msg string) {
	if !expr {
		panic("assertion failed: " + msg)
	}
}
