// sid_assert_debug.go - fatal domain checks for validation builds

//go:build sidassert

package sidplayfp

import "fmt"

// sidAssert halts on a violated model invariant. Only compiled in under the
// "sidassert" tag so the per-sample path stays branch-free in release builds.
func sidAssert(cond bool, msg string) {
	if !cond {
		fmt.Printf("sidplayfp: model invariant violated: %s\n", msg)
		panic(msg)
	}
}
