// sid_assert_release.go - no-op domain checks for release builds

//go:build !sidassert

package sidplayfp

// sidAssert compiles to nothing in release builds. Build with the
// "sidassert" tag to enable the fatal domain checks on the sample path.
func sidAssert(cond bool, msg string) {}
