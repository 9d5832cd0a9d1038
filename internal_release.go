//go:build !claheimg_debug

package claheimg

// assert is the release-build counterpart of the debug assertion in
// internal_debug.go: the condition is still evaluated (so call sites
// read the same either way) but a false condition is silently ignored
// instead of panicking. KindInternal is never produced outside debug
// builds.
func assert(cond bool, msg string) {
	_ = cond
	_ = msg
}
