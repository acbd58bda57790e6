//go:build !unix

package backend

// notifyResize is a no-op where SIGWINCH does not exist.
func notifyResize(func()) func() {
	return func() {}
}
