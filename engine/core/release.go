package core

// ReleaseStack records resources in acquisition order and releases them in
// strict reverse order, so a handle is never released before the handles
// that were created from it.
type ReleaseStack struct {
	entries []releaseEntry
}

type releaseEntry struct {
	name    string
	release func()
}

// Push records a release function for the named resource.
func (rs *ReleaseStack) Push(name string, release func()) {
	rs.entries = append(rs.entries, releaseEntry{name: name, release: release})
}

// Len returns the number of resources still held.
func (rs *ReleaseStack) Len() int {
	return len(rs.entries)
}

// Release unwinds the stack, last acquired first. Calling it again is a no-op.
func (rs *ReleaseStack) Release() {
	for i := len(rs.entries) - 1; i >= 0; i-- {
		e := rs.entries[i]
		LogDebug("releasing %s", e.name)
		e.release()
	}
	rs.entries = nil
}
