package buildver

// Changes is an insertion-ordered set of root-relative paths modified
// during a run. A fresh instance is created per Run and threaded through
// every writer down to the commit gate; nothing in the pipeline keeps
// global mutable state.
type Changes struct {
	paths []string
	seen  map[string]struct{}
}

// NewChanges returns an empty change set.
func NewChanges() *Changes {
	return &Changes{seen: make(map[string]struct{})}
}

// Add records path once. Re-adding an already recorded path keeps its
// original position.
func (c *Changes) Add(path string) {
	if _, ok := c.seen[path]; ok {
		return
	}
	c.seen[path] = struct{}{}
	c.paths = append(c.paths, path)
}

// Paths returns the recorded paths in insertion order.
func (c *Changes) Paths() []string {
	out := make([]string, len(c.paths))
	copy(out, c.paths)
	return out
}

// Len reports the number of recorded paths.
func (c *Changes) Len() int {
	return len(c.paths)
}
