package metrics

import "github.com/multiversx/mx-chain-core-go/core/check"

// Collection is an append-only, insertion-ordered sequence of metric definitions.
// It performs no deduplication: a duplicated qualified name is the contributing
// collector's error and is resolved by the consumer (sync or fetch).
type Collection struct {
	definitions []Definition
}

// NewCollection creates a new, empty collection
func NewCollection() *Collection {
	return &Collection{
		definitions: make([]Definition, 0),
	}
}

// Add appends a definition to the collection. Nil definitions are ignored
func (c *Collection) Add(definition Definition) {
	if check.IfNil(definition) {
		return
	}

	c.definitions = append(c.definitions, definition)
}

// Definitions returns the definitions in insertion order. The returned slice is
// a copy, so repeated iteration is safe and non-destructive
func (c *Collection) Definitions() []Definition {
	defs := make([]Definition, len(c.definitions))
	copy(defs, c.definitions)

	return defs
}

// Len returns the number of definitions added so far
func (c *Collection) Len() int {
	return len(c.definitions)
}
