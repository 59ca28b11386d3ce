// internal/matching/engine.go
// The engine bundles the synonym index so scoring and search share one set
// of thesauri. It holds no mutable state: one engine can serve every
// concurrent comparison in the process.

package matching

// Engine computes compatibility scores and search relevance. Zero I/O,
// deterministic given its index and inputs.
type Engine struct {
	index *SynonymIndex
}

// NewEngine builds an engine around a caller-supplied synonym index.
func NewEngine(index *SynonymIndex) *Engine {
	return &Engine{index: index}
}

// NewDefaultEngine builds an engine with the production thesauri.
func NewDefaultEngine() *Engine {
	return NewEngine(DefaultSynonymIndex())
}
