package retrieval

// RetrievalMonitor provides hooks to observe the retrieval process.
// Implement this interface to track intermediate steps during retrieval.
type RetrievalMonitor interface {
	Start(query string)
	AfterLocalSearch(texts []string)
	WebFallbackTriggered(localHits int)
	AfterWebSearch(snippets []string)
	AfterDedupe(texts []string)
	Finish(results []string)
}

// noopMonitor is a no-op implementation of RetrievalMonitor
type noopMonitor struct{}

var _ RetrievalMonitor = (*noopMonitor)(nil)

func (n *noopMonitor) Start(_ string)               {}
func (n *noopMonitor) AfterLocalSearch(_ []string)  {}
func (n *noopMonitor) WebFallbackTriggered(_ int)   {}
func (n *noopMonitor) AfterWebSearch(_ []string)    {}
func (n *noopMonitor) AfterDedupe(_ []string)       {}
func (n *noopMonitor) Finish(_ []string)            {}
