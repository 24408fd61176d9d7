package ports

// Metrics counts engine activity. Implementations must be safe for
// concurrent use.
//
//go:generate go run go.uber.org/mock/mockgen -source=metrics.go -destination=mocks/mock_metrics.go -package=mocks
type Metrics interface {
	// CacheHit counts a computation cache hit.
	CacheHit()
	// CacheMiss counts a computation cache miss.
	CacheMiss()
	// Compute counts one node compute invocation.
	Compute()
	// PlugsDirtied counts plugs visited by one dirty propagation pass.
	PlugsDirtied(n int)
	// ReferenceLoaded counts one reference (re)load.
	ReferenceLoaded()
}
