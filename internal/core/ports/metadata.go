package ports

// Component is anything metadata can attach to. Both nodes and plugs
// satisfy it.
type Component interface {
	FullName() string
}

// Version metadata keys written by definition loading. The reconciler reads
// them back to decide how to migrate values saved by older versions.
const (
	MilestoneVersionKey = "loader:milestoneVersion"
	MajorVersionKey     = "loader:majorVersion"
)

// MetadataStore holds per-instance metadata for graph components. Entries
// can be persistent (serialised alongside the graph) or transient; the
// reference reconciler demotes migrated metadata to non-persistent because
// the defining source is the single source of truth.
//
//go:generate go run go.uber.org/mock/mockgen -source=metadata.go -destination=mocks/mock_metadata.go -package=mocks
type MetadataStore interface {
	// Get returns the value registered under key.
	Get(c Component, key string) (any, bool)
	// Set registers a value under key with the given persistence.
	Set(c Component, key string, value any, persistent bool)
	// Keys lists registered keys; persistentOnly restricts to persistent
	// entries. Keys are returned in registration order.
	Keys(c Component, persistentOnly bool) []string
	// IsPersistent reports whether key is registered persistently.
	IsPersistent(c Component, key string) bool
}
