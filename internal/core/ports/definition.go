package ports

import "go.trai.ch/weft/internal/core/domain"

// DefinitionSource reconstructs a subgraph inside a target container from
// an external definition. It is invoked synchronously by the reference
// reconciler and may perform nested graph mutations. erred reports
// non-fatal, partial-failure-tolerant errors (items that could not be
// built); err reports fatal ones (the source could not be read at all).
//
//go:generate go run go.uber.org/mock/mockgen -source=definition.go -destination=mocks/mock_definition.go -package=mocks
type DefinitionSource interface {
	Load(target *domain.Node, source string) (erred bool, err error)
}
