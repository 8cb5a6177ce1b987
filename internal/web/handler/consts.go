package handler

const (
	// RootPath is the root path the route group.
	RootPath = "/"

	// APIPath prefixes every JSON route.
	APIPath = RootPath + "api"

	// ZonePath addresses one zone below APIPath.
	ZonePath = "/zones/:zone"

	// ErrNilDepsFatalLogMsg is used if the router or a required dependency is nil.
	ErrNilDepsFatalLogMsg = "router or handler dependency is nil"
)
