package handlers

import (
	"sync"

	"tripbudget/internal/budget"
	intconfig "tripbudget/internal/config"
)

// Deps carries the long-lived collaborators handlers need: the env and the
// shared price cache. Set once at router construction.
type Deps struct {
	Env    intconfig.Env
	Prices budget.Lookup
}

var (
	depsMu sync.RWMutex
	deps   Deps
)

func Configure(d Deps) {
	depsMu.Lock()
	defer depsMu.Unlock()
	deps = d
}

func getDeps() Deps {
	depsMu.RLock()
	defer depsMu.RUnlock()
	return deps
}

// JWTSecret exposes the signing key for the router's auth middleware.
func JWTSecret() []byte {
	return []byte(getDeps().Env.JWTSecret)
}
