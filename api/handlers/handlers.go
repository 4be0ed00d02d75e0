// Package handlers exposes the read-only query endpoints over the
// monitoring and weather warehouse tables.
package handlers

import (
	"strconv"

	"github.com/koshai/npdes/api/store"
)

// DataStore is the shared warehouse store, set once from main via Init.
// Tests swap it for a store over a fake or containerized warehouse.
var DataStore *store.Store

// Init wires the store the handlers query against.
func Init(s *store.Store) {
	DataStore = s
}

// parseLimit coerces the limit query param. Missing or non-integer values
// fall back to def; non-positive values do too.
func parseLimit(raw string, def int) int {
	if raw == "" {
		return def
	}
	n, err := strconv.Atoi(raw)
	if err != nil || n <= 0 {
		return def
	}
	return n
}
