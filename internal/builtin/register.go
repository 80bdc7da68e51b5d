// Copyright 2026 Marcelo Cantos
// SPDX-License-Identifier: Apache-2.0

package builtin

// RegisterAll adds every builtin to the registry.
func RegisterAll(r *Registry) {
	r.Register(&Cd{})
	r.Register(&Exit{})
	r.Register(&History{})
}
