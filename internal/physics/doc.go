// Package physics defines the strange attractors the engine can display.
//
// The set is closed. Each entry of [Catalog] is an [Attractor] whose Params
// field holds exactly one of the typed parameter records:
//
//   - [Lorenz]: butterfly attractor
//   - [Aizawa]: sphere with a tube through its axis
//   - [Thomas]: cyclically symmetric, frictionally damped
//   - [Halvorsen]: three-fold symmetric scroll
//   - [Rossler]: single-band spiral chaos
//
// Adding a system means adding a params type, a case in [Attractor.Derive]
// and a catalog entry. Nothing else in the module changes.
//
//	att, _ := physics.Lookup("lorenz")
//	v := att.Derive(att.Initial)
package physics
