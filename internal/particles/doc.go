// Package particles maintains the live population of attractor trajectories.
//
// A [Field] is built for one attractor: a warm-up trajectory provides a
// reference sample, the sample's bounding box fixes the normalization
// transform, and every particle head is seeded from the sample with a small
// jitter. [Field.Advance] integrates all heads, shifting optional trails,
// and rewrites the flat float32 render buffers in place.
//
// Heads that blow up (NaN, Inf or beyond the divergence limit) are replaced by
// a jittered copy of the attractor's initial state. This is counted in
// [Stats] and never reported as an error.
//
// # Buffer layout
//
// Vertex v = p*TrailLength + t, with t = 0 the head of particle p.
// Positions and Colors hold 3 floats per vertex, Alpha and Size hold 1.
package particles
