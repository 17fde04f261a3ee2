// Package analysis characterises an attractor independently of the particle
// field.
//
//   - [LyapunovExponent]: largest Lyapunov exponent via renormalised separation
//   - [DominantFrequency]: strongest oscillation of one coordinate (go-dsp FFT)
//   - [BifurcationDiagram]: local maxima of one coordinate under a parameter sweep
//   - [GeneratePhasePortrait]: 2D projection of a trajectory
//   - [GeneratePoincareSection]: plane crossings of a trajectory
//
// # Chaos Detection
//
// A positive largest Lyapunov exponent indicates chaotic dynamics:
//
//	lambda := analysis.LyapunovExponent(att, integ, att.Initial, att.Step, 20000, 2000, 1e-8)
//	if lambda > 0 {
//	    // System is chaotic
//	}
package analysis
