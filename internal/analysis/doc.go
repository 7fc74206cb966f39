// Package analysis provides chaos diagnostics for three-body runs.
//
// [LyapunovExponent] follows a shadow trajectory offset from the reference one
// and measures how fast the two diverge.
package analysis
