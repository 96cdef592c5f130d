// Package adjust implements the tonal adjustment engine: brightness,
// contrast, and a sigmoid tone curve applied through a 256-entry lookup
// table.
//
// The pixel transform order is fixed and not commutative: contrast and
// brightness are applied first, the curve second. Alpha is never touched.
package adjust
