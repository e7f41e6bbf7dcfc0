// Package conversion maps raw channel values to physical values.
//
// Supported ASAM conversion types:
//
//	0  identity          phys = raw
//	1  linear            phys = P1 + P2*raw
//	2  rational          phys = (P1*raw² + P2*raw + P3) / (P4*raw² + P5*raw + P6)
//	4  table, interp     (key, value) pairs, linear interpolation
//	5  table             (key, value) pairs, nearest key
//	6  range table       (min, max, value) triples followed by a default value
//
// Algebraic (3) and the text based types (7..11) are recognised but Eval
// reports them as unsupported and leaves the value raw.
package conversion
