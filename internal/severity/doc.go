// Package severity classifies ROP-derivative values into the four ordered
// risk bands green < yellow < orange < red.
//
// Classification is a pure, total function of the value and three ascending
// cutoffs (Thresholds). A value exactly on a cutoff falls into the lower
// band, and NaN, the representation of an undefined derivative, always
// classifies as green.
package severity
