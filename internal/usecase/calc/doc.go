// Package calc tokenizes, reorders and evaluates the short infix
// expressions found in polycheck documents, and checks =-separated
// sub-expressions of a statement for equality.
//
// The pipeline is Tokenize -> ToPostfix -> Evaluate. Only single decimal
// digits are number literals; "12" is the two literals 1 and 2.
package calc
