// Package deriv parses arithmetic expressions in one variable, simplifies them,
// and computes their symbolic derivatives.
//
// The syntax is ordinary infix arithmetic: numbers, variable names, the
// operators + - * / ^, parentheses, and the elementary functions cos, sin,
// tan, sec, csc, cot, their arc- inverses, ln, log, and abs. "e" and "pi" are
// constants. "x^2" is a variable with an exponent rather than a general power,
// so that the power rule can see it directly.
//
// Every variable is treated as the variable of differentiation. Simplification
// is a single bottom-up pass of fixed rewrite rules, not a canonicalizer.
package deriv
