/*
Author: KleaSCM
Email: KleaSCM@gmail.com
File: doc.go
Description: Package documentation for the pattern scorer.
*/

// Package pattern scores how consistently the rows of a text are shaped under a
// candidate dialect.
//
// The text is reduced to an abstraction (see package abstraction), split into row
// patterns and grouped into a histogram. Every distinct pattern with N occurrences and
// L cells weighs N × max(eps, (L−1)/L); the score is the mean weight over distinct
// patterns:
//
//	score := pattern.Score("a,b,c\nd,e,f\n", dialect.New(',', '"', dialect.None), pattern.DefaultEps)
//
// All functions are pure and safe for concurrent use with any mix of dialects.
package pattern
