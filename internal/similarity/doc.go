// Package similarity decides whether two folder names refer to the same
// company.
//
// Names are normalized (non-alphanumerics removed, lowercased) and compared
// first by containment, then by a similarity ratio against a threshold. The
// default ratio is the matching-blocks ratio 2*M/T; a Levenshtein-based ratio
// is available for names that differ by scattered typos.
package similarity
