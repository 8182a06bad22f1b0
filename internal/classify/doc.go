// Package classify turns a folder listing into ordered groups of filenames.
//
// ScanDir and LoadDocuments discover PDFs and pull identifiers out of their
// text; Groups preserves first-seen key order so every run lays files out in
// the same sequence. Keys come either from the Nth identifier of a document
// (ByIdentifier) or from the filename itself (CompanyName,
// TrailingDigitsTrimmed, ParseBoletoName).
package classify
