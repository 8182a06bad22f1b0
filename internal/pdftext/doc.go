// Package pdftext turns PDF files into plain text for identifier extraction.
//
// Reader is the production Extractor backed by github.com/ledongthuc/pdf. It
// concatenates the plain text of every page in order; a page that fails to
// decode contributes an empty string instead of aborting the document. Files
// that cannot be opened or parsed at all return errors tagged with
// services.ErrUnreadable so callers can downgrade them to "no identifiers".
package pdftext
