// Package identifier extracts fixed-format identifiers (CNPJ tax IDs and CEP
// postal codes) from raw document text.
//
// Matching is purely lexical: check digits are never verified, and a text with
// no matches yields an empty slice rather than an error. Callers that need the
// Nth identifier use Nth and substitute their own fallback bucket when it is
// absent.
package identifier
