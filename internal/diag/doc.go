// Package diag defines the diagnostic model shared by every compiler phase.
//
// # Purpose
//
// Producers (lexer, parser, the semantic passes, the generator wrapper in the
// driver) emit findings through the Reporter interface without knowing where
// they are stored. Bag is the default sink and is owned per source file, so a
// failing file never hides the diagnostics of its siblings.
//
// # Data model
//
//   - Severity: Info, Warning, Error.
//   - Code: compact numeric id with a stable string form (LEX1001, SYN2003, ...).
//   - Message: short human text, already formatted by the producer.
//   - Primary: the source.Span the finding points at.
//   - Notes: optional secondary spans.
//
// Rendering lives in internal/diagfmt.
package diag
