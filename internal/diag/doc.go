// Package diag defines the diagnostic model shared by the lexer, the token
// tree builder, the expansion engine and the driver.
//
// Diagnostic is the central record:
//
//   - Severity – Info, Warning or Error.
//   - Code – compact numeric identifier with a stable string form (LEX1001,
//     SYN2002, SEQ3003, IO4001).
//   - Message – short human text.
//   - Primary – the source.Span the finding points at.
//   - Notes – optional secondary spans (e.g. "first marker is here").
//   - Fixes – optional text edits.
//
// Producers emit through a Reporter. BagReporter collects into a Bag, which
// enforces a limit and supports sorting and deduplication. ReportBuilder
// chains notes and fixes before Emit.
//
// Package diag does no rendering or IO; that lives in internal/diagfmt.
package diag
