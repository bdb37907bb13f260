// Package token defines the flat lexical tokens produced by the lexer.
// Invariants:
//   - Token.Text is exactly the source slice covered by Token.Span, except for
//     identifiers, whose Text is NFC-normalized.
//   - Punctuation is always one character per token; multi-character operators
//     such as `..` or `->` are sequences of Punct tokens where every token but
//     the last is Joint.
//   - Delimiters ( ) [ ] { } are Punct tokens here; the tree package pairs them
//     into groups.
//   - Whitespace and comments are never tokens. They are attached to the next
//     token as Leading trivia.
package token
