package token

// Kind represents the category of a flat token.
type Kind uint8

const (
	// Invalid indicates an erroneous token.
	Invalid Kind = iota
	// EOF marks the end of the source input.
	EOF
	// Ident represents an identifier, keywords included.
	Ident
	// IntLit represents an integer literal, with an optional type suffix.
	IntLit
	// FloatLit represents a floating point literal.
	FloatLit
	// StringLit represents a string literal.
	StringLit
	// CharLit represents a character literal.
	CharLit
	// Punct represents a single punctuation character.
	Punct
)

func (k Kind) String() string {
	switch k {
	case Invalid:
		return "Invalid"
	case EOF:
		return "EOF"
	case Ident:
		return "Ident"
	case IntLit:
		return "IntLit"
	case FloatLit:
		return "FloatLit"
	case StringLit:
		return "StringLit"
	case CharLit:
		return "CharLit"
	case Punct:
		return "Punct"
	default:
		return "Kind(?)"
	}
}
