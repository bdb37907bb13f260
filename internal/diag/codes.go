package diag

import (
	"fmt"
)

type Code uint16

const (
	// Неизвестная ошибка
	UnknownCode Code = 0
	// Лексические
	LexInfo                     Code = 1000
	LexUnknownChar              Code = 1001
	LexUnterminatedString       Code = 1002
	LexUnterminatedBlockComment Code = 1003
	LexBadNumber                Code = 1004
	LexTokenTooLong             Code = 1005
	LexUnterminatedChar         Code = 1006

	// Деревья токенов
	SynInfo                Code = 2000
	SynUnexpectedToken     Code = 2001
	SynUnclosedDelimiter   Code = 2002
	SynMismatchedDelimiter Code = 2003

	// Заголовок seq и раскрытие
	SeqInfo              Code = 3000
	SeqMalformedHeader   Code = 3001
	SeqExpectIdent       Code = 3002
	SeqExpectIn          Code = 3003
	SeqExpectInteger     Code = 3004
	SeqExpectDotDot      Code = 3005
	SeqExpectBody        Code = 3006
	SeqTrailingTokens    Code = 3007
	SeqIntegerOutOfRange Code = 3008
	SeqMultipleMarkers   Code = 3050
	SeqRecursionLimit    Code = 3051
	SeqRoundTrip         Code = 3052
	SeqRangeTooLarge     Code = 3053

	// I/O
	IOLoadFileError  Code = 4001
	IOWriteFileError Code = 4002

	// Observability
	ObsInfo    Code = 6000
	ObsTimings Code = 6001
)

var (
	codeDescription = map[Code]string{
		UnknownCode:                 "Unknown error",
		LexInfo:                     "Lexical information",
		LexUnknownChar:              "Unknown character",
		LexUnterminatedString:       "Unterminated string literal",
		LexUnterminatedBlockComment: "Unterminated block comment",
		LexBadNumber:                "Bad number literal",
		LexTokenTooLong:             "Token too long",
		LexUnterminatedChar:         "Unterminated character literal",
		SynInfo:                     "Token tree information",
		SynUnexpectedToken:          "Unexpected token",
		SynUnclosedDelimiter:        "Unclosed delimiter",
		SynMismatchedDelimiter:      "Mismatched closing delimiter",
		SeqInfo:                     "Expansion information",
		SeqMalformedHeader:          "Malformed seq header",
		SeqExpectIdent:              "Expected loop identifier",
		SeqExpectIn:                 "Expected 'in'",
		SeqExpectInteger:            "Expected integer literal",
		SeqExpectDotDot:             "Expected '..'",
		SeqExpectBody:               "Expected braced body",
		SeqTrailingTokens:           "Unexpected tokens after body",
		SeqIntegerOutOfRange:        "Integer bound out of range",
		SeqMultipleMarkers:          "Multiple repetition markers",
		SeqRecursionLimit:           "Expansion depth limit reached",
		SeqRangeTooLarge:            "Range exceeds the iteration limit",
		SeqRoundTrip:                "Printed expansion does not re-parse to the same tree",
		IOLoadFileError:             "I/O load file error",
		IOWriteFileError:            "I/O write file error",
		ObsInfo:                     "Observability information",
		ObsTimings:                  "Pipeline timings",
	}
)

// IsMalformedHeader reports whether c belongs to the header-parsing family.
func (c Code) IsMalformedHeader() bool {
	return c >= SeqMalformedHeader && c <= SeqIntegerOutOfRange
}

func (c Code) ID() string {
	switch ic := int(c); {
	case ic >= 1000 && ic < 2000:
		return fmt.Sprintf("LEX%04d", ic)
	case ic >= 2000 && ic < 3000:
		return fmt.Sprintf("SYN%04d", ic)
	case ic >= 3000 && ic < 4000:
		return fmt.Sprintf("SEQ%04d", ic)
	case ic >= 4000 && ic < 5000:
		return fmt.Sprintf("IO%04d", ic)
	case ic >= 6000 && ic < 7000:
		return fmt.Sprintf("OBS%04d", ic)
	}
	return "E0000"
}

func (c Code) Title() string {
	desc, ok := codeDescription[c]
	if !ok {
		return codeDescription[UnknownCode]
	}
	return desc
}

func (c Code) String() string {
	return fmt.Sprintf("[%s]: %s", c.ID(), c.Title())
}
