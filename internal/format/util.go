package format

func isWordByte(b byte) bool {
	return b == '_' || b >= 0x80 ||
		(b >= 'a' && b <= 'z') || (b >= 'A' && b <= 'Z') || (b >= '0' && b <= '9')
}

// fuses reports whether writing next right after prev would glue two
// tokens into one when re-lexed.
func fuses(prev, next byte, prevAlonePunct bool) bool {
	if prev == 0 {
		return false
	}
	if isWordByte(prev) && (isWordByte(next) || next == '\'' || next == '"') {
		return true
	}
	if prevAlonePunct && isPunctByte(next) {
		return true
	}
	// `/` перед `/` или `*` открыл бы комментарий
	return prev == '/' && (next == '/' || next == '*')
}

func isPunctByte(b byte) bool {
	switch b {
	case '=', '<', '>', '!', '~', '+', '-', '*', '/', '%', '^', '&', '|', '@', '.', ',', ';', ':', '#', '$', '?', '\'':
		return true
	}
	return false
}
