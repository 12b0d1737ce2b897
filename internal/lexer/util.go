package lexer

func isIdentStartByte(b byte) bool {
	return b == '_' || (b >= 'A' && b <= 'Z') || (b >= 'a' && b <= 'z')
}

func isIdentContinueByte(b byte) bool {
	return isIdentStartByte(b) || (b >= '0' && b <= '9')
}

func isDec(b byte) bool { return b >= '0' && b <= '9' }

func isOperatorByte(b byte) bool {
	switch b {
	case '+', '-', '*', '/', '=', '<', '>', '!':
		return true
	}
	return false
}

func isDelimiterByte(b byte) bool {
	switch b {
	case '(', ')', ',', '[', ']':
		return true
	}
	return false
}
