package objproc

import "math"

// isBlank reports whether c separates tokens inside a record.
func isBlank(c byte) bool {
	return c == ' ' || c == '\t' || c == '\v'
}

// isTrimSpace reports whether c is stripped from line ends, including
// the stray '\r' left by CRLF line endings.
func isTrimSpace(c byte) bool {
	switch c {
	case ' ', '\t', '\n', '\v', '\f', '\r':
		return true
	}
	return false
}

func isDigit(c byte) bool {
	return c >= '0' && c <= '9'
}

// atEOL reports end of record: the cursor ran off the line or reached a
// stray carriage return or NUL terminator.
func atEOL(b []byte, i int) bool {
	return i >= len(b) || b[i] == '\r' || b[i] == 0
}

// skipBlank advances the cursor past token separators.
func skipBlank(b []byte, i int) int {
	for i < len(b) && isBlank(b[i]) {
		i++
	}
	return i
}

// trimLine returns b without leading and trailing whitespace. It
// subslices in place and never allocates.
func trimLine(b []byte) []byte {
	start := 0
	for start < len(b) && isTrimSpace(b[start]) {
		start++
	}

	end := len(b)
	for end > start && isTrimSpace(b[end-1]) {
		end--
	}

	return b[start:end]
}

// scanInt reads a signed decimal integer from b starting at cursor i,
// skipping leading spaces and tabs and accepting an optional sign.
// Digits accumulate by multiply-by-10-and-add with native wraparound; no
// overflow check. ok is false iff no digit was consumed, in which case
// the returned cursor equals i so callers can distinguish end-of-record
// from a malformed token.
func scanInt(b []byte, i int) (value, next int, ok bool) {
	p := i
	for p < len(b) && (b[p] == ' ' || b[p] == '\t') {
		p++
	}

	negative := false
	if p < len(b) {
		switch b[p] {
		case '-':
			negative = true
			p++
		case '+':
			p++
		}
	}

	digits := p
	for p < len(b) && isDigit(b[p]) {
		value = value*10 + int(b[p]-'0')
		p++
	}
	if p == digits {
		return 0, i, false
	}

	if negative {
		value = -value
	}
	return value, p, true
}

// scanFloat reads a decimal floating-point token from b starting at
// cursor i: optional sign, integer part, optional fraction after '.',
// optional exponent after 'e'/'E' with its own optional sign, combined
// as mantissa * 10^exponent. ok is false iff no digit was consumed
// anywhere, in which case the returned cursor equals i.
func scanFloat(b []byte, i int) (value float32, next int, ok bool) {
	p := i
	for p < len(b) && (b[p] == ' ' || b[p] == '\t') {
		p++
	}

	negative := false
	if p < len(b) {
		switch b[p] {
		case '-':
			negative = true
			p++
		case '+':
			p++
		}
	}

	digits := false
	for p < len(b) && isDigit(b[p]) {
		value = value*10 + float32(b[p]-'0')
		digits = true
		p++
	}

	if p < len(b) && b[p] == '.' {
		p++
		factor := float32(0.1)
		for p < len(b) && isDigit(b[p]) {
			value += factor * float32(b[p]-'0')
			factor *= 0.1
			digits = true
			p++
		}
	}

	if p < len(b) && (b[p] == 'e' || b[p] == 'E') {
		p++
		negExp := false
		if p < len(b) {
			switch b[p] {
			case '-':
				negExp = true
				p++
			case '+':
				p++
			}
		}

		exponent := 0
		for p < len(b) && isDigit(b[p]) {
			exponent = exponent*10 + int(b[p]-'0')
			digits = true
			p++
		}

		if negExp {
			exponent = -exponent
		}
		value *= float32(math.Pow(10, float64(exponent)))
	}

	if !digits {
		return 0, i, false
	}

	if negative {
		value = -value
	}
	return value, p, true
}
