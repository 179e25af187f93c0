package macro

// Register bounds.
const (
	MinLetterRegister = 'a'
	MaxLetterRegister = 'z'
	MinDigitRegister  = '0'
	MaxDigitRegister  = '9'
)

// IsValidRegister returns true if r is a lowercase letter or a digit.
func IsValidRegister(r rune) bool {
	return (r >= MinLetterRegister && r <= MaxLetterRegister) ||
		(r >= MinDigitRegister && r <= MaxDigitRegister)
}

// NormalizeRegister maps uppercase letters to lowercase. Invalid registers
// return 0.
func NormalizeRegister(r rune) rune {
	if r >= 'A' && r <= 'Z' {
		r += 'a' - 'A'
	}
	if IsValidRegister(r) {
		return r
	}
	return 0
}
