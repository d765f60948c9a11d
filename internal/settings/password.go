package settings

// Password is a fixed-length code of character values.
type Password [passwordLength]byte

// PasswordLength is the number of characters in a code.
const PasswordLength = passwordLength

// DefaultPassword is the factory code; a store still holding it is unprotected.
var DefaultPassword = Password{'0', '0', '0', '0'}

func (p Password) String() string {
	return string(p[:])
}

// ParsePassword copies up to PasswordLength bytes of s; missing positions stay '0'.
func ParsePassword(s string) Password {
	p := DefaultPassword
	copy(p[:], s)
	return p
}

// IncrementDigit adds one to the character at pos. The value is not clamped
// to '0'..'9'; it wraps as a byte.
func (p *Password) IncrementDigit(pos int) {
	if pos < 0 || pos >= PasswordLength {
		return
	}
	p[pos]++
}

// DecrementDigit subtracts one from the character at pos, unclamped.
func (p *Password) DecrementDigit(pos int) {
	if pos < 0 || pos >= PasswordLength {
		return
	}
	p[pos]--
}
