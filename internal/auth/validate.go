package auth

import "regexp"

var (
	// E.164: leading + followed by 10 to 15 digits.
	phoneRe = regexp.MustCompile(`^\+[0-9]{10,15}$`)
	codeRe  = regexp.MustCompile(`^[0-9]{6}$`)
	emailRe = regexp.MustCompile(`^[^@\s]+@[^@\s]+\.[^@\s]+$`)
)

func validPhone(phone string) bool { return phoneRe.MatchString(phone) }
func validCode(code string) bool   { return codeRe.MatchString(code) }
func validEmail(email string) bool { return emailRe.MatchString(email) }
