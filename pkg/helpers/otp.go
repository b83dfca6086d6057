package helpers

import (
	"crypto/rand"
	"fmt"
	"regexp"
)

// OTP helpers. Codes live in Redis under these keys with a fixed TTL, so
// they expire without any cleanup pass and the store can be swapped for any
// expiring key-value service.

// KeyMobileOTP is the Redis key for a login code sent to a mobile number.
func KeyMobileOTP(mobile string) string {
	return "otp:mobile:" + mobile
}

// KeyEmailOTP is the Redis key for a verification code sent to an email.
func KeyEmailOTP(email string) string {
	return "otp:email:" + email
}

// GenOTPCode generates a secure random 6-digit code as a zero-padded string
func GenOTPCode() (string, error) {
	b := make([]byte, 4)
	if _, err := rand.Read(b); err != nil {
		return "", err
	}
	n := int(b[0])<<24 | int(b[1])<<16 | int(b[2])<<8 | int(b[3])
	if n < 0 {
		n = -n
	}
	return fmt.Sprintf("%06d", n%1000000), nil
}

var emailRe = regexp.MustCompile(`^[a-zA-Z0-9._%+-]+@[a-zA-Z0-9.-]+\.[a-zA-Z]{2,}$`)

// IsEmail reports whether the identifier looks like an email address rather
// than a mobile number.
func IsEmail(identifier string) bool {
	return emailRe.MatchString(identifier)
}
