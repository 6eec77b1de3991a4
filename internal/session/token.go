package session

import (
	"time"

	"github.com/golang-jwt/jwt/v5"
)

// TokenValid reports whether the upstream bearer token looks usable: well
// formed and not past its exp claim. The signature is NOT verified here (the
// gateway does not hold the upstream signing secret); the upstream API is
// the authority and will reject a forged token with a 401 anyway. This only
// avoids sending tokens that are already known to be expired.
func TokenValid(token string) bool {
	if token == "" {
		return false
	}
	parsed, _, err := jwt.NewParser().ParseUnverified(token, jwt.MapClaims{})
	if err != nil {
		return false
	}
	exp, err := parsed.Claims.GetExpirationTime()
	if err != nil || exp == nil {
		return false
	}
	return exp.After(time.Now())
}
