package security

import (
	"crypto/hmac"
	"crypto/sha256"
	"encoding/base64"
	"encoding/hex"
	"log"
	"strings"
)

// ValidTicketmasterSignature checks the HMAC-SHA256 hex digest of the
// raw payload against the signature header. An optional "sha256=" prefix
// on the header is stripped before comparison.
func ValidTicketmasterSignature(payload []byte, signature, secret string) bool {
	if secret == "" {
		log.Print("[security] ticketmaster webhook secret not configured")
		return false
	}
	mac := hmac.New(sha256.New, []byte(secret))
	mac.Write(payload)
	expected := mac.Sum(nil)

	clean := strings.TrimPrefix(signature, "sha256=")
	got, err := hex.DecodeString(clean)
	if err != nil {
		log.Printf("[security] ticketmaster signature decode: %v", err)
		return false
	}
	return hmac.Equal(got, expected)
}

// ValidEventbriteSignature checks the HMAC-SHA256 base64 digest of the
// raw payload against the signature header, taken verbatim.
func ValidEventbriteSignature(payload []byte, signature, secret string) bool {
	if secret == "" {
		log.Print("[security] eventbrite webhook secret not configured")
		return false
	}
	mac := hmac.New(sha256.New, []byte(secret))
	mac.Write(payload)
	expected := base64.StdEncoding.EncodeToString(mac.Sum(nil))
	return hmac.Equal([]byte(signature), []byte(expected))
}
