package utils

import (
	"crypto/rand"
	"math/big"
	"os"
	"strings"
	"time"
)

// EnvOrDefault returns the env value or the fallback default.
func EnvOrDefault(key, def string) string {
	v := os.Getenv(key)
	if strings.TrimSpace(v) == "" {
		return def
	}
	return v
}

const referenceCharset = "ABCDEFGHIJKLMNOPQRSTUVWXYZ0123456789"

// GenerateReferenceCode produces the human-facing booking code, e.g.
// BK20240601150405-7GQ2. Uniqueness is enforced by the database index; the
// random suffix keeps same-second submissions apart.
func GenerateReferenceCode() string {
	suffix := make([]byte, 4)
	for i := range suffix {
		n, err := rand.Int(rand.Reader, big.NewInt(int64(len(referenceCharset))))
		if err != nil {
			// crypto/rand failing is unrecoverable for codes; fall back to a
			// fixed char rather than panic in the booking path.
			suffix[i] = 'X'
			continue
		}
		suffix[i] = referenceCharset[n.Int64()]
	}
	return "BK" + time.Now().UTC().Format("20060102150405") + "-" + string(suffix)
}
