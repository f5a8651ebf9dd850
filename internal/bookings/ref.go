package bookings

import (
	"crypto/rand"
	"fmt"
	"math/big"
	"time"
)

const refCharset = "ABCDEFGHIJKLMNOPQRSTUVWXYZ"

// GenerateBookingRef produces a human-readable booking reference like
// SP-20260830-KQZMWR. The random suffix uses crypto/rand so references are
// not guessable.
func GenerateBookingRef() (string, error) {
	suffix := make([]byte, 6)
	for i := range suffix {
		n, err := rand.Int(rand.Reader, big.NewInt(int64(len(refCharset))))
		if err != nil {
			return "", fmt.Errorf("failed to generate booking reference: %w", err)
		}
		suffix[i] = refCharset[n.Int64()]
	}
	return fmt.Sprintf("SP-%s-%s", time.Now().Format("20060102"), string(suffix)), nil
}
