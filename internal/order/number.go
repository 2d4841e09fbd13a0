package order

import (
	"crypto/rand"
	"io"
	"math/big"
	"strconv"
	"strings"
	"time"
)

const (
	numberPrefix    = "DK"
	numberRandomLen = 5
	base36Alphabet  = "0123456789abcdefghijklmnopqrstuvwxyz"
)

// GenerateNumber returns "DK" + base36(unix millis) + 5 random base36 chars,
// uppercased. Two numbers collide only if both the millisecond and the random
// suffix match, which is possible but not expected within a session.
func GenerateNumber() string {
	return generateNumber(time.Now(), rand.Reader)
}

func generateNumber(now time.Time, r io.Reader) string {
	millis := now.UnixMilli()

	var b strings.Builder
	b.WriteString(numberPrefix)
	b.WriteString(strconv.FormatInt(millis, 36))

	limit := big.NewInt(int64(len(base36Alphabet)))
	for i := 0; i < numberRandomLen; i++ {
		n, err := rand.Int(r, limit)
		if err != nil {
			// fallback: time-based entropy
			n = big.NewInt((now.UnixNano() >> (i * 5)) % int64(len(base36Alphabet)))
		}
		b.WriteByte(base36Alphabet[n.Int64()])
	}

	return strings.ToUpper(b.String())
}
