package credential

import (
	"crypto/rand"
	"math/big"
	"strconv"
	"time"
)

var (
	otpFloor = int64(100000)
	otpSpan  = big.NewInt(900000)
)

// GenerateOTP returns a six digit code drawn uniformly from [100000, 999999].
func GenerateOTP() string {
	n, err := rand.Int(rand.Reader, otpSpan)
	if err != nil {
		panic("credential: crypto/rand unavailable: " + err.Error())
	}
	return strconv.FormatInt(otpFloor+n.Int64(), 10)
}

// GenerateToken returns an opaque session token: 128 random bits in base 36
// followed by the current millisecond timestamp in base 36.
func GenerateToken() string {
	buf := make([]byte, 16)
	if _, err := rand.Read(buf); err != nil {
		panic("credential: crypto/rand unavailable: " + err.Error())
	}
	return new(big.Int).SetBytes(buf).Text(36) + strconv.FormatInt(time.Now().UnixMilli(), 36)
}
