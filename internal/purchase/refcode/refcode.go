// Package refcode generates transaction references and recharge codes.
//
// References are ULIDs under a fixed prefix: crypto-random entropy,
// monotonic within the process, and lexicographically sortable by creation
// time. Recharge codes are 20 uniformly random digits. Both carry a unique
// constraint at the storage layer as the collision backstop.
package refcode

import (
	"crypto/rand"
	"math/big"
	"sync"
	"time"

	"github.com/oklog/ulid/v2"
)

const (
	referencePrefix    = "WYF"
	rechargeCodeLength = 20
)

var (
	entropyMu sync.Mutex
	entropy   = ulid.Monotonic(rand.Reader, 0)
)

// NewReference returns a new transaction reference for the given time.
func NewReference(t time.Time) string {
	entropyMu.Lock()
	defer entropyMu.Unlock()
	return referencePrefix + ulid.MustNew(ulid.Timestamp(t), entropy).String()
}

// NewRechargeCode returns a 20-digit numeric recharge code.
func NewRechargeCode() (string, error) {
	buf := make([]byte, 0, rechargeCodeLength)
	ten := big.NewInt(10)
	for i := 0; i < rechargeCodeLength; i++ {
		n, err := rand.Int(rand.Reader, ten)
		if err != nil {
			return "", err
		}
		buf = append(buf, byte('0'+n.Int64()))
	}
	return string(buf), nil
}
