package reservations

import (
	"errors"
	"fmt"
	"math/rand/v2"
)

const (
	idPrefix      = "#"
	idMin         = 100000
	idMax         = 999999
	idMaxAttempts = 64
)

var ErrIDSpaceExhausted = errors.New("could not find a free reservation id")

// IDGenerator hands out display ids of the form #NNNNNN.
type IDGenerator struct {
	intN func(n int) int
}

// NewIDGenerator returns a generator backed by intN, which must return a
// value in [0, n). A nil intN uses math/rand/v2.
func NewIDGenerator(intN func(n int) int) *IDGenerator {
	if intN == nil {
		intN = rand.IntN
	}
	return &IDGenerator{intN: intN}
}

// Next draws ids until one is not taken. Ids already in the store are
// skipped, so collisions with existing rows never reach the store.
func (g *IDGenerator) Next(taken func(id string) bool) (string, error) {
	for range idMaxAttempts {
		id := fmt.Sprintf("%s%d", idPrefix, idMin+g.intN(idMax-idMin+1))
		if taken == nil || !taken(id) {
			return id, nil
		}
	}
	return "", ErrIDSpaceExhausted
}
