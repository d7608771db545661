package common

import (
	"crypto/rand"
	"fmt"
	"math/big"
)

// decodeIDSpace bounds the random suffix of NewDecodeID; ViewState decodes
// have no natural UID namespace the way DICOM instances do, so this is
// just wide enough to make collisions in one log stream implausible.
var decodeIDSpace = big.NewInt(1 << 40)

// NewDecodeID returns a short random identifier for correlating the log
// lines of one decode call, repurposed from the teacher's UID-generation
// helpers (GetImplementationUID/NewRandInstanceUID) for a domain that has
// no UID concept of its own.
func NewDecodeID() string {
	n, err := rand.Int(rand.Reader, decodeIDSpace)
	if err != nil {
		return "dec-0"
	}
	return fmt.Sprintf("dec-%x", n)
}
