package domain

import (
	"errors"
	"fmt"
	"strings"

	"github.com/agnivade/levenshtein"
)

// StructureType enumerates the kinds of non-product fixtures.
type StructureType string

const (
	StructureEntrance     StructureType = "entrance"
	StructureExit         StructureType = "exit"
	StructureEntranceExit StructureType = "entrance_exit"
	StructureCashCounter  StructureType = "cash_counter"
	StructureBlocker      StructureType = "blocker"
)

// StructureTypes lists every valid StructureType.
var StructureTypes = []StructureType{
	StructureEntrance,
	StructureExit,
	StructureEntranceExit,
	StructureCashCounter,
	StructureBlocker,
}

var ErrUnknownStructureType = errors.New("unknown structure object type")

// maxTypeDistance bounds how far a spelling may drift from a known type name
// and still be accepted.
const maxTypeDistance = 2

// Valid reports whether t is one of StructureTypes.
func (t StructureType) Valid() bool {
	for _, known := range StructureTypes {
		if t == known {
			return true
		}
	}
	return false
}

// IsEntrance reports whether customers can enter through t.
func (t StructureType) IsEntrance() bool {
	return t == StructureEntrance || t == StructureEntranceExit
}

// IsExit reports whether customers can leave through t.
func (t StructureType) IsExit() bool {
	return t == StructureExit || t == StructureEntranceExit
}

// ParseStructureType maps s onto a StructureType. Case, surrounding space and
// separators are ignored ("Cash Counter", "cash-counter"), and small typos are
// corrected. Anything further away returns ErrUnknownStructureType.
func ParseStructureType(s string) (StructureType, error) {
	key := strings.ToLower(strings.TrimSpace(s))
	key = strings.NewReplacer(" ", "_", "-", "_", "/", "_").Replace(key)
	if key == "" {
		return "", fmt.Errorf("%w: empty", ErrUnknownStructureType)
	}
	if t := StructureType(key); t.Valid() {
		return t, nil
	}
	var best StructureType
	bestDist := maxTypeDistance + 1
	for _, t := range StructureTypes {
		d := levenshtein.ComputeDistance(key, string(t))
		if d < bestDist {
			best, bestDist = t, d
		}
	}
	if best == "" {
		return "", fmt.Errorf("%w: %q", ErrUnknownStructureType, s)
	}
	return best, nil
}
