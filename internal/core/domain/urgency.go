package domain

import (
	"fmt"
	"strings"
)

type Urgency string

const (
	UrgencyNone      Urgency = ""
	UrgencyLow       Urgency = "LOW"
	UrgencyMedium    Urgency = "MEDIUM"
	UrgencyHigh      Urgency = "HIGH"
	UrgencyEmergency Urgency = "EMERGENCY"
)

// ParseUrgency accepts any casing of the four levels.
func ParseUrgency(raw string) (Urgency, error) {
	switch u := Urgency(strings.ToUpper(strings.TrimSpace(raw))); u {
	case UrgencyLow, UrgencyMedium, UrgencyHigh, UrgencyEmergency:
		return u, nil
	default:
		return UrgencyNone, fmt.Errorf("unknown urgency %q", raw)
	}
}

// Present reports whether an urgency tag was found.
func (u Urgency) Present() bool {
	return u != UrgencyNone
}
