package duty

import (
	"fmt"
	"strings"
)

// Kind is the category of a logged activity.
type Kind int

const (
	KindFlight Kind = iota + 1
	KindSimATD
	KindGround
	KindOther
)

// Kinds lists every Kind in display order.
var Kinds = []Kind{KindFlight, KindSimATD, KindGround, KindOther}

func (k Kind) String() string {
	switch k {
	case KindFlight:
		return "Flight"
	case KindSimATD:
		return "SIM/ATD"
	case KindGround:
		return "Ground"
	case KindOther:
		return "Other"
	}
	return fmt.Sprintf("Kind(%d)", int(k))
}

// ParseKind accepts the display name of a kind, case-insensitively. "sim" and
// "atd" are accepted for SIM/ATD.
func ParseKind(s string) (Kind, error) {
	switch strings.ToLower(strings.TrimSpace(s)) {
	case "flight":
		return KindFlight, nil
	case "sim/atd", "sim", "atd", "simatd":
		return KindSimATD, nil
	case "ground":
		return KindGround, nil
	case "other":
		return KindOther, nil
	}
	return 0, fmt.Errorf("unknown activity kind %q", s)
}

// IsValid reports whether k is one of the defined kinds.
func (k Kind) IsValid() bool {
	switch k {
	case KindFlight, KindSimATD, KindGround, KindOther:
		return true
	}
	return false
}

// Qualifying reports whether time of this kind counts as contact time.
// Administrative ("Other") time never does.
func (k Kind) Qualifying() bool {
	switch k {
	case KindFlight, KindSimATD, KindGround:
		return true
	case KindOther:
		return false
	}
	return false
}

// AllowsPrePost reports whether pre/post ground time may be logged against
// an activity of this kind.
func (k Kind) AllowsPrePost() bool {
	switch k {
	case KindFlight, KindSimATD:
		return true
	case KindGround, KindOther:
		return false
	}
	return false
}

func (k Kind) MarshalText() ([]byte, error) {
	if !k.IsValid() {
		return nil, fmt.Errorf("invalid activity kind %d", int(k))
	}
	return []byte(k.String()), nil
}

func (k *Kind) UnmarshalText(b []byte) error {
	v, err := ParseKind(string(b))
	if err != nil {
		return err
	}
	*k = v
	return nil
}
