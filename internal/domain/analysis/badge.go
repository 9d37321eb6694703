package analysis

import "strings"

// Badge is the three-way display bucket for a classification.
type Badge string

const (
	BadgeFake      Badge = "FAKE"
	BadgeReal      Badge = "REAL"
	BadgeUncertain Badge = "UNCERTAIN"
)

// BadgeFor maps a free-form classification onto a Badge. "Possibly Fake"
// and anything unrecognised land in BadgeUncertain.
func BadgeFor(classification string) Badge {
	c := strings.ToLower(classification)
	switch {
	case strings.Contains(c, "fake") && !strings.Contains(c, "possibly"):
		return BadgeFake
	case strings.Contains(c, "real"):
		return BadgeReal
	default:
		return BadgeUncertain
	}
}
