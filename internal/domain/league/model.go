package league

import (
	"fmt"
	"strings"
)

const MaxCodeLength = 10

// League is a sport league whose teams and schedule are mirrored from the feed.
type League struct {
	Code      string
	SportTag  string
	LeagueTag string
	Name      string
	Active    bool
}

// NormalizeCode returns the canonical form of a league code.
func NormalizeCode(code string) string {
	return strings.ToUpper(strings.TrimSpace(code))
}

func (l League) Validate() error {
	code := NormalizeCode(l.Code)
	if code == "" {
		return fmt.Errorf("league code is required")
	}
	if len(code) > MaxCodeLength {
		return fmt.Errorf("league code %q exceeds %d characters", code, MaxCodeLength)
	}
	if strings.TrimSpace(l.SportTag) == "" {
		return fmt.Errorf("league %s sport tag is required", code)
	}
	if strings.TrimSpace(l.LeagueTag) == "" {
		return fmt.Errorf("league %s league tag is required", code)
	}
	if strings.TrimSpace(l.Name) == "" {
		return fmt.Errorf("league %s name is required", code)
	}

	return nil
}
