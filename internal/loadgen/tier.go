package loadgen

import (
	"fmt"
	"strings"
	"time"
)

// Tier is a predefined request rate.
type Tier struct {
	Key         string
	Interval    time.Duration
	Description string
}

var (
	// Low sends one request every two seconds.
	Low = Tier{Key: "low", Interval: 2000 * time.Millisecond, Description: "Low Load (1 req/2s)"}
	// Medium sends two requests per second.
	Medium = Tier{Key: "medium", Interval: 500 * time.Millisecond, Description: "Medium Load (2 req/s)"}
	// High sends ten requests per second.
	High = Tier{Key: "high", Interval: 100 * time.Millisecond, Description: "High Load (10 req/s)"}
)

// Tiers returns every tier, slowest first.
func Tiers() []Tier {
	return []Tier{Low, Medium, High}
}

// ParseTier looks a tier up by key, case-insensitively.
func ParseTier(key string) (Tier, error) {
	for _, t := range Tiers() {
		if strings.EqualFold(t.Key, key) {
			return t, nil
		}
	}
	return Tier{}, fmt.Errorf("unknown load tier %q (want low, medium or high)", key)
}

// String returns the tier description.
func (t Tier) String() string {
	return t.Description
}
