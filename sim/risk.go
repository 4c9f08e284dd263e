package sim

import (
	"encoding/json"
	"fmt"
	"time"
)

// RiskLevel classifies confirmation urgency, ordered by severity.
type RiskLevel int

const (
	RiskLow RiskLevel = iota
	RiskMedium
	RiskHigh
	RiskVeryHigh
)

func (r RiskLevel) String() string {
	switch r {
	case RiskLow:
		return "Low"
	case RiskMedium:
		return "Medium"
	case RiskHigh:
		return "High"
	case RiskVeryHigh:
		return "Very High"
	}
	return fmt.Sprintf("RiskLevel(%d)", int(r))
}

func (r RiskLevel) MarshalJSON() ([]byte, error) {
	return json.Marshal(r.String())
}

func (r *RiskLevel) UnmarshalJSON(b []byte) error {
	var s string
	if err := json.Unmarshal(b, &s); err != nil {
		return err
	}
	switch s {
	case "Low":
		*r = RiskLow
	case "Medium":
		*r = RiskMedium
	case "High":
		*r = RiskHigh
	case "Very High":
		*r = RiskVeryHigh
	default:
		return fmt.Errorf("unknown risk level %q", s)
	}
	return nil
}

// RiskThresholds are the block-number boundaries of the classification.
// They are a calibration heuristic, not a protocol rule, hence
// configuration rather than constants.
type RiskThresholds struct {
	// Highest block number still classified Medium (blocks 2..MediumMaxBlock).
	MediumMaxBlock int `yaml:"mediummaxblock" json:"mediummaxblock"`
	// Highest block number still classified High.
	HighMaxBlock int `yaml:"highmaxblock" json:"highmaxblock"`
}

// DefaultRiskThresholds: blocks 2-3 Medium, 4-6 High, 7+ Very High.
var DefaultRiskThresholds = RiskThresholds{
	MediumMaxBlock: 3,
	HighMaxBlock:   6,
}

// Classify maps a projected block number and the fee-vs-median comparison
// to a risk level. A next-block transaction at or above the block median is
// Low; below median it is Medium, like blocks 2..MediumMaxBlock.
func (t RiskThresholds) Classify(blockNumber int, belowMedian bool) RiskLevel {
	switch {
	case blockNumber == 1 && !belowMedian:
		return RiskLow
	case blockNumber <= t.MediumMaxBlock:
		return RiskMedium
	case blockNumber <= t.HighMaxBlock:
		return RiskHigh
	}
	return RiskVeryHigh
}

// DefaultBlockInterval is the conventional average time between blocks.
const DefaultBlockInterval = 10 * time.Minute

// WaitEstimate converts a projected block number into an expected wait,
// rounded to the nearest minute. It is an estimate derived from the average
// inter-block interval, not a guarantee.
func WaitEstimate(blockNumber int, interval time.Duration) time.Duration {
	if interval <= 0 {
		interval = DefaultBlockInterval
	}
	return (time.Duration(blockNumber) * interval).Round(time.Minute)
}
