package policy

import (
	"os"

	"github.com/rotisserie/eris"
	"gopkg.in/yaml.v3"
)

// Rules holds the thresholds that gate each recommendation.
type Rules struct {
	// JunctionSeverity triggers the junction recommendation when the
	// mean severity at junctions exceeds it.
	JunctionSeverity float64 `yaml:"junction_severity"`
	// SignalSeverity triggers the signal-timing recommendation when
	// the mean severity at signaled intersections exceeds it.
	SignalSeverity float64 `yaml:"signal_severity"`
	// PeakHourStart/PeakHourEnd bound the evening commute window
	// called out by the temporal recommendation.
	PeakHourStart int `yaml:"peak_hour_start"`
	PeakHourEnd   int `yaml:"peak_hour_end"`
}

// DefaultRules returns the built-in thresholds.
func DefaultRules() Rules {
	return Rules{
		JunctionSeverity: 2.5,
		SignalSeverity:   2.3,
		PeakHourStart:    16,
		PeakHourEnd:      19,
	}
}

// LoadRules reads thresholds from a YAML file, starting from the
// defaults so a partial file only overrides what it names.
func LoadRules(path string) (Rules, error) {
	rules := DefaultRules()

	data, err := os.ReadFile(path)
	if err != nil {
		return rules, eris.Wrapf(err, "policy: read rules %s", path)
	}
	if err := yaml.Unmarshal(data, &rules); err != nil {
		return rules, eris.Wrapf(err, "policy: parse rules %s", path)
	}
	return rules, nil
}
