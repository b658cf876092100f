package policy

import (
	"os"
	"path/filepath"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/munimx/Road-Accident-Hotspot-Detection/internal/model"
)

func at(hour int, day time.Weekday) model.EventTime {
	// 2021-03-01 is a Monday.
	base := time.Date(2021, 3, 1, hour, 0, 0, 0, time.UTC)
	offset := (int(day) - int(base.Weekday()) + 7) % 7
	return model.NewEventTime(base.AddDate(0, 0, offset))
}

func TestAnalyze_CrossTabs(t *testing.T) {
	records := []model.Accident{
		{Severity: 4, State: "CA", WeatherCondition: "Rain", Junction: true, DistanceMi: 2, StartTime: at(17, time.Monday)},
		{Severity: 3, State: "CA", WeatherCondition: "Rain", Junction: true, DistanceMi: 0, StartTime: at(17, time.Tuesday)},
		{Severity: 2, State: "OH", WeatherCondition: "Clear", TrafficSignal: true, DistanceMi: 1, StartTime: at(8, time.Monday)},
		{Severity: 1, State: "OH", WeatherCondition: "", Crossing: true, StartTime: at(17, time.Monday)},
	}

	a := Analyze(records)
	assert.Equal(t, 4, a.Records)

	// Features sorted by avg severity desc: Junction 3.5, Signal 2, Crossing 1.
	require.Len(t, a.Features, 3)
	assert.Equal(t, "Junction", a.Features[0].Feature)
	assert.InDelta(t, 3.5, a.Features[0].AvgSeverity, 1e-9)
	assert.Equal(t, 2, a.Features[0].Count)
	assert.InDelta(t, 0.5, a.Features[0].Share, 1e-9)
	assert.Equal(t, "Traffic_Signal", a.Features[1].Feature)
	assert.Equal(t, "Crossing", a.Features[2].Feature)

	// Hour 17 has 3 accidents and ranks first.
	require.NotEmpty(t, a.Hours)
	assert.Equal(t, 17, a.Hours[0].Hour)
	assert.Equal(t, 3, a.Hours[0].Count)

	// Monday has 3 accidents.
	require.NotEmpty(t, a.Days)
	assert.Equal(t, time.Monday, a.Days[0].Day)
	assert.Equal(t, 3, a.Days[0].Count)

	// State tie broken alphabetically.
	require.Len(t, a.States, 2)
	assert.Equal(t, "CA", a.States[0].State)
	assert.InDelta(t, 3.5, a.States[0].AvgSeverity, 1e-9)
	assert.InDelta(t, 1.0, a.States[0].AvgDistance, 1e-9)

	// Blank weather is excluded.
	require.Len(t, a.Weather, 2)
	assert.Equal(t, "Rain", a.Weather[0].Condition)
	assert.Equal(t, 2, a.Weather[0].Count)
}

func TestRecommend_ThresholdGating(t *testing.T) {
	records := []model.Accident{
		{Severity: 4, Junction: true, WeatherCondition: "Rain", StartTime: at(17, time.Monday)},
		{Severity: 3, Junction: true, WeatherCondition: "Rain", StartTime: at(17, time.Monday)},
		{Severity: 2, TrafficSignal: true, WeatherCondition: "Clear", StartTime: at(8, time.Monday)},
	}
	a := Analyze(records)

	recs := Recommend(a, DefaultRules())
	titles := make([]string, len(recs))
	for i, r := range recs {
		titles[i] = r.Title
	}

	// Junction avg 3.5 > 2.5 triggers; signal avg 2.0 < 2.3 does not.
	assert.Contains(t, titles, "Junction safety improvements")
	assert.NotContains(t, titles, "Traffic signal optimization")

	// Always-on recommendations.
	assert.Contains(t, titles, "Hotspot-based interventions")
	assert.Contains(t, titles, "Weather-related safety")
	assert.Contains(t, titles, "Temporal interventions")
	assert.Contains(t, titles, "Data-driven monitoring")

	// Peak hour 17 falls inside the default commute window.
	for _, r := range recs {
		if r.Title == "Temporal interventions" {
			assert.Contains(t, r.Rationale, "evening commute")
		}
	}
}

func TestRecommend_EmptyAnalysis(t *testing.T) {
	a := Analyze(nil)
	recs := Recommend(a, DefaultRules())

	// Only the data-independent recommendations remain.
	require.Len(t, recs, 2)
	assert.Equal(t, "Hotspot-based interventions", recs[0].Title)
	assert.Equal(t, "Data-driven monitoring", recs[1].Title)
}

func TestLoadRules(t *testing.T) {
	path := filepath.Join(t.TempDir(), "rules.yaml")
	require.NoError(t, os.WriteFile(path, []byte("junction_severity: 3.9\n"), 0o644))

	rules, err := LoadRules(path)
	require.NoError(t, err)
	assert.InDelta(t, 3.9, rules.JunctionSeverity, 1e-9)
	// Unnamed keys keep defaults.
	assert.InDelta(t, 2.3, rules.SignalSeverity, 1e-9)
	assert.Equal(t, 16, rules.PeakHourStart)
}

func TestLoadRules_MissingFile(t *testing.T) {
	_, err := LoadRules(filepath.Join(t.TempDir(), "nope.yaml"))
	require.Error(t, err)
}

func TestFormatReport(t *testing.T) {
	records := []model.Accident{
		{Severity: 4, State: "CA", WeatherCondition: "Rain", Junction: true, StartTime: at(17, time.Monday)},
		{Severity: 2, State: "OH", WeatherCondition: "Clear", StartTime: at(8, time.Tuesday)},
	}
	a := Analyze(records)
	out := FormatReport(a, Recommend(a, DefaultRules()))

	assert.Contains(t, out, "Records analyzed: 2")
	assert.Contains(t, out, "Junction: severity 4.00")
	assert.Contains(t, out, "17:00: 1 accidents")
	assert.Contains(t, out, "Monday: 1 accidents")
	assert.Contains(t, out, "CA: 1 accidents")
	assert.Contains(t, out, "Rain: 1 accidents")
	assert.Contains(t, out, "HOTSPOT-BASED INTERVENTIONS")
}
