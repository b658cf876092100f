package clean

import (
	"context"
	"fmt"
	"os"
	"path/filepath"
	"strings"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/munimx/Road-Accident-Hotspot-Detection/internal/dataset"
)

const header = "ID,Severity,Start_Time,End_Time,Start_Lat,Start_Lng,Distance(mi),Description,Street,City,County,State,Weather_Condition,Amenity,Bump,Crossing,Give_Way,Junction,No_Exit,Railway,Roundabout,Station,Stop,Traffic_Calming,Traffic_Signal,Turning_Loop"

func row(id, sev, start, lat, lng string, extra map[string]string) string {
	cols := map[string]string{
		"ID": id, "Severity": sev, "Start_Time": start,
		"Start_Lat": lat, "Start_Lng": lng,
	}
	for k, v := range extra {
		cols[k] = v
	}
	fields := strings.Split(header, ",")
	out := make([]string, len(fields))
	for i, f := range fields {
		out[i] = cols[f]
	}
	return strings.Join(out, ",")
}

func openCSV(t *testing.T, rows ...string) *dataset.RawReader {
	t.Helper()
	path := filepath.Join(t.TempDir(), "raw.csv")
	content := header + "\n" + strings.Join(rows, "\n") + "\n"
	require.NoError(t, os.WriteFile(path, []byte(content), 0o644))

	r, err := dataset.OpenRaw(path)
	require.NoError(t, err)
	t.Cleanup(func() { r.Close() })
	return r
}

func TestClean_RuleOrderAndCounters(t *testing.T) {
	r := openCSV(t,
		row("A-1", "2", "2021-03-01 08:15:00", "39.8", "-84.0", nil),       // survives
		row("A-2", "2", "2021-03-01 08:15:00", "", "-84.0", nil),           // missing lat
		row("A-1", "3", "2021-03-01 09:00:00", "40.0", "-85.0", nil),       // duplicate ID
		row("A-3", "2", "2021-03-01 08:15:00", "55.0", "-84.0", nil),       // lat out of bounds
		row("A-4", "2", "2021-03-01 08:15:00", "39.8", "-20.0", nil),       // lng out of bounds
		row("A-5", "7", "2021-03-01 08:15:00", "39.8", "-84.0", nil),       // invalid severity
		row("A-6", "notanumber", "2021-03-01 08:15:00", "39.8", "-84", nil), // unparseable severity
		row("A-7", "4", "not-a-date", "39.8", "-84.0", nil),                // bad start time
		row("A-8", "3", "2021-06-01 17:30:00", "34.0", "-118.2", nil),      // survives
	)

	records, res, err := Clean(context.Background(), r, DefaultRules())
	require.NoError(t, err)

	assert.Equal(t, 9, res.Initial)
	assert.Equal(t, 8, res.AfterCoords)
	assert.Equal(t, 7, res.AfterDedupe)
	assert.Equal(t, 5, res.AfterBounds)
	assert.Equal(t, 3, res.AfterSeverity)
	assert.Equal(t, 2, res.AfterTime)
	assert.Equal(t, 2, res.Final)

	require.Len(t, records, 2)
	assert.Equal(t, "A-1", records[0].ID)
	assert.Equal(t, "A-8", records[1].ID)
	// Duplicate kept the first occurrence.
	assert.Equal(t, 2, records[0].Severity)
}

func TestClean_Fills(t *testing.T) {
	r := openCSV(t,
		row("A-1", "2", "2021-03-01 08:15:00", "39.8", "-84.0", map[string]string{
			"Junction":          "True",
			"Traffic_Signal":    "False",
			"Weather_Condition": "Light Rain",
		}),
	)

	records, _, err := Clean(context.Background(), r, DefaultRules())
	require.NoError(t, err)
	require.Len(t, records, 1)

	rec := records[0]
	assert.Equal(t, 0.0, rec.DistanceMi)
	assert.Equal(t, "Unknown", rec.City)
	assert.Equal(t, "Unknown", rec.Street)
	assert.Equal(t, "No description", rec.Description)
	assert.Equal(t, "Light Rain", rec.WeatherCondition)
	assert.True(t, rec.Junction)
	assert.False(t, rec.TrafficSignal)
	assert.False(t, rec.Roundabout) // blank flag defaults to false
	assert.False(t, rec.EndTime.Valid)
	assert.Equal(t, -1, rec.Cluster)
}

func TestClean_Cancelled(t *testing.T) {
	rows := make([]string, 100)
	for i := range rows {
		rows[i] = row(fmt.Sprintf("A-%d", i), "2", "2021-03-01 08:15:00", "39.8", "-84.0", nil)
	}
	r := openCSV(t, rows...)

	ctx, cancel := context.WithCancel(context.Background())
	cancel()

	_, _, err := Clean(ctx, r, DefaultRules())
	require.Error(t, err)
	assert.Contains(t, err.Error(), "cancelled")
}
