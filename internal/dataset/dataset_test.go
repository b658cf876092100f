package dataset

import (
	"io"
	"os"
	"path/filepath"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/munimx/Road-Accident-Hotspot-Detection/internal/model"
)

const sampleCSV = `ID,Severity,Start_Time,End_Time,Start_Lat,Start_Lng,Distance(mi),Description,Street,City,County,State,Weather_Condition,Amenity,Bump,Crossing,Give_Way,Junction,No_Exit,Railway,Roundabout,Station,Stop,Traffic_Calming,Traffic_Signal,Turning_Loop
A-1,2,2021-03-01 08:15:00,2021-03-01 09:00:00,39.865,-84.058,0.01,Right lane blocked,I-70 E,Dayton,Montgomery,OH,Light Rain,False,False,False,False,False,False,False,False,False,False,False,False,False
A-2,3,2021-03-01 10:00:00,,37.335,-121.881,1.5,Stalled vehicle,US-101 N,San Jose,Santa Clara,CA,Clear,False,False,False,False,True,False,False,False,False,False,False,True,False
A-3,4,not-a-date,,,-121.9,0.2,Bad row,,,Santa Clara,CA,,False,False,False,False,False,False,False,False,False,False,False,False,False
A-4,9,2021-04-12 17:45:00,2021-04-12 18:10:00,34.052,-118.244,0.0,Multi-vehicle,I-10 W,Los Angeles,Los Angeles,CA,Fog,False,False,True,False,False,False,False,False,False,False,False,False,False
`

func writeSample(t *testing.T) string {
	t.Helper()
	path := filepath.Join(t.TempDir(), "accidents.csv")
	require.NoError(t, os.WriteFile(path, []byte(sampleCSV), 0o644))
	return path
}

func TestOpenRaw_StreamsAllRows(t *testing.T) {
	r, err := OpenRaw(writeSample(t))
	require.NoError(t, err)
	defer r.Close()

	assert.Contains(t, r.Header(), "Start_Lat")
	assert.Contains(t, r.Header(), "Distance(mi)")

	var ids []string
	for {
		rec, err := r.Next()
		if err == io.EOF {
			break
		}
		require.NoError(t, err)
		ids = append(ids, rec.ID)
	}
	assert.Equal(t, []string{"A-1", "A-2", "A-3", "A-4"}, ids)
}

func TestWriteReadAccidents_ClusterColumnOptional(t *testing.T) {
	records := []model.Accident{
		{
			ID:        "A-1",
			Severity:  2,
			StartTime: model.NewEventTime(time.Date(2021, 3, 1, 8, 15, 0, 0, time.UTC)),
			StartLat:  39.865,
			StartLng:  -84.058,
			City:      "Dayton",
			State:     "OH",
			Junction:  true,
			Cluster:   7,
		},
		{
			ID:       "A-2",
			Severity: 4,
			StartLat: 34.052,
			StartLng: -118.244,
			State:    "CA",
			Cluster:  3,
		},
	}

	dir := t.TempDir()

	// Without cluster column: labels do not survive the round trip.
	plain := filepath.Join(dir, "cleaned.csv")
	require.NoError(t, WriteAccidents(plain, records, false))

	got, hasCluster, err := ReadAccidents(plain)
	require.NoError(t, err)
	assert.False(t, hasCluster)
	require.Len(t, got, 2)
	assert.Equal(t, -1, got[0].Cluster)
	assert.Equal(t, "A-1", got[0].ID)
	assert.True(t, got[0].Junction)
	assert.True(t, got[0].StartTime.Valid)
	assert.False(t, got[1].StartTime.Valid)

	// With cluster column: labels survive.
	clustered := filepath.Join(dir, "clustered.csv")
	require.NoError(t, WriteAccidents(clustered, records, true))

	got, hasCluster, err = ReadAccidents(clustered)
	require.NoError(t, err)
	assert.True(t, hasCluster)
	require.Len(t, got, 2)
	assert.Equal(t, 7, got[0].Cluster)
	assert.Equal(t, 3, got[1].Cluster)
}

func TestWriteAccidents_EmptyKeepsHeader(t *testing.T) {
	dir := t.TempDir()

	// An all-filtered clean stage still produces a readable CSV.
	path := filepath.Join(dir, "empty.csv")
	require.NoError(t, WriteAccidents(path, nil, false))

	data, err := os.ReadFile(path)
	require.NoError(t, err)
	assert.Contains(t, string(data), "ID,Severity,Start_Time")

	got, hasCluster, err := ReadAccidents(path)
	require.NoError(t, err)
	assert.False(t, hasCluster)
	assert.Empty(t, got)

	// The clustered variant keeps its Cluster column too.
	clustered := filepath.Join(dir, "empty_clustered.csv")
	require.NoError(t, WriteAccidents(clustered, nil, true))

	got, hasCluster, err = ReadAccidents(clustered)
	require.NoError(t, err)
	assert.True(t, hasCluster)
	assert.Empty(t, got)
}

func TestWriteHotspots(t *testing.T) {
	path := filepath.Join(t.TempDir(), "stats.csv")
	hotspots := []model.Hotspot{
		{Cluster: 0, Count: 12, AvgSeverity: 2.4, MaxSeverity: 4, CenterLat: 39.9, CenterLng: -84.1},
		{Cluster: 1, Count: 3, AvgSeverity: 2.0, MaxSeverity: 2, CenterLat: 37.3, CenterLng: -121.9},
	}
	require.NoError(t, WriteHotspots(path, hotspots))

	data, err := os.ReadFile(path)
	require.NoError(t, err)
	assert.Contains(t, string(data), "Cluster,Count,Avg_Severity")
	assert.Contains(t, string(data), "39.9")
}

func TestSummarize(t *testing.T) {
	s, err := Summarize(writeSample(t), 5)
	require.NoError(t, err)

	assert.Equal(t, 4, s.Rows)
	assert.Len(t, s.Columns, 26)
	assert.Len(t, s.Missing, 5)

	// End_Time is blank on three rows and should rank first or second
	// among missing columns.
	var endTimeMissing int
	for _, m := range s.Missing {
		if m.Column == "End_Time" {
			endTimeMissing = m.Missing
		}
	}
	assert.Equal(t, 3, endTimeMissing)

	assert.Equal(t, []int{2, 3, 4, 9}, s.SeverityLevels)
	assert.Equal(t, 2, s.States)
	assert.Equal(t, 3, s.Cities)

	require.True(t, s.MinTime.Valid)
	assert.Equal(t, 2021, s.MinTime.Year())
	assert.InDelta(t, 34.052, s.LatMin, 0.001)
	assert.InDelta(t, 39.865, s.LatMax, 0.001)
	assert.InDelta(t, -121.9, s.LngMin, 0.001)
	assert.InDelta(t, -84.058, s.LngMax, 0.001)

	assert.Equal(t, "int", s.ColumnTypes["Severity"])
	assert.Equal(t, "float", s.ColumnTypes["Start_Lng"])
	assert.Equal(t, "bool", s.ColumnTypes["Junction"])

	out := s.Format()
	assert.Contains(t, out, "Total records: 4")
	assert.Contains(t, out, "Severity levels: [2 3 4 9]")
	assert.Contains(t, out, "Latitude range: 34.05")
}
