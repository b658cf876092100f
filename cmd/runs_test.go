package main

import (
	"bytes"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"

	"github.com/munimx/Road-Accident-Hotspot-Detection/internal/model"
)

func TestFormatRunsList(t *testing.T) {
	now := time.Date(2026, 5, 12, 9, 30, 0, 0, time.UTC)
	runs := []model.Run{
		{
			ID:        "abc12345-6789-0000-0000-000000000000",
			Input:     "us_accidents.csv",
			Status:    model.RunStatusComplete,
			CreatedAt: now,
			UpdatedAt: now.Add(12 * time.Minute),
		},
		{
			ID:        "def12345-6789-0000-0000-000000000000",
			Input:     "march.csv",
			Status:    model.RunStatusFailed,
			Error:     "hotspot: no records to cluster",
			CreatedAt: now.Add(-2 * time.Hour),
			UpdatedAt: now.Add(-2 * time.Hour),
		},
	}

	var buf bytes.Buffer
	formatRunsList(&buf, runs)

	output := buf.String()
	assert.Contains(t, output, "ID")
	assert.Contains(t, output, "INPUT")
	assert.Contains(t, output, "STATUS")
	assert.Contains(t, output, "us_accidents.csv")
	assert.Contains(t, output, "complete")
	assert.Contains(t, output, "failed")
	assert.Contains(t, output, "no records to cluster")
	assert.Contains(t, output, "2026-05-12 09:30")
	assert.Contains(t, output, "abc12345")
	assert.NotContains(t, output, "abc12345-6789")
}

func TestTruncateID(t *testing.T) {
	assert.Equal(t, "abc12345", truncateID("abc12345-6789-0000-0000-000000000000"))
	assert.Equal(t, "short", truncateID("short"))
}

func TestFormatHotspots(t *testing.T) {
	hotspots := []model.Hotspot{
		{Cluster: 7, Count: 300, AvgSeverity: 2.51, MaxSeverity: 4, CenterLat: 34.05, CenterLng: -118.24},
		{Cluster: 2, Count: 120, AvgSeverity: 2.02, MaxSeverity: 3, CenterLat: 40.71, CenterLng: -74.01},
	}

	var buf bytes.Buffer
	formatHotspots(&buf, hotspots, 1)

	output := buf.String()
	assert.Contains(t, output, "CLUSTER")
	assert.Contains(t, output, "300")
	assert.Contains(t, output, "2.51")
	// limit cuts the second row
	assert.NotContains(t, output, "120")
}
