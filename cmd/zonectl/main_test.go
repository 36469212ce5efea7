package main

import (
	"bytes"
	"strings"
	"testing"

	"github.com/google/uuid"
	"github.com/shenikar/danger_zones/internal/models"
	"github.com/shenikar/danger_zones/pkg/geo"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func testZones() []models.Zone {
	return []models.Zone{
		{ID: uuid.New(), Name: "Centro", Location: geo.Coordinate{Lat: 20.5888, Lon: -100.3899}},
		{ID: uuid.New(), Name: "Juriquilla", Location: geo.Coordinate{Lat: 20.7097, Lon: -100.4456}, ConfirmedIncidents: 1},
	}
}

func TestPrintZones(t *testing.T) {
	var buf bytes.Buffer
	require.NoError(t, printZones(&buf, testZones()))

	lines := strings.Split(strings.TrimSpace(buf.String()), "\n")
	require.Len(t, lines, 3)
	assert.Contains(t, lines[0], "NAME")
	assert.Contains(t, lines[2], "Juriquilla")
	assert.Contains(t, lines[2], "low")
}

func TestPrintNearest(t *testing.T) {
	var buf bytes.Buffer
	require.NoError(t, printNearest(&buf, testZones(), geo.Coordinate{Lat: 20.70, Lon: -100.44}))
	assert.True(t, strings.HasPrefix(buf.String(), "Juriquilla"))

	err := printNearest(&buf, nil, geo.Coordinate{Lat: 20.70, Lon: -100.44})
	assert.ErrorIs(t, err, models.ErrEmptyRegistry)
}

func TestPrintWithin(t *testing.T) {
	var buf bytes.Buffer
	require.NoError(t, printWithin(&buf, testZones(), geo.Coordinate{Lat: 20.5888, Lon: -100.3899}, 2))

	out := buf.String()
	assert.Contains(t, out, "Centro")
	assert.NotContains(t, out, "Juriquilla")
}
