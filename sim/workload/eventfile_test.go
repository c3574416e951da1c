package workload

import (
	"path/filepath"
	"strings"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/inference-sim/packetflow/sim"
)

func TestExportEvents_LoadEvents_PreservesEventsAndHeader(t *testing.T) {
	dir := t.TempDir()
	headerPath := filepath.Join(dir, "events_header.yaml")
	dataPath := filepath.Join(dir, "events.csv")

	events := []sim.TransferEvent{
		{Time: 0, SourceID: 1, DestID: 0},
		{Time: 1, SourceID: 0, DestID: 2},
		{Time: 1, SourceID: 3, DestID: 1},
	}
	header := &EventFileHeader{Version: 1, TimeUnit: "frames", Mode: "generated", NumSources: 4, NumDestinations: 3, Seed: 42}

	require.NoError(t, ExportEvents(header, events, headerPath, dataPath))

	loaded, err := LoadEvents(dataPath)
	require.NoError(t, err)
	assert.Equal(t, events, loaded)

	h, err := LoadEventsHeader(headerPath)
	require.NoError(t, err)
	assert.Equal(t, *header, *h)
}

func TestReadEventsCSV_UnsortedRows_SortedStablyByTime(t *testing.T) {
	// GIVEN rows out of time order, two of which share time 2
	data := "time,source,destination\n2,0,0\n0,1,1\n2,5,5\n1,2,2\n"

	events, err := ReadEventsCSV(strings.NewReader(data))
	require.NoError(t, err)

	// THEN times ascend and ties keep file order
	assert.Equal(t, []sim.TransferEvent{
		{Time: 0, SourceID: 1, DestID: 1},
		{Time: 1, SourceID: 2, DestID: 2},
		{Time: 2, SourceID: 0, DestID: 0},
		{Time: 2, SourceID: 5, DestID: 5},
	}, events)
}

func TestReadEventsCSV_ReorderedAndExtraColumns_Accepted(t *testing.T) {
	data := "destination,note,source,time\n4,hello,3,9\n"

	events, err := ReadEventsCSV(strings.NewReader(data))
	require.NoError(t, err)
	assert.Equal(t, []sim.TransferEvent{{Time: 9, SourceID: 3, DestID: 4}}, events)
}

func TestReadEventsCSV_BadRows_ReturnLineNumber(t *testing.T) {
	tests := []struct {
		name string
		data string
		want string
	}{
		{"negative time", "time,source,destination\n0,0,0\n-1,0,0\n", "line 3"},
		{"not a number", "time,source,destination\nx,0,0\n", "parsing time"},
		{"negative id", "time,source,destination\n0,-2,0\n", "source must be >= 0"},
		{"missing column", "time,source\n0,0\n", "missing column \"destination\""},
	}
	for _, tc := range tests {
		t.Run(tc.name, func(t *testing.T) {
			_, err := ReadEventsCSV(strings.NewReader(tc.data))
			require.Error(t, err)
			assert.Contains(t, err.Error(), tc.want)
		})
	}
}
