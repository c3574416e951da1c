package workload

import (
	"encoding/csv"
	"fmt"
	"io"
	"os"
	"sort"
	"strconv"
	"strings"

	"gopkg.in/yaml.v3"

	"github.com/inference-sim/packetflow/sim"
)

// EventFileHeader captures metadata written next to an event CSV.
type EventFileHeader struct {
	Version         int    `yaml:"format_version"`
	TimeUnit        string `yaml:"time_unit"`
	CreatedAt       string `yaml:"created_at,omitempty"`
	Mode            string `yaml:"mode"` // "generated" or "recorded"
	NumSources      int    `yaml:"num_sources"`
	NumDestinations int    `yaml:"num_destinations"`
	Seed            int64  `yaml:"seed,omitempty"`
	WorkloadSpec    string `yaml:"workload_spec,omitempty"`
}

// CSV column headers for the event file format.
var eventColumns = []string{"time", "source", "destination"}

// ExportEvents writes the header (YAML) and events (CSV) to separate files.
func ExportEvents(header *EventFileHeader, events []sim.TransferEvent, headerPath, dataPath string) error {
	headerData, err := yaml.Marshal(header)
	if err != nil {
		return fmt.Errorf("marshaling event header: %w", err)
	}
	if err := os.WriteFile(headerPath, headerData, 0644); err != nil {
		return fmt.Errorf("writing event header: %w", err)
	}

	file, err := os.Create(dataPath)
	if err != nil {
		return fmt.Errorf("creating event data file: %w", err)
	}
	defer func() { _ = file.Close() }()

	if err := WriteEventsCSV(file, events); err != nil {
		return err
	}
	return file.Close()
}

// WriteEventsCSV writes the column header followed by one row per event.
func WriteEventsCSV(w io.Writer, events []sim.TransferEvent) error {
	writer := csv.NewWriter(w)
	if err := writer.Write(eventColumns); err != nil {
		return fmt.Errorf("writing CSV header: %w", err)
	}
	for i, ev := range events {
		row := []string{
			strconv.FormatInt(ev.Time, 10),
			strconv.Itoa(ev.SourceID),
			strconv.Itoa(ev.DestID),
		}
		if err := writer.Write(row); err != nil {
			return fmt.Errorf("writing CSV row %d: %w", i, err)
		}
	}
	writer.Flush()
	return writer.Error()
}

// LoadEventsHeader reads an event file header.
func LoadEventsHeader(path string) (*EventFileHeader, error) {
	data, err := os.ReadFile(path)
	if err != nil {
		return nil, fmt.Errorf("reading event header: %w", err)
	}
	var header EventFileHeader
	if err := yaml.Unmarshal(data, &header); err != nil {
		return nil, fmt.Errorf("parsing event header: %w", err)
	}
	return &header, nil
}

// LoadEvents reads an event CSV and returns its events sorted by time.
// Rows with equal times keep their file order.
func LoadEvents(dataPath string) ([]sim.TransferEvent, error) {
	file, err := os.Open(dataPath)
	if err != nil {
		return nil, fmt.Errorf("opening event data: %w", err)
	}
	defer func() { _ = file.Close() }()
	return ReadEventsCSV(file)
}

// ReadEventsCSV parses events from r. Columns are located by header name,
// so extra columns and any column order are accepted.
func ReadEventsCSV(r io.Reader) ([]sim.TransferEvent, error) {
	reader := csv.NewReader(r)
	reader.FieldsPerRecord = -1

	headerRow, err := reader.Read()
	if err != nil {
		return nil, fmt.Errorf("reading CSV header: %w", err)
	}
	index := make(map[string]int, len(headerRow))
	for i, name := range headerRow {
		index[strings.ToLower(strings.TrimSpace(name))] = i
	}
	cols := make([]int, len(eventColumns))
	for i, name := range eventColumns {
		pos, ok := index[name]
		if !ok {
			return nil, fmt.Errorf("CSV header missing column %q", name)
		}
		cols[i] = pos
	}

	var events []sim.TransferEvent
	line := 1
	for {
		row, err := reader.Read()
		if err == io.EOF {
			break
		}
		line++
		if err != nil {
			return nil, fmt.Errorf("reading CSV row: %w", err)
		}
		ev, err := parseEventRow(row, cols)
		if err != nil {
			return nil, fmt.Errorf("CSV line %d: %w", line, err)
		}
		events = append(events, ev)
	}

	sort.SliceStable(events, func(i, j int) bool {
		return events[i].Time < events[j].Time
	})
	return events, nil
}

func parseEventRow(row []string, cols []int) (sim.TransferEvent, error) {
	field := func(i int) (string, error) {
		if cols[i] >= len(row) {
			return "", fmt.Errorf("missing %s column", eventColumns[i])
		}
		return strings.TrimSpace(row[cols[i]]), nil
	}

	var vals [3]int64
	for i := range eventColumns {
		raw, err := field(i)
		if err != nil {
			return sim.TransferEvent{}, err
		}
		v, err := strconv.ParseInt(raw, 10, 64)
		if err != nil {
			return sim.TransferEvent{}, fmt.Errorf("parsing %s %q: %w", eventColumns[i], raw, err)
		}
		if v < 0 {
			return sim.TransferEvent{}, fmt.Errorf("%s must be >= 0, got %d", eventColumns[i], v)
		}
		vals[i] = v
	}
	return sim.TransferEvent{Time: vals[0], SourceID: int(vals[1]), DestID: int(vals[2])}, nil
}
