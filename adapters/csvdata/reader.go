// Package csvdata loads trial data from remote or local CSV files. Remote
// sources are fetched with a plain HTTP(S) GET; any fetch or parse failure
// is fatal for the run, there is no retry policy for a one-shot analysis.
package csvdata

import (
	"context"
	"encoding/csv"
	"fmt"
	"io"
	"net/http"
	"os"
	"strconv"
	"strings"
	"time"

	"bayesrt/domain/core"
	"bayesrt/domain/trial"
)

// Columns names the CSV columns holding each trial field. Participant is
// optional; the others are required.
type Columns struct {
	RT          string
	Condition   string
	Error       string
	Participant string
}

// DefaultColumns matches the datasets used by the chapters
func DefaultColumns() Columns {
	return Columns{RT: "RT", Condition: "Condition", Error: "Error", Participant: "Participant"}
}

// Config describes one CSV data source
type Config struct {
	URL      string // Remote source; takes precedence when set
	FilePath string // Local fallback for offline runs and tests
	Columns  Columns
	Timeout  time.Duration
	// RTUnit scales parsed response times into seconds, e.g. 0.001 for a
	// dataset recorded in milliseconds. Zero means already in seconds.
	RTUnit float64
}

// Reader implements ports.TrialSource over a CSV config
type Reader struct {
	config     Config
	httpClient *http.Client
}

// NewReader creates a CSV trial source
func NewReader(config Config) *Reader {
	if config.Columns == (Columns{}) {
		config.Columns = DefaultColumns()
	}
	timeout := config.Timeout
	if timeout == 0 {
		timeout = 30 * time.Second
	}
	return &Reader{
		config:     config,
		httpClient: &http.Client{Timeout: timeout},
	}
}

// Load fetches, parses and filters the trial data
func (r *Reader) Load(ctx context.Context, filter trial.Filter) (*trial.Dataset, error) {
	body, source, err := r.open(ctx)
	if err != nil {
		return nil, err
	}
	defer body.Close()

	raw, err := r.parse(body)
	if err != nil {
		return nil, fmt.Errorf("parsing %s: %w", source, err)
	}

	ds := trial.NewDataset(source, raw, filter)
	if ds.IsEmpty() {
		return nil, fmt.Errorf("%w: %s (read %d rows, rejected %d)",
			core.ErrEmptyDataset, source, ds.RowsRead, ds.RejectedCount())
	}
	return ds, nil
}

func (r *Reader) open(ctx context.Context) (io.ReadCloser, string, error) {
	if r.config.URL != "" {
		req, err := http.NewRequestWithContext(ctx, http.MethodGet, r.config.URL, nil)
		if err != nil {
			return nil, "", core.NewFetchError(r.config.URL, err)
		}

		resp, err := r.httpClient.Do(req)
		if err != nil {
			return nil, "", core.NewFetchError(r.config.URL, err)
		}
		if resp.StatusCode != http.StatusOK {
			resp.Body.Close()
			return nil, "", core.NewFetchError(r.config.URL, fmt.Errorf("status %d", resp.StatusCode))
		}
		return resp.Body, r.config.URL, nil
	}

	if r.config.FilePath != "" {
		f, err := os.Open(r.config.FilePath)
		if err != nil {
			return nil, "", core.NewFetchError(r.config.FilePath, err)
		}
		return f, r.config.FilePath, nil
	}

	return nil, "", core.NewFetchError("", fmt.Errorf("no URL or file path configured"))
}

func (r *Reader) parse(body io.Reader) ([]trial.Observation, error) {
	reader := csv.NewReader(body)
	reader.TrimLeadingSpace = true

	header, err := reader.Read()
	if err != nil {
		return nil, fmt.Errorf("reading header: %w", err)
	}

	idx, err := r.columnIndex(header)
	if err != nil {
		return nil, err
	}

	scale := r.config.RTUnit
	if scale == 0 {
		scale = 1
	}

	var raw []trial.Observation
	line := 1
	for {
		record, err := reader.Read()
		if err == io.EOF {
			break
		}
		line++
		if err != nil {
			return nil, core.NewRowError(line, err.Error())
		}

		obs, err := r.parseRow(record, idx, scale, line)
		if err != nil {
			return nil, err
		}
		raw = append(raw, obs)
	}

	return raw, nil
}

type columnIndex struct {
	rt, condition, errFlag, participant int
}

func (r *Reader) columnIndex(header []string) (columnIndex, error) {
	idx := columnIndex{rt: -1, condition: -1, errFlag: -1, participant: -1}

	for i, name := range header {
		switch strings.TrimSpace(name) {
		case r.config.Columns.RT:
			idx.rt = i
		case r.config.Columns.Condition:
			idx.condition = i
		case r.config.Columns.Error:
			idx.errFlag = i
		case r.config.Columns.Participant:
			idx.participant = i
		}
	}

	if idx.rt < 0 {
		return idx, core.NewMissingColumnError(r.config.Columns.RT)
	}
	if idx.condition < 0 {
		return idx, core.NewMissingColumnError(r.config.Columns.Condition)
	}
	if idx.errFlag < 0 {
		return idx, core.NewMissingColumnError(r.config.Columns.Error)
	}
	return idx, nil
}

func (r *Reader) parseRow(record []string, idx columnIndex, scale float64, line int) (trial.Observation, error) {
	if idx.rt >= len(record) || idx.condition >= len(record) || idx.errFlag >= len(record) {
		return trial.Observation{}, core.NewRowError(line, "too few fields")
	}

	rt, err := strconv.ParseFloat(strings.TrimSpace(record[idx.rt]), 64)
	if err != nil {
		return trial.Observation{}, core.NewRowError(line, fmt.Sprintf("bad RT %q", record[idx.rt]))
	}

	errFlag, err := parseBool(record[idx.errFlag])
	if err != nil {
		return trial.Observation{}, core.NewRowError(line, fmt.Sprintf("bad error flag %q", record[idx.errFlag]))
	}

	obs := trial.Observation{
		RT:        rt * scale,
		Condition: strings.TrimSpace(record[idx.condition]),
		Error:     errFlag,
	}
	if idx.participant >= 0 && idx.participant < len(record) {
		obs.Participant = strings.TrimSpace(record[idx.participant])
	}
	return obs, nil
}

// parseBool accepts the encodings seen across the chapter datasets: 0/1,
// true/false, and yes/no in any case.
func parseBool(s string) (bool, error) {
	switch strings.ToLower(strings.TrimSpace(s)) {
	case "0", "false", "no", "":
		return false, nil
	case "1", "true", "yes":
		return true, nil
	}
	return false, fmt.Errorf("unrecognized boolean")
}
