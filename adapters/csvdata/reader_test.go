package csvdata

import (
	"context"
	"net/http"
	"net/http/httptest"
	"os"
	"path/filepath"
	"testing"

	"bayesrt/domain/core"
	"bayesrt/domain/trial"
)

const sampleCSV = `Participant,RT,Condition,Error
S01,0.454,Speed,0
S01,0.621,Accuracy,0
S01,0.512,Speed,1
S02,0.048,Speed,0
S02,0.733,Accuracy,0
`

func TestReader_LoadFromHTTP(t *testing.T) {
	server := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		w.Write([]byte(sampleCSV))
	}))
	defer server.Close()

	reader := NewReader(Config{URL: server.URL})
	ds, err := reader.Load(context.Background(), trial.DefaultFilter())
	if err != nil {
		t.Fatalf("load failed: %v", err)
	}

	// 5 rows: one error trial, one too-fast trial dropped
	if ds.Len() != 3 {
		t.Errorf("expected 3 trials, got %d", ds.Len())
	}
	if ds.Rejections[trial.RejectError] != 1 {
		t.Errorf("expected 1 error rejection, got %d", ds.Rejections[trial.RejectError])
	}
	if ds.Rejections[trial.RejectTooFast] != 1 {
		t.Errorf("expected 1 too-fast rejection, got %d", ds.Rejections[trial.RejectTooFast])
	}

	// First-seen condition is the baseline
	if ds.Conditions["Speed"] != 0 || ds.Conditions["Accuracy"] != 1 {
		t.Errorf("unexpected condition coding: %v", ds.Conditions)
	}
	if ds.Observations[0].Participant != "S01" {
		t.Errorf("participant not carried through: %+v", ds.Observations[0])
	}
}

func TestReader_LoadFromFile(t *testing.T) {
	path := filepath.Join(t.TempDir(), "trials.csv")
	if err := os.WriteFile(path, []byte(sampleCSV), 0o644); err != nil {
		t.Fatal(err)
	}

	reader := NewReader(Config{FilePath: path})
	ds, err := reader.Load(context.Background(), trial.Filter{})
	if err != nil {
		t.Fatalf("load failed: %v", err)
	}
	if ds.Len() != 5 {
		t.Errorf("unfiltered load should keep all 5 rows, got %d", ds.Len())
	}
	if ds.Source != path {
		t.Errorf("dataset source should record the file path, got %s", ds.Source)
	}
}

func TestReader_HTTPErrorIsFatal(t *testing.T) {
	server := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		http.Error(w, "gone", http.StatusNotFound)
	}))
	defer server.Close()

	reader := NewReader(Config{URL: server.URL})
	_, err := reader.Load(context.Background(), trial.Filter{})

	if !core.IsDataError(err) {
		t.Fatalf("expected fatal data error for HTTP 404, got %v", err)
	}
}

func TestReader_MissingColumn(t *testing.T) {
	server := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		w.Write([]byte("RT,Error\n0.5,0\n"))
	}))
	defer server.Close()

	reader := NewReader(Config{URL: server.URL})
	_, err := reader.Load(context.Background(), trial.Filter{})

	if !core.IsDataError(err) {
		t.Fatalf("expected missing-column error, got %v", err)
	}
}

func TestReader_MalformedRowIsFatal(t *testing.T) {
	server := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		w.Write([]byte("RT,Condition,Error\nnot-a-number,Speed,0\n"))
	}))
	defer server.Close()

	reader := NewReader(Config{URL: server.URL})
	_, err := reader.Load(context.Background(), trial.Filter{})

	if !core.IsDataError(err) {
		t.Fatalf("expected malformed-row error, got %v", err)
	}
}

func TestReader_MillisecondUnit(t *testing.T) {
	server := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		w.Write([]byte("RT,Condition,Error\n454,Speed,0\n621,Accuracy,no\n"))
	}))
	defer server.Close()

	reader := NewReader(Config{URL: server.URL, RTUnit: 0.001})
	ds, err := reader.Load(context.Background(), trial.Filter{})
	if err != nil {
		t.Fatalf("load failed: %v", err)
	}

	if rt := ds.Observations[0].RT; rt != 0.454 {
		t.Errorf("expected RT scaled to 0.454s, got %g", rt)
	}
}

func TestReader_EmptyAfterFilteringIsFatal(t *testing.T) {
	server := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		w.Write([]byte("RT,Condition,Error\n0.5,Speed,1\n"))
	}))
	defer server.Close()

	reader := NewReader(Config{URL: server.URL})
	_, err := reader.Load(context.Background(), trial.DefaultFilter())

	if !core.IsDataError(err) {
		t.Fatalf("expected empty-dataset error, got %v", err)
	}
}
