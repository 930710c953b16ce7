package env

import (
	"bytes"
	"encoding/json"
	"flag"
	"io"
	"log/slog"
	"os"
	"path/filepath"
	"strings"
	"testing"

	"github.com/urfave/cli/v2"

	"github.com/dtnitsch/web-content-extractor/models"
	"github.com/dtnitsch/web-content-extractor/pkg/theme"
)

func sampleResponse(t *testing.T) models.NormalizedAgentResponse {
	t.Helper()
	resp, err := models.NewSuccessResponse(&models.AgentResult{
		URLsProcessed: []string{"https://acme.example"},
		ExtractedData: []models.ExtractedData{{
			URL:             "https://acme.example",
			Title:           "Acme",
			ExtractedFields: models.NewRecord("pricing", "$10/mo"),
		}},
		Summary: "One plan.",
	})
	if err != nil {
		t.Fatalf("NewSuccessResponse() error = %v", err)
	}
	return resp
}

func TestCheckOutput(t *testing.T) {
	for _, f := range []string{OutputText, OutputJSON, OutputYAML} {
		if err := CheckOutput(f); err != nil {
			t.Errorf("CheckOutput(%q) error = %v", f, err)
		}
	}
	if err := CheckOutput("xml"); err == nil {
		t.Error("CheckOutput(xml) error = nil")
	}
}

func TestWriteResponse_JSON(t *testing.T) {
	var buf bytes.Buffer
	if err := WriteResponse(&buf, OutputJSON, sampleResponse(t), theme.Light); err != nil {
		t.Fatalf("WriteResponse() error = %v", err)
	}

	var got models.NormalizedAgentResponse
	if err := json.Unmarshal(buf.Bytes(), &got); err != nil {
		t.Fatalf("output is not JSON: %v\n%s", err, buf.String())
	}
	if !got.IsSuccess() {
		t.Errorf("Status = %q", got.Status)
	}
}

func TestWriteResponse_YAML(t *testing.T) {
	var buf bytes.Buffer
	if err := WriteResponse(&buf, OutputYAML, sampleResponse(t), theme.Light); err != nil {
		t.Fatalf("WriteResponse() error = %v", err)
	}

	out := buf.String()
	for _, want := range []string{"status: success", "summary: One plan.", "pricing: $10/mo"} {
		if !strings.Contains(out, want) {
			t.Errorf("YAML output missing %q:\n%s", want, out)
		}
	}
}

func TestWriteResponse_TextError(t *testing.T) {
	var buf bytes.Buffer
	if err := WriteResponse(&buf, OutputText, models.NewErrorResponse("Rate limited"), theme.Dark); err != nil {
		t.Fatalf("WriteResponse() error = %v", err)
	}
	if !strings.Contains(buf.String(), "Rate limited") {
		t.Errorf("text output = %q", buf.String())
	}
}

func TestNew_MemoryBackend(t *testing.T) {
	cfg := models.DefaultConfig()
	cfg.Storage.Backend = models.BackendMemory
	cfg.Agent.Provider = models.ProviderLocal
	cfg.Local.CacheDir = t.TempDir()

	e, err := New(cfg, slog.New(slog.NewTextHandler(io.Discard, nil)))
	if err != nil {
		t.Fatalf("New() error = %v", err)
	}
	defer e.Close()

	if e.History.Len() != 0 {
		t.Errorf("History.Len() = %d", e.History.Len())
	}
	if _, err := e.Controller(); err != nil {
		t.Errorf("Controller() error = %v", err)
	}
}

func csvContext(path string) *cli.Context {
	set := flag.NewFlagSet("extract", flag.ContinueOnError)
	set.Bool("copy", false, "")
	set.String("csv", path, "")
	return cli.NewContext(cli.NewApp(), set, nil)
}

func TestDeliver_CSV(t *testing.T) {
	tableResp, err := models.NewSuccessResponse(&models.AgentResult{
		StructuredTable: []models.Record{models.NewRecord("Feature", "Seats", "Pricing Tier", "Pro")},
	})
	if err != nil {
		t.Fatal(err)
	}

	tests := []struct {
		name     string
		resp     models.NormalizedAgentResponse
		wantFile string
	}{
		{name: "table", resp: tableResp, wantFile: "Feature,\"Pricing Tier\"\n\"Seats\",\"Pro\""},
		{name: "no table rows", resp: sampleResponse(t)},
		{name: "error response", resp: models.NewErrorResponse("Rate limited")},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			path := filepath.Join(t.TempDir(), "out.csv")
			e := &Env{Logger: slog.New(slog.NewTextHandler(io.Discard, nil))}

			if err := e.Deliver(csvContext(path), tt.resp); err != nil {
				t.Fatalf("Deliver() error = %v", err)
			}

			data, err := os.ReadFile(path)
			if tt.wantFile == "" {
				if !os.IsNotExist(err) {
					t.Errorf("CSV written = %q, want no file", data)
				}
				return
			}
			if err != nil {
				t.Fatalf("ReadFile() error = %v", err)
			}
			if string(data) != tt.wantFile {
				t.Errorf("CSV = %q, want %q", data, tt.wantFile)
			}
		})
	}
}

func TestNew_HistoryLoadedOnce(t *testing.T) {
	cfg := models.DefaultConfig()
	cfg.Storage.Backend = models.BackendFile
	cfg.Storage.Path = t.TempDir()
	cfg.Agent.Provider = models.ProviderLocal
	cfg.Local.CacheDir = ""
	logger := slog.New(slog.NewTextHandler(io.Discard, nil))

	seed, err := New(cfg, logger)
	if err != nil {
		t.Fatalf("New() error = %v", err)
	}
	if _, err := seed.History.Record(models.ExtractionRequest{URL: "https://acme.example", Parameters: []string{"Pricing"}, Format: models.FormatTable}, models.NewErrorResponse("x")); err != nil {
		t.Fatalf("Record() error = %v", err)
	}
	seed.Close()

	e, err := New(cfg, logger)
	if err != nil {
		t.Fatalf("New() error = %v", err)
	}
	defer e.Close()

	if e.History.Len() != 0 {
		t.Errorf("History.Len() = %d before any load, want 0", e.History.Len())
	}
	if n := e.LoadHistory().Len(); n != 1 {
		t.Errorf("LoadHistory().Len() = %d, want 1", n)
	}

	ctrl, err := e.Controller()
	if err != nil {
		t.Fatalf("Controller() error = %v", err)
	}
	if n := len(ctrl.State().History); n != 1 {
		t.Errorf("controller history = %d items, want 1", n)
	}
}
