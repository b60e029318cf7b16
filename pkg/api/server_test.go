package api

import (
	"encoding/json"
	"io"
	"net/http"
	"net/http/httptest"
	"strings"
	"testing"

	"github.com/charmbracelet/log"

	"github.com/causallab/dagcheck/pkg/cache"
	"github.com/causallab/dagcheck/pkg/pipeline"
	"github.com/causallab/dagcheck/pkg/store"
)

func testServer(t *testing.T, st store.Store) *httptest.Server {
	t.Helper()
	logger := log.NewWithOptions(io.Discard, log.Options{})
	srv := NewServer(Config{
		Runner: pipeline.NewRunner(cache.NewNullCache(), nil, logger),
		Store:  st,
		Logger: logger,
	})
	ts := httptest.NewServer(srv.Handler())
	t.Cleanup(ts.Close)
	return ts
}

const confounderJSON = `{
	"id": "confounder",
	"structure": "Z -> X, Z -> Y, X -> Y",
	"roles": {"X": "treatment", "Y": "outcome", "Z": "confounder"},
	"treatment": "X",
	"outcome": "Y",
	"adjustment_set": ["Z"]
}`

func postJSON(t *testing.T, url, body string) *http.Response {
	t.Helper()
	resp, err := http.Post(url, "application/json", strings.NewReader(body))
	if err != nil {
		t.Fatalf("POST %s: %v", url, err)
	}
	t.Cleanup(func() { resp.Body.Close() })
	return resp
}

func decodeBody(t *testing.T, resp *http.Response, v any) {
	t.Helper()
	if err := json.NewDecoder(resp.Body).Decode(v); err != nil {
		t.Fatalf("decode response: %v", err)
	}
}

func TestHealthz(t *testing.T) {
	ts := testServer(t, nil)

	resp, err := http.Get(ts.URL + "/healthz")
	if err != nil {
		t.Fatal(err)
	}
	defer resp.Body.Close()

	if resp.StatusCode != http.StatusOK {
		t.Errorf("status = %d", resp.StatusCode)
	}
	var body map[string]string
	decodeBody(t, resp, &body)
	if body["status"] != "ok" {
		t.Errorf("body = %v", body)
	}
}

func TestValidateEndpoint(t *testing.T) {
	ts := testServer(t, nil)

	resp := postJSON(t, ts.URL+"/v1/validate", confounderJSON)
	if resp.StatusCode != http.StatusOK {
		t.Fatalf("status = %d", resp.StatusCode)
	}

	var body validateResponse
	decodeBody(t, resp, &body)
	if body.Report == nil {
		t.Fatal("missing report")
	}
	if !body.Report.Passed {
		t.Errorf("expected pass, issues: %+v", body.Report.Issues)
	}
	if body.Report.ScenarioID != "confounder" {
		t.Errorf("scenario id = %q", body.Report.ScenarioID)
	}
}

func TestValidateRuleFailureStillOK(t *testing.T) {
	ts := testServer(t, nil)

	// No adjustment set: the backdoor through Z stays open. Rule findings
	// are a 200 with passed=false, not an HTTP error.
	body := `{
		"structure": "Z -> X, Z -> Y, X -> Y",
		"treatment": "X",
		"outcome": "Y"
	}`
	resp := postJSON(t, ts.URL+"/v1/validate", body)
	if resp.StatusCode != http.StatusOK {
		t.Fatalf("status = %d", resp.StatusCode)
	}
	var out validateResponse
	decodeBody(t, resp, &out)
	if out.Report.Passed {
		t.Error("expected failed report")
	}
}

func TestValidateMalformedStructure(t *testing.T) {
	ts := testServer(t, nil)

	resp := postJSON(t, ts.URL+"/v1/validate", `{"structure": "X ->"}`)
	if resp.StatusCode != http.StatusUnprocessableEntity {
		t.Errorf("status = %d, want 422", resp.StatusCode)
	}
	var out map[string]string
	decodeBody(t, resp, &out)
	if out["error_code"] != "MALFORMED_STRUCTURE" {
		t.Errorf("error_code = %q", out["error_code"])
	}
}

func TestValidateBadJSON(t *testing.T) {
	ts := testServer(t, nil)

	resp := postJSON(t, ts.URL+"/v1/validate", `{`)
	if resp.StatusCode != http.StatusBadRequest {
		t.Errorf("status = %d, want 400", resp.StatusCode)
	}
}

func TestValidateBatchEndpoint(t *testing.T) {
	ts := testServer(t, nil)

	body := `{"scenarios": [
		` + confounderJSON + `,
		{"id": "open-backdoor", "structure": "U -> X, U -> Y, X -> Y", "treatment": "X", "outcome": "Y"},
		{"id": "broken", "structure": "X ->"}
	]}`

	resp := postJSON(t, ts.URL+"/v1/validate/batch", body)
	if resp.StatusCode != http.StatusOK {
		t.Fatalf("status = %d", resp.StatusCode)
	}

	var out batchResponse
	decodeBody(t, resp, &out)
	if out.Total != 3 || out.Passed != 1 || out.Failed != 1 || out.Errored != 1 {
		t.Errorf("summary = %+v", out)
	}
	if out.Results[2].ErrorCode != "MALFORMED_STRUCTURE" {
		t.Errorf("third result = %+v", out.Results[2])
	}
}

func TestReportsEndpoints(t *testing.T) {
	st := store.NewMemoryStore()
	ts := testServer(t, st)

	// Archive via validation, then read back.
	postJSON(t, ts.URL+"/v1/validate", confounderJSON)

	resp, err := http.Get(ts.URL + "/v1/reports")
	if err != nil {
		t.Fatal(err)
	}
	defer resp.Body.Close()
	if resp.StatusCode != http.StatusOK {
		t.Fatalf("list status = %d", resp.StatusCode)
	}
	var list struct {
		Count int `json:"count"`
	}
	decodeBody(t, resp, &list)
	if list.Count != 1 {
		t.Errorf("count = %d", list.Count)
	}

	resp, err = http.Get(ts.URL + "/v1/reports/confounder")
	if err != nil {
		t.Fatal(err)
	}
	defer resp.Body.Close()
	if resp.StatusCode != http.StatusOK {
		t.Errorf("get status = %d", resp.StatusCode)
	}

	resp, err = http.Get(ts.URL + "/v1/reports/missing")
	if err != nil {
		t.Fatal(err)
	}
	defer resp.Body.Close()
	if resp.StatusCode != http.StatusNotFound {
		t.Errorf("missing report status = %d", resp.StatusCode)
	}
}

func TestReportsDisabledWithoutStore(t *testing.T) {
	ts := testServer(t, nil)

	resp, err := http.Get(ts.URL + "/v1/reports")
	if err != nil {
		t.Fatal(err)
	}
	defer resp.Body.Close()
	if resp.StatusCode != http.StatusNotFound {
		t.Errorf("status = %d, want 404", resp.StatusCode)
	}
}

func TestRenderEndpoint(t *testing.T) {
	ts := testServer(t, nil)

	resp := postJSON(t, ts.URL+"/v1/render", confounderJSON)
	if resp.StatusCode != http.StatusOK {
		t.Fatalf("status = %d", resp.StatusCode)
	}
	if ct := resp.Header.Get("Content-Type"); ct != "image/svg+xml" {
		t.Errorf("content type = %q", ct)
	}
	svg, err := io.ReadAll(resp.Body)
	if err != nil {
		t.Fatal(err)
	}
	if !strings.Contains(string(svg), "<svg") {
		t.Error("response is not SVG")
	}
}
