// Command apitest smoke-tests a running paschalion API server against
// known calendar values.
//
// Usage:
//
//	go run ./cmd/apitest -url http://localhost:8080
package main

import (
	"encoding/json"
	"flag"
	"fmt"
	"io"
	"net/http"
	"os"
	"strings"
	"time"
)

// APIResponse mirrors the server's response envelope.
type APIResponse struct {
	Success bool            `json:"success"`
	Data    json.RawMessage `json:"data,omitempty"`
	Error   *ErrorInfo      `json:"error,omitempty"`
}

type ErrorInfo struct {
	Message string `json:"message"`
	Code    string `json:"code,omitempty"`
}

// check is one request and the fields expected in its data.
type check struct {
	name string
	path string
	want map[string]any // top-level data fields; numbers compare as float64
}

var checks = []check{
	{"health", "/health", map[string]any{"status": "healthy"}},
	{"leap 1900", "/api/v1/leap/1900", map[string]any{"gregorian_leap": false, "julian_leap": true}},
	{"gregorian to julian", "/api/v1/convert/gregorian/2023-04-22", map[string]any{"julian": "2023-04-09", "julian_day_number": 2460056.5}},
	{"julian to gregorian", "/api/v1/convert/julian/2023-04-09", map[string]any{"gregorian": "2023-04-22"}},
	{"jdn J2000", "/api/v1/jdn/2451544.5", map[string]any{"gregorian": "2000-01-01", "julian": "1999-12-19"}},
	{"easter 2024", "/api/v1/easter/2024", map[string]any{"orthodox_gregorian": "2024-05-05", "catholic_gregorian": "2024-03-31"}},
	{"easter 2025", "/api/v1/easter/2025", map[string]any{"same_day": true}},
	{"bright saturday", "/api/v1/echo/2023-04-22", map[string]any{"echo": float64(8)}},
	{"before thomas sunday", "/api/v1/echo/2023-02-01", map[string]any{"echo": float64(8)}},
	{"greek tone", "/api/v1/echo/2023-04-16?lang=el", map[string]any{"tone": "Ἦχος αʹ"}},
	{"day summary", "/api/v1/day/2023-04-22", map[string]any{"weekday": "Saturday", "paschal_year": float64(2023)}},
}

// =============================================================================
// Test Runner
// =============================================================================

type TestRunner struct {
	baseURL      string
	client       *http.Client
	out          io.Writer
	verbose      bool
	successCount int
	errorCount   int
	errors       []string
}

func NewTestRunner(baseURL string, out io.Writer, verbose bool) *TestRunner {
	return &TestRunner{
		baseURL: strings.TrimSuffix(baseURL, "/"),
		client:  &http.Client{Timeout: 10 * time.Second},
		out:     out,
		verbose: verbose,
	}
}

func (tr *TestRunner) Run() {
	fmt.Fprintln(tr.out, "==============================================")
	fmt.Fprintln(tr.out, "Paschalion API Smoke Test")
	fmt.Fprintln(tr.out, "==============================================")
	fmt.Fprintf(tr.out, "Base URL: %s\n\n", tr.baseURL)

	for _, c := range checks {
		tr.runCheck(c)
	}
	tr.testBadRequest()

	tr.printSummary()
}

func (tr *TestRunner) runCheck(c check) {
	resp, err := tr.get(c.path)
	if err != nil {
		tr.recordError(c.name, err.Error())
		return
	}

	var data map[string]any
	if err := json.Unmarshal(resp.Data, &data); err != nil {
		tr.recordError(c.name, fmt.Sprintf("data is not an object: %v", err))
		return
	}

	for field, want := range c.want {
		if got := data[field]; got != want {
			tr.recordError(c.name, fmt.Sprintf("%s = %v, want %v", field, got, want))
			return
		}
	}

	if tr.verbose {
		fmt.Fprintf(tr.out, "    %s\n", resp.Data)
	}
	tr.recordSuccess(c.name)
}

func (tr *TestRunner) testBadRequest() {
	resp, err := tr.client.Get(tr.baseURL + "/api/v1/convert/gregorian/2023-02-29")
	if err != nil {
		tr.recordError("invalid date", err.Error())
		return
	}
	defer resp.Body.Close()

	if resp.StatusCode != http.StatusBadRequest {
		tr.recordError("invalid date", fmt.Sprintf("status %d, want 400", resp.StatusCode))
		return
	}
	tr.recordSuccess("invalid date rejected")
}

// =============================================================================
// Helper Methods
// =============================================================================

func (tr *TestRunner) get(path string) (*APIResponse, error) {
	resp, err := tr.client.Get(tr.baseURL + path)
	if err != nil {
		return nil, err
	}
	defer resp.Body.Close()

	body, err := io.ReadAll(resp.Body)
	if err != nil {
		return nil, fmt.Errorf("read error: %w", err)
	}

	var apiResp APIResponse
	if err := json.Unmarshal(body, &apiResp); err != nil {
		return nil, fmt.Errorf("parse error: %w", err)
	}

	if !apiResp.Success {
		errMsg := "unknown error"
		if apiResp.Error != nil {
			errMsg = apiResp.Error.Message
		}
		return nil, fmt.Errorf("API error: %s", errMsg)
	}

	return &apiResp, nil
}

func (tr *TestRunner) recordSuccess(msg string) {
	tr.successCount++
	fmt.Fprintf(tr.out, "  ✓ %s\n", msg)
}

func (tr *TestRunner) recordError(context, msg string) {
	tr.errorCount++
	errStr := fmt.Sprintf("%s: %s", context, msg)
	tr.errors = append(tr.errors, errStr)
	fmt.Fprintf(tr.out, "  ✗ %s\n", errStr)
}

func (tr *TestRunner) printSummary() {
	fmt.Fprintln(tr.out)
	fmt.Fprintf(tr.out, "  Passed: %d\n", tr.successCount)
	fmt.Fprintf(tr.out, "  Failed: %d\n", tr.errorCount)

	if tr.errorCount > 0 {
		fmt.Fprintln(tr.out, "\nFailures:")
		for _, err := range tr.errors {
			fmt.Fprintf(tr.out, "  • %s\n", err)
		}
	}
}

func main() {
	baseURL := flag.String("url", "http://localhost:8080", "Base URL of the API")
	verbose := flag.Bool("v", false, "Verbose output (print response data)")
	flag.Parse()

	client := &http.Client{Timeout: 2 * time.Second}
	resp, err := client.Get(*baseURL + "/health")
	if err != nil {
		fmt.Printf("Error: Cannot connect to %s\n", *baseURL)
		fmt.Println("Make sure the API server is running.")
		os.Exit(1)
	}
	resp.Body.Close()

	runner := NewTestRunner(*baseURL, os.Stdout, *verbose)
	runner.Run()

	if runner.errorCount > 0 {
		os.Exit(1)
	}
}
