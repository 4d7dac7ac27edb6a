package api

import (
	"bytes"
	"context"
	"encoding/json"
	"io"
	"log/slog"
	"net/http"
	"net/http/httptest"
	"strings"
	"testing"
	"time"

	"github.com/zapponejosh/paschalion/internal/config"
	"github.com/zapponejosh/paschalion/internal/database"
)

// =============================================================================
// TEST SETUP HELPERS
// =============================================================================

type testEnv struct {
	db       *database.DB
	cfg      *config.Config
	handlers *Handlers
	router   http.Handler
	apiKey   string
}

// setupTest creates a router over a fresh in-memory database.
func setupTest(t *testing.T) *testEnv {
	t.Helper()

	logger := slog.New(slog.NewTextHandler(io.Discard, nil))

	db, err := database.Open(database.DefaultConfig(database.MemoryPath), logger)
	if err != nil {
		t.Fatalf("open test database: %v", err)
	}
	if _, err := db.Migrate(context.Background()); err != nil {
		t.Fatalf("migrate test database: %v", err)
	}
	t.Cleanup(func() { db.Close() })

	apiKey := "test-key"
	cfg := &config.Config{
		Port:          8080,
		Env:           config.EnvStaging,
		DatabasePath:  database.MemoryPath,
		APIKey:        apiKey,
		LogLevel:      "error",
		LogFormat:     "text",
		DefaultLang:   "en",
		MaxRangeDays:  31,
		MaxTableYears: 100,
	}

	handlers := NewHandlers(db, cfg, logger)
	handlers.now = func() time.Time {
		// 2023-04-21 in UTC although 2023-04-22 in the +03:00 zone.
		return time.Date(2023, time.April, 22, 1, 0, 0, 0, time.FixedZone("EEST", 3*3600))
	}

	return &testEnv{
		db:       db,
		cfg:      cfg,
		handlers: handlers,
		router:   SetupRoutes(handlers, cfg, logger),
		apiKey:   apiKey,
	}
}

// do sends a request through the full router.
func (env *testEnv) do(t *testing.T, method, path string, body any, headers map[string]string) *httptest.ResponseRecorder {
	t.Helper()

	var bodyReader io.Reader
	if body != nil {
		data, err := json.Marshal(body)
		if err != nil {
			t.Fatalf("marshal body: %v", err)
		}
		bodyReader = bytes.NewReader(data)
	}

	req := httptest.NewRequest(method, path, bodyReader)
	req.Header.Set("Content-Type", "application/json")
	for k, v := range headers {
		req.Header.Set(k, v)
	}

	rec := httptest.NewRecorder()
	env.router.ServeHTTP(rec, req)
	return rec
}

// decode unmarshals the envelope and its data into out.
func decode(t *testing.T, rec *httptest.ResponseRecorder, out any) Response {
	t.Helper()

	var raw struct {
		Success bool            `json:"success"`
		Data    json.RawMessage `json:"data"`
		Error   *ErrorInfo      `json:"error"`
	}
	if err := json.Unmarshal(rec.Body.Bytes(), &raw); err != nil {
		t.Fatalf("decode response %q: %v", rec.Body.String(), err)
	}
	if out != nil && len(raw.Data) > 0 {
		if err := json.Unmarshal(raw.Data, out); err != nil {
			t.Fatalf("decode data: %v", err)
		}
	}
	return Response{Success: raw.Success, Error: raw.Error}
}

func expectStatus(t *testing.T, rec *httptest.ResponseRecorder, want int) {
	t.Helper()
	if rec.Code != want {
		t.Fatalf("status = %d, want %d; body = %s", rec.Code, want, rec.Body.String())
	}
}

func expectErrorCode(t *testing.T, rec *httptest.ResponseRecorder, status int, code string) {
	t.Helper()
	expectStatus(t, rec, status)
	resp := decode(t, rec, nil)
	if resp.Success {
		t.Error("success = true, want false")
	}
	if resp.Error == nil || resp.Error.Code != code {
		t.Errorf("error = %+v, want code %s", resp.Error, code)
	}
}

// =============================================================================
// HEALTH AND MIDDLEWARE
// =============================================================================

func TestHealthCheck(t *testing.T) {
	env := setupTest(t)

	rec := env.do(t, http.MethodGet, "/health", nil, nil)
	expectStatus(t, rec, http.StatusOK)

	var data struct {
		Status     string                   `json:"status"`
		Paschalion database.PaschalionStats `json:"paschalion"`
	}
	if resp := decode(t, rec, &data); !resp.Success {
		t.Fatal("success = false")
	}
	if data.Status != "healthy" {
		t.Errorf("status = %q, want healthy", data.Status)
	}
	if data.Paschalion.Rows != 0 {
		t.Errorf("rows = %d, want 0", data.Paschalion.Rows)
	}
}

func TestRequestID(t *testing.T) {
	env := setupTest(t)

	rec := env.do(t, http.MethodGet, "/health", nil, nil)
	if id := rec.Header().Get("X-Request-ID"); len(id) != 36 {
		t.Errorf("X-Request-ID = %q, want a UUID", id)
	}

	given := "0b6f8a1e-3c1d-4a57-9d7e-2f4f0f6c1a22"
	rec = env.do(t, http.MethodGet, "/health", nil, map[string]string{"X-Request-ID": given})
	if got := rec.Header().Get("X-Request-ID"); got != given {
		t.Errorf("X-Request-ID = %q, want %q", got, given)
	}

	rec = env.do(t, http.MethodGet, "/health", nil, map[string]string{"X-Request-ID": "not-a-uuid"})
	if got := rec.Header().Get("X-Request-ID"); got == "not-a-uuid" {
		t.Error("malformed request ID was echoed back")
	}
}

func TestCORSPreflight(t *testing.T) {
	env := setupTest(t)

	rec := env.do(t, http.MethodOptions, "/api/v1/paschalion", nil, nil)
	expectStatus(t, rec, http.StatusNoContent)
	if got := rec.Header().Get("Access-Control-Allow-Origin"); got != "*" {
		t.Errorf("Access-Control-Allow-Origin = %q", got)
	}
}

func TestNotFoundRoute(t *testing.T) {
	env := setupTest(t)
	rec := env.do(t, http.MethodGet, "/api/v1/nope", nil, nil)
	expectErrorCode(t, rec, http.StatusNotFound, CodeNotFound)
}

func TestRecoveryMiddleware(t *testing.T) {
	logger := slog.New(slog.NewTextHandler(io.Discard, nil))
	h := RecoveryMiddleware(logger)(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		panic("boom")
	}))

	rec := httptest.NewRecorder()
	h.ServeHTTP(rec, httptest.NewRequest(http.MethodGet, "/", nil))
	expectErrorCode(t, rec, http.StatusInternalServerError, CodeInternalError)
}

// =============================================================================
// CALENDAR ENDPOINTS
// =============================================================================

func TestGetLeap(t *testing.T) {
	env := setupTest(t)

	tests := []struct {
		year          string
		gregorian     bool
		julian        bool
		wantStatusBad bool
	}{
		{year: "1900", gregorian: false, julian: true},
		{year: "2000", gregorian: true, julian: true},
		{year: "2023", gregorian: false, julian: false},
		{year: "-1", gregorian: false, julian: true},
		{year: "abc", wantStatusBad: true},
		{year: "10000", wantStatusBad: true},
	}

	for _, tt := range tests {
		t.Run(tt.year, func(t *testing.T) {
			rec := env.do(t, http.MethodGet, "/api/v1/leap/"+tt.year, nil, nil)
			if tt.wantStatusBad {
				expectErrorCode(t, rec, http.StatusBadRequest, CodeBadRequest)
				return
			}
			expectStatus(t, rec, http.StatusOK)

			var got LeapResponse
			decode(t, rec, &got)
			if got.GregorianLeap != tt.gregorian || got.JulianLeap != tt.julian {
				t.Errorf("leap = %+v, want gregorian=%v julian=%v", got, tt.gregorian, tt.julian)
			}
		})
	}
}

func TestConvert(t *testing.T) {
	env := setupTest(t)

	tests := []struct {
		name          string
		path          string
		wantGregorian string
		wantJulian    string
	}{
		{"gregorian to julian", "/api/v1/convert/gregorian/2023-04-22", "2023-04-22", "2023-04-09"},
		{"julian to gregorian", "/api/v1/convert/julian/2023-04-09", "2023-04-22", "2023-04-09"},
		{"jdn", "/api/v1/jdn/2460056.5", "2023-04-22", "2023-04-09"},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			rec := env.do(t, http.MethodGet, tt.path, nil, nil)
			expectStatus(t, rec, http.StatusOK)

			var got struct {
				Gregorian       string  `json:"gregorian"`
				Julian          string  `json:"julian"`
				JulianDayNumber float64 `json:"julian_day_number"`
				Weekday         string  `json:"weekday"`
			}
			decode(t, rec, &got)
			if got.Gregorian != tt.wantGregorian || got.Julian != tt.wantJulian {
				t.Errorf("got %s / %s, want %s / %s", got.Gregorian, got.Julian, tt.wantGregorian, tt.wantJulian)
			}
			if got.JulianDayNumber != 2460056.5 {
				t.Errorf("julian_day_number = %v, want 2460056.5", got.JulianDayNumber)
			}
			if got.Weekday != "Saturday" {
				t.Errorf("weekday = %q, want Saturday", got.Weekday)
			}
		})
	}
}

func TestConvert_Invalid(t *testing.T) {
	env := setupTest(t)

	paths := []string{
		"/api/v1/convert/gregorian/2023-4-22",
		"/api/v1/convert/gregorian/2023-02-29",
		"/api/v1/convert/gregorian/2023-13-01",
		"/api/v1/convert/julian/0000-01-01",
		"/api/v1/jdn/abc",
		"/api/v1/jdn/-1",
		"/api/v1/jdn/9999999",
	}

	for _, path := range paths {
		t.Run(path, func(t *testing.T) {
			rec := env.do(t, http.MethodGet, path, nil, nil)
			expectErrorCode(t, rec, http.StatusBadRequest, CodeBadRequest)
		})
	}
}

func TestConvert_JulianLeapDay(t *testing.T) {
	env := setupTest(t)

	// 1900-02-29 exists only in the Julian calendar.
	rec := env.do(t, http.MethodGet, "/api/v1/convert/julian/1900-02-29", nil, nil)
	expectStatus(t, rec, http.StatusOK)

	rec = env.do(t, http.MethodGet, "/api/v1/convert/gregorian/1900-02-29", nil, nil)
	expectErrorCode(t, rec, http.StatusBadRequest, CodeBadRequest)
}

func TestGetEaster(t *testing.T) {
	env := setupTest(t)

	tests := []struct {
		year              string
		orthodoxJulian    string
		orthodoxGregorian string
		catholic          string
		sameDay           bool
	}{
		{"2024", "2024-04-22", "2024-05-05", "2024-03-31", false},
		{"2025", "2025-04-07", "2025-04-20", "2025-04-20", true},
	}

	for _, tt := range tests {
		t.Run(tt.year, func(t *testing.T) {
			rec := env.do(t, http.MethodGet, "/api/v1/easter/"+tt.year, nil, nil)
			expectStatus(t, rec, http.StatusOK)

			var got struct {
				OrthodoxJulian    string `json:"orthodox_julian"`
				OrthodoxGregorian string `json:"orthodox_gregorian"`
				CatholicGregorian string `json:"catholic_gregorian"`
				SameDay           bool   `json:"same_day"`
			}
			decode(t, rec, &got)
			if got.OrthodoxJulian != tt.orthodoxJulian ||
				got.OrthodoxGregorian != tt.orthodoxGregorian ||
				got.CatholicGregorian != tt.catholic ||
				got.SameDay != tt.sameDay {
				t.Errorf("easter = %+v", got)
			}
		})
	}
}

func TestGetFeasts_Localized(t *testing.T) {
	env := setupTest(t)

	rec := env.do(t, http.MethodGet, "/api/v1/feasts/2024?lang=el", nil, nil)
	expectStatus(t, rec, http.StatusOK)

	var got struct {
		Lang     string `json:"lang"`
		Orthodox []struct {
			Key  string `json:"key"`
			Name string `json:"name"`
			Date string `json:"date"`
		} `json:"orthodox"`
		Catholic []struct {
			Key  string `json:"key"`
			Date string `json:"date"`
		} `json:"catholic"`
	}
	decode(t, rec, &got)

	if got.Lang != "el" {
		t.Errorf("lang = %q, want el", got.Lang)
	}
	if len(got.Orthodox) != 11 || len(got.Catholic) != 6 {
		t.Fatalf("got %d orthodox and %d catholic feasts", len(got.Orthodox), len(got.Catholic))
	}
	first := got.Orthodox[0]
	if first.Key != "clean_monday" || first.Date != "2024-03-18" || first.Name != "Καθαρά Δευτέρα" {
		t.Errorf("first orthodox feast = %+v", first)
	}
	if last := got.Orthodox[10]; last.Key != "all_saints" || last.Date != "2024-06-30" {
		t.Errorf("last orthodox feast = %+v", last)
	}
	if ash := got.Catholic[0]; ash.Key != "ash_wednesday" || ash.Date != "2024-02-14" {
		t.Errorf("first catholic feast = %+v", ash)
	}
}

func TestGetEcho(t *testing.T) {
	env := setupTest(t)

	tests := []struct {
		name     string
		path     string
		headers  map[string]string
		wantDate string
		wantEcho int
		wantTone string
	}{
		{"bright saturday", "/api/v1/echo/2023-04-22", nil, "2023-04-22", 8, "Tone 8"},
		{"before thomas sunday", "/api/v1/echo/2023-02-01", nil, "2023-02-01", 8, "Tone 8"},
		{"accept language", "/api/v1/echo/2023-04-16", map[string]string{"Accept-Language": "ru-RU,ru;q=0.9"}, "2023-04-16", 1, "Глас 1"},
		{"today uses the UTC date", "/api/v1/echo/today", nil, "2023-04-21", 6, "Tone 6"},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			rec := env.do(t, http.MethodGet, tt.path, nil, tt.headers)
			expectStatus(t, rec, http.StatusOK)

			var got struct {
				Date string `json:"date"`
				Echo int    `json:"echo"`
				Tone string `json:"tone"`
			}
			decode(t, rec, &got)
			if got.Date != tt.wantDate || got.Echo != tt.wantEcho || got.Tone != tt.wantTone {
				t.Errorf("got %+v, want %s echo %d %q", got, tt.wantDate, tt.wantEcho, tt.wantTone)
			}
		})
	}
}

func TestGetEchoRange(t *testing.T) {
	env := setupTest(t)

	rec := env.do(t, http.MethodGet, "/api/v1/echo?start=2023-04-16&end=2023-04-23", nil, nil)
	expectStatus(t, rec, http.StatusOK)

	var got struct {
		Days []struct {
			Date string `json:"date"`
			Echo int    `json:"echo"`
		} `json:"days"`
	}
	decode(t, rec, &got)

	want := []int{1, 2, 3, 4, 5, 6, 8, 1}
	if len(got.Days) != len(want) {
		t.Fatalf("got %d days, want %d", len(got.Days), len(want))
	}
	for i, d := range got.Days {
		if d.Echo != want[i] {
			t.Errorf("%s: echo = %d, want %d", d.Date, d.Echo, want[i])
		}
	}
}

func TestGetEchoRange_Invalid(t *testing.T) {
	env := setupTest(t)

	tests := []struct {
		name  string
		query string
	}{
		{"missing end", "start=2023-01-01"},
		{"bad start", "start=2023-1-1&end=2023-01-02"},
		{"reversed", "start=2023-02-01&end=2023-01-01"},
		{"too long", "start=2023-01-01&end=2023-03-01"},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			rec := env.do(t, http.MethodGet, "/api/v1/echo?"+tt.query, nil, nil)
			expectErrorCode(t, rec, http.StatusBadRequest, CodeBadRequest)
		})
	}
}

func TestGetDay(t *testing.T) {
	env := setupTest(t)

	rec := env.do(t, http.MethodGet, "/api/v1/day/2023-04-22?lang=ru", nil, nil)
	expectStatus(t, rec, http.StatusOK)

	var got struct {
		Date            string  `json:"date"`
		JulianDate      string  `json:"julian_date"`
		JulianDayNumber float64 `json:"julian_day_number"`
		Weekday         string  `json:"weekday"`
		Echo            int     `json:"echo"`
		Tone            string  `json:"tone"`
		FeastName       string  `json:"feast_name"`
		Feast           *struct {
			Key string `json:"key"`
		} `json:"feast"`
	}
	decode(t, rec, &got)

	if got.JulianDate != "2023-04-09" || got.JulianDayNumber != 2460056.5 || got.Weekday != "Saturday" {
		t.Errorf("day = %+v", got)
	}
	if got.Echo != 8 || got.Tone != "Глас 8" {
		t.Errorf("echo = %d %q, want 8 Глас 8", got.Echo, got.Tone)
	}
	if got.Feast == nil || got.Feast.Key != "bright_saturday" || got.FeastName != "Светлая суббота" {
		t.Errorf("feast = %+v %q", got.Feast, got.FeastName)
	}
}

// =============================================================================
// PASCHALION TABLE
// =============================================================================

func TestGeneratePaschalion_RequiresAPIKey(t *testing.T) {
	env := setupTest(t)
	body := map[string]int{"from": 2020, "to": 2030}

	rec := env.do(t, http.MethodPost, "/api/v1/paschalion", body, nil)
	expectErrorCode(t, rec, http.StatusUnauthorized, CodeUnauthorized)

	rec = env.do(t, http.MethodPost, "/api/v1/paschalion", body, map[string]string{"X-API-Key": "wrong"})
	expectErrorCode(t, rec, http.StatusUnauthorized, CodeUnauthorized)
}

func TestGenerateAndListPaschalion(t *testing.T) {
	env := setupTest(t)
	auth := map[string]string{"X-API-Key": env.apiKey}

	rec := env.do(t, http.MethodPost, "/api/v1/paschalion", map[string]int{"from": 2020, "to": 2030}, auth)
	expectStatus(t, rec, http.StatusCreated)

	var created struct {
		Stored int `json:"stored"`
	}
	decode(t, rec, &created)
	if created.Stored != 11 {
		t.Errorf("stored = %d, want 11", created.Stored)
	}

	rec = env.do(t, http.MethodGet, "/api/v1/paschalion?from=2024&to=2025", nil, nil)
	expectStatus(t, rec, http.StatusOK)

	var listed struct {
		Count   int `json:"count"`
		Entries []struct {
			Year              int    `json:"year"`
			OrthodoxGregorian string `json:"orthodox_gregorian"`
			CatholicGregorian string `json:"catholic_gregorian"`
		} `json:"entries"`
	}
	decode(t, rec, &listed)
	if listed.Count != 2 || len(listed.Entries) != 2 {
		t.Fatalf("count = %d, entries = %d, want 2", listed.Count, len(listed.Entries))
	}
	if e := listed.Entries[0]; e.Year != 2024 || e.OrthodoxGregorian != "2024-05-05" || e.CatholicGregorian != "2024-03-31" {
		t.Errorf("entry = %+v", e)
	}

	stats, err := env.db.PaschalionStats(context.Background())
	if err != nil {
		t.Fatalf("stats: %v", err)
	}
	if stats.Rows != 11 {
		t.Errorf("rows = %d, want 11", stats.Rows)
	}
}

func TestGeneratePaschalion_Invalid(t *testing.T) {
	env := setupTest(t)
	auth := map[string]string{"X-API-Key": env.apiKey}

	tests := []struct {
		name    string
		body    any
		wantMsg string
	}{
		{"reversed", map[string]int{"from": 2030, "to": 2020}, "to must not be before from"},
		{"too many years", map[string]int{"from": 1900, "to": 2100}, "cannot exceed 100 years"},
		{"out of bounds", map[string]int{"from": 9990, "to": 10000}, "to must be at most 9999"},
		{"unknown field", map[string]any{"from": 2020, "to": 2021, "rite": "x"}, "Invalid JSON body"},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			rec := env.do(t, http.MethodPost, "/api/v1/paschalion", tt.body, auth)
			expectStatus(t, rec, http.StatusBadRequest)
			resp := decode(t, rec, nil)
			if resp.Error == nil || !strings.Contains(resp.Error.Message, tt.wantMsg) {
				t.Errorf("error = %+v, want message containing %q", resp.Error, tt.wantMsg)
			}
		})
	}
}

func TestListPaschalion_Invalid(t *testing.T) {
	env := setupTest(t)

	for _, q := range []string{"", "from=2020", "from=a&to=b", "from=2030&to=2020"} {
		t.Run(q, func(t *testing.T) {
			rec := env.do(t, http.MethodGet, "/api/v1/paschalion?"+q, nil, nil)
			expectErrorCode(t, rec, http.StatusBadRequest, CodeBadRequest)
		})
	}
}

func TestAuthMiddleware_DevelopmentWithoutKey(t *testing.T) {
	cfg := &config.Config{Env: config.EnvDevelopment}
	logger := slog.New(slog.NewTextHandler(io.Discard, nil))

	called := false
	h := AuthMiddleware(cfg, logger)(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		called = true
	}))
	h.ServeHTTP(httptest.NewRecorder(), httptest.NewRequest(http.MethodPost, "/", nil))

	if !called {
		t.Error("development server without API key should not require auth")
	}
}
