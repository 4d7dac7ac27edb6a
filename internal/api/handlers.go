package api

import (
	"encoding/json"
	"errors"
	"fmt"
	"log/slog"
	"net/http"
	"strconv"
	"time"

	"github.com/go-chi/chi/v5"
	"github.com/go-playground/validator/v10"
	"golang.org/x/text/language"

	"github.com/zapponejosh/paschalion/internal/calendar"
	"github.com/zapponejosh/paschalion/internal/config"
	"github.com/zapponejosh/paschalion/internal/database"
	"github.com/zapponejosh/paschalion/internal/i18n"
	"github.com/zapponejosh/paschalion/internal/logger"
)

// Handlers contains all HTTP handlers and their dependencies.
type Handlers struct {
	db       *database.DB
	cfg      *config.Config
	logger   *slog.Logger
	validate *validator.Validate
	fallback language.Tag

	// now is the clock used for "today"; tests replace it.
	now func() time.Time
}

// NewHandlers creates a new Handlers instance.
func NewHandlers(db *database.DB, cfg *config.Config, log *slog.Logger) *Handlers {
	fallback, ok := i18n.ParseTag(cfg.DefaultLang)
	if !ok {
		fallback = i18n.Default()
	}
	return &Handlers{
		db:       db,
		cfg:      cfg,
		logger:   log,
		validate: newValidator(),
		fallback: fallback,
		now:      time.Now,
	}
}

func (h *Handlers) requestLogger(r *http.Request) *slog.Logger {
	if id := logger.RequestID(r.Context()); id != "" {
		return h.logger.With(slog.String("request_id", id))
	}
	return h.logger
}

// lang resolves the response language from ?lang= or Accept-Language.
func (h *Handlers) lang(r *http.Request) language.Tag {
	return i18n.Match(r.Header.Get("Accept-Language"), r.URL.Query().Get("lang"), h.fallback)
}

// HealthCheck handles GET /health
func (h *Handlers) HealthCheck(w http.ResponseWriter, r *http.Request) {
	ctx := r.Context()

	if err := h.db.Health(ctx); err != nil {
		h.requestLogger(r).Warn("health check failed", slog.Any("error", err))
		WriteError(w, http.StatusServiceUnavailable, "Database unhealthy", CodeUnavailable)
		return
	}

	stats, err := h.db.PaschalionStats(ctx)
	if err != nil {
		h.requestLogger(r).Error("failed to read paschalion stats", slog.Any("error", err))
		WriteInternalError(w, "Failed to read database")
		return
	}

	WriteSuccess(w, map[string]any{
		"status":     "healthy",
		"paschalion": stats,
	})
}

// LeapResponse reports both leap-year rules for a year.
type LeapResponse struct {
	Year          int  `json:"year"`
	GregorianLeap bool `json:"gregorian_leap"`
	JulianLeap    bool `json:"julian_leap"`
}

// GetLeap handles GET /api/v1/leap/{year}
func (h *Handlers) GetLeap(w http.ResponseWriter, r *http.Request) {
	year, err := parseYear(h.validate, chi.URLParam(r, "year"))
	if err != nil {
		WriteBadRequest(w, err.Error())
		return
	}

	WriteSuccess(w, LeapResponse{
		Year:          year,
		GregorianLeap: calendar.IsLeapGregorianYear(year),
		JulianLeap:    calendar.IsLeapJulianYear(year),
	})
}

// ConversionResponse holds one day in both calendars.
type ConversionResponse struct {
	Gregorian       calendar.Date `json:"gregorian"`
	Julian          calendar.Date `json:"julian"`
	JulianDayNumber float64       `json:"julian_day_number"`
	Weekday         string        `json:"weekday"`
}

func conversionFromJDN(jdn float64) ConversionResponse {
	gregorian := calendar.JulianDayNumberToGregorian(jdn)
	return ConversionResponse{
		Gregorian:       gregorian,
		Julian:          calendar.JulianDayNumberToJulian(jdn),
		JulianDayNumber: jdn,
		Weekday:         calendar.DayName(gregorian),
	}
}

// ConvertGregorian handles GET /api/v1/convert/gregorian/{date}
func (h *Handlers) ConvertGregorian(w http.ResponseWriter, r *http.Request) {
	date, err := parseCalendarDate(h.validate, chi.URLParam(r, "date"), calendar.Gregorian)
	if err != nil {
		WriteBadRequest(w, err.Error())
		return
	}
	WriteSuccess(w, conversionFromJDN(calendar.GregorianToJulianDayNumber(date)))
}

// ConvertJulian handles GET /api/v1/convert/julian/{date}
func (h *Handlers) ConvertJulian(w http.ResponseWriter, r *http.Request) {
	date, err := parseCalendarDate(h.validate, chi.URLParam(r, "date"), calendar.Julian)
	if err != nil {
		WriteBadRequest(w, err.Error())
		return
	}
	WriteSuccess(w, conversionFromJDN(calendar.JulianToJulianDayNumber(date)))
}

// GetJDN handles GET /api/v1/jdn/{jdn}
func (h *Handlers) GetJDN(w http.ResponseWriter, r *http.Request) {
	raw := chi.URLParam(r, "jdn")
	jdn, err := strconv.ParseFloat(raw, 64)
	if err != nil {
		WriteBadRequest(w, fmt.Sprintf("Invalid Julian Day Number: %s", raw))
		return
	}

	req := jdnRequest{JDN: jdn}
	if err := h.validate.Struct(req); err != nil {
		WriteBadRequest(w, validationMessage(err))
		return
	}

	WriteSuccess(w, conversionFromJDN(req.JDN))
}

// EasterResponse holds the Easter dates of a year.
type EasterResponse struct {
	Year              int           `json:"year"`
	OrthodoxJulian    calendar.Date `json:"orthodox_julian"`
	OrthodoxGregorian calendar.Date `json:"orthodox_gregorian"`
	CatholicGregorian calendar.Date `json:"catholic_gregorian"`
	SameDay           bool          `json:"same_day"`
}

// GetEaster handles GET /api/v1/easter/{year}
func (h *Handlers) GetEaster(w http.ResponseWriter, r *http.Request) {
	year, err := parseYear(h.validate, chi.URLParam(r, "year"))
	if err != nil {
		WriteBadRequest(w, err.Error())
		return
	}

	orthodox := calendar.OrthodoxEasterGregorian(year)
	catholic := calendar.CatholicEasterGregorian(year)
	WriteSuccess(w, EasterResponse{
		Year:              year,
		OrthodoxJulian:    calendar.OrthodoxEasterJulian(year),
		OrthodoxGregorian: orthodox,
		CatholicGregorian: catholic,
		SameDay:           orthodox.Equal(catholic),
	})
}

// FeastView is a movable feast with its localized name.
type FeastView struct {
	calendar.Feast
	Name    string `json:"name"`
	Weekday string `json:"weekday"`
}

// FeastsResponse lists the movable feasts of a year for both rites.
type FeastsResponse struct {
	Year     int         `json:"year"`
	Lang     string      `json:"lang"`
	Orthodox []FeastView `json:"orthodox"`
	Catholic []FeastView `json:"catholic"`
}

func localizeFeasts(tag language.Tag, feasts []calendar.Feast) []FeastView {
	views := make([]FeastView, len(feasts))
	for i, f := range feasts {
		views[i] = FeastView{
			Feast:   f,
			Name:    i18n.FeastName(tag, f.Key),
			Weekday: calendar.DayName(f.Date),
		}
	}
	return views
}

// GetFeasts handles GET /api/v1/feasts/{year}
func (h *Handlers) GetFeasts(w http.ResponseWriter, r *http.Request) {
	year, err := parseYear(h.validate, chi.URLParam(r, "year"))
	if err != nil {
		WriteBadRequest(w, err.Error())
		return
	}

	tag := h.lang(r)
	WriteSuccess(w, FeastsResponse{
		Year:     year,
		Lang:     tag.String(),
		Orthodox: localizeFeasts(tag, calendar.MovableFeasts(year)),
		Catholic: localizeFeasts(tag, calendar.CatholicMovableFeasts(year)),
	})
}

// EchoResponse is the Echo of one day.
type EchoResponse struct {
	Date calendar.Date `json:"date"`
	Echo int           `json:"echo"`
	Tone string        `json:"tone"`
	Lang string        `json:"lang"`
}

func echoOf(tag language.Tag, date calendar.Date) EchoResponse {
	echo := calendar.Echo(date)
	return EchoResponse{
		Date: date,
		Echo: echo,
		Tone: i18n.ToneName(tag, echo),
		Lang: tag.String(),
	}
}

// GetTodayEcho handles GET /api/v1/echo/today
func (h *Handlers) GetTodayEcho(w http.ResponseWriter, r *http.Request) {
	WriteSuccess(w, echoOf(h.lang(r), calendar.DateOf(h.now())))
}

// GetDateEcho handles GET /api/v1/echo/{date}
func (h *Handlers) GetDateEcho(w http.ResponseWriter, r *http.Request) {
	date, err := parseCalendarDate(h.validate, chi.URLParam(r, "date"), calendar.Gregorian)
	if err != nil {
		WriteBadRequest(w, err.Error())
		return
	}
	WriteSuccess(w, echoOf(h.lang(r), date))
}

// EchoRangeResponse lists the Echo of each day in an inclusive range.
type EchoRangeResponse struct {
	Start calendar.Date  `json:"start"`
	End   calendar.Date  `json:"end"`
	Lang  string         `json:"lang"`
	Days  []EchoResponse `json:"days"`
}

// GetEchoRange handles GET /api/v1/echo?start=YYYY-MM-DD&end=YYYY-MM-DD
func (h *Handlers) GetEchoRange(w http.ResponseWriter, r *http.Request) {
	startStr := r.URL.Query().Get("start")
	endStr := r.URL.Query().Get("end")
	if startStr == "" || endStr == "" {
		WriteBadRequest(w, "Both start and end date parameters are required")
		return
	}

	start, err := parseCalendarDate(h.validate, startStr, calendar.Gregorian)
	if err != nil {
		WriteBadRequest(w, "start: "+err.Error())
		return
	}
	end, err := parseCalendarDate(h.validate, endStr, calendar.Gregorian)
	if err != nil {
		WriteBadRequest(w, "end: "+err.Error())
		return
	}
	if end.Before(start) {
		WriteBadRequest(w, "Start date must be before or equal to end date")
		return
	}

	days := int(calendar.GregorianToJulianDayNumber(end)-calendar.GregorianToJulianDayNumber(start)) + 1
	if days > h.cfg.MaxRangeDays {
		WriteBadRequest(w, fmt.Sprintf("Date range cannot exceed %d days", h.cfg.MaxRangeDays))
		return
	}

	tag := h.lang(r)
	resp := EchoRangeResponse{
		Start: start,
		End:   end,
		Lang:  tag.String(),
		Days:  make([]EchoResponse, 0, days),
	}
	for i := 0; i < days; i++ {
		resp.Days = append(resp.Days, echoOf(tag, start.AddDays(i)))
	}
	WriteSuccess(w, resp)
}

// DayResponse is a day summary with localized labels.
type DayResponse struct {
	calendar.Day
	Tone      string `json:"tone"`
	FeastName string `json:"feast_name,omitempty"`
	Lang      string `json:"lang"`
}

// GetDay handles GET /api/v1/day/{date}
func (h *Handlers) GetDay(w http.ResponseWriter, r *http.Request) {
	date, err := parseCalendarDate(h.validate, chi.URLParam(r, "date"), calendar.Gregorian)
	if err != nil {
		WriteBadRequest(w, err.Error())
		return
	}

	tag := h.lang(r)
	day := calendar.Describe(date)
	resp := DayResponse{
		Day:  day,
		Tone: i18n.ToneName(tag, day.Echo),
		Lang: tag.String(),
	}
	if day.Feast != nil {
		resp.FeastName = i18n.FeastName(tag, day.Feast.Key)
	}
	WriteSuccess(w, resp)
}

// parseYearRange reads and checks a year range against the table limit.
func (h *Handlers) parseYearRange(req yearRangeRequest) error {
	if err := h.validate.Struct(req); err != nil {
		return errors.New(validationMessage(err))
	}
	if req.years() > h.cfg.MaxTableYears {
		return fmt.Errorf("range cannot exceed %d years", h.cfg.MaxTableYears)
	}
	return nil
}

// ListPaschalion handles GET /api/v1/paschalion?from=YYYY&to=YYYY
func (h *Handlers) ListPaschalion(w http.ResponseWriter, r *http.Request) {
	fromStr := r.URL.Query().Get("from")
	toStr := r.URL.Query().Get("to")
	if fromStr == "" || toStr == "" {
		WriteBadRequest(w, "Both from and to year parameters are required")
		return
	}

	from, errFrom := strconv.Atoi(fromStr)
	to, errTo := strconv.Atoi(toStr)
	if errFrom != nil || errTo != nil {
		WriteBadRequest(w, "from and to must be integers")
		return
	}

	req := yearRangeRequest{From: from, To: to}
	if err := h.parseYearRange(req); err != nil {
		WriteBadRequest(w, err.Error())
		return
	}

	entries, err := h.db.ListPaschalion(r.Context(), req.From, req.To)
	if err != nil {
		h.requestLogger(r).Error("failed to list paschalion",
			slog.Int("from", req.From),
			slog.Int("to", req.To),
			slog.Any("error", err))
		WriteInternalError(w, "Failed to retrieve paschalion")
		return
	}

	WriteSuccess(w, map[string]any{
		"from":    req.From,
		"to":      req.To,
		"count":   len(entries),
		"entries": entries,
	})
}

// GeneratePaschalion handles POST /api/v1/paschalion
func (h *Handlers) GeneratePaschalion(w http.ResponseWriter, r *http.Request) {
	var req yearRangeRequest
	dec := json.NewDecoder(r.Body)
	dec.DisallowUnknownFields()
	if err := dec.Decode(&req); err != nil {
		WriteBadRequest(w, "Invalid JSON body")
		return
	}

	if err := h.parseYearRange(req); err != nil {
		WriteBadRequest(w, err.Error())
		return
	}

	entries := database.GeneratePaschalion(req.From, req.To, h.now())
	if err := h.db.SavePaschalion(r.Context(), entries); err != nil {
		h.requestLogger(r).Error("failed to save paschalion",
			slog.Int("from", req.From),
			slog.Int("to", req.To),
			slog.Any("error", err))
		WriteInternalError(w, "Failed to store paschalion")
		return
	}

	h.requestLogger(r).Info("paschalion stored",
		slog.Int("from", req.From),
		slog.Int("to", req.To),
		slog.Int("rows", len(entries)))

	WriteCreated(w, map[string]any{
		"from":    req.From,
		"to":      req.To,
		"stored":  len(entries),
		"entries": entries,
	})
}
