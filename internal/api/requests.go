package api

import (
	"errors"
	"fmt"
	"strconv"
	"strings"

	"github.com/go-playground/validator/v10"

	"github.com/zapponejosh/paschalion/internal/calendar"
)

// Year bounds accepted by the API. The lower bound is the start of the
// Julian Period; the upper keeps dates within four year digits.
const (
	MinYear = -4712
	MaxYear = 9999

	yearRule = "gte=-4712,lte=9999"
)

// yearRangeRequest bounds a paschalion table, from query parameters or a
// POST body.
type yearRangeRequest struct {
	From int `json:"from" validate:"gte=-4712,lte=9999"`
	To   int `json:"to" validate:"gte=-4712,lte=9999,gtefield=From"`
}

func (r yearRangeRequest) years() int {
	return r.To - r.From + 1
}

// jdnRequest carries a Julian Day Number from the path.
type jdnRequest struct {
	JDN float64 `validate:"gte=0,lt=5373484.5"`
}

func newValidator() *validator.Validate {
	return validator.New(validator.WithRequiredStructEnabled())
}

// validationMessage turns validator errors into a single readable line.
func validationMessage(err error) string {
	var verrs validator.ValidationErrors
	if !errors.As(err, &verrs) {
		return err.Error()
	}

	msgs := make([]string, 0, len(verrs))
	for _, fe := range verrs {
		field := strings.ToLower(fe.Field())
		switch fe.Tag() {
		case "gte":
			msgs = append(msgs, fmt.Sprintf("%s must be at least %s", field, fe.Param()))
		case "lte":
			msgs = append(msgs, fmt.Sprintf("%s must be at most %s", field, fe.Param()))
		case "lt":
			msgs = append(msgs, fmt.Sprintf("%s must be below %s", field, fe.Param()))
		case "gtefield":
			msgs = append(msgs, fmt.Sprintf("%s must not be before %s", field, strings.ToLower(fe.Param())))
		default:
			msgs = append(msgs, fmt.Sprintf("%s failed %s", field, fe.Tag()))
		}
	}
	return strings.Join(msgs, "; ")
}

// parseYear reads a year path or query value and checks its bounds.
func parseYear(v *validator.Validate, raw string) (int, error) {
	year, err := strconv.Atoi(raw)
	if err != nil {
		return 0, fmt.Errorf("invalid year %q", raw)
	}
	if err := v.Var(year, yearRule); err != nil {
		return 0, fmt.Errorf("year must be between %d and %d", MinYear, MaxYear)
	}
	return year, nil
}

// parseCalendarDate parses and validates a date in the given calendar.
func parseCalendarDate(v *validator.Validate, raw string, cal calendar.Calendar) (calendar.Date, error) {
	date, err := calendar.ParseDate(raw)
	if err != nil {
		return calendar.Date{}, fmt.Errorf("invalid date format: %s. Use YYYY-MM-DD", raw)
	}
	if err := v.Var(date.Year, yearRule); err != nil {
		return calendar.Date{}, fmt.Errorf("year must be between %d and %d", MinYear, MaxYear)
	}
	if err := date.Validate(cal); err != nil {
		return calendar.Date{}, err
	}
	return date, nil
}
