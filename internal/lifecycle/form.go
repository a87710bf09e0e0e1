package lifecycle

import (
	"regexp"
	"strconv"
	"strings"
	"time"

	"footmatch-app/internal/model"
)

const (
	MinPlayers = 2
	MaxPlayers = 50

	FieldTitle      = "title"
	FieldLocation   = "location"
	FieldDate       = "date"
	FieldTime       = "time"
	FieldMaxPlayers = "maxPlayers"
)

var (
	datePattern = regexp.MustCompile(`^\d{4}-\d{2}-\d{2}$`)
	timePattern = regexp.MustCompile(`^\d{2}:\d{2}$`)
)

// Form holds the raw create/edit input exactly as typed.
type Form struct {
	Title       string
	Description string
	Location    string
	Date        string
	Time        string
	MaxPlayers  string
}

// FieldErrors maps a field name to its single message.
type FieldErrors map[string]string

func (f FieldErrors) Empty() bool {
	return len(f) == 0
}

func NewForm() Form {
	return Form{MaxPlayers: "10"}
}

// FormFromMatch prefills the edit form with the match time in loc.
func FormFromMatch(m model.Match, loc *time.Location) Form {
	if loc == nil {
		loc = time.Local
	}
	local := m.MatchDate.In(loc)
	return Form{
		Title:       m.Title,
		Description: m.DescriptionText(),
		Location:    m.Location,
		Date:        local.Format("2006-01-02"),
		Time:        local.Format("15:04"),
		MaxPlayers:  strconv.Itoa(m.MaxPlayers),
	}
}

func (f Form) trimmed() Form {
	return Form{
		Title:       strings.TrimSpace(f.Title),
		Description: strings.TrimSpace(f.Description),
		Location:    strings.TrimSpace(f.Location),
		Date:        strings.TrimSpace(f.Date),
		Time:        strings.TrimSpace(f.Time),
		MaxPlayers:  strings.TrimSpace(f.MaxPlayers),
	}
}

// ValidateForm checks the form locally; it never contacts the backend.
func ValidateForm(form Form, now time.Time) FieldErrors {
	f := form.trimmed()
	errs := FieldErrors{}

	if f.Title == "" {
		errs[FieldTitle] = "Tytuł jest wymagany"
	}
	if f.Location == "" {
		errs[FieldLocation] = "Lokalizacja jest wymagana"
	}
	if f.Date == "" {
		errs[FieldDate] = "Data jest wymagana"
	}
	if f.Time == "" {
		errs[FieldTime] = "Godzina jest wymagana"
	}

	players, err := strconv.Atoi(f.MaxPlayers)
	switch {
	case err != nil || players < MinPlayers:
		errs[FieldMaxPlayers] = "Min. 2 graczy"
	case players > MaxPlayers:
		errs[FieldMaxPlayers] = "Max. 50 graczy"
	}

	dateOK := f.Date != "" && datePattern.MatchString(f.Date)
	if f.Date != "" && !dateOK {
		errs[FieldDate] = "Format: RRRR-MM-DD (np. 2024-12-20)"
	}
	timeOK := f.Time != "" && timePattern.MatchString(f.Time)
	if f.Time != "" && !timeOK {
		errs[FieldTime] = "Format: GG:MM (np. 18:00)"
	}
	if dateOK && timeOK {
		when, err := combine(f.Date, f.Time, now.Location())
		switch {
		case err != nil:
			errs[FieldDate] = "Nieprawidłowa data lub godzina"
		case !when.After(now):
			errs[FieldDate] = "Data meczu musi być w przyszłości"
		}
	}
	return errs
}

// Request converts a validated form into the backend body.
func (f Form) Request(loc *time.Location) (model.MatchRequest, error) {
	t := f.trimmed()
	when, err := combine(t.Date, t.Time, loc)
	if err != nil {
		return model.MatchRequest{}, err
	}
	players, err := strconv.Atoi(t.MaxPlayers)
	if err != nil {
		return model.MatchRequest{}, err
	}
	req := model.MatchRequest{
		Title:      t.Title,
		Location:   t.Location,
		MatchDate:  model.NewDateTime(when),
		MaxPlayers: players,
	}
	if t.Description != "" {
		desc := t.Description
		req.Description = &desc
	}
	return req, nil
}

func combine(date, clock string, loc *time.Location) (time.Time, error) {
	if loc == nil {
		loc = time.Local
	}
	return time.ParseInLocation("2006-01-02 15:04", date+" "+clock, loc)
}
