package lifecycle

import (
	"testing"
	"time"

	"footmatch-app/internal/model"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

var fixedNow = time.Date(2026, 10, 19, 12, 0, 0, 0, time.UTC)

func validForm() Form {
	return Form{
		Title:      "  Orlik wieczorem ",
		Location:   "Orlik Mokotów",
		Date:       "2026-10-20",
		Time:       "18:00",
		MaxPlayers: "10",
	}
}

func TestValidateForm(t *testing.T) {
	tests := []struct {
		name   string
		mutate func(*Form)
		want   FieldErrors
	}{
		{"valid", func(f *Form) {}, FieldErrors{}},
		{"blank required fields", func(f *Form) {
			f.Title, f.Location, f.Date, f.Time = "  ", "", " ", ""
		}, FieldErrors{
			FieldTitle:    "Tytuł jest wymagany",
			FieldLocation: "Lokalizacja jest wymagana",
			FieldDate:     "Data jest wymagana",
			FieldTime:     "Godzina jest wymagana",
		}},
		{"bad date format", func(f *Form) { f.Date = "20.10.2026" }, FieldErrors{FieldDate: "Format: RRRR-MM-DD (np. 2024-12-20)"}},
		{"bad time format", func(f *Form) { f.Time = "6pm" }, FieldErrors{FieldTime: "Format: GG:MM (np. 18:00)"}},
		{"impossible date", func(f *Form) { f.Date = "2026-13-45" }, FieldErrors{FieldDate: "Nieprawidłowa data lub godzina"}},
		{"past date", func(f *Form) { f.Date = "2020-01-01" }, FieldErrors{FieldDate: "Data meczu musi być w przyszłości"}},
		{"exactly now", func(f *Form) { f.Date, f.Time = "2026-10-19", "12:00" }, FieldErrors{FieldDate: "Data meczu musi być w przyszłości"}},
		{"too few players", func(f *Form) { f.MaxPlayers = "1" }, FieldErrors{FieldMaxPlayers: "Min. 2 graczy"}},
		{"not a number", func(f *Form) { f.MaxPlayers = "dziesięć" }, FieldErrors{FieldMaxPlayers: "Min. 2 graczy"}},
		{"too many players", func(f *Form) { f.MaxPlayers = "51" }, FieldErrors{FieldMaxPlayers: "Max. 50 graczy"}},
		{"bounds inclusive", func(f *Form) { f.MaxPlayers = "50" }, FieldErrors{}},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			f := validForm()
			tt.mutate(&f)
			assert.Equal(t, tt.want, ValidateForm(f, fixedNow))
		})
	}
}

func TestFormRequest(t *testing.T) {
	f := validForm()
	f.Description = "  gramy do 10 goli "
	req, err := f.Request(time.UTC)
	require.NoError(t, err)

	assert.Equal(t, "Orlik wieczorem", req.Title)
	assert.Equal(t, "Orlik Mokotów", req.Location)
	assert.Equal(t, 10, req.MaxPlayers)
	require.NotNil(t, req.Description)
	assert.Equal(t, "gramy do 10 goli", *req.Description)
	assert.Equal(t, time.Date(2026, 10, 20, 18, 0, 0, 0, time.UTC), req.MatchDate.Time)

	raw, err := req.MatchDate.MarshalJSON()
	require.NoError(t, err)
	assert.Equal(t, `"2026-10-20T18:00:00"`, string(raw))

	f.Description = " "
	req, err = f.Request(time.UTC)
	require.NoError(t, err)
	assert.Nil(t, req.Description)
}

func TestValidateFormReadsTimesInViewerZone(t *testing.T) {
	warsaw := time.FixedZone("CEST", 2*60*60)
	// 17:30 UTC is 19:30 for a user in Warsaw.
	now := time.Date(2026, 10, 20, 17, 30, 0, 0, time.UTC)

	f := validForm()
	f.Date, f.Time = "2026-10-20", "19:00"

	assert.Empty(t, ValidateForm(f, now), "a server clock in UTC takes 19:00 for the future")
	assert.Equal(t, FieldErrors{FieldDate: "Data meczu musi być w przyszłości"}, ValidateForm(f, now.In(warsaw)))

	f.Time = "20:00"
	assert.Empty(t, ValidateForm(f, now.In(warsaw)))
}

func TestFormFromMatchUsesLocation(t *testing.T) {
	warsaw := time.FixedZone("CEST", 2*60*60)
	m := *openMatch()
	m.MatchDate = model.NewDateTime(time.Date(2026, 10, 20, 16, 0, 0, 0, time.UTC))

	f := FormFromMatch(m, warsaw)

	assert.Equal(t, "2026-10-20", f.Date)
	assert.Equal(t, "18:00", f.Time)
}
