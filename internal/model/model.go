package model

import (
	"fmt"
	"strings"
	"time"
)

type UserRole string

type MatchStatus string

type ParticipantStatus string

const (
	RolePlayer    UserRole = "PLAYER"
	RoleOrganizer UserRole = "ORGANIZER"

	MatchOpen      MatchStatus = "OPEN"
	MatchClosed    MatchStatus = "CLOSED"
	MatchCancelled MatchStatus = "CANCELLED"
	MatchCompleted MatchStatus = "COMPLETED"

	ParticipantPending  ParticipantStatus = "PENDING"
	ParticipantAccepted ParticipantStatus = "ACCEPTED"
	ParticipantRejected ParticipantStatus = "REJECTED"
)

func (r UserRole) Valid() bool {
	return r == RolePlayer || r == RoleOrganizer
}

func (r UserRole) Label() string {
	switch r {
	case RolePlayer:
		return "Gracz"
	case RoleOrganizer:
		return "Organizator"
	}
	return string(r)
}

func (s MatchStatus) Valid() bool {
	switch s {
	case MatchOpen, MatchClosed, MatchCancelled, MatchCompleted:
		return true
	}
	return false
}

func (s MatchStatus) Label() string {
	switch s {
	case MatchOpen:
		return "Otwarty"
	case MatchClosed:
		return "Zamknięty"
	case MatchCancelled:
		return "Anulowany"
	case MatchCompleted:
		return "Zakończony"
	}
	return string(s)
}

func (s ParticipantStatus) Valid() bool {
	switch s {
	case ParticipantPending, ParticipantAccepted, ParticipantRejected:
		return true
	}
	return false
}

func (s ParticipantStatus) Label() string {
	switch s {
	case ParticipantPending:
		return "Oczekuje"
	case ParticipantAccepted:
		return "Zaakceptowany"
	case ParticipantRejected:
		return "Odrzucony"
	}
	return string(s)
}

type User struct {
	ID    string   `json:"id"`
	Email string   `json:"email"`
	Name  string   `json:"name"`
	Role  UserRole `json:"role"`
}

func (u User) Summary() UserSummary {
	return UserSummary{ID: u.ID, Name: u.Name}
}

func (u User) IsOrganizer() bool {
	return u.Role == RoleOrganizer
}

type UserSummary struct {
	ID   string `json:"id"`
	Name string `json:"name"`
}

type Match struct {
	ID             string      `json:"id"`
	Title          string      `json:"title"`
	Description    *string     `json:"description"`
	Location       string      `json:"location"`
	MatchDate      DateTime    `json:"matchDate"`
	MaxPlayers     int         `json:"maxPlayers"`
	CurrentPlayers int         `json:"currentPlayers"`
	Status         MatchStatus `json:"status"`
	Organizer      UserSummary `json:"organizer"`
	CreatedAt      DateTime    `json:"createdAt"`
}

// PlayersLine renders the server-computed head count, e.g. "6/10".
func (m Match) PlayersLine() string {
	return fmt.Sprintf("%d/%d", m.CurrentPlayers, m.MaxPlayers)
}

func (m Match) DescriptionText() string {
	if m.Description == nil {
		return ""
	}
	return strings.TrimSpace(*m.Description)
}

type Participant struct {
	ID       string            `json:"id"`
	Player   UserSummary       `json:"player"`
	Status   ParticipantStatus `json:"status"`
	JoinedAt DateTime          `json:"joinedAt"`
}

type Session struct {
	AccessToken  string
	RefreshToken string
	ExpiresIn    int64
}

type AuthResponse struct {
	AccessToken  string `json:"accessToken"`
	RefreshToken string `json:"refreshToken"`
	TokenType    string `json:"tokenType"`
	ExpiresIn    int64  `json:"expiresIn"`
	User         User   `json:"user"`
}

func (a AuthResponse) Session() Session {
	return Session{
		AccessToken:  a.AccessToken,
		RefreshToken: a.RefreshToken,
		ExpiresIn:    a.ExpiresIn,
	}
}

type LoginRequest struct {
	Email    string `json:"email"`
	Password string `json:"password"`
}

type RegisterRequest struct {
	Email    string   `json:"email"`
	Password string   `json:"password"`
	Name     string   `json:"name"`
	Role     UserRole `json:"role"`
}

type RefreshTokenRequest struct {
	RefreshToken string `json:"refreshToken"`
}

// MatchRequest is the body of both create and update calls.
type MatchRequest struct {
	Title       string   `json:"title"`
	Description *string  `json:"description,omitempty"`
	Location    string   `json:"location"`
	MatchDate   DateTime `json:"matchDate"`
	MaxPlayers  int      `json:"maxPlayers"`
}

type UpdateParticipantStatusRequest struct {
	Status ParticipantStatus `json:"status"`
}

type Page[T any] struct {
	Content       []T   `json:"content"`
	Page          int   `json:"page"`
	Size          int   `json:"size"`
	TotalElements int64 `json:"totalElements"`
	TotalPages    int   `json:"totalPages"`
	First         bool  `json:"first"`
	Last          bool  `json:"last"`
}

// DateTime accepts both RFC3339 instants and zone-less local timestamps
// and always encodes the zone-less form.
type DateTime struct {
	time.Time
}

const localDateTimeLayout = "2006-01-02T15:04:05"

var dateTimeLayouts = []string{
	time.RFC3339Nano,
	time.RFC3339,
	"2006-01-02T15:04:05.999999999",
	localDateTimeLayout,
	"2006-01-02T15:04",
}

func NewDateTime(t time.Time) DateTime {
	return DateTime{Time: t}
}

func ParseDateTime(value string) (DateTime, error) {
	value = strings.TrimSpace(value)
	for _, layout := range dateTimeLayouts {
		if parsed, err := time.ParseInLocation(layout, value, time.Local); err == nil {
			return DateTime{Time: parsed}, nil
		}
	}
	return DateTime{}, fmt.Errorf("invalid date time %q", value)
}

func (d DateTime) MarshalJSON() ([]byte, error) {
	if d.IsZero() {
		return []byte("null"), nil
	}
	return []byte(`"` + d.Format(localDateTimeLayout) + `"`), nil
}

func (d *DateTime) UnmarshalJSON(data []byte) error {
	raw := strings.Trim(string(data), `"`)
	if raw == "" || raw == "null" {
		d.Time = time.Time{}
		return nil
	}
	parsed, err := ParseDateTime(raw)
	if err != nil {
		return err
	}
	*d = parsed
	return nil
}
