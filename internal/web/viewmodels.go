package web

import (
	"footmatch-app/internal/lifecycle"
	"footmatch-app/internal/model"
)

type BaseView struct {
	Title           string
	CurrentUser     model.User
	IsAuthenticated bool
	CanCreate       bool
	IsDev           bool
	FlashSuccess    string
	FlashError      string
}

type MatchCardView struct {
	ID            string
	Title         string
	Location      string
	DateLabel     string
	StatusText    string
	StatusClass   string
	PlayersLine   string
	OrganizerName string
}

type StatusOption struct {
	Value    string
	Label    string
	Selected bool
}

type MatchFiltersView struct {
	Status   string
	Location string
	DateFrom string
}

type MatchListView struct {
	BaseView
	Heading       string
	ShowFilters   bool
	Filters       MatchFiltersView
	StatusOptions []StatusOption
	Matches       []MatchCardView
	EmptyText     string
	BasePath      string
	FilterQuery   string
	Page          int
	TotalPages    int
	Pages         []PageLink
	HasPrev       bool
	HasNext       bool
	PrevURL       string
	NextURL       string
	LoginRequired bool
}

type PageLink struct {
	Number int
	URL    string
	Active bool
}

type ParticipantRowView struct {
	PlayerID      string
	Name          string
	StatusText    string
	StatusClass   string
	IsCurrentUser bool
	CanModerate   bool
}

// MatchPanelView is the part of the detail screen that HTMX swaps after an
// action.
type MatchPanelView struct {
	Match         MatchCardView
	Description   string
	Participants  []ParticipantRowView
	HasJoined     bool
	OwnStatusText string
	CanJoin       bool
	CanLeave      bool
	CanManage     bool
	LoginToJoin   bool
	Notice        string
	Error         string
}

type MatchDetailView struct {
	BaseView
	Panel MatchPanelView
}

type MatchFormView struct {
	BaseView
	Heading    string
	Action     string
	Submit     string
	CancelURL  string
	Form       lifecycle.Form
	Errors     lifecycle.FieldErrors
	MinPlayers int
	MaxPlayers int
}

type ConfirmView struct {
	BaseView
	Heading   string
	Message   string
	Action    string
	Confirm   string
	CancelURL string
}

type RoleOption struct {
	Value    string
	Label    string
	Selected bool
}

type AuthView struct {
	BaseView
	Error  string
	Errors map[string]string
	Name   string
	Email  string
	Roles  []RoleOption
}

type ProfileView struct {
	BaseView
	RoleLabel string
}

type MessageView struct {
	BaseView
	Heading string
	Message string
}
