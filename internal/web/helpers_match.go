package web

import (
	"net/http"
	"net/url"
	"strconv"
	"strings"
	"time"

	"footmatch-app/internal/lifecycle"
	"footmatch-app/internal/model"
)

const (
	matchesPageSize   = 10
	myMatchesPageSize = 50
	statusAll         = "ALL"
)

var matchStatuses = []model.MatchStatus{
	model.MatchOpen,
	model.MatchClosed,
	model.MatchCancelled,
	model.MatchCompleted,
}

func matchCardView(match model.Match, loc *time.Location) MatchCardView {
	return MatchCardView{
		ID:            match.ID,
		Title:         match.Title,
		Location:      match.Location,
		DateLabel:     matchDateLabel(match.MatchDate.Time, loc),
		StatusText:    match.Status.Label(),
		StatusClass:   strings.ToLower(string(match.Status)),
		PlayersLine:   match.PlayersLine(),
		OrganizerName: match.Organizer.Name,
	}
}

func matchPanelView(match model.Match, participants []model.Participant, user *model.User, loc *time.Location) MatchPanelView {
	perms := lifecycle.Evaluate(&match, participants, user)
	view := MatchPanelView{
		Match:       matchCardView(match, loc),
		Description: match.DescriptionText(),
		HasJoined:   perms.HasJoined,
		CanJoin:     perms.CanJoin,
		CanLeave:    perms.CanLeave,
		CanManage:   perms.CanManage,
		LoginToJoin: perms.LoginToJoin,
	}
	if perms.Own != nil {
		view.OwnStatusText = perms.Own.Status.Label()
	}
	for _, p := range participants {
		view.Participants = append(view.Participants, ParticipantRowView{
			PlayerID:      p.Player.ID,
			Name:          p.Player.Name,
			StatusText:    p.Status.Label(),
			StatusClass:   strings.ToLower(string(p.Status)),
			IsCurrentUser: user != nil && p.Player.ID == user.ID,
			CanModerate:   perms.CanModerate(p),
		})
	}
	return view
}

func statusOptions(selected string) []StatusOption {
	options := []StatusOption{{Value: statusAll, Label: "Wszystkie", Selected: selected == statusAll}}
	for _, status := range matchStatuses {
		options = append(options, StatusOption{
			Value:    string(status),
			Label:    status.Label(),
			Selected: selected == string(status),
		})
	}
	return options
}

// parseStatusFilter defaults to OPEN; ALL lifts the filter.
func parseStatusFilter(value string) (string, model.MatchStatus) {
	value = strings.ToUpper(strings.TrimSpace(value))
	if value == statusAll {
		return statusAll, ""
	}
	status := model.MatchStatus(value)
	if !status.Valid() {
		status = model.MatchOpen
	}
	return string(status), status
}

func parseDateFilter(value string, loc *time.Location) (string, *time.Time) {
	value = strings.TrimSpace(value)
	if value == "" {
		return "", nil
	}
	t, err := time.ParseInLocation("2006-01-02", value, loc)
	if err != nil {
		return "", nil
	}
	return value, &t
}

func parsePage(value string) int {
	page, err := strconv.Atoi(strings.TrimSpace(value))
	if err != nil || page < 1 {
		return 1
	}
	return page
}

func (v *MatchListView) paginate(page, totalPages int) {
	v.Page = page
	v.TotalPages = totalPages
	if totalPages > 0 {
		v.Pages = make([]PageLink, 0, totalPages)
		for i := 1; i <= totalPages; i++ {
			v.Pages = append(v.Pages, PageLink{Number: i, URL: v.pageURL(i), Active: i == page})
		}
	}
	v.HasPrev = page > 1
	v.HasNext = totalPages > 0 && page < totalPages
	if v.HasPrev {
		v.PrevURL = v.pageURL(page - 1)
	}
	if v.HasNext {
		v.NextURL = v.pageURL(page + 1)
	}
}

func (v *MatchListView) pageURL(page int) string {
	params, _ := url.ParseQuery(v.FilterQuery)
	if params == nil {
		params = url.Values{}
	}
	params.Set("page", strconv.Itoa(page))
	return v.BasePath + "?" + params.Encode()
}

func filterQuery(filters MatchFiltersView) string {
	params := url.Values{}
	params.Set("status", filters.Status)
	if filters.Location != "" {
		params.Set("location", filters.Location)
	}
	if filters.DateFrom != "" {
		params.Set("date_from", filters.DateFrom)
	}
	return params.Encode()
}

func formFromRequest(r *http.Request) lifecycle.Form {
	return lifecycle.Form{
		Title:       r.FormValue("title"),
		Description: r.FormValue("description"),
		Location:    r.FormValue("location"),
		Date:        r.FormValue("date"),
		Time:        r.FormValue("time"),
		MaxPlayers:  r.FormValue("maxPlayers"),
	}
}

func matchURL(matchID string, rest ...string) string {
	parts := append([]string{"/matches", url.PathEscape(matchID)}, rest...)
	return strings.Join(parts, "/")
}
