package web

import (
	"net/http"
	"strings"

	"footmatch-app/internal/api"
	"footmatch-app/internal/lifecycle"
	"footmatch-app/internal/model"
)

func (s *Server) baseView(r *http.Request, title string) BaseView {
	view := BaseView{
		Title:        title,
		IsDev:        s.dev,
		FlashSuccess: flashMessage(r.URL.Query().Get("notice")),
	}
	if user, ok := currentDevice(r).Auth.User(); ok {
		view.CurrentUser = user
		view.IsAuthenticated = true
		view.CanCreate = lifecycle.CanCreate(&user)
	}
	return view
}

func (s *Server) handleHome(w http.ResponseWriter, r *http.Request) {
	dev := currentDevice(r)
	query := r.URL.Query()

	statusValue, status := parseStatusFilter(query.Get("status"))
	dateValue, dateFrom := parseDateFilter(query.Get("date_from"), s.loc)
	filters := MatchFiltersView{
		Status:   statusValue,
		Location: strings.TrimSpace(query.Get("location")),
		DateFrom: dateValue,
	}
	page := parsePage(query.Get("page"))
	backendPage := page - 1
	size := matchesPageSize

	view := MatchListView{
		BaseView:      s.baseView(r, "Mecze"),
		Heading:       "Dostępne mecze",
		ShowFilters:   true,
		Filters:       filters,
		StatusOptions: statusOptions(filters.Status),
		EmptyText:     "Brak meczów spełniających kryteria.",
		BasePath:      "/",
		FilterQuery:   filterQuery(filters),
	}

	result, err := dev.API.ListMatches(r.Context(), api.MatchFilters{
		Status:   status,
		Location: filters.Location,
		DateFrom: dateFrom,
		Page:     &backendPage,
		Size:     &size,
	})
	if err != nil {
		s.logger.Warn("list matches", "error", err)
		view.FlashError = errorMessage(err)
	} else {
		for _, match := range result.Content {
			view.Matches = append(view.Matches, matchCardView(match, s.loc))
		}
		view.paginate(page, result.TotalPages)
	}
	if err := s.templates.Render(w, "home.html", view); err != nil {
		http.Error(w, err.Error(), http.StatusInternalServerError)
	}
}

func (s *Server) handleMyMatches(w http.ResponseWriter, r *http.Request) {
	dev := currentDevice(r)
	view := MatchListView{
		BaseView:  s.baseView(r, "Moje mecze"),
		Heading:   "Moje mecze",
		EmptyText: "Dołącz do meczu z listy dostępnych meczów",
		BasePath:  "/my-matches",
	}
	user, ok := dev.Auth.User()
	if !ok {
		view.LoginRequired = true
		if err := s.templates.Render(w, "home.html", view); err != nil {
			http.Error(w, err.Error(), http.StatusInternalServerError)
		}
		return
	}
	if user.IsOrganizer() {
		view.EmptyText = "Utwórz swój pierwszy mecz!"
	}

	page := parsePage(r.URL.Query().Get("page"))
	backendPage := page - 1
	size := myMatchesPageSize
	result, err := dev.API.ListMatches(r.Context(), api.MatchFilters{Page: &backendPage, Size: &size})
	if err != nil {
		s.logger.Warn("list my matches", "error", err)
		view.FlashError = errorMessage(err)
	} else {
		// TODO: players see every match until the backend exposes
		// GET /api/matches/mine with the caller's participations.
		for _, match := range ownMatches(user, result.Content) {
			view.Matches = append(view.Matches, matchCardView(match, s.loc))
		}
		view.paginate(page, result.TotalPages)
	}
	if err := s.templates.Render(w, "home.html", view); err != nil {
		http.Error(w, err.Error(), http.StatusInternalServerError)
	}
}

func ownMatches(user model.User, matches []model.Match) []model.Match {
	if !user.IsOrganizer() {
		return matches
	}
	own := make([]model.Match, 0, len(matches))
	for _, match := range matches {
		if match.Organizer.ID == user.ID {
			own = append(own, match)
		}
	}
	return own
}
