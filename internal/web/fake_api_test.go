package web

import (
	"encoding/json"
	"fmt"
	"net/http"
	"net/url"
	"sort"
	"strings"
	"sync"
	"time"

	"footmatch-app/internal/model"

	"github.com/go-chi/chi/v5"
)

var (
	organizer = model.User{ID: "org-1", Email: "jan@footmatch.pl", Name: "Jan Kowalski", Role: model.RoleOrganizer}
	player    = model.User{ID: "p-1", Email: "adam@footmatch.pl", Name: "Adam Nowak", Role: model.RolePlayer}
	other     = model.User{ID: "p-2", Email: "ewa@footmatch.pl", Name: "Ewa Wiśniewska", Role: model.RolePlayer}
)

const testPassword = "Haslo1234"

type apiFailure struct {
	status  int
	code    string
	message string
}

// fakeAPI is an in-memory rendition of the REST backend.
type fakeAPI struct {
	mu           sync.Mutex
	users        map[string]model.User
	passwords    map[string]string
	access       map[string]string
	refresh      map[string]string
	matches      map[string]model.Match
	participants map[string][]model.Participant
	joinFailure  *apiFailure
	// readsDownAfterJoin makes match reads fail once a join went through.
	readsDownAfterJoin bool
	readFailure        *apiFailure
	lastQuery    url.Values
	calls        int
	refreshCalls int
	seq          int
}

func newFakeAPI() *fakeAPI {
	f := &fakeAPI{
		users:        map[string]model.User{},
		passwords:    map[string]string{},
		access:       map[string]string{},
		refresh:      map[string]string{},
		matches:      map[string]model.Match{},
		participants: map[string][]model.Participant{},
	}
	for _, u := range []model.User{organizer, player, other} {
		f.users[u.Email] = u
		f.passwords[u.Email] = testPassword
	}
	f.matches["m1"] = model.Match{
		ID:             "m1",
		Title:          "Mecz na Orliku Mokotów",
		Location:       "Orlik Mokotów",
		MatchDate:      model.NewDateTime(time.Date(2026, 11, 3, 18, 0, 0, 0, time.Local)),
		MaxPlayers:     10,
		CurrentPlayers: 6,
		Status:         model.MatchOpen,
		Organizer:      organizer.Summary(),
	}
	f.participants["m1"] = []model.Participant{
		{ID: "pa-2", Player: other.Summary(), Status: model.ParticipantPending},
	}
	return f
}

func (f *fakeAPI) Calls() int {
	f.mu.Lock()
	defer f.mu.Unlock()
	return f.calls
}

func (f *fakeAPI) LastQuery() url.Values {
	f.mu.Lock()
	defer f.mu.Unlock()
	return f.lastQuery
}

func (f *fakeAPI) RefreshCalls() int {
	f.mu.Lock()
	defer f.mu.Unlock()
	return f.refreshCalls
}

func (f *fakeAPI) handler() http.Handler {
	mux := chi.NewRouter()
	mux.Post("/api/auth/login", f.login)
	mux.Post("/api/auth/register", f.register)
	mux.Post("/api/auth/refresh", f.refreshToken)
	mux.Get("/api/matches", f.listMatches)
	mux.Post("/api/matches", f.authed(f.createMatch))
	mux.Get("/api/matches/{id}", f.getMatch)
	mux.Put("/api/matches/{id}", f.authed(f.updateMatch))
	mux.Delete("/api/matches/{id}", f.authed(f.deleteMatch))
	mux.Post("/api/matches/{id}/join", f.authed(f.join))
	mux.Delete("/api/matches/{id}/leave", f.authed(f.leave))
	mux.Get("/api/matches/{id}/participants", f.listParticipants)
	mux.Put("/api/matches/{id}/participants/{playerId}", f.authed(f.setStatus))
	return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		f.mu.Lock()
		f.calls++
		f.mu.Unlock()
		mux.ServeHTTP(w, r)
	})
}

func writeJSON(w http.ResponseWriter, status int, v any) {
	w.Header().Set("Content-Type", "application/json")
	w.WriteHeader(status)
	_ = json.NewEncoder(w).Encode(v)
}

func writeFailure(w http.ResponseWriter, fail apiFailure) {
	writeJSON(w, fail.status, map[string]string{
		"code":      fail.code,
		"message":   fail.message,
		"timestamp": "2026-10-19T12:00:00Z",
	})
}

var matchNotFound = apiFailure{http.StatusNotFound, "MATCH_NOT_FOUND", "Mecz nie został znaleziony"}

func (f *fakeAPI) authed(next func(http.ResponseWriter, *http.Request, model.User)) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		token := strings.TrimPrefix(r.Header.Get("Authorization"), "Bearer ")
		f.mu.Lock()
		id, ok := f.access[token]
		user, found := f.userByID(id)
		f.mu.Unlock()
		if !ok || !found {
			writeFailure(w, apiFailure{http.StatusUnauthorized, "UNAUTHORIZED", "Brak autoryzacji"})
			return
		}
		next(w, r, user)
	}
}

func (f *fakeAPI) userByID(id string) (model.User, bool) {
	for _, u := range f.users {
		if u.ID == id {
			return u, true
		}
	}
	return model.User{}, false
}

// issue must be called with f.mu held.
func (f *fakeAPI) issue(u model.User) model.AuthResponse {
	f.seq++
	access := fmt.Sprintf("access-%d", f.seq)
	refresh := fmt.Sprintf("refresh-%d", f.seq)
	f.access[access] = u.ID
	f.refresh[refresh] = u.ID
	return model.AuthResponse{
		AccessToken:  access,
		RefreshToken: refresh,
		TokenType:    "Bearer",
		ExpiresIn:    900,
		User:         u,
	}
}

func (f *fakeAPI) login(w http.ResponseWriter, r *http.Request) {
	var req model.LoginRequest
	_ = json.NewDecoder(r.Body).Decode(&req)
	f.mu.Lock()
	defer f.mu.Unlock()
	u, ok := f.users[req.Email]
	if !ok || f.passwords[req.Email] != req.Password {
		writeFailure(w, apiFailure{http.StatusUnauthorized, "INVALID_CREDENTIALS", "Nieprawidłowy email lub hasło"})
		return
	}
	writeJSON(w, http.StatusOK, f.issue(u))
}

func (f *fakeAPI) register(w http.ResponseWriter, r *http.Request) {
	var req model.RegisterRequest
	_ = json.NewDecoder(r.Body).Decode(&req)
	f.mu.Lock()
	defer f.mu.Unlock()
	if _, exists := f.users[req.Email]; exists {
		writeFailure(w, apiFailure{http.StatusConflict, "EMAIL_EXISTS", "Email jest już zajęty"})
		return
	}
	f.seq++
	u := model.User{ID: fmt.Sprintf("u-%d", f.seq), Email: req.Email, Name: req.Name, Role: req.Role}
	f.users[u.Email] = u
	f.passwords[u.Email] = req.Password
	writeJSON(w, http.StatusCreated, f.issue(u))
}

func (f *fakeAPI) refreshToken(w http.ResponseWriter, r *http.Request) {
	var req model.RefreshTokenRequest
	_ = json.NewDecoder(r.Body).Decode(&req)
	f.mu.Lock()
	defer f.mu.Unlock()
	f.refreshCalls++
	id, ok := f.refresh[req.RefreshToken]
	u, found := f.userByID(id)
	if !ok || !found {
		writeFailure(w, apiFailure{http.StatusUnauthorized, "INVALID_TOKEN", "Token wygasł"})
		return
	}
	delete(f.refresh, req.RefreshToken)
	writeJSON(w, http.StatusOK, f.issue(u))
}

func (f *fakeAPI) listMatches(w http.ResponseWriter, r *http.Request) {
	f.mu.Lock()
	defer f.mu.Unlock()
	f.lastQuery = r.URL.Query()
	status := model.MatchStatus(r.URL.Query().Get("status"))
	content := []model.Match{}
	for _, m := range f.matches {
		if status != "" && m.Status != status {
			continue
		}
		content = append(content, m)
	}
	sort.Slice(content, func(i, j int) bool { return content[i].ID < content[j].ID })
	writeJSON(w, http.StatusOK, model.Page[model.Match]{
		Content:       content,
		Size:          len(content),
		TotalElements: int64(len(content)),
		TotalPages:    1,
		First:         true,
		Last:          true,
	})
}

func (f *fakeAPI) getMatch(w http.ResponseWriter, r *http.Request) {
	f.mu.Lock()
	defer f.mu.Unlock()
	if f.readFailure != nil {
		writeFailure(w, *f.readFailure)
		return
	}
	m, ok := f.matches[chi.URLParam(r, "id")]
	if !ok {
		writeFailure(w, matchNotFound)
		return
	}
	writeJSON(w, http.StatusOK, m)
}

func (f *fakeAPI) createMatch(w http.ResponseWriter, r *http.Request, u model.User) {
	var req model.MatchRequest
	_ = json.NewDecoder(r.Body).Decode(&req)
	f.mu.Lock()
	defer f.mu.Unlock()
	if u.Role != model.RoleOrganizer {
		writeFailure(w, apiFailure{http.StatusForbidden, "FORBIDDEN", "Brak uprawnień"})
		return
	}
	f.seq++
	m := model.Match{
		ID:          fmt.Sprintf("m-%d", f.seq),
		Title:       req.Title,
		Description: req.Description,
		Location:    req.Location,
		MatchDate:   req.MatchDate,
		MaxPlayers:  req.MaxPlayers,
		Status:      model.MatchOpen,
		Organizer:   u.Summary(),
	}
	f.matches[m.ID] = m
	writeJSON(w, http.StatusCreated, m)
}

func (f *fakeAPI) updateMatch(w http.ResponseWriter, r *http.Request, u model.User) {
	var req model.MatchRequest
	_ = json.NewDecoder(r.Body).Decode(&req)
	f.mu.Lock()
	defer f.mu.Unlock()
	m, ok := f.matches[chi.URLParam(r, "id")]
	if !ok {
		writeFailure(w, matchNotFound)
		return
	}
	if m.Organizer.ID != u.ID {
		writeFailure(w, apiFailure{http.StatusForbidden, "FORBIDDEN", "Brak uprawnień"})
		return
	}
	m.Title, m.Description, m.Location = req.Title, req.Description, req.Location
	m.MatchDate, m.MaxPlayers = req.MatchDate, req.MaxPlayers
	f.matches[m.ID] = m
	writeJSON(w, http.StatusOK, m)
}

func (f *fakeAPI) deleteMatch(w http.ResponseWriter, r *http.Request, u model.User) {
	f.mu.Lock()
	defer f.mu.Unlock()
	m, ok := f.matches[chi.URLParam(r, "id")]
	if !ok {
		writeFailure(w, matchNotFound)
		return
	}
	if m.Organizer.ID != u.ID {
		writeFailure(w, apiFailure{http.StatusForbidden, "FORBIDDEN", "Brak uprawnień"})
		return
	}
	delete(f.matches, m.ID)
	delete(f.participants, m.ID)
	w.WriteHeader(http.StatusNoContent)
}

func (f *fakeAPI) join(w http.ResponseWriter, r *http.Request, u model.User) {
	f.mu.Lock()
	defer f.mu.Unlock()
	id := chi.URLParam(r, "id")
	m, ok := f.matches[id]
	if !ok {
		writeFailure(w, matchNotFound)
		return
	}
	if f.joinFailure != nil {
		writeFailure(w, *f.joinFailure)
		return
	}
	for _, p := range f.participants[id] {
		if p.Player.ID == u.ID {
			writeFailure(w, apiFailure{http.StatusConflict, "ALREADY_JOINED", "Już dołączyłeś do tego meczu"})
			return
		}
	}
	f.seq++
	p := model.Participant{ID: fmt.Sprintf("pa-%d", f.seq), Player: u.Summary(), Status: model.ParticipantPending}
	f.participants[id] = append(f.participants[id], p)
	m.CurrentPlayers++
	f.matches[id] = m
	if f.readsDownAfterJoin {
		f.readFailure = &apiFailure{http.StatusServiceUnavailable, "INTERNAL_ERROR", "Serwis chwilowo niedostępny"}
	}
	writeJSON(w, http.StatusOK, p)
}

func (f *fakeAPI) leave(w http.ResponseWriter, r *http.Request, u model.User) {
	f.mu.Lock()
	defer f.mu.Unlock()
	id := chi.URLParam(r, "id")
	kept := []model.Participant{}
	for _, p := range f.participants[id] {
		if p.Player.ID != u.ID {
			kept = append(kept, p)
		}
	}
	if len(kept) != len(f.participants[id]) {
		m := f.matches[id]
		m.CurrentPlayers--
		f.matches[id] = m
	}
	f.participants[id] = kept
	w.WriteHeader(http.StatusNoContent)
}

func (f *fakeAPI) listParticipants(w http.ResponseWriter, r *http.Request) {
	f.mu.Lock()
	defer f.mu.Unlock()
	id := chi.URLParam(r, "id")
	if _, ok := f.matches[id]; !ok {
		writeFailure(w, matchNotFound)
		return
	}
	out := append([]model.Participant{}, f.participants[id]...)
	writeJSON(w, http.StatusOK, out)
}

func (f *fakeAPI) setStatus(w http.ResponseWriter, r *http.Request, u model.User) {
	var req model.UpdateParticipantStatusRequest
	_ = json.NewDecoder(r.Body).Decode(&req)
	f.mu.Lock()
	defer f.mu.Unlock()
	id := chi.URLParam(r, "id")
	if f.matches[id].Organizer.ID != u.ID {
		writeFailure(w, apiFailure{http.StatusForbidden, "FORBIDDEN", "Brak uprawnień"})
		return
	}
	for i, p := range f.participants[id] {
		if p.Player.ID == chi.URLParam(r, "playerId") {
			f.participants[id][i].Status = req.Status
			writeJSON(w, http.StatusOK, f.participants[id][i])
			return
		}
	}
	writeFailure(w, apiFailure{http.StatusNotFound, "NOT_FOUND", "Nie znaleziono uczestnika"})
}

func (f *fakeAPI) participantStatus(matchID, playerID string) (model.ParticipantStatus, bool) {
	f.mu.Lock()
	defer f.mu.Unlock()
	for _, p := range f.participants[matchID] {
		if p.Player.ID == playerID {
			return p.Status, true
		}
	}
	return "", false
}
