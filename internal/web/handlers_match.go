package web

import (
	"errors"
	"net/http"

	"footmatch-app/internal/lifecycle"

	"github.com/go-chi/chi/v5"
)

// openDetail loads the match screen for the request. It writes the error
// page itself and returns false when there is nothing to show.
func (s *Server) openDetail(w http.ResponseWriter, r *http.Request) (*lifecycle.Detail, bool) {
	dev := currentDevice(r)
	d := lifecycle.NewDetail(dev.API, dev.Auth, chi.URLParam(r, "matchID"))
	if err := d.Load(r.Context()); err != nil {
		d.Close()
		s.renderLoadError(w, r, err)
		return nil, false
	}
	if m, _ := d.Snapshot(); m == nil {
		d.Close()
		s.renderLoadError(w, r, lifecycle.ErrMatchNotFound)
		return nil, false
	}
	return d, true
}

func (s *Server) renderLoadError(w http.ResponseWriter, r *http.Request, err error) {
	status := http.StatusBadGateway
	heading := "Błąd"
	message := "Nie udało się pobrać danych meczu"
	if errors.Is(err, lifecycle.ErrMatchNotFound) {
		status = http.StatusNotFound
		heading = "Nie znaleziono"
		message = errorMessage(err)
	} else {
		s.logger.Warn("load match", "error", err)
	}
	s.renderMessage(w, r, status, heading, message)
}

func (s *Server) renderMessage(w http.ResponseWriter, r *http.Request, status int, heading, message string) {
	view := MessageView{
		BaseView: s.baseView(r, heading),
		Heading:  heading,
		Message:  message,
	}
	if err := s.templates.RenderStatus(w, status, "message.html", view); err != nil {
		http.Error(w, err.Error(), http.StatusInternalServerError)
	}
}

// renderDetail shows the current state of d; HTMX requests get only the
// panel.
func (s *Server) renderDetail(w http.ResponseWriter, r *http.Request, d *lifecycle.Detail, notice, errMsg string) {
	m, participants := d.Snapshot()
	if m == nil {
		s.renderLoadError(w, r, lifecycle.ErrMatchNotFound)
		return
	}
	panel := matchPanelView(*m, participants, currentUser(r), s.loc)
	panel.Notice = notice
	panel.Error = errMsg
	if isHTMX(r) {
		if err := s.templates.RenderPartial(w, "match_panel.html", panel); err != nil {
			http.Error(w, err.Error(), http.StatusInternalServerError)
		}
		return
	}
	view := MatchDetailView{BaseView: s.baseView(r, m.Title), Panel: panel}
	if err := s.templates.Render(w, "match_detail.html", view); err != nil {
		http.Error(w, err.Error(), http.StatusInternalServerError)
	}
}

func (s *Server) handleMatchShow(w http.ResponseWriter, r *http.Request) {
	d, ok := s.openDetail(w, r)
	if !ok {
		return
	}
	defer d.Close()
	s.renderDetail(w, r, d, "", "")
}

func (s *Server) handleMatchJoin(w http.ResponseWriter, r *http.Request) {
	s.runAction(w, r, "joined", func(d *lifecycle.Detail) error {
		return d.Join(r.Context())
	})
}

func (s *Server) handleMatchLeaveConfirm(w http.ResponseWriter, r *http.Request) {
	d, ok := s.openDetail(w, r)
	if !ok {
		return
	}
	defer d.Close()
	if !d.Permissions().Allows(lifecycle.ActionLeave) {
		redirect(w, r, matchURL(d.MatchID()))
		return
	}
	s.renderConfirm(w, r, ConfirmView{
		Heading:   "Opuść mecz",
		Message:   "Czy na pewno chcesz opuścić ten mecz?",
		Action:    matchURL(d.MatchID(), "leave"),
		Confirm:   "Opuść",
		CancelURL: matchURL(d.MatchID()),
	})
}

func (s *Server) handleMatchLeave(w http.ResponseWriter, r *http.Request) {
	confirmed := r.FormValue("confirm") == "yes"
	s.runAction(w, r, "left", func(d *lifecycle.Detail) error {
		return d.Leave(r.Context(), confirmed)
	})
}

func (s *Server) handleParticipantAccept(w http.ResponseWriter, r *http.Request) {
	playerID := chi.URLParam(r, "playerID")
	s.runAction(w, r, "accepted", func(d *lifecycle.Detail) error {
		return d.Accept(r.Context(), playerID)
	})
}

func (s *Server) handleParticipantReject(w http.ResponseWriter, r *http.Request) {
	playerID := chi.URLParam(r, "playerID")
	s.runAction(w, r, "rejected", func(d *lifecycle.Detail) error {
		return d.Reject(r.Context(), playerID)
	})
}

// runAction performs one mutation on a freshly loaded screen. Failures are
// shown next to the unchanged state; success redirects (or re-renders the
// panel for HTMX) with notice. When only the reload failed the action
// counts as done and the browser is sent to load the match again.
func (s *Server) runAction(w http.ResponseWriter, r *http.Request, notice string, action func(*lifecycle.Detail) error) {
	d, ok := s.openDetail(w, r)
	if !ok {
		return
	}
	defer d.Close()
	err := action(d)
	switch {
	case errors.Is(err, lifecycle.ErrConfirmationRequired):
		redirect(w, r, matchURL(d.MatchID(), "leave"))
		return
	case errors.Is(err, lifecycle.ErrStale):
		s.logger.Warn("match action applied, reload failed", "match", d.MatchID(), "notice", notice, "error", err)
		redirect(w, r, matchURL(d.MatchID())+"?notice="+notice)
		return
	case err != nil:
		s.logger.Info("match action failed", "match", d.MatchID(), "notice", notice, "error", err)
		s.renderDetail(w, r, d, "", errorMessage(err))
		return
	}
	if isHTMX(r) {
		s.renderDetail(w, r, d, flashMessage(notice), "")
		return
	}
	http.Redirect(w, r, matchURL(d.MatchID())+"?notice="+notice, http.StatusSeeOther)
}

func (s *Server) renderConfirm(w http.ResponseWriter, r *http.Request, view ConfirmView) {
	view.BaseView = s.baseView(r, view.Heading)
	if err := s.templates.Render(w, "confirm.html", view); err != nil {
		http.Error(w, err.Error(), http.StatusInternalServerError)
	}
}
