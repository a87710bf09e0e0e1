package web

import (
	"errors"
	"net/http"

	"footmatch-app/internal/lifecycle"
)

func (s *Server) renderMatchForm(w http.ResponseWriter, r *http.Request, view MatchFormView) {
	view.BaseView = s.baseView(r, view.Heading)
	view.MinPlayers = lifecycle.MinPlayers
	view.MaxPlayers = lifecycle.MaxPlayers
	if err := s.templates.Render(w, "match_form.html", view); err != nil {
		http.Error(w, err.Error(), http.StatusInternalServerError)
	}
}

func newMatchFormView(form lifecycle.Form) MatchFormView {
	return MatchFormView{
		Heading:   "Nowy mecz",
		Action:    "/matches",
		Submit:    "Utwórz mecz",
		CancelURL: "/",
		Form:      form,
	}
}

func (s *Server) handleMatchNew(w http.ResponseWriter, r *http.Request) {
	if !lifecycle.CanCreate(currentUser(r)) {
		s.renderMessage(w, r, http.StatusForbidden, "Brak uprawnień", "Tylko organizator może tworzyć mecze.")
		return
	}
	s.renderMatchForm(w, r, newMatchFormView(lifecycle.NewForm()))
}

func (s *Server) handleMatchCreate(w http.ResponseWriter, r *http.Request) {
	if err := r.ParseForm(); err != nil {
		http.Error(w, "nieprawidłowe dane", http.StatusBadRequest)
		return
	}
	dev := currentDevice(r)
	form := formFromRequest(r)
	_, fieldErrors, err := lifecycle.Create(r.Context(), dev.API, currentUser(r), form, s.now())
	switch {
	case errors.Is(err, lifecycle.ErrNotPermitted):
		s.renderMessage(w, r, http.StatusForbidden, "Brak uprawnień", "Tylko organizator może tworzyć mecze.")
		return
	case err != nil || !fieldErrors.Empty():
		view := newMatchFormView(form)
		view.Errors = fieldErrors
		if err != nil {
			s.logger.Info("create match failed", "error", err)
			view.FlashError = errorMessage(err)
		}
		s.renderMatchForm(w, r, view)
		return
	}
	http.Redirect(w, r, "/?notice=created", http.StatusSeeOther)
}

func editMatchFormView(matchID string, form lifecycle.Form) MatchFormView {
	return MatchFormView{
		Heading:   "Edytuj mecz",
		Action:    matchURL(matchID, "edit"),
		Submit:    "Zapisz zmiany",
		CancelURL: matchURL(matchID),
		Form:      form,
	}
}

func (s *Server) handleMatchEdit(w http.ResponseWriter, r *http.Request) {
	d, ok := s.openDetail(w, r)
	if !ok {
		return
	}
	defer d.Close()
	if !d.Permissions().CanManage {
		s.renderMessage(w, r, http.StatusForbidden, "Brak uprawnień", "Tylko organizator meczu może go edytować.")
		return
	}
	m, _ := d.Snapshot()
	s.renderMatchForm(w, r, editMatchFormView(d.MatchID(), lifecycle.FormFromMatch(*m, s.loc)))
}

func (s *Server) handleMatchUpdate(w http.ResponseWriter, r *http.Request) {
	if err := r.ParseForm(); err != nil {
		http.Error(w, "nieprawidłowe dane", http.StatusBadRequest)
		return
	}
	d, ok := s.openDetail(w, r)
	if !ok {
		return
	}
	defer d.Close()
	form := formFromRequest(r)
	fieldErrors, err := d.Update(r.Context(), form, s.now())
	if errors.Is(err, lifecycle.ErrStale) {
		s.logger.Warn("match updated, reload failed", "match", d.MatchID(), "error", err)
		err = nil
	}
	switch {
	case errors.Is(err, lifecycle.ErrNotPermitted):
		s.renderMessage(w, r, http.StatusForbidden, "Brak uprawnień", "Tylko organizator meczu może go edytować.")
		return
	case err != nil || !fieldErrors.Empty():
		view := editMatchFormView(d.MatchID(), form)
		view.Errors = fieldErrors
		if err != nil {
			s.logger.Info("update match failed", "match", d.MatchID(), "error", err)
			view.FlashError = errorMessage(err)
		}
		s.renderMatchForm(w, r, view)
		return
	}
	http.Redirect(w, r, matchURL(d.MatchID())+"?notice=updated", http.StatusSeeOther)
}

func (s *Server) handleMatchDeleteConfirm(w http.ResponseWriter, r *http.Request) {
	d, ok := s.openDetail(w, r)
	if !ok {
		return
	}
	defer d.Close()
	if !d.Permissions().CanManage {
		redirect(w, r, matchURL(d.MatchID()))
		return
	}
	s.renderConfirm(w, r, ConfirmView{
		Heading:   "Usuń mecz",
		Message:   "Czy na pewno chcesz usunąć ten mecz? Tej operacji nie można cofnąć.",
		Action:    matchURL(d.MatchID(), "delete"),
		Confirm:   "Usuń",
		CancelURL: matchURL(d.MatchID()),
	})
}

func (s *Server) handleMatchDelete(w http.ResponseWriter, r *http.Request) {
	d, ok := s.openDetail(w, r)
	if !ok {
		return
	}
	defer d.Close()
	err := d.Delete(r.Context(), r.FormValue("confirm") == "yes")
	switch {
	case errors.Is(err, lifecycle.ErrConfirmationRequired):
		redirect(w, r, matchURL(d.MatchID(), "delete"))
		return
	case err != nil:
		s.logger.Info("delete match failed", "match", d.MatchID(), "error", err)
		s.renderDetail(w, r, d, "", errorMessage(err))
		return
	}
	redirect(w, r, "/?notice=deleted")
}
