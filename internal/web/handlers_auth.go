package web

import (
	"errors"
	"net/http"
	"regexp"
	"strings"

	"footmatch-app/internal/auth"
	"footmatch-app/internal/model"
)

const minPasswordLength = 8

var emailPattern = regexp.MustCompile(`\S+@\S+\.\S+`)

func roleOptions(selected model.UserRole) []RoleOption {
	roles := []model.UserRole{model.RolePlayer, model.RoleOrganizer}
	options := make([]RoleOption, 0, len(roles))
	for _, role := range roles {
		options = append(options, RoleOption{
			Value:    string(role),
			Label:    role.Label(),
			Selected: role == selected,
		})
	}
	return options
}

func (s *Server) renderAuth(w http.ResponseWriter, r *http.Request, page, title string, view AuthView) {
	view.BaseView = s.baseView(r, title)
	if err := s.templates.Render(w, page, view); err != nil {
		http.Error(w, err.Error(), http.StatusInternalServerError)
	}
}

func (s *Server) handleLogin(w http.ResponseWriter, r *http.Request) {
	if currentUser(r) != nil {
		http.Redirect(w, r, "/", http.StatusSeeOther)
		return
	}
	s.renderAuth(w, r, "login.html", "Logowanie", AuthView{})
}

func (s *Server) handleLoginPost(w http.ResponseWriter, r *http.Request) {
	if err := r.ParseForm(); err != nil {
		http.Error(w, "nieprawidłowe dane", http.StatusBadRequest)
		return
	}
	email := strings.TrimSpace(r.FormValue("email"))
	password := r.FormValue("password")
	view := AuthView{Email: email, Errors: map[string]string{}}
	validateEmail(view.Errors, email)
	if password == "" {
		view.Errors["password"] = "Hasło jest wymagane"
	}
	if len(view.Errors) > 0 {
		s.renderAuth(w, r, "login.html", "Logowanie", view)
		return
	}
	_, err := currentDevice(r).Auth.Login(r.Context(), model.LoginRequest{Email: email, Password: password})
	if err != nil {
		view.Error = errorMessage(err)
		s.renderAuth(w, r, "login.html", "Logowanie", view)
		return
	}
	http.Redirect(w, r, "/", http.StatusSeeOther)
}

func (s *Server) handleRegister(w http.ResponseWriter, r *http.Request) {
	if currentUser(r) != nil {
		http.Redirect(w, r, "/", http.StatusSeeOther)
		return
	}
	s.renderAuth(w, r, "register.html", "Rejestracja", AuthView{Roles: roleOptions(model.RolePlayer)})
}

func (s *Server) handleRegisterPost(w http.ResponseWriter, r *http.Request) {
	if err := r.ParseForm(); err != nil {
		http.Error(w, "nieprawidłowe dane", http.StatusBadRequest)
		return
	}
	name := strings.TrimSpace(r.FormValue("name"))
	email := strings.TrimSpace(r.FormValue("email"))
	password := r.FormValue("password")
	role := model.UserRole(strings.TrimSpace(r.FormValue("role")))
	if role == "" {
		role = model.RolePlayer
	}
	view := AuthView{Name: name, Email: email, Roles: roleOptions(role), Errors: map[string]string{}}
	if name == "" {
		view.Errors["name"] = "Imię jest wymagane"
	}
	validateEmail(view.Errors, email)
	switch {
	case password == "":
		view.Errors["password"] = "Hasło jest wymagane"
	case len(password) < minPasswordLength:
		view.Errors["password"] = "Hasło musi mieć min. 8 znaków"
	}
	if len(view.Errors) > 0 {
		s.renderAuth(w, r, "register.html", "Rejestracja", view)
		return
	}
	_, err := currentDevice(r).Auth.Register(r.Context(), model.RegisterRequest{
		Email:    email,
		Password: password,
		Name:     name,
		Role:     role,
	})
	if err != nil {
		if errors.Is(err, auth.ErrInvalidRole) {
			view.Errors["role"] = errorMessage(err)
		} else {
			view.Error = errorMessage(err)
		}
		s.renderAuth(w, r, "register.html", "Rejestracja", view)
		return
	}
	http.Redirect(w, r, "/?notice=welcome", http.StatusSeeOther)
}

func validateEmail(errs map[string]string, email string) {
	switch {
	case email == "":
		errs["email"] = "Email jest wymagany"
	case !emailPattern.MatchString(email):
		errs["email"] = "Nieprawidłowy format email"
	}
}

func (s *Server) handleLogoutConfirm(w http.ResponseWriter, r *http.Request) {
	s.renderConfirm(w, r, ConfirmView{
		Heading:   "Wylogowanie",
		Message:   "Czy na pewno chcesz się wylogować?",
		Action:    "/logout",
		Confirm:   "Wyloguj",
		CancelURL: "/profile",
	})
}

func (s *Server) handleLogout(w http.ResponseWriter, r *http.Request) {
	currentDevice(r).Auth.Logout()
	redirect(w, r, "/?notice=logged_out")
}

func (s *Server) handleProfile(w http.ResponseWriter, r *http.Request) {
	view := ProfileView{BaseView: s.baseView(r, "Profil")}
	if view.IsAuthenticated {
		view.RoleLabel = view.CurrentUser.Role.Label()
	}
	if err := s.templates.Render(w, "profile.html", view); err != nil {
		http.Error(w, err.Error(), http.StatusInternalServerError)
	}
}
