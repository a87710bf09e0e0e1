package web

import (
	"context"
	"log/slog"
	"net/http"
	"time"

	"footmatch-app/internal/api"
	"footmatch-app/internal/auth"
	"footmatch-app/internal/model"

	"github.com/go-chi/chi/v5/middleware"
	"github.com/google/uuid"
)

const deviceCookieName = "footmatch_device"

// device is the browser the request came from, with its own session and
// an API client bound to its tokens.
type device struct {
	ID   string
	Auth *auth.Manager
	API  *api.Client
}

type deviceKey struct{}

func (s *Server) withDevice(next http.Handler) http.Handler {
	return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		dev := &device{ID: deviceIDFromCookie(r)}
		if dev.ID == "" {
			// A first visit has no stored session; its manager joins the
			// registry once the browser sends the cookie back.
			dev.ID = uuid.NewString()
			s.setDeviceCookie(w, dev.ID)
			dev.Auth = s.newDeviceManager(dev.ID)
		} else {
			dev.Auth = s.devices.Get(r.Context(), dev.ID)
		}
		dev.API = s.api.WithTokens(s.deviceTokens(dev.ID))
		next.ServeHTTP(w, r.WithContext(context.WithValue(r.Context(), deviceKey{}, dev)))
	})
}

func (s *Server) requireUser(next http.Handler) http.Handler {
	return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		if _, ok := currentDevice(r).Auth.User(); !ok {
			redirect(w, r, "/login")
			return
		}
		next.ServeHTTP(w, r)
	})
}

func (s *Server) logRequests(next http.Handler) http.Handler {
	return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		start := time.Now()
		ww := middleware.NewWrapResponseWriter(w, r.ProtoMajor)
		next.ServeHTTP(ww, r)
		status := ww.Status()
		if status == 0 {
			status = http.StatusOK
		}
		s.logger.Info("http request",
			slog.String("method", r.Method),
			slog.String("path", r.URL.Path),
			slog.Int("status", status),
			slog.Duration("duration", time.Since(start)),
			slog.String("request_id", middleware.GetReqID(r.Context())),
			slog.String("device", deviceIDFromCookie(r)),
		)
	})
}

func currentDevice(r *http.Request) *device {
	dev, _ := r.Context().Value(deviceKey{}).(*device)
	return dev
}

// currentUser is nil for anonymous devices.
func currentUser(r *http.Request) *model.User {
	user, ok := currentDevice(r).Auth.User()
	if !ok {
		return nil
	}
	return &user
}

func deviceIDFromCookie(r *http.Request) string {
	cookie, err := r.Cookie(deviceCookieName)
	if err != nil {
		return ""
	}
	id, err := uuid.Parse(cookie.Value)
	if err != nil {
		return ""
	}
	return id.String()
}

func (s *Server) setDeviceCookie(w http.ResponseWriter, id string) {
	http.SetCookie(w, &http.Cookie{
		Name:     deviceCookieName,
		Value:    id,
		Path:     "/",
		MaxAge:   int((365 * 24 * time.Hour).Seconds()),
		HttpOnly: true,
		Secure:   s.secure,
		SameSite: http.SameSiteLaxMode,
	})
}

func clearDeviceCookie(w http.ResponseWriter) {
	http.SetCookie(w, &http.Cookie{
		Name:     deviceCookieName,
		Value:    "",
		Path:     "/",
		MaxAge:   -1,
		HttpOnly: true,
		SameSite: http.SameSiteLaxMode,
	})
}
