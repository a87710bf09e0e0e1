package web

import (
	"net/http"
)

// handleDevResetDevice drops the device's session and identity so the next
// request starts as a brand new device.
func (s *Server) handleDevResetDevice(w http.ResponseWriter, r *http.Request) {
	if !s.dev {
		http.NotFound(w, r)
		return
	}
	dev := currentDevice(r)
	if err := s.deviceTokens(dev.ID).Clear(); err != nil {
		s.logger.Warn("reset device tokens", "device", dev.ID, "error", err)
	}
	s.devices.Forget(dev.ID)
	clearDeviceCookie(w)
	http.Redirect(w, r, "/?notice=device_reset", http.StatusSeeOther)
}
