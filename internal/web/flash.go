package web

import "strings"

func flashMessage(notice string) string {
	switch strings.TrimSpace(notice) {
	case "joined":
		return "Dołączyłeś do meczu!"
	case "left":
		return "Opuściłeś mecz"
	case "created":
		return "Mecz został utworzony."
	case "updated":
		return "Zapisano zmiany."
	case "deleted":
		return "Mecz został usunięty."
	case "accepted":
		return "Gracz został zaakceptowany."
	case "rejected":
		return "Gracz został odrzucony."
	case "logged_out":
		return "Wylogowano."
	case "welcome":
		return "Witaj w Foot Match!"
	case "device_reset":
		return "Urządzenie zostało zresetowane."
	}
	return ""
}
