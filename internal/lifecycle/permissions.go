package lifecycle

import "footmatch-app/internal/model"

type Action string

const (
	ActionJoin   Action = "join"
	ActionLeave  Action = "leave"
	ActionAccept Action = "accept"
	ActionReject Action = "reject"
	ActionCreate Action = "create"
	ActionNone   Action = "none"
)

// Permissions are derived from (match, participants, user) and must be
// recomputed after every state change.
type Permissions struct {
	Authenticated bool
	IsOrganizer   bool
	HasJoined     bool
	CanJoin       bool
	CanLeave      bool
	CanCreate     bool
	// CanManage allows editing and deleting the match.
	CanManage bool
	// LoginToJoin is set for an anonymous viewer of an OPEN match.
	LoginToJoin bool
	// Own is the current user's participation, if any.
	Own *model.Participant

	pending int
}

func Evaluate(match *model.Match, participants []model.Participant, user *model.User) Permissions {
	p := Permissions{
		Authenticated: user != nil,
		CanCreate:     CanCreate(user),
	}
	if match == nil {
		return p
	}
	if user == nil {
		p.LoginToJoin = match.Status == model.MatchOpen
		return p
	}
	p.IsOrganizer = user.ID == match.Organizer.ID
	for i := range participants {
		if participants[i].Player.ID == user.ID {
			p.HasJoined = true
			own := participants[i]
			p.Own = &own
			break
		}
	}
	p.CanJoin = !p.IsOrganizer && !p.HasJoined && match.Status == model.MatchOpen
	p.CanLeave = p.HasJoined && !p.IsOrganizer
	p.CanManage = p.IsOrganizer
	if p.IsOrganizer {
		for _, participant := range participants {
			if participant.Status == model.ParticipantPending {
				p.pending++
			}
		}
	}
	return p
}

func CanCreate(user *model.User) bool {
	return user != nil && user.Role == model.RoleOrganizer
}

func (p Permissions) CanModerate(participant model.Participant) bool {
	return p.IsOrganizer && participant.Status == model.ParticipantPending
}

// Actions lists the permitted actions, or ActionNone alone.
func (p Permissions) Actions() []Action {
	actions := []Action{}
	if p.CanJoin {
		actions = append(actions, ActionJoin)
	}
	if p.CanLeave {
		actions = append(actions, ActionLeave)
	}
	if p.pending > 0 {
		actions = append(actions, ActionAccept, ActionReject)
	}
	if p.CanCreate {
		actions = append(actions, ActionCreate)
	}
	if len(actions) == 0 {
		return []Action{ActionNone}
	}
	return actions
}

func (p Permissions) Allows(action Action) bool {
	for _, a := range p.Actions() {
		if a == action {
			return true
		}
	}
	return false
}
