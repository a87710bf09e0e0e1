package lifecycle

import (
	"testing"

	"footmatch-app/internal/model"

	"github.com/stretchr/testify/assert"
)

var (
	organizer = model.User{ID: "org-1", Name: "Jan Kowalski", Role: model.RoleOrganizer}
	player    = model.User{ID: "p-1", Name: "Adam Nowak", Role: model.RolePlayer}
	other     = model.User{ID: "p-2", Name: "Ewa Wiśniewska", Role: model.RolePlayer}
)

func openMatch() *model.Match {
	return &model.Match{
		ID:             "m1",
		Title:          "Mecz na Orliku Mokotów",
		Location:       "Orlik Mokotów",
		MaxPlayers:     10,
		CurrentPlayers: 6,
		Status:         model.MatchOpen,
		Organizer:      organizer.Summary(),
	}
}

func participant(u model.User, status model.ParticipantStatus) model.Participant {
	return model.Participant{ID: "part-" + u.ID, Player: u.Summary(), Status: status}
}

func TestCanJoinFalseUnlessOpen(t *testing.T) {
	users := []*model.User{nil, &organizer, &player, &other}
	for _, status := range []model.MatchStatus{model.MatchClosed, model.MatchCancelled, model.MatchCompleted} {
		m := openMatch()
		m.Status = status
		for _, u := range users {
			p := Evaluate(m, nil, u)
			assert.False(t, p.CanJoin, "status %s", status)
			assert.False(t, p.LoginToJoin, "status %s", status)
		}
	}
}

func TestOrganizerOnlyModerates(t *testing.T) {
	participants := []model.Participant{
		participant(player, model.ParticipantPending),
		participant(other, model.ParticipantAccepted),
	}
	p := Evaluate(openMatch(), participants, &organizer)

	assert.True(t, p.IsOrganizer)
	assert.False(t, p.CanJoin)
	assert.False(t, p.CanLeave)
	assert.True(t, p.CanManage)
	assert.True(t, p.CanModerate(participants[0]))
	assert.False(t, p.CanModerate(participants[1]))
	assert.Equal(t, []Action{ActionAccept, ActionReject, ActionCreate}, p.Actions())
}

func TestOrganizerListedAsParticipantStillCannotLeave(t *testing.T) {
	participants := []model.Participant{participant(organizer, model.ParticipantAccepted)}
	p := Evaluate(openMatch(), participants, &organizer)
	assert.True(t, p.HasJoined)
	assert.False(t, p.CanLeave)
	assert.False(t, p.CanJoin)
}

func TestCanModerateFalseForNonPending(t *testing.T) {
	p := Evaluate(openMatch(), nil, &organizer)
	for _, status := range []model.ParticipantStatus{model.ParticipantAccepted, model.ParticipantRejected} {
		assert.False(t, p.CanModerate(participant(player, status)))
	}
	notOrganizer := Evaluate(openMatch(), nil, &other)
	assert.False(t, notOrganizer.CanModerate(participant(player, model.ParticipantPending)))
}

func TestAnonymousViewerGetsLoginCallToAction(t *testing.T) {
	p := Evaluate(openMatch(), []model.Participant{participant(player, model.ParticipantPending)}, nil)
	assert.False(t, p.Authenticated)
	assert.True(t, p.LoginToJoin)
	assert.False(t, p.CanJoin)
	assert.False(t, p.HasJoined)
	assert.Equal(t, []Action{ActionNone}, p.Actions())
}

func TestPlayerJoinAndLeave(t *testing.T) {
	notJoined := Evaluate(openMatch(), nil, &player)
	assert.True(t, notJoined.CanJoin)
	assert.False(t, notJoined.CanLeave)
	assert.False(t, notJoined.CanCreate)
	assert.Equal(t, []Action{ActionJoin}, notJoined.Actions())

	joined := Evaluate(openMatch(), []model.Participant{participant(player, model.ParticipantRejected)}, &player)
	assert.True(t, joined.HasJoined)
	assert.False(t, joined.CanJoin)
	assert.True(t, joined.CanLeave)
	if assert.NotNil(t, joined.Own) {
		assert.Equal(t, model.ParticipantRejected, joined.Own.Status)
	}
	assert.True(t, joined.Allows(ActionLeave))
	assert.False(t, joined.Allows(ActionJoin))
}

func TestMissingMatch(t *testing.T) {
	p := Evaluate(nil, nil, &organizer)
	assert.False(t, p.CanJoin)
	assert.False(t, p.CanManage)
	assert.True(t, p.CanCreate)
}

func TestLabels(t *testing.T) {
	assert.Equal(t, "Otwarty", model.MatchOpen.Label())
	assert.Equal(t, "Zamknięty", model.MatchClosed.Label())
	assert.Equal(t, "Anulowany", model.MatchCancelled.Label())
	assert.Equal(t, "Zakończony", model.MatchCompleted.Label())
	assert.Equal(t, "Oczekuje", model.ParticipantPending.Label())
	assert.Equal(t, "Zaakceptowany", model.ParticipantAccepted.Label())
	assert.Equal(t, "Odrzucony", model.ParticipantRejected.Label())
	assert.Equal(t, "6/10", openMatch().PlayersLine())
}
