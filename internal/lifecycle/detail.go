package lifecycle

import (
	"context"
	"errors"
	"fmt"
	"net/http"
	"sync"
	"time"

	"footmatch-app/internal/api"
	"footmatch-app/internal/model"

	"golang.org/x/sync/errgroup"
)

var (
	ErrMatchNotFound        = errors.New("match not found")
	ErrNotPermitted         = errors.New("action not permitted")
	ErrConfirmationRequired = errors.New("confirmation required")
	ErrNotLoaded            = errors.New("match not loaded")
	// ErrStale wraps a failed reload after a mutation the backend accepted.
	ErrStale = errors.New("action applied, reload failed")
)

// Service is the slice of the backend the lifecycle needs.
type Service interface {
	GetMatch(ctx context.Context, id string) (model.Match, error)
	Participants(ctx context.Context, id string) ([]model.Participant, error)
	CreateMatch(ctx context.Context, req model.MatchRequest) (model.Match, error)
	UpdateMatch(ctx context.Context, id string, req model.MatchRequest) (model.Match, error)
	DeleteMatch(ctx context.Context, id string) error
	JoinMatch(ctx context.Context, id string) (model.Participant, error)
	LeaveMatch(ctx context.Context, id string) error
	UpdateParticipantStatus(ctx context.Context, matchID, playerID string, status model.ParticipantStatus) (model.Participant, error)
}

// UserSource reports the signed-in user; *auth.Manager satisfies it.
type UserSource interface {
	User() (model.User, bool)
}

// Detail drives one match screen. Every mutation is a single backend call
// followed by a full reload; the most recently issued reload wins and
// responses that arrive after Close are dropped.
type Detail struct {
	svc     Service
	users   UserSource
	matchID string

	mu           sync.Mutex
	match        *model.Match
	participants []model.Participant
	issued       uint64
	closed       bool
}

func NewDetail(svc Service, users UserSource, matchID string) *Detail {
	return &Detail{svc: svc, users: users, matchID: matchID}
}

func (d *Detail) MatchID() string {
	return d.matchID
}

// Load fetches the match and its participants concurrently.
func (d *Detail) Load(ctx context.Context) error {
	d.mu.Lock()
	if d.closed {
		d.mu.Unlock()
		return nil
	}
	d.issued++
	seq := d.issued
	d.mu.Unlock()

	var (
		match        model.Match
		participants []model.Participant
	)
	g, gctx := errgroup.WithContext(ctx)
	g.Go(func() error {
		var err error
		match, err = d.svc.GetMatch(gctx, d.matchID)
		return err
	})
	g.Go(func() error {
		var err error
		participants, err = d.svc.Participants(gctx, d.matchID)
		return err
	})
	err := g.Wait()

	d.mu.Lock()
	defer d.mu.Unlock()
	if d.closed || seq != d.issued || ctx.Err() != nil {
		return nil
	}
	if err != nil {
		if isNotFound(err) {
			d.match = nil
			d.participants = nil
			return ErrMatchNotFound
		}
		return err
	}
	d.match = &match
	d.participants = participants
	return nil
}

// Snapshot returns copies of the current screen state; match is nil when the
// match was not found or not loaded yet.
func (d *Detail) Snapshot() (*model.Match, []model.Participant) {
	d.mu.Lock()
	defer d.mu.Unlock()
	if d.match == nil {
		return nil, nil
	}
	m := *d.match
	ps := make([]model.Participant, len(d.participants))
	copy(ps, d.participants)
	return &m, ps
}

func (d *Detail) Permissions() Permissions {
	m, ps := d.Snapshot()
	return Evaluate(m, ps, d.currentUser())
}

func (d *Detail) currentUser() *model.User {
	if d.users == nil {
		return nil
	}
	u, ok := d.users.User()
	if !ok {
		return nil
	}
	return &u
}

func (d *Detail) Join(ctx context.Context) error {
	if !d.Permissions().Allows(ActionJoin) {
		return ErrNotPermitted
	}
	return d.mutate(ctx, "join", func(ctx context.Context) error {
		_, err := d.svc.JoinMatch(ctx, d.matchID)
		return err
	})
}

// Leave is destructive; callers must have asked the user first.
func (d *Detail) Leave(ctx context.Context, confirmed bool) error {
	if !d.Permissions().Allows(ActionLeave) {
		return ErrNotPermitted
	}
	if !confirmed {
		return ErrConfirmationRequired
	}
	return d.mutate(ctx, "leave", func(ctx context.Context) error {
		return d.svc.LeaveMatch(ctx, d.matchID)
	})
}

func (d *Detail) Accept(ctx context.Context, playerID string) error {
	return d.moderate(ctx, playerID, model.ParticipantAccepted)
}

func (d *Detail) Reject(ctx context.Context, playerID string) error {
	return d.moderate(ctx, playerID, model.ParticipantRejected)
}

func (d *Detail) moderate(ctx context.Context, playerID string, status model.ParticipantStatus) error {
	m, ps := d.Snapshot()
	if m == nil {
		return ErrNotLoaded
	}
	perms := Evaluate(m, ps, d.currentUser())
	if !perms.Allows(ActionAccept) {
		return ErrNotPermitted
	}
	target, ok := findParticipant(ps, playerID)
	if !ok || !perms.CanModerate(target) {
		return ErrNotPermitted
	}
	return d.mutate(ctx, "moderate", func(ctx context.Context) error {
		_, err := d.svc.UpdateParticipantStatus(ctx, d.matchID, playerID, status)
		return err
	})
}

// Update validates the edit form and, when it is clean, saves the match.
func (d *Detail) Update(ctx context.Context, form Form, now time.Time) (FieldErrors, error) {
	if !d.Permissions().CanManage {
		return nil, ErrNotPermitted
	}
	if errs := ValidateForm(form, now); !errs.Empty() {
		return errs, nil
	}
	req, err := form.Request(now.Location())
	if err != nil {
		return nil, err
	}
	return nil, d.mutate(ctx, "update", func(ctx context.Context) error {
		_, err := d.svc.UpdateMatch(ctx, d.matchID, req)
		return err
	})
}

// Delete removes the match; there is nothing left to reload afterwards.
func (d *Detail) Delete(ctx context.Context, confirmed bool) error {
	if !d.Permissions().CanManage {
		return ErrNotPermitted
	}
	if !confirmed {
		return ErrConfirmationRequired
	}
	if err := d.svc.DeleteMatch(ctx, d.matchID); err != nil {
		return err
	}
	d.mu.Lock()
	d.match = nil
	d.participants = nil
	d.mu.Unlock()
	return nil
}

// Close marks the screen as gone; later responses are discarded.
func (d *Detail) Close() {
	d.mu.Lock()
	d.closed = true
	d.mu.Unlock()
}

func (d *Detail) isClosed() bool {
	d.mu.Lock()
	defer d.mu.Unlock()
	return d.closed
}

// mutate leaves local state untouched when call fails. A failed reload
// after a successful call is reported as ErrStale.
func (d *Detail) mutate(ctx context.Context, op string, call func(context.Context) error) error {
	if err := call(ctx); err != nil {
		return err
	}
	if d.isClosed() {
		return nil
	}
	if err := d.Load(ctx); err != nil {
		return fmt.Errorf("%w: reload after %s: %w", ErrStale, op, err)
	}
	return nil
}

// Create validates the form, then issues exactly one create call.
func Create(ctx context.Context, svc Service, user *model.User, form Form, now time.Time) (model.Match, FieldErrors, error) {
	if !CanCreate(user) {
		return model.Match{}, nil, ErrNotPermitted
	}
	if errs := ValidateForm(form, now); !errs.Empty() {
		return model.Match{}, errs, nil
	}
	req, err := form.Request(now.Location())
	if err != nil {
		return model.Match{}, nil, err
	}
	match, err := svc.CreateMatch(ctx, req)
	if err != nil {
		return model.Match{}, nil, err
	}
	return match, nil, nil
}

func findParticipant(ps []model.Participant, playerID string) (model.Participant, bool) {
	for _, p := range ps {
		if p.Player.ID == playerID {
			return p, true
		}
	}
	return model.Participant{}, false
}

func isNotFound(err error) bool {
	apiErr, ok := api.AsError(err)
	return ok && (apiErr.Code == api.CodeMatchNotFound || apiErr.Status == http.StatusNotFound)
}
