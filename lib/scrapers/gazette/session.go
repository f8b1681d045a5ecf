package gazette

import (
	"context"
	"fmt"
	"log/slog"
	"strconv"
	"time"

	"newsdesk-backend/lib/kv"
	"newsdesk-backend/lib/timezone"
)

const (
	KeySessionCookie    = "session:cookie"
	KeySessionUpdatedAt = "session:updated_at"
)

// how long a session minted by the browser refresher stays valid
const sessionLifetime = time.Hour * 24

// lookahead for flagging a credential as soon-to-expire
const staleGraceWindow = time.Hour * 2

var ErrNoCredential = fmt.Errorf("no session credential in store")

// an opaque cookie value written by the out-of-band refresher. never
// mutated here, a refresh replaces it wholesale.
type Credential struct {
	Value string
	// zero when the refresher did not record a timestamp
	UpdatedAt time.Time
}

func (c Credential) ExpiresAt() time.Time {
	if c.UpdatedAt.IsZero() {
		return time.Time{}
	}
	return c.UpdatedAt.Add(sessionLifetime)
}

// staleness is advisory only: a stale credential is still sent
// upstream, the caller just gets warned that a refresh is overdue.
// a credential with unknown expiry is never considered stale.
func (c Credential) Stale(now time.Time) bool {
	expiry := c.ExpiresAt()
	if expiry.IsZero() {
		return false
	}
	return expiry.Before(now.Add(staleGraceWindow))
}

type SessionStore struct {
	store kv.Store
}

func NewSessionStore(store kv.Store) SessionStore {
	return SessionStore{store: store}
}

// never attempts a renewal, only surfaces what is currently stored
func (s SessionStore) Load(ctx context.Context) (Credential, error) {
	value, ok, err := s.store.Get(ctx, KeySessionCookie)
	if err != nil {
		return Credential{}, err
	}
	if !ok || value == "" {
		return Credential{}, ErrNoCredential
	}

	cred := Credential{Value: value}

	raw, ok, err := s.store.Get(ctx, KeySessionUpdatedAt)
	if err != nil {
		return Credential{}, err
	}
	if ok {
		unix, err := strconv.ParseInt(raw, 10, 64)
		if err != nil {
			slog.WarnContext(ctx, "malformed session timestamp in store", "value", raw)
		} else {
			cred.UpdatedAt = time.Unix(unix, 0).In(timezone.Location)
		}
	}

	return cred, nil
}

// the write half of the refresh contract, used by the operator CLI on
// behalf of the out-of-band refresher
func (s SessionStore) Save(ctx context.Context, value string) error {
	err := s.store.Put(ctx, KeySessionCookie, value)
	if err != nil {
		return err
	}
	return s.store.Put(
		ctx,
		KeySessionUpdatedAt,
		strconv.FormatInt(timezone.Now().Unix(), 10),
	)
}
