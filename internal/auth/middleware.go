package auth

import (
	"github.com/gofiber/fiber/v2"
	"github.com/jackc/pgx/v5"

	"github.com/spec-kit/issue-tracker/internal/domain"
	"github.com/spec-kit/issue-tracker/internal/repository"
	"github.com/spec-kit/issue-tracker/internal/session"
)

const principalKey = "auth_principal"

// Principal represents the authenticated caller. The user row is loaded
// fresh from the database on every request, so role and status checks
// never trust stale cookie claims.
type Principal struct {
	SessionID string
	Session   *session.Session
	User      *domain.User
}

// SessionMiddleware resolves the session cookie into a Principal. It
// never rejects requests itself; unauthenticated requests simply carry
// no principal and the route gates decide what to do.
type SessionMiddleware struct {
	tokens     *TokenManager
	sessions   *session.Store
	users      repository.UserRepository
	cookieName string
}

// NewSessionMiddleware constructs middleware.
func NewSessionMiddleware(tokens *TokenManager, sessions *session.Store, users repository.UserRepository, cookieName string) *SessionMiddleware {
	return &SessionMiddleware{tokens: tokens, sessions: sessions, users: users, cookieName: cookieName}
}

// Handle loads the principal for the current request when a valid
// session exists.
func (m *SessionMiddleware) Handle(c *fiber.Ctx) error {
	cookie := c.Cookies(m.cookieName)
	if cookie == "" {
		return c.Next()
	}

	sessionID, err := m.tokens.ParseToken(cookie)
	if err != nil {
		return c.Next()
	}

	sess, err := m.sessions.Get(c.Context(), sessionID)
	if err != nil {
		return c.Next()
	}

	user, err := m.users.GetByID(c.Context(), sess.UserID)
	if err != nil {
		if err == pgx.ErrNoRows {
			_ = m.sessions.Delete(c.Context(), sessionID)
		}
		return c.Next()
	}
	if user.Status != domain.UserStatusActive {
		// deactivated mid-session: the session is no longer valid
		_ = m.sessions.Delete(c.Context(), sessionID)
		return c.Next()
	}

	c.Locals(principalKey, &Principal{SessionID: sessionID, Session: sess, User: user})
	return c.Next()
}

// PrincipalFromContext retrieves the authenticated entity.
func PrincipalFromContext(c *fiber.Ctx) (*Principal, bool) {
	val := c.Locals(principalKey)
	if val == nil {
		return nil, false
	}
	principal, ok := val.(*Principal)
	return principal, ok
}
