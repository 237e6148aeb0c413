package middleware

import (
	"context"
	"net/http"
	"strings"

	apperrors "hms/pkg/errors"
	httputil "hms/pkg/http"
	"hms/pkg/logger"
	"hms/pkg/model"

	"github.com/julienschmidt/httprouter"
)

const principalKey contextKey = "principal"

// Principal is the authenticated caller of a request.
type Principal struct {
	UserID      string
	Email       string
	Name        string
	Role        string
	Permissions map[string]bool
}

func (p *Principal) IsSuperAdmin() bool {
	return p.Role == model.RoleSuperAdmin
}

// IsAdmin is true for admins and superadmins, and for staff holding at least
// one permission.
func (p *Principal) IsAdmin() bool {
	if p.Role == model.RoleAdmin || p.Role == model.RoleSuperAdmin {
		return true
	}
	for _, granted := range p.Permissions {
		if granted {
			return true
		}
	}
	return false
}

func (p *Principal) Can(permission string) bool {
	if p.Role == model.RoleAdmin || p.Role == model.RoleSuperAdmin {
		return true
	}
	return p.Permissions[permission]
}

// Authenticator resolves a bearer token into the current principal.
type Authenticator interface {
	Authenticate(ctx context.Context, token string) (*Principal, error)
}

func WithPrincipal(ctx context.Context, p *Principal) context.Context {
	return context.WithValue(ctx, principalKey, p)
}

func PrincipalFrom(ctx context.Context) (*Principal, bool) {
	p, ok := ctx.Value(principalKey).(*Principal)
	return p, ok && p != nil
}

// Guard wraps httprouter handles with authentication and authorization.
type Guard struct {
	auth Authenticator
	log  *logger.Logger
}

func NewGuard(auth Authenticator, log *logger.Logger) *Guard {
	return &Guard{auth: auth, log: log}
}

func (g *Guard) Authenticated(next httprouter.Handle) httprouter.Handle {
	return g.require(nil, next)
}

func (g *Guard) Admin(next httprouter.Handle) httprouter.Handle {
	return g.require(func(p *Principal) bool { return p.IsAdmin() }, next)
}

func (g *Guard) Permission(permission string, next httprouter.Handle) httprouter.Handle {
	return g.require(func(p *Principal) bool { return p.Can(permission) }, next)
}

func (g *Guard) SuperAdmin(next httprouter.Handle) httprouter.Handle {
	return g.require(func(p *Principal) bool { return p.IsSuperAdmin() }, next)
}

func (g *Guard) require(allowed func(*Principal) bool, next httprouter.Handle) httprouter.Handle {
	return func(w http.ResponseWriter, r *http.Request, ps httprouter.Params) {
		token, ok := bearerToken(r)
		if !ok {
			g.deny(w, r, apperrors.Unauthorized("Not authenticated"))
			return
		}

		principal, err := g.auth.Authenticate(r.Context(), token)
		if err != nil {
			if !apperrors.IsAppError(err) {
				err = apperrors.Unauthorized("Invalid token")
			}
			g.deny(w, r, err)
			return
		}

		if allowed != nil && !allowed(principal) {
			g.log.Warn("Permission denied",
				"request_id", RequestID(r.Context()),
				"user_id", principal.UserID,
				"role", principal.Role,
				"path", r.URL.Path,
			)
			g.deny(w, r, apperrors.Forbidden("Permission denied"))
			return
		}

		next(w, r.WithContext(WithPrincipal(r.Context(), principal)), ps)
	}
}

func (g *Guard) deny(w http.ResponseWriter, r *http.Request, err error) {
	if writeErr := httputil.WriteError(w, err); writeErr != nil {
		g.log.Error("failed to write error response", "middleware", "Guard", "operation", "WriteError", "error", writeErr, "path", r.URL.Path)
	}
}

func bearerToken(r *http.Request) (string, bool) {
	header := r.Header.Get("Authorization")
	scheme, token, found := strings.Cut(header, " ")
	if !found || !strings.EqualFold(scheme, "Bearer") {
		return "", false
	}
	token = strings.TrimSpace(token)
	return token, token != ""
}
