package handlers

import (
	"context"
	"errors"
	"fmt"
	"net/http"

	"github.com/pocketbase/pocketbase/core"
	"go.uber.org/zap"

	"freightcalc/services"
)

type contextKey string

const ViewerKey contextKey = "viewer"

// RoleField is the select field on the users collection that holds a
// user's quote role.
const RoleField = "role"

var errUnauthenticated = errors.New("authentication required")

// GetViewer extracts the resolved viewer from the request context.
func GetViewer(r *http.Request) (services.Viewer, bool) {
	v, ok := r.Context().Value(ViewerKey).(services.Viewer)
	return v, ok
}

// ResolveViewer maps an authenticated record to a quote viewer. Superusers
// are always Admin; users without a role are Business.
func ResolveViewer(auth *core.Record) (services.Viewer, error) {
	if auth == nil {
		return services.Viewer{}, errUnauthenticated
	}
	if auth.IsSuperuser() {
		return services.Viewer{Email: auth.Email(), Role: services.RoleAdmin}, nil
	}

	role := services.RoleBusiness
	if raw := auth.GetString(RoleField); raw != "" {
		parsed, err := services.ParseRole(raw)
		if err != nil {
			return services.Viewer{}, fmt.Errorf("user %s: %w", auth.Id, err)
		}
		role = parsed
	}
	return services.Viewer{
		Email: auth.Email(),
		Name:  auth.GetString("name"),
		Role:  role,
	}, nil
}

// ViewerMiddleware resolves the authenticated user into a viewer and stores
// it in the request context. Unauthenticated requests get a 401.
func ViewerMiddleware(log *zap.Logger) func(e *core.RequestEvent) error {
	return func(e *core.RequestEvent) error {
		viewer, err := ResolveViewer(e.Auth)
		if err != nil {
			if errors.Is(err, errUnauthenticated) {
				return writeError(e, http.StatusUnauthorized, "unauthenticated", "Sign in to request freight quotes.", nil)
			}
			log.Warn("viewer: unusable role", zap.Error(err))
			return writeError(e, http.StatusForbidden, "invalid_role", "Your account has no valid quote role.", nil)
		}

		ctx := context.WithValue(e.Request.Context(), ViewerKey, viewer)
		e.Request = e.Request.WithContext(ctx)
		return e.Next()
	}
}

// AdminOnly rejects viewers that are not Admin. It must run after
// ViewerMiddleware.
func AdminOnly() func(e *core.RequestEvent) error {
	return func(e *core.RequestEvent) error {
		viewer, ok := GetViewer(e.Request)
		if !ok {
			return writeError(e, http.StatusUnauthorized, "unauthenticated", "Sign in to continue.", nil)
		}
		if viewer.Role != services.RoleAdmin {
			return writeError(e, http.StatusForbidden, "forbidden", "Only Admin users can do this.", nil)
		}
		return e.Next()
	}
}
