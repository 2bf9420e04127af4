package api

import (
	"net/http"
	"strings"

	"github.com/labstack/echo/v4"
	"github.com/labstack/echo/v4/middleware"
	"go.mongodb.org/mongo-driver/bson/primitive"

	"github.com/labnet/testledger/config"
	"github.com/labnet/testledger/errors"
	"github.com/labnet/testledger/scoping"
)

const (
	OrganizationIdHeaderKey = "X-Organization-Id"
	FacilityIdsHeaderKey    = "X-Facility-Ids"
	UserEmailHeaderKey      = "X-User-Email"
)

type ScopeMiddlewareOpts struct {
	Skipper middleware.Skipper
}

// NewScopeMiddleware binds the caller's organization and facilities, as
// asserted by the upstream gateway, to the request context
func NewScopeMiddleware(opts ScopeMiddlewareOpts) echo.MiddlewareFunc {
	return func(next echo.HandlerFunc) echo.HandlerFunc {
		return func(c echo.Context) error {
			if opts.Skipper != nil && opts.Skipper(c) {
				return next(c)
			}

			scope, err := scopeFromRequest(c.Request())
			if err != nil {
				return err
			}

			req := c.Request()
			c.SetRequest(req.WithContext(scoping.WithScope(req.Context(), scope)))
			return next(c)
		}
	}
}

func scopeFromRequest(req *http.Request) (scoping.Scope, error) {
	organizationId := strings.TrimSpace(req.Header.Get(OrganizationIdHeaderKey))
	if organizationId == "" {
		return scoping.Scope{}, echo.NewHTTPError(http.StatusUnauthorized, "organization is missing")
	}
	if !primitive.IsValidObjectID(organizationId) {
		return scoping.Scope{}, echo.NewHTTPError(http.StatusBadRequest, "organization id is invalid")
	}

	scope := scoping.Scope{
		OrganizationId: organizationId,
		Email:          strings.TrimSpace(req.Header.Get(UserEmailHeaderKey)),
	}
	if header := req.Header.Get(FacilityIdsHeaderKey); strings.TrimSpace(header) != "" {
		scope.FacilityIds = []string{}
		for _, id := range strings.Split(header, ",") {
			if id = strings.TrimSpace(id); id != "" {
				scope.FacilityIds = append(scope.FacilityIds, id)
			}
		}
	}

	return scope, nil
}

// RequireSiteAdmin rejects callers whose email is not in the site admin allowlist
func RequireSiteAdmin(cfg *config.Config) echo.MiddlewareFunc {
	return func(next echo.HandlerFunc) echo.HandlerFunc {
		return func(c echo.Context) error {
			scope, ok := scoping.ScopeFromContext(c.Request().Context())
			if !ok || !cfg.IsSiteAdmin(scope.Email) {
				return errors.Forbidden
			}
			return next(c)
		}
	}
}
