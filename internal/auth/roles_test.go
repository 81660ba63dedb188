package auth

import (
	"net/http"
	"net/http/httptest"
	"testing"

	"github.com/gofiber/fiber/v2"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/fusaf/role-request-service/internal/domain"
	apperrors "github.com/fusaf/role-request-service/pkg/util"
)

func guardApp(principal *Principal, guard fiber.Handler) *fiber.App {
	app := fiber.New(fiber.Config{
		ErrorHandler: func(c *fiber.Ctx, err error) error {
			return c.Status(apperrors.ToDomainError(err).HTTPStatus).SendString(err.Error())
		},
	})
	app.Get("/guarded", func(c *fiber.Ctx) error {
		if principal != nil {
			SetPrincipal(c, principal)
		}
		return c.Next()
	}, guard, func(c *fiber.Ctx) error {
		return c.SendStatus(http.StatusOK)
	})
	return app
}

func guardStatus(t *testing.T, principal *Principal, guard fiber.Handler) int {
	t.Helper()
	app := guardApp(principal, guard)
	resp, err := app.Test(httptest.NewRequest(http.MethodGet, "/guarded", nil), -1)
	require.NoError(t, err)
	return resp.StatusCode
}

func member(roles ...string) *Principal {
	return &Principal{Account: &domain.Account{
		Email:  "member@x.com",
		Roles:  roles,
		Status: domain.AccountStatusActive,
	}}
}

func TestRequireAuthenticated(t *testing.T) {
	assert.Equal(t, http.StatusUnauthorized, guardStatus(t, nil, RequireAuthenticated()))
	assert.Equal(t, http.StatusOK, guardStatus(t, member(domain.RoleAthlete), RequireAuthenticated()))
}

func TestRequireAdmin(t *testing.T) {
	assert.Equal(t, http.StatusUnauthorized, guardStatus(t, nil, RequireAdmin()))
	assert.Equal(t, http.StatusForbidden, guardStatus(t, member(domain.RoleAthlete), RequireAdmin()))
	assert.Equal(t, http.StatusOK, guardStatus(t, member(domain.RoleAthlete, domain.RoleAdmin), RequireAdmin()))
}

func TestRequireRole(t *testing.T) {
	guard := RequireRole(domain.RoleAdmin, domain.RoleCoachJudge)

	assert.Equal(t, http.StatusUnauthorized, guardStatus(t, nil, guard))
	assert.Equal(t, http.StatusForbidden, guardStatus(t, member(domain.RoleAthlete), guard))
	assert.Equal(t, http.StatusOK, guardStatus(t, member(domain.RoleCoachJudge), guard))
}

func TestPrincipalEmail(t *testing.T) {
	assert.Equal(t, "member@x.com", member(domain.RoleAthlete).Email())

	var missing *Principal
	assert.Equal(t, "", missing.Email())
	assert.Equal(t, "", (&Principal{}).Email())
}
