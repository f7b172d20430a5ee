package auth

import (
	"context"
	"time"

	"github.com/gofiber/fiber/v2"

	"registro-backend/internal/engine"
	"registro-backend/internal/store"
)

// AuthHandler handles the login, refresh and logout endpoints.
type AuthHandler struct {
	store     *store.Store
	jwtSecret string
}

func NewAuthHandler(s *store.Store, jwtSecret string) *AuthHandler {
	return &AuthHandler{store: s, jwtSecret: jwtSecret}
}

// Login handles POST /auth/login.
func (h *AuthHandler) Login(c *fiber.Ctx) error {
	var body struct {
		Identifier string `json:"identifier"`
		Password   string `json:"password"`
	}
	if err := c.BodyParser(&body); err != nil {
		return engine.NewAppError("INVALID_PAYLOAD", 400, "Invalid request body")
	}
	if body.Identifier == "" || body.Password == "" {
		return engine.UnauthorizedError("Identifier and password are required")
	}

	ctx := c.Context()

	account, err := h.findAccount(ctx, body.Identifier)
	if err != nil {
		return engine.UnauthorizedError("Invalid credentials")
	}

	active, _ := account["activo"].(bool)
	if !active {
		return engine.UnauthorizedError("Account is disabled")
	}

	passwordHash, _ := account["password_hash"].(string)
	if !CheckPassword(body.Password, passwordHash) {
		return engine.UnauthorizedError("Invalid credentials")
	}

	name, _ := account["nom_usuario"].(string)
	role, _ := account["nom_rol"].(string)

	pair, err := h.generateTokenPair(ctx, account["id"], name, role)
	if err != nil {
		return err
	}

	return c.JSON(fiber.Map{"data": pair})
}

// Refresh handles POST /auth/refresh.
func (h *AuthHandler) Refresh(c *fiber.Ctx) error {
	var body struct {
		RefreshToken string `json:"refresh_token"`
	}
	if err := c.BodyParser(&body); err != nil {
		return engine.NewAppError("INVALID_PAYLOAD", 400, "Invalid request body")
	}
	if body.RefreshToken == "" {
		return engine.UnauthorizedError("Refresh token is required")
	}

	ctx := c.Context()

	row, err := store.QueryRow(ctx, h.store.Pool, `
		SELECT rt.id AS token_id, u.id, u.nom_usuario, u.activo, r.nom_rol, rt.expires_at
		FROM auth_refresh_tokens rt
		JOIN tbl_usuario u ON u.id = rt.id_usuario
		JOIN tbl_roles r ON r.id = u.id_rol
		WHERE rt.token = $1`, body.RefreshToken)
	if err != nil {
		return engine.UnauthorizedError("Invalid refresh token")
	}

	expiresAt, _ := row["expires_at"].(time.Time)
	if time.Now().After(expiresAt) {
		_, _ = store.Exec(ctx, h.store.Pool,
			"DELETE FROM auth_refresh_tokens WHERE token = $1", body.RefreshToken)
		return engine.UnauthorizedError("Refresh token expired")
	}

	active, _ := row["activo"].(bool)
	if !active {
		return engine.UnauthorizedError("Account is disabled")
	}

	// Rotate: the used refresh token is single-use.
	_, _ = store.Exec(ctx, h.store.Pool,
		"DELETE FROM auth_refresh_tokens WHERE id = $1", row["token_id"])

	name, _ := row["nom_usuario"].(string)
	role, _ := row["nom_rol"].(string)

	pair, err := h.generateTokenPair(ctx, row["id"], name, role)
	if err != nil {
		return err
	}

	return c.JSON(fiber.Map{"data": pair})
}

// Logout handles POST /auth/logout.
func (h *AuthHandler) Logout(c *fiber.Ctx) error {
	var body struct {
		RefreshToken string `json:"refresh_token"`
	}
	if err := c.BodyParser(&body); err != nil {
		return engine.NewAppError("INVALID_PAYLOAD", 400, "Invalid request body")
	}
	if body.RefreshToken == "" {
		return engine.UnauthorizedError("Refresh token is required")
	}

	_, _ = store.Exec(c.Context(), h.store.Pool,
		"DELETE FROM auth_refresh_tokens WHERE token = $1", body.RefreshToken)

	return c.JSON(fiber.Map{"message": "Logged out"})
}

// RegisterAuthRoutes registers auth routes on the given Fiber app.
func RegisterAuthRoutes(app *fiber.App, h *AuthHandler) {
	grp := app.Group("/auth")
	grp.Post("/login", h.Login)
	grp.Post("/refresh", h.Refresh)
	grp.Post("/logout", h.Logout)
}

// --- helpers ---

func (h *AuthHandler) findAccount(ctx context.Context, identifier string) (map[string]any, error) {
	return store.QueryRow(ctx, h.store.Pool, `
		SELECT u.id, u.nom_usuario, u.password_hash, u.activo, r.nom_rol
		FROM tbl_usuario u
		JOIN tbl_roles r ON r.id = u.id_rol
		WHERE u.nom_usuario = $1`, identifier)
}

func (h *AuthHandler) generateTokenPair(ctx context.Context, accountID any, name, role string) (*TokenPair, error) {
	accessToken, err := GenerateAccessToken(name, role, h.jwtSecret)
	if err != nil {
		return nil, engine.NewAppError("INTERNAL_ERROR", 500, "Failed to generate access token")
	}

	refreshToken := GenerateRefreshToken()
	expiresAt := time.Now().Add(RefreshTokenTTL)

	_, err = store.Exec(ctx, h.store.Pool,
		`INSERT INTO auth_refresh_tokens (id_usuario, token, expires_at) VALUES ($1, $2, $3)`,
		accountID, refreshToken, expiresAt)
	if err != nil {
		return nil, engine.NewAppError("INTERNAL_ERROR", 500, "Failed to store refresh token")
	}

	return &TokenPair{
		AccessToken:  accessToken,
		RefreshToken: refreshToken,
	}, nil
}
