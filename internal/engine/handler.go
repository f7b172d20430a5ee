package engine

import (
	"errors"
	"fmt"
	"strconv"

	"github.com/gofiber/fiber/v2"
	"github.com/jackc/pgx/v5/pgconn"
	"golang.org/x/crypto/bcrypt"

	"registro-backend/internal/schema"
	"registro-backend/internal/store"
)

const accountTable = "tbl_usuario"

// Credential key spelling variants accepted on account writes.
var passwordKeys = []string{"contraseña", "contrasena"}

type Handler struct {
	store    *store.Store
	registry *schema.Registry
}

func NewHandler(s *store.Store, reg *schema.Registry) *Handler {
	return &Handler{store: s, registry: reg}
}

// List handles GET /records/:table
func (h *Handler) List(c *fiber.Ctx) error {
	table, err := h.resolveTable(c)
	if err != nil {
		return err
	}

	limit := 100
	if raw := c.Query("limit"); raw != "" {
		if v, err := strconv.Atoi(raw); err == nil && v > 0 {
			limit = v
		}
	}

	sql := fmt.Sprintf("SELECT %s FROM %s ORDER BY id DESC LIMIT $1",
		joinColumns(table.FieldNames()), table.Name)
	rows, err := store.QueryRows(c.Context(), h.store.Pool, sql, limit)
	if err != nil {
		return fmt.Errorf("list %s: %w", table.Name, err)
	}

	out := make([]map[string]any, 0, len(rows))
	for _, row := range rows {
		out = append(out, transportRecord(table, row))
	}
	return c.JSON(out)
}

// Create handles POST /records/:table
func (h *Handler) Create(c *fiber.Ctx) error {
	table, err := h.resolveTable(c)
	if err != nil {
		return err
	}

	var body map[string]any
	if err := c.BodyParser(&body); err != nil {
		return NewAppError("INVALID_PAYLOAD", 400, "Invalid JSON body")
	}

	// Plaintext credential leaves the payload before coercion.
	var password string
	if table.Name == accountTable {
		password = extractPassword(body)
		if password == "" {
			return ValidationError([]ErrorDetail{{
				Field:   "contraseña",
				Rule:    "required",
				Message: "A password is required when creating an account",
			}})
		}
	}

	fields, validationErrs := CoercePayload(table, body)
	if len(validationErrs) > 0 {
		return ValidationError(validationErrs)
	}

	if password != "" {
		hash, err := hashPassword(password)
		if err != nil {
			return fmt.Errorf("hash password: %w", err)
		}
		fields["password_hash"] = hash
	}

	// Tag the record with the submitting account unless the caller set one.
	if table.HasField("usuario") {
		if v, ok := fields["usuario"]; !ok || v == nil || v == "" {
			if sess := getSession(c); sess != nil {
				fields["usuario"] = sess.Account
			}
		}
	}

	sql, params := BuildInsertSQL(table, fields)
	row, err := store.QueryRow(c.Context(), h.store.Pool, sql, params...)
	if err != nil {
		return h.writeError(table, err)
	}

	return c.Status(201).JSON(transportRecord(table, row))
}

// Update handles PUT /records/:table/:id
func (h *Handler) Update(c *fiber.Ctx) error {
	table, err := h.resolveTable(c)
	if err != nil {
		return err
	}
	id, err := parseID(c)
	if err != nil {
		return NotFoundError(table.Name, c.Params("id"))
	}

	current, err := fetchRecord(c.Context(), h.store.Pool, table, id)
	if err != nil {
		if errors.Is(err, store.ErrNotFound) {
			return NotFoundError(table.Name, id)
		}
		return fmt.Errorf("fetch %s/%d: %w", table.Name, id, err)
	}

	var body map[string]any
	if err := c.BodyParser(&body); err != nil {
		return NewAppError("INVALID_PAYLOAD", 400, "Invalid JSON body")
	}

	// Re-hash only when a new credential was actually provided.
	var password string
	if table.Name == accountTable {
		password = extractPassword(body)
	}

	fields, validationErrs := CoercePayload(table, body)
	if len(validationErrs) > 0 {
		return ValidationError(validationErrs)
	}

	if password != "" {
		hash, err := hashPassword(password)
		if err != nil {
			return fmt.Errorf("hash password: %w", err)
		}
		fields["password_hash"] = hash
	}

	if len(fields) == 0 {
		// Nothing to patch; the record is returned unchanged.
		return c.JSON(transportRecord(table, current))
	}

	sql, params := BuildUpdateSQL(table, id, fields)
	row, err := store.QueryRow(c.Context(), h.store.Pool, sql, params...)
	if err != nil {
		if errors.Is(err, store.ErrNotFound) {
			return NotFoundError(table.Name, id)
		}
		return h.writeError(table, err)
	}

	return c.JSON(transportRecord(table, row))
}

// Delete handles DELETE /records/:table/:id
func (h *Handler) Delete(c *fiber.Ctx) error {
	table, err := h.resolveTable(c)
	if err != nil {
		return err
	}
	id, err := parseID(c)
	if err != nil {
		return NotFoundError(table.Name, c.Params("id"))
	}

	sql := fmt.Sprintf("DELETE FROM %s WHERE id = $1", table.Name)
	affected, err := store.Exec(c.Context(), h.store.Pool, sql, id)
	if err != nil {
		return fmt.Errorf("delete %s/%d: %w", table.Name, id, err)
	}
	if affected == 0 {
		return NotFoundError(table.Name, id)
	}

	return c.SendStatus(204)
}

func parseID(c *fiber.Ctx) (int64, error) {
	return strconv.ParseInt(c.Params("id"), 10, 64)
}

func (h *Handler) resolveTable(c *fiber.Ctx) (*schema.Table, error) {
	name := c.Params("table")
	table := h.registry.Lookup(name)
	if table == nil {
		return nil, UnknownTableError(name)
	}
	return table, nil
}

func (h *Handler) writeError(table *schema.Table, err error) error {
	var pgErr *pgconn.PgError
	if errors.As(err, &pgErr) && pgErr.Code == "23505" {
		msg := "A record with this value already exists"
		if pgErr.Detail != "" {
			msg = pgErr.Detail
		}
		return ConflictError(msg)
	}
	return fmt.Errorf("write %s: %w", table.Name, err)
}

func extractPassword(body map[string]any) string {
	var password string
	for _, key := range passwordKeys {
		if v, ok := body[key]; ok {
			delete(body, key)
			if s, ok := v.(string); ok && s != "" && password == "" {
				password = s
			}
		}
	}
	return password
}

func hashPassword(password string) (string, error) {
	hash, err := bcrypt.GenerateFromPassword([]byte(password), bcrypt.DefaultCost)
	if err != nil {
		return "", err
	}
	return string(hash), nil
}

func getSession(c *fiber.Ctx) *schema.Session {
	sess, _ := c.Locals("session").(*schema.Session)
	return sess
}
