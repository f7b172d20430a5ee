package engine

import (
	"encoding/json"
	"errors"
	"io"
	"net/http"
	"strings"
	"testing"

	"github.com/gofiber/fiber/v2"

	"registro-backend/internal/schema"
)

// testApp wires the routes with pass-through middleware and the same
// error translation the server uses. A nil store is fine for paths
// that never reach storage.
func testApp(h *Handler) *fiber.App {
	app := fiber.New(fiber.Config{
		ErrorHandler: func(c *fiber.Ctx, err error) error {
			var appErr *AppError
			if errors.As(err, &appErr) {
				return c.Status(appErr.Status).JSON(ErrorResponse{Error: appErr})
			}
			return c.Status(500).JSON(ErrorResponse{Error: NewAppError("INTERNAL", 500, err.Error())})
		},
	})
	passthrough := func(c *fiber.Ctx) error { return c.Next() }
	RegisterRoutes(app, h, passthrough, passthrough)
	return app
}

func doJSON(t *testing.T, app *fiber.App, method, path, body string) (*http.Response, ErrorResponse) {
	t.Helper()
	var reader io.Reader
	if body != "" {
		reader = strings.NewReader(body)
	}
	req, _ := http.NewRequest(method, path, reader)
	if body != "" {
		req.Header.Set("Content-Type", "application/json")
	}
	resp, err := app.Test(req, -1)
	if err != nil {
		t.Fatalf("request failed: %v", err)
	}
	raw, _ := io.ReadAll(resp.Body)
	var errResp ErrorResponse
	_ = json.Unmarshal(raw, &errResp)
	return resp, errResp
}

func TestUnknownTableIs404(t *testing.T) {
	h := NewHandler(nil, schema.NewRegistry())
	app := testApp(h)

	for _, tc := range []struct{ method, path, body string }{
		{"GET", "/records/tbl_inventada", ""},
		{"POST", "/records/tbl_inventada", `{"x":1}`},
		{"PUT", "/records/tbl_inventada/1", `{"x":1}`},
		{"DELETE", "/records/tbl_inventada/1", ""},
		{"GET", "/advisory/tbl_inventada", ""},
	} {
		resp, errResp := doJSON(t, app, tc.method, tc.path, tc.body)
		if resp.StatusCode != 404 {
			t.Errorf("%s %s: expected 404, got %d", tc.method, tc.path, resp.StatusCode)
			continue
		}
		if errResp.Error == nil || errResp.Error.Code != "UNKNOWN_TABLE" {
			t.Errorf("%s %s: expected UNKNOWN_TABLE, got %+v", tc.method, tc.path, errResp.Error)
		}
	}
}

func TestQueryAndExportUnknownTableIs404(t *testing.T) {
	h := NewHandler(nil, schema.NewRegistry())
	app := testApp(h)

	for _, path := range []string{"/query", "/export"} {
		resp, errResp := doJSON(t, app, "POST", path, `{"table":"tbl_inventada"}`)
		if resp.StatusCode != 404 {
			t.Errorf("%s: expected 404, got %d", path, resp.StatusCode)
			continue
		}
		if errResp.Error == nil || errResp.Error.Code != "UNKNOWN_TABLE" {
			t.Errorf("%s: expected UNKNOWN_TABLE, got %+v", path, errResp.Error)
		}
	}
}

func TestNonNumericIDIs404(t *testing.T) {
	h := NewHandler(nil, schema.NewRegistry())
	app := testApp(h)

	for _, tc := range []struct{ method, path string }{
		{"PUT", "/records/tbl_bpm/abc"},
		{"DELETE", "/records/tbl_bpm/abc"},
	} {
		resp, errResp := doJSON(t, app, tc.method, tc.path, `{}`)
		if resp.StatusCode != 404 {
			t.Errorf("%s %s: expected 404, got %d", tc.method, tc.path, resp.StatusCode)
			continue
		}
		if errResp.Error == nil || errResp.Error.Code != "NOT_FOUND" {
			t.Errorf("%s %s: expected NOT_FOUND, got %+v", tc.method, tc.path, errResp.Error)
		}
	}
}

func TestCreateAccountWithoutPasswordIs400(t *testing.T) {
	h := NewHandler(nil, schema.NewRegistry())
	app := testApp(h)

	resp, errResp := doJSON(t, app, "POST", "/records/tbl_usuario",
		`{"nom_usuario":"ana","id_rol":1,"id_razon_social":1,"activo":true}`)
	if resp.StatusCode != 400 {
		t.Fatalf("expected 400, got %d", resp.StatusCode)
	}
	if errResp.Error == nil || errResp.Error.Code != "VALIDATION_FAILED" {
		t.Fatalf("expected VALIDATION_FAILED, got %+v", errResp.Error)
	}
	if len(errResp.Error.Details) != 1 || errResp.Error.Details[0].Field != "contraseña" {
		t.Fatalf("expected a detail on contraseña, got %+v", errResp.Error.Details)
	}
}

func TestCreateInvalidPayloadIs400(t *testing.T) {
	h := NewHandler(nil, schema.NewRegistry())
	app := testApp(h)

	resp, errResp := doJSON(t, app, "POST", "/records/tbl_bpm", `{"fecha": "no-es-fecha"}`)
	if resp.StatusCode != 400 {
		t.Fatalf("expected 400, got %d", resp.StatusCode)
	}
	if errResp.Error == nil || errResp.Error.Code != "VALIDATION_FAILED" {
		t.Fatalf("expected VALIDATION_FAILED, got %+v", errResp.Error)
	}
}

func TestExtractPassword(t *testing.T) {
	body := map[string]any{"contraseña": "secreta", "nom_usuario": "ana"}
	if got := extractPassword(body); got != "secreta" {
		t.Fatalf("expected secreta, got %q", got)
	}
	if _, ok := body["contraseña"]; ok {
		t.Fatal("the plaintext credential must leave the payload")
	}

	body = map[string]any{"contrasena": "otra"}
	if got := extractPassword(body); got != "otra" {
		t.Fatalf("the unaccented spelling must work too, got %q", got)
	}

	if got := extractPassword(map[string]any{"nom_usuario": "ana"}); got != "" {
		t.Fatalf("expected empty password, got %q", got)
	}
}

func TestBuildInsertSQL(t *testing.T) {
	reg := schema.NewRegistry()
	tbl := reg.Lookup("tbl_roles")

	sql, params := BuildInsertSQL(tbl, map[string]any{"nom_rol": "Auditor"})
	want := "INSERT INTO tbl_roles (nom_rol) VALUES ($1) RETURNING id, nom_rol"
	if sql != want {
		t.Fatalf("expected %q, got %q", want, sql)
	}
	if len(params) != 1 || params[0] != "Auditor" {
		t.Fatalf("unexpected params: %v", params)
	}

	sql, params = BuildInsertSQL(tbl, nil)
	if sql != "INSERT INTO tbl_roles DEFAULT VALUES RETURNING id, nom_rol" {
		t.Fatalf("unexpected empty-insert SQL: %q", sql)
	}
	if params != nil {
		t.Fatalf("expected no params, got %v", params)
	}
}

func TestBuildUpdateSQL_StampsAutoColumn(t *testing.T) {
	reg := schema.NewRegistry()
	tbl := reg.Lookup("conf_parametro_operativo")

	sql, params := BuildUpdateSQL(tbl, int64(3), map[string]any{"activo": true})
	if !strings.Contains(sql, "activo = $1") {
		t.Fatalf("missing set clause: %q", sql)
	}
	if !strings.Contains(sql, "actualizado = NOW()") {
		t.Fatalf("auto-update column must be stamped server-side: %q", sql)
	}
	if !strings.Contains(sql, "WHERE id = $2") {
		t.Fatalf("missing id predicate: %q", sql)
	}
	if len(params) != 2 || params[0] != true || params[1] != int64(3) {
		t.Fatalf("unexpected params: %v", params)
	}
}
