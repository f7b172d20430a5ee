package store

import (
	"context"
	"fmt"
	"log"

	"golang.org/x/crypto/bcrypt"
)

const schemaSQL = `
CREATE TABLE IF NOT EXISTS tbl_razon_social (
    id                  SERIAL PRIMARY KEY,
    nombre_razon_social TEXT NOT NULL
);

CREATE TABLE IF NOT EXISTS tbl_restaurante (
    id              SERIAL PRIMARY KEY,
    nom_restaurante TEXT NOT NULL,
    id_razon_social INT NOT NULL REFERENCES tbl_razon_social(id)
);

CREATE TABLE IF NOT EXISTS tbl_roles (
    id      SERIAL PRIMARY KEY,
    nom_rol TEXT NOT NULL
);

CREATE TABLE IF NOT EXISTS tbl_usuario (
    id              SERIAL PRIMARY KEY,
    nom_usuario     TEXT NOT NULL UNIQUE,
    password_hash   TEXT NOT NULL,
    id_rol          INT NOT NULL REFERENCES tbl_roles(id),
    id_razon_social INT NOT NULL REFERENCES tbl_razon_social(id),
    id_restaurante  INT REFERENCES tbl_restaurante(id),
    activo          BOOLEAN NOT NULL DEFAULT true
);

CREATE TABLE IF NOT EXISTS tbl_temp_equipos (
    id             SERIAL PRIMARY KEY,
    fecha          DATE NOT NULL DEFAULT CURRENT_DATE,
    tipo_de_equipo TEXT NOT NULL,
    num_equipo     INT NOT NULL,
    tipo_toma      TEXT NOT NULL,
    temperatura    NUMERIC(6,2) NOT NULL,
    responsable    TEXT NOT NULL,
    observaciones  TEXT,
    usuario        TEXT
);

CREATE TABLE IF NOT EXISTS tbl_temp_alimentos (
    id                 SERIAL PRIMARY KEY,
    fecha              DATE NOT NULL DEFAULT CURRENT_DATE,
    producto           TEXT NOT NULL,
    temperatura        TEXT NOT NULL,
    tiempo_preparacion NUMERIC(10,2) NOT NULL,
    responsable        TEXT NOT NULL,
    observaciones      TEXT,
    usuario            TEXT
);

CREATE TABLE IF NOT EXISTS tbl_aceite_quemado (
    id               SERIAL PRIMARY KEY,
    fecha            DATE NOT NULL DEFAULT CURRENT_DATE,
    num_freidora     INT NOT NULL,
    filtracion       BOOLEAN NOT NULL,
    cambio_de_aceite BOOLEAN NOT NULL,
    responsable      TEXT NOT NULL,
    observaciones    TEXT,
    usuario          TEXT
);

CREATE TABLE IF NOT EXISTS tbl_limpieza_trampas_tanque (
    id            SERIAL PRIMARY KEY,
    fecha         DATE NOT NULL DEFAULT CURRENT_DATE,
    tipo_limpieza TEXT NOT NULL,
    limpieza      BOOLEAN NOT NULL,
    desinfeccion  BOOLEAN NOT NULL,
    responsable   TEXT NOT NULL,
    observaciones TEXT,
    usuario       TEXT
);

CREATE TABLE IF NOT EXISTS tbl_bpm (
    id               SERIAL PRIMARY KEY,
    fecha            DATE NOT NULL DEFAULT CURRENT_DATE,
    nombre_auxiliar  TEXT NOT NULL,
    barba_maquillaje BOOLEAN NOT NULL,
    cabello_gorro    BOOLEAN NOT NULL,
    ausencia_heridas BOOLEAN NOT NULL,
    joyas_accesorios BOOLEAN NOT NULL,
    perfumes         BOOLEAN NOT NULL,
    unas_manos       BOOLEAN NOT NULL,
    uniforme         BOOLEAN NOT NULL,
    zapatos          BOOLEAN NOT NULL,
    responsable      TEXT NOT NULL,
    observaciones    TEXT,
    usuario          TEXT
);

CREATE TABLE IF NOT EXISTS tbl_recepcion_materias_primas (
    id                   SERIAL PRIMARY KEY,
    fecha                DATE NOT NULL DEFAULT CURRENT_DATE,
    mp_insumo            TEXT NOT NULL,
    proveedor            TEXT NOT NULL,
    cantidad             NUMERIC(12,2) NOT NULL,
    temperatura          TEXT NOT NULL,
    lote                 TEXT NOT NULL,
    fecha_vencimiento    DATE NOT NULL,
    n_factura            TEXT NOT NULL,
    requiere_cer_calidad BOOLEAN NOT NULL,
    aceptado             BOOLEAN NOT NULL,
    transporte_limpio    BOOLEAN NOT NULL,
    termoking            TEXT NOT NULL,
    responsable          TEXT NOT NULL,
    observaciones        TEXT,
    usuario              TEXT
);

CREATE TABLE IF NOT EXISTS tbl_limpieza_zonascom (
    id              SERIAL PRIMARY KEY,
    fecha           DATE NOT NULL DEFAULT CURRENT_DATE,
    establecimiento TEXT NOT NULL,
    "baño_hombre"   BOOLEAN NOT NULL,
    "baño_mujer"    BOOLEAN NOT NULL,
    salon           BOOLEAN NOT NULL,
    responsable     TEXT NOT NULL,
    observaciones   TEXT,
    usuario         TEXT
);

CREATE TABLE IF NOT EXISTS tbl_limpieza_general (
    id            SERIAL PRIMARY KEY,
    fecha         DATE NOT NULL DEFAULT CURRENT_DATE,
    zona          TEXT NOT NULL,
    profunda      BOOLEAN NOT NULL,
    rutinaria     BOOLEAN NOT NULL,
    responsable   TEXT NOT NULL,
    observaciones TEXT,
    usuario       TEXT
);

CREATE TABLE IF NOT EXISTS tbl_limpieza_alimentos (
    id                SERIAL PRIMARY KEY,
    fecha             DATE NOT NULL DEFAULT CURRENT_DATE,
    alimento          TEXT NOT NULL,
    tiempo_exposicion TEXT NOT NULL,
    tipo_desinfeccion TEXT NOT NULL,
    responsable       TEXT NOT NULL,
    observaciones     TEXT,
    usuario           TEXT
);

CREATE TABLE IF NOT EXISTS tbl_agua_potable (
    id            SERIAL PRIMARY KEY,
    fecha         DATE NOT NULL DEFAULT CURRENT_DATE,
    olor          BOOLEAN NOT NULL,
    sabor         BOOLEAN NOT NULL,
    color         BOOLEAN NOT NULL,
    cloro         NUMERIC(5,2) NOT NULL,
    ph            NUMERIC(5,2) NOT NULL,
    responsable   TEXT NOT NULL,
    observaciones TEXT,
    usuario       TEXT
);

CREATE TABLE IF NOT EXISTS tbl_residuos_solidos (
    id                       SERIAL PRIMARY KEY,
    fecha                    DATE NOT NULL DEFAULT CURRENT_DATE,
    hora_disposicion_residuo TIME NOT NULL,
    correcta_clasificacion   BOOLEAN NOT NULL,
    organico                 BOOLEAN NOT NULL,
    reciclaje                BOOLEAN NOT NULL,
    ordinario                BOOLEAN NOT NULL,
    responsable              TEXT NOT NULL,
    observaciones            TEXT,
    usuario                  TEXT
);

CREATE TABLE IF NOT EXISTS conf_parametro_operativo (
    id          SERIAL PRIMARY KEY,
    tabla       TEXT NOT NULL,
    texto_html  TEXT NOT NULL,
    activo      BOOLEAN NOT NULL DEFAULT true,
    actualizado TIMESTAMPTZ NOT NULL DEFAULT NOW()
);

CREATE TABLE IF NOT EXISTS conf_permisos_rol (
    id        SERIAL PRIMARY KEY,
    rol       TEXT NOT NULL UNIQUE,
    tabs_json TEXT NOT NULL
);

CREATE TABLE IF NOT EXISTS auth_refresh_tokens (
    id         SERIAL PRIMARY KEY,
    id_usuario INT NOT NULL REFERENCES tbl_usuario(id) ON DELETE CASCADE,
    token      UUID NOT NULL UNIQUE,
    expires_at TIMESTAMPTZ NOT NULL,
    created_at TIMESTAMPTZ NOT NULL DEFAULT NOW()
);
CREATE INDEX IF NOT EXISTS idx_auth_refresh_tokens_token ON auth_refresh_tokens(token);
`

// Bootstrap creates all tables and seeds the minimum catalog rows so a
// fresh database is immediately usable.
func (s *Store) Bootstrap(ctx context.Context) error {
	if _, err := s.Pool.Exec(ctx, schemaSQL); err != nil {
		return fmt.Errorf("bootstrap tables: %w", err)
	}
	if err := s.seedCatalogs(ctx); err != nil {
		return fmt.Errorf("seed catalogs: %w", err)
	}
	if err := s.seedAdminAccount(ctx); err != nil {
		return fmt.Errorf("seed admin account: %w", err)
	}
	return nil
}

func (s *Store) seedCatalogs(ctx context.Context) error {
	var count int
	if err := s.Pool.QueryRow(ctx, "SELECT COUNT(*) FROM tbl_roles").Scan(&count); err != nil {
		return err
	}
	if count == 0 {
		_, err := s.Pool.Exec(ctx,
			"INSERT INTO tbl_roles (nom_rol) VALUES ('Admin'), ('Supervisor'), ('Operativo')")
		if err != nil {
			return err
		}
	}

	if err := s.Pool.QueryRow(ctx, "SELECT COUNT(*) FROM tbl_razon_social").Scan(&count); err != nil {
		return err
	}
	if count == 0 {
		_, err := s.Pool.Exec(ctx,
			"INSERT INTO tbl_razon_social (nombre_razon_social) VALUES ('Inversiones alquimista')")
		if err != nil {
			return err
		}
	}

	if err := s.Pool.QueryRow(ctx, "SELECT COUNT(*) FROM tbl_restaurante").Scan(&count); err != nil {
		return err
	}
	if count == 0 {
		_, err := s.Pool.Exec(ctx, `
			INSERT INTO tbl_restaurante (nom_restaurante, id_razon_social)
			SELECT 'Alquimista', id FROM tbl_razon_social ORDER BY id LIMIT 1`)
		if err != nil {
			return err
		}
	}

	return nil
}

func (s *Store) seedAdminAccount(ctx context.Context) error {
	var count int
	err := s.Pool.QueryRow(ctx,
		"SELECT COUNT(*) FROM tbl_usuario WHERE nom_usuario = 'admin'").Scan(&count)
	if err != nil {
		return err
	}
	if count > 0 {
		return nil
	}

	hashBytes, err := bcrypt.GenerateFromPassword([]byte("admin"), bcrypt.DefaultCost)
	if err != nil {
		return err
	}

	_, err = s.Pool.Exec(ctx, `
		INSERT INTO tbl_usuario (nom_usuario, password_hash, id_rol, id_razon_social, id_restaurante, activo)
		SELECT 'admin', $1,
		       (SELECT id FROM tbl_roles WHERE nom_rol = 'Admin'),
		       (SELECT id FROM tbl_razon_social ORDER BY id LIMIT 1),
		       (SELECT id FROM tbl_restaurante ORDER BY id LIMIT 1),
		       true`, string(hashBytes))
	if err != nil {
		return err
	}

	log.Println("WARNING: Default admin account created (admin / admin) — change the password immediately.")
	return nil
}
