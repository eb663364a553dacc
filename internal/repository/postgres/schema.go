package postgres

import (
	"context"

	"github.com/jmoiron/sqlx"
)

// EnsureSchema creates the three dashboard tables if they do not exist yet.
// Deleting a user cascades to their reports, and deleting a report cascades
// to its devices.
func EnsureSchema(ctx context.Context, db *sqlx.DB) error {
	const schema = `
        CREATE TABLE IF NOT EXISTS users (
            user_id            BIGSERIAL PRIMARY KEY,
            email              VARCHAR(100) UNIQUE NOT NULL,
            hashed_password    VARCHAR(255) NOT NULL,
            reset_token        VARCHAR(255),
            reset_token_expiry BIGINT
        );

        CREATE TABLE IF NOT EXISTS scan_reports (
            report_id         BIGSERIAL PRIMARY KEY,
            title             VARCHAR(100) NOT NULL,
            scanned_at        TIMESTAMPTZ NOT NULL,
            targets           TEXT NOT NULL,
            exclusions        TEXT,
            detection_options TEXT,
            owner_id          BIGINT NOT NULL
                REFERENCES users (user_id) ON DELETE CASCADE
        );

        CREATE TABLE IF NOT EXISTS devices (
            device_id         BIGSERIAL PRIMARY KEY,
            device_name       VARCHAR(100),
            ip_address        VARCHAR(45),
            services          TEXT,
            protocol_warnings TEXT,
            notes             TEXT,
            remediation_tips  TEXT,
            associated_report BIGINT NOT NULL
                REFERENCES scan_reports (report_id) ON DELETE CASCADE
        );

        CREATE TABLE IF NOT EXISTS sessions (
            token      VARCHAR(64) PRIMARY KEY,
            user_id    BIGINT NOT NULL
                REFERENCES users (user_id) ON DELETE CASCADE,
            email      VARCHAR(100) NOT NULL,
            created_at TIMESTAMPTZ NOT NULL DEFAULT NOW(),
            expires_at TIMESTAMPTZ NOT NULL
        );
    `
	_, err := db.ExecContext(ctx, schema)
	return err
}
