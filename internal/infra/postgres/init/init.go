package infra_pg_init

import (
	"fmt"
	"log"

	"github.com/jmoiron/sqlx"
	_ "github.com/lib/pq"

	"github.com/planningpoko/core/internal/config"
)

func MustEstablishConn(cfg config.Postgres) *sqlx.DB {
	dsn := fmt.Sprintf("host=%s port=%s user=%s password=%s dbname=%s sslmode=%s",
		cfg.Host,
		cfg.Port,
		cfg.User,
		cfg.Password,
		cfg.DBName,
		cfg.SSLMode,
	)
	db, err := sqlx.Connect("postgres", dsn)
	if err != nil {
		log.Fatal(err)
	}

	return db
}

const schema = `
CREATE TABLE IF NOT EXISTS rooms (
	id            UUID PRIMARY KEY,
	code          TEXT UNIQUE NOT NULL,
	name          TEXT NOT NULL,
	host_id       UUID NOT NULL,
	active_voting BOOLEAN NOT NULL DEFAULT FALSE,
	created_at    TIMESTAMPTZ NOT NULL DEFAULT NOW()
);

CREATE TABLE IF NOT EXISTS users (
	id         UUID PRIMARY KEY,
	name       TEXT NOT NULL,
	room_id    UUID NOT NULL REFERENCES rooms (id) ON DELETE CASCADE,
	is_host    BOOLEAN NOT NULL DEFAULT FALSE,
	role       TEXT NOT NULL DEFAULT 'player',
	created_at TIMESTAMPTZ NOT NULL DEFAULT NOW()
);

CREATE TABLE IF NOT EXISTS rounds (
	id             UUID PRIMARY KEY,
	room_id        UUID NOT NULL REFERENCES rooms (id) ON DELETE CASCADE,
	title          TEXT NOT NULL,
	subtitle       TEXT NOT NULL DEFAULT '',
	revealed       BOOLEAN NOT NULL DEFAULT FALSE,
	final_estimate TEXT,
	created_at     TIMESTAMPTZ NOT NULL DEFAULT NOW()
);

CREATE TABLE IF NOT EXISTS votes (
	id         UUID PRIMARY KEY,
	round_id   UUID NOT NULL REFERENCES rounds (id) ON DELETE CASCADE,
	user_id    UUID NOT NULL REFERENCES users (id) ON DELETE CASCADE,
	value      TEXT,
	created_at TIMESTAMPTZ NOT NULL DEFAULT NOW(),
	UNIQUE (round_id, user_id)
);
`

// MustMigrate creates the tables on startup. One vote per (round, user)
// and the unique room code are enforced by the schema, not by
// application code.
func MustMigrate(db *sqlx.DB) {
	if _, err := db.Exec(schema); err != nil {
		log.Fatal(err)
	}
}
