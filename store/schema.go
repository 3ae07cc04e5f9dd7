package store

// Schema is the table layout shared by postgres and sqlite3. Column
// types are kept to the common subset so tests can run on an
// in-memory sqlite database.
const Schema = `
CREATE TABLE IF NOT EXISTS subject (
	id          TEXT PRIMARY KEY,
	description TEXT NOT NULL DEFAULT ''
);

CREATE TABLE IF NOT EXISTS room (
	name     TEXT PRIMARY KEY,
	capacity INTEGER NOT NULL
);

CREATE TABLE IF NOT EXISTS faculty (
	number     INTEGER PRIMARY KEY,
	first_name TEXT NOT NULL,
	last_name  TEXT NOT NULL
);

CREATE TABLE IF NOT EXISTS student (
	number     INTEGER PRIMARY KEY,
	first_name TEXT NOT NULL,
	last_name  TEXT NOT NULL
);

CREATE TABLE IF NOT EXISTS section (
	id         TEXT PRIMARY KEY,
	subject_id TEXT    NOT NULL REFERENCES subject (id),
	days       TEXT    NOT NULL,
	start_time TEXT    NOT NULL,
	end_time   TEXT    NOT NULL,
	room       TEXT    NOT NULL REFERENCES room (name),
	instructor INTEGER NOT NULL REFERENCES faculty (number),
	capacity   INTEGER NOT NULL,
	enrolled   INTEGER NOT NULL DEFAULT 0,
	version    INTEGER NOT NULL DEFAULT 0
);

CREATE TABLE IF NOT EXISTS enrollment (
	student_number INTEGER NOT NULL REFERENCES student (number),
	section_id     TEXT    NOT NULL REFERENCES section (id),
	PRIMARY KEY (student_number, section_id)
);

CREATE TABLE IF NOT EXISTS subject_taken (
	student_number INTEGER NOT NULL REFERENCES student (number),
	subject_id     TEXT    NOT NULL REFERENCES subject (id),
	PRIMARY KEY (student_number, subject_id)
);
`

// UserSchema holds the account table. It is separate because the
// auto-increment id column differs between drivers.
func UserSchema(driver string) string {
	id, hash := "SERIAL PRIMARY KEY", "BYTEA"
	if driver == "sqlite3" {
		id, hash = "INTEGER PRIMARY KEY AUTOINCREMENT", "BLOB"
	}
	return `
CREATE TABLE IF NOT EXISTS users (
	id             ` + id + `,
	name           TEXT NOT NULL UNIQUE,
	email          TEXT NOT NULL UNIQUE,
	is_admin       BOOLEAN NOT NULL DEFAULT FALSE,
	student_number INTEGER,
	created_at     TIMESTAMP NOT NULL DEFAULT CURRENT_TIMESTAMP,
	hash           ` + hash + `
);`
}
