// Package sqlite persists address book snapshots in a SQLite database.
package sqlite

// Schema DDL. Position keeps the insertion order of the store; id is the
// contact id and is unique on its own.
const (
	createContacts = `CREATE TABLE IF NOT EXISTS contacts (
    position INTEGER PRIMARY KEY,
    id INTEGER NOT NULL UNIQUE,
    name TEXT NOT NULL,
    phone TEXT NOT NULL,
    email TEXT NOT NULL
);`

	createMeta = `CREATE TABLE IF NOT EXISTS meta (
    key TEXT PRIMARY KEY,
    value INTEGER NOT NULL
);`
)

// schemaStatements lists the DDL run when a database is opened.
var schemaStatements = []string{
	createContacts,
	createMeta,
}

// metaNextID is the meta key holding the id counter.
const metaNextID = "next_id"

// DBFileName is the database file created inside the data directory.
const DBFileName = "addressbook.db"
