package container

// schemaStatements create the fixed container schema. Every statement is
// idempotent so the writer can target an existing file.
var schemaStatements = []string{
	`CREATE TABLE IF NOT EXISTS sessions (
		dc_id integer primary key,
		server_address text,
		port integer,
		auth_key blob,
		takeout_id integer
	)`,
	`CREATE TABLE IF NOT EXISTS entities (
		id integer primary key,
		hash integer not null,
		username text,
		phone integer,
		name text,
		date integer
	)`,
	`CREATE TABLE IF NOT EXISTS version (
		version integer primary key
	)`,
	`CREATE TABLE IF NOT EXISTS sent_files (
		md5_digest blob,
		file_size integer,
		type integer,
		id integer,
		hash integer,
		primary key(md5_digest, file_size, type)
	)`,
	`CREATE TABLE IF NOT EXISTS update_state (
		id integer primary key,
		pts integer,
		qts integer,
		date integer,
		seq integer
	)`,
}

const (
	insertSessionSQL = `INSERT INTO sessions (dc_id, server_address, port, auth_key) VALUES (?, ?, ?, ?)`
	insertVersionSQL = `INSERT INTO version (version) VALUES (?)`
)

// Table names recognised by the reader, in lookup order.
const (
	tableSessions = "sessions"
	tableEntities = "entities"
	tablePeers    = "peers"
)
