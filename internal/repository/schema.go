package repository

// Dialect selects SQL differences between the supported databases.
type Dialect string

const (
	DialectSQLite   Dialect = "sqlite"
	DialectPostgres Dialect = "postgres"
	DialectMySQL    Dialect = "mysql"
)

// lockSuffix is appended to the user row read inside ledger transactions.
// SQLite has a single writer connection, so it needs no row lock.
func (d Dialect) lockSuffix() string {
	if d == DialectSQLite {
		return ""
	}
	return " FOR UPDATE"
}

func (d Dialect) supportsReturning() bool {
	return d != DialectMySQL
}

// schema returns the idempotent DDL statements for d, one per element.
func (d Dialect) schema() []string {
	switch d {
	case DialectPostgres:
		return postgresSchema
	case DialectMySQL:
		return mysqlSchema
	default:
		return sqliteSchema
	}
}

var sqliteSchema = []string{
	`CREATE TABLE IF NOT EXISTS users (
		id INTEGER PRIMARY KEY AUTOINCREMENT,
		email TEXT NOT NULL UNIQUE,
		username TEXT NOT NULL UNIQUE,
		password_hash TEXT NOT NULL,
		balance INTEGER NOT NULL CHECK (balance >= 0),
		created_at DATETIME NOT NULL
	)`,
	`CREATE TABLE IF NOT EXISTS transactions (
		id INTEGER PRIMARY KEY AUTOINCREMENT,
		user_id INTEGER NOT NULL,
		cosmetic_id TEXT NOT NULL,
		cosmetic_name TEXT NOT NULL,
		type TEXT NOT NULL,
		amount INTEGER NOT NULL,
		created_at DATETIME NOT NULL,
		FOREIGN KEY (user_id) REFERENCES users(id) ON DELETE CASCADE
	)`,
	`CREATE INDEX IF NOT EXISTS idx_transactions_user ON transactions(user_id, created_at)`,
	`CREATE TABLE IF NOT EXISTS user_cosmetics (
		id INTEGER PRIMARY KEY AUTOINCREMENT,
		user_id INTEGER NOT NULL,
		cosmetic_id TEXT NOT NULL,
		acquired_at DATETIME NOT NULL,
		purchase_price INTEGER NOT NULL,
		UNIQUE (user_id, cosmetic_id),
		FOREIGN KEY (user_id) REFERENCES users(id) ON DELETE CASCADE
	)`,
}

var postgresSchema = []string{
	`CREATE TABLE IF NOT EXISTS users (
		id BIGSERIAL PRIMARY KEY,
		email TEXT NOT NULL UNIQUE,
		username TEXT NOT NULL UNIQUE,
		password_hash TEXT NOT NULL,
		balance BIGINT NOT NULL CHECK (balance >= 0),
		created_at TIMESTAMPTZ NOT NULL
	)`,
	`CREATE TABLE IF NOT EXISTS transactions (
		id BIGSERIAL PRIMARY KEY,
		user_id BIGINT NOT NULL REFERENCES users(id) ON DELETE CASCADE,
		cosmetic_id TEXT NOT NULL,
		cosmetic_name TEXT NOT NULL,
		type TEXT NOT NULL,
		amount BIGINT NOT NULL,
		created_at TIMESTAMPTZ NOT NULL
	)`,
	`CREATE INDEX IF NOT EXISTS idx_transactions_user ON transactions(user_id, created_at)`,
	`CREATE TABLE IF NOT EXISTS user_cosmetics (
		id BIGSERIAL PRIMARY KEY,
		user_id BIGINT NOT NULL REFERENCES users(id) ON DELETE CASCADE,
		cosmetic_id TEXT NOT NULL,
		acquired_at TIMESTAMPTZ NOT NULL,
		purchase_price BIGINT NOT NULL,
		UNIQUE (user_id, cosmetic_id)
	)`,
}

var mysqlSchema = []string{
	`CREATE TABLE IF NOT EXISTS users (
		id BIGINT AUTO_INCREMENT PRIMARY KEY,
		email VARCHAR(255) NOT NULL UNIQUE,
		username VARCHAR(255) NOT NULL UNIQUE,
		password_hash VARCHAR(255) NOT NULL,
		balance BIGINT NOT NULL CHECK (balance >= 0),
		created_at DATETIME(6) NOT NULL
	) ENGINE=InnoDB`,
	`CREATE TABLE IF NOT EXISTS transactions (
		id BIGINT AUTO_INCREMENT PRIMARY KEY,
		user_id BIGINT NOT NULL,
		cosmetic_id VARCHAR(255) NOT NULL,
		cosmetic_name VARCHAR(255) NOT NULL,
		type VARCHAR(16) NOT NULL,
		amount BIGINT NOT NULL,
		created_at DATETIME(6) NOT NULL,
		INDEX idx_transactions_user (user_id, created_at),
		FOREIGN KEY (user_id) REFERENCES users(id) ON DELETE CASCADE
	) ENGINE=InnoDB`,
	`CREATE TABLE IF NOT EXISTS user_cosmetics (
		id BIGINT AUTO_INCREMENT PRIMARY KEY,
		user_id BIGINT NOT NULL,
		cosmetic_id VARCHAR(255) NOT NULL,
		acquired_at DATETIME(6) NOT NULL,
		purchase_price BIGINT NOT NULL,
		UNIQUE KEY uq_user_cosmetic (user_id, cosmetic_id),
		FOREIGN KEY (user_id) REFERENCES users(id) ON DELETE CASCADE
	) ENGINE=InnoDB`,
}
