package storage

import (
	"database/sql"
	"fmt"
	"time"

	"github.com/bbtrack/bbtrack/internal/model"
)

// Writes take canonical records and serialize timestamps as RFC3339. Reads
// hand back raw rows; coercion and defaulting belong to the stats package.

// ---- users ----

// InsertUser inserts a user record. Uses INSERT OR REPLACE for idempotency.
func (db *DB) InsertUser(u model.User) error {
	_, err := db.conn.Exec(`
		INSERT OR REPLACE INTO users(id, username, created_at)
		VALUES (?, ?, ?)`,
		u.ID, u.Username, u.CreatedAt.Format(time.RFC3339),
	)
	return err
}

// GetUser returns the user with the given id, or nil when absent.
func (db *DB) GetUser(id string) (*model.User, error) {
	var u model.User
	var createdAt string
	err := db.conn.QueryRow(`
		SELECT id, username, created_at FROM users WHERE id = ?`, id).
		Scan(&u.ID, &u.Username, &createdAt)
	if err == sql.ErrNoRows {
		return nil, nil
	}
	if err != nil {
		return nil, err
	}
	u.CreatedAt, _ = time.Parse(time.RFC3339, createdAt)
	return &u, nil
}

// FindUserByName returns the first user with the given username, or nil.
func (db *DB) FindUserByName(username string) (*model.User, error) {
	var u model.User
	var createdAt string
	err := db.conn.QueryRow(`
		SELECT id, username, created_at FROM users
		WHERE username = ? ORDER BY created_at LIMIT 1`, username).
		Scan(&u.ID, &u.Username, &createdAt)
	if err == sql.ErrNoRows {
		return nil, nil
	}
	if err != nil {
		return nil, err
	}
	u.CreatedAt, _ = time.Parse(time.RFC3339, createdAt)
	return &u, nil
}

// ListUsers returns all users ordered by creation time.
func (db *DB) ListUsers() ([]model.User, error) {
	rows, err := db.conn.Query(`
		SELECT id, username, created_at FROM users ORDER BY created_at`)
	if err != nil {
		return nil, err
	}
	defer rows.Close()

	var out []model.User
	for rows.Next() {
		var u model.User
		var createdAt string
		if err := rows.Scan(&u.ID, &u.Username, &createdAt); err != nil {
			return nil, err
		}
		u.CreatedAt, _ = time.Parse(time.RFC3339, createdAt)
		out = append(out, u)
	}
	return out, rows.Err()
}

// DeleteUser removes a user; sessions and buys cascade.
func (db *DB) DeleteUser(id string) error {
	_, err := db.conn.Exec(`DELETE FROM users WHERE id = ?`, id)
	return err
}

// ---- settings ----

// GetSetting returns the value stored under key, or "" when unset.
func (db *DB) GetSetting(key string) (string, error) {
	var v string
	err := db.conn.QueryRow(`SELECT value FROM settings WHERE key = ?`, key).Scan(&v)
	if err == sql.ErrNoRows {
		return "", nil
	}
	return v, err
}

// SetSetting stores value under key, replacing any previous value.
func (db *DB) SetSetting(key, value string) error {
	_, err := db.conn.Exec(`
		INSERT OR REPLACE INTO settings(key, value) VALUES (?, ?)`, key, value)
	return err
}

// DeleteSetting removes a key; missing keys are not an error.
func (db *DB) DeleteSetting(key string) error {
	_, err := db.conn.Exec(`DELETE FROM settings WHERE key = ?`, key)
	return err
}

// ---- sessions ----

// InsertSession inserts a session record. Uses INSERT OR REPLACE for idempotency.
func (db *DB) InsertSession(s model.Session) error {
	_, err := db.conn.Exec(`
		INSERT OR REPLACE INTO sessions(id, user_id, name, created_at)
		VALUES (?, ?, ?, ?)`,
		s.ID, s.UserID, s.Name, s.CreatedAt.Format(time.RFC3339),
	)
	return err
}

// GetSession returns the session with the given id, or nil when absent.
func (db *DB) GetSession(id string) (*model.RawSession, error) {
	var s model.RawSession
	err := db.conn.QueryRow(`
		SELECT id, user_id, name, created_at FROM sessions WHERE id = ?`, id).
		Scan(&s.ID, &s.UserID, &s.Name, &s.CreatedAt)
	if err == sql.ErrNoRows {
		return nil, nil
	}
	if err != nil {
		return nil, err
	}
	return &s, nil
}

// GetSessionByPrefix finds the first of the user's sessions whose id starts
// with the given prefix.
func (db *DB) GetSessionByPrefix(userID, prefix string) (*model.RawSession, error) {
	var s model.RawSession
	err := db.conn.QueryRow(`
		SELECT id, user_id, name, created_at FROM sessions
		WHERE user_id = ? AND id LIKE ? LIMIT 1`, userID, prefix+"%").
		Scan(&s.ID, &s.UserID, &s.Name, &s.CreatedAt)
	if err == sql.ErrNoRows {
		return nil, nil
	}
	if err != nil {
		return nil, err
	}
	return &s, nil
}

// ListSessions returns a user's sessions newest first.
func (db *DB) ListSessions(userID string) ([]model.RawSession, error) {
	rows, err := db.conn.Query(`
		SELECT id, user_id, name, created_at FROM sessions
		WHERE user_id = ? ORDER BY created_at DESC`, userID)
	if err != nil {
		return nil, err
	}
	defer rows.Close()

	var out []model.RawSession
	for rows.Next() {
		var s model.RawSession
		if err := rows.Scan(&s.ID, &s.UserID, &s.Name, &s.CreatedAt); err != nil {
			return nil, err
		}
		out = append(out, s)
	}
	return out, rows.Err()
}

// CountSessions returns how many sessions the user has.
func (db *DB) CountSessions(userID string) (int, error) {
	var n int
	err := db.conn.QueryRow(`
		SELECT COUNT(1) FROM sessions WHERE user_id = ?`, userID).Scan(&n)
	return n, err
}

// RenameSession updates a session's display name.
func (db *DB) RenameSession(id, name string) error {
	_, err := db.conn.Exec(`UPDATE sessions SET name = ? WHERE id = ?`, name, id)
	return err
}

// DeleteSession removes a session; its buys cascade.
func (db *DB) DeleteSession(id string) error {
	_, err := db.conn.Exec(`DELETE FROM sessions WHERE id = ?`, id)
	return err
}

// ---- bonus buys ----

// InsertBuy inserts a buy record. Uses INSERT OR REPLACE, so it doubles as
// the update path when editing a buy in place.
func (db *DB) InsertBuy(b model.Buy) error {
	_, err := db.conn.Exec(`
		INSERT OR REPLACE INTO bonus_buys(id, session_id, user_id, game, cost, win, big_win, created_at)
		VALUES (?, ?, ?, ?, ?, ?, ?, ?)`,
		b.ID, b.SessionID, b.UserID, b.Game, b.Cost, b.Win,
		boolInt(b.BigWin), b.CreatedAt.Format(time.RFC3339),
	)
	return err
}

// InsertBuys bulk-inserts buys in a transaction. Used by import.
func (db *DB) InsertBuys(buys []model.Buy) error {
	if len(buys) == 0 {
		return nil
	}
	tx, err := db.conn.Begin()
	if err != nil {
		return err
	}
	defer tx.Rollback()

	stmt, err := tx.Prepare(`
		INSERT OR REPLACE INTO bonus_buys(id, session_id, user_id, game, cost, win, big_win, created_at)
		VALUES (?,?,?,?,?,?,?,?)`)
	if err != nil {
		return err
	}
	defer stmt.Close()

	for _, b := range buys {
		_, err = stmt.Exec(
			b.ID, b.SessionID, b.UserID, b.Game, b.Cost, b.Win,
			boolInt(b.BigWin), b.CreatedAt.Format(time.RFC3339),
		)
		if err != nil {
			return fmt.Errorf("insert bonus_buys %s: %w", b.ID, err)
		}
	}
	return tx.Commit()
}

// GetBuyByPrefix finds the first of the user's buys whose id starts with the
// given prefix.
func (db *DB) GetBuyByPrefix(userID, prefix string) (*model.RawBuy, error) {
	var b model.RawBuy
	var bigWin int
	err := db.conn.QueryRow(`
		SELECT id, session_id, user_id, game, cost, win, big_win, created_at
		FROM bonus_buys WHERE user_id = ? AND id LIKE ? LIMIT 1`, userID, prefix+"%").
		Scan(&b.ID, &b.SessionID, &b.UserID, &b.Game, &b.Cost, &b.Win, &bigWin, &b.CreatedAt)
	if err == sql.ErrNoRows {
		return nil, nil
	}
	if err != nil {
		return nil, err
	}
	b.BigWin = bigWin != 0
	return &b, nil
}

// DeleteBuy removes a single buy.
func (db *DB) DeleteBuy(id string) error {
	_, err := db.conn.Exec(`DELETE FROM bonus_buys WHERE id = ?`, id)
	return err
}

// ListSessionBuys returns a session's buys oldest first.
func (db *DB) ListSessionBuys(sessionID string) ([]model.RawBuy, error) {
	return db.listBuys(`
		SELECT id, session_id, user_id, game, cost, win, big_win, created_at
		FROM bonus_buys WHERE session_id = ? ORDER BY created_at`, sessionID)
}

// ListUserBuys returns every buy a user has logged, oldest first.
func (db *DB) ListUserBuys(userID string) ([]model.RawBuy, error) {
	return db.listBuys(`
		SELECT id, session_id, user_id, game, cost, win, big_win, created_at
		FROM bonus_buys WHERE user_id = ? ORDER BY created_at`, userID)
}

func (db *DB) listBuys(query string, args ...any) ([]model.RawBuy, error) {
	rows, err := db.conn.Query(query, args...)
	if err != nil {
		return nil, err
	}
	defer rows.Close()

	var out []model.RawBuy
	for rows.Next() {
		var b model.RawBuy
		var bigWin int
		if err := rows.Scan(&b.ID, &b.SessionID, &b.UserID, &b.Game,
			&b.Cost, &b.Win, &bigWin, &b.CreatedAt); err != nil {
			return nil, err
		}
		b.BigWin = bigWin != 0
		out = append(out, b)
	}
	return out, rows.Err()
}

// ListAllBuys returns every stored buy joined with its owner's username,
// oldest first. This is the leaderboard's input.
func (db *DB) ListAllBuys() ([]model.RawBuy, error) {
	rows, err := db.conn.Query(`
		SELECT b.id, b.session_id, b.user_id, COALESCE(u.username, ''),
		       b.game, b.cost, b.win, b.big_win, b.created_at
		FROM bonus_buys b
		LEFT JOIN users u ON u.id = b.user_id
		ORDER BY b.created_at`)
	if err != nil {
		return nil, err
	}
	defer rows.Close()

	var out []model.RawBuy
	for rows.Next() {
		var b model.RawBuy
		var bigWin int
		if err := rows.Scan(&b.ID, &b.SessionID, &b.UserID, &b.Username,
			&b.Game, &b.Cost, &b.Win, &bigWin, &b.CreatedAt); err != nil {
			return nil, err
		}
		b.BigWin = bigWin != 0
		out = append(out, b)
	}
	return out, rows.Err()
}
