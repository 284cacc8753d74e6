package store

// SQL statements for the users table. Session queries are built dynamically
// with squirrel in repository_session.go; the user queries are static enough
// to keep as constants.
const (
	createUser = `INSERT INTO users (email, name, password_hash, google_id, is_verified)
    VALUES ($1, $2, $3, $4, $5)
    RETURNING user_id, email, name, password_hash, google_id, is_verified, created_at, updated_at;`

	findUserByEmail = `SELECT user_id, email, name, password_hash, google_id, is_verified, created_at, updated_at
    FROM users
    WHERE email = $1;`

	findUserByID = `SELECT user_id, email, name, password_hash, google_id, is_verified, created_at, updated_at
    FROM users
    WHERE user_id = $1;`

	findUserByGoogleID = `SELECT user_id, email, name, password_hash, google_id, is_verified, created_at, updated_at
    FROM users
    WHERE google_id = $1;`

	setUserVerified = `UPDATE users
    SET is_verified = TRUE, updated_at = NOW()
    WHERE user_id = $1;`

	updateUserPassword = `UPDATE users
    SET password_hash = $2, updated_at = NOW()
    WHERE user_id = $1;`

	linkUserGoogleID = `UPDATE users
    SET google_id = $2,
        name = COALESCE(NULLIF(name, ''), $3),
        is_verified = TRUE,
        updated_at = NOW()
    WHERE user_id = $1
    RETURNING user_id, email, name, password_hash, google_id, is_verified, created_at, updated_at;`
)
