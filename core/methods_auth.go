package core

import (
	"time"

	"github.com/bhamail/bhamail/crypto"
	"github.com/bhamail/bhamail/db"
)

// issueTokenPair issues the access/refresh token pair for a user and
// persists a session row holding the refresh token's digest. Used by
// signup and login; refresh never calls it because refresh does not
// create sessions.
func (a *App) issueTokenPair(user *db.User) (accessToken, refreshToken string, expiresIn int, err error) {
	cfg := a.Config()

	accessToken, _, err = crypto.NewAccessToken(user.ID, user.Email, cfg.Jwt.AuthSecret, cfg.Jwt.AuthTokenDuration.Duration)
	if err != nil {
		return "", "", 0, err
	}

	var refreshExpiry time.Time
	refreshToken, refreshExpiry, err = crypto.NewRefreshToken(user.ID, cfg.Jwt.RefreshSecret, cfg.Jwt.RefreshTokenDuration.Duration)
	if err != nil {
		return "", "", 0, err
	}

	_, err = a.DbAuth().CreateSession(db.Session{
		UserID:    user.ID,
		TokenHash: crypto.TokenDigest(refreshToken),
		ExpiresAt: refreshExpiry,
	})
	if err != nil {
		return "", "", 0, err
	}

	return accessToken, refreshToken, int(cfg.Jwt.AuthTokenDuration.Duration.Seconds()), nil
}

// findSessionByToken scans a user's unexpired sessions for the one whose
// stored digest matches the presented refresh token. The store indexes
// sessions by user, not by hash, so the scan iterates with a
// constant-time comparison per row.
func (a *App) findSessionByToken(userID, refreshToken string) (*db.Session, error) {
	sessions, err := a.DbAuth().GetSessionsByUser(userID)
	if err != nil {
		return nil, err
	}

	digest := crypto.TokenDigest(refreshToken)
	for _, s := range sessions {
		if crypto.DigestEqual(digest, s.TokenHash) {
			return s, nil
		}
	}
	return nil, nil
}
