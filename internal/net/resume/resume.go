// Package resume issues and verifies the short-lived resume tokens that
// bind a connection to an existing Player record (§6 "Reconnect
// tokens"). It is a standalone leaf package so both the HTTP surface and
// the per-session websocket handler can depend on it without a cycle.
package resume

import (
	"fmt"
	"time"

	"github.com/golang-jwt/jwt/v5"
)

// Claims binds a resume token to exactly the match/session/team triple
// it was issued for. A token re-attaches a connection only to a Player
// record still present in the match; ws.Session removes a session's
// Player (Match.Leave) as soon as its connection closes, so a token
// presented after that finds no record and the client is joined as a
// new player. No account data rides along; persistent player identity stays a
// declared non-goal.
type Claims struct {
	MatchID   string `json:"matchId"`
	SessionID string `json:"sessionId"`
	Team      string `json:"team"`
	jwt.RegisteredClaims
}

// Issuer issues and verifies short-lived HS256 resume tokens, grounded
// in bormisov1-spaceship-online-game's auth.go, which uses the same
// golang-jwt/jwt/v5 HMAC pattern for its session tokens.
type Issuer struct {
	secret []byte
	ttl    time.Duration
}

// NewIssuer constructs an issuer bound to secret/ttl.
func NewIssuer(secret string, ttl time.Duration) *Issuer {
	return &Issuer{secret: []byte(secret), ttl: ttl}
}

// Issue mints a resume token for the given match/session/team, valid
// for the issuer's configured TTL.
func (i *Issuer) Issue(matchID, sessionID, team string) (string, error) {
	now := time.Now()
	claims := Claims{
		MatchID:   matchID,
		SessionID: sessionID,
		Team:      team,
		RegisteredClaims: jwt.RegisteredClaims{
			IssuedAt:  jwt.NewNumericDate(now),
			ExpiresAt: jwt.NewNumericDate(now.Add(i.ttl)),
		},
	}
	token := jwt.NewWithClaims(jwt.SigningMethodHS256, claims)
	return token.SignedString(i.secret)
}

// Verify parses and validates a resume token, returning its claims.
func (i *Issuer) Verify(raw string) (Claims, error) {
	var claims Claims
	token, err := jwt.ParseWithClaims(raw, &claims, func(t *jwt.Token) (any, error) {
		if _, ok := t.Method.(*jwt.SigningMethodHMAC); !ok {
			return nil, fmt.Errorf("unexpected signing method %q", t.Method.Alg())
		}
		return i.secret, nil
	})
	if err != nil {
		return Claims{}, err
	}
	if !token.Valid {
		return Claims{}, fmt.Errorf("resume token invalid")
	}
	return claims, nil
}
