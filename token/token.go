package token

import (
	"crypto/hmac"
	"crypto/sha256"
	"encoding/hex"
	"encoding/json"
	"errors"
	"fmt"
	"strings"
	"time"

	"github.com/google/uuid"
)

// ValidityWindow is how long an issued session token stays valid.
const ValidityWindow = 24 * time.Hour

// ErrInvalidToken is returned for every verification failure. Callers get
// no detail about whether the token was malformed, tampered or expired.
var ErrInvalidToken = errors.New("invalid token")

type Payload struct {
	UserID      string `json:"user_id"`
	DisplayName string `json:"display_name"`
	Timestamp   int64  `json:"timestamp"`
	Nonce       string `json:"nonce"`
}

type Issuer struct {
	secret []byte
	now    func() time.Time
}

func NewIssuer(secret string) *Issuer {
	return &Issuer{secret: []byte(secret), now: time.Now}
}

// Issue mints an opaque session token: a canonical JSON payload joined to
// its HMAC-SHA256 signature with a "|" separator.
func (i *Issuer) Issue(userID, displayName string) (string, error) {
	payload := Payload{
		UserID:      userID,
		DisplayName: displayName,
		Timestamp:   i.now().Unix(),
		Nonce:       uuid.NewString(),
	}

	canonical, err := canonicalize(payload)
	if err != nil {
		return "", fmt.Errorf("canonicalize token payload: %w", err)
	}

	return string(canonical) + "|" + i.sign(canonical), nil
}

// Verify checks the signature with a constant-time comparison, parses the
// payload and enforces the validity window.
func (i *Issuer) Verify(tok string) (*Payload, error) {
	sep := strings.LastIndex(tok, "|")
	if sep < 0 {
		return nil, ErrInvalidToken
	}

	body, sig := tok[:sep], tok[sep+1:]
	expected := i.sign([]byte(body))
	if !hmac.Equal([]byte(sig), []byte(expected)) {
		return nil, ErrInvalidToken
	}

	var payload Payload
	if err := json.Unmarshal([]byte(body), &payload); err != nil {
		return nil, ErrInvalidToken
	}

	if i.now().Unix()-payload.Timestamp > int64(ValidityWindow.Seconds()) {
		return nil, ErrInvalidToken
	}

	return &payload, nil
}

func (i *Issuer) sign(data []byte) string {
	mac := hmac.New(sha256.New, i.secret)
	mac.Write(data)
	return hex.EncodeToString(mac.Sum(nil))
}

// canonicalize produces a byte string with stable key ordering. Marshalling
// through a map makes encoding/json sort the keys.
func canonicalize(p Payload) ([]byte, error) {
	return json.Marshal(map[string]any{
		"user_id":      p.UserID,
		"display_name": p.DisplayName,
		"timestamp":    p.Timestamp,
		"nonce":        p.Nonce,
	})
}
