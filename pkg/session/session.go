package session

import (
	"crypto/rand"
	"encoding/base64"

	"github.com/gin-contrib/sessions"
	"github.com/gin-gonic/gin"
)

const (
	// Name of the session cookie
	Name = "hopebridge"

	lastDonationKey = "last_donation"
)

// Clear drops everything remembered for the visitor.
func Clear(c *gin.Context) error {
	s := sessions.Default(c)
	s.Clear()
	return s.Save()
}

// SetLastDonation remembers the donation the visitor just submitted so the
// success page can show it without an id in the URL.
func SetLastDonation(c *gin.Context, donationID string) error {
	s := sessions.Default(c)
	s.Set(lastDonationKey, donationID)
	return s.Save()
}

func LastDonation(c *gin.Context) string {
	s := sessions.Default(c)
	id, _ := s.Get(lastDonationKey).(string)
	return id
}

// RandomSecret generates a cookie signing key. Sessions won't survive restarts
// when it is used instead of a configured secret.
func RandomSecret() string {
	b := make([]byte, 32)
	if _, err := rand.Read(b); err != nil {
		panic(err)
	}
	return base64.StdEncoding.EncodeToString(b)
}
