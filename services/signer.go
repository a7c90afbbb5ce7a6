// services/signer.go
package services

import (
	"crypto/hmac"
	"crypto/rand"
	"crypto/sha256"
	"encoding/hex"
	"fmt"
	"time"

	"naver-booking-notifier/models"
)

// SignRequest builds the Solapi HMAC-SHA256 authorization header:
//
//	HMAC-SHA256 apiKey=..., date=..., salt=..., signature=...
//
// Date and salt are regenerated on every call; credentials are single-use
// and time-scoped, so each step of the group workflow signs again.
func SignRequest(apiKey, apiSecret string) (string, error) {
	if apiKey == "" || apiSecret == "" {
		return "", &models.ConfigError{Missing: []string{"SOLAPI_API_KEY", "SOLAPI_API_SECRET"}}
	}

	date := time.Now().UTC().Format("2006-01-02T15:04:05.000000") + "Z"

	salt := make([]byte, 32)
	if _, err := rand.Read(salt); err != nil {
		return "", err
	}
	saltHex := hex.EncodeToString(salt)

	mac := hmac.New(sha256.New, []byte(apiSecret))
	mac.Write([]byte(date + saltHex))
	signature := hex.EncodeToString(mac.Sum(nil))

	return fmt.Sprintf("HMAC-SHA256 apiKey=%s, date=%s, salt=%s, signature=%s",
		apiKey, date, saltHex, signature), nil
}
