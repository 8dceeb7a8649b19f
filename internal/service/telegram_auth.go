package service

import (
	"crypto/hmac"
	"crypto/sha256"
	"encoding/hex"
	"encoding/json"
	"net/url"
	"sort"
	"strconv"
	"strings"
	"time"

	"tapcoin_webapp/internal/domain"
)

// initData older than this is rejected to mitigate replay attacks.
const initDataMaxAge = 24 * time.Hour

// ValidateTelegramInitData verifies Telegram WebApp init_data against the bot
// token using the WebAppData HMAC scheme and checks auth_date freshness.
// Returns the parsed values on success.
func ValidateTelegramInitData(initData, botToken string) (url.Values, bool) {
	values, err := url.ParseQuery(initData)
	if err != nil {
		return nil, false
	}

	hash := values.Get("hash")
	if hash == "" {
		return nil, false
	}
	values.Del("hash")

	var dataCheck []string
	for k, v := range values {
		dataCheck = append(dataCheck, k+"="+strings.Join(v, ""))
	}

	sort.Strings(dataCheck)
	dataString := strings.Join(dataCheck, "\n")

	// secret = HMAC_SHA256(key="WebAppData", message=botToken)
	sk := hmac.New(sha256.New, []byte("WebAppData"))
	sk.Write([]byte(botToken))
	secret := sk.Sum(nil)

	h := hmac.New(sha256.New, secret)
	h.Write([]byte(dataString))

	calculated := h.Sum(nil)
	provided, err := hex.DecodeString(hash)
	if err != nil {
		return nil, false
	}

	if !hmac.Equal(calculated, provided) {
		return nil, false
	}

	authDateStr := values.Get("auth_date")
	if authDateStr == "" {
		return nil, false
	}
	authDate, err := strconv.ParseInt(authDateStr, 10, 64)
	if err != nil {
		return nil, false
	}

	now := time.Now().Unix()
	// allow small clock skew, reject anything older than 24 hours
	if now-authDate > int64(initDataMaxAge.Seconds()) || authDate-now > 300 {
		return nil, false
	}

	return values, true
}

// VerifyIdentity validates init data and extracts the caller's Telegram
// identity. Pure verification, no side effects.
func VerifyIdentity(initData, botToken string) (*domain.TelegramUser, bool) {
	values, ok := ValidateTelegramInitData(initData, botToken)
	if !ok {
		return nil, false
	}

	userRaw := values.Get("user")
	if userRaw == "" {
		return nil, false
	}

	var user domain.TelegramUser
	if err := json.Unmarshal([]byte(userRaw), &user); err != nil {
		return nil, false
	}
	if user.ID == 0 {
		return nil, false
	}

	return &user, true
}

// ParseStartParam extracts an optional referrer account id from the webapp
// start parameter. Accepts both "ref_<id>" (share links) and a bare numeric
// id. Returns 0 when absent or malformed; a bad param never fails login.
func ParseStartParam(values url.Values) int64 {
	param := values.Get("start_param")
	if param == "" {
		return 0
	}
	param = strings.TrimPrefix(param, "ref_")
	id, err := strconv.ParseInt(param, 10, 64)
	if err != nil || id <= 0 {
		return 0
	}
	return id
}
