package service

import (
	"crypto/hmac"
	"crypto/sha256"
	"encoding/hex"
	"net/url"
	"sort"
	"strconv"
	"strings"
	"testing"
	"time"
)

// buildInitData signs a set of fields exactly the way Telegram does, so the
// validator can be exercised without a live bot.
func buildInitData(t *testing.T, botToken string, fields map[string]string) string {
	t.Helper()
	var parts []string
	for k, v := range fields {
		parts = append(parts, k+"="+v)
	}
	sort.Strings(parts)
	dataString := strings.Join(parts, "\n")

	sk := hmac.New(sha256.New, []byte("WebAppData"))
	sk.Write([]byte(botToken))
	secret := sk.Sum(nil)

	h := hmac.New(sha256.New, secret)
	h.Write([]byte(dataString))
	hash := hex.EncodeToString(h.Sum(nil))

	vals := url.Values{}
	for k, v := range fields {
		vals.Add(k, v)
	}
	vals.Add("hash", hash)
	return vals.Encode()
}

func TestValidateTelegramInitData_Valid(t *testing.T) {
	botToken := "test-bot-token"
	fields := map[string]string{
		"auth_date": strconv.FormatInt(time.Now().Unix(), 10),
		"user":      `{"id":1,"username":"u","first_name":"F"}`,
	}

	initData := buildInitData(t, botToken, fields)

	vals, ok := ValidateTelegramInitData(initData, botToken)
	if !ok {
		t.Fatalf("expected valid init data")
	}
	if vals.Get("user") == "" {
		t.Fatalf("expected user field in values")
	}
}

func TestValidateTelegramInitData_Tampered(t *testing.T) {
	botToken := "test-bot-token"
	fields := map[string]string{
		"auth_date": strconv.FormatInt(time.Now().Unix(), 10),
		"user":      `{"id":1,"username":"u","first_name":"F"}`,
	}
	initData := buildInitData(t, botToken, fields)

	// appending an extra field breaks the hash
	tampered := initData + "&x=1"

	if _, ok := ValidateTelegramInitData(tampered, botToken); ok {
		t.Fatalf("expected tampered init data to be invalid")
	}
}

func TestValidateTelegramInitData_WrongToken(t *testing.T) {
	fields := map[string]string{
		"auth_date": strconv.FormatInt(time.Now().Unix(), 10),
		"user":      `{"id":1,"username":"u","first_name":"F"}`,
	}
	initData := buildInitData(t, "token-a", fields)

	if _, ok := ValidateTelegramInitData(initData, "token-b"); ok {
		t.Fatalf("expected init data signed with a different token to be invalid")
	}
}

func TestValidateTelegramInitData_Stale(t *testing.T) {
	botToken := "test-bot-token"
	stale := time.Now().Add(-25 * time.Hour).Unix()
	fields := map[string]string{
		"auth_date": strconv.FormatInt(stale, 10),
		"user":      `{"id":1,"username":"u","first_name":"F"}`,
	}
	initData := buildInitData(t, botToken, fields)

	if _, ok := ValidateTelegramInitData(initData, botToken); ok {
		t.Fatalf("expected stale init data to be rejected")
	}
}

func TestVerifyIdentity(t *testing.T) {
	botToken := "test-bot-token"
	fields := map[string]string{
		"auth_date":   strconv.FormatInt(time.Now().Unix(), 10),
		"user":        `{"id":42,"username":"tapper","first_name":"Tap","last_name":"Per","photo_url":"https://t.me/p.jpg"}`,
		"start_param": "ref_7",
	}
	initData := buildInitData(t, botToken, fields)

	user, ok := VerifyIdentity(initData, botToken)
	if !ok {
		t.Fatalf("expected identity to verify")
	}
	if user.ID != 42 || user.Username != "tapper" || user.LastName != "Per" {
		t.Fatalf("unexpected identity: %+v", user)
	}

	vals, _ := ValidateTelegramInitData(initData, botToken)
	if ref := ParseStartParam(vals); ref != 7 {
		t.Fatalf("expected referrer 7, got %d", ref)
	}
}

func TestParseStartParam(t *testing.T) {
	cases := map[string]int64{
		"ref_15": 15,
		"15":     15,
		"ref_x":  0,
		"":       0,
		"-3":     0,
	}
	for param, want := range cases {
		vals := url.Values{}
		if param != "" {
			vals.Set("start_param", param)
		}
		if got := ParseStartParam(vals); got != want {
			t.Fatalf("ParseStartParam(%q) = %d, want %d", param, got, want)
		}
	}
}
