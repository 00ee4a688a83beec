package utils

import (
	"testing"
	"time"

	"interior-request-server/internal/config"

	"github.com/golang-jwt/jwt/v5"
)

func withSecret(t *testing.T, secret string) {
	t.Helper()
	prev := config.Get()
	cfg := prev
	cfg.JWT.Secret = secret
	config.Set(cfg)
	t.Cleanup(func() { config.Set(prev) })
}

func TestLoginToken_RoundTrip(t *testing.T) {
	withSecret(t, "unit-test-secret")

	token, err := GenerateLoginToken(123, "alice", true, time.Hour)
	if err != nil {
		t.Fatalf("GenerateLoginToken error: %v", err)
	}
	claims, err := ParseLoginToken(token)
	if err != nil {
		t.Fatalf("ParseLoginToken error: %v", err)
	}
	if claims.ID != 123 || claims.Username != "alice" || !claims.Staff || claims.Type != "login" {
		t.Fatalf("unexpected claims: %+v", claims)
	}
}

func TestParseLoginToken_Expired(t *testing.T) {
	withSecret(t, "unit-test-secret")

	token, err := GenerateLoginToken(1, "alice", false, -1*time.Second)
	if err != nil {
		t.Fatalf("GenerateLoginToken error: %v", err)
	}
	if _, err = ParseLoginToken(token); err == nil {
		t.Fatalf("expected expired token error")
	}
}

// 测试内容：验证使用其他密钥签名的令牌被拒绝。
func TestParseLoginToken_WrongSecret(t *testing.T) {
	withSecret(t, "first-secret")
	token, err := GenerateLoginToken(1, "alice", false, time.Hour)
	if err != nil {
		t.Fatalf("GenerateLoginToken error: %v", err)
	}

	withSecret(t, "second-secret")
	if _, err := ParseLoginToken(token); err == nil {
		t.Fatalf("expected signature error")
	}
}

// 测试内容：验证类型字段不是 login 的令牌被拒绝。
func TestParseLoginToken_RejectsWrongType(t *testing.T) {
	withSecret(t, "unit-test-secret")

	claims := LoginClaims{
		ID:   1,
		Type: "password_reset",
		RegisteredClaims: jwt.RegisteredClaims{
			ExpiresAt: jwt.NewNumericDate(time.Now().Add(time.Hour)),
			Issuer:    tokenIssuer,
		},
	}
	token, err := jwt.NewWithClaims(jwt.SigningMethodHS256, claims).SignedString([]byte("unit-test-secret"))
	if err != nil {
		t.Fatalf("sign: %v", err)
	}
	if _, err := ParseLoginToken(token); err == nil {
		t.Fatalf("expected error for wrong token type")
	}
}
