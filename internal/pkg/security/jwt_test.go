package security

import (
	"Mosaic/internal/api/config"
	"strings"
	"testing"
)

func init() {
	config.Cfg = &config.Config{
		Security: config.SecurityConfig{
			JWTSecret:    "test-secret",
			JWTExpireDay: 7,
		},
	}
}

func TestTokenRoundTrip(t *testing.T) {
	token, err := GenerateToken(42, "mosaic_user")
	if err != nil {
		t.Fatalf("GenerateToken() error = %v", err)
	}

	claims, err := ValidateToken(token)
	if err != nil {
		t.Fatalf("ValidateToken() error = %v", err)
	}
	if claims.UserID != 42 {
		t.Errorf("UserID = %d, want 42", claims.UserID)
	}
	if claims.Username != "mosaic_user" {
		t.Errorf("Username = %q, want mosaic_user", claims.Username)
	}
}

func TestValidateTokenRejectsTampered(t *testing.T) {
	token, err := GenerateToken(42, "mosaic_user")
	if err != nil {
		t.Fatalf("GenerateToken() error = %v", err)
	}

	if _, err = ValidateToken(token + "x"); err == nil {
		t.Error("被篡改的 token 应校验失败")
	}
	if _, err = ValidateToken("not-a-token"); err == nil {
		t.Error("非法格式应校验失败")
	}
}

func TestExtractSignature(t *testing.T) {
	token, err := GenerateToken(1, "u")
	if err != nil {
		t.Fatalf("GenerateToken() error = %v", err)
	}

	signature, err := ExtractSignature(token)
	if err != nil {
		t.Fatalf("ExtractSignature() error = %v", err)
	}
	if !strings.HasSuffix(token, signature) {
		t.Errorf("签名应是 token 的最后一段")
	}

	if _, err = ExtractSignature("only.two"); err == nil {
		t.Error("段数不对应返回错误")
	}
}

func TestPasswordHash(t *testing.T) {
	hash, err := HashPassword("s3cret-pass")
	if err != nil {
		t.Fatalf("HashPassword() error = %v", err)
	}
	if hash == "s3cret-pass" {
		t.Fatal("哈希不应等于明文")
	}

	if err = CheckPasswordHash("s3cret-pass", hash); err != nil {
		t.Errorf("正确密码应通过校验, err = %v", err)
	}
	if err = CheckPasswordHash("wrong-pass", hash); err == nil {
		t.Error("错误密码不应通过校验")
	}
}
