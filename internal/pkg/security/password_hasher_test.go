package security

import (
	"errors"
	"testing"
)

func TestHashAndCheckPassword(t *testing.T) {
	hash, err := HashPassword("s3cret-pass")
	if err != nil {
		t.Fatalf("HashPassword() error = %v", err)
	}
	if hash == "s3cret-pass" {
		t.Fatalf("哈希不应等于明文")
	}

	if err = CheckPasswordHash("s3cret-pass", hash); err != nil {
		t.Errorf("正确密码校验 error = %v", err)
	}
	if err = CheckPasswordHash("wrong-pass", hash); !errors.Is(err, ErrPasswordMismatch) {
		t.Errorf("错误密码 err = %v, want ErrPasswordMismatch", err)
	}
}

func TestHashPasswordEmpty(t *testing.T) {
	if _, err := HashPassword(""); err == nil {
		t.Errorf("空密码应报错")
	}
}
