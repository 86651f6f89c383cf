package utils

import (
	"denuncias/models"
	"errors"
	"strings"
	"testing"
	"time"

	"github.com/golang-jwt/jwt/v5"
)

var testSecret = []byte("test-secret")

func TestGenerateAndParseJWT(t *testing.T) {
	token, expiresAt, err := GenerateJWT(7, "inspector@muni.cl", models.RoleInspector, testSecret, time.Hour)
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if d := time.Until(expiresAt); d < 59*time.Minute || d > time.Hour {
		t.Errorf("expected expiry about one hour from now, got %v", d)
	}

	claims, err := ParseJWT(token, testSecret)
	if err != nil {
		t.Fatalf("unexpected parse error: %v", err)
	}
	if claims.ID != 7 || claims.Email != "inspector@muni.cl" || claims.Role != models.RoleInspector {
		t.Errorf("unexpected claims: %+v", claims)
	}
}

func TestParseJWT_FailsClosed(t *testing.T) {
	valid, _, err := GenerateJWT(1, "a@x.com", models.RoleAdministrator, testSecret, time.Hour)
	if err != nil {
		t.Fatal(err)
	}
	expired, _, err := GenerateJWT(1, "a@x.com", models.RoleAdministrator, testSecret, -time.Minute)
	if err != nil {
		t.Fatal(err)
	}
	noExp, err := jwt.NewWithClaims(jwt.SigningMethodHS256, jwt.MapClaims{"id": 1, "role": "administrator"}).SignedString(testSecret)
	if err != nil {
		t.Fatal(err)
	}
	none, err := jwt.NewWithClaims(jwt.SigningMethodNone, jwt.MapClaims{
		"id": 1, "role": "administrator", "exp": time.Now().Add(time.Hour).Unix(),
	}).SignedString(jwt.UnsafeAllowNoneSignatureType)
	if err != nil {
		t.Fatal(err)
	}

	vp := strings.Split(valid, ".")
	ep := strings.Split(expired, ".")
	spliced := ep[0] + "." + ep[1] + "." + vp[2]

	tests := []struct {
		name   string
		token  string
		secret []byte
	}{
		{"empty", "", testSecret},
		{"garbage", "not.a.token", testSecret},
		{"wrong secret", valid, []byte("other")},
		{"expired", expired, testSecret},
		{"missing exp", noExp, testSecret},
		{"alg none", none, testSecret},
		{"spliced signature", spliced, testSecret},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			if _, err := ParseJWT(tt.token, tt.secret); err != ErrInvalidToken {
				t.Errorf("expected ErrInvalidToken, got %v", err)
			}
		})
	}
}

func TestPasswordHashing(t *testing.T) {
	hash, err := HashPassword("s3cret!")
	if err != nil {
		t.Fatal(err)
	}
	if strings.Contains(hash, "s3cret!") {
		t.Fatal("hash must not contain the plaintext")
	}
	if err := CheckPassword("s3cret!", hash); err != nil {
		t.Errorf("expected match, got %v", err)
	}
	if err := CheckPassword("wrong", hash); !errors.Is(err, ErrPasswordMismatch) {
		t.Errorf("wrong password: err = %v, want ErrPasswordMismatch", err)
	}
	if err := CheckPassword("s3cret!", "not-a-bcrypt-hash"); err == nil || errors.Is(err, ErrPasswordMismatch) {
		t.Errorf("corrupt hash: err = %v, want a hash error", err)
	}
	if _, err := HashPassword(strings.Repeat("a", 73)); !errors.Is(err, ErrPasswordTooLong) {
		t.Errorf("73-byte password: err = %v, want ErrPasswordTooLong", err)
	}
}

func TestValidPublicID(t *testing.T) {
	tests := []struct {
		id   int64
		want bool
	}{
		{100000000, true},
		{999999999, true},
		{99999999, false},
		{1000000000, false},
		{0, false},
		{-123456789, false},
	}
	for _, tt := range tests {
		if got := ValidPublicID(tt.id); got != tt.want {
			t.Errorf("ValidPublicID(%d) = %v, want %v", tt.id, got, tt.want)
		}
	}
}

func TestNewPublicID(t *testing.T) {
	seen := make(map[int64]bool)
	for i := 0; i < 500; i++ {
		id, err := NewPublicID()
		if err != nil {
			t.Fatal(err)
		}
		if !ValidPublicID(id) {
			t.Fatalf("public id %d is not 9 digits", id)
		}
		seen[id] = true
	}
	if len(seen) < 490 {
		t.Errorf("expected well-spread ids, got only %d distinct of 500", len(seen))
	}
	if ValidPublicID(99999999) || ValidPublicID(1000000000) {
		t.Error("ids outside nine digits must be rejected")
	}
}
