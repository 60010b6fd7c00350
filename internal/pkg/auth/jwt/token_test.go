package jwt

import (
	"net/http"
	"net/http/httptest"
	"testing"
	"time"

	jwtlib "github.com/golang-jwt/jwt"
)

const testSecret = "test-secret"

func TestGenerateAndParseToken(t *testing.T) {
	token, err := GenerateToken(&Payload{UserID: 7, Username: "alice", Role: RoleUser}, testSecret, time.Hour)
	if err != nil {
		t.Fatalf("generate: %v", err)
	}

	payload, err := ParseToken(token, testSecret)
	if err != nil {
		t.Fatalf("parse: %v", err)
	}
	if payload.UserID != 7 || payload.Username != "alice" || payload.Role != RoleUser {
		t.Fatalf("unexpected payload %+v", payload)
	}
	if payload.Issuer != TokenIssuer {
		t.Fatalf("issuer = %q", payload.Issuer)
	}
	if payload.IsAdmin() {
		t.Fatal("user token must not be admin")
	}
}

func TestParseTokenRejects(t *testing.T) {
	valid, _ := GenerateToken(&Payload{UserID: 1, Role: RoleAdmin}, testSecret, time.Hour)
	expiredPayload := &Payload{
		StandardClaims: jwtlib.StandardClaims{ExpiresAt: time.Now().Add(-time.Minute).Unix()},
		UserID:         1,
	}
	expired, _ := jwtlib.NewWithClaims(jwtlib.SigningMethodHS256, expiredPayload).SignedString([]byte(testSecret))

	tests := []struct {
		name   string
		token  string
		secret string
	}{
		{"wrong secret", valid, "other"},
		{"expired", expired, testSecret},
		{"garbage", "not.a.token", testSecret},
		{"empty", "", testSecret},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			if _, err := ParseToken(tt.token, tt.secret); err == nil {
				t.Fatal("expected error")
			}
		})
	}
}

func TestParseTokenRejectsMissingUser(t *testing.T) {
	token, _ := GenerateToken(&Payload{Username: "ghost"}, testSecret, time.Hour)
	if _, err := ParseToken(token, testSecret); err == nil {
		t.Fatal("token without user id must be rejected")
	}
}

func TestRequireAdmin(t *testing.T) {
	adminToken, _ := GenerateToken(&Payload{UserID: 1, Role: RoleAdmin}, testSecret, time.Hour)
	userToken, _ := GenerateToken(&Payload{UserID: 2, Role: RoleUser}, testSecret, time.Hour)

	h := IdentityExtractorMiddleware(testSecret)(RequireAdmin(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		w.WriteHeader(http.StatusNoContent)
	})))

	tests := []struct {
		name   string
		header string
		want   int
	}{
		{"anonymous", "", http.StatusUnauthorized},
		{"bad token", "Bearer nope", http.StatusUnauthorized},
		{"user", "Bearer " + userToken, http.StatusForbidden},
		{"admin", "Bearer " + adminToken, http.StatusNoContent},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			r := httptest.NewRequest(http.MethodGet, "/api/admin/users", nil)
			if tt.header != "" {
				r.Header.Set("Authorization", tt.header)
			}
			rec := httptest.NewRecorder()
			h.ServeHTTP(rec, r)
			if rec.Code != tt.want {
				t.Fatalf("status = %d, want %d", rec.Code, tt.want)
			}
		})
	}
}

func TestBearerToken(t *testing.T) {
	r := httptest.NewRequest(http.MethodGet, "/", nil)
	r.Header.Set("Authorization", "bearer abc")
	if got := BearerToken(r); got != "abc" {
		t.Fatalf("BearerToken = %q", got)
	}

	r.Header.Set("Authorization", "Basic abc")
	if got := BearerToken(r); got != "" {
		t.Fatalf("BearerToken for Basic = %q", got)
	}
}
