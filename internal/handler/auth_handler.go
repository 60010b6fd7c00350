/*
Package handler provides HTTP handler functions for user authentication and management.
*/
package handler

import (
	"errors"
	"net/http"
	"regexp"
	"strings"
	"unicode/utf8"

	"golang.org/x/crypto/bcrypt"

	"shinesmile/internal/app/user"
	"shinesmile/internal/pkg/auth/jwt"
	"shinesmile/internal/pkg/errs"
	"shinesmile/internal/pkg/logx"
	"shinesmile/internal/pkg/req"
	"shinesmile/internal/pkg/resp"
)

var (
	usernameRegex = regexp.MustCompile(`^[A-Za-z0-9_]{3,50}$`)
)

const (
	minPasswordLen = 6

	// bcrypt ignores input past 72 bytes.
	maxPasswordLen = 72
)

type RegisterInput struct {
	Username string `json:"username"`
	Email    string `json:"email"`
	Password string `json:"password"`
	FullName string `json:"fullName"`
	Phone    string `json:"phone,omitempty"`
}

// HandleRegister creates a user account and signs the caller in.
func HandleRegister(deps *AppDeps) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		if payload := jwt.GetPayloadFromContext(r); payload != nil {
			resp.RespondError(w, r, errs.NewError(errs.ErrAlreadyLoggedIn))
			return
		}

		var input RegisterInput
		if customErr := req.BindJSON(w, r, &input); customErr != nil {
			resp.RespondError(w, r, customErr)
			return
		}

		input.Username = strings.TrimSpace(input.Username)
		input.Email = strings.TrimSpace(input.Email)
		input.FullName = strings.TrimSpace(input.FullName)

		if !usernameRegex.MatchString(input.Username) {
			resp.RespondError(w, r, errs.NewError(errs.ErrInvalidUsername))
			return
		}

		if !req.IsEmail(input.Email) {
			resp.RespondError(w, r, errs.NewError(errs.ErrInvalidEmail))
			return
		}

		passwordLen := len(input.Password)
		if utf8.RuneCountInString(input.Password) < minPasswordLen || passwordLen > maxPasswordLen {
			resp.RespondError(w, r, errs.NewError(errs.ErrInvalidPassword))
			return
		}

		if input.FullName == "" {
			resp.RespondError(w, r, errs.NewError(errs.ErrMissingField, "Full name"))
			return
		}

		input.Phone = strings.TrimSpace(input.Phone)

		if customErr := checkProfileLengths(input.FullName, input.Phone); customErr != nil {
			resp.RespondError(w, r, customErr)
			return
		}

		hashedPassword, err := bcrypt.GenerateFromPassword([]byte(input.Password), bcrypt.DefaultCost)
		if err != nil {
			logx.Error(err, "register: password hashing failed")
			resp.RespondError(w, r, errs.NewError(errs.ErrUnknown))
			return
		}

		account := &user.User{
			Username:     input.Username,
			Email:        input.Email,
			PasswordHash: string(hashedPassword),
			FullName:     input.FullName,
			Phone:        input.Phone,
			Role:         jwt.RoleUser,
		}

		if err := deps.Users.Create(r.Context(), account); err != nil {
			if errors.Is(err, user.ErrDuplicate) {
				logx.Warn("registration conflict: username or email already exists", "username", input.Username)
				resp.RespondError(w, r, errs.NewError(errs.ErrUserAlreadyExists))
				return
			}

			logx.Error(err, "failed to create user in database")
			resp.RespondError(w, r, errs.NewError(errs.ErrUnknown))
			return
		}

		token, err := issueToken(deps, account)
		if err != nil {
			logx.Error(err, "failed to generate token after registration", "user_id", account.ID)
			resp.RespondError(w, r, errs.NewError(errs.ErrUnknown))
			return
		}

		logx.Info("User registered", "user_id", account.ID, "username", account.Username)

		resp.RespondCreated(w, r, "User registered successfully", map[string]any{
			"token": token,
			"user":  account,
		})
	}
}

type LoginInput struct {
	Email    string `json:"email"`
	Password string `json:"password"`
}

// HandleLogin verifies user credentials and issues a JWT token.
func HandleLogin(deps *AppDeps) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		if identity := jwt.GetPayloadFromContext(r); identity != nil {
			resp.RespondError(w, r, errs.NewError(errs.ErrAlreadyLoggedIn))
			return
		}

		var input LoginInput
		if customErr := req.BindJSON(w, r, &input); customErr != nil {
			resp.RespondError(w, r, customErr)
			return
		}

		if strings.TrimSpace(input.Email) == "" || input.Password == "" {
			resp.RespondError(w, r, errs.NewError(errs.ErrInvalidCredentials))
			return
		}

		account, err := deps.Users.GetByEmail(r.Context(), strings.TrimSpace(input.Email))
		if err != nil {
			if !errors.Is(err, user.ErrNotFound) {
				logx.Error(err, "login: user fetch failed")
				resp.RespondError(w, r, errs.NewError(errs.ErrUnknown))
				return
			}
			logx.Warn("login: unknown email")
			resp.RespondError(w, r, errs.NewError(errs.ErrInvalidCredentials))
			return
		}

		if err := bcrypt.CompareHashAndPassword([]byte(account.PasswordHash), []byte(input.Password)); err != nil {
			logx.Warn("login: password mismatch", "user_id", account.ID)
			resp.RespondError(w, r, errs.NewError(errs.ErrInvalidCredentials))
			return
		}

		token, err := issueToken(deps, account)
		if err != nil {
			logx.Error(err, "login: jwt generation failed")
			resp.RespondError(w, r, errs.NewError(errs.ErrUnknown))
			return
		}

		resp.RespondMessage(w, r, "Login successful", map[string]any{
			"token": token,
			"user":  account,
		})
	}
}

func issueToken(deps *AppDeps, u *user.User) (string, error) {
	payload := &jwt.Payload{
		UserID:   u.ID,
		Username: u.Username,
		Role:     u.Role,
	}
	return jwt.GenerateToken(payload, deps.Config.JWTSecret, deps.Config.TokenTTL)
}
