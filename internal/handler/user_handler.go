package handler

import (
	"errors"
	"net/http"
	"strings"

	"shinesmile/internal/app/user"
	"shinesmile/internal/pkg/auth/jwt"
	"shinesmile/internal/pkg/errs"
	"shinesmile/internal/pkg/logx"
	"shinesmile/internal/pkg/req"
	"shinesmile/internal/pkg/resp"
)

// HandleGetMe returns the signed-in user's account.
func HandleGetMe(deps *AppDeps) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		identity := jwt.GetPayloadFromContext(r)
		if identity == nil {
			resp.RespondError(w, r, errs.NewError(errs.ErrUnauthorized))
			return
		}

		account, err := deps.Users.GetByID(r.Context(), identity.UserID)
		if err != nil {
			if errors.Is(err, user.ErrNotFound) {
				logx.Warn("get_me: user not found", "user_id", identity.UserID)
				resp.RespondError(w, r, errs.NewError(errs.ErrUserNotFound))
				return
			}
			resp.RespondErr(w, r, err)
			return
		}

		resp.RespondSuccess(w, r, map[string]any{"user": account})
	}
}

type UpdateProfileInput struct {
	FullName string `json:"fullName"`
	Phone    string `json:"phone"`
}

// HandleUpdateProfile changes the signed-in user's full name and phone.
func HandleUpdateProfile(deps *AppDeps) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		identity := jwt.GetPayloadFromContext(r)
		if identity == nil {
			resp.RespondError(w, r, errs.NewError(errs.ErrUnauthorized))
			return
		}

		var input UpdateProfileInput
		if customErr := req.BindJSON(w, r, &input); customErr != nil {
			resp.RespondError(w, r, customErr)
			return
		}

		fullName := strings.TrimSpace(input.FullName)
		if fullName == "" {
			resp.RespondError(w, r, errs.NewError(errs.ErrMissingField, "Full name"))
			return
		}

		phone := strings.TrimSpace(input.Phone)
		if customErr := checkProfileLengths(fullName, phone); customErr != nil {
			resp.RespondError(w, r, customErr)
			return
		}

		updated, err := deps.Users.UpdateProfile(r.Context(), identity.UserID, user.ProfileUpdate{
			FullName: fullName,
			Phone:    phone,
		})
		if err != nil {
			if errors.Is(err, user.ErrNotFound) {
				resp.RespondError(w, r, errs.NewError(errs.ErrUserNotFound))
				return
			}
			resp.RespondErr(w, r, err)
			return
		}

		resp.RespondMessage(w, r, "Profile updated successfully", map[string]any{"user": updated})
	}
}

// HandleListUsers returns every account, newest first. Admin only.
func HandleListUsers(deps *AppDeps) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		users, err := deps.Users.List(r.Context())
		if err != nil {
			resp.RespondErr(w, r, err)
			return
		}

		resp.RespondSuccess(w, r, map[string]any{"users": users})
	}
}

// checkProfileLengths rejects a full name or phone that would not fit the users table.
func checkProfileLengths(fullName, phone string) *errs.CustomError {
	if req.TooLong(fullName, req.MaxFullNameLength) {
		return errs.NewError(errs.ErrFieldTooLong, "Full name", req.MaxFullNameLength)
	}
	if req.TooLong(phone, req.MaxPhoneLength) {
		return errs.NewError(errs.ErrFieldTooLong, "Phone number", req.MaxPhoneLength)
	}
	return nil
}
