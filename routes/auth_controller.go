package routes

import (
	"database/sql"
	"errors"
	"net/http"
	"time"

	"github.com/civicpulse/campaign/app"
	"github.com/civicpulse/campaign/httpx"
	"github.com/civicpulse/campaign/log"
	"github.com/civicpulse/campaign/model"
	"github.com/go-chi/jwtauth"
	"github.com/go-chi/render"
)

const sessionCookie = "jwt"
const sessionTTL = 24 * time.Hour

// currentUserID resolves the authenticated user from the session token, if
// any. Handlers decide whether a missing identity is an error.
func currentUserID(r *http.Request) (int, bool) {
	_, claims, err := jwtauth.FromContext(r.Context())
	if err != nil {
		return 0, false
	}
	id, ok := claims["user_id"].(float64)
	if !ok || id <= 0 {
		return 0, false
	}
	return int(id), true
}

// UserLogin registers or refreshes a user keyed by phone number and issues a
// session token. An existing user's name and district are updated to the
// submitted values; responses already stored keep the district they were
// submitted under.
func UserLogin(app app.App) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		var body struct {
			Name     string `json:"name"`
			Phone    string `json:"phone"`
			District string `json:"district"`
		}
		err := render.DecodeJSON(r.Body, &body)
		if err != nil {
			httpx.LogStatus(w, http.StatusBadRequest, log.DebugLevel, "login.parse_body")
			return
		}

		if body.Name == "" || body.Phone == "" {
			httpx.LogStatusMsg(w, http.StatusBadRequest, log.DebugLevel, "login.validate", "name and phone are required")
			return
		}
		if !model.ValidDistrict(body.District) {
			httpx.LogStatusMsg(w, http.StatusBadRequest, log.DebugLevel, "login.validate", "unknown district %q", body.District)
			return
		}

		user := model.User{}
		err = app.QueryRowContext(r.Context(), `
			INSERT INTO user (name, phone, district) VALUES (?, ?, ?)
			ON CONFLICT (phone) DO UPDATE SET name = excluded.name, district = excluded.district
			RETURNING id, name, phone, district`,
			body.Name,
			body.Phone,
			body.District,
		).Scan(&user.ID, &user.Name, &user.Phone, &user.District)
		if err != nil {
			httpx.LogInternalError(w, "db.upsert_user", err)
			return
		}

		_, token, err := app.Sessions.Encode(map[string]interface{}{
			"user_id": user.ID,
			"exp":     time.Now().Add(sessionTTL).Unix(),
		})
		if err != nil {
			httpx.LogInternalError(w, "login.encode_token", err)
			return
		}

		http.SetCookie(w, &http.Cookie{
			Path:     "/",
			Name:     sessionCookie,
			Value:    token,
			MaxAge:   int(sessionTTL.Seconds()),
			HttpOnly: true,
			SameSite: http.SameSiteLaxMode,
		})
		render.JSON(w, r, map[string]any{"user": user})
	}
}

func UserLogout() http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		http.SetCookie(w, &http.Cookie{
			Path:     "/",
			Name:     sessionCookie,
			Value:    "",
			MaxAge:   -1,
			HttpOnly: true,
			SameSite: http.SameSiteLaxMode,
		})
		render.JSON(w, r, map[string]any{"message": "logged out"})
	}
}

func CurrentUser(app app.App) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		userID, ok := currentUserID(r)
		if !ok {
			httpx.LogStatus(w, http.StatusUnauthorized, log.DebugLevel, "me.not_authenticated")
			return
		}

		user := model.User{}
		err := app.QueryRowContext(r.Context(),
			"SELECT id, name, phone, district FROM user WHERE id = ?", userID,
		).Scan(&user.ID, &user.Name, &user.Phone, &user.District)
		if errors.Is(err, sql.ErrNoRows) {
			httpx.LogNotFound(w, "get_user", userID)
			return
		}
		if err != nil {
			httpx.LogInternalError(w, "db.get_user", err)
			return
		}

		render.JSON(w, r, map[string]any{"user": user})
	}
}
