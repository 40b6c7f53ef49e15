package routes

import (
	"database/sql"
	"net"
	"net/http"
	"strconv"

	"github.com/civicpulse/campaign/app"
	"github.com/civicpulse/campaign/httpx"
	"github.com/civicpulse/campaign/log"
	"github.com/civicpulse/campaign/survey"
	"github.com/go-chi/chi/v5"
	"github.com/go-chi/render"
	"github.com/pkg/errors"
)

func ActiveSurvey(app app.App) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		active, err := app.Surveys.ActiveSurvey(r.Context())
		if errors.Is(err, survey.ErrNotFound) {
			httpx.LogNotFound(w, "get_active_survey", "active")
			return
		}
		if err != nil {
			httpx.LogInternalError(w, "db.get_active_survey", err)
			return
		}

		render.JSON(w, r, active)
	}
}

// ActiveSurveyResults serves the aggregate statistics of the active survey,
// recomputed from committed state on every call.
func ActiveSurveyResults(app app.App) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		active, err := app.Surveys.ActiveSurvey(r.Context())
		if errors.Is(err, survey.ErrNotFound) {
			httpx.LogNotFound(w, "get_active_survey", "active")
			return
		}
		if err != nil {
			httpx.LogInternalError(w, "db.get_active_survey", err)
			return
		}

		results, err := app.Surveys.Results(r.Context(), active.ID)
		if err != nil {
			httpx.LogInternalError(w, "db.get_survey_results", err)
			return
		}

		render.JSON(w, r, results)
	}
}

func CheckSurveyResponse(app app.App) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		surveyId, err := strconv.Atoi(chi.URLParam(r, "id"))
		if err != nil {
			httpx.LogStatus(w, http.StatusBadRequest, log.DebugLevel, "request.get_url_param.id")
			return
		}

		userId, ok := currentUserID(r)
		if !ok {
			httpx.LogStatus(w, http.StatusUnauthorized, log.DebugLevel, "survey.check.not_authenticated")
			return
		}

		hasSubmitted, err := app.Surveys.HasSubmitted(r.Context(), surveyId, userId)
		if err != nil {
			httpx.LogInternalError(w, "db.check_survey_response", err)
			return
		}

		render.JSON(w, r, map[string]any{"hasSubmitted": hasSubmitted})
	}
}

// SubmitSurveyResponse stores the caller's answer set, replacing any earlier
// response to the same survey. The 401 on a missing identity lets the client
// keep the pending answers, authenticate, and submit again.
func SubmitSurveyResponse(app app.App) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		var body struct {
			SurveyID int             `json:"surveyId"`
			Answers  []survey.Answer `json:"answers"`
		}
		err := render.DecodeJSON(r.Body, &body)
		if err != nil {
			httpx.LogStatus(w, http.StatusBadRequest, log.DebugLevel, "survey.submit.parse_body")
			return
		}

		userId, ok := currentUserID(r)
		if !ok {
			httpx.LogStatus(w, http.StatusUnauthorized, log.DebugLevel, "survey.submit.not_authenticated")
			return
		}

		// stamp the user's district as of submission time
		var district string
		err = app.QueryRowContext(r.Context(),
			"SELECT district FROM user WHERE id = ?", userId,
		).Scan(&district)
		if err != nil && !errors.Is(err, sql.ErrNoRows) {
			httpx.LogInternalError(w, "db.get_user_district", err)
			return
		}

		responseId, err := app.Surveys.Submit(r.Context(), body.SurveyID, survey.Submission{
			UserID:    userId,
			IPAddress: clientIP(r),
			UserAgent: r.UserAgent(),
			District:  district,
			Answers:   body.Answers,
		})
		switch {
		case errors.Is(err, survey.ErrAuthRequired):
			httpx.LogStatus(w, http.StatusUnauthorized, log.DebugLevel, "survey.submit.auth_required")
			return
		case errors.Is(err, survey.ErrNotFound):
			httpx.LogNotFound(w, "submit_survey", body.SurveyID)
			return
		case errors.Is(err, survey.ErrValidation):
			httpx.LogStatusMsg(w, http.StatusBadRequest, log.DebugLevel, "survey.submit.validate", "%s", err)
			return
		case err != nil:
			httpx.LogInternalError(w, "db.submit_survey", err)
			return
		}

		render.JSON(w, r, map[string]any{
			"message":    "survey response submitted",
			"responseId": responseId,
		})
	}
}

// clientIP strips the port from the request's remote address; IPv6 addresses
// come bracketed, which net.SplitHostPort unwraps. A remote address without a
// port is kept as-is.
func clientIP(r *http.Request) string {
	host, _, err := net.SplitHostPort(r.RemoteAddr)
	if err != nil {
		return r.RemoteAddr
	}
	return host
}
