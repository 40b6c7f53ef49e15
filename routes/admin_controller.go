package routes

import (
	"database/sql"
	"encoding/json"
	"net/http"
	"strconv"

	"github.com/civicpulse/campaign/app"
	"github.com/civicpulse/campaign/httpx"
	"github.com/civicpulse/campaign/log"
	"github.com/civicpulse/campaign/model"
	"github.com/civicpulse/campaign/survey"
	"github.com/go-chi/chi/v5"
	"github.com/go-chi/render"
	"github.com/pkg/errors"
)

func ListSurveys(app app.App) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		surveys, err := app.Surveys.Surveys(r.Context())
		if err != nil {
			httpx.LogInternalError(w, "db.get_surveys", err)
			return
		}

		render.JSON(w, r, map[string]any{"surveys": surveys})
	}
}

func CreateSurvey(app app.App) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		sv := survey.Survey{}
		err := render.DecodeJSON(r.Body, &sv)
		if err != nil {
			httpx.LogStatus(w, http.StatusBadRequest, log.DebugLevel, "survey.create.parse_body")
			return
		}
		if sv.Title == "" {
			httpx.LogStatusMsg(w, http.StatusBadRequest, log.DebugLevel, "survey.create.validate", "title is required")
			return
		}

		activate := sv.IsActive
		sv.IsActive = false
		created, err := app.Surveys.CreateSurvey(r.Context(), sv)
		if err != nil {
			httpx.LogInternalError(w, "db.insert_survey", err)
			return
		}

		// activation deactivates every other survey
		if activate {
			err = app.Surveys.SetActive(r.Context(), created.ID)
			if err != nil {
				httpx.LogInternalError(w, "db.activate_survey", err)
				return
			}
			created.IsActive = true
		}

		w.WriteHeader(http.StatusCreated)
		render.JSON(w, r, map[string]any{"survey": created})
	}
}

func ActivateSurvey(app app.App) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		surveyId, err := strconv.Atoi(chi.URLParam(r, "id"))
		if err != nil {
			httpx.LogStatus(w, http.StatusBadRequest, log.DebugLevel, "request.get_url_param.id")
			return
		}

		err = app.Surveys.SetActive(r.Context(), surveyId)
		if errors.Is(err, survey.ErrNotFound) {
			httpx.LogNotFound(w, "activate_survey", surveyId)
			return
		}
		if err != nil {
			httpx.LogInternalError(w, "db.activate_survey", err)
			return
		}

		render.JSON(w, r, map[string]any{"message": "survey activated"})
	}
}

// InitializeSurvey installs the campaign's default questionnaire. Calling it
// again is a no-op that returns the existing survey.
func InitializeSurvey(app app.App) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		seeded, err := app.Surveys.Seed(r.Context())
		if err != nil {
			httpx.LogInternalError(w, "db.seed_survey", err)
			return
		}

		render.JSON(w, r, map[string]any{"survey": seeded})
	}
}

func CreateNotice(app app.App) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		notice := model.Notice{Type: "general"}
		err := render.DecodeJSON(r.Body, &notice)
		if err != nil {
			httpx.LogStatus(w, http.StatusBadRequest, log.DebugLevel, "notice.parse_body")
			return
		}
		if notice.Title == "" || notice.Content == "" {
			httpx.LogStatusMsg(w, http.StatusBadRequest, log.DebugLevel, "notice.validate", "title and content are required")
			return
		}

		err = app.QueryRowContext(r.Context(), `
			INSERT INTO notice (title, content, type) VALUES (?, ?, ?)
			RETURNING id, created_at`,
			notice.Title,
			notice.Content,
			notice.Type,
		).Scan(&notice.ID, &notice.CreatedAt)
		if err != nil {
			httpx.LogInternalError(w, "db.insert_notice", err)
			return
		}

		w.WriteHeader(http.StatusCreated)
		render.JSON(w, r, map[string]any{"notice": notice})
	}
}

func UpdateNotice(app app.App) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		id, err := strconv.Atoi(chi.URLParam(r, "id"))
		if err != nil {
			httpx.LogStatus(w, http.StatusBadRequest, log.DebugLevel, "request.get_url_param.id")
			return
		}

		notice := model.Notice{}
		err = render.DecodeJSON(r.Body, &notice)
		if err != nil {
			httpx.LogStatus(w, http.StatusBadRequest, log.DebugLevel, "notice.parse_body")
			return
		}

		notice.ID = id
		err = app.QueryRowContext(r.Context(), `
			UPDATE notice SET title = ?, content = ?, type = ?
			WHERE id = ?
			RETURNING created_at`,
			notice.Title,
			notice.Content,
			notice.Type,
			id,
		).Scan(&notice.CreatedAt)
		if errors.Is(err, sql.ErrNoRows) {
			httpx.LogNotFound(w, "update_notice", id)
			return
		}
		if err != nil {
			httpx.LogInternalError(w, "db.update_notice", err)
			return
		}

		render.JSON(w, r, map[string]any{"notice": notice})
	}
}

func DeleteNotice(app app.App) http.HandlerFunc {
	return deleteById(app, "notice", "DELETE FROM notice WHERE id = ?")
}

func CreateResource(app app.App) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		resource := model.Resource{}
		err := render.DecodeJSON(r.Body, &resource)
		if err != nil {
			httpx.LogStatus(w, http.StatusBadRequest, log.DebugLevel, "resource.parse_body")
			return
		}
		if resource.Title == "" || resource.Type == "" {
			httpx.LogStatusMsg(w, http.StatusBadRequest, log.DebugLevel, "resource.validate", "title and type are required")
			return
		}

		metadata, err := marshalMetadata(resource.Metadata)
		if err != nil {
			httpx.LogStatus(w, http.StatusBadRequest, log.DebugLevel, "resource.parse_metadata")
			return
		}

		err = app.QueryRowContext(r.Context(), `
			INSERT INTO resource (title, type, url, description, metadata) VALUES (?, ?, ?, ?, ?)
			RETURNING id, created_at`,
			resource.Title,
			resource.Type,
			resource.Url,
			resource.Description,
			metadata,
		).Scan(&resource.ID, &resource.CreatedAt)
		if err != nil {
			httpx.LogInternalError(w, "db.insert_resource", err)
			return
		}

		w.WriteHeader(http.StatusCreated)
		render.JSON(w, r, map[string]any{"resource": resource})
	}
}

func UpdateResource(app app.App) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		id, err := strconv.Atoi(chi.URLParam(r, "id"))
		if err != nil {
			httpx.LogStatus(w, http.StatusBadRequest, log.DebugLevel, "request.get_url_param.id")
			return
		}

		resource := model.Resource{}
		err = render.DecodeJSON(r.Body, &resource)
		if err != nil {
			httpx.LogStatus(w, http.StatusBadRequest, log.DebugLevel, "resource.parse_body")
			return
		}

		metadata, err := marshalMetadata(resource.Metadata)
		if err != nil {
			httpx.LogStatus(w, http.StatusBadRequest, log.DebugLevel, "resource.parse_metadata")
			return
		}

		resource.ID = id
		err = app.QueryRowContext(r.Context(), `
			UPDATE resource SET title = ?, type = ?, url = ?, description = ?, metadata = ?
			WHERE id = ?
			RETURNING created_at`,
			resource.Title,
			resource.Type,
			resource.Url,
			resource.Description,
			metadata,
			id,
		).Scan(&resource.CreatedAt)
		if errors.Is(err, sql.ErrNoRows) {
			httpx.LogNotFound(w, "update_resource", id)
			return
		}
		if err != nil {
			httpx.LogInternalError(w, "db.update_resource", err)
			return
		}

		render.JSON(w, r, map[string]any{"resource": resource})
	}
}

func DeleteResource(app app.App) http.HandlerFunc {
	return deleteById(app, "resource", "DELETE FROM resource WHERE id = ?")
}

func UpdatePolicy(app app.App) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		id, err := strconv.Atoi(chi.URLParam(r, "id"))
		if err != nil {
			httpx.LogStatus(w, http.StatusBadRequest, log.DebugLevel, "request.get_url_param.id")
			return
		}

		policy := model.Policy{}
		err = render.DecodeJSON(r.Body, &policy)
		if err != nil {
			httpx.LogStatus(w, http.StatusBadRequest, log.DebugLevel, "policy.parse_body")
			return
		}
		if !model.ValidPolicyCategory(policy.Category) {
			httpx.LogStatusMsg(w, http.StatusBadRequest, log.DebugLevel, "policy.validate", "unknown category %q", policy.Category)
			return
		}

		policy.ID = id
		err = app.QueryRowContext(r.Context(), `
			UPDATE policy SET title = ?, content = ?, category = ?
			WHERE id = ?
			RETURNING author_id, support_count, created_at`,
			policy.Title,
			policy.Content,
			policy.Category,
			id,
		).Scan(&policy.AuthorID, &policy.SupportCount, &policy.CreatedAt)
		if errors.Is(err, sql.ErrNoRows) {
			httpx.LogNotFound(w, "update_policy", id)
			return
		}
		if err != nil {
			httpx.LogInternalError(w, "db.update_policy", err)
			return
		}

		render.JSON(w, r, map[string]any{"policy": policy})
	}
}

// DeletePolicy removes a proposal and its support votes.
func DeletePolicy(app app.App) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		id, err := strconv.Atoi(chi.URLParam(r, "id"))
		if err != nil {
			httpx.LogStatus(w, http.StatusBadRequest, log.DebugLevel, "request.get_url_param.id")
			return
		}

		tx, err := app.BeginTx(r.Context(), nil)
		if err != nil {
			httpx.LogInternalError(w, "db.begin_tx", err)
			return
		}
		defer tx.Rollback()

		_, err = tx.ExecContext(r.Context(), "DELETE FROM policy_support WHERE policy_id = ?", id)
		if err != nil {
			httpx.LogInternalError(w, "db.delete_policy_supports", err)
			return
		}

		result, err := tx.ExecContext(r.Context(), "DELETE FROM policy WHERE id = ?", id)
		if err != nil {
			httpx.LogInternalError(w, "db.delete_policy", err)
			return
		}
		deleted, err := result.RowsAffected()
		if err != nil {
			httpx.LogInternalError(w, "db.delete_policy.rows_affected", err)
			return
		}
		if deleted == 0 {
			httpx.LogNotFound(w, "delete_policy", id)
			return
		}

		err = tx.Commit()
		if err != nil {
			httpx.LogInternalError(w, "db.delete_policy.commit", err)
			return
		}

		render.JSON(w, r, map[string]any{"message": "policy deleted"})
	}
}

func CreateWebContent(app app.App) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		content := model.WebContent{IsActive: true}
		err := render.DecodeJSON(r.Body, &content)
		if err != nil {
			httpx.LogStatus(w, http.StatusBadRequest, log.DebugLevel, "web_content.parse_body")
			return
		}
		if content.Section == "" || content.Key == "" || content.Content == "" {
			httpx.LogStatusMsg(w, http.StatusBadRequest, log.DebugLevel, "web_content.validate", "section, key and content are required")
			return
		}

		metadata, err := marshalMetadata(content.Metadata)
		if err != nil {
			httpx.LogStatus(w, http.StatusBadRequest, log.DebugLevel, "web_content.parse_metadata")
			return
		}

		err = app.QueryRowContext(r.Context(), `
			INSERT INTO web_content (section, key, title, content, metadata, is_active)
			VALUES (?, ?, ?, ?, ?, ?)
			RETURNING id, created_at, updated_at`,
			content.Section,
			content.Key,
			content.Title,
			content.Content,
			metadata,
			content.IsActive,
		).Scan(&content.ID, &content.CreatedAt, &content.UpdatedAt)
		if err != nil {
			httpx.LogInternalError(w, "db.insert_web_content", err)
			return
		}

		w.WriteHeader(http.StatusCreated)
		render.JSON(w, r, map[string]any{"content": content})
	}
}

func UpdateWebContent(app app.App) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		id, err := strconv.Atoi(chi.URLParam(r, "id"))
		if err != nil {
			httpx.LogStatus(w, http.StatusBadRequest, log.DebugLevel, "request.get_url_param.id")
			return
		}

		content := model.WebContent{IsActive: true}
		err = render.DecodeJSON(r.Body, &content)
		if err != nil {
			httpx.LogStatus(w, http.StatusBadRequest, log.DebugLevel, "web_content.parse_body")
			return
		}

		metadata, err := marshalMetadata(content.Metadata)
		if err != nil {
			httpx.LogStatus(w, http.StatusBadRequest, log.DebugLevel, "web_content.parse_metadata")
			return
		}

		content.ID = id
		err = app.QueryRowContext(r.Context(), `
			UPDATE web_content
			SET section = ?, key = ?, title = ?, content = ?, metadata = ?, is_active = ?,
				updated_at = CURRENT_TIMESTAMP
			WHERE id = ?
			RETURNING created_at, updated_at`,
			content.Section,
			content.Key,
			content.Title,
			content.Content,
			metadata,
			content.IsActive,
			id,
		).Scan(&content.CreatedAt, &content.UpdatedAt)
		if errors.Is(err, sql.ErrNoRows) {
			httpx.LogNotFound(w, "update_web_content", id)
			return
		}
		if err != nil {
			httpx.LogInternalError(w, "db.update_web_content", err)
			return
		}

		render.JSON(w, r, map[string]any{"content": content})
	}
}

func DeleteWebContent(app app.App) http.HandlerFunc {
	return deleteById(app, "web_content", "DELETE FROM web_content WHERE id = ?")
}

func deleteById(app app.App, name, query string) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		id, err := strconv.Atoi(chi.URLParam(r, "id"))
		if err != nil {
			httpx.LogStatus(w, http.StatusBadRequest, log.DebugLevel, "request.get_url_param.id")
			return
		}

		result, err := app.ExecContext(r.Context(), query, id)
		if err != nil {
			httpx.LogInternalError(w, "db.delete_"+name, err)
			return
		}
		deleted, err := result.RowsAffected()
		if err != nil {
			httpx.LogInternalError(w, "db.delete_"+name+".rows_affected", err)
			return
		}
		if deleted == 0 {
			httpx.LogNotFound(w, "delete_"+name, id)
			return
		}

		render.JSON(w, r, map[string]any{"message": name + " deleted"})
	}
}

func marshalMetadata(metadata any) (any, error) {
	if metadata == nil {
		return nil, nil
	}
	metadataJson, err := json.Marshal(metadata)
	if err != nil {
		return nil, err
	}
	return string(metadataJson), nil
}
