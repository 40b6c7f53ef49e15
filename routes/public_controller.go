package routes

import (
	"database/sql"
	"encoding/json"
	"errors"
	"net/http"
	"strconv"

	"github.com/civicpulse/campaign/app"
	"github.com/civicpulse/campaign/httpx"
	"github.com/civicpulse/campaign/log"
	"github.com/civicpulse/campaign/model"
	"github.com/go-chi/chi/v5"
	"github.com/go-chi/render"
)

func CreateSignature(app app.App) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		userId, ok := currentUserID(r)
		if !ok {
			httpx.LogStatus(w, http.StatusUnauthorized, log.DebugLevel, "signature.not_authenticated")
			return
		}

		var alreadySigned bool
		err := app.QueryRowContext(r.Context(),
			"SELECT 1 FROM signature WHERE user_id = ?", userId,
		).Scan(&alreadySigned)
		if err != nil && !errors.Is(err, sql.ErrNoRows) {
			httpx.LogInternalError(w, "db.get_signature", err)
			return
		}
		if alreadySigned {
			httpx.LogStatusMsg(w, http.StatusBadRequest, log.DebugLevel, "signature.duplicate", "already signed")
			return
		}

		signature := model.Signature{UserID: userId}
		err = app.QueryRowContext(r.Context(), `
			INSERT INTO signature (user_id) VALUES (?)
			RETURNING id, created_at`,
			userId,
		).Scan(&signature.ID, &signature.CreatedAt)
		if err != nil {
			httpx.LogInternalError(w, "db.insert_signature", err)
			return
		}

		w.WriteHeader(http.StatusCreated)
		render.JSON(w, r, map[string]any{"signature": signature})
	}
}

func CheckSignature(app app.App) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		userId, ok := currentUserID(r)
		if !ok {
			httpx.LogStatus(w, http.StatusUnauthorized, log.DebugLevel, "signature.check.not_authenticated")
			return
		}

		var hasSigned bool
		err := app.QueryRowContext(r.Context(),
			"SELECT 1 FROM signature WHERE user_id = ?", userId,
		).Scan(&hasSigned)
		if err != nil && !errors.Is(err, sql.ErrNoRows) {
			httpx.LogInternalError(w, "db.get_signature", err)
			return
		}

		render.JSON(w, r, map[string]any{"hasSigned": hasSigned})
	}
}

func ListPolicies(app app.App) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		query := `
			SELECT id, title, content, category, author_id, support_count, created_at
			FROM policy`
		args := []any{}

		category := r.URL.Query().Get("category")
		if category != "" && category != "all" {
			query += " WHERE category = ?"
			args = append(args, category)
		}
		query += " ORDER BY created_at DESC"

		rows, err := app.QueryContext(r.Context(), query, args...)
		if err != nil {
			httpx.LogInternalError(w, "db.get_policies", err)
			return
		}
		defer rows.Close()

		policies := []model.Policy{}
		for rows.Next() {
			p := model.Policy{}
			err = rows.Scan(&p.ID, &p.Title, &p.Content, &p.Category, &p.AuthorID, &p.SupportCount, &p.CreatedAt)
			if err != nil {
				httpx.LogInternalError(w, "db.get_policies.scan", err)
				return
			}
			policies = append(policies, p)
		}

		render.JSON(w, r, map[string]any{"policies": policies})
	}
}

func CreatePolicy(app app.App) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		userId, ok := currentUserID(r)
		if !ok {
			httpx.LogStatus(w, http.StatusUnauthorized, log.DebugLevel, "policy.not_authenticated")
			return
		}

		policy := model.Policy{}
		err := render.DecodeJSON(r.Body, &policy)
		if err != nil {
			httpx.LogStatus(w, http.StatusBadRequest, log.DebugLevel, "policy.parse_body")
			return
		}
		if policy.Title == "" || policy.Content == "" {
			httpx.LogStatusMsg(w, http.StatusBadRequest, log.DebugLevel, "policy.validate", "title and content are required")
			return
		}
		if !model.ValidPolicyCategory(policy.Category) {
			httpx.LogStatusMsg(w, http.StatusBadRequest, log.DebugLevel, "policy.validate", "unknown category %q", policy.Category)
			return
		}

		policy.AuthorID = userId
		err = app.QueryRowContext(r.Context(), `
			INSERT INTO policy (title, content, category, author_id) VALUES (?, ?, ?, ?)
			RETURNING id, support_count, created_at`,
			policy.Title,
			policy.Content,
			policy.Category,
			policy.AuthorID,
		).Scan(&policy.ID, &policy.SupportCount, &policy.CreatedAt)
		if err != nil {
			httpx.LogInternalError(w, "db.insert_policy", err)
			return
		}

		w.WriteHeader(http.StatusCreated)
		render.JSON(w, r, map[string]any{"policy": policy})
	}
}

// SupportPolicy records one support vote per (policy, user) and bumps the
// policy's denormalized counter in the same transaction.
func SupportPolicy(app app.App) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		policyId, err := strconv.Atoi(chi.URLParam(r, "id"))
		if err != nil {
			httpx.LogStatus(w, http.StatusBadRequest, log.DebugLevel, "request.get_url_param.id")
			return
		}

		userId, ok := currentUserID(r)
		if !ok {
			httpx.LogStatus(w, http.StatusUnauthorized, log.DebugLevel, "policy.support.not_authenticated")
			return
		}

		tx, err := app.BeginTx(r.Context(), nil)
		if err != nil {
			httpx.LogInternalError(w, "db.begin_tx", err)
			return
		}
		defer tx.Rollback()

		var exists bool
		err = tx.QueryRowContext(r.Context(),
			"SELECT 1 FROM policy WHERE id = ?", policyId,
		).Scan(&exists)
		if errors.Is(err, sql.ErrNoRows) {
			httpx.LogNotFound(w, "get_policy", policyId)
			return
		}
		if err != nil {
			httpx.LogInternalError(w, "db.get_policy", err)
			return
		}

		var alreadySupported bool
		err = tx.QueryRowContext(r.Context(),
			"SELECT 1 FROM policy_support WHERE policy_id = ? AND user_id = ?", policyId, userId,
		).Scan(&alreadySupported)
		if err != nil && !errors.Is(err, sql.ErrNoRows) {
			httpx.LogInternalError(w, "db.get_policy_support", err)
			return
		}
		if alreadySupported {
			httpx.LogStatusMsg(w, http.StatusBadRequest, log.DebugLevel, "policy.support.duplicate", "already supported this policy")
			return
		}

		_, err = tx.ExecContext(r.Context(),
			"INSERT INTO policy_support (policy_id, user_id) VALUES (?, ?)", policyId, userId,
		)
		if err != nil {
			httpx.LogInternalError(w, "db.insert_policy_support", err)
			return
		}
		_, err = tx.ExecContext(r.Context(),
			"UPDATE policy SET support_count = support_count + 1 WHERE id = ?", policyId,
		)
		if err != nil {
			httpx.LogInternalError(w, "db.update_policy_support_count", err)
			return
		}

		err = tx.Commit()
		if err != nil {
			httpx.LogInternalError(w, "db.support_policy.commit", err)
			return
		}

		render.JSON(w, r, map[string]any{"message": "policy supported"})
	}
}

func PolicySupportStatus(app app.App) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		policyId, err := strconv.Atoi(chi.URLParam(r, "id"))
		if err != nil {
			httpx.LogStatus(w, http.StatusBadRequest, log.DebugLevel, "request.get_url_param.id")
			return
		}

		userId, ok := currentUserID(r)
		if !ok {
			httpx.LogStatus(w, http.StatusUnauthorized, log.DebugLevel, "policy.support_status.not_authenticated")
			return
		}

		var hasSupported bool
		err = app.QueryRowContext(r.Context(),
			"SELECT 1 FROM policy_support WHERE policy_id = ? AND user_id = ?", policyId, userId,
		).Scan(&hasSupported)
		if err != nil && !errors.Is(err, sql.ErrNoRows) {
			httpx.LogInternalError(w, "db.get_policy_support", err)
			return
		}

		render.JSON(w, r, map[string]any{"hasSupported": hasSupported})
	}
}

func ListNotices(app app.App) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		rows, err := app.QueryContext(r.Context(), `
			SELECT id, title, content, type, created_at
			FROM notice
			ORDER BY created_at DESC`)
		if err != nil {
			httpx.LogInternalError(w, "db.get_notices", err)
			return
		}
		defer rows.Close()

		notices := []model.Notice{}
		for rows.Next() {
			n := model.Notice{}
			err = rows.Scan(&n.ID, &n.Title, &n.Content, &n.Type, &n.CreatedAt)
			if err != nil {
				httpx.LogInternalError(w, "db.get_notices.scan", err)
				return
			}
			notices = append(notices, n)
		}

		render.JSON(w, r, map[string]any{"notices": notices})
	}
}

func ListResources(app app.App) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		rows, err := app.QueryContext(r.Context(), `
			SELECT id, title, type, url, description, metadata, created_at
			FROM resource
			ORDER BY created_at DESC`)
		if err != nil {
			httpx.LogInternalError(w, "db.get_resources", err)
			return
		}
		defer rows.Close()

		resources := []model.Resource{}
		for rows.Next() {
			res := model.Resource{}
			var url, description, metadata sql.NullString
			err = rows.Scan(&res.ID, &res.Title, &res.Type, &url, &description, &metadata, &res.CreatedAt)
			if err != nil {
				httpx.LogInternalError(w, "db.get_resources.scan", err)
				return
			}
			res.Url = url.String
			res.Description = description.String

			if metadata.String != "" {
				err = json.Unmarshal([]byte(metadata.String), &res.Metadata)
				if err != nil {
					httpx.LogInternalError(w, "db.get_resources.parse_metadata", err)
					return
				}
			}

			resources = append(resources, res)
		}

		render.JSON(w, r, map[string]any{"resources": resources})
	}
}

func GetStats(app app.App) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		stats := model.Stats{}
		err := app.QueryRowContext(r.Context(), `
			SELECT
				(SELECT COUNT(*) FROM signature),
				(SELECT COUNT(*) FROM policy),
				(SELECT COUNT(*) FROM policy_support),
				(SELECT COUNT(*) FROM user)`,
		).Scan(&stats.SignatureCount, &stats.PolicyCount, &stats.SupportCount, &stats.UserCount)
		if err != nil {
			httpx.LogInternalError(w, "db.get_stats", err)
			return
		}

		render.JSON(w, r, map[string]any{"stats": stats})
	}
}

func ListWebContent(app app.App) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		query := `
			SELECT id, section, key, title, content, metadata, is_active, created_at, updated_at
			FROM web_content
			WHERE is_active`
		args := []any{}

		section := r.URL.Query().Get("section")
		if section != "" {
			query += " AND section = ?"
			args = append(args, section)
		}
		query += " ORDER BY section, key"

		rows, err := app.QueryContext(r.Context(), query, args...)
		if err != nil {
			httpx.LogInternalError(w, "db.get_web_content", err)
			return
		}
		defer rows.Close()

		content := []model.WebContent{}
		for rows.Next() {
			c, err := scanWebContent(rows.Scan)
			if err != nil {
				httpx.LogInternalError(w, "db.get_web_content.scan", err)
				return
			}
			content = append(content, c)
		}

		render.JSON(w, r, map[string]any{"content": content})
	}
}

func GetWebContent(app app.App) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		section := chi.URLParam(r, "section")
		key := chi.URLParam(r, "key")

		row := app.QueryRowContext(r.Context(), `
			SELECT id, section, key, title, content, metadata, is_active, created_at, updated_at
			FROM web_content
			WHERE section = ? AND key = ?`,
			section, key,
		)
		content, err := scanWebContent(row.Scan)
		if errors.Is(err, sql.ErrNoRows) {
			httpx.LogNotFound(w, "get_web_content", section+"/"+key)
			return
		}
		if err != nil {
			httpx.LogInternalError(w, "db.get_web_content", err)
			return
		}

		render.JSON(w, r, map[string]any{"content": content})
	}
}

func scanWebContent(scan func(...any) error) (c model.WebContent, err error) {
	var title, metadata sql.NullString
	err = scan(&c.ID, &c.Section, &c.Key, &title, &c.Content, &metadata, &c.IsActive, &c.CreatedAt, &c.UpdatedAt)
	if err != nil {
		return
	}
	c.Title = title.String

	if metadata.String != "" {
		err = json.Unmarshal([]byte(metadata.String), &c.Metadata)
	}
	return
}
