package routes

import (
	"net/http"
	"net/http/httptest"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestInitializeContentIdempotent(t *testing.T) {
	a := testApp(t)
	handler := InitializeContent(a)

	rec := httptest.NewRecorder()
	handler(rec, httptest.NewRequest("POST", "/initialize-content", nil))
	require.Equal(t, http.StatusOK, rec.Code)

	var total int
	err := a.QueryRow("SELECT COUNT(*) FROM web_content").Scan(&total)
	require.NoError(t, err)
	assert.Equal(t, len(defaultWebContent), total)

	// existing rows keep admin edits on re-initialization
	_, err = a.Exec(
		"UPDATE web_content SET content = ? WHERE section = ? AND key = ?",
		"수정된 제목", "hero", "main_title",
	)
	require.NoError(t, err)

	rec = httptest.NewRecorder()
	handler(rec, httptest.NewRequest("POST", "/initialize-content", nil))
	require.Equal(t, http.StatusOK, rec.Code)

	err = a.QueryRow("SELECT COUNT(*) FROM web_content").Scan(&total)
	require.NoError(t, err)
	assert.Equal(t, len(defaultWebContent), total)

	var content string
	err = a.QueryRow(
		"SELECT content FROM web_content WHERE section = ? AND key = ?",
		"hero", "main_title",
	).Scan(&content)
	require.NoError(t, err)
	assert.Equal(t, "수정된 제목", content)
}

func TestInitializeSurveyContentOverwrites(t *testing.T) {
	a := testApp(t)
	handler := InitializeSurveyContent(a)

	rec := httptest.NewRecorder()
	handler(rec, httptest.NewRequest("POST", "/initialize-survey-content", nil))
	require.Equal(t, http.StatusOK, rec.Code)

	var total int
	err := a.QueryRow("SELECT COUNT(*) FROM web_content WHERE section = 'survey'").Scan(&total)
	require.NoError(t, err)
	assert.Equal(t, len(surveyWebContent), total)

	// unlike the site content, the survey copy resets to the defaults
	_, err = a.Exec(
		"UPDATE web_content SET content = ? WHERE section = ? AND key = ?",
		"수정된 버튼", "survey", "submit_button",
	)
	require.NoError(t, err)

	rec = httptest.NewRecorder()
	handler(rec, httptest.NewRequest("POST", "/initialize-survey-content", nil))
	require.Equal(t, http.StatusOK, rec.Code)

	var content string
	err = a.QueryRow(
		"SELECT content FROM web_content WHERE section = ? AND key = ?",
		"survey", "submit_button",
	).Scan(&content)
	require.NoError(t, err)
	assert.Equal(t, "설문 제출하기", content)

	err = a.QueryRow("SELECT COUNT(*) FROM web_content WHERE section = 'survey'").Scan(&total)
	require.NoError(t, err)
	assert.Equal(t, len(surveyWebContent), total)
}

func TestInstalledContentServed(t *testing.T) {
	a := testApp(t)
	router := apiRouter(a)

	rec := httptest.NewRecorder()
	InitializeContent(a)(rec, httptest.NewRequest("POST", "/initialize-content", nil))
	require.Equal(t, http.StatusOK, rec.Code)

	// the public web-content endpoint serves the installed defaults
	req := httptest.NewRequest("GET", "/web-content/hero/main_title", nil)
	rec = httptest.NewRecorder()
	router.ServeHTTP(rec, req)
	require.Equal(t, http.StatusOK, rec.Code)
	assert.Contains(t, rec.Body.String(), "진안군 목조전망대 건설 반대")
}
