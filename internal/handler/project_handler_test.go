package handler

import (
	"net/http"
	"testing"

	"github.com/gin-gonic/gin"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func newProjectRouter(t *testing.T) *gin.Engine {
	t.Helper()
	gin.SetMode(gin.TestMode)

	h := NewProjectHandler(nil)
	r := gin.New()
	r.POST("/api/projects/add", h.CreateProject)
	r.GET("/api/projects/:projectId", h.GetProject)
	r.PUT("/api/projects/:projectId", h.UpdateProject)
	return r
}

func TestCreateProjectValidation(t *testing.T) {
	r := newProjectRouter(t)

	t.Run("malformed body", func(t *testing.T) {
		w := doRequest(r, http.MethodPost, "/api/projects/add", "[")
		assert.Equal(t, http.StatusBadRequest, w.Code)
		resp := decodeResponse(t, w)
		assert.Equal(t, "Invalid request body", resp.Message)
	})

	t.Run("title too short", func(t *testing.T) {
		body := `{
			"title": "tiny",
			"description": "A long enough project description for validation.",
			"image": "https://example.com/img.png",
			"goal": 10,
			"daysLeft": 30,
			"category": "Technology",
			"creator": "Builder"
		}`
		w := doRequest(r, http.MethodPost, "/api/projects/add", body)
		assert.Equal(t, http.StatusBadRequest, w.Code)
		resp := decodeResponse(t, w)
		assert.Equal(t, "Validation failed", resp.Message)
		require.Len(t, resp.Errors, 1)
		assert.Equal(t, "title", resp.Errors[0].Field)
		assert.Equal(t, "Title must be between 5 and 100 characters", resp.Errors[0].Message)
	})

	t.Run("invalid category and goal", func(t *testing.T) {
		body := `{
			"title": "A reasonable title",
			"description": "A long enough project description for validation.",
			"image": "https://example.com/img.png",
			"goal": 0.01,
			"daysLeft": 30,
			"category": "NotACategory",
			"creator": "Builder"
		}`
		w := doRequest(r, http.MethodPost, "/api/projects/add", body)
		assert.Equal(t, http.StatusBadRequest, w.Code)
		resp := decodeResponse(t, w)
		fields := make([]string, 0, len(resp.Errors))
		for _, e := range resp.Errors {
			fields = append(fields, e.Field)
		}
		assert.ElementsMatch(t, []string{"goal", "category"}, fields)
	})
}

func TestGetProjectInvalidID(t *testing.T) {
	r := newProjectRouter(t)

	w := doRequest(r, http.MethodGet, "/api/projects/abc", "")
	assert.Equal(t, http.StatusBadRequest, w.Code)
	resp := decodeResponse(t, w)
	assert.Equal(t, "Invalid project ID", resp.Message)
}

func TestUpdateProjectValidation(t *testing.T) {
	r := newProjectRouter(t)

	t.Run("unknown field rejected", func(t *testing.T) {
		w := doRequest(r, http.MethodPut, "/api/projects/1", `{"title": "new title"}`)
		assert.Equal(t, http.StatusBadRequest, w.Code)
		resp := decodeResponse(t, w)
		assert.Equal(t, "Unknown field: title", resp.Message)
	})

	t.Run("invalid status value", func(t *testing.T) {
		w := doRequest(r, http.MethodPut, "/api/projects/1", `{"status": "completed"}`)
		assert.Equal(t, http.StatusBadRequest, w.Code)
		resp := decodeResponse(t, w)
		require.Len(t, resp.Errors, 1)
		assert.Equal(t, "status", resp.Errors[0].Field)
		assert.Equal(t, "Invalid project status", resp.Errors[0].Message)
	})

	t.Run("negative raised rejected", func(t *testing.T) {
		w := doRequest(r, http.MethodPut, "/api/projects/1", `{"raised": -1}`)
		assert.Equal(t, http.StatusBadRequest, w.Code)
		resp := decodeResponse(t, w)
		require.Len(t, resp.Errors, 1)
		assert.Equal(t, "raised", resp.Errors[0].Field)
	})

	t.Run("non numeric backers rejected", func(t *testing.T) {
		w := doRequest(r, http.MethodPut, "/api/projects/1", `{"backers": "many"}`)
		assert.Equal(t, http.StatusBadRequest, w.Code)
		resp := decodeResponse(t, w)
		require.Len(t, resp.Errors, 1)
		assert.Equal(t, "backers", resp.Errors[0].Field)
	})

	t.Run("invalid id", func(t *testing.T) {
		w := doRequest(r, http.MethodPut, "/api/projects/abc", `{"status": "funded"}`)
		assert.Equal(t, http.StatusBadRequest, w.Code)
		resp := decodeResponse(t, w)
		assert.Equal(t, "Invalid project ID", resp.Message)
	})
}
