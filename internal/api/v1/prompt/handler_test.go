package prompt_test

import (
	"bytes"
	"context"
	"encoding/json"
	"fmt"
	"mime/multipart"
	"net/http"
	"net/http/httptest"
	"strings"
	"testing"
	"time"

	"github.com/Sandeep010-hub/promptcraft-fusion/internal/api/v1/prompt"
	"github.com/Sandeep010-hub/promptcraft-fusion/internal/database"
	"github.com/Sandeep010-hub/promptcraft-fusion/internal/models"
	"github.com/Sandeep010-hub/promptcraft-fusion/internal/services"
	"github.com/Sandeep010-hub/promptcraft-fusion/internal/utils"
	"github.com/Sandeep010-hub/promptcraft-fusion/pkg/logger"
	"github.com/gin-gonic/gin"
	"github.com/glebarez/sqlite"
	"github.com/google/uuid"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"go.uber.org/zap"
	"gorm.io/gorm"
)

type stubGenerator struct {
	text string
	err  error
}

func (s stubGenerator) Generate(ctx context.Context, instruction string) (string, error) {
	return s.text, s.err
}

type testEnv struct {
	router *gin.Engine
	user   models.User
	token  string
	other  string
}

func setupTestEnv(t *testing.T) *testEnv {
	t.Helper()
	logger.Log = zap.NewNop()
	gin.SetMode(gin.TestMode)
	t.Setenv("JWT_SECRET", "test_secret")
	services.SetRetryDelay(time.Millisecond)

	db, err := gorm.Open(sqlite.Open(fmt.Sprintf("file:%s?mode=memory&cache=shared", uuid.NewString())), &gorm.Config{})
	require.NoError(t, err)
	require.NoError(t, db.AutoMigrate(&models.User{}, &models.Prompt{}))
	database.DB = db
	database.RedisClient = nil

	user := models.User{Username: "alice", Password: "hash"}
	require.NoError(t, db.Create(&user).Error)
	other := models.User{Username: "bob", Password: "hash"}
	require.NoError(t, db.Create(&other).Error)

	token, _, err := utils.GenerateToken(user.ID, user.Username)
	require.NoError(t, err)
	otherToken, _, err := utils.GenerateToken(other.ID, other.Username)
	require.NoError(t, err)

	router := gin.New()
	prompt.RegisterRoutes(router.Group("/api/v1"))

	return &testEnv{router: router, user: user, token: token, other: otherToken}
}

func (e *testEnv) do(t *testing.T, method, path, token string, body interface{}) *httptest.ResponseRecorder {
	t.Helper()
	var buf bytes.Buffer
	if body != nil {
		switch b := body.(type) {
		case string:
			buf.WriteString(b)
		default:
			require.NoError(t, json.NewEncoder(&buf).Encode(b))
		}
	}
	req, _ := http.NewRequest(method, path, &buf)
	req.Header.Set("Content-Type", "application/json")
	if token != "" {
		req.Header.Set("Authorization", "Bearer "+token)
	}
	w := httptest.NewRecorder()
	e.router.ServeHTTP(w, req)
	return w
}

func decodeError(t *testing.T, w *httptest.ResponseRecorder) string {
	t.Helper()
	var resp utils.ErrorResponse
	require.NoError(t, json.Unmarshal(w.Body.Bytes(), &resp))
	return resp.Error
}

func TestGeneratePrompt(t *testing.T) {
	env := setupTestEnv(t)

	services.SetTextGenerator(stubGenerator{text: "## **Refined** prompt\n"}, time.Second)
	t.Cleanup(func() { services.SetTextGenerator(nil, 0) })

	w := env.do(t, http.MethodPost, "/api/v1/prompts/generate", "", prompt.GeneratePromptRequest{Prompt: "hi", TargetModel: "Gemini"})
	assert.Equal(t, http.StatusOK, w.Code)

	var resp prompt.GeneratePromptResponse
	require.NoError(t, json.Unmarshal(w.Body.Bytes(), &resp))
	assert.Equal(t, "Refined prompt", resp.GeneratedPrompt)
}

func TestGeneratePromptErrors(t *testing.T) {
	env := setupTestEnv(t)
	t.Cleanup(func() { services.SetTextGenerator(nil, 0) })

	tests := []struct {
		name          string
		generator     services.TextGenerator
		body          interface{}
		expectedCode  int
		expectedError string
	}{
		{"Missing prompt", stubGenerator{text: "x"}, prompt.GeneratePromptRequest{TargetModel: "All"}, http.StatusBadRequest, "Missing prompt or targetModel"},
		{"Missing target", stubGenerator{text: "x"}, prompt.GeneratePromptRequest{Prompt: "hi"}, http.StatusBadRequest, "Missing prompt or targetModel"},
		{"Malformed body", stubGenerator{text: "x"}, `{"prompt":`, http.StatusBadRequest, "Malformed JSON or invalid request body"},
		{"Not configured", nil, prompt.GeneratePromptRequest{Prompt: "hi", TargetModel: "All"}, http.StatusInternalServerError, "Text generation API key not configured"},
		{"Provider failure", stubGenerator{err: &services.ProviderError{Provider: "Gemini", StatusCode: 500, Body: "quota detail"}}, prompt.GeneratePromptRequest{Prompt: "hi", TargetModel: "All"}, http.StatusInternalServerError, "Internal server error"},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			services.SetTextGenerator(tt.generator, time.Second)
			w := env.do(t, http.MethodPost, "/api/v1/prompts/generate", "", tt.body)
			assert.Equal(t, tt.expectedCode, w.Code)
			assert.Equal(t, tt.expectedError, decodeError(t, w))
			assert.NotContains(t, w.Body.String(), "quota detail")
		})
	}
}

func TestSavePrompt(t *testing.T) {
	env := setupTestEnv(t)

	w := env.do(t, http.MethodPost, "/api/v1/prompts/save", env.token, prompt.SavePromptRequest{
		OriginalPrompt:  "hi",
		GeneratedPrompt: "Hello there",
		TargetModel:     "ChatGPT",
	})
	require.Equal(t, http.StatusOK, w.Code)

	var resp prompt.SavePromptResponse
	require.NoError(t, json.Unmarshal(w.Body.Bytes(), &resp))
	assert.True(t, resp.Success)
	assert.Equal(t, "Prompt saved successfully", resp.Message)

	var stored models.Prompt
	require.NoError(t, database.DB.First(&stored, "id = ?", resp.PromptID).Error)
	assert.Equal(t, env.user.ID, stored.UserID)
	assert.Equal(t, "Hello there", stored.GeneratedPrompt)
	assert.Equal(t, []string{"ChatGPT"}, []string(stored.Tags))
}

func TestSavePromptErrors(t *testing.T) {
	env := setupTestEnv(t)

	tests := []struct {
		name          string
		token         string
		body          interface{}
		expectedCode  int
		expectedError string
	}{
		{"No token", "", prompt.SavePromptRequest{GeneratedPrompt: "x", TargetModel: "Gemini"}, http.StatusUnauthorized, "No authorization header"},
		{"Bad token", "garbage", prompt.SavePromptRequest{GeneratedPrompt: "x", TargetModel: "Gemini"}, http.StatusUnauthorized, "Invalid or expired token"},
		{"Missing generated", env.token, prompt.SavePromptRequest{TargetModel: "Gemini"}, http.StatusBadRequest, "Missing required fields: generatedPrompt, and targetModel"},
		{"Missing target", env.token, prompt.SavePromptRequest{GeneratedPrompt: "x"}, http.StatusBadRequest, "Missing required fields: generatedPrompt, and targetModel"},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			w := env.do(t, http.MethodPost, "/api/v1/prompts/save", tt.token, tt.body)
			assert.Equal(t, tt.expectedCode, w.Code)
			assert.Equal(t, tt.expectedError, decodeError(t, w))
		})
	}

	var count int64
	database.DB.Model(&models.Prompt{}).Count(&count)
	assert.Zero(t, count)
}

func TestCreatePromptSharesSavePath(t *testing.T) {
	env := setupTestEnv(t)

	w := env.do(t, http.MethodPost, "/api/v1/prompts", env.token, prompt.SavePromptRequest{
		OriginalPrompt:  "Weekly report",
		GeneratedPrompt: "Summarise the week",
		TargetModel:     "Claude",
		Tags:            []string{"work"},
		Starred:         true,
	})
	require.Equal(t, http.StatusCreated, w.Code)

	var resp prompt.SavePromptResponse
	require.NoError(t, json.Unmarshal(w.Body.Bytes(), &resp))

	w = env.do(t, http.MethodGet, "/api/v1/prompts/"+resp.PromptID, env.token, nil)
	require.Equal(t, http.StatusOK, w.Code)

	var view services.PromptView
	require.NoError(t, json.Unmarshal(w.Body.Bytes(), &view))
	assert.Equal(t, "Weekly report", view.Title)
	assert.Equal(t, []string{"work"}, view.Tags)
	assert.True(t, view.Starred)
	assert.Equal(t, 1, view.UsageCount)
}

func TestListPrompts(t *testing.T) {
	env := setupTestEnv(t)
	base := time.Date(2024, 2, 9, 10, 0, 0, 0, time.UTC)

	database.DB.Create(&models.Prompt{UserID: env.user.ID, OriginalPrompt: "first", GeneratedPrompt: "g1", TargetModel: "Gemini", CreatedAt: base})
	database.DB.Create(&models.Prompt{UserID: env.user.ID, OriginalPrompt: "second", GeneratedPrompt: "g2", TargetModel: "Claude", CreatedAt: base.Add(time.Minute)})
	database.DB.Create(&models.Prompt{UserID: env.user.ID + 1, OriginalPrompt: "not mine", GeneratedPrompt: "g3", TargetModel: "Gemini", CreatedAt: base})

	tests := []struct {
		name   string
		method string
		path   string
		body   interface{}
		want   []string
	}{
		{"Empty body", http.MethodPost, "/api/v1/prompts/list", nil, []string{"second", "first"}},
		{"Empty object", http.MethodPost, "/api/v1/prompts/list", prompt.ListPromptsRequest{}, []string{"second", "first"}},
		{"Category", http.MethodPost, "/api/v1/prompts/list", prompt.ListPromptsRequest{Category: "Gemini"}, []string{"first"}},
		{"Search", http.MethodPost, "/api/v1/prompts/list", prompt.ListPromptsRequest{Search: "SEC"}, []string{"second"}},
		{"Query string", http.MethodGet, "/api/v1/prompts?category=All&search=g", nil, []string{"second", "first"}},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			w := env.do(t, tt.method, tt.path, env.token, tt.body)
			require.Equal(t, http.StatusOK, w.Code)

			var resp prompt.ListPromptsResponse
			require.NoError(t, json.Unmarshal(w.Body.Bytes(), &resp))
			assert.Equal(t, len(tt.want), resp.Total)

			var titles []string
			for _, p := range resp.Prompts {
				titles = append(titles, p.Title)
			}
			assert.Equal(t, tt.want, titles)
		})
	}

	w := env.do(t, http.MethodPost, "/api/v1/prompts/list", env.token, prompt.ListPromptsRequest{Category: "Gemini"})
	var raw map[string][]map[string]interface{}
	require.NoError(t, json.Unmarshal(w.Body.Bytes(), &raw))
	item := raw["prompts"][0]
	assert.Equal(t, "first", item["title"])
	assert.Equal(t, "g1", item["content"])
	assert.Equal(t, "Gemini", item["category"])
	assert.Equal(t, []interface{}{"Gemini"}, item["tags"])
	assert.Equal(t, float64(1), item["usage_count"])
	assert.Equal(t, false, item["starred"])
	assert.Equal(t, "2/9/2024", item["created_at"])
	assert.NotContains(t, item, "output_url")

	w = env.do(t, http.MethodPost, "/api/v1/prompts/list", env.token, prompt.ListPromptsRequest{Search: strings.Repeat("x", 501)})
	assert.Equal(t, http.StatusBadRequest, w.Code)
	assert.Contains(t, w.Body.String(), "Field 'search' must be at most 500 characters long")

	w = env.do(t, http.MethodPost, "/api/v1/prompts/list", env.token, `{"search":5}`)
	assert.Equal(t, http.StatusBadRequest, w.Code)
	assert.Equal(t, "Field 'search' has invalid type", decodeError(t, w))

	w = env.do(t, http.MethodPost, "/api/v1/prompts/list", env.token, `{"search":`)
	assert.Equal(t, http.StatusBadRequest, w.Code)
	assert.Equal(t, "Malformed JSON or invalid request body", decodeError(t, w))

	w = env.do(t, http.MethodPost, "/api/v1/prompts/list", "", nil)
	assert.Equal(t, http.StatusUnauthorized, w.Code)
}

func TestStarAndUse(t *testing.T) {
	env := setupTestEnv(t)
	p := models.Prompt{UserID: env.user.ID, GeneratedPrompt: "g", TargetModel: "Gemini"}
	require.NoError(t, database.DB.Create(&p).Error)

	w := env.do(t, http.MethodPost, "/api/v1/prompts/"+p.ID+"/star", env.token, nil)
	require.Equal(t, http.StatusOK, w.Code)
	var view services.PromptView
	require.NoError(t, json.Unmarshal(w.Body.Bytes(), &view))
	assert.True(t, view.Starred)

	w = env.do(t, http.MethodPost, "/api/v1/prompts/"+p.ID+"/use", env.token, nil)
	require.Equal(t, http.StatusOK, w.Code)
	require.NoError(t, json.Unmarshal(w.Body.Bytes(), &view))
	assert.Equal(t, 2, view.UsageCount)

	for _, path := range []string{"/api/v1/prompts/" + p.ID + "/star", "/api/v1/prompts/" + p.ID + "/use"} {
		w = env.do(t, http.MethodPost, path, env.other, nil)
		assert.Equal(t, http.StatusNotFound, w.Code)
		assert.Equal(t, "Prompt not found", decodeError(t, w))
	}

	w = env.do(t, http.MethodGet, "/api/v1/prompts/"+p.ID, env.other, nil)
	assert.Equal(t, http.StatusNotFound, w.Code)
}

func multipartBody(t *testing.T, promptID, filename, contentType string, data []byte) (*bytes.Buffer, string) {
	t.Helper()
	var buf bytes.Buffer
	mw := multipart.NewWriter(&buf)
	if promptID != "" {
		require.NoError(t, mw.WriteField("promptId", promptID))
	}
	if filename != "" {
		h := make(map[string][]string)
		h["Content-Disposition"] = []string{fmt.Sprintf(`form-data; name="file"; filename="%s"`, filename)}
		if contentType != "" {
			h["Content-Type"] = []string{contentType}
		}
		part, err := mw.CreatePart(h)
		require.NoError(t, err)
		_, err = part.Write(data)
		require.NoError(t, err)
	}
	require.NoError(t, mw.Close())
	return &buf, mw.FormDataContentType()
}

func (e *testEnv) upload(t *testing.T, token, promptID, filename, contentType string, data []byte) *httptest.ResponseRecorder {
	t.Helper()
	body, ct := multipartBody(t, promptID, filename, contentType, data)
	req, _ := http.NewRequest(http.MethodPost, "/api/v1/prompts/upload", body)
	req.Header.Set("Content-Type", ct)
	req.Header.Set("Authorization", "Bearer "+token)
	w := httptest.NewRecorder()
	e.router.ServeHTTP(w, req)
	return w
}

func TestUploadOutput(t *testing.T) {
	env := setupTestEnv(t)
	store, err := services.NewLocalStorage(t.TempDir(), "prompt_outputs", "http://localhost:8080/storage")
	require.NoError(t, err)
	services.SetObjectStorage(store)
	t.Cleanup(func() { services.SetObjectStorage(nil) })

	p := models.Prompt{UserID: env.user.ID, GeneratedPrompt: "g", TargetModel: "Gemini"}
	require.NoError(t, database.DB.Create(&p).Error)

	w := env.upload(t, env.token, p.ID, "result.png", "image/png", []byte("png-bytes"))
	require.Equal(t, http.StatusOK, w.Code)

	var resp prompt.UploadOutputResponse
	require.NoError(t, json.Unmarshal(w.Body.Bytes(), &resp))
	assert.True(t, resp.Success)
	assert.Regexp(t, fmt.Sprintf(`^http://localhost:8080/storage/prompt_outputs/%d/%s/\d+-[0-9a-f]{8}\.png$`, env.user.ID, p.ID), resp.OutputURL)

	var stored models.Prompt
	require.NoError(t, database.DB.First(&stored, "id = ?", p.ID).Error)
	require.True(t, stored.HasOutput())
	assert.Equal(t, resp.OutputURL, *stored.OutputURL)
	assert.Equal(t, "image/png", *stored.OutputType)

	// no Content-Type on the file part
	w = env.upload(t, env.token, p.ID, "notes", "", []byte("raw"))
	require.Equal(t, http.StatusOK, w.Code)
	require.NoError(t, database.DB.First(&stored, "id = ?", p.ID).Error)
	assert.Equal(t, "application/octet-stream", *stored.OutputType)
}

func TestUploadOutputErrors(t *testing.T) {
	env := setupTestEnv(t)
	store, err := services.NewLocalStorage(t.TempDir(), "prompt_outputs", "http://localhost:8080/storage")
	require.NoError(t, err)
	services.SetObjectStorage(store)
	t.Cleanup(func() { services.SetObjectStorage(nil) })

	p := models.Prompt{UserID: env.user.ID, GeneratedPrompt: "g", TargetModel: "Gemini"}
	require.NoError(t, database.DB.Create(&p).Error)

	w := env.upload(t, env.token, p.ID, "", "", nil)
	assert.Equal(t, http.StatusBadRequest, w.Code)
	assert.Equal(t, "Missing required fields: file and promptId", decodeError(t, w))

	w = env.upload(t, env.token, "", "a.txt", "text/plain", []byte("a"))
	assert.Equal(t, http.StatusBadRequest, w.Code)
	assert.Equal(t, "Missing required fields: file and promptId", decodeError(t, w))

	w = env.upload(t, env.other, p.ID, "a.txt", "text/plain", []byte("a"))
	assert.Equal(t, http.StatusNotFound, w.Code)
	assert.Equal(t, "Prompt not found", decodeError(t, w))

	services.SetObjectStorage(nil)
	w = env.upload(t, env.token, p.ID, "a.txt", "text/plain", []byte("a"))
	assert.Equal(t, http.StatusInternalServerError, w.Code)
	assert.Equal(t, "Failed to upload file to storage", decodeError(t, w))

	var stored models.Prompt
	require.NoError(t, database.DB.First(&stored, "id = ?", p.ID).Error)
	assert.False(t, stored.HasOutput())
}

func TestUploadOutputTooLarge(t *testing.T) {
	env := setupTestEnv(t)
	t.Setenv("UPLOAD_MAX_SIZE_MB", "1")
	store, err := services.NewLocalStorage(t.TempDir(), "prompt_outputs", "http://localhost:8080/storage")
	require.NoError(t, err)
	services.SetObjectStorage(store)
	t.Cleanup(func() { services.SetObjectStorage(nil) })

	p := models.Prompt{UserID: env.user.ID, GeneratedPrompt: "g", TargetModel: "Gemini"}
	require.NoError(t, database.DB.Create(&p).Error)

	w := env.upload(t, env.token, p.ID, "big.bin", "", bytes.Repeat([]byte("x"), (1<<20)+10))
	assert.Equal(t, http.StatusBadRequest, w.Code)
	assert.Equal(t, "File exceeds the 1 MB upload limit", decodeError(t, w))
}
