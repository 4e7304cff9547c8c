package app

import (
	"bytes"
	"encoding/json"
	"exam_prep_backend/internal/config"
	"exam_prep_backend/internal/model"
	"exam_prep_backend/internal/testutil"
	"exam_prep_backend/internal/util"
	"fmt"
	"net/http"
	"net/http/httptest"
	"testing"
	"time"

	"github.com/gin-gonic/gin"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"gorm.io/gorm"
)

const testSecret = "test-secret-that-is-long-enough-for-hs256"

type envelope struct {
	Code    int               `json:"code"`
	Message string            `json:"message"`
	Data    json.RawMessage   `json:"data"`
	Errors  []util.FieldError `json:"errors"`
}

type testServer struct {
	t   *testing.T
	app *App
	db  *gorm.DB
}

func newTestServer(t *testing.T) *testServer {
	t.Helper()
	gin.SetMode(gin.TestMode)

	cfg := &config.Config{
		Server:    config.ServerConfig{Port: "0", Mode: "test"},
		JWT:       config.JWTConfig{Secret: testSecret, ExpireTime: time.Hour},
		Storage:   config.StorageConfig{Type: util.StorageLocal, LocalPath: t.TempDir()},
		CORS:      config.CORSConfig{AllowedOrigins: []string{"*"}},
		RateLimit: config.RateLimitConfig{MaxRequests: 10000, WindowMinutes: 1},
		Assessment: config.AssessmentConfig{
			DefaultLanguage: "KIN",
			DefaultCount:    10,
			MaxCount:        100,
			PassingScore:    70,
		},
	}
	db := testutil.NewDB(t)
	return &testServer{t: t, app: New(cfg, db, nil), db: db}
}

func (s *testServer) token(userID string, role model.UserRole) string {
	s.t.Helper()
	tok, err := util.GenerateDevJWT(model.Principal{UserID: userID, Role: role}, testSecret, time.Hour)
	require.NoError(s.t, err)
	return tok
}

func (s *testServer) do(method, path, token string, body interface{}) (*httptest.ResponseRecorder, envelope) {
	s.t.Helper()

	var buf bytes.Buffer
	if body != nil {
		require.NoError(s.t, json.NewEncoder(&buf).Encode(body))
	}
	req := httptest.NewRequest(method, path, &buf)
	req.Header.Set("Content-Type", "application/json")
	if token != "" {
		req.Header.Set("Authorization", "Bearer "+token)
	}

	w := httptest.NewRecorder()
	s.app.Router.ServeHTTP(w, req)

	var env envelope
	if w.Body.Len() > 0 {
		_ = json.Unmarshal(w.Body.Bytes(), &env)
	}
	return w, env
}

func decode[T any](t *testing.T, raw json.RawMessage) T {
	t.Helper()
	var v T
	require.NoError(t, json.Unmarshal(raw, &v))
	return v
}

func TestHealthCheck(t *testing.T) {
	s := newTestServer(t)
	w, _ := s.do(http.MethodGet, "/api/health", "", nil)
	assert.Equal(t, http.StatusOK, w.Code)
}

func TestAuthMiddleware(t *testing.T) {
	s := newTestServer(t)

	w, env := s.do(http.MethodGet, "/api/exam-attempts", "", nil)
	assert.Equal(t, http.StatusOK, w.Code, "non-release requests without a header use the dev principal")

	w, env = s.do(http.MethodGet, "/api/exam-attempts", "garbage", nil)
	assert.Equal(t, http.StatusUnauthorized, w.Code)
	assert.Equal(t, "Token is not valid", env.Message)

	w, _ = s.do(http.MethodGet, "/api/enrollments", s.token("u1", model.RoleUser), nil)
	assert.Equal(t, http.StatusUnauthorized, w.Code)

	w, _ = s.do(http.MethodGet, "/api/enrollments", s.token("admin", model.RoleAdmin), nil)
	assert.Equal(t, http.StatusOK, w.Code)
}

func TestEnrollmentFlow(t *testing.T) {
	s := newTestServer(t)
	cat := testutil.CreateCategory(t, s.db, "Signs", model.LanguageKinyarwanda)
	course := testutil.CreateCourse(t, s.db, cat.ID, "instructor", 2)
	alice := s.token("alice", model.RoleUser)
	bob := s.token("bob", model.RoleUser)

	w, env := s.do(http.MethodPost, "/api/enrollments", alice, map[string]string{"courseId": course.ID})
	require.Equal(t, http.StatusCreated, w.Code)
	enrollment := decode[model.CourseEnrollment](t, env.Data)

	w, env = s.do(http.MethodPost, "/api/enrollments", alice, map[string]string{"courseId": course.ID})
	assert.Equal(t, http.StatusBadRequest, w.Code)
	assert.Equal(t, "Already enrolled in this course", env.Message)

	var count int64
	require.NoError(t, s.db.Model(&model.CourseEnrollment{}).Count(&count).Error)
	assert.Equal(t, int64(1), count)

	w, _ = s.do(http.MethodGet, "/api/enrollments/"+enrollment.ID, bob, nil)
	assert.Equal(t, http.StatusUnauthorized, w.Code)

	w, _ = s.do(http.MethodPut, "/api/enrollments/"+enrollment.ID+"/progress", alice, map[string]float64{"progress": 30})
	require.Equal(t, http.StatusOK, w.Code)

	for _, progress := range []float64{150, -1} {
		w, env = s.do(http.MethodPut, "/api/enrollments/"+enrollment.ID+"/progress", alice, map[string]float64{"progress": progress})
		assert.Equal(t, http.StatusBadRequest, w.Code)
		require.NotEmpty(t, env.Errors)
		assert.Equal(t, "progress", env.Errors[0].Field)
	}

	w, env = s.do(http.MethodGet, "/api/enrollments/"+enrollment.ID, alice, nil)
	require.Equal(t, http.StatusOK, w.Code)
	assert.Equal(t, 30.0, decode[model.CourseEnrollment](t, env.Data).Progress)

	w, env = s.do(http.MethodGet, "/api/enrollments/check/"+course.ID, bob, nil)
	require.Equal(t, http.StatusOK, w.Code)
	assert.JSONEq(t, `{"isEnrolled":false}`, string(env.Data))
}

func TestExamAttemptFlow(t *testing.T) {
	s := newTestServer(t)
	author := s.token("author", model.RoleUser)
	student := s.token("student", model.RoleUser)
	cat := testutil.CreateCategory(t, s.db, "Signs", model.LanguageKinyarwanda)

	var questionIDs []string
	for i := 0; i < 4; i++ {
		questionIDs = append(questionIDs, testutil.CreateQuestion(t, s.db, cat.ID, "author", 0).ID)
	}

	w, env := s.do(http.MethodPost, "/api/exams", author, map[string]interface{}{
		"title":        "Mock test",
		"duration":     20,
		"passingScore": 70,
		"language":     "KIN",
		"category":     cat.ID,
		"questions":    questionIDs,
	})
	require.Equal(t, http.StatusCreated, w.Code, env.Message)
	exam := decode[model.Exam](t, env.Data)

	w, _ = s.do(http.MethodPost, "/api/exam-attempts/start", student, map[string]string{"examId": exam.ID})
	assert.Equal(t, http.StatusBadRequest, w.Code, "draft exams cannot be attempted")

	w, _ = s.do(http.MethodPut, "/api/exams/"+exam.ID+"/publish", student, nil)
	assert.Equal(t, http.StatusUnauthorized, w.Code)

	w, _ = s.do(http.MethodPut, "/api/exams/"+exam.ID+"/publish", author, nil)
	require.Equal(t, http.StatusOK, w.Code)

	w, env = s.do(http.MethodPost, "/api/exam-attempts/start", student, map[string]string{"examId": exam.ID})
	require.Equal(t, http.StatusCreated, w.Code)
	attempt := decode[model.ExamAttempt](t, env.Data)
	assert.Equal(t, model.AttemptStatusInProgress, attempt.Status)

	for i, qid := range questionIDs {
		selected := 0
		if i == 0 {
			selected = 1
		}
		w, env = s.do(http.MethodPost, "/api/exam-attempts/submit-answer", student, map[string]interface{}{
			"attemptId":      attempt.ID,
			"questionId":     qid,
			"selectedOption": selected,
		})
		require.Equal(t, http.StatusOK, w.Code, env.Message)
	}

	w, env = s.do(http.MethodPost, "/api/exam-attempts/submit-answer", student, map[string]interface{}{
		"attemptId":  attempt.ID,
		"questionId": questionIDs[0],
	})
	assert.Equal(t, http.StatusBadRequest, w.Code)
	require.NotEmpty(t, env.Errors)
	assert.Equal(t, "selectedOption", env.Errors[0].Field)

	w, env = s.do(http.MethodPost, "/api/exam-attempts/submit-answer", student, map[string]interface{}{
		"attemptId":      attempt.ID,
		"questionId":     questionIDs[0],
		"selectedOption": 10,
	})
	assert.Equal(t, http.StatusBadRequest, w.Code)
	require.NotEmpty(t, env.Errors)
	assert.Equal(t, "selectedOption", env.Errors[0].Field)

	w, _ = s.do(http.MethodGet, "/api/exam-attempts/"+attempt.ID, author, nil)
	assert.Equal(t, http.StatusUnauthorized, w.Code)

	w, env = s.do(http.MethodPut, "/api/exam-attempts/"+attempt.ID+"/complete", student, nil)
	require.Equal(t, http.StatusOK, w.Code)
	completed := decode[model.ExamAttempt](t, env.Data)
	assert.Equal(t, 75.0, completed.Score)
	assert.True(t, completed.Passed)

	w, _ = s.do(http.MethodPut, "/api/exam-attempts/"+attempt.ID+"/complete", student, nil)
	assert.Equal(t, http.StatusBadRequest, w.Code)

	w, env = s.do(http.MethodGet, "/api/exam-attempts/passed", student, nil)
	require.Equal(t, http.StatusOK, w.Code)
	assert.Len(t, decode[[]model.ExamAttempt](t, env.Data), 1)
}

func TestRandomQuestions(t *testing.T) {
	s := newTestServer(t)
	cat := testutil.CreateCategory(t, s.db, "Signs", model.LanguageKinyarwanda)
	for i := 0; i < 4; i++ {
		testutil.CreateQuestion(t, s.db, cat.ID, "author", 0)
	}

	w, env := s.do(http.MethodGet, "/api/questions/random?count=10", "", nil)
	require.Equal(t, http.StatusOK, w.Code)
	descriptor := decode[map[string]interface{}](t, env.Data)
	assert.EqualValues(t, 4, descriptor["questionCount"])

	w, env = s.do(http.MethodGet, "/api/questions/random?count=abc", "", nil)
	assert.Equal(t, http.StatusBadRequest, w.Code)
	assert.Equal(t, "Question count must be a number between 1 and 100", env.Message)

	w, _ = s.do(http.MethodGet, "/api/questions/random?language=FRA", "", nil)
	assert.Equal(t, http.StatusNotFound, w.Code)

	w, env = s.do(http.MethodGet, fmt.Sprintf("/api/questions/random/category/%s?count=2", cat.ID), "", nil)
	require.Equal(t, http.StatusOK, w.Code)
	assert.Equal(t, "Signs Assessment (2 Questions)", decode[map[string]interface{}](t, env.Data)["title"])
}

func TestQuestionValidation(t *testing.T) {
	s := newTestServer(t)
	cat := testutil.CreateCategory(t, s.db, "Signs", model.LanguageKinyarwanda)

	w, env := s.do(http.MethodPost, "/api/questions", "", map[string]interface{}{
		"text":          "Which sign?",
		"category":      cat.ID,
		"answerOptions": testutil.Options(0)[:2],
	})
	assert.Equal(t, http.StatusBadRequest, w.Code)
	assert.Equal(t, "Question must have exactly 4 answer options", env.Message)
	require.Len(t, env.Errors, 1)
	assert.Equal(t, "answerOptions", env.Errors[0].Field)

	w, env = s.do(http.MethodPost, "/api/questions", "", map[string]interface{}{
		"text":          "Which sign?",
		"category":      cat.ID,
		"answerOptions": testutil.Options(0),
	})
	require.Equal(t, http.StatusCreated, w.Code)
	created := decode[model.Question](t, env.Data)
	assert.Equal(t, model.DevPrincipal.UserID, created.CreatedBy)
}

func TestCategoryRoutes(t *testing.T) {
	s := newTestServer(t)

	w, env := s.do(http.MethodPost, "/api/categories", "", map[string]string{"categoryName": "Signs", "description": "Road signs"})
	require.Equal(t, http.StatusCreated, w.Code)
	created := decode[model.Category](t, env.Data)

	w, env = s.do(http.MethodPost, "/api/categories", "", map[string]string{"categoryName": "Signs"})
	assert.Equal(t, http.StatusBadRequest, w.Code)
	assert.Equal(t, "Category with this name already exists", env.Message)

	w, env = s.do(http.MethodPut, "/api/categories/"+created.ID, "", map[string]string{"language": "ENG"})
	require.Equal(t, http.StatusOK, w.Code, env.Message)
	updated := decode[model.Category](t, env.Data)
	assert.Equal(t, "Signs", updated.CategoryName)
	assert.Equal(t, "Road signs", updated.Description)
	assert.Equal(t, model.LanguageEnglish, updated.Language)

	w, env = s.do(http.MethodGet, "/api/categories", "", nil)
	require.Equal(t, http.StatusOK, w.Code)
	assert.Len(t, decode[[]model.Category](t, env.Data), 1)
}

func TestQuestionImport(t *testing.T) {
	s := newTestServer(t)
	bank := `
categories:
  - name: Road Signs
    language: ENG
    questions:
      - text: What does a red octagon mean?
        options: [Stop, Yield, Parking, Speed limit]
        answer: 0
`
	send := func(token, body string) (*httptest.ResponseRecorder, envelope) {
		req := httptest.NewRequest(http.MethodPost, "/api/questions/import", bytes.NewBufferString(body))
		req.Header.Set("Content-Type", "application/x-yaml")
		req.Header.Set("Authorization", "Bearer "+token)
		w := httptest.NewRecorder()
		s.app.Router.ServeHTTP(w, req)
		var env envelope
		_ = json.Unmarshal(w.Body.Bytes(), &env)
		return w, env
	}

	w, _ := send(s.token("u1", model.RoleUser), bank)
	assert.Equal(t, http.StatusUnauthorized, w.Code)

	admin := s.token("admin", model.RoleAdmin)
	w, env := send(admin, "categories:\n  - name: X\n    questions:\n      - text: q\n        options: [a, b]\n        answer: 0\n")
	assert.Equal(t, http.StatusBadRequest, w.Code)
	assert.Contains(t, env.Message, "exactly 4 answer options")

	w, env = send(admin, bank)
	require.Equal(t, http.StatusCreated, w.Code, env.Message)
	assert.JSONEq(t, `{"categoriesCreated":1,"categoriesReused":0,"questionsCreated":1}`, string(env.Data))

	w, env = s.do(http.MethodGet, "/api/questions/random?language=ENG", "", nil)
	require.Equal(t, http.StatusOK, w.Code)
	assert.EqualValues(t, 1, decode[map[string]interface{}](t, env.Data)["questionCount"])
}
