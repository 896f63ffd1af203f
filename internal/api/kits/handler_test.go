package kits

import (
	"bytes"
	"encoding/json"
	"net/http"
	"net/http/httptest"
	"testing"
	"time"

	"hiringkit-app/database"
	"hiringkit-app/internal/app/http/middleware"
	"hiringkit-app/internal/domain/identity"

	"github.com/DATA-DOG/go-sqlmock"
	"github.com/gin-gonic/gin"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"gorm.io/driver/postgres"
	"gorm.io/gorm"
	"gorm.io/gorm/logger"
)

var kitColumns = []string{"id", "user_id", "org_id", "title", "status", "intake_data", "created_at", "updated_at"}

func setupMockDB(t *testing.T) sqlmock.Sqlmock {
	t.Helper()
	sqlDB, mock, err := sqlmock.New()
	require.NoError(t, err)

	gdb, err := gorm.Open(postgres.New(postgres.Config{Conn: sqlDB, PreferSimpleProtocol: true}), &gorm.Config{
		SkipDefaultTransaction: true,
		DisableAutomaticPing:   true,
		Logger:                 logger.Default.LogMode(logger.Silent),
	})
	require.NoError(t, err)

	prev := database.DB
	database.DB = gdb
	t.Cleanup(func() {
		database.DB = prev
		sqlDB.Close()
	})
	return mock
}

func newRouter(ident identity.Identity) *gin.Engine {
	gin.SetMode(gin.TestMode)
	r := gin.New()
	r.Use(func(c *gin.Context) {
		middleware.SetIdentity(c, ident)
		c.Next()
	})
	r.POST("/kits", CreateKit)
	r.GET("/kits/:id", GetKit)
	r.PATCH("/kits/:id/intake", PatchIntake)
	return r
}

func doJSON(t *testing.T, r *gin.Engine, method, path string, body interface{}) *httptest.ResponseRecorder {
	t.Helper()
	var buf bytes.Buffer
	if body != nil {
		require.NoError(t, json.NewEncoder(&buf).Encode(body))
	}
	req := httptest.NewRequest(method, path, &buf)
	req.Header.Set("Content-Type", "application/json")
	w := httptest.NewRecorder()
	r.ServeHTTP(w, req)
	return w
}

func TestPatchIntakeEmptyUpdatesRejectedBeforeStorage(t *testing.T) {
	mock := setupMockDB(t)
	r := newRouter(identity.Guest())

	w := doJSON(t, r, http.MethodPatch, "/kits/k1/intake", gin.H{"field_updates": gin.H{}})

	assert.Equal(t, http.StatusBadRequest, w.Code)
	assert.NoError(t, mock.ExpectationsWereMet())
}

func TestPatchIntakeNotFoundForNonOwner(t *testing.T) {
	mock := setupMockDB(t)
	r := newRouter(identity.Authenticated("someone-else", "x@example.com", "user", nil))

	// the lookup is owner-scoped; absence and ownership mismatch are the same
	mock.ExpectQuery(`SELECT \* FROM "kits" WHERE user_id = \$1 AND id = \$2`).
		WillReturnRows(sqlmock.NewRows(kitColumns))

	w := doJSON(t, r, http.MethodPatch, "/kits/k1/intake", gin.H{
		"field_updates": gin.H{"role_title": "Backend Engineer"},
	})

	assert.Equal(t, http.StatusNotFound, w.Code)
	assert.NoError(t, mock.ExpectationsWereMet())
}

func TestPatchIntakeMergesAndPersists(t *testing.T) {
	mock := setupMockDB(t)
	r := newRouter(identity.Guest())

	now := time.Now()
	mock.ExpectQuery(`SELECT \* FROM "kits" WHERE id = \$1`).
		WillReturnRows(sqlmock.NewRows(kitColumns).
			AddRow("k1", nil, nil, "Backend hire", "draft",
				[]byte(`{"company_name":"Acme","team_size":4}`), now, now))
	mock.ExpectExec(`UPDATE "kits" SET`).
		WillReturnResult(sqlmock.NewResult(0, 1))

	w := doJSON(t, r, http.MethodPatch, "/kits/k1/intake", gin.H{
		"field_updates": gin.H{"team_size": 5, "role_title": "Backend Engineer"},
	})

	require.Equal(t, http.StatusOK, w.Code, w.Body.String())

	var resp struct {
		IntakeData    map[string]interface{} `json:"intake_data"`
		UpdatedFields []string               `json:"updated_fields"`
	}
	require.NoError(t, json.Unmarshal(w.Body.Bytes(), &resp))

	assert.Equal(t, "Acme", resp.IntakeData["company_name"])
	assert.Equal(t, float64(5), resp.IntakeData["team_size"])
	assert.Equal(t, "Backend Engineer", resp.IntakeData["role_title"])
	assert.Equal(t, []string{"role_title", "team_size"}, resp.UpdatedFields)
	assert.NoError(t, mock.ExpectationsWereMet())
}

func TestPatchIntakeInvalidMergeNotPersisted(t *testing.T) {
	mock := setupMockDB(t)
	r := newRouter(identity.Guest())

	now := time.Now()
	mock.ExpectQuery(`SELECT \* FROM "kits" WHERE id = \$1`).
		WillReturnRows(sqlmock.NewRows(kitColumns).
			AddRow("k1", nil, nil, "Backend hire", "draft", []byte(`{}`), now, now))

	w := doJSON(t, r, http.MethodPatch, "/kits/k1/intake", gin.H{
		"field_updates": gin.H{"team_size": "five"},
	})

	assert.Equal(t, http.StatusBadRequest, w.Code)
	// no UPDATE was expected; validation failure must not persist
	assert.NoError(t, mock.ExpectationsWereMet())
}

func TestCreateKitAsGuest(t *testing.T) {
	mock := setupMockDB(t)
	r := newRouter(identity.Guest())

	mock.ExpectExec(`INSERT INTO "kits"`).
		WillReturnResult(sqlmock.NewResult(0, 1))

	w := doJSON(t, r, http.MethodPost, "/kits", gin.H{
		"title":       "Backend hire",
		"intake_data": gin.H{"company_name": "Acme"},
	})

	require.Equal(t, http.StatusCreated, w.Code, w.Body.String())

	var resp KitDTO
	require.NoError(t, json.Unmarshal(w.Body.Bytes(), &resp))
	assert.NotEmpty(t, resp.ID)
	assert.Nil(t, resp.UserID)
	assert.Equal(t, "draft", resp.Status)
	assert.NoError(t, mock.ExpectationsWereMet())
}

func TestCreateKitRejectsUnknownIntakeField(t *testing.T) {
	mock := setupMockDB(t)
	r := newRouter(identity.Guest())

	w := doJSON(t, r, http.MethodPost, "/kits", gin.H{
		"title":       "Backend hire",
		"intake_data": gin.H{"favorite_color": "blue"},
	})

	assert.Equal(t, http.StatusBadRequest, w.Code)
	assert.NoError(t, mock.ExpectationsWereMet())
}

func TestGetKitAdminBypassesOwnerScope(t *testing.T) {
	mock := setupMockDB(t)
	r := newRouter(identity.Authenticated("admin-1", "a@example.com", "admin", nil))

	owner := "user-1"
	now := time.Now()
	mock.ExpectQuery(`SELECT \* FROM "kits" WHERE id = \$1`).
		WillReturnRows(sqlmock.NewRows(kitColumns).
			AddRow("k1", owner, nil, "Backend hire", "draft", []byte(`{}`), now, now))

	w := doJSON(t, r, http.MethodGet, "/kits/k1", nil)

	assert.Equal(t, http.StatusOK, w.Code)
	assert.NoError(t, mock.ExpectationsWereMet())
}
