package admin

import (
	"encoding/json"
	"net/http"
	"net/http/httptest"
	"testing"
	"time"

	"hiringkit-app/database"

	"github.com/DATA-DOG/go-sqlmock"
	"github.com/gin-gonic/gin"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"gorm.io/driver/postgres"
	"gorm.io/gorm"
	"gorm.io/gorm/logger"
)

var (
	orderColumns = []string{"id", "org_id", "user_id", "kit_id", "status", "stripe_session_id", "total_cents", "created_at", "updated_at"}
	kitColumns   = []string{"id", "user_id", "org_id", "title", "status", "intake_data", "created_at", "updated_at"}
)

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

func TestListAllOrders(t *testing.T) {
	mock := setupMockDB(t)

	gin.SetMode(gin.TestMode)
	r := gin.New()
	r.GET("/admin/orders", ListAllOrders)

	now := time.Now()
	mock.ExpectQuery(`SELECT \* FROM "orders"`).
		WillReturnRows(sqlmock.NewRows(orderColumns).
			AddRow("o1", "org-1", "user-1", "k1", "paid", "cs_1", int64(12900), now, now).
			AddRow("o2", "org-2", nil, "k2", "awaiting_payment", "cs_2", int64(4900), now, now))
	mock.ExpectQuery(`SELECT \* FROM "kits"`).
		WillReturnRows(sqlmock.NewRows(kitColumns).
			AddRow("k1", "user-1", "org-1", "Backend hire", "paid", []byte(`{}`), now, now).
			AddRow("k2", nil, "org-2", "Design hire", "awaiting_payment", []byte(`{}`), now, now))

	req := httptest.NewRequest(http.MethodGet, "/admin/orders", nil)
	w := httptest.NewRecorder()
	r.ServeHTTP(w, req)

	require.Equal(t, http.StatusOK, w.Code, w.Body.String())

	var resp []AdminOrder
	require.NoError(t, json.Unmarshal(w.Body.Bytes(), &resp))
	require.Len(t, resp, 2)

	assert.Equal(t, "o1", resp[0].ID)
	assert.Equal(t, "pro", resp[0].PlanType)
	assert.Equal(t, "Backend hire", resp[0].KitTitle)
	assert.Equal(t, "solo", resp[1].PlanType)
	assert.Nil(t, resp[1].UserID)
	assert.NoError(t, mock.ExpectationsWereMet())
}

func statsRouter() *gin.Engine {
	gin.SetMode(gin.TestMode)
	r := gin.New()
	r.GET("/admin/stats", GetAdminStats)
	return r
}

func TestGetAdminStats(t *testing.T) {
	mock := setupMockDB(t)
	r := statsRouter()

	mock.ExpectQuery(`SELECT count\(\*\) FROM "users"`).
		WillReturnRows(sqlmock.NewRows([]string{"count"}).AddRow(3))
	mock.ExpectQuery(`SELECT count\(\*\) FROM "kits"`).
		WillReturnRows(sqlmock.NewRows([]string{"count"}).AddRow(5))
	mock.ExpectQuery(`SELECT count\(\*\) FROM "orders"`).
		WillReturnRows(sqlmock.NewRows([]string{"count"}).AddRow(4))
	mock.ExpectQuery(`SELECT COALESCE\(SUM\(total_cents\), 0\) FROM "orders" WHERE status = \$1`).
		WillReturnRows(sqlmock.NewRows([]string{"coalesce"}).AddRow(int64(17800)))
	mock.ExpectQuery(`SELECT COALESCE\(SUM\(total_cents\), 0\) FROM "orders" WHERE status = \$1 AND created_at >= \$2`).
		WillReturnRows(sqlmock.NewRows([]string{"coalesce"}).AddRow(int64(12900)))
	mock.ExpectQuery(`SELECT "total_cents" FROM "orders"`).
		WillReturnRows(sqlmock.NewRows([]string{"total_cents"}).
			AddRow(int64(4900)).
			AddRow(int64(12900)).
			AddRow(int64(12900)).
			AddRow(int64(4900)))

	req := httptest.NewRequest(http.MethodGet, "/admin/stats", nil)
	w := httptest.NewRecorder()
	r.ServeHTTP(w, req)

	require.Equal(t, http.StatusOK, w.Code, w.Body.String())

	var stats AdminStats
	require.NoError(t, json.Unmarshal(w.Body.Bytes(), &stats))
	assert.Equal(t, 3, stats.TotalUsers)
	assert.Equal(t, 4, stats.TotalOrders)
	assert.Equal(t, int64(17800), stats.PaidRevenue)
	assert.Equal(t, int64(12900), stats.RecentRevenue)
	assert.Equal(t, map[string]int{"solo": 2, "pro": 2}, stats.OrdersPerPlan)
	assert.NoError(t, mock.ExpectationsWereMet())
}

// A failing revenue query is logged and zeroed rather than taking the
// whole dashboard down with it.
func TestGetAdminStatsSurvivesRevenueQueryFailure(t *testing.T) {
	mock := setupMockDB(t)
	r := statsRouter()

	mock.ExpectQuery(`SELECT count\(\*\) FROM "users"`).
		WillReturnRows(sqlmock.NewRows([]string{"count"}).AddRow(1))
	mock.ExpectQuery(`SELECT count\(\*\) FROM "kits"`).
		WillReturnRows(sqlmock.NewRows([]string{"count"}).AddRow(1))
	mock.ExpectQuery(`SELECT count\(\*\) FROM "orders"`).
		WillReturnRows(sqlmock.NewRows([]string{"count"}).AddRow(1))
	mock.ExpectQuery(`SELECT COALESCE\(SUM\(total_cents\), 0\) FROM "orders" WHERE status = \$1`).
		WillReturnError(assert.AnError)
	mock.ExpectQuery(`SELECT COALESCE\(SUM\(total_cents\), 0\) FROM "orders" WHERE status = \$1 AND created_at >= \$2`).
		WillReturnRows(sqlmock.NewRows([]string{"coalesce"}).AddRow(int64(0)))
	mock.ExpectQuery(`SELECT "total_cents" FROM "orders"`).
		WillReturnRows(sqlmock.NewRows([]string{"total_cents"}).AddRow(int64(4900)))

	req := httptest.NewRequest(http.MethodGet, "/admin/stats", nil)
	w := httptest.NewRecorder()
	r.ServeHTTP(w, req)

	require.Equal(t, http.StatusOK, w.Code, w.Body.String())

	var stats AdminStats
	require.NoError(t, json.Unmarshal(w.Body.Bytes(), &stats))
	assert.Equal(t, int64(0), stats.PaidRevenue)
	assert.Equal(t, map[string]int{"solo": 1}, stats.OrdersPerPlan)
	assert.NoError(t, mock.ExpectationsWereMet())
}
