package internal

import (
	"context"
	"encoding/json"
	"fmt"
	"net/http"
	"net/http/httptest"
	"strings"
	"testing"
	"time"

	"github.com/shopspring/decimal"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"gorm.io/driver/sqlite"
	"gorm.io/gorm"
	"gorm.io/gorm/logger"

	"workshop-backend/config"
	"workshop-backend/internal/api"
	"workshop-backend/internal/auth"
	"workshop-backend/internal/db"
	"workshop-backend/internal/model"
	"workshop-backend/internal/store"
	"workshop-backend/internal/workorder"
)

type apiClient struct {
	t      *testing.T
	server *httptest.Server
	token  string
}

func (c *apiClient) do(method, path, body string, out any) int {
	c.t.Helper()
	req, err := http.NewRequest(method, c.server.URL+path, strings.NewReader(body))
	require.NoError(c.t, err)
	req.Header.Set("Content-Type", "application/json")
	req.Header.Set("Authorization", "Bearer "+c.token)

	resp, err := c.server.Client().Do(req)
	require.NoError(c.t, err)
	defer resp.Body.Close()

	if out != nil {
		require.NoError(c.t, json.NewDecoder(resp.Body).Decode(out))
	}
	return resp.StatusCode
}

// TestWorkOrderLifecycle drives one order from intake to delivery through the
// HTTP API and verifies the database state at each step.
func TestWorkOrderLifecycle(t *testing.T) {
	// --- Test Setup ---

	// 1. Setup an in-memory SQLite database for testing.
	testDB, err := gorm.Open(sqlite.Open("file:lifecycle?mode=memory&cache=shared"), &gorm.Config{
		Logger: logger.Default.LogMode(logger.Silent),
	})
	require.NoError(t, err)
	sqlDB, _ := testDB.DB()
	sqlDB.SetMaxOpenConns(1)
	defer sqlDB.Close()

	require.NoError(t, db.Migrate(testDB))

	// 2. Seed reference data and wire the real stack.
	refData := store.NewGormStore(testDB)
	fx, err := store.LoadFixture("store/testdata/fixture.yaml")
	require.NoError(t, err)
	_, err = refData.Seed(context.Background(), fx)
	require.NoError(t, err)

	var admin, tech model.User
	require.NoError(t, testDB.Where("email = ?", "admin@workshop.test").First(&admin).Error)
	require.NoError(t, testDB.Where("email = ?", "tomas@workshop.test").First(&tech).Error)
	var vehicle model.Vehicle
	require.NoError(t, testDB.Where("plate = ?", "ABC12D").First(&vehicle).Error)

	identity := auth.NewJWTProvider(auth.Config{Secret: []byte("integration"), TokenTTL: time.Hour, CacheTTL: time.Minute}, refData)
	router := api.NewRouter(workorder.NewService(testDB, refData), identity, &config.ServerConfig{RateLimitPerSec: 1000, RateLimitBurst: 1000})
	server := httptest.NewServer(router)
	defer server.Close()

	adminToken, _, err := identity.IssueToken(&admin)
	require.NoError(t, err)
	techToken, _, err := identity.IssueToken(&tech)
	require.NoError(t, err)
	asAdmin := &apiClient{t: t, server: server, token: adminToken}
	asTech := &apiClient{t: t, server: server, token: techToken}

	var order model.WorkOrder
	var firstItemID uint

	// --- Test Execution & Assertions ---

	t.Run("Step 1: technician opens an order", func(t *testing.T) {
		status := asTech.do("POST", "/api/work-orders", fmt.Sprintf(`{"vehicle_id":%d,"fault_description":"chain noise"}`, vehicle.ID), &order)
		require.Equal(t, http.StatusCreated, status)
		assert.Equal(t, model.StatusReceived, order.Status)
		assert.True(t, order.Total.IsZero())
	})

	t.Run("Step 2: items keep the total in sync", func(t *testing.T) {
		var added struct {
			Item  model.OrderItem `json:"item"`
			Total decimal.Decimal `json:"total"`
		}
		status := asTech.do("POST", fmt.Sprintf("/api/work-orders/%d/items", order.ID),
			`{"type":"LABOR","description":"oil change","count":1,"unit_value":50000}`, &added)
		require.Equal(t, http.StatusCreated, status)
		firstItemID = added.Item.ID
		assert.True(t, added.Total.Equal(decimal.NewFromInt(50000)))

		status = asTech.do("POST", fmt.Sprintf("/api/work-orders/%d/items", order.ID),
			`{"type":"PART","description":"filter","count":2,"unit_value":"15000"}`, &added)
		require.Equal(t, http.StatusCreated, status)
		assert.True(t, added.Total.Equal(decimal.NewFromInt(80000)))

		var deleted struct {
			Message string          `json:"message"`
			Total   decimal.Decimal `json:"total"`
		}
		status = asAdmin.do("DELETE", fmt.Sprintf("/api/work-orders/items/%d", firstItemID), "", &deleted)
		require.Equal(t, http.StatusOK, status)
		assert.True(t, deleted.Total.Equal(decimal.NewFromInt(30000)))

		var stored model.WorkOrder
		require.NoError(t, testDB.First(&stored, order.ID).Error)
		assert.True(t, stored.Total.Equal(decimal.NewFromInt(30000)))
	})

	t.Run("Step 3: skipping diagnosis is rejected", func(t *testing.T) {
		var body map[string]string
		status := asAdmin.do("PATCH", fmt.Sprintf("/api/work-orders/%d/status", order.ID), `{"toStatus":"IN_PROGRESS"}`, &body)
		assert.Equal(t, http.StatusBadRequest, status)
		assert.Equal(t, "INVALID_TRANSITION", body["kind"])
		assert.Contains(t, body["error"], "[DIAGNOSIS, CANCELED]")
	})

	t.Run("Step 4: technician advances, admin delivers", func(t *testing.T) {
		for _, s := range []string{"DIAGNOSIS", "IN_PROGRESS", "READY"} {
			status := asTech.do("PATCH", fmt.Sprintf("/api/work-orders/%d/status", order.ID), fmt.Sprintf(`{"toStatus":%q}`, s), nil)
			require.Equal(t, http.StatusOK, status, s)
		}

		status := asTech.do("PATCH", fmt.Sprintf("/api/work-orders/%d/status", order.ID), `{"toStatus":"DELIVERED"}`, nil)
		assert.Equal(t, http.StatusForbidden, status)

		status = asAdmin.do("PATCH", fmt.Sprintf("/api/work-orders/%d/status", order.ID), `{"status":"DELIVERED","note":"picked up"}`, nil)
		assert.Equal(t, http.StatusOK, status)
	})

	t.Run("Step 5: delivered order is frozen", func(t *testing.T) {
		status := asAdmin.do("POST", fmt.Sprintf("/api/work-orders/%d/items", order.ID),
			`{"type":"PART","description":"late part","count":1,"unit_value":1}`, nil)
		assert.Equal(t, http.StatusConflict, status)

		status = asAdmin.do("PATCH", fmt.Sprintf("/api/work-orders/%d/status", order.ID), `{"toStatus":"CANCELED"}`, nil)
		assert.Equal(t, http.StatusBadRequest, status)
	})

	t.Run("Step 6: history and listing", func(t *testing.T) {
		var history struct {
			Data       []model.StatusHistoryEntry `json:"data"`
			Pagination workorder.Pagination       `json:"pagination"`
		}
		status := asAdmin.do("GET", fmt.Sprintf("/api/work-orders/%d/history", order.ID), "", &history)
		require.Equal(t, http.StatusOK, status)
		assert.Equal(t, int64(5), history.Pagination.Total)
		require.Len(t, history.Data, 5)
		assert.Equal(t, model.StatusDelivered, history.Data[0].ToStatus)
		require.NotNil(t, history.Data[0].Note)
		assert.Equal(t, "picked up", *history.Data[0].Note)
		assert.Equal(t, admin.ID, history.Data[0].ChangedBy)
		assert.Nil(t, history.Data[4].FromStatus)

		var list struct {
			Data       []model.WorkOrder    `json:"data"`
			Pagination workorder.Pagination `json:"pagination"`
		}
		status = asAdmin.do("GET", "/api/work-orders?plate=abc1&status=DELIVERED", "", &list)
		require.Equal(t, http.StatusOK, status)
		require.Len(t, list.Data, 1)
		assert.Equal(t, order.ID, list.Data[0].ID)
		require.NotNil(t, list.Data[0].Vehicle)
		assert.Equal(t, "Carla Gomez", list.Data[0].Vehicle.Client.Name)
	})

	t.Run("Step 7: inactive users are rejected", func(t *testing.T) {
		var former model.User
		require.NoError(t, testDB.Where("email = ?", "former@workshop.test").First(&former).Error)
		formerToken, _, err := identity.IssueToken(&former)
		require.NoError(t, err)

		status := (&apiClient{t: t, server: server, token: formerToken}).do("GET", "/api/work-orders", "", nil)
		assert.Equal(t, http.StatusUnauthorized, status)
	})
}
