package server

import (
	"bytes"
	"encoding/json"
	"fmt"
	"net/http"
	"net/http/httptest"
	"testing"

	"github.com/gin-gonic/gin"
	"go.uber.org/zap"
	"gorm.io/driver/sqlite"
	"gorm.io/gorm"

	"github.com/citydir/orgdirectory-backend/internal/handlers"
	"github.com/citydir/orgdirectory-backend/internal/logger"
	"github.com/citydir/orgdirectory-backend/internal/middleware"
	"github.com/citydir/orgdirectory-backend/internal/phone"
	"github.com/citydir/orgdirectory-backend/internal/repos"
	"github.com/citydir/orgdirectory-backend/internal/services"
	"github.com/citydir/orgdirectory-backend/internal/types"
)

const testAPIKey = "test-api-key"

func newTestServer(t *testing.T) *gin.Engine {
	t.Helper()
	gin.SetMode(gin.TestMode)

	gdb, err := gorm.Open(sqlite.Open(":memory:"), &gorm.Config{})
	if err != nil {
		t.Fatalf("open sqlite: %v", err)
	}
	sqlDB, err := gdb.DB()
	if err != nil {
		t.Fatalf("unwrap sql.DB: %v", err)
	}
	sqlDB.SetMaxOpenConns(1)

	if err := gdb.AutoMigrate(
		&types.Building{},
		&types.Organization{},
		&types.PhoneNumber{},
		&types.Activity{},
		&types.OrganizationActivity{},
	); err != nil {
		t.Fatalf("automigrate: %v", err)
	}

	log := &logger.Logger{SugaredLogger: zap.NewNop().Sugar()}
	buildingRepo := repos.NewBuildingRepo(gdb, log)
	orgRepo := repos.NewOrganizationRepo(gdb, log)
	activityRepo := repos.NewActivityRepo(gdb, log)
	phoneRepo := repos.NewPhoneNumberRepo(gdb, log)
	linkRepo := repos.NewOrganizationActivityRepo(gdb, log)

	activitySvc := services.NewActivityService(gdb, log, activityRepo, linkRepo)
	associationSvc := services.NewAssociationService(log, phoneRepo, activityRepo, linkRepo, false)
	orgSvc := services.NewOrganizationService(gdb, log, orgRepo, buildingRepo, phoneRepo, associationSvc, phone.NewNormalizer("RU"))
	buildingSvc := services.NewBuildingService(gdb, log, buildingRepo, orgRepo)
	directorySvc := services.NewDirectoryService(gdb, log, buildingRepo, orgRepo, activityRepo, linkRepo, phoneRepo, activitySvc)

	return NewRouter(RouterConfig{
		AuthMiddleware:      middleware.NewAuthMiddleware(log, testAPIKey),
		BuildingHandler:     handlers.NewBuildingHandler(log, buildingSvc),
		OrganizationHandler: handlers.NewOrganizationHandler(log, orgSvc),
		ActivityHandler:     handlers.NewActivityHandler(log, activitySvc),
		DirectoryHandler:    handlers.NewDirectoryHandler(log, directorySvc),
	})
}

func do(t *testing.T, r *gin.Engine, method, path string, body any, withKey bool) *httptest.ResponseRecorder {
	t.Helper()
	var buf bytes.Buffer
	if body != nil {
		if err := json.NewEncoder(&buf).Encode(body); err != nil {
			t.Fatalf("encode body: %v", err)
		}
	}
	req := httptest.NewRequest(method, path, &buf)
	req.Header.Set("Content-Type", "application/json")
	if withKey {
		req.Header.Set("X-API-Key", testAPIKey)
	}
	w := httptest.NewRecorder()
	r.ServeHTTP(w, req)
	return w
}

func decodeJSON(t *testing.T, w *httptest.ResponseRecorder, out any) {
	t.Helper()
	if err := json.Unmarshal(w.Body.Bytes(), out); err != nil {
		t.Fatalf("decode %q: %v", w.Body.String(), err)
	}
}

func TestHealthcheckIsPublic(t *testing.T) {
	r := newTestServer(t)

	w := do(t, r, http.MethodGet, "/healthcheck", nil, false)
	if w.Code != http.StatusOK {
		t.Fatalf("status = %d, want 200", w.Code)
	}
}

func TestProtectedRoutesRejectMissingKey(t *testing.T) {
	r := newTestServer(t)

	w := do(t, r, http.MethodGet, "/organizations/search_by_name?name=x", nil, false)
	if w.Code != http.StatusUnauthorized {
		t.Fatalf("status = %d, want 401", w.Code)
	}
	var resp map[string]string
	decodeJSON(t, w, &resp)
	if resp["message"] != "invalid API key" {
		t.Fatalf("message = %q", resp["message"])
	}
}

func TestFullDirectoryFlow(t *testing.T) {
	r := newTestServer(t)

	w := do(t, r, http.MethodPost, "/buildings", map[string]any{
		"address":   "Lenina 1",
		"latitude":  55.05,
		"longitude": 37.05,
	}, true)
	if w.Code != http.StatusCreated {
		t.Fatalf("create building: status = %d, body = %s", w.Code, w.Body.String())
	}
	var created struct {
		ID uint `json:"id"`
	}
	decodeJSON(t, w, &created)
	buildingID := created.ID

	w = do(t, r, http.MethodPost, "/activities", map[string]any{"name": "Food"}, true)
	if w.Code != http.StatusCreated {
		t.Fatalf("create root activity: status = %d, body = %s", w.Code, w.Body.String())
	}
	decodeJSON(t, w, &created)
	foodID := created.ID

	w = do(t, r, http.MethodPost, "/activities", map[string]any{"name": "Bakery", "parent_id": foodID}, true)
	if w.Code != http.StatusCreated {
		t.Fatalf("create child activity: status = %d, body = %s", w.Code, w.Body.String())
	}
	decodeJSON(t, w, &created)
	bakeryID := created.ID

	w = do(t, r, http.MethodPost, "/organizations", map[string]any{
		"name":          "Bread Co",
		"building_id":   buildingID,
		"phone_numbers": []string{"89161112233"},
		"activity_ids":  []uint{bakeryID},
	}, true)
	if w.Code != http.StatusCreated {
		t.Fatalf("create organization: status = %d, body = %s", w.Code, w.Body.String())
	}
	decodeJSON(t, w, &created)
	orgID := created.ID

	w = do(t, r, http.MethodGet, fmt.Sprintf("/organizations/%d", orgID), nil, true)
	if w.Code != http.StatusOK {
		t.Fatalf("get organization: status = %d, body = %s", w.Code, w.Body.String())
	}
	var detail struct {
		Name         string   `json:"name"`
		Address      *string  `json:"address"`
		PhoneNumbers []string `json:"phone_numbers"`
	}
	decodeJSON(t, w, &detail)
	if detail.Name != "Bread Co" {
		t.Fatalf("name = %q", detail.Name)
	}
	if detail.Address == nil || *detail.Address != "Lenina 1" {
		t.Fatalf("address = %v", detail.Address)
	}
	if len(detail.PhoneNumbers) != 1 || detail.PhoneNumbers[0] != "+79161112233" {
		t.Fatalf("phones = %v", detail.PhoneNumbers)
	}

	// The subtree search finds the organization through the parent activity.
	w = do(t, r, http.MethodGet, "/organizations/search_by_activity?activity_name=Food", nil, true)
	if w.Code != http.StatusOK {
		t.Fatalf("search by activity: status = %d, body = %s", w.Code, w.Body.String())
	}
	var listing struct {
		Organizations []string `json:"organizations"`
	}
	decodeJSON(t, w, &listing)
	if len(listing.Organizations) != 1 || listing.Organizations[0] != "Bread Co" {
		t.Fatalf("organizations = %v", listing.Organizations)
	}

	w = do(t, r, http.MethodGet, "/organizations/by_area?latitude=55.0&longitude=37.0&lat_diff=0.1&lon_diff=0.1", nil, true)
	if w.Code != http.StatusOK {
		t.Fatalf("by area: status = %d, body = %s", w.Code, w.Body.String())
	}
}

func TestUnknownBuildingAddressIs404(t *testing.T) {
	r := newTestServer(t)

	w := do(t, r, http.MethodGet, "/organizations/by_building_address?address=Nowhere", nil, true)
	if w.Code != http.StatusNotFound {
		t.Fatalf("status = %d, body = %s", w.Code, w.Body.String())
	}
	var resp map[string]string
	decodeJSON(t, w, &resp)
	if resp["message"] == "" {
		t.Fatalf("body = %s, want a message envelope", w.Body.String())
	}
}

func TestCreateOrganizationValidation(t *testing.T) {
	r := newTestServer(t)

	w := do(t, r, http.MethodPost, "/organizations", map[string]any{"name": ""}, true)
	if w.Code != http.StatusBadRequest {
		t.Fatalf("status = %d, body = %s", w.Code, w.Body.String())
	}
}
