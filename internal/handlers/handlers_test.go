package handlers

import (
	"bytes"
	"encoding/json"
	"net/http"
	"net/http/httptest"
	"testing"

	"github.com/glebarez/sqlite"
	"github.com/labstack/echo/v4"
	"github.com/stretchr/testify/require"
	"gorm.io/gorm"

	"github.com/devsp0007/restaurant-management/internal/identity"
	"github.com/devsp0007/restaurant-management/internal/menu"
	"github.com/devsp0007/restaurant-management/internal/models"
	"github.com/devsp0007/restaurant-management/internal/order"
	"github.com/devsp0007/restaurant-management/internal/service/token"
	"github.com/devsp0007/restaurant-management/internal/session"
)

type testEnv struct {
	T     *testing.T
	E     *echo.Echo
	DB    *gorm.DB
	Auth  *AuthHandler
	Menu  *MenuHandler
	Order *OrderHandler
}

func InitTestDB(t *testing.T) *gorm.DB {
	db, err := gorm.Open(sqlite.Open(":memory:"), &gorm.Config{})
	if err != nil {
		t.Fatalf("failed to connect to in-memory db: %v", err)
	}

	if err := db.AutoMigrate(&models.User{}, &models.MenuItem{}, &models.Order{}, &models.RefreshToken{}); err != nil {
		t.Fatalf("failed to migrate tables: %v", err)
	}

	return db
}

func newTestEnv(t *testing.T) *testEnv {
	db := InitTestDB(t)

	tokens := &token.TokenService{
		DB:            db,
		JWTSecret:     []byte("test-jwt-secret"),
		RefreshSecret: []byte("test-refresh-secret"),
	}

	return &testEnv{
		T:     t,
		E:     echo.New(),
		DB:    db,
		Auth:  &AuthHandler{Identity: &identity.Store{DB: db}, Tokens: tokens},
		Menu:  &MenuHandler{Catalog: &menu.Catalog{DB: db}},
		Order: &OrderHandler{Engine: order.NewEngine(db)},
	}
}

func (env *testEnv) doJSONRequest(method, path string, body interface{}, cookies ...*http.Cookie) (*httptest.ResponseRecorder, echo.Context) {
	var buf bytes.Buffer
	if body != nil {
		require.NoError(env.T, json.NewEncoder(&buf).Encode(body))
	}
	req := httptest.NewRequest(method, path, &buf)
	req.Header.Set(echo.HeaderContentType, echo.MIMEApplicationJSON)

	for _, ck := range cookies {
		req.AddCookie(ck)
	}
	rec := httptest.NewRecorder()
	c := env.E.NewContext(req, rec)
	return rec, c
}

// as stamps a session onto the context the way the auth middleware does.
func (env *testEnv) as(c echo.Context, sess session.Session) echo.Context {
	session.Into(c, sess)
	return c
}

func (env *testEnv) seedMenu() {
	for _, item := range []models.MenuItem{
		{Name: "Pizza", Price: 250.00},
		{Name: "Soda", Price: 50.00},
	} {
		require.NoError(env.T, env.DB.Create(&item).Error)
	}
}

var (
	customerSess = session.Session{UserID: 1, Email: "alice@example.com", Role: session.RoleCustomer}
	adminSess    = session.Session{UserID: 2, Email: "admin@example.com", Role: session.RoleAdmin}
)
