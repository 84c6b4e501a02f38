package adminapi

import (
	"bytes"
	"encoding/json"
	"fmt"
	"net/http"
	"net/http/httptest"
	"strconv"
	"testing"
	"time"

	"github.com/labstack/echo/v4"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"golang.org/x/crypto/bcrypt"
	"gorm.io/driver/sqlite"
	"gorm.io/gorm"
	"gorm.io/gorm/logger"

	"github.com/Mustagiz/Aleen/config"
	"github.com/Mustagiz/Aleen/internal/app"
	"github.com/Mustagiz/Aleen/internal/domain"
	"github.com/Mustagiz/Aleen/internal/webserver"
	"github.com/Mustagiz/Aleen/pkg/common"
)

const (
	testSecret   = "test-secret"
	testEmail    = "admin@aleen.com"
	testPassword = "admin123"
)

// newTestServer wires a full server against an in-memory database and
// returns the echo instance plus a signed operator token.
func newTestServer(t *testing.T) (*echo.Echo, *gorm.DB, string) {
	t.Helper()

	cfg := &config.AppConfig{
		System: config.SysConfig{
			Appid:    "AleenPosTest",
			Location: "Asia/Kolkata",
			Workdir:  t.TempDir(),
		},
		Web: config.WebConfig{
			Host:      "127.0.0.1",
			Port:      0,
			Secret:    testSecret,
			JwtExpire: 1,
		},
	}
	cfg.InitDirs()

	dsn := "file:" + t.Name() + "?mode=memory&cache=shared"
	db, err := gorm.Open(sqlite.Open(dsn), &gorm.Config{
		Logger: logger.Default.LogMode(logger.Silent),
	})
	require.NoError(t, err)
	require.NoError(t, db.AutoMigrate(domain.Tables...))

	a := app.NewApplication(cfg)
	a.OverrideDB(db)

	ws := webserver.Init(a)
	Initialize()

	hashed, err := bcrypt.GenerateFromPassword([]byte(testPassword), bcrypt.DefaultCost)
	require.NoError(t, err)
	operator := domain.SysOpr{
		ID:       common.UUIDint64(),
		Realname: "Admin",
		Email:    testEmail,
		Username: "admin",
		Password: string(hashed),
		Level:    "super",
		Status:   common.ENABLED,
	}
	require.NoError(t, db.Create(&operator).Error)

	require.NoError(t, a.Settings().Set(app.ConfigShop, "shop_name", "Aleen Clothing"))
	require.NoError(t, a.Settings().Set(app.ConfigShop, "address", "Baba Jaan Chawk, Pune"))
	require.NoError(t, a.Settings().Set(app.ConfigShop, "upi_id", "aleenclothing@paytm"))

	token, err := webserver.NewToken(testSecret, operator.ID, operator.Email, time.Hour)
	require.NoError(t, err)

	return ws.Echo(), db, token
}

func doJSON(t *testing.T, e *echo.Echo, method, path, token string, body interface{}) *httptest.ResponseRecorder {
	t.Helper()
	var buf bytes.Buffer
	if body != nil {
		require.NoError(t, json.NewEncoder(&buf).Encode(body))
	}
	req := httptest.NewRequest(method, path, &buf)
	if body != nil {
		req.Header.Set(echo.HeaderContentType, echo.MIMEApplicationJSON)
	}
	if token != "" {
		req.Header.Set(echo.HeaderAuthorization, "Bearer "+token)
	}
	rec := httptest.NewRecorder()
	e.ServeHTTP(rec, req)
	return rec
}

func decodeBody(t *testing.T, rec *httptest.ResponseRecorder, out interface{}) {
	t.Helper()
	require.NoError(t, json.Unmarshal(rec.Body.Bytes(), out))
}

func createTestProduct(t *testing.T, e *echo.Echo, token, name, category string, cost, sell float64, stock int) domain.Product {
	t.Helper()
	rec := doJSON(t, e, http.MethodPost, "/api/products", token, echo.Map{
		"name":          name,
		"category":      category,
		"size":          "Free",
		"color":         "Red",
		"cost_price":    cost,
		"selling_price": sell,
		"stock":         stock,
	})
	require.Equal(t, http.StatusCreated, rec.Code, rec.Body.String())
	var p domain.Product
	decodeBody(t, rec, &p)
	return p
}

func createTestSale(t *testing.T, e *echo.Echo, token string, productID int64, qty int, subtotal float64) domain.Sale {
	t.Helper()
	rec := doJSON(t, e, http.MethodPost, "/api/sales", token, echo.Map{
		"customer_name":  "Priya",
		"customer_phone": "+91 91234 56789",
		"items": []echo.Map{
			{"product_id": strconv.FormatInt(productID, 10), "quantity": qty},
		},
		"subtotal":   subtotal,
		"gst_rate":   5,
		"gst_amount": subtotal * 0.05,
	})
	require.Equal(t, http.StatusCreated, rec.Code, rec.Body.String())
	var sale domain.Sale
	decodeBody(t, rec, &sale)
	return sale
}

func TestAuthRequired(t *testing.T) {
	e, _, _ := newTestServer(t)
	rec := doJSON(t, e, http.MethodGet, "/api/products", "", nil)
	assert.Equal(t, http.StatusUnauthorized, rec.Code)
}

func TestLoginFlow(t *testing.T) {
	e, _, _ := newTestServer(t)

	rec := doJSON(t, e, http.MethodPost, "/api/auth/login", "", echo.Map{
		"email": testEmail, "password": "wrong-password",
	})
	assert.Equal(t, http.StatusUnauthorized, rec.Code)

	rec = doJSON(t, e, http.MethodPost, "/api/auth/login", "", echo.Map{
		"email": testEmail, "password": testPassword,
	})
	require.Equal(t, http.StatusOK, rec.Code, rec.Body.String())

	var body struct {
		Token string `json:"token"`
		User  struct {
			Email string `json:"email"`
			Name  string `json:"name"`
		} `json:"user"`
	}
	decodeBody(t, rec, &body)
	require.NotEmpty(t, body.Token)
	assert.Equal(t, testEmail, body.User.Email)
	assert.Equal(t, "Admin", body.User.Name)

	rec = doJSON(t, e, http.MethodGet, "/api/products", body.Token, nil)
	assert.Equal(t, http.StatusOK, rec.Code)
}

func TestRegisterDuplicateEmail(t *testing.T) {
	e, _, _ := newTestServer(t)

	payload := echo.Map{"email": "newuser@aleen.com", "password": "secret1", "name": "New User"}
	rec := doJSON(t, e, http.MethodPost, "/api/auth/register", "", payload)
	require.Equal(t, http.StatusCreated, rec.Code, rec.Body.String())

	rec = doJSON(t, e, http.MethodPost, "/api/auth/register", "", payload)
	assert.Equal(t, http.StatusConflict, rec.Code)
}

func TestResetPassword(t *testing.T) {
	e, _, token := newTestServer(t)

	rec := doJSON(t, e, http.MethodPut, "/api/auth/reset-password", token, echo.Map{
		"currentPassword": "wrong", "newPassword": "freshpass",
	})
	assert.Equal(t, http.StatusUnauthorized, rec.Code)

	rec = doJSON(t, e, http.MethodPut, "/api/auth/reset-password", token, echo.Map{
		"currentPassword": testPassword, "newPassword": "freshpass",
	})
	require.Equal(t, http.StatusOK, rec.Code, rec.Body.String())

	rec = doJSON(t, e, http.MethodPost, "/api/auth/login", "", echo.Map{
		"email": testEmail, "password": "freshpass",
	})
	assert.Equal(t, http.StatusOK, rec.Code)
}

func TestProductCRUD(t *testing.T) {
	e, _, token := newTestServer(t)

	p := createTestProduct(t, e, token, "Banarasi Saree", "Saree", 1200, 1899, 12)
	require.NotZero(t, p.ID)
	assert.False(t, p.LowStockAlert)

	rec := doJSON(t, e, http.MethodGet, fmt.Sprintf("/api/products/%d", p.ID), token, nil)
	require.Equal(t, http.StatusOK, rec.Code)
	var got domain.Product
	decodeBody(t, rec, &got)
	assert.Equal(t, "Banarasi Saree", got.Name)

	rec = doJSON(t, e, http.MethodPut, fmt.Sprintf("/api/products/%d", p.ID), token, echo.Map{
		"name":          "Banarasi Silk Saree",
		"category":      "Saree",
		"cost_price":    1200,
		"selling_price": 1999,
		"stock":         3,
	})
	require.Equal(t, http.StatusOK, rec.Code, rec.Body.String())
	decodeBody(t, rec, &got)
	assert.Equal(t, "Banarasi Silk Saree", got.Name)
	assert.Equal(t, 1999.0, got.SellingPrice)
	assert.True(t, got.LowStockAlert)

	rec = doJSON(t, e, http.MethodDelete, fmt.Sprintf("/api/products/%d", p.ID), token, nil)
	require.Equal(t, http.StatusOK, rec.Code)

	rec = doJSON(t, e, http.MethodGet, fmt.Sprintf("/api/products/%d", p.ID), token, nil)
	assert.Equal(t, http.StatusNotFound, rec.Code)
}

func TestProductValidation(t *testing.T) {
	e, _, token := newTestServer(t)

	rec := doJSON(t, e, http.MethodPost, "/api/products", token, echo.Map{
		"category": "Saree", "stock": 5,
	})
	assert.Equal(t, http.StatusBadRequest, rec.Code)

	rec = doJSON(t, e, http.MethodPost, "/api/products", token, echo.Map{
		"name": "Bad Stock", "category": "Saree", "stock": -1,
	})
	assert.Equal(t, http.StatusBadRequest, rec.Code)
}

func TestProductListFilters(t *testing.T) {
	e, _, token := newTestServer(t)

	createTestProduct(t, e, token, "Banarasi Saree", "Saree", 1200, 1899, 12)
	createTestProduct(t, e, token, "Cotton Kurti", "Kurti", 450, 799, 2)

	type pageBody struct {
		Items []domain.Product `json:"items"`
		Total int64            `json:"total"`
	}

	rec := doJSON(t, e, http.MethodGet, "/api/products?search=saree", token, nil)
	require.Equal(t, http.StatusOK, rec.Code)
	var body pageBody
	decodeBody(t, rec, &body)
	require.Len(t, body.Items, 1)
	assert.Equal(t, "Banarasi Saree", body.Items[0].Name)

	rec = doJSON(t, e, http.MethodGet, "/api/products?category=Kurti", token, nil)
	require.Equal(t, http.StatusOK, rec.Code)
	decodeBody(t, rec, &body)
	require.Len(t, body.Items, 1)
	assert.Equal(t, "Cotton Kurti", body.Items[0].Name)

	rec = doJSON(t, e, http.MethodGet, "/api/products?lowStock=true", token, nil)
	require.Equal(t, http.StatusOK, rec.Code)
	decodeBody(t, rec, &body)
	require.Len(t, body.Items, 1)
	assert.Equal(t, "Cotton Kurti", body.Items[0].Name)
}

func TestCreateSale(t *testing.T) {
	e, _, token := newTestServer(t)
	p := createTestProduct(t, e, token, "Banarasi Saree", "Saree", 100, 150, 10)

	sale := createTestSale(t, e, token, p.ID, 3, 450)
	assert.NotEmpty(t, sale.InvoiceNumber)
	assert.InDelta(t, 472.5, sale.Total, 1e-9)

	rec := doJSON(t, e, http.MethodGet, fmt.Sprintf("/api/products/%d", p.ID), token, nil)
	require.Equal(t, http.StatusOK, rec.Code)
	var got domain.Product
	decodeBody(t, rec, &got)
	assert.Equal(t, 7, got.Stock)
}

func TestCreateSaleInsufficientStock(t *testing.T) {
	e, _, token := newTestServer(t)
	p := createTestProduct(t, e, token, "Silk Dupatta", "Dupatta", 100, 200, 2)

	rec := doJSON(t, e, http.MethodPost, "/api/sales", token, echo.Map{
		"customer_name":  "Asha",
		"customer_phone": "9000000000",
		"items": []echo.Map{
			{"product_id": strconv.FormatInt(p.ID, 10), "quantity": 5},
		},
		"subtotal": 1000,
	})
	require.Equal(t, http.StatusBadRequest, rec.Code)

	var body struct {
		Code   string `json:"code"`
		Detail struct {
			Requested int `json:"requested"`
			Available int `json:"available"`
		} `json:"detail"`
	}
	decodeBody(t, rec, &body)
	assert.Equal(t, "INSUFFICIENT_STOCK", body.Code)
	assert.Equal(t, 5, body.Detail.Requested)
	assert.Equal(t, 2, body.Detail.Available)
}

func TestDeleteSale(t *testing.T) {
	e, _, token := newTestServer(t)
	p := createTestProduct(t, e, token, "Kota Saree", "Saree", 600, 950, 8)
	sale := createTestSale(t, e, token, p.ID, 3, 2850)

	rec := doJSON(t, e, http.MethodDelete, fmt.Sprintf("/api/sales/%d", sale.ID), token, nil)
	require.Equal(t, http.StatusOK, rec.Code)

	rec = doJSON(t, e, http.MethodGet, fmt.Sprintf("/api/sales/%d", sale.ID), token, nil)
	assert.Equal(t, http.StatusNotFound, rec.Code)

	// stock stays where the sale left it
	rec = doJSON(t, e, http.MethodGet, fmt.Sprintf("/api/products/%d", p.ID), token, nil)
	require.Equal(t, http.StatusOK, rec.Code)
	var got domain.Product
	decodeBody(t, rec, &got)
	assert.Equal(t, 5, got.Stock)
}

func TestDashboardEndpoint(t *testing.T) {
	e, _, token := newTestServer(t)
	p := createTestProduct(t, e, token, "Banarasi Saree", "Saree", 100, 150, 10)
	createTestSale(t, e, token, p.ID, 3, 450)

	rec := doJSON(t, e, http.MethodGet, "/api/reports/dashboard", token, nil)
	require.Equal(t, http.StatusOK, rec.Code, rec.Body.String())

	var body struct {
		TotalSales    float64        `json:"totalSales"`
		TotalProfit   float64        `json:"totalProfit"`
		ItemsSold     int            `json:"itemsSold"`
		CategoryStats map[string]int `json:"categoryStats"`
	}
	decodeBody(t, rec, &body)
	assert.InDelta(t, 472.5, body.TotalSales, 1e-9)
	assert.InDelta(t, 150, body.TotalProfit, 1e-9)
	assert.Equal(t, 3, body.ItemsSold)
	assert.Equal(t, map[string]int{"Saree": 3}, body.CategoryStats)
}

func TestSalesExport(t *testing.T) {
	e, _, token := newTestServer(t)
	p := createTestProduct(t, e, token, "Banarasi Saree", "Saree", 100, 150, 10)
	sale := createTestSale(t, e, token, p.ID, 2, 300)

	rec := doJSON(t, e, http.MethodGet, "/api/reports/sales/export?format=csv", token, nil)
	require.Equal(t, http.StatusOK, rec.Code, rec.Body.String())
	assert.Contains(t, rec.Header().Get(echo.HeaderContentDisposition), "Sales_Report_")
	assert.Contains(t, rec.Body.String(), "Invoice")
	assert.Contains(t, rec.Body.String(), sale.InvoiceNumber)

	rec = doJSON(t, e, http.MethodGet, "/api/reports/sales/export?format=xlsx", token, nil)
	require.Equal(t, http.StatusOK, rec.Code)
	assert.NotEmpty(t, rec.Body.Bytes())

	rec = doJSON(t, e, http.MethodGet, "/api/reports/sales/export?format=doc", token, nil)
	assert.Equal(t, http.StatusBadRequest, rec.Code)
}

func TestSettingsRoundTrip(t *testing.T) {
	e, _, token := newTestServer(t)

	rec := doJSON(t, e, http.MethodPut, "/api/settings", token, map[string]string{
		"shop_name": "Aleen Fashion House",
		"tagline":   "Handloom First",
	})
	require.Equal(t, http.StatusOK, rec.Code, rec.Body.String())

	rec = doJSON(t, e, http.MethodGet, "/api/settings", token, nil)
	require.Equal(t, http.StatusOK, rec.Code)
	var settings map[string]string
	decodeBody(t, rec, &settings)
	assert.Equal(t, "Aleen Fashion House", settings["shop_name"])
	assert.Equal(t, "Handloom First", settings["tagline"])
}

func TestSaleArtifacts(t *testing.T) {
	e, _, token := newTestServer(t)
	p := createTestProduct(t, e, token, "Banarasi Saree", "Saree", 100, 150, 10)
	sale := createTestSale(t, e, token, p.ID, 3, 450)

	rec := doJSON(t, e, http.MethodGet, fmt.Sprintf("/api/sales/%d/invoice.pdf", sale.ID), token, nil)
	require.Equal(t, http.StatusOK, rec.Code)
	assert.Equal(t, "application/pdf", rec.Header().Get(echo.HeaderContentType))
	assert.True(t, bytes.HasPrefix(rec.Body.Bytes(), []byte("%PDF")))

	rec = doJSON(t, e, http.MethodGet, fmt.Sprintf("/api/sales/%d/whatsapp", sale.ID), token, nil)
	require.Equal(t, http.StatusOK, rec.Code)
	var share struct {
		Phone string `json:"phone"`
		URL   string `json:"url"`
	}
	decodeBody(t, rec, &share)
	assert.Equal(t, "919123456789", share.Phone)
	assert.Contains(t, share.URL, "https://wa.me/919123456789?text=")

	rec = doJSON(t, e, http.MethodGet, fmt.Sprintf("/api/sales/%d/upiqr.png", sale.ID), token, nil)
	require.Equal(t, http.StatusOK, rec.Code)
	assert.True(t, bytes.HasPrefix(rec.Body.Bytes(), []byte("\x89PNG")))
}

func TestSalesDateFilter(t *testing.T) {
	e, db, token := newTestServer(t)
	p := createTestProduct(t, e, token, "Linen Kurti", "Kurti", 200, 350, 50)
	sale := createTestSale(t, e, token, p.ID, 1, 350)

	// push the sale into a known day
	require.NoError(t, db.Model(&domain.Sale{}).Where("id = ?", sale.ID).
		Update("sale_date", time.Date(2026, 8, 10, 12, 0, 0, 0, time.Local)).Error)

	rec := doJSON(t, e, http.MethodGet, "/api/sales?startDate=2026-08-01&endDate=2026-08-10", token, nil)
	require.Equal(t, http.StatusOK, rec.Code, rec.Body.String())
	var sales []domain.Sale
	decodeBody(t, rec, &sales)
	assert.Len(t, sales, 1)

	rec = doJSON(t, e, http.MethodGet, "/api/sales?startDate=2026-07-01&endDate=2026-07-31", token, nil)
	require.Equal(t, http.StatusOK, rec.Code)
	decodeBody(t, rec, &sales)
	assert.Empty(t, sales)

	rec = doJSON(t, e, http.MethodGet, "/api/sales?startDate=bogus&endDate=2026-08-10", token, nil)
	assert.Equal(t, http.StatusBadRequest, rec.Code)
}
