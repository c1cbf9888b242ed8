package handlers

import (
	"bytes"
	"context"
	"encoding/json"
	"io"
	"net/http"
	"net/http/httptest"
	"strconv"
	"testing"

	"github.com/gofiber/fiber/v2"
	"github.com/shopspring/decimal"
	"github.com/stretchr/testify/require"
	"gorm.io/driver/sqlite"
	"gorm.io/gorm"
	"gorm.io/gorm/logger"

	"github.com/VictorRop4/alx-project-nexus/internal/mpesa"
	"github.com/VictorRop4/alx-project-nexus/models"
	"github.com/VictorRop4/alx-project-nexus/utils"
)

// stubPusher stands in for the Daraja client. It records the last push
// request and returns a canned acknowledgment or error.
type stubPusher struct {
	resp *mpesa.STKPushResponse
	err  error

	calls      int
	lastPhone  string
	lastAmount int64
	lastRef    string
}

func (s *stubPusher) STKPush(_ context.Context, phoneNumber string, amount int64, accountReference, _ string) (*mpesa.STKPushResponse, error) {
	s.calls++
	s.lastPhone = phoneNumber
	s.lastAmount = amount
	s.lastRef = accountReference
	if s.err != nil {
		return nil, s.err
	}
	if s.resp != nil {
		return s.resp, nil
	}
	return &mpesa.STKPushResponse{
		MerchantRequestID: "29115-34620561-1",
		CheckoutRequestID: "ws_CO_TEST_1",
		ResponseCode:      "0",
	}, nil
}

func newTestApp(t *testing.T) (*fiber.App, *gorm.DB, *stubPusher) {
	t.Helper()
	t.Setenv("JWT_SECRET", "test-secret")

	db, err := gorm.Open(sqlite.Open(":memory:"), &gorm.Config{
		Logger: logger.Default.LogMode(logger.Silent),
	})
	require.NoError(t, err)

	// A second connection would see an empty in-memory database.
	sqlDB, err := db.DB()
	require.NoError(t, err)
	sqlDB.SetMaxOpenConns(1)

	require.NoError(t, db.AutoMigrate(
		&models.User{},
		&models.CustomerProfile{},
		&models.Category{},
		&models.Product{},
		&models.Cart{},
		&models.CartItem{},
		&models.Order{},
		&models.OrderItem{},
		&models.Payment{},
		&models.Shipping{},
		&models.Review{},
	))

	pusher := &stubPusher{}
	app := fiber.New()
	SetupRoutes(app, db, pusher)
	return app, db, pusher
}

func createUser(t *testing.T, db *gorm.DB, username, role string) models.User {
	t.Helper()
	hash, err := utils.HashPassword("password123")
	require.NoError(t, err)

	user := models.User{
		Username: username,
		Email:    username + "@example.com",
		Password: hash,
		Role:     role,
		Profile: &models.CustomerProfile{
			FirstName:      "Test",
			LastName:       username,
			PhoneNumber:    "254708374149",
			DefaultAddress: "123 Moi Avenue",
		},
	}
	require.NoError(t, db.Create(&user).Error)
	return user
}

func tokenFor(t *testing.T, user models.User) string {
	t.Helper()
	token, err := utils.GenerateToken(user.ID, user.Role)
	require.NoError(t, err)
	return token
}

func createCategory(t *testing.T, db *gorm.DB, name, slug string) models.Category {
	t.Helper()
	category := models.Category{Name: name, Slug: slug}
	require.NoError(t, db.Create(&category).Error)
	return category
}

func createProduct(t *testing.T, db *gorm.DB, seller models.User, category models.Category, sku string, price string) models.Product {
	t.Helper()
	product := models.Product{
		SKU:           sku,
		Slug:          sku + "-slug",
		Name:          "Product " + sku,
		Price:         decimal.RequireFromString(price),
		StockQuantity: 10,
		CategoryID:    category.ID,
		SellerID:      seller.ID,
	}
	require.NoError(t, db.Create(&product).Error)
	return product
}

func doJSON(t *testing.T, app *fiber.App, method, path, token string, body interface{}) *http.Response {
	t.Helper()
	var reader io.Reader
	if body != nil {
		encoded, err := json.Marshal(body)
		require.NoError(t, err)
		reader = bytes.NewReader(encoded)
	}
	req := httptest.NewRequest(method, path, reader)
	if body != nil {
		req.Header.Set("Content-Type", "application/json")
	}
	if token != "" {
		req.Header.Set("Authorization", "Bearer "+token)
	}
	resp, err := app.Test(req, -1)
	require.NoError(t, err)
	return resp
}

func itoa(id uint) string {
	return strconv.FormatUint(uint64(id), 10)
}

func decodeJSON(t *testing.T, resp *http.Response, out interface{}) {
	t.Helper()
	defer resp.Body.Close()
	require.NoError(t, json.NewDecoder(resp.Body).Decode(out))
}
