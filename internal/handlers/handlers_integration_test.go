package handlers_test

import (
	"bytes"
	"encoding/json"
	"fmt"
	"mime/multipart"
	"net/http"
	"net/http/httptest"
	"net/textproto"
	"testing"

	"boutique/internal/handlers"
	"boutique/internal/middleware"
	"boutique/internal/models"
	"boutique/internal/repositories"
	"boutique/internal/services"

	"github.com/gofiber/fiber/v2"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"gorm.io/driver/sqlite"
	"gorm.io/gorm"
)

// setupApp builds a Fiber app over an in-memory SQLite database with all
// handlers wired. Each test gets its own named database.
func setupApp(t *testing.T) *fiber.App {
	t.Helper()

	dsn := fmt.Sprintf("file:%s?mode=memory&cache=shared", t.Name())
	db, err := gorm.Open(sqlite.Open(dsn), &gorm.Config{})
	require.NoError(t, err)
	require.NoError(t, db.AutoMigrate(&models.Product{}, &models.User{}, &models.Contact{}))

	productRepo := repositories.NewGORMProductRepository(db)
	userRepo := repositories.NewGORMUserRepository(db)
	contactRepo := repositories.NewGORMContactRepository(db)

	productService := services.NewProductService(productRepo, nil)
	authService := services.NewAuthService(userRepo, "test_jwt_secret")
	cartService := services.NewCartService(userRepo, productRepo)
	contactService := services.NewContactService(contactRepo, nil, nil, "admin@example.com")
	statsService := services.NewStatsService(productRepo, userRepo, contactRepo)

	app := fiber.New()
	authRequired := middleware.AuthRequired(authService)

	api := app.Group("/api")
	handlers.NewProductHandler(productService).RegisterRoutes(api, authRequired)
	handlers.NewAuthHandler(authService).RegisterRoutes(api, authRequired)
	handlers.NewCartHandler(cartService).RegisterRoutes(api, authRequired)
	handlers.NewContactHandler(contactService).RegisterRoutes(api, authRequired)
	handlers.NewStatsHandler(statsService).RegisterRoutes(api, authRequired)

	return app
}

// doJSON sends a JSON request and decodes the response body into a map.
func doJSON(t *testing.T, app *fiber.App, method, path, token string, payload interface{}) (int, map[string]interface{}) {
	t.Helper()

	var body *bytes.Reader
	if payload != nil {
		raw, err := json.Marshal(payload)
		require.NoError(t, err)
		body = bytes.NewReader(raw)
	} else {
		body = bytes.NewReader(nil)
	}

	req := httptest.NewRequest(method, path, body)
	req.Header.Set("Content-Type", "application/json")
	if token != "" {
		req.Header.Set("Authorization", "Bearer "+token)
	}

	resp, err := app.Test(req, -1)
	require.NoError(t, err)
	defer resp.Body.Close()

	var decoded map[string]interface{}
	require.NoError(t, json.NewDecoder(resp.Body).Decode(&decoded))
	return resp.StatusCode, decoded
}

// signupAndLogin registers a fresh account and returns its token and user ID.
func signupAndLogin(t *testing.T, app *fiber.App, email string) (string, string) {
	t.Helper()

	status, resp := doJSON(t, app, http.MethodPost, "/api/auth/signup", "", map[string]string{
		"name":     "Test Admin",
		"email":    email,
		"password": "password123",
	})
	require.Equal(t, http.StatusCreated, status)

	token, _ := resp["token"].(string)
	require.NotEmpty(t, token)
	user, _ := resp["user"].(map[string]interface{})
	require.NotNil(t, user)
	userID, _ := user["id"].(string)
	require.NotEmpty(t, userID)
	return token, userID
}

func defaultProductFields() map[string]string {
	return map[string]string{
		"title":          "Linen Summer Shirt",
		"tagline":        "Light and breezy",
		"description":    "A relaxed-fit linen shirt for warm days.",
		"price":          "49.99",
		"category":       "Shirts",
		"subcategory":    "Casual",
		"sizesAvailable": `[{"size":"M","quantity":3},{"size":"L","quantity":2}]`,
	}
}

// productForm builds a multipart product submission with n fake JPEG images.
func productForm(t *testing.T, fields map[string]string, images int, contentType string) (*bytes.Buffer, string) {
	t.Helper()

	body := &bytes.Buffer{}
	writer := multipart.NewWriter(body)
	for key, value := range fields {
		require.NoError(t, writer.WriteField(key, value))
	}
	for i := 0; i < images; i++ {
		header := make(textproto.MIMEHeader)
		header.Set("Content-Disposition",
			fmt.Sprintf(`form-data; name="images"; filename="img%d.jpg"`, i))
		header.Set("Content-Type", contentType)
		part, err := writer.CreatePart(header)
		require.NoError(t, err)
		_, err = part.Write([]byte{0xff, 0xd8, 0xff, 0xd9})
		require.NoError(t, err)
	}
	require.NoError(t, writer.Close())
	return body, writer.FormDataContentType()
}

// submitProduct posts a multipart submission and decodes the response.
func submitProduct(t *testing.T, app *fiber.App, token string, fields map[string]string, images int, contentType string) (int, map[string]interface{}) {
	t.Helper()

	body, formContentType := productForm(t, fields, images, contentType)
	req := httptest.NewRequest(http.MethodPost, "/api/products/add", body)
	req.Header.Set("Content-Type", formContentType)
	if token != "" {
		req.Header.Set("Authorization", "Bearer "+token)
	}

	resp, err := app.Test(req, -1)
	require.NoError(t, err)
	defer resp.Body.Close()

	var decoded map[string]interface{}
	require.NoError(t, json.NewDecoder(resp.Body).Decode(&decoded))
	return resp.StatusCode, decoded
}

func TestSignupAndLogin(t *testing.T) {
	app := setupApp(t)

	status, resp := doJSON(t, app, http.MethodPost, "/api/auth/signup", "", map[string]string{
		"name":     "Asha Verma",
		"email":    "asha@example.com",
		"password": "password123",
	})
	assert.Equal(t, http.StatusCreated, status)
	assert.Equal(t, "User registered successfully", resp["message"])
	assert.NotEmpty(t, resp["token"])

	// duplicate email is rejected
	status, resp = doJSON(t, app, http.MethodPost, "/api/auth/signup", "", map[string]string{
		"name":     "Asha Again",
		"email":    "asha@example.com",
		"password": "password456",
	})
	assert.Equal(t, http.StatusBadRequest, status)
	assert.Equal(t, "Email already in use", resp["message"])

	status, resp = doJSON(t, app, http.MethodPost, "/api/auth/login", "", map[string]string{
		"email":    "asha@example.com",
		"password": "password123",
	})
	assert.Equal(t, http.StatusOK, status)
	assert.Equal(t, "Login successful", resp["message"])
	assert.NotEmpty(t, resp["token"])

	status, resp = doJSON(t, app, http.MethodPost, "/api/auth/login", "", map[string]string{
		"email":    "asha@example.com",
		"password": "wrong",
	})
	assert.Equal(t, http.StatusUnauthorized, status)
	assert.Equal(t, "Invalid email or password", resp["message"])
}

func TestSignupValidation(t *testing.T) {
	app := setupApp(t)

	status, resp := doJSON(t, app, http.MethodPost, "/api/auth/signup", "", map[string]string{
		"name": "No Email",
	})
	assert.Equal(t, http.StatusBadRequest, status)
	assert.Equal(t, "Name, email, and password are required", resp["message"])

	status, resp = doJSON(t, app, http.MethodPost, "/api/auth/signup", "", map[string]string{
		"name":     "Bad Email",
		"email":    "not-an-email",
		"password": "password123",
	})
	assert.Equal(t, http.StatusBadRequest, status)
	assert.Equal(t, "Validation failed", resp["message"])
}

func TestProductUpsertCreateAndMerge(t *testing.T) {
	app := setupApp(t)
	token, _ := signupAndLogin(t, app, "admin@example.com")

	status, resp := submitProduct(t, app, token, defaultProductFields(), 2, "image/jpeg")
	require.Equal(t, http.StatusCreated, status)
	assert.Equal(t, "New product added successfully", resp["message"])

	product, _ := resp["product"].(map[string]interface{})
	require.NotNil(t, product)
	assert.Equal(t, float64(5), product["totalQuantity"])
	productID, _ := product["id"].(string)
	require.NotEmpty(t, productID)

	// resubmitting the same identity merges stock instead of creating
	fields := defaultProductFields()
	fields["sizesAvailable"] = `[{"size":"M","quantity":1},{"size":"XL","quantity":4}]`
	status, resp = submitProduct(t, app, token, fields, 0, "image/jpeg")
	require.Equal(t, http.StatusOK, status)
	assert.Equal(t, "Product already exists. Quantity updated.", resp["message"])

	merged, _ := resp["product"].(map[string]interface{})
	require.NotNil(t, merged)
	assert.Equal(t, productID, merged["id"])
	assert.Equal(t, float64(10), merged["totalQuantity"])

	sizes, _ := merged["sizesAvailable"].([]interface{})
	require.Len(t, sizes, 3)
	first, _ := sizes[0].(map[string]interface{})
	assert.Equal(t, "M", first["size"])
	assert.Equal(t, float64(4), first["quantity"])

	// the catalog still holds a single product
	status, resp = doJSON(t, app, http.MethodGet, "/api/products/count", "", nil)
	assert.Equal(t, http.StatusOK, status)
	assert.Equal(t, float64(1), resp["totalProducts"])
}

func TestProductSubmissionValidation(t *testing.T) {
	app := setupApp(t)
	token, _ := signupAndLogin(t, app, "admin@example.com")

	tests := []struct {
		name    string
		mutate  func(map[string]string)
		images  int
		mime    string
		message string
	}{
		{
			name:    "missing sizes",
			mutate:  func(f map[string]string) { delete(f, "sizesAvailable") },
			images:  1,
			mime:    "image/jpeg",
			message: "Title, price, category, and sizesAvailable are required",
		},
		{
			name:    "bad size label",
			mutate:  func(f map[string]string) { f["sizesAvailable"] = `[{"size":"XXXL","quantity":1}]` },
			images:  1,
			mime:    "image/jpeg",
			message: "Size must be one of XS, S, M, L, XL, XXL",
		},
		{
			name:    "negative price",
			mutate:  func(f map[string]string) { f["price"] = "-10" },
			images:  1,
			mime:    "image/jpeg",
			message: "Price must be a non-negative number",
		},
		{
			name:    "no images",
			mutate:  func(map[string]string) {},
			images:  0,
			mime:    "image/jpeg",
			message: "At least one product image is required",
		},
		{
			name:    "too many images",
			mutate:  func(map[string]string) {},
			images:  6,
			mime:    "image/jpeg",
			message: "Too many files uploaded. Maximum 5 images allowed.",
		},
		{
			name:    "disallowed image type",
			mutate:  func(map[string]string) {},
			images:  1,
			mime:    "application/pdf",
			message: "Only JPEG, PNG, WebP, or GIF images are allowed",
		},
	}

	for _, tc := range tests {
		t.Run(tc.name, func(t *testing.T) {
			fields := defaultProductFields()
			tc.mutate(fields)

			status, resp := submitProduct(t, app, token, fields, tc.images, tc.mime)
			assert.Equal(t, http.StatusBadRequest, status)
			assert.Equal(t, tc.message, resp["message"])
		})
	}
}

func TestProductRoutesAuthGates(t *testing.T) {
	app := setupApp(t)

	// reads are public
	status, _ := doJSON(t, app, http.MethodGet, "/api/products", "", nil)
	assert.Equal(t, http.StatusOK, status)

	// mutations are not
	status, resp := submitProduct(t, app, "", defaultProductFields(), 1, "image/jpeg")
	assert.Equal(t, http.StatusUnauthorized, status)
	assert.Equal(t, "Authorization header is required", resp["message"])

	status, _ = doJSON(t, app, http.MethodDelete, "/api/products/some-id", "", nil)
	assert.Equal(t, http.StatusUnauthorized, status)
}

func TestDeleteProduct(t *testing.T) {
	app := setupApp(t)
	token, _ := signupAndLogin(t, app, "admin@example.com")

	status, resp := submitProduct(t, app, token, defaultProductFields(), 1, "image/jpeg")
	require.Equal(t, http.StatusCreated, status)
	product, _ := resp["product"].(map[string]interface{})
	productID, _ := product["id"].(string)
	require.NotEmpty(t, productID)

	status, resp = doJSON(t, app, http.MethodDelete, "/api/products/"+productID, token, nil)
	assert.Equal(t, http.StatusOK, status)
	assert.Equal(t, "Product deleted successfully", resp["message"])
	deleted, _ := resp["deletedProduct"].(map[string]interface{})
	require.NotNil(t, deleted)
	assert.Equal(t, "Linen Summer Shirt", deleted["title"])

	status, _ = doJSON(t, app, http.MethodDelete, "/api/products/"+productID, token, nil)
	assert.Equal(t, http.StatusNotFound, status)

	status, _ = doJSON(t, app, http.MethodGet, "/api/products/"+productID, "", nil)
	assert.Equal(t, http.StatusNotFound, status)
}

func TestCartAndWishlistFlow(t *testing.T) {
	app := setupApp(t)
	token, userID := signupAndLogin(t, app, "shopper@example.com")

	status, resp := submitProduct(t, app, token, defaultProductFields(), 1, "image/jpeg")
	require.Equal(t, http.StatusCreated, status)
	product, _ := resp["product"].(map[string]interface{})
	productID, _ := product["id"].(string)
	require.NotEmpty(t, productID)

	pair := map[string]string{"userId": userID, "productId": productID}

	// cart routes require auth
	status, _ = doJSON(t, app, http.MethodPost, "/api/cw/cart/add", "", pair)
	assert.Equal(t, http.StatusUnauthorized, status)

	status, resp = doJSON(t, app, http.MethodPost, "/api/cw/cart/add", token, pair)
	require.Equal(t, http.StatusOK, status)
	cart, _ := resp["cart"].([]interface{})
	require.Len(t, cart, 1)

	status, resp = doJSON(t, app, http.MethodPost, "/api/cw/cart/add", token, pair)
	require.Equal(t, http.StatusOK, status)
	cart, _ = resp["cart"].([]interface{})
	entry, _ := cart[0].(map[string]interface{})
	assert.Equal(t, float64(2), entry["quantity"])

	status, resp = doJSON(t, app, http.MethodPost, "/api/cw/cart/update", token, map[string]interface{}{
		"userId": userID, "productId": productID, "quantity": 5,
	})
	require.Equal(t, http.StatusOK, status)
	cart, _ = resp["cart"].([]interface{})
	entry, _ = cart[0].(map[string]interface{})
	assert.Equal(t, float64(5), entry["quantity"])

	status, resp = doJSON(t, app, http.MethodPost, "/api/cw/cart/update", token, map[string]interface{}{
		"userId": userID, "productId": productID, "quantity": 0,
	})
	assert.Equal(t, http.StatusBadRequest, status)
	assert.Equal(t, "Quantity must be at least 1", resp["message"])

	status, _ = doJSON(t, app, http.MethodPost, "/api/cw/cart/update", token, map[string]interface{}{
		"userId": userID, "productId": "not-in-cart", "quantity": 2,
	})
	assert.Equal(t, http.StatusNotFound, status)

	status, resp = doJSON(t, app, http.MethodGet, "/api/cw/cart/"+userID, token, nil)
	require.Equal(t, http.StatusOK, status)
	cart, _ = resp["cart"].([]interface{})
	assert.Len(t, cart, 1)

	status, resp = doJSON(t, app, http.MethodPost, "/api/cw/cart/remove", token, pair)
	require.Equal(t, http.StatusOK, status)
	cart, _ = resp["cart"].([]interface{})
	assert.Empty(t, cart)

	// wishlist is a set
	status, resp = doJSON(t, app, http.MethodPost, "/api/cw/wishlist/add", token, pair)
	require.Equal(t, http.StatusOK, status)
	wishlist, _ := resp["wishlist"].([]interface{})
	assert.Len(t, wishlist, 1)

	status, resp = doJSON(t, app, http.MethodPost, "/api/cw/wishlist/add", token, pair)
	require.Equal(t, http.StatusOK, status)
	wishlist, _ = resp["wishlist"].([]interface{})
	assert.Len(t, wishlist, 1)

	status, resp = doJSON(t, app, http.MethodPost, "/api/cw/wishlist/remove", token, pair)
	require.Equal(t, http.StatusOK, status)
	wishlist, _ = resp["wishlist"].([]interface{})
	assert.Empty(t, wishlist)
}

func TestContactFlow(t *testing.T) {
	app := setupApp(t)

	// submission is public
	status, resp := doJSON(t, app, http.MethodPost, "/api/contact", "", map[string]string{
		"name":    "Asha Verma",
		"email":   "asha@example.com",
		"subject": "Order enquiry",
		"message": "Where is my order?",
	})
	assert.Equal(t, http.StatusOK, status)
	assert.Equal(t, "Contact request sent successfully", resp["message"])

	status, resp = doJSON(t, app, http.MethodPost, "/api/contact", "", map[string]string{
		"name": "Missing Everything",
	})
	assert.Equal(t, http.StatusBadRequest, status)
	assert.Equal(t, "Name, email, subject, and message are required", resp["message"])

	status, resp = doJSON(t, app, http.MethodPost, "/api/contact", "", map[string]string{
		"name":    "Bad Email",
		"email":   "nope",
		"subject": "Hi",
		"message": "Hello",
	})
	assert.Equal(t, http.StatusBadRequest, status)
	assert.Equal(t, "Invalid email format", resp["message"])

	// the listing is not public
	status, _ = doJSON(t, app, http.MethodGet, "/api/contact", "", nil)
	assert.Equal(t, http.StatusUnauthorized, status)

	token, _ := signupAndLogin(t, app, "admin@example.com")
	status, resp = doJSON(t, app, http.MethodGet, "/api/contact", token, nil)
	require.Equal(t, http.StatusOK, status)
	data, _ := resp["data"].([]interface{})
	require.Len(t, data, 1)
	submission, _ := data[0].(map[string]interface{})
	assert.Equal(t, "Order enquiry", submission["subject"])
}

func TestStatsEndpoint(t *testing.T) {
	app := setupApp(t)
	token, _ := signupAndLogin(t, app, "admin@example.com")

	status, resp := submitProduct(t, app, token, defaultProductFields(), 1, "image/jpeg")
	require.Equal(t, http.StatusCreated, status)
	_ = resp

	status, _ = doJSON(t, app, http.MethodGet, "/api/stats", "", nil)
	assert.Equal(t, http.StatusUnauthorized, status)

	status, resp = doJSON(t, app, http.MethodGet, "/api/stats", token, nil)
	require.Equal(t, http.StatusOK, status)
	stats, _ := resp["stats"].(map[string]interface{})
	require.NotNil(t, stats)
	assert.Equal(t, float64(1), stats["totalProducts"])
	assert.Equal(t, float64(1), stats["totalUsers"])
	assert.Equal(t, float64(0), stats["totalContacts"])
}

func TestUserListingEndpoints(t *testing.T) {
	app := setupApp(t)
	token, userID := signupAndLogin(t, app, "admin@example.com")

	status, resp := doJSON(t, app, http.MethodGet, "/api/auth/getuser", token, nil)
	require.Equal(t, http.StatusOK, status)
	users, _ := resp["users"].([]interface{})
	require.Len(t, users, 1)
	user, _ := users[0].(map[string]interface{})
	assert.Equal(t, userID, user["id"])
	assert.NotContains(t, user, "password")

	status, resp = doJSON(t, app, http.MethodGet, "/api/auth/getcount", token, nil)
	require.Equal(t, http.StatusOK, status)
	assert.Equal(t, float64(1), resp["totalUsers"])

	status, resp = doJSON(t, app, http.MethodGet, "/api/auth/byemail/admin@example.com", token, nil)
	require.Equal(t, http.StatusOK, status)
	fetched, _ := resp["user"].(map[string]interface{})
	require.NotNil(t, fetched)
	assert.Equal(t, "admin@example.com", fetched["email"])

	// unknown email is a 404
	status, _ = doJSON(t, app, http.MethodGet, "/api/auth/byemail/ghost@example.com", token, nil)
	assert.Equal(t, http.StatusNotFound, status)
}
