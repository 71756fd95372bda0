package authController

import (
	"bytes"
	"encoding/json"
	"fmt"
	"net/http"
	"net/http/httptest"
	"testing"

	"lms/config"
	"lms/database"
	authValidators "lms/validators/auth"

	"lms/models"

	"github.com/gofiber/fiber/v2"
	"github.com/stretchr/testify/require"
	"gorm.io/driver/sqlite"
	"gorm.io/gorm"
)

type apiResponse struct {
	Status  bool            `json:"status"`
	Message string          `json:"message"`
	Data    json.RawMessage `json:"data"`
}

func setupAuthApp(t *testing.T) *fiber.App {
	t.Helper()

	config.AppConfig = &config.Config{
		Port:      "3000",
		JWTKey:    "test-secret",
		SaltRound: 4,
	}

	db, err := gorm.Open(sqlite.Open(fmt.Sprintf("file:%s?mode=memory&cache=shared", t.Name())), &gorm.Config{})
	require.NoError(t, err)

	database.RunMigrations(db)
	database.Database = database.DbInstance{Db: db}

	app := fiber.New()
	authGroup := app.Group("/auth")
	authGroup.Post("/signup", authValidators.Signup(), Signup)
	authGroup.Post("/login", authValidators.Login(), Login)
	authGroup.Post("/verify-2fa", Verify2FA)
	authGroup.Patch("/verify-email", VerifyEmail)

	return app
}

func postJSON(t *testing.T, app *fiber.App, path string, body interface{}) (*http.Response, apiResponse) {
	t.Helper()

	var buf bytes.Buffer
	require.NoError(t, json.NewEncoder(&buf).Encode(body))

	method := "POST"
	if path == "/auth/verify-email" {
		method = "PATCH"
	}

	req := httptest.NewRequest(method, path, &buf)
	req.Header.Set("Content-Type", "application/json")

	resp, err := app.Test(req, -1)
	require.NoError(t, err)

	var parsed apiResponse
	require.NoError(t, json.NewDecoder(resp.Body).Decode(&parsed))
	return resp, parsed
}

func TestSignupAndTwoFactorLogin(t *testing.T) {
	app := setupAuthApp(t)
	db := database.Database.Db

	email := "asha@example.com"

	resp, body := postJSON(t, app, "/auth/signup", fiber.Map{
		"name":     "Asha Learner",
		"email":    email,
		"password": "strongpassword",
	})
	require.Equal(t, fiber.StatusCreated, resp.StatusCode)
	require.True(t, body.Status)

	// Duplicate email is rejected
	resp, _ = postJSON(t, app, "/auth/signup", fiber.Map{
		"name":     "Asha Again",
		"email":    email,
		"password": "strongpassword",
	})
	require.Equal(t, fiber.StatusConflict, resp.StatusCode)

	// Login before verification is refused
	resp, _ = postJSON(t, app, "/auth/login", fiber.Map{
		"email":    email,
		"password": "strongpassword",
	})
	require.Equal(t, fiber.StatusUnauthorized, resp.StatusCode)

	// Signup stored a verification code; consume it
	var verifyOTP models.OTP
	require.NoError(t, db.Where("email = ? AND description = ?", email, models.OTPEmailVerification).First(&verifyOTP).Error)

	resp, _ = postJSON(t, app, "/auth/verify-email", fiber.Map{
		"email": email,
		"code":  verifyOTP.Code,
	})
	require.Equal(t, fiber.StatusOK, resp.StatusCode)

	// Wrong password does not mint a second factor
	resp, _ = postJSON(t, app, "/auth/login", fiber.Map{
		"email":    email,
		"password": "not-the-password",
	})
	require.Equal(t, fiber.StatusUnauthorized, resp.StatusCode)

	// Correct credentials respond with a 2FA challenge, not a token
	resp, body = postJSON(t, app, "/auth/login", fiber.Map{
		"email":    email,
		"password": "strongpassword",
	})
	require.Equal(t, fiber.StatusOK, resp.StatusCode)

	var challenge struct {
		Requires2FA bool `json:"requires2fa"`
	}
	require.NoError(t, json.Unmarshal(body.Data, &challenge))
	require.True(t, challenge.Requires2FA)

	var loginOTP models.OTP
	require.NoError(t, db.Where("email = ? AND description = ? AND is_used = ?", email, models.OTPTwoFactorLogin, false).First(&loginOTP).Error)

	// A bogus code is rejected
	resp, _ = postJSON(t, app, "/auth/verify-2fa", fiber.Map{
		"email": email,
		"code":  "000000",
	})
	require.Equal(t, fiber.StatusUnauthorized, resp.StatusCode)

	resp, body = postJSON(t, app, "/auth/verify-2fa", fiber.Map{
		"email": email,
		"code":  loginOTP.Code,
	})
	require.Equal(t, fiber.StatusOK, resp.StatusCode)

	var session struct {
		Token string `json:"token"`
	}
	require.NoError(t, json.Unmarshal(body.Data, &session))
	require.NotEmpty(t, session.Token)

	// The code is single use
	resp, _ = postJSON(t, app, "/auth/verify-2fa", fiber.Map{
		"email": email,
		"code":  loginOTP.Code,
	})
	require.Equal(t, fiber.StatusUnauthorized, resp.StatusCode)

	// Login history was recorded on the verified login
	var tracked int64
	db.Model(&models.LoginTracking{}).Count(&tracked)
	require.Equal(t, int64(1), tracked)
}

func TestSignupValidation(t *testing.T) {
	app := setupAuthApp(t)

	resp, _ := postJSON(t, app, "/auth/signup", fiber.Map{
		"name":     "A",
		"email":    "not-an-email",
		"password": "short",
	})
	require.Equal(t, fiber.StatusUnprocessableEntity, resp.StatusCode)
}
