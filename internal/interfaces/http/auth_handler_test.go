package http_test

import (
	"bytes"
	"context"
	"encoding/json"
	"net/http"
	"testing"

	"github.com/gofiber/fiber/v2"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"golang.org/x/crypto/bcrypt"

	"github.com/henry-diagnostics/taller-api/internal/application/auth"
	"github.com/henry-diagnostics/taller-api/internal/application/dto"
	"github.com/henry-diagnostics/taller-api/internal/domain/entity"
	apphttp "github.com/henry-diagnostics/taller-api/internal/interfaces/http"
)

// fakeUserRepo repositorio de usuarios en memoria indexado por email.
type fakeUserRepo struct {
	users map[string]*entity.User
}

func (r *fakeUserRepo) Create(_ context.Context, u *entity.User) error {
	r.users[u.Email] = u
	return nil
}

func (r *fakeUserRepo) GetByID(_ context.Context, id string) (*entity.User, error) {
	for _, u := range r.users {
		if u.ID == id {
			cp := *u
			return &cp, nil
		}
	}
	return nil, nil
}

func (r *fakeUserRepo) GetByEmail(_ context.Context, email string) (*entity.User, error) {
	u, ok := r.users[email]
	if !ok {
		return nil, nil
	}
	cp := *u
	return &cp, nil
}

func (r *fakeUserRepo) List(_ context.Context) ([]*entity.User, error) {
	out := make([]*entity.User, 0, len(r.users))
	for _, u := range r.users {
		cp := *u
		out = append(out, &cp)
	}
	return out, nil
}

func buildLoginApp(t *testing.T, repo *fakeUserRepo) *fiber.App {
	t.Helper()
	uc := auth.NewAuthUseCase(repo, auth.JWTConfig{
		Secret:     testJWTSecret,
		ExpMinutes: testExpMin,
		Issuer:     testIssuer,
	})
	handler := apphttp.NewAuthHandler(uc, "test")
	app := fiber.New()
	app.Post("/api/auth/login", handler.Login)
	return app
}

func seedUser(t *testing.T, repo *fakeUserRepo, email, password string) {
	t.Helper()
	hash, err := bcrypt.GenerateFromPassword([]byte(password), bcrypt.MinCost)
	require.NoError(t, err)
	repo.users[email] = &entity.User{
		ID:           testUserID,
		Email:        email,
		PasswordHash: string(hash),
		Nombre:       "Asesor de Prueba",
		Role:         entity.RoleAsesor,
		Activo:       true,
	}
}

func postLogin(t *testing.T, app *fiber.App, email, password string) (*http.Response, dto.ErrorResponse) {
	t.Helper()
	body, err := json.Marshal(dto.LoginRequest{Email: email, Password: password})
	require.NoError(t, err)
	req, err := http.NewRequest(http.MethodPost, "/api/auth/login", bytes.NewReader(body))
	require.NoError(t, err)
	req.Header.Set("Content-Type", "application/json")

	resp, err := app.Test(req)
	require.NoError(t, err)

	var errResp dto.ErrorResponse
	if resp.StatusCode != http.StatusOK {
		require.NoError(t, json.NewDecoder(resp.Body).Decode(&errResp))
	}
	return resp, errResp
}

// Un email desconocido y un password incorrecto deben responder exactamente
// igual: 401 con mensaje opaco, sin revelar qué cuentas existen.
func TestLogin_EmailDesconocido_NoRevelaCuentas(t *testing.T) {
	repo := &fakeUserRepo{users: map[string]*entity.User{}}
	seedUser(t, repo, "asesor@taller.mx", "secreto-123")
	app := buildLoginApp(t, repo)

	respDesconocido, errDesconocido := postLogin(t, app, "nadie@taller.mx", "cualquiera")
	assert.Equal(t, http.StatusUnauthorized, respDesconocido.StatusCode)
	assert.Equal(t, "UNAUTHORIZED", errDesconocido.Code)
	assert.Equal(t, "credenciales inválidas", errDesconocido.Message)

	respPassword, errPassword := postLogin(t, app, "asesor@taller.mx", "password-malo")
	assert.Equal(t, http.StatusUnauthorized, respPassword.StatusCode)
	assert.Equal(t, errDesconocido.Code, errPassword.Code)
	assert.Equal(t, errDesconocido.Message, errPassword.Message)
}

func TestLogin_CredencialesCorrectas_EmiteToken(t *testing.T) {
	repo := &fakeUserRepo{users: map[string]*entity.User{}}
	seedUser(t, repo, "asesor@taller.mx", "secreto-123")
	app := buildLoginApp(t, repo)

	body, err := json.Marshal(dto.LoginRequest{Email: "asesor@taller.mx", Password: "secreto-123"})
	require.NoError(t, err)
	req, err := http.NewRequest(http.MethodPost, "/api/auth/login", bytes.NewReader(body))
	require.NoError(t, err)
	req.Header.Set("Content-Type", "application/json")

	resp, err := app.Test(req)
	require.NoError(t, err)
	require.Equal(t, http.StatusOK, resp.StatusCode)

	var out dto.LoginResponse
	require.NoError(t, json.NewDecoder(resp.Body).Decode(&out))
	assert.NotEmpty(t, out.Token)
	require.NotNil(t, out.User)
	assert.Equal(t, "asesor@taller.mx", out.User.Email)
}

func TestLogin_CuentaInactiva_Forbidden(t *testing.T) {
	repo := &fakeUserRepo{users: map[string]*entity.User{}}
	seedUser(t, repo, "baja@taller.mx", "secreto-123")
	repo.users["baja@taller.mx"].Activo = false
	app := buildLoginApp(t, repo)

	resp, errResp := postLogin(t, app, "baja@taller.mx", "secreto-123")
	assert.Equal(t, http.StatusForbidden, resp.StatusCode)
	assert.Equal(t, "FORBIDDEN", errResp.Code)
}
