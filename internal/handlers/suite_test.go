package handlers_test

import (
	"bytes"
	"context"
	"encoding/json"
	"net/http"
	"net/http/httptest"
	"os"
	"testing"

	"github.com/gin-gonic/gin"

	. "inkfolio/internal/handlers"
	m "inkfolio/internal/models"
	r "inkfolio/internal/repositories"
	"inkfolio/internal/services"
	"inkfolio/pkg/auth"
)

func TestMain(tm *testing.M) {
	os.Setenv("JWT_SECRET", "handler-test-secret")
	os.Exit(tm.Run())
}

// testEnv wires the full HTTP surface over in-memory stores.
type testEnv struct {
	users   *r.MemoryUserStore
	tattoos r.TattooStore
	svc     *services.TattooService
	router  *gin.Engine
}

func newTestEnv() *testEnv {
	users := r.NewMemoryUserStore()
	tattoos := r.NewMemoryTattooStore()

	tokens := auth.NewJWT("")
	hasher := auth.NewBcryptHasher()

	authService := services.NewAuthService(users, hasher, tokens)
	userService := services.NewUserService(users, tattoos, nil)
	tattooService := services.NewTattooService(users, tattoos, nil)

	router := SetupRouterForTests(HandlersConfig{
		AuthHandler:   NewAuthHandler(authService),
		UserHandler:   NewUserHandler(userService, nil),
		TattooHandler: NewTattooHandler(tattooService, nil),
	})

	return &testEnv{users: users, tattoos: tattoos, svc: tattooService, router: router}
}

func (e *testEnv) createUser(name string) m.User {
	user, _ := e.users.Create(context.Background(), m.User{
		Name:              name,
		Email:             name + "@example.com",
		EncryptedPassword: "not-a-real-hash",
		Portfolio:         []string{},
		Favorites:         []string{},
	})

	return user
}

func (e *testEnv) createTattoo(ownerID, design string) m.Tattoo {
	updated, _ := e.svc.CreateTattoo(context.Background(), ownerID, services.TattooRequest{Design: design})

	tattooID := updated.Portfolio[len(updated.Portfolio)-1]
	tattoo, _ := e.tattoos.Get(context.Background(), tattooID)

	return tattoo
}

// do performs a request; a non-empty userID authenticates it with a fresh
// token for that user.
func (e *testEnv) do(method, path, userID string, body any) *httptest.ResponseRecorder {
	var reader *bytes.Reader

	if body != nil {
		raw, _ := json.Marshal(body)
		reader = bytes.NewReader(raw)
	} else {
		reader = bytes.NewReader(nil)
	}

	req, _ := http.NewRequest(method, path, reader)

	if userID != "" {
		token, _ := auth.CreateJwtTokenForUser(userID)
		req.Header.Set("Authorization", "Bearer "+token)
	}

	rr := httptest.NewRecorder()
	e.router.ServeHTTP(rr, req)

	return rr
}

func decodeData[T any](rr *httptest.ResponseRecorder) T {
	var envelope struct {
		Data T `json:"data"`
	}

	json.Unmarshal(rr.Body.Bytes(), &envelope)

	return envelope.Data
}
