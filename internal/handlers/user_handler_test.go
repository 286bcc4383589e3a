package handlers

import (
	"context"
	"encoding/json"
	"net/http"
	"net/http/httptest"
	"strings"
	"testing"

	"github.com/gofiber/fiber/v2"
	"github.com/jackc/pgx/v5"
	"github.com/shesaidimnothing/filrouge-api/internal/models"
)

type stubUserStore struct {
	usersByID    map[int64]*models.User
	usersByEmail map[string]*models.User
	created      *models.User
	deletedID    int64
}

func (s *stubUserStore) Create(_ context.Context, user *models.User) error {
	user.ID = 1
	s.created = user
	return nil
}

func (s *stubUserStore) GetByID(_ context.Context, id int64) (*models.User, error) {
	user, ok := s.usersByID[id]
	if !ok {
		return nil, pgx.ErrNoRows
	}
	copied := *user
	return &copied, nil
}

func (s *stubUserStore) GetByEmail(_ context.Context, email string) (*models.User, error) {
	user, ok := s.usersByEmail[email]
	if !ok {
		return nil, pgx.ErrNoRows
	}
	copied := *user
	return &copied, nil
}

func (s *stubUserStore) List(_ context.Context) ([]models.User, error) {
	users := make([]models.User, 0, len(s.usersByID))
	for _, user := range s.usersByID {
		users = append(users, *user)
	}
	return users, nil
}

func (s *stubUserStore) Update(_ context.Context, _ *models.User) error { return nil }

func (s *stubUserStore) Delete(_ context.Context, id int64) error {
	s.deletedID = id
	return nil
}

func newUserApp(store *stubUserStore) *fiber.App {
	handler := NewUserHandler(store)

	app := fiber.New()
	users := app.Group("/api/users")
	users.Get("/", handler.List)
	users.Post("/login", handler.Login)
	users.Post("/", handler.Create)
	users.Get("/:id", handler.Get)
	users.Put("/:id", handler.Update)
	users.Delete("/:id", handler.Delete)
	return app
}

func TestLoginReturnsUserWithoutPassword(t *testing.T) {
	store := &stubUserStore{usersByEmail: map[string]*models.User{
		"ana@example.com": {ID: 1, Email: "ana@example.com", Password: "secret", Name: "Ana"},
	}}
	app := newUserApp(store)

	req := httptest.NewRequest(
		http.MethodPost,
		"/api/users/login",
		strings.NewReader(`{"email":"ana@example.com","password":"secret"}`),
	)
	req.Header.Set("Content-Type", "application/json")

	resp, err := app.Test(req)
	if err != nil {
		t.Fatalf("app.Test: %v", err)
	}
	defer resp.Body.Close()

	if resp.StatusCode != http.StatusOK {
		t.Fatalf("expected 200, got %d", resp.StatusCode)
	}

	var body map[string]any
	if err := json.NewDecoder(resp.Body).Decode(&body); err != nil {
		t.Fatalf("Decode: %v", err)
	}
	if body["email"] != "ana@example.com" {
		t.Fatalf("unexpected body: %+v", body)
	}
	if _, leaked := body["password"]; leaked {
		t.Fatal("password must never be serialized")
	}
}

func TestLoginRejectsWrongPassword(t *testing.T) {
	store := &stubUserStore{usersByEmail: map[string]*models.User{
		"ana@example.com": {ID: 1, Email: "ana@example.com", Password: "secret", Name: "Ana"},
	}}
	app := newUserApp(store)

	req := httptest.NewRequest(
		http.MethodPost,
		"/api/users/login",
		strings.NewReader(`{"email":"ana@example.com","password":"wrong"}`),
	)
	req.Header.Set("Content-Type", "application/json")

	resp, err := app.Test(req)
	if err != nil {
		t.Fatalf("app.Test: %v", err)
	}
	defer resp.Body.Close()

	if resp.StatusCode != http.StatusUnauthorized {
		t.Fatalf("expected 401, got %d", resp.StatusCode)
	}
}

func TestCreateUserRejectsDuplicateEmail(t *testing.T) {
	store := &stubUserStore{usersByEmail: map[string]*models.User{
		"ana@example.com": {ID: 1, Email: "ana@example.com", Password: "secret", Name: "Ana"},
	}}
	app := newUserApp(store)

	req := httptest.NewRequest(
		http.MethodPost,
		"/api/users/",
		strings.NewReader(`{"email":"ana@example.com","password":"secret","name":"Ana"}`),
	)
	req.Header.Set("Content-Type", "application/json")

	resp, err := app.Test(req)
	if err != nil {
		t.Fatalf("app.Test: %v", err)
	}
	defer resp.Body.Close()

	if resp.StatusCode != http.StatusBadRequest {
		t.Fatalf("expected 400, got %d", resp.StatusCode)
	}
	if store.created != nil {
		t.Fatalf("expected no user to be created, got %+v", store.created)
	}
}

func TestCreateUserNormalizesEmail(t *testing.T) {
	store := &stubUserStore{usersByEmail: map[string]*models.User{}}
	app := newUserApp(store)

	req := httptest.NewRequest(
		http.MethodPost,
		"/api/users/",
		strings.NewReader(`{"email":"Ana@Example.COM","password":"secret","name":"Ana"}`),
	)
	req.Header.Set("Content-Type", "application/json")

	resp, err := app.Test(req)
	if err != nil {
		t.Fatalf("app.Test: %v", err)
	}
	defer resp.Body.Close()

	if resp.StatusCode != http.StatusCreated {
		t.Fatalf("expected 201, got %d", resp.StatusCode)
	}
	if store.created == nil || store.created.Email != "ana@example.com" {
		t.Fatalf("expected lowercased email, got %+v", store.created)
	}
}

func TestDeleteUserReturnsNotFound(t *testing.T) {
	app := newUserApp(&stubUserStore{usersByID: map[int64]*models.User{}})

	req := httptest.NewRequest(http.MethodDelete, "/api/users/9", nil)
	resp, err := app.Test(req)
	if err != nil {
		t.Fatalf("app.Test: %v", err)
	}
	defer resp.Body.Close()

	if resp.StatusCode != http.StatusNotFound {
		t.Fatalf("expected 404, got %d", resp.StatusCode)
	}
}
