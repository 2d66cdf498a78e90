package http

import (
	"bytes"
	"context"
	"encoding/json"
	"fmt"
	"io"
	"net/http"
	"net/http/httptest"
	"sort"
	"sync"
	"testing"

	"github.com/gofiber/fiber/v2"
	"github.com/jackc/pgx/v5"
	"go.uber.org/zap"

	"github.com/spec-kit/complaint-service/internal/api/http/handlers"
	"github.com/spec-kit/complaint-service/internal/auth"
	"github.com/spec-kit/complaint-service/internal/config"
	"github.com/spec-kit/complaint-service/internal/domain"
	"github.com/spec-kit/complaint-service/internal/repository"
	"github.com/spec-kit/complaint-service/internal/service"
)

type memUserRepo struct {
	mu      sync.Mutex
	seq     int
	byEmail map[string]*domain.User
}

func newMemUserRepo() *memUserRepo {
	return &memUserRepo{byEmail: map[string]*domain.User{}}
}

func (r *memUserRepo) Create(_ context.Context, user *domain.User) error {
	r.mu.Lock()
	defer r.mu.Unlock()
	r.seq++
	user.ID = fmt.Sprintf("user-%d", r.seq)
	stored := *user
	r.byEmail[user.Email] = &stored
	return nil
}

func (r *memUserRepo) GetByEmail(_ context.Context, email string) (*domain.User, error) {
	r.mu.Lock()
	defer r.mu.Unlock()
	user, ok := r.byEmail[email]
	if !ok {
		return nil, pgx.ErrNoRows
	}
	copied := *user
	return &copied, nil
}

type memComplaintRepo struct {
	mu   sync.Mutex
	seq  int
	byID map[string]*domain.Complaint
}

func newMemComplaintRepo() *memComplaintRepo {
	return &memComplaintRepo{byID: map[string]*domain.Complaint{}}
}

func (r *memComplaintRepo) Create(_ context.Context, complaint *domain.Complaint) error {
	r.mu.Lock()
	defer r.mu.Unlock()
	r.seq++
	complaint.ID = fmt.Sprintf("complaint-%d", r.seq)
	stored := *complaint
	r.byID[complaint.ID] = &stored
	return nil
}

func (r *memComplaintRepo) GetByID(_ context.Context, id string) (*domain.Complaint, error) {
	r.mu.Lock()
	defer r.mu.Unlock()
	complaint, ok := r.byID[id]
	if !ok {
		return nil, pgx.ErrNoRows
	}
	copied := *complaint
	return &copied, nil
}

func (r *memComplaintRepo) ListWithFilter(_ context.Context, filter repository.ComplaintFilter) ([]domain.Complaint, error) {
	r.mu.Lock()
	defer r.mu.Unlock()
	result := []domain.Complaint{}
	for _, complaint := range r.byID {
		if filter.Status != nil && complaint.Status != *filter.Status {
			continue
		}
		if filter.Priority != nil && complaint.Priority != *filter.Priority {
			continue
		}
		if filter.Category != nil && complaint.Category != *filter.Category {
			continue
		}
		result = append(result, *complaint)
	}
	sort.SliceStable(result, func(i, j int) bool {
		return result[i].DateSubmitted.After(result[j].DateSubmitted)
	})
	return result, nil
}

func (r *memComplaintRepo) ListByOwner(_ context.Context, userID string) ([]domain.Complaint, error) {
	r.mu.Lock()
	defer r.mu.Unlock()
	result := []domain.Complaint{}
	for _, complaint := range r.byID {
		if complaint.UserID == userID {
			result = append(result, *complaint)
		}
	}
	sort.SliceStable(result, func(i, j int) bool {
		return result[i].DateSubmitted.After(result[j].DateSubmitted)
	})
	return result, nil
}

func (r *memComplaintRepo) UpdateStatus(_ context.Context, id string, status domain.ComplaintStatus) error {
	r.mu.Lock()
	defer r.mu.Unlock()
	complaint, ok := r.byID[id]
	if !ok {
		return pgx.ErrNoRows
	}
	complaint.Status = status
	return nil
}

func (r *memComplaintRepo) Delete(_ context.Context, id string) error {
	r.mu.Lock()
	defer r.mu.Unlock()
	if _, ok := r.byID[id]; !ok {
		return pgx.ErrNoRows
	}
	delete(r.byID, id)
	return nil
}

type envelope struct {
	Success bool            `json:"success"`
	Data    json.RawMessage `json:"data"`
	Message string          `json:"message"`
	Error   string          `json:"error"`
}

type testServer struct {
	app   *fiber.App
	users *memUserRepo
}

func newTestServer(t *testing.T) *testServer {
	t.Helper()

	users := newMemUserRepo()
	complaints := newMemComplaintRepo()

	authCfg := config.AuthConfig{JWTSecret: "test-secret", TokenTTLDays: 7, BcryptCost: 4}
	authService := service.NewAuthService(authCfg, users, nil)
	complaintService := service.NewComplaintService(complaints, nil)
	gate := auth.NewGate(authService.TokenManager())

	app := fiber.New()
	RegisterMiddlewares(app, zap.NewNop(), nil, 0)
	RegisterRoutes(app, RouteConfig{
		Health:     handlers.NewHealthHandler("complaint-service", "test", nil, nil),
		Auth:       handlers.NewAuthHandler(authService),
		Complaints: handlers.NewComplaintsHandler(complaintService),
		Gate:       gate,
	})
	return &testServer{app: app, users: users}
}

func (s *testServer) do(t *testing.T, method, path, token string, body any) (int, envelope) {
	t.Helper()

	var reader io.Reader
	if body != nil {
		payload, err := json.Marshal(body)
		if err != nil {
			t.Fatalf("marshal body: %v", err)
		}
		reader = bytes.NewReader(payload)
	}

	req := httptest.NewRequest(method, path, reader)
	if body != nil {
		req.Header.Set("Content-Type", "application/json")
	}
	if token != "" {
		req.Header.Set("Authorization", "Bearer "+token)
	}

	resp, err := s.app.Test(req)
	if err != nil {
		t.Fatalf("%s %s: %v", method, path, err)
	}
	defer resp.Body.Close()

	var env envelope
	if err := json.NewDecoder(resp.Body).Decode(&env); err != nil {
		t.Fatalf("%s %s: decode envelope: %v", method, path, err)
	}
	return resp.StatusCode, env
}

// seedAdmin inserts an administrator directly into storage, mirroring the
// out-of-band bootstrap tool.
func (s *testServer) seedAdmin(t *testing.T) string {
	t.Helper()

	hash, err := auth.HashPassword("admin123456", 4)
	if err != nil {
		t.Fatalf("HashPassword: %v", err)
	}
	admin := &domain.User{
		Name:         "System Administrator",
		Email:        "admin@example.com",
		PasswordHash: hash,
		Role:         domain.RoleAdmin,
	}
	if err := s.users.Create(context.Background(), admin); err != nil {
		t.Fatalf("seed admin: %v", err)
	}

	status, env := s.do(t, http.MethodPost, "/auth/login", "", map[string]string{
		"email":    "admin@example.com",
		"password": "admin123456",
	})
	if status != http.StatusOK {
		t.Fatalf("admin login failed: %d %s", status, env.Error)
	}
	var data struct {
		Token string `json:"token"`
	}
	if err := json.Unmarshal(env.Data, &data); err != nil {
		t.Fatalf("decode login data: %v", err)
	}
	return data.Token
}

func (s *testServer) registerUser(t *testing.T, name, email string) string {
	t.Helper()

	status, env := s.do(t, http.MethodPost, "/auth/register", "", map[string]string{
		"name":     name,
		"email":    email,
		"password": "hunter22",
	})
	if status != http.StatusCreated {
		t.Fatalf("register failed: %d %s", status, env.Error)
	}
	var data struct {
		Token string `json:"token"`
		User  struct {
			Role string `json:"role"`
		} `json:"user"`
	}
	if err := json.Unmarshal(env.Data, &data); err != nil {
		t.Fatalf("decode register data: %v", err)
	}
	if data.User.Role != "user" {
		t.Fatalf("registration produced role %q", data.User.Role)
	}
	return data.Token
}

func TestRegisterDuplicateEmailRejected(t *testing.T) {
	srv := newTestServer(t)
	srv.registerUser(t, "Ada", "ada@example.com")

	status, env := srv.do(t, http.MethodPost, "/auth/register", "", map[string]string{
		"name":     "Ada Again",
		"email":    "ada@example.com",
		"password": "another",
	})
	if status != http.StatusBadRequest {
		t.Fatalf("expected 400, got %d", status)
	}
	if env.Success || env.Error == "" {
		t.Fatalf("expected failure envelope, got %+v", env)
	}
}

func TestProtectedRoutesRequireToken(t *testing.T) {
	srv := newTestServer(t)

	status, env := srv.do(t, http.MethodPost, "/complaints", "", map[string]string{"title": "x"})
	if status != http.StatusUnauthorized || env.Error != "Access token required" {
		t.Fatalf("expected 401 'Access token required', got %d %q", status, env.Error)
	}

	status, env = srv.do(t, http.MethodGet, "/users/complaints", "garbage-token", nil)
	if status != http.StatusUnauthorized || env.Error != "Invalid or expired token" {
		t.Fatalf("expected 401 'Invalid or expired token', got %d %q", status, env.Error)
	}
}

func TestAdminRoutesDenyRegularUsers(t *testing.T) {
	srv := newTestServer(t)
	userToken := srv.registerUser(t, "Ada", "ada@example.com")

	for _, route := range []struct{ method, path string }{
		{http.MethodGet, "/complaints"},
		{http.MethodPatch, "/complaints/some-id"},
		{http.MethodDelete, "/complaints/some-id"},
	} {
		status, env := srv.do(t, route.method, route.path, userToken, map[string]string{"status": "Resolved"})
		if status != http.StatusForbidden || env.Error != "Admin access required" {
			t.Fatalf("%s %s: expected 403 'Admin access required', got %d %q",
				route.method, route.path, status, env.Error)
		}
	}
}

func TestCreateIgnoresCallerSuppliedStatus(t *testing.T) {
	srv := newTestServer(t)
	userToken := srv.registerUser(t, "Ada", "ada@example.com")

	status, env := srv.do(t, http.MethodPost, "/complaints", userToken, map[string]string{
		"title":       "Leak",
		"description": "Sink leaking",
		"category":    "Technical",
		"priority":    "High",
		"status":      "Resolved",
	})
	if status != http.StatusCreated {
		t.Fatalf("create failed: %d %s", status, env.Error)
	}
	var created struct {
		Status string `json:"status"`
	}
	if err := json.Unmarshal(env.Data, &created); err != nil {
		t.Fatalf("decode complaint: %v", err)
	}
	if created.Status != "Pending" {
		t.Fatalf("caller-supplied status was honored: %q", created.Status)
	}
}

func TestCreateMissingFieldRejected(t *testing.T) {
	srv := newTestServer(t)
	userToken := srv.registerUser(t, "Ada", "ada@example.com")

	status, env := srv.do(t, http.MethodPost, "/complaints", userToken, map[string]string{
		"title":    "Leak",
		"category": "Technical",
		"priority": "High",
	})
	if status != http.StatusBadRequest {
		t.Fatalf("expected 400, got %d", status)
	}
	if env.Error != "All fields are required" {
		t.Fatalf("unexpected error: %q", env.Error)
	}
}

func TestComplaintLifecycleEndToEnd(t *testing.T) {
	srv := newTestServer(t)
	adminToken := srv.seedAdmin(t)
	userToken := srv.registerUser(t, "User A", "a@example.com")
	otherToken := srv.registerUser(t, "User B", "b@example.com")

	// User A submits a complaint.
	status, env := srv.do(t, http.MethodPost, "/complaints", userToken, map[string]string{
		"title":       "Leak",
		"description": "Sink leaking",
		"category":    "Technical",
		"priority":    "High",
	})
	if status != http.StatusCreated {
		t.Fatalf("create failed: %d %s", status, env.Error)
	}
	var created struct {
		ID     string `json:"id"`
		Status string `json:"status"`
	}
	if err := json.Unmarshal(env.Data, &created); err != nil {
		t.Fatalf("decode complaint: %v", err)
	}

	// Admin sees it at Pending.
	status, env = srv.do(t, http.MethodGet, "/complaints", adminToken, nil)
	if status != http.StatusOK {
		t.Fatalf("admin list failed: %d %s", status, env.Error)
	}
	var listed []struct {
		ID     string `json:"id"`
		Status string `json:"status"`
	}
	if err := json.Unmarshal(env.Data, &listed); err != nil {
		t.Fatalf("decode list: %v", err)
	}
	if len(listed) != 1 || listed[0].ID != created.ID || listed[0].Status != "Pending" {
		t.Fatalf("unexpected admin list: %+v", listed)
	}

	// Filters apply as a conjunction.
	status, env = srv.do(t, http.MethodGet, "/complaints?status=Resolved", adminToken, nil)
	if status != http.StatusOK {
		t.Fatalf("filtered list failed: %d", status)
	}
	if err := json.Unmarshal(env.Data, &listed); err != nil {
		t.Fatalf("decode list: %v", err)
	}
	if len(listed) != 0 {
		t.Fatalf("status filter leaked results: %+v", listed)
	}
	status, env = srv.do(t, http.MethodGet, "/complaints?status=Pending&priority=High&category=Technical", adminToken, nil)
	if status != http.StatusOK {
		t.Fatalf("filtered list failed: %d", status)
	}
	if err := json.Unmarshal(env.Data, &listed); err != nil {
		t.Fatalf("decode list: %v", err)
	}
	if len(listed) != 1 {
		t.Fatalf("conjunction filter should match: %+v", listed)
	}

	// Invalid status value is rejected without mutation.
	status, env = srv.do(t, http.MethodPatch, "/complaints/"+created.ID, adminToken, map[string]string{
		"status": "Closed",
	})
	if status != http.StatusBadRequest || env.Error != "Valid status is required" {
		t.Fatalf("expected 400 'Valid status is required', got %d %q", status, env.Error)
	}

	// Admin moves it to In Progress.
	status, env = srv.do(t, http.MethodPatch, "/complaints/"+created.ID, adminToken, map[string]string{
		"status": "In Progress",
	})
	if status != http.StatusOK {
		t.Fatalf("status update failed: %d %s", status, env.Error)
	}

	// User A sees the updated status; user B sees nothing.
	status, env = srv.do(t, http.MethodGet, "/users/complaints", userToken, nil)
	if status != http.StatusOK {
		t.Fatalf("own list failed: %d", status)
	}
	if err := json.Unmarshal(env.Data, &listed); err != nil {
		t.Fatalf("decode list: %v", err)
	}
	if len(listed) != 1 || listed[0].Status != "In Progress" {
		t.Fatalf("owner does not see the update: %+v", listed)
	}

	status, env = srv.do(t, http.MethodGet, "/users/complaints", otherToken, nil)
	if status != http.StatusOK {
		t.Fatalf("other list failed: %d", status)
	}
	if err := json.Unmarshal(env.Data, &listed); err != nil {
		t.Fatalf("decode list: %v", err)
	}
	if len(listed) != 0 {
		t.Fatalf("ownership scoping leaked complaints: %+v", listed)
	}

	// Admin deletes; the complaint disappears and a second delete is 404.
	status, env = srv.do(t, http.MethodDelete, "/complaints/"+created.ID, adminToken, nil)
	if status != http.StatusOK || !env.Success {
		t.Fatalf("delete failed: %d %s", status, env.Error)
	}

	status, env = srv.do(t, http.MethodGet, "/complaints", adminToken, nil)
	if status != http.StatusOK {
		t.Fatalf("list after delete failed: %d", status)
	}
	if err := json.Unmarshal(env.Data, &listed); err != nil {
		t.Fatalf("decode list: %v", err)
	}
	if len(listed) != 0 {
		t.Fatalf("deleted complaint still listed: %+v", listed)
	}

	status, env = srv.do(t, http.MethodDelete, "/complaints/"+created.ID, adminToken, nil)
	if status != http.StatusNotFound || env.Error != "Complaint not found" {
		t.Fatalf("expected 404 'Complaint not found', got %d %q", status, env.Error)
	}
}

func TestLoginInvalidCredentialsUniform(t *testing.T) {
	srv := newTestServer(t)
	srv.registerUser(t, "Ada", "ada@example.com")

	for _, body := range []map[string]string{
		{"email": "ada@example.com", "password": "wrong"},
		{"email": "ghost@example.com", "password": "hunter22"},
	} {
		status, env := srv.do(t, http.MethodPost, "/auth/login", "", body)
		if status != http.StatusUnauthorized || env.Error != "Invalid credentials" {
			t.Fatalf("expected uniform 401 'Invalid credentials', got %d %q", status, env.Error)
		}
	}
}
