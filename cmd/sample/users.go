package main

import (
	"context"
	"net/http"
	"sort"
	"strings"
	"sync"
	"time"

	"github.com/google/uuid"

	"github.com/bjaus/endpoints"
)

// User is the resource served by the sample API.
type User struct {
	ID        string    `json:"id"`
	Name      string    `json:"name"`
	Email     string    `json:"email"`
	Role      string    `json:"role"`
	CreatedAt time.Time `json:"created_at"`
}

// userStore is an in-memory user repository. Registered as a singleton so
// every endpoint shares the same data.
type userStore struct {
	mu    sync.RWMutex
	users map[string]*User
}

func newUserStore() *userStore {
	now := time.Now()
	return &userStore{
		users: map[string]*User{
			"1": {ID: "1", Name: "Alice", Email: "alice@example.com", Role: "admin", CreatedAt: now},
			"2": {ID: "2", Name: "Bob", Email: "bob@example.com", Role: "member", CreatedAt: now},
		},
	}
}

func (s *userStore) list(role string) []User {
	s.mu.RLock()
	defer s.mu.RUnlock()
	out := make([]User, 0, len(s.users))
	for _, u := range s.users {
		if role != "" && u.Role != role {
			continue
		}
		out = append(out, *u)
	}
	sort.Slice(out, func(i, j int) bool { return out[i].CreatedAt.Before(out[j].CreatedAt) })
	return out
}

func (s *userStore) get(id string) (*User, bool) {
	s.mu.RLock()
	defer s.mu.RUnlock()
	u, ok := s.users[id]
	if !ok {
		return nil, false
	}
	c := *u
	return &c, true
}

func (s *userStore) create(name, email, role string) *User {
	s.mu.Lock()
	defer s.mu.Unlock()
	u := &User{ID: uuid.NewString(), Name: name, Email: email, Role: role, CreatedAt: time.Now()}
	s.users[u.ID] = u
	return u
}

func (s *userStore) delete(id string) bool {
	s.mu.Lock()
	defer s.mu.Unlock()
	if _, ok := s.users[id]; !ok {
		return false
	}
	delete(s.users, id)
	return true
}

// ---------------------------------------------------------------------------
// Health (announced, ungrouped)
// ---------------------------------------------------------------------------

func init() {
	endpoints.Announce("system", newHealthEndpoint)
}

type healthStatus struct {
	Status string    `json:"status"`
	Time   time.Time `json:"time"`
}

type healthEndpoint struct{}

func newHealthEndpoint() *healthEndpoint { return &healthEndpoint{} }

func (e *healthEndpoint) Handle(context.Context) (*healthStatus, error) {
	return &healthStatus{Status: "ok", Time: time.Now()}, nil
}

func (e *healthEndpoint) Routes(reg endpoints.Registrar) {
	endpoints.MapResponder(reg, http.MethodGet, "/health", e,
		endpoints.WithSummary("Health check"),
		endpoints.WithTags("ops"),
	)
}

// ---------------------------------------------------------------------------
// Users (grouped under /api/v1, bearer-auth protected)
// ---------------------------------------------------------------------------

// v1Group nests an endpoint under /api/v1 with bearer-token auth. Embedded
// by every user endpoint; each still gets its own group instance.
type v1Group struct {
	token string
}

func (g v1Group) GroupPrefix() string { return "/api/v1" }

func (g v1Group) ConfigureGroup(grp *endpoints.Group) {
	grp.Tag("v1")
	grp.Use(bearerAuth(g.token))
}

func bearerAuth(token string) endpoints.Middleware {
	return func(next http.Handler) http.Handler {
		return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
			got, ok := strings.CutPrefix(r.Header.Get("Authorization"), "Bearer ")
			if !ok || got != token {
				w.Header().Set("WWW-Authenticate", "Bearer")
				http.Error(w, "unauthorized", http.StatusUnauthorized)
				return
			}
			next.ServeHTTP(w, r)
		})
	}
}

type listUsersRequest struct {
	Role string `query:"role"`
}

type userList struct {
	Users []User `json:"users"`
	Count int    `json:"count"`
}

type listUsersEndpoint struct {
	v1Group
	store *userStore
}

func newListUsersEndpoint(cfg *Config, store *userStore) *listUsersEndpoint {
	return &listUsersEndpoint{v1Group: v1Group{token: cfg.AuthToken}, store: store}
}

func (e *listUsersEndpoint) Handle(_ context.Context, req *listUsersRequest) (*userList, error) {
	users := e.store.list(req.Role)
	return &userList{Users: users, Count: len(users)}, nil
}

func (e *listUsersEndpoint) Routes(reg endpoints.Registrar) {
	endpoints.MapExchange(reg, http.MethodGet, "/users", e,
		endpoints.WithSummary("List users"),
		endpoints.WithTags("users"),
	)
}

type getUserRequest struct {
	ID             string `path:"id"`
	IncludeDetails bool
}

type userDetail struct {
	User
	Details map[string]string `json:"details,omitempty"`
}

type getUserEndpoint struct {
	v1Group
	store *userStore
}

func newGetUserEndpoint(cfg *Config, store *userStore) *getUserEndpoint {
	return &getUserEndpoint{v1Group: v1Group{token: cfg.AuthToken}, store: store}
}

func (e *getUserEndpoint) RequestFromParams() bool { return true }

func (e *getUserEndpoint) Handle(_ context.Context, req *getUserRequest) (*userDetail, error) {
	u, ok := e.store.get(req.ID)
	if !ok {
		return nil, endpoints.Errorf(http.StatusNotFound, "user %q not found", req.ID)
	}
	detail := &userDetail{User: *u}
	if req.IncludeDetails {
		detail.Details = map[string]string{"member_since": u.CreatedAt.Format(time.DateOnly)}
	}
	return detail, nil
}

func (e *getUserEndpoint) Routes(reg endpoints.Registrar) {
	endpoints.MapExchange(reg, http.MethodGet, "/users/{id}", e,
		endpoints.WithSummary("Get user by ID"),
		endpoints.WithTags("users"),
	)
}

type createUserRequest struct {
	Name  string `json:"name"`
	Email string `json:"email"`
	Role  string `json:"role"`
}

func (r *createUserRequest) Validate() error {
	if r.Name == "" {
		return endpoints.Error(http.StatusUnprocessableEntity, "name is required")
	}
	if r.Email == "" {
		return endpoints.Error(http.StatusUnprocessableEntity, "email is required")
	}
	return nil
}

type createUserEndpoint struct {
	v1Group
	store *userStore
}

func newCreateUserEndpoint(cfg *Config, store *userStore) *createUserEndpoint {
	return &createUserEndpoint{v1Group: v1Group{token: cfg.AuthToken}, store: store}
}

func (e *createUserEndpoint) Handle(_ context.Context, req *createUserRequest) (*User, error) {
	role := req.Role
	if role == "" {
		role = "member"
	}
	return e.store.create(req.Name, req.Email, role), nil
}

func (e *createUserEndpoint) Routes(reg endpoints.Registrar) {
	endpoints.MapExchange(reg, http.MethodPost, "/users", e,
		endpoints.WithStatus(http.StatusCreated),
		endpoints.WithSummary("Create user"),
		endpoints.WithTags("users"),
	)
}

type deleteUserRequest struct {
	ID string `path:"id"`
}

type deleteUserEndpoint struct {
	v1Group
	store *userStore
}

func newDeleteUserEndpoint(cfg *Config, store *userStore) *deleteUserEndpoint {
	return &deleteUserEndpoint{v1Group: v1Group{token: cfg.AuthToken}, store: store}
}

func (e *deleteUserEndpoint) RequestFromParams() bool { return true }

func (e *deleteUserEndpoint) Handle(_ context.Context, req *deleteUserRequest) (any, error) {
	if !e.store.delete(req.ID) {
		return nil, endpoints.Errorf(http.StatusNotFound, "user %q not found", req.ID)
	}
	return nil, nil
}

func (e *deleteUserEndpoint) Routes(reg endpoints.Registrar) {
	endpoints.MapRequestAction(reg, http.MethodDelete, "/users/{id}", e,
		endpoints.WithStatus(http.StatusNoContent),
		endpoints.WithSummary("Delete user"),
		endpoints.WithTags("users"),
	)
}
