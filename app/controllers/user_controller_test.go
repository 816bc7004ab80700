package controllers

import (
	"context"
	"encoding/json"
	"net/http"
	"net/http/httptest"
	"strings"
	"testing"

	"github.com/go-chi/chi/v5"
	"github.com/shashiranjanraj/bistro/app/models"
	"github.com/shashiranjanraj/bistro/app/repositories"
	"github.com/shashiranjanraj/bistro/pkg/middleware"
	"go.mongodb.org/mongo-driver/bson"
	"go.mongodb.org/mongo-driver/bson/primitive"
)

// apiBody mirrors the response envelope for assertions.
type apiBody struct {
	Status  int             `json:"status"`
	Message string          `json:"message"`
	Data    json.RawMessage `json:"data"`
	Errors  json.RawMessage `json:"errors"`
}

func decodeBody(t *testing.T, rec *httptest.ResponseRecorder) apiBody {
	t.Helper()
	var body apiBody
	if err := json.Unmarshal(rec.Body.Bytes(), &body); err != nil {
		t.Fatalf("decode response: %v (body %q)", err, rec.Body.String())
	}
	return body
}

type fakeUserStore struct {
	users   map[string]models.User
	created []models.User
}

func (f *fakeUserStore) FindAll(_ context.Context, _ bson.M, _ repositories.ListOptions) ([]models.User, error) {
	out := []models.User{}
	for _, u := range f.users {
		out = append(out, u)
	}
	return out, nil
}

func (f *fakeUserStore) FindByEmail(_ context.Context, email string) (models.User, error) {
	u, ok := f.users[email]
	if !ok {
		return models.User{}, repositories.ErrNotFound
	}
	return u, nil
}

func (f *fakeUserStore) Create(_ context.Context, user models.User) (primitive.ObjectID, error) {
	if _, ok := f.users[user.Email]; ok {
		return primitive.NilObjectID, repositories.ErrUserExists
	}
	f.created = append(f.created, user)
	return primitive.NewObjectID(), nil
}

func (f *fakeUserStore) PromoteToAdmin(_ context.Context, _ primitive.ObjectID) (int64, error) {
	return 1, nil
}

func (f *fakeUserStore) DeleteByID(_ context.Context, _ primitive.ObjectID) (int64, error) {
	return 1, nil
}

func TestUserCreate(t *testing.T) {
	store := &fakeUserStore{users: map[string]models.User{}}
	ctl := NewUserController(store)

	req := httptest.NewRequest(http.MethodPost, "/users",
		strings.NewReader(`{"name":"Ada","email":"ada@example.com","password":"s3cret"}`))
	rec := httptest.NewRecorder()
	ctl.Create(rec, req)

	if rec.Code != http.StatusCreated {
		t.Fatalf("status = %d, want 201 (body %s)", rec.Code, rec.Body.String())
	}
	if len(store.created) != 1 {
		t.Fatalf("created %d users, want 1", len(store.created))
	}
	if got := store.created[0]; got.Password == "s3cret" || got.Password == "" {
		t.Errorf("password stored as %q, want a hash", got.Password)
	}

	var data struct {
		InsertedID string `json:"insertedId"`
	}
	if err := json.Unmarshal(decodeBody(t, rec).Data, &data); err != nil {
		t.Fatal(err)
	}
	if data.InsertedID == "" {
		t.Error("insertedId missing from response")
	}
}

func TestUserCreateDuplicate(t *testing.T) {
	store := &fakeUserStore{users: map[string]models.User{
		"ada@example.com": {Email: "ada@example.com"},
	}}
	ctl := NewUserController(store)

	req := httptest.NewRequest(http.MethodPost, "/users",
		strings.NewReader(`{"name":"Ada","email":"ada@example.com"}`))
	rec := httptest.NewRecorder()
	ctl.Create(rec, req)

	if rec.Code != http.StatusOK {
		t.Fatalf("status = %d, want 200", rec.Code)
	}
	if msg := decodeBody(t, rec).Message; msg != "User already exists" {
		t.Errorf("message = %q", msg)
	}
	if len(store.created) != 0 {
		t.Errorf("duplicate sign-up created a document")
	}
}

func TestUserCreateValidation(t *testing.T) {
	ctl := NewUserController(&fakeUserStore{users: map[string]models.User{}})

	req := httptest.NewRequest(http.MethodPost, "/users",
		strings.NewReader(`{"name":"Ada","email":"not-an-email"}`))
	rec := httptest.NewRecorder()
	ctl.Create(rec, req)

	if rec.Code != http.StatusBadRequest {
		t.Fatalf("status = %d, want 400", rec.Code)
	}
}

func adminCheckRouter(ctl *UserController) *chi.Mux {
	r := chi.NewRouter()
	r.Get("/users/admin/{email}", ctl.IsAdmin)
	return r
}

func TestIsAdmin(t *testing.T) {
	store := &fakeUserStore{users: map[string]models.User{
		"boss@example.com":  {Email: "boss@example.com", Role: models.RoleAdmin},
		"diner@example.com": {Email: "diner@example.com"},
	}}
	router := adminCheckRouter(NewUserController(store))

	cases := []struct {
		name       string
		pathEmail  string
		tokenEmail string
		wantStatus int
		wantAdmin  bool
	}{
		{"admin checks self", "boss@example.com", "boss@example.com", http.StatusOK, true},
		{"customer checks self", "diner@example.com", "diner@example.com", http.StatusOK, false},
		{"unknown email checks self", "ghost@example.com", "ghost@example.com", http.StatusOK, false},
		{"email mismatch", "boss@example.com", "diner@example.com", http.StatusForbidden, false},
	}

	for _, tc := range cases {
		t.Run(tc.name, func(t *testing.T) {
			req := httptest.NewRequest(http.MethodGet, "/users/admin/"+tc.pathEmail, nil)
			req = req.WithContext(middleware.WithEmail(req.Context(), tc.tokenEmail))
			rec := httptest.NewRecorder()
			router.ServeHTTP(rec, req)

			if rec.Code != tc.wantStatus {
				t.Fatalf("status = %d, want %d (body %s)", rec.Code, tc.wantStatus, rec.Body.String())
			}
			if tc.wantStatus == http.StatusForbidden {
				if msg := decodeBody(t, rec).Message; msg != "Forbidden access" {
					t.Errorf("message = %q", msg)
				}
				return
			}

			var data struct {
				Admin bool `json:"admin"`
			}
			if err := json.Unmarshal(decodeBody(t, rec).Data, &data); err != nil {
				t.Fatal(err)
			}
			if data.Admin != tc.wantAdmin {
				t.Errorf("admin = %v, want %v", data.Admin, tc.wantAdmin)
			}
		})
	}
}
