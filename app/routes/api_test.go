package routes_test

import (
	"context"
	"net/http"
	"net/http/httptest"
	"strings"
	"testing"

	"github.com/shashiranjanraj/bistro/app/models"
	"github.com/shashiranjanraj/bistro/app/repositories"
	"github.com/shashiranjanraj/bistro/app/routes"
	"github.com/shashiranjanraj/bistro/pkg/auth"
	"go.mongodb.org/mongo-driver/bson"
	"go.mongodb.org/mongo-driver/bson/primitive"
)

type stubMenu struct {
	inserted int
}

func (s *stubMenu) FindAll(context.Context, bson.M, repositories.ListOptions) ([]models.MenuItem, error) {
	return []models.MenuItem{}, nil
}

func (s *stubMenu) FindByID(context.Context, primitive.ObjectID) (models.MenuItem, error) {
	return models.MenuItem{}, repositories.ErrNotFound
}

func (s *stubMenu) Insert(context.Context, models.MenuItem) (primitive.ObjectID, error) {
	s.inserted++
	return primitive.NewObjectID(), nil
}

func (s *stubMenu) UpdateByID(context.Context, primitive.ObjectID, bson.M) (int64, error) {
	return 0, nil
}

func (s *stubMenu) DeleteByID(context.Context, primitive.ObjectID) (int64, error) {
	return 0, nil
}

func (s *stubMenu) CategoryCounts(context.Context) ([]repositories.CategoryCount, error) {
	return []repositories.CategoryCount{}, nil
}

type stubUsers struct {
	roles map[string]string
}

func (s *stubUsers) RoleByEmail(_ context.Context, email string) (string, error) {
	return s.roles[email], nil
}

func (s *stubUsers) FindAll(context.Context, bson.M, repositories.ListOptions) ([]models.User, error) {
	return []models.User{}, nil
}

func (s *stubUsers) FindByEmail(context.Context, string) (models.User, error) {
	return models.User{}, repositories.ErrNotFound
}

func (s *stubUsers) Create(context.Context, models.User) (primitive.ObjectID, error) {
	return primitive.NewObjectID(), nil
}

func (s *stubUsers) PromoteToAdmin(context.Context, primitive.ObjectID) (int64, error) {
	return 0, nil
}

func (s *stubUsers) DeleteByID(context.Context, primitive.ObjectID) (int64, error) {
	return 0, nil
}

func testRouter(t *testing.T) (http.Handler, *stubMenu) {
	t.Helper()
	menu := &stubMenu{}
	users := &stubUsers{roles: map[string]string{
		"boss@example.com": models.RoleAdmin,
	}}
	return routes.New(routes.Deps{Menu: menu, Users: users}), menu
}

func TestLiveness(t *testing.T) {
	router, _ := testRouter(t)

	req := httptest.NewRequest(http.MethodGet, "/", nil)
	rec := httptest.NewRecorder()
	router.ServeHTTP(rec, req)

	if rec.Code != http.StatusOK {
		t.Fatalf("status = %d", rec.Code)
	}
	if rec.Body.String() != "Bistro Boss is sitting" {
		t.Errorf("body = %q", rec.Body.String())
	}
}

func TestMenuMutationGuards(t *testing.T) {
	adminToken, err := auth.GenerateToken("boss@example.com")
	if err != nil {
		t.Fatal(err)
	}
	customerToken, err := auth.GenerateToken("diner@example.com")
	if err != nil {
		t.Fatal(err)
	}

	cases := []struct {
		name        string
		authz       string
		wantStatus  int
		wantInserts int
	}{
		{"no token", "", http.StatusUnauthorized, 0},
		{"garbage token", "Bearer not.a.jwt", http.StatusForbidden, 0},
		{"customer token", "Bearer " + customerToken, http.StatusForbidden, 0},
		{"admin token", "Bearer " + adminToken, http.StatusCreated, 1},
	}

	for _, tc := range cases {
		t.Run(tc.name, func(t *testing.T) {
			router, menu := testRouter(t)

			req := httptest.NewRequest(http.MethodPost, "/menu",
				strings.NewReader(`{"name":"Bruschetta","category":"offered","price":7.5}`))
			if tc.authz != "" {
				req.Header.Set("Authorization", tc.authz)
			}
			rec := httptest.NewRecorder()
			router.ServeHTTP(rec, req)

			if rec.Code != tc.wantStatus {
				t.Fatalf("status = %d, want %d (body %s)", rec.Code, tc.wantStatus, rec.Body.String())
			}
			if menu.inserted != tc.wantInserts {
				t.Errorf("inserts = %d, want %d", menu.inserted, tc.wantInserts)
			}
		})
	}
}

func TestPublicMenuRead(t *testing.T) {
	router, _ := testRouter(t)

	req := httptest.NewRequest(http.MethodGet, "/menu", nil)
	rec := httptest.NewRecorder()
	router.ServeHTTP(rec, req)

	if rec.Code != http.StatusOK {
		t.Fatalf("unauthenticated menu read rejected: %d", rec.Code)
	}
}

func TestCartsRequireToken(t *testing.T) {
	router, _ := testRouter(t)

	req := httptest.NewRequest(http.MethodGet, "/carts", nil)
	rec := httptest.NewRecorder()
	router.ServeHTTP(rec, req)

	if rec.Code != http.StatusUnauthorized {
		t.Fatalf("status = %d, want 401", rec.Code)
	}
}
