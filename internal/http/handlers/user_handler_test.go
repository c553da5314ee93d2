package handlers

import (
	"net/http"
	"testing"

	"github.com/tbourn/quantifyme-backend/internal/domain"
)

func TestUserEndpoints(t *testing.T) {
	r := newTestRouter(t)

	w := do(t, r, call{http.MethodPost, "/api/v1/users", map[string]string{"email": "  Jane@Example.com "}, nil})
	u := decode[domain.User](t, w)
	if w.Code != http.StatusCreated || u.Email != "jane@example.com" || u.IsPremium {
		t.Fatalf("create = %d %+v", w.Code, u)
	}
	w = do(t, r, call{http.MethodPost, "/api/v1/users", map[string]string{"email": "jane@example.com"}, nil})
	if again := decode[domain.User](t, w); w.Code != http.StatusOK || again.ID != u.ID {
		t.Fatalf("get-or-create = %d %+v", w.Code, again)
	}

	w = do(t, r, call{http.MethodPut, "/api/v1/users/" + u.ID + "/premium", map[string]bool{"is_premium": true}, nil})
	if got := decode[domain.User](t, w); w.Code != http.StatusOK || !got.IsPremium {
		t.Fatalf("premium = %d %+v", w.Code, got)
	}

	w = do(t, r, call{http.MethodGet, "/api/v1/users/" + u.ID, nil, nil})
	if got := decode[domain.User](t, w); w.Code != http.StatusOK || !got.IsPremium {
		t.Fatalf("get = %d %+v", w.Code, got)
	}
	if w := do(t, r, call{http.MethodGet, "/api/v1/users/nope", nil, nil}); w.Code != http.StatusNotFound {
		t.Fatalf("unknown user = %d", w.Code)
	}
	if w := do(t, r, call{http.MethodPut, "/api/v1/users/nope/premium", map[string]bool{"is_premium": true}, nil}); w.Code != http.StatusNotFound {
		t.Fatalf("unknown user premium = %d", w.Code)
	}
}

func TestUserEndpoints_BindingRules(t *testing.T) {
	r := newTestRouter(t)
	w := do(t, r, call{http.MethodPost, "/api/v1/users", map[string]string{"email": "ada@example.com"}, nil})
	u := decode[domain.User](t, w)

	cases := []struct {
		name      string
		c         call
		wantCode  string
		wantField string
	}{
		{"invalid email", call{http.MethodPost, "/api/v1/users", map[string]string{"email": "not-an-email"}, nil}, ErrCodeValidation, "email"},
		{"blank email", call{http.MethodPost, "/api/v1/users", map[string]string{"email": "   "}, nil}, ErrCodeValidation, "email"},
		{"missing email", call{http.MethodPost, "/api/v1/users", map[string]string{}, nil}, ErrCodeValidation, "email"},
		{"missing flag", call{http.MethodPut, "/api/v1/users/" + u.ID + "/premium", map[string]string{}, nil}, ErrCodeValidation, "is_premium"},
		{"null flag", call{http.MethodPut, "/api/v1/users/" + u.ID + "/premium", `{"is_premium":null}`, nil}, ErrCodeValidation, "is_premium"},
		{"wrong type", call{http.MethodPut, "/api/v1/users/" + u.ID + "/premium", `{"is_premium":"yes"}`, nil}, ErrCodeBadRequest, ""},
		{"malformed", call{http.MethodPost, "/api/v1/users", `{"email":`, nil}, ErrCodeBadRequest, ""},
	}
	for _, tc := range cases {
		t.Run(tc.name, func(t *testing.T) {
			w := do(t, r, tc.c)
			got := decode[ErrorResponse](t, w)
			if w.Code != http.StatusBadRequest || got.Code != tc.wantCode || got.Field != tc.wantField {
				t.Fatalf("%d %+v", w.Code, got)
			}
		})
	}

	// false is a value, not a missing field
	w = do(t, r, call{http.MethodPut, "/api/v1/users/" + u.ID + "/premium", map[string]bool{"is_premium": false}, nil})
	if got := decode[domain.User](t, w); w.Code != http.StatusOK || got.IsPremium {
		t.Fatalf("premium false = %d %+v", w.Code, got)
	}
}
