package api

import (
	"bytes"
	"context"
	"encoding/json"
	"errors"
	"net/http"
	"net/http/httptest"
	"testing"

	"github.com/gin-gonic/gin"

	"github.com/sahiljoster32/stock-monitor-backend/internal/domain/dto"
	"github.com/sahiljoster32/stock-monitor-backend/internal/domain/models"
	"github.com/sahiljoster32/stock-monitor-backend/internal/service"
)

type mockAuthService struct {
	registered *service.Registration
	user       *models.User
	session    *service.Session
	err        error
	userID     int64
}

func (m *mockAuthService) Register(_ context.Context, in service.Registration) (*models.User, error) {
	m.registered = &in
	return m.user, m.err
}

func (m *mockAuthService) Login(_ context.Context, _, _ string) (*service.Session, error) {
	return m.session, m.err
}

func (m *mockAuthService) Authenticate(_ context.Context, _ string) (int64, error) {
	return m.userID, m.err
}

var _ service.AuthService = (*mockAuthService)(nil)

func setupUsersRouter(s service.AuthService) *gin.Engine {
	gin.SetMode(gin.TestMode)
	h := NewUsersHandler(s)
	r := gin.New()
	v1 := r.Group("/api/v1/users")
	v1.POST("/register", h.Register)
	v1.POST("/login", h.Login)
	return r
}

func postJSON(r http.Handler, path string, body any, header http.Header) *httptest.ResponseRecorder {
	var buf bytes.Buffer
	switch b := body.(type) {
	case string:
		buf.WriteString(b)
	default:
		_ = json.NewEncoder(&buf).Encode(b)
	}
	req := httptest.NewRequest(http.MethodPost, path, &buf)
	req.Header.Set("Content-Type", "application/json")
	for k, v := range header {
		req.Header[k] = v
	}
	w := httptest.NewRecorder()
	r.ServeHTTP(w, req)
	return w
}

func sampleUserBody() map[string]any {
	return map[string]any{
		"username":   "abc",
		"email":      "abc@gmail.com",
		"password":   "qwert@123",
		"password2":  "qwert@123",
		"first_name": "a",
		"last_name":  "b",
	}
}

func decodeError(t *testing.T, body []byte) dto.ErrorResponse {
	t.Helper()
	var out dto.ErrorResponse
	if err := json.Unmarshal(body, &out); err != nil {
		t.Fatalf("invalid json: %v", err)
	}
	return out
}

func TestRegister_TableDriven(t *testing.T) {
	created := &models.User{ID: 1, Username: "abc", Email: "abc@gmail.com", FirstName: "a", LastName: "b", PasswordHash: "secret-hash"}

	cases := []struct {
		name      string
		svc       *mockAuthService
		drop      string
		status    int
		wantField string
		wantMsg   string
	}{
		{name: "success", svc: &mockAuthService{user: created}, status: http.StatusCreated},
		{name: "missing username", svc: &mockAuthService{}, drop: "username", status: http.StatusBadRequest, wantField: "username", wantMsg: "This field is required."},
		{name: "missing password", svc: &mockAuthService{}, drop: "password", status: http.StatusBadRequest, wantField: "password", wantMsg: "This field is required."},
		{name: "missing password2", svc: &mockAuthService{}, drop: "password2", status: http.StatusBadRequest, wantField: "password2", wantMsg: "This field is required."},
		{name: "missing email", svc: &mockAuthService{}, drop: "email", status: http.StatusBadRequest, wantField: "email", wantMsg: "This field is required."},
		{name: "missing first_name", svc: &mockAuthService{}, drop: "first_name", status: http.StatusBadRequest, wantField: "first_name", wantMsg: "This field is required."},
		{name: "missing last_name", svc: &mockAuthService{}, drop: "last_name", status: http.StatusBadRequest, wantField: "last_name", wantMsg: "This field is required."},
		{
			name:      "duplicate user",
			svc:       &mockAuthService{err: service.FieldErrors{"username": {"This field must be unique."}}},
			status:    http.StatusBadRequest,
			wantField: "username",
			wantMsg:   "This field must be unique.",
		},
		{name: "storage failure", svc: &mockAuthService{err: errors.New("db down")}, status: http.StatusInternalServerError},
	}

	for _, tc := range cases {
		t.Run(tc.name, func(t *testing.T) {
			body := sampleUserBody()
			if tc.drop != "" {
				delete(body, tc.drop)
			}
			w := postJSON(setupUsersRouter(tc.svc), "/api/v1/users/register", body, nil)

			if w.Code != tc.status {
				t.Fatalf("status=%d, want %d, body=%s", w.Code, tc.status, w.Body.String())
			}
			if tc.drop != "" && tc.svc.registered != nil {
				t.Fatalf("service must not run on invalid input")
			}
			if tc.wantField != "" {
				out := decodeError(t, w.Body.Bytes())
				if msgs := out.Fields[tc.wantField]; len(msgs) != 1 || msgs[0] != tc.wantMsg {
					t.Fatalf("fields[%s]=%v, want [%q]", tc.wantField, msgs, tc.wantMsg)
				}
			}
			if tc.status == http.StatusCreated {
				var raw map[string]any
				_ = json.Unmarshal(w.Body.Bytes(), &raw)
				if _, ok := raw["password"]; ok {
					t.Fatalf("password must not be echoed: %s", w.Body.String())
				}
				if raw["username"] != "abc" || raw["email"] != "abc@gmail.com" {
					t.Fatalf("unexpected body: %s", w.Body.String())
				}
				if tc.svc.registered.Password2 != "qwert@123" {
					t.Fatalf("password2 not forwarded")
				}
			}
		})
	}
}

func TestRegister_InvalidEmail(t *testing.T) {
	body := sampleUserBody()
	body["email"] = "not-an-email"
	w := postJSON(setupUsersRouter(&mockAuthService{}), "/api/v1/users/register", body, nil)
	if w.Code != http.StatusBadRequest {
		t.Fatalf("status=%d", w.Code)
	}
	if got := decodeError(t, w.Body.Bytes()).Fields["email"]; len(got) != 1 || got[0] != "Enter a valid email address." {
		t.Fatalf("fields[email]=%v", got)
	}
}

func TestLogin_TableDriven(t *testing.T) {
	user := &models.User{ID: 1, Username: "abc", Email: "abc@gmail.com", FirstName: "a", LastName: "b"}

	cases := []struct {
		name   string
		svc    *mockAuthService
		body   any
		status int
		assert func(t *testing.T, body []byte)
	}{
		{
			name: "success",
			svc: &mockAuthService{session: &service.Session{
				Token: "9944b09199c62bcf9418ad846dd0e4bbdfc6ee4b", User: user, WatchListSymbols: []string{"MSFT"},
			}},
			body:   map[string]string{"username": "abc", "password": "qwert@123"},
			status: http.StatusOK,
			assert: func(t *testing.T, body []byte) {
				var out map[string]any
				if err := json.Unmarshal(body, &out); err != nil {
					t.Fatalf("invalid json: %v", err)
				}
				for _, k := range []string{"token", "user_name", "user_email", "first_name", "last_name", "watch_list_symbols"} {
					if _, ok := out[k]; !ok {
						t.Fatalf("missing %q in %s", k, body)
					}
				}
				if out["token"] != "9944b09199c62bcf9418ad846dd0e4bbdfc6ee4b" || out["user_name"] != "abc" {
					t.Fatalf("unexpected body: %s", body)
				}
			},
		},
		{
			name:   "wrong credentials",
			svc:    &mockAuthService{err: service.ErrInvalidCredentials},
			body:   map[string]string{"username": "abc", "password": "nope"},
			status: http.StatusBadRequest,
			assert: func(t *testing.T, body []byte) {
				got := decodeError(t, body).Fields[nonFieldErrors]
				if len(got) != 1 || got[0] != msgAccessDenied {
					t.Fatalf("non_field_errors=%v", got)
				}
			},
		},
		{
			name:   "missing password",
			svc:    &mockAuthService{},
			body:   map[string]string{"username": "abc"},
			status: http.StatusBadRequest,
		},
		{
			name:   "malformed json",
			svc:    &mockAuthService{},
			body:   `{"username": `,
			status: http.StatusBadRequest,
		},
		{
			name:   "internal error",
			svc:    &mockAuthService{err: errors.New("db down")},
			body:   map[string]string{"username": "abc", "password": "qwert@123"},
			status: http.StatusInternalServerError,
		},
	}

	for _, tc := range cases {
		t.Run(tc.name, func(t *testing.T) {
			w := postJSON(setupUsersRouter(tc.svc), "/api/v1/users/login", tc.body, nil)
			if w.Code != tc.status {
				t.Fatalf("status=%d, want %d, body=%s", w.Code, tc.status, w.Body.String())
			}
			if tc.assert != nil {
				tc.assert(t, w.Body.Bytes())
			}
		})
	}
}
