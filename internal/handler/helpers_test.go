package handler_test

import (
	"bytes"
	"encoding/json"
	"net/http"
	"net/http/httptest"
	"testing"
	"time"

	"werkshift/internal/auth"
	"werkshift/internal/handler"
	"werkshift/internal/repository/memory"
	"werkshift/internal/service"

	"github.com/gin-gonic/gin"
	"github.com/google/uuid"
	"github.com/stretchr/testify/require"
	"go.uber.org/zap"
)

type testAPI struct {
	router *gin.Engine
	store  *memory.Store
	tokens *auth.TokenIssuer
}

func setupTest(t *testing.T, policy service.BulkPolicy) *testAPI {
	t.Helper()
	gin.SetMode(gin.TestMode)

	logger := zap.NewNop()
	store := memory.New()
	catalog := service.NewCatalogService(store, logger)
	attacher := service.NewAttachmentService(store, logger)
	h := handler.NewHandlers(handler.Services{
		Makers:      service.NewMakerService(store, logger),
		Shifts:      service.NewShiftService(store, catalog, attacher, policy, logger),
		Werkers:     service.NewWerkerService(store, catalog, attacher, policy, logger),
		Assignments: service.NewAssignmentService(store, logger),
		Queries:     service.NewQueryService(store, logger),
	})

	tokens := auth.NewTokenIssuer("test-secret", time.Hour)
	r := gin.New()
	h.Register(r, tokens)
	return &testAPI{router: r, store: store, tokens: tokens}
}

func (a *testAPI) token(t *testing.T, id uuid.UUID, role auth.Role) string {
	t.Helper()
	token, err := a.tokens.Generate(id, role)
	require.NoError(t, err)
	return token
}

func (a *testAPI) do(t *testing.T, method, path, token string, body any) *httptest.ResponseRecorder {
	t.Helper()
	var buf bytes.Buffer
	if body != nil {
		require.NoError(t, json.NewEncoder(&buf).Encode(body))
	}
	req, err := http.NewRequest(method, path, &buf)
	require.NoError(t, err)
	req.Header.Set("Content-Type", "application/json")
	if token != "" {
		req.Header.Set("Authorization", "Bearer "+token)
	}

	resp := httptest.NewRecorder()
	a.router.ServeHTTP(resp, req)
	return resp
}

func decode[T any](t *testing.T, resp *httptest.ResponseRecorder) T {
	t.Helper()
	var v T
	require.NoError(t, json.Unmarshal(resp.Body.Bytes(), &v), resp.Body.String())
	return v
}

// maker registers a maker and returns its id and token.
func (a *testAPI) maker(t *testing.T) (uuid.UUID, string) {
	t.Helper()
	id := uuid.New()
	token := a.token(t, id, auth.RoleMaker)
	resp := a.do(t, http.MethodPost, "/makers", token, handler.MakerRequest{Name: "Cafe Nola", Email: "owner@nola.test"})
	require.Equal(t, http.StatusCreated, resp.Code, resp.Body.String())
	return id, token
}

// werker onboards a werker and returns its id and token.
func (a *testAPI) werker(t *testing.T, first string, positions ...string) (uuid.UUID, string) {
	t.Helper()
	id := uuid.New()
	token := a.token(t, id, auth.RoleWerker)
	resp := a.do(t, http.MethodPost, "/werkers", token, handler.WerkerRequest{
		NameFirst: first,
		NameLast:  "mcExample",
		Email:     first + "@werk.test",
		Positions: positions,
	})
	require.Equal(t, http.StatusCreated, resp.Code, resp.Body.String())
	return id, token
}

func positions(names ...string) []map[string]any {
	reqs := make([]map[string]any, len(names))
	for i, name := range names {
		reqs[i] = map[string]any{"position": name, "payment_amnt": "15"}
	}
	return reqs
}

func shiftBody(name string, positionNames ...string) map[string]any {
	return map[string]any{
		"name":         name,
		"time_date":    time.Date(2026, 11, 2, 18, 0, 0, 0, time.UTC).Format(time.RFC3339),
		"duration":     240,
		"lat":          29.95,
		"long":         -90.07,
		"payment_type": "hourly",
		"positions":    positions(positionNames...),
	}
}

// shift posts a shift as the maker behind token.
func (a *testAPI) shift(t *testing.T, token string, positionNames ...string) handler.ShiftResponse {
	t.Helper()
	resp := a.do(t, http.MethodPost, "/shifts", token, shiftBody("Dinner service", positionNames...))
	require.Equal(t, http.StatusCreated, resp.Code, resp.Body.String())
	body := decode[handler.BulkShiftResponse](t, resp)
	require.NotNil(t, body.Shift)
	return *body.Shift
}
