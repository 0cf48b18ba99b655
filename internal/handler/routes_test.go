package handler

import (
	"net/http"
	"net/http/httptest"
	"strings"
	"testing"
	"time"

	"github.com/gin-gonic/gin"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/noah-isme/sma-reportcard-api/internal/middleware"
	"github.com/noah-isme/sma-reportcard-api/internal/models"
	"github.com/noah-isme/sma-reportcard-api/internal/service"
)

func newRoutedEngine(t *testing.T) (*gin.Engine, *service.TokenService, *reportCardServiceMock) {
	t.Helper()
	gin.SetMode(gin.TestMode)
	tokens := service.NewTokenService(service.TokenConfig{Secret: "route-secret", Issuer: "sma-identity"})
	cards := &reportCardServiceMock{card: &models.ReportCard{ID: "rc-1"}}
	configs := &approvalConfigServiceMock{cfg: &models.ApprovalConfig{}}

	engine := gin.New()
	api := engine.Group("/api/v1", middleware.JWT(tokens))
	RegisterReportCardRoutes(api, NewReportCardHandler(cards, nil), NewApprovalConfigHandler(configs))
	return engine, tokens, cards
}

func bearerFor(t *testing.T, tokens *service.TokenService, role models.UserRole) string {
	t.Helper()
	token, err := tokens.Sign(&models.JWTClaims{UserID: "user-" + strings.ToLower(string(role)), Role: role, CampusID: "campus-1"}, time.Minute)
	require.NoError(t, err)
	return "Bearer " + token
}

func TestReportCardRoutesAuthorization(t *testing.T) {
	engine, tokens, cards := newRoutedEngine(t)

	cases := []struct {
		name   string
		method string
		path   string
		auth   string
		status int
	}{
		{"anonymous", http.MethodGet, "/api/v1/report-cards/rc-1", "", http.StatusUnauthorized},
		{"malformed header", http.MethodGet, "/api/v1/report-cards/rc-1", "Token abc", http.StatusUnauthorized},
		{"garbage token", http.MethodGet, "/api/v1/report-cards/rc-1", "Bearer not-a-jwt", http.StatusUnauthorized},
		{"teacher reads", http.MethodGet, "/api/v1/report-cards/rc-1", bearerFor(t, tokens, models.RoleTeacher), http.StatusOK},
		{"teacher approves", http.MethodPost, "/api/v1/report-cards/rc-1/approve-level-1", bearerFor(t, tokens, models.RoleTeacher), http.StatusOK},
		{"teacher entry needs a body", http.MethodPut, "/api/v1/report-cards/rc-1/entry", bearerFor(t, tokens, models.RoleTeacher), http.StatusBadRequest},
		{"teacher cannot delete", http.MethodDelete, "/api/v1/report-cards/rc-1", bearerFor(t, tokens, models.RoleTeacher), http.StatusForbidden},
		{"admin deletes", http.MethodDelete, "/api/v1/report-cards/rc-1", bearerFor(t, tokens, models.RoleAdmin), http.StatusNoContent},
		{"teacher cannot configure", http.MethodGet, "/api/v1/report-card-approval-configs/stage-sma", bearerFor(t, tokens, models.RoleTeacher), http.StatusForbidden},
		{"superadmin configures", http.MethodGet, "/api/v1/report-card-approval-configs/stage-sma", bearerFor(t, tokens, models.RoleSuperAdmin), http.StatusOK},
		{"other role", http.MethodGet, "/api/v1/report-cards/rc-1", bearerFor(t, tokens, models.UserRole("STUDENT")), http.StatusForbidden},
	}

	for _, tc := range cases {
		t.Run(tc.name, func(t *testing.T) {
			w := httptest.NewRecorder()
			req := httptest.NewRequest(tc.method, tc.path, nil)
			if tc.auth != "" {
				req.Header.Set("Authorization", tc.auth)
			}
			engine.ServeHTTP(w, req)
			assert.Equal(t, tc.status, w.Code)
		})
	}

	assert.Equal(t, []string{"get", "approve1", "delete"}, cards.calls)
	assert.Equal(t, "user-admin", cards.lastRC.ActorID)
}

func TestReportCardRoutesStaticBeforeParam(t *testing.T) {
	engine, tokens, cards := newRoutedEngine(t)

	w := httptest.NewRecorder()
	req := httptest.NewRequest(http.MethodGet, "/api/v1/report-cards/pending?level=level_2", nil)
	req.Header.Set("Authorization", bearerFor(t, tokens, models.RoleTeacher))
	engine.ServeHTTP(w, req)

	require.Equal(t, http.StatusOK, w.Code)
	assert.Equal(t, []string{"pending"}, cards.calls)
	assert.Equal(t, models.PendingLevel2, cards.lastLevel)
}
