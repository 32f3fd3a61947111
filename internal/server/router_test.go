package server

import (
	"encoding/json"
	"net/http"
	"net/http/httptest"
	"testing"

	"auction-settlement/internal/config"
	"auction-settlement/internal/settlement"
	"auction-settlement/services/bidding/handler"
	"auction-settlement/services/bidding/helpers"

	"github.com/gin-gonic/gin"
	"github.com/golang/mock/gomock"
	"github.com/stretchr/testify/require"
)

func testConfig(secret string) *config.Config {
	return &config.Config{
		Server: config.ServerConfig{AllowedOrigins: []string{"http://localhost:3000"}},
		Cron:   config.CronConfig{Secret: secret},
		Policy: config.DefaultPolicy(),
	}
}

func serve(router *gin.Engine, req *http.Request) *httptest.ResponseRecorder {
	w := httptest.NewRecorder()
	router.ServeHTTP(w, req)
	return w
}

func TestHealth(t *testing.T) {
	gin.SetMode(gin.TestMode)
	ctrl := gomock.NewController(t)
	router := SetupRouter(testConfig(""),
		handler.NewMockBiddingServiceInterface(ctrl),
		handler.NewMockSettlementServiceInterface(ctrl))

	w := serve(router, httptest.NewRequest(http.MethodGet, "/health", nil))
	require.Equal(t, http.StatusOK, w.Code)

	var resp map[string]any
	require.NoError(t, json.Unmarshal(w.Body.Bytes(), &resp))
	require.Equal(t, "service healthy", resp["message"])
}

func TestActorRequiredOnWrites(t *testing.T) {
	gin.SetMode(gin.TestMode)
	ctrl := gomock.NewController(t)
	router := SetupRouter(testConfig(""),
		handler.NewMockBiddingServiceInterface(ctrl),
		handler.NewMockSettlementServiceInterface(ctrl))

	for _, path := range []string{
		"/bids",
		"/auctions",
		"/auctions/a1/buy-now",
		"/auctions/a1/accept",
		"/auctions/a1/relist",
		"/auctions/a1/negotiate",
		"/auctions/a1/cancel",
		"/obligations/o1/confirm",
	} {
		w := serve(router, httptest.NewRequest(http.MethodPost, path, nil))
		require.Equal(t, http.StatusUnauthorized, w.Code, path)
	}
}

func TestActorPassedToService(t *testing.T) {
	gin.SetMode(gin.TestMode)
	ctrl := gomock.NewController(t)
	settlementSvc := handler.NewMockSettlementServiceInterface(ctrl)
	router := SetupRouter(testConfig(""), handler.NewMockBiddingServiceInterface(ctrl), settlementSvc)

	settlementSvc.EXPECT().CancelAuction(gomock.Any(), "a1", "seller").Return(nil)

	req := httptest.NewRequest(http.MethodPost, "/auctions/a1/cancel", nil)
	req.Header.Set(helpers.ActorHeader, " seller ")
	w := serve(router, req)
	require.Equal(t, http.StatusOK, w.Code)
}

func TestCronAuth(t *testing.T) {
	gin.SetMode(gin.TestMode)

	tests := []struct {
		name       string
		secret     string
		header     string
		wantStatus int
	}{
		{name: "open_without_secret", secret: "", header: "", wantStatus: http.StatusOK},
		{name: "missing_token", secret: "s3cret", header: "", wantStatus: http.StatusUnauthorized},
		{name: "wrong_token", secret: "s3cret", header: "Bearer nope", wantStatus: http.StatusUnauthorized},
		{name: "valid_token", secret: "s3cret", header: "Bearer s3cret", wantStatus: http.StatusOK},
	}

	for _, tc := range tests {
		t.Run(tc.name, func(t *testing.T) {
			ctrl := gomock.NewController(t)
			settlementSvc := handler.NewMockSettlementServiceInterface(ctrl)
			router := SetupRouter(testConfig(tc.secret), handler.NewMockBiddingServiceInterface(ctrl), settlementSvc)

			if tc.wantStatus == http.StatusOK {
				settlementSvc.EXPECT().CloseEndedAuctions(gomock.Any()).Return(settlement.SweepReport{}, nil)
			}

			req := httptest.NewRequest(http.MethodPost, "/cron/process-auctions", nil)
			if tc.header != "" {
				req.Header.Set("Authorization", tc.header)
			}
			w := serve(router, req)
			require.Equal(t, tc.wantStatus, w.Code)
		})
	}
}

func TestCORSPreflight(t *testing.T) {
	gin.SetMode(gin.TestMode)
	ctrl := gomock.NewController(t)
	router := SetupRouter(testConfig(""),
		handler.NewMockBiddingServiceInterface(ctrl),
		handler.NewMockSettlementServiceInterface(ctrl))

	req := httptest.NewRequest(http.MethodOptions, "/bids", nil)
	req.Header.Set("Origin", "http://localhost:3000")
	req.Header.Set("Access-Control-Request-Method", http.MethodPost)
	req.Header.Set("Access-Control-Request-Headers", "X-User-ID")
	w := serve(router, req)

	require.Equal(t, http.StatusNoContent, w.Code)
	require.Equal(t, "http://localhost:3000", w.Header().Get("Access-Control-Allow-Origin"))
}
