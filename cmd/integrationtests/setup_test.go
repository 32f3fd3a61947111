package integrationtests

import (
	"bytes"
	"encoding/json"
	"net/http/httptest"
	"sync"
	"testing"
	"time"

	bidding "auction-settlement/internal/biddingService"
	"auction-settlement/internal/config"
	model "auction-settlement/internal/models"
	"auction-settlement/internal/notify"
	"auction-settlement/internal/repository"
	"auction-settlement/internal/server"
	"auction-settlement/internal/settlement"
	"auction-settlement/services/bidding/helpers"

	"github.com/gin-gonic/gin"
	"github.com/stretchr/testify/require"
)

const cronSecret = "test-cron-secret"

// testClock is a manually advanced clock shared by both services
type testClock struct {
	mu  sync.Mutex
	now time.Time
}

func (c *testClock) Now() time.Time {
	c.mu.Lock()
	defer c.mu.Unlock()
	return c.now
}

func (c *testClock) Advance(d time.Duration) {
	c.mu.Lock()
	defer c.mu.Unlock()
	c.now = c.now.Add(d)
}

// testEnv is a full HTTP stack on top of the in-memory repository
type testEnv struct {
	router *gin.Engine
	repo   *repository.MemoryRepo
	clock  *testClock
}

// SetupTestEnv initializes the router with in-memory repository for integration testing.
func SetupTestEnv(auctions ...model.Auction) *testEnv {
	gin.SetMode(gin.TestMode)

	clock := &testClock{now: time.Date(2025, 3, 1, 12, 0, 0, 0, time.UTC)}
	repo := repository.NewMemoryRepo()
	for _, a := range auctions {
		repo.AddAuction(a)
	}

	cfg := &config.Config{
		Server: config.ServerConfig{AllowedOrigins: []string{"http://localhost:3000"}},
		Cron:   config.CronConfig{Secret: cronSecret},
		Policy: config.DefaultPolicy(),
	}

	dispatcher := notify.NewLogDispatcher()
	settlementSvc := settlement.NewService(repo, dispatcher, cfg.Policy).WithClock(clock.Now)
	biddingSvc := bidding.NewBiddingService(repo, dispatcher, cfg.Policy).
		WithClock(clock.Now).
		WithSettler(settlementSvc)

	return &testEnv{
		router: server.SetupRouter(cfg, biddingSvc, settlementSvc),
		repo:   repo,
		clock:  clock,
	}
}

// Do executes an HTTP request as actor and parses the response envelope.
// A string body is sent as is, anything else is JSON encoded.
func (e *testEnv) Do(t *testing.T, method, url, actor string, body any) (map[string]any, *httptest.ResponseRecorder) {
	t.Helper()

	var reqBody []byte
	switch v := body.(type) {
	case nil:
	case string:
		reqBody = []byte(v)
	default:
		var err error
		reqBody, err = json.Marshal(v)
		require.NoError(t, err, "failed to marshal body")
	}

	req := httptest.NewRequest(method, url, bytes.NewReader(reqBody))
	req.Header.Set("Content-Type", "application/json")
	if actor != "" {
		req.Header.Set(helpers.ActorHeader, actor)
	}
	w := httptest.NewRecorder()
	e.router.ServeHTTP(w, req)

	var resp map[string]any
	if w.Body.Len() > 0 {
		require.NoError(t, json.Unmarshal(w.Body.Bytes(), &resp), "failed to unmarshal response")
	}
	return resp, w
}

// Cron triggers a sweep endpoint with the cron secret
func (e *testEnv) Cron(t *testing.T, path string) map[string]any {
	t.Helper()

	req := httptest.NewRequest("POST", "/cron/"+path, nil)
	req.Header.Set("Authorization", "Bearer "+cronSecret)
	w := httptest.NewRecorder()
	e.router.ServeHTTP(w, req)
	require.Equal(t, 200, w.Code, w.Body.String())

	var resp map[string]any
	require.NoError(t, json.Unmarshal(w.Body.Bytes(), &resp))
	return resp["data"].(map[string]any)
}

// Bid places a bid and requires it to be accepted
func (e *testEnv) Bid(t *testing.T, auctionID, bidderID string, amount int64) map[string]any {
	t.Helper()

	resp, w := e.Do(t, "POST", "/bids", bidderID, helpers.PlaceBidRequest{AuctionID: auctionID, Amount: amount})
	require.Equal(t, 201, w.Code, w.Body.String())
	return resp["data"].(map[string]any)
}

// data returns the envelope payload as an object
func data(t *testing.T, resp map[string]any) map[string]any {
	t.Helper()
	d, ok := resp["data"].(map[string]any)
	require.True(t, ok, "data should be an object, got %v", resp)
	return d
}

// auctionFixture is an active auction ending an hour after the test clock start
func auctionFixture(id string, reserve *int64) model.Auction {
	start := time.Date(2025, 3, 1, 12, 0, 0, 0, time.UTC)
	return model.Auction{
		AuctionID:     id,
		SellerID:      "seller",
		Title:         "Audi A4 Avant",
		StartingPrice: 1000,
		ReservePrice:  reserve,
		EndTime:       start.Add(time.Hour),
		Status:        model.AuctionActive,
		Cycle:         1,
		CreatedAt:     start,
		UpdatedAt:     start,
	}
}

func price(v int64) *int64 { return &v }
