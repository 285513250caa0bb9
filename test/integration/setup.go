package integration

import (
	"net/http"
	"net/http/cookiejar"
	"net/http/httptest"
	"net/url"
	"testing"
	"time"

	"github.com/stretchr/testify/require"

	apphttp "github.com/votingapp/api/internal/adapters/handler/http"
	"github.com/votingapp/api/internal/adapters/repository/memory"
	"github.com/votingapp/api/internal/adapters/session"
	"github.com/votingapp/api/internal/core/services"
)

const (
	testPassword = "votingapp2024"
)

var testRestaurants = []string{"outback", "bucadibeppo", "ihop", "chipotle"}

type testApp struct {
	Server *httptest.Server
	Client *http.Client
}

// setupTestApp boots the whole service against the seeded in-memory store,
// the same wiring cmd/server uses in development mode. The client carries a
// cookie jar so login survives across requests, and does not follow
// redirects so they can be asserted on.
func setupTestApp(t *testing.T) *testApp {
	t.Helper()

	store := memory.NewVoteStore(memory.DevSeed)
	voteService := services.NewVoteService(store, testRestaurants, 5*time.Second)
	stressService := services.NewStressService(0, 0)
	authService := services.NewAuthService(testPassword, session.NewMemoryStore(), time.Hour)
	cookies := session.NewCookieManager("integration-secret")

	votes := apphttp.NewVoteHandler(voteService, stressService, authService, cookies)
	dashboard := apphttp.NewDashboardHandler(voteService, authService, cookies, testRestaurants)

	server := httptest.NewServer(apphttp.NewHandler(votes, dashboard, testRestaurants))
	t.Cleanup(server.Close)

	jar, err := cookiejar.New(nil)
	require.NoError(t, err)

	return &testApp{
		Server: server,
		Client: &http.Client{
			Jar: jar,
			CheckRedirect: func(req *http.Request, via []*http.Request) error {
				return http.ErrUseLastResponse
			},
		},
	}
}

func (a *testApp) login(t *testing.T, password string) *http.Response {
	t.Helper()

	resp, err := a.Client.PostForm(a.Server.URL+"/login", url.Values{"password": {password}})
	require.NoError(t, err)
	return resp
}
