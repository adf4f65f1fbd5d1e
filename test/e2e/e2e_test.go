// test/e2e/e2e_test.go

// End-to-end suite driving the full handler stack over HTTP with the
// memory backend and the default Mergington catalog.
package e2e

import (
	"encoding/json"
	"net/http"
	"net/http/httptest"
	"testing"

	"activities-service/internal/common/logger"
	"activities-service/internal/models"
	"activities-service/internal/registry"
	"activities-service/internal/server"
	"activities-service/pkg/seed"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func startServer(t *testing.T) *httptest.Server {
	t.Helper()

	srv, err := server.New(server.Config{
		Store:  registry.NewMemoryStore(seed.Default(), registry.Options{}),
		Logger: logger.NewTestLogger(t),
	})
	require.NoError(t, err)

	ts := httptest.NewServer(srv.Routes())
	t.Cleanup(ts.Close)
	return ts
}

func getActivities(t *testing.T, ts *httptest.Server) map[string]models.Activity {
	t.Helper()
	resp, err := http.Get(ts.URL + "/activities")
	require.NoError(t, err)
	defer resp.Body.Close()
	require.Equal(t, http.StatusOK, resp.StatusCode)

	var activities map[string]models.Activity
	require.NoError(t, json.NewDecoder(resp.Body).Decode(&activities))
	return activities
}

func do(t *testing.T, method, url string) (*http.Response, map[string]string) {
	t.Helper()
	req, err := http.NewRequest(method, url, nil)
	require.NoError(t, err)
	resp, err := http.DefaultClient.Do(req)
	require.NoError(t, err)
	defer resp.Body.Close()

	var body map[string]string
	_ = json.NewDecoder(resp.Body).Decode(&body)
	return resp, body
}

func TestCatalogListing(t *testing.T) {
	ts := startServer(t)
	activities := getActivities(t, ts)

	for _, name := range []string{
		"Chess Club", "Programming Class", "Gym Class", "Tennis Club",
		"Basketball Team", "Debate Club", "Art Studio",
	} {
		act, ok := activities[name]
		require.True(t, ok, "missing %q", name)
		assert.NotEmpty(t, act.Description)
		assert.NotEmpty(t, act.Schedule)
		assert.Greater(t, act.MaxParticipants, 0)
		assert.NotNil(t, act.Participants)
	}
}

func TestSignupLifecycle(t *testing.T) {
	ts := startServer(t)

	before := getActivities(t, ts)["Chess Club"].Participants

	// Duplicate of a seeded participant is rejected.
	resp, body := do(t, http.MethodPost, ts.URL+"/activities/Chess%20Club/signup?email=michael%40mergington.edu")
	assert.Equal(t, http.StatusBadRequest, resp.StatusCode)
	assert.Contains(t, body["detail"], "already signed up")

	// A new participant gets in.
	resp, body = do(t, http.MethodPost, ts.URL+"/activities/Chess%20Club/signup?email=new%40x.edu")
	require.Equal(t, http.StatusOK, resp.StatusCode)
	assert.Contains(t, body["message"], "Signed up")

	after := getActivities(t, ts)["Chess Club"].Participants
	assert.Len(t, after, len(before)+1)
	assert.Contains(t, after, "new@x.edu")

	// Unregistering restores the prior roster exactly.
	resp, body = do(t, http.MethodDelete, ts.URL+"/activities/Chess%20Club/unregister?email=new%40x.edu")
	require.Equal(t, http.StatusOK, resp.StatusCode)
	assert.Contains(t, body["message"], "Removed")

	assert.Equal(t, before, getActivities(t, ts)["Chess Club"].Participants)
}

func TestUnknownActivity(t *testing.T) {
	ts := startServer(t)

	resp, body := do(t, http.MethodPost, ts.URL+"/activities/Nonexistent%20Activity/signup?email=student%40mergington.edu")
	assert.Equal(t, http.StatusNotFound, resp.StatusCode)
	assert.Contains(t, body["detail"], "Activity not found")

	resp, body = do(t, http.MethodDelete, ts.URL+"/activities/Nonexistent%20Activity/unregister?email=student%40mergington.edu")
	assert.Equal(t, http.StatusNotFound, resp.StatusCode)
	assert.Contains(t, body["detail"], "Activity not found")
}

func TestUnregisterNotSignedUp(t *testing.T) {
	ts := startServer(t)

	resp, body := do(t, http.MethodDelete, ts.URL+"/activities/Art%20Studio/unregister?email=notsignup%40mergington.edu")
	assert.Equal(t, http.StatusBadRequest, resp.StatusCode)
	assert.Contains(t, body["detail"], "not signed up")
}

func TestRootRedirect(t *testing.T) {
	ts := startServer(t)

	client := &http.Client{
		CheckRedirect: func(req *http.Request, via []*http.Request) error {
			return http.ErrUseLastResponse
		},
	}
	resp, err := client.Get(ts.URL + "/")
	require.NoError(t, err)
	defer resp.Body.Close()

	assert.Equal(t, http.StatusTemporaryRedirect, resp.StatusCode)
	assert.Contains(t, resp.Header.Get("Location"), "/static/index.html")
}

func TestSignupAcrossActivitiesIsIndependent(t *testing.T) {
	ts := startServer(t)

	// One student may join several activities.
	for _, path := range []string{
		"/activities/Tennis%20Club/signup?email=busy%40mergington.edu",
		"/activities/Debate%20Club/signup?email=busy%40mergington.edu",
	} {
		resp, _ := do(t, http.MethodPost, ts.URL+path)
		require.Equal(t, http.StatusOK, resp.StatusCode)
	}

	activities := getActivities(t, ts)
	assert.Contains(t, activities["Tennis Club"].Participants, "busy@mergington.edu")
	assert.Contains(t, activities["Debate Club"].Participants, "busy@mergington.edu")
}
