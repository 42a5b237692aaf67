package httpapi

import (
	"bytes"
	"context"
	"encoding/json"
	"net/http"
	"net/http/httptest"
	"path/filepath"
	"strings"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/solatis/audiencekeeper/internal/core/config"
	"github.com/solatis/audiencekeeper/internal/core/db"
	"github.com/solatis/audiencekeeper/internal/core/logger"
	"github.com/solatis/audiencekeeper/internal/core/scope"
	"github.com/solatis/audiencekeeper/internal/core/service"
	"github.com/solatis/audiencekeeper/internal/core/store"
	"github.com/solatis/audiencekeeper/internal/types"
)

type testAPI struct {
	t      *testing.T
	server *httptest.Server
	store  *store.Store
}

func newTestAPI(t *testing.T) *testAPI {
	t.Helper()
	conn, err := db.Open("sqlite://" + filepath.Join(t.TempDir(), "api.db"))
	require.NoError(t, err)
	t.Cleanup(func() { conn.Close() })
	_, err = db.MigrateUp(context.Background(), conn)
	require.NoError(t, err)

	st, err := store.New(conn)
	require.NoError(t, err)

	cfg := config.Default()
	svc, err := service.New(st, nil, cfg.Audience, logger.NewNop())
	require.NoError(t, err)

	h := NewHandler(svc, 64<<10, logger.NewNop())
	srv := httptest.NewServer(NewRouter(h, RouterConfig{RequestTimeout: cfg.Server.RequestTimeout}, logger.NewNop()))
	t.Cleanup(srv.Close)

	return &testAPI{t: t, server: srv, store: st}
}

// do sends body (string or value encoded as JSON) and decodes the response
// into out when out is non-nil.
func (a *testAPI) do(method, path, user string, body any, out any) *http.Response {
	a.t.Helper()
	var reader *bytes.Reader
	switch b := body.(type) {
	case nil:
		reader = bytes.NewReader(nil)
	case string:
		reader = bytes.NewReader([]byte(b))
	default:
		raw, err := json.Marshal(b)
		require.NoError(a.t, err)
		reader = bytes.NewReader(raw)
	}

	req, err := http.NewRequest(method, a.server.URL+path, reader)
	require.NoError(a.t, err)
	req.Header.Set("Content-Type", "application/json")
	if user != "" {
		req.Header.Set(scope.HeaderUserID, user)
	}

	resp, err := a.server.Client().Do(req)
	require.NoError(a.t, err)
	a.t.Cleanup(func() { resp.Body.Close() })

	if out != nil {
		require.NoError(a.t, json.NewDecoder(resp.Body).Decode(out))
	}
	return resp
}

const puneSegment = `{
	"name": "Pune spenders",
	"conditions": [
		{"logic": "OR", "conditions": [
			{"field": "totalSpend", "operator": ">", "value": 100},
			{"field": "visits", "operator": ">=", "value": "5"}
		]},
		{"logic": "AND", "conditions": [
			{"field": "city", "operator": "=", "value": "Pune"}
		]}
	]
}`

const customers = `{"customers": [
	{"id": "c1", "name": "Asha", "city": "Pune", "totalSpend": 150, "visits": 2, "lastVisit": "2024-02-01"},
	{"id": "c2", "name": "Ravi", "city": "Pune", "totalSpend": 50, "visits": 9},
	{"id": "c3", "name": "Meera", "city": "Delhi", "totalSpend": 500},
	{"id": "c4", "name": "Kiran", "city": "Pune"}
]}`

func TestHealth(t *testing.T) {
	api := newTestAPI(t)
	resp := api.do(http.MethodGet, "/health", "", nil, nil)
	assert.Equal(t, http.StatusOK, resp.StatusCode)
}

func TestSegmentLifecycle(t *testing.T) {
	api := newTestAPI(t)

	var ingested ingestResponse
	resp := api.do(http.MethodPost, "/api/customers", "", customers, &ingested)
	require.Equal(t, http.StatusCreated, resp.StatusCode)
	assert.Equal(t, 4, ingested.Inserted)

	var preview previewResponse
	resp = api.do(http.MethodPost, "/api/segments/preview", "", puneSegment, &preview)
	require.Equal(t, http.StatusOK, resp.StatusCode)
	assert.Equal(t, 2, preview.AudienceSize)

	var created map[string]any
	resp = api.do(http.MethodPost, "/api/segments", "u1", puneSegment, &created)
	require.Equal(t, http.StatusCreated, resp.StatusCode)
	id, _ := created["_id"].(string)
	require.NotEmpty(t, id)
	assert.Equal(t, "u1", created["userId"])
	assert.EqualValues(t, 2, created["audienceSize"])

	var list []map[string]any
	resp = api.do(http.MethodGet, "/api/segments", "u1", nil, &list)
	require.Equal(t, http.StatusOK, resp.StatusCode)
	require.Len(t, list, 1)
	assert.Equal(t, id, list[0]["_id"])

	resp = api.do(http.MethodGet, "/api/segments", "u2", nil, &list)
	require.Equal(t, http.StatusOK, resp.StatusCode)
	assert.Empty(t, list)

	var audience audienceResponse
	resp = api.do(http.MethodGet, "/api/segments/"+id+"/audience?limit=1", "u1", nil, &audience)
	require.Equal(t, http.StatusOK, resp.StatusCode)
	assert.Equal(t, 2, audience.AudienceSize)
	assert.True(t, audience.Capped)
	assert.Len(t, audience.CustomerIDs, 1)

	resp = api.do(http.MethodGet, "/api/segments/"+id, "u2", nil, nil)
	assert.Equal(t, http.StatusForbidden, resp.StatusCode)

	replaced := strings.Replace(puneSegment, `"Pune"`, `"Delhi"`, 1)
	var updated map[string]any
	resp = api.do(http.MethodPut, "/api/segments/"+id, "u1", replaced, &updated)
	require.Equal(t, http.StatusOK, resp.StatusCode)
	assert.Equal(t, id, updated["_id"])
	assert.EqualValues(t, 1, updated["audienceSize"])

	resp = api.do(http.MethodDelete, "/api/segments/"+id, "u1", nil, nil)
	assert.Equal(t, http.StatusNoContent, resp.StatusCode)

	resp = api.do(http.MethodGet, "/api/segments/"+id, "u1", nil, nil)
	assert.Equal(t, http.StatusNotFound, resp.StatusCode)
}

func TestSegmentUserFromBody(t *testing.T) {
	api := newTestAPI(t)

	body := strings.Replace(puneSegment, `"name"`, `"userId": "u9", "name"`, 1)
	var created map[string]any
	resp := api.do(http.MethodPost, "/api/segments", "", body, &created)
	require.Equal(t, http.StatusCreated, resp.StatusCode)
	assert.Equal(t, "u9", created["userId"])
}

func TestSegmentErrors(t *testing.T) {
	api := newTestAPI(t)

	t.Run("validation details", func(t *testing.T) {
		body := `{"name": "bad", "conditions": [
			{"logic": "AND", "conditions": [
				{"field": "shoeSize", "operator": "=", "value": "9"},
				{"field": "visits", "operator": ">", "value": "many"}
			]}
		]}`
		var er errorResponse
		resp := api.do(http.MethodPost, "/api/segments", "u1", body, &er)
		require.Equal(t, http.StatusBadRequest, resp.StatusCode)
		assert.Equal(t, CodeValidation, er.Code)
		require.Len(t, er.Details, 2)

		assert.Equal(t, "UnknownFieldError", er.Details[0].Kind)
		require.NotNil(t, er.Details[0].Group)
		require.NotNil(t, er.Details[0].Condition)
		assert.Equal(t, 0, *er.Details[0].Group)
		assert.Equal(t, 0, *er.Details[0].Condition)

		assert.Equal(t, "TypeCoercionError", er.Details[1].Kind)
		assert.Equal(t, 1, *er.Details[1].Condition)
	})

	t.Run("missing user", func(t *testing.T) {
		var er errorResponse
		resp := api.do(http.MethodPost, "/api/segments", "", puneSegment, &er)
		assert.Equal(t, http.StatusUnauthorized, resp.StatusCode)
		assert.Equal(t, CodeMissingUser, er.Code)
	})

	t.Run("malformed json", func(t *testing.T) {
		var er errorResponse
		resp := api.do(http.MethodPost, "/api/segments", "u1", `{"name":`, &er)
		assert.Equal(t, http.StatusBadRequest, resp.StatusCode)
		assert.Equal(t, CodeBadRequest, er.Code)
	})

	t.Run("object value rejected", func(t *testing.T) {
		body := `{"name": "x", "conditions": [{"conditions": [{"field": "city", "operator": "=", "value": {"a": 1}}]}]}`
		resp := api.do(http.MethodPost, "/api/segments", "u1", body, nil)
		assert.Equal(t, http.StatusBadRequest, resp.StatusCode)
	})

	t.Run("invalid id", func(t *testing.T) {
		resp := api.do(http.MethodGet, "/api/segments/not-a-uuid", "u1", nil, nil)
		assert.Equal(t, http.StatusBadRequest, resp.StatusCode)
	})

	t.Run("negative limit", func(t *testing.T) {
		resp := api.do(http.MethodGet, "/api/segments/"+string(types.NewSegmentID())+"/audience?limit=-1", "u1", nil, nil)
		assert.Equal(t, http.StatusBadRequest, resp.StatusCode)
	})

	t.Run("body too large", func(t *testing.T) {
		big := `{"name": "` + strings.Repeat("x", 70<<10) + `", "conditions": []}`
		var er errorResponse
		resp := api.do(http.MethodPost, "/api/segments", "u1", big, &er)
		assert.Equal(t, http.StatusRequestEntityTooLarge, resp.StatusCode)
		assert.Equal(t, CodeTooLarge, er.Code)
	})
}

func TestIngest_InvalidDate(t *testing.T) {
	api := newTestAPI(t)
	var er errorResponse
	resp := api.do(http.MethodPost, "/api/customers", "",
		`{"customers": [{"id": "c1", "lastVisit": "yesterday"}]}`, &er)
	assert.Equal(t, http.StatusBadRequest, resp.StatusCode)
	assert.Contains(t, er.Message, "customers[0]")
}

func TestCampaignFlow(t *testing.T) {
	api := newTestAPI(t)
	api.do(http.MethodPost, "/api/customers", "", customers, nil)

	var seg map[string]any
	api.do(http.MethodPost, "/api/segments", "u1", puneSegment, &seg)
	segID := seg["_id"].(string)

	var er errorResponse
	resp := api.do(http.MethodPost, "/api/campaigns", "u1",
		campaignRequest{Title: "  ", SegmentID: segID}, &er)
	assert.Equal(t, http.StatusBadRequest, resp.StatusCode)

	var c campaignResponse
	resp = api.do(http.MethodPost, "/api/campaigns", "",
		campaignRequest{Title: "Spring sale", SegmentID: segID, UserID: "u1"}, &c)
	require.Equal(t, http.StatusCreated, resp.StatusCode)
	assert.Equal(t, "ACTIVE", c.State)
	assert.Equal(t, 2, c.AudienceSize)
	assert.Empty(t, c.ExportURI)

	var past pastCampaignsResponse
	api.do(http.MethodGet, "/api/campaigns/past?userId=u1", "", nil, &past)
	require.Len(t, past.Campaigns, 1)
	assert.Equal(t, c.ID, past.Campaigns[0].ID)

	var active activeCampaignsResponse
	api.do(http.MethodGet, "/api/campaigns/active", "", nil, &active)
	assert.Len(t, active.ActiveCampaigns, 1)

	logs, err := api.store.ListCommunicationLogs(context.Background(), types.CampaignID(c.ID))
	require.NoError(t, err)
	require.Len(t, logs, 2)

	var receipt logResponse
	resp = api.do(http.MethodPost, "/api/communication-logs/"+string(logs[0].LogID)+"/receipt", "",
		receiptRequest{Status: "SENT"}, &receipt)
	require.Equal(t, http.StatusOK, resp.StatusCode)
	assert.Equal(t, "SENT", receipt.Status)

	resp = api.do(http.MethodPost, "/api/communication-logs/"+string(logs[1].LogID)+"/receipt", "",
		receiptRequest{Status: "LOST"}, nil)
	assert.Equal(t, http.StatusBadRequest, resp.StatusCode)

	var counts campaignCountsResponse
	api.do(http.MethodGet, "/api/campaigns/count", "", nil, &counts)
	require.Len(t, counts.CampaignStats, 1)
	stats := counts.CampaignStats[0]
	assert.Equal(t, 1, stats.SentCount)
	assert.Equal(t, 1, stats.PendingCount)
	assert.Equal(t, 1, stats.OpenCount)

	resp = api.do(http.MethodPut, "/api/campaigns/"+c.ID+"/state", "u2", campaignStateRequest{State: "closed"}, nil)
	assert.Equal(t, http.StatusForbidden, resp.StatusCode)

	var closed campaignResponse
	resp = api.do(http.MethodPut, "/api/campaigns/"+c.ID+"/state", "u1", campaignStateRequest{State: "closed"}, &closed)
	require.Equal(t, http.StatusOK, resp.StatusCode)
	assert.Equal(t, "CLOSED", closed.State)

	var dash dashboardResponse
	resp = api.do(http.MethodGet, "/api/statistics/stats", "", nil, &dash)
	require.Equal(t, http.StatusOK, resp.StatusCode)
	assert.Equal(t, dashboardResponse{
		TotalCustomers: 4,
		TotalSegments:  1,
		TotalCampaigns: 1,
		ClosedCount:    1,
		SentCount:      1,
		PendingCount:   1,
	}, dash)
}

func TestInvalidUserHeader(t *testing.T) {
	api := newTestAPI(t)
	resp := api.do(http.MethodGet, "/api/segments", "bad user", nil, nil)
	assert.Equal(t, http.StatusBadRequest, resp.StatusCode)
}
