package main

import (
	"encoding/json"
	"net/http"
	"net/http/httptest"
	"strings"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/sells-group/investor-match/internal/profile"
	"github.com/sells-group/investor-match/internal/rank"
	"github.com/sells-group/investor-match/internal/session"
	"github.com/sells-group/investor-match/internal/table"
)

func testAPIServer() *apiServer {
	meta := profile.NewMetadata()
	meta.SetScalar(profile.KeyFirmName, table.String("Acme Ventures"))
	meta.SetScalar(profile.KeyFocusArea, table.String("Healthcare IT"))

	profiles := []profile.Profile{{ID: "0", Text: "Account Name: Acme Ventures\nInvestor Focus Area: Healthcare IT", Meta: meta}}
	return &apiServer{
		profiles: profiles,
		searcher: rank.KeywordSearcher{Profiles: profiles},
		sessions: session.NewStore(),
		maxCtx:   10,
	}
}

func doRequest(t *testing.T, h http.Handler, method, path, body string) *httptest.ResponseRecorder {
	t.Helper()
	req := httptest.NewRequest(method, path, strings.NewReader(body))
	req.Header.Set("Content-Type", "application/json")
	rr := httptest.NewRecorder()
	h.ServeHTTP(rr, req)
	return rr
}

func TestServe_Health(t *testing.T) {
	h := testAPIServer().routes(nil)
	rr := doRequest(t, h, http.MethodGet, "/health", "")

	require.Equal(t, http.StatusOK, rr.Code)
	var resp map[string]any
	require.NoError(t, json.Unmarshal(rr.Body.Bytes(), &resp))
	assert.Equal(t, "healthy", resp["status"])
	assert.EqualValues(t, 1, resp["profiles"])
}

func TestServe_UploadAndChatWithSession(t *testing.T) {
	api := testAPIServer()
	h := api.routes(nil)

	rr := doRequest(t, h, http.MethodPost, "/api/upload",
		`{"name":"deck.pdf","text_content":"we sell healthcare software"}`)
	require.Equal(t, http.StatusOK, rr.Code)

	var deck struct {
		ID string `json:"id"`
	}
	require.NoError(t, json.Unmarshal(rr.Body.Bytes(), &deck))
	require.NotEmpty(t, deck.ID)
	assert.Equal(t, 1, api.sessions.Len())

	rr = doRequest(t, h, http.MethodPost, "/api/chat",
		`{"query":"healthcare investors","session_id":"`+deck.ID+`"}`)
	require.Equal(t, http.StatusOK, rr.Code)

	var chat struct {
		Query    string `json:"query"`
		Response string `json:"response"`
	}
	require.NoError(t, json.Unmarshal(rr.Body.Bytes(), &chat))
	assert.Equal(t, "healthcare investors", chat.Query)
	// no recommender configured: response falls back to the context block
	assert.Contains(t, chat.Response, "Firm: Acme Ventures")
}

func TestServe_UploadRequiresText(t *testing.T) {
	h := testAPIServer().routes(nil)
	rr := doRequest(t, h, http.MethodPost, "/api/upload", `{"name":"deck.pdf"}`)
	assert.Equal(t, http.StatusBadRequest, rr.Code)
}

func TestServe_ChatRequiresQuery(t *testing.T) {
	h := testAPIServer().routes(nil)
	rr := doRequest(t, h, http.MethodPost, "/api/chat", `{}`)
	assert.Equal(t, http.StatusBadRequest, rr.Code)
}

func TestServe_ChatBadBody(t *testing.T) {
	h := testAPIServer().routes(nil)
	rr := doRequest(t, h, http.MethodPost, "/api/chat", `{bad`)
	assert.Equal(t, http.StatusBadRequest, rr.Code)
}

func TestServe_ClearSession(t *testing.T) {
	api := testAPIServer()
	h := api.routes(nil)

	deck := api.sessions.Create("deck.pdf", "text")
	rr := doRequest(t, h, http.MethodDelete, "/api/session/"+deck.ID, "")
	require.Equal(t, http.StatusOK, rr.Code)
	assert.Zero(t, api.sessions.Len())
}
