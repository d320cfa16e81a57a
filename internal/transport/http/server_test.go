package http

import (
	"context"
	"encoding/json"
	"errors"
	"net/http"
	"net/http/httptest"
	"strings"
	"testing"
	"time"

	"github.com/sandevgo/folio/internal/core"
	"github.com/sandevgo/folio/internal/providers/fallback"
	"github.com/sandevgo/folio/internal/service/chatbot"
	"github.com/sandevgo/folio/internal/service/conversation"
	"github.com/sandevgo/folio/internal/service/state"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

type fakeAI struct {
	reply string
	err   error
	got   []core.Message
}

func (f *fakeAI) Chat(_ context.Context, history []core.Message) (core.Message, error) {
	f.got = history
	if f.err != nil {
		return core.Message{}, f.err
	}
	return core.Message{Role: core.RoleAssistant, Content: f.reply}, nil
}

func newTestServer(t *testing.T, ai core.AIProvider) http.Handler {
	t.Helper()
	engine, err := chatbot.NewDefaultEngine(nil)
	require.NoError(t, err)
	chat := state.NewGlobalState(engine, conversation.NewStore())
	return NewServer(context.Background(), ":0", chat, ai).Handler(context.Background())
}

func do(h http.Handler, method, path, body string) *httptest.ResponseRecorder {
	req := httptest.NewRequest(method, path, strings.NewReader(body))
	rec := httptest.NewRecorder()
	h.ServeHTTP(rec, req)
	return rec
}

func TestChat_NoKey(t *testing.T) {
	rec := do(newTestServer(t, nil), http.MethodPost, "/api/chat", `{"question":"hi"}`)
	assert.Equal(t, http.StatusServiceUnavailable, rec.Code)
}

func TestChat_BadRequest(t *testing.T) {
	h := newTestServer(t, &fakeAI{reply: "x"})

	assert.Equal(t, http.StatusBadRequest, do(h, http.MethodPost, "/api/chat", `{"question":`).Code)
	assert.Equal(t, http.StatusBadRequest, do(h, http.MethodPost, "/api/chat", `{"question":"   "}`).Code)
	assert.Equal(t, http.StatusMethodNotAllowed, do(h, http.MethodGet, "/api/chat", "").Code)
}

func TestChat_GatewayFailure(t *testing.T) {
	h := newTestServer(t, &fakeAI{err: errors.New("http 500")})
	assert.Equal(t, http.StatusBadGateway, do(h, http.MethodPost, "/api/chat", `{"question":"do you surf?"}`).Code)

	h = newTestServer(t, &fakeAI{reply: "   "})
	assert.Equal(t, http.StatusBadGateway, do(h, http.MethodPost, "/api/chat", `{"question":"do you surf?"}`).Code)
}

func TestChat_OK(t *testing.T) {
	ai := &fakeAI{reply: "I mostly write Go."}
	h := newTestServer(t, ai)

	rec := do(h, http.MethodPost, "/api/chat", `{"question":"what do you code in","matcherReply":"Not sure."}`)
	require.Equal(t, http.StatusOK, rec.Code)

	var resp chatResponse
	require.NoError(t, json.Unmarshal(rec.Body.Bytes(), &resp))
	assert.Equal(t, "I mostly write Go.", resp.Text)
	assert.Equal(t, "what do you code in", ai.got[len(ai.got)-1].Content)
}

func TestRespond(t *testing.T) {
	h := newTestServer(t, nil)

	rec := do(h, http.MethodPost, "/api/respond", `{"message":"hi"}`)
	require.Equal(t, http.StatusOK, rec.Code)

	var first respondResponse
	require.NoError(t, json.Unmarshal(rec.Body.Bytes(), &first))
	assert.NotEmpty(t, first.ConversationID)
	assert.Equal(t, "greeting", first.Reply.Intent)
	assert.Equal(t, "greeting:0", first.Reply.VariantID)

	rec = do(h, http.MethodPost, "/api/respond", `{"conversationId":"`+first.ConversationID+`","message":"hello"}`)
	var second respondResponse
	require.NoError(t, json.Unmarshal(rec.Body.Bytes(), &second))
	assert.Equal(t, first.ConversationID, second.ConversationID)
	assert.Equal(t, "greeting:1", second.Reply.VariantID)

	assert.Equal(t, http.StatusBadRequest, do(h, http.MethodPost, "/api/respond", `nope`).Code)
}

func TestHealth(t *testing.T) {
	rec := do(newTestServer(t, nil), http.MethodGet, "/api/health", "")
	require.Equal(t, http.StatusOK, rec.Code)
	assert.Contains(t, rec.Body.String(), `"status":"ok"`)
	assert.Contains(t, rec.Body.String(), `"ai":false`)
}

// The fallback client and the /api/chat handler speak the same contract.
func TestChat_FallbackClientContract(t *testing.T) {
	srv := httptest.NewServer(newTestServer(t, &fakeAI{reply: "Remote answer."}))
	defer srv.Close()

	text, ok := fallback.NewClient(srv.URL+"/api/chat", time.Second).
		Fetch(context.Background(), core.FallbackPayload{Question: "do you surf?", MatcherReply: "Not sure."})
	require.True(t, ok)
	assert.Equal(t, "Remote answer.", text)

	noKey := httptest.NewServer(newTestServer(t, nil))
	defer noKey.Close()
	_, ok = fallback.NewClient(noKey.URL+"/api/chat", time.Second).
		Fetch(context.Background(), core.FallbackPayload{Question: "do you surf?"})
	assert.False(t, ok)
}
