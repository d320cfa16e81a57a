// Package http serves the chatbot and the AI fallback endpoint over HTTP.
package http

import (
	"context"
	"encoding/json"
	"errors"
	"net/http"
	"strings"
	"time"

	"github.com/sandevgo/folio/internal/core"
	"github.com/sandevgo/folio/internal/providers/llm"
	"github.com/sandevgo/folio/internal/service/conversation"
	"github.com/sandevgo/folio/pkg/conv"
	"github.com/sandevgo/folio/pkg/log"
)

const maxRequestBody = 16 << 10

type Server struct {
	chat   core.Chatbot
	ai     core.AIProvider
	server *http.Server
}

// NewServer builds the API server. ai may be nil, in which case /api/chat
// answers 503.
func NewServer(ctx context.Context, addr string, chat core.Chatbot, ai core.AIProvider) *Server {
	s := &Server{
		chat: chat,
		ai:   ai,
	}
	s.server = &http.Server{
		Addr:              addr,
		Handler:           s.Handler(ctx),
		ReadHeaderTimeout: 5 * time.Second,
		ReadTimeout:       15 * time.Second,
		WriteTimeout:      60 * time.Second,
	}
	return s
}

// Handler returns the routed API with request logging.
func (s *Server) Handler(ctx context.Context) http.Handler {
	mux := http.NewServeMux()
	mux.HandleFunc("POST /api/chat", s.handleChat)
	mux.HandleFunc("POST /api/respond", s.handleRespond)
	mux.HandleFunc("GET /api/health", s.handleHealth)
	return withLogger(ctx, mux)
}

func (s *Server) Start(ctx context.Context) error {
	log.FromCtx(ctx).Info().Str("addr", s.server.Addr).Msg("starting http server")
	if err := s.server.ListenAndServe(); err != nil && !errors.Is(err, http.ErrServerClosed) {
		return err
	}
	return nil
}

func (s *Server) Shutdown(ctx context.Context) error {
	shutdownCtx, cancel := context.WithTimeout(context.WithoutCancel(ctx), 5*time.Second)
	defer cancel()
	return s.server.Shutdown(shutdownCtx)
}

type chatResponse struct {
	Text string `json:"text"`
}

type respondRequest struct {
	ConversationID string `json:"conversationId"`
	Message        string `json:"message"`
}

type respondResponse struct {
	ConversationID string            `json:"conversationId"`
	Reply          core.ChatbotReply `json:"reply"`
}

type errorResponse struct {
	Error string `json:"error"`
}

// handleChat is the AI fallback endpoint.
func (s *Server) handleChat(w http.ResponseWriter, r *http.Request) {
	ctx := r.Context()
	if s.ai == nil {
		writeJSON(w, http.StatusServiceUnavailable, errorResponse{Error: "AI_GATEWAY_API_KEY is not configured"})
		return
	}

	var req core.FallbackPayload
	if err := decode(w, r, &req); err != nil {
		writeJSON(w, http.StatusBadRequest, errorResponse{Error: err.Error()})
		return
	}
	if strings.TrimSpace(req.Question) == "" {
		writeJSON(w, http.StatusBadRequest, errorResponse{Error: "question is required"})
		return
	}

	msg, err := s.ai.Chat(ctx, llm.PortfolioMessages(req))
	if err != nil {
		log.FromCtx(ctx).Error().Err(err).Msg("ai gateway request failed")
		writeJSON(w, http.StatusBadGateway, errorResponse{Error: "ai gateway request failed"})
		return
	}

	text := conv.MarkdownToPlainText(msg.Content)
	if text == "" {
		writeJSON(w, http.StatusBadGateway, errorResponse{Error: "ai gateway returned no text"})
		return
	}
	writeJSON(w, http.StatusOK, chatResponse{Text: text})
}

func (s *Server) handleRespond(w http.ResponseWriter, r *http.Request) {
	var req respondRequest
	if err := decode(w, r, &req); err != nil {
		writeJSON(w, http.StatusBadRequest, errorResponse{Error: err.Error()})
		return
	}

	id := strings.TrimSpace(req.ConversationID)
	if id == "" {
		id = conversation.NewID()
	}

	reply := s.chat.Ask(r.Context(), id, req.Message)
	writeJSON(w, http.StatusOK, respondResponse{ConversationID: id, Reply: reply})
}

func (s *Server) handleHealth(w http.ResponseWriter, _ *http.Request) {
	writeJSON(w, http.StatusOK, map[string]any{
		"status":  "ok",
		"version": core.FolioVersion,
		"ai":      s.ai != nil,
	})
}

func decode(w http.ResponseWriter, r *http.Request, v any) error {
	r.Body = http.MaxBytesReader(w, r.Body, maxRequestBody)
	if err := json.NewDecoder(r.Body).Decode(v); err != nil {
		return errors.New("malformed JSON body")
	}
	return nil
}

func writeJSON(w http.ResponseWriter, status int, v any) {
	w.Header().Set("Content-Type", "application/json")
	w.WriteHeader(status)
	_ = json.NewEncoder(w).Encode(v)
}
