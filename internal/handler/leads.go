// Copyright (c) 2026 Daniel Marchetti
// SPDX-License-Identifier: GPL-3.0-or-later

package handler

import (
	"context"
	"encoding/json"
	"io"
	"log/slog"
	"net/http"
	"strings"
	"time"

	"github.com/google/uuid"

	"github.com/dmarchetti/firmsite-go/internal/relay"
)

const maxLeadBody = 64 * 1024

// relayTimeout bounds the whole background delivery including retries.
const relayTimeout = 2 * time.Minute

// LeadHandler accepts the contact form and chat widget submissions and
// relays them to the external automation endpoints. Delivery happens in
// the background; the visitor gets an immediate acknowledgement.
type LeadHandler struct {
	relay          *relay.Relay
	leadWebhookURL string
	chatWebhookURL string
	logger         *slog.Logger

	// delivered, when set, receives each finished background delivery.
	// Tests use it to wait for the relay.
	delivered chan<- string
}

// NewLeadHandler creates the lead/chat relay handler.
func NewLeadHandler(r *relay.Relay, leadWebhookURL, chatWebhookURL string, logger *slog.Logger) *LeadHandler {
	return &LeadHandler{
		relay:          r,
		leadWebhookURL: leadWebhookURL,
		chatWebhookURL: chatWebhookURL,
		logger:         logger,
	}
}

type leadSubmission struct {
	Name    string `json:"name"`
	Email   string `json:"email"`
	Phone   string `json:"phone"`
	Message string `json:"message"`
	Page    string `json:"page"`
}

type chatMessage struct {
	Message   string `json:"message"`
	Email     string `json:"email"`
	SessionID string `json:"session_id"`
	Page      string `json:"page"`
}

// Lead handles POST /api/lead.
func (h *LeadHandler) Lead(w http.ResponseWriter, r *http.Request) {
	var sub leadSubmission
	if !decodeSubmission(w, r, &sub, func(form map[string]string) {
		sub.Name = form["name"]
		sub.Email = form["email"]
		sub.Phone = form["phone"]
		sub.Message = form["message"]
		sub.Page = form["page"]
	}) {
		return
	}

	if sub.Email == "" && sub.Phone == "" {
		writeJSONError(w, http.StatusBadRequest, "an email address or phone number is required")
		return
	}
	if sub.Email != "" && !strings.Contains(sub.Email, "@") {
		writeJSONError(w, http.StatusBadRequest, "invalid email address")
		return
	}

	referenceID := uuid.NewString()
	h.deliver("lead", h.leadWebhookURL, referenceID, map[string]any{
		"reference_id": referenceID,
		"received_at":  time.Now().UTC().Format(time.RFC3339),
		"name":         sub.Name,
		"email":        sub.Email,
		"phone":        sub.Phone,
		"message":      sub.Message,
		"page":         sub.Page,
	})

	writeJSON(w, http.StatusOK, map[string]any{"ok": true, "reference_id": referenceID})
}

// Chat handles POST /api/chat.
func (h *LeadHandler) Chat(w http.ResponseWriter, r *http.Request) {
	var msg chatMessage
	if !decodeSubmission(w, r, &msg, func(form map[string]string) {
		msg.Message = form["message"]
		msg.Email = form["email"]
		msg.SessionID = form["session_id"]
		msg.Page = form["page"]
	}) {
		return
	}

	if strings.TrimSpace(msg.Message) == "" {
		writeJSONError(w, http.StatusBadRequest, "message is required")
		return
	}

	referenceID := uuid.NewString()
	h.deliver("chat", h.chatWebhookURL, referenceID, map[string]any{
		"reference_id": referenceID,
		"received_at":  time.Now().UTC().Format(time.RFC3339),
		"message":      msg.Message,
		"email":        msg.Email,
		"session_id":   msg.SessionID,
		"page":         msg.Page,
	})

	writeJSON(w, http.StatusOK, map[string]any{"ok": true, "reference_id": referenceID})
}

// deliver relays the payload in the background on a context detached
// from the request, so a slow automation endpoint never blocks the
// visitor's response.
func (h *LeadHandler) deliver(event, url, referenceID string, payload map[string]any) {
	if url == "" {
		h.logger.Warn("no webhook configured, submission dropped",
			"event", event, "reference_id", referenceID)
		return
	}
	go func() {
		ctx, cancel := context.WithTimeout(context.Background(), relayTimeout)
		defer cancel()
		if err := h.relay.Deliver(ctx, url, event, referenceID, payload); err != nil {
			h.logger.Error("relay delivery failed",
				"event", event, "reference_id", referenceID, "error", err)
		}
		if h.delivered != nil {
			h.delivered <- referenceID
		}
	}()
}

// decodeSubmission accepts either a JSON body or a classic form post.
func decodeSubmission(w http.ResponseWriter, r *http.Request, out any, fromForm func(map[string]string)) bool {
	contentType := r.Header.Get("Content-Type")

	if strings.HasPrefix(contentType, "application/json") {
		body, err := io.ReadAll(io.LimitReader(r.Body, maxLeadBody))
		if err != nil || len(body) == 0 {
			writeJSONError(w, http.StatusBadRequest, "empty body")
			return false
		}
		if err := json.Unmarshal(body, out); err != nil {
			writeJSONError(w, http.StatusBadRequest, "malformed JSON body")
			return false
		}
		return true
	}

	if err := r.ParseForm(); err != nil {
		writeJSONError(w, http.StatusBadRequest, "invalid form data")
		return false
	}
	form := make(map[string]string, len(r.PostForm))
	for key := range r.PostForm {
		form[key] = r.PostForm.Get(key)
	}
	fromForm(form)
	return true
}
