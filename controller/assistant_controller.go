package controller

import (
	"encoding/json"
	"io"
	"net/http"

	"go.uber.org/zap"

	"mckart-backend/apperr"
	"mckart-backend/model"
	"mckart-backend/usecase"
)

type AssistantController struct {
	assistant *usecase.AssistantUsecase
	log       *zap.Logger
}

func NewAssistantController(assistant *usecase.AssistantUsecase, log *zap.Logger) *AssistantController {
	return &AssistantController{assistant: assistant, log: log}
}

type turnRequest struct {
	Message string       `json:"message"`
	History []model.Turn `json:"history"`
}

type turnResponse struct {
	Reply string `json:"reply"`
}

// HandleTurn implements POST /assistant/turn. Server-side failures
// additionally carry the canned fallback reply so the chat UI has
// something to render instead of hanging.
func (c *AssistantController) HandleTurn(w http.ResponseWriter, r *http.Request) {
	if r.Method != http.MethodPost {
		methodNotAllowed(w)
		return
	}

	var req turnRequest
	if err := json.NewDecoder(io.LimitReader(r.Body, 1<<20)).Decode(&req); err != nil {
		writeError(w, c.log, apperr.Validation("invalid JSON body"))
		return
	}

	reply, err := c.assistant.Converse(r.Context(), req.Message, req.History)
	if err != nil {
		kind := apperr.KindOf(err)
		if kind == apperr.KindConfiguration || kind == apperr.KindUpstream {
			c.log.Error("assistant turn failed", zap.Error(err))
			writeJSON(w, apperr.HTTPStatus(err), map[string]any{
				"error": apperr.UserMessage(err),
				"kind":  kind,
				"reply": usecase.FallbackReply,
			})
			return
		}
		writeError(w, c.log, err)
		return
	}
	writeJSON(w, http.StatusOK, turnResponse{Reply: reply})
}
