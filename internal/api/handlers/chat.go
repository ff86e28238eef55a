package handlers

import (
	"net/http"

	"github.com/chainsight/site-api/internal/chat"
	"github.com/gin-gonic/gin"
)

type ChatRequest struct {
	Message string `json:"message"`
	NewChat bool   `json:"new_chat"`
}

// Chat relays a message to the conversational service. The response is
// always HTTP 200; upstream failures surface as the relay's fixed
// fallback text.
func (h *Handler) Chat(c *gin.Context) {
	var req ChatRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": err.Error()})
		return
	}

	if !req.NewChat && req.Message == "" {
		c.JSON(http.StatusBadRequest, gin.H{"error": "Message is required"})
		return
	}

	var reply chat.Reply
	if req.NewChat {
		reply = h.relay.Initialize(c.Request.Context())
	} else {
		reply = h.relay.Send(c.Request.Context(), req.Message)
	}

	h.metrics.RecordChatMessage(reply.Status)
	c.JSON(http.StatusOK, reply)
}
