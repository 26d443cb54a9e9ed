package handlers

import (
	"net/http"

	"github.com/gin-gonic/gin"
	"go.uber.org/zap"

	"github.com/mamadbah2/resaletracker/internal/domain/models"
	"github.com/mamadbah2/resaletracker/internal/service/commands"
)

// CommandHandler accepts chat style text commands, for instance relayed by
// a messaging bot.
type CommandHandler struct {
	dispatcher commands.Dispatcher
	logger     *zap.Logger
}

// NewCommandHandler constructs the HTTP handler adapter.
func NewCommandHandler(dispatcher commands.Dispatcher, logger *zap.Logger) *CommandHandler {
	if logger == nil {
		logger = zap.NewNop()
	}
	return &CommandHandler{dispatcher: dispatcher, logger: logger}
}

type commandRequest struct {
	Text   string `json:"text" binding:"required"`
	Sender string `json:"sender"`
}

// Receive parses the message and replies with the command outcome.
func (h *CommandHandler) Receive(c *gin.Context) {
	var req commandRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		h.logger.Warn("invalid command payload", zap.Error(err))
		c.JSON(http.StatusBadRequest, gin.H{"error": "invalid payload"})
		return
	}

	cmd := models.ParseCommand(req.Text)
	h.logger.Info("parsed inbound command",
		zap.String("from", req.Sender),
		zap.String("command", string(cmd.Type)))

	reply, err := h.dispatcher.HandleCommand(c.Request.Context(), cmd, req.Sender)
	if err != nil {
		writeError(c, h.logger, err)
		return
	}
	c.JSON(http.StatusOK, gin.H{"command": cmd.Type, "reply": reply})
}
