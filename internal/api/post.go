package api

import (
	"bytes"
	"encoding/json"
	"errors"
	"fmt"
	"net/http"

	"github.com/gin-gonic/gin"
	"github.com/zulandar/postbox/internal/models"
	"go.uber.org/zap"
)

// PostMessage handles POST /messages: validate, assign identity and
// timestamp, write to the store, then publish to the channel. The write
// always completes before the publish is attempted; a publish failure
// leaves the message stored (at-least-stored, best-effort-notified).
func (h *Handlers) PostMessage(c *gin.Context) {
	if c.Request.Method != http.MethodPost {
		c.JSON(http.StatusMethodNotAllowed, statusBody{
			Message: fmt.Sprintf("postMessage only accepts POST method, you tried: %s method.", c.Request.Method),
		})
		return
	}

	raw, err := c.GetRawData()
	if err != nil || len(bytes.TrimSpace(raw)) == 0 {
		c.JSON(http.StatusUnprocessableEntity, statusBody{Message: "Invalid request body."})
		return
	}

	// Malformed JSON is treated the same as a missing body: a client error,
	// never an unhandled fault.
	var req models.NewMessageRequest
	if err := json.Unmarshal(raw, &req); err != nil {
		c.JSON(http.StatusUnprocessableEntity, statusBody{Message: "Invalid request body."})
		return
	}

	if err := req.Validate(); err != nil {
		var mfe *models.MissingFieldError
		if errors.As(err, &mfe) {
			c.JSON(http.StatusUnprocessableEntity, statusBody{Message: "Invalid field: " + mfe.Field})
			return
		}
		c.JSON(http.StatusUnprocessableEntity, statusBody{Message: "Invalid request body."})
		return
	}

	msg := models.NewMessage(req)
	ctx := c.Request.Context()

	if err := h.store.Put(ctx, msg); err != nil {
		h.logger.Error("post message: store write failed",
			zap.String("id", msg.ID), zap.Error(err))
		c.JSON(http.StatusInternalServerError, statusBody{Message: "Error while posting message."})
		return
	}

	payload, err := json.Marshal(msg)
	if err == nil {
		err = h.pub.Publish(ctx, h.topic, payload)
	}
	if err != nil {
		h.logger.Error("post message: publish failed",
			zap.String("id", msg.ID), zap.String("topic", h.topic), zap.Error(err))
		c.JSON(http.StatusInternalServerError, statusBody{Message: "Error while posting message."})
		return
	}

	body := statusBody{Success: true, Message: "Message posted successfully."}
	c.JSON(http.StatusOK, body)
	h.logResponse(c, http.StatusOK, body)
}
