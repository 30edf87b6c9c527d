package api

import (
	"fmt"
	"net/http"

	"github.com/gin-gonic/gin"
	"go.uber.org/zap"
)

// GetMessagesFromUser handles GET /messages/user/{username}: returns every
// message the named author has submitted, in store order, unpaginated.
func (h *Handlers) GetMessagesFromUser(c *gin.Context) {
	if c.Request.Method != http.MethodGet {
		c.JSON(http.StatusMethodNotAllowed, statusBody{
			Message: fmt.Sprintf("getMessagesFromUser only accepts GET method, you tried: %s method.", c.Request.Method),
		})
		return
	}

	username := c.Param("username")
	if username == "" {
		c.JSON(http.StatusUnprocessableEntity, statusBody{Message: "Username cannot be empty."})
		return
	}

	msgs, err := h.store.ByAuthor(c.Request.Context(), username)
	if err != nil {
		h.logger.Error("get messages from user: query failed",
			zap.String("username", username), zap.Error(err))
		c.JSON(http.StatusInternalServerError, statusBody{Message: "Error while searching messages from user."})
		return
	}

	body := itemsBody{Success: true, Items: msgs}
	c.JSON(http.StatusOK, body)
	h.logResponse(c, http.StatusOK, body)
}
