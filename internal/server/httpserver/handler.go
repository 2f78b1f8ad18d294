package httpserver

import (
	"net/http"

	"github.com/dmitrijs2005/gameauth/internal/common"
	"github.com/dmitrijs2005/gameauth/internal/server/api"
	"github.com/gin-gonic/gin"
)

// Handler adapts the action dispatcher to gin.
type Handler struct {
	dispatcher *api.Dispatcher
}

func NewHandler(d *api.Dispatcher) *Handler {
	return &Handler{dispatcher: d}
}

// Action handles POST / with an action envelope body.
func (h *Handler) Action(c *gin.Context) {
	var env api.Envelope
	if err := c.ShouldBindJSON(&env); err != nil {
		status, resp := api.Failure(api.InvalidBody())
		c.JSON(status, resp)
		return
	}

	status, resp := h.dispatcher.Handle(c.Request.Context(), env, c.GetHeader(common.UserIDHeaderName))
	c.JSON(status, resp)
}

// MethodNotAllowed answers methods other than POST and OPTIONS.
func (h *Handler) MethodNotAllowed(c *gin.Context) {
	status, resp := api.Failure(common.ErrorUnsupportedAction)
	c.JSON(status, resp)
}

// NotFound answers unknown paths.
func (h *Handler) NotFound(c *gin.Context) {
	c.JSON(http.StatusNotFound, api.Response{Success: false, Error: "Not found"})
}

// Health reports liveness.
func (h *Handler) Health(c *gin.Context) {
	c.JSON(http.StatusOK, gin.H{"status": "ok"})
}
