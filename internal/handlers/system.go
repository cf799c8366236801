package handlers

import (
	"errors"
	"net/http"

	"mine_evacuation/internal/service"

	"github.com/gin-gonic/gin"
)

const (
	statusOK        = "ok"
	statusActivated = "activated"

	errGetState = "failed to load state"
	errActivate = "failed to activate system"
)

// @Summary      Health check
// @Tags         system
// @Produce      json
// @Success      200  {object}  map[string]string
// @Router       /health [get]
func (h *Handler) health(c *gin.Context) {
	c.JSON(http.StatusOK, gin.H{"status": statusOK})
}

// @Summary      Current panel state
// @Description  Latest sensor snapshot, verdict, LCD text and actuator state.
// @Tags         system
// @Produce      json
// @Success      200  {object}  models.SystemState
// @Failure      401  {object}  map[string]string
// @Failure      500  {object}  map[string]string
// @Router       /api/v1/system/state [get]
// @Security     BearerAuth
func (h *Handler) getState(c *gin.Context) {
	st, err := h.services.Monitoring.GetState(c.Request.Context())
	if err != nil {
		h.logAndJSONError(c, http.StatusInternalServerError, errGetState, "get_state_failed", err)
		return
	}
	c.JSON(http.StatusOK, st)
}

// @Summary      Activate the system
// @Description  Presses the panel's start button remotely. Only the first press has an effect.
// @Tags         system
// @Produce      json
// @Success      202  {object}  map[string]string
// @Failure      401  {object}  map[string]string
// @Failure      409  {object}  map[string]string
// @Failure      500  {object}  map[string]string
// @Router       /api/v1/system/activate [post]
// @Security     BearerAuth
func (h *Handler) activate(c *gin.Context) {
	err := h.services.Activation.Activate(c.Request.Context())
	switch {
	case errors.Is(err, service.ErrAlreadyActivated):
		c.JSON(http.StatusConflict, gin.H{"error": err.Error()})
		return
	case err != nil:
		h.logAndJSONError(c, http.StatusInternalServerError, errActivate, "activate_failed", err)
		return
	}
	if h.log != nil {
		uid, _ := c.Get(ctxUserID)
		h.log.Infow("activation_requested", "user_id", uid)
	}
	c.JSON(http.StatusAccepted, gin.H{"status": statusActivated})
}
