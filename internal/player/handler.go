package player

import (
	"net/http"

	"github.com/dan-burt/padelbook1/internal/api"
	"github.com/dan-burt/padelbook1/internal/logger"

	"github.com/gin-gonic/gin"
)

type Handler struct {
	repo Repository
}

func NewHandler(repo Repository) *Handler {
	return &Handler{repo: repo}
}

// @Summary      List players
// @Description  Known players, for name autocomplete in the roster editor.
// @Tags         players
// @Produce      json
// @Success      200 {array} player.Player
// @Failure      500 {object} api.ErrorResponse
// @Router       /players [get]
func (h *Handler) ListPlayers(c *gin.Context) {
	players, err := h.repo.List(c.Request.Context())
	if err != nil {
		logger.Error("Failed to list players", "error", err)
		c.JSON(http.StatusInternalServerError, api.ErrorResponse{Error: "Failed to fetch players"})
		return
	}

	c.JSON(http.StatusOK, players)
}
