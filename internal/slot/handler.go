package slot

import (
	"net/http"

	"github.com/gin-gonic/gin"
)

// @Summary      List bookable time slots
// @Tags         slots
// @Produce      json
// @Success      200 {array} slot.Slot
// @Router       /slots [get]
func ListSlots(c *gin.Context) {
	c.JSON(http.StatusOK, Grid())
}
