// internal/server/respond.go
package server

import (
	"net/http"

	"github.com/gin-gonic/gin"

	stderrors "chatnil/internal/common/errors"
	"chatnil/internal/common/logger"
)

// respondError normalizes err, logs it, and writes the mapped error
// envelope. Unknown errors become opaque 500s.
func respondError(c *gin.Context, log logger.Logger, err error) {
	stderrors.NewErrorHandler(log).Respond(c, err)
}

func respondOK(c *gin.Context, payload interface{}) {
	c.JSON(http.StatusOK, payload)
}

func respondCreated(c *gin.Context, payload interface{}) {
	c.JSON(http.StatusCreated, payload)
}
