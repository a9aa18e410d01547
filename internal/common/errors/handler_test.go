// internal/common/errors/handler_test.go
package errors

import (
	"errors"
	"net/http"
	"net/http/httptest"
	"testing"

	"github.com/gin-gonic/gin"
	"github.com/stretchr/testify/assert"
)

type captureLogger struct {
	warns  int
	errors int
}

func (l *captureLogger) Error(msg string, fields map[string]interface{}) { l.errors++ }
func (l *captureLogger) Warn(msg string, fields map[string]interface{})  { l.warns++ }

func respondTo(t *testing.T, err error) (*httptest.ResponseRecorder, *captureLogger) {
	t.Helper()
	gin.SetMode(gin.TestMode)

	log := &captureLogger{}
	rec := httptest.NewRecorder()
	c, _ := gin.CreateTestContext(rec)
	c.Request = httptest.NewRequest(http.MethodGet, "/deals/deal-9/score", nil)

	NewErrorHandler(log).Respond(c, err)
	return rec, log
}

func TestErrorHandler_ClientErrorWarns(t *testing.T) {
	rec, log := respondTo(t, NewScoreNotFoundError("deal-9"))

	assert.Equal(t, http.StatusNotFound, rec.Code)
	assert.Contains(t, rec.Body.String(), "SCORE_NOT_FOUND")
	assert.Equal(t, 1, log.warns)
	assert.Equal(t, 0, log.errors)
}

func TestErrorHandler_ServerErrorLogsAtError(t *testing.T) {
	rec, log := respondTo(t, NewDatabaseConnectionFailedError(errors.New("refused")))

	assert.Equal(t, http.StatusInternalServerError, rec.Code)
	assert.Equal(t, 1, log.errors)
}

func TestErrorHandler_UnknownErrorBecomesInternal(t *testing.T) {
	rec, _ := respondTo(t, errors.New("plain failure"))

	assert.Equal(t, http.StatusInternalServerError, rec.Code)
}
