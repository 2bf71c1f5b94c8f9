package response

import (
	"errors"
	"net/http"
	"net/http/httptest"
	"testing"

	"github.com/gin-gonic/gin"
	"github.com/stretchr/testify/assert"

	appErrors "github.com/noah-isme/sma-reporting-api/pkg/errors"
)

func newContext() (*gin.Context, *httptest.ResponseRecorder) {
	gin.SetMode(gin.TestMode)
	w := httptest.NewRecorder()
	c, _ := gin.CreateTestContext(w)
	c.Request = httptest.NewRequest(http.MethodGet, "/", nil)
	return c, w
}

func TestJSON(t *testing.T) {
	c, w := newContext()
	JSON(c, http.StatusOK, gin.H{"ok": true}, map[string]interface{}{"count": 1})

	assert.Equal(t, http.StatusOK, w.Code)
	assert.Equal(t, "no-store", w.Header().Get("Cache-Control"))
	assert.JSONEq(t, `{"data":{"ok":true},"meta":{"count":1}}`, w.Body.String())
}

func TestErrorNormalisesUnknownErrors(t *testing.T) {
	c, w := newContext()
	Error(c, errors.New("db exploded"))

	assert.Equal(t, http.StatusInternalServerError, w.Code)
	assert.Contains(t, w.Body.String(), `"code":"INTERNAL_ERROR"`)
	assert.NotContains(t, w.Body.String(), "db exploded")
	assert.Len(t, c.Errors, 1)

	c, w = newContext()
	Error(c, appErrors.Clone(appErrors.ErrNotFound, "student not found"))
	assert.Equal(t, http.StatusNotFound, w.Code)
	assert.Contains(t, w.Body.String(), "student not found")
}

func TestFile(t *testing.T) {
	c, w := newContext()
	File(c, "tasks.csv", "text/csv", []byte("a,b\n"))

	assert.Equal(t, http.StatusOK, w.Code)
	assert.Equal(t, `attachment; filename="tasks.csv"`, w.Header().Get("Content-Disposition"))
	assert.Equal(t, "a,b\n", w.Body.String())
}
