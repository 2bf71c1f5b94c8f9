package handler

import (
	"strconv"
	"strings"
	"time"

	"github.com/gin-gonic/gin"

	"github.com/noah-isme/sma-reporting-api/internal/middleware"
	"github.com/noah-isme/sma-reporting-api/internal/models"
	appErrors "github.com/noah-isme/sma-reporting-api/pkg/errors"
)

const dateLayout = "2006-01-02"

func callerFromContext(c *gin.Context) (models.Caller, error) {
	claims := middleware.Claims(c)
	if claims == nil {
		return models.Caller{}, appErrors.ErrUnauthorized
	}
	return claims.Caller(), nil
}

// resolveSelf maps the "me" alias onto the caller id.
func resolveSelf(id string, caller models.Caller) string {
	id = strings.TrimSpace(id)
	if strings.EqualFold(id, "me") {
		return caller.ID
	}
	return id
}

func queryDate(c *gin.Context, key string) (*time.Time, error) {
	raw := strings.TrimSpace(c.Query(key))
	if raw == "" {
		return nil, nil
	}
	parsed, err := time.ParseInLocation(dateLayout, raw, time.UTC)
	if err != nil {
		return nil, appErrors.Clone(appErrors.ErrValidation, key+" must be formatted as YYYY-MM-DD")
	}
	return &parsed, nil
}

func queryDateRange(c *gin.Context) (*time.Time, *time.Time, error) {
	from, err := queryDate(c, "from")
	if err != nil {
		return nil, nil, err
	}
	to, err := queryDate(c, "to")
	if err != nil {
		return nil, nil, err
	}
	return from, to, nil
}

func queryInt(c *gin.Context, key string) (int, error) {
	raw := strings.TrimSpace(c.Query(key))
	if raw == "" {
		return 0, nil
	}
	value, err := strconv.Atoi(raw)
	if err != nil {
		return 0, appErrors.Clone(appErrors.ErrValidation, key+" must be a number")
	}
	return value, nil
}
