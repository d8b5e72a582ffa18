package http

import (
	"errors"
	"net/http"
	"regexp"
	"strconv"
	"strings"
	"time"

	"github.com/gin-gonic/gin"
	"github.com/google/uuid"
	"github.com/rs/zerolog"

	"github.com/ricci/insurance-api/internal/repository"
	"github.com/ricci/insurance-api/internal/service"
)

// 079 123 45 67 || 0791234567 || +41 79 123 45 67 || +41791234567
var swissPhonePattern = regexp.MustCompile(`^(\+41\s?|0)(\d{2})\s?\d{3}\s?\d{2}\s?\d{2}$`)

func validPhone(phone *string) bool {
	if phone == nil || *phone == "" {
		return true
	}
	return swissPhonePattern.MatchString(*phone)
}

func parseID(c *gin.Context) (uuid.UUID, bool) {
	id, err := uuid.Parse(strings.TrimSpace(c.Param("id")))
	if err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": "invalid id"})
		return uuid.Nil, false
	}
	return id, true
}

func parsePageSpec(c *gin.Context, defaultSortBy, defaultSortDir string, defaultSize int) repository.PageSpec {
	page, _ := strconv.Atoi(c.DefaultQuery("page", "0"))
	size, _ := strconv.Atoi(c.DefaultQuery("size", strconv.Itoa(defaultSize)))
	return repository.PageSpec{
		Page:    page,
		Size:    size,
		SortBy:  c.DefaultQuery("sortBy", defaultSortBy),
		SortDir: c.DefaultQuery("sortDir", defaultSortDir),
	}
}

func parseTimestamp(raw string) (time.Time, error) {
	raw = strings.TrimSpace(raw)
	layouts := []string{
		time.RFC3339,
		"2006-01-02T15:04:05",
		"2006-01-02",
	}
	for _, layout := range layouts {
		if parsed, err := time.Parse(layout, raw); err == nil {
			return parsed, nil
		}
	}
	return time.Time{}, errors.New("invalid timestamp")
}

func handleError(c *gin.Context, log zerolog.Logger, err error) {
	switch {
	case errors.Is(err, service.ErrClientNotFound), errors.Is(err, service.ErrContractNotFound):
		c.JSON(http.StatusNotFound, gin.H{"error": err.Error()})
	case errors.Is(err, service.ErrInvalidData):
		c.JSON(http.StatusBadRequest, gin.H{"error": err.Error()})
	default:
		log.Error().Err(err).Str("path", c.FullPath()).Msg("request failed")
		c.JSON(http.StatusInternalServerError, gin.H{"error": "internal error"})
	}
}
