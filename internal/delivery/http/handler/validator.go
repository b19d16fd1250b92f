package handler

import (
	"strconv"

	"air-quality-dashboard/internal/telemetry"
	appErrors "air-quality-dashboard/pkg/errors"

	"github.com/gin-gonic/gin"
	"github.com/go-playground/validator/v10"
)

var validate = validator.New()

// HistoryQuery carries the day-count window for historical series.
type HistoryQuery struct {
	Days int `validate:"gte=0,lte=365"`
}

func bindHistoryQuery(c *gin.Context) (HistoryQuery, error) {
	query := HistoryQuery{Days: telemetry.DefaultHistoryDays}

	if raw := c.Query("days"); raw != "" {
		days, err := strconv.Atoi(raw)
		if err != nil {
			return query, appErrors.NewAppError(
				appErrors.CodeInvalidInput,
				"days must be an integer",
				appErrors.ErrInvalidInput,
			)
		}
		query.Days = days
	}

	if err := validate.Struct(&query); err != nil {
		return query, err
	}
	return query, nil
}
