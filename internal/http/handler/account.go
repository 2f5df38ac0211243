package handler

import (
	"time"

	"github.com/gofiber/fiber/v2"

	"studyhub/internal/service"
)

const (
	userNotFound = "user not found"
	dateLayout   = "2006-01-02"
)

type activityRequest struct {
	// Date is a calendar day (YYYY-MM-DD). Empty means today.
	Date string `json:"date"`
}

// @Summary Get user settings
// @Tags account
// @Produce json
// @Param userID path string true "User ID"
// @Success 200 {object} model.UserSettings
// @Failure 400 {object} errorPayload
// @Failure 500 {object} errorPayload
// @Router /users/{userID}/settings [get]
func GetSettings(svc service.AccountService) fiber.Handler {
	return func(c *fiber.Ctx) error {
		s, err := svc.Settings(c.UserContext(), c.Params("userID"))
		if err != nil {
			return writeServiceError(c, err, userNotFound)
		}
		return c.JSON(s)
	}
}

// @Summary Update user settings
// @Tags account
// @Accept json
// @Produce json
// @Param userID path string true "User ID"
// @Param body body service.SettingsPatch true "Settings to change"
// @Success 200 {object} model.UserSettings
// @Failure 400 {object} errorPayload
// @Failure 415 {object} errorPayload
// @Failure 500 {object} errorPayload
// @Router /users/{userID}/settings [patch]
func UpdateSettings(svc service.AccountService) fiber.Handler {
	return func(c *fiber.Ctx) error {
		var patch service.SettingsPatch
		if ok, err := bindJSON(c, &patch); !ok {
			return err
		}
		s, err := svc.UpdateSettings(c.UserContext(), c.Params("userID"), patch)
		if err != nil {
			return writeServiceError(c, err, userNotFound)
		}
		return c.JSON(s)
	}
}

// @Summary Get the study streak
// @Tags account
// @Produce json
// @Param userID path string true "User ID"
// @Success 200 {object} model.StudyStreak
// @Failure 400 {object} errorPayload
// @Failure 500 {object} errorPayload
// @Router /users/{userID}/streak [get]
func GetStreak(svc service.AccountService) fiber.Handler {
	return func(c *fiber.Ctx) error {
		s, err := svc.Streak(c.UserContext(), c.Params("userID"))
		if err != nil {
			return writeServiceError(c, err, userNotFound)
		}
		return c.JSON(s)
	}
}

// RecordActivity registers study activity for the given date, or today in loc when no body is sent.
// @Summary Record study activity
// @Tags account
// @Accept json
// @Produce json
// @Param userID path string true "User ID"
// @Param body body activityRequest false "Activity date, defaults to today"
// @Success 200 {object} model.StudyStreak
// @Failure 400 {object} errorPayload
// @Failure 415 {object} errorPayload
// @Failure 500 {object} errorPayload
// @Router /users/{userID}/streak/activity [post]
func RecordActivity(svc service.AccountService, loc *time.Location) fiber.Handler {
	return func(c *fiber.Ctx) error {
		day := time.Now().In(loc)
		if len(c.Body()) > 0 {
			var req activityRequest
			if ok, err := bindJSON(c, &req); !ok {
				return err
			}
			if req.Date != "" {
				d, err := time.ParseInLocation(dateLayout, req.Date, loc)
				if err != nil {
					return writeError(c, fiber.StatusBadRequest, "INVALID_DATE", "date must be YYYY-MM-DD")
				}
				day = d
			}
		}
		s, err := svc.RecordStudy(c.UserContext(), c.Params("userID"), day)
		if err != nil {
			return writeServiceError(c, err, userNotFound)
		}
		return c.JSON(s)
	}
}
