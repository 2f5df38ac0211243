package handler

import (
	"strconv"
	"strings"

	"github.com/gofiber/fiber/v2"
	"github.com/google/uuid"
)

// pagination reads limit and offset query params. A zero limit lets the service apply its default.
// ok is false when a response has already been written.
func pagination(c *fiber.Ctx, defLimit int) (limit, offset int, ok bool, err error) {
	limit, perr := strconv.Atoi(c.Query("limit", strconv.Itoa(defLimit)))
	if perr != nil || limit < 0 {
		return 0, 0, false, writeError(c, fiber.StatusBadRequest, "INVALID_LIMIT", "invalid limit")
	}
	offset, perr = strconv.Atoi(c.Query("offset", "0"))
	if perr != nil || offset < 0 {
		return 0, 0, false, writeError(c, fiber.StatusBadRequest, "INVALID_OFFSET", "invalid offset")
	}
	return limit, offset, true, nil
}

// uuidParam returns the named path param when it is a valid UUID.
func uuidParam(c *fiber.Ctx, name string) (string, bool, error) {
	id := c.Params(name)
	if _, err := uuid.Parse(id); err != nil {
		return "", false, writeError(c, fiber.StatusBadRequest, "INVALID_ID", "invalid id format")
	}
	return id, true, nil
}

// bindJSON decodes a JSON body into v.
func bindJSON(c *fiber.Ctx, v any) (bool, error) {
	ct := string(c.Request().Header.ContentType())
	if !strings.HasPrefix(ct, fiber.MIMEApplicationJSON) {
		return false, writeError(c, fiber.StatusUnsupportedMediaType, "UNSUPPORTED_MEDIA_TYPE", "content type must be application/json")
	}
	if err := c.BodyParser(v); err != nil {
		return false, writeError(c, fiber.StatusBadRequest, "INVALID_BODY", "invalid request body")
	}
	return true, nil
}
