package handler

import (
	"github.com/gofiber/fiber/v2"

	"studyhub/internal/service"
)

const sessionNotFound = "chat session not found"

// SendMessage stores the user message with its canned reply. An omitted session_id starts a new session.
// @Summary Send a chat message
// @Tags chat
// @Accept json
// @Produce json
// @Param body body service.ChatRequest true "Message"
// @Success 200 {object} service.ChatReply
// @Failure 400 {object} errorPayload
// @Failure 404 {object} errorPayload
// @Failure 415 {object} errorPayload
// @Failure 500 {object} errorPayload
// @Router /chat/messages [post]
func SendMessage(svc service.ChatService) fiber.Handler {
	return func(c *fiber.Ctx) error {
		var req service.ChatRequest
		if ok, err := bindJSON(c, &req); !ok {
			return err
		}
		reply, err := svc.Send(c.UserContext(), req)
		if err != nil {
			return writeServiceError(c, err, sessionNotFound)
		}
		return c.JSON(reply)
	}
}

// @Summary List chat sessions
// @Tags chat
// @Produce json
// @Success 200 {array} model.ChatSession
// @Failure 500 {object} errorPayload
// @Router /chat/sessions [get]
func ListSessions(svc service.ChatService) fiber.Handler {
	return func(c *fiber.Ctx) error {
		items, err := svc.Sessions(c.UserContext())
		if err != nil {
			return writeServiceError(c, err, sessionNotFound)
		}
		return c.JSON(items)
	}
}

// @Summary Messages of a session
// @Tags chat
// @Produce json
// @Param id path string true "Chat session ID"
// @Success 200 {array} model.ChatMessage
// @Failure 404 {object} errorPayload
// @Failure 500 {object} errorPayload
// @Router /chat/sessions/{id}/messages [get]
func SessionMessages(svc service.ChatService) fiber.Handler {
	return func(c *fiber.Ctx) error {
		items, err := svc.History(c.UserContext(), c.Params("id"))
		if err != nil {
			return writeServiceError(c, err, sessionNotFound)
		}
		return c.JSON(items)
	}
}

// @Summary Delete a chat session
// @Tags chat
// @Param id path string true "Chat session ID"
// @Success 204
// @Failure 404 {object} errorPayload
// @Failure 500 {object} errorPayload
// @Router /chat/sessions/{id} [delete]
func DeleteSession(svc service.ChatService) fiber.Handler {
	return func(c *fiber.Ctx) error {
		if err := svc.DeleteSession(c.UserContext(), c.Params("id")); err != nil {
			return writeServiceError(c, err, sessionNotFound)
		}
		return c.SendStatus(fiber.StatusNoContent)
	}
}
