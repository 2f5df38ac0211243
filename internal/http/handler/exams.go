package handler

import (
	"github.com/gofiber/fiber/v2"

	"studyhub/internal/service"
)

const examNotFound = "exam not found"

// ListExams supports subject, exam_year, exam_type and search filters plus limit & offset.
// @Summary List exams
// @Tags exams
// @Produce json
// @Param subject query string false "Subject filter"
// @Param exam_year query string false "Exam year"
// @Param exam_type query string false "Exam type"
// @Param search query string false "Matches title, subject or description"
// @Param limit query int false "Page size" default(100)
// @Param offset query int false "Rows to skip" default(0)
// @Success 200 {array} model.Exam
// @Failure 400 {object} errorPayload
// @Failure 500 {object} errorPayload
// @Router /exams [get]
func ListExams(svc service.ExamService) fiber.Handler {
	return func(c *fiber.Ctx) error {
		limit, offset, ok, err := pagination(c, 100)
		if !ok {
			return err
		}
		items, err := svc.List(c.UserContext(), service.ExamQuery{
			Subject:  c.Query("subject"),
			ExamYear: c.Query("exam_year"),
			ExamType: c.Query("exam_type"),
			Search:   c.Query("search"),
			Limit:    limit,
			Offset:   offset,
		})
		if err != nil {
			return writeServiceError(c, err, examNotFound)
		}
		return c.JSON(items)
	}
}

// @Summary Create an exam
// @Tags exams
// @Accept json
// @Produce json
// @Param body body service.ExamInput true "Exam"
// @Success 201 {object} model.Exam
// @Failure 400 {object} errorPayload
// @Failure 415 {object} errorPayload
// @Failure 500 {object} errorPayload
// @Router /exams [post]
func CreateExam(svc service.ExamService) fiber.Handler {
	return func(c *fiber.Ctx) error {
		var in service.ExamInput
		if ok, err := bindJSON(c, &in); !ok {
			return err
		}
		exam, err := svc.Create(c.UserContext(), in)
		if err != nil {
			return writeServiceError(c, err, examNotFound)
		}
		return c.Status(fiber.StatusCreated).JSON(exam)
	}
}

// @Summary Get an exam
// @Tags exams
// @Produce json
// @Param id path string true "Exam ID (UUID)"
// @Success 200 {object} model.Exam
// @Failure 400 {object} errorPayload
// @Failure 404 {object} errorPayload
// @Failure 500 {object} errorPayload
// @Router /exams/{id} [get]
func GetExam(svc service.ExamService) fiber.Handler {
	return func(c *fiber.Ctx) error {
		id, ok, err := uuidParam(c, "id")
		if !ok {
			return err
		}
		exam, err := svc.Get(c.UserContext(), id)
		if err != nil {
			return writeServiceError(c, err, examNotFound)
		}
		return c.JSON(exam)
	}
}

// @Summary Update an exam
// @Tags exams
// @Accept json
// @Produce json
// @Param id path string true "Exam ID (UUID)"
// @Param body body service.ExamPatch true "Fields to change"
// @Success 200 {object} model.Exam
// @Failure 400 {object} errorPayload
// @Failure 404 {object} errorPayload
// @Failure 415 {object} errorPayload
// @Failure 500 {object} errorPayload
// @Router /exams/{id} [patch]
func UpdateExam(svc service.ExamService) fiber.Handler {
	return func(c *fiber.Ctx) error {
		id, ok, err := uuidParam(c, "id")
		if !ok {
			return err
		}
		var patch service.ExamPatch
		if ok, err := bindJSON(c, &patch); !ok {
			return err
		}
		exam, err := svc.Update(c.UserContext(), id, patch)
		if err != nil {
			return writeServiceError(c, err, examNotFound)
		}
		return c.JSON(exam)
	}
}

// @Summary Delete an exam with its solutions
// @Tags exams
// @Param id path string true "Exam ID (UUID)"
// @Success 204
// @Failure 400 {object} errorPayload
// @Failure 404 {object} errorPayload
// @Failure 500 {object} errorPayload
// @Router /exams/{id} [delete]
func DeleteExam(svc service.ExamService) fiber.Handler {
	return func(c *fiber.Ctx) error {
		id, ok, err := uuidParam(c, "id")
		if !ok {
			return err
		}
		if err := svc.Delete(c.UserContext(), id); err != nil {
			return writeServiceError(c, err, examNotFound)
		}
		return c.SendStatus(fiber.StatusNoContent)
	}
}

// @Summary List exam solutions
// @Tags exams
// @Produce json
// @Param id path string true "Exam ID (UUID)"
// @Success 200 {array} model.ExamSolution
// @Failure 400 {object} errorPayload
// @Failure 404 {object} errorPayload
// @Failure 500 {object} errorPayload
// @Router /exams/{id}/solutions [get]
func ListSolutions(svc service.ExamService) fiber.Handler {
	return func(c *fiber.Ctx) error {
		id, ok, err := uuidParam(c, "id")
		if !ok {
			return err
		}
		items, err := svc.Solutions(c.UserContext(), id)
		if err != nil {
			return writeServiceError(c, err, examNotFound)
		}
		return c.JSON(items)
	}
}

// @Summary Add a solution
// @Tags exams
// @Accept json
// @Produce json
// @Param id path string true "Exam ID (UUID)"
// @Param body body service.SolutionInput true "Solution"
// @Success 201 {object} model.ExamSolution
// @Failure 400 {object} errorPayload
// @Failure 404 {object} errorPayload
// @Failure 409 {object} errorPayload
// @Failure 415 {object} errorPayload
// @Failure 500 {object} errorPayload
// @Router /exams/{id}/solutions [post]
func AddSolution(svc service.ExamService) fiber.Handler {
	return func(c *fiber.Ctx) error {
		id, ok, err := uuidParam(c, "id")
		if !ok {
			return err
		}
		var in service.SolutionInput
		if ok, err := bindJSON(c, &in); !ok {
			return err
		}
		sol, err := svc.AddSolution(c.UserContext(), id, in)
		if err != nil {
			return writeServiceError(c, err, examNotFound)
		}
		return c.Status(fiber.StatusCreated).JSON(sol)
	}
}

// @Summary Exam catalog statistics
// @Tags exams
// @Produce json
// @Success 200 {object} model.ExamStatistics
// @Failure 500 {object} errorPayload
// @Router /exams/statistics [get]
func ExamStatistics(svc service.ExamService) fiber.Handler {
	return func(c *fiber.Ctx) error {
		st, err := svc.Statistics(c.UserContext())
		if err != nil {
			return writeServiceError(c, err, examNotFound)
		}
		return c.JSON(st)
	}
}
