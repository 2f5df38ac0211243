package model

import "time"

// Exam is a past exam paper in the catalog. It owns its solutions.
type Exam struct {
	ID          string    `json:"id"`
	Title       string    `json:"title"`
	Subject     string    `json:"subject"`
	ExamYear    string    `json:"exam_year"`
	ExamType    string    `json:"exam_type"`
	Description *string   `json:"description,omitempty"`
	FileURL     *string   `json:"file_url,omitempty"`
	CreatedAt   time.Time `json:"created_at"`
	UpdatedAt   time.Time `json:"updated_at"`
}

// ExamSolution is the worked answer to one question of an exam.
type ExamSolution struct {
	ID             string    `json:"id"`
	ExamID         string    `json:"exam_id"`
	QuestionNumber int       `json:"question_number"`
	Solution       string    `json:"solution"`
	Explanation    *string   `json:"explanation,omitempty"`
	CreatedAt      time.Time `json:"created_at"`
}

// ExamStatistics summarizes the catalog.
type ExamStatistics struct {
	TotalExams      int `json:"total_exams"`
	UniqueSubjects  int `json:"unique_subjects"`
	UniqueExamTypes int `json:"unique_exam_types"`
	UniqueExamYears int `json:"unique_exam_years"`
}
