package migration

import (
	"context"
	"database/sql"
	"fmt"
	"time"

	"github.com/sirupsen/logrus"
)

type migrationStep struct {
	Name string
	SQL  string
}

// sentinelTable is created by the last step; its presence means the schema is complete.
const sentinelTable = "public.study_streaks"

var steps = []migrationStep{
	{
		Name: "create_table_uploads",
		SQL: `CREATE TABLE IF NOT EXISTS uploads (
  id                UUID        PRIMARY KEY,
  filename          TEXT        NOT NULL,
  content_type      TEXT        NOT NULL,
  size              BIGINT      NOT NULL CHECK (size >= 0),
  status            TEXT        NOT NULL DEFAULT 'uploaded'
                    CHECK (status IN ('uploaded', 'processing', 'completed', 'failed')),
  storage_path      TEXT        NOT NULL UNIQUE,
  extracted_content TEXT        NULL,
  title             VARCHAR(255) NOT NULL DEFAULT '',
  description       TEXT        NOT NULL DEFAULT '',
  subject           VARCHAR(20) NOT NULL DEFAULT ''
                    CHECK (subject IN ('', 'Math', 'English', 'Science', 'History', 'Computer')),
  grade             VARCHAR(10) NOT NULL DEFAULT ''
                    CHECK (grade IN ('', 'Grade9', 'Grade10', 'Grade11', 'Grade12')),
  created_at        TIMESTAMPTZ NOT NULL DEFAULT now(),
  updated_at        TIMESTAMPTZ NOT NULL DEFAULT now(),
  CHECK ((status = 'completed') = (extracted_content IS NOT NULL))
);`,
	},
	{
		Name: "create_index_uploads_status",
		SQL:  `CREATE INDEX IF NOT EXISTS idx_uploads_status ON uploads (status);`,
	},
	{
		Name: "create_index_uploads_created_at",
		SQL:  `CREATE INDEX IF NOT EXISTS idx_uploads_created_at ON uploads (created_at);`,
	},
	{
		Name: "create_index_uploads_subject_grade",
		SQL:  `CREATE INDEX IF NOT EXISTS idx_uploads_subject_grade ON uploads (subject, grade);`,
	},
	{
		Name: "create_table_exams",
		SQL: `CREATE TABLE IF NOT EXISTS exams (
  id          UUID         PRIMARY KEY,
  title       VARCHAR(255) NOT NULL,
  subject     VARCHAR(100) NOT NULL,
  exam_year   VARCHAR(10)  NOT NULL,
  exam_type   VARCHAR(50)  NOT NULL,
  description TEXT         NULL,
  file_url    VARCHAR(500) NULL,
  created_at  TIMESTAMPTZ  NOT NULL DEFAULT now(),
  updated_at  TIMESTAMPTZ  NOT NULL DEFAULT now()
);`,
	},
	{
		Name: "create_index_exams_subject",
		SQL:  `CREATE INDEX IF NOT EXISTS idx_exams_subject ON exams (subject);`,
	},
	{
		Name: "create_table_exam_solutions",
		SQL: `CREATE TABLE IF NOT EXISTS exam_solutions (
  id              UUID        PRIMARY KEY,
  exam_id         UUID        NOT NULL REFERENCES exams (id),
  question_number INTEGER     NOT NULL CHECK (question_number > 0),
  solution        TEXT        NOT NULL,
  explanation     TEXT        NULL,
  created_at      TIMESTAMPTZ NOT NULL DEFAULT now(),
  UNIQUE (exam_id, question_number)
);`,
	},
	{
		Name: "create_table_chat_sessions",
		SQL: `CREATE TABLE IF NOT EXISTS chat_sessions (
  id         VARCHAR(255) PRIMARY KEY,
  title      VARCHAR(255) NOT NULL,
  created_at TIMESTAMPTZ  NOT NULL DEFAULT now(),
  updated_at TIMESTAMPTZ  NOT NULL DEFAULT now()
);`,
	},
	{
		Name: "create_table_chat_messages",
		SQL: `CREATE TABLE IF NOT EXISTS chat_messages (
  id         BIGSERIAL    PRIMARY KEY,
  session_id VARCHAR(255) NOT NULL,
  role       TEXT         NOT NULL CHECK (role IN ('user', 'assistant')),
  content    TEXT         NOT NULL,
  created_at TIMESTAMPTZ  NOT NULL DEFAULT now()
);`,
	},
	{
		Name: "create_index_chat_messages_session_id",
		SQL:  `CREATE INDEX IF NOT EXISTS idx_chat_messages_session_id ON chat_messages (session_id);`,
	},
	{
		Name: "create_table_user_settings",
		SQL: `CREATE TABLE IF NOT EXISTS user_settings (
  user_id               VARCHAR(255) PRIMARY KEY,
  notifications_enabled BOOLEAN      NOT NULL DEFAULT TRUE,
  theme                 VARCHAR(20)  NOT NULL DEFAULT 'light',
  updated_at            TIMESTAMPTZ  NOT NULL DEFAULT now()
);`,
	},
	{
		Name: "create_table_study_streaks",
		SQL: `CREATE TABLE IF NOT EXISTS study_streaks (
  user_id         VARCHAR(255) PRIMARY KEY,
  streak_count    INTEGER      NOT NULL DEFAULT 0 CHECK (streak_count >= 0),
  last_study_date DATE         NULL
);`,
	},
}

// EnsureMigrated checks for the sentinel table and applies every step when it is missing.
// All statements are idempotent, so a partially applied schema is completed on the next start.
func EnsureMigrated(ctx context.Context, db *sql.DB, log logrus.FieldLogger, dbHost string) error {
	start := time.Now()
	l := log.WithFields(logrus.Fields{"component": "database", "db_host": dbHost})

	l.WithFields(logrus.Fields{"event": "db_migration_check", "status": "starting"}).Info("checking schema")

	var exists bool
	query := fmt.Sprintf("SELECT to_regclass('%s') IS NOT NULL", sentinelTable)
	if err := db.QueryRowContext(ctx, query).Scan(&exists); err != nil {
		l.WithFields(logrus.Fields{
			"event":       "db_migration_failed",
			"status":      "error",
			"duration_ms": time.Since(start).Milliseconds(),
		}).WithError(err).Error("failed to check sentinel table")
		return fmt.Errorf("failed to check sentinel table: %w", err)
	}

	if exists {
		l.WithFields(logrus.Fields{
			"event":       "db_migration_skip",
			"status":      "success",
			"duration_ms": time.Since(start).Milliseconds(),
		}).Info("schema already exists, skipping migration")
		return nil
	}

	l.WithFields(logrus.Fields{"event": "db_migration_start", "status": "in_progress"}).Info("applying schema")

	for _, step := range steps {
		stepStart := time.Now()
		if _, err := db.ExecContext(ctx, step.SQL); err != nil {
			l.WithFields(logrus.Fields{
				"event":            "db_migration_failed",
				"status":           "error",
				"migration_step":   step.Name,
				"duration_ms":      time.Since(start).Milliseconds(),
				"step_duration_ms": time.Since(stepStart).Milliseconds(),
			}).WithError(err).Error("migration step failed")
			return fmt.Errorf("migration step %s failed: %w", step.Name, err)
		}

		l.WithFields(logrus.Fields{
			"event":            "db_migration_step",
			"status":           "success",
			"migration_step":   step.Name,
			"step_duration_ms": time.Since(stepStart).Milliseconds(),
		}).Debug("migration step applied")
	}

	l.WithFields(logrus.Fields{
		"event":       "db_migration_success",
		"status":      "success",
		"steps":       len(steps),
		"duration_ms": time.Since(start).Milliseconds(),
	}).Info("schema migrated")

	return nil
}
