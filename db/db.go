package db

import (
	"context"
	"database/sql"
	"fmt"
	"os"
	"path/filepath"
	"time"

	_ "github.com/mattn/go-sqlite3"
	"github.com/sirupsen/logrus"
)

var DB *sql.DB

func InitializeDB(dbPath string) error {
	logrus.Info("Initializing database")

	dir := filepath.Dir(dbPath)
	if err := os.MkdirAll(dir, os.ModePerm); err != nil {
		return fmt.Errorf("error creating directory for database: %v", err)
	}

	var err error
	DB, err = sql.Open("sqlite3", dbPath)
	if err != nil {
		return fmt.Errorf("error opening database: %v", err)
	}

	DB.SetMaxOpenConns(10)
	DB.SetMaxIdleConns(5)
	DB.SetConnMaxLifetime(30 * time.Minute)

	_, err = DB.Exec(`CREATE TABLE IF NOT EXISTS transcripts (
                    video_id TEXT PRIMARY KEY,
                    language TEXT NOT NULL,
                    text TEXT NOT NULL,
                    created_at TIMESTAMP DEFAULT CURRENT_TIMESTAMP
)`)
	if err != nil {
		DB.Close()
		return fmt.Errorf("error creating transcripts table: %v", err)
	}

	_, err = DB.Exec(`CREATE TABLE IF NOT EXISTS summaries (
                    video_id TEXT NOT NULL,
                    mode TEXT NOT NULL,
                    model TEXT NOT NULL,
                    summary TEXT NOT NULL,
                    created_at TIMESTAMP DEFAULT CURRENT_TIMESTAMP,
                    PRIMARY KEY (video_id, mode, model)
)`)
	if err != nil {
		DB.Close()
		return fmt.Errorf("error creating summaries table: %v", err)
	}

	return nil
}

// GetTranscript returns the cached transcript text and its language for a
// video, or empty strings when none is cached.
func GetTranscript(ctx context.Context, videoID string) (string, string, error) {
	var text, language string
	err := DB.QueryRowContext(ctx, "SELECT text, language FROM transcripts WHERE video_id = ?", videoID).Scan(&text, &language)
	if err != nil {
		if err == sql.ErrNoRows {
			return "", "", nil
		}
		return "", "", fmt.Errorf("error querying transcripts: %v", err)
	}
	return text, language, nil
}

func SetTranscript(ctx context.Context, videoID, language, text string) error {
	tx, err := DB.BeginTx(ctx, nil)
	if err != nil {
		return fmt.Errorf("error beginning transaction: %v", err)
	}

	stmt, err := tx.PrepareContext(ctx, "INSERT INTO transcripts (video_id, language, text) VALUES (?, ?, ?) ON CONFLICT(video_id) DO UPDATE SET language=excluded.language, text=excluded.text")
	if err != nil {
		tx.Rollback()
		return fmt.Errorf("error preparing statement: %v", err)
	}
	defer stmt.Close()

	_, err = stmt.ExecContext(ctx, videoID, language, text)
	if err != nil {
		tx.Rollback()
		return fmt.Errorf("error executing statement: %v", err)
	}

	if err := tx.Commit(); err != nil {
		return fmt.Errorf("error committing transaction: %v", err)
	}

	return nil
}

// GetSummary returns a cached summary for (video, mode, model), or an empty
// string when no matching row exists.
func GetSummary(ctx context.Context, videoID, mode, model string) (string, error) {
	var summary string
	err := DB.QueryRowContext(ctx, "SELECT summary FROM summaries WHERE video_id = ? AND mode = ? AND model = ?", videoID, mode, model).Scan(&summary)
	if err != nil {
		if err == sql.ErrNoRows {
			return "", nil
		}
		return "", fmt.Errorf("error querying summaries: %v", err)
	}
	return summary, nil
}

// SetSummary upserts one mode's summary. Rows for other modes are untouched,
// so a later failure in one mode cannot clobber another mode's cached result.
func SetSummary(ctx context.Context, videoID, mode, model, summary string) error {
	tx, err := DB.BeginTx(ctx, nil)
	if err != nil {
		return fmt.Errorf("error beginning transaction: %v", err)
	}

	stmt, err := tx.PrepareContext(ctx, "INSERT INTO summaries (video_id, mode, model, summary) VALUES (?, ?, ?, ?) ON CONFLICT(video_id, mode, model) DO UPDATE SET summary=excluded.summary")
	if err != nil {
		tx.Rollback()
		return fmt.Errorf("error preparing statement: %v", err)
	}
	defer stmt.Close()

	_, err = stmt.ExecContext(ctx, videoID, mode, model, summary)
	if err != nil {
		tx.Rollback()
		return fmt.Errorf("error executing statement: %v", err)
	}

	if err := tx.Commit(); err != nil {
		return fmt.Errorf("error committing transaction: %v", err)
	}

	return nil
}

func DeleteSummaries(ctx context.Context, videoID string) error {
	tx, err := DB.BeginTx(ctx, nil)
	if err != nil {
		return fmt.Errorf("error beginning transaction: %v", err)
	}

	stmt, err := tx.PrepareContext(ctx, "DELETE FROM summaries WHERE video_id = ?")
	if err != nil {
		tx.Rollback()
		return fmt.Errorf("error preparing delete statement: %v", err)
	}
	defer stmt.Close()

	_, err = stmt.ExecContext(ctx, videoID)
	if err != nil {
		tx.Rollback()
		return fmt.Errorf("error executing delete statement: %v", err)
	}

	if err := tx.Commit(); err != nil {
		return fmt.Errorf("error committing transaction: %v", err)
	}

	return nil
}
