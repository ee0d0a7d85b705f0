package sqlite

import (
	"context"
	"database/sql"
	"errors"
	"fmt"

	"github.com/jmoiron/sqlx"

	"lang-portal/internal/studysession"
)

// sessionSelect joins names and counts review items live. Callers append the
// WHERE / GROUP BY / ORDER BY tail.
const sessionSelect = `SELECT
	ss.id,
	ss.group_id,
	g.name AS group_name,
	sa.id AS activity_id,
	sa.name AS activity_name,
	ss.created_at,
	ss.end_time,
	COUNT(wri.id) AS review_items_count
 FROM study_sessions ss
 JOIN groups g ON g.id = ss.group_id
 JOIN study_activities sa ON sa.id = ss.study_activity_id
 LEFT JOIN word_review_items wri ON wri.study_session_id = ss.id`

const (
	groupExistsQuery    = `SELECT 1 FROM groups WHERE id = ? LIMIT 1`
	activityExistsQuery = `SELECT 1 FROM study_activities WHERE id = ? LIMIT 1`
	sessionExistsQuery  = `SELECT 1 FROM study_sessions WHERE id = ? LIMIT 1`
	wordExistsQuery     = `SELECT 1 FROM words WHERE id = ? LIMIT 1`
)

type sessionRow struct {
	ID               int64          `db:"id"`
	GroupID          int64          `db:"group_id"`
	GroupName        string         `db:"group_name"`
	ActivityID       int64          `db:"activity_id"`
	ActivityName     string         `db:"activity_name"`
	CreatedAt        string         `db:"created_at"`
	EndTime          sql.NullString `db:"end_time"`
	ReviewItemsCount int            `db:"review_items_count"`
}

func (r sessionRow) toSession() (studysession.Session, error) {
	startTime, err := parseTime(r.CreatedAt)
	if err != nil {
		return studysession.Session{}, err
	}

	session := studysession.Session{
		ID:               r.ID,
		GroupID:          r.GroupID,
		GroupName:        r.GroupName,
		ActivityID:       r.ActivityID,
		ActivityName:     r.ActivityName,
		StartTime:        startTime,
		ReviewItemsCount: r.ReviewItemsCount,
	}
	if r.EndTime.Valid && r.EndTime.String != "" {
		endTime, err := parseTime(r.EndTime.String)
		if err != nil {
			return studysession.Session{}, err
		}
		session.EndTime = &endTime
	}
	return session, nil
}

type sessionWordRow struct {
	ID           int64  `db:"id"`
	Kanji        string `db:"kanji"`
	Romaji       string `db:"romaji"`
	English      string `db:"english"`
	CorrectCount int    `db:"correct_count"`
	WrongCount   int    `db:"wrong_count"`
}

// ListSessions reads the count and the page in one transaction so total and
// items describe the same snapshot.
func (s *SQLiteStore) ListSessions(ctx context.Context, page studysession.Page) ([]studysession.Session, int, error) {
	var (
		sessions []studysession.Session
		total    int
	)

	err := s.withTx(ctx, func(tx *sqlx.Tx) error {
		// Same joins as the page query so the two never disagree.
		if err := tx.GetContext(ctx, &total, `SELECT COUNT(*)
			 FROM study_sessions ss
			 JOIN groups g ON g.id = ss.group_id
			 JOIN study_activities sa ON sa.id = ss.study_activity_id`); err != nil {
			return fmt.Errorf("count sessions: %w", err)
		}

		var rows []sessionRow
		if err := tx.SelectContext(ctx, &rows, sessionSelect+`
			 GROUP BY ss.id
			 ORDER BY ss.created_at DESC, ss.id DESC
			 LIMIT ? OFFSET ?`,
			page.PerPage,
			page.Offset(),
		); err != nil {
			return fmt.Errorf("list sessions: %w", err)
		}

		sessions = make([]studysession.Session, 0, len(rows))
		for _, row := range rows {
			session, err := row.toSession()
			if err != nil {
				return err
			}
			sessions = append(sessions, session)
		}
		return nil
	})
	if err != nil {
		return nil, 0, err
	}
	return sessions, total, nil
}

func (s *SQLiteStore) CreateSession(ctx context.Context, groupID, activityID int64) (studysession.Session, error) {
	var session studysession.Session
	err := s.withTx(ctx, func(tx *sqlx.Tx) error {
		found, err := exists(ctx, tx, groupExistsQuery, groupID)
		if err != nil {
			return fmt.Errorf("lookup group: %w", err)
		}
		if !found {
			return studysession.ErrGroupNotFound
		}

		found, err = exists(ctx, tx, activityExistsQuery, activityID)
		if err != nil {
			return fmt.Errorf("lookup study activity: %w", err)
		}
		if !found {
			return studysession.ErrActivityNotFound
		}

		result, err := tx.ExecContext(
			ctx,
			`INSERT INTO study_sessions (group_id, study_activity_id, created_at) VALUES (?, ?, datetime('now'))`,
			groupID,
			activityID,
		)
		if err != nil {
			return fmt.Errorf("insert session: %w", err)
		}
		id, err := result.LastInsertId()
		if err != nil {
			return err
		}

		session, err = getSession(ctx, tx, id)
		return err
	})
	if err != nil {
		return studysession.Session{}, err
	}
	return session, nil
}

func (s *SQLiteStore) GetSession(ctx context.Context, id int64) (studysession.Session, error) {
	var session studysession.Session
	err := s.withTx(ctx, func(tx *sqlx.Tx) error {
		var err error
		session, err = getSession(ctx, tx, id)
		return err
	})
	if err != nil {
		return studysession.Session{}, err
	}
	return session, nil
}

func getSession(ctx context.Context, tx *sqlx.Tx, id int64) (studysession.Session, error) {
	var row sessionRow
	err := tx.GetContext(ctx, &row, sessionSelect+`
		 WHERE ss.id = ?
		 GROUP BY ss.id`, id)
	if err != nil {
		if errors.Is(err, sql.ErrNoRows) {
			return studysession.Session{}, studysession.ErrSessionNotFound
		}
		return studysession.Session{}, fmt.Errorf("get session: %w", err)
	}
	return row.toSession()
}

// ListSessionWords aggregates only the given session's review items, one row per
// distinct word, ordered by kanji.
func (s *SQLiteStore) ListSessionWords(ctx context.Context, sessionID int64, page studysession.Page) ([]studysession.SessionWord, int, error) {
	var (
		words []studysession.SessionWord
		total int
	)

	err := s.withTx(ctx, func(tx *sqlx.Tx) error {
		if err := tx.GetContext(ctx, &total, `SELECT COUNT(DISTINCT wri.word_id)
			 FROM word_review_items wri
			 JOIN words w ON w.id = wri.word_id
			 WHERE wri.study_session_id = ?`, sessionID); err != nil {
			return fmt.Errorf("count session words: %w", err)
		}

		var rows []sessionWordRow
		if err := tx.SelectContext(ctx, &rows, `SELECT
				w.id,
				w.kanji,
				w.romaji,
				w.english,
				COALESCE(SUM(CASE WHEN wri.correct = 1 THEN 1 ELSE 0 END), 0) AS correct_count,
				COALESCE(SUM(CASE WHEN wri.correct = 0 THEN 1 ELSE 0 END), 0) AS wrong_count
			 FROM word_review_items wri
			 JOIN words w ON w.id = wri.word_id
			 WHERE wri.study_session_id = ?
			 GROUP BY w.id
			 ORDER BY w.kanji ASC, w.id ASC
			 LIMIT ? OFFSET ?`,
			sessionID,
			page.PerPage,
			page.Offset(),
		); err != nil {
			return fmt.Errorf("list session words: %w", err)
		}

		words = make([]studysession.SessionWord, 0, len(rows))
		for _, row := range rows {
			words = append(words, studysession.SessionWord{
				Word: studysession.Word{
					ID:      row.ID,
					Kanji:   row.Kanji,
					Romaji:  row.Romaji,
					English: row.English,
				},
				CorrectCount: row.CorrectCount,
				WrongCount:   row.WrongCount,
			})
		}
		return nil
	})
	if err != nil {
		return nil, 0, err
	}
	return words, total, nil
}

// UpdateSession applies a partial update with one fixed statement: absent
// fields bind NULL and COALESCE keeps the stored value. Referenced rows are
// checked before anything is written.
func (s *SQLiteStore) UpdateSession(ctx context.Context, id int64, update studysession.SessionUpdate) (studysession.Session, error) {
	var session studysession.Session
	err := s.withTx(ctx, func(tx *sqlx.Tx) error {
		found, err := exists(ctx, tx, sessionExistsQuery, id)
		if err != nil {
			return fmt.Errorf("lookup session: %w", err)
		}
		if !found {
			return studysession.ErrSessionNotFound
		}

		if update.GroupID != nil {
			found, err := exists(ctx, tx, groupExistsQuery, *update.GroupID)
			if err != nil {
				return fmt.Errorf("lookup group: %w", err)
			}
			if !found {
				return studysession.ErrGroupNotFound
			}
		}
		if update.StudyActivityID != nil {
			found, err := exists(ctx, tx, activityExistsQuery, *update.StudyActivityID)
			if err != nil {
				return fmt.Errorf("lookup study activity: %w", err)
			}
			if !found {
				return studysession.ErrActivityNotFound
			}
		}

		var endTime any
		if update.EndTime != nil {
			endTime = formatTime(*update.EndTime)
		}

		if _, err := tx.ExecContext(
			ctx,
			`UPDATE study_sessions SET
				group_id = COALESCE(?, group_id),
				study_activity_id = COALESCE(?, study_activity_id),
				end_time = COALESCE(?, end_time)
			 WHERE id = ?`,
			optionalID(update.GroupID),
			optionalID(update.StudyActivityID),
			endTime,
			id,
		); err != nil {
			return fmt.Errorf("update session: %w", err)
		}

		session, err = getSession(ctx, tx, id)
		return err
	})
	if err != nil {
		return studysession.Session{}, err
	}
	return session, nil
}

// DeleteSession removes the session's review items and then the session. The
// word_reviews rollup is not touched.
func (s *SQLiteStore) DeleteSession(ctx context.Context, id int64) error {
	return s.withTx(ctx, func(tx *sqlx.Tx) error {
		found, err := exists(ctx, tx, sessionExistsQuery, id)
		if err != nil {
			return fmt.Errorf("lookup session: %w", err)
		}
		if !found {
			return studysession.ErrSessionNotFound
		}

		if _, err := tx.ExecContext(ctx, `DELETE FROM word_review_items WHERE study_session_id = ?`, id); err != nil {
			return fmt.Errorf("delete review items: %w", err)
		}
		if _, err := tx.ExecContext(ctx, `DELETE FROM study_sessions WHERE id = ?`, id); err != nil {
			return fmt.Errorf("delete session: %w", err)
		}
		return nil
	})
}

// ResetHistory clears review items and sessions. Groups, activities, words and
// the word_reviews rollup stay as they are.
func (s *SQLiteStore) ResetHistory(ctx context.Context) error {
	return s.withTx(ctx, func(tx *sqlx.Tx) error {
		if _, err := tx.ExecContext(ctx, `DELETE FROM word_review_items`); err != nil {
			return fmt.Errorf("delete review items: %w", err)
		}
		if _, err := tx.ExecContext(ctx, `DELETE FROM study_sessions`); err != nil {
			return fmt.Errorf("delete sessions: %w", err)
		}
		return nil
	})
}
