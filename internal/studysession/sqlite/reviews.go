package sqlite

import (
	"context"
	"database/sql"
	"errors"
	"fmt"

	"github.com/jmoiron/sqlx"

	"lang-portal/internal/studysession"
)

// SubmitReviews runs as a single transaction.
//
// Invariants:
//   - The session and every referenced word must exist; the first missing row
//     aborts the transaction before any insert.
//   - After commit, word_reviews holds the full aggregate of word_review_items
//     for every reviewed word, not an increment of a previous value.
//
// Concurrent submissions for the same word each recompute from the complete
// table, so whichever commits last leaves a correct rollup.
func (s *SQLiteStore) SubmitReviews(ctx context.Context, sessionID int64, reviews []studysession.Review) (int, error) {
	err := s.withTx(ctx, func(tx *sqlx.Tx) error {
		found, err := exists(ctx, tx, sessionExistsQuery, sessionID)
		if err != nil {
			return fmt.Errorf("lookup session: %w", err)
		}
		if !found {
			return studysession.ErrSessionNotFound
		}

		checked := make(map[int64]struct{}, len(reviews))
		for _, review := range reviews {
			if _, ok := checked[review.WordID]; ok {
				continue
			}
			found, err := exists(ctx, tx, wordExistsQuery, review.WordID)
			if err != nil {
				return fmt.Errorf("lookup word: %w", err)
			}
			if !found {
				return fmt.Errorf("%w: %d", studysession.ErrWordNotFound, review.WordID)
			}
			checked[review.WordID] = struct{}{}
		}

		stmt, err := tx.PreparexContext(ctx, `INSERT INTO word_review_items
				(study_session_id, word_id, correct, response, created_at)
			 VALUES (?, ?, ?, ?, datetime('now'))`)
		if err != nil {
			return fmt.Errorf("prepare review insert: %w", err)
		}
		defer stmt.Close()

		for _, review := range reviews {
			var response any
			if review.Response != nil {
				response = *review.Response
			}
			if _, err := stmt.ExecContext(ctx, sessionID, review.WordID, review.Correct, response); err != nil {
				return fmt.Errorf("insert review: %w", err)
			}
		}

		return recomputeWordReviews(ctx, tx)
	})
	if err != nil {
		return 0, err
	}
	return len(reviews), nil
}

// recomputeWordReviews replaces the whole rollup with a fresh aggregate of
// word_review_items. Rows for words that no longer have review items are
// dropped instead of being left with stale counts.
func recomputeWordReviews(ctx context.Context, tx *sqlx.Tx) error {
	if _, err := tx.ExecContext(ctx, `DELETE FROM word_reviews`); err != nil {
		return fmt.Errorf("clear word reviews: %w", err)
	}
	_, err := tx.ExecContext(ctx, `INSERT INTO word_reviews (word_id, correct_count, wrong_count)
		 SELECT
			word_id,
			SUM(CASE WHEN correct = 1 THEN 1 ELSE 0 END) AS correct_count,
			SUM(CASE WHEN correct = 0 THEN 1 ELSE 0 END) AS wrong_count
		 FROM word_review_items
		 GROUP BY word_id`)
	if err != nil {
		return fmt.Errorf("recompute word reviews: %w", err)
	}
	return nil
}

type wordStatsRow struct {
	ID           int64  `db:"id"`
	Kanji        string `db:"kanji"`
	Romaji       string `db:"romaji"`
	English      string `db:"english"`
	CorrectCount int    `db:"correct_count"`
	WrongCount   int    `db:"wrong_count"`
}

// WordStats reads the rollup as stored; words never reviewed report zero counts.
func (s *SQLiteStore) WordStats(ctx context.Context, wordID int64) (studysession.WordStats, error) {
	var row wordStatsRow
	err := s.db.GetContext(ctx, &row, `SELECT
			w.id,
			w.kanji,
			w.romaji,
			w.english,
			COALESCE(wr.correct_count, 0) AS correct_count,
			COALESCE(wr.wrong_count, 0) AS wrong_count
		 FROM words w
		 LEFT JOIN word_reviews wr ON wr.word_id = w.id
		 WHERE w.id = ?`, wordID)
	if err != nil {
		if errors.Is(err, sql.ErrNoRows) {
			return studysession.WordStats{}, studysession.ErrWordNotFound
		}
		return studysession.WordStats{}, fmt.Errorf("get word stats: %w", err)
	}

	return studysession.WordStats{
		Word: studysession.Word{
			ID:      row.ID,
			Kanji:   row.Kanji,
			Romaji:  row.Romaji,
			English: row.English,
		},
		CorrectCount: row.CorrectCount,
		WrongCount:   row.WrongCount,
	}, nil
}
