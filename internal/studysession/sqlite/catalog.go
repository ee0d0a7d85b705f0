package sqlite

import (
	"context"
	"fmt"

	"github.com/jmoiron/sqlx"

	"lang-portal/internal/studysession"
)

// ImportCatalog upserts groups, study activities and words. Entries with an id
// replace that row; entries without one are appended.
func (s *SQLiteStore) ImportCatalog(ctx context.Context, catalog studysession.Catalog) error {
	return s.withTx(ctx, func(tx *sqlx.Tx) error {
		for _, group := range catalog.Groups {
			if _, err := tx.ExecContext(
				ctx,
				`INSERT INTO groups (id, name) VALUES (?, ?)
				 ON CONFLICT(id) DO UPDATE SET name = excluded.name`,
				nullableID(group.ID),
				group.Name,
			); err != nil {
				return fmt.Errorf("import group %q: %w", group.Name, err)
			}
		}

		for _, activity := range catalog.StudyActivities {
			if _, err := tx.ExecContext(
				ctx,
				`INSERT INTO study_activities (id, name, url) VALUES (?, ?, ?)
				 ON CONFLICT(id) DO UPDATE SET name = excluded.name, url = excluded.url`,
				nullableID(activity.ID),
				activity.Name,
				activity.URL,
			); err != nil {
				return fmt.Errorf("import study activity %q: %w", activity.Name, err)
			}
		}

		for _, word := range catalog.Words {
			if _, err := tx.ExecContext(
				ctx,
				`INSERT INTO words (id, kanji, romaji, english) VALUES (?, ?, ?, ?)
				 ON CONFLICT(id) DO UPDATE SET
					kanji = excluded.kanji,
					romaji = excluded.romaji,
					english = excluded.english`,
				nullableID(word.ID),
				word.Kanji,
				word.Romaji,
				word.English,
			); err != nil {
				return fmt.Errorf("import word %q: %w", word.Kanji, err)
			}
		}
		return nil
	})
}
