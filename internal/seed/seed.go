// Package seed loads the reference catalog (groups, study activities and
// words) that study sessions point at.
package seed

import (
	"bytes"
	"errors"
	"fmt"
	"io"
	"os"
	"strings"

	"gopkg.in/yaml.v3"

	"lang-portal/internal/studysession"
)

// Load reads a YAML catalog from path.
func Load(path string) (studysession.Catalog, error) {
	data, err := os.ReadFile(path)
	if err != nil {
		return studysession.Catalog{}, fmt.Errorf("read seed file: %w", err)
	}
	return Parse(data)
}

func Parse(data []byte) (studysession.Catalog, error) {
	var catalog studysession.Catalog
	decoder := yaml.NewDecoder(bytes.NewReader(data))
	decoder.KnownFields(true)
	if err := decoder.Decode(&catalog); err != nil && !errors.Is(err, io.EOF) {
		return studysession.Catalog{}, fmt.Errorf("decode seed file: %w", err)
	}
	if err := validate(catalog); err != nil {
		return studysession.Catalog{}, err
	}
	return catalog, nil
}

func validate(catalog studysession.Catalog) error {
	groupIDs := map[int64]struct{}{}
	for idx, group := range catalog.Groups {
		if strings.TrimSpace(group.Name) == "" {
			return fmt.Errorf("groups[%d]: name is required", idx)
		}
		if err := checkID("groups", idx, group.ID, groupIDs); err != nil {
			return err
		}
	}

	activityIDs := map[int64]struct{}{}
	for idx, activity := range catalog.StudyActivities {
		if strings.TrimSpace(activity.Name) == "" {
			return fmt.Errorf("study_activities[%d]: name is required", idx)
		}
		if err := checkID("study_activities", idx, activity.ID, activityIDs); err != nil {
			return err
		}
	}

	wordIDs := map[int64]struct{}{}
	for idx, word := range catalog.Words {
		if strings.TrimSpace(word.Kanji) == "" {
			return fmt.Errorf("words[%d]: kanji is required", idx)
		}
		if err := checkID("words", idx, word.ID, wordIDs); err != nil {
			return err
		}
	}
	return nil
}

// checkID accepts a missing id (assigned on insert) but rejects negative and
// repeated ones.
func checkID(section string, idx int, id int64, seen map[int64]struct{}) error {
	if id == 0 {
		return nil
	}
	if id < 0 {
		return fmt.Errorf("%s[%d]: id must be positive", section, idx)
	}
	if _, ok := seen[id]; ok {
		return fmt.Errorf("%s[%d]: duplicate id %d", section, idx, id)
	}
	seen[id] = struct{}{}
	return nil
}
