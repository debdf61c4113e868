package store

import (
	"database/sql"
	"errors"
	"fmt"
	"strings"

	"github.com/gnomegl/ulpdb/pkg/webtech"
)

const websiteSearchQuery = `
SELECT w.url, GROUP_CONCAT(t.name)
FROM websites w
LEFT JOIN website_technologies wt ON w.id = wt.website_id
LEFT JOIN technologies t ON t.id = wt.technology_id
%s
GROUP BY w.url
ORDER BY w.url`

// AddWebsites inserts website/technology associations in one transaction.
// Websites, technologies and links are deduplicated by their unique
// constraints; any failure rolls back the whole batch.
func (s *Store) AddWebsites(items []webtech.Website) error {
	tx, err := s.db.Begin()
	if err != nil {
		return fmt.Errorf("failed to begin transaction: %w", err)
	}

	for _, item := range items {
		if _, err := tx.Exec("INSERT OR IGNORE INTO websites (url) VALUES (?)", item.URL); err != nil {
			tx.Rollback()
			return fmt.Errorf("failed to insert website %s: %w", item.URL, err)
		}

		var websiteID int64
		if err := tx.QueryRow("SELECT id FROM websites WHERE url = ?", item.URL).Scan(&websiteID); err != nil {
			tx.Rollback()
			return fmt.Errorf("failed to look up website %s: %w", item.URL, err)
		}

		for _, tech := range item.Technologies {
			if _, err := tx.Exec("INSERT OR IGNORE INTO technologies (name) VALUES (?)", tech); err != nil {
				tx.Rollback()
				return fmt.Errorf("failed to insert technology %s: %w", tech, err)
			}

			var techID int64
			if err := tx.QueryRow("SELECT id FROM technologies WHERE name = ?", tech).Scan(&techID); err != nil {
				tx.Rollback()
				return fmt.Errorf("failed to look up technology %s: %w", tech, err)
			}

			if _, err := tx.Exec(
				"INSERT OR IGNORE INTO website_technologies (website_id, technology_id) VALUES (?, ?)",
				websiteID, techID); err != nil {
				tx.Rollback()
				return fmt.Errorf("failed to link %s to %s: %w", item.URL, tech, err)
			}
		}
	}

	if err := tx.Commit(); err != nil {
		return fmt.Errorf("failed to commit: %w", err)
	}
	return nil
}

// DeleteWebsite removes a website and its technology links by exact URL.
// A missing website is not an error: it returns (false, nil) and changes
// nothing. Technologies stay, they may be shared with other websites.
func (s *Store) DeleteWebsite(url string) (bool, error) {
	tx, err := s.db.Begin()
	if err != nil {
		return false, fmt.Errorf("failed to begin transaction: %w", err)
	}

	var websiteID int64
	err = tx.QueryRow("SELECT id FROM websites WHERE url = ?", url).Scan(&websiteID)
	if errors.Is(err, sql.ErrNoRows) {
		tx.Rollback()
		return false, nil
	}
	if err != nil {
		tx.Rollback()
		return false, fmt.Errorf("failed to look up website %s: %w", url, err)
	}

	if _, err := tx.Exec("DELETE FROM website_technologies WHERE website_id = ?", websiteID); err != nil {
		tx.Rollback()
		return false, fmt.Errorf("failed to delete links for %s: %w", url, err)
	}
	if _, err := tx.Exec("DELETE FROM websites WHERE id = ?", websiteID); err != nil {
		tx.Rollback()
		return false, fmt.Errorf("failed to delete website %s: %w", url, err)
	}

	if err := tx.Commit(); err != nil {
		return false, fmt.Errorf("failed to commit: %w", err)
	}
	return true, nil
}

// DeleteAllWebsiteData clears websites and their links. Technologies are
// kept on purpose so future uploads can reuse them.
func (s *Store) DeleteAllWebsiteData() error {
	tx, err := s.db.Begin()
	if err != nil {
		return fmt.Errorf("failed to begin transaction: %w", err)
	}
	if _, err := tx.Exec("DELETE FROM website_technologies"); err != nil {
		tx.Rollback()
		return fmt.Errorf("failed to delete links: %w", err)
	}
	if _, err := tx.Exec("DELETE FROM websites"); err != nil {
		tx.Rollback()
		return fmt.Errorf("failed to delete websites: %w", err)
	}
	if err := tx.Commit(); err != nil {
		return fmt.Errorf("failed to commit: %w", err)
	}
	return nil
}

// SearchWebsites substring-matches websites by URL, or by associated
// technology name when byTechnology is set. A technology search reports
// only the matching technologies for each website since the filter runs
// before grouping. An empty query returns every website.
func (s *Store) SearchWebsites(query string, byTechnology bool) ([]webtech.Website, error) {
	var where string
	var args []any
	if query != "" {
		if byTechnology {
			where = "WHERE t.name LIKE ?"
		} else {
			where = "WHERE w.url LIKE ?"
		}
		args = append(args, "%"+query+"%")
	}

	rows, err := s.db.Query(fmt.Sprintf(websiteSearchQuery, where), args...)
	if err != nil {
		return nil, fmt.Errorf("failed to search websites: %w", err)
	}
	defer rows.Close()

	var results []webtech.Website
	for rows.Next() {
		var url string
		var techs sql.NullString
		if err := rows.Scan(&url, &techs); err != nil {
			return nil, fmt.Errorf("failed to scan website: %w", err)
		}
		results = append(results, webtech.Website{
			URL:          url,
			Technologies: splitTechList(techs.String),
		})
	}
	if err := rows.Err(); err != nil {
		return nil, fmt.Errorf("failed to read websites: %w", err)
	}
	return results, nil
}

// AllWebsites returns every website with its technologies.
func (s *Store) AllWebsites() ([]webtech.Website, error) {
	return s.SearchWebsites("", false)
}

// AllTechnologies returns distinct technology names in lexicographic order.
func (s *Store) AllTechnologies() ([]string, error) {
	rows, err := s.db.Query("SELECT name FROM technologies ORDER BY name")
	if err != nil {
		return nil, fmt.Errorf("failed to query technologies: %w", err)
	}
	defer rows.Close()

	var names []string
	for rows.Next() {
		var name string
		if err := rows.Scan(&name); err != nil {
			return nil, fmt.Errorf("failed to scan technology: %w", err)
		}
		names = append(names, name)
	}
	if err := rows.Err(); err != nil {
		return nil, fmt.Errorf("failed to read technologies: %w", err)
	}
	return names, nil
}

func splitTechList(concat string) []string {
	if concat == "" {
		return nil
	}
	var techs []string
	for _, t := range strings.Split(concat, ",") {
		if t = strings.TrimSpace(t); t != "" {
			techs = append(techs, t)
		}
	}
	return techs
}
