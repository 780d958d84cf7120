package database

import (
	"database/sql"
	"time"

	"astrocoffee/app/models"
)

// PaperFilter selects which papers a listing query returns.
type PaperFilter string

const (
	FilterAll       PaperFilter = "all"
	FilterPending   PaperFilter = "pending"
	FilterDiscussed PaperFilter = "discussed"
)

func CreatePaper(db *sql.DB, paper *models.Paper) error {
	query := `INSERT INTO papers (url, author, author_number, title, date_submitted, abstract, subject, sources, discussed)
			  VALUES ($1, $2, $3, $4, $5, $6, $7, $8, FALSE)
			  RETURNING id`

	return db.QueryRow(query,
		paper.URL, paper.Author, paper.AuthorNumber, paper.Title,
		paper.DateSubmitted, paper.Abstract, paper.Subject, paper.Sources,
	).Scan(&paper.ID)
}

func GetPaperByID(db *sql.DB, id int) (*models.Paper, error) {
	paper := &models.Paper{}
	query := `SELECT id, url, author, author_number, title, date_submitted, date_extended,
			  abstract, subject, sources, volunteer, discussed
			  FROM papers WHERE id = $1`

	err := db.QueryRow(query, id).Scan(
		&paper.ID, &paper.URL, &paper.Author, &paper.AuthorNumber, &paper.Title,
		&paper.DateSubmitted, &paper.DateExtended, &paper.Abstract, &paper.Subject,
		&paper.Sources, &paper.Volunteer, &paper.Discussed,
	)
	if err != nil {
		return nil, err
	}
	return paper, nil
}

// GetPapers returns papers matching the filter, oldest submission first.
func GetPapers(db *sql.DB, filter PaperFilter) ([]*models.Paper, error) {
	query := `SELECT id, url, author, author_number, title, date_submitted, date_extended,
			  abstract, subject, sources, volunteer, discussed
			  FROM papers`

	switch filter {
	case FilterPending:
		query += ` WHERE discussed = FALSE`
	case FilterDiscussed:
		query += ` WHERE discussed = TRUE`
	}
	query += ` ORDER BY date_submitted ASC, id ASC`

	rows, err := db.Query(query)
	if err != nil {
		return nil, err
	}
	defer rows.Close()

	var papers []*models.Paper
	for rows.Next() {
		paper := &models.Paper{}
		err := rows.Scan(
			&paper.ID, &paper.URL, &paper.Author, &paper.AuthorNumber, &paper.Title,
			&paper.DateSubmitted, &paper.DateExtended, &paper.Abstract, &paper.Subject,
			&paper.Sources, &paper.Volunteer, &paper.Discussed,
		)
		if err != nil {
			return nil, err
		}
		papers = append(papers, paper)
	}
	return papers, rows.Err()
}

// MarkDiscussed flags a paper as discussed. Volunteer and extended date are
// only written when provided, so repeated calls don't clear earlier values.
// Returns sql.ErrNoRows when the paper does not exist.
func MarkDiscussed(db *sql.DB, id int, volunteer string, newDate *time.Time) error {
	query := `UPDATE papers
			  SET discussed = TRUE,
			      volunteer = COALESCE(NULLIF($2, ''), volunteer),
			      date_extended = COALESCE($3, date_extended)
			  WHERE id = $1`

	result, err := db.Exec(query, id, volunteer, newDate)
	if err != nil {
		return err
	}
	affected, err := result.RowsAffected()
	if err != nil {
		return err
	}
	if affected == 0 {
		return sql.ErrNoRows
	}
	return nil
}
