package papers

import (
	"database/sql"
	"log"
	"strconv"
	"strings"
	"time"

	"astrocoffee/app/arxiv"
	"astrocoffee/app/database"
	"astrocoffee/app/flash"
	"astrocoffee/app/models"

	"github.com/gofiber/fiber/v2"
)

// SubmitPaperHandler accepts the submission form and stores a new paper.
// Metadata lookup is best-effort: a link the arXiv API can't resolve is
// stored with the url alone.
func SubmitPaperHandler(db *sql.DB) fiber.Handler {
	return func(c *fiber.Ctx) error {
		rawURL := strings.TrimSpace(c.FormValue("article"))
		if rawURL == "" {
			flash.Set(c, "error", "Please enter a paper URL or arXiv ID.")
			return c.Redirect("/submit")
		}

		paper := &models.Paper{
			URL:           arxiv.CleanURL(rawURL),
			DateSubmitted: time.Now(),
		}

		meta, err := arxiv.Fetch(c.UserContext(), paper.URL)
		if err != nil {
			log.Printf("Metadata lookup failed for %q: %v", paper.URL, err)
		} else {
			paper.Author = meta.Author
			paper.AuthorNumber = meta.AuthorNumber
			paper.Title = meta.Title
			paper.Abstract = meta.Abstract
			paper.Subject = meta.Subject
			paper.Sources = meta.Sources
		}

		if err := database.CreatePaper(db, paper); err != nil {
			log.Printf("Error creating paper: %v", err)
			flash.Set(c, "error", "Could not save your submission, please try again.")
			return c.Redirect("/submit")
		}

		flash.Set(c, "success", "Your submission was successfully added. Thanks for advancing knowledge!")
		return c.Redirect("/")
	}
}

// MarkDiscussedHandler flags a paper as discussed, optionally recording a
// volunteer and a rescheduled discussion date. Requires a logged-in session.
func MarkDiscussedHandler(db *sql.DB) fiber.Handler {
	return func(c *fiber.Ctx) error {
		id, err := strconv.Atoi(c.Params("id"))
		if err != nil {
			flash.Set(c, "error", "Invalid paper ID.")
			return c.Redirect("/")
		}

		volunteer := strings.TrimSpace(c.FormValue("volunteer"))
		newDate, err := parseNewDate(c.FormValue("new_date"))
		if err != nil {
			flash.Set(c, "error", "Invalid date, use YYYY-MM-DD.")
			return c.Redirect("/")
		}

		if err := database.MarkDiscussed(db, id, volunteer, newDate); err != nil {
			if err == sql.ErrNoRows {
				flash.Set(c, "error", "That paper does not exist.")
				return c.Redirect("/")
			}
			log.Printf("Error marking paper %d discussed: %v", id, err)
			flash.Set(c, "error", "Could not update the paper, please try again.")
			return c.Redirect("/")
		}

		flash.Set(c, "success", "Paper marked as discussed.")
		return c.Redirect("/")
	}
}

func parseNewDate(value string) (*time.Time, error) {
	value = strings.TrimSpace(value)
	if value == "" {
		return nil, nil
	}
	t, err := time.ParseInLocation("2006-01-02", value, time.Local)
	if err != nil {
		return nil, err
	}
	return &t, nil
}
