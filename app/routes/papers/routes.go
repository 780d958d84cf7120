package papers

import (
	"database/sql"
	"log"

	"astrocoffee/app/database"
	"astrocoffee/app/flash"
	"astrocoffee/app/models"
	"astrocoffee/app/routes/auth"

	"github.com/gofiber/fiber/v2"
)

// SetupPapersRoutes sets up the paper listing, submission and discussion routes.
func SetupPapersRoutes(app *fiber.App, db *sql.DB) {
	// Page routes
	app.Get("/", renderPapersPage(db))
	app.Get("/submit", renderSubmitPage)
	app.Post("/submit", SubmitPaperHandler(db))
	app.Post("/papers/:id/discuss", auth.Middleware(db), MarkDiscussedHandler(db))
	app.Get("/archive", renderArchivePage(db))
	app.Get("/usefullinks", renderUsefulLinksPage)

	// API routes
	api := app.Group("/api/papers")
	api.Get("/", GetPapersAPI(db))
	api.Get("/:id", GetPaperAPI(db))
	api.Post("/:id/discuss", auth.Middleware(db), MarkDiscussedAPI(db))
}

// partitionPapers splits a listing into the "to discuss" and "discussed"
// groups, preserving the query order within each.
func partitionPapers(all []*models.Paper) (pending, discussed []*models.Paper) {
	for _, paper := range all {
		if paper.Discussed {
			discussed = append(discussed, paper)
		} else {
			pending = append(pending, paper)
		}
	}
	return pending, discussed
}

func renderPapersPage(db *sql.DB) fiber.Handler {
	return func(c *fiber.Ctx) error {
		allPapers, err := database.GetPapers(db, database.FilterAll)
		if err != nil {
			log.Printf("Error fetching papers: %v", err)
			return fiber.ErrInternalServerError
		}

		pending, discussed := partitionPapers(allPapers)

		bind := fiber.Map{
			"Title":           "AstroCoffee",
			"CurrentPage":     "papers",
			"NewPapers":       pending,
			"DiscussedPapers": discussed,
			"HasNew":          len(pending) > 0,
			"HasDiscussed":    len(discussed) > 0,
			"LoggedIn":        isLoggedIn(c, db),
		}
		if msg, ok := flash.Take(c); ok {
			bind["Flash"] = msg
		}
		return c.Render("papers/index", bind)
	}
}

func renderSubmitPage(c *fiber.Ctx) error {
	bind := fiber.Map{
		"Title":       "Submit a Paper - AstroCoffee",
		"CurrentPage": "submit",
	}
	if msg, ok := flash.Take(c); ok {
		bind["Flash"] = msg
	}
	return c.Render("papers/submit", bind)
}

func renderArchivePage(db *sql.DB) fiber.Handler {
	return func(c *fiber.Ctx) error {
		discussed, err := database.GetPapers(db, database.FilterDiscussed)
		if err != nil {
			log.Printf("Error fetching archive: %v", err)
			return fiber.ErrInternalServerError
		}

		return c.Render("papers/archive", fiber.Map{
			"Title":       "Archive - AstroCoffee",
			"CurrentPage": "archive",
			"Papers":      discussed,
			"HasPapers":   len(discussed) > 0,
		})
	}
}

func renderUsefulLinksPage(c *fiber.Ctx) error {
	return c.Render("papers/usefullinks", fiber.Map{
		"Title":       "Useful Links - AstroCoffee",
		"CurrentPage": "usefullinks",
	})
}

// isLoggedIn checks the session cookie without forcing a redirect, so the
// list page can show the right controls to everyone.
func isLoggedIn(c *fiber.Ctx, db *sql.DB) bool {
	token := c.Cookies("session_token")
	if token == "" {
		return false
	}
	_, err := database.GetSessionByID(db, token)
	return err == nil
}
