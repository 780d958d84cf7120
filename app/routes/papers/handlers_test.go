package papers

import (
	"database/sql"
	"net/http/httptest"
	"strings"
	"testing"
	"time"

	"astrocoffee/app/models"

	"github.com/gofiber/fiber/v2"
	_ "github.com/lib/pq"
)

// testApp wires the routes against a connection that is never dialed, for
// handlers that must bail out before touching the database.
func testApp(t *testing.T) *fiber.App {
	t.Helper()

	db, err := sql.Open("postgres", "host=localhost dbname=never_dialed sslmode=disable")
	if err != nil {
		t.Fatalf("open stub db: %v", err)
	}
	t.Cleanup(func() { db.Close() })

	app := fiber.New()
	SetupPapersRoutes(app, db)
	return app
}

func TestPartitionPapers(t *testing.T) {
	now := time.Now()
	all := []*models.Paper{
		{ID: 1, DateSubmitted: now.Add(-3 * time.Hour)},
		{ID: 2, DateSubmitted: now.Add(-2 * time.Hour), Discussed: true},
		{ID: 3, DateSubmitted: now.Add(-time.Hour)},
		{ID: 4, DateSubmitted: now, Discussed: true},
	}

	pending, discussed := partitionPapers(all)

	if len(pending)+len(discussed) != len(all) {
		t.Fatalf("partition lost papers: %d + %d != %d", len(pending), len(discussed), len(all))
	}
	for _, p := range pending {
		if p.Discussed {
			t.Errorf("paper %d is discussed but landed in pending", p.ID)
		}
	}
	for _, p := range discussed {
		if !p.Discussed {
			t.Errorf("paper %d is pending but landed in discussed", p.ID)
		}
	}

	// Query order must survive within each group
	for i := 1; i < len(pending); i++ {
		if pending[i].DateSubmitted.Before(pending[i-1].DateSubmitted) {
			t.Error("pending group lost its ordering")
		}
	}
	for i := 1; i < len(discussed); i++ {
		if discussed[i].DateSubmitted.Before(discussed[i-1].DateSubmitted) {
			t.Error("discussed group lost its ordering")
		}
	}
}

func TestPartitionPapersEmpty(t *testing.T) {
	pending, discussed := partitionPapers(nil)
	if len(pending) != 0 || len(discussed) != 0 {
		t.Error("partition of nothing returned papers")
	}
}

func TestSubmitWithoutURL(t *testing.T) {
	app := testApp(t)

	req := httptest.NewRequest("POST", "/submit", strings.NewReader("article=  "))
	req.Header.Set("Content-Type", "application/x-www-form-urlencoded")

	resp, err := app.Test(req)
	if err != nil {
		t.Fatalf("request failed: %v", err)
	}
	if resp.StatusCode != fiber.StatusFound {
		t.Fatalf("status = %d, want 302", resp.StatusCode)
	}
	if loc := resp.Header.Get("Location"); loc != "/submit" {
		t.Errorf("redirected to %q, want /submit", loc)
	}

	var sawErrorFlash bool
	for _, c := range resp.Cookies() {
		if c.Name == "coffee_flash" && c.Value != "" {
			sawErrorFlash = true
		}
	}
	if !sawErrorFlash {
		t.Error("no flash message set for the validation error")
	}
}

func TestMarkDiscussedRequiresLogin(t *testing.T) {
	app := testApp(t)

	req := httptest.NewRequest("POST", "/papers/5/discuss", strings.NewReader("volunteer=Jane"))
	req.Header.Set("Content-Type", "application/x-www-form-urlencoded")

	resp, err := app.Test(req)
	if err != nil {
		t.Fatalf("request failed: %v", err)
	}
	if resp.StatusCode != fiber.StatusFound {
		t.Fatalf("status = %d, want 302", resp.StatusCode)
	}
	if loc := resp.Header.Get("Location"); loc != "/auth/login" {
		t.Errorf("redirected to %q, want /auth/login", loc)
	}
}

func TestMarkDiscussedAPIRequiresLogin(t *testing.T) {
	app := testApp(t)

	req := httptest.NewRequest("POST", "/api/papers/5/discuss", nil)

	resp, err := app.Test(req)
	if err != nil {
		t.Fatalf("request failed: %v", err)
	}
	if resp.StatusCode != fiber.StatusUnauthorized {
		t.Fatalf("status = %d, want 401", resp.StatusCode)
	}
}
