package flash

import (
	"encoding/json"
	"io"
	"net/http"
	"net/http/httptest"
	"testing"

	"github.com/gofiber/fiber/v2"
)

func testApp() *fiber.App {
	app := fiber.New()
	app.Get("/set", func(c *fiber.Ctx) error {
		Set(c, "success", "it worked")
		return c.Redirect("/take")
	})
	app.Get("/take", func(c *fiber.Ctx) error {
		msg, ok := Take(c)
		return c.JSON(fiber.Map{"ok": ok, "msg": msg})
	})
	return app
}

func takeResponse(t *testing.T, app *fiber.App, cookies []*http.Cookie) (bool, Message, *http.Response) {
	t.Helper()

	req := httptest.NewRequest("GET", "/take", nil)
	for _, c := range cookies {
		req.AddCookie(c)
	}
	resp, err := app.Test(req)
	if err != nil {
		t.Fatalf("request failed: %v", err)
	}

	body, _ := io.ReadAll(resp.Body)
	var out struct {
		OK  bool    `json:"ok"`
		Msg Message `json:"msg"`
	}
	if err := json.Unmarshal(body, &out); err != nil {
		t.Fatalf("unmarshal response: %v", err)
	}
	return out.OK, out.Msg, resp
}

func TestFlashRoundTrip(t *testing.T) {
	app := testApp()

	resp, err := app.Test(httptest.NewRequest("GET", "/set", nil))
	if err != nil {
		t.Fatalf("set request failed: %v", err)
	}
	cookies := resp.Cookies()
	if len(cookies) == 0 {
		t.Fatal("Set did not write a cookie")
	}

	ok, msg, takeResp := takeResponse(t, app, cookies)
	if !ok {
		t.Fatal("Take found no message")
	}
	if msg.Category != "success" || msg.Text != "it worked" {
		t.Errorf("got message %+v", msg)
	}

	// Take must expire the cookie so the message renders once only
	for _, c := range takeResp.Cookies() {
		if c.Name == cookieName && c.Value == "" {
			return
		}
	}
	t.Error("Take did not clear the flash cookie")
}

func TestTakeWithoutMessage(t *testing.T) {
	app := testApp()

	ok, _, _ := takeResponse(t, app, nil)
	if ok {
		t.Error("Take reported a message with no cookie set")
	}
}

func TestTakeIgnoresGarbageCookie(t *testing.T) {
	app := testApp()

	ok, _, _ := takeResponse(t, app, []*http.Cookie{{Name: cookieName, Value: "%%%not-base64"}})
	if ok {
		t.Error("Take reported a message from a garbage cookie")
	}
}
