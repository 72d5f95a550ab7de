package handlers_test

import (
	"bytes"
	"encoding/json"
	"io"
	"net/http"
	"net/http/httptest"
	"net/url"
	"strings"
	"testing"

	"github.com/gofiber/fiber/v2"
	"github.com/gofiber/fiber/v2/middleware/csrf"
	html "github.com/gofiber/template/html/v2"

	"vellashop/internal/config"
	"vellashop/internal/domain"
	"vellashop/internal/http/handlers"
	"vellashop/internal/repos"
	"vellashop/internal/services"
)

func testConfig() config.Config {
	return config.Config{
		BaseURL:       "http://localhost:8080",
		WhatsAppPhone: "34661202616",
		Pricing:       config.DefaultPricing(),
	}
}

func testProducts() []domain.Product {
	return []domain.Product{
		{ID: 101, Name: "Eau de Toilette Ámbar", Brand: "Amber", PriceCents: 1000, BeautyPoints: 5, Category: "perfume"},
		{ID: 202, Name: "Set Esencias", Brand: "Essense", PriceCents: 3000, ShippingSaver: true, Category: "wellness", Tag: "SET"},
		{ID: 42502, Name: "Eau de Parfum Amber Elixir", Brand: "Amber Elixir", PriceCents: 1999, Category: "perfume"},
	}
}

// newTestApp wires the real handlers and middleware the way main does, over
// an in-memory database and a fixed catalog.
func newTestApp(t *testing.T) *fiber.App {
	t.Helper()
	db, err := repos.OpenDB(":memory:")
	if err != nil {
		t.Fatalf("open db: %v", err)
	}
	t.Cleanup(func() { _ = db.Close() })

	deps := handlers.NewDeps(db, testConfig(), repos.NewCatalogRepo(testProducts()))

	engine := html.New("../../web/templates", ".html")
	app := fiber.New(fiber.Config{Views: engine})
	app.Use(csrf.New(csrf.Config{KeyLookup: "form:csrf", CookieName: "csrf_", CookieSameSite: "Lax"}))
	app.Use(func(c *fiber.Ctx) error {
		if tok := c.Locals("csrf"); tok != nil {
			c.Locals("CSRFToken", tok.(string))
		}
		return c.Next()
	})
	app.Use(deps.CartHandler.ConsumeSharedToken)
	app.Use(deps.CartHandler.InjectCartCount)

	app.Get("/", deps.CatalogHandler.Home)
	app.Get("/shop", deps.CatalogHandler.Shop)
	app.Get("/product/:id", deps.CatalogHandler.Detail)
	app.Get("/regalos", deps.CatalogHandler.Regalos)
	app.Get("/catalogo", deps.CatalogHandler.Catalogo)
	app.Get("/cart", deps.CartHandler.View)
	app.Post("/cart", deps.CartHandler.Add)
	app.Post("/cart/update", deps.CartHandler.Update)
	app.Post("/cart/remove", deps.CartHandler.Remove)
	app.Post("/cart/clear", deps.CartHandler.Clear)
	app.Get("/cart/share", deps.CartHandler.Share)
	app.Get("/cart/export.csv", deps.CartHandler.ExportCSV)
	app.Get("/checkout", deps.CheckoutHandler.Checkout)
	app.Post("/checkout", deps.CheckoutHandler.Place)
	app.Get("/healthz", func(c *fiber.Ctx) error { return c.JSON(fiber.Map{"ok": true}) })
	return app
}

// session collects the cookies a browser would hold across requests.
type session struct {
	app     *fiber.App
	cookies map[string]string
}

func newSession(t *testing.T, app *fiber.App) *session {
	t.Helper()
	s := &session{app: app, cookies: map[string]string{}}
	// prime sid and csrf cookies the way a first page view would
	resp := s.get(t, "/cart")
	if resp.StatusCode != http.StatusOK {
		t.Fatalf("priming GET /cart: %d", resp.StatusCode)
	}
	if s.cookies["csrf_"] == "" || s.cookies["sid"] == "" {
		t.Fatalf("missing session cookies: %v", s.cookies)
	}
	return s
}

func (s *session) do(t *testing.T, req *http.Request) *http.Response {
	t.Helper()
	for name, val := range s.cookies {
		req.AddCookie(&http.Cookie{Name: name, Value: val})
	}
	resp, err := s.app.Test(req)
	if err != nil {
		t.Fatal(err)
	}
	for _, c := range resp.Cookies() {
		s.cookies[c.Name] = c.Value
	}
	return resp
}

func (s *session) get(t *testing.T, path string) *http.Response {
	t.Helper()
	return s.do(t, httptest.NewRequest("GET", path, nil))
}

func (s *session) postForm(t *testing.T, path string, form url.Values) *http.Response {
	t.Helper()
	form.Set("csrf", s.cookies["csrf_"])
	req := httptest.NewRequest("POST", path, strings.NewReader(form.Encode()))
	req.Header.Set("Content-Type", "application/x-www-form-urlencoded")
	return s.do(t, req)
}

func body(t *testing.T, resp *http.Response) []byte {
	t.Helper()
	b, err := io.ReadAll(resp.Body)
	if err != nil {
		t.Fatal(err)
	}
	return b
}

func TestCartFlowEndToEnd(t *testing.T) {
	app := newTestApp(t)
	s := newSession(t, app)

	// 2 x perfume (10.00, 5 points each) + 1 x shipping-saver set (30.00)
	for i := 0; i < 2; i++ {
		resp := s.postForm(t, "/cart", url.Values{"productId": {"101"}, "qty": {"1"}})
		if resp.StatusCode != http.StatusFound {
			t.Fatalf("add #%d: %d", i+1, resp.StatusCode)
		}
	}
	resp := s.postForm(t, "/cart", url.Values{"productId": {"202"}, "qty": {"1"}})
	if resp.StatusCode != http.StatusFound {
		t.Fatalf("add saver: %d", resp.StatusCode)
	}

	page := string(body(t, s.get(t, "/cart")))
	for _, want := range []string{"Eau de Toilette Ámbar", "Set Esencias", "50.00 €", "7.50 €", "42.50 €"} {
		if !strings.Contains(page, want) {
			t.Fatalf("cart page missing %q:\n%s", want, page)
		}
	}

	// hand off to WhatsApp with the discounted total
	resp = s.postForm(t, "/checkout", url.Values{
		"firstName": {"María"}, "lastName": {"García"},
		"address": {"Calle Mayor 1"}, "city": {"Madrid"},
		"zip": {"28001"}, "phone": {"600000000"},
	})
	if resp.StatusCode != http.StatusFound {
		t.Fatalf("checkout: %d", resp.StatusCode)
	}
	loc, err := url.Parse(resp.Header.Get("Location"))
	if err != nil {
		t.Fatal(err)
	}
	if loc.Host != "wa.me" || loc.Path != "/34661202616" {
		t.Fatalf("bad hand-off target: %s", resp.Header.Get("Location"))
	}
	msg := loc.Query().Get("text")
	if !strings.Contains(msg, "*Total:* 42.50 €") {
		t.Fatalf("hand-off total must include the discount:\n%s", msg)
	}
	if !strings.Contains(msg, "María García") {
		t.Fatalf("customer missing from hand-off:\n%s", msg)
	}
}

func TestCheckoutValidationFailure(t *testing.T) {
	app := newTestApp(t)
	s := newSession(t, app)
	s.postForm(t, "/cart", url.Values{"productId": {"101"}, "qty": {"1"}})

	resp := s.postForm(t, "/checkout", url.Values{"firstName": {"María"}})
	if resp.StatusCode != http.StatusBadRequest {
		t.Fatalf("want 400 for incomplete contact, got %d", resp.StatusCode)
	}
	page := string(body(t, resp))
	if !strings.Contains(page, "Los apellidos son obligatorios") {
		t.Fatalf("error message missing:\n%s", page)
	}
	// the cart survives the failed submit
	if !strings.Contains(string(body(t, s.get(t, "/cart"))), "Eau de Toilette Ámbar") {
		t.Fatal("cart lost on validation failure")
	}
}

func TestCheckoutEmptyCartRedirects(t *testing.T) {
	app := newTestApp(t)
	s := newSession(t, app)
	resp := s.postForm(t, "/checkout", url.Values{
		"firstName": {"María"}, "lastName": {"García"},
		"address": {"Calle Mayor 1"}, "city": {"Madrid"},
		"zip": {"28001"}, "phone": {"600000000"},
	})
	if resp.StatusCode != http.StatusFound || resp.Header.Get("Location") != "/cart" {
		t.Fatalf("empty cart must bounce to /cart, got %d -> %s", resp.StatusCode, resp.Header.Get("Location"))
	}
}

func TestShareAndConsumeToken(t *testing.T) {
	app := newTestApp(t)
	sender := newSession(t, app)
	sender.postForm(t, "/cart", url.Values{"productId": {"42502"}, "qty": {"2"}})

	resp := sender.get(t, "/cart/share")
	if resp.StatusCode != http.StatusOK {
		t.Fatalf("share: %d", resp.StatusCode)
	}
	var out struct {
		URL string `json:"url"`
	}
	if err := json.Unmarshal(body(t, resp), &out); err != nil {
		t.Fatal(err)
	}
	shared, err := url.Parse(out.URL)
	if err != nil {
		t.Fatal(err)
	}
	token := shared.Query().Get("cart")
	if token == "" {
		t.Fatalf("share url missing cart token: %s", out.URL)
	}

	// a different visitor opens the link: cart restored, token stripped
	recv := newSession(t, app)
	resp = recv.get(t, "/?cart="+url.QueryEscape(token))
	if resp.StatusCode != http.StatusFound || resp.Header.Get("Location") != "/" {
		t.Fatalf("want redirect to clean url, got %d -> %s", resp.StatusCode, resp.Header.Get("Location"))
	}
	page := string(body(t, recv.get(t, "/cart")))
	if !strings.Contains(page, "Eau de Parfum Amber Elixir") {
		t.Fatalf("shared cart not restored:\n%s", page)
	}
}

func TestSharedTokenReplacesExistingCart(t *testing.T) {
	app := newTestApp(t)
	s := newSession(t, app)
	s.postForm(t, "/cart", url.Values{"productId": {"101"}, "qty": {"1"}})

	token := services.EncodeCartToken([]domain.CartLine{{
		ID:       services.LineID(42502, nil),
		Product:  domain.Product{ID: 42502},
		Quantity: 1,
	}})
	resp := s.get(t, "/cart?cart="+url.QueryEscape(token))
	if resp.StatusCode != http.StatusFound || resp.Header.Get("Location") != "/cart" {
		t.Fatalf("want redirect to /cart, got %d -> %s", resp.StatusCode, resp.Header.Get("Location"))
	}
	page := string(body(t, s.get(t, "/cart")))
	if !strings.Contains(page, "Eau de Parfum Amber Elixir") {
		t.Fatalf("token cart not applied:\n%s", page)
	}
	if strings.Contains(page, "Eau de Toilette Ámbar") {
		t.Fatalf("token must replace the previous cart:\n%s", page)
	}
}

func TestMalformedTokenIgnored(t *testing.T) {
	app := newTestApp(t)
	s := newSession(t, app)
	s.postForm(t, "/cart", url.Values{"productId": {"101"}, "qty": {"1"}})

	resp := s.get(t, "/cart?cart=%21%21garbage")
	if resp.StatusCode != http.StatusFound {
		t.Fatalf("bad token must still strip the param, got %d", resp.StatusCode)
	}
	page := string(body(t, s.get(t, "/cart")))
	if !strings.Contains(page, "Eau de Toilette Ámbar") {
		t.Fatalf("existing cart must survive a bad token:\n%s", page)
	}
}

func TestCartCSVDownload(t *testing.T) {
	app := newTestApp(t)
	s := newSession(t, app)
	s.postForm(t, "/cart", url.Values{"productId": {"101"}, "qty": {"3"}})

	resp := s.get(t, "/cart/export.csv")
	if resp.StatusCode != http.StatusOK {
		t.Fatalf("export: %d", resp.StatusCode)
	}
	if ct := resp.Header.Get("Content-Type"); !strings.HasPrefix(ct, "text/csv") {
		t.Fatalf("bad content type %q", ct)
	}
	if cd := resp.Header.Get("Content-Disposition"); !strings.Contains(cd, "carrito_vella.csv") {
		t.Fatalf("bad disposition %q", cd)
	}
	b := body(t, resp)
	if !bytes.HasPrefix(b, []byte{0xEF, 0xBB, 0xBF}) {
		t.Fatal("csv body must start with the UTF-8 BOM")
	}
	if !strings.Contains(string(b), "Eau de Toilette Ámbar") {
		t.Fatalf("csv missing cart line:\n%s", b)
	}
}

func TestShareEmptyCartRejected(t *testing.T) {
	app := newTestApp(t)
	s := newSession(t, app)
	resp := s.get(t, "/cart/share")
	if resp.StatusCode != http.StatusBadRequest {
		t.Fatalf("want 400 for empty cart share, got %d", resp.StatusCode)
	}
}

func TestAddRejectsBadProductID(t *testing.T) {
	app := newTestApp(t)
	s := newSession(t, app)
	for _, v := range []string{"", "abc", "-5", "99999"} {
		resp := s.postForm(t, "/cart", url.Values{"productId": {v}, "qty": {"1"}})
		if resp.StatusCode != http.StatusBadRequest {
			t.Fatalf("productId %q: want 400, got %d", v, resp.StatusCode)
		}
	}
}

func TestHeaderShowsCartCount(t *testing.T) {
	app := newTestApp(t)
	s := newSession(t, app)

	// empty cart: no badge anywhere
	if strings.Contains(string(body(t, s.get(t, "/"))), `<span class="count">`) {
		t.Fatal("empty cart must not show a count badge")
	}

	s.postForm(t, "/cart", url.Values{"productId": {"101"}, "qty": {"2"}})
	s.postForm(t, "/cart", url.Values{"productId": {"202"}, "qty": {"1"}})

	for _, path := range []string{"/", "/shop", "/product/101", "/regalos", "/catalogo", "/checkout"} {
		page := string(body(t, s.get(t, path)))
		if !strings.Contains(page, `<span class="count">3</span>`) {
			t.Fatalf("%s header missing cart count:\n%s", path, page)
		}
	}
}

func TestUpdateNegativeQuantityRemoves(t *testing.T) {
	app := newTestApp(t)
	s := newSession(t, app)
	s.postForm(t, "/cart", url.Values{"productId": {"101"}, "qty": {"2"}})

	lineID := services.LineID(101, nil)
	for _, qty := range []string{"-3", "0", "abc"} {
		resp := s.postForm(t, "/cart/update", url.Values{"lineId": {lineID}, "qty": {qty}})
		if resp.StatusCode != http.StatusFound {
			t.Fatalf("update qty=%s: %d", qty, resp.StatusCode)
		}
		page := string(body(t, s.get(t, "/cart")))
		if !strings.Contains(page, "Tu cesta está vacía") {
			t.Fatalf("qty=%s must remove the line:\n%s", qty, page)
		}
		s.postForm(t, "/cart", url.Values{"productId": {"101"}, "qty": {"2"}})
	}
}

func TestSharedTokenKeepsQueryParams(t *testing.T) {
	app := newTestApp(t)
	s := newSession(t, app)

	token := services.EncodeCartToken([]domain.CartLine{{
		ID:       services.LineID(42502, nil),
		Product:  domain.Product{ID: 42502},
		Quantity: 1,
	}})
	resp := s.get(t, "/shop?category=perfume&cart="+url.QueryEscape(token))
	if resp.StatusCode != http.StatusFound {
		t.Fatalf("consume: %d", resp.StatusCode)
	}
	loc, err := url.Parse(resp.Header.Get("Location"))
	if err != nil {
		t.Fatal(err)
	}
	if loc.Path != "/shop" || loc.Query().Get("category") != "perfume" {
		t.Fatalf("category filter lost: %s", resp.Header.Get("Location"))
	}
	if loc.Query().Has("cart") {
		t.Fatalf("token must be stripped: %s", resp.Header.Get("Location"))
	}
}

func TestRegalosListsOnlySets(t *testing.T) {
	app := newTestApp(t)
	s := newSession(t, app)
	page := string(body(t, s.get(t, "/regalos")))
	if !strings.Contains(page, "Set Esencias") {
		t.Fatalf("SET product missing:\n%s", page)
	}
	if strings.Contains(page, "Eau de Toilette Ámbar") {
		t.Fatalf("untagged product must not appear:\n%s", page)
	}
}

func TestCatalogoPageLinksExport(t *testing.T) {
	app := newTestApp(t)
	s := newSession(t, app)
	page := string(body(t, s.get(t, "/catalogo")))
	if !strings.Contains(page, `href="/catalogo.csv"`) {
		t.Fatalf("download link missing:\n%s", page)
	}
	if !strings.Contains(page, "3 productos") {
		t.Fatalf("product count missing:\n%s", page)
	}
}

func TestHealthz(t *testing.T) {
	app := newTestApp(t)
	resp, err := app.Test(httptest.NewRequest("GET", "/healthz", nil))
	if err != nil {
		t.Fatal(err)
	}
	if resp.StatusCode != http.StatusOK {
		t.Fatalf("healthz: %d", resp.StatusCode)
	}
}
