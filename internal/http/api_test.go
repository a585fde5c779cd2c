package handlers_test

import (
	"encoding/json"
	"net/http"
	"net/http/httptest"
	"strings"
	"testing"

	"github.com/gofiber/fiber/v2"
	"github.com/gofiber/fiber/v2/middleware/requestid"

	"selectshop/internal/http/handlers"
	"selectshop/internal/repos"
	"selectshop/internal/services"
)

// newAPIApp wires the app the way main does, against an in-memory store
// with the seeded users (alice/bob/admin) and their starter folders.
func newAPIApp(t *testing.T) *fiber.App {
	t.Helper()
	db, err := repos.OpenDB(":memory:")
	if err != nil {
		t.Fatalf("open db: %v", err)
	}

	userRepo := repos.NewUserRepo(db)
	authSvc := &services.AuthService{Users: userRepo}
	authH := &handlers.AuthHandler{Auth: authSvc}

	app := fiber.New()
	app.Use(requestid.New())

	app.Post("/login", authH.Login)
	app.Post("/logout", authH.Logout)

	deps := handlers.NewDeps(db)
	api := app.Group("/api", handlers.RequireUser(authSvc))
	api.Post("/products", deps.ProductHandler.Create)
	api.Get("/products", deps.ProductHandler.List)
	api.Put("/products/:id", deps.ProductHandler.UpdateMyprice)
	api.Post("/products/:id/folder", deps.ProductHandler.AddFolder)
	api.Put("/products/:id/sync", deps.ProductHandler.Sync)
	api.Get("/folders/:folderId/products", deps.ProductHandler.ListInFolder)
	api.Get("/folders", deps.FolderHandler.List)
	api.Post("/folders", deps.FolderHandler.Add)

	return app
}

func doJSON(t *testing.T, app *fiber.App, method, target, sid, body string) *http.Response {
	t.Helper()
	req := httptest.NewRequest(method, target, strings.NewReader(body))
	if body != "" {
		req.Header.Set("Content-Type", "application/json")
	}
	if sid != "" {
		req.AddCookie(&http.Cookie{Name: "sid", Value: sid})
	}
	resp, err := app.Test(req, 10000)
	if err != nil {
		t.Fatalf("%s %s: %v", method, target, err)
	}
	return resp
}

func login(t *testing.T, app *fiber.App, username string) string {
	t.Helper()
	resp := doJSON(t, app, "POST", "/login", "", `{"username":"`+username+`","password":"Passw0rd!"}`)
	if resp.StatusCode != http.StatusOK {
		t.Fatalf("login as %s: status %d", username, resp.StatusCode)
	}
	for _, c := range resp.Cookies() {
		if c.Name == "sid" {
			return c.Value
		}
	}
	t.Fatal("no sid cookie after login")
	return ""
}

func decode[T any](t *testing.T, resp *http.Response) T {
	t.Helper()
	var v T
	if err := json.NewDecoder(resp.Body).Decode(&v); err != nil {
		t.Fatalf("decode body: %v", err)
	}
	return v
}

func TestAPI_RequiresLogin(t *testing.T) {
	app := newAPIApp(t)

	resp := doJSON(t, app, "GET", "/api/products", "", "")
	if resp.StatusCode != http.StatusUnauthorized {
		t.Fatalf("want 401 without session, got %d", resp.StatusCode)
	}
}

func TestAPI_ProductFlow(t *testing.T) {
	app := newAPIApp(t)
	sid := login(t, app, "alice")

	// create
	resp := doJSON(t, app, "POST", "/api/products", sid,
		`{"title":"SNES","link":"https://shop/snes","image":"snes.jpg","lprice":10000}`)
	if resp.StatusCode != http.StatusCreated {
		t.Fatalf("create: want 201, got %d", resp.StatusCode)
	}
	created := decode[services.ProductResponse](t, resp)
	if created.Myprice != 0 {
		t.Fatalf("create: want myprice=0, got %d", created.Myprice)
	}

	// target price below the minimum
	resp = doJSON(t, app, "PUT", "/api/products/"+created.ID, sid, `{"myprice":50}`)
	if resp.StatusCode != http.StatusBadRequest {
		t.Fatalf("below-min: want 400, got %d", resp.StatusCode)
	}

	// accepted target price
	resp = doJSON(t, app, "PUT", "/api/products/"+created.ID, sid, `{"myprice":9500}`)
	if resp.StatusCode != http.StatusOK {
		t.Fatalf("update: want 200, got %d", resp.StatusCode)
	}
	updated := decode[services.ProductResponse](t, resp)
	if updated.Myprice != 9500 {
		t.Fatalf("update: want myprice=9500, got %d", updated.Myprice)
	}

	// unknown id
	resp = doJSON(t, app, "PUT", "/api/products/no-such-id", sid, `{"myprice":9500}`)
	if resp.StatusCode != http.StatusNotFound {
		t.Fatalf("unknown id: want 404, got %d", resp.StatusCode)
	}

	// someone else's folder
	resp = doJSON(t, app, "POST", "/api/products/"+created.ID+"/folder?folderId=f-bob-wish", sid, "")
	if resp.StatusCode != http.StatusForbidden {
		t.Fatalf("cross-user link: want 403, got %d", resp.StatusCode)
	}

	// own folder: first link ok, second is a conflict
	resp = doJSON(t, app, "POST", "/api/products/"+created.ID+"/folder?folderId=f-alice-wish", sid, "")
	if resp.StatusCode != http.StatusNoContent {
		t.Fatalf("link: want 204, got %d", resp.StatusCode)
	}
	resp = doJSON(t, app, "POST", "/api/products/"+created.ID+"/folder?folderId=f-alice-wish", sid, "")
	if resp.StatusCode != http.StatusConflict {
		t.Fatalf("duplicate link: want 409, got %d", resp.StatusCode)
	}

	// sync from an external item record
	resp = doJSON(t, app, "PUT", "/api/products/"+created.ID+"/sync", sid,
		`{"title":"X","link":"l","image":"i","lprice":8000}`)
	if resp.StatusCode != http.StatusOK {
		t.Fatalf("sync: want 200, got %d", resp.StatusCode)
	}
	synced := decode[services.ProductResponse](t, resp)
	if synced.Title != "X" || synced.Lprice != 8000 || synced.Myprice != 9500 {
		t.Fatalf("sync view wrong: %+v", synced)
	}

	// listing carries the folder view and page metadata
	resp = doJSON(t, app, "GET", "/api/products?page=1&size=10&sortBy=id&isAsc=true", sid, "")
	if resp.StatusCode != http.StatusOK {
		t.Fatalf("list: want 200, got %d", resp.StatusCode)
	}
	page := decode[services.ProductPage](t, resp)
	if page.Total != 1 || len(page.Items) != 1 {
		t.Fatalf("list: want one product, got %+v", page)
	}
	if len(page.Items[0].ProductFolders) != 1 || page.Items[0].ProductFolders[0].ID != "f-alice-wish" {
		t.Fatalf("list: folder view missing: %+v", page.Items[0])
	}

	// folder-scoped listing
	resp = doJSON(t, app, "GET", "/api/folders/f-alice-wish/products", sid, "")
	if resp.StatusCode != http.StatusOK {
		t.Fatalf("folder list: want 200, got %d", resp.StatusCode)
	}
	inFolder := decode[services.ProductPage](t, resp)
	if inFolder.Total != 1 {
		t.Fatalf("folder list: want one product, got %+v", inFolder)
	}
}

func TestAPI_BadSortFieldRejected(t *testing.T) {
	app := newAPIApp(t)
	sid := login(t, app, "alice")

	resp := doJSON(t, app, "GET", "/api/products?sortBy=password_hash", sid, "")
	if resp.StatusCode != http.StatusBadRequest {
		t.Fatalf("want 400 for unknown sort field, got %d", resp.StatusCode)
	}
}

func TestAPI_AdminListingSpansOwners(t *testing.T) {
	app := newAPIApp(t)

	aliceSID := login(t, app, "alice")
	resp := doJSON(t, app, "POST", "/api/products", aliceSID, `{"title":"SNES","lprice":10000}`)
	if resp.StatusCode != http.StatusCreated {
		t.Fatalf("create: want 201, got %d", resp.StatusCode)
	}

	adminSID := login(t, app, "admin")
	resp = doJSON(t, app, "GET", "/api/products", adminSID, "")
	if resp.StatusCode != http.StatusOK {
		t.Fatalf("admin list: want 200, got %d", resp.StatusCode)
	}
	page := decode[services.ProductPage](t, resp)
	if page.Total != 1 {
		t.Fatalf("admin must see alice's product, got %+v", page)
	}

	bobSID := login(t, app, "bob")
	resp = doJSON(t, app, "GET", "/api/products", bobSID, "")
	if resp.StatusCode != http.StatusOK {
		t.Fatalf("bob list: want 200, got %d", resp.StatusCode)
	}
	page = decode[services.ProductPage](t, resp)
	if page.Total != 0 {
		t.Fatalf("bob must not see alice's product, got %+v", page)
	}
}

func TestAPI_FolderEndpoints(t *testing.T) {
	app := newAPIApp(t)
	sid := login(t, app, "alice")

	resp := doJSON(t, app, "POST", "/api/folders", sid, `{"names":["gifts","sales"]}`)
	if resp.StatusCode != http.StatusCreated {
		t.Fatalf("add folders: want 201, got %d", resp.StatusCode)
	}

	// "wishlist" is seeded for alice
	resp = doJSON(t, app, "POST", "/api/folders", sid, `{"names":["wishlist"]}`)
	if resp.StatusCode != http.StatusConflict {
		t.Fatalf("duplicate folder name: want 409, got %d", resp.StatusCode)
	}

	resp = doJSON(t, app, "GET", "/api/folders", sid, "")
	if resp.StatusCode != http.StatusOK {
		t.Fatalf("list folders: want 200, got %d", resp.StatusCode)
	}
	folders := decode[[]services.FolderResponse](t, resp)
	if len(folders) != 3 {
		t.Fatalf("want 3 folders, got %+v", folders)
	}
}
