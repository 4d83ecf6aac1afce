package wire

import (
	"bytes"
	"encoding/json"
	"mime/multipart"
	"net/http"
	"net/http/httptest"
	"net/url"
	"strings"
	"testing"
	"time"

	"biz-directory/internal/data/repository/repotest"
	"biz-directory/internal/dto/response"
	"biz-directory/internal/usecase"
	"biz-directory/pkg/cache"
	"biz-directory/pkg/mailer"
	"biz-directory/pkg/qrcode"
	"biz-directory/pkg/storage"
	"biz-directory/pkg/token"
	"biz-directory/pkg/utils"

	"github.com/spf13/afero"
	"go.uber.org/zap"
)

type envelope struct {
	Status  bool              `json:"status"`
	Message string            `json:"message"`
	Data    json.RawMessage   `json:"data"`
	Errors  map[string]string `json:"errors"`
}

func newTestRouter(t *testing.T) http.Handler {
	t.Helper()

	repo, _ := repotest.New()
	log := zap.NewNop()
	config := &utils.Config{
		App:     utils.AppConfig{PublicURL: "https://deals.test"},
		Storage: utils.StorageConfig{PublicPrefix: "/uploads"},
	}
	blobs := storage.NewLocalStoreFs(afero.NewMemMapFs(), "/uploads", log)

	service := usecase.NewService(repo, usecase.Deps{
		Tokens:   token.NewManager("router-secret", "biz-directory-test", time.Hour),
		Denylist: cache.NewMemoryDenylist(),
		Blobs:    blobs,
		QR:       qrcode.NewRenderer(64),
		Notifier: mailer.New(utils.EmailConfig{}, log),
	}, config, log)
	t.Cleanup(service.Mail.Wait)

	return Wiring(service, Options{Static: blobs.Handler()}, config, log).Router
}

func call(t *testing.T, h http.Handler, method, path, bearer string, body any) (*httptest.ResponseRecorder, envelope) {
	t.Helper()

	var reader *bytes.Reader
	if body != nil {
		raw, err := json.Marshal(body)
		if err != nil {
			t.Fatalf("marshal body: %v", err)
		}
		reader = bytes.NewReader(raw)
	} else {
		reader = bytes.NewReader(nil)
	}

	req := httptest.NewRequest(method, path, reader)
	req.Header.Set("Content-Type", "application/json")
	if bearer != "" {
		req.Header.Set("Authorization", "Bearer "+bearer)
	}
	return serve(t, h, req)
}

func serve(t *testing.T, h http.Handler, req *http.Request) (*httptest.ResponseRecorder, envelope) {
	t.Helper()
	rec := httptest.NewRecorder()
	h.ServeHTTP(rec, req)

	var env envelope
	if strings.HasPrefix(rec.Header().Get("Content-Type"), "application/json") {
		if err := json.Unmarshal(rec.Body.Bytes(), &env); err != nil {
			t.Fatalf("decode %s %s response: %v", req.Method, req.URL.Path, err)
		}
	}
	return rec, env
}

func expectStatus(t *testing.T, rec *httptest.ResponseRecorder, want int) {
	t.Helper()
	if rec.Code != want {
		t.Fatalf("expected status %d, got %d: %s", want, rec.Code, rec.Body.String())
	}
}

func signup(t *testing.T, h http.Handler, body map[string]any) response.AuthResponse {
	t.Helper()
	rec, env := call(t, h, http.MethodPost, "/api/auth/signup", "", body)
	expectStatus(t, rec, http.StatusCreated)

	var auth response.AuthResponse
	if err := json.Unmarshal(env.Data, &auth); err != nil {
		t.Fatalf("decode auth: %v", err)
	}
	return auth
}

func businessSignup(username string) map[string]any {
	return map[string]any{
		"email":    username + "@example.com",
		"username": username,
		"password": "secret-pw",
		"business": map[string]any{"branch_name": username + " main"},
	}
}

func customerSignup(username string) map[string]any {
	return map[string]any{
		"email":    username + "@example.com",
		"username": username,
		"password": "secret-pw",
		"customer": map[string]any{"gender": "f"},
	}
}

func TestHealth(t *testing.T) {
	h := newTestRouter(t)
	rec, env := call(t, h, http.MethodGet, "/health", "", nil)
	expectStatus(t, rec, http.StatusOK)
	if !env.Status {
		t.Fatalf("unexpected body %s", rec.Body.String())
	}
}

func TestSignupValidationAndConflict(t *testing.T) {
	h := newTestRouter(t)

	rec, env := call(t, h, http.MethodPost, "/api/auth/signup", "", map[string]any{"email": "bad"})
	expectStatus(t, rec, http.StatusBadRequest)
	if _, ok := env.Errors["email"]; !ok {
		t.Fatalf("expected email error, got %+v", env.Errors)
	}

	signup(t, h, businessSignup("acme"))

	rec, env = call(t, h, http.MethodPost, "/api/auth/signup", "", businessSignup("acme"))
	expectStatus(t, rec, http.StatusConflict)
	if _, ok := env.Errors["email"]; !ok {
		t.Fatalf("expected email conflict, got %+v", env.Errors)
	}
}

func TestProtectedRoutesRequireToken(t *testing.T) {
	h := newTestRouter(t)

	for _, route := range []struct{ method, path string }{
		{http.MethodGet, "/api/auth/me"},
		{http.MethodGet, "/api/users"},
		{http.MethodGet, "/api/categories"},
		{http.MethodPost, "/api/offers"},
	} {
		rec, _ := call(t, h, route.method, route.path, "", nil)
		expectStatus(t, rec, http.StatusUnauthorized)

		rec, _ = call(t, h, route.method, route.path, "garbage", nil)
		expectStatus(t, rec, http.StatusUnauthorized)
	}
}

func TestLoginJSONAndForm(t *testing.T) {
	h := newTestRouter(t)
	signup(t, h, customerSignup("walker"))

	rec, _ := call(t, h, http.MethodPost, "/api/auth/login", "", map[string]string{"username": "walker", "password": "secret-pw"})
	expectStatus(t, rec, http.StatusOK)

	form := url.Values{"username": {"walker"}, "password": {"secret-pw"}}
	req := httptest.NewRequest(http.MethodPost, "/api/auth/login", strings.NewReader(form.Encode()))
	req.Header.Set("Content-Type", "application/x-www-form-urlencoded")
	rec, _ = serve(t, h, req)
	expectStatus(t, rec, http.StatusOK)

	rec, ghost := call(t, h, http.MethodPost, "/api/auth/login", "", map[string]string{"username": "ghost", "password": "whatever"})
	expectStatus(t, rec, http.StatusUnauthorized)
	rec, wrong := call(t, h, http.MethodPost, "/api/auth/login", "", map[string]string{"username": "walker", "password": "wrong_pw"})
	expectStatus(t, rec, http.StatusUnauthorized)
	if ghost.Message != wrong.Message {
		t.Fatalf("login failures differ: %q vs %q", ghost.Message, wrong.Message)
	}
}

func TestLogoutRevokesToken(t *testing.T) {
	h := newTestRouter(t)
	auth := signup(t, h, customerSignup("walker"))

	rec, _ := call(t, h, http.MethodGet, "/api/auth/me", auth.AccessToken, nil)
	expectStatus(t, rec, http.StatusOK)

	rec, _ = call(t, h, http.MethodPost, "/api/auth/logout", auth.AccessToken, nil)
	expectStatus(t, rec, http.StatusOK)

	rec, _ = call(t, h, http.MethodGet, "/api/auth/me", auth.AccessToken, nil)
	expectStatus(t, rec, http.StatusUnauthorized)
}

func TestOfferLifecycle(t *testing.T) {
	h := newTestRouter(t)
	owner := signup(t, h, businessSignup("acme"))
	customer := signup(t, h, customerSignup("walker"))

	offerBody := map[string]any{
		"business_id": owner.User.Business.ID,
		"name":        "Two for one",
		"start_date":  "2025-06-01T00:00:00Z",
		"end_date":    "2025-06-30T00:00:00Z",
	}

	rec, _ := call(t, h, http.MethodPost, "/api/offers", customer.AccessToken, offerBody)
	expectStatus(t, rec, http.StatusForbidden)

	rec, env := call(t, h, http.MethodPost, "/api/offers", owner.AccessToken, offerBody)
	expectStatus(t, rec, http.StatusCreated)
	var offer response.OfferResponse
	if err := json.Unmarshal(env.Data, &offer); err != nil {
		t.Fatalf("decode offer: %v", err)
	}

	rec, _ = call(t, h, http.MethodPost, "/api/offers", owner.AccessToken, offerBody)
	expectStatus(t, rec, http.StatusConflict)

	rec, env = call(t, h, http.MethodGet, "/api/offers/redeem/"+offer.RedemptionCode, "", nil)
	expectStatus(t, rec, http.StatusOK)
	var redemption response.RedemptionResponse
	if err := json.Unmarshal(env.Data, &redemption); err != nil {
		t.Fatalf("decode redemption: %v", err)
	}
	if redemption.OfferID != offer.ID || redemption.BranchName != "acme main" {
		t.Fatalf("unexpected redemption %+v", redemption)
	}

	rec, _ = call(t, h, http.MethodGet, "/api/offers/redeem/"+strings.Repeat("f", 32), "", nil)
	expectStatus(t, rec, http.StatusNotFound)

	rec, _ = call(t, h, http.MethodGet, *offer.QRCodePath, "", nil)
	expectStatus(t, rec, http.StatusOK)
	if ct := rec.Header().Get("Content-Type"); ct != "image/png" {
		t.Fatalf("expected png, got %s", ct)
	}

	rec, env = call(t, h, http.MethodGet, "/api/businesses/"+owner.User.Business.ID+"/offers", "", nil)
	expectStatus(t, rec, http.StatusOK)
	var offers []response.OfferResponse
	if err := json.Unmarshal(env.Data, &offers); err != nil {
		t.Fatalf("decode offers: %v", err)
	}
	if len(offers) != 1 {
		t.Fatalf("expected one offer, got %d", len(offers))
	}
	if strings.Contains(string(env.Data), offer.RedemptionCode) || strings.Contains(string(env.Data), "qr_code_path") {
		t.Fatalf("anonymous listing exposes the redemption code: %s", env.Data)
	}

	rec, env = call(t, h, http.MethodGet, "/api/offers/"+offer.ID, customer.AccessToken, nil)
	expectStatus(t, rec, http.StatusOK)
	if strings.Contains(string(env.Data), offer.RedemptionCode) || strings.Contains(string(env.Data), "qr_code_path") {
		t.Fatalf("customer view exposes the redemption code: %s", env.Data)
	}

	rec, env = call(t, h, http.MethodGet, "/api/offers/"+offer.ID, owner.AccessToken, nil)
	expectStatus(t, rec, http.StatusOK)
	if !strings.Contains(string(env.Data), offer.RedemptionCode) {
		t.Fatalf("owner view should carry the redemption code: %s", env.Data)
	}

	for _, dir := range []string{"/uploads/", "/uploads/qrcodes/", "/uploads/qrcodes"} {
		rec, _ = call(t, h, http.MethodGet, dir, "", nil)
		expectStatus(t, rec, http.StatusNotFound)
	}

	rec, _ = call(t, h, http.MethodDelete, "/api/offers/"+offer.ID, owner.AccessToken, nil)
	expectStatus(t, rec, http.StatusOK)
	rec, _ = call(t, h, http.MethodGet, "/api/offers/redeem/"+offer.RedemptionCode, "", nil)
	expectStatus(t, rec, http.StatusNotFound)
}

func TestOfferRejectsInvertedWindow(t *testing.T) {
	h := newTestRouter(t)
	owner := signup(t, h, businessSignup("acme"))

	rec, env := call(t, h, http.MethodPost, "/api/offers", owner.AccessToken, map[string]any{
		"business_id": owner.User.Business.ID,
		"name":        "Backwards",
		"start_date":  "2025-07-01T00:00:00Z",
		"end_date":    "2025-06-01T00:00:00Z",
	})
	expectStatus(t, rec, http.StatusBadRequest)
	if _, ok := env.Errors["end_date"]; !ok {
		t.Fatalf("expected end_date error, got %+v", env.Errors)
	}
}

func TestCategoryInUseCannotBeDeleted(t *testing.T) {
	h := newTestRouter(t)
	walker := signup(t, h, customerSignup("walker"))

	rec, env := call(t, h, http.MethodPost, "/api/categories", walker.AccessToken, map[string]string{"key": "cafe", "name": "Café"})
	expectStatus(t, rec, http.StatusCreated)
	var cafe response.CategoryResponse
	if err := json.Unmarshal(env.Data, &cafe); err != nil {
		t.Fatalf("decode category: %v", err)
	}

	body := businessSignup("beanery")
	body["categories"] = []string{cafe.ID}
	beanery := signup(t, h, body)
	if len(beanery.User.Categories) != 1 || beanery.User.Categories[0].Name != "Café" {
		t.Fatalf("expected expanded category, got %+v", beanery.User.Categories)
	}

	rec, _ = call(t, h, http.MethodDelete, "/api/categories/"+cafe.ID, walker.AccessToken, nil)
	expectStatus(t, rec, http.StatusConflict)
}

func TestUpdateOtherUserForbidden(t *testing.T) {
	h := newTestRouter(t)
	owner := signup(t, h, customerSignup("owner"))
	intruder := signup(t, h, customerSignup("intruder"))

	rec, _ := call(t, h, http.MethodPut, "/api/users/"+owner.User.ID, intruder.AccessToken, map[string]string{"address": "x"})
	expectStatus(t, rec, http.StatusForbidden)

	rec, _ = call(t, h, http.MethodDelete, "/api/users/"+owner.User.ID, owner.AccessToken, nil)
	expectStatus(t, rec, http.StatusOK)

	rec, _ = call(t, h, http.MethodGet, "/api/users/"+owner.User.ID, intruder.AccessToken, nil)
	expectStatus(t, rec, http.StatusNotFound)
}

func TestUploadProfilePhoto(t *testing.T) {
	h := newTestRouter(t)
	walker := signup(t, h, customerSignup("walker"))

	// minimal PNG signature so content sniffing recognises the type
	png := append([]byte("\x89PNG\r\n\x1a\n"), make([]byte, 32)...)

	var buf bytes.Buffer
	mw := multipart.NewWriter(&buf)
	part, err := mw.CreateFormFile("file", "me.png")
	if err != nil {
		t.Fatalf("create part: %v", err)
	}
	part.Write(png)
	mw.Close()

	req := httptest.NewRequest(http.MethodPost, "/api/users/me/photo", &buf)
	req.Header.Set("Content-Type", mw.FormDataContentType())
	req.Header.Set("Authorization", "Bearer "+walker.AccessToken)
	rec, env := serve(t, h, req)
	expectStatus(t, rec, http.StatusOK)

	var identity response.IdentityResponse
	if err := json.Unmarshal(env.Data, &identity); err != nil {
		t.Fatalf("decode identity: %v", err)
	}
	if identity.ProfilePhoto == nil || !strings.HasSuffix(*identity.ProfilePhoto, ".png") {
		t.Fatalf("unexpected photo %v", identity.ProfilePhoto)
	}

	rec, _ = call(t, h, http.MethodGet, *identity.ProfilePhoto, "", nil)
	expectStatus(t, rec, http.StatusOK)
}

func TestContactMail(t *testing.T) {
	h := newTestRouter(t)

	rec, _ := call(t, h, http.MethodPost, "/api/mail/contact", "", map[string]string{
		"name": "Jane", "email": "jane@example.com", "message": "hello",
	})
	expectStatus(t, rec, http.StatusOK)

	rec, _ = call(t, h, http.MethodPost, "/api/mail/contact", "", map[string]string{"name": "Jane"})
	expectStatus(t, rec, http.StatusBadRequest)
}
