package usecase_test

import (
	"context"
	"errors"
	"strings"
	"sync"
	"testing"
	"time"

	"biz-directory/internal/data/repository"
	"biz-directory/internal/data/repository/repotest"
	"biz-directory/internal/dto/request"
	"biz-directory/internal/dto/response"
	"biz-directory/internal/usecase"
	"biz-directory/pkg/apperror"
	"biz-directory/pkg/cache"
	"biz-directory/pkg/mailer"
	"biz-directory/pkg/qrcode"
	"biz-directory/pkg/storage"
	"biz-directory/pkg/token"
	"biz-directory/pkg/utils"

	"github.com/spf13/afero"
	"go.uber.org/zap"
)

type fakeNotifier struct {
	mu   sync.Mutex
	sent []mailer.Message
	err  error
}

func (n *fakeNotifier) Send(ctx context.Context, msg mailer.Message) error {
	n.mu.Lock()
	defer n.mu.Unlock()
	if n.err != nil {
		return n.err
	}
	n.sent = append(n.sent, msg)
	return nil
}

func (n *fakeNotifier) messages() []mailer.Message {
	n.mu.Lock()
	defer n.mu.Unlock()
	return append([]mailer.Message(nil), n.sent...)
}

type failingRenderer struct{}

func (failingRenderer) Render(string) ([]byte, error) {
	return nil, errors.New("encoder exploded")
}

type fixture struct {
	svc    *usecase.Service
	repo   *repository.Repository
	store  *repotest.Store
	fs     afero.Fs
	mail   *fakeNotifier
	tokens *token.Manager
}

func newFixture(t *testing.T, opts ...func(*usecase.Deps)) *fixture {
	t.Helper()

	repo, store := repotest.New()
	fs := afero.NewMemMapFs()
	notifier := &fakeNotifier{}
	tokens := token.NewManager("test-secret", "biz-directory-test", time.Hour)

	deps := usecase.Deps{
		Tokens:   tokens,
		Denylist: cache.NewMemoryDenylist(),
		Blobs:    storage.NewLocalStoreFs(fs, "/uploads", zap.NewNop()),
		QR:       qrcode.NewRenderer(64),
		Notifier: notifier,
	}
	for _, opt := range opts {
		opt(&deps)
	}

	config := &utils.Config{
		App:   utils.AppConfig{PublicURL: "https://deals.test"},
		Email: utils.EmailConfig{From: "noreply@deals.test", ContactTo: "ops@deals.test"},
	}

	svc := usecase.NewService(repo, deps, config, zap.NewNop())
	t.Cleanup(svc.Mail.Wait)

	return &fixture{svc: svc, repo: repo, store: store, fs: fs, mail: notifier, tokens: tokens}
}

func (f *fixture) signupBusiness(t *testing.T, username string, categories ...string) *response.AuthResponse {
	t.Helper()
	resp, err := f.svc.Auth.Register(context.Background(), &request.SignupRequest{
		Email:      username + "@example.com",
		Username:   username,
		Password:   "secret-pw",
		Categories: categories,
		Business:   &request.BusinessProfileRequest{BranchName: username + " downtown"},
	})
	if err != nil {
		t.Fatalf("signup business %s: %v", username, err)
	}
	return resp
}

func (f *fixture) signupCustomer(t *testing.T, username string) *response.AuthResponse {
	t.Helper()
	age := 30
	resp, err := f.svc.Auth.Register(context.Background(), &request.SignupRequest{
		Email:    username + "@example.com",
		Username: username,
		Password: "secret-pw",
		Customer: &request.CustomerProfileRequest{Age: &age},
	})
	if err != nil {
		t.Fatalf("signup customer %s: %v", username, err)
	}
	return resp
}

func (f *fixture) category(t *testing.T, key, name string) *response.CategoryResponse {
	t.Helper()
	c, err := f.svc.Category.Create(context.Background(), &request.CategoryRequest{Key: key, Name: name})
	if err != nil {
		t.Fatalf("create category %s: %v", key, err)
	}
	return c
}

// blobExists reports whether a path returned by the blob store is on disk.
func (f *fixture) blobExists(path string) bool {
	ok, _ := afero.Exists(f.fs, strings.TrimPrefix(path, "/uploads"))
	return ok
}

func expectKind(t *testing.T, err error, kind apperror.Kind) *apperror.Error {
	t.Helper()
	if err == nil {
		t.Fatalf("expected %s error, got nil", kind)
	}
	var appErr *apperror.Error
	if !errors.As(err, &appErr) || appErr.Kind != kind {
		t.Fatalf("expected %s error, got %v", kind, err)
	}
	return appErr
}
