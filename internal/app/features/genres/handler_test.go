package genres_test

import (
	"bytes"
	"encoding/json"
	"mime/multipart"
	"net/http"
	"net/http/httptest"
	"net/textproto"
	"net/url"
	"strings"
	"testing"

	"github.com/dalemusser/waffle/pantry/storage"
	"github.com/go-chi/chi/v5"
	"go.uber.org/zap"

	"github.com/cinehubdev/cinehub/internal/app/features/genres"
	"github.com/cinehubdev/cinehub/internal/app/system/uploads"
	"github.com/cinehubdev/cinehub/internal/testutil"
)

func newTestSaver(t *testing.T) *uploads.Saver {
	t.Helper()
	store := storage.NewMemory(storage.MemoryConfig{BaseURL: "/uploads"})
	return &uploads.Saver{Store: store, MaxBytes: 1 << 20, GalleryMax: 10}
}

func newTestRouter(t *testing.T) http.Handler {
	t.Helper()
	db := testutil.SetupTestDB(t)
	r := chi.NewRouter()
	genres.NewHandler(db, newTestSaver(t), zap.NewNop()).MountRoutes(r)
	return r
}

func do(t *testing.T, router http.Handler, method, path string, body string, contentType string) *httptest.ResponseRecorder {
	t.Helper()
	req := httptest.NewRequest(method, path, strings.NewReader(body))
	if contentType != "" {
		req.Header.Set("Content-Type", contentType)
	}
	rec := httptest.NewRecorder()
	router.ServeHTTP(rec, req)
	return rec
}

func TestGenreInvalidID(t *testing.T) {
	saver := newTestSaver(t)
	h := &genres.Handler{Uploads: saver, Log: zap.NewNop()}
	r := chi.NewRouter()
	h.MountRoutes(r)

	rec := do(t, r, http.MethodGet, "/not-a-hex-id", "", "")
	if rec.Code != http.StatusBadRequest {
		t.Fatalf("status = %d, want 400", rec.Code)
	}
}

func TestGenreCRUD(t *testing.T) {
	router := newTestRouter(t)

	// Create requires a name.
	rec := do(t, router, http.MethodPost, "/", url.Values{}.Encode(), "application/x-www-form-urlencoded")
	if rec.Code != http.StatusBadRequest {
		t.Fatalf("create without name: status = %d", rec.Code)
	}

	rec = do(t, router, http.MethodPost, "/", `{"name":"Action"}`, "application/json")
	if rec.Code != http.StatusCreated {
		t.Fatalf("create: status = %d, body %s", rec.Code, rec.Body)
	}
	var created struct {
		Message string `json:"message"`
		Genre   struct {
			ID   string `json:"_id"`
			Name string `json:"name"`
		} `json:"genre"`
	}
	if err := json.Unmarshal(rec.Body.Bytes(), &created); err != nil {
		t.Fatalf("decode create response: %v", err)
	}
	if created.Genre.Name != "Action" || created.Genre.ID == "" {
		t.Fatalf("created genre = %+v", created.Genre)
	}

	rec = do(t, router, http.MethodGet, "/"+created.Genre.ID, "", "")
	if rec.Code != http.StatusOK {
		t.Fatalf("get: status = %d", rec.Code)
	}

	rec = do(t, router, http.MethodGet, "/", "", "")
	if rec.Code != http.StatusOK {
		t.Fatalf("list: status = %d", rec.Code)
	}
	var list []json.RawMessage
	if err := json.Unmarshal(rec.Body.Bytes(), &list); err != nil {
		t.Fatalf("decode list: %v", err)
	}
	if len(list) != 1 {
		t.Fatalf("list length = %d", len(list))
	}

	rec = do(t, router, http.MethodPut, "/"+created.Genre.ID, `{"name":"Action Movies"}`, "application/json")
	if rec.Code != http.StatusOK {
		t.Fatalf("update: status = %d, body %s", rec.Code, rec.Body)
	}

	rec = do(t, router, http.MethodDelete, "/"+created.Genre.ID, "", "")
	if rec.Code != http.StatusOK {
		t.Fatalf("delete: status = %d", rec.Code)
	}
	rec = do(t, router, http.MethodGet, "/"+created.Genre.ID, "", "")
	if rec.Code != http.StatusNotFound {
		t.Fatalf("get after delete: status = %d", rec.Code)
	}
}

func TestGenreCreateWithThumbnailUpload(t *testing.T) {
	router := newTestRouter(t)

	var buf bytes.Buffer
	mw := multipart.NewWriter(&buf)
	if err := mw.WriteField("name", "Horror"); err != nil {
		t.Fatal(err)
	}
	header := textproto.MIMEHeader{}
	header.Set("Content-Disposition", `form-data; name="thumbnail"; filename="horror.png"`)
	header.Set("Content-Type", "image/png")
	part, err := mw.CreatePart(header)
	if err != nil {
		t.Fatal(err)
	}
	part.Write([]byte("png-bytes"))
	mw.Close()

	req := httptest.NewRequest(http.MethodPost, "/", &buf)
	req.Header.Set("Content-Type", mw.FormDataContentType())
	req.Host = "api.example.com"
	rec := httptest.NewRecorder()
	router.ServeHTTP(rec, req)

	if rec.Code != http.StatusCreated {
		t.Fatalf("status = %d, body %s", rec.Code, rec.Body)
	}
	var created struct {
		Genre struct {
			Thumbnail string `json:"thumbnail"`
		} `json:"genre"`
	}
	if err := json.Unmarshal(rec.Body.Bytes(), &created); err != nil {
		t.Fatalf("decode: %v", err)
	}
	if !strings.HasPrefix(created.Genre.Thumbnail, "http://api.example.com/uploads/") {
		t.Errorf("thumbnail = %q", created.Genre.Thumbnail)
	}
}
