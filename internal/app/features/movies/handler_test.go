package movies_test

import (
	"bytes"
	"encoding/json"
	"fmt"
	"mime/multipart"
	"net/http"
	"net/http/httptest"
	"net/textproto"
	"net/url"
	"strings"
	"testing"
	"time"

	"github.com/dalemusser/waffle/pantry/storage"
	"github.com/go-chi/chi/v5"
	"github.com/microcosm-cc/bluemonday"
	"go.mongodb.org/mongo-driver/bson/primitive"
	"go.uber.org/zap"

	"github.com/cinehubdev/cinehub/internal/app/features/movies"
	"github.com/cinehubdev/cinehub/internal/app/system/auth"
	"github.com/cinehubdev/cinehub/internal/app/system/uploads"
	"github.com/cinehubdev/cinehub/internal/testutil"
)

func newTestSaver(t *testing.T) *uploads.Saver {
	t.Helper()
	store := storage.NewMemory(storage.MemoryConfig{BaseURL: "/uploads"})
	return &uploads.Saver{Store: store, MaxBytes: 1 << 20, GalleryMax: 10}
}

func newTestTokens(t *testing.T) *auth.TokenManager {
	t.Helper()
	tokens, err := auth.NewTokenManager("test-secret", time.Hour)
	if err != nil {
		t.Fatalf("token manager: %v", err)
	}
	return tokens
}

// newBareHandler builds a handler without a database for tests that fail
// before any store call.
func newBareHandler(t *testing.T) *movies.Handler {
	t.Helper()
	saver := newTestSaver(t)
	return &movies.Handler{
		Uploads:  saver,
		Sanitize: bluemonday.UGCPolicy(),
		Log:      zap.NewNop(),
	}
}

func mount(t *testing.T, h *movies.Handler) http.Handler {
	t.Helper()
	r := chi.NewRouter()
	h.MountRoutes(r, newTestTokens(t))
	return r
}

func do(t *testing.T, router http.Handler, method, path, body, contentType, token string) *httptest.ResponseRecorder {
	t.Helper()
	req := httptest.NewRequest(method, path, strings.NewReader(body))
	if contentType != "" {
		req.Header.Set("Content-Type", contentType)
	}
	if token != "" {
		req.Header.Set("Authorization", "Bearer "+token)
	}
	rec := httptest.NewRecorder()
	router.ServeHTTP(rec, req)
	return rec
}

func TestMovieList_InvalidFilters(t *testing.T) {
	router := mount(t, newBareHandler(t))

	if rec := do(t, router, http.MethodGet, "/?genres=nope", "", "", ""); rec.Code != http.StatusBadRequest {
		t.Errorf("invalid genres: status = %d", rec.Code)
	}
	if rec := do(t, router, http.MethodGet, "/?limit=ten", "", "", ""); rec.Code != http.StatusBadRequest {
		t.Errorf("invalid limit: status = %d", rec.Code)
	}
}

func TestMovieCreate_Validation(t *testing.T) {
	router := mount(t, newBareHandler(t))

	form := url.Values{"type": {"phim-le"}}
	if rec := do(t, router, http.MethodPost, "/", form.Encode(), "application/x-www-form-urlencoded", ""); rec.Code != http.StatusBadRequest {
		t.Errorf("missing name: status = %d", rec.Code)
	}

	form = url.Values{"name": {"Heat"}, "type": {"bogus"}}
	if rec := do(t, router, http.MethodPost, "/", form.Encode(), "application/x-www-form-urlencoded", ""); rec.Code != http.StatusBadRequest {
		t.Errorf("bad type: status = %d", rec.Code)
	}
}

func TestMovieCreate_TooManyGalleryFiles(t *testing.T) {
	saver := newTestSaver(t)
	saver.GalleryMax = 2
	router := mount(t, &movies.Handler{Uploads: saver, Sanitize: bluemonday.UGCPolicy(), Log: zap.NewNop()})

	var buf bytes.Buffer
	w := multipart.NewWriter(&buf)
	if err := w.WriteField("name", "Heat"); err != nil {
		t.Fatalf("WriteField: %v", err)
	}
	if err := w.WriteField("type", "phim-le"); err != nil {
		t.Fatalf("WriteField: %v", err)
	}
	for i := 0; i < 3; i++ {
		h := make(textproto.MIMEHeader)
		h.Set("Content-Disposition", fmt.Sprintf(`form-data; name="gallery"; filename="g%d.png"`, i))
		h.Set("Content-Type", "image/png")
		part, err := w.CreatePart(h)
		if err != nil {
			t.Fatalf("CreatePart: %v", err)
		}
		if _, err := part.Write([]byte("png")); err != nil {
			t.Fatalf("writing part: %v", err)
		}
	}
	if err := w.Close(); err != nil {
		t.Fatalf("closing writer: %v", err)
	}

	rec := do(t, router, http.MethodPost, "/", buf.String(), w.FormDataContentType(), "")
	if rec.Code != http.StatusBadRequest {
		t.Fatalf("status = %d, want 400 for gallery over the limit", rec.Code)
	}
}

func TestMovieComment_RequiresAuth(t *testing.T) {
	router := mount(t, newBareHandler(t))

	id := primitive.NewObjectID().Hex()
	rec := do(t, router, http.MethodPost, "/"+id+"/comment", `{"content":"hi"}`, "application/json", "")
	if rec.Code != http.StatusUnauthorized {
		t.Fatalf("status = %d, want 401", rec.Code)
	}
}

func TestMovieLifecycle(t *testing.T) {
	db := testutil.SetupTestDB(t)
	tokens := newTestTokens(t)
	h := movies.NewHandler(db, newTestSaver(t), zap.NewNop())
	r := chi.NewRouter()
	h.MountRoutes(r, tokens)

	create := url.Values{
		"name":    {"Mad Max: Fury Road"},
		"type":    {"phim-le"},
		"year":    {"2015"},
		"country": {"Australia"},
		"actors":  {"Tom Hardy", "Downey, Robert Jr."},
	}
	rec := do(t, r, http.MethodPost, "/", create.Encode(), "application/x-www-form-urlencoded", "")
	if rec.Code != http.StatusCreated {
		t.Fatalf("create: status = %d, body %s", rec.Code, rec.Body)
	}
	var created struct {
		Movie struct {
			ID     string   `json:"_id"`
			Actors []string `json:"actors"`
			Year   int      `json:"year"`
		} `json:"movie"`
	}
	if err := json.Unmarshal(rec.Body.Bytes(), &created); err != nil {
		t.Fatalf("decode create: %v", err)
	}
	if created.Movie.Year != 2015 {
		t.Errorf("year = %d", created.Movie.Year)
	}
	if len(created.Movie.Actors) != 2 || created.Movie.Actors[0] != "Tom Hardy" {
		t.Errorf("actors = %v", created.Movie.Actors)
	}
	if created.Movie.Actors[1] != "Downey, Robert Jr." {
		t.Errorf("actors = %v, want comma-containing name kept whole", created.Movie.Actors)
	}

	// Name substring filter, case-insensitive.
	rec = do(t, r, http.MethodGet, "/?name=fury", "", "", "")
	if rec.Code != http.StatusOK {
		t.Fatalf("list: status = %d", rec.Code)
	}
	var list []json.RawMessage
	if err := json.Unmarshal(rec.Body.Bytes(), &list); err != nil {
		t.Fatalf("decode list: %v", err)
	}
	if len(list) != 1 {
		t.Fatalf("filtered list length = %d", len(list))
	}

	rec = do(t, r, http.MethodGet, "/countries", "", "", "")
	if rec.Code != http.StatusOK {
		t.Fatalf("countries: status = %d", rec.Code)
	}
	var countries []string
	if err := json.Unmarshal(rec.Body.Bytes(), &countries); err != nil {
		t.Fatalf("decode countries: %v", err)
	}
	if len(countries) != 1 || countries[0] != "Australia" {
		t.Errorf("countries = %v", countries)
	}

	// Partial update leaves unmentioned fields alone.
	rec = do(t, r, http.MethodPut, "/"+created.Movie.ID, `{"year":2016}`, "application/json", "")
	if rec.Code != http.StatusOK {
		t.Fatalf("update: status = %d, body %s", rec.Code, rec.Body)
	}
	var updated struct {
		Movie struct {
			Name string `json:"name"`
			Year int    `json:"year"`
		} `json:"movie"`
	}
	if err := json.Unmarshal(rec.Body.Bytes(), &updated); err != nil {
		t.Fatalf("decode update: %v", err)
	}
	if updated.Movie.Year != 2016 || updated.Movie.Name != "Mad Max: Fury Road" {
		t.Errorf("updated movie = %+v", updated.Movie)
	}

	rec = do(t, r, http.MethodDelete, "/"+created.Movie.ID, "", "", "")
	if rec.Code != http.StatusOK {
		t.Fatalf("delete: status = %d", rec.Code)
	}
	rec = do(t, r, http.MethodGet, "/"+created.Movie.ID, "", "", "")
	if rec.Code != http.StatusNotFound {
		t.Fatalf("get after delete: status = %d", rec.Code)
	}
}

func TestMovieComments(t *testing.T) {
	db := testutil.SetupTestDB(t)
	tokens := newTestTokens(t)
	h := movies.NewHandler(db, newTestSaver(t), zap.NewNop())
	r := chi.NewRouter()
	h.MountRoutes(r, tokens)

	rec := do(t, r, http.MethodPost, "/", `{"name":"Alien","type":"phim-le"}`, "application/json", "")
	if rec.Code != http.StatusCreated {
		t.Fatalf("create: status = %d, body %s", rec.Code, rec.Body)
	}
	var created struct {
		Movie struct {
			ID string `json:"_id"`
		} `json:"movie"`
	}
	if err := json.Unmarshal(rec.Body.Bytes(), &created); err != nil {
		t.Fatalf("decode create: %v", err)
	}

	author := primitive.NewObjectID()
	authorToken, err := tokens.Generate(author.Hex(), "Anna")
	if err != nil {
		t.Fatalf("generate token: %v", err)
	}
	otherToken, err := tokens.Generate(primitive.NewObjectID().Hex(), "Ben")
	if err != nil {
		t.Fatalf("generate token: %v", err)
	}

	rec = do(t, r, http.MethodPost, "/"+created.Movie.ID+"/comment", `{"content":"<script>x</script>classic"}`, "application/json", authorToken)
	if rec.Code != http.StatusOK {
		t.Fatalf("add comment: status = %d, body %s", rec.Code, rec.Body)
	}
	var withComment struct {
		Movie struct {
			Comments []struct {
				ID      string `json:"_id"`
				Content string `json:"content"`
				User    struct {
					DisplayName string `json:"displayName"`
				} `json:"user"`
			} `json:"comments"`
		} `json:"movie"`
	}
	if err := json.Unmarshal(rec.Body.Bytes(), &withComment); err != nil {
		t.Fatalf("decode comment response: %v", err)
	}
	if len(withComment.Movie.Comments) != 1 {
		t.Fatalf("comments = %+v", withComment.Movie.Comments)
	}
	if got := withComment.Movie.Comments[0].Content; strings.Contains(got, "<script>") || !strings.Contains(got, "classic") {
		t.Errorf("sanitized content = %q", got)
	}
	commentID := withComment.Movie.Comments[0].ID

	// Only the author may delete.
	rec = do(t, r, http.MethodDelete, "/"+created.Movie.ID+"/comment/"+commentID, "", "", otherToken)
	if rec.Code != http.StatusForbidden {
		t.Fatalf("foreign delete: status = %d", rec.Code)
	}
	rec = do(t, r, http.MethodDelete, "/"+created.Movie.ID+"/comment/"+commentID, "", "", authorToken)
	if rec.Code != http.StatusOK {
		t.Fatalf("author delete: status = %d, body %s", rec.Code, rec.Body)
	}
	rec = do(t, r, http.MethodDelete, "/"+created.Movie.ID+"/comment/"+commentID, "", "", authorToken)
	if rec.Code != http.StatusNotFound {
		t.Fatalf("delete missing comment: status = %d", rec.Code)
	}
}
