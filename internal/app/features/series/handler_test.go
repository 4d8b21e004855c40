package series_test

import (
	"encoding/json"
	"net/http"
	"net/http/httptest"
	"net/url"
	"strings"
	"testing"
	"time"

	"github.com/dalemusser/waffle/pantry/storage"
	"github.com/go-chi/chi/v5"
	"github.com/microcosm-cc/bluemonday"
	"go.uber.org/zap"

	"github.com/cinehubdev/cinehub/internal/app/features/series"
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

func do(t *testing.T, router http.Handler, method, path, body, contentType string) *httptest.ResponseRecorder {
	t.Helper()
	req := httptest.NewRequest(method, path, strings.NewReader(body))
	if contentType != "" {
		req.Header.Set("Content-Type", contentType)
	}
	rec := httptest.NewRecorder()
	router.ServeHTTP(rec, req)
	return rec
}

type seriesDoc struct {
	ID       string `json:"_id"`
	Name     string `json:"name"`
	Episodes []struct {
		Name  string `json:"name"`
		Video string `json:"video"`
	} `json:"episodes"`
	HasSubtitle bool `json:"hasSubtitle"`
}

func decodeEnvelope(t *testing.T, body []byte) seriesDoc {
	t.Helper()
	var env struct {
		Series seriesDoc `json:"series"`
	}
	if err := json.Unmarshal(body, &env); err != nil {
		t.Fatalf("decode envelope: %v", err)
	}
	return env.Series
}

func TestSeriesCreate_MissingName(t *testing.T) {
	saver := newTestSaver(t)
	h := &series.Handler{
		Uploads:  saver,
		Sanitize: bluemonday.UGCPolicy(),
		Log:      zap.NewNop(),
	}
	r := chi.NewRouter()
	h.MountRoutes(r, newTestTokens(t))

	rec := do(t, r, http.MethodPost, "/", url.Values{"year": {"2020"}}.Encode(), "application/x-www-form-urlencoded")
	if rec.Code != http.StatusBadRequest {
		t.Fatalf("status = %d, want 400", rec.Code)
	}
}

func TestSeriesEpisodeFlow(t *testing.T) {
	db := testutil.SetupTestDB(t)
	h := series.NewHandler(db, newTestSaver(t), zap.NewNop())
	r := chi.NewRouter()
	h.MountRoutes(r, newTestTokens(t))

	create := url.Values{
		"name":               {"Dark"},
		"hasSubtitle":        {"true"},
		"episodes[0][name]":  {"Secrets"},
		"episodes[0][video]": {"https://cdn.example.com/e1.mp4"},
		"episodes[1][name]":  {"Lies"},
		"episodes[1][video]": {"https://cdn.example.com/e2.mp4"},
	}
	rec := do(t, r, http.MethodPost, "/", create.Encode(), "application/x-www-form-urlencoded")
	if rec.Code != http.StatusCreated {
		t.Fatalf("create: status = %d, body %s", rec.Code, rec.Body)
	}
	doc := decodeEnvelope(t, rec.Body.Bytes())
	if len(doc.Episodes) != 2 || doc.Episodes[0].Video != "https://cdn.example.com/e1.mp4" || doc.Episodes[1].Name != "Lies" {
		t.Fatalf("episodes after create = %+v", doc.Episodes)
	}
	if !doc.HasSubtitle {
		t.Error("hasSubtitle not set")
	}

	// Replacing only the first episode's video keeps the rest of the
	// stored list.
	update := url.Values{"episodes[0][video]": {"https://cdn.example.com/e1r.mp4"}}
	rec = do(t, r, http.MethodPut, "/"+doc.ID, update.Encode(), "application/x-www-form-urlencoded")
	if rec.Code != http.StatusOK {
		t.Fatalf("update: status = %d, body %s", rec.Code, rec.Body)
	}
	doc = decodeEnvelope(t, rec.Body.Bytes())
	if len(doc.Episodes) != 2 {
		t.Fatalf("episodes after partial update = %+v", doc.Episodes)
	}
	if doc.Episodes[0].Name != "Secrets" || doc.Episodes[0].Video != "https://cdn.example.com/e1r.mp4" {
		t.Errorf("episode 0 = %+v, want stored name kept", doc.Episodes[0])
	}
	if doc.Episodes[1].Name != "Lies" || doc.Episodes[1].Video != "https://cdn.example.com/e2.mp4" {
		t.Errorf("episode 1 = %+v, want stored name kept", doc.Episodes[1])
	}

	// A body without episode fields keeps the stored list untouched.
	rec = do(t, r, http.MethodPut, "/"+doc.ID, `{"name":"Dark (2017)"}`, "application/json")
	if rec.Code != http.StatusOK {
		t.Fatalf("rename: status = %d, body %s", rec.Code, rec.Body)
	}
	doc = decodeEnvelope(t, rec.Body.Bytes())
	if doc.Name != "Dark (2017)" || len(doc.Episodes) != 2 {
		t.Fatalf("after rename: name = %q, episodes = %+v", doc.Name, doc.Episodes)
	}

	// A structured JSON episode array replaces the list wholesale.
	rec = do(t, r, http.MethodPut, "/"+doc.ID, `{"episodes":[{"name":"Finale","video":"https://cdn.example.com/f.mp4"}]}`, "application/json")
	if rec.Code != http.StatusOK {
		t.Fatalf("structured update: status = %d, body %s", rec.Code, rec.Body)
	}
	doc = decodeEnvelope(t, rec.Body.Bytes())
	if len(doc.Episodes) != 1 || doc.Episodes[0].Video != "https://cdn.example.com/f.mp4" {
		t.Fatalf("episodes after structured update = %+v", doc.Episodes)
	}
}
