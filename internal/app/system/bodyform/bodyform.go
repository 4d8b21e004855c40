// Package bodyform unifies the request body encodings the API accepts.
//
// Clients send catalog payloads as JSON, urlencoded forms, or multipart
// forms. Parse flattens all three into one map of field values, so the
// handlers and the episode reconciler see a single representation; a JSON
// body's structured episode array is returned separately since it has no
// flat-field equivalent.
package bodyform

import (
	"net/http"
	"strconv"
	"strings"

	"github.com/cinehubdev/cinehub/internal/app/system/httpjson"
	"github.com/cinehubdev/cinehub/internal/app/system/uploads"
	"github.com/cinehubdev/cinehub/internal/domain/models"
)

// Parse returns the normalized body field values and, for JSON bodies,
// the structured episode array when one was sent. Multipart file parts
// are not included; read them off the request after calling Parse.
func Parse(r *http.Request) (map[string][]string, []models.Episode, error) {
	if strings.HasPrefix(r.Header.Get("Content-Type"), "application/json") {
		return parseJSON(r)
	}
	form, err := uploads.ParseForm(r)
	if err != nil {
		return nil, nil, err
	}
	return form, nil, nil
}

func parseJSON(r *http.Request) (map[string][]string, []models.Episode, error) {
	var body map[string]any
	if err := httpjson.Decode(r, &body); err != nil {
		return nil, nil, err
	}

	values := make(map[string][]string, len(body))
	var structured []models.Episode
	for key, v := range body {
		if key == "episodes" {
			if eps, ok := episodeArray(v); ok {
				structured = eps
				continue
			}
		}
		if vals, ok := flatten(v); ok {
			values[key] = vals
		}
	}
	return values, structured, nil
}

// flatten renders a JSON scalar or scalar array as form-style values.
func flatten(v any) ([]string, bool) {
	switch t := v.(type) {
	case string:
		return []string{t}, true
	case float64:
		return []string{formatNumber(t)}, true
	case bool:
		return []string{strconv.FormatBool(t)}, true
	case nil:
		return nil, false
	case []any:
		vals := make([]string, 0, len(t))
		for _, item := range t {
			flat, ok := flatten(item)
			if !ok || len(flat) != 1 {
				return nil, false
			}
			vals = append(vals, flat[0])
		}
		return vals, true
	default:
		return nil, false
	}
}

// episodeArray interprets a JSON value as a structured episode list.
func episodeArray(v any) ([]models.Episode, bool) {
	items, ok := v.([]any)
	if !ok {
		return nil, false
	}
	eps := make([]models.Episode, 0, len(items))
	for _, item := range items {
		obj, ok := item.(map[string]any)
		if !ok {
			return nil, false
		}
		ep := models.Episode{}
		if name, ok := obj["name"].(string); ok {
			ep.Name = name
		}
		if video, ok := obj["video"].(string); ok {
			ep.Video = video
		}
		eps = append(eps, ep)
	}
	return eps, true
}

func formatNumber(f float64) string {
	if f == float64(int64(f)) {
		return strconv.FormatInt(int64(f), 10)
	}
	return strconv.FormatFloat(f, 'f', -1, 64)
}
