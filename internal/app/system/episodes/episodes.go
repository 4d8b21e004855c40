// Package episodes merges client episode input with previously persisted
// episode state.
//
// Clients send episode lists in one of two wire forms: flattened indexed
// form fields ("episodes[0][name]", "episodes[0][video]", ...) or an
// already-structured JSON array. Reconcile unifies both into one ordered
// list, falling back to the previously persisted entry at the same index
// when an update omits a video. It is plain data-shaping with no HTTP or
// database dependencies, so it is unit-tested in isolation.
package episodes

import (
	"fmt"

	"github.com/cinehubdev/cinehub/internal/domain/models"
)

// Reconcile produces the episode list to persist.
//
// form is the raw request body values (form or multipart fields). structured
// is the body's episode array when the client sent JSON instead of flat
// fields; it is only consulted when the flat-field scan finds no episode
// keys at all. prev is the previously persisted list (nil on create).
//
// Rules:
//   - Flat fields are scanned in ascending index order starting at 0. The
//     scan continues while the body has a name or video key at the index,
//     or while prev still has an entry there; a gap past the end of prev
//     terminates the scan and later indices are dropped.
//   - A field sent as a multi-value list collapses to its first element.
//   - Video is the required field. An index missing a video inherits
//     prev's video at the same index; an entry still without a video is
//     skipped. Name is optional; an index with no name key inherits
//     prev's name, while an explicit empty name clears it.
//   - If neither wire form yields any episode, the previous list is
//     returned unchanged: an update never silently erases episodes when
//     the client sends no episode data.
func Reconcile(form map[string][]string, structured []models.Episode, prev []models.Episode) []models.Episode {
	eps, found := scanFlat(form, prev)
	if !found {
		eps = fromStructured(structured, prev)
	}
	if len(eps) == 0 && len(prev) > 0 {
		return prev
	}
	return eps
}

func scanFlat(form map[string][]string, prev []models.Episode) (eps []models.Episode, found bool) {
	for i := 0; ; i++ {
		nameVals, hasName := form[flatKey(i, "name")]
		videoVals, hasVideo := form[flatKey(i, "video")]
		if hasName || hasVideo {
			found = true
		} else if !found || i >= len(prev) {
			// No episode fields at this index and nothing persisted to
			// fall back on. Fields beyond the gap are dropped.
			break
		}

		ep := models.Episode{Name: first(nameVals), Video: first(videoVals)}
		if !hasName && i < len(prev) {
			// Name key absent: keep the stored name rather than erase it.
			ep.Name = prev[i].Name
		}
		if ep.Video == "" && i < len(prev) {
			ep.Video = prev[i].Video
		}
		if ep.Video != "" {
			eps = append(eps, ep)
		}
	}
	return eps, found
}

func fromStructured(structured, prev []models.Episode) []models.Episode {
	var eps []models.Episode
	for i, in := range structured {
		ep := models.Episode{Name: in.Name, Video: in.Video}
		if ep.Video == "" && i < len(prev) {
			ep.Video = prev[i].Video
		}
		if ep.Video != "" {
			eps = append(eps, ep)
		}
	}
	return eps
}

func flatKey(i int, field string) string {
	return fmt.Sprintf("episodes[%d][%s]", i, field)
}

func first(vals []string) string {
	if len(vals) == 0 {
		return ""
	}
	return vals[0]
}
