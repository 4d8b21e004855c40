// Package views builds the API response shapes for catalog reads.
//
// Documents store raw media references and genre/user ObjectIDs; every
// read response resolves the references against the request origin and
// expands the ids the client cannot dereference itself (genres on all
// title reads, comment authors on single-document reads).
package views

import (
	"go.mongodb.org/mongo-driver/bson/primitive"

	"github.com/cinehubdev/cinehub/internal/app/system/mediaurl"
	"github.com/cinehubdev/cinehub/internal/domain/models"
)

// Genre returns g with its thumbnail resolved.
func Genre(origin string, g models.Genre) models.Genre {
	g.Thumbnail = mediaurl.Resolve(origin, g.Thumbnail)
	return g
}

// Genres resolves a genre list.
func Genres(origin string, gs []models.Genre) []models.Genre {
	out := make([]models.Genre, len(gs))
	for i, g := range gs {
		out[i] = Genre(origin, g)
	}
	return out
}

// MovieView is a movie with genre ids expanded to genre documents.
type MovieView struct {
	models.Movie
	Genres []models.Genre `json:"genres"`
}

// MovieDetailView additionally expands comment authors.
type MovieDetailView struct {
	MovieView
	Comments []models.CommentView `json:"comments"`
}

// Movie builds the list/read shape of a movie. Genre ids missing from the
// lookup map (stale back-references, races with genre deletion) are
// dropped from the expansion.
func Movie(origin string, mv models.Movie, genres map[primitive.ObjectID]models.Genre) MovieView {
	mv.Thumbnail = mediaurl.Resolve(origin, mv.Thumbnail)
	mv.Gallery = mediaurl.ResolveAll(origin, mv.Gallery)
	mv.Video = mediaurl.Resolve(origin, mv.Video)
	return MovieView{Movie: mv, Genres: expandGenres(origin, mv.Genres, genres)}
}

// Movies builds the list shape for a result page.
func Movies(origin string, mvs []models.Movie, genres map[primitive.ObjectID]models.Genre) []MovieView {
	out := make([]MovieView, len(mvs))
	for i, mv := range mvs {
		out[i] = Movie(origin, mv, genres)
	}
	return out
}

// MovieDetail builds the single-document shape of a movie.
func MovieDetail(origin string, mv models.Movie, genres map[primitive.ObjectID]models.Genre, authors map[primitive.ObjectID]string) MovieDetailView {
	return MovieDetailView{
		MovieView: Movie(origin, mv, genres),
		Comments:  CommentViews(mv.Comments, authors),
	}
}

// SeriesView is a series with genre ids expanded to genre documents.
type SeriesView struct {
	models.Series
	Genres []models.Genre `json:"genres"`
}

// SeriesDetailView additionally expands comment authors.
type SeriesDetailView struct {
	SeriesView
	Comments []models.CommentView `json:"comments"`
}

// Series builds the list/read shape of a series. Episode videos are
// resolved along with the other media fields.
func Series(origin string, sr models.Series, genres map[primitive.ObjectID]models.Genre) SeriesView {
	sr.Thumbnail = mediaurl.Resolve(origin, sr.Thumbnail)
	sr.Gallery = mediaurl.ResolveAll(origin, sr.Gallery)
	if len(sr.Episodes) > 0 {
		eps := make([]models.Episode, len(sr.Episodes))
		for i, ep := range sr.Episodes {
			ep.Video = mediaurl.Resolve(origin, ep.Video)
			eps[i] = ep
		}
		sr.Episodes = eps
	}
	return SeriesView{Series: sr, Genres: expandGenres(origin, sr.Genres, genres)}
}

// SeriesList builds the list shape for a result page.
func SeriesList(origin string, srs []models.Series, genres map[primitive.ObjectID]models.Genre) []SeriesView {
	out := make([]SeriesView, len(srs))
	for i, sr := range srs {
		out[i] = Series(origin, sr, genres)
	}
	return out
}

// SeriesDetail builds the single-document shape of a series.
func SeriesDetail(origin string, sr models.Series, genres map[primitive.ObjectID]models.Genre, authors map[primitive.ObjectID]string) SeriesDetailView {
	return SeriesDetailView{
		SeriesView: Series(origin, sr, genres),
		Comments:   CommentViews(sr.Comments, authors),
	}
}

// CommentViews expands comment author ids to display names. Authors
// missing from the map (deleted accounts) keep their id with an empty
// display name.
func CommentViews(comments []models.Comment, authors map[primitive.ObjectID]string) []models.CommentView {
	out := make([]models.CommentView, len(comments))
	for i, c := range comments {
		out[i] = models.CommentView{
			ID:        c.ID,
			User:      models.CommentAuthor{ID: c.User, DisplayName: authors[c.User]},
			Content:   c.Content,
			CreatedAt: c.CreatedAt,
		}
	}
	return out
}

func expandGenres(origin string, ids []primitive.ObjectID, genres map[primitive.ObjectID]models.Genre) []models.Genre {
	out := make([]models.Genre, 0, len(ids))
	for _, id := range ids {
		if g, ok := genres[id]; ok {
			out = append(out, Genre(origin, g))
		}
	}
	return out
}
