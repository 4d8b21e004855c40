package views

import (
	"testing"
	"time"

	"go.mongodb.org/mongo-driver/bson/primitive"

	"github.com/cinehubdev/cinehub/internal/domain/models"
)

func TestMovieView(t *testing.T) {
	g1 := models.Genre{ID: primitive.NewObjectID(), Name: "Action", Thumbnail: "/uploads/action.jpg"}
	stale := primitive.NewObjectID()

	mv := models.Movie{
		Name:      "Heat",
		Genres:    []primitive.ObjectID{g1.ID, stale},
		Thumbnail: "/uploads/heat.jpg",
		Gallery:   []string{"/uploads/a.jpg", "https://cdn.example.com/b.jpg"},
		Video:     "https://videos.example.com/heat.mp4",
	}

	view := Movie("http://localhost:8080", mv, map[primitive.ObjectID]models.Genre{g1.ID: g1})

	if view.Thumbnail != "http://localhost:8080/uploads/heat.jpg" {
		t.Errorf("thumbnail = %q", view.Thumbnail)
	}
	if view.Gallery[0] != "http://localhost:8080/uploads/a.jpg" {
		t.Errorf("gallery[0] = %q", view.Gallery[0])
	}
	if view.Gallery[1] != "https://cdn.example.com/b.jpg" {
		t.Errorf("absolute gallery url changed: %q", view.Gallery[1])
	}
	if view.Video != "https://videos.example.com/heat.mp4" {
		t.Errorf("video = %q", view.Video)
	}
	if len(view.Genres) != 1 {
		t.Fatalf("genres = %v, want the stale id dropped", view.Genres)
	}
	if view.Genres[0].Thumbnail != "http://localhost:8080/uploads/action.jpg" {
		t.Errorf("genre thumbnail = %q", view.Genres[0].Thumbnail)
	}
}

func TestSeriesView_EpisodeVideos(t *testing.T) {
	sr := models.Series{
		Name:      "Dark",
		Thumbnail: "/uploads/dark.jpg",
		Episodes: []models.Episode{
			{Name: "Ep 1", Video: "/uploads/dark-e1.mp4"},
			{Name: "Ep 2", Video: "https://cdn.example.com/dark-e2.mp4"},
		},
	}

	view := Series("http://localhost:8080", sr, nil)

	if view.Episodes[0].Video != "http://localhost:8080/uploads/dark-e1.mp4" {
		t.Errorf("episode 1 video = %q", view.Episodes[0].Video)
	}
	if view.Episodes[1].Video != "https://cdn.example.com/dark-e2.mp4" {
		t.Errorf("absolute episode video changed: %q", view.Episodes[1].Video)
	}
}

func TestGenreView_EmptyThumbnail(t *testing.T) {
	g := Genre("http://localhost:8080", models.Genre{Name: "Drama"})
	if g.Thumbnail != "" {
		t.Errorf("thumbnail = %q, want empty", g.Thumbnail)
	}
}

func TestCommentViews(t *testing.T) {
	author := primitive.NewObjectID()
	ghost := primitive.NewObjectID()
	now := time.Now().UTC()

	comments := []models.Comment{
		{ID: primitive.NewObjectID(), User: author, Content: "great", CreatedAt: now},
		{ID: primitive.NewObjectID(), User: ghost, Content: "gone", CreatedAt: now},
	}
	out := CommentViews(comments, map[primitive.ObjectID]string{author: "Anna"})

	if out[0].User.DisplayName != "Anna" {
		t.Errorf("author = %+v", out[0].User)
	}
	if out[1].User.DisplayName != "" || out[1].User.ID != ghost {
		t.Errorf("deleted author = %+v", out[1].User)
	}
}
