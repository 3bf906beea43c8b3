package importer_test

import (
	"strings"
	"testing"

	"github.com/nikbrunner/cine/internal/exporter"
	"github.com/nikbrunner/cine/internal/importer"
	"github.com/nikbrunner/cine/internal/model"
)

func TestParseHTML_ExportedFile(t *testing.T) {
	html := `<!DOCTYPE NETSCAPE-Bookmark-file-1>
<TITLE>Favorite Movies</TITLE>
<H1>Favorite Movies</H1>
<DL><p>
    <DT><H3>cine</H3>
    <DL><p>
        <DT><A HREF="https://www.themoviedb.org/movie/155" DATA-TMDB-ID="155" DATA-RELEASE="2008-07-16" DATA-RATING="8.5" DATA-POSTER="/qJ2tW6WMUDux911r6m7haRef0WH.jpg">The Dark Knight</A>
        <DD>Batman raises the stakes...
        <DT><A HREF="https://www.themoviedb.org/movie/414906" DATA-TMDB-ID="414906" DATA-RELEASE="" DATA-RATING="7.7" DATA-POSTER="">The Batman</A>
    </DL><p>
</DL><p>`

	movies, err := importer.ParseHTMLFavorites(strings.NewReader(html))
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if len(movies) != 2 {
		t.Fatalf("expected 2 movies, got %d", len(movies))
	}

	dk := movies[0]
	if dk.ID != 155 || dk.Title != "The Dark Knight" || dk.ReleaseDate != "2008-07-16" || dk.VoteAverage != 8.5 {
		t.Errorf("unexpected first movie: %+v", dk)
	}
	if dk.PosterPath == nil || *dk.PosterPath != "/qJ2tW6WMUDux911r6m7haRef0WH.jpg" {
		t.Errorf("unexpected poster: %v", dk.PosterPath)
	}
	if dk.Overview != "Batman raises the stakes..." {
		t.Errorf("unexpected overview: %q", dk.Overview)
	}

	batman := movies[1]
	if batman.PosterPath != nil {
		t.Error("expected nil poster for empty attribute")
	}
	if batman.Overview != "" {
		t.Errorf("expected no overview, got %q", batman.Overview)
	}
}

func TestParseHTML_BrowserBookmarks(t *testing.T) {
	html := `<!DOCTYPE NETSCAPE-Bookmark-file-1>
<DL><p>
    <DT><H3>Movies</H3>
    <DL><p>
        <DT><A HREF="https://www.themoviedb.org/movie/603-the-matrix?language=pt-BR" ADD_DATE="1234567890">The Matrix (1999) - TMDB</A>
        <DT><A HREF="https://example.com">Not a movie</A>
        <DT><A HREF="https://www.themoviedb.org/tv/1399">A TV show</A>
    </DL><p>
    <DT><A HREF="https://themoviedb.org/movie/872585">Oppenheimer</A>
</DL><p>`

	movies, err := importer.ParseHTMLFavorites(strings.NewReader(html))
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if len(movies) != 2 {
		t.Fatalf("expected 2 movies, got %d: %+v", len(movies), movies)
	}
	if movies[0].ID != 603 || movies[0].Title != "The Matrix (1999) - TMDB" {
		t.Errorf("unexpected first movie: %+v", movies[0])
	}
	if movies[1].ID != 872585 {
		t.Errorf("unexpected second movie: %+v", movies[1])
	}
}

func TestParseHTML_DuplicateIDs(t *testing.T) {
	html := `<DL><p>
<DT><A HREF="https://www.themoviedb.org/movie/155">First</A>
<DT><A HREF="https://www.themoviedb.org/movie/155-the-dark-knight">Second</A>
<DD>ignored overview
</DL>`

	movies, err := importer.ParseHTMLFavorites(strings.NewReader(html))
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if len(movies) != 1 {
		t.Fatalf("expected 1 movie, got %d", len(movies))
	}
	if movies[0].Title != "First" || movies[0].Overview != "" {
		t.Errorf("expected first entry untouched, got %+v", movies[0])
	}
}

func TestParseHTML_Empty(t *testing.T) {
	movies, err := importer.ParseHTMLFavorites(strings.NewReader(""))
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if len(movies) != 0 {
		t.Errorf("expected no movies, got %d", len(movies))
	}
}

func TestParseHTML_RoundTrip(t *testing.T) {
	poster := "/8RW2runSEc34IwKN2D1aPcJd2UL.jpg"
	original := []model.MovieSummary{
		{ID: 272, Title: "Batman Begins", PosterPath: &poster, ReleaseDate: "2005-06-10", VoteAverage: 7.7, Overview: `Driven by "tragedy" & loss`},
		{ID: 1, Title: "Tom & Jerry <Cat>"},
	}

	movies, err := importer.ParseHTMLFavorites(strings.NewReader(exporter.ExportHTML(original)))
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if len(movies) != len(original) {
		t.Fatalf("expected %d movies, got %d", len(original), len(movies))
	}
	for i := range original {
		want, got := original[i], movies[i]
		if got.ID != want.ID || got.Title != want.Title || got.Overview != want.Overview ||
			got.ReleaseDate != want.ReleaseDate || got.VoteAverage != want.VoteAverage {
			t.Errorf("movie %d: got %+v, want %+v", i, got, want)
		}
	}
}
