package exporter

import (
	"fmt"
	"html"
	"os"
	"path/filepath"
	"strconv"
	"strings"
	"time"

	"github.com/nikbrunner/cine/internal/catalog"
	"github.com/nikbrunner/cine/internal/model"
)

// DefaultExportPath returns the default export file path.
// Format: ~/Downloads/cine-favorites-YYYY-MM-DD.html
func DefaultExportPath() (string, error) {
	home, err := os.UserHomeDir()
	if err != nil {
		return "", err
	}
	filename := fmt.Sprintf("cine-favorites-%s.html", time.Now().Format("2006-01-02"))
	return filepath.Join(home, "Downloads", filename), nil
}

// ExportHTML renders favorites as a Netscape bookmark file.
// Each entry links to the movie's TMDB page and carries the summary
// fields as DATA-* attributes so the file can be imported back.
func ExportHTML(movies []model.MovieSummary) string {
	var b strings.Builder

	b.WriteString("<!DOCTYPE NETSCAPE-Bookmark-file-1>\n")
	b.WriteString("<META HTTP-EQUIV=\"Content-Type\" CONTENT=\"text/html; charset=UTF-8\">\n")
	b.WriteString("<TITLE>Favorite Movies</TITLE>\n")
	b.WriteString("<H1>Favorite Movies</H1>\n")
	b.WriteString("<DL><p>\n")
	b.WriteString("    <DT><H3>cine</H3>\n")
	b.WriteString("    <DL><p>\n")

	for _, m := range movies {
		writeMovie(&b, m, "        ")
	}

	b.WriteString("    </DL><p>\n")
	b.WriteString("</DL><p>\n")

	return b.String()
}

func writeMovie(b *strings.Builder, m model.MovieSummary, prefix string) {
	poster := ""
	if m.PosterPath != nil {
		poster = *m.PosterPath
	}

	fmt.Fprintf(b,
		"%s<DT><A HREF=\"%s\" DATA-TMDB-ID=\"%d\" DATA-RELEASE=\"%s\" DATA-RATING=\"%s\" DATA-POSTER=\"%s\">%s</A>\n",
		prefix,
		html.EscapeString(catalog.MovieURL(m.ID)),
		m.ID,
		html.EscapeString(m.ReleaseDate),
		strconv.FormatFloat(m.VoteAverage, 'f', -1, 64),
		html.EscapeString(poster),
		html.EscapeString(m.Title),
	)

	if m.Overview != "" {
		fmt.Fprintf(b, "%s<DD>%s\n", prefix, html.EscapeString(m.Overview))
	}
}
