package importer

import (
	"io"
	"regexp"
	"strconv"
	"strings"

	"golang.org/x/net/html"

	"github.com/nikbrunner/cine/internal/model"
)

// movieLink matches TMDB movie page links, with or without a title slug.
var movieLink = regexp.MustCompile(`themoviedb\.org/movie/(\d+)`)

// ParseHTMLFavorites reads a Netscape bookmark file and returns the movies
// it links to. Files written by the exporter round-trip fully; plain
// browser bookmarks of TMDB pages yield entries with only ID and title.
// Links that aren't TMDB movies are skipped, as are repeated IDs.
func ParseHTMLFavorites(r io.Reader) ([]model.MovieSummary, error) {
	doc, err := html.Parse(r)
	if err != nil {
		return nil, err
	}

	var movies []model.MovieSummary
	seen := make(map[int]bool)
	last := -1 // index of the latest movie, target of a following <DD>

	var walk func(*html.Node)
	walk = func(n *html.Node) {
		if n.Type == html.ElementNode {
			switch strings.ToLower(n.Data) {
			case "a":
				m, ok := parseMovie(n)
				if !ok || seen[m.ID] {
					last = -1
					return
				}
				seen[m.ID] = true
				movies = append(movies, m)
				last = len(movies) - 1
				return // Don't recurse into A

			case "dd":
				if last >= 0 {
					movies[last].Overview = ownText(n)
					last = -1
				}
			}
		}

		for c := n.FirstChild; c != nil; c = c.NextSibling {
			walk(c)
		}
	}

	walk(doc)
	return movies, nil
}

func parseMovie(n *html.Node) (model.MovieSummary, bool) {
	var m model.MovieSummary

	if id, err := strconv.Atoi(getAttr(n, "data-tmdb-id")); err == nil && id > 0 {
		m.ID = id
	} else if match := movieLink.FindStringSubmatch(getAttr(n, "href")); match != nil {
		m.ID, _ = strconv.Atoi(match[1])
	}
	if m.ID == 0 {
		return m, false
	}

	m.Title = getTextContent(n)
	m.ReleaseDate = getAttr(n, "data-release")
	if rating, err := strconv.ParseFloat(getAttr(n, "data-rating"), 64); err == nil {
		m.VoteAverage = rating
	}
	if poster := getAttr(n, "data-poster"); poster != "" {
		m.PosterPath = &poster
	}

	return m, true
}

// getTextContent returns the trimmed text content of a node and its children.
func getTextContent(n *html.Node) string {
	var text strings.Builder
	var extract func(*html.Node)
	extract = func(n *html.Node) {
		if n.Type == html.TextNode {
			text.WriteString(n.Data)
		}
		for c := n.FirstChild; c != nil; c = c.NextSibling {
			extract(c)
		}
	}
	extract(n)
	return strings.TrimSpace(text.String())
}

// ownText returns the text directly under n, ignoring nested elements
// such as a following <DT> the parser placed inside an unclosed <DD>.
func ownText(n *html.Node) string {
	var text strings.Builder
	for c := n.FirstChild; c != nil; c = c.NextSibling {
		if c.Type == html.TextNode {
			text.WriteString(c.Data)
		}
	}
	return strings.TrimSpace(text.String())
}

// getAttr returns the value of an attribute, case-insensitive.
func getAttr(n *html.Node, key string) string {
	for _, attr := range n.Attr {
		if strings.EqualFold(attr.Key, key) {
			return attr.Val
		}
	}
	return ""
}
