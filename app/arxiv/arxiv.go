// Package arxiv normalizes submitted paper links and fetches article
// metadata from the arXiv Atom API.
package arxiv

import (
	"context"
	"encoding/xml"
	"fmt"
	"io"
	"net/http"
	"regexp"
	"strings"
	"time"
)

const (
	apiBaseURL  = "https://export.arxiv.org/api/query"
	absPrefix   = "http://arxiv.org/abs/"
	fetchWindow = 15 * time.Second
)

// Metadata holds the article information scraped for a submitted link.
type Metadata struct {
	URL          string
	Author       string
	AuthorNumber int
	Title        string
	Abstract     string
	Subject      string
	Sources      string
}

// bare ids like "1604.03939", "2301.00001v2" or "astro-ph/0601001"
var (
	newStyleID = regexp.MustCompile(`^\d{4}\.\d{4,5}(v\d+)?$`)
	oldStyleID = regexp.MustCompile(`^[a-z-]+(\.[A-Z]{2})?/\d{7}(v\d+)?$`)
)

// CleanURL tidies up the submitted link: bare arXiv ids get the abstract
// url prefix, pdf links are rewritten to their abstract pages, and a few
// journal-specific quirks are fixed. Non-arXiv links pass through mostly
// untouched.
func CleanURL(raw string) string {
	url := strings.TrimSpace(raw)

	if newStyleID.MatchString(url) || oldStyleID.MatchString(url) {
		return absPrefix + url
	}

	// arXiv pdf link -> abstract page
	if strings.Contains(url, "arxiv.org") && strings.Contains(url, "/pdf/") {
		url = strings.TrimSuffix(url, ".pdf")
		url = strings.Replace(url, "/pdf/", "/abs/", 1)
	}

	// "arxiv:1604.03939" style references
	if id, ok := strings.CutPrefix(strings.ToLower(url), "arxiv:"); ok {
		return absPrefix + strings.TrimSpace(url[len(url)-len(id):])
	}

	// Science links need the .full suffix to reach the article
	if strings.Contains(url, "science.sciencemag.org") && !strings.Contains(url, ".full") {
		url += ".full"
	}

	// PRL pdf links point at the abstract instead
	if strings.Contains(url, "journals.aps.org/prl") {
		url = strings.Replace(url, "/pdf/", "/abstract/", 1)
	}

	return url
}

// ExtractID pulls the arXiv identifier out of a cleaned url. ok is false
// for non-arXiv links.
func ExtractID(url string) (string, bool) {
	for _, host := range []string{"arxiv.org", "xxx.lanl.gov"} {
		idx := strings.Index(url, host+"/abs/")
		if idx < 0 {
			continue
		}
		id := url[idx+len(host)+len("/abs/"):]
		id = strings.TrimSuffix(id, "/")
		if qIdx := strings.IndexAny(id, "?#"); qIdx >= 0 {
			id = id[:qIdx]
		}
		if id != "" {
			return id, true
		}
	}
	return "", false
}

// Fetch retrieves metadata for a cleaned arXiv url. Non-arXiv links return
// an error; callers are expected to store the bare url in that case.
func Fetch(ctx context.Context, url string) (*Metadata, error) {
	id, ok := ExtractID(url)
	if !ok {
		return nil, fmt.Errorf("not an arXiv link: %s", url)
	}

	reqURL := fmt.Sprintf("%s?id_list=%s", apiBaseURL, id)
	ctx, cancel := context.WithTimeout(ctx, fetchWindow)
	defer cancel()

	req, err := http.NewRequestWithContext(ctx, "GET", reqURL, nil)
	if err != nil {
		return nil, err
	}

	resp, err := http.DefaultClient.Do(req)
	if err != nil {
		return nil, err
	}
	defer resp.Body.Close()

	if resp.StatusCode != http.StatusOK {
		return nil, fmt.Errorf("arxiv api: http %s", resp.Status)
	}

	body, err := io.ReadAll(resp.Body)
	if err != nil {
		return nil, err
	}

	meta, err := parseFeed(body)
	if err != nil {
		return nil, err
	}
	meta.URL = url
	return meta, nil
}

// Atom feed structures for the arXiv API.

type atomFeed struct {
	XMLName xml.Name    `xml:"feed"`
	Entries []atomEntry `xml:"entry"`
}

type atomEntry struct {
	ID              string       `xml:"id"`
	Title           string       `xml:"title"`
	Summary         string       `xml:"summary"`
	Authors         []atomAuthor `xml:"author"`
	PrimaryCategory atomCategory `xml:"primary_category"`
	Links           []atomLink   `xml:"link"`
}

type atomAuthor struct {
	Name string `xml:"name"`
}

type atomCategory struct {
	Term string `xml:"term,attr"`
}

type atomLink struct {
	Title string `xml:"title,attr"`
	Href  string `xml:"href,attr"`
}

func parseFeed(body []byte) (*Metadata, error) {
	var feed atomFeed
	if err := xml.Unmarshal(body, &feed); err != nil {
		return nil, fmt.Errorf("parse xml: %w", err)
	}

	// The API reports an unknown id as a feed with no usable entry.
	if len(feed.Entries) == 0 || feed.Entries[0].Title == "" {
		return nil, fmt.Errorf("paper not found")
	}
	entry := feed.Entries[0]

	var authors []string
	for _, a := range entry.Authors {
		authors = append(authors, a.Name)
	}
	// Keep the first four for display; AuthorNumber records the full count.
	displayed := authors
	if len(displayed) > 4 {
		displayed = displayed[:4]
	}

	var sources []string
	for _, l := range entry.Links {
		if l.Title == "pdf" && l.Href != "" {
			sources = append(sources, l.Href)
		}
	}

	return &Metadata{
		Title:        collapseSpace(entry.Title),
		Abstract:     collapseSpace(entry.Summary),
		Author:       strings.Join(displayed, ", "),
		AuthorNumber: len(authors),
		Subject:      entry.PrimaryCategory.Term,
		Sources:      strings.Join(sources, " "),
	}, nil
}

// collapseSpace flattens the newline-wrapped text the Atom feed returns.
func collapseSpace(s string) string {
	return strings.Join(strings.Fields(s), " ")
}
