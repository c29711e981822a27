// Package arxiv reads article metadata dumps and answers authorship
// questions over them.
//
// A dump is a sequence of blocks, each terminated by a line holding only
// END:
//
//	id
//	title
//	created
//	modified
//	Last,First      (zero or more author lines)
//	                (blank line)
//	abstract lines...
//	END
//
// Empty title, created or modified lines mean the value is absent.
package arxiv

import (
	"bufio"
	"cmp"
	"fmt"
	"io"
	"slices"
	"strings"
)

const endMarker = "END"

// maxLineSize bounds a single line of a dump; abstracts are often one line.
const maxLineSize = 4 << 20

// Author is a (last, first) name pair.
type Author struct {
	Last  string `json:"last"`
	First string `json:"first"`
}

func (a Author) String() string {
	return a.Last + "," + a.First
}

// ParseAuthor parses "Last,First".
func ParseAuthor(s string) (Author, error) {
	last, first, ok := strings.Cut(s, ",")
	if !ok {
		return Author{}, fmt.Errorf("author %q: want Last,First", s)
	}
	return Author{Last: strings.TrimSpace(last), First: strings.TrimSpace(first)}, nil
}

func compareAuthors(a, b Author) int {
	if c := cmp.Compare(a.Last, b.Last); c != 0 {
		return c
	}
	return cmp.Compare(a.First, b.First)
}

// Article is one metadata record. Authors are sorted.
type Article struct {
	ID       string   `json:"id"`
	Title    string   `json:"title,omitempty"`
	Created  string   `json:"created,omitempty"`
	Modified string   `json:"modified,omitempty"`
	Authors  []Author `json:"authors"`
	Abstract string   `json:"abstract"`
}

// Arxiv maps article ids to articles.
type Arxiv map[string]*Article

// Read parses a dump. A final block missing its END line is still kept.
func Read(r io.Reader) (Arxiv, error) {
	result := Arxiv{}
	scanner := bufio.NewScanner(r)
	scanner.Buffer(make([]byte, 0, 64*1024), maxLineSize)

	var block []string
	start, lineNo := 1, 0
	flush := func() error {
		if len(block) == 0 {
			return nil
		}
		article, err := parseBlock(block)
		if err != nil {
			return fmt.Errorf("article at line %d: %w", start, err)
		}
		result[article.ID] = article
		block = nil
		return nil
	}

	for scanner.Scan() {
		lineNo++
		line := strings.TrimRight(scanner.Text(), "\r")
		if strings.TrimSpace(line) == endMarker {
			if err := flush(); err != nil {
				return nil, err
			}
			start = lineNo + 1
			continue
		}
		block = append(block, line)
	}
	if err := scanner.Err(); err != nil {
		return nil, fmt.Errorf("failed to read arxiv data: %w", err)
	}
	if err := flush(); err != nil {
		return nil, err
	}
	return result, nil
}

func parseBlock(lines []string) (*Article, error) {
	if len(lines) < 4 {
		return nil, fmt.Errorf("want id, title, created and modified lines, got %d lines", len(lines))
	}
	a := &Article{
		ID:       strings.TrimSpace(lines[0]),
		Title:    strings.TrimSpace(lines[1]),
		Created:  strings.TrimSpace(lines[2]),
		Modified: strings.TrimSpace(lines[3]),
		Authors:  []Author{},
	}
	if a.ID == "" {
		return nil, fmt.Errorf("empty id")
	}

	i := 4
	for ; i < len(lines); i++ {
		line := strings.TrimSpace(lines[i])
		if line == "" {
			i++
			break
		}
		author, err := ParseAuthor(line)
		if err != nil {
			return nil, err
		}
		a.Authors = append(a.Authors, author)
	}
	slices.SortFunc(a.Authors, compareAuthors)

	abstract := make([]string, 0, len(lines)-i)
	for _, line := range lines[i:] {
		abstract = append(abstract, strings.TrimSpace(line))
	}
	a.Abstract = strings.Join(abstract, "\n")

	return a, nil
}

// AuthorsToArticles maps each author to the sorted ids of their articles.
func (x Arxiv) AuthorsToArticles() map[Author][]string {
	byAuthor := map[Author][]string{}
	for id, article := range x {
		for _, author := range article.Authors {
			byAuthor[author] = append(byAuthor[author], id)
		}
	}
	for _, ids := range byAuthor {
		slices.Sort(ids)
	}
	return byAuthor
}

// Coauthors returns everyone who shares an article with author, sorted and
// without duplicates.
func (x Arxiv) Coauthors(author Author) []Author {
	seen := map[Author]bool{}
	for _, article := range x {
		if !slices.Contains(article.Authors, author) {
			continue
		}
		for _, other := range article.Authors {
			if other != author {
				seen[other] = true
			}
		}
	}
	return sortedAuthors(seen)
}

// MostPublished returns the authors with the most articles, sorted.
func (x Arxiv) MostPublished() []Author {
	best := 0
	top := map[Author]bool{}
	for author, ids := range x.AuthorsToArticles() {
		switch {
		case len(ids) > best:
			best = len(ids)
			top = map[Author]bool{author: true}
		case len(ids) == best:
			top[author] = true
		}
	}
	return sortedAuthors(top)
}

// SuggestCollaborators returns the coauthors of author's coauthors who have
// not yet worked with author, sorted.
func (x Arxiv) SuggestCollaborators(author Author) []Author {
	direct := x.Coauthors(author)
	suggested := map[Author]bool{}
	for _, coauthor := range direct {
		for _, candidate := range x.Coauthors(coauthor) {
			if candidate != author && !slices.Contains(direct, candidate) {
				suggested[candidate] = true
			}
		}
	}
	return sortedAuthors(suggested)
}

// KeepProlific removes every article none of whose authors has at least
// minArticles articles. Counts are taken before anything is removed.
func (x Arxiv) KeepProlific(minArticles int) {
	byAuthor := x.AuthorsToArticles()
	for id, article := range x {
		keep := false
		for _, author := range article.Authors {
			if len(byAuthor[author]) >= minArticles {
				keep = true
				break
			}
		}
		if !keep {
			delete(x, id)
		}
	}
}

func sortedAuthors(set map[Author]bool) []Author {
	authors := make([]Author, 0, len(set))
	for author := range set {
		authors = append(authors, author)
	}
	slices.SortFunc(authors, compareAuthors)
	return authors
}
