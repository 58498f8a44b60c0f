package openlibrary

// workResponse is the raw response from the works endpoint.
// Only the fields we consume are declared.
type workResponse struct {
	Key         string   `json:"key"`
	Title       string   `json:"title"`
	Covers      []int64  `json:"covers"`
	Subjects    []string `json:"subjects"`
	Description any      `json:"description"`
}

// searchResponse is the raw response from the search endpoint.
type searchResponse struct {
	NumFound int             `json:"numFound"`
	Docs     []searchDocJSON `json:"docs"`
}

type searchDocJSON struct {
	Key              string   `json:"key"`
	Title            string   `json:"title"`
	AuthorName       []string `json:"author_name"`
	FirstPublishYear int      `json:"first_publish_year"`
	CoverID          int64    `json:"cover_i"`
}

// Book is a resolved Open Library work.
type Book struct {
	Key      string `json:"key"`
	Title    string `json:"title"`
	Author   string `json:"author,omitempty"`
	CoverURL string `json:"cover_url,omitempty"`
	Year     int    `json:"year,omitempty"`
}
