package reddit

import "encoding/json"

// Post is the slice of a t3 listing child the fetcher reads
type Post struct {
	ID         string  `json:"id"`
	Title      string  `json:"title"`
	Selftext   string  `json:"selftext"`
	CreatedUTC float64 `json:"created_utc"`
	Permalink  string  `json:"permalink"`
	Subreddit  string  `json:"subreddit"`
}

// Text is the title and body joined by a space
func (p Post) Text() string { return p.Title + " " + p.Selftext }

// Comment is a t1 listing child
type Comment struct {
	ID   string `json:"id"`
	Body string `json:"body"`
}

type listing struct {
	Data struct {
		After    string  `json:"after"`
		Children []child `json:"children"`
	} `json:"data"`
}

type child struct {
	Kind string          `json:"kind"`
	Data json.RawMessage `json:"data"`
}
