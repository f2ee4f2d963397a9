package reddit

import (
	"context"
	"encoding/json"
	"net/url"
	"strconv"
	"strings"
)

// reddit caps a listing page at 100
const pageSize = 100

// Search runs a quoted phrase search over a multireddit, following pages until limit
func (c *Client) Search(ctx context.Context, subreddits []string, query string, limit int) ([]Post, error) {
	path := "/r/" + strings.Join(subreddits, "+") + "/search.json"
	var out []Post
	after := ""
	for len(out) < limit {
		q := url.Values{}
		q.Set("q", `"`+query+`"`)
		q.Set("restrict_sr", "on")
		q.Set("sort", "relevance")
		q.Set("t", "all")
		q.Set("raw_json", "1")
		q.Set("limit", strconv.Itoa(min(pageSize, limit-len(out))))
		if after != "" {
			q.Set("after", after)
		}

		var l listing
		if err := c.getJSON(ctx, path, q, &l); err != nil {
			return out, err
		}
		for _, ch := range l.Data.Children {
			if ch.Kind != "t3" {
				continue
			}
			var p Post
			if json.Unmarshal(ch.Data, &p) == nil && p.ID != "" {
				out = append(out, p)
			}
		}
		after = l.Data.After
		if after == "" || len(l.Data.Children) == 0 {
			break
		}
	}
	if len(out) > limit {
		out = out[:limit]
	}
	return out, nil
}

// Comments returns up to limit top-level comments of a post, skipping "more" stubs
func (c *Client) Comments(ctx context.Context, postID string, limit int) ([]Comment, error) {
	q := url.Values{}
	q.Set("limit", strconv.Itoa(limit))
	q.Set("depth", "1")
	q.Set("raw_json", "1")

	// the response is [post listing, comment listing]
	var ls []listing
	if err := c.getJSON(ctx, "/comments/"+url.PathEscape(postID)+".json", q, &ls); err != nil {
		return nil, err
	}
	if len(ls) < 2 {
		return nil, nil
	}
	var out []Comment
	for _, ch := range ls[1].Data.Children {
		if ch.Kind != "t1" {
			continue
		}
		var cm Comment
		if json.Unmarshal(ch.Data, &cm) == nil && cm.Body != "" {
			out = append(out, cm)
		}
		if len(out) == limit {
			break
		}
	}
	return out, nil
}
