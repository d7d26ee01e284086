package goauth1atwitter

// SearchResult is the recent search response with the author expansion.
type SearchResult struct {
	Data     []Tweet  `json:"data"`
	Includes Includes `json:"includes"`
	Meta     Meta     `json:"meta"`
}

// Tweet is a post returned by search.
type Tweet struct {
	AuthorID  string `json:"author_id"`
	Text      string `json:"text"`
	ID        string `json:"id"`
	CreatedAt string `json:"created_at"`
}

// Includes holds expanded objects referenced by Data.
type Includes struct {
	Users []User `json:"users"`
}

// User is an expanded author record.
type User struct {
	CreatedAt string `json:"created_at"`
	Username  string `json:"username"`
	ID        string `json:"id"`
	Name      string `json:"name"`
}

// Meta carries the result window of a search.
type Meta struct {
	NewestID    string `json:"newest_id"`
	OldestID    string `json:"oldest_id"`
	ResultCount int    `json:"result_count"`
}

// StatusResult is the status record returned by a status update.
type StatusResult struct {
	CreatedAt string `json:"created_at" structs:"CreatedAt"`
	ID        uint64 `json:"id" structs:"ID"`
	IDStr     string `json:"id_str" structs:"IDStr"`
	Text      string `json:"text" structs:"Text"`
}

// Author returns the expanded user for t, if present.
func (r *SearchResult) Author(t Tweet) (User, bool) {
	for _, u := range r.Includes.Users {
		if u.ID == t.AuthorID {
			return u, true
		}
	}
	return User{}, false
}
