package news

import "time"

// Headline is one recent news item about a place.
type Headline struct {
	// Title is the headline text.
	Title string

	// Source is the publishing outlet.
	Source string

	// PublishedAt is the publication timestamp.
	PublishedAt time.Time
}
