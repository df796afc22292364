package engine

import (
	"time"

	"github.com/dustin/go-humanize"
	"github.com/google/uuid"
)

// NewsCategory classifies feed entries for the client.
type NewsCategory string

const (
	CategoryTutorial   NewsCategory = "tutorial"
	CategoryEconomy    NewsCategory = "economy"
	CategoryCompetitor NewsCategory = "competitor"
	CategoryPlayer     NewsCategory = "player"
	CategoryGeneral    NewsCategory = "general"
)

// MaxNewsItems bounds the in-memory feed.
const MaxNewsItems = 50

// NewsItem is one entry in the world news feed.
type NewsItem struct {
	ID       string       `json:"id"`
	Date     time.Time    `json:"date"`
	Category NewsCategory `json:"category"`
	Headline string       `json:"headline"`
	Read     bool         `json:"read"`
}

// AddNews appends an entry, trimming the feed to MaxNewsItems.
func (w *World) AddNews(cat NewsCategory, headline string) {
	w.News = append(w.News, NewsItem{
		ID:       uuid.NewString(),
		Date:     w.Date,
		Category: cat,
		Headline: headline,
	})
	if len(w.News) > MaxNewsItems {
		w.News = w.News[len(w.News)-MaxNewsItems:]
	}
}

// MarkNewsRead flags every current entry as read.
func (w *World) MarkNewsRead() {
	for i := range w.News {
		w.News[i].Read = true
	}
}

// UnreadNews counts entries not yet seen.
func (w *World) UnreadNews() int {
	n := 0
	for _, item := range w.News {
		if !item.Read {
			n++
		}
	}
	return n
}

// money formats a dollar amount for headlines.
func money(v float64) string {
	return "$" + humanize.CommafWithDigits(v, 0)
}
