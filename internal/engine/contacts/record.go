// Package contacts extracts structured contact records from the textual
// surface of a channel: API description fields and scraped page bodies.
package contacts

import (
	"sort"
	"strings"
)

// Category is a known social/link slot on a record.
type Category string

const (
	Instagram Category = "instagram"
	Twitter   Category = "twitter"
	Facebook  Category = "facebook"
	TikTok    Category = "tiktok"
	Twitch    Category = "twitch"
	Discord   Category = "discord"
	LinkedIn  Category = "linkedin"
	Website   Category = "website"
)

// Categories lists all link slots in output column order.
var Categories = []Category{Instagram, Twitter, Facebook, TikTok, Twitch, Discord, LinkedIn, Website}

// EmailSet is a set of normalized lowercase email addresses.
type EmailSet map[string]struct{}

// Add lowercases and inserts an address.
func (s EmailSet) Add(email string) {
	s[strings.ToLower(email)] = struct{}{}
}

// Union merges other into s.
func (s EmailSet) Union(other EmailSet) {
	for e := range other {
		s[e] = struct{}{}
	}
}

// Sorted returns the addresses in lexical order.
func (s EmailSet) Sorted() []string {
	out := make([]string, 0, len(s))
	for e := range s {
		out = append(out, e)
	}
	sort.Strings(out)
	return out
}

// Links maps a category to at most one URL. First-wins: once a category is
// filled, later candidates for that category are ignored.
type Links map[Category]string

// Set fills cat with url unless the category is already taken.
func (l Links) Set(cat Category, url string) {
	if l[cat] == "" {
		l[cat] = url
	}
}

// Merge absorbs other, preserving first-wins per category.
func (l Links) Merge(other Links) {
	for cat, url := range other {
		l.Set(cat, url)
	}
}

// Record is the contact profile of a single channel. It is built by the
// profile builder and owned by the sink after hand-off.
type Record struct {
	ChannelName string
	ChannelURL  string
	Handle      string
	Subscribers int64
	Description string
	Emails      EmailSet
	Links       Links
}

// NewRecord returns a Record with empty, non-nil collections.
func NewRecord() *Record {
	return &Record{
		Emails: EmailSet{},
		Links:  Links{},
	}
}

// Absorb merges one text source's extraction output into the record:
// union for emails, first-wins per category for links. Absorbing the same
// output twice is a no-op.
func (r *Record) Absorb(emails EmailSet, links Links) {
	r.Emails.Union(emails)
	r.Links.Merge(links)
}
