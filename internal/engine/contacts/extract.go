package contacts

import (
	"regexp"
	"strings"
)

// Scanning patterns. These are discovery scanners, deliberately loose; strict
// validation is the CSV filter tool's job.
var (
	emailRE = regexp.MustCompile(`\b[A-Za-z0-9._%+-]+@[A-Za-z0-9.-]+\.[A-Za-z]{2,}\b`)

	// The captured group strips the scheme and a leading www., so every
	// retained link is rebuilt as https://<capture>.
	urlRE = regexp.MustCompile(`https?://(?:www\.)?([^\s<>"']+)`)
)

// emailFalsePositives discards placeholder addresses people paste into
// descriptions ("contact@example.com", "you@yourdomain.com", test accounts).
var emailFalsePositives = []string{"example.com", "yourdomain", "test"}

// ownPlatform marks URLs that are never a channel's external website.
var ownPlatform = []string{"youtube.com", "youtu.be", "google.com"}

// socialMarkers lists platform substrings that disqualify a URL from the
// website slot. x.com needs no entry: classify claims it for twitter before
// the website fallback is ever reached.
var socialMarkers = []string{
	"instagram", "twitter", "facebook", "tiktok",
	"twitch", "discord", "linkedin", "youtube", "youtu.be",
}

// Extract scans one text source for contact information. Pure function: the
// same text always yields the same emails and links.
func Extract(text string) (EmailSet, Links) {
	emails := EmailSet{}
	links := Links{}
	if text == "" {
		return emails, links
	}

	for _, m := range emailRE.FindAllString(text, -1) {
		lower := strings.ToLower(m)
		if containsAny(lower, emailFalsePositives) {
			continue
		}
		emails.Add(lower)
	}

	for _, m := range urlRE.FindAllStringSubmatch(text, -1) {
		link := m[1]
		lower := strings.ToLower(link)
		full := "https://" + link

		if cat, ok := classify(lower); ok {
			links.Set(cat, full)
			continue
		}
		if containsAny(lower, ownPlatform) {
			continue
		}
		if looksLikeWebsite(lower) {
			links.Set(Website, full)
		}
	}

	return emails, links
}

// classify assigns a URL (lowercased, scheme-stripped) to a social category.
// twitter.com and x.com are equal triggers for the twitter slot; x.com is
// matched at the host position only so that e.g. wix.com stays a website
// candidate.
func classify(lower string) (Category, bool) {
	switch {
	case strings.Contains(lower, "instagram.com"):
		return Instagram, true
	case strings.Contains(lower, "twitter.com") || isXDotCom(lower):
		return Twitter, true
	case strings.Contains(lower, "facebook.com"):
		return Facebook, true
	case strings.Contains(lower, "tiktok.com"):
		return TikTok, true
	case strings.Contains(lower, "twitch.tv"):
		return Twitch, true
	case strings.Contains(lower, "discord"):
		return Discord, true
	case strings.Contains(lower, "linkedin.com"):
		return LinkedIn, true
	}
	return "", false
}

// isXDotCom reports whether the URL's host is x.com or a subdomain of it.
// The scanned text starts at the host, so a prefix check covers the bare
// domain and ".x.com" covers subdomains.
func isXDotCom(lower string) bool {
	return strings.HasPrefix(lower, "x.com") || strings.Contains(lower, ".x.com")
}

// looksLikeWebsite reports whether a URL plausibly points at a personal or
// business site rather than a social platform.
func looksLikeWebsite(lower string) bool {
	return !containsAny(lower, socialMarkers)
}

func containsAny(s string, subs []string) bool {
	for _, sub := range subs {
		if strings.Contains(s, sub) {
			return true
		}
	}
	return false
}
