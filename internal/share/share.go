// Package share builds share links for an article and copies links to the
// system clipboard. Opening the resulting URL is left to the browser
// package.
package share

import (
	"fmt"
	"net/url"

	"github.com/atotto/clipboard"
)

// LinkedInURL returns the LinkedIn share dialog URL for link.
func LinkedInURL(link string) string {
	return "https://www.linkedin.com/sharing/share-offsite/?url=" + url.QueryEscape(link)
}

// TwitterURL returns the tweet-intent URL for link with title as the text.
func TwitterURL(link, title string) string {
	return "https://twitter.com/intent/tweet?url=" + url.QueryEscape(link) +
		"&text=" + url.QueryEscape(title)
}

// CopyLink places link on the system clipboard.
func CopyLink(link string) error {
	if err := clipboard.WriteAll(link); err != nil {
		return fmt.Errorf("copying link: %w", err)
	}
	return nil
}
