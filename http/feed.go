package http

import (
	"context"
	"fmt"
	"net/http"
	"strings"

	"github.com/beevik/etree"
	"github.com/fwojciec/scribe"
)

// Ensure FeedSource implements scribe.URLSource.
var _ scribe.URLSource = (*FeedSource)(nil)

// FeedSource reads video URLs from an Atom or RSS feed, such as a channel's
// videos.xml.
type FeedSource struct {
	client *http.Client
	url    string
}

// NewFeedSource creates a FeedSource for the feed at url.
// If client is nil, http.DefaultClient is used.
func NewFeedSource(client *http.Client, url string) *FeedSource {
	if client == nil {
		client = http.DefaultClient
	}
	return &FeedSource{client: client, url: url}
}

// URLs returns the link of every feed entry in document order.
// Returns an empty slice (not nil) if the feed has no entries.
func (s *FeedSource) URLs(ctx context.Context) ([]string, error) {
	if err := ctx.Err(); err != nil {
		return nil, err
	}

	body, err := get(ctx, s.client, s.url)
	if err != nil {
		return nil, err
	}
	defer body.Close()

	doc := etree.NewDocument()
	if _, err := doc.ReadFrom(body); err != nil {
		return nil, fmt.Errorf("parsing feed XML: %w", err)
	}

	root := doc.Root()
	if root == nil {
		return nil, scribe.Errorf(scribe.EINVALID, "empty feed XML: %s", s.url)
	}

	switch root.Tag {
	case "feed":
		return atomLinks(root), nil
	case "rss":
		return rssLinks(root), nil
	default:
		return nil, scribe.Errorf(scribe.EINVALID, "unsupported feed root <%s>: %s", root.Tag, s.url)
	}
}

// atomLinks extracts the alternate link of each <entry>. A link without a
// rel attribute is an alternate link.
func atomLinks(root *etree.Element) []string {
	urls := []string{}
	for _, entry := range root.SelectElements("entry") {
		for _, link := range entry.SelectElements("link") {
			rel := link.SelectAttrValue("rel", "alternate")
			href := strings.TrimSpace(link.SelectAttrValue("href", ""))
			if rel == "alternate" && href != "" {
				urls = append(urls, href)
				break
			}
		}
	}
	return urls
}

// rssLinks extracts <channel><item><link> values.
func rssLinks(root *etree.Element) []string {
	urls := []string{}
	for _, item := range root.FindElements("./channel/item") {
		link := item.SelectElement("link")
		if link == nil {
			continue
		}
		if u := strings.TrimSpace(link.Text()); u != "" {
			urls = append(urls, u)
		}
	}
	return urls
}
