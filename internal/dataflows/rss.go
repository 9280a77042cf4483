package dataflows

import (
	"encoding/xml"
	"fmt"
	"net/url"
	"strings"
	"time"
)

type rssFeed struct {
	XMLName xml.Name   `xml:"rss"`
	Channel rssChannel `xml:"channel"`
}

type rssChannel struct {
	Title string    `xml:"title"`
	Items []rssItem `xml:"item"`
}

type rssItem struct {
	Title   string    `xml:"title"`
	Link    string    `xml:"link"`
	PubDate string    `xml:"pubDate"`
	Source  rssSource `xml:"source"`
	GUID    string    `xml:"guid"`
}

type rssSource struct {
	URL  string `xml:"url,attr"`
	Text string `xml:",chardata"`
}

// fetchYahooRSS tries the Yahoo Finance headline feeds in order and returns
// the first one that yields items.
func (c *Client) fetchYahooRSS(symbol string) ([]NewsItem, error) {
	var lastErr error
	for _, tmpl := range c.yahooRSSURLs {
		feedURL := fmt.Sprintf(tmpl, url.QueryEscape(symbol))
		items, err := c.fetchRSS(feedURL, "Yahoo Finance")
		if err != nil {
			lastErr = err
			continue
		}
		if len(items) > 0 {
			return items, nil
		}
	}
	if lastErr != nil {
		return nil, lastErr
	}
	return nil, nil
}

// fetchGoogleNewsRSS searches Google News for recent coverage of the ticker.
func (c *Client) fetchGoogleNewsRSS(symbol string) ([]NewsItem, error) {
	v := url.Values{}
	v.Set("q", fmt.Sprintf("%s stock news", symbol))
	v.Set("hl", "en-US")
	v.Set("gl", "US")
	v.Set("ceid", "US:en")

	return c.fetchRSS(c.googleRSSURL+"?"+v.Encode(), "Google News")
}

// fetchRSS pulls and parses one RSS feed. defaultPublisher fills in when an
// item carries no source element.
func (c *Client) fetchRSS(feedURL, defaultPublisher string) ([]NewsItem, error) {
	resp, err := c.rss.R().Get(feedURL)
	if err != nil {
		return nil, fmt.Errorf("fetch RSS feed: %w", err)
	}
	if resp.StatusCode() != 200 {
		return nil, fmt.Errorf("HTTP error %d when fetching RSS feed", resp.StatusCode())
	}

	var feed rssFeed
	if err := xml.Unmarshal(resp.Body(), &feed); err != nil {
		return nil, fmt.Errorf("parse RSS XML: %w", err)
	}

	var items []NewsItem
	for _, item := range feed.Channel.Items {
		title := strings.TrimSpace(item.Title)
		link := strings.TrimSpace(item.Link)
		if title == "" || link == "" {
			continue
		}

		publisher := strings.TrimSpace(item.Source.Text)
		if publisher == "" && item.Source.URL != "" {
			if u, err := url.Parse(item.Source.URL); err == nil {
				publisher = u.Host
			}
		}
		if publisher == "" {
			publisher = defaultPublisher
		}

		items = append(items, NewsItem{
			Title:     title,
			Publisher: publisher,
			Link:      link,
			Published: parsePubDate(item.PubDate),
		})
	}
	return items, nil
}

// parsePubDate handles the two date formats RSS feeds use in the wild.
// Unparseable dates come back zero, meaning unknown.
func parsePubDate(s string) time.Time {
	s = strings.TrimSpace(s)
	if s == "" {
		return time.Time{}
	}
	if t, err := time.Parse(time.RFC1123Z, s); err == nil {
		return t
	}
	if t, err := time.Parse("Mon, 02 Jan 2006 15:04:05 MST", s); err == nil {
		return t
	}
	return time.Time{}
}
