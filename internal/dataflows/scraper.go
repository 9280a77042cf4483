package dataflows

import (
	"fmt"
	"strings"

	"github.com/PuerkitoBio/goquery"
)

// scrapeYahooNews is the last-resort news source: pull the Yahoo Finance
// news page for the ticker and lift headlines out of the HTML. Page
// structure shifts, so a cascade of selectors is tried. Scraped items carry
// no publish timestamp.
func (c *Client) scrapeYahooNews(symbol string) ([]NewsItem, error) {
	pageURL := fmt.Sprintf(c.scrapeURL, symbol)

	resp, err := c.scraper.R().Get(pageURL)
	if err != nil {
		return nil, fmt.Errorf("fetch news page: %w", err)
	}
	if resp.StatusCode() != 200 {
		return nil, fmt.Errorf("HTTP error %d when fetching news page", resp.StatusCode())
	}

	doc, err := goquery.NewDocumentFromReader(strings.NewReader(resp.String()))
	if err != nil {
		return nil, fmt.Errorf("parse HTML: %w", err)
	}

	var items []NewsItem
	seen := make(map[string]bool)

	selectors := []string{
		"article h3 a",
		"li.js-stream-content h3 a",
		"h3 a[href*='/news/']",
		"a[href*='/news/']",
	}

	for _, selector := range selectors {
		doc.Find(selector).Each(func(i int, s *goquery.Selection) {
			title := strings.TrimSpace(s.Text())
			if title == "" {
				return
			}

			href, exists := s.Attr("href")
			if !exists || href == "" {
				return
			}
			link := absoluteYahooURL(href)
			if seen[link] {
				return
			}
			seen[link] = true

			items = append(items, NewsItem{
				Title:     title,
				Publisher: "Yahoo Finance",
				Link:      link,
			})
		})

		if len(items) > 0 {
			break
		}
	}

	return items, nil
}

func absoluteYahooURL(href string) string {
	if strings.HasPrefix(href, "http://") || strings.HasPrefix(href, "https://") {
		return href
	}
	if strings.HasPrefix(href, "/") {
		return "https://finance.yahoo.com" + href
	}
	return href
}
