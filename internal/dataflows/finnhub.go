package dataflows

import (
	"encoding/json"
	"fmt"
	"time"
)

// finnhubNews is the /company-news response shape.
type finnhubNews struct {
	Category string `json:"category"`
	DateTime int64  `json:"datetime"`
	Headline string `json:"headline"`
	ID       int64  `json:"id"`
	Related  string `json:"related"`
	Source   string `json:"source"`
	Summary  string `json:"summary"`
	URL      string `json:"url"`
}

// finnhubGradeChange is the /stock/upgrade-downgrade response shape.
type finnhubGradeChange struct {
	Symbol    string `json:"symbol"`
	Company   string `json:"company"`
	FromGrade string `json:"fromGrade"`
	ToGrade   string `json:"toGrade"`
	Action    string `json:"action"`
	GradeTime int64  `json:"gradeTime"`
}

// fetchFinnhubNews is the primary news source. Requires an API key; without
// one it reports an error so the chain moves on.
func (c *Client) fetchFinnhubNews(symbol string) ([]NewsItem, error) {
	if c.cfg.FinnhubAPIKey == "" {
		return nil, fmt.Errorf("finnhub API key not configured")
	}

	to := time.Now()
	from := to.AddDate(0, 0, -14)

	resp, err := c.finnhub.R().
		SetQueryParams(map[string]string{
			"symbol": symbol,
			"from":   from.Format("2006-01-02"),
			"to":     to.Format("2006-01-02"),
			"token":  c.cfg.FinnhubAPIKey,
		}).
		Get(c.finnhubBaseURL + "/company-news")
	if err != nil {
		return nil, fmt.Errorf("fetch news for %s: %w", symbol, err)
	}
	if resp.StatusCode() != 200 {
		return nil, fmt.Errorf("API error %d: %s", resp.StatusCode(), resp.String())
	}

	var news []finnhubNews
	if err := json.Unmarshal(resp.Body(), &news); err != nil {
		return nil, fmt.Errorf("parse news response: %w", err)
	}

	items := make([]NewsItem, 0, len(news))
	for _, n := range news {
		if n.Headline == "" {
			continue
		}
		item := NewsItem{
			Title:     n.Headline,
			Publisher: n.Source,
			Link:      n.URL,
		}
		if n.DateTime > 0 {
			item.Published = time.Unix(n.DateTime, 0)
		}
		items = append(items, item)
	}
	return items, nil
}

// GetRecommendations fetches recent analyst grade changes, oldest first.
// Without an API key it returns an empty slice and no error; the analyst
// rules simply do not fire.
func (c *Client) GetRecommendations(symbol string) ([]Recommendation, error) {
	if c.cfg.FinnhubAPIKey == "" {
		return nil, nil
	}

	to := time.Now()
	from := to.AddDate(0, -6, 0)

	resp, err := c.finnhub.R().
		SetQueryParams(map[string]string{
			"symbol": symbol,
			"from":   from.Format("2006-01-02"),
			"to":     to.Format("2006-01-02"),
			"token":  c.cfg.FinnhubAPIKey,
		}).
		Get(c.finnhubBaseURL + "/stock/upgrade-downgrade")
	if err != nil {
		return nil, fmt.Errorf("fetch grade changes for %s: %w", symbol, err)
	}
	if resp.StatusCode() != 200 {
		return nil, fmt.Errorf("API error %d: %s", resp.StatusCode(), resp.String())
	}

	var changes []finnhubGradeChange
	if err := json.Unmarshal(resp.Body(), &changes); err != nil {
		return nil, fmt.Errorf("parse grade changes: %w", err)
	}

	recs := make([]Recommendation, 0, len(changes))
	// The API returns newest first; the signal rules want chronological
	// order so "last N" means most recent.
	for i := len(changes) - 1; i >= 0; i-- {
		ch := changes[i]
		recs = append(recs, Recommendation{
			Firm:      ch.Company,
			FromGrade: ch.FromGrade,
			ToGrade:   ch.ToGrade,
			Action:    ch.Action,
			Date:      time.Unix(ch.GradeTime, 0),
		})
	}
	return recs, nil
}
