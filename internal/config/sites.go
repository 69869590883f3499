package config

func defaultSites() []SiteConfig {
	return []SiteConfig{
		{
			Name:       "Guardian Environment",
			Scanner:    "html",
			BaseURL:    "https://www.theguardian.com",
			Category:   "environmental",
			Categories: []CategoryConfig{{Name: "environment", URL: "https://www.theguardian.com/environment"}},
			Selectors: SelectorConfig{
				Articles: ".fc-item, .u-faux-block-link",
				Title:    ".fc-item__title, .u-faux-block-link__overlay",
				Link:     ".fc-item__link, .u-faux-block-link__overlay",
				Summary:  ".fc-item__standfirst, .fc-item__kicker",
				Date:     ".fc-item__timestamp, time",
				Author:   ".fc-item__byline",
			},
		},
		{
			Name:       "UNEP – News & Stories",
			Scanner:    "html",
			BaseURL:    "https://www.unep.org",
			Category:   "environmental",
			Categories: []CategoryConfig{{Name: "news-and-stories", URL: "https://www.unep.org/news-and-stories"}},
			Selectors: SelectorConfig{
				Articles: "article, .views-row",
				Title:    "h3 a, .story__title a",
				Link:     "h3 a, .story__title a",
				Summary:  "p, .story__summary",
				Date:     "time, .story__date",
				Author:   ".story__author, .byline",
			},
		},
		{
			Name:       "Reuters Environment",
			Scanner:    "html",
			BaseURL:    "https://www.reuters.com",
			Category:   "environmental",
			Categories: []CategoryConfig{{Name: "environment", URL: "https://www.reuters.com/business/environment/"}},
			Selectors: SelectorConfig{
				Articles: `[data-testid="MediaStoryCard"], .story-card`,
				Title:    `[data-testid="Heading"], h3`,
				Link:     "a",
				Summary:  `[data-testid="Body"], .story-summary`,
				Date:     "time",
				Author:   `[data-testid="AuthorName"]`,
			},
		},
		{
			Name:       "Financial Times – Sustainable Finance",
			Scanner:    "html",
			BaseURL:    "https://www.ft.com",
			Category:   "economic",
			Categories: []CategoryConfig{{Name: "sustainable-finance", URL: "https://www.ft.com/sustainable-finance"}},
			Selectors: SelectorConfig{
				Articles: ".o-teaser, article",
				Title:    ".js-teaser-heading-link, h3 a",
				Link:     ".js-teaser-heading-link, h3 a",
				Summary:  ".o-teaser__standfirst, .o-teaser__summary",
				Date:     `time[data-mod="time"], time`,
				Author:   ".o-teaser_byline",
			},
		},
		{
			Name:       "World Economic Forum – Economics",
			Scanner:    "html",
			BaseURL:    "https://www.weforum.org",
			Category:   "economic",
			Categories: []CategoryConfig{{Name: "economics", URL: "https://www.weforum.org/agenda/archive/economics"}},
			Selectors: SelectorConfig{
				Articles: "article, .teaser",
				Title:    "a.teaser-title, h3 a",
				Link:     "a.teaser-title, h3 a",
				Summary:  "p.teaser-description, .article__subtitle",
				Date:     "time, .timestamp",
				Author:   ".byline, .article__author",
			},
		},
		{
			Name:       "UN News – SDG / Social & Economic",
			Scanner:    "html",
			BaseURL:    "https://news.un.org",
			Category:   "social",
			Categories: []CategoryConfig{{Name: "sdgs", URL: "https://news.un.org/en/news/topic/sustainable-development-goals"}},
			Selectors: SelectorConfig{
				Articles: ".views-row",
				Title:    "h3 a",
				Link:     "h3 a",
				Summary:  ".views-field-body, .field-content p",
				Date:     "time, .date-display-single",
				Author:   ".field-author-name, .views-field-field_byline",
			},
		},
		{
			Name:       "UNDP News Centre",
			Scanner:    "html",
			BaseURL:    "https://www.undp.org",
			Category:   "social",
			Categories: []CategoryConfig{{Name: "news-centre", URL: "https://www.undp.org/news-centre"}},
			Selectors: SelectorConfig{
				Articles: "article, .teaser",
				Title:    "h3 a, .teaser__title a",
				Link:     "h3 a, .teaser__title a",
				Summary:  ".teaser__description, p",
				Date:     "time, .date",
				Author:   ".teaser__author, .byline",
			},
		},
		{
			Name:       "Guardian Global Development",
			Scanner:    "rss",
			BaseURL:    "https://www.theguardian.com",
			Category:   "social",
			Categories: []CategoryConfig{{Name: "global-development", URL: "https://www.theguardian.com/global-development/rss"}},
		},
	}
}
