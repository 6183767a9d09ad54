package extractor

import (
	"strconv"
	"strings"

	"hsakai921/clinicharvester/helpers"
	"hsakai921/clinicharvester/pkg/errors"

	"github.com/PuerkitoBio/goquery"
)

// CSS selectors for the listing page template
const (
	cardSelector     = ".card.clinic-list__card"
	rankSelector     = ".number_ranked"
	titleSelector    = "a.card__title"
	ratingSelector   = ".rating-number"
	reviewsSelector  = "a.report-count"
	snippetSelector  = ".card__report-snippet-content"
	snippetAuthorSel = ".card__report-snippet-name"
	imageSelector    = ".card__image-list img.card__image[src]"
	featureSelector  = ".card__feature-list .card__feature"
	accessSelector   = ".card__access-text"
	menuSelector     = "ul li a.small-list__item"
	menuTitleSel     = ".small-list__title"
	menuPriceSel     = ".small-list__price"
	menuCategorySel  = ".treatment-category"
	pickupMarkerSel  = ".pickup-label_active"
	hoursTableSel    = "table.table"
	hoursRowSelector = "tbody > tr"
)

// weekdays is the fixed day vocabulary used by the hours table markup
var weekdays = []string{"月", "火", "水", "木", "金", "土", "日"}

// Parse extracts clinic cards from a fetched listing page. When no card
// matches the expected template a single degraded record is synthesized from
// the page heading, so every fetched page contributes at least one clinic.
func Parse(html, pageURL string) ([]Card, error) {
	doc, err := goquery.NewDocumentFromReader(strings.NewReader(html))
	if err != nil {
		return nil, errors.NewParsing(pageURL, "failed to parse HTML", err)
	}

	var cards []Card
	doc.Find(cardSelector).Each(func(i int, s *goquery.Selection) {
		cards = append(cards, parseCard(s, pageURL))
	})

	if len(cards) == 0 {
		cards = append(cards, degradedCard(doc, pageURL))
	}

	return cards, nil
}

// parseCard extracts one clinic card
func parseCard(s *goquery.Selection, pageURL string) Card {
	card := Card{SourceURL: pageURL}

	card.Rank = helpers.ToInt(s.Find(rankSelector).Text())

	titleSel := s.Find(titleSelector)
	card.Name = helpers.CleanText(titleSel.Text())
	if href, exists := titleSel.Attr("href"); exists {
		card.ClinicURL = helpers.ResolveURL(pageURL, href)
	}

	if ratingSel := s.Find(ratingSelector); ratingSel.Length() > 0 {
		if rating, err := strconv.ParseFloat(strings.TrimSpace(ratingSel.Text()), 64); err == nil {
			card.Rating = &rating
		}
	}

	card.Reviews = helpers.ToInt(s.Find(reviewsSelector).Text())

	card.Snippet = helpers.CleanText(s.Find(snippetSelector).Text())
	card.SnippetAuthor = snippetAuthor(s.Find(snippetAuthorSel).Text())

	s.Find(imageSelector).Each(func(i int, img *goquery.Selection) {
		if src, exists := img.Attr("src"); exists {
			card.Images = append(card.Images, src)
		}
	})

	s.Find(featureSelector).Each(func(i int, li *goquery.Selection) {
		card.Features = append(card.Features, helpers.CleanText(li.Text()))
	})

	card.Access = helpers.CleanText(s.Find(accessSelector).Text())

	s.Find(menuSelector).Each(func(i int, li *goquery.Selection) {
		card.Menus = append(card.Menus, parseMenu(li, pageURL))
	})

	card.Hours = parseHours(s.Find(hoursTableSel).First())

	return card
}

// snippetAuthor cleans a review author cell, stripping the leading dash the
// markup prefixes names with
func snippetAuthor(raw string) string {
	return strings.TrimSpace(strings.TrimLeft(helpers.CleanText(raw), "-"))
}

// parseMenu extracts one menu anchor within a card
func parseMenu(li *goquery.Selection, pageURL string) Menu {
	priceRaw := helpers.CleanText(li.Find(menuPriceSel).Text())

	menu := Menu{
		Title:    helpers.CleanText(li.Find(menuTitleSel).Text()),
		PriceRaw: priceRaw,
		PriceJPY: helpers.ParsePriceJPY(priceRaw),
		Pickup:   li.Find(pickupMarkerSel).Length() > 0,
		Category: helpers.CleanText(li.Find(menuCategorySel).Text()),
	}

	if href, exists := li.Attr("href"); exists {
		menu.URL = helpers.ResolveURL(pageURL, href)
	}

	return menu
}

// parseHours extracts weekday rows from a card's business hours table.
// Rows whose first cell carries no known weekday symbol are skipped.
func parseHours(table *goquery.Selection) []HoursEntry {
	if table.Length() == 0 {
		return nil
	}

	var hours []HoursEntry
	table.Find(hoursRowSelector).Each(func(i int, tr *goquery.Selection) {
		tds := tr.Find("td")
		if tds.Length() < 2 {
			return
		}

		day := matchWeekday(helpers.CleanText(tds.Eq(0).Text()))
		if day == "" {
			return
		}

		raw := helpers.CleanText(tds.Eq(1).Text())
		open, close := helpers.SplitOpenClose(raw)
		hours = append(hours, HoursEntry{Day: day, Open: open, Close: close, Raw: raw})
	})

	return hours
}

// matchWeekday returns the weekday symbol contained in the cell text
func matchWeekday(cell string) string {
	for _, day := range weekdays {
		if strings.Contains(cell, day) {
			return day
		}
	}
	return ""
}

// degradedCard synthesizes a minimal record when the page deviates from the
// expected template. The top-level heading wins over the document title.
func degradedCard(doc *goquery.Document, pageURL string) Card {
	name := helpers.CleanText(doc.Find("h1").First().Text())
	if name == "" {
		name = helpers.CleanText(doc.Find("title").First().Text())
	}

	return Card{
		Name:      name,
		ClinicURL: pageURL,
		SourceURL: pageURL,
	}
}
