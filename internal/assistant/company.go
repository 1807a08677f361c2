package assistant

import (
	"fmt"
	"sort"
	"strings"

	"golang.org/x/text/cases"
	"golang.org/x/text/language"

	"github.com/mediekroken/digisvar/internal/knowledge"
)

// Company intent names, in detection priority order.
const (
	IntentCompanyAddress  = "company_address"
	IntentCompanyHours    = "company_hours"
	IntentCompanyPhone    = "company_phone"
	IntentCompanyEmail    = "company_email"
	IntentCompanyDelivery = "company_delivery"
)

// CompanyMatcher classifies practical-info intents by keyword containment
// and renders templated answers from the company metadata.
type CompanyMatcher struct {
	intents []companyIntent
	title   cases.Caser
}

type companyIntent struct {
	name     string
	keywords []string // normalized
}

// NewCompanyMatcher creates a matcher with the fixed intent keyword lists.
// Keywords are normalized once here so detection and input share the same
// text form.
func NewCompanyMatcher() *CompanyMatcher {
	intents := []companyIntent{
		{IntentCompanyAddress, []string{"adresse", "hvor er dere", "hvor ligger", "besøksadresse", "hvor finner jeg dere"}},
		{IntentCompanyHours, []string{"åpningstid", "åpent", "når har dere åpent", "stengetid", "stenger"}},
		{IntentCompanyPhone, []string{"telefon", "tlf", "ringe"}},
		{IntentCompanyEmail, []string{"epost", "e-post", "mail"}},
		{IntentCompanyDelivery, []string{"leveringstid", "hvor lang tid", "hvor raskt", "når er det ferdig", "når blir det ferdig"}},
	}
	for i := range intents {
		for j, kw := range intents[i].keywords {
			intents[i].keywords[j] = Normalize(kw)
		}
	}
	return &CompanyMatcher{
		intents: intents,
		title:   cases.Title(language.Norwegian),
	}
}

// Detect returns the first intent whose keyword list matches the text by
// substring containment ("adresse" matches "adressen"), or "" when none
// match. Intents are evaluated in fixed priority order: address, hours,
// phone, email, delivery.
func (m *CompanyMatcher) Detect(text string) string {
	normalized := Normalize(text)
	if normalized == "" {
		return ""
	}

	for _, intent := range m.intents {
		for _, kw := range intent.keywords {
			if strings.Contains(normalized, kw) {
				return intent.name
			}
		}
	}
	return ""
}

// Respond builds the answer for a detected intent. Returns nil when the
// required metadata field is absent, letting the router fall through to the
// next handler. Never fails.
func (m *CompanyMatcher) Respond(intent string, company knowledge.CompanyMeta, delivery knowledge.DeliveryMeta) *Response {
	var text string

	switch intent {
	case IntentCompanyAddress:
		text = m.renderAddress(company)
	case IntentCompanyHours:
		text = renderHours(company.Hours)
	case IntentCompanyPhone:
		if company.Phone != "" {
			text = fmt.Sprintf("Du når oss på telefon %s.", company.Phone)
		}
	case IntentCompanyEmail:
		if company.Email != "" {
			text = fmt.Sprintf("Send oss gjerne en e-post på %s.", company.Email)
		}
	case IntentCompanyDelivery:
		text = renderDelivery(delivery)
	}

	if text == "" {
		return nil
	}

	return &Response{
		Kind: KindAnswer,
		Text: text,
		Meta: map[string]any{
			"route":  RouteCompany,
			"intent": intent,
			"source": company.SourceLabel,
		},
	}
}

// renderAddress joins one line per known location, cities sorted for
// deterministic output.
func (m *CompanyMatcher) renderAddress(company knowledge.CompanyMeta) string {
	if len(company.Address) == 0 {
		return ""
	}

	cities := make([]string, 0, len(company.Address))
	for city := range company.Address {
		cities = append(cities, city)
	}
	sort.Strings(cities)

	lines := make([]string, 0, len(cities))
	for _, city := range cities {
		lines = append(lines, fmt.Sprintf("%s (%s)", company.Address[city], m.title.String(city)))
	}

	if len(lines) == 1 {
		return fmt.Sprintf("Adressen vår er %s.", lines[0])
	}
	return "Du finner oss her:\n- " + strings.Join(lines, "\n- ")
}

// renderHours joins the opening-hours lines that are present; absent day
// groups are omitted, not rendered as empty.
func renderHours(hours knowledge.HoursMeta) string {
	var lines []string
	if hours.Weekday != "" {
		lines = append(lines, "Mandag-fredag: "+hours.Weekday)
	}
	if hours.Saturday != "" {
		lines = append(lines, "Lørdag: "+hours.Saturday)
	}
	if hours.Sunday != "" {
		lines = append(lines, "Søndag: "+hours.Sunday)
	}

	if len(lines) == 0 {
		return ""
	}
	return "Åpningstidene våre:\n" + strings.Join(lines, "\n")
}

// renderDelivery combines standard duration with an optional rush clause.
func renderDelivery(delivery knowledge.DeliveryMeta) string {
	if delivery.StandardDays == "" {
		return ""
	}

	text := fmt.Sprintf("Normal leveringstid er %s.", delivery.StandardDays)
	if delivery.RushAvailable {
		if delivery.RushSurcharge != "" {
			text += fmt.Sprintf(" Trenger du det raskere, tilbyr vi ekspresslevering mot et tillegg på %s.", delivery.RushSurcharge)
		} else {
			text += " Trenger du det raskere, tilbyr vi ekspresslevering."
		}
	}
	return text
}
