// Package knowledge owns the knowledge base: FAQ entries plus company,
// delivery and price metadata. The knowledge base is loaded once at startup
// and shared read-only across requests.
package knowledge

// FaqEntry is a canned question/answer pair with optional alternate
// phrasings and topic tags. Entries are immutable after load.
type FaqEntry struct {
	ID          string   `yaml:"id"`
	Question    string   `yaml:"question"`
	Alternates  []string `yaml:"alternates"`
	Answer      string   `yaml:"answer"`
	Tags        []string `yaml:"tags"`
	SourceLabel string   `yaml:"source"`
}

// HasTag reports whether the entry carries the given tag.
func (e *FaqEntry) HasTag(tag string) bool {
	for _, t := range e.Tags {
		if t == tag {
			return true
		}
	}
	return false
}

// CompanyMeta holds practical company information. Every field may be
// absent; responders must not answer with missing data.
type CompanyMeta struct {
	Address     map[string]string `yaml:"address"` // city -> street address
	Hours       HoursMeta         `yaml:"hours"`
	Phone       string            `yaml:"phone"`
	Email       string            `yaml:"email"`
	SourceLabel string            `yaml:"source"`
}

// HoursMeta holds opening hours per day group.
type HoursMeta struct {
	Weekday  string `yaml:"weekday"`
	Saturday string `yaml:"saturday"`
	Sunday   string `yaml:"sunday"`
}

// DeliveryMeta holds delivery time information.
type DeliveryMeta struct {
	StandardDays  string `yaml:"standard_days"`
	RushAvailable bool   `yaml:"rush_available"`
	RushSurcharge string `yaml:"rush_surcharge"`
	SourceLabel   string `yaml:"source"`
}

// PriceMeta holds per-unit digitization prices. String-typed so the
// knowledge base can carry formatted amounts ("kr 249,-").
type PriceMeta struct {
	PricePerHourVideo  string `yaml:"per_hour_video"`
	PricePerMinuteFilm string `yaml:"per_minute_film"`
	PricePerPhoto      string `yaml:"per_photo"`
	USBPrice           string `yaml:"usb"`
	SourceLabel        string `yaml:"source"`
}

// Empty reports whether no price field is populated.
func (p PriceMeta) Empty() bool {
	return p.PricePerHourVideo == "" && p.PricePerMinuteFilm == "" &&
		p.PricePerPhoto == "" && p.USBPrice == ""
}

// Meta groups the non-FAQ metadata sections.
type Meta struct {
	Company  CompanyMeta  `yaml:"company"`
	Delivery DeliveryMeta `yaml:"delivery"`
	Prices   PriceMeta    `yaml:"prices"`
}

// KnowledgeBase is the process-wide immutable knowledge collection.
type KnowledgeBase struct {
	FAQ  []FaqEntry `yaml:"faq"`
	Meta Meta       `yaml:"meta"`
}
