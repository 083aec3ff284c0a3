package espn

import (
	"strconv"
	"strings"

	sonic "github.com/bytedance/sonic"
)

// The upstream API is reference-based: many fields arrive either as an
// inline value or as a bare {"$ref": url} pointer into a deeper resource
// tier. Types in this file carry both shapes; resolution replaces the
// pointer with the fetched value exactly once and a failed fetch leaves the
// prior state untouched.

type scheduleEnvelope struct {
	Events []*Event `json:"events"`
	Items  []*Event `json:"items"`
}

// events returns whichever list the endpoint populated: the scoreboard
// endpoint inlines "events", the season/week endpoint lists "items".
func (e scheduleEnvelope) events() []*Event {
	if len(e.Events) > 0 {
		return e.Events
	}
	return e.Items
}

type Event struct {
	Ref          string         `json:"$ref"`
	ID           string         `json:"id"`
	Name         string         `json:"name"`
	ShortName    string         `json:"shortName"`
	Date         string         `json:"date"`
	Status       *Status        `json:"status"`
	Competitions []*Competition `json:"competitions"`
}

// resolved reports whether the event carries inline competition data or is
// still a deferred reference.
func (ev *Event) resolved() bool {
	return ev != nil && len(ev.Competitions) > 0
}

func (ev *Event) statusState() string {
	if ev == nil || ev.Status == nil {
		return ""
	}
	return strings.TrimSpace(ev.Status.Type.State)
}

type Status struct {
	Ref  string     `json:"$ref"`
	Type StatusType `json:"type"`
}

type StatusType struct {
	ID          string `json:"id"`
	Name        string `json:"name"`
	State       string `json:"state"`
	Completed   bool   `json:"completed"`
	Description string `json:"description"`
}

type Competition struct {
	ID          string        `json:"id"`
	Date        string        `json:"date"`
	Competitors []*Competitor `json:"competitors"`
	Odds        *OddsSource   `json:"odds"`
}

// valid requires the two competitors the sport guarantees; anything else is
// a structurally broken entry and is dropped by the patcher.
func (c *Competition) valid() bool {
	return c != nil && len(c.Competitors) >= 2
}

type Competitor struct {
	ID       string    `json:"id"`
	HomeAway string    `json:"homeAway"`
	Winner   bool      `json:"winner"`
	Team     *Team     `json:"team"`
	Score    *Score    `json:"score"`
	Records  []*Record `json:"records"`
}

type Team struct {
	Ref          string    `json:"$ref"`
	ID           string    `json:"id"`
	DisplayName  string    `json:"displayName"`
	Name         string    `json:"name"`
	Abbreviation string    `json:"abbreviation"`
	Logo         string    `json:"logo"`
	Logos        []Logo    `json:"logos"`
	Records      []*Record `json:"records"`
}

type Logo struct {
	Href string `json:"href"`
}

// needsResolution reports whether the team is still a bare pointer: a
// reference with no identifier resolved yet.
func (t *Team) needsResolution() bool {
	return t != nil && strings.TrimSpace(t.ID) == "" && strings.TrimSpace(t.Ref) != ""
}

func (t *Team) logoURL() string {
	if t == nil {
		return ""
	}
	if logo := strings.TrimSpace(t.Logo); logo != "" {
		return logo
	}
	for _, logo := range t.Logos {
		if href := strings.TrimSpace(logo.Href); href != "" {
			return href
		}
	}
	return ""
}

type Record struct {
	Name         string `json:"name"`
	Type         string `json:"type"`
	Summary      string `json:"summary"`
	DisplayValue string `json:"displayValue"`
}

func (r *Record) isTotal() bool {
	if r == nil {
		return false
	}
	return strings.EqualFold(strings.TrimSpace(r.Type), "total") ||
		strings.EqualFold(strings.TrimSpace(r.Name), "overall")
}

func (r *Record) summary() string {
	if r == nil {
		return ""
	}
	if s := strings.TrimSpace(r.Summary); s != "" {
		return s
	}
	return strings.TrimSpace(r.DisplayValue)
}

type recordEnvelope struct {
	Items []*Record `json:"items"`
}

// Score is the reference/value duality in its rawest form: the upstream
// emits a JSON number, a numeric string, a {value, displayValue} object, or
// a bare {"$ref": url} pointer depending on the tier it came from.
type Score struct {
	Ref     string
	Display string
	Value   float64
	Known   bool
}

func (s *Score) UnmarshalJSON(data []byte) error {
	trimmed := strings.TrimSpace(string(data))
	if trimmed == "" || trimmed == "null" {
		return nil
	}

	switch trimmed[0] {
	case '"':
		var text string
		if err := sonic.Unmarshal(data, &text); err != nil {
			return err
		}
		s.Display = strings.TrimSpace(text)
		if v, err := strconv.ParseFloat(s.Display, 64); err == nil {
			s.Value = v
			s.Known = true
		}
		return nil
	case '{':
		var obj struct {
			Ref          string   `json:"$ref"`
			Value        *float64 `json:"value"`
			DisplayValue string   `json:"displayValue"`
		}
		if err := sonic.Unmarshal(data, &obj); err != nil {
			return err
		}
		if obj.Value != nil {
			s.Value = *obj.Value
			s.Known = true
		}
		s.Display = strings.TrimSpace(obj.DisplayValue)
		s.Ref = obj.Ref
		return nil
	default:
		var v float64
		if err := sonic.Unmarshal(data, &v); err != nil {
			return err
		}
		s.Value = v
		s.Known = true
		return nil
	}
}

// isRef reports whether the score still needs a fetch: a pointer with no
// inline value attached.
func (s *Score) isRef() bool {
	return s != nil && s.Ref != "" && !s.Known && s.Display == ""
}

func (s *Score) display() string {
	if s == nil {
		return ""
	}
	if s.Known {
		return strconv.FormatFloat(s.Value, 'f', -1, 64)
	}
	return s.Display
}

// OddsSource is either an inline list of per-book odds entries (scoreboard
// payloads) or a deferred reference to the odds tier (core API payloads).
type OddsSource struct {
	Ref     string
	Entries []*OddsEntry
}

func (o *OddsSource) UnmarshalJSON(data []byte) error {
	trimmed := strings.TrimSpace(string(data))
	if trimmed == "" || trimmed == "null" {
		return nil
	}

	if trimmed[0] == '[' {
		return sonic.Unmarshal(data, &o.Entries)
	}

	var obj struct {
		Ref   string       `json:"$ref"`
		Items []*OddsEntry `json:"items"`
	}
	if err := sonic.Unmarshal(data, &obj); err != nil {
		return err
	}
	o.Ref = obj.Ref
	o.Entries = obj.Items
	return nil
}

type oddsEnvelope struct {
	Items []*OddsEntry `json:"items"`
}

// OddsEntry is one per-book container. The true detail source is items[0]
// when present, otherwise the entry itself.
type OddsEntry struct {
	Ref          string           `json:"$ref"`
	Details      string           `json:"details"`
	Provider     *OddsProvider    `json:"provider"`
	Items        []*OddsEntry     `json:"items"`
	HomeTeamOdds TeamOdds         `json:"homeTeamOdds"`
	AwayTeamOdds TeamOdds         `json:"awayTeamOdds"`
	Moneyline    []*FlatMoneyline `json:"moneyline"`
}

func (e *OddsEntry) detailSource() *OddsEntry {
	if e == nil {
		return nil
	}
	if len(e.Items) > 0 && e.Items[0] != nil {
		return e.Items[0]
	}
	return e
}

type OddsProvider struct {
	ID   string `json:"id"`
	Name string `json:"name"`
}

// TeamOdds keeps the raw per-side odds object. The provider exposes the
// moneyline under two field-name casings depending on the book; the ordered
// accessor list below is the single place that precedence lives.
type TeamOdds struct {
	fields map[string]any
}

// moneylineKeys is the ordered list of accessor attempts; the first key
// present wins, even when its value cannot be parsed.
var moneylineKeys = []string{"moneyLine", "moneyline"}

func (o *TeamOdds) UnmarshalJSON(data []byte) error {
	return sonic.Unmarshal(data, &o.fields)
}

func (o *TeamOdds) Moneyline() (int, bool) {
	for _, key := range moneylineKeys {
		raw, ok := o.fields[key]
		if !ok {
			continue
		}
		return asInt(raw)
	}
	return 0, false
}

// FlatMoneyline is the secondary, flatter odds representation: one line per
// target team, consulted only when the structured source yields nothing.
type FlatMoneyline struct {
	Team   *Team    `json:"team"`
	TeamID string   `json:"teamId"`
	Line   *float64 `json:"moneyline"`
}

func (m *FlatMoneyline) targetID() string {
	if m == nil {
		return ""
	}
	if id := strings.TrimSpace(m.TeamID); id != "" {
		return id
	}
	if m.Team != nil {
		if id := strings.TrimSpace(m.Team.ID); id != "" {
			return id
		}
		return idFromRef(m.Team.Ref)
	}
	return ""
}

func asInt(raw any) (int, bool) {
	switch v := raw.(type) {
	case float64:
		return int(v), true
	case int:
		return v, true
	case int64:
		return int(v), true
	case string:
		n, err := strconv.Atoi(strings.TrimSpace(v))
		if err != nil {
			return 0, false
		}
		return n, true
	default:
		return 0, false
	}
}

// mergeEvent folds a resolved event body into its reference holder. The
// merge is shallow and never clears a field the holder already knows.
func mergeEvent(dst, src *Event) {
	if dst == nil || src == nil {
		return
	}
	dst.ID = firstNonEmpty(dst.ID, src.ID)
	dst.Name = firstNonEmpty(dst.Name, src.Name)
	dst.ShortName = firstNonEmpty(dst.ShortName, src.ShortName)
	dst.Date = firstNonEmpty(dst.Date, src.Date)
	if src.Status != nil {
		dst.Status = src.Status
	}
	if len(src.Competitions) > 0 {
		dst.Competitions = src.Competitions
	}
}

// mergeTeam folds a resolved team body into the competitor's team pointer,
// keeping identifiers and names that were already known.
func mergeTeam(dst, src *Team) {
	if dst == nil || src == nil {
		return
	}
	dst.ID = firstNonEmpty(dst.ID, src.ID)
	dst.DisplayName = firstNonEmpty(dst.DisplayName, src.DisplayName)
	dst.Name = firstNonEmpty(dst.Name, src.Name)
	dst.Abbreviation = firstNonEmpty(dst.Abbreviation, src.Abbreviation)
	dst.Logo = firstNonEmpty(dst.Logo, src.Logo)
	if len(dst.Logos) == 0 {
		dst.Logos = src.Logos
	}
	if len(dst.Records) == 0 {
		dst.Records = src.Records
	}
}

// patchTotalRecord rewrites the summary of the team's single "total"
// record, creating it when absent. It never appends a duplicate.
func patchTotalRecord(team *Team, summary string) {
	if team == nil || strings.TrimSpace(summary) == "" {
		return
	}
	for _, record := range team.Records {
		if record.isTotal() {
			record.Summary = summary
			return
		}
	}
	team.Records = append(team.Records, &Record{Type: "total", Name: "overall", Summary: summary})
}

func firstNonEmpty(values ...string) string {
	for _, value := range values {
		if strings.TrimSpace(value) != "" {
			return value
		}
	}
	return ""
}
