package schedule

// EventSnapshot is the fully resolved view of one scheduled event as the
// upstream provider describes it. It is the boundary type between the
// provider client and the domain: everything past this point is pure.
type EventSnapshot struct {
	ID          string
	Name        string
	ShortName   string
	Date        string
	StatusState string
	Competition CompetitionSnapshot
}

type CompetitionSnapshot struct {
	ID          string
	Competitors []CompetitorSnapshot
	Odds        OddsSnapshot
}

type CompetitorSnapshot struct {
	HomeAway      string
	TeamID        string
	TeamName      string
	Abbreviation  string
	LogoURL       string
	RecordSummary string
	ScoreDisplay  string
	Winner        bool
}

// OddsSnapshot carries the two odds shapes the provider emits: the
// structured per-side moneylines and the flat per-team fallback lines.
type OddsSnapshot struct {
	HomeMoneyline *int
	AwayMoneyline *int
	Flat          []FlatOddsLine
}

type FlatOddsLine struct {
	TeamID    string
	Moneyline int
}

// Per-side game states.
const (
	StatusUpcoming   = "upcoming"
	StatusInProgress = "in-progress"
	StatusWinner     = "winner"
	StatusLoser      = "loser"
	StatusTie        = "tie"
)

// Game is the flattened, presentation-ready record for one matchup.
type Game struct {
	EventID   string
	Name      string
	ShortName string
	Date      string
	Home      GameSide
	Away      GameSide

	// Formatted odds strings ("+120", "-250", or the "N/A" sentinel).
	HomeOdds string
	AwayOdds string

	// Raw moneylines kept for ranking; nil when the provider had none.
	HomeMoneyline *int
	AwayMoneyline *int
}

type GameSide struct {
	TeamID        string
	TeamName      string
	Abbreviation  string
	LogoURL       string
	RecordSummary string
	Score         string
	Status        string
}
