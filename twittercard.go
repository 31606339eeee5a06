package yoastmeta

type TwitterCard string

const (
	TwitterCardSummary           TwitterCard = "summary"
	TwitterCardSummaryLargeImage TwitterCard = "summary_large_image"
	TwitterCardPlayer            TwitterCard = "player"
	TwitterCardApp               TwitterCard = "app"
)

// ParseTwitterCard converts a raw card name into a TwitterCard. Unknown
// names, including the empty string, resolve to TwitterCardSummary.
func ParseTwitterCard(raw string) TwitterCard {
	card := TwitterCard(raw)
	if !card.Valid() {
		return TwitterCardSummary
	}
	return card
}

func (c TwitterCard) Valid() bool {
	switch c {
	case TwitterCardSummary, TwitterCardSummaryLargeImage, TwitterCardPlayer, TwitterCardApp:
		return true
	}
	return false
}

func (c TwitterCard) String() string {
	return string(c)
}
