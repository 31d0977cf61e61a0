package restriction

// Keywords the checker looks for on cards and players.
const (
	KeywordFlash = "Flash"

	KeywordLoyaltyInstantSpeed = "CARDNAME's loyalty abilities can be activated at instant speed."
	KeywordLoyaltyTwice        = "CARDNAME's loyalty abilities can be activated twice each turn rather than only once"
	KeywordLoyaltyOnceMore     = "May activate CARDNAME's loyalty abilities once"

	KeywordBoastTwice = "Creatures you control can boast twice during each of your turns rather than once."
)
