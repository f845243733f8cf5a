package game

// Outcome is the result of a settled hand.
type Outcome int

const (
	Lose Outcome = iota
	Push
	Win
	BlackjackWin
)

// String returns the string representation of an outcome
func (o Outcome) String() string {
	switch o {
	case Lose:
		return "lose"
	case Push:
		return "push"
	case Win:
		return "win"
	case BlackjackWin:
		return "blackjack"
	default:
		return "unknown"
	}
}

// Payout multipliers applied to the bet. The amount returned includes the stake.
const (
	BlackjackPayout = 2.5
	WinPayout       = 2.0
	PushPayout      = 1.0
	InsurancePayout = 3.0 // 2:1 on the insurance stake
)

// Settle compares a finalized player hand against a finalized dealer hand that
// is not a blackjack. It returns the outcome and the amount paid back to the
// player. Equal totals push even when the player holds a blackjack.
func Settle(h, dealer *Hand) (Outcome, float64) {
	switch {
	case h.IsBust():
		return Lose, 0
	case dealer.IsBust(), h.Total > dealer.Total:
		if h.IsBlackjack() {
			return BlackjackWin, h.Bet * BlackjackPayout
		}
		return Win, h.Bet * WinPayout
	case h.Total == dealer.Total:
		return Push, h.Bet * PushPayout
	default:
		return Lose, 0
	}
}

// SettleDealerBlackjack resolves a player's first hand when the dealer turns
// over a blackjack. A player blackjack pushes, everything else loses, and
// insurance pays 2:1 on its stake either way. The second return value is the
// portion of the payout that came from insurance.
func SettleDealerBlackjack(p *Player) (Outcome, float64, float64) {
	h := p.Hands[0]
	outcome, payout := Lose, 0.0
	if h.IsBlackjack() {
		outcome, payout = Push, h.Bet*PushPayout
	}
	insurance := 0.0
	if p.HasInsurance {
		insurance = p.insuranceStake * InsurancePayout
	}
	return outcome, payout + insurance, insurance
}
