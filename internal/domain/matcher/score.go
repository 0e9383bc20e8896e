package matcher

import (
	"math"

	"github.com/veloxpay/reconciler/internal/domain/record"
)

// Heuristic score weights. These are fixed by design; see Config for the
// knobs that are configurable.
const (
	amountBaseScore = 10.0 // contributed by a compatible amount
	dateBonusMax    = 10.0 // same-day bonus, decaying by one per day
	nameScoreWeight = 5.0  // scales the -1/0/1/2 name level
)

// amountScore validates that both sides carry a compatible amount and
// returns the base score. Amounts are compared by absolute value so that
// debit/credit sign conventions never disagree. ok is false when either
// amount is missing or the difference exceeds the tolerance; such pairs
// cannot be scored by the heuristic path at all.
func (m *Matcher) amountScore(tx record.Transaction, att record.Attachment) (score float64, ok bool) {
	if tx.Amount == nil || att.Data.TotalAmount == nil {
		return 0, false
	}
	if math.Abs(math.Abs(*tx.Amount)-math.Abs(*att.Data.TotalAmount)) > m.cfg.AmountTolerance {
		return 0, false
	}
	return amountBaseScore, true
}

// dateScore returns a bonus based on how close the transaction date is to
// the nearest attachment date. Missing dates on either side are neutral
// (bonus 0, ok). A minimum gap beyond the cutoff rejects the pair outright,
// overriding an otherwise valid amount match.
func (m *Matcher) dateScore(tx record.Transaction, att record.Attachment) (bonus float64, ok bool) {
	txDate, haveTxDate := parseDate(tx.Date)
	attDates := attachmentDates(att)
	if !haveTxDate || len(attDates) == 0 {
		return 0, true
	}

	minDays := daysBetween(txDate, attDates[0])
	for _, d := range attDates[1:] {
		if days := daysBetween(txDate, d); days < minDays {
			minDays = days
		}
	}

	if minDays > m.cfg.DateCutoffDays {
		return 0, false
	}
	return math.Max(0, dateBonusMax-float64(minDays)), true
}

// counterpartyNames returns the normalized names an attachment carries for
// the other party, drawn from issuer, recipient and supplier in that order.
// The company's own name is excluded so it is never matched against itself.
func (m *Matcher) counterpartyNames(att record.Attachment) []string {
	self := normalizeName(m.cfg.CompanyName)

	var names []string
	for _, raw := range []string{att.Data.Issuer, att.Data.Recipient, att.Data.Supplier} {
		name := normalizeName(raw)
		if name == "" || (self != "" && name == self) {
			continue
		}
		names = append(names, name)
	}
	return names
}

// nameScore compares the transaction contact with the attachment
// counterparties:
//
//	 2  exact normalized equality
//	 1  substring either way, checked only when no exact match exists
//	 0  no usable name on one side or the other (neutral)
//	-1  names present on both sides and none match (explicit conflict)
func (m *Matcher) nameScore(contact string, att record.Attachment) int {
	normContact := normalizeName(contact)
	if normContact == "" {
		return 0
	}
	candidates := m.counterpartyNames(att)
	if len(candidates) == 0 {
		// Contact is known but the attachment has nothing to compare
		// against. Neutral, not a mismatch.
		return 0
	}

	for _, candidate := range candidates {
		if normContact == candidate {
			return 2
		}
	}
	for _, candidate := range candidates {
		if containsEither(normContact, candidate) {
			return 1
		}
	}
	return -1
}

// matchScore computes the composite heuristic score for one pair, assuming
// reference matching has already been ruled out. 0.0 means "no confident
// match": either a hard filter fired (amount mismatch, date gap beyond the
// cutoff, name conflict) or no signal was positive.
func (m *Matcher) matchScore(tx record.Transaction, att record.Attachment) float64 {
	score, ok := m.amountScore(tx, att)
	if !ok {
		return 0
	}

	dateBonus, ok := m.dateScore(tx, att)
	if !ok {
		return 0
	}
	score += dateBonus

	nameLevel := m.nameScore(tx.Contact, att)
	if nameLevel < 0 {
		// The contact is known and conflicts with every candidate name.
		return 0
	}
	score += float64(nameLevel) * nameScoreWeight

	return score
}
