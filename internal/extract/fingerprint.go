package extract

import "github.com/ppiankov/edrbo/internal/model"

// Fingerprint is the list of name-chain lengths found in a record.
// "іванов іван іванович , внесок" over the name gazetteer gives (3):
// one chain of three consecutive name tokens.
type Fingerprint []int

// FingerprintClass bins a fingerprint for the name heuristic. Ukrainian
// full names are three tokens (surname, given name, patronymic), so a
// single chain of exactly three is the ideal shape.
type FingerprintClass int

const (
	ClassIdeal                 FingerprintClass = iota + 1 // one chain, exactly three tokens
	ClassAlmostIdeal                                       // a three-token chain plus noise chains
	ClassComplicated                                       // one chain, longer than three
	ClassComplicatedAndStrange                             // a long chain plus noise chains
	ClassEmpty                                             // no name chains at all
	ClassAlmostEmpty                                       // nothing longer than one token
	ClassIncomplete                                        // longest chain is two tokens
)

// Classify bins the fingerprint.
func (f Fingerprint) Classify() FingerprintClass {
	if len(f) == 0 {
		return ClassEmpty
	}

	longest := 0
	for _, l := range f {
		if l > longest {
			longest = l
		}
	}

	switch {
	case longest == 3 && len(f) == 1:
		return ClassIdeal
	case longest == 3:
		return ClassAlmostIdeal
	case longest > 3 && len(f) == 1:
		return ClassComplicated
	case longest > 3:
		return ClassComplicatedAndStrange
	case longest == 1:
		return ClassAlmostEmpty
	default:
		return ClassIncomplete
	}
}

// Usable reports whether the fingerprint is strong enough to extract a
// name without consulting the model.
func (c FingerprintClass) Usable() bool {
	switch c {
	case ClassIdeal, ClassAlmostIdeal, ClassComplicated, ClassComplicatedAndStrange:
		return true
	default:
		return false
	}
}

// fingerprintOf builds the fingerprint from name chains.
func fingerprintOf(chains []model.TokenRange) Fingerprint {
	fp := make(Fingerprint, len(chains))
	for i, c := range chains {
		fp[i] = c.Len()
	}
	return fp
}

// longestChain returns the longest range; earlier chains win ties.
func longestChain(chains []model.TokenRange) (model.TokenRange, bool) {
	var best model.TokenRange
	for _, c := range chains {
		if c.Len() > best.Len() {
			best = c
		}
	}
	return best, best.Len() > 0
}
