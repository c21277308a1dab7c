// Package validate checks incoming registry records before processing.
// Validation never rejects a record outright: the feed is authoritative
// even when inconsistent, so problems surface as warnings the run report
// can count.
package validate

import "github.com/rotisserie/eris"

// ErrEDRPOUFormat marks a code that is not eight digits.
var ErrEDRPOUFormat = eris.New("EDRPOU must be eight digits")

// ErrEDRPOUChecksum marks a code whose control digit does not match.
var ErrEDRPOUChecksum = eris.New("EDRPOU control digit mismatch")

// CheckEDRPOU verifies an already zero-padded EDRPOU code: eight digits
// with a valid control digit. The control algorithm weighs the first
// seven digits, with an alternate weight row for codes in the
// 30000000..60000000 allocation band, and retries with shifted weights
// when the first sum lands on 10.
func CheckEDRPOU(code string) error {
	if len(code) != 8 {
		return ErrEDRPOUFormat
	}
	digits := make([]int, 8)
	num := 0
	for i, r := range code {
		if r < '0' || r > '9' {
			return ErrEDRPOUFormat
		}
		digits[i] = int(r - '0')
		num = num*10 + digits[i]
	}

	weights := []int{1, 2, 3, 4, 5, 6, 7}
	if num >= 30000000 && num < 60000000 {
		weights = []int{7, 1, 2, 3, 4, 5, 6}
	}

	c := control(digits, weights, 0)
	if c < 0 {
		c = control(digits, weights, 2)
		if c < 0 {
			c = 0
		}
	}
	if c != digits[7] {
		return ErrEDRPOUChecksum
	}
	return nil
}

// control computes the mod-11 control digit over the first seven digits;
// a remainder of ten is not a valid digit and reads as "retry shifted".
func control(digits, weights []int, shift int) int {
	sum := 0
	for i := 0; i < 7; i++ {
		sum += digits[i] * (weights[i] + shift)
	}
	rem := sum % 11
	if rem == 10 {
		return -1
	}
	return rem
}
