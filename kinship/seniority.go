package kinship

import (
	"sort"
	"strconv"

	"github.com/vasudha-connect/kinshipbackend/models"
)

// monthOrder maps the stored month names to their calendar position.
var monthOrder = map[string]int{
	"JANUARY": 1, "FEBRUARY": 2, "MARCH": 3, "APRIL": 4, "MAY": 5, "JUNE": 6,
	"JULY": 7, "AUGUST": 8, "SEPTEMBER": 9, "OCTOBER": 10, "NOVEMBER": 11, "DECEMBER": 12,
}

// IsPerson1Older reports whether p1 was born before p2. The result is three
// valued: nil means the order cannot be determined from the recorded birth
// data. That is distinct from false and must not be collapsed to it —
// honorific selection branches three ways on this result. Years are compared
// first; only on a year tie are the birth months consulted.
func IsPerson1Older(p1, p2 *models.Person) *bool {
	if p1 == nil || p2 == nil {
		return nil
	}

	year1 := parseYear(p1.BirthYear)
	year2 := parseYear(p2.BirthYear)
	if year1 == 0 || year2 == 0 {
		return nil
	}
	if year1 < year2 {
		return boolPtr(true)
	}
	if year1 > year2 {
		return boolPtr(false)
	}

	month1 := monthIndex(p1.BirthMonth)
	month2 := monthIndex(p2.BirthMonth)
	if month1 != 0 && month2 != 0 {
		if month1 < month2 {
			return boolPtr(true)
		}
		if month1 > month2 {
			return boolPtr(false)
		}
	}

	return nil
}

// SortBySeniority orders a list oldest first, in place. The sort is stable:
// a pair whose relative age is indeterminate keeps its input order rather
// than being swapped.
func SortBySeniority(people []models.Person) {
	sort.SliceStable(people, func(i, j int) bool {
		older := IsPerson1Older(&people[i], &people[j])
		return older != nil && *older
	})
}

func parseYear(raw *string) int {
	if raw == nil {
		return 0
	}
	year, err := strconv.Atoi(*raw)
	if err != nil || year <= 0 {
		return 0
	}
	return year
}

func monthIndex(raw *string) int {
	if raw == nil {
		return 0
	}
	return monthOrder[*raw]
}

func boolPtr(v bool) *bool {
	return &v
}
