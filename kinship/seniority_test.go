package kinship

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/vasudha-connect/kinshipbackend/models"
)

func born(id, year, month string) models.Person {
	p := models.Person{ID: id, Name: id, Gender: models.GenderMale}
	if year != "" {
		p.BirthYear = strPtr(year)
	}
	if month != "" {
		p.BirthMonth = strPtr(month)
	}
	return p
}

func TestIsPerson1OlderByYear(t *testing.T) {
	older := born("OLDER000", "1960", "")
	younger := born("YOUNGER0", "1985", "")

	result := IsPerson1Older(&older, &younger)
	require.NotNil(t, result)
	assert.True(t, *result)

	result = IsPerson1Older(&younger, &older)
	require.NotNil(t, result)
	assert.False(t, *result)
}

func TestIsPerson1OlderBreaksYearTieByMonth(t *testing.T) {
	march := born("MARCH000", "1970", "MARCH")
	october := born("OCTOBER0", "1970", "OCTOBER")

	result := IsPerson1Older(&march, &october)
	require.NotNil(t, result)
	assert.True(t, *result)

	result = IsPerson1Older(&october, &march)
	require.NotNil(t, result)
	assert.False(t, *result)
}

func TestIsPerson1OlderUnknown(t *testing.T) {
	known := born("KNOWN000", "1970", "MARCH")

	cases := []struct {
		name string
		p1   *models.Person
		p2   *models.Person
	}{
		{"nil first person", nil, &known},
		{"nil second person", &known, nil},
		{"missing year", ptrOf(born("NOYEAR00", "", "MARCH")), &known},
		{"unparseable year", ptrOf(born("BADYEAR0", "about 1950", "")), &known},
		{"same year no months", ptrOf(born("SAMEYEAR", "1970", "")), ptrOf(born("SAMETOO0", "1970", ""))},
		{"same year same month", ptrOf(born("SAMEALL0", "1970", "MARCH")), &known},
		{"same year one month missing", ptrOf(born("HALFMON0", "1970", "")), &known},
	}
	for _, tc := range cases {
		t.Run(tc.name, func(t *testing.T) {
			assert.Nil(t, IsPerson1Older(tc.p1, tc.p2), "order must be reported as unknown, not false")
		})
	}
}

func ptrOf(p models.Person) *models.Person { return &p }

func TestIsPerson1OlderAntiSymmetry(t *testing.T) {
	people := []models.Person{
		born("A0000001", "1950", "JANUARY"),
		born("A0000002", "1950", "JUNE"),
		born("A0000003", "1972", ""),
		born("A0000004", "", ""),
	}
	for i := range people {
		for j := range people {
			forward := IsPerson1Older(&people[i], &people[j])
			backward := IsPerson1Older(&people[j], &people[i])
			if forward == nil {
				assert.Nil(t, backward)
				continue
			}
			require.NotNil(t, backward)
			if i != j {
				assert.NotEqual(t, *forward, *backward)
			}
		}
	}
}

func TestSortBySeniorityOldestFirst(t *testing.T) {
	people := []models.Person{
		born("YOUNG000", "1990", ""),
		born("OLD00000", "1955", ""),
		born("MIDDLE00", "1970", "DECEMBER"),
		born("MIDDLE02", "1970", "APRIL"),
	}
	SortBySeniority(people)

	assert.Equal(t, []string{"OLD00000", "MIDDLE02", "MIDDLE00", "YOUNG000"}, ids(people))
}

func TestSortBySeniorityKeepsIndeterminatePairsStable(t *testing.T) {
	people := []models.Person{
		born("FIRST000", "", ""),
		born("SECOND00", "", ""),
		born("THIRD000", "1960", ""),
		born("FOURTH00", "", ""),
	}
	SortBySeniority(people)

	// the dated person cannot be compared to any of the undated ones, so
	// nothing may move
	assert.Equal(t, []string{"FIRST000", "SECOND00", "THIRD000", "FOURTH00"}, ids(people))
}
