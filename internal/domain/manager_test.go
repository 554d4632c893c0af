package domain

import (
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestParseManagerList(t *testing.T) {
	managers, err := ParseManagerList([]string{"Jan Kowalski:860", "Anna Nowak:943"})
	require.NoError(t, err)
	require.Len(t, managers, 2)
	assert.Equal(t, ManagerRef{Name: "Jan Kowalski", CRMID: "860"}, managers[0])
	assert.Equal(t, ManagerRef{Name: "Anna Nowak", CRMID: "943"}, managers[1])
}

func TestParseManagerListRejectsBadEntries(t *testing.T) {
	cases := [][]string{
		{},
		{"Jan Kowalski"},
		{"Jan Kowalski:"},
		{":860"},
		{"Jan Kowalski:860", "Jan Kowalski:861"},
	}
	for _, entries := range cases {
		_, err := ParseManagerList(entries)
		assert.Error(t, err, "entries %v", entries)
	}
}

func TestPeriodRange(t *testing.T) {
	from, to := Period{Month: 12, Year: 2026}.Range()
	assert.Equal(t, time.Date(2026, 12, 1, 0, 0, 0, 0, time.UTC), from)
	assert.Equal(t, time.Date(2027, 1, 1, 0, 0, 0, 0, time.UTC), to)

	// Half-open: the end instant is outside the range.
	assert.True(t, InRange(from, from, to))
	assert.False(t, InRange(to, from, to))
	assert.True(t, InRange(to.Add(-time.Second), from, to))
}

func TestPeriodValidate(t *testing.T) {
	assert.NoError(t, Period{Month: 1, Year: 2026}.Validate())
	assert.Error(t, Period{Month: 0, Year: 2026}.Validate())
	assert.Error(t, Period{Month: 13, Year: 2024}.Validate())
	assert.Error(t, Period{Month: 5, Year: 190}.Validate())
}
