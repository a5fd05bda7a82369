package metro

import (
	"fmt"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func day(y int, m time.Month, d int) time.Time {
	return time.Date(y, m, d, 0, 0, 0, 0, time.UTC)
}

func TestIssuePass_SequentialSerials(t *testing.T) {
	n := NewNetwork("Perm")

	var serials []string
	for i := 1; i <= 12; i++ {
		pass, err := n.IssuePass(day(2023, time.January, 2))
		require.NoError(t, err)
		assert.Equal(t, fmt.Sprintf("a%04d", i), pass.Serial)
		serials = append(serials, pass.Serial)
	}

	for i := 1; i < len(serials); i++ {
		assert.Less(t, serials[i-1], serials[i])
	}
	assert.Equal(t, 12, n.PassesIssued())
}

func TestIssuePass_ExpiresOneMonthLater(t *testing.T) {
	n := NewNetwork("Perm")

	pass, err := n.IssuePass(time.Date(2023, time.January, 2, 18, 30, 0, 0, time.UTC))
	require.NoError(t, err)
	assert.Equal(t, day(2023, time.February, 2), pass.ExpiresOn)
}

func TestIssuePass_CapacityExhausted(t *testing.T) {
	n := NewNetwork("Perm", WithPassCapacity(3))

	for i := 0; i < 2; i++ {
		_, err := n.IssuePass(day(2023, time.January, 2))
		require.NoError(t, err)
	}

	_, err := n.IssuePass(day(2023, time.January, 2))
	assert.ErrorIs(t, err, ErrCapacityExhausted)
	assert.Equal(t, 2, n.PassesIssued(), "failed issuance must not advance the counter")

	_, err = n.IssuePass(day(2023, time.January, 3))
	assert.ErrorIs(t, err, ErrCapacityExhausted)
}

func TestIsPassValid(t *testing.T) {
	n := NewNetwork("Perm")
	pass, err := n.IssuePass(day(2023, time.January, 2))
	require.NoError(t, err)

	tests := []struct {
		name string
		date time.Time
		want bool
	}{
		{"Sale Day", day(2023, time.January, 2), true},
		{"Day Before Expiry", day(2023, time.February, 1), true},
		{"Expiry Day", day(2023, time.February, 2), false},
		{"After Expiry", day(2023, time.March, 1), false},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			valid, err := n.IsPassValid(pass.Serial, tt.date)
			require.NoError(t, err)
			assert.Equal(t, tt.want, valid)
		})
	}

	t.Run("Unknown Serial", func(t *testing.T) {
		_, err := n.IsPassValid("a9999", day(2023, time.January, 2))
		assert.ErrorIs(t, err, ErrNotFound)
	})
}

func TestRenewPass(t *testing.T) {
	n := NewNetwork("Perm")
	pass, err := n.IssuePass(day(2023, time.January, 2))
	require.NoError(t, err)

	t.Run("Does Not Accumulate Remaining Time", func(t *testing.T) {
		renewed, err := n.RenewPass(pass.Serial, day(2023, time.January, 3))
		require.NoError(t, err)
		assert.Equal(t, day(2023, time.February, 3), renewed.ExpiresOn)
	})

	t.Run("Renewal Date Validity Window", func(t *testing.T) {
		saleDate := day(2023, time.May, 10)
		_, err := n.RenewPass(pass.Serial, saleDate)
		require.NoError(t, err)

		valid, err := n.IsPassValid(pass.Serial, saleDate)
		require.NoError(t, err)
		assert.True(t, valid)

		valid, err = n.IsPassValid(pass.Serial, saleDate.AddDate(0, 1, 1))
		require.NoError(t, err)
		assert.False(t, valid)
	})

	t.Run("Can Shorten Expiry", func(t *testing.T) {
		renewed, err := n.RenewPass(pass.Serial, day(2023, time.January, 5))
		require.NoError(t, err)
		assert.Equal(t, day(2023, time.February, 5), renewed.ExpiresOn)
	})

	t.Run("Unknown Serial", func(t *testing.T) {
		_, err := n.RenewPass("a0042", day(2023, time.January, 3))
		assert.ErrorIs(t, err, ErrNotFound)
	})
}

func TestRestorePass(t *testing.T) {
	n := NewNetwork("Perm")

	require.NoError(t, n.RestorePass(Pass{Serial: "a0007", ExpiresOn: day(2023, time.February, 1)}))
	require.NoError(t, n.RestorePass(Pass{Serial: "a0003", ExpiresOn: day(2023, time.February, 1)}))

	next, err := n.IssuePass(day(2023, time.January, 2))
	require.NoError(t, err)
	assert.Equal(t, "a0008", next.Serial)

	restored, err := n.Pass("a0003")
	require.NoError(t, err)
	assert.Equal(t, day(2023, time.February, 1), restored.ExpiresOn)

	assert.ErrorIs(t, n.RestorePass(Pass{Serial: "x12"}), ErrInvalidOperation)
}

func TestAddMonth(t *testing.T) {
	tests := []struct {
		in, want time.Time
	}{
		{day(2023, time.January, 2), day(2023, time.February, 2)},
		{day(2023, time.January, 31), day(2023, time.February, 28)},
		{day(2024, time.January, 31), day(2024, time.February, 29)},
		{day(2023, time.December, 15), day(2024, time.January, 15)},
		{day(2023, time.March, 31), day(2023, time.April, 30)},
	}
	for _, tt := range tests {
		assert.Equal(t, tt.want, AddMonth(tt.in), tt.in.Format("2006-01-02"))
	}
}

func TestParseSerial(t *testing.T) {
	seq, err := ParseSerial("a0042")
	require.NoError(t, err)
	assert.Equal(t, 42, seq)

	for _, bad := range []string{"", "a", "b0001", "a00x1", "a0000"} {
		_, err := ParseSerial(bad)
		assert.ErrorIs(t, err, ErrInvalidOperation, bad)
	}
}
