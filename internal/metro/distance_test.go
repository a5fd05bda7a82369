package metro

import (
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestDistance_PermScenario(t *testing.T) {
	n := newPermNetwork(t)

	tests := []struct {
		from, to string
		want     int
	}{
		{"Sportivnaya", "Medvedkovskaya", 1},
		{"Sportivnaya", "Molodezhnaya", 2},
		{"Sportivnaya", "DvoretsKultury", 5},
		{"DvoretsKultury", "Sportivnaya", 5},
		{"Sportivnaya", "Tyazhmash", 3},
		{"Sportivnaya", "Sobornaya", 5},
		{"Sobornaya", "Sportivnaya", 5},
		{"Pacanskaya", "DvoretsKultury", 4},
		{"Perm2", "UlKirova", 2},
		{"Perm1", "Tyazhmash", 0},
	}
	for _, tt := range tests {
		t.Run(tt.from+"->"+tt.to, func(t *testing.T) {
			got, err := n.DistanceByName(tt.from, tt.to)
			require.NoError(t, err)
			assert.Equal(t, tt.want, got)
		})
	}
}

func TestDistance_SameStation(t *testing.T) {
	n := newPermNetwork(t)
	for _, line := range n.Lines() {
		for _, s := range line.Stations() {
			got, err := n.Distance(s, s)
			require.NoError(t, err)
			assert.Equal(t, 0, got, s.Name())
		}
	}
}

func TestDistance_SameLineIsPositionDifference(t *testing.T) {
	n := newPermNetwork(t)
	for _, line := range n.Lines() {
		stations := line.Stations()
		for i, a := range stations {
			for j, b := range stations {
				forward, err := n.Distance(a, b)
				require.NoError(t, err)
				backward, err := n.Distance(b, a)
				require.NoError(t, err)

				want := j - i
				if want < 0 {
					want = -want
				}
				assert.Equal(t, want, forward, "%s -> %s", a.Name(), b.Name())
				assert.Equal(t, forward, backward, "%s <-> %s", a.Name(), b.Name())
			}
		}
	}
}

func TestDistance_CrossLineIsSumOfBothLegs(t *testing.T) {
	n := newPermNetwork(t)
	red, _ := n.Line(Red)
	blue, _ := n.Line(Blue)

	from, to, err := red.FindTransferTo(blue)
	require.NoError(t, err)
	assert.Equal(t, "Perm1", from.Name())
	assert.Equal(t, "Tyazhmash", to.Name())

	for _, a := range red.Stations() {
		for _, b := range blue.Stations() {
			first, err := n.Distance(a, from)
			require.NoError(t, err)
			second, err := n.Distance(to, b)
			require.NoError(t, err)

			got, err := n.Distance(a, b)
			require.NoError(t, err)
			assert.Equal(t, first+second, got, "%s -> %s", a.Name(), b.Name())
		}
	}
}

func TestDistance_NoTransferBetweenLines(t *testing.T) {
	n := newPermNetwork(t)
	require.NoError(t, n.AddLine(Green))
	require.NoError(t, n.AddFirstStation(Green, "Zaozerye"))
	require.NoError(t, n.AddLastStation(Green, "Gorodskie Gorki", 2*time.Minute))

	_, err := n.DistanceByName("Sportivnaya", "Zaozerye")
	require.Error(t, err)
	assert.ErrorIs(t, err, ErrUnreachable)

	var pathErr *PathError
	require.ErrorAs(t, err, &pathErr)
	assert.Equal(t, "Sportivnaya", pathErr.Start)
	assert.Equal(t, "Zaozerye", pathErr.End)
	assert.Equal(t, "no path from station Sportivnaya to Zaozerye", err.Error())
}

func TestDistance_NeverChainsTwoTransfers(t *testing.T) {
	n := newPermNetwork(t)
	require.NoError(t, n.AddLine(Green))
	require.NoError(t, n.AddFirstStation(Green, "Zaozerye", TransferTarget{Color: Blue, Name: "Sobornaya"}))
	require.NoError(t, n.Validate())

	// green -> blue works with one change
	got, err := n.DistanceByName("Zaozerye", "Tyazhmash")
	require.NoError(t, err)
	assert.Equal(t, 2, got)

	// green -> red would need two changes
	_, err = n.DistanceByName("Zaozerye", "Sportivnaya")
	assert.ErrorIs(t, err, ErrUnreachable)
}

func TestDistance_FirstTransferInLineOrderWins(t *testing.T) {
	n := NewNetwork("Test")
	require.NoError(t, n.AddLine(Red))
	require.NoError(t, n.AddLine(Blue))

	require.NoError(t, n.AddFirstStation(Blue, "B0"))
	require.NoError(t, n.AddLastStation(Blue, "B1", time.Minute))
	require.NoError(t, n.AddLastStation(Blue, "B2", time.Minute))

	require.NoError(t, n.AddFirstStation(Red, "R0", TransferTarget{Color: Blue, Name: "B0"}))
	require.NoError(t, n.AddLastStation(Red, "R1", time.Minute))
	require.NoError(t, n.AddLastStation(Red, "R2", time.Minute))
	require.NoError(t, n.AddLastStation(Red, "R3", time.Minute, TransferTarget{Color: Blue, Name: "B2"}))
	require.NoError(t, n.Validate())

	// R3 -> B2 is 0 hops through R3, but R0 comes first in line order
	got, err := n.DistanceByName("R3", "B2")
	require.NoError(t, err)
	assert.Equal(t, 3+2, got)
}

func TestDistance_UnknownStation(t *testing.T) {
	n := newPermNetwork(t)
	_, err := n.DistanceByName("Sportivnaya", "Kremlin")
	assert.ErrorIs(t, err, ErrNotFound)
}

func TestKindOf(t *testing.T) {
	assert.Equal(t, KindUnreachable, KindOf(&PathError{Start: "a", End: "b"}))
	assert.Equal(t, KindNotFound, KindOf(ErrNotFound))
	assert.Equal(t, KindCapacityExhausted, KindOf(ErrCapacityExhausted))
	assert.Equal(t, KindInvalidOperation, KindOf(ErrInvalidOperation))
	assert.Equal(t, KindInvalidConstruction, KindOf(ErrInvalidConstruction))
	assert.Equal(t, KindUnknown, KindOf(assert.AnError))
}
