package metro

import (
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func minutes(m, s int) time.Duration {
	return time.Duration(m)*time.Minute + time.Duration(s)*time.Second
}

// newPermNetwork builds the two-line Perm network used across tests
func newPermNetwork(t *testing.T, opts ...Option) *Network {
	t.Helper()
	n := NewNetwork("Perm", opts...)

	require.NoError(t, n.AddLine(Red))
	require.NoError(t, n.AddFirstStation(Red, "Sportivnaya"))
	require.NoError(t, n.AddLastStation(Red, "Medvedkovskaya", minutes(2, 21)))
	require.NoError(t, n.AddLastStation(Red, "Molodezhnaya", minutes(1, 58)))
	require.NoError(t, n.AddLastStation(Red, "Perm1", minutes(3, 0), TransferTarget{Color: Blue, Name: "Tyazhmash"}))
	require.NoError(t, n.AddLastStation(Red, "Perm2", minutes(2, 10)))
	require.NoError(t, n.AddLastStation(Red, "DvoretsKultury", minutes(4, 26)))

	require.NoError(t, n.AddLine(Blue))
	require.NoError(t, n.AddFirstStation(Blue, "Pacanskaya"))
	require.NoError(t, n.AddLastStation(Blue, "UlKirova", minutes(1, 30)))
	require.NoError(t, n.AddLastStation(Blue, "Tyazhmash", minutes(1, 47), TransferTarget{Color: Red, Name: "Perm1"}))
	require.NoError(t, n.AddLastStation(Blue, "Nizhnekamskaya", minutes(3, 19)))
	require.NoError(t, n.AddLastStation(Blue, "Sobornaya", minutes(1, 48)))

	require.NoError(t, n.Validate())
	return n
}

func station(t *testing.T, n *Network, name string) *Station {
	t.Helper()
	s, err := n.FindStation(name)
	require.NoError(t, err)
	return s
}

func TestAddLine(t *testing.T) {
	n := NewNetwork("Perm")

	t.Run("Success", func(t *testing.T) {
		require.NoError(t, n.AddLine(Red))
		line, err := n.Line(Red)
		require.NoError(t, err)
		assert.Equal(t, Red, line.Color())
		assert.Equal(t, 0, line.Len())
	})

	t.Run("Duplicate Color", func(t *testing.T) {
		err := n.AddLine(Red)
		assert.ErrorIs(t, err, ErrInvalidConstruction)
	})

	t.Run("Unknown Color", func(t *testing.T) {
		err := n.AddLine(LineColor("magenta"))
		assert.ErrorIs(t, err, ErrInvalidConstruction)
	})

	t.Run("Keeps Registration Order", func(t *testing.T) {
		require.NoError(t, n.AddLine(Blue))
		lines := n.Lines()
		require.Len(t, lines, 2)
		assert.Equal(t, Red, lines[0].Color())
		assert.Equal(t, Blue, lines[1].Color())
	})
}

func TestAddFirstStation(t *testing.T) {
	n := NewNetwork("Perm")
	require.NoError(t, n.AddLine(Red))
	require.NoError(t, n.AddLine(Blue))

	t.Run("Unknown Line", func(t *testing.T) {
		err := n.AddFirstStation(Green, "Zelenaya")
		assert.ErrorIs(t, err, ErrNotFound)
	})

	t.Run("Success", func(t *testing.T) {
		require.NoError(t, n.AddFirstStation(Red, "Sportivnaya"))
		line, _ := n.Line(Red)
		assert.Equal(t, "Sportivnaya", line.Origin().Name())
		assert.Same(t, line.Origin(), line.Terminus())
		assert.True(t, line.Origin().IsOrigin())
		assert.True(t, line.Origin().IsTerminus())
	})

	t.Run("Line Already Started", func(t *testing.T) {
		err := n.AddFirstStation(Red, "Other")
		assert.ErrorIs(t, err, ErrInvalidConstruction)
		assert.Contains(t, err.Error(), "already has a first station")
	})

	t.Run("Name Used On Another Line Ignoring Case", func(t *testing.T) {
		err := n.AddFirstStation(Blue, "SPORTIVNAYA")
		assert.ErrorIs(t, err, ErrInvalidConstruction)

		line, _ := n.Line(Blue)
		assert.Equal(t, 0, line.Len(), "failed check must not mutate the line")
	})

	t.Run("Empty Name", func(t *testing.T) {
		err := n.AddFirstStation(Blue, "  ")
		assert.ErrorIs(t, err, ErrInvalidConstruction)
	})
}

func TestAddLastStation(t *testing.T) {
	n := NewNetwork("Perm")
	require.NoError(t, n.AddLine(Red))

	t.Run("Empty Line", func(t *testing.T) {
		err := n.AddLastStation(Red, "Medvedkovskaya", time.Minute)
		assert.ErrorIs(t, err, ErrInvalidConstruction)
	})

	require.NoError(t, n.AddFirstStation(Red, "Sportivnaya"))

	tests := []struct {
		name       string
		travelTime time.Duration
	}{
		{name: "Zero Travel Time", travelTime: 0},
		{name: "Negative Travel Time", travelTime: -time.Second},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			err := n.AddLastStation(Red, "Medvedkovskaya", tt.travelTime)
			assert.ErrorIs(t, err, ErrInvalidConstruction)
			_, lookupErr := n.FindStation("Medvedkovskaya")
			assert.ErrorIs(t, lookupErr, ErrNotFound)
		})
	}

	t.Run("Success", func(t *testing.T) {
		require.NoError(t, n.AddLastStation(Red, "Medvedkovskaya", minutes(2, 21)))
		first := station(t, n, "Sportivnaya")
		second := station(t, n, "Medvedkovskaya")

		assert.Same(t, second, first.Next())
		assert.Same(t, first, second.Previous())
		assert.Nil(t, first.Previous())
		assert.Nil(t, second.Next())
		assert.Equal(t, minutes(2, 21), first.TravelTimeToNext())
		assert.Equal(t, time.Duration(0), second.TravelTimeToNext())
	})

	t.Run("Duplicate Name", func(t *testing.T) {
		err := n.AddLastStation(Red, "medvedkovskaya", time.Minute)
		assert.ErrorIs(t, err, ErrInvalidConstruction)
	})

	t.Run("Unknown Line", func(t *testing.T) {
		err := n.AddLastStation(Purple, "Somewhere", time.Minute)
		assert.ErrorIs(t, err, ErrNotFound)
	})
}

func TestTransfers(t *testing.T) {
	t.Run("Declared On One Side Is Symmetric", func(t *testing.T) {
		n := NewNetwork("Perm")
		require.NoError(t, n.AddLine(Red))
		require.NoError(t, n.AddLine(Blue))
		require.NoError(t, n.AddFirstStation(Red, "Perm1", TransferTarget{Color: Blue, Name: "Tyazhmash"}))
		require.NoError(t, n.AddFirstStation(Blue, "Tyazhmash"))
		require.NoError(t, n.Validate())

		perm1 := station(t, n, "Perm1")
		tyazhmash := station(t, n, "Tyazhmash")
		assert.Equal(t, []*Station{tyazhmash}, perm1.Transfers())
		assert.Equal(t, []*Station{perm1}, tyazhmash.Transfers())
	})

	t.Run("Declared On Both Sides Links Once", func(t *testing.T) {
		n := newPermNetwork(t)
		perm1 := station(t, n, "Perm1")
		assert.Len(t, perm1.Transfers(), 1)

		blue, _ := n.Line(Blue)
		assert.True(t, perm1.HasTransferTo(blue))
		assert.Equal(t, "Tyazhmash", perm1.TransferTo(blue).Name())
	})

	t.Run("Dangling Declaration Fails Validation", func(t *testing.T) {
		n := NewNetwork("Perm")
		require.NoError(t, n.AddLine(Red))
		require.NoError(t, n.AddFirstStation(Red, "Perm1", TransferTarget{Color: Blue, Name: "Tyazhmash"}))

		err := n.Validate()
		assert.ErrorIs(t, err, ErrInvalidConstruction)
		assert.Contains(t, err.Error(), "Perm1")
	})

	t.Run("Target On Wrong Line Stays Unresolved", func(t *testing.T) {
		n := NewNetwork("Perm")
		require.NoError(t, n.AddLine(Red))
		require.NoError(t, n.AddLine(Blue))
		require.NoError(t, n.AddLine(Green))
		require.NoError(t, n.AddFirstStation(Red, "Perm1", TransferTarget{Color: Blue, Name: "Tyazhmash"}))
		require.NoError(t, n.AddFirstStation(Green, "Tyazhmash"))

		assert.ErrorIs(t, n.Validate(), ErrInvalidConstruction)
		assert.Empty(t, station(t, n, "Perm1").Transfers())
	})

	t.Run("Existing Target On Wrong Line Is Rejected", func(t *testing.T) {
		n := NewNetwork("Perm")
		require.NoError(t, n.AddLine(Red))
		require.NoError(t, n.AddLine(Blue))
		require.NoError(t, n.AddFirstStation(Red, "Perm1"))

		err := n.AddFirstStation(Blue, "Tyazhmash", TransferTarget{Color: Green, Name: "Perm1"})
		assert.ErrorIs(t, err, ErrInvalidConstruction)
	})

	t.Run("Transfer To Own Line", func(t *testing.T) {
		n := NewNetwork("Perm")
		require.NoError(t, n.AddLine(Red))
		err := n.AddFirstStation(Red, "Perm1", TransferTarget{Color: Red, Name: "Perm2"})
		assert.ErrorIs(t, err, ErrInvalidConstruction)
	})
}

func TestLookup(t *testing.T) {
	n := newPermNetwork(t)

	t.Run("Station On Line", func(t *testing.T) {
		s, err := n.Station(Blue, "sobornaya")
		require.NoError(t, err)
		assert.Equal(t, "Sobornaya", s.Name())
		assert.Equal(t, 4, s.Position())
	})

	t.Run("Station On Other Line", func(t *testing.T) {
		_, err := n.Station(Red, "Sobornaya")
		assert.ErrorIs(t, err, ErrNotFound)
	})

	t.Run("Unknown Line", func(t *testing.T) {
		_, err := n.Station(Yellow, "Sobornaya")
		assert.ErrorIs(t, err, ErrNotFound)
	})

	t.Run("Unknown Station", func(t *testing.T) {
		_, err := n.FindStation("Kremlin")
		assert.ErrorIs(t, err, ErrNotFound)
	})
}

func TestLineTravelTime(t *testing.T) {
	n := newPermNetwork(t)
	red, _ := n.Line(Red)

	total, err := red.TravelTime(station(t, n, "DvoretsKultury"), station(t, n, "Sportivnaya"))
	require.NoError(t, err)
	assert.Equal(t, minutes(2, 21)+minutes(1, 58)+minutes(3, 0)+minutes(2, 10)+minutes(4, 26), total)

	_, err = red.TravelTime(station(t, n, "Sportivnaya"), station(t, n, "Sobornaya"))
	assert.ErrorIs(t, err, ErrUnreachable)
}

func TestParseLineColor(t *testing.T) {
	c, err := ParseLineColor(" RED ")
	require.NoError(t, err)
	assert.Equal(t, Red, c)
	assert.Equal(t, "Красная", c.DisplayName())

	_, err = ParseLineColor("magenta")
	assert.ErrorIs(t, err, ErrNotFound)
}
