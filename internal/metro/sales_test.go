package metro

import (
	"testing"
	"time"

	"github.com/shopspring/decimal"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestTicketOffice(t *testing.T) {
	office := NewTicketOffice()
	jan1 := day(2023, time.January, 1)

	office.Record(jan1, decimal.NewFromInt(25))
	office.Record(jan1.Add(15*time.Hour), decimal.RequireFromString("0.10"))
	office.Record(day(2022, time.December, 31), decimal.NewFromInt(3000))

	assert.True(t, decimal.RequireFromString("25.10").Equal(office.Total(jan1)))
	assert.True(t, office.Total(day(2023, time.January, 2)).IsZero())
	assert.Equal(t, []time.Time{day(2022, time.December, 31), jan1}, office.Dates())

	sales := office.Sales()
	sales[jan1] = decimal.Zero
	assert.False(t, office.Total(jan1).IsZero(), "Sales must return a copy")
}

func TestSellOneWayTicket(t *testing.T) {
	n := newPermNetwork(t)
	seller := station(t, n, "Sportivnaya")
	jan1 := day(2023, time.January, 1)

	price, err := seller.SellOneWayTicket(jan1, seller, station(t, n, "Molodezhnaya"))
	require.NoError(t, err)
	assert.True(t, decimal.NewFromInt(30).Equal(price), price.String())

	_, err = seller.SellOneWayTicket(jan1, seller, station(t, n, "Molodezhnaya"))
	require.NoError(t, err)
	assert.True(t, decimal.NewFromInt(60).Equal(seller.TicketOffice().Total(jan1)))

	t.Run("Same Station", func(t *testing.T) {
		_, err := seller.SellOneWayTicket(jan1, seller, seller)
		assert.ErrorIs(t, err, ErrInvalidOperation)
		assert.True(t, decimal.NewFromInt(60).Equal(seller.TicketOffice().Total(jan1)))
	})

	t.Run("Unreachable Records Nothing", func(t *testing.T) {
		require.NoError(t, n.AddLine(Green))
		require.NoError(t, n.AddFirstStation(Green, "Zaozerye"))

		_, err := seller.SellOneWayTicket(jan1, seller, station(t, n, "Zaozerye"))
		assert.ErrorIs(t, err, ErrUnreachable)
		assert.True(t, decimal.NewFromInt(60).Equal(seller.TicketOffice().Total(jan1)))
	})
}

func TestSellTicket_CustomTariff(t *testing.T) {
	tariff := Tariff{
		BaseFare:  decimal.RequireFromString("19.90"),
		StageFare: decimal.RequireFromString("0.35"),
		PassPrice: decimal.NewFromInt(2500),
	}
	n := newPermNetwork(t, WithTariff(tariff))

	price, err := n.SellTicketOnStation(day(2023, time.January, 1), "Perm2", "Sportivnaya", "Sobornaya")
	require.NoError(t, err)
	assert.Equal(t, "21.65", price.StringFixed(2))
}

func TestSellTicketOnStation(t *testing.T) {
	n := newPermNetwork(t)
	jan1 := day(2023, time.January, 1)

	_, err := n.SellTicketOnStation(jan1, "Sportivnaya", "Sportivnaya", "Medvedkovskaya")
	require.NoError(t, err)
	_, err = n.SellTicketOnStation(jan1, "Sportivnaya", "Sportivnaya", "Molodezhnaya")
	require.NoError(t, err)

	assert.Equal(t, "55", station(t, n, "Sportivnaya").TicketOffice().Total(jan1).String())

	_, err = n.SellTicketOnStation(jan1, "Sportivnaya", "perm1", "PERM1")
	assert.ErrorIs(t, err, ErrInvalidOperation)

	_, err = n.SellTicketOnStation(jan1, "Kremlin", "Sportivnaya", "Perm1")
	assert.ErrorIs(t, err, ErrNotFound)
}

func TestPassSales(t *testing.T) {
	n := newPermNetwork(t)

	pass, err := n.SellPassOnStation(day(2023, time.January, 2), "Molodezhnaya")
	require.NoError(t, err)
	assert.Equal(t, "a0001", pass.Serial)

	_, err = n.SellPassOnStation(day(2023, time.January, 3), "Medvedkovskaya")
	require.NoError(t, err)

	renewed, err := n.RenewPassOnStation(day(2023, time.January, 3), "a0001", "Sportivnaya")
	require.NoError(t, err)
	assert.Equal(t, day(2023, time.February, 3), renewed.ExpiresOn)

	assert.Equal(t, "3000", station(t, n, "Molodezhnaya").TicketOffice().Total(day(2023, time.January, 2)).String())
	assert.Equal(t, "3000", station(t, n, "Sportivnaya").TicketOffice().Total(day(2023, time.January, 3)).String())

	t.Run("Renewal Of Unknown Pass Records Nothing", func(t *testing.T) {
		_, err := n.RenewPassOnStation(day(2023, time.January, 4), "a0100", "Sportivnaya")
		assert.ErrorIs(t, err, ErrNotFound)
		assert.True(t, station(t, n, "Sportivnaya").TicketOffice().Total(day(2023, time.January, 4)).IsZero())
	})

	t.Run("Exhausted Registry Records Nothing", func(t *testing.T) {
		small := newPermNetwork(t, WithPassCapacity(1))
		_, err := small.SellPassOnStation(day(2023, time.January, 4), "Perm1")
		assert.ErrorIs(t, err, ErrCapacityExhausted)
		assert.Empty(t, small.IncomeReport())
	})
}

func TestIncomeReport(t *testing.T) {
	n := newPermNetwork(t)

	_, err := n.SellTicketOnStation(day(2023, time.January, 1), "Sportivnaya", "Sportivnaya", "Medvedkovskaya")
	require.NoError(t, err)
	_, err = n.SellTicketOnStation(day(2023, time.January, 1), "Sportivnaya", "Sportivnaya", "Molodezhnaya")
	require.NoError(t, err)
	_, err = n.SellPassOnStation(day(2023, time.January, 3), "Medvedkovskaya")
	require.NoError(t, err)
	_, err = n.SellPassOnStation(day(2023, time.January, 2), "Molodezhnaya")
	require.NoError(t, err)
	_, err = n.RenewPassOnStation(day(2023, time.January, 3), "a0001", "Sportivnaya")
	require.NoError(t, err)

	report := n.IncomeReport()
	require.Len(t, report, 3)
	assert.Equal(t, day(2023, time.January, 1), report[0].Date)
	assert.Equal(t, "55", report[0].Amount.String())
	assert.Equal(t, day(2023, time.January, 2), report[1].Date)
	assert.Equal(t, "3000", report[1].Amount.String())
	assert.Equal(t, day(2023, time.January, 3), report[2].Date)
	assert.Equal(t, "6000", report[2].Amount.String())

	_, ok := n.TotalIncome()[day(2023, time.January, 4)]
	assert.False(t, ok, "dates without sales are absent")

	rows, err := n.StationIncome("sportivnaya")
	require.NoError(t, err)
	require.Len(t, rows, 2)
	assert.Equal(t, "55", rows[0].Amount.String())
	assert.Equal(t, "3000", rows[1].Amount.String())
}

func TestQuote(t *testing.T) {
	n := newPermNetwork(t)

	hops, price, err := n.Quote(station(t, n, "Sportivnaya"), station(t, n, "Sobornaya"))
	require.NoError(t, err)
	assert.Equal(t, 5, hops)
	assert.Equal(t, "45", price.String())

	_, _, err = n.Quote(station(t, n, "Perm1"), station(t, n, "Perm1"))
	assert.ErrorIs(t, err, ErrInvalidOperation)
}
