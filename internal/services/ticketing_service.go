package services

import (
	"context"
	"fmt"
	"time"

	"github.com/google/uuid"
	"github.com/shopspring/decimal"
	"github.com/sirupsen/logrus"
	"github.com/smarttransit/metro-ticketing/internal/events"
	"github.com/smarttransit/metro-ticketing/internal/metro"
	"github.com/smarttransit/metro-ticketing/internal/models"
)

// SaleJournal stores completed sales
type SaleJournal interface {
	Create(ctx context.Context, sale *models.Sale) error
	ListAll(ctx context.Context) ([]models.Sale, error)
}

// PassStore stores the current expiry of every pass
type PassStore interface {
	Upsert(ctx context.Context, pass *models.PassRecord) error
	ListAll(ctx context.Context) ([]models.PassRecord, error)
}

// Seller identifies who sells: the station office and the terminal used
type Seller struct {
	Station    string
	TerminalID string
}

// TicketingService runs sales against the in-memory network and keeps the
// journal, the pass table and the event stream in step with it. The network
// is the source of truth while running. Journal and event failures are logged
// and never undo a completed sale.
type TicketingService struct {
	network   *metro.Network
	sales     SaleJournal
	passes    PassStore
	cache     QuoteCache
	publisher events.SalePublisher
	logger    *logrus.Logger
	location  *time.Location
	now       func() time.Time
}

// NewTicketingService creates a new ticketing service
func NewTicketingService(
	network *metro.Network,
	sales SaleJournal,
	passes PassStore,
	cache QuoteCache,
	publisher events.SalePublisher,
	logger *logrus.Logger,
	location *time.Location,
) *TicketingService {
	if cache == nil {
		cache = NoopQuoteCache{}
	}
	if publisher == nil {
		publisher = events.NoopPublisher{}
	}
	if location == nil {
		location = time.UTC
	}
	return &TicketingService{
		network:   network,
		sales:     sales,
		passes:    passes,
		cache:     cache,
		publisher: publisher,
		logger:    logger,
		location:  location,
		now:       time.Now,
	}
}

// Network returns the network the service sells on
func (s *TicketingService) Network() *metro.Network {
	return s.network
}

// Today returns the current calendar date in the network's timezone
func (s *TicketingService) Today() models.Date {
	return models.NewDate(s.now().In(s.location))
}

func (s *TicketingService) saleDate(date *models.Date) models.Date {
	if date == nil || date.IsZero() {
		return s.Today()
	}
	return *date
}

// Distance returns the hop count between two stations
func (s *TicketingService) Distance(from, to string) (*models.DistanceResponse, error) {
	start, err := s.network.FindStation(from)
	if err != nil {
		return nil, err
	}
	end, err := s.network.FindStation(to)
	if err != nil {
		return nil, err
	}

	hops, err := s.network.Distance(start, end)
	if err != nil {
		return nil, err
	}
	return &models.DistanceResponse{From: start.Name(), To: end.Name(), Hops: hops}, nil
}

// Quote prices a one-way ticket. Quotes are served from the cache when present.
func (s *TicketingService) Quote(ctx context.Context, from, to string) (*models.FareQuote, error) {
	start, err := s.network.FindStation(from)
	if err != nil {
		return nil, err
	}
	end, err := s.network.FindStation(to)
	if err != nil {
		return nil, err
	}

	cached, err := s.cache.Get(ctx, start.Name(), end.Name())
	if err != nil {
		s.logger.WithError(err).Warn("Quote cache read failed")
	}
	if cached != nil {
		return cached, nil
	}

	hops, price, err := s.network.Quote(start, end)
	if err != nil {
		return nil, err
	}

	quote := &models.FareQuote{From: start.Name(), To: end.Name(), Hops: hops, Price: price}
	if err := s.cache.Set(ctx, quote); err != nil {
		s.logger.WithError(err).Warn("Quote cache write failed")
	}
	return quote, nil
}

// SellTicket sells a one-way ticket from the seller's station office
func (s *TicketingService) SellTicket(ctx context.Context, seller Seller, from, to string, date *models.Date) (*models.SaleResponse, error) {
	saleDate := s.saleDate(date)

	price, err := s.network.SellTicketOnStation(saleDate.Time, seller.Station, from, to)
	if err != nil {
		return nil, err
	}

	// Names are canonical once the sale went through
	start, _ := s.network.FindStation(from)
	end, _ := s.network.FindStation(to)
	office, _ := s.network.FindStation(seller.Station)
	hops, _ := s.network.Distance(start, end)

	fromName, toName := start.Name(), end.Name()
	sale := &models.Sale{
		Kind:        models.SaleKindOneWayTicket,
		Station:     office.Name(),
		FromStation: &fromName,
		ToStation:   &toName,
		Hops:        &hops,
		Amount:      price,
		SaleDate:    saleDate,
		TerminalID:  terminalRef(seller.TerminalID),
	}
	s.record(ctx, sale, nil)

	return &models.SaleResponse{
		SaleID:   sale.ID,
		Kind:     sale.Kind,
		Station:  sale.Station,
		Price:    price,
		SaleDate: saleDate,
		Hops:     &hops,
	}, nil
}

// SellPass issues a new monthly pass from the seller's station office
func (s *TicketingService) SellPass(ctx context.Context, seller Seller, date *models.Date) (*models.SaleResponse, error) {
	saleDate := s.saleDate(date)

	pass, err := s.network.SellPassOnStation(saleDate.Time, seller.Station)
	if err != nil {
		return nil, err
	}
	return s.passSold(ctx, seller, models.SaleKindPass, pass, saleDate), nil
}

// RenewPass extends an existing pass to one month past the sale date
func (s *TicketingService) RenewPass(ctx context.Context, seller Seller, serial string, date *models.Date) (*models.SaleResponse, error) {
	saleDate := s.saleDate(date)

	pass, err := s.network.RenewPassOnStation(saleDate.Time, serial, seller.Station)
	if err != nil {
		return nil, err
	}
	return s.passSold(ctx, seller, models.SaleKindPassRenewal, pass, saleDate), nil
}

func (s *TicketingService) passSold(ctx context.Context, seller Seller, kind models.SaleKind, pass metro.Pass, saleDate models.Date) *models.SaleResponse {
	office, _ := s.network.FindStation(seller.Station)
	expiresOn := models.NewDate(pass.ExpiresOn)
	serial := pass.Serial
	price := s.network.Tariff().PassPrice

	if err := s.passes.Upsert(ctx, &models.PassRecord{Serial: serial, ExpiresOn: expiresOn}); err != nil {
		s.logger.WithError(err).WithField("serial", serial).Error("Failed to store pass")
	}

	sale := &models.Sale{
		Kind:       kind,
		Station:    office.Name(),
		PassSerial: &serial,
		Amount:     price,
		SaleDate:   saleDate,
		TerminalID: terminalRef(seller.TerminalID),
	}
	s.record(ctx, sale, &expiresOn)

	return &models.SaleResponse{
		SaleID:    sale.ID,
		Kind:      kind,
		Station:   sale.Station,
		Price:     price,
		SaleDate:  saleDate,
		Serial:    &serial,
		ExpiresOn: &expiresOn,
	}
}

// record journals a completed sale and publishes its event
func (s *TicketingService) record(ctx context.Context, sale *models.Sale, expiresOn *models.Date) {
	sale.ID = uuid.New()
	sale.CreatedAt = s.now().UTC()

	fields := logrus.Fields{
		"sale_id":   sale.ID.String(),
		"kind":      sale.Kind,
		"station":   sale.Station,
		"amount":    sale.Amount.String(),
		"sale_date": sale.SaleDate.String(),
	}

	if err := s.sales.Create(ctx, sale); err != nil {
		s.logger.WithError(err).WithFields(fields).Error("Failed to journal sale")
	}

	if err := s.publisher.PublishSale(ctx, events.NewSaleEvent(sale, expiresOn)); err != nil {
		s.logger.WithError(err).WithFields(fields).Warn("Failed to publish sale event")
	}

	s.logger.WithFields(fields).Info("Sale completed")
}

// CheckPass reports whether a pass is valid on a date, today when date is nil
func (s *TicketingService) CheckPass(serial string, date *models.Date) (*models.PassValidityResponse, error) {
	checkedOn := s.saleDate(date)

	pass, err := s.network.Pass(serial)
	if err != nil {
		return nil, err
	}
	return &models.PassValidityResponse{
		Serial:    pass.Serial,
		Valid:     pass.ValidAt(checkedOn.Time),
		ExpiresOn: models.NewDate(pass.ExpiresOn),
		CheckedOn: checkedOn,
	}, nil
}

// IncomeReport returns the network income per day
func (s *TicketingService) IncomeReport() *models.IncomeReportResponse {
	return incomeResponse(nil, s.network.IncomeReport())
}

// IncomeOn returns the network income of a single day
func (s *TicketingService) IncomeOn(date models.Date) decimal.Decimal {
	return s.network.TotalIncome()[metro.DateOf(date.Time)]
}

// StationIncome returns the income of one station office per day
func (s *TicketingService) StationIncome(name string) (*models.IncomeReportResponse, error) {
	station, err := s.network.FindStation(name)
	if err != nil {
		return nil, err
	}
	rows, err := s.network.StationIncome(station.Name())
	if err != nil {
		return nil, err
	}
	stationName := station.Name()
	return incomeResponse(&stationName, rows), nil
}

func incomeResponse(station *string, rows []metro.DailyIncome) *models.IncomeReportResponse {
	resp := &models.IncomeReportResponse{
		Station: station,
		Rows:    make([]models.IncomeRow, 0, len(rows)),
		Total:   decimal.Zero,
	}
	for _, row := range rows {
		resp.Rows = append(resp.Rows, models.IncomeRow{Date: models.NewDate(row.Date), Amount: row.Amount})
		resp.Total = resp.Total.Add(row.Amount)
	}
	return resp
}

// Restore loads stored passes and replays the sales journal into the station
// offices. It must run before the first sale.
func (s *TicketingService) Restore(ctx context.Context) error {
	passes, err := s.passes.ListAll(ctx)
	if err != nil {
		return fmt.Errorf("failed to load passes: %w", err)
	}
	for _, p := range passes {
		if err := s.network.RestorePass(metro.Pass{Serial: p.Serial, ExpiresOn: p.ExpiresOn.Time}); err != nil {
			return fmt.Errorf("failed to restore pass %s: %w", p.Serial, err)
		}
	}

	sales, err := s.sales.ListAll(ctx)
	if err != nil {
		return fmt.Errorf("failed to load sales journal: %w", err)
	}
	skipped := 0
	for _, sale := range sales {
		station, err := s.network.FindStation(sale.Station)
		if err != nil {
			// Station removed from the layout since the sale
			skipped++
			s.logger.WithFields(logrus.Fields{
				"sale_id": sale.ID.String(),
				"station": sale.Station,
			}).Warn("Skipping journaled sale of unknown station")
			continue
		}
		station.TicketOffice().Record(sale.SaleDate.Time, sale.Amount)
	}

	s.logger.WithFields(logrus.Fields{
		"passes":  len(passes),
		"sales":   len(sales) - skipped,
		"skipped": skipped,
	}).Info("Ticket offices restored")
	return nil
}

func terminalRef(id string) *string {
	if id == "" {
		return nil
	}
	return &id
}
