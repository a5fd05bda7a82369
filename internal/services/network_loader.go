package services

import (
	"fmt"
	"time"

	"github.com/smarttransit/metro-ticketing/internal/config"
	"github.com/smarttransit/metro-ticketing/internal/metro"
)

// NetworkOptions turns the tariff settings into network options
func NetworkOptions(cfg config.NetworkConfig) []metro.Option {
	return []metro.Option{
		metro.WithTariff(metro.Tariff{
			BaseFare:  cfg.BaseFare,
			StageFare: cfg.StageFare,
			PassPrice: cfg.PassPrice,
		}),
		metro.WithPassCapacity(cfg.PassCapacity),
	}
}

// BuildNetwork creates a network from a layout. Lines are added in file order
// and stations in line order, so a transfer may name a station declared later.
func BuildNetwork(layout *config.NetworkLayout, opts ...metro.Option) (*metro.Network, error) {
	network := metro.NewNetwork(layout.City, opts...)

	for _, ll := range layout.Lines {
		color, err := metro.ParseLineColor(ll.Color)
		if err != nil {
			return nil, err
		}
		if err := network.AddLine(color); err != nil {
			return nil, err
		}

		for i, sl := range ll.Stations {
			transfers, err := transferTargets(sl.Transfers)
			if err != nil {
				return nil, fmt.Errorf("station %s: %w", sl.Name, err)
			}

			if i == 0 {
				if sl.TravelTime != "" {
					return nil, fmt.Errorf("%w: first station %s of line %s has a travel time",
						metro.ErrInvalidConstruction, sl.Name, color)
				}
				if err := network.AddFirstStation(color, sl.Name, transfers...); err != nil {
					return nil, err
				}
				continue
			}

			travelTime, err := time.ParseDuration(sl.TravelTime)
			if err != nil {
				return nil, fmt.Errorf("%w: station %s: travel time %q: %v",
					metro.ErrInvalidConstruction, sl.Name, sl.TravelTime, err)
			}
			if err := network.AddLastStation(color, sl.Name, travelTime, transfers...); err != nil {
				return nil, err
			}
		}
	}

	if err := network.Validate(); err != nil {
		return nil, err
	}
	return network, nil
}

func transferTargets(layouts []config.TransferLayout) ([]metro.TransferTarget, error) {
	targets := make([]metro.TransferTarget, 0, len(layouts))
	for _, tl := range layouts {
		color, err := metro.ParseLineColor(tl.Color)
		if err != nil {
			return nil, err
		}
		targets = append(targets, metro.TransferTarget{Color: color, Name: tl.Station})
	}
	return targets, nil
}
