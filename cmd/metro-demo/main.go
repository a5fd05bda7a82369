package main

import (
	"flag"
	"fmt"
	"log"
	"time"

	"github.com/smarttransit/metro-ticketing/internal/config"
	"github.com/smarttransit/metro-ticketing/internal/metro"
	"github.com/smarttransit/metro-ticketing/internal/services"
)

const dateLayout = "02.01.2006"

func main() {
	layoutPath := flag.String("layout", "configs/perm.yml", "network layout file")
	flag.Parse()

	layout, err := config.LoadLayout(*layoutPath)
	if err != nil {
		log.Fatalf("Failed to load layout: %v", err)
	}
	network, err := services.BuildNetwork(layout)
	if err != nil {
		log.Fatalf("Failed to build network: %v", err)
	}

	fmt.Println(network)

	hops, err := network.DistanceByName("Sportivnaya", "Sobornaya")
	must(err)
	fmt.Printf("Sportivnaya -> Sobornaya: %d stages\n", hops)

	first := day(2024, time.March, 1)
	second := day(2024, time.March, 2)

	price, err := network.SellTicketOnStation(first, "Sportivnaya", "Sportivnaya", "Sobornaya")
	must(err)
	fmt.Printf("%s ticket Sportivnaya -> Sobornaya: %s\n", first.Format(dateLayout), price)

	price, err = network.SellTicketOnStation(second, "Perm1", "Perm1", "Perm2")
	must(err)
	fmt.Printf("%s ticket Perm1 -> Perm2: %s\n", second.Format(dateLayout), price)

	pass, err := network.SellPassOnStation(first, "Perm1")
	must(err)
	fmt.Printf("%s pass %s valid until %s\n", first.Format(dateLayout), pass.Serial, pass.ExpiresOn.Format(dateLayout))

	other, err := network.SellPassOnStation(second, "Sobornaya")
	must(err)
	fmt.Printf("%s pass %s valid until %s\n", second.Format(dateLayout), other.Serial, other.ExpiresOn.Format(dateLayout))

	check := day(2024, time.April, 1)
	valid, err := network.IsPassValid(pass.Serial, check)
	must(err)
	fmt.Printf("pass %s valid on %s: %t\n", pass.Serial, check.Format(dateLayout), valid)

	renewed, err := network.RenewPassOnStation(check, pass.Serial, "Perm2")
	must(err)
	fmt.Printf("%s pass %s renewed until %s\n", check.Format(dateLayout), renewed.Serial, renewed.ExpiresOn.Format(dateLayout))

	fmt.Println("Income:")
	for _, row := range network.IncomeReport() {
		fmt.Printf("%s - %s\n", row.Date.Format(dateLayout), row.Amount.StringFixed(2))
	}
}

func day(y int, m time.Month, d int) time.Time {
	return time.Date(y, m, d, 0, 0, 0, 0, time.UTC)
}

func must(err error) {
	if err != nil {
		log.Fatalf("%s: %v", metro.KindOf(err), err)
	}
}
