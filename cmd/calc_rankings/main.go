// One-shot ranking aggregation, meant to be run from a cron job or by hand:
//
//	go run ./cmd/calc_rankings -type weekly
package main

import (
	"context"
	"flag"
	"log"
	"time"

	"github.com/joho/godotenv"

	"stamprally-backend/database"
	"stamprally-backend/ranking"
	"stamprally-backend/users"
)

func main() {
	periodType := flag.String("type", "both", "period type to aggregate: weekly, monthly or both")
	flag.Parse()

	if err := godotenv.Load(); err != nil {
		log.Println("No .env file found, continuing with system environment variables")
	}

	database.ConnectDB()

	svc := ranking.NewService(
		ranking.NewPostgresRepository(database.DB),
		users.NewPostgresRepository(database.DB),
	)

	ctx, cancel := context.WithTimeout(context.Background(), 5*time.Minute)
	defer cancel()

	var types []ranking.PeriodType
	switch *periodType {
	case "weekly":
		types = []ranking.PeriodType{ranking.Weekly}
	case "monthly":
		types = []ranking.PeriodType{ranking.Monthly}
	case "both":
		types = []ranking.PeriodType{ranking.Weekly, ranking.Monthly}
	default:
		log.Fatalf("unknown period type %q", *periodType)
	}

	for _, pt := range types {
		res, err := svc.Calculate(ctx, pt)
		if err != nil {
			log.Fatalf("Failed to calculate %s rankings: %v", pt, err)
		}
		log.Printf("Calculated %s rankings for %s: %d participants", res.PeriodType, res.Period, res.RankingCount)
	}
}
