package main

import (
	"context"
	"flag"
	"fmt"
	"os"
	"strings"
	"text/tabwriter"

	"github.com/jxdata/portal/internal/config"
	"github.com/jxdata/portal/internal/database"
	"github.com/jxdata/portal/internal/logger"
	"github.com/jxdata/portal/internal/repository"
)

func main() {
	limit := flag.Int("limit", 20, "Number of leads to show")
	flag.Parse()

	cfg := config.Load()
	log := logger.Setup(cfg.LogLevel, cfg.LogFormat)

	ctx := context.Background()

	pool, err := database.NewPostgresPool(ctx, cfg, log)
	if err != nil {
		log.Fatal().Err(err).Msg("Failed to connect to PostgreSQL")
	}
	defer pool.Close()

	leads, err := repository.NewLeadRepository(pool).ListRecent(ctx, *limit)
	if err != nil {
		log.Fatal().Err(err).Msg("Failed to list leads")
	}

	if len(leads) == 0 {
		fmt.Println("No leads yet.")
		return
	}

	w := tabwriter.NewWriter(os.Stdout, 0, 0, 2, ' ', 0)
	fmt.Fprintln(w, "CREATED\tNAME\tCOMPANY\tPHONE\tRECOMMENDATIONS")
	for _, l := range leads {
		fmt.Fprintf(w, "%s\t%s\t%s\t%s\t%s\n",
			l.CreatedAt.Local().Format("2006-01-02 15:04"),
			l.Name, l.Company, l.Phone,
			strings.Join(l.Recommendations, ","),
		)
	}
	w.Flush()
}
