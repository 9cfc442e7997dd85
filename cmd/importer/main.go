// Command importer loads a legacy CRM export (JSON dumps of deals, clients,
// users, commissions and catalogs) into MongoDB. Runs are idempotent:
// catalog entities, clients and users dedup on their natural keys, so a
// re-run never duplicates them.
package main

import (
	"context"
	"flag"
	"log"
	"os"

	"github.com/joho/godotenv"

	"github.com/Abdullah4Jovera/crm_backend/config"
	"github.com/Abdullah4Jovera/crm_backend/importer"
	"github.com/Abdullah4Jovera/crm_backend/repositories"
)

func main() {
	if err := godotenv.Load(); err != nil {
		log.Println("Warning: .env file not found")
	}

	dir := flag.String("data", "", "directory containing the legacy JSON export")
	flag.Parse()

	if *dir == "" {
		*dir = os.Getenv("LEGACY_DATA_DIR")
	}
	if *dir == "" {
		log.Fatal("data directory is required: pass -data or set LEGACY_DATA_DIR")
	}

	logger := log.New(os.Stdout, "[IMPORT] ", log.LstdFlags)

	data, err := importer.LoadLegacyData(*dir)
	if err != nil {
		logger.Fatalf("loading legacy data: %v", err)
	}
	logger.Printf("loaded export: %d deals, %d clients, %d users, %d commissions",
		len(data.Deals), len(data.Clients), len(data.Users), len(data.ServiceCommissions))

	client := config.ConnectDB()
	defer client.Disconnect(context.Background())
	db := config.GetDatabase(client)

	store := repositories.NewImportStore(db)
	assembler := importer.NewAssembler(store, logger)

	report, err := assembler.Run(context.Background(), data)
	if err != nil {
		logger.Fatalf("import run failed: %v", err)
	}

	logger.Printf("run %s finished in %s", report.RunID, report.FinishedAt.Sub(report.StartedAt))
	logger.Printf("deals: %d total, %d created, %d skipped signed, %d failed",
		report.DealsTotal, report.DealsCreated, report.SkippedSigned, report.Failed)
	logger.Printf("commissions missing on %d deals; %d activity logs written",
		report.MissingCommission, report.ActivityLogs)
	if len(report.MissingCommissionDeals) > 0 {
		logger.Printf("deals without commissions: %v", report.MissingCommissionDeals)
	}
}
