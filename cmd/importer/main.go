// Command importer loads the collected AH material exported from the shared
// spreadsheet into the apostilas queue.
package main

import (
	"flag"
	"fmt"
	"os"

	"github.com/labstack/gommon/log"

	"secretaria/cmd/internal/config"
	"secretaria/cmd/internal/domain/database"
	"secretaria/cmd/internal/domain/database/repository"
	"secretaria/cmd/internal/service"
	"secretaria/cmd/internal/utils"
	"secretaria/cmd/internal/utils/uid"
)

func main() {
	path := flag.String("arquivo", "", "planilha .xlsx exportada")
	sheet := flag.String("aba", "", "aba a importar (padrão: a primeira)")
	dryRun := flag.Bool("dry-run", false, "apenas valida, sem gravar")
	flag.Parse()

	if *path == "" {
		flag.Usage()
		os.Exit(2)
	}

	if err := config.LoadEnv(); err != nil {
		log.Fatal(err)
	}
	cfg := config.Load()

	if err := uid.Init(cfg.MachineID); err != nil {
		log.Fatal(err)
	}
	if err := utils.SetLocation(cfg.Timezone); err != nil {
		log.Fatal(err)
	}

	db, err := database.Init(&cfg.DB)
	if err != nil {
		log.Fatal(err)
	}

	f, err := os.Open(*path)
	if err != nil {
		log.Fatalf("failed to open %s: %v", *path, err)
	}
	defer f.Close()

	importer := service.NewImportService(
		repository.NewSchoolRepository(db),
		repository.NewAlunoRepository(db),
		repository.NewApostilaRepository(db),
	)

	report, err := importer.Import(f, service.ImportOptions{Sheet: *sheet, DryRun: *dryRun})
	if err != nil {
		log.Fatal(err)
	}

	fmt.Printf("aba %q: %d linhas, %d importadas, %d ignoradas\n", report.Sheet, report.Rows, report.Imported, len(report.Skipped))
	for _, s := range report.Skipped {
		fmt.Printf("  linha %d: %s\n", s.Row, s.Reason)
	}
	if report.DryRun {
		fmt.Println("dry-run: nada foi gravado")
	}
}
