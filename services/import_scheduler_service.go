package services

import (
	"fmt"
	"log"

	"github.com/akshatsri47/credit-card-approval/utils"
	"github.com/robfig/cron/v3"
)

// ImportSchedulerService runs the bulk import on a cron schedule and mails
// the outcome to the ops address
type ImportSchedulerService struct {
	cron          *cron.Cron
	importService *ImportService
	email         *EmailService
}

// NewImportSchedulerService creates a new ImportSchedulerService instance
func NewImportSchedulerService(importService *ImportService, email *EmailService) *ImportSchedulerService {
	return &ImportSchedulerService{
		cron:          cron.New(cron.WithSeconds()),
		importService: importService,
		email:         email,
	}
}

// Start registers the import job and starts the scheduler
func (s *ImportSchedulerService) Start(spec string) error {
	if _, err := s.cron.AddFunc(spec, s.runImport); err != nil {
		return fmt.Errorf("register import job: %v", err)
	}
	s.cron.Start()
	log.Println("import scheduler started")
	return nil
}

// Stop stops the scheduler
func (s *ImportSchedulerService) Stop() {
	s.cron.Stop()
	log.Println("import scheduler stopped")
}

// RunNow executes the import immediately (manual trigger / IMPORT_ON_START)
func (s *ImportSchedulerService) RunNow() {
	s.runImport()
}

func (s *ImportSchedulerService) runImport() {
	log.Println("running data import")

	result, err := s.importService.Run()
	if err != nil {
		utils.LogError("data import failed: %v", err)
		utils.GetMetrics().RecordImport(0, 0, err)
		if mailErr := s.email.SendImportReport(0, 0, err); mailErr != nil {
			log.Printf("import report email failed: %v", mailErr)
		}
		return
	}

	utils.LogInfo("data import finished: %d customers, %d loans (%d skipped)",
		result.CustomersImported, result.LoansImported, result.LoansSkipped)
	utils.GetMetrics().RecordImport(result.CustomersImported, result.LoansImported, nil)

	if mailErr := s.email.SendImportReport(result.CustomersImported, result.LoansImported, nil); mailErr != nil {
		log.Printf("import report email failed: %v", mailErr)
	}
}
