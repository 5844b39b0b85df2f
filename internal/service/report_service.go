package service

import (
	"context"
	"fmt"
	"os"
	"sync"
	"time"

	"github.com/google/uuid"
	"go.uber.org/zap"

	"github.com/edusys-app/edusys-api/internal/models"
	"github.com/edusys-app/edusys-api/internal/store"
	"github.com/edusys-app/edusys-api/pkg/config"
	appErrors "github.com/edusys-app/edusys-api/pkg/errors"
	"github.com/edusys-app/edusys-api/pkg/export"
	"github.com/edusys-app/edusys-api/pkg/jobs"
	filestore "github.com/edusys-app/edusys-api/pkg/storage"
)

// ReportService generates PDF and CSV reports asynchronously. Requests
// are queued, rendered by a worker pool, written to local storage and
// served through signed download tokens.
type ReportService struct {
	store   *store.Store
	files   *filestore.LocalStorage
	signer  *filestore.SignedURLSigner
	logger  *zap.Logger
	clock   Clock
	cleanup time.Duration
	ttl     time.Duration

	queue *jobs.Queue

	mu       sync.RWMutex
	registry map[string]*models.ReportJob

	cancelCleanup context.CancelFunc
	wg            sync.WaitGroup
}

// NewReportService constructs the report pipeline.
func NewReportService(st *store.Store, files *filestore.LocalStorage, signer *filestore.SignedURLSigner, logger *zap.Logger, clock Clock, cfg config.ReportsConfig) *ReportService {
	if logger == nil {
		logger = zap.NewNop()
	}
	if clock == nil {
		clock = time.Now
	}
	svc := &ReportService{
		store:    st,
		files:    files,
		signer:   signer,
		logger:   logger,
		clock:    clock,
		cleanup:  cfg.CleanupInterval,
		ttl:      cfg.SignedURLTTL,
		registry: make(map[string]*models.ReportJob),
	}
	svc.queue = jobs.NewQueue("reports", svc.process, jobs.QueueConfig{
		Workers:    cfg.WorkerConcurrency,
		MaxRetries: cfg.WorkerRetries,
		Logger:     logger,
	})
	return svc
}

// Start launches the worker pool and the stale-file cleanup loop.
func (s *ReportService) Start(ctx context.Context) {
	s.queue.Start(ctx)

	ctx, s.cancelCleanup = context.WithCancel(ctx)
	s.wg.Add(1)
	go func() {
		defer s.wg.Done()
		interval := s.cleanup
		if interval <= 0 {
			interval = time.Hour
		}
		ticker := time.NewTicker(interval)
		defer ticker.Stop()
		for {
			select {
			case <-ctx.Done():
				return
			case <-ticker.C:
				deleted, err := s.files.CleanupOlderThan(s.ttl)
				if err != nil {
					s.logger.Warn("report cleanup failed", zap.Error(err))
					continue
				}
				if len(deleted) > 0 {
					s.logger.Info("expired report files removed", zap.Int("count", len(deleted)))
				}
			}
		}
	}()
}

// Stop shuts down workers and the cleanup loop.
func (s *ReportService) Stop() {
	if s.cancelCleanup != nil {
		s.cancelCleanup()
	}
	s.queue.Stop()
	s.wg.Wait()
}

// Request queues a new report generation job.
func (s *ReportService) Request(_ context.Context, typ models.ReportType, format models.ReportFormat, recordID string) (*models.ReportJob, error) {
	if !typ.Valid() {
		return nil, appErrors.Clone(appErrors.ErrValidation, "unknown report type")
	}
	if format == "" {
		format = models.FormatPDF
	}
	if format != models.FormatPDF && format != models.FormatCSV {
		return nil, appErrors.Clone(appErrors.ErrValidation, "unknown report format")
	}
	if format == models.FormatCSV && typ == models.ReportFull {
		return nil, appErrors.Clone(appErrors.ErrValidation, "full backup report is only available as pdf")
	}

	job := &models.ReportJob{
		ID:          uuid.NewString(),
		Type:        typ,
		Format:      format,
		RecordID:    recordID,
		Status:      models.ReportQueued,
		RequestedAt: s.clock(),
	}
	s.mu.Lock()
	s.registry[job.ID] = job
	s.mu.Unlock()

	if err := s.queue.Enqueue(jobs.Job{ID: job.ID, Type: string(typ)}); err != nil {
		s.fail(job.ID, err)
		return nil, appErrors.Wrap(err, appErrors.ErrInternal.Code, appErrors.ErrInternal.Status, "failed to queue report")
	}
	return s.snapshot(job.ID), nil
}

// Get returns the current state of a report job.
func (s *ReportService) Get(id string) (*models.ReportJob, error) {
	if job := s.snapshot(id); job != nil {
		return job, nil
	}
	return nil, appErrors.Clone(appErrors.ErrNotFound, "report job not found")
}

// Download validates a signed token and opens the report file.
func (s *ReportService) Download(token string) (*os.File, string, error) {
	jobID, relPath, _, err := s.signer.Parse(token)
	if err != nil {
		return nil, "", appErrors.Wrap(err, appErrors.ErrValidation.Code, appErrors.ErrValidation.Status, "invalid download token")
	}
	job := s.snapshot(jobID)
	if job == nil || job.Status != models.ReportCompleted {
		return nil, "", appErrors.Clone(appErrors.ErrNotFound, "report not available")
	}
	file, err := s.files.Open(relPath)
	if err != nil {
		return nil, "", appErrors.Wrap(err, appErrors.ErrNotFound.Code, appErrors.ErrNotFound.Status, "report file missing")
	}
	return file, job.FileName, nil
}

func (s *ReportService) process(ctx context.Context, qj jobs.Job) error {
	s.setStatus(qj.ID, models.ReportProcessing)

	job := s.snapshot(qj.ID)
	if job == nil {
		return fmt.Errorf("report job %s missing from registry", qj.ID)
	}

	data, err := s.render(ctx, job)
	if err != nil {
		s.fail(job.ID, err)
		return err
	}

	relPath := fmt.Sprintf("reports/%s.%s", job.ID, job.Format)
	if _, err := s.files.Save(relPath, data); err != nil {
		s.fail(job.ID, err)
		return err
	}

	token, _, err := s.signer.Generate(job.ID, relPath)
	if err != nil {
		s.fail(job.ID, err)
		return err
	}

	now := s.clock()
	s.mu.Lock()
	if j, ok := s.registry[job.ID]; ok {
		j.Status = models.ReportCompleted
		j.FileName = fmt.Sprintf("relatorio_%s_%s.%s", job.Type, now.Format("2006-01-02"), job.Format)
		j.DownloadURL = "/api/v1/reports/download?token=" + token
		j.CompletedAt = &now
	}
	s.mu.Unlock()

	s.logger.Info("report generated", zap.String("job_id", job.ID), zap.String("type", string(job.Type)), zap.String("format", string(job.Format)))
	return nil
}

func (s *ReportService) render(ctx context.Context, job *models.ReportJob) ([]byte, error) {
	switch job.Format {
	case models.FormatCSV:
		dataset, err := s.dataset(ctx, job.Type)
		if err != nil {
			return nil, err
		}
		return export.CSV(dataset)
	default:
		return s.renderPDF(ctx, job)
	}
}

func (s *ReportService) renderPDF(ctx context.Context, job *models.ReportJob) ([]byte, error) {
	doc := export.NewPDFDocument(pdfTitle(job.Type), s.clock())
	switch job.Type {
	case models.ReportTeachers:
		teachers, err := s.selectTeachers(ctx, job.RecordID)
		if err != nil {
			return nil, err
		}
		s.writeTeachers(doc, teachers)
	case models.ReportStudents:
		students, err := s.selectStudents(ctx, job.RecordID)
		if err != nil {
			return nil, err
		}
		s.writeStudents(doc, students)
	case models.ReportEvents:
		s.writeEvents(doc, s.store.Events(ctx))
	case models.ReportFull:
		s.writeTeachers(doc, s.store.Teachers(ctx))
		s.writeStudents(doc, s.store.Students(ctx))
		s.writeEvents(doc, s.store.Events(ctx))
	}
	return doc.Bytes()
}

func (s *ReportService) selectTeachers(ctx context.Context, recordID string) ([]models.Teacher, error) {
	teachers := s.store.Teachers(ctx)
	if recordID == "" {
		return teachers, nil
	}
	for _, t := range teachers {
		if t.ID == recordID {
			return []models.Teacher{t}, nil
		}
	}
	return nil, appErrors.Clone(appErrors.ErrNotFound, "teacher not found")
}

func (s *ReportService) selectStudents(ctx context.Context, recordID string) ([]models.Student, error) {
	students := s.store.Students(ctx)
	if recordID == "" {
		return students, nil
	}
	for _, st := range students {
		if st.ID == recordID {
			return []models.Student{st}, nil
		}
	}
	return nil, appErrors.Clone(appErrors.ErrNotFound, "student not found")
}

func (s *ReportService) writeTeachers(doc *export.PDFDocument, teachers []models.Teacher) {
	for _, t := range teachers {
		doc.Heading(fmt.Sprintf("Professor: %s", t.Name))
		doc.Line("Título", t.Title)
		doc.Line("Estatutário", boolPT(t.Tenured))
		doc.Line("Valor da Hora/Aula", fmt.Sprintf("R$ %.2f", t.HourlyRate))
		if t.Notes != "" {
			doc.Line("Observações", t.Notes)
		}
		if len(t.Sessions) > 0 {
			rows := make([][]string, 0, len(t.Sessions))
			for _, session := range t.Sessions {
				rows = append(rows, []string{session.Subject, session.Date, session.Time, session.Location, fmt.Sprintf("%d", session.Hours)})
			}
			doc.Table([]string{"Matéria", "Data", "Horário", "Local", "Horas Aula"}, rows)
			doc.Totals(fmt.Sprintf("Total de Horas: %d", TotalHoursTaught(t)))
			doc.Totals(fmt.Sprintf("Total a Receber: R$ %.2f", TotalPaymentOwed(t)))
		}
		doc.Spacer()
	}
}

func (s *ReportService) writeStudents(doc *export.PDFDocument, students []models.Student) {
	for _, st := range students {
		doc.Heading(fmt.Sprintf("Aluno: %s", st.Name))
		doc.Line("Média Ponderada", fmt.Sprintf("%.2f", WeightedAverage(st.Grades)))
		doc.Line("Faltas", fmt.Sprintf("%d/%d (%.1f%%)", st.Absences, st.TotalClasses, AttendancePercentage(st)))
		doc.Line("Situação", string(DetermineStatus(st)))
		if len(st.Grades) > 0 {
			rows := make([][]string, 0, len(st.Grades))
			for _, g := range st.Grades {
				rows = append(rows, []string{g.Description, fmt.Sprintf("%.1f", g.Value), fmt.Sprintf("%.1f", g.Weight)})
			}
			doc.Table([]string{"Descrição", "Nota", "Peso"}, rows)
		}
		doc.Spacer()
	}
}

func (s *ReportService) writeEvents(doc *export.PDFDocument, events []models.Event) {
	doc.Heading("Eventos")
	rows := make([][]string, 0, len(events))
	for _, e := range events {
		rows = append(rows, []string{e.Title, e.Date, e.Time, string(e.Priority), boolPT(e.Notified)})
	}
	doc.Table([]string{"Título", "Data", "Hora", "Prioridade", "Notificado"}, rows)
}

func (s *ReportService) dataset(ctx context.Context, typ models.ReportType) (export.Dataset, error) {
	switch typ {
	case models.ReportTeachers:
		rows := [][]string{}
		for _, t := range s.store.Teachers(ctx) {
			rows = append(rows, []string{t.Name, t.Title, boolPT(t.Tenured), fmt.Sprintf("%.2f", t.HourlyRate), fmt.Sprintf("%d", TotalHoursTaught(t)), fmt.Sprintf("%.2f", TotalPaymentOwed(t))})
		}
		return export.Dataset{Headers: []string{"Nome", "Título", "Estatutário", "Valor Hora", "Total Horas", "Total a Receber"}, Rows: rows}, nil
	case models.ReportStudents:
		rows := [][]string{}
		for _, st := range s.store.Students(ctx) {
			rows = append(rows, []string{st.Name, fmt.Sprintf("%.2f", WeightedAverage(st.Grades)), fmt.Sprintf("%d", st.Absences), fmt.Sprintf("%d", st.TotalClasses), string(DetermineStatus(st))})
		}
		return export.Dataset{Headers: []string{"Nome", "Média", "Faltas", "Total Aulas", "Situação"}, Rows: rows}, nil
	case models.ReportEvents:
		rows := [][]string{}
		for _, e := range s.store.Events(ctx) {
			rows = append(rows, []string{e.Title, e.Date, e.Time, string(e.Priority), boolPT(e.Notified)})
		}
		return export.Dataset{Headers: []string{"Título", "Data", "Hora", "Prioridade", "Notificado"}, Rows: rows}, nil
	}
	return export.Dataset{}, appErrors.Clone(appErrors.ErrValidation, "dataset not available for report type")
}

func (s *ReportService) snapshot(id string) *models.ReportJob {
	s.mu.RLock()
	defer s.mu.RUnlock()
	job, ok := s.registry[id]
	if !ok {
		return nil
	}
	copied := *job
	return &copied
}

func (s *ReportService) setStatus(id string, status models.ReportJobStatus) {
	s.mu.Lock()
	defer s.mu.Unlock()
	if job, ok := s.registry[id]; ok {
		job.Status = status
	}
}

func (s *ReportService) fail(id string, err error) {
	s.mu.Lock()
	defer s.mu.Unlock()
	if job, ok := s.registry[id]; ok {
		job.Status = models.ReportFailed
		job.Error = err.Error()
	}
}

func pdfTitle(typ models.ReportType) string {
	switch typ {
	case models.ReportTeachers:
		return "Relatório de Professores"
	case models.ReportStudents:
		return "Relatório de Alunos"
	case models.ReportEvents:
		return "Relatório de Eventos"
	}
	return "Relatório Completo"
}

func boolPT(v bool) string {
	if v {
		return "Sim"
	}
	return "Não"
}
