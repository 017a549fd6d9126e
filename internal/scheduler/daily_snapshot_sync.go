package scheduler

import (
	"context"
	"fmt"
	"sort"
	"sync"
	"time"

	"github.com/go-co-op/gocron"
	"github.com/vfg2006/sales-tracker-api/infrastructure/repository"
	"github.com/vfg2006/sales-tracker-api/internal/config"
	"github.com/vfg2006/sales-tracker-api/internal/domain"
	"github.com/vfg2006/sales-tracker-api/internal/usecases/aggregating"
	"github.com/vfg2006/sales-tracker-api/pkg/log"
	"github.com/vfg2006/sales-tracker-api/pkg/utils"
)

// DailySnapshotSyncConfig representa a configuração do agendador de resumos diários
type DailySnapshotSyncConfig struct {
	CronSchedule      string
	LookbackDays      int
	MaxConcurrentJobs int
	RetentionDays     int
	SyncEnabled       bool
}

// DailySnapshotSyncService recalcula e grava os resumos diários de vendas de cada usuário
type DailySnapshotSyncService struct {
	scheduler           *gocron.Scheduler
	config              DailySnapshotSyncConfig
	location            *time.Location
	saleRepo            repository.SaleRepository
	snapshotRepo        repository.DailySnapshotRepository
	now                 func() time.Time
	baseCtx             context.Context
	syncRunning         bool
	syncMutex           sync.Mutex
	lastSyncStartedAt   time.Time
	lastSyncCompletedAt time.Time
	lastSyncSnapshots   int
}

func NewDailySnapshotSyncService(
	saleRepo repository.SaleRepository,
	snapshotRepo repository.DailySnapshotRepository,
	appConfig *config.Config,
) *DailySnapshotSyncService {
	syncConfig := DailySnapshotSyncConfig{
		CronSchedule:      appConfig.DailySnapshotSync.CronSchedule,
		LookbackDays:      appConfig.DailySnapshotSync.LookbackDays,
		MaxConcurrentJobs: appConfig.DailySnapshotSync.MaxConcurrentJobs,
		RetentionDays:     appConfig.DailySnapshotSync.RetentionDays,
		SyncEnabled:       appConfig.DailySnapshotSync.Enabled,
	}

	if syncConfig.LookbackDays < 1 {
		syncConfig.LookbackDays = 1
	}
	if syncConfig.MaxConcurrentJobs < 1 {
		syncConfig.MaxConcurrentJobs = 1
	}

	location := appConfig.Location()

	log.L.WithFields(log.Fields{
		"job":                     "daily-snapshot",
		"snapshot_cron":           syncConfig.CronSchedule,
		"snapshot_lookback_days":  syncConfig.LookbackDays,
		"snapshot_max_concurrent": syncConfig.MaxConcurrentJobs,
		"snapshot_retention_days": syncConfig.RetentionDays,
		"snapshot_sync_enabled":   syncConfig.SyncEnabled,
		"snapshot_timezone":       location.String(),
	}).Info("Configuração do agendador de resumos diários carregada")

	return &DailySnapshotSyncService{
		scheduler:    gocron.NewScheduler(location),
		config:       syncConfig,
		location:     location,
		saleRepo:     saleRepo,
		snapshotRepo: snapshotRepo,
		now:          time.Now,
		baseCtx:      context.Background(),
	}
}

// Start agenda a sincronização; com o agendador desabilitado apenas a execução manual fica disponível
func (s *DailySnapshotSyncService) Start(ctx context.Context) error {
	s.syncMutex.Lock()
	s.baseCtx = ctx
	s.syncMutex.Unlock()

	if !s.config.SyncEnabled {
		log.L.WithField("job", "daily-snapshot").Info("Sincronização de resumos diários desabilitada por configuração")
		return nil
	}

	_, err := s.scheduler.Cron(s.config.CronSchedule).Do(s.syncAllSnapshots)
	if err != nil {
		return fmt.Errorf("erro ao agendar sincronização de resumos diários: %w", err)
	}

	s.scheduler.StartAsync()

	go func() {
		<-ctx.Done()
		log.L.WithField("job", "daily-snapshot").Info("Parando agendador de resumos diários")
		s.scheduler.Stop()
	}()

	return nil
}

func (s *DailySnapshotSyncService) tryAcquire() bool {
	s.syncMutex.Lock()
	defer s.syncMutex.Unlock()

	if s.syncRunning {
		return false
	}
	s.syncRunning = true
	s.lastSyncStartedAt = s.now()
	return true
}

// runContext deriva o contexto de cada execução do contexto recebido em Start
func (s *DailySnapshotSyncService) runContext() context.Context {
	s.syncMutex.Lock()
	defer s.syncMutex.Unlock()

	base := s.baseCtx
	if base == nil {
		base = context.Background()
	}

	ctx, _ := log.WithCorrelationID(base)
	return ctx
}

func (s *DailySnapshotSyncService) release(saved int) {
	s.syncMutex.Lock()
	defer s.syncMutex.Unlock()

	s.syncRunning = false
	s.lastSyncCompletedAt = s.now()
	s.lastSyncSnapshots = saved
}

func (s *DailySnapshotSyncService) syncAllSnapshots() {
	if !s.tryAcquire() {
		log.L.WithField("job", "daily-snapshot").Info("Sincronização de resumos diários já em andamento, ignorando")
		return
	}

	ctx := s.runContext()
	saved := s.runSync(ctx)
	s.release(saved)
}

// TriggerManualSync dispara a sincronização em segundo plano. Retorna false se já houver uma em andamento.
func (s *DailySnapshotSyncService) TriggerManualSync() bool {
	if !s.tryAcquire() {
		log.L.WithField("job", "daily-snapshot").Info("Sincronização de resumos diários já em andamento, ignorando solicitação manual")
		return false
	}

	ctx := s.runContext()
	go func() {
		saved := s.runSync(ctx)
		s.release(saved)
	}()

	return true
}

// runSync processa a janela de dias e retorna quantos resumos foram gravados
func (s *DailySnapshotSyncService) runSync(ctx context.Context) int {
	startTime := time.Now()
	start, end := s.window()
	logger := log.ForContext(ctx).WithField("job", "daily-snapshot")

	logger.WithFields(log.Fields{
		"snapshot_start_date": start.Format(time.DateOnly),
		"snapshot_end_date":   end.Format(time.DateOnly),
	}).Info("Iniciando sincronização de resumos diários")

	userIDs, err := s.saleRepo.ListUserIDsWithSales(ctx, start, end.AddDate(0, 0, 1))
	if err != nil {
		logger.WithError(err).Error("Erro ao buscar usuários com vendas")
		return 0
	}

	saved := 0
	if len(userIDs) == 0 {
		logger.Info("Nenhuma venda no período, nada a sincronizar")
	} else {
		saved = s.processUsers(ctx, userIDs, start, end)
	}

	if ctx.Err() == nil {
		s.applyRetention(ctx)
	}

	logger.WithFields(log.Fields{
		"duration":          time.Since(startTime).String(),
		"snapshot_users":    len(userIDs),
		"snapshot_saved":    saved,
		"snapshot_lookback": s.config.LookbackDays,
	}).Info("Sincronização de resumos diários concluída")

	return saved
}

// window retorna o primeiro e o último dia (inclusivo) a processar, terminando hoje
func (s *DailySnapshotSyncService) window() (time.Time, time.Time) {
	end := utils.StartOfDay(s.now().In(s.location))
	start := end.AddDate(0, 0, -(s.config.LookbackDays - 1))
	return start, end
}

func (s *DailySnapshotSyncService) processUsers(ctx context.Context, userIDs []int, start, end time.Time) int {
	semaphore := make(chan struct{}, s.config.MaxConcurrentJobs)
	var wg sync.WaitGroup
	var mu sync.Mutex
	saved := 0

	for _, userID := range userIDs {
		if ctx.Err() != nil {
			log.ForContext(ctx).WithField("job", "daily-snapshot").Warn("Sincronização interrompida, usuários restantes ignorados")
			break
		}

		wg.Add(1)
		semaphore <- struct{}{}

		go func(userID int) {
			defer func() {
				<-semaphore
				wg.Done()
			}()

			n := s.processUser(ctx, userID, start, end)

			mu.Lock()
			saved += n
			mu.Unlock()
		}(userID)
	}

	wg.Wait()
	return saved
}

// processUser grava um resumo por dia com vendas do usuário dentro da janela
func (s *DailySnapshotSyncService) processUser(ctx context.Context, userID int, start, end time.Time) int {
	logger := log.ForContext(ctx).WithField("user_id", userID)

	sales, err := s.saleRepo.ListByUser(ctx, userID, domain.SaleFilter{StartDate: &start, EndDate: &end})
	if err != nil {
		logger.WithError(err).Error("Erro ao buscar vendas do usuário para o resumo diário")
		return 0
	}

	snapshots := s.buildSnapshots(userID, sales)

	saved := 0
	for _, snapshot := range snapshots {
		if err := s.snapshotRepo.SaveOrUpdate(ctx, snapshot); err != nil {
			logger.WithFields(log.Fields{
				"date":  snapshot.Date.Format(time.DateOnly),
				"error": err.Error(),
			}).Error("Erro ao salvar resumo diário")
			continue
		}
		saved++
	}

	logger.WithField("snapshot_saved", saved).Debug("Resumos diários do usuário gravados")
	return saved
}

// buildSnapshots separa as vendas por dia do calendário no fuso configurado e calcula cada resumo
func (s *DailySnapshotSyncService) buildSnapshots(userID int, sales []*domain.Sale) []*domain.DailySnapshot {
	byDay := make(map[time.Time][]*domain.Sale)
	for _, sale := range sales {
		if sale == nil {
			continue
		}
		sale.Date = sale.Date.In(s.location)
		day := utils.StartOfDay(sale.Date)
		byDay[day] = append(byDay[day], sale)
	}

	snapshots := make([]*domain.DailySnapshot, 0, len(byDay))
	for day, daySales := range byDay {
		snapshot := &domain.DailySnapshot{
			UserID:     userID,
			Date:       day,
			Statistics: aggregating.ComputeStatistics(daySales),
			Customers:  []string{},
		}

		for _, summary := range aggregating.GroupByDay(daySales) {
			snapshot.TotalQuantity += summary.TotalQuantity
			snapshot.Customers = append(snapshot.Customers, summary.Customers...)
		}

		snapshots = append(snapshots, snapshot)
	}

	sort.Slice(snapshots, func(i, j int) bool {
		return snapshots[i].Date.Before(snapshots[j].Date)
	})

	return snapshots
}

func (s *DailySnapshotSyncService) applyRetention(ctx context.Context) {
	if s.config.RetentionDays <= 0 {
		return
	}

	removed, err := s.snapshotRepo.DeleteOlderThan(ctx, s.config.RetentionDays)
	if err != nil {
		log.ForContext(ctx).WithError(err).Error("Erro ao aplicar retenção dos resumos diários")
		return
	}

	if removed > 0 {
		log.ForContext(ctx).WithFields(log.Fields{
			"snapshot_removed":        removed,
			"snapshot_retention_days": s.config.RetentionDays,
		}).Info("Resumos diários antigos removidos")
	}
}

// GetStatus retorna o status atual do agendador
func (s *DailySnapshotSyncService) GetStatus() map[string]any {
	s.syncMutex.Lock()
	defer s.syncMutex.Unlock()

	retention := "dados mantidos permanentemente"
	if s.config.RetentionDays > 0 {
		retention = fmt.Sprintf("%d dias", s.config.RetentionDays)
	}

	return map[string]any{
		"sync_enabled":           s.config.SyncEnabled,
		"sync_cron":              s.config.CronSchedule,
		"sync_lookback_days":     s.config.LookbackDays,
		"sync_max_concurrent":    s.config.MaxConcurrentJobs,
		"sync_running":           s.syncRunning,
		"retention_policy":       retention,
		"last_sync_started_at":   s.lastSyncStartedAt,
		"last_sync_completed_at": s.lastSyncCompletedAt,
		"last_sync_snapshots":    s.lastSyncSnapshots,
	}
}
