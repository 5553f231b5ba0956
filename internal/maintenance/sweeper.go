// Package maintenance 周期性完整性巡查：
// 清理两端实体已消失的孤儿关联，并按索引重算标签使用计数。
package maintenance

import (
	"sync"
	"time"

	"github.com/papergraph/papergraph/internal/catalog"
	"github.com/papergraph/papergraph/pkg/logger"

	"github.com/robfig/cron/v3"
	"go.uber.org/zap"
)

// SweepStats 巡查运行时状态
type SweepStats struct {
	Status           string `json:"status"` // Idle, Running
	LastRunTime      string `json:"last_run"`
	NextRunTime      string `json:"next_run"`
	RunCount         int64  `json:"run_count"`
	OrphansRemoved   int    `json:"orphans_removed"`   // 最近一次清理的孤儿关联数
	CountersRepaired int    `json:"counters_repaired"` // 最近一次修复的计数器数
}

// Sweeper 定时触发完整性巡查
type Sweeper struct {
	cron    *cron.Cron
	catalog *catalog.Catalog
	entryID cron.EntryID

	mu    sync.RWMutex
	stats SweepStats
}

func NewSweeper(cat *catalog.Catalog) *Sweeper {
	return &Sweeper{
		cron:    cron.New(),
		catalog: cat,
		stats:   SweepStats{Status: "Idle"},
	}
}

// Schedule 按 cron 表达式注册巡查任务
func (s *Sweeper) Schedule(cronExpr string) error {
	id, err := s.cron.AddFunc(cronExpr, s.Run)
	if err != nil {
		return err
	}
	s.entryID = id
	return nil
}

func (s *Sweeper) Start() {
	s.cron.Start()
	s.refreshNextRun()
}

// Stop 停止定时调度并等待在途巡查结束，可在未 Start 时安全调用
func (s *Sweeper) Stop() {
	<-s.cron.Stop().Done()
}

// Run 执行一次巡查，定时触发与手动触发共用
func (s *Sweeper) Run() {
	s.mu.Lock()
	s.stats.Status = "Running"
	s.stats.LastRunTime = time.Now().Format("2006-01-02 15:04:05")
	s.stats.RunCount++
	s.mu.Unlock()

	report := s.catalog.RepairIntegrity()

	s.mu.Lock()
	s.stats.Status = "Idle"
	s.stats.OrphansRemoved = report.OrphansRemoved
	s.stats.CountersRepaired = report.CountersRepaired
	s.mu.Unlock()
	s.refreshNextRun()

	if report.OrphansRemoved > 0 || report.CountersRepaired > 0 {
		logger.Warn("完整性巡查发现并修复了偏差",
			zap.Int("orphans_removed", report.OrphansRemoved),
			zap.Int("counters_repaired", report.CountersRepaired))
	} else {
		logger.Debug("完整性巡查完成，无偏差")
	}
}

// Stats 当前巡查状态快照
func (s *Sweeper) Stats() SweepStats {
	s.mu.RLock()
	defer s.mu.RUnlock()
	return s.stats
}

func (s *Sweeper) refreshNextRun() {
	entry := s.cron.Entry(s.entryID)
	if entry.ID == 0 {
		return
	}
	s.mu.Lock()
	s.stats.NextRunTime = entry.Next.Format("2006-01-02 15:04:05")
	s.mu.Unlock()
}
