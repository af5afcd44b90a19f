package app

import (
	"context"
	"os"
	"path/filepath"

	"github.com/robfig/cron/v3"
	"github.com/shirou/gopsutil/cpu"
	"github.com/shirou/gopsutil/mem"
	"go.uber.org/zap"

	"github.com/tilazone/tilazone/pkg/metrics"
)

// initJob registers the background maintenance jobs.
func (a *Application) initJob() {
	a.sched = cron.New()

	_, err := a.sched.AddFunc("@every 1m", a.jobEvictIdleCarts)
	if err != nil {
		zap.L().Error("failed to register cart eviction job", zap.Error(err))
	}

	_, err = a.sched.AddFunc("@every 30s", a.jobCollectSystemMetrics)
	if err != nil {
		zap.L().Error("failed to register metrics job", zap.Error(err))
	}

	_, err = a.sched.AddFunc("@hourly", a.jobSnapshotCatalog)
	if err != nil {
		zap.L().Error("failed to register catalog snapshot job", zap.Error(err))
	}

	a.sched.Start()
}

func (a *Application) jobEvictIdleCarts() {
	a.carts.EvictIdle()
	metrics.Gauge(metrics.MetricSessionCarts, float64(a.carts.Size()))
}

func (a *Application) jobCollectSystemMetrics() {
	if percents, err := cpu.Percent(0, false); err == nil && len(percents) > 0 {
		metrics.Gauge(metrics.MetricSystemCPUUse, percents[0])
	}
	if vm, err := mem.VirtualMemory(); err == nil {
		metrics.Gauge(metrics.MetricSystemMemUse, vm.UsedPercent)
	}
}

// jobSnapshotCatalog writes an hourly JSON snapshot of the catalog
// next to the data store.
func (a *Application) jobSnapshotCatalog() {
	products, err := a.catalog.Load(context.Background())
	if err != nil {
		zap.L().Error("catalog snapshot load failed", zap.Error(err))
		return
	}
	raw, err := json.MarshalIndent(products, "", "  ")
	if err != nil {
		zap.L().Error("catalog snapshot encode failed", zap.Error(err))
		return
	}
	path := filepath.Join(a.appConfig.GetDataDir(), "catalog-snapshot.json")
	if err := os.WriteFile(path, raw, 0o644); err != nil {
		zap.L().Error("catalog snapshot write failed", zap.String("path", path), zap.Error(err))
		return
	}
	zap.L().Debug("catalog snapshot written", zap.String("path", path), zap.Int("products", len(products)))
}
