package app

import (
	"context"
	"time"

	"github.com/robfig/cron/v3"
	"go.uber.org/zap"

	"github.com/Mustagiz/Aleen/internal/pos"
)

var cronParser = cron.NewParser(
	cron.SecondOptional | cron.Minute | cron.Hour | cron.Dom | cron.Month | cron.Dow | cron.Descriptor,
)

func (a *Application) initJob() {
	loc, err := time.LoadLocation(a.appConfig.System.Location)
	if err != nil {
		loc = time.Local
	}
	a.sched = cron.New(cron.WithLocation(loc), cron.WithParser(cronParser))

	_, err = a.sched.AddFunc("@daily", func() {
		a.SchedLowStockReport()
	})
	if err != nil {
		zap.S().Errorf("init job error %s", err.Error())
	}

	a.sched.Start()
}

// SchedLowStockReport logs every product under the restock threshold so
// the owner sees a daily restock summary in the logs.
func (a *Application) SchedLowStockReport() {
	defer func() {
		if err := recover(); err != nil {
			zap.S().Error(err)
		}
	}()

	svc := pos.NewService(a.gormDB)
	items, err := svc.LowStockProducts(context.Background())
	if err != nil {
		zap.L().Error("low stock report failed", zap.Error(err))
		return
	}
	if len(items) == 0 {
		zap.L().Info("low stock report: all products sufficiently stocked")
		return
	}
	for _, p := range items {
		zap.L().Warn("low stock",
			zap.String("product", p.Name),
			zap.String("category", p.Category),
			zap.Int("stock", p.Stock))
	}
	zap.L().Info("low stock report complete", zap.Int("count", len(items)))
}
