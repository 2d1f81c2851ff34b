package client

import (
	"context"
	"time"

	"go.uber.org/zap"

	"github.com/apimgr/ipweather/src/metrics"
	"github.com/apimgr/ipweather/src/models"
	"github.com/apimgr/ipweather/src/services"
)

// Pipeline runs the three lookup stages in order. The first failure aborts
// the run and no partial snapshot is returned.
type Pipeline struct {
	IP       services.PublicIPResolver
	Location services.LocationResolver
	Weather  services.WeatherFetcher
	Metrics  *metrics.Run
	Logger   *zap.Logger
}

// Run resolves the public address, its location and the current weather there
func (p *Pipeline) Run(ctx context.Context) (models.Snapshot, error) {
	var snap models.Snapshot

	addr, err := runStage(p, services.StageIP, func() (models.PublicAddress, error) {
		return p.IP.ResolvePublicIP(ctx)
	})
	if err != nil {
		return snap, err
	}

	loc, err := runStage(p, services.StageGeolocation, func() (models.Location, error) {
		return p.Location.ResolveLocation(ctx, addr.IP)
	})
	if err != nil {
		return snap, err
	}

	report, err := runStage(p, services.StageWeather, func() (models.WeatherReport, error) {
		return p.Weather.FetchWeather(ctx, loc.Latitude, loc.Longitude)
	})
	if err != nil {
		return snap, err
	}

	return models.Snapshot{Address: addr, Location: loc, Weather: report}, nil
}

func runStage[T any](p *Pipeline, stage services.Stage, fn func() (T, error)) (T, error) {
	logger := p.logger().With(zap.String("stage", string(stage)))
	start := time.Now()
	logger.Debug("stage started")

	result, err := fn()
	elapsed := time.Since(start)

	kind := ""
	if err != nil {
		kind = services.ErrorKind(err)
		logger.Debug("stage failed", zap.Duration("duration", elapsed), zap.String("kind", kind), zap.Error(err))
	} else {
		logger.Debug("stage finished", zap.Duration("duration", elapsed))
	}
	if p.Metrics != nil {
		p.Metrics.ObserveStage(string(stage), elapsed, kind)
	}
	return result, err
}

func (p *Pipeline) logger() *zap.Logger {
	if p.Logger == nil {
		return zap.NewNop()
	}
	return p.Logger
}
