package di

import (
	"go.uber.org/zap"

	"logpulse/infrastructure/config"
	"logpulse/internal/simulator"
)

// WatchSimulatorOverlay applies the overlay at path to sim and keeps applying
// it whenever the file changes. The caller stops the returned watcher.
func WatchSimulatorOverlay(path string, sim *simulator.Simulator, logger *zap.Logger) (*config.OverlayWatcher, error) {
	watcher, err := config.NewOverlayWatcher(path, logger)
	if err != nil {
		return nil, err
	}
	sim.ApplyOverlay(watcher.Current())
	watcher.OnChange(sim.ApplyOverlay)
	watcher.Start()
	return watcher, nil
}
