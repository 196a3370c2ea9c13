// Package policy holds operational guards applied before accepting
// state changes.
package policy

import (
	"context"
	"fmt"

	"github.com/charmbracelet/log"
	"github.com/shirou/gopsutil/v3/disk"
	"github.com/snapvote/snapvote/internal/config"
)

// ErrDiskFull is returned when the photo volume is above the configured
// usage threshold and new uploads are declined.
var ErrDiskFull = fmt.Errorf("photo storage is above the configured disk usage threshold")

// DiskUsageGuard declines uploads when the volume holding the photo
// directory exceeds a usage threshold.
type DiskUsageGuard struct {
	cfg *config.DiskPolicyConfig
	dir string
}

func NewDiskUsageGuard(cfg *config.DiskPolicyConfig, photoDir string) *DiskUsageGuard {
	return &DiskUsageGuard{cfg: cfg, dir: photoDir}
}

// Check returns ErrDiskFull when the threshold is exceeded. A failure
// to read disk stats is logged and treated as passing, so a broken
// stats source never blocks the contest.
func (g *DiskUsageGuard) Check(ctx context.Context) error {
	if g.cfg == nil || !g.cfg.Enabled {
		return nil
	}

	usage, err := disk.UsageWithContext(ctx, g.dir)
	if err != nil {
		log.Warn("failed to read disk usage, skipping guard", "dir", g.dir, "error", err)
		return nil
	}

	if usage.UsedPercent >= g.cfg.MaxUsagePercent {
		log.Warn("disk usage threshold exceeded, declining upload",
			"dir", g.dir,
			"usedPercent", usage.UsedPercent,
			"threshold", g.cfg.MaxUsagePercent,
		)
		return ErrDiskFull
	}
	return nil
}
