package app

import (
	"sync"
	"time"

	"github.com/shirou/gopsutil/v3/cpu"
	"github.com/shirou/gopsutil/v3/mem"
	"go.uber.org/zap"
)

// SystemUsage is a point-in-time host sample shown on the admin dashboard
type SystemUsage struct {
	CpuPercent float64   `json:"cpu_percent"`
	MemPercent float64   `json:"mem_percent"`
	MemUsedMB  uint64    `json:"mem_used_mb"`
	SampledAt  time.Time `json:"sampled_at"`
}

type SystemMonitor struct {
	mu   sync.RWMutex
	last SystemUsage
}

func NewSystemMonitor() *SystemMonitor {
	return &SystemMonitor{}
}

// Sample refreshes the cached usage snapshot
func (m *SystemMonitor) Sample() {
	usage := SystemUsage{SampledAt: time.Now()}

	if percents, err := cpu.Percent(0, false); err == nil && len(percents) > 0 {
		usage.CpuPercent = percents[0]
	} else if err != nil {
		zap.L().Debug("cpu sample failed", zap.Error(err))
	}

	if vm, err := mem.VirtualMemory(); err == nil {
		usage.MemPercent = vm.UsedPercent
		usage.MemUsedMB = vm.Used / 1024 / 1024
	} else {
		zap.L().Debug("memory sample failed", zap.Error(err))
	}

	m.mu.Lock()
	m.last = usage
	m.mu.Unlock()
}

// Last returns the most recent sample; zero value before the first run
func (m *SystemMonitor) Last() SystemUsage {
	m.mu.RLock()
	defer m.mu.RUnlock()
	return m.last
}
