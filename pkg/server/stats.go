package server

import (
	"os"

	"github.com/shirou/gopsutil/v4/disk"
	"github.com/shirou/gopsutil/v4/process"

	"github.com/abdhusiya/fileindex/internal/models"
)

// getSystemStats returns process statistics using gopsutil, plus disk
// usage for the scanned root directory. Failures degrade to zero values.
func (s *Server) getSystemStats() models.SystemStats {
	pid := int32(os.Getpid())
	proc, err := process.NewProcess(pid)
	if err != nil {
		s.logger.Warnf("Failed to get process info: %v", err)
		return models.SystemStats{}
	}

	cpuPercent, err := proc.CPUPercent()
	if err != nil {
		s.logger.Warnf("Failed to get CPU percent: %v", err)
		cpuPercent = 0.0
	}

	memInfo, err := proc.MemoryInfo()
	if err != nil {
		s.logger.Warnf("Failed to get memory info: %v", err)
		memInfo = &process.MemoryInfoStat{RSS: 0, VMS: 0}
	}

	memPercent, err := proc.MemoryPercent()
	if err != nil {
		s.logger.Warnf("Failed to get memory percent: %v", err)
		memPercent = 0.0
	}

	rootDir := s.config.Index.RootDir
	if rootDir == "" {
		rootDir = "/"
	}
	diskUsage, err := disk.Usage(rootDir)
	if err != nil {
		s.logger.Warnf("Failed to get disk usage: %v", err)
		diskUsage = &disk.UsageStat{}
	}

	return models.SystemStats{
		CPUPercent: cpuPercent,
		Memory: models.MemoryStats{
			RSS:     memInfo.RSS,
			VMS:     memInfo.VMS,
			Percent: memPercent,
		},
		Disk: models.DiskStats{
			Total:   diskUsage.Total,
			Used:    diskUsage.Used,
			Free:    diskUsage.Free,
			Percent: diskUsage.UsedPercent,
		},
	}
}
