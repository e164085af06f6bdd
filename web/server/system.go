package server

import (
	"net/http"
	"runtime"

	"github.com/labstack/echo/v4"
	"github.com/shirou/gopsutil/cpu"
	"github.com/shirou/gopsutil/mem"
)

// SystemInfo reports the host the renderer runs on. The preview page
// shows it in the header so render times can be read in context.
type SystemInfo struct {
	CPUModel    string `json:"cpuModel"`
	Cores       int    `json:"cores"`
	MemoryTotal uint64 `json:"memoryTotal"`
	MemoryUsed  uint64 `json:"memoryUsed"`
	Goroutines  int    `json:"goroutines"`
}

// handleSystem reports CPU, memory and goroutine counts. Probe failures
// leave the affected fields zero rather than failing the request.
func (s *Server) handleSystem(c echo.Context) error {
	info := SystemInfo{
		Cores:      runtime.NumCPU(),
		Goroutines: runtime.NumGoroutine(),
	}

	if cpuInfo, err := cpu.Info(); err == nil && len(cpuInfo) > 0 {
		info.CPUModel = cpuInfo[0].ModelName
	} else if err != nil {
		logger.Debugf("cpu probe failed: %v", err)
	}

	if memInfo, err := mem.VirtualMemory(); err == nil {
		info.MemoryTotal = memInfo.Total
		info.MemoryUsed = memInfo.Used
	} else {
		logger.Debugf("memory probe failed: %v", err)
	}

	return c.JSON(http.StatusOK, info)
}
