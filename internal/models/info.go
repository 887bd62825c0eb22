package models

// ServerInfoResponse represents the preview server info response
type ServerInfoResponse struct {
	Uptime    float64     `json:"uptime"`
	Sections  []string    `json:"sections"`
	Resources SystemStats `json:"resources"`
}

// SystemStats represents process and host statistics
type SystemStats struct {
	CPUCount   int         `json:"cpu_count"`
	CPUPercent float64     `json:"cpu_percent"`
	Memory     MemoryStats `json:"memory"`
	Disk       DiskStats   `json:"disk"`
}

// MemoryStats represents memory usage statistics
type MemoryStats struct {
	RSS     uint64  `json:"rss"`     // Resident Set Size in bytes
	VMS     uint64  `json:"vms"`     // Virtual Memory Size in bytes
	Percent float32 `json:"percent"` // Memory usage percentage
}

// DiskStats represents disk usage statistics for the scanned root
type DiskStats struct {
	Total   uint64  `json:"total"`
	Used    uint64  `json:"used"`
	Free    uint64  `json:"free"`
	Percent float64 `json:"percent"`
}

// RegenerateResponse is returned after a manifest rebuild
type RegenerateResponse struct {
	Status      string `json:"status"`
	OutputFile  string `json:"output_file"`
	LastUpdated string `json:"lastUpdated"`
}
