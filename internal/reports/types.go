// internal/reports/types.go
package reports

import "time"

// Report is a single benchmark run over many implementations.
type Report struct {
	ID      string     `json:"id"`
	User    *string    `json:"user,omitempty"`
	Date    *time.Time `json:"date,omitempty"`
	CPU     *CPUInfo   `json:"cpu,omitempty"`
	OS      *OSInfo    `json:"os,omitempty"`
	Results []Result   `json:"results"`
}

// CPUInfo describes the machine the report was generated on.
type CPUInfo struct {
	Brand        string `json:"brand"`
	Cores        int    `json:"cores"`
	LogicalCores int    `json:"logicalCores"`
}

// OSInfo describes the operating system the report was generated on.
type OSInfo struct {
	Platform string `json:"platform"`
	Release  string `json:"release"`
	Arch     string `json:"arch"`
}

// Result is one solution's measurement within a report.
type Result struct {
	Implementation string  `json:"implementation"`
	Solution       string  `json:"solution"`
	Label          string  `json:"label"`
	Threads        int     `json:"threads"`
	Passes         int64   `json:"passes"`
	Duration       float64 `json:"duration"`
	Algorithm      string  `json:"algorithm"`
	Faithful       bool    `json:"faithful"`
	Bits           *int    `json:"bits,omitempty"`
}

// PassesPerSecond is the result's throughput.
func (r Result) PassesPerSecond() float64 {
	if r.Duration <= 0 {
		return 0
	}
	return float64(r.Passes) / r.Duration
}

// MultiThreaded reports whether the solution ran on more than one thread.
func (r Result) MultiThreaded() bool { return r.Threads > 1 }
