package appconfig

import (
	"fmt"
	"io"
)

// ShowConfig prints the resolved configuration.
func ShowConfig(out io.Writer, file string, cfg Config) {
	if file == "" {
		fmt.Fprintln(out, "No config file loaded (using defaults).")
	} else {
		fmt.Fprintf(out, "Config file: %s\n\n", file)
	}

	fmt.Fprintln(out, "Current configuration:")
	fmt.Fprintf(out, "  Debug:           %v\n", cfg.Debug)
	fmt.Fprintf(out, "  Reports Dir:     %s\n", cfg.ReportsDirOrDefault())
	fmt.Fprintf(out, "  Language Map:    %s\n", cfg.LanguageMapLocation())
	fmt.Fprintf(out, "  Store Backend:   %s\n", cfg.StoreBackendOrDefault())
	if path := cfg.StorePathOrDefault(); path != "" {
		fmt.Fprintf(out, "  Store Path:      %s\n", path)
	}
	fmt.Fprintf(out, "  Page Size:       %d\n", cfg.PageSizeOrDefault())
	fmt.Fprintf(out, "  Request Timeout: %s\n", cfg.RequestTimeout())
	fmt.Fprintf(out, "  Log File:        %s\n", cfg.LogFilePath())
}
