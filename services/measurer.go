package services

import (
	"fmt"
	"log"

	"legal_editor_app_go/config"
	"legal_editor_app_go/services/pagination"
)

// NewMeasurer builds the content measurer selected by configuration. The
// returned close function releases the browser, if one was started.
// When Chrome cannot start, the heuristic measurer is used instead.
func NewMeasurer(cfg *config.Config) (pagination.Measurer, func(), error) {
	layout, err := pagination.LayoutForPageSize(cfg.PageSize)
	if err != nil {
		return nil, nil, fmt.Errorf("failed to resolve page layout: %w", err)
	}

	if cfg.Measurer == config.MeasurerChrome {
		chrome := pagination.NewChromeMeasurer(layout, cfg.ChromePath)
		if err := chrome.Start(); err != nil {
			log.Printf("[WARNING] Chrome measurer unavailable: %v. Falling back to heuristic measurement.", err)
		} else {
			return chrome, chrome.Close, nil
		}
	}

	log.Printf("Using heuristic content measurer (content width %dpx)", layout.ContentWidth())
	return pagination.NewHeuristicMeasurer(layout), func() {}, nil
}
