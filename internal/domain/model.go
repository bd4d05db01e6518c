package domain

import "time"

// Core domain models. HTTP request/response shapes live in the http adapter;
// keep these decoupled from the wire.

// ProcessingStatus is the coarse state of a report's pass workflow.
type ProcessingStatus string

const (
	StatusPending        ProcessingStatus = "pending"
	StatusProcessing     ProcessingStatus = "processing"
	StatusAwaitingRetry  ProcessingStatus = "awaiting_retry"
	StatusFailed         ProcessingStatus = "failed"
	StatusPassesComplete ProcessingStatus = "passes_complete"
	StatusBlocked        ProcessingStatus = "blocked"
	StatusReady          ProcessingStatus = "ready"
)

// Company is the metadata captured when a report is opened.
type Company struct {
	Name     string `json:"name"`
	Industry string `json:"industry,omitempty"`
	NAICS    string `json:"naics,omitempty"`
	State    string `json:"state,omitempty"`
	Website  string `json:"website,omitempty"`
}

// ReportData is the assembled document content, section title to text.
type ReportData struct {
	Sections map[string]string `json:"sections"`
}

// Report is the aggregate the orchestrator owns while passes run.
type Report struct {
	ID                 string
	Company            Company
	ReportData         ReportData
	PassOutputs        PassOutputs
	CalculationResults *ValuationData
	Status             ProcessingStatus
	Message            string
	LastPassDurationMs int64
	ProcessingTimeMs   int64
	Version            int64
	CreatedAt          time.Time
	UpdatedAt          time.Time
}

// PassCommit is the set of fields one successful orchestrator step writes.
// It is applied only if the stored version still equals ExpectedVersion.
type PassCommit struct {
	ReportID        string
	ExpectedVersion int64
	Selector        PassSelector
	Result          PassResult
	ReportData      *ReportData
	Status          ProcessingStatus
	Message         string
	DurationMs      int64
}

// StatusUpdate records a status message without touching pass outputs.
type StatusUpdate struct {
	ReportID string
	Status   ProcessingStatus
	Message  string
}
