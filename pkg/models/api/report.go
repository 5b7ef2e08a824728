package api

// PeriodPayload is the wire form of an inclusive date range (YYYY-MM-DD).
type PeriodPayload struct {
	StartDate string `json:"startDate"`
	EndDate   string `json:"endDate"`
}

// GenerateRequest is the body of POST /api/v1/reports/generate.
type GenerateRequest struct {
	Reports  []string                   `json:"reports"`
	Period   PeriodPayload              `json:"period"`
	Sections map[string]map[string]bool `json:"sections,omitempty"`
	Preview  bool                       `json:"preview,omitempty"`
}

// DownloadRequest is the body of POST /api/v1/reports/download.
type DownloadRequest struct {
	GenerateRequest
	Format string `json:"format"`
}

// Envelope is the JSON response wrapper shared by the report endpoints.
type Envelope struct {
	Success bool   `json:"success"`
	Data    any    `json:"data,omitempty"`
	Message string `json:"message,omitempty"`
}

// PreviewData mirrors the four preview counters on the wire.
type PreviewData struct {
	TotalAnimals int `json:"totalAnimals"`
	Births       int `json:"births"`
	Deaths       int `json:"deaths"`
	Sales        int `json:"sales"`
}
