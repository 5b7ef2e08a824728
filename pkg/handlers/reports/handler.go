package reports

import (
	"encoding/json"
	"errors"
	"fmt"
	"net/http"
	"strconv"
	"time"

	"github.com/agro-tools/ranch-atlas/pkg/adapters"
	"github.com/agro-tools/ranch-atlas/pkg/models/api"
	"github.com/agro-tools/ranch-atlas/pkg/models/domain"
	"github.com/agro-tools/ranch-atlas/pkg/services/export"
	"github.com/agro-tools/ranch-atlas/pkg/services/report"
	"github.com/rs/zerolog"
)

type Handler struct {
	generator report.Generator
	workbook  *export.WorkbookRenderer
	document  *export.DocumentRenderer
}

func NewHandler(generator report.Generator) *Handler {
	return &Handler{
		generator: generator,
		workbook:  export.NewWorkbookRenderer(),
		document:  export.NewDocumentRenderer(),
	}
}

// Generate handles POST /api/v1/reports/generate. With preview=true it
// returns the four headline counters instead of the full payload.
func (h *Handler) Generate(w http.ResponseWriter, r *http.Request) {
	ctx := r.Context()
	logger := zerolog.Ctx(ctx)

	var body api.GenerateRequest
	if err := json.NewDecoder(r.Body).Decode(&body); err != nil {
		writeError(w, logger, http.StatusBadRequest, "Corpo da requisição inválido")
		return
	}

	req, err := parseRequest(body)
	if err != nil {
		writeError(w, logger, http.StatusBadRequest, err.Error())
		return
	}

	if body.Preview {
		preview, err := h.generator.Preview(ctx, req.Period)
		if err != nil {
			logger.Error().Err(err).Msg("failed to compute preview")
			writeError(w, logger, http.StatusInternalServerError, "Erro ao calcular prévia do relatório")
			return
		}
		writeJSON(w, logger, http.StatusOK, api.Envelope{
			Success: true,
			Data:    adapters.MapPreviewDomainToAPI(preview),
		})
		return
	}

	payload, err := h.generator.Generate(ctx, req)
	if err != nil {
		logger.Error().Err(err).Msg("failed to generate report payload")
		writeError(w, logger, http.StatusInternalServerError, "Erro ao gerar relatório")
		return
	}

	writeJSON(w, logger, http.StatusOK, api.Envelope{
		Success: true,
		Data:    adapters.MapPayloadDomainToAPI(payload),
		Message: "Relatório gerado com sucesso",
	})
}

// Download handles POST /api/v1/reports/download, returning the rendered
// artifact as a binary attachment.
func (h *Handler) Download(w http.ResponseWriter, r *http.Request) {
	ctx := r.Context()
	logger := zerolog.Ctx(ctx)

	var body api.DownloadRequest
	if err := json.NewDecoder(r.Body).Decode(&body); err != nil {
		writeError(w, logger, http.StatusBadRequest, "Corpo da requisição inválido")
		return
	}

	req, err := parseRequest(body.GenerateRequest)
	if err != nil {
		writeError(w, logger, http.StatusBadRequest, err.Error())
		return
	}

	format, err := export.NormalizeFormat(body.Format)
	if err != nil {
		if errors.Is(err, export.ErrUnsupportedFormat) {
			writeError(w, logger, http.StatusBadRequest, fmt.Sprintf("Formato não suportado: %s", body.Format))
			return
		}
		writeError(w, logger, http.StatusBadRequest, err.Error())
		return
	}

	payload, err := h.generator.Generate(ctx, req)
	if err != nil {
		logger.Error().Err(err).Msg("failed to generate report payload")
		writeError(w, logger, http.StatusInternalServerError, "Erro ao gerar relatório")
		return
	}

	var artifact *domain.Artifact
	switch format {
	case export.FormatDocument:
		artifact, err = h.document.Render(payload, req.Types, req.Period)
	default:
		artifact, err = h.workbook.Render(payload, req.Types, req.Period)
	}
	if err != nil {
		logger.Error().
			Err(err).
			Strs("reports", body.Reports).
			Str("format", string(format)).
			Str("period", req.Period.String()).
			Msg("failed to render report artifact")
		writeError(w, logger, http.StatusInternalServerError, err.Error())
		return
	}

	writeArtifact(w, artifact)
}

// ExportAnimalsDetailed handles GET /api/v1/export/animals-detailed.
func (h *Handler) ExportAnimalsDetailed(w http.ResponseWriter, r *http.Request) {
	ctx := r.Context()
	logger := zerolog.Ctx(ctx)

	list, err := h.generator.AnimalsDetailed(ctx)
	if err != nil {
		logger.Error().Err(err).Msg("failed to load detailed herd listing")
		writeError(w, logger, http.StatusInternalServerError, "Erro ao exportar animais")
		return
	}
	if len(list.Rows) == 0 {
		writeError(w, logger, http.StatusNotFound, "Nenhum animal encontrado")
		return
	}

	artifact, err := h.workbook.RenderHerdDetails(list)
	if err != nil {
		logger.Error().Err(err).Msg("failed to render herd export")
		writeError(w, logger, http.StatusInternalServerError, err.Error())
		return
	}

	writeArtifact(w, artifact)
}

// parseRequest validates the wire request and maps it onto the domain form.
// Validation failures never reach the aggregation stage.
func parseRequest(body api.GenerateRequest) (domain.ReportRequest, error) {
	if len(body.Reports) == 0 {
		return domain.ReportRequest{}, errors.New("Nenhum relatório selecionado")
	}
	if body.Period.StartDate == "" || body.Period.EndDate == "" {
		return domain.ReportRequest{}, errors.New("Período incompleto: informe data inicial e final")
	}

	start, err := time.Parse("2006-01-02", body.Period.StartDate)
	if err != nil {
		return domain.ReportRequest{}, fmt.Errorf("Data inicial inválida: %s", body.Period.StartDate)
	}
	end, err := time.Parse("2006-01-02", body.Period.EndDate)
	if err != nil {
		return domain.ReportRequest{}, fmt.Errorf("Data final inválida: %s", body.Period.EndDate)
	}

	period := domain.Period{Start: start, End: end}
	if !period.Valid() {
		return domain.ReportRequest{}, errors.New("Período inválido: data inicial após a data final")
	}

	types := make([]domain.ReportType, 0, len(body.Reports))
	for _, raw := range body.Reports {
		rt := domain.ReportType(raw)
		if !rt.Valid() {
			return domain.ReportRequest{}, fmt.Errorf("Tipo de relatório desconhecido: %s", raw)
		}
		types = append(types, rt)
	}

	toggles := make(domain.Toggles, len(body.Sections))
	for rawType, sections := range body.Sections {
		toggles[domain.ReportType(rawType)] = sections
	}

	return domain.ReportRequest{
		Types:    types,
		Period:   period,
		Sections: toggles,
	}, nil
}

func writeArtifact(w http.ResponseWriter, artifact *domain.Artifact) {
	w.Header().Set("Content-Type", artifact.MIME)
	w.Header().Set("Content-Disposition", fmt.Sprintf("attachment; filename=%s", artifact.Filename))
	w.Header().Set("Content-Length", strconv.Itoa(len(artifact.Bytes)))
	_, _ = w.Write(artifact.Bytes)
}

func writeJSON(w http.ResponseWriter, logger *zerolog.Logger, status int, body api.Envelope) {
	w.Header().Set("Content-Type", "application/json")
	w.WriteHeader(status)
	if err := json.NewEncoder(w).Encode(body); err != nil {
		logger.Error().Err(err).Msg("failed to encode response")
	}
}

func writeError(w http.ResponseWriter, logger *zerolog.Logger, status int, message string) {
	writeJSON(w, logger, status, api.Envelope{Success: false, Message: message})
}
