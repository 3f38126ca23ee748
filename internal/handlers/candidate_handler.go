package handlers

import (
	"errors"
	"fmt"
	"net/http"
	"strconv"
	"strings"
	"time"

	"github.com/gin-gonic/gin"

	"github.com/bittenrichard/30-07/internal/dtos"
	"github.com/bittenrichard/30-07/internal/models"
	"github.com/bittenrichard/30-07/internal/services"
)

const maxResumeSize = 2 * 1024 * 1024

// CandidateHandler covers candidate status transitions, the aggregated
// jobs+candidates fetch, resume intake and AI analysis.
type CandidateHandler struct {
	Store    services.RowStore
	Status   *services.StatusService
	Analysis *services.AnalysisService
}

func NewCandidateHandler(store services.RowStore, status *services.StatusService, analysis *services.AnalysisService) *CandidateHandler {
	return &CandidateHandler{Store: store, Status: status, Analysis: analysis}
}

// UpdateStatus is PATCH /api/candidates/:candidateId/status.
func (h *CandidateHandler) UpdateStatus(c *gin.Context) {
	candidateID, err := strconv.Atoi(c.Param("candidateId"))
	if err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": "ID do candidato e status são obrigatórios."})
		return
	}

	var req dtos.UpdateStatusRequest
	if err := c.ShouldBindJSON(&req); err != nil || req.Status == "" {
		c.JSON(http.StatusBadRequest, gin.H{"error": "ID do candidato e status são obrigatórios."})
		return
	}

	updated, err := h.Status.Transition(c.Request.Context(), candidateID, req.Status)
	if err != nil {
		if errors.Is(err, services.ErrInvalidStatus) {
			c.JSON(http.StatusBadRequest, gin.H{"error": "Status inválido fornecido."})
			return
		}
		c.JSON(http.StatusInternalServerError, gin.H{"error": "Não foi possível atualizar o status do candidato."})
		return
	}
	c.JSON(http.StatusOK, updated)
}

// DataAll is GET /api/data/all/:userId, the aggregated, reconciled
// state the UI boots from.
func (h *CandidateHandler) DataAll(c *gin.Context) {
	userID, err := strconv.Atoi(c.Param("userId"))
	if err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": "ID do usuário é obrigatório."})
		return
	}
	ctx := c.Request.Context()

	var jobs []models.JobRow
	if err := h.Store.ListRows(ctx, models.JobsTable, "", &jobs); err != nil {
		c.JSON(http.StatusInternalServerError, gin.H{"error": "Falha ao carregar dados."})
		return
	}

	// Both intake tables, concatenated; the reconciler sorts out the
	// two job-reference shapes.
	var direct, whatsapp []models.CandidateRow
	if err := h.Store.ListRows(ctx, models.CandidatesTable, "", &direct); err != nil {
		c.JSON(http.StatusInternalServerError, gin.H{"error": "Falha ao carregar dados."})
		return
	}
	if err := h.Store.ListRows(ctx, models.WhatsAppCandidatesTable, "", &whatsapp); err != nil {
		c.JSON(http.StatusInternalServerError, gin.H{"error": "Falha ao carregar dados."})
		return
	}

	userJobs, candidates := services.Reconcile(jobs, append(direct, whatsapp...), userID)
	c.JSON(http.StatusOK, gin.H{"jobs": userJobs, "candidates": candidates})
}

// UploadCurriculums is POST /api/upload-curriculums (multipart array).
// Each file becomes a Triagem candidate linked to the given job.
func (h *CandidateHandler) UploadCurriculums(c *gin.Context) {
	jobID, jobErr := strconv.Atoi(c.PostForm("jobId"))
	userID, userErr := strconv.Atoi(c.PostForm("userId"))
	form, formErr := c.MultipartForm()
	if jobErr != nil || userErr != nil || formErr != nil || len(form.File["curriculumFiles"]) == 0 {
		c.JSON(http.StatusBadRequest, gin.H{"error": "Vaga, usuário e arquivos de currículo são obrigatórios."})
		return
	}
	files := form.File["curriculumFiles"]

	var created []models.CandidateRow
	for _, file := range files {
		if file.Size > maxResumeSize {
			c.JSON(http.StatusBadRequest, gin.H{
				"success": false,
				"message": fmt.Sprintf("O arquivo '%s' é muito grande. O limite é de 2MB.", file.Filename),
			})
			return
		}

		src, err := file.Open()
		if err != nil {
			c.JSON(http.StatusInternalServerError, gin.H{"success": false, "message": "Falha ao fazer upload dos currículos."})
			return
		}
		uploaded, err := h.Store.UploadFile(c.Request.Context(), file.Filename, file.Header.Get("Content-Type"), src)
		src.Close()
		if err != nil {
			c.JSON(http.StatusInternalServerError, gin.H{"success": false, "message": "Falha ao fazer upload dos currículos."})
			return
		}

		name := strings.SplitN(file.Filename, ".", 2)[0]
		if name == "" {
			name = "Novo Candidato"
		}
		fields := map[string]any{
			"nome":         name,
			"curriculo":    []map[string]string{{"name": uploaded.Name, "url": uploaded.URL}},
			"usuario":      []int{userID},
			"vaga":         []int{jobID},
			"score":        nil,
			"resumo_ia":    nil,
			"status":       string(models.StatusTriagem),
			"data_triagem": time.Now().Format("2006-01-02"),
		}
		var row models.CandidateRow
		if err := h.Store.CreateRow(c.Request.Context(), models.CandidatesTable, fields, &row); err != nil {
			c.JSON(http.StatusInternalServerError, gin.H{"success": false, "message": "Falha ao fazer upload dos currículos."})
			return
		}
		created = append(created, row)
	}

	c.JSON(http.StatusOK, gin.H{
		"success":       true,
		"message":       fmt.Sprintf("%d currículo(s) enviado(s) para análise!", len(files)),
		"newCandidates": created,
	})
}

// Analyze is POST /api/candidates/:candidateId/analyze. Unavailable when
// no AI key is configured.
func (h *CandidateHandler) Analyze(c *gin.Context) {
	if h.Analysis == nil {
		c.JSON(http.StatusServiceUnavailable, gin.H{"error": "Análise de currículo indisponível."})
		return
	}

	candidateID, err := strconv.Atoi(c.Param("candidateId"))
	if err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": "ID do candidato é obrigatório."})
		return
	}

	var req dtos.AnalyzeCandidateRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": "Texto do currículo é obrigatório."})
		return
	}

	updated, err := h.Analysis.AnalyzeCandidate(c.Request.Context(), candidateID, req.JobID, req.ResumeText)
	if err != nil {
		c.JSON(http.StatusInternalServerError, gin.H{"error": "Falha ao analisar o currículo."})
		return
	}
	c.JSON(http.StatusOK, gin.H{"success": true, "candidate": updated})
}
