package handlers

import (
	"net/http"
	"strconv"

	"github.com/gin-gonic/gin"

	"github.com/bittenrichard/30-07/internal/dtos"
	"github.com/bittenrichard/30-07/internal/models"
	"github.com/bittenrichard/30-07/internal/services"
)

// JobHandler covers job posting CRUD.
type JobHandler struct {
	Store services.RowStore
}

func NewJobHandler(store services.RowStore) *JobHandler {
	return &JobHandler{Store: store}
}

// CreateJob is POST /api/jobs.
func (h *JobHandler) CreateJob(c *gin.Context) {
	var req dtos.CreateJobRequest
	if err := c.ShouldBindJSON(&req); err != nil || req.Titulo == "" || req.Descricao == "" || len(req.Usuario) == 0 {
		c.JSON(http.StatusBadRequest, gin.H{"error": "Título, descrição e ID do usuário são obrigatórios."})
		return
	}

	fields := map[string]any{
		"titulo":                  req.Titulo,
		"descricao":               req.Descricao,
		"Endereco":                req.Endereco,
		"requisitos_obrigatorios": req.RequisitosObrigatorios,
		"requisitos_desejaveis":   req.RequisitosDesejaveis,
		"usuario":                 req.Usuario,
	}
	var created models.JobRow
	if err := h.Store.CreateRow(c.Request.Context(), models.JobsTable, fields, &created); err != nil {
		c.JSON(http.StatusInternalServerError, gin.H{"error": "Não foi possível criar a vaga."})
		return
	}
	c.JSON(http.StatusCreated, created)
}

// UpdateJob is PATCH /api/jobs/:jobId. The body is passed through as-is,
// mirroring the store's own field names.
func (h *JobHandler) UpdateJob(c *gin.Context) {
	jobID, err := strconv.Atoi(c.Param("jobId"))
	if err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": "ID da vaga e dados para atualização são obrigatórios."})
		return
	}

	var fields map[string]any
	if err := c.ShouldBindJSON(&fields); err != nil || len(fields) == 0 {
		c.JSON(http.StatusBadRequest, gin.H{"error": "ID da vaga e dados para atualização são obrigatórios."})
		return
	}

	var updated models.JobRow
	if err := h.Store.UpdateRow(c.Request.Context(), models.JobsTable, jobID, fields, &updated); err != nil {
		c.JSON(http.StatusInternalServerError, gin.H{"error": "Não foi possível atualizar a vaga."})
		return
	}
	c.JSON(http.StatusOK, updated)
}

// DeleteJob is DELETE /api/jobs/:jobId.
func (h *JobHandler) DeleteJob(c *gin.Context) {
	jobID, err := strconv.Atoi(c.Param("jobId"))
	if err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": "ID da vaga é obrigatório."})
		return
	}

	if err := h.Store.DeleteRow(c.Request.Context(), models.JobsTable, jobID); err != nil {
		c.JSON(http.StatusInternalServerError, gin.H{"error": "Não foi possível excluir a vaga."})
		return
	}
	c.Status(http.StatusNoContent)
}
