package models

import (
	"bytes"
	"encoding/json"
	"time"
)

// Baserow table identifiers. The backend owns no data of its own: every
// entity lives in one of these tables and every read re-fetches.
const (
	UsersTable              = "711"
	JobsTable               = "709"
	CandidatesTable         = "710"
	WhatsAppCandidatesTable = "712"
	SchedulesTable          = "713"
)

// Status is the fixed screening pipeline. Any status may move to any
// other; the pipeline validates membership, nothing else.
type Status string

const (
	StatusTriagem    Status = "Triagem"
	StatusEntrevista Status = "Entrevista"
	StatusAprovado   Status = "Aprovado"
	StatusReprovado  Status = "Reprovado"
)

func (s Status) Valid() bool {
	switch s {
	case StatusTriagem, StatusEntrevista, StatusAprovado, StatusReprovado:
		return true
	}
	return false
}

// RowLink is a Baserow link-row reference: the target row id plus its
// primary field value.
type RowLink struct {
	ID    int    `json:"id"`
	Value string `json:"value"`
}

// SelectOption is a Baserow single-select value.
type SelectOption struct {
	ID    int    `json:"id"`
	Value string `json:"value"`
}

// FileRef is a stored file descriptor as Baserow returns it.
type FileRef struct {
	URL  string `json:"url"`
	Name string `json:"name"`
}

// JobRef is a candidate's job reference. The direct-application table
// stores a proper row link, the WhatsApp intake stores a denormalized
// title string; both shapes decode into this union so the reconciler is
// the only place that has to care which one it got.
type JobRef struct {
	Title string
	Links []RowLink
}

func (r *JobRef) UnmarshalJSON(b []byte) error {
	r.Title, r.Links = "", nil
	b = bytes.TrimSpace(b)
	if len(b) == 0 || bytes.Equal(b, []byte("null")) {
		return nil
	}
	if b[0] == '"' {
		return json.Unmarshal(b, &r.Title)
	}
	return json.Unmarshal(b, &r.Links)
}

func (r JobRef) MarshalJSON() ([]byte, error) {
	if r.Title != "" {
		return json.Marshal(r.Title)
	}
	if r.Links != nil {
		return json.Marshal(r.Links)
	}
	return []byte("null"), nil
}

// IsZero reports whether no job reference is present at all.
func (r JobRef) IsZero() bool {
	return r.Title == "" && len(r.Links) == 0
}

// UserRow mirrors the users table.
type UserRow struct {
	ID                 int    `json:"id"`
	Nome               string `json:"nome"`
	Empresa            string `json:"empresa"`
	Telefone           string `json:"telefone"`
	Email              string `json:"Email"`
	SenhaHash          string `json:"senha_hash"`
	AvatarURL          string `json:"avatar_url"`
	GoogleRefreshToken string `json:"google_refresh_token"`
}

// JobRow mirrors the job postings table. Usuario is set-valued but is a
// singleton in practice.
type JobRow struct {
	ID                     int       `json:"id"`
	Titulo                 string    `json:"titulo"`
	Descricao              string    `json:"descricao"`
	Endereco               string    `json:"Endereco"`
	RequisitosObrigatorios string    `json:"requisitos_obrigatorios"`
	RequisitosDesejaveis   string    `json:"requisitos_desejaveis"`
	Usuario                []RowLink `json:"usuario"`
}

// CandidateRow mirrors both candidate intake tables; the two differ only
// in the shape of Vaga, which JobRef absorbs.
type CandidateRow struct {
	ID          int           `json:"id"`
	Nome        string        `json:"nome"`
	Telefone    *string       `json:"telefone"`
	Curriculo   []FileRef     `json:"curriculo"`
	Score       *int          `json:"score"`
	ResumoIA    *string       `json:"resumo_ia"`
	Status      *SelectOption `json:"status"`
	DataTriagem string        `json:"data_triagem,omitempty"`
	Usuario     []RowLink     `json:"usuario"`
	Vaga        JobRef        `json:"vaga"`
}

// ScheduleRow mirrors the appointments table. Rows are written exactly
// once per successful booking and never mutated afterwards.
type ScheduleRow struct {
	ID              int       `json:"id"`
	Titulo          string    `json:"Título"`
	Inicio          time.Time `json:"Início"`
	Fim             time.Time `json:"Fim"`
	Detalhes        string    `json:"Detalhes"`
	Candidato       []RowLink `json:"Candidato"`
	Vaga            []RowLink `json:"Vaga"`
	GoogleEventLink string    `json:"google_event_link"`
	IdempotencyKey  string    `json:"idempotency_key"`
}

// OwnedBy reports whether a link-row set contains the given user.
func OwnedBy(links []RowLink, userID int) bool {
	for _, l := range links {
		if l.ID == userID {
			return true
		}
	}
	return false
}
