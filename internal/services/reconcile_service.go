package services

import (
	"strings"

	"github.com/bittenrichard/30-07/internal/models"
)

// ReconciledCandidate is a candidate whose job reference has been
// normalized to a single canonical link, or null when no owned job
// matches. The outer Vaga shadows the raw union on the wire.
type ReconciledCandidate struct {
	models.CandidateRow
	Vaga []models.RowLink `json:"vaga"`
}

// Reconcile filters jobs and candidates down to the given user and
// resolves each candidate's job reference against the user's postings.
//
// The two intake tables produce structurally different references: the
// WhatsApp intake writes a free-text job title, direct applications a
// row link. A title resolves by case- and whitespace-insensitive exact
// match; a link resolves by the first element's id. No match, or no
// reference at all, degrades to a null link, never an error.
//
// Duplicate titles for the same user leave which job wins undefined
// (later index entries overwrite earlier ones, matching the store's own
// iteration order).
func Reconcile(jobs []models.JobRow, candidates []models.CandidateRow, userID int) ([]models.JobRow, []ReconciledCandidate) {
	userJobs := make([]models.JobRow, 0, len(jobs))
	for _, j := range jobs {
		if models.OwnedBy(j.Usuario, userID) {
			userJobs = append(userJobs, j)
		}
	}

	byID := make(map[int]models.JobRow, len(userJobs))
	byTitle := make(map[string]models.JobRow, len(userJobs))
	for _, j := range userJobs {
		byID[j.ID] = j
		byTitle[normalizeTitle(j.Titulo)] = j
	}

	synced := make([]ReconciledCandidate, 0, len(candidates))
	for _, c := range candidates {
		// Candidates without an owner link are orphaned intake rows,
		// not errors; they simply never surface for any user.
		if !models.OwnedBy(c.Usuario, userID) {
			continue
		}

		rc := ReconciledCandidate{CandidateRow: c}
		switch {
		case c.Vaga.Title != "":
			if j, ok := byTitle[normalizeTitle(c.Vaga.Title)]; ok {
				rc.Vaga = []models.RowLink{{ID: j.ID, Value: j.Titulo}}
			}
		case len(c.Vaga.Links) > 0:
			if j, ok := byID[c.Vaga.Links[0].ID]; ok {
				rc.Vaga = []models.RowLink{{ID: j.ID, Value: j.Titulo}}
			}
		}
		synced = append(synced, rc)
	}

	return userJobs, synced
}

func normalizeTitle(t string) string {
	return strings.ToLower(strings.TrimSpace(t))
}
