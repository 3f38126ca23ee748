package models

import (
	"encoding/json"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestJobRefUnmarshalString(t *testing.T) {
	var c CandidateRow
	raw := `{"id": 10, "nome": "Maria", "vaga": "Backend Engineer ", "usuario": [{"id": 1, "value": "Ana"}]}`
	require.NoError(t, json.Unmarshal([]byte(raw), &c))

	assert.Equal(t, "Backend Engineer ", c.Vaga.Title)
	assert.Nil(t, c.Vaga.Links)
	assert.False(t, c.Vaga.IsZero())
}

func TestJobRefUnmarshalLinks(t *testing.T) {
	var c CandidateRow
	raw := `{"id": 11, "nome": "João", "vaga": [{"id": 7, "value": "backend engineer"}]}`
	require.NoError(t, json.Unmarshal([]byte(raw), &c))

	require.Len(t, c.Vaga.Links, 1)
	assert.Equal(t, 7, c.Vaga.Links[0].ID)
	assert.Empty(t, c.Vaga.Title)
}

func TestJobRefUnmarshalNull(t *testing.T) {
	var c CandidateRow
	raw := `{"id": 12, "nome": "Pedro", "vaga": null}`
	require.NoError(t, json.Unmarshal([]byte(raw), &c))

	assert.True(t, c.Vaga.IsZero())
}

func TestJobRefMarshalRoundTrip(t *testing.T) {
	for _, raw := range []string{`"Vendedor"`, `[{"id":3,"value":"Vendedor"}]`, `null`} {
		var ref JobRef
		require.NoError(t, json.Unmarshal([]byte(raw), &ref))
		out, err := json.Marshal(ref)
		require.NoError(t, err)
		assert.JSONEq(t, raw, string(out))
	}
}

func TestStatusValid(t *testing.T) {
	for _, s := range []Status{StatusTriagem, StatusEntrevista, StatusAprovado, StatusReprovado} {
		assert.True(t, s.Valid(), s)
	}
	assert.False(t, Status("Hired").Valid())
	assert.False(t, Status("").Valid())
	assert.False(t, Status("triagem").Valid(), "status values are case sensitive")
}

func TestOwnedBy(t *testing.T) {
	links := []RowLink{{ID: 3, Value: "Ana"}, {ID: 5, Value: "Rui"}}
	assert.True(t, OwnedBy(links, 5))
	assert.False(t, OwnedBy(links, 9))
	assert.False(t, OwnedBy(nil, 3))
}
