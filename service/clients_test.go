package service

import (
	"errors"
	"net/http"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/rpconseil/dossiers_end/utils"
)

func TestSanitizeClientUpdate(t *testing.T) {
	fields, err := SanitizeClientUpdate(map[string]interface{}{
		"prenom":         "Claire",
		"patrimoineBrut": "250 000,00 €",
		"objectifs":      nil,
	})
	require.NoError(t, err)
	assert.Equal(t, "Claire", fields["prenom"])
	assert.Equal(t, 250000.0, fields["patrimoineBrut"])
	assert.Equal(t, "", fields["objectifs"])
}

func TestSanitizeClientUpdate_Rejects(t *testing.T) {
	cases := map[string]map[string]interface{}{
		"empty":         {},
		"unknown field": {"_id": "abc", "nom": "X"},
		"wrong type":    {"epargne": 12},
		"blank name":    {"nom": "   "},
	}
	for name, raw := range cases {
		t.Run(name, func(t *testing.T) {
			_, err := SanitizeClientUpdate(raw)
			require.Error(t, err)
			var apiErr *utils.ApiError
			require.True(t, errors.As(err, &apiErr))
			assert.Equal(t, http.StatusBadRequest, apiErr.StatusCode)
		})
	}
}
