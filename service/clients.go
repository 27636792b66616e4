package service

import (
	"fmt"
	"sort"
	"strings"

	"github.com/rpconseil/dossiers_end/analytics"
	"github.com/rpconseil/dossiers_end/models"
	"github.com/rpconseil/dossiers_end/utils"
)

// SanitizeClientUpdate checks a client patch against the updatable field
// list and coerces values to their stored types. patrimoineBrut accepts a
// number or a formatted amount; every other field must be text.
func SanitizeClientUpdate(raw map[string]interface{}) (map[string]interface{}, error) {
	if len(raw) == 0 {
		return nil, utils.CreateBadRequestError("aucun champ à mettre à jour")
	}

	var unknown []string
	fields := make(map[string]interface{}, len(raw))
	for name, value := range raw {
		if !models.ClientUpdatableFields[name] {
			unknown = append(unknown, name)
			continue
		}

		if name == "patrimoineBrut" {
			fields[name] = analytics.ParseCurrency(value)
			continue
		}

		switch v := value.(type) {
		case nil:
			fields[name] = ""
		case string:
			fields[name] = v
		default:
			return nil, utils.CreateBadRequestError(fmt.Sprintf("le champ %s doit être un texte", name))
		}
	}

	if len(unknown) > 0 {
		sort.Strings(unknown)
		return nil, utils.CreateBadRequestError("champs non modifiables: " + strings.Join(unknown, ", "))
	}
	if nom, ok := fields["nom"].(string); ok && strings.TrimSpace(nom) == "" {
		return nil, utils.CreateBadRequestError("le nom du client est obligatoire")
	}
	return fields, nil
}
