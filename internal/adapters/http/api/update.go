// Package api declares HTTP contracts and route registration helpers.
package api

import (
	"context"
	"encoding/json"
	"net/http"

	"github.com/okian/sisu/internal/domain/model"
	"github.com/okian/sisu/internal/domain/present"
)

// maxBodyBytes bounds POST /api/update bodies.
const maxBodyBytes = 1 << 20

// UpdateDependencies defines the interface for the update pipeline.
type UpdateDependencies interface {
	Update(ctx context.Context, sel model.Selection) (present.Update, error)
}

// UpdateHandler handles selection changes.
type UpdateHandler struct {
	deps UpdateDependencies
}

// NewUpdateHandler creates a new update handler.
func NewUpdateHandler(deps UpdateDependencies) *UpdateHandler {
	return &UpdateHandler{deps: deps}
}

type updateResponse struct {
	Selection model.Selection `json:"selection"`
	present.Update
}

// HandleUpdate handles GET /api/update?course=..&state=.. and POST
// /api/update with a JSON selection whose fields are strings or arrays.
func (h *UpdateHandler) HandleUpdate(w http.ResponseWriter, r *http.Request) {
	const op = "api.update"

	var sel model.Selection
	switch r.Method {
	case http.MethodGet:
		sel = selectionFromQuery(r.URL.Query())
	case http.MethodPost:
		dec := json.NewDecoder(http.MaxBytesReader(w, r.Body, maxBodyBytes))
		dec.DisallowUnknownFields()
		if err := dec.Decode(&sel); err != nil {
			writeError(w, http.StatusBadRequest, "bad_request", WrapKind(op, ErrBadRequest, err))
			return
		}
	default:
		http.NotFound(w, r)
		return
	}

	u, err := h.deps.Update(r.Context(), sel)
	if err != nil {
		writeError(w, http.StatusInternalServerError, "internal_error", Wrap(op, err))
		return
	}
	writeJSON(w, http.StatusOK, updateResponse{Selection: sel, Update: u})
}
