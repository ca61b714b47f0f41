package rest

import (
	"bytes"
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"io"
	"log/slog"
	"net/http"
	"strconv"

	"github.com/heartmarshall/pokescout-backend/internal/domain"
	"github.com/heartmarshall/pokescout-backend/internal/service/catalog"
)

// maxBatchBodyBytes caps the batch request body.
const maxBatchBodyBytes = 1 << 20

type catalogService interface {
	List(ctx context.Context, limit, offset int) (*catalog.ListResult, error)
	GetByID(ctx context.Context, id int64) (*domain.Pokemon, error)
	GetByName(ctx context.Context, rawName string) (*domain.Pokemon, error)
	FetchAndPersist(ctx context.Context, rawName string) (*catalog.FetchResult, error)
	Sync(ctx context.Context, names []string) (*catalog.SyncResult, error)
	Delete(ctx context.Context, id int64) error
	MaxBatchSize() int
}

// PokemonHandler serves the /api/pokemon routes.
type PokemonHandler struct {
	svc catalogService
	log *slog.Logger
}

// NewPokemonHandler creates a PokemonHandler.
func NewPokemonHandler(svc catalogService, logger *slog.Logger) *PokemonHandler {
	return &PokemonHandler{svc: svc, log: logger.With("handler", "pokemon")}
}

// List handles GET /api/pokemon?limit=&offset=.
func (h *PokemonHandler) List(w http.ResponseWriter, r *http.Request) {
	limit, ok := queryInt(w, r, "limit")
	if !ok {
		return
	}
	offset, ok := queryInt(w, r, "offset")
	if !ok {
		return
	}

	res, err := h.svc.List(r.Context(), limit, offset)
	if err != nil {
		h.writeServiceError(w, r, err, "")
		return
	}

	count := len(res.Items)
	writeJSON(w, http.StatusOK, envelope{
		Success: true,
		Data:    toPokemonDTOs(res.Items),
		Count:   &count,
		Total:   &res.Total,
	})
}

// GetByID handles GET /api/pokemon/{id}.
func (h *PokemonHandler) GetByID(w http.ResponseWriter, r *http.Request) {
	id, ok := pathID(w, r)
	if !ok {
		return
	}

	p, err := h.svc.GetByID(r.Context(), id)
	if err != nil {
		h.writeServiceError(w, r, err, "pokemon not found")
		return
	}
	writeData(w, http.StatusOK, toPokemonDTO(p))
}

// GetByName handles GET /api/pokemon/name/{name}. It only reads storage.
func (h *PokemonHandler) GetByName(w http.ResponseWriter, r *http.Request) {
	name := r.PathValue("name")

	p, err := h.svc.GetByName(r.Context(), name)
	if err != nil {
		h.writeServiceError(w, r, err, fmt.Sprintf("pokemon %q not found in database", name))
		return
	}
	writeData(w, http.StatusOK, toPokemonDTO(p))
}

// Fetch handles POST /api/pokemon/fetch/{name}: 201 when the Pokémon was
// created, 200 when it was already stored.
func (h *PokemonHandler) Fetch(w http.ResponseWriter, r *http.Request) {
	name := r.PathValue("name")

	res, err := h.svc.FetchAndPersist(r.Context(), name)
	if err != nil {
		h.writeServiceError(w, r, err, fmt.Sprintf("failed to fetch %q from PokeAPI", name))
		return
	}

	status, msg := http.StatusOK, fmt.Sprintf("pokemon %q already exists", res.Pokemon.Name)
	if res.Created {
		status, msg = http.StatusCreated, fmt.Sprintf("pokemon %q fetched successfully", res.Pokemon.Name)
	}
	writeJSON(w, status, envelope{Success: true, Message: msg, Data: toPokemonDTO(res.Pokemon)})
}

// FetchBatch handles POST /api/pokemon/fetch/batch with body
// {"names": [...]}. The key "pokemon" is accepted as an alias.
func (h *PokemonHandler) FetchBatch(w http.ResponseWriter, r *http.Request) {
	names, msg := decodeBatchNames(http.MaxBytesReader(w, r.Body, maxBatchBodyBytes))
	if msg != "" {
		writeError(w, http.StatusBadRequest, msg)
		return
	}
	if len(names) == 0 {
		writeError(w, http.StatusBadRequest, "names list cannot be empty")
		return
	}
	if maxBatch := h.svc.MaxBatchSize(); len(names) > maxBatch {
		writeError(w, http.StatusBadRequest, fmt.Sprintf("cannot fetch more than %d pokemon at once", maxBatch))
		return
	}

	res, err := h.svc.Sync(r.Context(), names)
	if err != nil {
		h.writeServiceError(w, r, err, "")
		return
	}
	writeJSON(w, http.StatusOK, envelope{Success: true, Results: toSyncResultDTO(res)})
}

// Delete handles DELETE /api/pokemon/{id}.
func (h *PokemonHandler) Delete(w http.ResponseWriter, r *http.Request) {
	id, ok := pathID(w, r)
	if !ok {
		return
	}

	if err := h.svc.Delete(r.Context(), id); err != nil {
		h.writeServiceError(w, r, err, "pokemon not found")
		return
	}
	writeJSON(w, http.StatusOK, envelope{Success: true, Message: fmt.Sprintf("pokemon %d deleted", id)})
}

// writeServiceError maps service errors to status codes. Storage error text
// is logged, never returned.
func (h *PokemonHandler) writeServiceError(w http.ResponseWriter, r *http.Request, err error, notFoundMsg string) {
	if notFoundMsg == "" {
		notFoundMsg = "not found"
	}

	var ve *domain.ValidationError
	switch {
	case errors.Is(err, catalog.ErrInvalidName):
		writeError(w, http.StatusBadRequest, "invalid pokemon name: use 1-50 characters from a-z, 0-9 and -")
	case errors.Is(err, catalog.ErrUpstreamUnavailable), errors.Is(err, catalog.ErrMalformedUpstreamData):
		writeError(w, http.StatusNotFound, notFoundMsg)
	case errors.Is(err, catalog.ErrValidationFailed) && errors.As(err, &ve):
		writeError(w, http.StatusUnprocessableEntity, "pokemon data failed validation", ve.Messages()...)
	case errors.Is(err, catalog.ErrWriteFailed):
		h.log.ErrorContext(r.Context(), "pokemon write failed", slog.String("path", r.URL.Path), slog.Any("error", err))
		writeError(w, http.StatusInternalServerError, "failed to store pokemon")
	case errors.Is(err, domain.ErrNotFound):
		writeError(w, http.StatusNotFound, notFoundMsg)
	case errors.As(err, &ve):
		writeError(w, http.StatusBadRequest, ve.Error(), ve.Messages()...)
	default:
		h.log.ErrorContext(r.Context(), "request failed", slog.String("path", r.URL.Path), slog.Any("error", err))
		writeError(w, http.StatusInternalServerError, "internal server error")
	}
}

// BatchCost returns the number of names in a batch request body, at least 1.
// The body is left readable for the handler.
func BatchCost(r *http.Request) int {
	if r.Body == nil {
		return 1
	}
	buf, err := io.ReadAll(io.LimitReader(r.Body, maxBatchBodyBytes+1))
	r.Body = struct {
		io.Reader
		io.Closer
	}{io.MultiReader(bytes.NewReader(buf), r.Body), r.Body}
	if err != nil {
		return 1
	}

	names, msg := decodeBatchNames(bytes.NewReader(buf))
	if msg != "" {
		return 1
	}
	return max(len(names), 1)
}

// decodeBatchNames returns the names of a batch body, or a client error message.
func decodeBatchNames(body io.Reader) ([]string, string) {
	var payload map[string]json.RawMessage
	if err := json.NewDecoder(body).Decode(&payload); err != nil {
		return nil, "request body must be a JSON object"
	}

	raw, ok := payload["names"]
	if !ok {
		raw, ok = payload["pokemon"]
	}
	if !ok {
		return nil, `missing "names" array in request body`
	}

	var items []json.RawMessage
	if err := json.Unmarshal(raw, &items); err != nil || items == nil {
		return nil, `"names" must be an array`
	}

	names := make([]string, len(items))
	for i, item := range items {
		if err := json.Unmarshal(item, &names[i]); err != nil || string(item) == "null" {
			return nil, `"names" must contain only strings`
		}
	}
	return names, ""
}

// queryInt parses an optional integer query parameter. Absent means 0.
func queryInt(w http.ResponseWriter, r *http.Request, key string) (int, bool) {
	s := r.URL.Query().Get(key)
	if s == "" {
		return 0, true
	}
	v, err := strconv.Atoi(s)
	if err != nil {
		writeError(w, http.StatusBadRequest, key+" must be an integer")
		return 0, false
	}
	return v, true
}

func pathID(w http.ResponseWriter, r *http.Request) (int64, bool) {
	id, err := strconv.ParseInt(r.PathValue("id"), 10, 64)
	if err != nil || id <= 0 {
		writeError(w, http.StatusBadRequest, "id must be a positive integer")
		return 0, false
	}
	return id, true
}
