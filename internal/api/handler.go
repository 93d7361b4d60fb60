package api

import (
	"encoding/json"
	"errors"
	"fmt"
	"net/http"
	"sync/atomic"

	"github.com/prometheus/client_golang/prometheus/promhttp"

	"github.com/duiproject/duitrack/internal/command"
	"github.com/duiproject/duitrack/internal/metrics"
	"github.com/duiproject/duitrack/internal/tree"
)

const maxImportNodes = 10000

// Handler holds all HTTP handler dependencies. The tree and command registry
// sit behind atomic pointers: a bulk import or a config reload builds a new
// instance and swaps it in, so requests always see a consistent one.
type Handler struct {
	tree     atomic.Pointer[tree.Tree]
	commands atomic.Pointer[command.Registry]
	types    *tree.Registry
	root     http.Handler
}

// New creates an HTTP handler and registers all routes.
func New(t *tree.Tree, types *tree.Registry, cmds *command.Registry) *Handler {
	h := &Handler{types: types}
	h.tree.Store(t)
	h.commands.Store(cmds)

	mux := http.NewServeMux()
	mux.HandleFunc("GET /v1/nodes", h.listNodes)
	mux.HandleFunc("POST /v1/nodes", h.attachNode)
	mux.HandleFunc("GET /v1/nodes/{id}", h.getNode)
	mux.HandleFunc("PATCH /v1/nodes/{id}", h.setNodeState)
	mux.HandleFunc("GET /v1/tree", h.exportTree)
	mux.HandleFunc("POST /v1/tree", h.importTree)
	mux.HandleFunc("GET /v1/tree/render", h.renderTree)
	mux.HandleFunc("GET /v1/commands", h.listCommands)
	mux.HandleFunc("GET /v1/commands/{name}", h.getCommand)
	mux.HandleFunc("GET /healthz", h.healthz)
	mux.Handle("GET /metrics", promhttp.Handler())

	h.root = loggingMiddleware(mux)
	return h
}

func (h *Handler) ServeHTTP(w http.ResponseWriter, r *http.Request) {
	h.root.ServeHTTP(w, r)
}

// Tree returns the currently served tree (latest import included).
func (h *Handler) Tree() *tree.Tree {
	return h.tree.Load()
}

// SwapCommands atomically replaces the command registry (used on config reload).
func (h *Handler) SwapCommands(r *command.Registry) {
	h.commands.Store(r)
}

// GET /v1/nodes — the whole tree in attachment order.
func (h *Handler) listNodes(w http.ResponseWriter, r *http.Request) {
	writeJSON(w, http.StatusOK, h.tree.Load().Representation())
}

// attachRequest is the body of POST /v1/nodes.
type attachRequest struct {
	Type    string   `json:"type"`
	ID      string   `json:"id"`
	UUID    string   `json:"uuid"`
	Parents []string `json:"parents"`
}

// POST /v1/nodes — attach a new node, auto-assigning the id when omitted.
func (h *Handler) attachNode(w http.ResponseWriter, r *http.Request) {
	var req attachRequest
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		writeError(w, http.StatusBadRequest, fmt.Sprintf("invalid JSON: %s", err))
		return
	}
	kind := req.Type
	if kind == "" {
		kind = tree.KindNode
	}
	fn, err := h.types.Get(kind)
	if err != nil {
		writeError(w, http.StatusBadRequest, err.Error())
		return
	}
	rec := tree.Record{
		Type:    kind,
		ID:      req.ID,
		UUID:    req.UUID,
		State:   tree.StateCreated,
		Parents: req.Parents,
	}
	t := h.tree.Load()
	node, err := fn(t, rec)
	if err != nil {
		metrics.AttachFailures.WithLabelValues(failureReason(err)).Inc()
		writeError(w, attachStatus(err), err.Error())
		return
	}
	metrics.NodesAttached.Inc()
	metrics.TreeNodes.Set(float64(t.Len()))
	writeJSON(w, http.StatusCreated, node.Record())
}

// GET /v1/nodes/{id} — a single node, or 404.
func (h *Handler) getNode(w http.ResponseWriter, r *http.Request) {
	node, ok := h.tree.Load().Get(r.PathValue("id"))
	if !ok {
		writeError(w, http.StatusNotFound, "no such node")
		return
	}
	writeJSON(w, http.StatusOK, node.Record())
}

// PATCH /v1/nodes/{id} — lifecycle transition driven by the pipeline runner.
func (h *Handler) setNodeState(w http.ResponseWriter, r *http.Request) {
	node, ok := h.tree.Load().Get(r.PathValue("id"))
	if !ok {
		writeError(w, http.StatusNotFound, "no such node")
		return
	}
	var req struct {
		State string `json:"state"`
	}
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		writeError(w, http.StatusBadRequest, fmt.Sprintf("invalid JSON: %s", err))
		return
	}
	state, err := tree.ParseState(req.State)
	if err != nil {
		writeError(w, http.StatusBadRequest, err.Error())
		return
	}
	if err := node.SetState(state); err != nil {
		writeError(w, http.StatusBadRequest, err.Error())
		return
	}
	writeJSON(w, http.StatusOK, node.Record())
}

// GET /v1/tree — export, same array the import endpoint accepts.
func (h *Handler) exportTree(w http.ResponseWriter, r *http.Request) {
	writeJSON(w, http.StatusOK, h.tree.Load().Representation())
}

// POST /v1/tree — rebuild the whole tree from serialized records and swap it in.
func (h *Handler) importTree(w http.ResponseWriter, r *http.Request) {
	var records []tree.Record
	if err := json.NewDecoder(r.Body).Decode(&records); err != nil {
		writeError(w, http.StatusBadRequest, fmt.Sprintf("invalid JSON: %s", err))
		return
	}
	if len(records) > maxImportNodes {
		writeError(w, http.StatusBadRequest, fmt.Sprintf("import of %d nodes exceeds max %d", len(records), maxImportNodes))
		return
	}
	t, err := tree.Decode(records, h.types)
	if err != nil {
		writeError(w, http.StatusUnprocessableEntity, err.Error())
		return
	}
	h.tree.Store(t)
	metrics.TreeImports.Inc()
	metrics.TreeNodes.Set(float64(t.Len()))
	writeJSON(w, http.StatusOK, map[string]interface{}{
		"imported": t.Len(),
	})
}

// GET /v1/tree/render — diagnostic box-art view.
func (h *Handler) renderTree(w http.ResponseWriter, r *http.Request) {
	w.Header().Set("Content-Type", "text/plain; charset=utf-8")
	w.WriteHeader(http.StatusOK)
	_, _ = w.Write([]byte(h.tree.Load().RenderGraph()))
}

// GET /v1/commands — name→endpoint map of every addressable command.
func (h *Handler) listCommands(w http.ResponseWriter, r *http.Request) {
	writeJSON(w, http.StatusOK, h.commands.Load().Endpoints())
}

// GET /v1/commands/{name} — a single command record, or 404.
func (h *Handler) getCommand(w http.ResponseWriter, r *http.Request) {
	c, ok := h.commands.Load().Get(r.PathValue("name"))
	if !ok {
		writeError(w, http.StatusNotFound, "no such command")
		return
	}
	writeJSON(w, http.StatusOK, c.Record())
}

// GET /healthz — always 200 (liveness probe).
func (h *Handler) healthz(w http.ResponseWriter, r *http.Request) {
	writeJSON(w, http.StatusOK, map[string]string{"status": "ok"})
}

// attachStatus maps core attach errors to HTTP status codes.
func attachStatus(err error) int {
	switch {
	case errors.Is(err, tree.ErrDuplicateID), errors.Is(err, tree.ErrDuplicateUUID):
		return http.StatusConflict
	case errors.Is(err, tree.ErrMissingParent), errors.Is(err, tree.ErrInconsistentParent):
		return http.StatusUnprocessableEntity
	case errors.Is(err, tree.ErrCorruptTree):
		return http.StatusInternalServerError
	default:
		return http.StatusBadRequest
	}
}

func failureReason(err error) string {
	switch {
	case errors.Is(err, tree.ErrDuplicateID):
		return "duplicate_id"
	case errors.Is(err, tree.ErrDuplicateUUID):
		return "duplicate_uuid"
	case errors.Is(err, tree.ErrMissingParent):
		return "missing_parent"
	case errors.Is(err, tree.ErrInconsistentParent):
		return "inconsistent_parent"
	case errors.Is(err, tree.ErrCorruptTree):
		return "corrupt_tree"
	default:
		return "invalid"
	}
}
