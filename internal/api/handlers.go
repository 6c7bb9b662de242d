package api

import (
	"encoding/json"
	stderrors "errors"
	"net"
	"net/http"
	"strconv"

	"github.com/Ravenhammer-Research/freebsdnet/internal/errors"
	"github.com/Ravenhammer-Research/freebsdnet/internal/netaddr"
)

// Handler serves the routing API against one RoutingTable.
type Handler struct {
	table RoutingTable
}

// NewHandler creates the API handler.
func NewHandler(table RoutingTable) *Handler {
	return &Handler{table: table}
}

// respondJSON sends a JSON response.
func respondJSON(w http.ResponseWriter, status int, data interface{}) {
	w.Header().Set("Content-Type", "application/json")
	w.WriteHeader(status)
	_ = json.NewEncoder(w).Encode(data)
}

// respondError sends an error response.
func respondError(w http.ResponseWriter, status int, message string) {
	respondJSON(w, status, map[string]string{"error": message})
}

// respondDomainError maps domain error codes to HTTP statuses.
func respondDomainError(w http.ResponseWriter, err error) {
	status := http.StatusInternalServerError

	var derr *errors.Error
	if stderrors.As(err, &derr) {
		switch derr.Code {
		case errors.ErrCodeInvalidAddress, errors.ErrCodeValidation:
			status = http.StatusBadRequest
		case errors.ErrCodeUnknownInterface, errors.ErrCodeUnavailable:
			status = http.StatusNotFound
		case errors.ErrCodePermission:
			status = http.StatusForbidden
		}
	}
	respondError(w, status, err.Error())
}

// queryFib parses the optional fib query parameter, -1 meaning default.
func queryFib(r *http.Request) (int, error) {
	raw := r.URL.Query().Get("fib")
	if raw == "" {
		return -1, nil
	}
	fib, err := strconv.Atoi(raw)
	if err != nil {
		return 0, errors.NewValidationError("fib must be an integer", err)
	}
	return fib, nil
}

// queryFamily parses the optional family query parameter (4 or 6).
func queryFamily(r *http.Request) (netaddr.Family, error) {
	switch r.URL.Query().Get("family") {
	case "":
		return netaddr.FamilyUnknown, nil
	case "4":
		return netaddr.FamilyIPv4, nil
	case "6":
		return netaddr.FamilyIPv6, nil
	}
	return 0, errors.NewValidationError("family must be 4 or 6", nil)
}

// GetRoutes serves GET /api/v1/routes.
func (h *Handler) GetRoutes(w http.ResponseWriter, r *http.Request) {
	fib, err := queryFib(r)
	if err != nil {
		respondDomainError(w, err)
		return
	}
	family, err := queryFamily(r)
	if err != nil {
		respondDomainError(w, err)
		return
	}

	records, err := h.table.GetEntries(fib, family)
	if err != nil {
		respondDomainError(w, err)
		return
	}

	out := make([]RouteJSON, 0, len(records))
	for _, rec := range records {
		out = append(out, toRouteJSON(rec))
	}
	respondJSON(w, http.StatusOK, out)
}

// GetDefaultRoute serves GET /api/v1/routes/default.
func (h *Handler) GetDefaultRoute(w http.ResponseWriter, r *http.Request) {
	fib, err := queryFib(r)
	if err != nil {
		respondDomainError(w, err)
		return
	}
	family, err := queryFamily(r)
	if err != nil {
		respondDomainError(w, err)
		return
	}
	if family == netaddr.FamilyUnknown {
		family = netaddr.FamilyIPv4
	}

	rec, err := h.table.DefaultGateway(fib, family)
	if err != nil {
		respondDomainError(w, err)
		return
	}
	respondJSON(w, http.StatusOK, toRouteJSON(rec))
}

// AddRoute serves POST /api/v1/routes.
func (h *Handler) AddRoute(w http.ResponseWriter, r *http.Request) {
	var req AddRouteRequest
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		respondError(w, http.StatusBadRequest, "invalid JSON body")
		return
	}
	if req.Destination == "" || req.Gateway == "" {
		respondError(w, http.StatusBadRequest, "destination and gateway are required")
		return
	}

	fib := -1
	if req.FIB != nil {
		fib = *req.FIB
	}
	if err := h.table.AddEntry(req.Destination, req.Gateway, req.Interface, 0, fib); err != nil {
		respondDomainError(w, err)
		return
	}
	respondJSON(w, http.StatusCreated, map[string]string{"status": "added"})
}

// DeleteRoute serves DELETE /api/v1/routes.
func (h *Handler) DeleteRoute(w http.ResponseWriter, r *http.Request) {
	var req DeleteRouteRequest
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		respondError(w, http.StatusBadRequest, "invalid JSON body")
		return
	}
	if req.Destination == "" {
		respondError(w, http.StatusBadRequest, "destination is required")
		return
	}

	fib := -1
	if req.FIB != nil {
		fib = *req.FIB
	}
	if err := h.table.DeleteEntry(req.Destination, req.Gateway, fib); err != nil {
		respondDomainError(w, err)
		return
	}
	respondJSON(w, http.StatusOK, map[string]string{"status": "deleted"})
}

// GetFibs serves GET /api/v1/fibs.
func (h *Handler) GetFibs(w http.ResponseWriter, r *http.Request) {
	count, err := h.table.FibCount()
	if err != nil {
		respondDomainError(w, err)
		return
	}
	def, err := h.table.DefaultFib()
	if err != nil {
		respondDomainError(w, err)
		return
	}
	respondJSON(w, http.StatusOK, FibsJSON{Count: count, Default: def})
}

// GetInterfaces serves GET /api/v1/interfaces.
func (h *Handler) GetInterfaces(w http.ResponseWriter, r *http.Request) {
	ifaces, err := net.Interfaces()
	if err != nil {
		respondDomainError(w, err)
		return
	}

	out := make([]InterfaceJSON, 0, len(ifaces))
	for _, ifi := range ifaces {
		entry := InterfaceJSON{
			Name:  ifi.Name,
			Index: ifi.Index,
			MTU:   ifi.MTU,
			Up:    ifi.Flags&net.FlagUp != 0,
		}
		if addrs, err := ifi.Addrs(); err == nil {
			for _, a := range addrs {
				entry.Addrs = append(entry.Addrs, a.String())
			}
		}
		out = append(out, entry)
	}
	respondJSON(w, http.StatusOK, out)
}

// CheckHealth serves GET /api/v1/health.
func (h *Handler) CheckHealth(w http.ResponseWriter, r *http.Request) {
	respondJSON(w, http.StatusOK, map[string]string{"status": "ok"})
}
