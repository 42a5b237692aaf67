package httpapi

import (
	"encoding/json"
	"errors"
	"fmt"
	"io"
	"net/http"
	"strconv"
	"time"

	"github.com/go-chi/chi/v5"

	"github.com/solatis/audiencekeeper/internal/core/logger"
	"github.com/solatis/audiencekeeper/internal/core/scope"
	"github.com/solatis/audiencekeeper/internal/core/service"
	"github.com/solatis/audiencekeeper/internal/segment"
	"github.com/solatis/audiencekeeper/internal/types"
)

// errBadRequest marks malformed request bodies and parameters.
var errBadRequest = errors.New("bad request")

func badRequest(format string, args ...any) error {
	return fmt.Errorf("%w: %s", errBadRequest, fmt.Sprintf(format, args...))
}

// Handler serves the REST API on top of the service layer.
type Handler struct {
	svc         *service.Service
	maxBodySize int64
	log         *logger.Logger
}

// NewHandler creates a Handler. Request bodies above maxBodySize are
// rejected with 413.
func NewHandler(svc *service.Service, maxBodySize int64, log *logger.Logger) *Handler {
	if log == nil {
		log = logger.NewNop()
	}
	return &Handler{svc: svc, maxBodySize: maxBodySize, log: log.WithComponent("httpapi")}
}

func (h *Handler) respondJSON(w http.ResponseWriter, status int, data any) {
	w.Header().Set("Content-Type", "application/json")
	w.WriteHeader(status)
	if data == nil {
		return
	}
	if err := json.NewEncoder(w).Encode(data); err != nil {
		h.log.Warnw("failed to encode response", "error", err)
	}
}

func (h *Handler) respondError(w http.ResponseWriter, status int, code, message string) {
	h.respondJSON(w, status, errorResponse{Code: code, Message: message})
}

// decode reads a single JSON value from the bounded request body.
func (h *Handler) decode(w http.ResponseWriter, r *http.Request, dst any) error {
	r.Body = http.MaxBytesReader(w, r.Body, h.maxBodySize)
	dec := json.NewDecoder(r.Body)
	if err := dec.Decode(dst); err != nil {
		var maxBytes *http.MaxBytesError
		if errors.As(err, &maxBytes) {
			return err
		}
		if errors.Is(err, io.EOF) {
			return badRequest("request body is empty")
		}
		return badRequest("invalid JSON: %v", err)
	}
	if dec.More() {
		return badRequest("request body holds more than one JSON value")
	}
	return nil
}

// user returns the acting user from the request context, falling back to a
// userId carried in the body.
func user(r *http.Request, fromBody string) (string, error) {
	if id := scope.UserIDFromContext(r.Context()); id != "" {
		return id, nil
	}
	return scope.ParseUserID(fromBody)
}

func segmentID(r *http.Request) (types.SegmentID, error) {
	raw := chi.URLParam(r, "id")
	id, err := types.ParseSegmentID(raw)
	if err != nil {
		return "", badRequest("invalid segment id %q", raw)
	}
	return id, nil
}

// decodeSegment reads a segment document. The userId inside the document
// identifies the caller when the request carries no X-User-ID.
func (h *Handler) decodeSegment(w http.ResponseWriter, r *http.Request) (*types.Segment, string, error) {
	var doc segment.Document
	if err := h.decode(w, r, &doc); err != nil {
		return nil, "", err
	}
	userID, err := user(r, doc.UserID)
	if err != nil {
		return nil, "", err
	}
	seg, err := doc.Segment()
	if err != nil {
		return nil, "", badRequest("%v", err)
	}
	return seg, userID, nil
}

func (h *Handler) ListSegments(w http.ResponseWriter, r *http.Request) {
	userID, err := scope.RequireUserID(r.Context())
	if err != nil {
		h.writeError(w, r, err)
		return
	}
	segs, err := h.svc.ListSegments(r.Context(), userID)
	if err != nil {
		h.writeError(w, r, err)
		return
	}
	out := make([]segment.Document, len(segs))
	for i, s := range segs {
		out[i] = segment.NewDocument(s)
	}
	h.respondJSON(w, http.StatusOK, out)
}

func (h *Handler) CreateSegment(w http.ResponseWriter, r *http.Request) {
	seg, userID, err := h.decodeSegment(w, r)
	if err != nil {
		h.writeError(w, r, err)
		return
	}
	created, err := h.svc.CreateSegment(r.Context(), userID, seg)
	if err != nil {
		h.writeError(w, r, err)
		return
	}
	h.respondJSON(w, http.StatusCreated, segment.NewDocument(created))
}

// PreviewSegment validates a definition and returns its audience size
// without saving it.
func (h *Handler) PreviewSegment(w http.ResponseWriter, r *http.Request) {
	var doc segment.Document
	if err := h.decode(w, r, &doc); err != nil {
		h.writeError(w, r, err)
		return
	}
	seg, err := doc.Segment()
	if err != nil {
		h.writeError(w, r, badRequest("%v", err))
		return
	}
	n, err := h.svc.PreviewSegment(r.Context(), seg)
	if err != nil {
		h.writeError(w, r, err)
		return
	}
	h.respondJSON(w, http.StatusOK, previewResponse{AudienceSize: n})
}

func (h *Handler) GetSegment(w http.ResponseWriter, r *http.Request) {
	id, err := segmentID(r)
	if err != nil {
		h.writeError(w, r, err)
		return
	}
	userID, err := scope.RequireUserID(r.Context())
	if err != nil {
		h.writeError(w, r, err)
		return
	}
	seg, err := h.svc.GetSegment(r.Context(), userID, id)
	if err != nil {
		h.writeError(w, r, err)
		return
	}
	h.respondJSON(w, http.StatusOK, segment.NewDocument(seg))
}

func (h *Handler) ReplaceSegment(w http.ResponseWriter, r *http.Request) {
	id, err := segmentID(r)
	if err != nil {
		h.writeError(w, r, err)
		return
	}
	seg, userID, err := h.decodeSegment(w, r)
	if err != nil {
		h.writeError(w, r, err)
		return
	}
	updated, err := h.svc.ReplaceSegment(r.Context(), userID, id, seg)
	if err != nil {
		h.writeError(w, r, err)
		return
	}
	h.respondJSON(w, http.StatusOK, segment.NewDocument(updated))
}

func (h *Handler) DeleteSegment(w http.ResponseWriter, r *http.Request) {
	id, err := segmentID(r)
	if err != nil {
		h.writeError(w, r, err)
		return
	}
	userID, err := scope.RequireUserID(r.Context())
	if err != nil {
		h.writeError(w, r, err)
		return
	}
	if err := h.svc.DeleteSegment(r.Context(), userID, id); err != nil {
		h.writeError(w, r, err)
		return
	}
	w.WriteHeader(http.StatusNoContent)
}

// SegmentAudience returns the audience size and up to ?limit member IDs.
func (h *Handler) SegmentAudience(w http.ResponseWriter, r *http.Request) {
	id, err := segmentID(r)
	if err != nil {
		h.writeError(w, r, err)
		return
	}
	userID, err := scope.RequireUserID(r.Context())
	if err != nil {
		h.writeError(w, r, err)
		return
	}
	limit := 0
	if raw := r.URL.Query().Get("limit"); raw != "" {
		limit, err = strconv.Atoi(raw)
		if err != nil || limit < 0 {
			h.writeError(w, r, badRequest("limit must be a non-negative integer"))
			return
		}
	}
	a, err := h.svc.SegmentAudience(r.Context(), userID, id, limit)
	if err != nil {
		h.writeError(w, r, err)
		return
	}
	h.respondJSON(w, http.StatusOK, newAudienceResponse(a))
}

// IngestCustomers upserts a batch of customer profiles.
func (h *Handler) IngestCustomers(w http.ResponseWriter, r *http.Request) {
	var req ingestRequest
	if err := h.decode(w, r, &req); err != nil {
		h.writeError(w, r, err)
		return
	}
	profiles := make([]types.CustomerProfile, len(req.Customers))
	for i, c := range req.Customers {
		p, err := c.profile()
		if err != nil {
			h.writeError(w, r, fmt.Errorf("customers[%d]: %w", i, err))
			return
		}
		profiles[i] = p
	}
	ids, err := h.svc.IngestCustomers(r.Context(), profiles)
	if err != nil {
		h.writeError(w, r, err)
		return
	}
	if ids == nil {
		ids = []types.CustomerID{}
	}
	h.respondJSON(w, http.StatusCreated, ingestResponse{Inserted: len(ids), CustomerIDs: ids})
}

func (h *Handler) CreateCampaign(w http.ResponseWriter, r *http.Request) {
	var req campaignRequest
	if err := h.decode(w, r, &req); err != nil {
		h.writeError(w, r, err)
		return
	}
	userID, err := user(r, req.UserID)
	if err != nil {
		h.writeError(w, r, err)
		return
	}
	segID, err := types.ParseSegmentID(req.SegmentID)
	if err != nil {
		h.writeError(w, r, badRequest("invalid segmentId %q", req.SegmentID))
		return
	}
	c, err := h.svc.CreateCampaign(r.Context(), userID, req.Title, segID)
	if err != nil {
		h.writeError(w, r, err)
		return
	}
	h.respondJSON(w, http.StatusCreated, newCampaignResponse(c))
}

// PastCampaigns lists the caller's campaigns, newest first.
func (h *Handler) PastCampaigns(w http.ResponseWriter, r *http.Request) {
	userID, err := scope.RequireUserID(r.Context())
	if err != nil {
		h.writeError(w, r, err)
		return
	}
	cs, err := h.svc.ListCampaigns(r.Context(), userID)
	if err != nil {
		h.writeError(w, r, err)
		return
	}
	h.respondJSON(w, http.StatusOK, pastCampaignsResponse{Campaigns: newCampaignList(cs)})
}

func (h *Handler) ActiveCampaigns(w http.ResponseWriter, r *http.Request) {
	cs, err := h.svc.ActiveCampaigns(r.Context())
	if err != nil {
		h.writeError(w, r, err)
		return
	}
	h.respondJSON(w, http.StatusOK, activeCampaignsResponse{ActiveCampaigns: newCampaignList(cs)})
}

// CampaignCounts returns per-campaign delivery counts.
func (h *Handler) CampaignCounts(w http.ResponseWriter, r *http.Request) {
	stats, err := h.svc.CampaignStats(r.Context())
	if err != nil {
		h.writeError(w, r, err)
		return
	}
	out := make([]campaignStatsResponse, len(stats))
	for i, s := range stats {
		out[i] = campaignStatsResponse{
			CampaignID:   string(s.CampaignID),
			Title:        s.Title,
			OpenCount:    s.OpenCount,
			ClosedCount:  s.ClosedCount,
			SentCount:    s.SentCount,
			PendingCount: s.PendingCount,
			FailedCount:  s.FailedCount,
		}
	}
	h.respondJSON(w, http.StatusOK, campaignCountsResponse{CampaignStats: out})
}

func (h *Handler) SetCampaignState(w http.ResponseWriter, r *http.Request) {
	raw := chi.URLParam(r, "id")
	id, err := types.ParseCampaignID(raw)
	if err != nil {
		h.writeError(w, r, badRequest("invalid campaign id %q", raw))
		return
	}
	var req campaignStateRequest
	if err := h.decode(w, r, &req); err != nil {
		h.writeError(w, r, err)
		return
	}
	userID, err := user(r, req.UserID)
	if err != nil {
		h.writeError(w, r, err)
		return
	}
	c, err := h.svc.SetCampaignState(r.Context(), userID, id, types.CampaignState(req.State))
	if err != nil {
		h.writeError(w, r, err)
		return
	}
	h.respondJSON(w, http.StatusOK, newCampaignResponse(c))
}

// RecordReceipt stores a delivery receipt from the message dispatcher.
func (h *Handler) RecordReceipt(w http.ResponseWriter, r *http.Request) {
	raw := chi.URLParam(r, "id")
	id, err := types.ParseLogID(raw)
	if err != nil {
		h.writeError(w, r, badRequest("invalid log id %q", raw))
		return
	}
	var req receiptRequest
	if err := h.decode(w, r, &req); err != nil {
		h.writeError(w, r, err)
		return
	}
	l, err := h.svc.RecordDelivery(r.Context(), id, types.LogStatus(req.Status))
	if err != nil {
		h.writeError(w, r, err)
		return
	}
	h.respondJSON(w, http.StatusOK, logResponse{
		ID:         string(l.LogID),
		CampaignID: string(l.CampaignID),
		CustomerID: string(l.CustomerID),
		Status:     string(l.Status),
		CreatedAt:  l.CreatedAt.UTC().Format(time.RFC3339Nano),
	})
}

func (h *Handler) Dashboard(w http.ResponseWriter, r *http.Request) {
	s, err := h.svc.DashboardStats(r.Context())
	if err != nil {
		h.writeError(w, r, err)
		return
	}
	h.respondJSON(w, http.StatusOK, dashboardResponse{
		TotalCustomers: s.TotalCustomers,
		TotalSegments:  s.TotalSegments,
		TotalCampaigns: s.TotalCampaigns,
		OpenCount:      s.OpenCount,
		ClosedCount:    s.ClosedCount,
		SentCount:      s.SentCount,
		PendingCount:   s.PendingCount,
		FailedCount:    s.FailedCount,
	})
}

// Health reports OK when the database answers.
func (h *Handler) Health(w http.ResponseWriter, r *http.Request) {
	if err := h.svc.Ping(r.Context()); err != nil {
		h.log.WithContext(r.Context()).Warnw("health check failed", "error", err)
		http.Error(w, "database unavailable", http.StatusServiceUnavailable)
		return
	}
	w.Header().Set("Content-Type", "text/plain; charset=utf-8")
	w.WriteHeader(http.StatusOK)
	_, _ = w.Write([]byte("OK"))
}
