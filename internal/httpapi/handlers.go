package httpapi

import (
	"net/http"
	"strings"

	"go.uber.org/zap"

	"github.com/Ovitozinn/luxe-dash-suite/internal/apperrors"
	"github.com/Ovitozinn/luxe-dash-suite/internal/model"
	"github.com/Ovitozinn/luxe-dash-suite/internal/usecase"
	"github.com/Ovitozinn/luxe-dash-suite/internal/validator"
	"github.com/Ovitozinn/luxe-dash-suite/pkg/logger"
	"github.com/Ovitozinn/luxe-dash-suite/pkg/utils"
)

// DispatchRequest is the body of POST /api/dispatch.
type DispatchRequest struct {
	Message     string   `json:"message" validate:"max=4096"`
	Mode        string   `json:"mode" validate:"required,oneof=all stale manual no-schedule selected"`
	SelectedIDs []string `json:"selectedIds" validate:"dive,required"`
}

// agendaResponse carries the view state next to the rows so the client can
// render the period header even when the fetch failed.
type agendaResponse struct {
	View    usecase.AgendaSnapshot `json:"view"`
	Data    []usecase.AgendaRow    `json:"data"`
	Loading bool                   `json:"loading"`
	Error   *string                `json:"error"`
}

type handlers struct {
	deps Deps
}

// getDashboard handles GET /api/dashboard.
func (h *handlers) getDashboard(w http.ResponseWriter, r *http.Request) {
	env := usecase.NewDashboardPage(h.deps.Dashboard).Load(r.Context())
	utils.WriteJSONResponse(w, http.StatusOK, env)
}

// getAgenda handles GET /api/agenda?mode=&date=&nav=.
func (h *handlers) getAgenda(w http.ResponseWriter, r *http.Request) {
	q := r.URL.Query()

	mode, err := usecase.ParseViewMode(q.Get("mode"))
	if err != nil {
		writeError(w, statusFor(err), err.Error())
		return
	}
	nav := strings.ToLower(q.Get("nav"))
	if err := validator.ValidateVar(nav, "omitempty,oneof=prev next today"); err != nil {
		writeError(w, http.StatusBadRequest, "nav must be one of: prev next today")
		return
	}

	page := usecase.NewAgendaPage(h.deps.Agenda, h.deps.Linker, h.deps.Calendar, h.deps.Clock)
	page.View.SelectMode(mode)

	if date := q.Get("date"); date != "" {
		anchor, err := utils.ParseDate(date, h.deps.Calendar.Location())
		if err != nil {
			writeError(w, http.StatusBadRequest, err.Error())
			return
		}
		page.View.SetAnchor(anchor)
	}

	switch nav {
	case "prev":
		page.View.Prev()
	case "next":
		page.View.Next()
	case "today":
		page.View.Today()
	}

	snap, env := page.Load(r.Context())
	utils.WriteJSONResponse(w, http.StatusOK, agendaResponse{
		View:    snap,
		Data:    env.Data,
		Loading: env.Loading,
		Error:   env.Error,
	})
}

// getContacts handles GET /api/contacts.
func (h *handlers) getContacts(w http.ResponseWriter, r *http.Request) {
	env := usecase.NewContactsPage(h.deps.Contacts, h.deps.Classifier, h.deps.Clock).Load(r.Context())
	utils.WriteJSONResponse(w, http.StatusOK, env)
}

// getDispatchSummary handles GET /api/dispatch/summary?ids=.
func (h *handlers) getDispatchSummary(w http.ResponseWriter, r *http.Request) {
	composer := usecase.NewDispatchComposer(h.deps.Contacts, h.deps.Classifier, nil, h.deps.Clock)
	loaded := composer.Load(r.Context())
	if loaded.Error != nil {
		utils.WriteJSONResponse(w, http.StatusOK, usecase.Envelope[*usecase.SubsetSizes]{Error: loaded.Error})
		return
	}

	for _, id := range queryIDs(r.URL.Query()["ids"]) {
		composer.Toggle(id)
	}
	sizes := composer.Summary()
	utils.WriteJSONResponse(w, http.StatusOK, usecase.Envelope[*usecase.SubsetSizes]{Data: &sizes})
}

// postDispatch handles POST /api/dispatch.
func (h *handlers) postDispatch(w http.ResponseWriter, r *http.Request) {
	ctx := r.Context()

	var req DispatchRequest
	if err := utils.DecodeJSONBody(r, &req); err != nil {
		writeError(w, http.StatusBadRequest, err.Error())
		return
	}
	if err := validator.Validate(req); err != nil {
		writeError(w, statusFor(err), err.Error())
		return
	}
	mode, err := usecase.ParseDispatchMode(req.Mode)
	if err != nil {
		writeError(w, statusFor(err), err.Error())
		return
	}

	composer := usecase.NewDispatchComposer(h.deps.Contacts, h.deps.Classifier, h.deps.Publisher, h.deps.Clock)
	loaded := composer.Load(ctx)
	if loaded.Error != nil {
		utils.WriteJSONResponse(w, http.StatusOK, usecase.Envelope[*model.DispatchResult]{Error: loaded.Error})
		return
	}

	composer.SetMessage(req.Message)
	composer.SetMode(mode)
	for _, id := range queryIDs(req.SelectedIDs) {
		composer.Toggle(id)
	}

	result, err := composer.Send(ctx)
	if err != nil {
		status := statusFor(err)
		message := apperrors.UserMessage(err)
		if status == http.StatusInternalServerError {
			logger.FromContext(ctx).Error("Dispatch failed", zap.Error(err))
			message = "internal server error"
		}
		writeError(w, status, message)
		return
	}
	utils.WriteJSONResponse(w, http.StatusOK, usecase.Envelope[*model.DispatchResult]{Data: &result})
}

// queryIDs flattens repeated and comma separated ids, dropping blanks and
// duplicates so toggling never cancels itself out.
func queryIDs(values []string) []string {
	seen := make(map[string]struct{})
	var ids []string
	for _, v := range values {
		for _, id := range strings.Split(v, ",") {
			id = strings.TrimSpace(id)
			if id == "" {
				continue
			}
			if _, ok := seen[id]; ok {
				continue
			}
			seen[id] = struct{}{}
			ids = append(ids, id)
		}
	}
	return ids
}

func writeError(w http.ResponseWriter, status int, message string) {
	utils.WriteJSONResponse(w, status, usecase.Envelope[any]{Error: &message})
}

// statusFor maps a service error to an HTTP status.
func statusFor(err error) int {
	switch {
	case apperrors.IsBadRequestError(err):
		return http.StatusBadRequest
	case apperrors.IsValidationError(err):
		return http.StatusUnprocessableEntity
	case apperrors.IsNotFoundError(err):
		return http.StatusNotFound
	case apperrors.IsDatabaseError(err):
		return http.StatusServiceUnavailable
	default:
		return http.StatusInternalServerError
	}
}
