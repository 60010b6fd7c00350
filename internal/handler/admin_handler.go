package handler

import (
	"net/http"

	"shinesmile/internal/pkg/errs"
	"shinesmile/internal/pkg/req"
	"shinesmile/internal/pkg/resp"
)

type StatusInput struct {
	Status string `json:"status"`
}

// HandleSetAppointmentStatus moves an appointment to a new status.
func HandleSetAppointmentStatus(deps *AppDeps) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		id, ok := appointmentID(w, r)
		if !ok {
			return
		}

		var input StatusInput
		if customErr := req.BindJSON(w, r, &input); customErr != nil {
			resp.RespondError(w, r, customErr)
			return
		}
		if input.Status == "" {
			resp.RespondError(w, r, errs.NewError(errs.ErrMissingField, "Status"))
			return
		}

		a, err := deps.Appointments.SetStatus(r.Context(), actorFrom(r), id, input.Status)
		if err != nil {
			resp.RespondErr(w, r, err)
			return
		}

		resp.RespondMessage(w, r, "Appointment status updated successfully", map[string]any{"appointment": a})
	}
}

// HandleStatistics returns the dashboard counters.
func HandleStatistics(deps *AppDeps) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		stats, err := deps.Appointments.Statistics(r.Context(), actorFrom(r))
		if err != nil {
			resp.RespondErr(w, r, err)
			return
		}

		resp.RespondSuccess(w, r, map[string]any{"statistics": stats})
	}
}
