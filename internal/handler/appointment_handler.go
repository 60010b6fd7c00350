package handler

import (
	"net/http"

	"github.com/go-chi/chi/v5"

	"shinesmile/internal/app/appointment"
	"shinesmile/internal/pkg/errs"
	"shinesmile/internal/pkg/req"
	"shinesmile/internal/pkg/resp"
)

// appointmentID reads the {id} path parameter, answering 400 when it is not a positive integer.
func appointmentID(w http.ResponseWriter, r *http.Request) (int64, bool) {
	id, ok := req.PathID(r, "id")
	if !ok {
		resp.RespondError(w, r, errs.NewError(errs.ErrInvalidAppointmentID))
	}
	return id, ok
}

// HandleBookAppointment books a slot for the signed-in user.
func HandleBookAppointment(deps *AppDeps) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		var input appointment.BookRequest
		if customErr := req.BindJSON(w, r, &input); customErr != nil {
			resp.RespondError(w, r, customErr)
			return
		}

		booked, err := deps.Appointments.Book(r.Context(), actorFrom(r), input)
		if err != nil {
			resp.RespondErr(w, r, err)
			return
		}

		resp.RespondCreated(w, r, "Appointment booked successfully", map[string]any{"appointment": booked})
	}
}

// HandleMyAppointments lists the signed-in user's appointments.
func HandleMyAppointments(deps *AppDeps) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		list, err := deps.Appointments.ListForUser(r.Context(), actorFrom(r))
		if err != nil {
			resp.RespondErr(w, r, err)
			return
		}

		resp.RespondSuccess(w, r, map[string]any{"appointments": list})
	}
}

// HandleAvailableSlots lists the free slots of the {date} path parameter.
func HandleAvailableSlots(deps *AppDeps) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		date := chi.URLParam(r, "date")

		slots, err := deps.Appointments.AvailableSlots(r.Context(), date)
		if err != nil {
			resp.RespondErr(w, r, err)
			return
		}

		normalized, _ := appointment.NormalizeDate(date)
		resp.RespondSuccess(w, r, map[string]any{
			"date":           normalized,
			"availableSlots": slots,
		})
	}
}

// HandleGetAppointment returns one appointment to its owner or an admin.
func HandleGetAppointment(deps *AppDeps) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		id, ok := appointmentID(w, r)
		if !ok {
			return
		}

		a, err := deps.Appointments.Get(r.Context(), actorFrom(r), id)
		if err != nil {
			resp.RespondErr(w, r, err)
			return
		}

		resp.RespondSuccess(w, r, map[string]any{"appointment": a})
	}
}

// HandleCancelAppointment lets the owner cancel a pending appointment.
func HandleCancelAppointment(deps *AppDeps) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		id, ok := appointmentID(w, r)
		if !ok {
			return
		}

		a, err := deps.Appointments.Cancel(r.Context(), actorFrom(r), id)
		if err != nil {
			resp.RespondErr(w, r, err)
			return
		}

		resp.RespondMessage(w, r, "Appointment cancelled successfully", map[string]any{"appointment": a})
	}
}

// HandleListAllAppointments lists every appointment. Admin only.
func HandleListAllAppointments(deps *AppDeps) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		list, err := deps.Appointments.ListAll(r.Context(), actorFrom(r))
		if err != nil {
			resp.RespondErr(w, r, err)
			return
		}

		resp.RespondSuccess(w, r, map[string]any{"appointments": list})
	}
}

// HandleUpdateAppointment applies an admin edit.
func HandleUpdateAppointment(deps *AppDeps) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		id, ok := appointmentID(w, r)
		if !ok {
			return
		}

		var input appointment.UpdateRequest
		if customErr := req.BindJSON(w, r, &input); customErr != nil {
			resp.RespondError(w, r, customErr)
			return
		}

		a, err := deps.Appointments.Update(r.Context(), actorFrom(r), id, input)
		if err != nil {
			resp.RespondErr(w, r, err)
			return
		}

		resp.RespondMessage(w, r, "Appointment updated successfully", map[string]any{"appointment": a})
	}
}

// HandleDeleteAppointment removes an appointment. Admin only.
func HandleDeleteAppointment(deps *AppDeps) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		id, ok := appointmentID(w, r)
		if !ok {
			return
		}

		if err := deps.Appointments.Delete(r.Context(), actorFrom(r), id); err != nil {
			resp.RespondErr(w, r, err)
			return
		}

		resp.RespondMessage(w, r, "Appointment deleted successfully", nil)
	}
}
