package api

import (
	"net/http"

	"github.com/go-chi/chi/v5"
	"github.com/google/uuid"

	"github.com/dentalcare/clinic-api/internal/appointment"
	"github.com/dentalcare/clinic-api/internal/user"
)

func adminListUsersHandler(svc *user.Service) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		users, err := svc.ListUsers(r.Context())
		if err != nil {
			writeDomainError(w, err)
			return
		}

		resp := make([]UserResponse, 0, len(users))
		for _, u := range users {
			resp = append(resp, UserResponse{
				ID:    u.ID,
				Name:  u.Name,
				Email: u.Email,
				Role:  u.Role,
			})
		}

		writeJSON(w, http.StatusOK, resp)
	}
}

func adminListAppointmentsHandler(svc *appointment.Service) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		appts, err := svc.ListAll(r.Context())
		if err != nil {
			writeDomainError(w, err)
			return
		}

		resp := make([]AdminAppointmentResponse, 0, len(appts))
		for i := range appts {
			resp = append(resp, AdminAppointmentResponse{
				AppointmentResponse: toAppointmentResponse(&appts[i].Appointment),
				UserID:              appts[i].UserID,
				UserName:            appts[i].UserName,
				UserEmail:           appts[i].UserEmail,
			})
		}

		writeJSON(w, http.StatusOK, resp)
	}
}

func adminDecisionHandler(svc *appointment.Service, approve bool) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		id, err := uuid.Parse(chi.URLParam(r, "id"))
		if err != nil {
			writeError(w, http.StatusBadRequest, "invalid_appointment_id", "id must be a valid UUID")
			return
		}

		var appt *appointment.Appointment
		if approve {
			appt, err = svc.Approve(r.Context(), id)
		} else {
			appt, err = svc.Reject(r.Context(), id)
		}
		if err != nil {
			writeDomainError(w, err)
			return
		}

		writeJSON(w, http.StatusOK, toAppointmentResponse(appt))
	}
}

func adminPendingCountHandler(svc *appointment.Service) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		count, err := svc.PendingCount(r.Context())
		if err != nil {
			writeDomainError(w, err)
			return
		}

		writeJSON(w, http.StatusOK, PendingCountResponse{PendingCount: count})
	}
}
