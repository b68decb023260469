package api

import (
	"net/http"

	"github.com/go-chi/chi/v5"
	"github.com/google/uuid"

	"github.com/dentalcare/clinic-api/internal/notification"
)

func listNotificationsHandler(svc *notification.Service) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		ident, _ := GetIdentity(r.Context())

		items, err := svc.ListForUser(r.Context(), ident.ID)
		if err != nil {
			writeDomainError(w, err)
			return
		}

		resp := make([]NotificationResponse, 0, len(items))
		for _, n := range items {
			resp = append(resp, NotificationResponse{
				ID:            n.ID,
				AppointmentID: n.AppointmentID,
				Type:          string(n.Type),
				Title:         n.Title,
				Message:       n.Message,
				IsRead:        n.IsRead,
				CreatedAt:     n.CreatedAt,
			})
		}

		writeJSON(w, http.StatusOK, resp)
	}
}

func unreadCountHandler(svc *notification.Service) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		ident, _ := GetIdentity(r.Context())

		count, err := svc.UnreadCount(r.Context(), ident.ID)
		if err != nil {
			writeDomainError(w, err)
			return
		}

		writeJSON(w, http.StatusOK, UnreadCountResponse{UnreadCount: count})
	}
}

func markNotificationReadHandler(svc *notification.Service) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		ident, _ := GetIdentity(r.Context())

		id, err := uuid.Parse(chi.URLParam(r, "id"))
		if err != nil {
			writeError(w, http.StatusBadRequest, "invalid_notification_id", "id must be a valid UUID")
			return
		}

		if err := svc.MarkRead(r.Context(), id, ident.ID); err != nil {
			writeDomainError(w, err)
			return
		}

		writeJSON(w, http.StatusOK, MessageResponse{Message: "notification marked as read"})
	}
}

func markAllNotificationsReadHandler(svc *notification.Service) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		ident, _ := GetIdentity(r.Context())

		if err := svc.MarkAllRead(r.Context(), ident.ID); err != nil {
			writeDomainError(w, err)
			return
		}

		writeJSON(w, http.StatusOK, MessageResponse{Message: "all notifications marked as read"})
	}
}

func deleteNotificationHandler(svc *notification.Service) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		ident, _ := GetIdentity(r.Context())

		id, err := uuid.Parse(chi.URLParam(r, "id"))
		if err != nil {
			writeError(w, http.StatusBadRequest, "invalid_notification_id", "id must be a valid UUID")
			return
		}

		if err := svc.Delete(r.Context(), id, ident.ID); err != nil {
			writeDomainError(w, err)
			return
		}

		writeJSON(w, http.StatusOK, MessageResponse{Message: "notification deleted"})
	}
}
