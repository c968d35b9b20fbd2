package web

import (
	"net/http"
	"strconv"

	"github.com/gin-gonic/gin"

	"hotel/internal/domain/client"
	"hotel/internal/domain/reservation"
	"hotel/internal/domain/room"
	"hotel/internal/pkg/apperr"
	"hotel/internal/pkg/params"
	"hotel/internal/pkg/validator"
)

// bind maps form values into dst. Validation failures become an
// apperr.Validation carrying per-field messages.
func bind(c *gin.Context, dst any) error {
	if err := c.ShouldBind(dst); err != nil {
		if fields := validator.Fields(err); len(fields) > 0 {
			return apperr.Validation("Please correct the highlighted fields", fields)
		}
		return apperr.Validation("Invalid form submission", nil)
	}
	return nil
}

func formValues(c *gin.Context, keys ...string) map[string]string {
	out := make(map[string]string, len(keys))
	for _, k := range keys {
		out[k] = c.PostForm(k)
	}
	return out
}

// Clients

func (h *Handler) ClientList(c *gin.Context) {
	p := page{Title: "Clients", Active: "clients"}
	clients, err := h.clients.List(c.Request.Context())
	if err != nil {
		h.fail(c, "clients", p, err)
		return
	}
	p.Data = clients
	h.render(c, http.StatusOK, "clients", p)
}

func (h *Handler) ClientNew(c *gin.Context) {
	h.render(c, http.StatusOK, "client_form", page{Title: "New client", Active: "clients", Action: "/pages/clients/new"})
}

func (h *Handler) ClientCreate(c *gin.Context) {
	p := page{
		Title:  "New client",
		Active: "clients",
		Action: "/pages/clients/new",
		Form:   formValues(c, "name", "email"),
	}

	var req client.CreateClientRequest
	if err := bind(c, &req); err != nil {
		h.fail(c, "client_form", p, err)
		return
	}
	if _, err := h.clients.Create(c.Request.Context(), req); err != nil {
		h.fail(c, "client_form", p, err)
		return
	}
	h.redirect(c, "/pages/clients")
}

func (h *Handler) ClientEdit(c *gin.Context) {
	p := page{Title: "Edit client", Active: "clients"}
	id, err := params.PathID(c, "id")
	if err != nil {
		h.fail(c, "client_form", p, err)
		return
	}
	p.Action = "/pages/clients/" + strconv.FormatInt(id, 10) + "/edit"

	cl, err := h.clients.Get(c.Request.Context(), id)
	if err != nil {
		h.fail(c, "client_form", p, err)
		return
	}
	p.Form = map[string]string{"name": cl.Name, "email": cl.Email}
	h.render(c, http.StatusOK, "client_form", p)
}

func (h *Handler) ClientUpdate(c *gin.Context) {
	p := page{Title: "Edit client", Active: "clients", Form: formValues(c, "name", "email")}
	id, err := params.PathID(c, "id")
	if err != nil {
		h.fail(c, "client_form", p, err)
		return
	}
	p.Action = "/pages/clients/" + strconv.FormatInt(id, 10) + "/edit"

	var req client.CreateClientRequest
	if err := bind(c, &req); err != nil {
		h.fail(c, "client_form", p, err)
		return
	}
	update := client.UpdateClientRequest{Name: &req.Name, Email: &req.Email}
	if _, err := h.clients.Update(c.Request.Context(), id, update); err != nil {
		h.fail(c, "client_form", p, err)
		return
	}
	h.redirect(c, "/pages/clients")
}

func (h *Handler) ClientDelete(c *gin.Context) {
	id, err := params.PathID(c, "id")
	if err == nil {
		err = h.clients.Delete(c.Request.Context(), id)
	}
	if err != nil {
		p := page{Title: "Clients", Active: "clients"}
		p.Data, _ = h.clients.List(c.Request.Context())
		h.fail(c, "clients", p, err)
		return
	}
	h.redirect(c, "/pages/clients")
}

// Rooms

func (h *Handler) RoomList(c *gin.Context) {
	p := page{Title: "Rooms", Active: "rooms"}
	rooms, err := h.rooms.List(c.Request.Context())
	if err != nil {
		h.fail(c, "rooms", p, err)
		return
	}
	p.Data = rooms
	h.render(c, http.StatusOK, "rooms", p)
}

func (h *Handler) RoomNew(c *gin.Context) {
	h.render(c, http.StatusOK, "room_form", page{Title: "New room", Active: "rooms", Action: "/pages/rooms/new"})
}

func (h *Handler) RoomCreate(c *gin.Context) {
	p := page{
		Title:  "New room",
		Active: "rooms",
		Action: "/pages/rooms/new",
		Form:   formValues(c, "number", "type", "price"),
	}

	var req room.CreateRoomRequest
	if err := bind(c, &req); err != nil {
		h.fail(c, "room_form", p, err)
		return
	}
	if _, err := h.rooms.Create(c.Request.Context(), req); err != nil {
		h.fail(c, "room_form", p, err)
		return
	}
	h.redirect(c, "/pages/rooms")
}

func (h *Handler) RoomEdit(c *gin.Context) {
	p := page{Title: "Edit room", Active: "rooms"}
	id, err := params.PathID(c, "id")
	if err != nil {
		h.fail(c, "room_form", p, err)
		return
	}
	p.Action = "/pages/rooms/" + strconv.FormatInt(id, 10) + "/edit"

	r, err := h.rooms.Get(c.Request.Context(), id)
	if err != nil {
		h.fail(c, "room_form", p, err)
		return
	}
	p.Form = map[string]string{
		"number": r.Number,
		"type":   r.Type,
		"price":  strconv.FormatFloat(r.Price, 'f', -1, 64),
	}
	h.render(c, http.StatusOK, "room_form", p)
}

func (h *Handler) RoomUpdate(c *gin.Context) {
	p := page{Title: "Edit room", Active: "rooms", Form: formValues(c, "number", "type", "price")}
	id, err := params.PathID(c, "id")
	if err != nil {
		h.fail(c, "room_form", p, err)
		return
	}
	p.Action = "/pages/rooms/" + strconv.FormatInt(id, 10) + "/edit"

	var req room.CreateRoomRequest
	if err := bind(c, &req); err != nil {
		h.fail(c, "room_form", p, err)
		return
	}
	update := room.UpdateRoomRequest{Number: &req.Number, Type: &req.Type, Price: &req.Price}
	if _, err := h.rooms.Update(c.Request.Context(), id, update); err != nil {
		h.fail(c, "room_form", p, err)
		return
	}
	h.redirect(c, "/pages/rooms")
}

func (h *Handler) RoomDelete(c *gin.Context) {
	id, err := params.PathID(c, "id")
	if err == nil {
		err = h.rooms.Delete(c.Request.Context(), id)
	}
	if err != nil {
		p := page{Title: "Rooms", Active: "rooms"}
		p.Data, _ = h.rooms.List(c.Request.Context())
		h.fail(c, "rooms", p, err)
		return
	}
	h.redirect(c, "/pages/rooms")
}

// Reservations

func (h *Handler) reservationListPage(c *gin.Context) (page, error) {
	p := page{Title: "Reservations", Active: "reservations", Live: true}
	rows, err := h.reporter.Overview(c.Request.Context(), reservation.OverviewFilter{})
	p.Data = rows
	return p, err
}

func (h *Handler) ReservationList(c *gin.Context) {
	p, err := h.reservationListPage(c)
	if err != nil {
		h.fail(c, "reservations", p, err)
		return
	}
	h.render(c, http.StatusOK, "reservations", p)
}

func (h *Handler) reservationForm(c *gin.Context, form map[string]string) (page, error) {
	p := page{Title: "New reservation", Active: "reservations", Form: form}

	clients, err := h.clients.List(c.Request.Context())
	if err != nil {
		return p, err
	}
	rooms, err := h.rooms.List(c.Request.Context())
	if err != nil {
		return p, err
	}
	p.Clients, p.Rooms = clients, rooms
	return p, nil
}

func (h *Handler) ReservationNew(c *gin.Context) {
	form := map[string]string{
		"client_id":      c.Query("client_id"),
		"room_id":        c.Query("room_id"),
		"arrival_date":   c.Query("arrival_date"),
		"departure_date": c.Query("departure_date"),
	}
	p, err := h.reservationForm(c, form)
	if err != nil {
		h.fail(c, "reservation_form", p, err)
		return
	}
	h.render(c, http.StatusOK, "reservation_form", p)
}

func (h *Handler) ReservationCreate(c *gin.Context) {
	p, err := h.reservationForm(c, formValues(c, "client_id", "room_id", "arrival_date", "departure_date"))
	if err != nil {
		h.fail(c, "reservation_form", p, err)
		return
	}

	var req reservation.CreateReservationRequest
	if err := bind(c, &req); err != nil {
		h.fail(c, "reservation_form", p, err)
		return
	}
	arrival, departure, err := req.Stay()
	if err != nil {
		h.fail(c, "reservation_form", p, err)
		return
	}
	if _, err := h.reservations.BookRoom(c.Request.Context(), req.ClientID, req.RoomID, arrival, departure); err != nil {
		h.fail(c, "reservation_form", p, err)
		return
	}
	h.redirect(c, "/pages/reservations")
}

func (h *Handler) ReservationCancel(c *gin.Context) {
	id, err := params.PathID(c, "id")
	if err == nil {
		err = h.reservations.CancelReservation(c.Request.Context(), id)
	}
	if err != nil {
		p, _ := h.reservationListPage(c)
		h.fail(c, "reservations", p, err)
		return
	}
	h.redirect(c, "/pages/reservations")
}

// Availability

func (h *Handler) Availability(c *gin.Context) {
	p := page{
		Title:  "Availability",
		Active: "availability",
		Form:   map[string]string{"arrival": c.Query("arrival"), "departure": c.Query("departure")},
	}
	if p.Form["arrival"] == "" && p.Form["departure"] == "" {
		h.render(c, http.StatusOK, "availability", p)
		return
	}

	arrival, departure, err := params.QueryDates(c)
	if err != nil {
		h.fail(c, "availability", p, err)
		return
	}
	rooms, err := h.reservations.ListFreeRooms(c.Request.Context(), arrival, departure)
	if err != nil {
		h.fail(c, "availability", p, err)
		return
	}
	p.Searched = true
	p.Data = rooms
	h.render(c, http.StatusOK, "availability", p)
}
