// Package web serves the server-rendered pages for managing clients, rooms
// and reservations.
package web

import (
	"embed"
	"errors"
	"fmt"
	"html/template"
	"net/http"
	"time"

	"github.com/gin-gonic/gin"
	"github.com/gin-gonic/gin/render"
	"go.uber.org/zap"

	"hotel/internal/domain/client"
	"hotel/internal/domain/reservation"
	"hotel/internal/domain/room"
	"hotel/internal/pkg/apperr"
	"hotel/internal/pkg/logger"
	"hotel/internal/pkg/response"
)

//go:embed templates/*.html
var templateFS embed.FS

var pageNames = []string{
	"clients", "client_form",
	"rooms", "room_form",
	"reservations", "reservation_form",
	"availability",
}

var funcs = template.FuncMap{
	"date": func(t time.Time) string {
		if t.IsZero() {
			return "-"
		}
		return t.UTC().Format(reservation.DateLayout)
	},
	"price": func(p float64) string {
		return fmt.Sprintf("%.2f", p)
	},
	"nights": func(a, d time.Time) int {
		return reservation.Interval{Arrival: a, Departure: d}.Nights()
	},
}

// page is the view model shared by every template.
type page struct {
	Title    string
	Active   string
	Error    string
	Fields   map[string]string
	Form     map[string]string
	Action   string
	Data     any
	Clients  []client.Client
	Rooms    []room.Room
	Searched bool
	Live     bool
}

type Handler struct {
	clients      *client.Service
	rooms        *room.Service
	reservations *reservation.Service
	reporter     *reservation.Reporter
	pages        map[string]*template.Template
	log          *zap.Logger
}

func NewHandler(
	clients *client.Service,
	rooms *room.Service,
	reservations *reservation.Service,
	reporter *reservation.Reporter,
	log *zap.Logger,
) (*Handler, error) {
	if reporter == nil {
		return nil, errors.New("web: reservation reporter is required")
	}

	pages := make(map[string]*template.Template, len(pageNames))
	for _, name := range pageNames {
		t, err := template.New(name).Funcs(funcs).ParseFS(templateFS, "templates/layout.html", "templates/"+name+".html")
		if err != nil {
			return nil, fmt.Errorf("failed to parse template %s: %w", name, err)
		}
		pages[name] = t
	}

	return &Handler{
		clients:      clients,
		rooms:        rooms,
		reservations: reservations,
		reporter:     reporter,
		pages:        pages,
		log:          logger.OrNop(log).Named("web"),
	}, nil
}

func (h *Handler) render(c *gin.Context, status int, name string, p page) {
	if p.Fields == nil {
		p.Fields = map[string]string{}
	}
	if p.Form == nil {
		p.Form = map[string]string{}
	}
	c.Render(status, render.HTML{Template: h.pages[name], Name: "layout", Data: p})
}

// fail renders the page again with the service error shown inline.
func (h *Handler) fail(c *gin.Context, name string, p page, err error) {
	kind := apperr.KindOf(err)
	if kind == apperr.KindInternal {
		h.log.Error("page request failed", zap.String("path", c.Request.URL.Path), zap.Error(err))
		p.Error = "Something went wrong. Please try again."
	} else {
		p.Error = err.Error()
		p.Fields = apperr.FieldsOf(err)
	}
	h.render(c, response.StatusFor(kind), name, p)
}

func (h *Handler) redirect(c *gin.Context, location string) {
	c.Redirect(http.StatusSeeOther, location)
}

func (h *Handler) RegisterRoutes(r gin.IRouter) {
	r.GET("/", func(c *gin.Context) { c.Redirect(http.StatusFound, "/pages/rooms") })

	p := r.Group("/pages")
	{
		p.GET("/clients", h.ClientList)
		p.GET("/clients/new", h.ClientNew)
		p.POST("/clients/new", h.ClientCreate)
		p.GET("/clients/:id/edit", h.ClientEdit)
		p.POST("/clients/:id/edit", h.ClientUpdate)
		p.POST("/clients/:id/delete", h.ClientDelete)

		p.GET("/rooms", h.RoomList)
		p.GET("/rooms/new", h.RoomNew)
		p.POST("/rooms/new", h.RoomCreate)
		p.GET("/rooms/:id/edit", h.RoomEdit)
		p.POST("/rooms/:id/edit", h.RoomUpdate)
		p.POST("/rooms/:id/delete", h.RoomDelete)

		p.GET("/reservations", h.ReservationList)
		p.GET("/reservations/new", h.ReservationNew)
		p.POST("/reservations/new", h.ReservationCreate)
		p.POST("/reservations/:id/cancel", h.ReservationCancel)

		p.GET("/availability", h.Availability)
	}
}
