package ws

import (
	"encoding/json"

	"github.com/gofiber/contrib/websocket"
	"github.com/rs/zerolog/log"

	"github.com/dmarulanda/ventas-api/internal/application/events"
)

var _ events.Publisher = (*Hub)(nil)

type client struct {
	conn      *websocket.Conn
	companyID string
}

// Hub difunde los eventos de cambio a los clientes websocket conectados,
// espaciados por empresa: un cliente solo recibe eventos de su propia empresa.
//
// El mapa de clientes es propiedad exclusiva de la goroutine de Run; registro,
// baja y difusión llegan por canales, así no hace falta mutex.
type Hub struct {
	register   chan client
	unregister chan *websocket.Conn
	broadcast  chan events.Event
}

// NewHub construye el hub. Llamar `go hub.Run()` antes de aceptar conexiones.
func NewHub() *Hub {
	return &Hub{
		register:   make(chan client),
		unregister: make(chan *websocket.Conn),
		broadcast:  make(chan events.Event, 64),
	}
}

// Publish implementa events.Publisher. Nunca bloquea al emisor: si el hub
// está saturado el evento se descarta (los clientes reconsultan por REST).
func (h *Hub) Publish(event events.Event) {
	select {
	case h.broadcast <- event:
	default:
		log.Warn().Str("type", event.Type).Msg("hub saturado, evento descartado")
	}
}

// Run atiende registro, baja y difusión en un bucle único.
func (h *Hub) Run() {
	clients := make(map[*websocket.Conn]string) // conn -> companyID
	for {
		select {
		case c := <-h.register:
			clients[c.conn] = c.companyID
			log.Debug().Str("company_id", c.companyID).Msg("cliente websocket conectado")

		case conn := <-h.unregister:
			if _, ok := clients[conn]; ok {
				delete(clients, conn)
				conn.Close()
			}

		case ev := <-h.broadcast:
			data, err := json.Marshal(ev)
			if err != nil {
				log.Error().Err(err).Str("type", ev.Type).Msg("serializar evento")
				continue
			}
			for conn, companyID := range clients {
				if companyID != ev.CompanyID {
					continue
				}
				if err := conn.WriteMessage(websocket.TextMessage, data); err != nil {
					conn.Close()
					delete(clients, conn)
				}
			}
		}
	}
}

// ServeClient registra la conexión en el hub y queda leyendo hasta que el
// cliente se desconecta. Se invoca dentro de websocket.New en el router.
func (h *Hub) ServeClient(conn *websocket.Conn, companyID string) {
	h.register <- client{conn: conn, companyID: companyID}
	defer func() { h.unregister <- conn }()

	for {
		// Bucle de keep-alive: solo interesa detectar el cierre
		if _, _, err := conn.ReadMessage(); err != nil {
			return
		}
	}
}
