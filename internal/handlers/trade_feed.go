package handlers

import (
	"net/http"
	"sync"

	"github.com/gin-gonic/gin"
	"github.com/gorilla/websocket"
	log "github.com/sirupsen/logrus"

	"moonpool/internal/engine"
)

var upgrader = websocket.Upgrader{
	ReadBufferSize:  1024,
	WriteBufferSize: 1024,
	CheckOrigin: func(r *http.Request) bool {
		return true
	},
}

// subscriber wraps one websocket connection. The mutex serializes writes:
// gorilla/websocket allows at most one concurrent writer per connection, and
// trades broadcast from concurrent request handlers.
type subscriber struct {
	mu   sync.Mutex
	conn *websocket.Conn
}

func (s *subscriber) send(v interface{}) error {
	s.mu.Lock()
	defer s.mu.Unlock()
	return s.conn.WriteJSON(v)
}

// tradeFeed fans executed trades out to websocket subscribers. Slow or dead
// subscribers are dropped rather than allowed to block the broadcast path.
type tradeFeed struct {
	mu   sync.Mutex
	subs map[*websocket.Conn]*subscriber
}

var feed = &tradeFeed{subs: make(map[*websocket.Conn]*subscriber)}

func (f *tradeFeed) add(conn *websocket.Conn) {
	f.mu.Lock()
	defer f.mu.Unlock()
	f.subs[conn] = &subscriber{conn: conn}
}

func (f *tradeFeed) remove(conn *websocket.Conn) {
	f.mu.Lock()
	_, ok := f.subs[conn]
	delete(f.subs, conn)
	f.mu.Unlock()
	if ok {
		// Close may run alongside an in-flight write, gorilla permits that
		conn.Close()
	}
}

func (f *tradeFeed) broadcast(outcome *engine.TradeOutcome) {
	f.mu.Lock()
	subs := make([]*subscriber, 0, len(f.subs))
	for _, sub := range f.subs {
		subs = append(subs, sub)
	}
	f.mu.Unlock()

	for _, sub := range subs {
		if err := sub.send(outcome); err != nil {
			log.Warnf("Trade feed write failed, dropping subscriber: %v", err)
			f.remove(sub.conn)
		}
	}
}

// TradeFeed upgrades the connection and streams executed trades
func TradeFeed(c *gin.Context) {
	conn, err := upgrader.Upgrade(c.Writer, c.Request, nil)
	if err != nil {
		log.Warnf("Trade feed upgrade failed: %v", err)
		return
	}

	feed.add(conn)

	// Reader loop only exists to detect close
	go func() {
		defer feed.remove(conn)
		for {
			if _, _, err := conn.ReadMessage(); err != nil {
				return
			}
		}
	}()
}
