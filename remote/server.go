// Package remote streams rendered frames to browser viewers over websockets.
package remote

import (
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"log"
	"net/http"
	"sync/atomic"
	"time"

	"github.com/gorilla/websocket"

	"github.com/cellwright/gridterm/engine"
)

const (
	// Time allowed to write a message to the peer.
	writeWait = 10 * time.Second

	// Time allowed to read the next pong message from the peer.
	pongWait = 60 * time.Second

	// Send pings to peer with this period. Must be less than pongWait.
	pingPeriod = (pongWait * 9) / 10

	// Maximum message size allowed from peer. Viewers only listen.
	maxMessageSize = 512

	// Frames buffered per viewer before it is considered too slow and
	// dropped.
	sendBuffer = 8

	// Frames buffered between the render loop and the hub. The render
	// loop never blocks; overflow frames are discarded.
	frameBuffer = 16
)

var upgrader = websocket.Upgrader{
	ReadBufferSize:  1024,
	WriteBufferSize: 1024,
	CheckOrigin: func(r *http.Request) bool {
		// Frames are not sensitive; any page may watch
		return true
	},
}

// framePayload is the JSON view of one frame sent to browsers.
type framePayload struct {
	Seq    int64     `json:"seq"`
	Width  int       `json:"width"`
	Height int       `json:"height"`
	Rows   []string  `json:"rows"`
	At     time.Time `json:"at"`
}

// Server is a render sink that broadcasts every frame to connected websocket
// viewers and serves a small single-page viewer at /.
//
// WriteFrame may be called from the render loop while Run services viewers
// on its own goroutine; the two sides meet over a buffered channel and the
// render loop never blocks on slow viewers.
type Server struct {
	addr string

	clients    map[*client]bool
	register   chan *client
	unregister chan *client
	frames     chan []byte
	done       chan struct{}

	// Most recent payload, replayed to late joiners. Hub goroutine only.
	lastFrame []byte

	seq     atomic.Int64
	httpSrv *http.Server
}

// NewServer creates a frame server that will listen on addr.
func NewServer(addr string) *Server {
	s := &Server{
		addr:       addr,
		clients:    make(map[*client]bool),
		register:   make(chan *client),
		unregister: make(chan *client),
		frames:     make(chan []byte, frameBuffer),
		done:       make(chan struct{}),
	}

	mux := http.NewServeMux()
	mux.HandleFunc("/", s.handleIndex)
	mux.HandleFunc("/ws", s.handleWS)
	s.httpSrv = &http.Server{Addr: addr, Handler: mux}

	return s
}

// WriteFrame implements engine.Sink. The frame is marshaled once and handed
// to the hub; if viewers are lagging the frame is dropped rather than
// stalling the render loop.
func (s *Server) WriteFrame(f engine.Frame) error {
	payload := framePayload{
		Seq:    s.seq.Add(1),
		Width:  f.Width,
		Height: f.Height,
		Rows:   f.Rows,
		At:     time.Now(),
	}
	data, err := json.Marshal(payload)
	if err != nil {
		return fmt.Errorf("failed to marshal frame: %w", err)
	}

	select {
	case s.frames <- data:
	default:
	}
	return nil
}

// Run serves HTTP and drives the hub loop until ctx is canceled. Returns the
// HTTP server error if listening fails.
func (s *Server) Run(ctx context.Context) error {
	errCh := make(chan error, 1)
	go func() {
		if err := s.httpSrv.ListenAndServe(); err != nil && !errors.Is(err, http.ErrServerClosed) {
			errCh <- err
		}
	}()
	log.Printf("frame server listening on %s", s.addr)

	for {
		select {
		case <-ctx.Done():
			shutCtx, cancel := context.WithTimeout(context.Background(), 3*time.Second)
			err := s.httpSrv.Shutdown(shutCtx)
			cancel()
			for c := range s.clients {
				s.dropClient(c)
			}
			close(s.done)
			return err

		case err := <-errCh:
			close(s.done)
			return err

		case c := <-s.register:
			s.registerClient(c)

		case c := <-s.unregister:
			s.dropClient(c)

		case data := <-s.frames:
			s.broadcast(data)
		}
	}
}

// registerClient adds a viewer and replays the latest frame so it does not
// stare at a blank page until the next render.
func (s *Server) registerClient(c *client) {
	s.clients[c] = true
	if s.lastFrame != nil {
		select {
		case c.send <- s.lastFrame:
		default:
		}
	}
	log.Printf("viewer connected (%d total)", len(s.clients))
}

// dropClient removes a viewer and closes its send channel, which terminates
// its write pump.
func (s *Server) dropClient(c *client) {
	if _, ok := s.clients[c]; !ok {
		return
	}
	delete(s.clients, c)
	close(c.send)
	log.Printf("viewer disconnected (%d remaining)", len(s.clients))
}

// broadcast fans a payload out to every viewer, dropping viewers whose send
// buffers are full.
func (s *Server) broadcast(data []byte) {
	s.lastFrame = data
	for c := range s.clients {
		select {
		case c.send <- data:
		default:
			s.dropClient(c)
		}
	}
}

// handleWS upgrades a viewer connection and starts its pumps.
func (s *Server) handleWS(w http.ResponseWriter, r *http.Request) {
	conn, err := upgrader.Upgrade(w, r, nil)
	if err != nil {
		log.Printf("websocket upgrade failed: %v", err)
		return
	}

	c := &client{srv: s, conn: conn, send: make(chan []byte, sendBuffer)}
	select {
	case s.register <- c:
	case <-s.done:
		// Hub already stopped; the upgrade raced the shutdown
		conn.Close()
		return
	}

	go c.writePump()
	go c.readPump()
}

// handleIndex serves the embedded viewer page.
func (s *Server) handleIndex(w http.ResponseWriter, r *http.Request) {
	if r.URL.Path != "/" {
		http.NotFound(w, r)
		return
	}
	w.Header().Set("Content-Type", "text/html; charset=utf-8")
	w.Write([]byte(viewerHTML))
}
