// Command feedsim serves a fake donation feed over websocket for manual
// testing. Every interval it records a random donation and pushes a fresh
// snapshot, celebrating the new donation, to every connected client.
package main

import (
	"donosync/internal/decoder"
	"donosync/internal/decoder/interfaces"
	"donosync/internal/models"
	"flag"
	"fmt"
	"math/rand"
	"net/http"
	"sync"
	"time"

	"github.com/dustin/go-humanize"
	json "github.com/goccy/go-json"
	"github.com/google/uuid"
	"github.com/gorilla/websocket"
)

var donors = []string{"Alice", "Bob", "Carol", "Dave", "Eve", "Mallory"}

type client struct {
	id string
	mu sync.Mutex
	ws *websocket.Conn
}

func (c *client) write(messageType int, data []byte) error {
	c.mu.Lock()
	defer c.mu.Unlock()
	return c.ws.WriteMessage(messageType, data)
}

type feed struct {
	compressor interfaces.CompressorInterface
	upgrader   websocket.Upgrader

	mu        sync.Mutex
	donations []models.Donation
	nextID    int64
	clients   map[*client]struct{}
}

func main() {
	addr := flag.String("addr", "127.0.0.1:18091", "listen address")
	interval := flag.Duration("interval", 5*time.Second, "time between donations")
	compress := flag.Bool("compress", false, "send zstd compressed binary frames")
	flag.Parse()

	f := &feed{clients: make(map[*client]struct{}), nextID: 1}
	if *compress {
		compressor, err := decoder.NewZstdCompressor()
		if err != nil {
			fmt.Println("FAILED: compressor:", err)
			return
		}
		defer compressor.Close()
		f.compressor = compressor
	}

	go f.run(*interval, rand.New(rand.NewSource(time.Now().UnixNano())))

	http.HandleFunc("/ws", f.serveWS)
	fmt.Printf("=== Feed simulator on ws://%s/ws | interval %s | compressed %t ===\n", *addr, *interval, *compress)
	if err := http.ListenAndServe(*addr, nil); err != nil {
		fmt.Println("FAILED:", err)
	}
}

func (f *feed) run(interval time.Duration, rng *rand.Rand) {
	ticker := time.NewTicker(interval)
	defer ticker.Stop()
	for range ticker.C {
		now := time.Now().UTC()
		f.mu.Lock()
		donation := models.Donation{
			ID:        f.nextID,
			Donor:     donors[rng.Intn(len(donors))],
			Amount:    float64(rng.Intn(5000)+100) / 100,
			DonatedAt: &now,
		}
		f.nextID++
		f.donations = append(f.donations, donation)
		f.mu.Unlock()

		fmt.Printf("donation #%d: %s gave %s\n", donation.ID, donation.Donor, humanize.Commaf(donation.Amount))
		f.broadcast(&donation.ID)
	}
}

func (f *feed) frame(celebrationID *int64) (int, []byte, error) {
	f.mu.Lock()
	snapshot := buildSnapshot(f.donations, celebrationID)
	f.mu.Unlock()

	data, err := json.Marshal(snapshot)
	if err != nil {
		return 0, nil, err
	}
	if f.compressor == nil {
		return websocket.TextMessage, data, nil
	}
	compressed, err := f.compressor.Compress(data)
	if err != nil {
		return 0, nil, err
	}
	return websocket.BinaryMessage, compressed, nil
}

func (f *feed) broadcast(celebrationID *int64) {
	messageType, data, err := f.frame(celebrationID)
	if err != nil {
		fmt.Println("encode:", err)
		return
	}

	f.mu.Lock()
	clients := make([]*client, 0, len(f.clients))
	for c := range f.clients {
		clients = append(clients, c)
	}
	f.mu.Unlock()

	for _, c := range clients {
		if err := c.write(messageType, data); err != nil {
			fmt.Printf("client %s: %s\n", c.id, err)
		}
	}
}

func (f *feed) serveWS(w http.ResponseWriter, r *http.Request) {
	ws, err := f.upgrader.Upgrade(w, r, nil)
	if err != nil {
		return
	}
	c := &client{id: uuid.NewString(), ws: ws}
	defer func() {
		f.mu.Lock()
		delete(f.clients, c)
		f.mu.Unlock()
		ws.Close()
		fmt.Printf("client %s disconnected\n", c.id)
	}()

	f.mu.Lock()
	f.clients[c] = struct{}{}
	f.mu.Unlock()
	fmt.Printf("client %s connected from %s\n", c.id, r.RemoteAddr)

	// new clients get the current state without a celebration
	messageType, data, err := f.frame(nil)
	if err == nil {
		err = c.write(messageType, data)
	}
	if err != nil {
		return
	}

	for {
		messageType, msg, err := ws.ReadMessage()
		if err != nil {
			return
		}
		if messageType == websocket.TextMessage && string(msg) == "ping" {
			if err := c.write(websocket.TextMessage, []byte("pong")); err != nil {
				return
			}
		}
	}
}
