// Copyright (c) 2020 The Meter.io developers

// Distributed under the GNU Lesser General Public License v3.0 software license, see the accompanying
// file LICENSE or <https://www.gnu.org/licenses/lgpl-3.0.html>

package subscriptions

import (
	"log/slog"
	"net/http"
	"sync"

	"github.com/gorilla/mux"
	"github.com/gorilla/websocket"
	"github.com/meterio/dexpet/node"
)

type Subscriptions struct {
	node     *node.Node
	upgrader *websocket.Upgrader
	logger   *slog.Logger

	done    chan struct{}
	wg      sync.WaitGroup
	closeMu sync.Mutex
	closed  bool
}

// New listens on /receipt and pushes every committed call to connected
// websocket clients.
func New(node *node.Node, allowedOrigins []string) *Subscriptions {
	return &Subscriptions{
		node: node,
		upgrader: &websocket.Upgrader{
			CheckOrigin: func(req *http.Request) bool {
				origin := req.Header.Get("Origin")
				if origin == "" {
					return true
				}
				for _, allowed := range allowedOrigins {
					if allowed == origin || allowed == "*" {
						return true
					}
				}
				return false
			},
		},
		logger: slog.Default().With("pkg", "subscriptions"),
		done:   make(chan struct{}),
	}
}

func (s *Subscriptions) handleSubscribeReceipts(w http.ResponseWriter, req *http.Request) {
	conn, err := s.upgrader.Upgrade(w, req, nil)
	if err != nil {
		s.logger.Debug("upgrade failed", "err", err)
		return
	}
	s.wg.Add(1)
	go s.pipe(conn)
}

func (s *Subscriptions) pipe(conn *websocket.Conn) {
	defer s.wg.Done()
	defer conn.Close()

	receipts, cancel := s.node.Subscribe()
	defer cancel()

	// drain the read side to notice a client close
	closed := make(chan struct{})
	go func() {
		defer close(closed)
		for {
			if _, _, err := conn.ReadMessage(); err != nil {
				return
			}
		}
	}()

	for {
		select {
		case <-s.done:
			return
		case <-closed:
			return
		case receipt, ok := <-receipts:
			if !ok {
				return
			}
			if err := conn.WriteJSON(convertReceipt(receipt)); err != nil {
				s.logger.Debug("write receipt failed", "err", err)
				return
			}
		}
	}
}

// Close shuts down all hijacked connections.
func (s *Subscriptions) Close() {
	s.closeMu.Lock()
	if !s.closed {
		s.closed = true
		close(s.done)
	}
	s.closeMu.Unlock()
	s.wg.Wait()
}

func (s *Subscriptions) Mount(root *mux.Router, pathPrefix string) {
	sub := root.PathPrefix(pathPrefix).Subrouter()
	sub.Path("/receipt").Methods("GET").HandlerFunc(s.handleSubscribeReceipts)
}
