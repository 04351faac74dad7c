// Copyright (c) 2020 The Meter.io developers

// Distributed under the GNU Lesser General Public License v3.0 software license, see the accompanying
// file LICENSE or <https://www.gnu.org/licenses/lgpl-3.0.html>

package api

import (
	"net/http"
	"strings"

	"github.com/gorilla/handlers"
	"github.com/gorilla/mux"
	"github.com/meterio/dexpet/api/accounts"
	"github.com/meterio/dexpet/api/auction"
	"github.com/meterio/dexpet/api/events"
	apinode "github.com/meterio/dexpet/api/node"
	"github.com/meterio/dexpet/api/pets"
	"github.com/meterio/dexpet/api/subscriptions"
	"github.com/meterio/dexpet/api/transfers"
	"github.com/meterio/dexpet/logdb"
	"github.com/meterio/dexpet/node"
	"github.com/prometheus/client_golang/prometheus/promhttp"
)

// New return api router
func New(node *node.Node, logDB *logdb.LogDB, allowedOrigins string) (http.HandlerFunc, func()) {
	origins := strings.Split(strings.TrimSpace(allowedOrigins), ",")
	for i, o := range origins {
		origins[i] = strings.ToLower(strings.TrimSpace(o))
	}

	router := mux.NewRouter()

	router.Path("/metrics").Handler(promhttp.Handler())

	pets.New(node).
		Mount(router, "/pets")
	auction.New(node).
		Mount(router, "/auction")
	accounts.New(node).
		Mount(router, "/accounts")
	events.New(logDB).
		Mount(router, "/logs/event")
	transfers.New(logDB).
		Mount(router, "/logs/transfer")
	apinode.New(node).
		Mount(router, "/node")
	subs := subscriptions.New(node, origins)
	subs.Mount(router, "/subscriptions")

	return handlers.CORS(
			handlers.AllowedOrigins(origins),
			handlers.AllowedHeaders([]string{"content-type"}))(router).ServeHTTP,
		subs.Close // subscriptions handles hijacked conns, which need to be closed
}
