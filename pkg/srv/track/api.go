/*
 Licensed under the Apache License, Version 2.0 (the "License");
 you may not use this file except in compliance with the License.
 You may obtain a copy of the License at

     https://www.apache.org/licenses/LICENSE-2.0

 Unless required by applicable law or agreed to in writing, software
 distributed under the License is distributed on an "AS IS" BASIS,
 WITHOUT WARRANTIES OR CONDITIONS OF ANY KIND, either express or implied.
 See the License for the specific language governing permissions and
 limitations under the License.
*/

package track

import (
	"context"
	"encoding/json"
	"fmt"
	"net/http"
	"os"

	"github.com/gorilla/handlers"
	"github.com/gorilla/mux"

	"jinr.ru/greenlab/go-track/pkg/config"
	"jinr.ru/greenlab/go-track/pkg/log"
)

// ApiServer serves the receive loop counters over HTTP. It reads the
// Stats snapshots only, it has no access to the decode path.
type ApiServer struct {
	context.Context
	*config.Config
	*mux.Router
	stats *Stats
}

func NewApiServer(ctx context.Context, cfg *config.Config, stats *Stats) *ApiServer {
	log.Info("Initializing API server with address: %s port: %d", cfg.IP, cfg.ApiPort)
	return &ApiServer{
		Context: ctx,
		Config:  cfg,
		stats:   stats,
	}
}

func (s *ApiServer) Run() error {
	log.Debug("Starting API server: address: %s port: %d", s.Config.IP, s.Config.ApiPort)
	s.configureRouter()
	httpServer := &http.Server{
		Handler: handlers.CombinedLoggingHandler(os.Stderr, s.Router),
		Addr:    fmt.Sprintf("%s:%d", s.Config.IP, s.Config.ApiPort),
	}
	return httpServer.ListenAndServe()
}

func (s *ApiServer) configureRouter() {
	s.Router = mux.NewRouter()
	subRouter := s.Router.PathPrefix("/api").Subrouter()
	subRouter.HandleFunc("/status", s.handleStatus()).Methods("GET")
}

func (s *ApiServer) handleStatus() http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		snapshot := s.stats.Snapshot()
		w.Header().Set("Content-Type", "application/json")
		if err := json.NewEncoder(w).Encode(snapshot); err != nil {
			http.Error(w, err.Error(), http.StatusInternalServerError)
		}
	}
}
