/*
 * Copyright 2025 Marco Confalonieri.
 *
 * Licensed under the Apache License, Version 2.0 (the "License");
 * you may not use this file except in compliance with the License.
 * You may obtain a copy of the License at
 *
 *   http://www.apache.org/licenses/LICENSE-2.0
 *
 * Unless required by applicable law or agreed to in writing, software
 * distributed under the License is distributed on an "AS IS" BASIS,
 * WITHOUT WARRANTIES OR CONDITIONS OF ANY KIND, either express or implied.
 * See the License for the specific language governing permissions and
 * limitations under the License.
 */
package server

import (
	"net"
	"net/http"

	"clouddns-client/internal/metrics"

	"github.com/go-chi/chi/v5"
	"github.com/prometheus/client_golang/prometheus/promhttp"
	log "github.com/sirupsen/logrus"
)

// MetricsSocket serves the Prometheus metrics as well as the liveness and
// readiness probes during long-running operations.
type MetricsSocket struct {
	status *Status
}

// NewMetricsSocket initializes a new MetricsSocket instance.
func NewMetricsSocket(status *Status) *MetricsSocket {
	return &MetricsSocket{
		status: status,
	}
}

// writeProbe answers a probe with 200/OK when the flag is up and
// 503/Service Unavailable otherwise.
func writeProbe(w http.ResponseWriter, probe string, up bool) {
	var err error
	if up {
		_, err = w.Write([]byte(http.StatusText(http.StatusOK)))
	} else {
		w.WriteHeader(http.StatusServiceUnavailable)
		_, err = w.Write([]byte(http.StatusText(http.StatusServiceUnavailable)))
	}
	if err != nil {
		log.Warnf("Could not answer to a %s probe: %s", probe, err.Error())
	}
}

// livenessHandler checks if the process is healthy.
func (s MetricsSocket) livenessHandler(w http.ResponseWriter, r *http.Request) {
	writeProbe(w, "liveness", s.status.IsHealthy())
}

// readinessHandler checks if the process is ready.
func (s MetricsSocket) readinessHandler(w http.ResponseWriter, r *http.Request) {
	writeProbe(w, "readiness", s.status.IsReady())
}

// healthzHandler checks if the process is live AND ready.
func (s MetricsSocket) healthzHandler(w http.ResponseWriter, r *http.Request) {
	writeProbe(w, "healthz", s.status.IsHealthy() && s.status.IsReady())
}

// Start starts the exposed endpoints server.
func (s *MetricsSocket) Start(startedChan chan struct{}, options SocketOptions) {
	router := chi.NewRouter()

	router.Get("/", s.readinessHandler)
	router.Get("/ready", s.readinessHandler)
	router.Get("/health", s.livenessHandler)
	router.Get("/healthz", s.healthzHandler)
	router.Handle("/metrics", promhttp.HandlerFor(
		metrics.GetInstance().GetRegistry(),
		promhttp.HandlerOpts{},
	))

	address := options.GetMetricsAddress()

	srv := &http.Server{
		Addr:         address,
		Handler:      router,
		ReadTimeout:  options.GetReadTimeout(),
		WriteTimeout: options.GetWriteTimeout(),
	}

	l, err := net.Listen("tcp", address)
	if err != nil {
		log.Fatal(err)
	}

	if startedChan != nil {
		startedChan <- struct{}{}
	}

	if err := srv.Serve(l); err != nil {
		log.Fatal(err)
	}
}
