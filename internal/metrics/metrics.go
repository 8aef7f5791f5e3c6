/*
 * Metrics - Prometheus instrumentation for API calls.
 *
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
package metrics

import (
	"github.com/prometheus/client_golang/prometheus"
)

// metrics instance
var metrics *APIMetrics

// APIMetrics collects counters and histograms around the provider API.
type APIMetrics struct {
	registry *prometheus.Registry

	successfulAPICallsTotal *prometheus.CounterVec
	failedAPICallsTotal     *prometheus.CounterVec

	pendingChanges prometheus.Gauge
	apiDelayHist   *prometheus.HistogramVec
}

// GetInstance returns the current APIMetrics instance or creates a new one
// if required.
func GetInstance() *APIMetrics {
	if metrics == nil {
		reg := prometheus.NewRegistry()
		metrics = &APIMetrics{
			registry: reg,
			successfulAPICallsTotal: prometheus.NewCounterVec(
				prometheus.CounterOpts{
					Name: "successful_api_calls_total",
					Help: "The number of successful DNS API calls",
				},
				[]string{"action"},
			),
			failedAPICallsTotal: prometheus.NewCounterVec(
				prometheus.CounterOpts{
					Name: "failed_api_calls_total",
					Help: "The number of DNS API calls that returned an error",
				},
				[]string{"action"},
			),
			pendingChanges: prometheus.NewGauge(prometheus.GaugeOpts{
				Name: "pending_changes",
				Help: "The number of submitted change requests not yet done",
			}),
			apiDelayHist: prometheus.NewHistogramVec(
				prometheus.HistogramOpts{
					Name:    "api_delay_hist",
					Help:    "Histogram of the delay in milliseconds when calling the DNS API",
					Buckets: []float64{10, 100, 250, 500, 1000, 1500, 2000},
				},
				[]string{"action"},
			),
		}
		reg.MustRegister(metrics.successfulAPICallsTotal)
		reg.MustRegister(metrics.failedAPICallsTotal)
		reg.MustRegister(metrics.pendingChanges)
		reg.MustRegister(metrics.apiDelayHist)
	}
	return metrics
}

// getLabels builds the label map.
func getLabels(action string) prometheus.Labels {
	return prometheus.Labels{"action": action}
}

// GetRegistry returns the prometheus registry backing the instance.
func (m APIMetrics) GetRegistry() *prometheus.Registry {
	return m.registry
}

// IncSuccessfulAPICallsTotal increments the successful_api_calls_total
// counter.
func (m *APIMetrics) IncSuccessfulAPICallsTotal(action string) {
	m.successfulAPICallsTotal.With(getLabels(action)).Inc()
}

// IncFailedAPICallsTotal increments the failed_api_calls_total counter.
func (m *APIMetrics) IncFailedAPICallsTotal(action string) {
	m.failedAPICallsTotal.With(getLabels(action)).Inc()
}

// IncPendingChanges increments the pending_changes gauge.
func (m *APIMetrics) IncPendingChanges() {
	m.pendingChanges.Inc()
}

// DecPendingChanges decrements the pending_changes gauge.
func (m *APIMetrics) DecPendingChanges() {
	m.pendingChanges.Dec()
}

// AddAPIDelayHist records the delay in milliseconds of a single API call.
func (m *APIMetrics) AddAPIDelayHist(action string, delay int64) {
	m.apiDelayHist.With(getLabels(action)).Observe(float64(delay))
}
