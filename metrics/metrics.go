/*
   Copyright 2025 The DIRPX Authors

   Licensed under the Apache License, Version 2.0 (the "License");
   you may not use this file except in compliance with the License.
   You may obtain a copy of the License at

       http://www.apache.org/licenses/LICENSE-2.0

   Unless required by applicable law or agreed to in writing, software
   distributed under the License is distributed on an "AS IS" BASIS,
   WITHOUT WARRANTIES OR CONDITIONS OF ANY KIND, either express or implied.
   See the License for the specific language governing permissions and
   limitations under the License.
*/

// Package metrics counts classification outcomes with Prometheus.
package metrics

import (
	"errors"
	"strconv"

	"dirpx.dev/rejectx/apis"
	"github.com/prometheus/client_golang/prometheus"
)

var _ apis.Observer = (*Observer)(nil)

// Observer counts every Verdict by category and HTTP status.
//
// Exposed series:
//
//	<namespace>_rejections_total{category="internal",status="500"}
type Observer struct {
	rejections *prometheus.CounterVec
}

// NewObserver registers the rejection counter with reg. Registering twice
// against the same registry reuses the existing counter.
func NewObserver(reg prometheus.Registerer, namespace string) (*Observer, error) {
	cv := prometheus.NewCounterVec(
		prometheus.CounterOpts{
			Namespace: namespace,
			Name:      "rejections_total",
			Help:      "Total number of rejected requests by client-visible category and HTTP status",
		},
		[]string{"category", "status"},
	)
	if err := reg.Register(cv); err != nil {
		var are prometheus.AlreadyRegisteredError
		if !errors.As(err, &are) {
			return nil, err
		}
		existing, ok := are.ExistingCollector.(*prometheus.CounterVec)
		if !ok {
			return nil, err
		}
		cv = existing
	}
	return &Observer{rejections: cv}, nil
}

// Observe implements apis.Observer.
func (o *Observer) Observe(v apis.Verdict) {
	o.rejections.WithLabelValues(string(v.Category), strconv.Itoa(v.Status.HTTP)).Inc()
}
