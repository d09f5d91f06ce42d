// This file is part of Softgun.
//
// Softgun is free software: you can redistribute it and/or modify
// it under the terms of the GNU General Public License as published by
// the Free Software Foundation, either version 3 of the License, or
// (at your option) any later version.
//
// Softgun is distributed in the hope that it will be useful,
// but WITHOUT ANY WARRANTY; without even the implied warranty of
// MERCHANTABILITY or FITNESS FOR A PARTICULAR PURPOSE.  See the
// GNU General Public License for more details.
//
// You should have received a copy of the GNU General Public License
// along with Softgun.  If not, see <https://www.gnu.org/licenses/>.

// Package dashboard exposes a live, browser-viewable view of a running
// emulation: Go runtime stats via statsview, plus a chart of clock-tree
// frequencies rendered with go-echarts on an adjacent endpoint. The
// clocks endpoint sits behind a permissive CORS policy so the statsview
// pages can fetch it cross-origin; this is a local debugging aid, not a
// multi-tenant service.
package dashboard

import (
	"fmt"
	"net/http"

	"github.com/go-echarts/go-echarts/v2/charts"
	"github.com/go-echarts/go-echarts/v2/opts"
	"github.com/go-echarts/statsview"
	"github.com/go-echarts/statsview/viewer"
	"github.com/rs/cors"
)

// FrequencySource reports the clocks a dashboard should chart, by name and
// current Hz.
type FrequencySource func() map[string]float64

// Dashboard serves statsview's runtime charts on one address and the
// clock-frequency chart on another.
type Dashboard struct {
	statsAddr  string
	clocksAddr string
	source     FrequencySource
	mgr        *statsview.ViewManager
	server     *http.Server
}

// New creates a Dashboard. statsAddr hosts statsview's runtime pages
// (e.g. "localhost:18066"); clocksAddr hosts the clocks chart. source is
// polled each time the clocks page is requested.
func New(statsAddr string, clocksAddr string, source FrequencySource) *Dashboard {
	return &Dashboard{statsAddr: statsAddr, clocksAddr: clocksAddr, source: source}
}

// Start launches the statsview viewer and the clocks endpoint. It does
// not block; call Stop to shut down.
func (d *Dashboard) Start() {
	viewer.SetConfiguration(viewer.WithAddr(d.statsAddr), viewer.WithLinkAddr(d.statsAddr))
	d.mgr = statsview.New()
	go d.mgr.Start()

	mux := http.NewServeMux()
	mux.HandleFunc("/debug/clocks", d.serveClocksChart)
	d.server = &http.Server{Addr: d.clocksAddr, Handler: cors.Default().Handler(mux)}
	go d.server.ListenAndServe()
}

// Stop shuts down both endpoints.
func (d *Dashboard) Stop() {
	if d.mgr != nil {
		d.mgr.Stop()
	}
	if d.server != nil {
		d.server.Close()
	}
}

func (d *Dashboard) serveClocksChart(w http.ResponseWriter, r *http.Request) {
	freqs := d.source()

	bar := charts.NewBar()
	bar.SetGlobalOptions(charts.WithTitleOpts(opts.Title{Title: "Clock Frequencies (Hz)"}))

	names := make([]string, 0, len(freqs))
	values := make([]opts.BarData, 0, len(freqs))
	for name, hz := range freqs {
		names = append(names, name)
		values = append(values, opts.BarData{Value: hz})
	}
	bar.SetXAxis(names).AddSeries("Hz", values)

	w.Header().Set("Content-Type", "text/html")
	if err := bar.Render(w); err != nil {
		http.Error(w, fmt.Sprintf("dashboard: render failed: %s", err), http.StatusInternalServerError)
	}
}
