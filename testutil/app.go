// Copyright (c) 2025 Daniel Kuo.
// Source-available; no permission granted to use, copy, modify, or distribute. See LICENSE.

package testutil

import (
	"net/http"
	"net/http/httptest"
	"testing"

	"github.com/danielhkuo/pollgram/cliparse"
	"github.com/danielhkuo/pollgram/event"
	"github.com/danielhkuo/pollgram/metrics"
	"github.com/danielhkuo/pollgram/notify"
	"github.com/danielhkuo/pollgram/router"
	"github.com/danielhkuo/pollgram/social"
	"github.com/danielhkuo/pollgram/store/sqlstore"
	"github.com/danielhkuo/pollgram/voting"
)

// TestApp is the full HTTP stack over a private test database
type TestApp struct {
	Config  cliparse.Config
	Store   *sqlstore.SQLStore
	Bus     *event.Bus
	Metrics *metrics.Metrics
	Handler http.Handler
}

// SetupTestApp wires the services, event subscribers and router the same
// way the serve command does. The bus is stopped when the test finishes.
func SetupTestApp(t *testing.T, mutate ...func(*cliparse.Config)) *TestApp {
	t.Helper()

	cfg := GetTestConfig()
	for _, m := range mutate {
		m(&cfg)
	}
	st := SetupTestStore(t)
	m := metrics.New()
	bus := event.NewBus(m.Registry(), nil, cfg.EventWorkers)
	t.Cleanup(bus.Stop)

	graph := social.NewGraph(st, bus)
	graph.Subscribe(bus)
	notifier := notify.New(st.Notification())
	notifier.Subscribe(bus)

	svc := voting.NewService(st, graph,
		voting.WithPublisher(bus),
		voting.WithMetrics(m),
		voting.WithStrictChoiceOrders(cfg.StrictChoiceOrders),
	)

	handler := router.NewHandler(router.Deps{
		Config:   cfg,
		Store:    st,
		Voting:   svc,
		Graph:    graph,
		Users:    social.NewDirectory(st, bus),
		Notifier: notifier,
		Metrics:  m,
	})
	return &TestApp{Config: cfg, Store: st, Bus: bus, Metrics: m, Handler: handler}
}

// Do serves req and returns the recorded response
func (a *TestApp) Do(req *http.Request) *httptest.ResponseRecorder {
	w := httptest.NewRecorder()
	a.Handler.ServeHTTP(w, req)
	return w
}
