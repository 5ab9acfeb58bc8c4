// Package server exposes the reports of a session as a read-only JSON API.
package server

import (
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"io"
	"net/http"
	"slices"
	"strconv"
	"strings"
	"time"

	"github.com/etnz/t212"
	"github.com/etnz/t212/date"
	"github.com/gorilla/mux"
	log "github.com/sirupsen/logrus"
)

// Server serves the reports of a Session.
type Server struct {
	session *t212.Session
	router  *mux.Router
}

// New returns a Server over session.
func New(session *t212.Session) *Server {
	s := &Server{session: session, router: mux.NewRouter()}
	s.routes()
	return s
}

func (s *Server) routes() {
	api := s.router.PathPrefix("/api").Subrouter()
	api.HandleFunc("/overview", s.handleOverview).Methods(http.MethodGet)
	api.HandleFunc("/summary", s.handleSummary).Methods(http.MethodGet)
	api.HandleFunc("/holdings", s.handleHoldings).Methods(http.MethodGet)
	api.HandleFunc("/activity/hourly", s.handleHourly).Methods(http.MethodGet)
	api.HandleFunc("/activity/{period}", s.handleActivity).Methods(http.MethodGet)
	api.HandleFunc("/cumulative", s.handleCumulative).Methods(http.MethodGet)
	api.HandleFunc("/rankings", s.handleRankings).Methods(http.MethodGet)
	api.HandleFunc("/orders", s.handleOrders).Methods(http.MethodGet)
	api.HandleFunc("/stocks/{ticker}", s.handleStock).Methods(http.MethodGet)
	api.HandleFunc("/export.csv", s.handleExportCSV).Methods(http.MethodGet)
	api.HandleFunc("/export.json", s.handleExportJSON).Methods(http.MethodGet)
	api.HandleFunc("/reload", s.handleReload).Methods(http.MethodPost)
	s.router.Use(logging)
}

func (s *Server) ServeHTTP(w http.ResponseWriter, r *http.Request) { s.router.ServeHTTP(w, r) }

// ListenAndServe serves on addr until ctx is done.
func (s *Server) ListenAndServe(ctx context.Context, addr string) error {
	srv := &http.Server{Addr: addr, Handler: s, ReadHeaderTimeout: 10 * time.Second}
	errc := make(chan error, 1)
	go func() { errc <- srv.ListenAndServe() }()
	log.Infof("serving on %s", addr)

	select {
	case err := <-errc:
		return err
	case <-ctx.Done():
		shutdown, cancel := context.WithTimeout(context.Background(), 5*time.Second)
		defer cancel()
		return srv.Shutdown(shutdown)
	}
}

func logging(next http.Handler) http.Handler {
	return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		start := time.Now()
		next.ServeHTTP(w, r)
		log.Debugf("%s %s (%v)", r.Method, r.URL, time.Since(start))
	})
}

// response is the envelope of every json answer.
type response struct {
	Data       any    `json:"data"`
	Warning    string `json:"warning,omitempty"` // set when the orders could only be partially loaded.
	Generation string `json:"generation"`
}

type errorResponse struct {
	Type string `json:"type"`
	Msg  string `json:"msg"`
}

func setResponse(response any, w http.ResponseWriter) error {
	w.Header().Set("Content-Type", "application/json")
	w.WriteHeader(http.StatusOK)
	if err := json.NewEncoder(w).Encode(response); err != nil {
		return fmt.Errorf("setResponse: encode: %w", err)
	}
	return nil
}

func setErrorResponse(errType string, statusCode int, err error, w http.ResponseWriter) {
	w.Header().Set("Content-Type", "application/json")
	w.WriteHeader(statusCode)
	if encodeErr := json.NewEncoder(w).Encode(errorResponse{Type: errType, Msg: err.Error()}); encodeErr != nil {
		log.Warnf("cannot encode error response: %v", encodeErr)
	}
}

// book returns the session book. A partial load is not an error, it is
// reported as a warning in the response.
//
// The book is shared by all clients: it is loaded past the request
// cancellation.
func (s *Server) book(r *http.Request) (*t212.Book, string) {
	b, err := s.session.Book(context.WithoutCancel(r.Context()))
	if err != nil {
		return b, err.Error()
	}
	return b, ""
}

// reply computes the data of a report and writes it with the session state.
func (s *Server) reply(w http.ResponseWriter, r *http.Request, report func(b *t212.Book, f t212.Filter) (any, error)) {
	f, err := parseFilter(r)
	if err != nil {
		setErrorResponse("invalid filter", http.StatusBadRequest, err, w)
		return
	}
	b, warning := s.book(r)
	data, err := report(b, f)
	if err != nil {
		var nf notFound
		if errors.As(err, &nf) {
			setErrorResponse("not found", http.StatusNotFound, err, w)
			return
		}
		setErrorResponse("invalid request", http.StatusBadRequest, err, w)
		return
	}
	gen, _ := s.session.Generation()
	if err := setResponse(response{Data: data, Warning: warning, Generation: gen.String()}, w); err != nil {
		log.Warnf("cannot write response: %v", err)
	}
}

type notFound string

func (e notFound) Error() string { return string(e) }

func (s *Server) handleOverview(w http.ResponseWriter, r *http.Request) {
	s.reply(w, r, func(b *t212.Book, f t212.Filter) (any, error) { return b.Overview(f), nil })
}

func (s *Server) handleSummary(w http.ResponseWriter, r *http.Request) {
	s.reply(w, r, func(b *t212.Book, f t212.Filter) (any, error) { return b.Summary(f), nil })
}

func (s *Server) handleHoldings(w http.ResponseWriter, r *http.Request) {
	s.reply(w, r, func(b *t212.Book, f t212.Filter) (any, error) {
		method, err := t212.ParsePriceMethod(r.URL.Query().Get("price"))
		if err != nil {
			return nil, err
		}
		return b.Holdings(f, method), nil
	})
}

func (s *Server) handleActivity(w http.ResponseWriter, r *http.Request) {
	s.reply(w, r, func(b *t212.Book, f t212.Filter) (any, error) {
		period, err := date.ParsePeriod(mux.Vars(r)["period"])
		if err != nil {
			return nil, notFound(err.Error())
		}
		return b.Activity(f, period), nil
	})
}

func (s *Server) handleHourly(w http.ResponseWriter, r *http.Request) {
	s.reply(w, r, func(b *t212.Book, f t212.Filter) (any, error) { return b.Hourly(f), nil })
}

func (s *Server) handleCumulative(w http.ResponseWriter, r *http.Request) {
	s.reply(w, r, func(b *t212.Book, f t212.Filter) (any, error) { return b.Cumulative(f), nil })
}

func (s *Server) handleRankings(w http.ResponseWriter, r *http.Request) {
	s.reply(w, r, func(b *t212.Book, f t212.Filter) (any, error) {
		n := 5
		if v := r.URL.Query().Get("n"); v != "" {
			var err error
			if n, err = strconv.Atoi(v); err != nil {
				return nil, fmt.Errorf("invalid n %q: %w", v, err)
			}
		}
		return map[string]any{
			"topInvestments": b.TopInvestments(f, n),
			"mostTraded":     b.MostTraded(f, n),
			"executors":      b.Executors(f),
		}, nil
	})
}

func (s *Server) handleOrders(w http.ResponseWriter, r *http.Request) {
	s.reply(w, r, func(b *t212.Book, f t212.Filter) (any, error) {
		return b.SelectStatus(f, parseStatuses(r)...), nil
	})
}

func (s *Server) handleStock(w http.ResponseWriter, r *http.Request) {
	s.reply(w, r, func(b *t212.Book, f t212.Filter) (any, error) {
		ticker := mux.Vars(r)["ticker"]
		if !slices.Contains(b.Symbols(), t212.Symbol(ticker)) {
			return nil, notFound(fmt.Sprintf("no trades for %q", ticker))
		}
		return b.Stock(ticker, f), nil
	})
}

func (s *Server) handleExportCSV(w http.ResponseWriter, r *http.Request) {
	s.export(w, r, "text/csv", "orders.csv", t212.ExportCSV)
}

func (s *Server) handleExportJSON(w http.ResponseWriter, r *http.Request) {
	s.export(w, r, "application/json", "orders.json", t212.ExportJSON)
}

// export writes the filtered orders as a downloadable file, see ExportCSV and ExportJSON.
func (s *Server) export(w http.ResponseWriter, r *http.Request, contentType, filename string, write func(w io.Writer, orders []t212.Order) error) {
	f, err := parseFilter(r)
	if err != nil {
		setErrorResponse("invalid filter", http.StatusBadRequest, err, w)
		return
	}
	b, warning := s.book(r)
	if warning != "" {
		w.Header().Set("X-Warning", warning)
	}
	w.Header().Set("Content-Type", contentType)
	w.Header().Set("Content-Disposition", fmt.Sprintf("attachment; filename=%q", filename))
	if err := write(w, b.SelectStatus(f, parseStatuses(r)...)); err != nil {
		log.Warnf("cannot export %s: %v", filename, err)
	}
}

func (s *Server) handleReload(w http.ResponseWriter, r *http.Request) {
	b, err := s.session.Reload(context.WithoutCancel(r.Context()))
	warning := ""
	if err != nil {
		warning = err.Error()
	}
	gen, loadedAt := s.session.Generation()
	data := map[string]any{"orders": b.Len(), "loadedAt": loadedAt}
	if err := setResponse(response{Data: data, Warning: warning, Generation: gen.String()}, w); err != nil {
		log.Warnf("cannot write response: %v", err)
	}
}

// parseFilter reads the from, to and tickers query parameters. An empty
// tickers parameter selects nothing, a missing one selects everything.
func parseFilter(r *http.Request) (t212.Filter, error) {
	q := r.URL.Query()
	f := t212.All
	var from, to date.Date
	var err error
	if v := q.Get("from"); v != "" {
		if from, err = date.Parse(v); err != nil {
			return f, fmt.Errorf("invalid from: %w", err)
		}
	}
	if v := q.Get("to"); v != "" {
		if to, err = date.Parse(v); err != nil {
			return f, fmt.Errorf("invalid to: %w", err)
		}
	}
	f = f.Between(from, to)
	if err := f.Range.Validate(); err != nil {
		return f, err
	}
	if q.Has("tickers") {
		f.Tickers = t212.ParseTickers(q.Get("tickers"))
	}
	return f, nil
}

// parseStatuses reads the status query parameter, a comma separated list.
func parseStatuses(r *http.Request) []t212.Status {
	var res []t212.Status
	for _, s := range strings.Split(r.URL.Query().Get("status"), ",") {
		if s = strings.TrimSpace(s); s != "" {
			res = append(res, t212.ParseStatus(s))
		}
	}
	return res
}
