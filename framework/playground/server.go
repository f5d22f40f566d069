// Package playground serves a booted page over HTTP so controllers can be
// exercised without a browser. It renders the page, lists and detaches
// mounted controllers, and dispatches synthetic events.
package playground

import (
	"net/http"
	"sync"

	"github.com/go-chi/chi/v5/middleware"
	"go.uber.org/zap"

	"github.com/km-arc/go-sprinkles/framework/component"
	"github.com/km-arc/go-sprinkles/framework/dom"
	gohttp "github.com/km-arc/go-sprinkles/framework/http"
	"github.com/km-arc/go-sprinkles/framework/http/validation"
	"github.com/km-arc/go-sprinkles/framework/routing"
)

// Server owns a booted document. The component runtime is single-threaded,
// so every request holds mu for its whole duration.
type Server struct {
	mu     sync.Mutex
	doc    *dom.Document
	mounts []*component.Mount
	logger *zap.Logger
}

// New creates a Server for doc and the controllers mounted on it.
func New(doc *dom.Document, mounts []*component.Mount, logger *zap.Logger) *Server {
	if logger == nil {
		logger = zap.NewNop()
	}
	return &Server{doc: doc, mounts: mounts, logger: logger}
}

// Routes registers the playground routes on r.
//
//	GET    /                    rendered page
//	GET    /controllers         mounted controllers, ?name= filters
//	GET    /controllers/{name}  mounts of one controller
//	DELETE /controllers/{name}  detach the mounts of one controller
//	POST   /events              {"target": "<selector>", "type": "<event>"}
func (s *Server) Routes(r *routing.Router) {
	r.Get("/", s.page)
	r.Prefix("/controllers", func(c *routing.Router) {
		c.Get("/", s.controllers)
		c.Get("/{name}", s.controller)
		c.Delete("/{name}", s.detach)
	})
	r.Group(func(g *routing.Router) {
		g.Middleware(middleware.AllowContentType("application/json"))
		g.Post("/events", s.dispatch)
	})
}

// DispatchRequest is the body of POST /events.
type DispatchRequest struct {
	Target string `json:"target"`
	Type   string `json:"type"`
}

// DispatchResult is returned by POST /events.
type DispatchResult struct {
	DefaultPrevented bool   `json:"defaultPrevented"`
	HTML             string `json:"html"`
}

// DetachResult is returned by DELETE /controllers/{name}.
type DetachResult struct {
	Detached int `json:"detached"`
}

// MountInfo describes one mounted controller.
type MountInfo struct {
	Controller string `json:"controller"`
	Element    string `json:"element"`
	ID         string `json:"id,omitempty"`
}

func (s *Server) page(w http.ResponseWriter, _ *http.Request) {
	s.mu.Lock()
	defer s.mu.Unlock()
	gohttp.NewResponse(w).HTML(s.doc.HTML())
}

func (s *Server) controllers(w http.ResponseWriter, r *http.Request) {
	s.mu.Lock()
	defer s.mu.Unlock()
	gohttp.NewResponse(w).Success(s.describe(gohttp.NewRequest(r).Query("name")))
}

func (s *Server) controller(w http.ResponseWriter, r *http.Request) {
	res := gohttp.NewResponse(w)
	name := gohttp.NewRequest(r).RouteParam("name")

	s.mu.Lock()
	defer s.mu.Unlock()

	out := s.describe(name)
	if len(out) == 0 {
		res.NotFound("No controller is mounted under that name.")
		return
	}
	res.Success(out)
}

func (s *Server) detach(w http.ResponseWriter, r *http.Request) {
	res := gohttp.NewResponse(w)
	name := routing.Param(r, "name")

	s.mu.Lock()
	defer s.mu.Unlock()

	kept := make([]*component.Mount, 0, len(s.mounts))
	detached := 0
	for _, m := range s.mounts {
		if m.Name != name {
			kept = append(kept, m)
			continue
		}
		if m.Detach != nil {
			m.Detach()
		}
		detached++
	}
	s.mounts = kept

	if detached == 0 {
		res.NotFound("No controller is mounted under that name.")
		return
	}
	s.logger.Debug("controllers detached", zap.String("controller", name), zap.Int("count", detached))
	res.Success(DetachResult{Detached: detached})
}

// describe lists the mounts named name, or all mounts when name is empty
// (must hold mu).
func (s *Server) describe(name string) []MountInfo {
	out := make([]MountInfo, 0, len(s.mounts))
	for _, m := range s.mounts {
		if name != "" && m.Name != name {
			continue
		}
		id, _ := m.Element.Attribute("id")
		out = append(out, MountInfo{Controller: m.Name, Element: m.Element.Tag(), ID: id})
	}
	return out
}

func (s *Server) dispatch(w http.ResponseWriter, r *http.Request) {
	res := gohttp.NewResponse(w)

	var body DispatchRequest
	if err := gohttp.NewRequest(r).Bind(&body); err != nil {
		res.Error(http.StatusBadRequest, err.Error())
		return
	}

	v := validation.Make(map[string]string{
		"target": body.Target,
		"type":   body.Type,
	}, validation.Rules{
		"target": "required|max:200|selector",
		"type":   "required|max:40|alpha_dash",
	})
	if v.Fails() {
		res.ValidationError(v.Errors())
		return
	}

	s.mu.Lock()
	defer s.mu.Unlock()

	target, err := s.doc.QuerySelector(body.Target)
	if err != nil {
		res.Error(http.StatusBadRequest, err.Error())
		return
	}
	if target == nil {
		res.NotFound("No element matches target.")
		return
	}

	ev := s.doc.Dispatch(target, body.Type)
	s.logger.Debug("event dispatched",
		zap.String("target", body.Target),
		zap.String("type", body.Type),
		zap.Bool("default_prevented", ev.DefaultPrevented()),
	)

	res.Success(DispatchResult{DefaultPrevented: ev.DefaultPrevented(), HTML: s.doc.HTML()})
}
