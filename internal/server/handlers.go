package server

import (
	"context"
	"errors"
	"net/http"
	"strconv"
	"strings"

	json "github.com/goccy/go-json"
	"go.uber.org/zap"

	"github.com/goliatone/go-orderform/pkg/gateway"
	"github.com/goliatone/go-orderform/pkg/model"
	"github.com/goliatone/go-orderform/pkg/render"
	"github.com/goliatone/go-orderform/pkg/renderers/html"
	"github.com/goliatone/go-orderform/pkg/state"
	"github.com/goliatone/go-orderform/pkg/validation"
)

const maxFormBytes = 64 << 10

// FieldResult answers a single-field validation request.
type FieldResult struct {
	Field string `json:"field"`
	Error string `json:"error"`
}

// FormResult answers a whole-form validation request. Errors lists only
// fields that currently fail.
type FormResult struct {
	Errors      model.FieldErrors `json:"errors"`
	Submittable bool              `json:"submittable"`
}

func (s *Server) handleHome(w http.ResponseWriter, r *http.Request) {
	s.renderPage(w, r, http.StatusOK, render.PageHome, render.PageData{Title: "Bloom Pizza"})
}

func (s *Server) handleOrderForm(w http.ResponseWriter, r *http.Request) {
	s.renderOrder(w, r, http.StatusOK, s.newStore())
}

func (s *Server) handleOrderSubmit(w http.ResponseWriter, r *http.Request) {
	values, err := s.parseForm(w, r)
	if err != nil {
		writeJSON(w, http.StatusBadRequest, map[string]string{"error": err.Error()})
		return
	}

	store := s.newStore()
	store.Load(values)
	if !store.IsSubmittable() {
		s.renderOrder(w, r, http.StatusUnprocessableEntity, store)
		return
	}

	ctx := r.Context()
	if s.requestTimeout > 0 {
		var cancel context.CancelFunc
		ctx, cancel = context.WithTimeout(ctx, s.requestTimeout)
		defer cancel()
	}

	status := http.StatusOK
	if err := store.Submit(ctx, s.submitter); err != nil {
		status = http.StatusBadGateway
		fields := []zap.Field{zap.Error(err)}
		var subErr *gateway.SubmissionError
		if errors.As(err, &subErr) {
			fields = append(fields, zap.Int("upstream_status", subErr.Status))
		}
		s.logger.Warn("order submission failed", fields...)
	} else {
		s.logger.Info("order submitted", zap.String("size", string(values.Size)))
	}
	s.renderOrder(w, r, status, store)
}

func (s *Server) handleValidateField(w http.ResponseWriter, r *http.Request) {
	query := r.URL.Query()
	field := strings.TrimSpace(query.Get("field"))
	raw := query.Get("value")

	var value any
	switch {
	case field == model.FieldFullName:
		value = raw
	case field == model.FieldSize:
		value = model.Size(strings.TrimSpace(raw))
	case strings.HasPrefix(field, model.ToppingFieldPrefix):
		value = parseChecked(raw)
	default:
		value = raw
	}

	err := s.validator.ValidateField(field, value)
	if errors.Is(err, validation.ErrUnknownField) {
		writeJSON(w, http.StatusBadRequest, FieldResult{Field: field, Error: "unknown field"})
		return
	}
	writeJSON(w, http.StatusOK, FieldResult{Field: field, Error: validation.Message(err)})
}

func (s *Server) handleValidateForm(w http.ResponseWriter, r *http.Request) {
	values, err := s.parseForm(w, r)
	if err != nil {
		writeJSON(w, http.StatusBadRequest, map[string]string{"error": err.Error()})
		return
	}

	store := s.newStore()
	store.Hydrate(values)
	snap := store.Snapshot()

	failing := make(model.FieldErrors)
	for key, message := range snap.Errors {
		if message != "" {
			failing[key] = message
		}
	}
	writeJSON(w, http.StatusOK, FormResult{Errors: failing, Submittable: snap.Submittable})
}

func (s *Server) handleHealth(w http.ResponseWriter, _ *http.Request) {
	writeJSON(w, http.StatusOK, map[string]string{"status": "ok"})
}

func (s *Server) renderOrder(w http.ResponseWriter, r *http.Request, status int, store *state.Store) {
	view := render.NewFormView(s.schema, store.Snapshot(), render.ViewOptions{})
	s.renderPage(w, r, status, render.PageOrder, render.PageData{Title: "Order Your Pizza", Form: &view})
}

func (s *Server) renderPage(w http.ResponseWriter, r *http.Request, status int, page render.Page, data render.PageData) {
	renderer, err := s.renderers.Negotiate(r.Header.Get("Accept"), html.Name)
	if err != nil {
		s.fail(w, "lookup renderer", err)
		return
	}

	data.Links = render.DefaultLinks(page)
	body, err := renderer.Render(r.Context(), page, data)
	if err != nil {
		s.fail(w, "render "+string(page), err)
		return
	}
	w.Header().Set("Content-Type", renderer.ContentType())
	w.WriteHeader(status)
	_, _ = w.Write(body)
}

func (s *Server) fail(w http.ResponseWriter, op string, err error) {
	s.logger.Error("request failed", zap.String("op", op), zap.Error(err))
	http.Error(w, http.StatusText(http.StatusInternalServerError), http.StatusInternalServerError)
}

// parseForm reads fullName, size and toppings from a urlencoded body.
// Toppings arrive either as repeated "toppings=<id>" values or as
// "topping_<id>=on" checkboxes.
func (s *Server) parseForm(w http.ResponseWriter, r *http.Request) (model.FormValues, error) {
	r.Body = http.MaxBytesReader(w, r.Body, maxFormBytes)
	if err := r.ParseForm(); err != nil {
		return model.FormValues{}, errors.New("malformed form body")
	}
	form := r.PostForm

	values := s.schema.InitialValues()
	values.FullName = form.Get(model.FieldFullName)
	values.Size = model.Size(strings.TrimSpace(form.Get(model.FieldSize)))

	picked := make(map[string]struct{})
	for _, id := range form["toppings"] {
		picked[strings.TrimSpace(id)] = struct{}{}
	}
	for key, raw := range form {
		id, ok := model.ToppingID(key)
		if ok && len(raw) > 0 && parseChecked(raw[len(raw)-1]) {
			picked[id] = struct{}{}
		}
	}
	for i := range values.Toppings {
		_, values.Toppings[i].Selected = picked[values.Toppings[i].ID]
	}
	return values, nil
}

func parseChecked(raw string) bool {
	switch strings.ToLower(strings.TrimSpace(raw)) {
	case "on", "yes", "checked":
		return true
	}
	checked, err := strconv.ParseBool(strings.TrimSpace(raw))
	return err == nil && checked
}

func writeJSON(w http.ResponseWriter, status int, payload any) {
	w.Header().Set("Content-Type", "application/json")
	w.WriteHeader(status)
	_ = json.NewEncoder(w).Encode(payload)
}
