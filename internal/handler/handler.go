package handlers

import (
	"errors"
	"fmt"
	"net/http"
	"reflect"
	"strconv"
	"strings"

	"adminpanel/internal/config"
	"adminpanel/internal/logger"
	"adminpanel/internal/service"

	"github.com/go-playground/validator/v10"
	"github.com/gorilla/mux"
)

// Handlers serves the users and posts services. Each process only uses the
// half it owns; the other service field may be nil.
type Handlers struct {
	UserService   service.UserService
	PostService   service.PostService
	TablesService service.TablesService
	Cfg           *config.Config
	Log           *logger.Logger
	Validate      *validator.Validate
}

func NewHandlers(services *service.Service, cfg *config.Config, log *logger.Logger) *Handlers {
	return &Handlers{
		UserService:   services.User,
		PostService:   services.Post,
		TablesService: services.Tables,
		Cfg:           cfg,
		Log:           log,
		Validate:      NewValidator(),
	}
}

// NewValidator reports fields by their JSON names.
func NewValidator() *validator.Validate {
	v := validator.New()
	v.RegisterTagNameFunc(func(fld reflect.StructField) string {
		name := strings.SplitN(fld.Tag.Get("json"), ",", 2)[0]
		if name == "-" || name == "" {
			return fld.Name
		}
		return name
	})
	return v
}

type HealthResponse struct {
	Status  string `json:"status"`
	Service string `json:"service"`
	Tables  int    `json:"tables"`
}

func (h *Handlers) HealthHandler(w http.ResponseWriter, r *http.Request) {
	count, err := h.TablesService.GetCountTablesDB(r.Context())
	if err != nil {
		h.Log.Error("health check failed", "error", err)
		WriteError(w, err.Error(), http.StatusServiceUnavailable)
		return
	}

	WriteJSON(w, HealthResponse{Status: "ok", Service: h.Cfg.Service, Tables: count}, http.StatusOK)
}

func (h *Handlers) HomeHandler(w http.ResponseWriter, r *http.Request) {
	WriteJSON(w, map[string]interface{}{"ok": true, "service": h.Cfg.Service}, http.StatusOK)
}

func pathID(r *http.Request, name string) (int64, error) {
	raw := mux.Vars(r)[name]
	id, err := strconv.ParseInt(raw, 10, 64)
	if err != nil || id <= 0 {
		return 0, fmt.Errorf("invalid %s", name)
	}
	return id, nil
}

func validationMessage(err error) string {
	var verrs validator.ValidationErrors
	if !errors.As(err, &verrs) || len(verrs) == 0 {
		return err.Error()
	}

	fe := verrs[0]
	switch fe.Tag() {
	case "required":
		return fe.Field() + " is required"
	default:
		return "invalid " + fe.Field()
	}
}
