package customer

import (
	"encoding/json"
	"fmt"
	"net/http"

	"github.com/digitalseva/courseshop/auth"
	"github.com/digitalseva/courseshop/fulfillment"
	resp "github.com/digitalseva/courseshop/response"

	"github.com/go-chi/chi"
	"github.com/go-playground/validator/v10"
	"go.uber.org/zap"
)

var validate *validator.Validate = validator.New()

// Options contains the configuration for Service router
type Options struct {
	Auth            *auth.Auth
	CustomerManager *Manager
	Producer        fulfillment.Producer
	Logger          *zap.Logger
}

// Service is the customer API router
type Service struct {
	Options
}

// SaveRequest is the model of the save-customer call fired by the
// initiator after the widget reports success. Only presence is checked
// here; email/mobile formats are a client-side concern.
type SaveRequest struct {
	Name   string `json:"name" validate:"required"`
	Email  string `json:"email" validate:"required"`
	Mobile string `json:"mobile" validate:"required"`
}

// NewService will create an instance of the customer API router
func NewService(option Options) (*Service, error) {
	if option.Auth == nil {
		return nil, fmt.Errorf("nil Auth is invalid")
	}
	if option.CustomerManager == nil {
		return nil, fmt.Errorf("nil CustomerManager is invalid")
	}
	if option.Producer == nil {
		return nil, fmt.Errorf("nil Producer is invalid")
	}
	if option.Logger == nil {
		return nil, fmt.Errorf("nil Logger is invalid")
	}
	return &Service{
		Options: option,
	}, nil
}

func (s *Service) saveCustomer(w http.ResponseWriter, r *http.Request) {
	ctx := r.Context()

	var req SaveRequest
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		resp.WriteError(w, r, resp.ErrInvalidJson())
		return
	}

	if err := validate.Struct(&req); err != nil {
		resp.WriteError(w, r, resp.ErrBadRequest().WithMessage("Name, email, and mobile are required"))
		return
	}

	logger := s.Logger.With(zap.String("Email", req.Email))

	record := &CustomerRecord{
		Name:   req.Name,
		Email:  req.Email,
		Mobile: req.Mobile,
	}

	if err := s.CustomerManager.Save(ctx, record); err != nil {
		logger.Error("Unable to save customer record",
			zap.Error(err),
		)
		resp.WriteError(w, r, resp.ErrUnexpected().WithMessage("Unable to save customer"))
		return
	}

	// best-effort: access delivery failing should not fail the save
	if err := s.Producer.PublishCustomerSaved(&fulfillment.CustomerSaved{
		RecordID: record.ID,
		Name:     record.Name,
		Email:    record.Email,
		Mobile:   record.Mobile,
	}); err != nil {
		logger.Error("Unable to publish CustomerSaved event",
			zap.Error(err),
		)
	}

	resp.WriteMessage(w, r, "Customer saved successfully")
}

func (s *Service) listCustomers(w http.ResponseWriter, r *http.Request) {
	ctx := r.Context()
	claims := ctx.Value(auth.Context).(*auth.Claims)

	logger := s.Logger.With(zap.String("Admin", claims.Email))

	records, err := s.CustomerManager.List(ctx)
	if err != nil {
		logger.Error("Unable to list customer records",
			zap.Error(err),
		)
		resp.WriteError(w, r, resp.ErrUnexpected().WithMessage("Unable to list customers"))
		return
	}

	resp.WriteResponse(w, r, records)
}

// SaveRouter will return the routes under the save-customer API
func (s *Service) SaveRouter() http.Handler {
	r := chi.NewRouter()

	r.Post("/", s.saveCustomer)

	return r
}

// ListRouter will return the routes under the customers API. Listing every
// buyer's contact details is admin-only.
func (s *Service) ListRouter() http.Handler {
	r := chi.NewRouter()

	r.Use(s.Auth.Middleware())
	r.Get("/", s.listCustomers)

	return r
}
