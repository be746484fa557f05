package order

import (
	"fmt"
	"net/http"

	"github.com/digitalseva/courseshop/product"
	resp "github.com/digitalseva/courseshop/response"

	"github.com/go-chi/chi"
	"go.uber.org/zap"
)

// ServiceOptions contains the configuration for Service router
type ServiceOptions struct {
	OrderManager *Manager
	Product      *product.Product
	Logger       *zap.Logger
}

// Service is the order API router
type Service struct {
	ServiceOptions
}

// NewService will create an instance of the order API router
func NewService(option ServiceOptions) (*Service, error) {
	if option.OrderManager == nil {
		return nil, fmt.Errorf("nil OrderManager is invalid")
	}
	if option.Product == nil {
		return nil, fmt.Errorf("nil Product is invalid")
	}
	if option.Logger == nil {
		return nil, fmt.Errorf("nil Logger is invalid")
	}
	return &Service{
		ServiceOptions: option,
	}, nil
}

func (s *Service) createOrder(w http.ResponseWriter, r *http.Request) {
	gatewayOrder, err := s.OrderManager.CreateOrder(r.Context())
	if err != nil {
		// the initiator only needs to know the call failed, details stay
		// in the server log
		http.Error(w, "Error creating order", http.StatusInternalServerError)
		return
	}

	resp.WriteResponse(w, r, gatewayOrder)
}

func (s *Service) checkoutConfig(w http.ResponseWriter, r *http.Request) {
	resp.WriteResponse(w, r, s.Product)
}

// Router will return the routes under order API
func (s *Service) Router() http.Handler {
	r := chi.NewRouter()

	r.Post("/", s.createOrder)

	return r
}

// ConfigRouter will return the routes under the checkout configuration API
func (s *Service) ConfigRouter() http.Handler {
	r := chi.NewRouter()

	r.Get("/config", s.checkoutConfig)

	return r
}
