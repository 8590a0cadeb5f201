package services

import (
	"context"
	"strings"

	"github.com/AssiaOU26/Cars-front/internal/core/domain"
	"github.com/AssiaOU26/Cars-front/internal/core/ports"
	"github.com/AssiaOU26/Cars-front/internal/logger"
)

// UserSubmission is the free-form request a plain user sends.
type UserSubmission struct {
	UserInfo string
	ImageURL string
	Photo    *domain.Photo
}

type UserRequestService struct {
	api   ports.Backend
	toast ports.Toaster
	log   *logger.Logger
}

func NewUserRequestService(api ports.Backend, toast ports.Toaster, log *logger.Logger) *UserRequestService {
	if toast == nil {
		toast = nopToaster{}
	}
	if log == nil {
		log = logger.Discard()
	}
	return &UserRequestService{api: api, toast: toast, log: log}
}

// Submit sends the request as multipart, the way the form posts it.
func (s *UserRequestService) Submit(ctx context.Context, sub UserSubmission) (*domain.ServiceRequest, error) {
	info := strings.TrimSpace(sub.UserInfo)
	if info == "" {
		s.toast.Error(MsgMissingCustomerInfo)
		return nil, ErrMissingCustomer
	}
	if sub.Photo != nil {
		if err := validatePhoto(sub.Photo); err != nil {
			s.toast.Error(err.Error())
			return nil, err
		}
	}

	req := domain.NewRequest{UserInfo: info}
	if url := strings.TrimSpace(sub.ImageURL); url != "" {
		req.ImageURL = &url
	}

	created, err := s.api.CreateRequestMultipart(ctx, req, sub.Photo)
	if err != nil {
		s.log.Errorf("requests: user submit: %v", err)
		s.toast.Error(MsgRequestSendFailed)
		return nil, err
	}
	s.toast.Success(MsgRequestSent)
	return created, nil
}
