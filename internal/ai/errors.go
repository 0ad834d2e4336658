package ai

import (
	"errors"
	"fmt"
	"net/http"

	openai "github.com/sashabaranov/go-openai"
	"google.golang.org/api/googleapi"
	"google.golang.org/grpc/codes"
	"google.golang.org/grpc/status"
)

// ErrQuotaExhausted matches any provider error that means "out of quota".
var ErrQuotaExhausted = errors.New("model quota exhausted")

type ErrorKind string

const (
	KindQuota ErrorKind = "RESOURCE_EXHAUSTED"
	KindAPI   ErrorKind = "API_ERROR"
)

// APIError wraps a failed model call with its classification.
type APIError struct {
	Kind     ErrorKind
	Provider string
	Err      error
}

func (e *APIError) Error() string {
	return fmt.Sprintf("%s %s: %v", e.Provider, e.Kind, e.Err)
}

func (e *APIError) Unwrap() error { return e.Err }

func (e *APIError) Is(target error) bool {
	return target == ErrQuotaExhausted && e.Kind == KindQuota
}

func classify(provider string, err error) error {
	if err == nil {
		return nil
	}
	var apiErr *APIError
	if errors.As(err, &apiErr) {
		return err
	}

	kind := KindAPI
	if isQuotaError(err) {
		kind = KindQuota
	}
	return &APIError{Kind: kind, Provider: provider, Err: err}
}

func isQuotaError(err error) bool {
	var oaErr *openai.APIError
	if errors.As(err, &oaErr) {
		if oaErr.HTTPStatusCode == http.StatusTooManyRequests {
			return true
		}
		if code, ok := oaErr.Code.(string); ok && code == "insufficient_quota" {
			return true
		}
	}

	var reqErr *openai.RequestError
	if errors.As(err, &reqErr) && reqErr.HTTPStatusCode == http.StatusTooManyRequests {
		return true
	}

	var gErr *googleapi.Error
	if errors.As(err, &gErr) && gErr.Code == http.StatusTooManyRequests {
		return true
	}

	if st, ok := status.FromError(err); ok && st.Code() == codes.ResourceExhausted {
		return true
	}
	return false
}
