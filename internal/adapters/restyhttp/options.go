package restyhttp

import (
	"courier/internal/domain"
	"courier/internal/utils"
)

// NewRequestConfig builds the outgoing configuration for the Get/Post/PostJSON shortcuts.
//
// GET sends data as query parameters. POST and DELETE encode non-empty mappings
// according to contentType, drop empty mappings, and pass every other payload
// through unchanged. Other methods always pass data through.
func NewRequestConfig(
	url string,
	method domain.Method,
	contentType domain.ContentType,
	data any,
) (*domain.RequestConfig, error) {
	cfg := &domain.RequestConfig{
		URL:     url,
		Method:  method,
		Headers: make(map[string]string),
	}
	if contentType != "" {
		cfg.SetHeader("Content-Type", string(contentType))
	}

	if utils.IsUndefinedOrNull(data) {
		return cfg, nil
	}

	switch method {
	case domain.MethodGet:
		cfg.Params = data
	case domain.MethodPost, domain.MethodDelete:
		if err := setBody(cfg, contentType, data); err != nil {
			return nil, err
		}
	default:
		cfg.Data = data
	}
	return cfg, nil
}

func setBody(cfg *domain.RequestConfig, contentType domain.ContentType, data any) error {
	if contentType != domain.ContentTypeForm && contentType != domain.ContentTypeJSON {
		cfg.Data = data
		return nil
	}

	if !utils.IsMapping(data) {
		cfg.Data = data
		return nil
	}
	if utils.IsEmptyObject(data) {
		return nil
	}

	if contentType == domain.ContentTypeJSON {
		cfg.Data = data
		return nil
	}

	encoded, err := utils.EncodeForm(data)
	if err != nil {
		return err
	}
	cfg.Data = encoded
	return nil
}
