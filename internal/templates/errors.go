package templates

import "errors"

var (
	// ErrTranslatorRequired indicates the service cannot operate without a translator.
	ErrTranslatorRequired = errors.New("templates: translator is required")
	// ErrRendererConfig indicates the template renderer was misconfigured.
	ErrRendererConfig = errors.New("templates: renderer configuration is incomplete")
	// ErrTemplateNotFound is returned when no template is registered under a name.
	ErrTemplateNotFound = errors.New("templates: template not found")
	// ErrInvalidRenderRequest is returned when mandatory render inputs are missing.
	ErrInvalidRenderRequest = errors.New("templates: invalid render request")
)
