package render

import "errors"

var (
	ErrTemplateNotFound   = errors.New("template not found")
	ErrRenderingTemplate  = errors.New("error rendering template")
	ErrCompilingTemplates = errors.New("error compiling templates")
)
