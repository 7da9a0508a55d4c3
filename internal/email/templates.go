package email

import (
	"fmt"
	"html/template"
	"strings"
	"sync"
)

// Имена встроенных шаблонов писем портала
const (
	TemplateVerificationCode = "verification_code"
	TemplatePasswordReset    = "password_reset"
	TemplateEmployerApproved = "employer_approved"
)

var builtinTemplates = map[string]string{
	TemplateVerificationCode: `<p>Hello {{.Name}},</p>
<p>Your verification code is: <strong>{{.Code}}</strong></p>
<p>Please use this code on the verification page.</p>
<p>This code expires in 15 minutes.</p>`,

	TemplatePasswordReset: `<p>Hello {{.Name}},</p>
<p>Your password reset code is: <strong>{{.Code}}</strong></p>
<p>This code expires in 1 hour. If you did not request a reset, ignore this email.</p>`,

	TemplateEmployerApproved: `<p>Hello {{.Name}},</p>
<p>Your employer account has been approved. You can now log in and post jobs.</p>
<p><a href="{{.LoginURL}}">Log in</a></p>`,
}

// TemplateManager реализует TemplateRenderer для шаблонов email
type TemplateManager struct {
	templates map[string]*template.Template
	mutex     sync.RWMutex
}

// NewTemplateManager создает менеджер с предзагруженными встроенными шаблонами
func NewTemplateManager() (*TemplateManager, error) {
	tm := &TemplateManager{
		templates: make(map[string]*template.Template),
	}
	for name, body := range builtinTemplates {
		if err := tm.AddTemplate(name, body); err != nil {
			return nil, err
		}
	}
	return tm, nil
}

// Render рендерит шаблон с данными
func (tm *TemplateManager) Render(templateName string, data TemplateData) (string, error) {
	tm.mutex.RLock()
	tpl, exists := tm.templates[templateName]
	tm.mutex.RUnlock()

	if !exists {
		return "", fmt.Errorf("template not found: %s", templateName)
	}

	var buf strings.Builder
	if err := tpl.Execute(&buf, data); err != nil {
		return "", fmt.Errorf("failed to execute template: %w", err)
	}

	return buf.String(), nil
}

// AddTemplate добавляет шаблон в менеджер
func (tm *TemplateManager) AddTemplate(name string, templateStr string) error {
	tpl, err := template.New(name).Parse(templateStr)
	if err != nil {
		return fmt.Errorf("failed to parse template: %w", err)
	}

	tm.mutex.Lock()
	tm.templates[name] = tpl
	tm.mutex.Unlock()

	return nil
}
